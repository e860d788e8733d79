package purgecache

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
	"gopkg.in/guregu/null.v3"

	"eldenlens.dev/backend/internal/model/types"
	"eldenlens.dev/backend/internal/service"
)

type CommandDeps struct {
	fx.In

	AdminService *service.Admin
}

func Command(depsFn func() (CommandDeps, error)) *cli.Command {
	return &cli.Command{
		Name:      "purge-cache",
		Usage:     "purge named caches, or single keys of them written as name:key",
		ArgsUsage: "<name>[:key] ...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("at least one cache name is required", 2)
			}

			deps, err := depsFn()
			if err != nil {
				return err
			}

			pairs := make([]types.PurgeCachePair, 0, c.NArg())
			for _, arg := range c.Args().Slice() {
				pairs = append(pairs, ParsePair(arg))
			}
			if err := deps.AdminService.PurgeCaches(c.Context, pairs); err != nil {
				log.Error().Err(err).Strs("available", deps.AdminService.CacheNames()).Msg("failed to purge cache")
				return err
			}
			return nil
		},
	}
}

// ParsePair splits "name:key" at the first colon. Without one the whole
// cache is named.
func ParsePair(arg string) types.PurgeCachePair {
	name, key, found := strings.Cut(arg, ":")
	if !found {
		return types.PurgeCachePair{Name: name}
	}
	return types.PurgeCachePair{Name: name, Key: null.StringFrom(key)}
}
