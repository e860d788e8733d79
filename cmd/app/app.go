package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"eldenlens.dev/backend/cmd/app/cli/importer"
	"eldenlens.dev/backend/cmd/app/cli/purgecache"
	"eldenlens.dev/backend/cmd/app/server"
	"eldenlens.dev/backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "eldenlens",
		Description: "The EldenLens Backend. Built with Go, fiber, bun and go.uber.org/fx. Uses PostgreSQL for storage and Redis as the cache.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			importer.Command(depsFn[importer.CommandDeps]()),
			purgecache.Command(depsFn[purgecache.CommandDeps]()),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
