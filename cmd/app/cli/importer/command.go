package importer

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"eldenlens.dev/backend/internal/app/appconfig"
	"eldenlens.dev/backend/internal/service"
)

type CommandDeps struct {
	fx.In

	Config          *appconfig.Config
	ImporterService *service.Importer
}

func Command(depsFn func() (CommandDeps, error)) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "import weapons, boss stats and bosses from CSV exports",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "directory holding " + service.WeaponsFile + ", " + service.BossStatsFile + " and " + service.BossesFile + " (defaults to ERDB_IMPORT_DATA_DIR)",
			},
		},
		Action: func(c *cli.Context) error {
			deps, err := depsFn()
			if err != nil {
				return err
			}

			dir := c.String("dir")
			if dir == "" {
				dir = deps.Config.ImportDataDir
			}

			dataset, err := deps.ImporterService.Import(c.Context, dir)
			if err != nil {
				return err
			}

			for name, report := range dataset.Reports {
				log.Info().
					Str("file", name).
					Int("decoded", report.Decoded).
					Int("skipped", report.Skipped).
					Msg("import file summary")
			}
			return nil
		},
	}
}
