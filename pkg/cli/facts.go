package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/hive-scribe/beescribe/pkg/cli/config"
	"github.com/hive-scribe/beescribe/pkg/usecase"
	"github.com/hive-scribe/beescribe/pkg/utils/logging"
)

func cmdFacts() *cli.Command {
	var configPath string
	var beeCfg config.Bee
	var outCfg config.Output

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to a TOML configuration file",
			Sources:     cli.EnvVars("BEESCRIBE_CONFIG"),
			Destination: &configPath,
		},
	}
	flags = append(flags, beeCfg.Flags()...)
	flags = append(flags, outCfg.Flags()...)

	return &cli.Command{
		Name:    "facts",
		Aliases: []string{"f"},
		Usage:   "Fetch confirmed facts and insert them into matching journal files",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if configPath != "" {
				file, err := config.LoadFile(configPath)
				if err != nil {
					return err
				}
				beeCfg.ApplyFile(c, file)
				outCfg.ApplyFile(c, file)
			}

			logging.Default().Info("Facts configuration", "bee", beeCfg, "output", outCfg)

			client, err := beeCfg.Configure()
			if err != nil {
				return err
			}
			repo, err := outCfg.Configure()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			uc := usecase.New(client, repo)
			result, err := uc.SyncFacts(ctx)
			if err != nil {
				return goerr.Wrap(err, "facts pass failed")
			}

			if result.Interrupted {
				color.Yellow("Interrupted, partial results kept")
			}
			color.Green("Processed %d facts: %d files updated, %d dates skipped",
				result.FactsSeen, result.FilesUpdated, result.DatesSkipped)

			return nil
		},
	}
}
