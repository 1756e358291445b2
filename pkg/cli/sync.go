package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/hive-scribe/beescribe/pkg/cli/config"
	"github.com/hive-scribe/beescribe/pkg/service/journal"
	"github.com/hive-scribe/beescribe/pkg/usecase"
	"github.com/hive-scribe/beescribe/pkg/utils/logging"
)

func cmdSync() *cli.Command {
	var configPath string
	var withFacts bool
	var beeCfg config.Bee
	var outCfg config.Output
	var jnlCfg config.Journal

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to a TOML configuration file",
			Sources:     cli.EnvVars("BEESCRIBE_CONFIG"),
			Destination: &configPath,
		},
		&cli.BoolFlag{
			Name:        "facts",
			Usage:       "Also run the facts pass after syncing conversations",
			Value:       true,
			Sources:     cli.EnvVars("BEESCRIBE_SYNC_FACTS"),
			Destination: &withFacts,
		},
	}
	flags = append(flags, beeCfg.Flags()...)
	flags = append(flags, outCfg.Flags()...)
	flags = append(flags, jnlCfg.Flags()...)

	return &cli.Command{
		Name:    "sync",
		Aliases: []string{"s"},
		Usage:   "Fetch conversations and write one journal file per finished day",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if configPath != "" {
				file, err := config.LoadFile(configPath)
				if err != nil {
					return err
				}
				beeCfg.ApplyFile(c, file)
				outCfg.ApplyFile(c, file)
				jnlCfg.ApplyFile(c, file)
			}

			logging.Default().Info("Sync configuration",
				"bee", beeCfg, "output", outCfg, "journal", jnlCfg)

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

			assembler := journal.NewAssembler(journal.WithScorePolicy(jnlCfg.ScorePolicy()))
			uc := usecase.New(client, repo, usecase.WithAssembler(assembler))
			result, err := uc.SyncConversations(ctx)
			if err != nil {
				return goerr.Wrap(err, "sync failed")
			}

			if result.Interrupted {
				color.Yellow("Interrupted, partial results kept")
			}
			color.Green("Synced %d conversations: %d files written, %d dates skipped",
				result.ConversationsSeen, result.FilesWritten, result.DatesSkipped)
			if result.DetailFailures > 0 {
				color.Yellow("%d conversation details could not be fetched", result.DetailFailures)
			}

			if withFacts && !result.Interrupted {
				facts, err := uc.SyncFacts(ctx)
				if err != nil {
					return goerr.Wrap(err, "facts pass failed")
				}
				if facts.Interrupted {
					color.Yellow("Facts pass interrupted, partial results kept")
				}
				color.Green("Processed %d facts: %d files updated, %d dates skipped",
					facts.FactsSeen, facts.FilesUpdated, facts.DatesSkipped)
			}

			return nil
		},
	}
}
