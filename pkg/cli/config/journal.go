package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/hive-scribe/beescribe/pkg/service/journal"
)

// Journal holds the document assembly tuning
type Journal struct {
	headerPoints    int
	allPresentBonus int
}

func (x *Journal) Flags() []cli.Flag {
	def := journal.DefaultScorePolicy()
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "score-header-points",
			Usage:       "Points per recognized section header when ranking summaries",
			Category:    "Journal",
			Value:       def.HeaderPoints,
			Sources:     cli.EnvVars("BEESCRIBE_SCORE_HEADER_POINTS"),
			Destination: &x.headerPoints,
		},
		&cli.IntFlag{
			Name:        "score-all-bonus",
			Usage:       "Bonus when a summary carries every recognized header",
			Category:    "Journal",
			Value:       def.AllPresentBonus,
			Sources:     cli.EnvVars("BEESCRIBE_SCORE_ALL_BONUS"),
			Destination: &x.allPresentBonus,
		},
	}
}

func (x Journal) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("header-points", x.headerPoints),
		slog.Int("all-present-bonus", x.allPresentBonus),
	)
}

// ApplyFile fills in values from a config file for flags the user did
// not set on the command line or via environment variables
func (x *Journal) ApplyFile(c *cli.Command, f *File) {
	if f == nil {
		return
	}
	if !c.IsSet("score-header-points") && f.Journal.HeaderPoints > 0 {
		x.headerPoints = f.Journal.HeaderPoints
	}
	if !c.IsSet("score-all-bonus") && f.Journal.AllPresentBonus > 0 {
		x.allPresentBonus = f.Journal.AllPresentBonus
	}
}

// ScorePolicy returns the configured representative-summary weights
func (x *Journal) ScorePolicy() journal.ScorePolicy {
	return journal.ScorePolicy{
		HeaderPoints:    x.headerPoints,
		AllPresentBonus: x.allPresentBonus,
	}
}
