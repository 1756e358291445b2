package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/hive-scribe/beescribe/pkg/repository/filesystem"
)

// Output holds the journal directory configuration
type Output struct {
	dir            string
	monthPartition bool
	factsFile      string
}

func (x *Output) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output-dir",
			Aliases:     []string{"o"},
			Usage:       "Directory holding the journal files",
			Category:    "Output",
			Value:       "./journal",
			Sources:     cli.EnvVars("BEESCRIBE_OUTPUT_DIR"),
			Destination: &x.dir,
		},
		&cli.BoolFlag{
			Name:        "month-partition",
			Usage:       "Group journal files into month subdirectories (e.g. 03-March)",
			Category:    "Output",
			Sources:     cli.EnvVars("BEESCRIBE_MONTH_PARTITION"),
			Destination: &x.monthPartition,
		},
		&cli.StringFlag{
			Name:        "facts-file",
			Usage:       "Path of the cumulative facts ledger (disabled when empty)",
			Category:    "Output",
			Sources:     cli.EnvVars("BEESCRIBE_FACTS_FILE"),
			Destination: &x.factsFile,
		},
	}
}

func (x Output) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("dir", x.dir),
		slog.Bool("month-partition", x.monthPartition),
		slog.String("facts-file", x.factsFile),
	)
}

// ApplyFile fills in values from a config file for flags the user did
// not set on the command line or via environment variables
func (x *Output) ApplyFile(c *cli.Command, f *File) {
	if f == nil {
		return
	}
	if !c.IsSet("output-dir") && f.Output.Dir != "" {
		x.dir = f.Output.Dir
	}
	if !c.IsSet("month-partition") && f.Output.MonthPartition {
		x.monthPartition = true
	}
	if !c.IsSet("facts-file") && f.Output.FactsFile != "" {
		x.factsFile = f.Output.FactsFile
	}
}

// Configure builds the filesystem journal repository
func (x *Output) Configure() (*filesystem.Store, error) {
	if x.dir == "" {
		return nil, goerr.Wrap(ErrInvalidOutputDir, "output directory is required")
	}

	var opts []filesystem.Option
	if x.monthPartition {
		opts = append(opts, filesystem.WithMonthPartition())
	}
	if x.factsFile != "" {
		opts = append(opts, filesystem.WithFactsLedger(x.factsFile))
	}

	return filesystem.New(x.dir, opts...)
}
