package config_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/hive-scribe/beescribe/pkg/cli/config"
	"github.com/hive-scribe/beescribe/pkg/utils/logging"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beescribe.toml")
	content := `
[bee]
endpoint = "https://bee.example.com/v1"
api_key = "sk-test"
max_pages = 5

[output]
dir = "/tmp/journal"
month_partition = true
facts_file = "/tmp/facts.md"

[journal]
header_points = 3
all_present_bonus = 7
`
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o644)).Required()

	f, err := config.LoadFile(path)
	gt.NoError(t, err).Required()

	gt.Value(t, f.Bee.Endpoint).Equal("https://bee.example.com/v1")
	gt.Value(t, f.Bee.APIKey).Equal("sk-test")
	gt.Number(t, f.Bee.MaxPages).Equal(5)
	gt.Value(t, f.Output.Dir).Equal("/tmp/journal")
	gt.Bool(t, f.Output.MonthPartition).True()
	gt.Value(t, f.Output.FactsFile).Equal("/tmp/facts.md")
	gt.Number(t, f.Journal.HeaderPoints).Equal(3)
	gt.Number(t, f.Journal.AllPresentBonus).Equal(7)
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, config.ErrConfigNotFound)).True()
}

func TestLoadFileInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	gt.NoError(t, os.WriteFile(path, []byte("[bee\nendpoint ="), 0o644)).Required()

	_, err := config.LoadFile(path)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
}

func TestBeeConfigureInvalidEndpoint(t *testing.T) {
	cases := []string{"", "not-a-url", "/relative/path"}
	for _, endpoint := range cases {
		t.Run(endpoint, func(t *testing.T) {
			cfg := config.NewBeeForTest(endpoint, "sk-test", 0)
			_, err := cfg.Configure()
			gt.Error(t, err)
			gt.Bool(t, errors.Is(err, config.ErrInvalidEndpoint)).True()
		})
	}
}

func TestBeeConfigureMissingKey(t *testing.T) {
	// Stdin is not a terminal under go test, so no prompt happens
	cfg := config.NewBeeForTest("https://bee.example.com/v1", "", 0)
	_, err := cfg.Configure()
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, config.ErrMissingAPIKey)).True()
}

func TestBeeConfigure(t *testing.T) {
	cfg := config.NewBeeForTest("https://bee.example.com/v1", "sk-test", 3)
	client, err := cfg.Configure()
	gt.NoError(t, err).Required()
	gt.Value(t, client != nil).Equal(true)
}

func TestOutputConfigure(t *testing.T) {
	dir := t.TempDir()
	cfg := config.NewOutputForTest(dir, true, filepath.Join(dir, "facts.md"))
	repo, err := cfg.Configure()
	gt.NoError(t, err).Required()
	gt.Value(t, repo != nil).Equal(true)
}

func TestOutputConfigureMissingDir(t *testing.T) {
	cfg := config.NewOutputForTest("", false, "")
	_, err := cfg.Configure()
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, config.ErrInvalidOutputDir)).True()
}

func TestJournalScorePolicy(t *testing.T) {
	cfg := config.NewJournalForTest(3, 7)
	policy := cfg.ScorePolicy()
	gt.Number(t, policy.HeaderPoints).Equal(3)
	gt.Number(t, policy.AllPresentBonus).Equal(7)
}

func TestFileLoggingRedactsAPIKey(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelDebug, logging.FormatJSON)

	var f config.File
	f.Bee.Endpoint = "https://bee.example.com/v1"
	f.Bee.APIKey = "sk-super-secret"
	logger.Info("Loaded configuration file", "config", &f)

	out := buf.String()
	gt.Bool(t, strings.Contains(out, "Loaded configuration file")).True()
	gt.Bool(t, strings.Contains(out, "https://bee.example.com/v1")).True()
	gt.Bool(t, strings.Contains(out, "sk-super-secret")).False()
}

func TestLoggerConfigure(t *testing.T) {
	cfg := config.NewLoggerForTest("debug", "json", "stderr")
	closer, err := cfg.Configure()
	gt.NoError(t, err).Required()
	closer()
}

func TestLoggerConfigureInvalidLevel(t *testing.T) {
	cfg := config.NewLoggerForTest("loud", "console", "stderr")
	_, err := cfg.Configure()
	gt.Error(t, err)
}

func TestLoggerConfigureInvalidFormat(t *testing.T) {
	cfg := config.NewLoggerForTest("info", "xml", "stderr")
	_, err := cfg.Configure()
	gt.Error(t, err)
}

func TestLoggerConfigureFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beescribe.log")
	cfg := config.NewLoggerForTest("info", "json", path)
	closer, err := cfg.Configure()
	gt.NoError(t, err).Required()
	closer()

	_, err = os.Stat(path)
	gt.NoError(t, err)
}
