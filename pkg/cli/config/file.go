package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/hive-scribe/beescribe/pkg/utils/logging"
)

// File is the optional TOML configuration file. Command line flags and
// environment variables take precedence over values read from it.
type File struct {
	Bee struct {
		Endpoint string `toml:"endpoint"`
		APIKey   string `toml:"api_key" masq:"secret"`
		MaxPages int    `toml:"max_pages"`
	} `toml:"bee"`
	Output struct {
		Dir            string `toml:"dir"`
		MonthPartition bool   `toml:"month_partition"`
		FactsFile      string `toml:"facts_file"`
	} `toml:"output"`
	Journal struct {
		HeaderPoints    int `toml:"header_points"`
		AllPresentBonus int `toml:"all_present_bonus"`
	} `toml:"journal"`
}

// LoadFile reads and parses a TOML configuration file
func LoadFile(path string) (*File, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "no such file", goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V("path", path))
	}

	logging.Default().Debug("Loaded configuration file", "path", path, "config", &f)
	return &f, nil
}
