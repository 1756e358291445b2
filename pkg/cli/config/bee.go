package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hive-scribe/beescribe/pkg/service/bee"
)

const maxKeyPromptAttempts = 3

// Bee holds the API client configuration
type Bee struct {
	endpoint string
	apiKey   string
	maxPages int
}

func (x *Bee) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "api-endpoint",
			Usage:       "Bee API base URL",
			Category:    "Bee API",
			Value:       "https://api.bee.computer/v1",
			Sources:     cli.EnvVars("BEESCRIBE_API_ENDPOINT"),
			Destination: &x.endpoint,
		},
		&cli.StringFlag{
			Name:        "api-key",
			Usage:       "Bee API key (prompted when omitted)",
			Category:    "Bee API",
			Sources:     cli.EnvVars("BEESCRIBE_API_KEY"),
			Destination: &x.apiKey,
		},
		&cli.IntFlag{
			Name:        "max-pages",
			Usage:       "Stop paginating after this many pages (0 = no limit)",
			Category:    "Bee API",
			Sources:     cli.EnvVars("BEESCRIBE_MAX_PAGES"),
			Destination: &x.maxPages,
		},
	}
}

func (x Bee) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("endpoint", x.endpoint),
		slog.Int("api-key.len", len(x.apiKey)),
		slog.Int("max-pages", x.maxPages),
	)
}

// ApplyFile fills in values from a config file for flags the user did
// not set on the command line or via environment variables
func (x *Bee) ApplyFile(c *cli.Command, f *File) {
	if f == nil {
		return
	}
	if !c.IsSet("api-endpoint") && f.Bee.Endpoint != "" {
		x.endpoint = f.Bee.Endpoint
	}
	if !c.IsSet("api-key") && f.Bee.APIKey != "" {
		x.apiKey = f.Bee.APIKey
	}
	if !c.IsSet("max-pages") && f.Bee.MaxPages > 0 {
		x.maxPages = f.Bee.MaxPages
	}
}

// Configure validates the configuration and builds the API client.
// When no key is configured and stdin is a terminal, the user is
// prompted for one without echo.
func (x *Bee) Configure() (bee.Service, error) {
	u, err := url.Parse(x.endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, goerr.Wrap(ErrInvalidEndpoint, "endpoint must be an absolute URL", goerr.V("endpoint", x.endpoint))
	}

	if x.apiKey == "" {
		key, err := promptAPIKey()
		if err != nil {
			return nil, err
		}
		x.apiKey = key
	}

	var opts []bee.Option
	if x.maxPages > 0 {
		opts = append(opts, bee.WithMaxPages(x.maxPages))
	}

	return bee.New(x.endpoint, x.apiKey, opts...)
}

func promptAPIKey() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", goerr.Wrap(ErrMissingAPIKey, "set --api-key or BEESCRIBE_API_KEY")
	}

	for i := 0; i < maxKeyPromptAttempts; i++ {
		fmt.Fprint(os.Stderr, "Bee API key: ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", goerr.Wrap(ErrPromptUnavailable, err.Error())
		}
		if key := strings.TrimSpace(string(raw)); key != "" {
			return key, nil
		}
	}

	return "", goerr.Wrap(ErrMissingAPIKey, "no key entered", goerr.V("attempts", maxKeyPromptAttempts))
}
