package command

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/sssecrets/go-sssecrets/internal/config"
	"github.com/sssecrets/go-sssecrets/token"
)

// Build information, set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

const runtimeKey = "runtime"

// ErrInvalidSecret is returned when at least one checked secret failed validation.
var ErrInvalidSecret = errors.New("one or more secrets are invalid")

// Runtime holds what commands need once global flags and config are resolved.
type Runtime struct {
	Config *config.Config
	Engine *token.Engine
	Log    *logrus.Logger
}

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "sssecrets",
		Usage:   "generate and validate structured secrets",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			GenerateCommand(),
			ValidateCommand(),
			HeaderCommand(),
			ValidateHeaderCommand(),
			ChecksumCommand(),
			InspectCommand(),
			ServeCommand(),
		},
		Metadata: map[string]any{},
		Before:   before,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML config file",
			EnvVars: []string{"SSSECRETS_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "org",
			Usage: "organisation part of the prefix",
		},
		&cli.StringFlag{
			Name:  "type",
			Usage: "type part of the prefix",
		},
		&cli.StringFlag{
			Name:  "padding",
			Usage: "checksum padding: left or right",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable verbose output (same as --log-level debug)",
		},
	}
}

// flagOverrides collects explicitly set global flags as config keys.
func flagOverrides(c *cli.Context) map[string]any {
	flags := map[string]any{}
	for name, key := range map[string]string{
		"org":       "org",
		"type":      "type",
		"padding":   "padding",
		"log-level": "log_level",
	} {
		if c.IsSet(name) {
			flags[key] = c.String(name)
		}
	}
	if c.Bool("verbose") {
		flags["log_level"] = "debug"
	}
	return flags
}

func before(c *cli.Context) error {
	cfg, err := config.NewLoader(config.WithConfigFile(c.String("config"))).Load(flagOverrides(c))
	if err != nil {
		return err
	}

	log := logrus.New()
	log.Out = c.App.ErrWriter
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	engine, err := cfg.Engine()
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"prefix":  engine.Prefix(),
		"padding": cfg.Padding,
	}).Debug("configuration loaded")

	c.App.Metadata[runtimeKey] = &Runtime{Config: cfg, Engine: engine, Log: log}
	return nil
}

// GetRuntime retrieves the runtime prepared by the Before hook.
func GetRuntime(c *cli.Context) (*Runtime, error) {
	rt, ok := c.App.Metadata[runtimeKey].(*Runtime)
	if !ok {
		return nil, errors.New("runtime not initialised")
	}
	return rt, nil
}

func out(c *cli.Context) io.Writer {
	return c.App.Writer
}
