package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	jxsmoln "github.com/reoring/jxsmoln"
	"github.com/reoring/jxsmoln/i18n"
	"github.com/reoring/jxsmoln/tracelog"
)

const (
	envDriver   = "JXSMOLN_DRIVER"
	envLogLevel = "JXSMOLN_LOG_LEVEL"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	logLevel string
	trace    bool
	lang     string
	log      zerolog.Logger
}

func (g *globalOptions) tracer() jxsmoln.TraceFunc {
	if !g.trace {
		return nil
	}
	return tracelog.Zerolog(g.log)
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	root := &cobra.Command{
		Use:           "jxsmoln",
		Short:         "Convert between JSON and jxsmoln XML",
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return g.setup(c)
		},
	}
	fs := root.PersistentFlags()
	fs.StringVar(&g.logLevel, "log-level", envOr(envLogLevel, "info"), "log level (trace|debug|info|warn|error), env "+envLogLevel)
	fs.BoolVar(&g.trace, "trace", false, "log every cursor step of the codec (implies --log-level=debug)")
	fs.StringVar(&g.lang, "lang", "en", "language of error messages (en|ja)")

	root.AddCommand(newToXMLCmd(g), newToJSONCmd(g), newVersionCmd())
	return root
}

func (g *globalOptions) setup(c *cobra.Command) error {
	level, err := zerolog.ParseLevel(strings.ToLower(g.logLevel))
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", g.logLevel, err)
	}
	if g.trace && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}
	g.log = zerolog.New(zerolog.ConsoleWriter{Out: c.ErrOrStderr(), NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
	i18n.SetLanguage(g.lang)
	c.SilenceUsage = true
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// driverFlag selects a registered JSON driver by name.
type driverFlag struct{ name string }

var _ pflag.Value = (*driverFlag)(nil)

func (d *driverFlag) String() string { return d.name }
func (d *driverFlag) Type() string   { return "driver" }

func (d *driverFlag) Set(s string) error {
	if _, err := jxsmoln.DriverByName(s); err != nil {
		return err
	}
	d.name = s
	return nil
}

// resolve returns the explicit driver, or picks one from the file extension.
func (d *driverFlag) resolve(path string) (jxsmoln.JSONDriver, error) {
	name := d.name
	if name == "" {
		name = "json"
		switch strings.ToLower(extOf(path)) {
		case ".yaml", ".yml":
			name = "yaml"
		}
	}
	return jxsmoln.DriverByName(name)
}
