package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/namefocus/config"
	"github.com/revelaction/namefocus/proxy"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

// env is the state shared by the commands, set up before any of them runs.
type env struct {
	ui     UI
	cfg    *config.Config
	logger *slog.Logger
	pools  *Pool
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(ui).RunContext(ctx, os.Args); err != nil {
		fprintErr(ui.Err, err)
		stop()
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "namefocus: %v\n", err)
}

func newApp(ui UI) *cli.App {
	e := &env{ui: ui, pools: &Pool{}}

	return &cli.App{
		Name:                 "namefocus",
		Usage:                "replace generic \"name\" question foci with the entities they refer to",
		Writer:               ui.Out,
		ErrWriter:            ui.Err,
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultFile,
				Usage:   "TOML config file",
				EnvVars: []string{"NAMEFOCUS_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "doc-path",
				Aliases: []string{"d"},
				Usage:   "Path to docs directory or SQLite file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
		},
		Before: e.setup,
		After: func(*cli.Context) error {
			return e.pools.Close()
		},
		Commands: []*cli.Command{
			refineCmd(e),
			statCmd(e),
			sentenceCmd(e),
			importDocCmd(e),
			inspectCmd(e),
			versionCmd(e),
		},
	}
}

// setup loads the config, applies the global flags and builds the logger.
func (e *env) setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if c.IsSet("doc-path") {
		cfg.DocPath = c.String("doc-path")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(e.ui.Err, opts)
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(e.ui.Err, opts)
	}

	e.cfg = cfg
	e.logger = slog.New(handler)
	return nil
}

func (e *env) resolver() (*proxy.Resolver, error) {
	opts, err := e.cfg.ResolverOptions()
	if err != nil {
		return nil, err
	}
	return proxy.NewResolver(append(opts, proxy.WithLogger(e.logger))...), nil
}
