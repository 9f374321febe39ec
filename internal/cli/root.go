// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/pawshop/internal/app"
	"github.com/tomtom215/pawshop/internal/config"
	"github.com/tomtom215/pawshop/internal/logging"
)

// Output formats for --output.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Options customize NewRootCommand. Zero values load the configuration
// from disk and the environment.
type Options struct {
	// Config, when set, is used instead of loading one.
	Config *config.Config

	// AppOptions are passed to app.New.
	AppOptions []app.Option
}

// env is the state shared by every subcommand of one invocation.
type env struct {
	opts       Options
	configPath string
	logLevel   string
	output     string

	cfg *config.Config
}

// NewRootCommand builds the pawshop command tree.
func NewRootCommand(opts Options) *cobra.Command {
	e := &env{opts: opts}

	root := &cobra.Command{
		Use:   "pawshop",
		Short: "Pawshop storefront and back office client",
		Long: `Pawshop is a client for the Pawshop pet supply REST API.

It can run a local view host for a browser renderer (serve), or be used
from the terminal: sign in, then open any storefront or back office route
and print the screen it renders.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: e.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&e.configPath, "config", "", "config file (default: $"+config.ConfigPathEnvVar+" or ./config.yaml)")
	flags.StringVar(&e.logLevel, "log-level", "", "log level override: trace, debug, info, warn, error")
	flags.StringVarP(&e.output, "output", "o", OutputText, "output format: text or json")

	root.AddCommand(
		newServeCommand(e),
		newLoginCommand(e),
		newRegisterCommand(e),
		newLogoutCommand(e),
		newWhoamiCommand(e),
		newOpenCommand(e),
	)
	return root
}

// Execute runs the command tree against os.Args and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand(Options{}).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (e *env) setup(cmd *cobra.Command, _ []string) error {
	switch e.output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("unknown output format %q", e.output)
	}

	cfg := e.opts.Config
	if cfg == nil {
		var err error
		if e.configPath != "" {
			cfg, err = config.LoadFrom(e.configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}
	}
	e.cfg = cfg

	level := cfg.Logging.Level
	if e.logLevel != "" {
		if !logging.ValidLevel(e.logLevel) {
			return fmt.Errorf("unknown log level %q", e.logLevel)
		}
		level = e.logLevel
	}
	logging.Init(logging.Config{
		Level:     level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    cmd.ErrOrStderr(),
	})
	return nil
}

// withApp builds a client, restores its session and runs fn with it.
func (e *env) withApp(ctx context.Context, fn func(*app.App) error) error {
	a, err := app.New(ctx, e.cfg, e.opts.AppOptions...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			logging.Ctx(ctx).Warn().Err(cerr).Msg("Failed to close client")
		}
	}()
	if err := a.Start(ctx); err != nil {
		return err
	}
	return fn(a)
}

func (e *env) json() bool {
	return e.output == OutputJSON
}
