// Package cli is the portal command line. It plays the part of the view layer:
// every command builds an application context for one deployment, performs one
// action through it and renders the result.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/shiptrain/portal/config"
	"github.com/shiptrain/portal/internal/app"
	"github.com/shiptrain/portal/pkg/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Deployment string // "training" | "market"

	loadConfig func() (*config.Config, error)
	appOptions []app.Option
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ValidDeployments defines the deployments a command can target.
var ValidDeployments = []string{config.DeploymentTraining, config.DeploymentMarket}

// NewRootCommand creates the root command of the portal CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{loadConfig: config.Load})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portal",
		Short: "Training portal and resource marketplace client",
		Long: `Command line client for the ship training portal and the data resource marketplace.

Sessions are persisted per deployment, so a login survives between invocations.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if !slices.Contains(ValidDeployments, opts.Deployment) {
				return fmt.Errorf("invalid deployment %q: must be one of %v", opts.Deployment, ValidDeployments)
			}
			level := "warn"
			if opts.Verbose {
				level = "debug"
			}
			return logger.Initialize(logger.Config{
				Level:       level,
				Environment: "development",
				ServiceName: "portal-cli",
				Stderr:      true,
			})
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Deployment, "deployment", "d", config.DeploymentTraining, "deployment (training|market)")

	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewWhoamiCommand(opts))
	cmd.AddCommand(NewOpenCommand(opts))
	cmd.AddCommand(NewRoutesCommand(opts))
	cmd.AddCommand(NewScoresCommand(opts))
	cmd.AddCommand(NewFixturesCommand(opts))
	cmd.AddCommand(NewSampleCommand(opts))

	return cmd
}

func (o *RootOptions) config() (*config.Config, error) {
	load := o.loadConfig
	if load == nil {
		load = config.Load
	}
	return load()
}

// openApp builds the application context of the selected deployment
func (o *RootOptions) openApp(extra ...app.Option) (*app.Context, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	a, err := app.New(cfg, o.Deployment, append(slices.Clone(o.appOptions), extra...)...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to initialize "+o.Deployment+" client", err)
	}
	return a, nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}
