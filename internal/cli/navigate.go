package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shiptrain/portal/internal/app"
	"github.com/shiptrain/portal/internal/router"
)

// NewOpenCommand creates the open subcommand.
func NewOpenCommand(opts *RootOptions) *cobra.Command {
	var enforceRoles bool

	cmd := &cobra.Command{
		Use:   "open <path>",
		Short: "Navigate to a client route through the login guard",
		Example: `  portal open /employee/scores
  portal open /market/42 -d market`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(opts, args[0], enforceRoles, cmd)
		},
	}

	cmd.Flags().BoolVar(&enforceRoles, "enforce-roles", false, "also reject routes declared for another role")

	return cmd
}

type openResult struct {
	Target   string        `json:"target"`
	Outcome  string        `json:"outcome"`
	Location string        `json:"location"`
	Route    string        `json:"route,omitempty"`
	View     string        `json:"view,omitempty"`
	Params   router.Params `json:"params,omitempty"`
}

func runOpen(opts *RootOptions, target string, enforceRoles bool, cmd *cobra.Command) error {
	var extra []app.Option
	if enforceRoles {
		extra = append(extra, app.WithGuardOptions(router.WithRoleEnforcement()))
	}
	a, err := opts.openApp(extra...)
	if err != nil {
		return err
	}
	defer a.Close()

	d := a.Navigator.Push(target)
	res := openResult{
		Target:   target,
		Outcome:  string(d.Outcome),
		Location: a.Navigator.Current(),
		Params:   d.Params,
	}
	if d.Matched {
		res.Route, res.View = d.Route.Name, d.Route.View
	}

	f := opts.formatter(cmd)
	if err := f.Success(res, func(w io.Writer) {
		switch d.Outcome {
		case router.Allowed:
			if !d.Matched {
				fmt.Fprintf(w, "%s: no such route\n", target)
				return
			}
			fmt.Fprintf(w, "%s -> %s\n", res.Location, res.View)
		case router.RedirectedToLogin:
			fmt.Fprintf(w, "%s requires login, redirected to %s\n", target, res.Location)
		case router.Forbidden:
			fmt.Fprintf(w, "%s is not available to role %q, redirected to %s\n", target, a.Session.UserRole(), res.Location)
		}
	}); err != nil {
		return err
	}

	if d.Outcome != router.Allowed {
		return NewExitError(ExitFailure, "navigation to "+target+" was redirected")
	}
	return nil
}

// NewRoutesCommand creates the routes subcommand.
func NewRoutesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "routes",
		Short:         "List the client routes of the deployment",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutes(opts, cmd)
		},
	}
}

func runRoutes(opts *RootOptions, cmd *cobra.Command) error {
	table, err := router.LoadTable(opts.Deployment)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load route table", err)
	}

	routes := table.Routes()
	return opts.formatter(cmd).Success(routes, func(w io.Writer) {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tPATH\tVIEW\tAUTH\tROLE")
		for _, r := range routes {
			auth := "-"
			if r.RequiresAuth {
				auth = "yes"
			}
			role := r.Role
			if role == "" {
				role = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Name, r.Path, r.View, auth, role)
		}
		tw.Flush()
	})
}
