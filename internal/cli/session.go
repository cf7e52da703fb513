package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shiptrain/portal/internal/apiclient"
	"github.com/shiptrain/portal/internal/session"
)

// NewLoginCommand creates the login subcommand.
func NewLoginCommand(opts *RootOptions) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and persist the session",
		Example: `  portal login employee -p 123456
  portal login teacher -p 123456 -d market`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.Context(), opts, args[0], password, cmd)
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")

	return cmd
}

func runLogin(ctx context.Context, opts *RootOptions, username, password string, cmd *cobra.Command) error {
	if password == "" {
		return NewExitError(ExitCommandError, "password is required (--password)")
	}

	a, err := opts.openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	f := opts.formatter(cmd)
	f.VerboseLog("Logging in to %s as %s", a.Deployment.BaseURL, username)

	profile, err := a.Login(contextOrBackground(ctx), username, password)
	if err != nil {
		return requestFailed(f, a, err)
	}

	return f.Success(profile, func(w io.Writer) {
		fmt.Fprintf(w, "Logged in to %s as %s", a.Deployment.Name, profile.DisplayName())
		if profile.RoleDisplay != "" {
			fmt.Fprintf(w, " (%s)", profile.RoleDisplay)
		}
		fmt.Fprintln(w)
	})
}

// NewLogoutCommand creates the logout subcommand.
func NewLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "logout",
		Short:         "End the session locally and on the server",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(cmd.Context(), opts, cmd)
		},
	}
}

func runLogout(ctx context.Context, opts *RootOptions, cmd *cobra.Command) error {
	a, err := opts.openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	f := opts.formatter(cmd)
	wasLoggedIn := a.Session.IsLoggedIn()
	if err := a.Logout(contextOrBackground(ctx)); err != nil {
		return WrapExitError(ExitCommandError, "failed to clear session", err)
	}

	result := map[string]bool{"wasLoggedIn": wasLoggedIn}
	return f.Success(result, func(w io.Writer) {
		if wasLoggedIn {
			fmt.Fprintln(w, "Logged out")
			return
		}
		fmt.Fprintln(w, "Not logged in")
	})
}

// NewWhoamiCommand creates the whoami subcommand.
func NewWhoamiCommand(opts *RootOptions) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user",
		Long: `Show the persisted user profile.

With --remote the server is asked instead, which also verifies the stored credential.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(cmd.Context(), opts, remote, cmd)
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "ask the server for the current user")

	return cmd
}

func runWhoami(ctx context.Context, opts *RootOptions, remote bool, cmd *cobra.Command) error {
	a, err := opts.openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	f := opts.formatter(cmd)
	if !a.Session.IsLoggedIn() {
		return notLoggedIn(f, a)
	}

	if !remote {
		profile := a.Session.Profile()
		return f.Success(profile, func(w io.Writer) {
			printProfile(w, profile)
		})
	}

	ctx = contextOrBackground(ctx)
	var env *apiclient.Envelope
	switch {
	case a.Training != nil:
		env, err = a.Training.Auth.CurrentUser(ctx)
	case a.Market != nil:
		env, err = a.Market.Auth.CurrentUser(ctx)
	}
	if err != nil {
		return requestFailed(f, a, err)
	}

	user, err := apiclient.Decode[map[string]any](env)
	if err != nil {
		return requestFailed(f, a, err)
	}
	return f.Success(user, func(w io.Writer) {
		printFields(w, user)
	})
}

func printProfile(w io.Writer, p session.Profile) {
	fmt.Fprintf(w, "%s (%s)\n", p.DisplayName(), p.Username)
	if p.RoleDisplay != "" || p.Role != "" {
		fmt.Fprintf(w, "role: %s %s\n", p.Role, p.RoleDisplay)
	}
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
