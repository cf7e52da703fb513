package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shiptrain/portal/config"
)

// NewSampleCommand creates the sample subcommand.
func NewSampleCommand(opts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sample <resource-id>",
		Short: "Download a marketplace resource's sample file",
		Example: `  portal sample 1 -d market
  portal sample 1 -d market -o positions.csv`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(cmd.Context(), opts, args[0], output, cmd)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: the server's filename)")

	return cmd
}

type sampleResult struct {
	ResourceID  string `json:"resourceId"`
	File        string `json:"file"`
	ContentType string `json:"contentType"`
	Bytes       int    `json:"bytes"`
}

func runSample(ctx context.Context, opts *RootOptions, id, output string, cmd *cobra.Command) error {
	if opts.Deployment != config.DeploymentMarket {
		return NewExitError(ExitCommandError, "samples are only available on the market deployment")
	}

	a, err := opts.openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	f := opts.formatter(cmd)
	resp, err := a.Market.Market.ResourceSample(contextOrBackground(ctx), id)
	if err != nil {
		return requestFailed(f, a, err)
	}

	if output == "" {
		output = filepath.Base(resp.Filename())
		if output == "." || output == string(filepath.Separator) {
			output = "sample-" + id
		}
	}
	f.VerboseLog("Writing %d bytes to %s", len(resp.Body), output)
	if err := os.WriteFile(output, resp.Body, 0o600); err != nil {
		if outErr := f.Error(CLIError{Code: ErrCodeLocal, Message: err.Error()}); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "failed to write sample", err)
	}

	res := sampleResult{ResourceID: id, File: output, ContentType: resp.ContentType(), Bytes: len(resp.Body)}
	return f.Success(res, func(w io.Writer) {
		fmt.Fprintf(w, "Saved %s (%s, %d bytes)\n", res.File, res.ContentType, res.Bytes)
	})
}
