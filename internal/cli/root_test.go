package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	assert.Equal(t, "portal", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	expected := []string{"login", "logout", "whoami", "open", "routes", "scores", "fixtures", "sample"}
	for _, name := range expected {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, "command %s", name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestRootCommandFlags(t *testing.T) {
	cmd := NewRootCommand()

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	deployment := cmd.PersistentFlags().Lookup("deployment")
	require.NotNil(t, deployment)
	assert.Equal(t, "training", deployment.DefValue)
	assert.Equal(t, "d", deployment.Shorthand)

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
}

func TestLoginCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	login, _, err := cmd.Find([]string{"login"})
	require.NoError(t, err)

	password := login.Flags().Lookup("password")
	require.NotNil(t, password)
	assert.Equal(t, "p", password.Shorthand)
}

func TestSampleCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	sample, _, err := cmd.Find([]string{"sample"})
	require.NoError(t, err)

	output := sample.Flags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "", output.DefValue)
}

func TestFixturesSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"scores", "types", "today"} {
		sub, _, err := cmd.Find([]string{"fixtures", name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestInvalidFormatRejected(t *testing.T) {
	cmd := newRootCommand(&RootOptions{})
	cmd.SetArgs([]string{"routes", "--format", "yaml"})
	cmd.SetOut(new(nopWriter))
	cmd.SetErr(new(nopWriter))

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestInvalidDeploymentRejected(t *testing.T) {
	cmd := newRootCommand(&RootOptions{})
	cmd.SetArgs([]string{"routes", "-d", "shop"})
	cmd.SetOut(new(nopWriter))
	cmd.SetErr(new(nopWriter))

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid deployment")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
