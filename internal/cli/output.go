package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shiptrain/portal/internal/apiclient"
	"github.com/shiptrain/portal/internal/app"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // The server or guard rejected the action
	ExitCommandError = 2 // Bad arguments, configuration or local storage
)

// Error codes reported in JSON output
const (
	ErrCodeRequest      = "E001" // rejected envelope or transport failure
	ErrCodeUnauthorized = "E002" // session missing or expired
	ErrCodeForbidden    = "E003" // guard refused navigation
	ErrCodeLocal        = "E004" // local failure (files, storage)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // verbose/diagnostic output; defaults to Writer
	Verbose   bool
}

// CLIResponse is the JSON output shape of every command.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Redirect is where the session expiry sent navigation, if it happened
	Redirect string `json:"redirect,omitempty"`
}

// Success outputs data. In text mode text renders it; a nil text prints data with %v.
func (f *OutputFormatter) Success(data any, text func(w io.Writer)) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	if text != nil {
		text(f.Writer)
		return nil
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(e CLIError) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "error", Error: &e})
	}
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", e.Code, e.Message)
	if e.Redirect != "" {
		fmt.Fprintf(f.Writer, "Session expired, navigated to %s\n", e.Redirect)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// requestFailed renders a failed API call and returns the matching ExitError.
// A 401 from either shape has already cleared the session and moved the
// navigator to the login route; that redirect is reported.
func requestFailed(f *OutputFormatter, a *app.Context, err error) error {
	e := CLIError{Code: ErrCodeRequest, Message: apiclient.Message(err)}
	if apiclient.IsUnauthorized(err) {
		e.Code = ErrCodeUnauthorized
		e.Redirect = a.Navigator.Current()
	}
	if outErr := f.Error(e); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitFailure, e.Message, err)
}

// notLoggedIn renders the local "no session" failure
func notLoggedIn(f *OutputFormatter, a *app.Context) error {
	msg := "not logged in, run: portal login <username> -p <password> -d " + a.Deployment.Name
	if err := f.Error(CLIError{Code: ErrCodeUnauthorized, Message: msg}); err != nil {
		return err
	}
	return NewExitError(ExitFailure, msg)
}
