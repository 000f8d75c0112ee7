package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"codefuse/pkg/display"
	"codefuse/pkg/logging"
	"codefuse/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App carries the process state the commands work against, so tests can
// substitute a directory, streams and logger.
type App struct {
	WorkDir string      // Directory that is walked and where the response file goes.
	In      io.Reader   // Answers for interactive prompts.
	Out     io.Writer   // Status lines and prompt labels.
	Logger  *zap.Logger // Built by the root command when nil.
}

// NewApp returns an App bound to the current process.
func NewApp() (*App, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return &App{WorkDir: wd, In: os.Stdin, Out: os.Stdout}, nil
}

// reportedError marks an error whose message the command already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// NewRootCommand creates the codefuse command tree.
func NewRootCommand(app *App) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   version.AppName,
		Short: "codefuse bundles source files into a single file",
		Long: `codefuse walks the current directory, selects source files by language and
concatenates them into one bundle file, optionally with provenance comments.

Arguments of the form @file are replaced by the contents of that file, so a
response file written by create-rsp can be replayed with: codefuse @response_file.rsp`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Logger != nil {
				return nil
			}
			logger, err := logging.Setup(debug, version.AppName, version.Version)
			app.Logger = logger
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
	}
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging on stderr")

	cmd.AddCommand(NewBundleCommand(app))
	cmd.AddCommand(NewCreateRspCommand(app))
	cmd.AddCommand(NewLanguagesCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// Execute expands @file arguments and runs the command tree. Errors the
// commands did not already report are printed as a status line.
func Execute(app *App, args []string) error {
	printer := display.NewPrinter(app.Out)

	root := NewRootCommand(app)
	expanded, err := ExpandArgs(args, app.WorkDir, root)
	if err != nil {
		printer.Error("%v", err)
		return err
	}

	root.SetArgs(expanded)
	root.SetIn(app.In)
	root.SetOut(app.Out)
	root.SetErr(app.Out)

	err = root.Execute()
	if err != nil {
		var already *reportedError
		if !errors.As(err, &already) {
			printer.Error("%v", err)
		}
		if app.Logger != nil {
			app.Logger.Debug("codefuse execution failed", zap.Error(err))
		}
	}
	return err
}
