package cmd

import (
	"errors"
	"strings"

	"codefuse/pkg/bundle"
	"codefuse/pkg/display"
	"codefuse/pkg/language"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewBundleCommand creates the bundle subcommand.
func NewBundleCommand(app *App) *cobra.Command {
	var (
		flags   optionFlags
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Bundle code files to a single file",
		Long: `Bundle walks the current directory recursively and writes every file whose
language is selected into the output file. Files under bin and debug
directories are skipped.

Supported languages: ` + supportedLanguages() + `.
Use "all" to select all of them.

Exit code: 0 on success, 1 if the bundle could not be written`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBundle(app, &flags, verbose, display.NewPrinter(cmd.OutOrStdout()))
		},
	}
	bindOptionFlags(cmd, &flags)
	cmd.Flags().BoolVar(&verbose, "verbose", false, "List the bundled files after the status line")

	return cmd
}

func supportedLanguages() string {
	tags := language.Tags()
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = string(tag)
	}
	return strings.Join(names, ", ")
}

func runBundle(app *App, flags *optionFlags, verbose bool, printer *display.Printer) error {
	opts, err := flags.options()
	if err != nil {
		printer.Error("the input not valid!")
		return reported(err)
	}

	res, err := bundle.Run(app.WorkDir, opts, app.Logger)
	if err != nil {
		app.Logger.Error("Bundle failed", zap.Error(err))
		if errors.Is(err, bundle.ErrInvalidPath) {
			printer.Error("File path is invalid")
		} else {
			printer.Error("the input not valid!")
		}
		return reported(err)
	}

	app.Logger.Debug("Bundled files", zap.Strings("files", res.Files))
	printer.Success("Files bundled and saved at: %s", res.Output)
	if verbose {
		for _, f := range res.Files {
			printer.Plain("  %s", f)
		}
		printer.Plain("%d file(s)", len(res.Files))
	}
	return nil
}
