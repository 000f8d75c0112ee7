package cmd

import (
	"codefuse/pkg/bundle"
	"codefuse/pkg/display"
	"codefuse/pkg/prompt"
	"codefuse/pkg/request"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Prompt labels, asked in this order.
const (
	labelOutput           = "Output file path and name: "
	labelLanguages        = "Programming languages (comma-separated): "
	labelNote             = "Include source code comments (true/false): "
	labelAuthor           = "Name of the creator of the file: "
	labelRemoveEmptyLines = "Remove empty lines from the source code (true/false): "
	labelSort             = "Sort order (name/type): "
)

// NewCreateRspCommand creates the create-rsp subcommand.
func NewCreateRspCommand(app *App) *cobra.Command {
	var flags optionFlags

	cmd := &cobra.Command{
		Use:   "create-rsp",
		Short: "Create a response file with a ready command",
		Long: `create-rsp asks for each bundle option on standard input and saves the
resulting bundle command to ` + request.FileName + ` in the current directory.
Flags given on the command line become the default answers; an empty answer
keeps the default.

Replay the saved command with: codefuse @` + request.FileName,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := display.NewPrinter(cmd.OutOrStdout())

			defaults, err := flags.options()
			if err != nil {
				printer.Error("%s", err.Error())
				return reported(err)
			}

			opts, err := askOptions(prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()), defaults)
			if err != nil {
				app.Logger.Error("Failed to read options", zap.Error(err))
				printer.Error("%s", err.Error())
				return reported(err)
			}

			path, err := request.Write(app.WorkDir, opts)
			if err != nil {
				app.Logger.Error("Failed to write response file", zap.Error(err))
				printer.Error("%s", err.Error())
				return reported(err)
			}

			app.Logger.Debug("Wrote response file", zap.String("path", path), zap.String("command", request.Command(opts)))
			printer.Success("Response file created successfully: %s", request.FileName)
			return nil
		},
	}
	bindOptionFlags(cmd, &flags)

	return cmd
}

// askOptions prompts for every option in turn, offering def as the defaults.
// Exclude patterns are not asked for and pass through unchanged.
func askOptions(p *prompt.Prompter, def bundle.Options) (bundle.Options, error) {
	opts := def
	var err error

	if opts.Output, err = p.Path(labelOutput, def.Output); err != nil {
		return bundle.Options{}, err
	}
	if opts.Languages, err = p.String(labelLanguages, def.Languages); err != nil {
		return bundle.Options{}, err
	}
	if opts.Note, err = p.Bool(labelNote, def.Note); err != nil {
		return bundle.Options{}, err
	}
	if opts.Author, err = p.String(labelAuthor, def.Author); err != nil {
		return bundle.Options{}, err
	}
	if opts.RemoveEmptyLines, err = p.Bool(labelRemoveEmptyLines, def.RemoveEmptyLines); err != nil {
		return bundle.Options{}, err
	}
	if opts.Sort, err = p.String(labelSort, def.Sort); err != nil {
		return bundle.Options{}, err
	}
	return opts, nil
}
