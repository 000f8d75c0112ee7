package cmd

import (
	"fmt"

	"codefuse/pkg/bundle"

	"github.com/spf13/cobra"
)

// optionFlags holds the flag values shared by bundle and create-rsp.
type optionFlags struct {
	output           string
	languages        string
	note             bool
	author           string
	removeEmptyLines bool
	sort             string
	exclude          []string
	excludeMode      string
}

func bindOptionFlags(cmd *cobra.Command, f *optionFlags) {
	flags := cmd.Flags()
	flags.StringVarP(&f.output, "output", "o", "", "File path and name of the bundle")
	flags.StringVarP(&f.languages, "language", "l", "", `Comma-separated languages to include, or "all"`)
	flags.BoolVarP(&f.note, "note", "n", false, "Precede each file with a comment naming its source path")
	flags.StringVarP(&f.author, "author", "a", "", "Name of the creator of the file")
	flags.BoolVarP(&f.removeEmptyLines, "remove-empty-lines", "r", false, "Remove empty lines from the source code")
	flags.StringVarP(&f.sort, "sort", "s", "", "Sort order (name/type)")
	flags.StringArrayVarP(&f.exclude, "exclude", "x", nil, "Ignore pattern for files to leave out (repeatable)")
	flags.StringVar(&f.excludeMode, "exclude-mode", string(bundle.ExcludeSegment),
		`Build output detection: "segment" skips bin/debug directories, "substring" skips any path containing bin or debug`)
}

// options converts the flag values into bundle options.
func (f *optionFlags) options() (bundle.Options, error) {
	mode, err := bundle.ParseExcludeMode(f.excludeMode)
	if err != nil {
		return bundle.Options{}, fmt.Errorf("invalid --exclude-mode: %w", err)
	}
	return bundle.Options{
		Output:           f.output,
		Languages:        f.languages,
		Note:             f.note,
		Author:           f.author,
		RemoveEmptyLines: f.removeEmptyLines,
		Sort:             f.sort,
		Exclude:          f.exclude,
		ExcludeMode:      mode,
	}, nil
}
