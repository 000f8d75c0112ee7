package cmd

import (
	"fmt"
	"text/tabwriter"

	"codefuse/pkg/language"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

// languageEntry is one row of the extension table.
type languageEntry struct {
	Extension string `yaml:"extension"`
	Language  string `yaml:"language"`
}

func languageEntries() []languageEntry {
	table := language.Table()
	entries := make([]languageEntry, 0, len(table))
	for _, ext := range language.Extensions() {
		entries = append(entries, languageEntry{Extension: ext, Language: string(table[ext])})
	}
	return entries
}

// NewLanguagesCommand creates the languages subcommand, which lists the
// extensions bundle recognises.
func NewLanguagesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List the supported file extensions and their language names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			entries := languageEntries()

			switch format {
			case formatText:
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "EXTENSION\tLANGUAGE")
				for _, e := range entries {
					fmt.Fprintf(tw, "%s\t%s\n", e.Extension, e.Language)
				}
				return tw.Flush()
			case formatYAML:
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(entries); err != nil {
					return fmt.Errorf("error encoding languages: %w", err)
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatText, formatYAML)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format (text/yaml)")

	return cmd
}
