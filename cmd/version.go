// File: cmd/version.go
package cmd

import (
	"fmt"

	"codefuse/pkg/version"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewVersionCommand creates the version subcommand.
// The --short flag prints only the version number.
func NewVersionCommand() *cobra.Command {
	var short bool
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display the version of codefuse",
		Long:  `Display the current version information of the codefuse CLI tool.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := version.Get()
			out := cmd.OutOrStdout()

			switch {
			case short:
				fmt.Fprintln(out, v.Version)
			case format == formatYAML:
				enc := yaml.NewEncoder(out)
				if err := enc.Encode(v); err != nil {
					return fmt.Errorf("error encoding version: %w", err)
				}
				return enc.Close()
			case format == formatText:
				fmt.Fprintln(out, v.String())
			default:
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatText, formatYAML)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print the version number only")
	cmd.Flags().StringVar(&format, "format", formatText, "Output format (text/yaml)")

	return cmd
}
