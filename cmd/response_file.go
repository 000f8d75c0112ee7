package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codefuse/pkg/request"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ExpandArgs replaces every "@path" argument with the tokens read from that
// file. Relative paths are resolved against workDir. A lone "@" is kept as is,
// and so is an argument that is the value of a preceding flag of root's
// command tree, as in "--author @ada".
func ExpandArgs(args []string, workDir string, root *cobra.Command) ([]string, error) {
	valued := valueFlags(root)

	out := make([]string, 0, len(args))
	for _, arg := range args {
		isValue := len(out) > 0 && valued.expectsValue(out[len(out)-1])
		if isValue || !strings.HasPrefix(arg, "@") || len(arg) == 1 {
			out = append(out, arg)
			continue
		}

		path := arg[1:]
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read response file %s: %w", arg[1:], err)
		}
		tokens, err := request.Split(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse response file %s: %w", arg[1:], err)
		}
		out = append(out, tokens...)
	}
	return out, nil
}

// flagSet records which long names and shorthands take a separate value.
type flagSet struct {
	long  map[string]bool
	short map[string]bool
}

func valueFlags(root *cobra.Command) flagSet {
	fs := flagSet{long: map[string]bool{}, short: map[string]bool{}}
	if root == nil {
		return fs
	}

	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		visit := func(f *pflag.Flag) {
			// Bool flags carry NoOptDefVal and never consume the next argument.
			// A name shared by several subcommands counts if any of them takes a value.
			takesValue := f.NoOptDefVal == ""
			fs.long[f.Name] = fs.long[f.Name] || takesValue
			if f.Shorthand != "" {
				fs.short[f.Shorthand] = fs.short[f.Shorthand] || takesValue
			}
		}
		c.Flags().VisitAll(visit)
		c.PersistentFlags().VisitAll(visit)
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(root)
	return fs
}

// expectsValue reports whether the argument after prev is consumed as prev's
// value.
func (fs flagSet) expectsValue(prev string) bool {
	switch {
	case prev == "--" || !strings.HasPrefix(prev, "-") || len(prev) == 1:
		return false
	case strings.HasPrefix(prev, "--"):
		name := prev[2:]
		return !strings.Contains(name, "=") && fs.long[name]
	}

	// Shorthand cluster such as "-na": the first value flag swallows the rest.
	cluster := prev[1:]
	for i, r := range cluster {
		if fs.short[string(r)] {
			return i == len(cluster)-1
		}
	}
	return false
}
