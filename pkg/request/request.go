// Package request builds and reads response files: saved command lines that
// reproduce a bundle invocation.
package request

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"codefuse/pkg/bundle"
	"codefuse/pkg/filelock"

	"github.com/kballard/go-shellquote"
)

// FileName is the response file written by create-rsp.
const FileName = "response_file.rsp"

// Command renders opts as a single "bundle" command line. Unset string options
// are left out and booleans use the --flag=value form so each option is one
// or two tokens. Values are shell-quoted only when they need it.
func Command(opts bundle.Options) string {
	parts := []string{"bundle"}
	addValue := func(flag, value string) {
		if value != "" {
			parts = append(parts, flag, value)
		}
	}

	addValue("--output", opts.Output)
	addValue("--language", opts.Languages)
	parts = append(parts, "--note="+strconv.FormatBool(opts.Note))
	addValue("--author", opts.Author)
	parts = append(parts, "--remove-empty-lines="+strconv.FormatBool(opts.RemoveEmptyLines))
	addValue("--sort", opts.Sort)
	for _, pattern := range opts.Exclude {
		addValue("--exclude", pattern)
	}
	if opts.ExcludeMode != "" && opts.ExcludeMode != bundle.ExcludeSegment {
		addValue("--exclude-mode", string(opts.ExcludeMode))
	}
	return shellquote.Join(parts...)
}

// Write saves the command line for opts as FileName in dir and returns the
// path written. The write is atomic and guarded by a lock file.
func Write(dir string, opts bundle.Options) (string, error) {
	path := filepath.Join(dir, FileName)
	if err := filelock.LockAndWrite(path, []byte(Command(opts))); err != nil {
		return "", fmt.Errorf("failed to write response file: %w", err)
	}
	return path, nil
}

// Split tokenizes response file content with POSIX shell word rules, so
// anything Command produced comes back as the same arguments. Lines whose
// first non-blank character is '#' are comments.
func Split(content string) ([]string, error) {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}

	tokens, err := shellquote.Split(strings.Join(kept, "\n"))
	if err != nil {
		return nil, fmt.Errorf("failed to split command line: %w", err)
	}
	return tokens, nil
}
