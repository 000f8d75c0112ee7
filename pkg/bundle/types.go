// File: pkg/bundle/types.go
package bundle

import (
	"errors"
	"strings"
)

// Error kinds returned by Run. The command line maps each kind to its own
// user-facing message.
var (
	// ErrInvalidPath means the output file could not be created because its
	// directory does not exist.
	ErrInvalidPath = errors.New("file path is invalid")
	// ErrInvalidInput covers every other failure: missing options, unreadable
	// sources, write errors.
	ErrInvalidInput = errors.New("the input not valid")
)

// Options holds the settings for one bundle run.
type Options struct {
	Output           string      // Destination path of the bundle file.
	Languages        string      // Comma-delimited language tags, or "all".
	Note             bool        // Precede each file with a provenance comment.
	Author           string      // Written as a leading comment when non-empty.
	RemoveEmptyLines bool        // Drop empty and whitespace-only source lines.
	Sort             string      // "", "name" or "type"; see ParseSortMode.
	Exclude          []string    // Extra ignore patterns, relative to the root.
	ExcludeMode      ExcludeMode // How build-output directories are detected.
}

// Result describes a completed run.
type Result struct {
	Output string   // Absolute path of the written bundle.
	Files  []string // Bundled files, relative to the working directory, in output order.
}

// SortMode controls the order in which selected files are written.
type SortMode int

const (
	SortNone SortMode = iota // Keep walk order.
	SortName                 // By base file name.
	SortType                 // By language tag.
)

// ParseSortMode interprets the --sort value. "type" in any case sorts by
// language; any other non-empty value sorts by name.
func ParseSortMode(raw string) SortMode {
	switch {
	case raw == "":
		return SortNone
	case strings.EqualFold(raw, "type"):
		return SortType
	default:
		return SortName
	}
}

func (m SortMode) String() string {
	switch m {
	case SortName:
		return "name"
	case SortType:
		return "type"
	default:
		return "none"
	}
}

// ExcludeMode selects how build-output directories are recognised.
type ExcludeMode string

const (
	// ExcludeSegment skips any directory named bin or debug (any case) below the root.
	ExcludeSegment ExcludeMode = "segment"
	// ExcludeSubstring skips any file whose absolute directory contains "bin"
	// or "debug" anywhere, case-insensitively.
	ExcludeSubstring ExcludeMode = "substring"
)

// ParseExcludeMode validates an exclusion mode name. Empty selects ExcludeSegment.
func ParseExcludeMode(raw string) (ExcludeMode, error) {
	switch ExcludeMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ExcludeSegment:
		return ExcludeSegment, nil
	case ExcludeSubstring:
		return ExcludeSubstring, nil
	default:
		return "", errors.New(`exclude mode must be "segment" or "substring"`)
	}
}

// commentPrefix starts every line the bundler adds itself.
const commentPrefix = "// "
