// Package language maps source file extensions to the language tags used for
// selecting and ordering files in a bundle.
package language

import (
	"path/filepath"
	"sort"
	"strings"
)

// Tag identifies a programming language family. The zero value is the tag of
// every unsupported extension.
type Tag string

// Supported language tags.
const (
	Unknown    Tag = ""
	CSharp     Tag = "csharp"
	SQL        Tag = "sql"
	HTML       Tag = "html"
	JavaScript Tag = "javascript"
	Python     Tag = "python"
	Java       Tag = "java"
	CPP        Tag = "cpp"
	TypeScript Tag = "typescript"
	Assembly   Tag = "assembly"
	C          Tag = "c"
	React      Tag = "react"
)

// All is the sentinel token that selects every file with a known tag.
const All = "all"

// extensionTable is read-only after init. Keys are case-sensitive.
var extensionTable = map[string]Tag{
	".cs":   CSharp,
	".sql":  SQL,
	".html": HTML,
	".js":   JavaScript,
	".py":   Python,
	".java": Java,
	".cpp":  CPP,
	".ts":   TypeScript,
	".asm":  Assembly,
	".c":    C,
	".jsx":  React,
}

// Classify returns the tag for a file extension including its leading dot.
// Unsupported extensions return Unknown.
func Classify(ext string) Tag {
	return extensionTable[ext]
}

// ClassifyPath classifies a file by the extension of its path.
func ClassifyPath(path string) Tag {
	return Classify(filepath.Ext(path))
}

// Table returns a copy of the extension-to-tag table.
func Table() map[string]Tag {
	out := make(map[string]Tag, len(extensionTable))
	for ext, tag := range extensionTable {
		out[ext] = tag
	}
	return out
}

// Extensions returns the supported extensions in lexicographic order.
func Extensions() []string {
	exts := make([]string, 0, len(extensionTable))
	for ext := range extensionTable {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Tags returns the known tags in lexicographic order.
func Tags() []Tag {
	tags := make([]Tag, 0, len(extensionTable))
	for _, tag := range extensionTable {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Set is a parsed, comma-delimited language selection such as "python,c" or "all".
type Set struct {
	all    bool
	tokens map[string]struct{}
}

// ParseSet splits raw on commas. Tokens are trimmed of surrounding whitespace
// and compared case-sensitively; empty tokens are dropped.
func ParseSet(raw string) Set {
	s := Set{tokens: make(map[string]struct{})}
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if tok == All {
			s.all = true
		}
		s.tokens[tok] = struct{}{}
	}
	return s
}

// Empty reports whether the set names no languages at all.
func (s Set) Empty() bool {
	return len(s.tokens) == 0
}

// Matches reports whether a file with the given tag is selected.
// Unknown never matches, not even under "all".
func (s Set) Matches(tag Tag) bool {
	if tag == Unknown {
		return false
	}
	if s.all {
		return true
	}
	_, ok := s.tokens[string(tag)]
	return ok
}
