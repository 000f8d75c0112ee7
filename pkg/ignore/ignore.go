// Package ignore compiles gitignore-style patterns into regular expressions and
// matches slash-separated relative paths against them.
package ignore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// FileName is the per-tree ignore file read from the bundle root.
const FileName = ".bundleignore"

// BuildOutputPatterns exclude compiler output directories. They are compiled
// case-insensitively so "Debug/" and "BIN/" match too.
var BuildOutputPatterns = []string{"bin/", "debug/"}

// Pattern is one compiled ignore line.
type Pattern struct {
	Regexp *regexp.Regexp // Compiled expression, anchored to the whole path.
	Negate bool           // Line started with '!'.
	Line   string         // Original line.
	Source string         // File the line came from, or "" for inline patterns.
	LineNo int            // 1-based line number within Source.
}

// Rules is an ordered list of patterns. Later patterns override earlier ones,
// so a negated pattern can re-include a path.
type Rules struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// New returns an empty rule set.
func New(logger *zap.Logger) *Rules {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Rules{logger: logger}
}

// Len returns the number of compiled patterns.
func (r *Rules) Len() int {
	return len(r.patterns)
}

// AddLines compiles case-sensitive pattern lines.
func (r *Rules) AddLines(lines ...string) {
	r.add("", false, lines)
}

// AddFoldedLines compiles pattern lines that match regardless of case.
func (r *Rules) AddFoldedLines(lines ...string) {
	r.add("", true, lines)
}

// AddFile compiles every line of an ignore file. A missing file is not an error.
func (r *Rules) AddFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", path))
			return nil
		}
		r.logger.Error("Failed to read ignore file", zap.String("filePath", path), zap.Error(err))
		return fmt.Errorf("failed to read ignore file %s: %w", path, err)
	}

	lines := strings.Split(string(content), "\n")
	before := len(r.patterns)
	r.add(path, false, lines)
	r.logger.Debug("Compiled ignore file",
		zap.String("filePath", path),
		zap.Int("lineCount", len(lines)),
		zap.Int("patternCount", len(r.patterns)-before))
	return nil
}

func (r *Rules) add(source string, foldCase bool, lines []string) {
	for i, line := range lines {
		re, negate, ok := parsePatternLine(line, foldCase)
		if !ok {
			continue
		}
		p := &Pattern{
			Regexp: re,
			Negate: negate,
			Line:   line,
			Source: source,
			LineNo: i + 1,
		}
		r.patterns = append(r.patterns, p)
		r.logger.Debug("Compiled ignore pattern",
			zap.String("source", source),
			zap.Int("lineNo", p.LineNo),
			zap.String("pattern", strings.TrimSpace(line)),
			zap.Bool("negate", negate))
	}
}

// MatchesPath reports whether path is ignored. Directories should be passed
// with a trailing slash so directory-only patterns apply to them.
func (r *Rules) MatchesPath(path string) bool {
	matched, _ := r.MatchesPathWithPattern(path)
	return matched
}

// MatchesPathWithPattern is MatchesPath that also returns the deciding pattern.
func (r *Rules) MatchesPathWithPattern(path string) (bool, *Pattern) {
	normalized := filepath.ToSlash(path)

	matched := false
	var decided *Pattern
	for _, p := range r.patterns {
		if p.Regexp.MatchString(normalized) {
			matched = !p.Negate
			decided = p
		}
	}
	return matched, decided
}

// parsePatternLine turns one ignore line into an anchored expression.
// ok is false for blank lines, comments and lines that fail to compile.
func parsePatternLine(line string, foldCase bool) (re *regexp.Regexp, negate bool, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, false, false
	}

	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = strings.TrimPrefix(trimmed, "!")
	}
	// "\#" and "\!" escape a literal leading character.
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}

	rooted := strings.HasPrefix(trimmed, "/")
	body := strings.TrimPrefix(trimmed, "/")
	if body == "" {
		return nil, false, false
	}

	expr := escapeSpecialChars(body)
	expr = handleDoubleStarPatterns(expr)
	expr = wildcardToRegex(expr)
	expr = anchorPattern(expr, body, rooted)
	if foldCase {
		expr = "(?i)" + expr
	}

	compiled, err := regexp.Compile(expr)
	if err != nil {
		return nil, false, false
	}
	return compiled, negate, true
}

var (
	doubleStarMiddle   = regexp.MustCompile(`/\*\*/`)
	doubleStarTrailing = regexp.MustCompile(`/\*\*$`)
	doubleStarLeading  = regexp.MustCompile(`^\*\*/`)
)

// escapeSpecialChars escapes regex metacharacters except '*', '?' and '/'.
func escapeSpecialChars(pattern string) string {
	for _, char := range `\.+()|^$[]{}` {
		pattern = strings.ReplaceAll(pattern, string(char), `\`+string(char))
	}
	return pattern
}

// handleDoubleStarPatterns rewrites '**' segments. The placeholders keep the
// single-star pass from touching them.
func handleDoubleStarPatterns(pattern string) string {
	pattern = doubleStarMiddle.ReplaceAllString(pattern, "/\x00MID\x00/")
	pattern = doubleStarTrailing.ReplaceAllString(pattern, "/\x00TAIL\x00")
	pattern = doubleStarLeading.ReplaceAllString(pattern, "\x00LEAD\x00/")
	return pattern
}

// wildcardToRegex converts '*' and '?' and expands the '**' placeholders.
func wildcardToRegex(pattern string) string {
	pattern = strings.ReplaceAll(pattern, "*", `[^/]*`)
	pattern = strings.ReplaceAll(pattern, "?", `[^/]`)
	pattern = strings.ReplaceAll(pattern, "/\x00MID\x00/", `(/|/.+/)`)
	pattern = strings.ReplaceAll(pattern, "/\x00TAIL\x00", `(/.*)?`)
	pattern = strings.ReplaceAll(pattern, "\x00LEAD\x00/", `(.*/)?`)
	return pattern
}

// anchorPattern anchors the expression to the whole path. Unrooted patterns
// may match at any directory depth.
func anchorPattern(pattern, original string, rooted bool) string {
	if strings.HasSuffix(original, "/") {
		pattern += ".*$"
	} else {
		pattern += "(/.*)?$"
	}
	if rooted {
		return "^" + pattern
	}
	return "^(.*/)?" + pattern
}
