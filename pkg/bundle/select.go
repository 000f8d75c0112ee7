// File: pkg/bundle/select.go
package bundle

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"codefuse/pkg/ignore"
	"codefuse/pkg/language"

	"go.uber.org/zap"
)

// Select walks root and returns the absolute paths of the regular files that
// pass the exclusion rules and whose language is in opts.Languages. Paths come
// back in walk order (lexical within each directory).
func Select(root string, opts Options, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root %s: %w", absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", absRoot)
	}

	mode := opts.ExcludeMode
	if mode == "" {
		mode = ExcludeSegment
	}
	rules, err := loadRules(absRoot, mode, opts.Exclude, logger)
	if err != nil {
		return nil, err
	}

	langs := language.ParseSet(opts.Languages)
	if langs.Empty() {
		logger.Warn("No languages requested; the bundle will contain no files")
	}

	skip := ""
	if opts.Output != "" {
		skip = resolve(absRoot, opts.Output)
	}

	logger.Debug("Starting file selection",
		zap.String("root", absRoot),
		zap.String("languages", opts.Languages),
		zap.String("excludeMode", string(mode)),
		zap.Int("ignorePatterns", rules.Len()))

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() && path != absRoot {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, _ := filepath.Rel(absRoot, path)
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			if ignored, p := rules.MatchesPathWithPattern(relPath + "/"); ignored {
				logger.Debug("Skipping ignored directory", append(patternFields(p), zap.String("directory", relPath))...)
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if ignored, p := rules.MatchesPathWithPattern(relPath); ignored {
			logger.Debug("Skipping ignored file", append(patternFields(p), zap.String("file", relPath))...)
			return nil
		}
		if mode == ExcludeSubstring && inBuildOutput(filepath.Dir(path)) {
			logger.Debug("Skipping file in build output directory", zap.String("file", relPath))
			return nil
		}
		if path == skip {
			logger.Debug("Skipping the bundle output file", zap.String("file", relPath))
			return nil
		}

		tag := language.ClassifyPath(path)
		if !langs.Matches(tag) {
			return nil
		}

		files = append(files, path)
		logger.Debug("Selected file", zap.String("file", relPath), zap.String("language", string(tag)))
		return nil
	})
	if err != nil {
		logger.Error("Error during file traversal", zap.Error(err))
		return files, fmt.Errorf("failed to walk %s: %w", absRoot, err)
	}

	logger.Debug("Completed file selection", zap.Int("selectedFiles", len(files)))
	return files, nil
}

// loadRules assembles the ignore rules for a walk: build-output directories
// (segment mode only), the root's ignore file, then command-line patterns.
func loadRules(root string, mode ExcludeMode, extra []string, logger *zap.Logger) (*ignore.Rules, error) {
	rules := ignore.New(logger)
	if mode == ExcludeSegment {
		rules.AddFoldedLines(ignore.BuildOutputPatterns...)
	}
	if err := rules.AddFile(filepath.Join(root, ignore.FileName)); err != nil {
		return nil, fmt.Errorf("failed to load ignore patterns: %w", err)
	}
	if len(extra) > 0 {
		rules.AddLines(extra...)
		logger.Debug("Added command-line ignore patterns", zap.Int("count", len(extra)))
	}
	return rules, nil
}

// patternFields describes the ignore line that excluded a path.
func patternFields(p *ignore.Pattern) []zap.Field {
	fields := []zap.Field{zap.String("pattern", strings.TrimSpace(p.Line))}
	if p.Source != "" {
		fields = append(fields, zap.String("source", p.Source), zap.Int("lineNo", p.LineNo))
	}
	return fields
}

// inBuildOutput is the legacy substring heuristic: "cabinet" and "binder"
// count as build output.
func inBuildOutput(dir string) bool {
	lower := strings.ToLower(dir)
	return strings.Contains(lower, "bin") || strings.Contains(lower, "debug")
}

// resolve makes path absolute relative to base.
func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
