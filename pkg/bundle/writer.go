// File: pkg/bundle/writer.go
package bundle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Write streams the bundle for paths to w. workDir is the directory that
// provenance comments are relative to. Files are read one at a time.
func Write(w io.Writer, workDir string, paths []string, opts Options, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	bw := bufio.NewWriter(w)

	if opts.Author != "" {
		if err := writeLine(bw, commentPrefix+"Created by: "+opts.Author); err != nil {
			return fmt.Errorf("failed to write author line: %w", err)
		}
	}

	for _, path := range paths {
		rel := relativePath(workDir, path)
		if opts.Note {
			if err := writeLine(bw, commentPrefix+"Source code from: "+rel); err != nil {
				return fmt.Errorf("failed to write provenance line: %w", err)
			}
		}

		n, err := copyLines(bw, path, opts.RemoveEmptyLines)
		if err != nil {
			logger.Error("Failed to copy source file", zap.String("file", rel), zap.Error(err))
			return err
		}
		logger.Debug("Bundled file", zap.String("file", rel), zap.Int("lines", n))

		// One separator per file, even when it contributed nothing.
		if err := writeLine(bw, ""); err != nil {
			return fmt.Errorf("failed to write separator: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// copyLines appends the lines of the file at path to w and returns how many
// were written. Lines end at "\n", "\r\n" or a lone "\r", and a UTF-8 byte
// order mark at the start of the file is dropped.
func copyLines(w *bufio.Writer, path string, removeEmpty bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("error reading file %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	written := 0
	for first := true; ; first = false {
		line, ok, err := readLine(r)
		if err != nil {
			return written, fmt.Errorf("error reading file %s: %w", path, err)
		}
		if !ok {
			break
		}
		if first {
			line = strings.TrimPrefix(line, byteOrderMark)
		}

		if !removeEmpty || strings.TrimSpace(line) != "" {
			if err := writeLine(w, line); err != nil {
				return written, fmt.Errorf("failed to write content of %s: %w", path, err)
			}
			written++
		}
	}
	return written, nil
}

const byteOrderMark = "\ufeff"

// readLine returns the next line without its terminator. ok is false once
// the input is exhausted; a final line with no terminator is still returned.
func readLine(r *bufio.Reader) (line string, ok bool, err error) {
	var b strings.Builder
	for {
		c, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			return b.String(), b.Len() > 0, nil
		}
		if err != nil {
			return "", false, err
		}

		switch c {
		case '\n':
			return b.String(), true, nil
		case '\r':
			next, err := r.ReadByte()
			if err == nil && next != '\n' {
				err = r.UnreadByte()
			}
			if err != nil && !errors.Is(err, io.EOF) {
				return "", false, err
			}
			return b.String(), true, nil
		default:
			b.WriteByte(c)
		}
	}
}

func writeLine(w *bufio.Writer, s string) error {
	if _, err := w.WriteString(s); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

// relativePath returns path relative to base with forward slashes, or path
// unchanged when no relative form exists.
func relativePath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
