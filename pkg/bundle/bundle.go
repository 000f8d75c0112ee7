// Package bundle selects source files under a directory tree and concatenates
// them into a single bundle file.
package bundle

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Run bundles the files under workDir according to opts. The output file is
// created or truncated; a failure part-way through leaves what was written.
//
// Errors wrap ErrInvalidPath when the output directory does not exist and
// ErrInvalidInput for everything else.
func Run(workDir string, opts Options, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()

	if opts.Output == "" {
		return Result{}, fmt.Errorf("%w: no output file given", ErrInvalidInput)
	}

	absWorkDir, err := filepath.Abs(workDir)
	if err != nil {
		return Result{}, fmt.Errorf("failed to resolve working directory: %w: %w", ErrInvalidInput, err)
	}
	output := resolve(absWorkDir, opts.Output)
	logger.Debug("Starting bundle process",
		zap.String("directory", absWorkDir),
		zap.String("output", output),
		zap.String("sort", ParseSortMode(opts.Sort).String()))

	files, err := Select(absWorkDir, opts, logger)
	if err != nil {
		logger.Error("Failed to collect files", zap.Error(err))
		return Result{}, fmt.Errorf("failed to collect files: %w: %w", ErrInvalidInput, err)
	}
	files = Order(files, ParseSortMode(opts.Sort))

	if err := writeFile(output, absWorkDir, files, opts, logger); err != nil {
		return Result{}, err
	}

	rel := make([]string, len(files))
	for i, f := range files {
		rel[i] = relativePath(absWorkDir, f)
	}

	logger.Info("Successfully bundled files",
		zap.String("outputFile", output),
		zap.Int("totalFiles", len(files)),
		zap.Duration("elapsed", time.Since(startTime)))
	return Result{Output: output, Files: rel}, nil
}

// writeFile creates output and streams the bundle into it.
func writeFile(output, workDir string, files []string, opts Options, logger *zap.Logger) (err error) {
	outFile, err := os.Create(output)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", output), zap.Error(err))
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return fmt.Errorf("failed to create output file: %w: %w", ErrInvalidPath, err)
		}
		return fmt.Errorf("failed to create output file: %w: %w", ErrInvalidInput, err)
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil && err == nil {
			logger.Error("Failed to close output file", zap.String("file", output), zap.Error(closeErr))
			err = fmt.Errorf("failed to close output file: %w: %w", ErrInvalidInput, closeErr)
		}
	}()

	if err := Write(outFile, workDir, files, opts, logger); err != nil {
		logger.Error("Failed to write bundle", zap.String("file", output), zap.Error(err))
		return fmt.Errorf("failed to write bundle: %w: %w", ErrInvalidInput, err)
	}
	return nil
}
