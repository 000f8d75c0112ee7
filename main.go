package main

import (
	"log"
	"os"
	"strings"

	"codefuse/cmd"

	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	app, err := cmd.NewApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	// Execute the root command; failures have already been reported on stdout.
	runErr := cmd.Execute(app, os.Args[1:])

	syncLogger(app.Logger)
	if runErr != nil {
		os.Exit(1)
	}
}

// syncLogger flushes the logger when stderr can be synced. Terminals and
// pipes reject fsync with "invalid argument", which is not worth reporting.
func syncLogger(logger *zap.Logger) {
	if logger == nil {
		return
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if syncErr := logger.Sync(); syncErr != nil {
		lowerErr := strings.ToLower(syncErr.Error())
		if !strings.Contains(lowerErr, "invalid argument") && !strings.Contains(lowerErr, "inappropriate ioctl") {
			log.Printf("Logger sync failed: %v", syncErr)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
