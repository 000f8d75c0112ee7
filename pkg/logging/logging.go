package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Setup builds the process logger and installs it as zap's global logger.
// The production config only reports warnings and errors so that normal runs
// print nothing but the status line; debug switches to the human-readable
// development config at debug level.
func Setup(debug bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewExample(), err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}
