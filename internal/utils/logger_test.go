package utils_test

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/pathtree/internal/utils"
)

// TestNewApplicationLoggerFollowsSharedLevel verifies that raising the shared level enables debug output.
func TestNewApplicationLoggerFollowsSharedLevel(testingHandle *testing.T) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger, loggerError := utils.NewApplicationLogger(level)
	if loggerError != nil {
		testingHandle.Fatalf("NewApplicationLogger error: %v", loggerError)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		testingHandle.Fatalf("expected debug to be disabled at info level")
	}
	level.SetLevel(zapcore.DebugLevel)
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		testingHandle.Fatalf("expected debug to be enabled after raising the level")
	}
}
