package zinc

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerDefaultsToSharedNop(t *testing.T) {
	SetLogger(nil)
	t.Cleanup(func() { SetLogger(nil) })

	if Logger() != Logger() {
		t.Error("Logger() built a new no-op logger on each call")
	}
	if Logger().Core().Enabled(zap.DebugLevel) {
		t.Error("default logger is enabled")
	}

	core, logs := observer.New(zap.DebugLevel)
	l := zap.New(core)
	SetLogger(l)
	if Logger() != l {
		t.Fatal("SetLogger did not replace the package logger")
	}
	Logger().Debug("hello")
	if logs.Len() != 1 {
		t.Errorf("logged %d entries, want 1", logs.Len())
	}

	SetLogger(nil)
	if Logger() != nop {
		t.Error("SetLogger(nil) did not restore the no-op logger")
	}
}
