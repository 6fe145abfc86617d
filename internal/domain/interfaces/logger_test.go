package interfaces

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriterLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LevelInfo)

	logger.Debug("hidden")
	logger.Info("resolved", F("version", "15.8.23"), F("count", 2))
	logger.Warn("fallback")
	logger.Error("failed", F("err", "boom"))

	want := "INFO: resolved version=15.8.23 count=2\n" +
		"WARN: fallback\n" +
		"ERROR: failed err=boom\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWriterLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	NewWriterLogger(&buf, LevelDebug).Debug("trail", F("triplet", "ubuntu/18.04/x86_64"))

	if !strings.HasPrefix(buf.String(), "DEBUG: trail triplet=ubuntu/18.04/x86_64") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestNoOpLogger(_ *testing.T) {
	var l Logger = &NoOpLogger{}
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x", F("k", "v"))
}
