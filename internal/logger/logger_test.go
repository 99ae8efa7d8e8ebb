package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   LogLevel
		want zapcore.Level
	}{
		{DebugLevel, zapcore.DebugLevel},
		{InfoLevel, zapcore.InfoLevel},
		{WarnLevel, zapcore.WarnLevel},
		{ErrorLevel, zapcore.ErrorLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGetBeforeInit(t *testing.T) {
	if Get() == nil {
		t.Fatal("Get() = nil before Init")
	}
}

func TestInit(t *testing.T) {
	if err := Init(true, DebugLevel); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if !Get().Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level not enabled after Init(debug)")
	}
}

func TestInitWritesToOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finpulse.log")
	if err := Init(false, InfoLevel, path); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Get().Info("hello file")
	_ = Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "hello file") {
		t.Errorf("log file missing entry: %q", data)
	}
}
