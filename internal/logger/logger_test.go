package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/cinelingo/internal/config"
)

func TestNewWithoutFileDiscards(t *testing.T) {
	l, err := New(&config.Config{Env: "local", Log: config.Log{Level: "info"}})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if l.Core().Enabled(-1) {
		t.Error("logger without a file should discard everything")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cinelingo.log")
	l, err := New(&config.Config{Env: "production", Log: config.Log{File: path, Level: "warn"}})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	l.Info("hidden")
	l.Warn("shown")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Error("info message written below warn level")
	}
	if !strings.Contains(string(data), "shown") {
		t.Errorf("log = %q, want the warn message", data)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.log")
	if _, err := New(&config.Config{Log: config.Log{File: path, Level: "loud"}}); err == nil {
		t.Error("expected error for unknown level")
	}
}
