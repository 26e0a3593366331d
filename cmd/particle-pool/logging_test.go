package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
)

func restoreLogger(t *testing.T) {
	t.Helper()
	out, flags := log.Writer(), log.Flags()
	t.Cleanup(func() {
		log.SetOutput(out)
		log.SetFlags(flags)
	})
}

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	restoreLogger(t)

	if f := setupLogging(false, t.TempDir()); f != nil {
		f.Close()
		t.Error("Expected nil log file when debug=false")
	}
	if log.Writer() != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", log.Writer())
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	restoreLogger(t)
	dir := filepath.Join(t.TempDir(), "logs")

	f := setupLogging(true, dir)
	if f == nil {
		t.Fatal("Expected non-nil log file when debug=true")
	}
	defer f.Close()

	log.Println("pool ready")

	info, err := os.Stat(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatalf("Expected log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
	if log.Writer() == os.Stdout || log.Writer() == os.Stderr {
		t.Error("Log output must not be a terminal stream")
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	restoreLogger(t)
	dir := t.TempDir()
	path := filepath.Join(dir, logFileName)

	if err := os.WriteFile(path, make([]byte, maxLogSize+1), 0o644); err != nil {
		t.Fatalf("Failed to create large log: %v", err)
	}

	f := setupLogging(true, dir)
	if f == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer f.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read log dir: %v", err)
	}
	rotated := false
	for _, e := range entries {
		if e.Name() != logFileName && filepath.Ext(e.Name()) == ".log" {
			rotated = true
		}
	}
	if !rotated {
		t.Error("Expected a rotated log file")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat new log: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("Expected fresh log file, got %d bytes", info.Size())
	}
}
