package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadTextPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "art.txt")
	if err := os.WriteFile(path, []byte("from\r\nfile\n\n"), 0644); err != nil {
		t.Fatalf("Failed to write text file: %v", err)
	}

	got, err := readText("inline", path, nil)
	if err != nil || got != "inline" {
		t.Errorf("Expected -text to win, got %q (%v)", got, err)
	}

	got, err = readText("", path, nil)
	if err != nil || got != "from\nfile" {
		t.Errorf("Expected normalized file text, got %q (%v)", got, err)
	}

	if _, err := readText("", filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestReadTextFromPipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	defer r.Close()

	go func() {
		w.WriteString("piped\n\ntext\n")
		w.Close()
	}()

	got, err := readText("", "", r)
	if err != nil {
		t.Fatalf("readText failed: %v", err)
	}
	if got != "piped\n\ntext" {
		t.Errorf("Expected piped text with inner blank line, got %q", got)
	}
}

func TestReadTextBanner(t *testing.T) {
	got, err := readText("", "", nil)
	if err != nil {
		t.Fatalf("readText failed: %v", err)
	}
	if got != bannerText {
		t.Errorf("Expected banner, got %q", got)
	}
	if !strings.Contains(got, "hover") {
		t.Error("Expected banner to mention hovering")
	}
}
