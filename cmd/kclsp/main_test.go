package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadSourceFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "box.kcl")
	if err := os.WriteFile(path, []byte("let x = 1"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	got, err := readSource([]string{path})
	if err != nil {
		t.Fatalf("readSource: %v", err)
	}
	if got != "let x = 1" {
		t.Errorf("readSource = %q, want %q", got, "let x = 1")
	}
}

func TestReadSourceMissingFileReturnsError(t *testing.T) {
	if _, err := readSource([]string{filepath.Join(t.TempDir(), "missing.kcl")}); err == nil {
		t.Fatal("expected an error for a nonexistent file")
	}
}

func TestFormatCommandWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.kcl")
	out := filepath.Join(dir, "out.kcl")
	if err := os.WriteFile(in, []byte("x = 1\n\n\n\n\ny = 2"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	root := newRootCmd()
	root.SetArgs([]string{"format", in, "-o", out})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading formatted output: %v", err)
	}
	if string(data) != "x = 1\n\n\ny = 2\n" {
		t.Errorf("formatted output = %q, want the blank-run clamped to 2 lines", string(data))
	}
}

func TestFormatCommandWritesHTMLToOutputFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.kcl")
	out := filepath.Join(dir, "out.html")
	if err := os.WriteFile(in, []byte("x = 1"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	root := newRootCmd()
	root.SetArgs([]string{"format", in, "--html", "-o", out})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading formatted output: %v", err)
	}
	if !strings.Contains(string(data), `<pre class="kcl-source">`) {
		t.Errorf("--html -o output = %q, want an HTML fragment, not plain text", string(data))
	}
}

func TestFormatCommandFailsOnParseError(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "broken.kcl")
	if err := os.WriteFile(in, []byte("let x = )"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	root := newRootCmd()
	root.SetArgs([]string{"format", in})
	root.SilenceErrors = true
	root.SilenceUsage = true
	if err := root.Execute(); err == nil {
		t.Fatal("expected Execute to fail for a source with a parse error")
	}
}

func TestFormatCommandRejectsTooManyArgs(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"format", "a.kcl", "b.kcl"})
	root.SilenceErrors = true
	root.SilenceUsage = true
	if err := root.Execute(); err == nil {
		t.Fatal("expected Execute to reject more than one file argument")
	}
}
