package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"bibvals/src/cmd/bibvals/uniqvalscmd"
)

func TestExecuteHelp(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"--help"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })
	if err := execute(); err != nil {
		t.Fatalf("execute help: %v", err)
	}
	if !strings.Contains(buf.String(), "BIBFILE [FIELD]") || !strings.Contains(buf.String(), "--delim") {
		t.Fatalf("help missing usage: %s", buf.String())
	}
}

func TestExitCode(t *testing.T) {
	usage := fmt.Errorf("wrapped: %w", &uniqvalscmd.UsageError{Err: errors.New("bad path")})
	if got := exitCode(usage); got != 2 {
		t.Fatalf("usage error: want 2, got %d", got)
	}
	if got := exitCode(errors.New("parse failure")); got != 1 {
		t.Fatalf("other error: want 1, got %d", got)
	}
}

func TestExecuteMissingFileIsUsageError(t *testing.T) {
	rootCmd.SetArgs([]string{"/nonexistent/refs.bib"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := execute()
	if exitCode(err) != 2 {
		t.Fatalf("expected usage error, got %v", err)
	}
}
