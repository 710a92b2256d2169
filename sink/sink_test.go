/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sink_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chainguard.dev/refine/sink"
)

func TestFilePersist(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	s, err := sink.NewFile(filepath.Join(dir, "reports"))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	if err := s.Persist(context.Background(), "Ocean Currents & Climate!", "the report body"); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "reports"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("wrote %d files, want 1", len(entries))
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "ocean-currents") || !strings.HasSuffix(name, ".md") {
		t.Fatalf("file name = %q", name)
	}

	body, err := os.ReadFile(filepath.Join(dir, "reports", name))
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "the report body" {
		t.Fatalf("body = %q", body)
	}
}

func TestNewFileRejectsEmptyDir(t *testing.T) {
	t.Parallel()
	if _, err := sink.NewFile(""); err == nil {
		t.Fatal("expected error")
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	if err := (sink.Discard{}).Persist(context.Background(), "t", "a"); err != nil {
		t.Fatalf("Discard.Persist: %v", err)
	}
}
