/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package sink persists finished artifacts. Implementations satisfy
// loop.Sink.
package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"
)

// File writes each artifact as a markdown file under a directory, named
// after the topic and the completion time.
type File struct {
	dir string
}

// NewFile creates a file sink rooted at dir. The directory is created on
// first use.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.New("sink directory cannot be empty")
	}
	return &File{dir: dir}, nil
}

// Persist writes the artifact to disk.
func (f *File) Persist(ctx context.Context, topic, artifact string) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("creating sink directory: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", slug(topic), time.Now().UTC().Format("20060102-150405"))
	path := filepath.Join(f.dir, name)
	if err := os.WriteFile(path, []byte(artifact), 0o644); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	clog.FromContext(ctx).With("path", path).
		With("bytes", len(artifact)).
		Info("Persisted artifact")
	return nil
}

// slug reduces a topic to a short filesystem-safe name.
func slug(topic string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(topic) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			sb.WriteByte('-')
		}
		if sb.Len() >= 40 {
			break
		}
	}
	s := strings.Trim(sb.String(), "-")
	if s == "" {
		return "artifact"
	}
	return s
}

// Discard is a sink that drops artifacts; useful in tests.
type Discard struct{}

// Persist implements loop.Sink.
func (Discard) Persist(context.Context, string, string) error { return nil }
