package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const DefaultPath = "urls.json"

// Entry is one provisioned domain as written to the result file.
type Entry struct {
	URL string `json:"url"`
}

// OpError wraps a store failure with the operation and file involved.
type OpError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s (path=%s): %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// JSONFile keeps entries as a pretty-printed JSON array on disk.
//
// Append is a read-modify-write with no locking. It assumes a single writer:
// two processes appending to the same file can lose each other's entries.
type JSONFile struct {
	path   string
	indent string
}

type Option func(*JSONFile)

// WithIndent overrides the four-space indentation used on write.
func WithIndent(indent string) Option {
	return func(s *JSONFile) { s.indent = indent }
}

func NewJSONFile(path string, opts ...Option) *JSONFile {
	if path == "" {
		path = DefaultPath
	}
	s := &JSONFile{
		path:   path,
		indent: "    ",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *JSONFile) Path() string { return s.path }

// Load returns the stored entries in file order. A missing file reads as an
// empty list.
func (s *JSONFile) Load(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, &OpError{Op: "store.load", Path: s.path, Err: err}
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return []Entry{}, nil
	}

	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, &OpError{Op: "store.decode", Path: s.path, Err: err}
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// URLs is Load projected to the url field.
func (s *JSONFile) URLs(ctx context.Context) ([]string, error) {
	entries, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.URL)
	}
	return out, nil
}

// Append adds e to the end of the stored list and returns the new length.
func (s *JSONFile) Append(ctx context.Context, e Entry) (int, error) {
	entries, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	entries = append(entries, e)
	if err := s.write(entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (s *JSONFile) write(entries []Entry) error {
	b, err := json.MarshalIndent(entries, "", s.indent)
	if err != nil {
		return &OpError{Op: "store.marshal", Path: s.path, Err: err}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &OpError{Op: "store.mkdir", Path: dir, Err: err}
		}
	}

	// tmp then rename so a crash mid-write never leaves a truncated file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		_ = os.Remove(tmp)
		return &OpError{Op: "store.write", Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return &OpError{Op: "store.rename", Path: s.path, Err: err}
	}
	return nil
}
