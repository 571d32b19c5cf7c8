package store

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aitorres/lancini/internal/palindrome"
)

// FileStore keeps records in a text file, one "candidate,phrase" line each.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store for path. Nothing is created until the first
// Append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// Load reads every candidate. A missing file is an empty set.
func (s *FileStore) Load(ctx context.Context) (map[string]struct{}, error) {
	known := make(map[string]struct{})

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return known, nil
		}
		return nil, fmt.Errorf("failed to open palindromes: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	ln := 0
	for sc.Scan() {
		ln++
		if ln%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		comma := strings.IndexByte(line, ',')
		if comma <= 0 {
			return nil, fmt.Errorf("%s:%d: %w", s.path, ln, ErrMalformedRecord)
		}
		known[line[:comma]] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read palindromes: %w", err)
	}
	return known, nil
}

// Append writes records as one block at the end of the file, creating the
// file and its directory when needed, and syncs before returning.
func (s *FileStore) Append(ctx context.Context, records []palindrome.Record) (err error) {
	if len(records) == 0 {
		return nil
	}
	if err := validate(records); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	for _, r := range records {
		buf.WriteString(r.Candidate)
		buf.WriteByte(',')
		buf.WriteString(r.Phrase)
		buf.WriteByte('\n')
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open palindromes for append: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close palindromes: %w", cerr)
		}
	}()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to append palindromes: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync palindromes: %w", err)
	}
	return nil
}

// Close is a no-op; files are opened per call.
func (s *FileStore) Close() error { return nil }
