// Package store persists accepted palindromes so a search can resume where a
// previous run stopped.
//
// Two backends implement Store:
//
//   - FileStore: the plain-text format, one "candidate,phrase" line per
//     record, append-only.
//   - SQLiteStore: the same contract on a SQLite table (modernc.org/sqlite,
//     pure Go).
//
// Both grow monotonically: records are never rewritten or deleted. Load
// treats missing storage as "no prior state" and surfaces every other error.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aitorres/lancini/internal/palindrome"
)

// Backend names accepted by Open.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Backends lists every supported backend.
var Backends = []string{BackendCSV, BackendSQLite}

var (
	// ErrMalformedRecord is returned for stored lines or records that do not
	// follow the "candidate,phrase" shape.
	ErrMalformedRecord = errors.New("malformed palindrome record")

	// ErrUnknownBackend is returned by Open for unsupported backend names.
	ErrUnknownBackend = errors.New("unknown store backend")
)

// Store is the persisted palindrome set.
type Store interface {
	// Load returns every stored candidate.
	Load(ctx context.Context) (map[string]struct{}, error)

	// Append persists records in order. From the caller's view a call
	// either stores every record or fails.
	Append(ctx context.Context, records []palindrome.Record) error

	// Close releases the backend.
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend string
	Path    string
}

// Open returns the store described by opts.
func Open(opts Options) (Store, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return nil, fmt.Errorf("store path is required")
	}
	switch opts.Backend {
	case "", BackendCSV:
		return NewFileStore(opts.Path), nil
	case BackendSQLite:
		return NewSQLiteStore(opts.Path)
	default:
		return nil, fmt.Errorf("%w: %q (valid: %v)", ErrUnknownBackend, opts.Backend, Backends)
	}
}

// validate rejects records that could not be read back unambiguously.
func validate(records []palindrome.Record) error {
	for i, r := range records {
		switch {
		case r.Candidate == "":
			return fmt.Errorf("record %d: %w: empty candidate", i, ErrMalformedRecord)
		case strings.ContainsAny(r.Candidate, ",\n\r"):
			return fmt.Errorf("record %d: %w: candidate %q has a separator", i, ErrMalformedRecord, r.Candidate)
		case strings.ContainsAny(r.Phrase, "\n\r"):
			return fmt.Errorf("record %d: %w: phrase %q has a line break", i, ErrMalformedRecord, r.Phrase)
		}
	}
	return nil
}

// MaxLength returns the longest candidate length in runes, or 0 for an
// empty set.
func MaxLength(candidates map[string]struct{}) int {
	longest := 0
	for c := range candidates {
		if n := utf8.RuneCountInString(c); n > longest {
			longest = n
		}
	}
	return longest
}
