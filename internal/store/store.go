// Package store persists repository summaries in a bbolt database.
// Values are YAML documents so a summary can be exported and re-imported
// with the same schema as summary files.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	docview "github.com/alnah/go-docview"
	"github.com/alnah/go-docview/internal/yamlutil"
	bolt "go.etcd.io/bbolt"
)

// Sentinel errors for store operations.
var (
	ErrSummaryNotFound = errors.New("summary not found")
	ErrStoreOpen       = errors.New("failed to open summary store")
	ErrCorruptSummary  = errors.New("stored summary is corrupt")
)

const (
	bucketSummaries = "summaries"
	fileName        = "summaries.db"
	filePermissions = 0o600
	dirPermissions  = 0o750
	openTimeout     = time.Second
)

// Entry describes a stored summary without its content.
type Entry struct {
	Repo      string
	Size      int // encoded bytes
	UpdatedAt time.Time
}

// Store is a bbolt-backed summary store keyed by owner/repo.
// It is safe for concurrent use; bbolt serializes writers.
type Store struct {
	db  *bolt.DB
	now func() time.Time
}

// DefaultPath returns the database path under the user cache directory.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolving cache directory: %w", err)
	}
	return filepath.Join(dir, "go-docview", fileName), nil
}

// Open opens or creates the database at path, creating parent directories.
// Returns ErrStoreOpen if another process holds the database for longer
// than one second.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreOpen, err)
	}

	db, err := bolt.Open(path, filePermissions, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStoreOpen, path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSummaries))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: initializing: %v", ErrStoreOpen, err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Put stores s under s.Repo, replacing any previous summary.
// A zero UpdatedAt is set to the current time.
func (s *Store) Put(summary docview.RepoSummary) error {
	if err := summary.Validate(); err != nil {
		return err
	}
	if summary.UpdatedAt.IsZero() {
		summary.UpdatedAt = s.now().UTC().Truncate(time.Second)
	}

	data, err := yamlutil.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", summary.Repo, err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSummaries)).Put([]byte(summary.Repo), data)
	})
}

// Get returns the summary stored for repo.
func (s *Store) Get(repo string) (docview.RepoSummary, error) {
	var summary docview.RepoSummary
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketSummaries)).Get([]byte(repo))
		if v == nil {
			return fmt.Errorf("%w: %s", ErrSummaryNotFound, repo)
		}
		if err := yamlutil.Unmarshal(v, &summary); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrCorruptSummary, repo, err)
		}
		return nil
	})
	return summary, err
}

// List returns all stored summaries ordered by repo name.
func (s *Store) List() ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketSummaries)).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var summary docview.RepoSummary
			if err := yamlutil.Unmarshal(v, &summary); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrCorruptSummary, k, err)
			}
			entries = append(entries, Entry{
				Repo:      string(k),
				Size:      len(v),
				UpdatedAt: summary.UpdatedAt,
			})
		}
		return nil
	})
	return entries, err
}

// Delete removes the summary stored for repo.
func (s *Store) Delete(repo string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSummaries))
		if b.Get([]byte(repo)) == nil {
			return fmt.Errorf("%w: %s", ErrSummaryNotFound, repo)
		}
		return b.Delete([]byte(repo))
	})
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}
