// Package buildcache stores parse results keyed by source file content so
// that unchanged files are not reparsed between builds.
package buildcache

import (
	"bytes"
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fxamacker/cbor/v2"
	_ "modernc.org/sqlite"

	"github.com/ry-lang/ry/compiler"
)

// cborEncMode uses canonical mode so cached records encode deterministically.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("buildcache: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Entry is one cached compile result for a source file.
type Entry struct {
	Path        string
	Hash        []byte
	Diagnostics []compiler.Diagnostic
	Tree        string
}

// record is the CBOR payload stored in the data column. Path and Hash live
// in their own columns so lookups never decode the payload.
type record struct {
	Diagnostics []compiler.Diagnostic `cbor:"1,keyasint"`
	Tree        string                `cbor:"2,keyasint"`
}

// Cache is a SQLite-backed index of parse results.
type Cache struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if needed) the cache database under dir.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "cache.db"))
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		path TEXT PRIMARY KEY,
		hash BLOB NOT NULL,
		data BLOB NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating entries table: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// HashSource returns the content hash used as the cache key for src.
func HashSource(src []byte) []byte {
	sum := sha256.Sum256(src)
	return sum[:]
}

// Get looks up the cached entry for path. A hit requires the stored content
// hash to match; a file whose content changed is a miss.
func (c *Cache) Get(path string, hash []byte) (*Entry, bool, error) {
	var storedHash, data []byte
	err := c.db.QueryRow("SELECT hash, data FROM entries WHERE path = ?", path).Scan(&storedHash, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("querying cache entry: %w", err)
	}

	if !bytes.Equal(storedHash, hash) {
		return nil, false, nil
	}

	var rec record
	if err := cbor.Unmarshal(data, &rec); err != nil {
		return nil, false, fmt.Errorf("decoding cache entry for %s: %w", path, err)
	}

	return &Entry{
		Path:        path,
		Hash:        storedHash,
		Diagnostics: rec.Diagnostics,
		Tree:        rec.Tree,
	}, true, nil
}

// Put stores or replaces the cached entry for e.Path.
func (c *Cache) Put(e *Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := cborEncMode.Marshal(record{
		Diagnostics: e.Diagnostics,
		Tree:        e.Tree,
	})
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	_, err = c.db.Exec(
		"INSERT OR REPLACE INTO entries (path, hash, data) VALUES (?, ?, ?)",
		e.Path, e.Hash, data,
	)
	if err != nil {
		return fmt.Errorf("saving cache entry: %w", err)
	}

	return nil
}
