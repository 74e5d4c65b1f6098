// Package cache remembers which file contents are already formatted under a
// given option set, so repeated runs can skip them.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Entry format changes
const schemaVersion uint16 = 1

// ErrSchema reports an entry written by an incompatible version.
var ErrSchema = errors.New("cache: schema mismatch")

// Digest identifies formatted content: sha256 over content and options.
type Digest [32]byte

// String returns the hex form of the digest.
func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Key derives the cache key for content formatted with the given options
// fingerprint (config.Options.Hash).
func Key(content []byte, options [32]byte) Digest {
	h := sha256.New()
	var ver [2]byte
	binary.BigEndian.PutUint16(ver[:], schemaVersion)
	_, _ = h.Write(ver[:])
	_, _ = h.Write(options[:])
	_, _ = h.Write(content)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Entry is what the cache stores per key.
type Entry struct {
	// Schema version for safe invalidation when format changes
	Schema uint16 `msgpack:"schema"`
	// Path is informational: the same content may live in many files.
	Path  string   `msgpack:"path"`
	Size  int      `msgpack:"size"`
	Rules []string `msgpack:"rules"`
	Stamp int64    `msgpack:"stamp"` // unix seconds of the write
}

// Cache хранит записи о форматированных файлах на диске.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open returns a cache rooted at dir, creating it if needed.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// DefaultDir is $XDG_CACHE_HOME/<app> or ~/.cache/<app>.
func DefaultDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string { return c.dir }

func (c *Cache) pathFor(key Digest) string {
	hexKey := key.String()
	// подкаталог по первому байту, чтобы не копить тысячи файлов в одном
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put records that content with this key is formatted.
func (c *Cache) Put(key Digest, e *Entry) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	stored := *e
	stored.Schema = schemaVersion
	if stored.Stamp == 0 {
		stored.Stamp = time.Now().Unix()
	}
	if err = msgpack.NewEncoder(f).Encode(&stored); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get loads the entry for key. A missing entry is (false, nil); an entry of
// another schema version is ErrSchema.
func (c *Cache) Get(key Digest, out *Entry) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	var e Entry
	if err := msgpack.NewDecoder(f).Decode(&e); err != nil {
		return false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	if e.Schema != schemaVersion {
		return false, fmt.Errorf("%w: entry %s has schema %d, want %d", ErrSchema, key, e.Schema, schemaVersion)
	}
	*out = e
	return true, nil
}

// Has reports whether key is recorded. Unreadable entries count as absent.
func (c *Cache) Has(key Digest) bool {
	var e Entry
	ok, err := c.Get(key, &e)
	return ok && err == nil
}

// DropAll invalidates the cache.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
