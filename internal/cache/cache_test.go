package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestPutGet(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var opts [32]byte
	key := Key([]byte("let x = 1\n"), opts)

	var got Entry
	if ok, err := c.Get(key, &got); ok || err != nil {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}
	if err := c.Put(key, &Entry{Path: "a.swift", Size: 10, Rules: []string{"hoistTry"}}); err != nil {
		t.Fatal(err)
	}
	ok, err := c.Get(key, &got)
	if !ok || err != nil {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Path != "a.swift" || got.Size != 10 || got.Schema != schemaVersion || got.Stamp == 0 {
		t.Fatalf("unexpected entry: %+v", got)
	}
	if !c.Has(key) {
		t.Fatal("Has returned false for stored key")
	}
}

func TestKeyDependsOnOptions(t *testing.T) {
	content := []byte("x")
	a := Key(content, [32]byte{1})
	b := Key(content, [32]byte{2})
	if a == b {
		t.Fatal("options hash must change the key")
	}
	if a != Key(content, [32]byte{1}) {
		t.Fatal("key must be deterministic")
	}
}

func TestGetRejectsOtherSchema(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := Key([]byte("x"), [32]byte{})
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	data, err := msgpack.Marshal(&Entry{Schema: schemaVersion + 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil {
		t.Fatal(err)
	}
	var e Entry
	if _, err := c.Get(key, &e); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
	if c.Has(key) {
		t.Fatal("entry of another schema must not count")
	}
}

func TestDropAll(t *testing.T) {
	c, err := Open(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	key := Key([]byte("x"), [32]byte{})
	if err := c.Put(key, &Entry{}); err != nil {
		t.Fatal(err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatal(err)
	}
	if c.Has(key) {
		t.Fatal("entry survived DropAll")
	}
	if err := c.Put(key, &Entry{}); err != nil {
		t.Fatalf("cache unusable after DropAll: %v", err)
	}
}

func TestNilCacheIsInert(t *testing.T) {
	var c *Cache
	if err := c.Put(Digest{}, &Entry{}); err != nil {
		t.Fatal(err)
	}
	if c.Has(Digest{}) {
		t.Fatal("nil cache reported a hit")
	}
}
