// Package cache keeps rendered GET responses on disk, keyed by an xxHash
// of the request URI.
package cache

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

const ext = ".cache"

type Cache struct {
	dir string
	ttl time.Duration
}

func New(dir string, ttl time.Duration) *Cache {
	return &Cache{dir: dir, ttl: ttl}
}

func (c *Cache) Dir() string {
	return c.dir
}

// Path returns the cache file for key.
func (c *Cache) Path(key string) string {
	return filepath.Join(c.dir, generateHash(key)+ext)
}

func generateHash(s string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))
}

// Write stores body under key. The content type is kept on the first line.
func (c *Cache) Write(key, contentType string, body []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString(strings.ReplaceAll(contentType, "\n", " "))
	buf.WriteByte('\n')
	buf.Write(body)

	// rename so a concurrent reader never sees a partial entry
	tmp, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.Path(key))
}

// Read returns the entry for key unless it is missing or older than the TTL.
func (c *Cache) Read(key string) (contentType string, body []byte, ok bool) {
	path := c.Path(key)

	info, err := os.Stat(path)
	if err != nil {
		return "", nil, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return "", nil, false
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", nil, false
	}
	ct, rest, found := bytes.Cut(raw, []byte("\n"))
	if !found {
		return "", nil, false
	}
	return string(ct), rest, true
}

// Clear removes every entry and returns how many were removed.
func (c *Cache) Clear() (int, error) {
	return c.remove(func(fs.FileInfo) bool { return true })
}

// ClearOld removes entries older than the TTL.
func (c *Cache) ClearOld() (int, error) {
	return c.remove(func(info fs.FileInfo) bool {
		return time.Since(info.ModTime()) > c.ttl
	})
}

func (c *Cache) remove(match func(fs.FileInfo) bool) (int, error) {
	entries, err := os.ReadDir(c.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		info, err := e.Info()
		if err != nil || !match(info) {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
