package internal

import (
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	tt "github.com/gnolang/groqlint/internal/types"
)

const cacheFileName = "lint_cache.gob"

// CacheEntry is the stored lint result of one file.
type CacheEntry struct {
	Hash       string
	ConfigHash string
	Issues     []tt.Issue
	CreatedAt  time.Time
}

// Cache persists lint results per file so that unchanged files are not
// linted again. An entry is valid while the file content and the
// configuration it was produced under are unchanged.
type Cache struct {
	CacheDir   string
	entries    map[string]CacheEntry
	mutex      sync.Mutex
	maxAge     time.Duration
	configHash string
}

// NewCache opens (or creates) the cache in cacheDir. configFile is hashed so
// that changing rule severities invalidates every entry; it may be empty.
// extra holds further settings that change lint results, such as ignored
// rule names; their order does not matter.
func NewCache(cacheDir, configFile string, extra ...string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		CacheDir: cacheDir,
		entries:  make(map[string]CacheEntry),
	}
	var content []byte
	if configFile != "" {
		var err error
		content, err = os.ReadFile(configFile)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	cache.configHash = configKey(content, extra)

	if err := cache.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}
	return cache, nil
}

func (c *Cache) load() error {
	file, err := os.Open(filepath.Join(c.CacheDir, cacheFileName))
	if os.IsNotExist(err) {
		return nil // cache file doesn't exist yet. This is fine.
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(&c.entries); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}
	return nil
}

// Save writes the cache to disk.
func (c *Cache) Save() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	file, err := os.Create(filepath.Join(c.CacheDir, cacheFileName))
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(c.entries); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}
	return nil
}

// Set records the issues found for filename with content src.
func (c *Cache) Set(filename string, src []byte, issues []tt.Issue) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[filename] = CacheEntry{
		Hash:       hashBytes(src),
		ConfigHash: c.configHash,
		Issues:     issues,
		CreatedAt:  time.Now(),
	}
}

// Get returns the cached issues for filename if src is what was linted.
func (c *Cache) Get(filename string, src []byte) ([]tt.Issue, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[filename]
	if !exists {
		return nil, false
	}
	if c.isEntryInvalid(entry, src) {
		delete(c.entries, filename)
		return nil, false
	}
	return entry.Issues, true
}

func (c *Cache) isEntryInvalid(entry CacheEntry, src []byte) bool {
	// too old
	if c.maxAge > 0 && time.Since(entry.CreatedAt) > c.maxAge {
		return true
	}
	return entry.ConfigHash != c.configHash || entry.Hash != hashBytes(src)
}

// SetMaxAge bounds how long entries stay valid. Zero means forever.
func (c *Cache) SetMaxAge(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = duration
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	c.entries = make(map[string]CacheEntry)
	c.mutex.Unlock()
	_ = c.Save() // ignore error as this is a manual operation
}

func configKey(config []byte, extra []string) string {
	keys := append([]string(nil), extra...)
	sort.Strings(keys)

	h := sha256.New()
	h.Write(config)
	for _, k := range keys {
		h.Write([]byte{0})
		h.Write([]byte(k))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func hashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
