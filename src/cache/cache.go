package cache

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Entry wraps a cached value with its write time.
type Entry struct {
	Data      any   `json:"data"`
	Timestamp int64 `json:"timestamp"`
}

// Config holds cache store configuration.
type Config struct {
	// Path of the JSON file the store is persisted to.
	Path string
	// TTL after which an entry reads as a miss and is evicted.
	TTL time.Duration
	// MaxSizeBytes is the on-disk size ceiling. Exceeding it after a write
	// clears the whole store. Zero means unlimited.
	MaxSizeBytes int64
}

// DefaultTTL matches the 24 hour expiry both caches use.
const DefaultTTL = 24 * time.Hour

// Store is a durable, case-insensitive key/value store persisted as a single
// JSON file. Every write persists the whole store synchronously. Expired
// entries are evicted lazily on read. The store assumes a single process;
// concurrent writers against the same file would race.
type Store struct {
	config  Config
	entries map[string]Entry
	now     func() time.Time
}

// New loads the store from its file, creating the file when absent. A
// corrupt or unreadable file is logged and treated as an empty store:
// durability failures must not prevent startup.
func New(config Config) *Store {
	s := &Store{
		config:  config,
		entries: make(map[string]Entry),
		now:     time.Now,
	}

	if _, err := os.Stat(config.Path); os.IsNotExist(err) {
		slog.Debug("creating new cache file", "path", config.Path)
		s.save()
		return s
	}

	s.load()
	return s
}

// Get returns the value stored under key, or nil when absent or expired.
// Keys are case-insensitive. Expired entries are deleted on access.
func (s *Store) Get(key string) any {
	key = strings.ToLower(key)

	entry, exists := s.entries[key]
	if !exists {
		slog.Debug("cache miss", "key", key)
		return nil
	}

	age := s.now().Sub(time.Unix(entry.Timestamp, 0))
	if age >= s.config.TTL {
		slog.Debug("cache expired", "key", key, "age", age)
		delete(s.entries, key)
		return nil
	}

	slog.Debug("cache hit", "key", key, "age", age)
	return entry.Data
}

// Set stores value under the lower-cased key and persists the whole store.
// For a size-limited store, exceeding the on-disk ceiling after the write
// wipes every entry; selective eviction is deliberately not implemented.
func (s *Store) Set(key string, value any) {
	key = strings.ToLower(key)
	s.entries[key] = Entry{
		Data:      value,
		Timestamp: s.now().Unix(),
	}
	s.save()

	if s.config.MaxSizeBytes > 0 && s.fileSize() > s.config.MaxSizeBytes {
		slog.Info("cache size limit exceeded, clearing cache",
			"path", s.config.Path, "limit-bytes", s.config.MaxSizeBytes)
		s.Clear()
	}
}

// Clear empties the store, persists the empty store and returns the number
// of entries removed.
func (s *Store) Clear() int {
	count := len(s.entries)
	s.entries = make(map[string]Entry)
	s.save()
	slog.Info("cleared cache", "path", s.config.Path, "entries", count)
	return count
}

// Len returns the number of entries currently held, expired or not.
func (s *Store) Len() int {
	return len(s.entries)
}

// OldestAge returns the age of the oldest entry, or zero when empty.
func (s *Store) OldestAge() time.Duration {
	var oldest int64
	for _, entry := range s.entries {
		if oldest == 0 || entry.Timestamp < oldest {
			oldest = entry.Timestamp
		}
	}
	if oldest == 0 {
		return 0
	}
	return s.now().Sub(time.Unix(oldest, 0))
}

func (s *Store) load() {
	data, err := os.ReadFile(s.config.Path)
	if err != nil {
		slog.Error("failed to read cache file", "path", s.config.Path, "error", err)
		return
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		slog.Error("failed to parse cache file, starting empty", "path", s.config.Path, "error", err)
		s.entries = make(map[string]Entry)
		return
	}

	slog.Debug("loaded cache", "path", s.config.Path, "entries", len(s.entries))
}

func (s *Store) save() {
	data, err := json.Marshal(s.entries)
	if err != nil {
		slog.Error("failed to marshal cache", "path", s.config.Path, "error", err)
		return
	}

	if err := os.WriteFile(s.config.Path, data, 0644); err != nil {
		slog.Error("failed to write cache file", "path", s.config.Path, "error", err)
	}
}

func (s *Store) fileSize() int64 {
	stat, err := os.Stat(s.config.Path)
	if err != nil {
		return 0
	}
	return stat.Size()
}
