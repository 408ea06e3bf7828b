package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func tempStore(t *testing.T, config Config) *Store {
	t.Helper()
	if config.Path == "" {
		config.Path = filepath.Join(t.TempDir(), "cache.json")
	}
	if config.TTL == 0 {
		config.TTL = DefaultTTL
	}
	return New(config)
}

func TestSetGet_CaseInsensitive(t *testing.T) {
	store := tempStore(t, Config{})

	store.Set("Raiment of Whispers", "value")

	tests := []string{"Raiment of Whispers", "raiment of whispers", "RAIMENT OF WHISPERS"}
	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			if got := store.Get(key); got != "value" {
				t.Errorf("Get(%q) = %v, want %q", key, got, "value")
			}
		})
	}
}

func TestGet_Missing(t *testing.T) {
	store := tempStore(t, Config{})
	if got := store.Get("nothing here"); got != nil {
		t.Errorf("Get() = %v, want nil", got)
	}
}

func TestGet_ExpiredEntryEvicted(t *testing.T) {
	store := tempStore(t, Config{TTL: DefaultTTL})

	current := time.Now()
	store.now = func() time.Time { return current }
	store.Set("stale", "value")

	// Just under the TTL the entry is still served.
	store.now = func() time.Time { return current.Add(DefaultTTL - time.Minute) }
	if got := store.Get("stale"); got != "value" {
		t.Errorf("Get() before expiry = %v, want %q", got, "value")
	}

	store.now = func() time.Time { return current.Add(DefaultTTL + time.Minute) }
	if got := store.Get("stale"); got != nil {
		t.Errorf("Get() after expiry = %v, want nil", got)
	}
	if store.Len() != 0 {
		t.Errorf("Len() after expired read = %d, want 0", store.Len())
	}
}

func TestSet_SizeLimitWipesEverything(t *testing.T) {
	store := tempStore(t, Config{MaxSizeBytes: 64})

	store.Set("first", "small")
	store.Set("second", "a value comfortably longer than the configured size ceiling")

	if store.Len() != 0 {
		t.Errorf("Len() after overflow = %d, want 0 (whole store wiped)", store.Len())
	}
	if got := store.Get("first"); got != nil {
		t.Errorf("Get(first) after overflow = %v, want nil", got)
	}
}

func TestSet_NoLimitNeverWipes(t *testing.T) {
	store := tempStore(t, Config{})
	for i := 0; i < 50; i++ {
		store.Set(string(rune('a'+i%26))+"-key", "some reasonably sized value to grow the file")
	}
	if store.Len() == 0 {
		t.Error("unlimited store was wiped")
	}
}

func TestNew_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	first := tempStore(t, Config{Path: path})
	first.Set("durable", "value")

	second := tempStore(t, Config{Path: path})
	if got := second.Get("durable"); got != "value" {
		t.Errorf("Get() from reloaded store = %v, want %q", got, "value")
	}
}

func TestNew_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	store := tempStore(t, Config{Path: path})
	if store.Len() != 0 {
		t.Errorf("Len() from corrupt file = %d, want 0", store.Len())
	}

	// The store stays usable.
	store.Set("key", "value")
	if got := store.Get("key"); got != "value" {
		t.Errorf("Get() after recovery = %v, want %q", got, "value")
	}
}

func TestNew_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	tempStore(t, Config{Path: path})

	if _, err := os.Stat(path); err != nil {
		t.Errorf("cache file was not created: %v", err)
	}
}

func TestClear(t *testing.T) {
	store := tempStore(t, Config{})
	store.Set("one", 1)
	store.Set("two", 2)

	if removed := store.Clear(); removed != 2 {
		t.Errorf("Clear() = %d, want 2", removed)
	}
	if store.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", store.Len())
	}
}

func TestOldestAge(t *testing.T) {
	store := tempStore(t, Config{})

	if age := store.OldestAge(); age != 0 {
		t.Errorf("OldestAge() on empty store = %v, want 0", age)
	}

	current := time.Now()
	store.now = func() time.Time { return current.Add(-2 * time.Hour) }
	store.Set("old", 1)
	store.now = func() time.Time { return current.Add(-time.Hour) }
	store.Set("new", 2)

	store.now = func() time.Time { return current }
	if age := store.OldestAge(); age < 2*time.Hour || age > 2*time.Hour+time.Second {
		t.Errorf("OldestAge() = %v, want ~2h", age)
	}
}
