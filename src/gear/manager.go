// Package gear orchestrates the lookup pipeline: name to search results to
// resolved id to extracted stats, with both caches consulted on the way.
package gear

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/lazarus-tools/eq-gear-compare-go/src/alla"
	"github.com/lazarus-tools/eq-gear-compare-go/src/cache"
	"github.com/lazarus-tools/eq-gear-compare-go/src/http"
	"github.com/lazarus-tools/eq-gear-compare-go/src/retry"
	"github.com/lazarus-tools/eq-gear-compare-go/src/types"
)

const (
	// ItemCacheMaxBytes is the item cache's on-disk ceiling. Exceeding it
	// wipes the whole cache; the spell cache is unlimited.
	ItemCacheMaxBytes = 10 * 1024 * 1024

	itemCacheFile  = "item_cache.json"
	spellCacheFile = "spell_cache.json"
)

// Config holds manager configuration.
type Config struct {
	HTTPClient http.HTTPClient
	CacheDir   string
}

// Manager owns the parsers and both caches and exposes the lookup,
// cache-maintenance and sheet operations the CLI drives.
type Manager struct {
	client     http.HTTPClient
	items      *alla.ItemParser
	spells     *alla.SpellParser
	itemCache  *cache.Store
	spellCache *cache.Store
	retryCfg   retry.Config
}

// NewManager creates a manager with both caches loaded from cacheDir.
func NewManager(config Config) *Manager {
	itemCache := cache.New(cache.Config{
		Path:         filepath.Join(config.CacheDir, itemCacheFile),
		TTL:          cache.DefaultTTL,
		MaxSizeBytes: ItemCacheMaxBytes,
	})
	spellCache := cache.New(cache.Config{
		Path: filepath.Join(config.CacheDir, spellCacheFile),
		TTL:  cache.DefaultTTL,
	})

	spells := alla.NewSpellParser(config.HTTPClient, spellCache)

	return &Manager{
		client:     config.HTTPClient,
		items:      alla.NewItemParser(spells),
		spells:     spells,
		itemCache:  itemCache,
		spellCache: spellCache,
		retryCfg:   retry.DefaultConfig(),
	}
}

// LookupItem resolves an item name to its extracted stats. When no exact
// match exists the similar item names from the results page are returned
// instead. Only transport failures surface as errors; extraction faults
// degrade to partial or empty stats.
func (m *Manager) LookupItem(ctx context.Context, name string) (*types.ItemResult, []string, error) {
	if cached := m.itemCache.Get(name); cached != nil {
		if result := itemResultFromCache(cached); result != nil {
			slog.Info("item served from cache", "item", name)
			return result, nil, nil
		}
	}

	searchHTML, err := m.fetch(ctx, alla.ItemSearchURL(name))
	if err != nil {
		return nil, nil, fmt.Errorf("item search failed for '%s': %w", name, err)
	}

	id := alla.ResolveItemID(searchHTML, name)
	if id == "" {
		return nil, alla.SimilarItems(searchHTML), nil
	}

	itemURL := alla.ItemURL(id)
	pageHTML, err := m.fetch(ctx, itemURL)
	if err != nil {
		return nil, nil, fmt.Errorf("item page fetch failed for '%s': %w", name, err)
	}

	result := &types.ItemResult{
		ID:    id,
		URL:   itemURL,
		Stats: m.items.ExtractItemStats(ctx, pageHTML),
	}

	m.itemCache.Set(name, result)
	return result, nil, nil
}

// LookupSpell resolves a spell by name, or directly by id when known.
func (m *Manager) LookupSpell(ctx context.Context, name, id string) *types.EffectDetail {
	return m.spells.ExtractSpellDetails(ctx, name, id)
}

// CacheStats reports entry counts across both caches.
func (m *Manager) CacheStats() types.CacheStats {
	items := m.itemCache.Len()
	spells := m.spellCache.Len()
	return types.CacheStats{
		Items:  items,
		Spells: spells,
		Total:  items + spells,
	}
}

// ItemCacheDetail returns the item cache entry count and oldest entry age
// in hours.
func (m *Manager) ItemCacheDetail() (int, float64) {
	return m.itemCache.Len(), m.itemCache.OldestAge().Hours()
}

// SpellCacheDetail returns the spell cache entry count and oldest entry age
// in hours.
func (m *Manager) SpellCacheDetail() (int, float64) {
	return m.spellCache.Len(), m.spellCache.OldestAge().Hours()
}

// ClearItemCache empties the item cache, returning the removed entry count.
func (m *Manager) ClearItemCache() int {
	return m.itemCache.Clear()
}

// ClearSpellCache empties the spell cache, returning the removed entry count.
func (m *Manager) ClearSpellCache() int {
	return m.spellCache.Clear()
}

// ClearAllCaches empties both caches.
func (m *Manager) ClearAllCaches() types.ClearResult {
	items := m.itemCache.Clear()
	spells := m.spellCache.Clear()
	slog.Info("cleared all caches", "items", items, "spells", spells)
	return types.ClearResult{
		Items:  items,
		Spells: spells,
		Total:  items + spells,
	}
}

// fetch retrieves a page body with the transport retry policy applied.
func (m *Manager) fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := retry.WithRetry(ctx, m.client, url, m.retryCfg)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}

// itemResultFromCache rebuilds an ItemResult from its cached JSON form.
func itemResultFromCache(cached any) *types.ItemResult {
	data, err := json.Marshal(cached)
	if err != nil {
		return nil
	}
	var result types.ItemResult
	if err := json.Unmarshal(data, &result); err != nil {
		slog.Warn("discarding malformed cached item entry", "error", err)
		return nil
	}
	if result.ID == "" {
		return nil
	}
	return &result
}
