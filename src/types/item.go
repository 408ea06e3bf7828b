package types

// StatMap maps canonical stat keys (upper-case, from the fixed stat
// vocabulary) to extracted values. Values are plain numeric strings,
// percentage strings ("50%"), base-plus-heroic composites ("10 +5") or,
// for the four effect slots, a nested *EffectDetail.
//
// StatMaps round-trip through the JSON item cache, so after a cache read an
// effect slot value is a map[string]any rather than an *EffectDetail.
type StatMap map[string]any

// EffectDetail describes a spell referenced by an item's Focus, Worn, Proc
// or Click effect slot.
type EffectDetail struct {
	Name     string   `json:"name"`
	ID       string   `json:"id"`
	URL      string   `json:"url"`
	Effects  []string `json:"effects"`
	CastTime string   `json:"cast_time,omitempty"`
	Charges  string   `json:"charges,omitempty"`
}

// EffectSlotLabels are the item-page labels that may carry a spell link.
var EffectSlotLabels = []string{"Focus Effect", "Worn Effect", "Proc Effect", "Click Effect"}

// ItemResult is the finished product of an item lookup: the resolved site
// identifier, the canonical detail-page URL and the extracted stats.
type ItemResult struct {
	ID    string  `json:"id"`
	URL   string  `json:"url"`
	Stats StatMap `json:"stats"`
}

// CacheStats summarises the contents of both caches.
type CacheStats struct {
	Items  int `json:"items"`
	Spells int `json:"spells"`
	Total  int `json:"total"`
}

// ClearResult reports how many entries were removed from each cache.
type ClearResult struct {
	Items  int `json:"items"`
	Spells int `json:"spells"`
	Total  int `json:"total"`
}
