package gear

import (
	"context"
	"testing"

	"github.com/lazarus-tools/eq-gear-compare-go/src/alla"
	"github.com/lazarus-tools/eq-gear-compare-go/src/http"
	"github.com/lazarus-tools/eq-gear-compare-go/src/types"
)

const searchPageFixture = `
<html><body>
<table><tr><td>site chrome</td></tr></table>
<table>
<tr><td>5001</td><td>icon</td><td><a href="?a=item&id=5001">Cloak of Flames</a></td></tr>
<tr><td>5002</td><td>icon</td><td><a href="?a=item&id=5002">Cloak of Flames Burning</a></td></tr>
</table>
</body></html>`

const itemPageFixture = `
<html><body>
<h2>Cloak of Flames</h2>
<table>
<tr><td colspan="2">Slot: BACK
Armor Class: 35
Strength: 10
Haste: 41%
</td></tr>
<tr><td colspan="2"><b>Worn Effect:</b> <a href="?a=spell&id=1234">Inferno Shield</a></td></tr>
</table>
</body></html>`

const wornSpellFixture = `
<html><body>
<table>
<tr><td colspan="2"><h2 class="section_header">Effects</h2></td></tr>
<tr><td><b>Effect 1</b></td><td>Increase Damage Shield by 15</td></tr>
</table>
</body></html>`

func newTestManager(t *testing.T) (*Manager, *http.MockHTTPClient) {
	t.Helper()
	client := http.NewMockHTTPClient()
	manager := NewManager(Config{
		HTTPClient: client,
		CacheDir:   t.TempDir(),
	})
	return manager, client
}

func setItemFixtures(client *http.MockHTTPClient) {
	client.SetResponse(alla.ItemSearchURL("Cloak of Flames"), &http.Response{StatusCode: 200, Body: []byte(searchPageFixture)})
	client.SetResponse(alla.ItemURL("5001"), &http.Response{StatusCode: 200, Body: []byte(itemPageFixture)})
	client.SetResponse(alla.SpellURL("1234"), &http.Response{StatusCode: 200, Body: []byte(wornSpellFixture)})
}

func TestLookupItem_FullPipeline(t *testing.T) {
	manager, client := newTestManager(t)
	setItemFixtures(client)

	result, similar, err := manager.LookupItem(context.Background(), "Cloak of Flames")
	if err != nil {
		t.Fatalf("LookupItem() error = %v", err)
	}
	if similar != nil {
		t.Fatalf("LookupItem() similar = %v, want nil on exact match", similar)
	}

	if result.ID != "5001" {
		t.Errorf("ID = %q, want %q", result.ID, "5001")
	}
	if result.URL != alla.ItemURL("5001") {
		t.Errorf("URL = %q, want %q", result.URL, alla.ItemURL("5001"))
	}
	if result.Stats["AC"] != "35" {
		t.Errorf("Stats[AC] = %v, want %q", result.Stats["AC"], "35")
	}
	if result.Stats["STR"] != "10" {
		t.Errorf("Stats[STR] = %v, want %q", result.Stats["STR"], "10")
	}

	details, ok := result.Stats["WORN EFFECT_DETAILS"].(*types.EffectDetail)
	if !ok {
		t.Fatalf("Stats[WORN EFFECT_DETAILS] = %v, want *EffectDetail", result.Stats["WORN EFFECT_DETAILS"])
	}
	if details.Name != "Inferno Shield" {
		t.Errorf("effect Name = %q, want %q", details.Name, "Inferno Shield")
	}
	if len(details.Effects) != 1 || details.Effects[0] != "1: Increase Damage Shield by 15" {
		t.Errorf("effect Effects = %v", details.Effects)
	}
}

func TestLookupItem_SecondLookupServedFromCache(t *testing.T) {
	manager, client := newTestManager(t)
	setItemFixtures(client)

	first, _, err := manager.LookupItem(context.Background(), "Cloak of Flames")
	if err != nil {
		t.Fatalf("first LookupItem() error = %v", err)
	}
	callsAfterFirst := len(client.GetCalls())

	second, similar, err := manager.LookupItem(context.Background(), "cloak of flames")
	if err != nil {
		t.Fatalf("second LookupItem() error = %v", err)
	}
	if similar != nil {
		t.Fatalf("second LookupItem() similar = %v, want nil", similar)
	}

	if len(client.GetCalls()) != callsAfterFirst {
		t.Errorf("second lookup made %d extra calls, want 0",
			len(client.GetCalls())-callsAfterFirst)
	}

	if second.ID != first.ID {
		t.Errorf("cached ID = %q, want %q", second.ID, first.ID)
	}
	if second.Stats["AC"] != "35" {
		t.Errorf("cached Stats[AC] = %v, want %q", second.Stats["AC"], "35")
	}
	// Cached stats come back through JSON, so effect details are plain maps.
	if _, ok := second.Stats["WORN EFFECT_DETAILS"].(map[string]any); !ok {
		t.Errorf("cached Stats[WORN EFFECT_DETAILS] = %T, want map", second.Stats["WORN EFFECT_DETAILS"])
	}
}

func TestLookupItem_NoExactMatchReturnsSimilar(t *testing.T) {
	manager, client := newTestManager(t)
	client.SetResponse(alla.ItemSearchURL("Cloak of Flame"), &http.Response{StatusCode: 200, Body: []byte(searchPageFixture)})

	result, similar, err := manager.LookupItem(context.Background(), "Cloak of Flame")
	if err != nil {
		t.Fatalf("LookupItem() error = %v", err)
	}
	if result != nil {
		t.Errorf("LookupItem() result = %v, want nil without exact match", result)
	}

	expected := []string{"Cloak of Flames", "Cloak of Flames Burning"}
	if len(similar) != len(expected) {
		t.Fatalf("similar = %v, want %v", similar, expected)
	}
	for i := range expected {
		if similar[i] != expected[i] {
			t.Errorf("similar[%d] = %q, want %q", i, similar[i], expected[i])
		}
	}
}

func TestLookupItem_SearchFailure(t *testing.T) {
	manager, client := newTestManager(t)
	client.SetResponse(alla.ItemSearchURL("Cloak of Flames"), &http.Response{StatusCode: 404})

	_, _, err := manager.LookupItem(context.Background(), "Cloak of Flames")
	if err == nil {
		t.Fatal("LookupItem() error = nil, want transport error")
	}
}

func TestLookupSpell(t *testing.T) {
	manager, client := newTestManager(t)
	client.SetResponse(alla.SpellURL("1234"), &http.Response{StatusCode: 200, Body: []byte(wornSpellFixture)})

	details := manager.LookupSpell(context.Background(), "Inferno Shield", "1234")
	if details == nil {
		t.Fatal("LookupSpell() returned nil")
	}
	if details.ID != "1234" {
		t.Errorf("ID = %q, want %q", details.ID, "1234")
	}
}

func TestCacheStatsAndClear(t *testing.T) {
	manager, client := newTestManager(t)
	setItemFixtures(client)

	if _, _, err := manager.LookupItem(context.Background(), "Cloak of Flames"); err != nil {
		t.Fatalf("LookupItem() error = %v", err)
	}

	stats := manager.CacheStats()
	if stats.Items != 1 {
		t.Errorf("CacheStats().Items = %d, want 1", stats.Items)
	}
	if stats.Spells != 1 {
		t.Errorf("CacheStats().Spells = %d, want 1", stats.Spells)
	}
	if stats.Total != stats.Items+stats.Spells {
		t.Errorf("CacheStats().Total = %d, want %d", stats.Total, stats.Items+stats.Spells)
	}

	cleared := manager.ClearAllCaches()
	if cleared.Total != 2 {
		t.Errorf("ClearAllCaches().Total = %d, want 2", cleared.Total)
	}
	if after := manager.CacheStats(); after.Total != 0 {
		t.Errorf("CacheStats().Total after clear = %d, want 0", after.Total)
	}
}
