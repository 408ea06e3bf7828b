package alla

import (
	"testing"
)

// search results pages carry a filter/header table first; results live in
// the second table with id, icon and name columns.
const itemSearchFixture = `
<html><body>
<table>
  <tr><td>Search filters</td></tr>
</table>
<table>
  <tr><th>ID</th><th>Icon</th><th>Name</th></tr>
  <tr>
    <td>1001</td><td><img src="icon.png"/></td>
    <td><a href="?a=item&id=1001">Raiment of Whispers Tattered</a></td>
  </tr>
  <tr>
    <td>1002</td><td><img src="icon.png"/></td>
    <td><a href="?a=item&id=1002">RAIMENT OF WHISPERS</a></td>
  </tr>
  <tr>
    <td>1003</td><td><img src="icon.png"/></td>
    <td><a href="?a=item&id=1003">Raiment</a></td>
  </tr>
</table>
</body></html>`

func TestResolveItemID_ExactMatchPreferred(t *testing.T) {
	// The pure substring row appears first; the exact match (differing
	// only in case) must win anyway.
	id := ResolveItemID([]byte(itemSearchFixture), "Raiment of Whispers")
	if id != "1002" {
		t.Errorf("ResolveItemID() = %q, want %q", id, "1002")
	}
}

func TestResolveItemID_NoPartialFallback(t *testing.T) {
	// Items never fall back to substring matching.
	id := ResolveItemID([]byte(itemSearchFixture), "Whispers")
	if id != "" {
		t.Errorf("ResolveItemID() = %q, want no match", id)
	}
}

func TestResolveItemID_MissingResultsTable(t *testing.T) {
	html := `<html><body><table><tr><td>only one table</td></tr></table></body></html>`
	id := ResolveItemID([]byte(html), "Anything")
	if id != "" {
		t.Errorf("ResolveItemID() = %q, want empty on structural absence", id)
	}
}

func TestSimilarItems(t *testing.T) {
	similar := SimilarItems([]byte(itemSearchFixture))

	expected := []string{"Raiment of Whispers Tattered", "RAIMENT OF WHISPERS", "Raiment"}
	if len(similar) != len(expected) {
		t.Fatalf("SimilarItems() returned %d names, want %d", len(similar), len(expected))
	}
	for i, name := range expected {
		if similar[i] != name {
			t.Errorf("SimilarItems()[%d] = %q, want %q", i, similar[i], name)
		}
	}
}

func TestSimilarItems_EmptyNeverNil(t *testing.T) {
	similar := SimilarItems([]byte(`<html><body><p>no tables</p></body></html>`))
	if similar == nil {
		t.Fatal("SimilarItems() = nil, want empty slice")
	}
	if len(similar) != 0 {
		t.Errorf("SimilarItems() returned %d names, want 0", len(similar))
	}
}

const spellSearchFixture = `
<html><body>
<table>
  <tr>
    <td>1</td><td><a href="?a=spell&id=201">Greater Healing Rain</a></td>
  </tr>
  <tr>
    <td>2</td><td><a href="?a=spell&id=202">Greater Healing</a></td>
  </tr>
</table>
</body></html>`

func TestResolveSpellID(t *testing.T) {
	tests := []struct {
		name      string
		spellName string
		expected  string
	}{
		{
			name:      "exact match preferred over earlier substring row",
			spellName: "greater healing",
			expected:  "202",
		},
		{
			name:      "partial match as fallback",
			spellName: "Healing Rain",
			expected:  "201",
		},
		{
			name:      "no match at all",
			spellName: "Complete Heal",
			expected:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := ResolveSpellID([]byte(spellSearchFixture), tt.spellName)
			if id != tt.expected {
				t.Errorf("ResolveSpellID(%q) = %q, want %q", tt.spellName, id, tt.expected)
			}
		})
	}
}
