package stats

import (
	"regexp"
	"strings"
)

// statReplacements maps normalized label variants to canonical stat keys.
var statReplacements = map[string]string{
	"ARMOR CLASS":  "AC",
	"HEALTH":       "HP",
	"STRENGTH":     "STR",
	"STAMINA":      "STA",
	"AGILITY":      "AGI",
	"DEXTERITY":    "DEX",
	"WISDOM":       "WIS",
	"INTELLIGENCE": "INT",
	"CHARISMA":     "CHA",
	"ENDURANCE":    "END",
	// The bard skill label "Unknown (50)"; the lookup key is its
	// post-strip shape.
	"UNKNOWN 50": "SINGING RESONANCE",
}

var nonAlphaNumRegex = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
var asteriskRegex = regexp.MustCompile(`\*+`)
var firstIntRegex = regexp.MustCompile(`[-+]?\d+`)

// NormalizeStatName maps a raw stat label to its canonical key: special
// characters stripped, upper-cased, then the fixed substitution table.
// Unrecognised labels pass through unchanged.
func NormalizeStatName(name string) string {
	name = strings.ToUpper(strings.TrimSpace(nonAlphaNumRegex.ReplaceAllString(name, "")))
	if replacement, ok := statReplacements[name]; ok {
		return replacement
	}
	return name
}

// CleanStatValue strips asterisks and whitespace from a raw stat value.
// Percentage values are kept whole, otherwise the first integer substring is
// returned. Values with no numeric content (type names etc) pass through.
func CleanStatValue(value string) string {
	value = strings.TrimSpace(asteriskRegex.ReplaceAllString(value, ""))

	if strings.HasSuffix(value, "%") {
		return value
	}

	if numeric := firstIntRegex.FindString(value); numeric != "" {
		return numeric
	}

	return value
}
