// Package alla scrapes item and spell data from an Allakhazam-style
// EverQuest database site.
package alla

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	Host = "https://www.lazaruseq.com/Alla/"
)

// itemNameCleanRegex strips characters the item search endpoint rejects.
var itemNameCleanRegex = regexp.MustCompile(`[^\w\s\-'+]`)

// ItemSearchURL returns the search-results address for an item name. The
// name is cleaned before encoding; the query shape (including the doubled
// "a" parameter) is what the site expects verbatim.
func ItemSearchURL(itemName string) string {
	cleaned := strings.TrimSpace(itemNameCleanRegex.ReplaceAllString(itemName, ""))
	return Host + "?a=items_search&&a=items&iname=" + url.QueryEscape(cleaned) + "&isearch=1"
}

// ItemURL returns the detail-page address for an item id.
func ItemURL(itemID string) string {
	return Host + "?a=item&id=" + itemID
}

// SpellSearchURL returns the search-results address for a spell name.
func SpellSearchURL(spellName string) string {
	return Host + "?a=spells&name=" + url.QueryEscape(spellName) + "&type=0&level=&opt=2"
}

// SpellURL returns the detail-page address for a spell id.
func SpellURL(spellID string) string {
	return Host + "?a=spell&id=" + spellID
}
