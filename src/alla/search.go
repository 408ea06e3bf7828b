package alla

import (
	"bytes"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var spellIDRegex = regexp.MustCompile(`id=(\d+)`)

// ResolveItemID finds the id of the item named exactly searchName (case
// insensitive) on a search-results page. The first table on the page is a
// filter/header table, results live in the second. Items never fall back to
// partial matching; spells do (see ResolveSpellID). Returns "" when no
// exact match exists.
func ResolveItemID(html []byte, searchName string) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		slog.Error("failed to parse search results", "item", searchName, "error", err)
		return ""
	}

	tables := doc.Find("table")
	if tables.Length() < 2 {
		slog.Warn("no results table in search results", "item", searchName)
		return ""
	}

	itemID := ""
	tables.Eq(1).Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return true
		}

		link := cells.Eq(2).Find("a")
		if link.Length() == 0 {
			return true
		}

		name := strings.TrimSpace(link.First().Text())
		if strings.EqualFold(name, searchName) {
			itemID = strings.TrimSpace(cells.Eq(0).Text())
			slog.Info("found exact item match", "item", name, "id", itemID)
			return false
		}
		return true
	})

	if itemID == "" {
		slog.Warn("no exact name match in search results", "item", searchName)
	}
	return itemID
}

// SimilarItems collects every linked item name from a search-results page,
// in page order, for presenting as alternatives when no exact match exists.
// Returns an empty slice, never nil, when the results table is absent.
func SimilarItems(html []byte) []string {
	similar := []string{}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		slog.Error("failed to parse search results", "error", err)
		return similar
	}

	tables := doc.Find("table")
	if tables.Length() < 2 {
		slog.Warn("no similar items found in search results")
		return similar
	}

	tables.Eq(1).Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		link := cells.Eq(2).Find("a")
		if link.Length() == 0 {
			return
		}
		similar = append(similar, strings.TrimSpace(link.First().Text()))
	})

	slog.Info("found similar items", "count", len(similar))
	return similar
}

// ResolveSpellID finds a spell id on a spell search-results page. Two
// passes over every table: exact case-insensitive name match first, then
// first substring match. Returns "" when neither pass matches.
func ResolveSpellID(html []byte, spellName string) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		slog.Error("failed to parse spell search results", "spell", spellName, "error", err)
		return ""
	}

	exact := func(candidate string) bool {
		return strings.EqualFold(candidate, spellName)
	}
	partial := func(candidate string) bool {
		return strings.Contains(strings.ToLower(candidate), strings.ToLower(spellName))
	}

	if id := findSpellRow(doc, exact); id != "" {
		slog.Debug("found exact spell match", "spell", spellName, "id", id)
		return id
	}
	if id := findSpellRow(doc, partial); id != "" {
		slog.Debug("found partial spell match", "spell", spellName, "id", id)
		return id
	}

	slog.Warn("no spell id found", "spell", spellName)
	return ""
}

// findSpellRow returns the id of the first row whose name cell satisfies
// the given match, scanning all tables in page order.
func findSpellRow(doc *goquery.Document, match func(string) bool) string {
	spellID := ""
	doc.Find("table tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return true
		}

		nameCell := cells.Eq(1)
		link := nameCell.Find("a")
		if link.Length() == 0 {
			return true
		}

		if !match(strings.TrimSpace(nameCell.Text())) {
			return true
		}

		href, _ := link.First().Attr("href")
		if m := spellIDRegex.FindStringSubmatch(href); m != nil {
			spellID = m[1]
			return false
		}
		return true
	})
	return spellID
}
