package alla

import (
	"bytes"
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lazarus-tools/eq-gear-compare-go/src/stats"
	"github.com/lazarus-tools/eq-gear-compare-go/src/types"
)

// SpellDetailer resolves an effect slot's spell reference to its full
// detail record. A nil result means the spell could not be resolved; item
// extraction continues without it.
type SpellDetailer interface {
	ExtractSpellDetails(ctx context.Context, name, id string) *types.EffectDetail
}

// ItemParser extracts the full stat mapping from item detail pages.
type ItemParser struct {
	rules  []stats.Rule
	spells SpellDetailer
}

// NewItemParser creates a new item parser. The spell detailer may be nil,
// in which case effect slots are left unresolved.
func NewItemParser(spells SpellDetailer) *ItemParser {
	return &ItemParser{
		rules:  stats.Catalog(),
		spells: spells,
	}
}

var (
	// Vendor sell prices share the "<label>: <int>" shape with real stats
	// and are removed before any pattern runs.
	valueRegex = regexp.MustCompile(`Value:\s*[-+]?\d+`)

	itemCastTimeRegex = regexp.MustCompile(`\(Cast Time:\s*([\d.]+\s*\w+)\)`)
	itemChargesRegex  = regexp.MustCompile(`Charges:\s*(\w+)`)
	hrefIDRegex       = regexp.MustCompile(`id=(\d+)`)

	effectLabelRegexes = buildEffectLabelRegexes()
)

func buildEffectLabelRegexes() map[string]*regexp.Regexp {
	regexes := make(map[string]*regexp.Regexp, len(types.EffectSlotLabels))
	for _, label := range types.EffectSlotLabels {
		regexes[label] = regexp.MustCompile(`^` + regexp.QuoteMeta(label) + `:`)
	}
	return regexes
}

// headingIgnoreWords disqualify a heading from being the item name.
var headingIgnoreWords = []string{"search", "result", "menu", "navigation"}

// ExtractItemStats extracts every recognised stat from an item detail page.
// Individual pattern misses are not errors; a total parse failure yields an
// empty map, never an error. Later extraction steps may overwrite keys from
// earlier ones: the most specific pattern wins by running last.
func (p *ItemParser) ExtractItemStats(ctx context.Context, html []byte) types.StatMap {
	statMap := types.StatMap{}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		slog.Error("failed to parse item page", "error", err)
		return statMap
	}

	statMap["Name"] = extractItemName(doc)

	text := valueRegex.ReplaceAllString(doc.Text(), "")
	stats.ApplyCatalog(p.rules, text, statMap)

	p.processEffects(ctx, doc, statMap)

	slog.Info("extracted item stats", "item", statMap["Name"], "count", len(statMap))
	return statMap
}

// extractItemName takes the first heading-like element whose text is not
// page chrome. Defaults to "Unknown Item".
func extractItemName(doc *goquery.Document) string {
	name := ""
	doc.Find("h1, h2, strong").EachWithBreak(func(i int, heading *goquery.Selection) bool {
		text := strings.TrimSpace(heading.Text())
		if text == "" {
			return true
		}
		lower := strings.ToLower(text)
		for _, ignore := range headingIgnoreWords {
			if strings.Contains(lower, ignore) {
				return true
			}
		}
		name = text
		return false
	})

	if name == "" {
		return "Unknown Item"
	}
	return name
}

// processEffects resolves the four effect slots. Cast time and charges
// printed next to the slot on the item page take precedence over the values
// on the spell's own detail page.
func (p *ItemParser) processEffects(ctx context.Context, doc *goquery.Document, statMap types.StatMap) {
	if p.spells == nil {
		return
	}

	for _, label := range types.EffectSlotLabels {
		labelRegex := effectLabelRegexes[label]

		doc.Find("td[colspan='2']").Each(func(i int, td *goquery.Selection) {
			if !cellHasLabel(td, labelRegex) {
				return
			}

			link := td.Find("a").First()
			if link.Length() == 0 {
				return
			}

			spellName := strings.TrimSpace(link.Text())
			href, _ := link.Attr("href")

			idMatch := hrefIDRegex.FindStringSubmatch(href)
			if idMatch == nil {
				return
			}

			cellText := td.Text()
			castTime := ""
			if m := itemCastTimeRegex.FindStringSubmatch(cellText); m != nil {
				castTime = m[1]
			}
			charges := ""
			if m := itemChargesRegex.FindStringSubmatch(cellText); m != nil {
				charges = m[1]
			}

			slog.Debug("found effect slot", "label", label, "spell", spellName, "id", idMatch[1])

			details := p.spells.ExtractSpellDetails(ctx, spellName, idMatch[1])
			if details == nil {
				return
			}

			if castTime != "" {
				details.CastTime = castTime
			}
			if charges != "" {
				details.Charges = charges
			}

			statMap[strings.ToUpper(label)+"_DETAILS"] = details
		})
	}
}

// cellHasLabel reports whether the cell contains a bold element whose text
// starts with the effect label.
func cellHasLabel(td *goquery.Selection, labelRegex *regexp.Regexp) bool {
	found := false
	td.Find("b").EachWithBreak(func(i int, b *goquery.Selection) bool {
		if labelRegex.MatchString(strings.TrimSpace(b.Text())) {
			found = true
			return false
		}
		return true
	})
	return found
}
