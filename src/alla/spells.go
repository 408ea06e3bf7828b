package alla

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lazarus-tools/eq-gear-compare-go/src/cache"
	"github.com/lazarus-tools/eq-gear-compare-go/src/http"
	"github.com/lazarus-tools/eq-gear-compare-go/src/retry"
	"github.com/lazarus-tools/eq-gear-compare-go/src/types"
	"github.com/lazarus-tools/eq-gear-compare-go/src/validation"
	"golang.org/x/net/html"
)

// SpellParser extracts spell detail records, caching each resolved spell so
// repeated lookups by the same name and id skip the network entirely.
type SpellParser struct {
	client http.HTTPClient
	cache  *cache.Store
	retry  retry.Config
}

// NewSpellParser creates a new spell parser. The cache may be nil to
// disable spell caching.
func NewSpellParser(client http.HTTPClient, spellCache *cache.Store) *SpellParser {
	return &SpellParser{
		client: client,
		cache:  spellCache,
		retry:  retry.DefaultConfig(),
	}
}

var (
	effectOrdinalRegex = regexp.MustCompile(`Effect\s+(\d+)`)
	chargesRegex       = regexp.MustCompile(`Charges:\s*(\w+)`)
	castTimeRegex      = regexp.MustCompile(`Cast Time:\s*([\d.]+\s*\w+)`)
)

// ExtractSpellDetails fetches and parses a spell's detail page. When id is
// empty the spell search endpoint resolves the name first. Any fault is
// logged and yields nil; spell resolution failures never abort the owning
// item extraction.
func (p *SpellParser) ExtractSpellDetails(ctx context.Context, name, id string) *types.EffectDetail {
	if id == "" {
		body, err := p.fetch(ctx, SpellSearchURL(name))
		if err != nil {
			slog.Error("spell search failed", "spell", name, "error", err)
			return nil
		}
		id = ResolveSpellID(body, name)
		if id == "" {
			slog.Warn("no spell id found", "spell", name)
			return nil
		}
	}

	cacheKey := name + "_" + id
	if p.cache != nil {
		if cached := p.cache.Get(cacheKey); cached != nil {
			if details := effectDetailFromCache(cached); details != nil {
				return details
			}
		}
	}

	spellURL := SpellURL(id)
	body, err := p.fetch(ctx, spellURL)
	if err != nil {
		slog.Error("failed to fetch spell page", "spell", name, "id", id, "error", err)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		slog.Error("failed to parse spell page", "spell", name, "id", id, "error", err)
		return nil
	}

	details := &types.EffectDetail{
		Name:    name,
		ID:      id,
		URL:     spellURL,
		Effects: extractEffects(doc),
	}

	pageText := doc.Text()
	if m := chargesRegex.FindStringSubmatch(pageText); m != nil {
		details.Charges = m[1]
	}
	if m := castTimeRegex.FindStringSubmatch(pageText); m != nil {
		details.CastTime = m[1]
	}

	if err := validation.ValidateEffectDetail(details); err != nil {
		slog.Warn("extracted spell details failed validation, not caching",
			"spell", name, "id", id, "error", err)
		return details
	}

	if p.cache != nil {
		p.cache.Set(cacheKey, details)
	}

	slog.Debug("extracted spell details", "spell", name, "id", id, "effects", len(details.Effects))
	return details
}

// fetch retrieves a page body, treating any non-200 outcome as a failure.
func (p *SpellParser) fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := retry.WithRetry(ctx, p.client, url, p.retry)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}

// extractEffects walks the document in order from the "Effects" section
// header, collecting two-cell rows whose first cell is a bold "Effect <n>"
// label. A new table ends the section.
func extractEffects(doc *goquery.Document) []string {
	effects := []string{}

	var header *html.Node
	doc.Find("h2.section_header").EachWithBreak(func(i int, h *goquery.Selection) bool {
		if strings.TrimSpace(h.Text()) == "Effects" {
			header = h.Nodes[0]
			return false
		}
		return true
	})
	if header == nil {
		return effects
	}

	for node := nextInDocument(header); node != nil; node = nextInDocument(node) {
		if node.Type != html.ElementNode {
			continue
		}
		if node.Data == "table" {
			break
		}
		if node.Data != "tr" {
			continue
		}

		cells := childElements(node, "td")
		if len(cells) != 2 {
			continue
		}

		bold := findDescendant(cells[0], "b")
		if bold == nil {
			continue
		}
		boldText := nodeText(bold)
		if !strings.Contains(boldText, "Effect") {
			continue
		}

		if m := effectOrdinalRegex.FindStringSubmatch(boldText); m != nil {
			effects = append(effects, m[1]+": "+strings.TrimSpace(nodeText(cells[1])))
		}
	}

	return effects
}

// nextInDocument returns the successor of n in document (preorder) order.
func nextInDocument(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for n != nil {
		if n.NextSibling != nil {
			return n.NextSibling
		}
		n = n.Parent
	}
	return nil
}

// childElements returns the direct element children of n with the given tag.
func childElements(n *html.Node, tag string) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			children = append(children, c)
		}
	}
	return children
}

// findDescendant returns the first descendant of n with the given tag.
func findDescendant(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
		if found := findDescendant(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// nodeText flattens the text content of a node.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// effectDetailFromCache rebuilds an EffectDetail from its cached JSON form.
func effectDetailFromCache(cached any) *types.EffectDetail {
	data, err := json.Marshal(cached)
	if err != nil {
		return nil
	}
	var details types.EffectDetail
	if err := json.Unmarshal(data, &details); err != nil {
		slog.Warn("discarding malformed cached spell entry", "error", err)
		return nil
	}
	if details.ID == "" {
		return nil
	}
	return &details
}
