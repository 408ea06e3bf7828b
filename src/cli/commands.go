package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/lazarus-tools/eq-gear-compare-go/src/gear"
)

// CommandHandler handles CLI commands
type CommandHandler struct {
	manager *gear.Manager
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(manager *gear.Manager) *CommandHandler {
	return &CommandHandler{manager: manager}
}

// Item executes the item subcommand: look the item up, print its stats and
// optionally append it to a class comparison sheet.
func (h *CommandHandler) Item(ctx context.Context, config ItemConfig) error {
	slog.Info("looking up item", "item", config.Name)

	result, similar, err := h.manager.LookupItem(ctx, config.Name)
	if err != nil {
		return fmt.Errorf("item lookup failed: %w", err)
	}

	if result == nil {
		if len(similar) == 0 {
			fmt.Printf("no match for %q\n", config.Name)
			return nil
		}
		fmt.Printf("no exact match for %q, similar items:\n", config.Name)
		for _, name := range similar {
			fmt.Println("  " + name)
		}
		return nil
	}

	if err := printJSON(result); err != nil {
		return err
	}

	if !config.Append {
		return nil
	}

	if !gear.IsKnownClass(config.Class) {
		return fmt.Errorf("unknown character class: %q", config.Class)
	}

	sheetPath := gear.SheetPath(config.SheetDir, config.Class)
	name, _ := result.Stats["Name"].(string)

	duplicate, err := gear.HasSheetItem(sheetPath, name)
	if err != nil {
		return fmt.Errorf("failed to check sheet for duplicates: %w", err)
	}
	if duplicate {
		slog.Warn("item already on sheet, skipping append", "item", name, "sheet", sheetPath)
		return nil
	}

	return gear.AppendItemToSheet(sheetPath, result, config.Slot)
}

// Spell executes the spell subcommand.
func (h *CommandHandler) Spell(ctx context.Context, config SpellConfig) error {
	slog.Info("looking up spell", "spell", config.Name, "id", config.ID)

	details := h.manager.LookupSpell(ctx, config.Name, config.ID)
	if details == nil {
		fmt.Printf("no spell details found for %q\n", config.Name)
		return nil
	}

	return printJSON(details)
}

// Cache executes the cache subcommand.
func (h *CommandHandler) Cache(ctx context.Context, config CacheConfig) error {
	switch {
	case config.ClearAll:
		return printJSON(h.manager.ClearAllCaches())
	case config.ClearItems:
		fmt.Printf("cleared %d item cache entries\n", h.manager.ClearItemCache())
		return nil
	case config.ClearSpells:
		fmt.Printf("cleared %d spell cache entries\n", h.manager.ClearSpellCache())
		return nil
	default:
		if config.ShowStats {
			items, itemAge := h.manager.ItemCacheDetail()
			spells, spellAge := h.manager.SpellCacheDetail()
			fmt.Printf("item cache:  %d entries, oldest %.1fh\n", items, itemAge)
			fmt.Printf("spell cache: %d entries, oldest %.1fh\n", spells, spellAge)
		}
		return printJSON(h.manager.CacheStats())
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
