package gear

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gosimple/slug"
	"github.com/lazarus-tools/eq-gear-compare-go/src/types"
	"github.com/lazarus-tools/eq-gear-compare-go/src/validation"
)

// SheetPath returns the comparison sheet filename for a character class,
// e.g. "Shadow Knight" -> "<dir>/shadow-knight.csv".
func SheetPath(dir, class string) string {
	return filepath.Join(dir, slug.Make(class)+".csv")
}

// HasSheetItem reports whether an item of the given name is already on the
// sheet. A missing sheet file simply means no duplicates.
func HasSheetItem(path, itemName string) (bool, error) {
	rows, _, err := readSheet(path)
	if err != nil {
		return false, err
	}
	for _, row := range rows {
		if row["Name"] == itemName {
			return true, nil
		}
	}
	return false, nil
}

// AppendItemToSheet appends a looked-up item to a class comparison sheet
// under the given equipment slot. Headers are the union of all stat keys
// seen so far, with Slot first; rows stay sorted by equipment slot order.
func AppendItemToSheet(path string, result *types.ItemResult, slot string) error {
	row := flattenResult(result)
	row["Slot"] = slot

	if err := validation.ValidateSheetRow(row, Slots); err != nil {
		return fmt.Errorf("refusing to write sheet row: %w", err)
	}

	rows, headers, err := readSheet(path)
	if err != nil {
		return fmt.Errorf("failed to read sheet '%s': %w", path, err)
	}

	headerSet := make(map[string]bool, len(headers)+len(row))
	for _, header := range headers {
		headerSet[header] = true
	}
	for key := range row {
		headerSet[key] = true
	}

	delete(headerSet, "Slot")
	ordered := make([]string, 0, len(headerSet)+1)
	for header := range headerSet {
		ordered = append(ordered, header)
	}
	sort.Strings(ordered)
	ordered = append([]string{"Slot"}, ordered...)

	rows = append(rows, row)
	sort.SliceStable(rows, func(i, j int) bool {
		return SlotIndex(rows[i]["Slot"]) < SlotIndex(rows[j]["Slot"])
	})

	if err := writeSheet(path, ordered, rows); err != nil {
		return fmt.Errorf("failed to write sheet '%s': %w", path, err)
	}

	slog.Info("appended item to sheet", "sheet", path, "item", row["Name"], "slot", slot)
	return nil
}

// flattenResult turns an ItemResult into a flat CSV row. Effect slot
// details collapse to the spell name with its cast time, charges and effect
// lines, the way the original tooltip rendered them.
func flattenResult(result *types.ItemResult) map[string]string {
	row := map[string]string{
		"ID": result.ID,
		// The trailing space stops spreadsheet apps from eating the URL.
		"URL": result.URL + " ",
	}

	for key, value := range result.Stats {
		switch v := value.(type) {
		case string:
			row[key] = v
		case *types.EffectDetail:
			row[key] = formatEffectValue(v)
		default:
			// Cached results carry effect details as decoded JSON maps.
			if details, ok := value.(map[string]any); ok {
				row[key] = formatEffectMap(details)
			}
		}
	}
	return row
}

func formatEffectValue(details *types.EffectDetail) string {
	var sb strings.Builder
	sb.WriteString(details.Name)
	if details.CastTime != "" {
		sb.WriteString(" (Cast Time: " + details.CastTime + ")")
	}
	if details.Charges != "" {
		sb.WriteString("\nCharges: " + details.Charges)
	}
	for _, effect := range details.Effects {
		sb.WriteString("\n" + effect)
	}
	return sb.String()
}

func formatEffectMap(details map[string]any) string {
	flat := &types.EffectDetail{}
	if name, ok := details["name"].(string); ok {
		flat.Name = name
	}
	if castTime, ok := details["cast_time"].(string); ok {
		flat.CastTime = castTime
	}
	if charges, ok := details["charges"].(string); ok {
		flat.Charges = charges
	}
	if effects, ok := details["effects"].([]any); ok {
		for _, effect := range effects {
			if s, ok := effect.(string); ok {
				flat.Effects = append(flat.Effects, s)
			}
		}
	}
	return formatEffectValue(flat)
}

// readSheet loads a sheet into rows keyed by header. A missing file yields
// no rows and no headers.
func readSheet(path string) ([]map[string]string, []string, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	headers := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, headers, nil
}

func writeSheet(path string, headers []string, rows []map[string]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		record := make([]string, len(headers))
		for i, header := range headers {
			record[i] = row[header]
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
