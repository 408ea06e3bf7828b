package validation

import (
	"fmt"

	"github.com/Oudwins/zog"
	"github.com/lazarus-tools/eq-gear-compare-go/src/types"
)

// ValidateEffectDetail validates an extracted spell detail record.
func ValidateEffectDetail(details *types.EffectDetail) error {
	if details == nil {
		return fmt.Errorf("effect detail is nil")
	}

	if issues := EffectDetailSchema.Validate(details); len(issues) > 0 {
		return fmt.Errorf("invalid effect detail: %v", zog.Issues.SanitizeMap(issues))
	}
	return nil
}

// ValidateSheetRow validates a comparison sheet row before it is written.
func ValidateSheetRow(row map[string]string, validSlots []string) error {
	if row["Name"] == "" {
		return fmt.Errorf("row has no item name")
	}

	slot := row["Slot"]
	if slot == "" {
		return fmt.Errorf("row has no equipment slot")
	}

	for _, valid := range validSlots {
		if slot == valid {
			return nil
		}
	}
	return fmt.Errorf("unknown equipment slot: %s", slot)
}
