package gear

// Classes are the playable character classes, one comparison sheet each.
var Classes = []string{
	"Bard", "Beastlord", "Berserker", "Cleric", "Druid", "Enchanter",
	"Magician", "Monk", "Necromancer", "Paladin", "Ranger", "Rogue",
	"Shadow Knight", "Shaman", "Warrior", "Wizard",
}

// Slots are the equipment slots in display order; comparison sheet rows are
// kept sorted by this order.
var Slots = []string{
	"Charm", "Left Ear", "Head", "Face", "Right Ear", "Neck", "Shoulder",
	"Arms", "Back", "Left Wrist", "Right Wrist", "Range", "Hands",
	"Primary", "Secondary", "Fingers", "Chest", "Legs", "Feet", "Waist",
}

// AugmentationSlots are the stat keys augmentation sub-slots are stored under.
var AugmentationSlots = []string{"SLOT 1", "SLOT 2", "SLOT 3", "SLOT 4", "SLOT 5"}

var slotOrder = buildSlotOrder()

func buildSlotOrder() map[string]int {
	order := make(map[string]int, len(Slots))
	for i, slot := range Slots {
		order[slot] = i
	}
	return order
}

// SlotIndex returns the display position of an equipment slot. Unknown
// slots sort last.
func SlotIndex(slot string) int {
	if i, ok := slotOrder[slot]; ok {
		return i
	}
	return len(Slots)
}

// IsKnownClass reports whether name is a playable class.
func IsKnownClass(name string) bool {
	for _, class := range Classes {
		if class == name {
			return true
		}
	}
	return false
}
