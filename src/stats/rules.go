package stats

import (
	"regexp"
	"strings"

	"github.com/lazarus-tools/eq-gear-compare-go/src/types"
)

// Rule is a single extraction step applied to the flattened item-page text.
// Rules run in catalog order against one shared accumulator and later rules
// may overwrite keys written by earlier ones; the ordering is a contract.
type Rule struct {
	Name  string
	Apply func(text string, stats types.StatMap)
}

// Catalog returns the ordered extraction rules for item pages.
func Catalog() []Rule {
	return []Rule{
		{Name: "basic-info", Apply: applyBasicInfo},
		{Name: "ability-damage", Apply: applyAbilityDamage},
		{Name: "skill-modifiers", Apply: applySkillModifiers},
		{Name: "bard-skills", Apply: applyBardSkills},
		{Name: "attributes-resists", Apply: applyAttributesResists},
		// damage-shield must run before bare-damage: the generic Damage
		// pattern must not eat the Damage Shield label.
		{Name: "damage-shield", Apply: applyDamageShield},
		{Name: "bare-damage", Apply: applyBareDamage},
		{Name: "weapon-stats", Apply: applyWeaponStats},
		{Name: "offensive-stats", Apply: applyOffensiveStats},
		{Name: "magic-stats", Apply: applyMagicStats},
		{Name: "defensive-stats", Apply: applyDefensiveStats},
		{Name: "regeneration", Apply: applyRegeneration},
		{Name: "combat-abilities", Apply: applyCombatAbilities},
		{Name: "weapon-skills", Apply: applyWeaponSkills},
		{Name: "magic-skills", Apply: applyMagicSkills},
		{Name: "spell-specializations", Apply: applySpellSpecializations},
		{Name: "tradeskills", Apply: applyTradeskills},
		{Name: "augmentation-slots", Apply: applyAugmentationSlots},
	}
}

// ApplyCatalog runs every rule, in order, against the accumulator.
func ApplyCatalog(rules []Rule, text string, stats types.StatMap) {
	for _, rule := range rules {
		rule.Apply(text, stats)
	}
}

var (
	// The item Type value runs until the word "Armor" or a lone trailing
	// letter at the end of the text, so the capture does not swallow the
	// stat labels that follow it on the flattened page.
	typeRegex       = regexp.MustCompile(`(?i)Type:\s*([a-zA-Z0-9\s]+?)(?:Armor|\s*[A-Za-z]$)`)
	armorClassRegex = regexp.MustCompile(`(?i)Armor Class:\s*(-?\d+)`)
	healthRegex     = regexp.MustCompile(`(?i)Health:\s*(-?\d+)`)
	manaRegex       = regexp.MustCompile(`(?i)Mana:\s*(-?\d+)`)
	enduranceRegex  = regexp.MustCompile(`(?i)Endurance:\s*(-?\d+)`)

	abilityDamageRegex = regexp.MustCompile(`(?i)(Bash|Kick|Flying Kick|Backstab|Dragon Punch|Eagle Strike|Round Kick|Tiger Claw|Frenzy) Damage:\s*(\d+)`)

	skillModifierRegex = regexp.MustCompile(`(?i)Skill Modifier:\s*` +
		`(Backstab|Dragon Punch|Eagle Strike|Flying Kick|Kick|Round Kick|` +
		`Tiger Claw|Frenzy|Safe Fall|Pick Lock|Begging|Sneak|Intimidation|` +
		`Forage|Tracking)\s*\((\d+)%\)`)

	bardSkillRegex = regexp.MustCompile(`(?i)Bard Skill:\s*` +
		`(Brass Instruments|Strings Instruments|Percussion Instruments|` +
		`Wind Instruments|Unknown \(50\)|All Instruments)\s*\((\d+)%\)`)

	attributeRegex = regexp.MustCompile(`(?i)(Strength|Stamina|Agility|Dexterity|Wisdom|Intelligence|Charisma):\s*(-?\d+)(?:\s*\+(\d+))?`)
	resistRegex    = regexp.MustCompile(`(?i)(Poison|Magic|Disease|Fire|Cold|Corrupt(?:ion)?):\s*(-?\d+)(?:\s*\+(\d+))?`)

	damageShieldRegex = regexp.MustCompile(`(?i)(Damage\s+Shield(?:\s+Mitig)?)\s*:\s*([-+]?\d+)`)

	// RE2 has no lookaround, so the adjacent words are captured and matches
	// carrying them are rejected: "Bash Damage:" and "Damage Shield:" must
	// not satisfy the bare Damage weapon stat.
	bareDamageRegex = regexp.MustCompile(`(?i)(?:(\w+)\s)?Damage(?:\s(\w+))?:\s*([-+]?\d+)`)

	weaponStatRegex    = regexp.MustCompile(`(?i)(Backstab|Delay|Bonus|Range):\s*([-+]?\d+)`)
	offensiveStatRegex = regexp.MustCompile(`(?i)(Attack|Haste|Accuracy|Strikethrough):\s*([-+]?\d+)`)
	magicStatRegex     = regexp.MustCompile(`(?i)(Spell Damage|Combat Effects):\s*([-+]?\d+)`)
	defensiveStatRegex = regexp.MustCompile(`(?i)(Avoidance|Shielding|Spell Shielding|DoT Shielding|Damage Shield Mitig|Defense|Stun Resist):\s*([-+]?\d+)`)
	regenStatRegex     = regexp.MustCompile(`(?i)(HP Regen|Mana Regen|Endurance Regen|Meditate):\s*([-+]?\d+)`)
	combatAbilityRegex = regexp.MustCompile(`(?i)(Dodge|Parry|Riposte|Triple Attack|Double Attack):\s*([-+]?\d+)`)
	weaponSkillRegex   = regexp.MustCompile(`(?i)(Hand to Hand|1H Blunt|1H Slashing|2H Blunt|2H Slashing|1H Piercing|2H Piercing|Throwing):\s*([-+]?\d+)`)

	magicSkillRegex = regexp.MustCompile(`(?i)(Channeling|Abjuration|Conjuration|Divination|Evocation|Alteration):\s*(\d+)`)
	specializeRegex = regexp.MustCompile(`(?i)(Specialize (?:Alteration|Conjuration|Abjuration|Evocation|Divination)):\s*(\d+)`)
	tradeskillRegex = regexp.MustCompile(`(?i)(Alchemy|Baking|Blacksmithing|Brewing|Fishing|Fletching|Jewelry Making|Make Poison|Pottery|Research|Tailoring|Tinkering):\s*(\d+)`)

	augSlotRegex = regexp.MustCompile(`(?i)Slot\s+(\d+):\s*Type\s+(\d+)`)
)

func applyBasicInfo(text string, stats types.StatMap) {
	if match := typeRegex.FindStringSubmatch(text); match != nil {
		stats["Type"] = strings.TrimSpace(match[1])
	}

	basics := []struct {
		label string
		re    *regexp.Regexp
	}{
		{"Armor Class", armorClassRegex},
		{"Health", healthRegex},
		{"Mana", manaRegex},
		{"Endurance", enduranceRegex},
	}
	for _, basic := range basics {
		if match := basic.re.FindStringSubmatch(text); match != nil {
			stats[NormalizeStatName(basic.label)] = CleanStatValue(match[1])
		}
	}
}

func applyAbilityDamage(text string, stats types.StatMap) {
	if match := abilityDamageRegex.FindStringSubmatch(text); match != nil {
		stats[strings.ToUpper(match[1])+" DAMAGE"] = match[2]
	}
}

func applySkillModifiers(text string, stats types.StatMap) {
	for _, match := range skillModifierRegex.FindAllStringSubmatch(text, -1) {
		skill := strings.ToUpper(match[1])
		if skill == "BACKSTAB" {
			// BACKSTAB is already taken by the weapon stat of the same name.
			skill = "BACKSTAB_MOD"
		}
		stats[skill] = match[2] + "%"
	}
}

func applyBardSkills(text string, stats types.StatMap) {
	for _, match := range bardSkillRegex.FindAllStringSubmatch(text, -1) {
		skill := strings.ToUpper(match[1])
		skill = strings.ReplaceAll(skill, "UNKNOWN (50)", "SINGING RESONANCE")
		stats["BARD_"+skill] = match[2] + "%"
	}
}

func applyAttributesResists(text string, stats types.StatMap) {
	for _, re := range []*regexp.Regexp{attributeRegex, resistRegex} {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			name := NormalizeStatName(match[1])
			if match[3] != "" {
				stats[name] = match[2] + " +" + match[3]
			} else {
				stats[name] = match[2]
			}
		}
	}
}

func applyDamageShield(text string, stats types.StatMap) {
	for _, match := range damageShieldRegex.FindAllStringSubmatch(text, -1) {
		stats[NormalizeStatName(match[1])] = CleanStatValue(match[2])
	}
}

func applyBareDamage(text string, stats types.StatMap) {
	for _, match := range bareDamageRegex.FindAllStringSubmatch(text, -1) {
		if match[1] != "" || match[2] != "" {
			continue
		}
		stats["DAMAGE"] = CleanStatValue(match[3])
	}
}

func applyLabelledStats(re *regexp.Regexp, text string, stats types.StatMap) {
	for _, match := range re.FindAllStringSubmatch(text, -1) {
		stats[NormalizeStatName(match[1])] = CleanStatValue(match[2])
	}
}

func applyWeaponStats(text string, stats types.StatMap) {
	applyLabelledStats(weaponStatRegex, text, stats)
}

func applyOffensiveStats(text string, stats types.StatMap) {
	applyLabelledStats(offensiveStatRegex, text, stats)
}

func applyMagicStats(text string, stats types.StatMap) {
	applyLabelledStats(magicStatRegex, text, stats)
}

func applyDefensiveStats(text string, stats types.StatMap) {
	applyLabelledStats(defensiveStatRegex, text, stats)
}

func applyRegeneration(text string, stats types.StatMap) {
	applyLabelledStats(regenStatRegex, text, stats)
}

func applyCombatAbilities(text string, stats types.StatMap) {
	applyLabelledStats(combatAbilityRegex, text, stats)
}

func applyWeaponSkills(text string, stats types.StatMap) {
	applyLabelledStats(weaponSkillRegex, text, stats)
}

func applyMagicSkills(text string, stats types.StatMap) {
	for _, match := range magicSkillRegex.FindAllStringSubmatch(text, -1) {
		stats[strings.ToUpper(match[1])] = match[2]
	}
}

func applySpellSpecializations(text string, stats types.StatMap) {
	for _, match := range specializeRegex.FindAllStringSubmatch(text, -1) {
		stats[strings.ToUpper(match[1])] = match[2]
	}
}

func applyTradeskills(text string, stats types.StatMap) {
	for _, match := range tradeskillRegex.FindAllStringSubmatch(text, -1) {
		stats[strings.ToUpper(match[1])] = match[2]
	}
}

func applyAugmentationSlots(text string, stats types.StatMap) {
	for _, match := range augSlotRegex.FindAllStringSubmatch(text, -1) {
		stats["SLOT "+match[1]] = "Type " + match[2]
	}
}
