// Package content defines the static definition tables the simulation core
// consumes: heroes, turrets, enemies, fortresses, relics, pillars, masteries,
// combos and named hero synergies. Documents are the authored JSON shape;
// the Catalog is the validated, compiled form handed to the engine. The
// engine never sees a raw document.
package content

// TicksPerSecond is the logical tick rate every duration in this package is
// authored against. Speeds are authored in units per second and compiled to
// fixed-point units per tick.
const TicksPerSecond = 30

// Class is the elemental class shared by heroes, turrets, fortresses,
// projectiles and combo pairs. Documents name classes by string; the catalog
// resolves them to this closed tag at load time.
type Class uint8

const (
	ClassPhysical Class = iota
	ClassFire
	ClassIce
	ClassLightning
	ClassWater

	ClassCount
)

var classNames = [ClassCount]string{
	ClassPhysical:  "physical",
	ClassFire:      "fire",
	ClassIce:       "ice",
	ClassLightning: "lightning",
	ClassWater:     "water",
}

func (c Class) String() string {
	if c >= ClassCount {
		return "unknown"
	}
	return classNames[c]
}

// ParseClass resolves an authored class name.
func ParseClass(name string) (Class, bool) {
	for c := Class(0); c < ClassCount; c++ {
		if classNames[c] == name {
			return c, true
		}
	}
	return ClassCount, false
}

// BonusCategory names one additive slot of the modifier set.
type BonusCategory uint8

const (
	BonusDamage BonusCategory = iota
	BonusAttackSpeed
	BonusCritChance
	BonusMaxHP
	BonusCooldownReduction
	BonusDamageReduction

	BonusCategoryCount
)

var bonusCategoryNames = [BonusCategoryCount]string{
	BonusDamage:            "damage",
	BonusAttackSpeed:       "attack-speed",
	BonusCritChance:        "crit-chance",
	BonusMaxHP:             "max-hp",
	BonusCooldownReduction: "cooldown-reduction",
	BonusDamageReduction:   "damage-reduction",
}

func (b BonusCategory) String() string {
	if b >= BonusCategoryCount {
		return "unknown"
	}
	return bonusCategoryNames[b]
}

// ParseBonusCategory resolves an authored category name.
func ParseBonusCategory(name string) (BonusCategory, bool) {
	for b := BonusCategory(0); b < BonusCategoryCount; b++ {
		if bonusCategoryNames[b] == name {
			return b, true
		}
	}
	return BonusCategoryCount, false
}

// SpecialKind tags the closed set of special enemy behaviors.
type SpecialKind uint8

const (
	SpecialNone SpecialKind = iota
	SpecialShieldAura
	SpecialSapper
	SpecialSiege
	SpecialHealer
	SpecialTeleporter

	SpecialKindCount
)

var specialKindNames = [SpecialKindCount]string{
	SpecialNone:       "none",
	SpecialShieldAura: "shield-aura",
	SpecialSapper:     "sapper",
	SpecialSiege:      "siege",
	SpecialHealer:     "healer",
	SpecialTeleporter: "teleporter",
}

func (k SpecialKind) String() string {
	if k >= SpecialKindCount {
		return "unknown"
	}
	return specialKindNames[k]
}

// ParseSpecialKind resolves an authored special name. The empty string maps
// to SpecialNone so ordinary enemies can omit the field.
func ParseSpecialKind(name string) (SpecialKind, bool) {
	if name == "" {
		return SpecialNone, true
	}
	for k := SpecialKind(0); k < SpecialKindCount; k++ {
		if specialKindNames[k] == name {
			return k, true
		}
	}
	return SpecialKindCount, false
}

// StatusKind tags the closed set of timed effects an enemy can carry.
// Armor-break is combo-only and cannot be authored as a projectile rider.
type StatusKind uint8

const (
	StatusNone StatusKind = iota
	StatusSlow
	StatusFreeze
	StatusBurn
	StatusStun
	StatusArmorBreak

	StatusKindCount
)

var statusKindNames = [StatusKindCount]string{
	StatusNone:       "none",
	StatusSlow:       "slow",
	StatusFreeze:     "freeze",
	StatusBurn:       "burn",
	StatusStun:       "stun",
	StatusArmorBreak: "armor-break",
}

func (k StatusKind) String() string {
	if k >= StatusKindCount {
		return "unknown"
	}
	return statusKindNames[k]
}

// ParseStatusKind resolves an authored status name. The empty string maps to
// StatusNone so projectiles can omit the rider block.
func ParseStatusKind(name string) (StatusKind, bool) {
	if name == "" {
		return StatusNone, true
	}
	for k := StatusKind(0); k < StatusKindCount; k++ {
		if statusKindNames[k] == name {
			return k, true
		}
	}
	return StatusKindCount, false
}

// ComboEffect tags what a matched combo does to its victim.
type ComboEffect uint8

const (
	ComboBonusDamage ComboEffect = iota
	ComboStun
	ComboArmorBreak

	ComboEffectCount
)

var comboEffectNames = [ComboEffectCount]string{
	ComboBonusDamage: "bonus-damage",
	ComboStun:        "stun",
	ComboArmorBreak:  "armor-break",
}

func (e ComboEffect) String() string {
	if e >= ComboEffectCount {
		return "unknown"
	}
	return comboEffectNames[e]
}

// ParseComboEffect resolves an authored combo effect name.
func ParseComboEffect(name string) (ComboEffect, bool) {
	for e := ComboEffect(0); e < ComboEffectCount; e++ {
		if comboEffectNames[e] == name {
			return e, true
		}
	}
	return ComboEffectCount, false
}

// RelicKind separates threshold synergy relics from the single amplifier
// relic slot.
type RelicKind uint8

const (
	RelicSynergy RelicKind = iota
	RelicAmplifier

	RelicKindCount
)

var relicKindNames = [RelicKindCount]string{
	RelicSynergy:   "synergy",
	RelicAmplifier: "amplifier",
}

func (k RelicKind) String() string {
	if k >= RelicKindCount {
		return "unknown"
	}
	return relicKindNames[k]
}

// ParseRelicKind resolves an authored relic kind.
func ParseRelicKind(name string) (RelicKind, bool) {
	for k := RelicKind(0); k < RelicKindCount; k++ {
		if relicKindNames[k] == name {
			return k, true
		}
	}
	return RelicKindCount, false
}
