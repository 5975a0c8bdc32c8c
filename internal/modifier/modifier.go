// Package modifier aggregates the additive bonus set a battle applies on top
// of base stats. The set is rebuilt from scratch every tick from the live
// roster, equipped relics, mastery nodes, stat points and the active pillar;
// nothing is cached across ticks.
package modifier

import (
	"growfortress/simcore/content"
	"growfortress/simcore/fixed"
)

// Set stores one tick's aggregated bonuses in basis points, indexed by
// content.BonusCategory.
type Set [content.BonusCategoryCount]int64

// Input carries everything the aggregation reads. Roster counts reflect the
// entities alive this tick, so a dead hero stops contributing immediately.
type Input struct {
	FortressClass     content.Class
	HeroClassCounts   [content.ClassCount]int
	TurretClassCounts [content.ClassCount]int
	StatPoints        [content.BonusCategoryCount]int64
	Relics            []*content.Relic
	Masteries         []*content.Mastery
	PillarBonusBp     int64
}

// Aggregation tuning values. The tier tables are indexed by the number of
// roster members whose class matches the fortress; counts past the last
// entry use the last entry.
const (
	statPointBp          = 50
	fullSynergyHeroMin   = 2
	fullSynergyTurretMin = 3
)

var heroTierDamageBp = [...]int64{0, 300, 800, 1500, 2400}

var turretTierAttackSpeedBp = [...]int64{0, 200, 500, 900, 1400, 2000}

var fullSynergyBp = Set{
	content.BonusDamage:      1000,
	content.BonusAttackSpeed: 500,
	content.BonusCritChance:  300,
}

// Compute folds every bonus source in a fixed order: stat points, hero tier,
// turret tier, the full-synergy bundle, synergy relics, then the pillar
// bonus. Mastery nodes amplify their category's synergy subtotal before it
// joins the sum; an equipped amplifier relic scales the finished sum as the
// last step. Reordering any of this changes balance values.
func Compute(in Input) Set {
	var out Set
	for category := range out {
		out[category] = in.StatPoints[category] * statPointBp
	}

	matchingHeroes := 0
	matchingTurrets := 0
	if in.FortressClass < content.ClassCount {
		matchingHeroes = in.HeroClassCounts[in.FortressClass]
		matchingTurrets = in.TurretClassCounts[in.FortressClass]
	}

	var synergy Set
	synergy[content.BonusDamage] += tierBp(heroTierDamageBp[:], matchingHeroes)
	synergy[content.BonusAttackSpeed] += tierBp(turretTierAttackSpeedBp[:], matchingTurrets)
	if matchingHeroes >= fullSynergyHeroMin && matchingTurrets >= fullSynergyTurretMin {
		for category := range synergy {
			synergy[category] += fullSynergyBp[category]
		}
	}

	var amplifierBp int64
	for i, relic := range in.Relics {
		if relic == nil {
			continue
		}
		switch relic.Kind {
		case content.RelicAmplifier:
			if amplifierBp == 0 {
				amplifierBp = relic.AmplifierBp
			}
		case content.RelicSynergy:
			if !relic.Stacks && equippedBefore(in.Relics[:i], relic.ID) {
				continue
			}
			matching := 0
			if relic.Class < content.ClassCount {
				matching = in.HeroClassCounts[relic.Class] + in.TurretClassCounts[relic.Class]
			}
			if int64(matching) >= relic.Threshold {
				synergy[relic.Category] += relic.BonusBp
			}
		}
	}

	var amplify Set
	for _, mastery := range in.Masteries {
		if mastery == nil {
			continue
		}
		amplify[mastery.Category] += mastery.AmplifyBp
	}
	for category, bp := range synergy {
		if bp == 0 {
			continue
		}
		out[category] += bp * (10000 + amplify[category]) / 10000
	}

	out[content.BonusDamage] += in.PillarBonusBp

	if amplifierBp > 0 {
		for category := range out {
			out[category] = out[category] * amplifierBp / 10000
		}
	}
	return out
}

func tierBp(table []int64, count int) int64 {
	if count <= 0 {
		return 0
	}
	if count >= len(table) {
		count = len(table) - 1
	}
	return table[count]
}

func equippedBefore(relics []*content.Relic, id string) bool {
	for _, relic := range relics {
		if relic != nil && relic.ID == id {
			return true
		}
	}
	return false
}

// Bp returns the aggregated basis points for a category.
func (s Set) Bp(category content.BonusCategory) int64 {
	if category >= content.BonusCategoryCount {
		return 0
	}
	return s[category]
}

// Apply scales a value up by the category's bonus: v*(10000+bp)/10000.
func (s Set) Apply(category content.BonusCategory, v fixed.Fx) fixed.Fx {
	factor := 10000 + s.Bp(category)
	if factor <= 0 {
		return 0
	}
	return fixed.MulRatio(v, factor, 10000)
}

// Reduce scales incoming damage down by the category's bonus. A bonus of
// 10000 bp or more absorbs the hit entirely.
func (s Set) Reduce(category content.BonusCategory, v fixed.Fx) fixed.Fx {
	bp := s.Bp(category)
	if bp <= 0 {
		return v
	}
	if bp >= 10000 {
		return 0
	}
	return fixed.MulRatio(v, 10000-bp, 10000)
}

// ScaleInterval shortens a tick interval by the category's bonus. Intervals
// never drop below one tick.
func (s Set) ScaleInterval(category content.BonusCategory, ticks int64) int64 {
	factor := 10000 + s.Bp(category)
	if factor <= 0 {
		return 1
	}
	scaled := ticks * 10000 / factor
	if scaled < 1 {
		return 1
	}
	return scaled
}
