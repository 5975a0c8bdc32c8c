package sim

import (
	"growfortress/simcore/content"
	"growfortress/simcore/fixed"
)

// comboWindowTicks is the rolling pairing window. Two hits react when the
// newer landed strictly less than the window after the older; at exactly
// the window apart they no longer pair.
const comboWindowTicks = 30

// detectCombos runs after every damage source of the tick has landed. Each
// enemy hit this tick is checked once: the two most recent distinct-class
// hits are matched against the reaction table, and a match fires exactly
// one trigger then clears the history so the pair cannot re-fire without a
// fresh hit.
func (s *GameState) detectCombos() {
	for _, e := range s.Enemies {
		if !e.hitThisTick {
			continue
		}
		e.hitThisTick = false
		if !e.Alive() {
			continue
		}
		s.checkCombo(e)
	}
}

func (s *GameState) checkCombo(e *Enemy) {
	n := e.hits.len()
	if n < 2 {
		return
	}
	newest := e.hits.at(n - 1)
	partner := DamageHit{}
	found := false
	for i := n - 2; i >= 0; i-- {
		h := e.hits.at(i)
		if h.Class != newest.Class {
			partner = h
			found = true
			break
		}
	}
	if !found {
		return
	}
	if newest.Tick-partner.Tick >= comboWindowTicks {
		return
	}
	combo, ok := s.Catalog.ComboFor(newest.Class, partner.Class)
	if !ok {
		return
	}
	s.fireCombo(e, combo, newest.Tick)
}

func (s *GameState) fireCombo(e *Enemy, combo *content.Combo, newestTick int64) {
	trigger := ComboTrigger{
		EnemyID: e.ID,
		ComboID: combo.ID,
		Tick:    s.Tick,
		X:       e.Pos.X,
		Y:       e.Pos.Y,
	}

	var bonus fixed.Fx
	if combo.Effect == content.ComboBonusDamage {
		bonus = fixed.MulRatio(e.hits.windowAverage(newestTick), combo.BonusPct, 100)
	}

	// Clear before applying the effect: the bonus hit must not seed the
	// next reaction.
	e.hits.clear()

	switch combo.Effect {
	case content.ComboBonusDamage:
		trigger.BonusDamage = s.applyEnemyDamage(e, enemyDamage{
			Amount:   bonus,
			Source:   SourceCombo,
			SourceID: 0,
		})
	case content.ComboStun:
		s.applyStatus(e, statusApplication{
			Kind:     content.StatusStun,
			Duration: combo.StunTicks,
		}, SourceCombo, 0)
	case content.ComboArmorBreak:
		s.applyStatus(e, statusApplication{
			Kind: content.StatusArmorBreak,
		}, SourceCombo, 0)
	}

	s.Stats.Combos++
	s.triggers = append(s.triggers, trigger)
	s.Journal.Append(Event{
		Type:    EventComboTriggered,
		Tick:    s.Tick,
		EnemyID: e.ID,
		ComboID: combo.ID,
		Amount:  trigger.BonusDamage,
		X:       trigger.X,
		Y:       trigger.Y,
	})
}

// windowAverage averages every recorded hit within the window of the
// newest one. Division is on the raw fixed-point sum, so whole-number
// averages land exactly.
func (r *hitHistory) windowAverage(newestTick int64) fixed.Fx {
	var sum fixed.Fx
	var count int64
	for i := 0; i < r.len(); i++ {
		h := r.at(i)
		if newestTick-h.Tick < comboWindowTicks {
			sum += h.Amount
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / fixed.Fx(count)
}

// purgeHitHistories drops hits aged a full window or more. It runs every
// tick whether or not a combo fired, bounding what detection ever scans.
func (s *GameState) purgeHitHistories() {
	cutoff := s.Tick - comboWindowTicks + 1
	for _, e := range s.Enemies {
		if e.Alive() {
			e.hits.purgeBefore(cutoff)
		}
	}
}
