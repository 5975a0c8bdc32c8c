package sim

import (
	"growfortress/simcore/content"
	"growfortress/simcore/fixed"
)

const (
	// baseCritBp is the crit chance every defense-side hit starts from; the
	// modifier set's crit category adds on top. Crits deal double damage.
	baseCritBp = 500
	// armorBreakBp is the one-shot multiplier consumed from a shattered
	// enemy by the first following hit.
	armorBreakBp = 15000
)

// enemyDamage describes one damage application against an enemy.
type enemyDamage struct {
	Amount       fixed.Fx
	Class        content.Class
	Source       SourceKind
	SourceID     int64
	ProjectileID int64
	Status       content.StatusKind
	AllowCrit    bool
	RecordHit    bool
}

// applyEnemyDamage runs the defense-side damage pipeline: crit roll, hero
// formation bonus, armor-break consumption, shield aura reduction, HP
// application, combo history recording and death handling. It returns the
// amount actually dealt.
func (s *GameState) applyEnemyDamage(e *Enemy, d enemyDamage) fixed.Fx {
	if e == nil || !e.Alive() || d.Amount <= 0 {
		return 0
	}
	amount := d.Amount
	crit := false
	if d.AllowCrit {
		if s.rngCrits.Chance(baseCritBp + s.Modifiers.Bp(content.BonusCritChance)) {
			amount *= 2
			crit = true
		}
	}
	if d.Source == SourceHero {
		if h := s.heroByID(d.SourceID); h != nil {
			if bonus := s.formationBonusBp(h, content.BonusDamage); bonus > 0 {
				amount = fixed.MulRatio(amount, 10000+bonus, 10000)
			}
		}
	}
	if e.consumeArmorBreak() {
		amount = fixed.MulRatio(amount, armorBreakBp, 10000)
	}
	if reduction := s.strongestAuraBp(e); reduction > 0 {
		amount = fixed.MulRatio(amount, 10000-reduction, 10000)
	}
	if amount <= 0 {
		return 0
	}

	e.HP -= amount
	if e.HP < 0 {
		e.HP = 0
	}
	s.Stats.DamageDealt += amount
	if d.RecordHit {
		e.hits.push(DamageHit{Class: d.Class, Tick: s.Tick, Amount: amount})
		e.hitThisTick = true
	}

	ev := Event{
		Type:         EventDamage,
		Tick:         s.Tick,
		EnemyID:      e.ID,
		Target:       TargetEnemy,
		SourceKind:   d.Source.String(),
		SourceID:     d.SourceID,
		ProjectileID: d.ProjectileID,
		Amount:       amount,
		Crit:         crit,
	}
	if d.RecordHit {
		ev.Class = d.Class.String()
	}
	if d.Status != content.StatusNone {
		ev.Status = d.Status.String()
	}
	s.Journal.Append(ev)

	if e.HP == 0 {
		e.dead = true
		s.Stats.EnemiesSlain++
		s.Journal.Append(Event{
			Type:      EventEnemyKilled,
			Tick:      s.Tick,
			EnemyID:   e.ID,
			EnemyType: e.Spec.ID,
			X:         e.Pos.X,
			Y:         e.Pos.Y,
		})
	}
	return amount
}

// applyHeroDamage applies an enemy attack to a hero through the incoming
// reduction modifier and any reduction formation the hero holds.
func (s *GameState) applyHeroDamage(h *ActiveHero, amount fixed.Fx, attacker *Enemy) {
	if h == nil || !h.Alive() || amount <= 0 {
		return
	}
	amount = s.Modifiers.Reduce(content.BonusDamageReduction, amount)
	if bonus := s.formationBonusBp(h, content.BonusDamageReduction); bonus > 0 {
		if bonus >= 10000 {
			return
		}
		amount = fixed.MulRatio(amount, 10000-bonus, 10000)
	}
	if amount <= 0 {
		return
	}
	h.HP -= amount
	if h.HP < 0 {
		h.HP = 0
	}
	s.Stats.DamageTaken += amount
	s.Journal.Append(Event{
		Type:       EventDamage,
		Tick:       s.Tick,
		HeroID:     h.ID,
		Target:     TargetHero,
		SourceKind: SourceEnemy.String(),
		SourceID:   attacker.ID,
		Amount:     amount,
	})
	if h.HP == 0 {
		h.dead = true
		s.Stats.HeroesLost++
		s.Journal.Append(Event{Type: EventHeroDowned, Tick: s.Tick, HeroID: h.ID})
	}
}

// applyStructureDamage routes an enemy attack into the wall pool while it
// stands, then the fortress. The attacker's structure multiplier applies
// before the incoming reduction modifier; the wall fully absorbs its
// killing blow, nothing spills over.
func (s *GameState) applyStructureDamage(attacker *Enemy, amount fixed.Fx) {
	amount = fixed.MulRatio(amount, attacker.Spec.StructureDmgBp, 10000)
	amount = s.Modifiers.Reduce(content.BonusDamageReduction, amount)
	if amount <= 0 {
		return
	}
	s.Stats.DamageTaken += amount
	f := &s.Fortress
	if f.WallStanding() {
		f.WallHP -= amount
		if f.WallHP < 0 {
			f.WallHP = 0
		}
		s.Journal.Append(Event{
			Type:       EventDamage,
			Tick:       s.Tick,
			Target:     TargetWall,
			SourceKind: SourceEnemy.String(),
			SourceID:   attacker.ID,
			Amount:     amount,
		})
		if f.WallHP == 0 {
			s.Journal.Append(Event{Type: EventWallDestroyed, Tick: s.Tick})
		}
		return
	}
	f.HP -= amount
	if f.HP < 0 {
		f.HP = 0
	}
	s.Journal.Append(Event{
		Type:       EventDamage,
		Tick:       s.Tick,
		Target:     TargetFortress,
		SourceKind: SourceEnemy.String(),
		SourceID:   attacker.ID,
		Amount:     amount,
	})
}

// strongestAuraBp returns the strongest live shield aura covering the
// target. The caster never shields itself and auras do not stack; the query
// runs at the moment of the hit, so a caster that died earlier this tick
// grants nothing.
func (s *GameState) strongestAuraBp(target *Enemy) int64 {
	var best int64
	for _, e := range s.Enemies {
		if e == target || !e.Alive() || e.Spec.Special != content.SpecialShieldAura {
			continue
		}
		if !fixed.WithinRange(e.Pos, target.Pos, e.Spec.Aura.Radius) {
			continue
		}
		if e.Spec.Aura.ReductionBp > best {
			best = e.Spec.Aura.ReductionBp
		}
	}
	return best
}

// formationBonusBp sums the named formations of the given category the hero
// currently holds: every member alive and all pairwise within the
// formation's radius.
func (s *GameState) formationBonusBp(h *ActiveHero, category content.BonusCategory) int64 {
	var total int64
	for _, syn := range s.synergies {
		if syn.Category != category {
			continue
		}
		member := false
		for _, id := range syn.Heroes {
			if id == h.Spec.ID {
				member = true
				break
			}
		}
		if !member {
			continue
		}
		if s.formationHolds(syn) {
			total += syn.BonusBp
		}
	}
	return total
}

func (s *GameState) formationHolds(syn *content.Synergy) bool {
	var members [3]*ActiveHero
	for i, id := range syn.Heroes {
		m := s.liveHeroBySpec(id)
		if m == nil {
			return false
		}
		members[i] = m
	}
	n := len(syn.Heroes)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !fixed.WithinRange(members[i].Pos, members[j].Pos, syn.Radius) {
				return false
			}
		}
	}
	return true
}

func (s *GameState) heroByID(id int64) *ActiveHero {
	for _, h := range s.Heroes {
		if h.ID == id {
			if h.Alive() {
				return h
			}
			return nil
		}
	}
	return nil
}

func (s *GameState) liveHeroBySpec(specID string) *ActiveHero {
	for _, h := range s.Heroes {
		if h.Alive() && h.Spec.ID == specID {
			return h
		}
	}
	return nil
}
