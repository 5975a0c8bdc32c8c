package sim

import (
	"growfortress/simcore/content"
	"growfortress/simcore/fixed"
)

// resolveAttacks runs the direct-attack phase: defense-side autos in roster
// order, the fortress weapon, then enemy specials and attacks in spawn
// order. Stun blocks an enemy's entire turn.
func (s *GameState) resolveAttacks() {
	for _, h := range s.Heroes {
		if h.Alive() {
			s.heroAttack(h)
		}
	}
	for _, t := range s.Turrets {
		s.turretAttack(t)
	}
	s.fortressAttack()
	for _, e := range s.Enemies {
		if !e.Alive() || e.stunned() {
			continue
		}
		s.enemySpecial(e)
		s.enemyAttack(e)
	}
}

func (s *GameState) heroAttack(h *ActiveHero) {
	if s.Tick < h.nextAttack {
		return
	}
	target := s.nearestLiveEnemy(h.Pos)
	if target == nil || !fixed.WithinRange(h.Pos, target.Pos, h.Spec.Range) {
		return
	}
	s.spawnHeroShot(h, target)
	h.nextAttack = s.Tick + s.Modifiers.ScaleInterval(content.BonusAttackSpeed, h.AttackInterval)
}

func (s *GameState) turretAttack(t *ActiveTurret) {
	if s.Tick < t.nextAttack {
		return
	}
	target := s.nearestLiveEnemy(t.Pos)
	if target == nil || !fixed.WithinRange(t.Pos, target.Pos, t.Spec.Range) {
		return
	}
	s.spawnTurretShot(t, target)
	t.nextAttack = s.Tick + s.Modifiers.ScaleInterval(content.BonusAttackSpeed, t.AttackInterval)
}

// fortressAttack fires the fortress weapon. Its recharge scales with the
// cooldown-reduction category; hero and turret autos use attack speed.
func (s *GameState) fortressAttack() {
	f := &s.Fortress
	if f.HP <= 0 || s.Tick < f.nextAttack {
		return
	}
	target := s.nearestLiveEnemy(f.Pos)
	if target == nil || !fixed.WithinRange(f.Pos, target.Pos, f.Spec.Range) {
		return
	}
	s.spawnFortressShot(target)
	f.nextAttack = s.Tick + s.Modifiers.ScaleInterval(content.BonusCooldownReduction, f.Spec.AttackInterval)
}

// enemyAttack swings at the nearest hero in reach, else at the structures
// once the enemy stands on its stop ring.
func (s *GameState) enemyAttack(e *Enemy) {
	if s.Tick < e.nextAttack {
		return
	}
	if h := s.nearestLiveHero(e.Pos, e.Spec.Range); h != nil {
		s.applyHeroDamage(h, e.Spec.Damage, e)
		e.nextAttack = s.Tick + e.Spec.AttackInterval
		return
	}
	if s.arrivedAtStructures(e) {
		s.applyStructureDamage(e, e.Spec.Damage)
		e.nextAttack = s.Tick + e.Spec.AttackInterval
	}
}

func (s *GameState) enemySpecial(e *Enemy) {
	switch e.Spec.Special {
	case content.SpecialHealer:
		if s.Tick >= e.nextPulse {
			s.healPulse(e)
			e.nextPulse = s.Tick + e.Spec.Heal.Interval
		}
	case content.SpecialTeleporter:
		if s.Tick >= e.nextPulse {
			s.blink(e)
			e.nextPulse = s.Tick + e.Spec.Blink.Interval
		}
	}
}

// healPulse tops up every other live enemy in radius. The healer never
// heals itself, and overheal is clipped at the target's maximum.
func (s *GameState) healPulse(healer *Enemy) {
	for _, e := range s.Enemies {
		if e == healer || !e.Alive() || e.HP >= e.MaxHP {
			continue
		}
		if !fixed.WithinRange(healer.Pos, e.Pos, healer.Spec.Heal.Radius) {
			continue
		}
		amount := healer.Spec.Heal.Amount
		if e.HP+amount > e.MaxHP {
			amount = e.MaxHP - e.HP
		}
		e.HP += amount
		s.Journal.Append(Event{
			Type:       EventHeal,
			Tick:       s.Tick,
			EnemyID:    e.ID,
			Target:     TargetEnemy,
			SourceKind: SourceEnemy.String(),
			SourceID:   healer.ID,
			Amount:     amount,
		})
	}
}

// blink jumps the teleporter toward the fortress with seeded lateral
// jitter. The landing point never falls inside the enemy's stop ring.
func (s *GameState) blink(e *Enemy) {
	stop := s.enemyStopRadius(e)
	ring := s.Fortress.Pos.Add(fixed.Toward(s.Fortress.Pos, e.Pos, stop))
	dest := fixed.StepToward(e.Pos, ring, e.Spec.Blink.Distance)
	if j := e.Spec.Blink.Jitter; j > 0 {
		dest.Y += s.rngJitter.Range(-j, j)
	}
	if dest == s.Fortress.Pos {
		dest = ring
	} else if fixed.WithinRange(dest, s.Fortress.Pos, stop) {
		dest = s.Fortress.Pos.Add(fixed.Toward(s.Fortress.Pos, dest, stop))
	}
	e.Pos = dest
	s.Journal.Append(Event{Type: EventTeleported, Tick: s.Tick, EnemyID: e.ID, X: dest.X, Y: dest.Y})
}
