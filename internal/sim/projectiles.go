package sim

import (
	"growfortress/simcore/content"
	"growfortress/simcore/fixed"
)

// projectileLifetimeTicks caps how long a shot may fly before timeout
// removal. Zero-speed shots and shots whose frozen aim point no longer
// holds an enemy leave the field this way.
const projectileLifetimeTicks = 90

// spawnHeroShot stamps a hero projectile. The damage modifier is baked in
// at spawn; crits and formation bonuses resolve at hit time.
func (s *GameState) spawnHeroShot(h *ActiveHero, target *Enemy) {
	damage := s.Modifiers.Apply(content.BonusDamage, h.Damage)
	s.spawnProjectile(SourceHero, h.ID, h.Spec.Class, h.Pos, target, damage, h.Spec.Projectile)
}

func (s *GameState) spawnTurretShot(t *ActiveTurret, target *Enemy) {
	damage := s.Modifiers.Apply(content.BonusDamage, t.Damage)
	s.spawnProjectile(SourceTurret, t.ID, t.Spec.Class, t.Pos, target, damage, t.Spec.Projectile)
}

func (s *GameState) spawnFortressShot(target *Enemy) {
	f := &s.Fortress
	damage := s.Modifiers.Apply(content.BonusDamage, f.Spec.Damage)
	s.spawnProjectile(SourceFortress, 0, f.Class, f.Pos, target, damage, f.Spec.Projectile)
}

func (s *GameState) spawnProjectile(source SourceKind, sourceID int64, class content.Class, from fixed.Vec, target *Enemy, damage fixed.Fx, spec content.ProjectileSpec) *Projectile {
	s.nextProjectileID++
	p := &Projectile{
		ID:              s.nextProjectileID,
		Source:          source,
		SourceID:        sourceID,
		Class:           class,
		Pos:             from,
		Target:          target.Pos,
		TargetID:        target.ID,
		Speed:           spec.Speed,
		Damage:          damage,
		HitRadius:       spec.HitRadius,
		Pierce:          spec.PierceCount,
		PierceFalloffBp: spec.PierceFalloffBp,
		Arc:             spec.Arc,
		SplashRadius:    spec.SplashRadius,
		OnHit:           spec.OnHit,
		SpawnTick:       s.Tick,
	}
	if p.Arc {
		// Arcs lob at the point; they never retarget.
		p.TargetID = 0
	}
	s.Projectiles = append(s.Projectiles, p)
	s.Journal.Append(Event{
		Type:         EventProjectileSpawned,
		Tick:         s.Tick,
		ProjectileID: p.ID,
		SourceKind:   source.String(),
		SourceID:     sourceID,
		Class:        class.String(),
		X:            p.Pos.X,
		Y:            p.Pos.Y,
	})

	// A shot that materializes on top of its mark resolves now instead of
	// waiting a tick to move.
	if p.Arc {
		if p.Pos == p.Target {
			s.resolveArc(p)
		}
	} else {
		s.collideProjectile(p)
	}
	return p
}

// advanceProjectiles times out, retargets, moves and collides every live
// shot. Homing shots chase their target's current position and freeze on
// its last known one once it dies. Finished shots stay flagged until the
// purge phase compacts them away.
func (s *GameState) advanceProjectiles() {
	for _, p := range s.Projectiles {
		if p.done {
			continue
		}
		if s.Tick-p.SpawnTick >= projectileLifetimeTicks {
			p.done = true
			s.Journal.Append(Event{
				Type:         EventProjectileExpired,
				Tick:         s.Tick,
				ProjectileID: p.ID,
				X:            p.Pos.X,
				Y:            p.Pos.Y,
			})
			continue
		}
		if p.TargetID != 0 {
			if e := s.enemyByID(p.TargetID); e != nil {
				p.Target = e.Pos
			} else {
				p.TargetID = 0
			}
		}
		if p.Speed > 0 {
			p.Pos = fixed.StepToward(p.Pos, p.Target, p.Speed)
		}
		if p.Arc {
			if p.Pos == p.Target {
				s.resolveArc(p)
			}
			continue
		}
		s.collideProjectile(p)
	}
}

// collideProjectile applies the shot to every enemy overlapping its hit
// radius, in spawn order, until the pierce budget runs out.
func (s *GameState) collideProjectile(p *Projectile) {
	for _, e := range s.Enemies {
		if p.done {
			return
		}
		if !e.Alive() || p.alreadyHit(e.ID) {
			continue
		}
		if !fixed.WithinRange(p.Pos, e.Pos, p.HitRadius) {
			continue
		}
		s.creditHit(p, e)
	}
}

// creditHit lands one pierce target: full damage for the first, the
// compounded falloff for each one after. The pierce budget counts targets
// beyond the first.
func (s *GameState) creditHit(p *Projectile, e *Enemy) {
	s.assert(!p.alreadyHit(e.ID), "projectile %d double-credited enemy %d", p.ID, e.ID)
	damage := p.Damage
	for range p.hitEnemyIDs {
		damage = fixed.MulRatio(damage, p.PierceFalloffBp, 10000)
	}
	p.hitEnemyIDs = append(p.hitEnemyIDs, e.ID)

	dealt := s.applyEnemyDamage(e, enemyDamage{
		Amount:       damage,
		Class:        p.Class,
		Source:       p.Source,
		SourceID:     p.SourceID,
		ProjectileID: p.ID,
		AllowCrit:    true,
		RecordHit:    true,
	})
	if p.OnHit.Status != content.StatusNone && dealt > 0 {
		s.applyStatus(e, riderApplication(p.OnHit, dealt), p.Source, p.SourceID)
	}
	if len(p.hitEnemyIDs) > p.Pierce {
		p.done = true
	}
}

// resolveArc detonates an arcing shot at its aim point, crediting every
// enemy inside the splash radius exactly once.
func (s *GameState) resolveArc(p *Projectile) {
	for _, e := range s.Enemies {
		if !e.Alive() {
			continue
		}
		if !fixed.WithinRange(p.Target, e.Pos, p.SplashRadius) {
			continue
		}
		p.hitEnemyIDs = append(p.hitEnemyIDs, e.ID)
		dealt := s.applyEnemyDamage(e, enemyDamage{
			Amount:       p.Damage,
			Class:        p.Class,
			Source:       p.Source,
			SourceID:     p.SourceID,
			ProjectileID: p.ID,
			AllowCrit:    true,
			RecordHit:    true,
		})
		if p.OnHit.Status != content.StatusNone && dealt > 0 {
			s.applyStatus(e, riderApplication(p.OnHit, dealt), p.Source, p.SourceID)
		}
	}
	p.done = true
}
