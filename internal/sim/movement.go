package sim

import (
	"growfortress/simcore/content"
	"growfortress/simcore/fixed"
)

// Steering tuning. Heroes damp their approach inside the arrival radius
// and push apart when packed closer than the separation radius.
var (
	arrivalRadius    = fixed.FromInt(3)
	separationRadius = fixed.FromInt(2)
)

// advanceMovement steers heroes and marches enemies. Each mobile entity
// gets one velocity application per tick; turrets and the fortress never
// move.
func (s *GameState) advanceMovement() {
	for _, h := range s.Heroes {
		if h.Alive() {
			s.steerHero(h)
		}
	}
	for _, e := range s.Enemies {
		if e.Alive() {
			s.marchEnemy(e)
		}
	}
}

// steerHero composes an arrival-damped seek toward the preferred combat
// distance with a separation push off nearby allies. The composed force is
// clamped to the hero's speed before it is applied.
func (s *GameState) steerHero(h *ActiveHero) {
	maxSpeed := h.Spec.Speed
	if maxSpeed <= 0 {
		return
	}

	var steer fixed.Vec
	if target := s.nearestLiveEnemy(h.Pos); target != nil {
		gap := fixed.Distance(h.Pos, target.Pos) - h.Spec.PreferredRange
		mag := gap
		if mag < 0 {
			mag = -mag
		}
		speed := maxSpeed
		if mag < arrivalRadius {
			speed = fixed.Mul(maxSpeed, fixed.Div(mag, arrivalRadius))
		}
		switch {
		case gap > 0:
			steer = fixed.Toward(h.Pos, target.Pos, speed)
		case gap < 0:
			steer = fixed.Toward(h.Pos, target.Pos, -speed)
		}
	}

	for _, other := range s.Heroes {
		if other == h || !other.Alive() {
			continue
		}
		d := fixed.Distance(h.Pos, other.Pos)
		if d >= separationRadius {
			continue
		}
		steer = steer.Add(fixed.Toward(other.Pos, h.Pos, separationRadius-d))
	}

	if steer.IsZero() {
		return
	}
	h.Pos = h.Pos.Add(fixed.ClampLength(steer, maxSpeed))
}

// marchEnemy advances toward the fortress and lands exactly on the stop
// ring: outside the wall's reach while it stands, at attack reach once it
// falls. Stun holds the enemy in place; freeze zeroes Speed upstream.
func (s *GameState) marchEnemy(e *Enemy) {
	if e.stunned() || e.Speed <= 0 {
		return
	}
	ring := s.Fortress.Pos.Add(fixed.Toward(s.Fortress.Pos, e.Pos, s.enemyStopRadius(e)))
	e.Pos = fixed.StepToward(e.Pos, ring, e.Speed)
}

// enemyStopRadius is the distance from the fortress at which the enemy
// halts and attacks. Siege units hold their longer standoff reach.
func (s *GameState) enemyStopRadius(e *Enemy) fixed.Fx {
	reach := e.Spec.Range
	if e.Spec.Special == content.SpecialSiege && e.Spec.StandoffRange > reach {
		reach = e.Spec.StandoffRange
	}
	if s.Fortress.WallStanding() {
		return wallRing + reach
	}
	return reach
}

// arrivedAtStructures reports whether the enemy stands on its stop ring and
// may attack the wall or fortress this tick.
func (s *GameState) arrivedAtStructures(e *Enemy) bool {
	return fixed.WithinRange(e.Pos, s.Fortress.Pos, s.enemyStopRadius(e))
}
