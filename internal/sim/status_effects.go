package sim

import (
	"growfortress/simcore/content"
	"growfortress/simcore/fixed"
)

// statusPolicy is the stacking rule applied when an effect of a kind the
// enemy already carries is applied again.
type statusPolicy uint8

const (
	// policyStrongest keeps the stronger magnitude and the longer remaining
	// duration (slow).
	policyStrongest statusPolicy = iota
	// policyRestart restarts the duration (freeze).
	policyRestart
	// policyReplace swaps in the new magnitude and restarts (burn).
	policyReplace
	// policyLongest keeps whichever remaining duration is longer (stun).
	policyLongest
	// policyMarker is a single un-timed marker; reapplication is a no-op
	// and consumption happens in the damage path (armor-break).
	policyMarker
)

type statusDefinition struct {
	policy   statusPolicy
	movement bool
}

var statusTable = [content.StatusKindCount]statusDefinition{
	content.StatusSlow:       {policy: policyStrongest, movement: true},
	content.StatusFreeze:     {policy: policyRestart, movement: true},
	content.StatusBurn:       {policy: policyReplace},
	content.StatusStun:       {policy: policyLongest},
	content.StatusArmorBreak: {policy: policyMarker},
}

// statusApplication carries one application's parameters.
type statusApplication struct {
	Kind        content.StatusKind
	MagnitudeBp int64
	Duration    int64
	DotAmount   fixed.Fx
	DotEvery    int64
}

// riderApplication converts a projectile's compiled on-hit rider into an
// application. Burn damage scales off the triggering hit.
func riderApplication(spec content.OnHitSpec, hit fixed.Fx) statusApplication {
	app := statusApplication{
		Kind:        spec.Status,
		MagnitudeBp: spec.MagnitudeBp,
		Duration:    spec.Duration,
	}
	if spec.Status == content.StatusBurn {
		app.DotAmount = fixed.MulRatio(hit, spec.DotBp, 10000)
		app.DotEvery = spec.Pulse
	}
	return app
}

// applyStatus applies a timed effect under the kind's stacking policy and
// emits a status_applied event when the slot actually changed.
func (s *GameState) applyStatus(e *Enemy, app statusApplication, source SourceKind, sourceID int64) {
	if e == nil || !e.Alive() {
		return
	}
	if app.Kind == content.StatusNone || app.Kind >= content.StatusKindCount {
		return
	}
	def := statusTable[app.Kind]
	slot := &e.effects[app.Kind]
	changed := false

	switch def.policy {
	case policyStrongest:
		if !slot.Active {
			*slot = statusEffect{Active: true, MagnitudeBp: app.MagnitudeBp, Remaining: app.Duration}
			changed = true
		} else {
			if app.MagnitudeBp > slot.MagnitudeBp {
				slot.MagnitudeBp = app.MagnitudeBp
				changed = true
			}
			if app.Duration > slot.Remaining {
				slot.Remaining = app.Duration
				changed = true
			}
		}
	case policyRestart:
		*slot = statusEffect{Active: true, Remaining: app.Duration}
		changed = true
	case policyReplace:
		*slot = statusEffect{
			Active:    true,
			Remaining: app.Duration,
			DotAmount: app.DotAmount,
			DotEvery:  app.DotEvery,
			NextDot:   s.Tick + app.DotEvery,
		}
		changed = true
	case policyLongest:
		if !slot.Active || app.Duration > slot.Remaining {
			*slot = statusEffect{Active: true, Remaining: app.Duration}
			changed = true
		}
	case policyMarker:
		if !slot.Active {
			*slot = statusEffect{Active: true}
			changed = true
		}
	}

	if !changed {
		return
	}
	if def.movement {
		s.recomputeSpeed(e)
	}
	s.Journal.Append(Event{
		Type:       EventStatusApplied,
		Tick:       s.Tick,
		EnemyID:    e.ID,
		Status:     app.Kind.String(),
		SourceKind: source.String(),
		SourceID:   sourceID,
	})
}

// advanceStatusEffects runs DOT pulses, decrements durations, removes
// expired effects and recomputes derived speed where a movement effect
// changed. Markers are untouched; the damage path consumes them.
func (s *GameState) advanceStatusEffects() {
	for _, e := range s.Enemies {
		if !e.Alive() {
			continue
		}
		speedDirty := false
		for kind := content.StatusKind(1); kind < content.StatusKindCount; kind++ {
			slot := &e.effects[kind]
			if !slot.Active {
				continue
			}
			def := statusTable[kind]
			if def.policy == policyMarker {
				continue
			}
			if kind == content.StatusBurn && slot.DotEvery > 0 {
				for e.Alive() && slot.NextDot <= s.Tick {
					s.applyEnemyDamage(e, enemyDamage{
						Amount: slot.DotAmount,
						Source: SourceStatus,
						Status: kind,
					})
					slot.NextDot += slot.DotEvery
				}
				if !e.Alive() {
					break
				}
			}
			slot.Remaining--
			if slot.Remaining > 0 {
				continue
			}
			*slot = statusEffect{}
			if def.movement {
				speedDirty = true
			}
			s.Journal.Append(Event{
				Type:    EventStatusExpired,
				Tick:    s.Tick,
				EnemyID: e.ID,
				Status:  kind.String(),
			})
		}
		if speedDirty && e.Alive() {
			s.recomputeSpeed(e)
		}
	}
}

// recomputeSpeed derives current speed from base speed and the surviving
// movement effects. With none left it lands exactly on BaseSpeed.
func (s *GameState) recomputeSpeed(e *Enemy) {
	if e.effects[content.StatusFreeze].Active {
		e.Speed = 0
		return
	}
	speed := e.BaseSpeed
	if slow := e.effects[content.StatusSlow]; slow.Active {
		speed = fixed.MulRatio(speed, 10000-slow.MagnitudeBp, 10000)
		if speed < 0 {
			speed = 0
		}
	}
	e.Speed = speed
}

func (e *Enemy) stunned() bool {
	return e.effects[content.StatusStun].Active
}

// consumeArmorBreak reports and clears the one-shot marker.
func (e *Enemy) consumeArmorBreak() bool {
	if !e.effects[content.StatusArmorBreak].Active {
		return false
	}
	e.effects[content.StatusArmorBreak] = statusEffect{}
	return true
}
