package sim

import "growfortress/simcore/internal/modifier"

// Step advances the battle exactly one tick. It is pure computation over
// the receiver: no I/O, no clock, no locks, no entropy beyond the seeded
// streams. The phase order below is part of the determinism contract;
// reordering any of it changes outcomes. Callers cancel by not calling
// again; a finished state ignores further steps.
func (s *GameState) Step() {
	if s.Finished() {
		return
	}
	s.Tick++

	s.spawnArrivals()
	s.Modifiers = modifier.Compute(s.modifierInput())
	s.advanceStatusEffects()
	s.advanceMovement()
	s.advanceProjectiles()
	s.resolveAttacks()
	s.detectCombos()
	s.purge()
	s.checkTerminal()
}

// purge compacts finished entities away, preserving relative order so
// iteration stays deterministic, and trims every live enemy's hit history
// to the reaction window.
func (s *GameState) purge() {
	s.purgeHitHistories()

	live := s.Enemies[:0]
	for _, e := range s.Enemies {
		if e.Alive() {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(s.Enemies); i++ {
		s.Enemies[i] = nil
	}
	s.Enemies = live

	flying := s.Projectiles[:0]
	for _, p := range s.Projectiles {
		if !p.done {
			flying = append(flying, p)
		}
	}
	for i := len(flying); i < len(s.Projectiles); i++ {
		s.Projectiles[i] = nil
	}
	s.Projectiles = flying
}

// checkTerminal ends the run when the fortress falls or the final wave is
// cleared. The tick-limit outcome belongs to the orchestrator, which stops
// driving ticks and stamps it through FinishTickLimit.
func (s *GameState) checkTerminal() {
	if s.Fortress.HP <= 0 {
		s.finish(OutcomeDefeat)
		return
	}
	if s.wavesExhausted() && len(s.Enemies) == 0 {
		s.finish(OutcomeVictory)
	}
}
