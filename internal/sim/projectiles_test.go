package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"growfortress/simcore/content"
	"growfortress/simcore/fixed"
)

// noCrits cancels the base crit chance so direct-drive tests assert exact
// amounts. Chance(0) short-circuits without drawing, so the crit stream
// stays untouched too.
func noCrits(s *GameState) {
	s.Modifiers[content.BonusCritChance] = -baseCritBp
}

func linearShot() content.ProjectileSpec {
	return content.ProjectileSpec{Speed: fixed.FromInt(2), HitRadius: fixed.FromInt(1)}
}

func TestProjectileImmediateHitAtSpawn(t *testing.T) {
	s := newTestState(t, 9)
	noCrits(s)
	e := placeEnemy(t, s, "tank", fixed.V(30, 0))
	start := e.HP

	s.Tick = 1
	p := s.spawnProjectile(SourceTurret, 1, content.ClassPhysical, e.Pos, e, fixed.FromInt(20), linearShot())

	require.True(t, p.done, "a shot born on its mark resolves without moving")
	require.Equal(t, start-fixed.FromInt(20), e.HP)
}

func TestZeroSpeedProjectileOnlyTimesOut(t *testing.T) {
	s := newTestState(t, 9)
	noCrits(s)
	e := placeEnemy(t, s, "tank", fixed.V(30, 0))
	start := e.HP

	s.Tick = 1
	spec := content.ProjectileSpec{Speed: 0, HitRadius: fixed.FromInt(1)}
	p := s.spawnProjectile(SourceTurret, 1, content.ClassPhysical, fixed.V(0, 0), e, fixed.FromInt(20), spec)

	for i := 0; i < 95 && !p.done; i++ {
		s.Tick++
		s.advanceProjectiles()
	}

	require.True(t, p.done)
	require.Equal(t, fixed.V(0, 0), p.Pos, "never moved")
	require.Equal(t, start, e.HP, "never hit")

	expired := 0
	for _, ev := range s.Journal.Drain() {
		if ev.Type == EventProjectileExpired && ev.ProjectileID == p.ID {
			expired++
		}
	}
	require.Equal(t, 1, expired)
}

func TestPierceFalloffCompounds(t *testing.T) {
	s := newTestState(t, 9)
	noCrits(s)
	e1 := placeEnemy(t, s, "tank", fixed.V(30, 0))
	e2 := placeEnemy(t, s, "tank", fixed.V(30, 0))
	e3 := placeEnemy(t, s, "tank", fixed.V(30, 0))
	e4 := placeEnemy(t, s, "tank", fixed.V(50, 0))
	start := e1.HP

	s.Tick = 1
	spec := linearShot()
	spec.PierceCount = 2
	spec.PierceFalloffBp = 5000
	p := s.spawnProjectile(SourceTurret, 1, content.ClassPhysical, fixed.V(30, 0), e1, fixed.FromInt(20), spec)

	require.True(t, p.done, "budget spent after the third target")
	require.Equal(t, []int64{e1.ID, e2.ID, e3.ID}, p.hitEnemyIDs)
	require.Equal(t, start-fixed.FromInt(20), e1.HP)
	require.Equal(t, start-fixed.FromInt(10), e2.HP)
	require.Equal(t, start-fixed.FromInt(5), e3.HP)
	require.Equal(t, start, e4.HP)
}

func TestPierceNeverDoubleCredits(t *testing.T) {
	s := newTestState(t, 9)
	noCrits(s)
	e := placeEnemy(t, s, "tank", fixed.V(30, 0))
	start := e.HP

	s.Tick = 1
	spec := linearShot()
	spec.PierceCount = 3
	spec.PierceFalloffBp = 5000
	p := s.spawnProjectile(SourceTurret, 1, content.ClassPhysical, e.Pos, e, fixed.FromInt(20), spec)
	require.False(t, p.done, "budget still open")

	for i := 0; i < 5; i++ {
		s.Tick++
		s.advanceProjectiles()
	}

	require.Equal(t, start-fixed.FromInt(20), e.HP, "credited exactly once across ticks")
	require.Equal(t, []int64{e.ID}, p.hitEnemyIDs)
}

func TestHomingFreezesWhenTargetDies(t *testing.T) {
	s := newTestState(t, 9)
	noCrits(s)
	e1 := placeEnemy(t, s, "tank", fixed.V(40, 0))

	s.Tick = 1
	p := s.spawnProjectile(SourceTurret, 1, content.ClassPhysical, fixed.V(0, 0), e1, fixed.FromInt(20), linearShot())

	for i := 0; i < 3; i++ {
		s.Tick++
		s.advanceProjectiles()
	}
	e1.Pos = fixed.V(40, 10)
	s.Tick++
	s.advanceProjectiles()
	require.Equal(t, fixed.V(40, 10), p.Target, "homing chases the current position")

	e1.HP = 0
	e1.dead = true
	s.Tick++
	s.advanceProjectiles()
	require.Zero(t, p.TargetID, "aim freezes once the target dies")
	require.Equal(t, fixed.V(40, 10), p.Target)

	bystander := placeEnemy(t, s, "tank", fixed.V(40, 10))
	start := bystander.HP
	for i := 0; i < 40 && !p.done; i++ {
		s.Tick++
		s.advanceProjectiles()
	}
	require.True(t, p.done)
	require.Equal(t, start-fixed.FromInt(20), bystander.HP, "whoever stands on the frozen point takes the hit")
}

func TestArcSplashCreditsEachEnemyOnce(t *testing.T) {
	s := newTestState(t, 9)
	noCrits(s)
	e1 := placeEnemy(t, s, "tank", fixed.V(30, 0))
	e2 := placeEnemy(t, s, "tank", fixed.V(30, 3))
	e3 := placeEnemy(t, s, "tank", fixed.V(30, 8))
	start := e1.HP

	s.Tick = 1
	spec := content.ProjectileSpec{
		Speed:        fixed.FromInt(2),
		HitRadius:    fixed.FromInt(1),
		Arc:          true,
		SplashRadius: fixed.FromInt(5),
	}
	p := s.spawnProjectile(SourceTurret, 1, content.ClassFire, fixed.V(0, 0), e1, fixed.FromInt(12), spec)
	require.Zero(t, p.TargetID, "arcs lob at the point and never retarget")

	for i := 0; i < 20 && !p.done; i++ {
		s.Tick++
		s.advanceProjectiles()
	}

	require.True(t, p.done)
	require.Equal(t, []int64{e1.ID, e2.ID}, p.hitEnemyIDs)
	require.Equal(t, start-fixed.FromInt(12), e1.HP)
	require.Equal(t, start-fixed.FromInt(12), e2.HP)
	require.Equal(t, start, e3.HP, "outside the splash radius")
}

func TestCritDoublesDamage(t *testing.T) {
	s := newTestState(t, 9)
	s.Modifiers[content.BonusCritChance] = 10000 - baseCritBp
	e := placeEnemy(t, s, "tank", fixed.V(30, 0))
	start := e.HP

	s.Tick = 1
	p := s.spawnProjectile(SourceTurret, 1, content.ClassPhysical, e.Pos, e, fixed.FromInt(20), linearShot())
	require.True(t, p.done)
	require.Equal(t, start-fixed.FromInt(40), e.HP)

	crits := 0
	for _, ev := range s.Journal.Drain() {
		if ev.Type == EventDamage && ev.Crit {
			crits++
		}
	}
	require.Equal(t, 1, crits)
}
