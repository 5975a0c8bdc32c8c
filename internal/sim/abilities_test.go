package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"growfortress/simcore/content"
	"growfortress/simcore/fixed"
)

func TestHealerPulsesOthersOnlyAndClipsOverheal(t *testing.T) {
	s := newTestState(t, 3)
	medic := placeEnemy(t, s, "medic", fixed.V(50, 0))
	hurt := placeEnemy(t, s, "tank", fixed.V(53, 0))
	nearly := placeEnemy(t, s, "grunt", fixed.V(56, 0))
	far := placeEnemy(t, s, "tank", fixed.V(80, 0))

	medic.HP -= fixed.FromInt(20)
	hurt.HP -= fixed.FromInt(50)
	nearly.HP -= fixed.FromInt(4)
	far.HP -= fixed.FromInt(50)

	s.Tick = 25
	s.enemySpecial(medic)

	require.Equal(t, medic.MaxHP-fixed.FromInt(20), medic.HP, "healer never heals itself")
	require.Equal(t, hurt.MaxHP-fixed.FromInt(40), hurt.HP)
	require.Equal(t, nearly.MaxHP, nearly.HP, "overheal clips at max")
	require.Equal(t, far.MaxHP-fixed.FromInt(50), far.HP, "out of radius")
	require.Equal(t, int64(50), medic.nextPulse)

	var heals int
	for _, ev := range s.Journal.Drain() {
		if ev.Type == EventHeal {
			heals++
		}
	}
	require.Equal(t, 2, heals)
}

func TestHealerPulseCadence(t *testing.T) {
	s := newTestState(t, 3)
	medic := placeEnemy(t, s, "medic", fixed.V(50, 0))
	hurt := placeEnemy(t, s, "tank", fixed.V(53, 0))
	hurt.HP -= fixed.FromInt(50)

	s.Tick = 24
	s.enemySpecial(medic)
	require.Equal(t, hurt.MaxHP-fixed.FromInt(50), hurt.HP, "one tick early")

	s.Tick = 25
	s.enemySpecial(medic)
	require.Equal(t, hurt.MaxHP-fixed.FromInt(40), hurt.HP)

	s.Tick = 26
	s.enemySpecial(medic)
	require.Equal(t, hurt.MaxHP-fixed.FromInt(40), hurt.HP, "interval restarts after a pulse")
}

func TestBlinkJumpsTowardFortress(t *testing.T) {
	s := newTestState(t, 3)
	b := placeEnemy(t, s, "blinker", fixed.V(90, 0))

	s.Tick = 40
	s.enemySpecial(b)

	require.Equal(t, fixed.FromInt(65), b.Pos.X, "blink covers its full distance")
	require.True(t, b.Pos.Y >= fixed.FromInt(-4) && b.Pos.Y <= fixed.FromInt(4),
		"lateral jitter stays inside the authored bound")
	require.Equal(t, int64(80), b.nextPulse)
}

func TestBlinkNeverLandsInsideStopRing(t *testing.T) {
	s := newTestState(t, 3)
	b := placeEnemy(t, s, "blinker", fixed.V(14, 0))
	stop := s.enemyStopRadius(b)

	s.Tick = 40
	s.enemySpecial(b)

	dsq := fixed.DistanceSq(b.Pos, s.Fortress.Pos)
	require.True(t, dsq >= int64(stop)*int64(stop),
		"landed at %v, inside the stop ring of %v", b.Pos, stop)
}

func TestEnemyPrefersHeroesOverStructures(t *testing.T) {
	s := newTestState(t, 3)
	hero, _ := s.Catalog.Hero("archer")
	h := s.AddHero(hero, 1, 1)
	g := placeEnemy(t, s, "grunt", fixed.V(9, 0))

	s.Tick = 20
	s.enemyAttack(g)
	require.Equal(t, fixed.FromInt(95), h.HP)
	require.Equal(t, fixed.FromInt(300), s.Fortress.WallHP, "a hero in reach shields the wall")
	require.Equal(t, int64(40), g.nextAttack)

	h.HP = 0
	s.Tick = 40
	s.enemyAttack(g)
	require.Equal(t, fixed.FromInt(295), s.Fortress.WallHP, "falls back to structures")
}

func TestSapperTriplesStructureDamage(t *testing.T) {
	s := newTestState(t, 3)
	w := placeEnemy(t, s, "wrecker", fixed.V(11, 0))

	s.Tick = 20
	s.enemyAttack(w)
	require.Equal(t, fixed.FromInt(276), s.Fortress.WallHP)
}

func TestSiegeAttacksFromStandoff(t *testing.T) {
	s := newTestState(t, 3)
	c := placeEnemy(t, s, "catapult", fixed.V(31, 0))

	s.Tick = 40
	s.enemyAttack(c)
	require.Equal(t, fixed.FromInt(300), s.Fortress.WallHP, "one unit past standoff reach")
	require.Equal(t, int64(40), c.nextAttack, "a dry tick does not restart the cooldown")

	c.Pos = fixed.V(30, 0)
	s.enemyAttack(c)
	require.Equal(t, fixed.FromInt(276), s.Fortress.WallHP, "12 base doubled by the siege multiplier")
}

func TestWallAbsorbsKillingBlowWithoutSpill(t *testing.T) {
	s := newTestState(t, 3)
	w := placeEnemy(t, s, "wrecker", fixed.V(11, 0))
	s.Fortress.WallHP = fixed.FromInt(10)

	s.Tick = 20
	s.enemyAttack(w)
	require.Equal(t, fixed.Fx(0), s.Fortress.WallHP)
	require.Equal(t, fixed.FromInt(1000), s.Fortress.HP, "overkill never spills past the wall")

	var wallDown bool
	for _, ev := range s.Journal.Drain() {
		if ev.Type == EventWallDestroyed {
			wallDown = true
		}
	}
	require.True(t, wallDown)

	s.Tick = 40
	s.enemyAttack(w)
	require.Equal(t, fixed.FromInt(976), s.Fortress.HP, "wall down, the fortress takes the swing")
}

func TestShieldAuraCoversOthersNeverCaster(t *testing.T) {
	s := newTestState(t, 3)
	noCrits(s)
	sb := placeEnemy(t, s, "shieldbearer", fixed.V(50, 0))
	g := placeEnemy(t, s, "grunt", fixed.V(53, 0))

	s.applyEnemyDamage(g, enemyDamage{Amount: fixed.FromInt(20), Source: SourceTurret})
	require.Equal(t, fixed.FromInt(48), g.HP, "40% aura reduction")

	s.applyEnemyDamage(sb, enemyDamage{Amount: fixed.FromInt(20), Source: SourceTurret})
	require.Equal(t, fixed.FromInt(100), sb.HP, "the caster gets no cover from its own aura")
}

func TestShieldAuraDoesNotStackAndDiesWithCaster(t *testing.T) {
	s := newTestState(t, 3)
	noCrits(s)
	sb := placeEnemy(t, s, "shieldbearer", fixed.V(50, 0))
	placeEnemy(t, s, "shieldbearer", fixed.V(47, 0))
	g := placeEnemy(t, s, "grunt", fixed.V(53, 0))

	s.applyEnemyDamage(g, enemyDamage{Amount: fixed.FromInt(20), Source: SourceTurret})
	require.Equal(t, fixed.FromInt(48), g.HP, "two overlapping auras grant the strongest, not the product")

	s.applyEnemyDamage(sb, enemyDamage{Amount: fixed.FromInt(200), Source: SourceTurret})
	s.applyEnemyDamage(s.Enemies[1], enemyDamage{Amount: fixed.FromInt(200), Source: SourceTurret})
	require.False(t, sb.Alive())

	s.applyEnemyDamage(g, enemyDamage{Amount: fixed.FromInt(20), Source: SourceTurret})
	require.Equal(t, fixed.FromInt(28), g.HP, "cover is queried live, dead casters grant nothing")
}

func TestFortressRechargeUsesCooldownCategory(t *testing.T) {
	newKeepState := func() *GameState {
		catalog := testCatalog(t)
		fortress, _ := catalog.Fortress("keep")
		pillar, _ := catalog.Pillar("long-march")
		s, err := NewGameState(Config{Catalog: catalog, Seed: 3, Fortress: fortress, Pillar: pillar, Debug: true})
		require.NoError(t, err)
		return s
	}

	s := newKeepState()
	placeEnemy(t, s, "tank", fixed.V(25, 0))
	s.Tick = 1
	s.Modifiers[content.BonusCooldownReduction] = 10000
	s.fortressAttack()
	require.Len(t, s.Projectiles, 1)
	require.Equal(t, int64(11), s.Fortress.nextAttack, "100% cooldown reduction halves the recharge")

	s = newKeepState()
	placeEnemy(t, s, "tank", fixed.V(25, 0))
	s.Tick = 1
	s.Modifiers[content.BonusAttackSpeed] = 10000
	s.fortressAttack()
	require.Equal(t, int64(21), s.Fortress.nextAttack, "attack speed is a hero and turret category")
}

func TestHeroAutoScalesWithAttackSpeed(t *testing.T) {
	s := newTestState(t, 3)
	noCrits(s)
	hero, _ := s.Catalog.Hero("archer")
	h := s.AddHero(hero, 1, 1)
	placeEnemy(t, s, "tank", fixed.V(30, 0))

	s.Tick = 1
	s.Modifiers[content.BonusAttackSpeed] = 10000
	s.heroAttack(h)
	require.Len(t, s.Projectiles, 1)
	require.Equal(t, int64(6), h.nextAttack)
}

func TestHeroHoldsFireOutOfRange(t *testing.T) {
	s := newTestState(t, 3)
	hero, _ := s.Catalog.Hero("archer")
	h := s.AddHero(hero, 1, 1)
	placeEnemy(t, s, "tank", fixed.V(80, 0))

	s.Tick = 1
	s.heroAttack(h)
	require.Empty(t, s.Projectiles)
	require.Equal(t, int64(0), h.nextAttack, "no shot, no cooldown")
}

func TestStunBlocksTheWholeTurn(t *testing.T) {
	s := newTestState(t, 3)
	g := placeEnemy(t, s, "grunt", fixed.V(11, 0))
	applyTestStatus(s, g, statusApplication{Kind: content.StatusStun, Duration: 5})

	s.Tick = 20
	s.resolveAttacks()
	require.Equal(t, fixed.FromInt(300), s.Fortress.WallHP)
	require.Equal(t, int64(20), g.nextAttack, "a stunned turn does not consume the cooldown")

	for i := 0; i < 5; i++ {
		s.Tick++
		s.advanceStatusEffects()
	}
	s.resolveAttacks()
	require.Equal(t, fixed.FromInt(295), s.Fortress.WallHP, "one swing after the stun, no catch-up burst")
}
