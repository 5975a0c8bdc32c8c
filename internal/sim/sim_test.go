package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"growfortress/simcore/content"
	"growfortress/simcore/fixed"
)

// testDocument is a compact definition set with flat, easy-to-count
// numbers. Damage values divide evenly so pipeline tests can assert exact
// fixed-point results.
func testDocument() content.Document {
	return content.Document{
		Heroes: []content.HeroDocument{
			{
				ID: "archer", Name: "Archer", Class: "physical",
				MaxHP: 100, Speed: 6, Damage: 20, AttackInterval: 10,
				Range: 60, PreferredRange: 40,
				Projectile: content.ProjectileDocument{Speed: 60, HitRadius: 1},
			},
			{
				ID: "pyro", Name: "Pyro", Class: "fire",
				MaxHP: 80, Speed: 6, Damage: 20, AttackInterval: 12,
				Range: 50, PreferredRange: 40,
				Projectile: content.ProjectileDocument{Speed: 60, HitRadius: 1},
			},
			{
				ID: "cryo", Name: "Cryo", Class: "ice",
				MaxHP: 80, Speed: 6, Damage: 20, AttackInterval: 12,
				Range: 50, PreferredRange: 40,
				Projectile: content.ProjectileDocument{Speed: 60, HitRadius: 1},
			},
		},
		Turrets: []content.TurretDocument{
			{
				ID: "ballista", Name: "Ballista", Class: "physical",
				Damage: 20, AttackInterval: 15, Range: 80,
				Projectile: content.ProjectileDocument{
					Speed: 90, HitRadius: 1, PierceCount: 2, PierceFalloffPct: 50,
				},
			},
			{
				ID: "mortar", Name: "Mortar", Class: "fire",
				Damage: 12, AttackInterval: 30, Range: 90,
				Projectile: content.ProjectileDocument{
					Speed: 30, HitRadius: 1, Arc: true, SplashRadius: 5,
				},
			},
		},
		Enemies: []content.EnemyDocument{
			{
				ID: "grunt", Name: "Grunt",
				MaxHP: 60, Speed: 3, Damage: 5, AttackInterval: 20, Range: 2,
			},
			{
				ID: "tank", Name: "Tank",
				MaxHP: 500, Speed: 2, Damage: 10, AttackInterval: 25, Range: 2,
			},
			{
				ID: "shieldbearer", Name: "Shieldbearer", Special: "shield-aura",
				MaxHP: 120, Speed: 2, Damage: 5, AttackInterval: 20, Range: 2,
				AuraRadius: 6, AuraReductionPct: 40,
			},
			{
				ID: "medic", Name: "Medic", Special: "healer",
				MaxHP: 80, Speed: 3, Damage: 3, AttackInterval: 30, Range: 2,
				HealAmount: 10, HealRadius: 8, HealInterval: 25,
			},
			{
				ID: "blinker", Name: "Blinker", Special: "teleporter",
				MaxHP: 70, Speed: 3, Damage: 6, AttackInterval: 20, Range: 2,
				BlinkInterval: 40, BlinkDistance: 25, BlinkJitter: 4,
			},
			{
				ID: "wrecker", Name: "Wrecker", Special: "sapper",
				MaxHP: 90, Speed: 3, Damage: 8, AttackInterval: 20, Range: 2,
				StructureDmgPct: 300,
			},
			{
				ID: "catapult", Name: "Catapult", Special: "siege",
				MaxHP: 150, Speed: 2, Damage: 12, AttackInterval: 40, Range: 5,
				StructureDmgPct: 200, StandoffRange: 20,
			},
		},
		Fortresses: []content.FortressDocument{
			{
				ID: "keep", Name: "Keep", Class: "physical",
				MaxHP: 1000, WallHP: 300, Damage: 15, AttackInterval: 20, Range: 30,
				Projectile: content.ProjectileDocument{Speed: 90, HitRadius: 1},
			},
			{
				ID: "quiet-keep", Name: "Quiet Keep", Class: "physical",
				MaxHP: 1000, WallHP: 300, Damage: 0, AttackInterval: 20, Range: 1,
				Projectile: content.ProjectileDocument{Speed: 90, HitRadius: 1},
			},
		},
		Pillars: []content.PillarDocument{
			{
				ID: "proving-grounds", Name: "Proving Grounds",
				BaseWaveSize: 2, WaveGrowthBp: 5000, HPGrowthBp: 10000,
				WaveInterval: 100, WaveCount: 3,
				Composition: []string{"grunt"},
			},
			{
				ID: "long-march", Name: "Long March",
				BaseWaveSize: 1, WaveInterval: 50, WaveCount: 1,
				Composition: []string{"grunt"},
			},
			{
				ID: "mixed-column", Name: "Mixed Column",
				BaseWaveSize: 3, WaveInterval: 10, WaveCount: 2,
				Composition: []string{"grunt", "tank"},
			},
		},
		Combos: []content.ComboDocument{
			{ID: "steam-burst", Name: "Steam Burst", First: "fire", Second: "ice", Effect: "bonus-damage", BonusPct: 30},
			{ID: "electrocute", Name: "Electrocute", First: "lightning", Second: "water", Effect: "stun", StunTicks: 45},
			{ID: "shatter", Name: "Shatter", First: "physical", Second: "ice", Effect: "armor-break"},
		},
		Synergies: []content.SynergyDocument{
			{ID: "twin-casters", Name: "Twin Casters", Heroes: []string{"pyro", "cryo"}, Radius: 10, Category: "damage", BonusBp: 2000},
			{ID: "phalanx", Name: "Phalanx", Heroes: []string{"archer", "pyro"}, Radius: 8, Category: "damage-reduction", BonusBp: 2500},
		},
	}
}

func testCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	catalog, err := content.Compile(testDocument())
	require.NoError(t, err)
	return catalog
}

// newTestState builds a running state against the quiet fortress so no
// stray fortress shots disturb hand-placed scenarios.
func newTestState(t *testing.T, seed uint64) *GameState {
	t.Helper()
	catalog := testCatalog(t)
	fortress, ok := catalog.Fortress("quiet-keep")
	require.True(t, ok)
	pillar, ok := catalog.Pillar("long-march")
	require.True(t, ok)
	s, err := NewGameState(Config{
		Catalog:  catalog,
		Seed:     seed,
		Fortress: fortress,
		Pillar:   pillar,
		Debug:    true,
	})
	require.NoError(t, err)
	return s
}

// placeEnemy spawns an enemy and moves it to an exact spot, clearing the
// spawn-line jitter the wave path applies.
func placeEnemy(t *testing.T, s *GameState, id string, pos fixed.Vec) *Enemy {
	t.Helper()
	spec, ok := s.Catalog.Enemy(id)
	require.True(t, ok)
	e := s.SpawnEnemy(spec, 10000, 1)
	e.Pos = pos
	return e
}

func TestStepDeterminism(t *testing.T) {
	run := func() *GameState {
		catalog, err := content.Compile(testDocument())
		require.NoError(t, err)
		fortress, _ := catalog.Fortress("keep")
		pillar, _ := catalog.Pillar("proving-grounds")
		s, err := NewGameState(Config{
			Catalog:  catalog,
			Seed:     0xfeedface,
			Fortress: fortress,
			Pillar:   pillar,
		})
		require.NoError(t, err)
		hero, _ := catalog.Hero("pyro")
		other, _ := catalog.Hero("cryo")
		turret, _ := catalog.Turret("ballista")
		s.AddHero(hero, 2, 3)
		s.AddHero(other, 1, 1)
		s.AddTurret(turret, 1)
		s.ApplyMaxHPBonus()
		for i := 0; i < 400 && !s.Finished(); i++ {
			s.Step()
		}
		return s
	}

	a := run()
	b := run()

	require.Equal(t, a.Tick, b.Tick)
	require.Equal(t, a.Outcome(), b.Outcome())
	require.Equal(t, a.Stats, b.Stats)
	require.Equal(t, a.Fortress.HP, b.Fortress.HP)
	require.Equal(t, a.Fortress.WallHP, b.Fortress.WallHP)
	require.Equal(t, a.Journal.Drain(), b.Journal.Drain())
}

func TestOutcomeVictory(t *testing.T) {
	catalog := testCatalog(t)
	fortress, _ := catalog.Fortress("keep")
	pillar, _ := catalog.Pillar("long-march")
	s, err := NewGameState(Config{
		Catalog:  catalog,
		Seed:     7,
		Fortress: fortress,
		Pillar:   pillar,
	})
	require.NoError(t, err)
	turret, _ := catalog.Turret("ballista")
	s.AddTurret(turret, 3)

	for i := 0; i < 2000 && !s.Finished(); i++ {
		s.Step()
	}
	require.Equal(t, OutcomeVictory, s.Outcome())
	require.Empty(t, s.Enemies)

	events := s.Journal.Drain()
	last := events[len(events)-1]
	require.Equal(t, EventBattleEnded, last.Type)
	require.Equal(t, "victory", last.Outcome)
}

func TestOutcomeDefeat(t *testing.T) {
	catalog := testCatalog(t)
	fortress, _ := catalog.Fortress("quiet-keep")
	pillar, _ := catalog.Pillar("long-march")
	s, err := NewGameState(Config{
		Catalog:  catalog,
		Seed:     7,
		Fortress: fortress,
		Pillar:   pillar,
	})
	require.NoError(t, err)

	// No defense at all: the lone grunt chews through both pools.
	for i := 0; i < 10000 && !s.Finished(); i++ {
		s.Step()
	}
	require.Equal(t, OutcomeDefeat, s.Outcome())
	require.Equal(t, fixed.Fx(0), s.Fortress.HP)
}

func TestTickLimitOutcome(t *testing.T) {
	s := newTestState(t, 11)
	s.Step()
	require.False(t, s.Finished())

	tick := s.Tick
	s.FinishTickLimit()
	require.Equal(t, OutcomeTickLimit, s.Outcome())

	s.Step()
	require.Equal(t, tick, s.Tick, "finished state must ignore further steps")

	events := s.Journal.Drain()
	last := events[len(events)-1]
	require.Equal(t, EventBattleEnded, last.Type)
	require.Equal(t, "tick_limit", last.Outcome)
}
