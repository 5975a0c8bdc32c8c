package battle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"growfortress/simcore/content"
	"growfortress/simcore/fixed"
	"growfortress/simcore/internal/sim"
)

// orchestratorDocument is a minimal definition set tuned so outcomes are
// forced by construction: the armed loadout always clears the skirmish, the
// empty one always falls.
func orchestratorDocument() content.Document {
	return content.Document{
		Heroes: []content.HeroDocument{
			{
				ID: "vanguard", Name: "Vanguard", Class: "physical",
				MaxHP: 120, Speed: 6, Damage: 25, AttackInterval: 10,
				Range: 60, PreferredRange: 40,
				Projectile: content.ProjectileDocument{Speed: 90, HitRadius: 1},
			},
			{
				ID: "flamecaster", Name: "Flamecaster", Class: "fire",
				MaxHP: 90, Speed: 6, Damage: 20, AttackInterval: 12,
				Range: 50, PreferredRange: 35,
				Projectile: content.ProjectileDocument{Speed: 90, HitRadius: 1},
			},
		},
		Turrets: []content.TurretDocument{
			{
				ID: "bolt-thrower", Name: "Bolt Thrower", Class: "physical",
				Damage: 30, AttackInterval: 12, Range: 90,
				Projectile: content.ProjectileDocument{Speed: 90, HitRadius: 1},
			},
		},
		Enemies: []content.EnemyDocument{
			{
				ID: "husk", Name: "Husk",
				MaxHP: 50, Speed: 3, Damage: 5, AttackInterval: 20, Range: 2,
			},
		},
		Fortresses: []content.FortressDocument{
			{
				ID: "bastion", Name: "Bastion", Class: "physical",
				MaxHP: 800, WallHP: 200, Damage: 10, AttackInterval: 20, Range: 40,
				Projectile: content.ProjectileDocument{Speed: 90, HitRadius: 1},
			},
			{
				ID: "hollow-keep", Name: "Hollow Keep", Class: "physical",
				MaxHP: 400, WallHP: 100, Damage: 0, AttackInterval: 20, Range: 1,
				Projectile: content.ProjectileDocument{Speed: 90, HitRadius: 1},
			},
		},
		Relics: []content.RelicDocument{
			{
				ID: "war-banner", Name: "War Banner", Kind: "synergy",
				Class: "physical", Threshold: 1, Category: "damage", BonusBp: 500,
			},
		},
		Pillars: []content.PillarDocument{
			{
				ID: "skirmish", Name: "Skirmish",
				BaseWaveSize: 2, WaveInterval: 100, WaveCount: 2,
				Composition: []string{"husk"},
			},
		},
		Masteries: []content.MasteryDocument{
			{ID: "focused-synergy", Name: "Focused Synergy", Category: "damage", AmplifyBp: 2500},
		},
		Combos: []content.ComboDocument{
			{ID: "steam-burst", Name: "Steam Burst", First: "fire", Second: "ice", Effect: "bonus-damage", BonusPct: 30},
		},
	}
}

func orchestratorCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	catalog, err := content.Compile(orchestratorDocument())
	require.NoError(t, err)
	return catalog
}

func armedLoadout() Loadout {
	return Loadout{
		Fortress:   "bastion",
		Heroes:     []HeroPick{{ID: "vanguard", Tier: 2, Level: 5}},
		Turrets:    []TurretPick{{ID: "bolt-thrower", Tier: 1}},
		Relics:     []string{"war-banner"},
		Masteries:  []string{"focused-synergy"},
		StatPoints: map[string]int64{"damage": 10},
	}
}

func TestResolveLoadoutRejections(t *testing.T) {
	catalog := orchestratorCatalog(t)
	cases := []struct {
		name    string
		loadout Loadout
	}{
		{"unknown fortress", Loadout{Fortress: "palace"}},
		{"unknown hero", Loadout{Fortress: "bastion", Heroes: []HeroPick{{ID: "nobody", Tier: 1, Level: 1}}}},
		{"duplicate hero", Loadout{Fortress: "bastion", Heroes: []HeroPick{
			{ID: "vanguard", Tier: 1, Level: 1}, {ID: "vanguard", Tier: 2, Level: 1},
		}}},
		{"tier too high", Loadout{Fortress: "bastion", Heroes: []HeroPick{{ID: "vanguard", Tier: 6, Level: 1}}}},
		{"level zero", Loadout{Fortress: "bastion", Heroes: []HeroPick{{ID: "vanguard", Tier: 1, Level: 0}}}},
		{"unknown turret", Loadout{Fortress: "bastion", Turrets: []TurretPick{{ID: "cannon", Tier: 1}}}},
		{"turret tier zero", Loadout{Fortress: "bastion", Turrets: []TurretPick{{ID: "bolt-thrower", Tier: 0}}}},
		{"unknown relic", Loadout{Fortress: "bastion", Relics: []string{"crown"}}},
		{"unknown mastery", Loadout{Fortress: "bastion", Masteries: []string{"nothing"}}},
		{"unknown stat category", Loadout{Fortress: "bastion", StatPoints: map[string]int64{"luck": 1}}},
		{"negative stat points", Loadout{Fortress: "bastion", StatPoints: map[string]int64{"damage": -1}}},
		{"too many heroes", Loadout{Fortress: "bastion", Heroes: []HeroPick{
			{ID: "a", Tier: 1, Level: 1}, {ID: "b", Tier: 1, Level: 1}, {ID: "c", Tier: 1, Level: 1},
			{ID: "d", Tier: 1, Level: 1}, {ID: "e", Tier: 1, Level: 1}, {ID: "f", Tier: 1, Level: 1},
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := resolveLoadout(catalog, tc.loadout)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
		})
	}

	_, err := resolveLoadout(nil, armedLoadout())
	require.ErrorIs(t, err, ErrNilCatalog)
}

func TestNewRejectsUnknownPillar(t *testing.T) {
	_, err := New(Config{
		Catalog: orchestratorCatalog(t),
		Loadout: armedLoadout(),
		Pillar:  "nowhere",
		Seed:    1,
	})
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "pillar", cfgErr.Field)
}

func TestBattleLifecycle(t *testing.T) {
	b, err := New(Config{
		Catalog: orchestratorCatalog(t),
		Loadout: armedLoadout(),
		Pillar:  "skirmish",
		Seed:    11,
		TickCap: 5000,
		Debug:   true,
	})
	require.NoError(t, err)
	require.Equal(t, StatePending, b.State())

	result, err := b.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateFinished, b.State())
	require.NotEmpty(t, result.Events)

	_, err = b.Run(context.Background())
	require.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestRunVictory(t *testing.T) {
	b, err := New(Config{
		Catalog: orchestratorCatalog(t),
		Loadout: armedLoadout(),
		Pillar:  "skirmish",
		Seed:    11,
		TickCap: 5000,
		Debug:   true,
	})
	require.NoError(t, err)
	result, err := b.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, "victory", result.Summary.Outcome)
	require.Equal(t, int64(4), result.Summary.Stats.EnemiesSlain)
	require.Equal(t, int64(2), result.Summary.Stats.WavesSpawned)
	require.True(t, result.Summary.FortressHP > 0)
	require.Equal(t, result.Summary.Ticks*1000/content.TicksPerSecond, result.Summary.DurationMs)

	last := result.Events[len(result.Events)-1]
	require.Equal(t, sim.EventBattleEnded, last.Type)
	require.Equal(t, "victory", last.Outcome)
}

func TestRunDefeatWithoutDefense(t *testing.T) {
	b, err := New(Config{
		Catalog: orchestratorCatalog(t),
		Loadout: Loadout{Fortress: "hollow-keep"},
		Pillar:  "skirmish",
		Seed:    11,
		TickCap: 100000,
		Debug:   true,
	})
	require.NoError(t, err)
	result, err := b.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "defeat", result.Summary.Outcome)
	require.Equal(t, fixed.Fx(0), result.Summary.FortressHP)
}

func TestRunTickLimitOutcome(t *testing.T) {
	b, err := New(Config{
		Catalog: orchestratorCatalog(t),
		Loadout: armedLoadout(),
		Pillar:  "skirmish",
		Seed:    11,
		TickCap: 120,
		Endless: true,
		Debug:   true,
	})
	require.NoError(t, err)
	result, err := b.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tick_limit", result.Summary.Outcome)
	require.Equal(t, int64(120), result.Summary.Ticks)
}

func TestRunHonorsCancellationBetweenTicks(t *testing.T) {
	b, err := New(Config{
		Catalog: orchestratorCatalog(t),
		Loadout: armedLoadout(),
		Pillar:  "skirmish",
		Seed:    11,
		Endless: true,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = b.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
