package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"growfortress/simcore/fixed"
)

func newPillarState(t *testing.T, pillarID string, endless bool) *GameState {
	t.Helper()
	catalog := testCatalog(t)
	fortress, ok := catalog.Fortress("quiet-keep")
	require.True(t, ok)
	pillar, ok := catalog.Pillar(pillarID)
	require.True(t, ok)
	s, err := NewGameState(Config{
		Catalog:  catalog,
		Seed:     7,
		Fortress: fortress,
		Pillar:   pillar,
		Endless:  endless,
		Debug:    true,
	})
	require.NoError(t, err)
	return s
}

func TestWaveCadenceAndScaling(t *testing.T) {
	s := newPillarState(t, "proving-grounds", false)

	// Wave w is due at tick (w-1)*interval+1, never before.
	s.spawnArrivals()
	require.Empty(t, s.Enemies, "tick 0 is before the first wave")

	s.Tick = 1
	s.spawnArrivals()
	require.Len(t, s.Enemies, 2)
	require.Equal(t, fixed.FromInt(60), s.Enemies[0].HP, "wave one spawns at base HP")
	require.Equal(t, int64(1), s.Enemies[0].Wave)

	s.Tick = 100
	s.spawnArrivals()
	require.Len(t, s.Enemies, 2, "one tick early, wave two holds")

	// +50% size and +100% HP per wave past the first.
	s.Tick = 101
	s.spawnArrivals()
	require.Len(t, s.Enemies, 5)
	require.Equal(t, fixed.FromInt(120), s.Enemies[2].HP)
	require.Equal(t, int64(2), s.Enemies[2].Wave)

	s.Tick = 201
	s.spawnArrivals()
	require.Len(t, s.Enemies, 9)
	require.Equal(t, fixed.FromInt(180), s.Enemies[5].HP)

	// Wave count exhausted: nothing further, ever.
	s.Tick = 301
	s.spawnArrivals()
	require.Len(t, s.Enemies, 9)
	require.True(t, s.wavesExhausted())
	require.Equal(t, int64(3), s.Stats.WavesSpawned)
}

func TestWaveSpawnsLateWhenTickOvershoots(t *testing.T) {
	s := newPillarState(t, "proving-grounds", false)

	// A due tick is a lower bound; the check is <=, so a wave whose tick
	// passed while the last one was clearing still spawns.
	s.Tick = 140
	s.spawnArrivals()
	require.Len(t, s.Enemies, 2)
	require.Equal(t, int64(1), s.wavesDone)
}

func TestEndlessIgnoresWaveCount(t *testing.T) {
	s := newPillarState(t, "proving-grounds", true)

	for w := int64(1); w <= 5; w++ {
		s.Tick = (w-1)*100 + 1
		s.spawnArrivals()
	}
	require.Equal(t, int64(5), s.wavesDone)
	require.False(t, s.wavesExhausted())
}

func TestCompositionRotationCarriesAcrossWaves(t *testing.T) {
	s := newPillarState(t, "mixed-column", false)

	s.Tick = 1
	s.spawnArrivals()
	s.Tick = 11
	s.spawnArrivals()
	require.Len(t, s.Enemies, 6)

	var got []string
	for _, e := range s.Enemies {
		got = append(got, e.Spec.ID)
	}
	// Wave two continues the rotation where wave one stopped instead of
	// restarting at the head of the composition list.
	require.Equal(t, []string{"grunt", "tank", "grunt", "tank", "grunt", "tank"}, got)
}

func TestScriptedSpawnsDrainInOrder(t *testing.T) {
	catalog := testCatalog(t)
	fortress, _ := catalog.Fortress("quiet-keep")
	grunt, _ := catalog.Enemy("grunt")
	tank, _ := catalog.Enemy("tank")
	s, err := NewGameState(Config{
		Catalog:  catalog,
		Seed:     7,
		Fortress: fortress,
		Scripted: []ScheduledSpawn{
			{Tick: 5, Spec: grunt, HPScaleBp: 10000, Wave: 1},
			{Tick: 5, Spec: tank, HPScaleBp: 12000, Wave: 1},
			{Tick: 9, Spec: grunt, HPScaleBp: 10000, Wave: 2},
		},
		Debug: true,
	})
	require.NoError(t, err)

	s.Tick = 4
	s.spawnArrivals()
	require.Empty(t, s.Enemies)

	s.Tick = 5
	s.spawnArrivals()
	require.Len(t, s.Enemies, 2)
	require.Equal(t, "grunt", s.Enemies[0].Spec.ID)
	require.Equal(t, "tank", s.Enemies[1].Spec.ID)
	require.Equal(t, fixed.FromInt(600), s.Enemies[1].HP, "scripted HP scale applies")
	require.False(t, s.wavesExhausted())

	s.Tick = 9
	s.spawnArrivals()
	require.Len(t, s.Enemies, 3)
	require.True(t, s.wavesExhausted())

	var waveStarts int
	for _, ev := range s.Journal.Drain() {
		if ev.Type == EventWaveStarted {
			waveStarts++
		}
	}
	require.Equal(t, 2, waveStarts, "one announcement per wave, not per entry")
}
