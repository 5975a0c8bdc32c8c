package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"growfortress/simcore/content"
	"growfortress/simcore/fixed"
)

// hit lands a flat elemental hit outside the crit and formation paths so
// the recorded amount is exactly the requested one.
func hit(s *GameState, e *Enemy, class content.Class, amount int64) fixed.Fx {
	return s.applyEnemyDamage(e, enemyDamage{
		Amount:    fixed.FromInt(amount),
		Class:     class,
		Source:    SourceTurret,
		RecordHit: true,
	})
}

func TestComboWindowBoundary(t *testing.T) {
	cases := []struct {
		name     string
		offset   int64
		triggers bool
	}{
		{"offset 29 pairs", 29, true},
		{"offset 30 does not", 30, false},
		{"offset 31 does not", 31, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestState(t, 3)
			e := placeEnemy(t, s, "tank", fixed.V(50, 0))

			s.Tick = 1
			hit(s, e, content.ClassFire, 20)
			s.Tick = 1 + tc.offset
			hit(s, e, content.ClassIce, 20)
			s.detectCombos()

			triggers := s.DrainTriggers()
			if tc.triggers {
				require.Len(t, triggers, 1)
				require.Equal(t, "steam-burst", triggers[0].ComboID)
			} else {
				require.Empty(t, triggers)
			}
		})
	}
}

func TestComboBonusAverage(t *testing.T) {
	t.Run("two contributing hits", func(t *testing.T) {
		s := newTestState(t, 3)
		e := placeEnemy(t, s, "tank", fixed.V(50, 0))
		start := e.HP

		s.Tick = 1
		hit(s, e, content.ClassFire, 20)
		hit(s, e, content.ClassIce, 20)
		s.detectCombos()

		triggers := s.DrainTriggers()
		require.Len(t, triggers, 1)
		require.Equal(t, fixed.FromInt(6), triggers[0].BonusDamage)
		require.Equal(t, start-fixed.FromInt(46), e.HP)
	})

	t.Run("same-element hits join the average", func(t *testing.T) {
		s := newTestState(t, 3)
		e := placeEnemy(t, s, "tank", fixed.V(50, 0))

		s.Tick = 1
		hit(s, e, content.ClassFire, 10)
		hit(s, e, content.ClassFire, 20)
		hit(s, e, content.ClassIce, 30)
		s.detectCombos()

		triggers := s.DrainTriggers()
		require.Len(t, triggers, 1)
		require.Equal(t, fixed.FromInt(6), triggers[0].BonusDamage)
	})
}

func TestComboUsesTwoMostRecentDistinctHits(t *testing.T) {
	s := newTestState(t, 3)
	e := placeEnemy(t, s, "tank", fixed.V(50, 0))

	s.Tick = 1
	hit(s, e, content.ClassFire, 20)
	hit(s, e, content.ClassPhysical, 20)
	hit(s, e, content.ClassIce, 20)
	s.detectCombos()

	triggers := s.DrainTriggers()
	require.Len(t, triggers, 1, "exactly one trigger per enemy per tick")
	require.Equal(t, "shatter", triggers[0].ComboID, "ice pairs with the physical hit, not the older fire one")
	require.Equal(t, int64(1), s.Stats.Combos)
}

func TestComboSameElementNeverFires(t *testing.T) {
	s := newTestState(t, 3)
	e := placeEnemy(t, s, "tank", fixed.V(50, 0))

	s.Tick = 1
	hit(s, e, content.ClassFire, 20)
	hit(s, e, content.ClassFire, 20)
	s.detectCombos()

	require.Empty(t, s.DrainTriggers())
}

func TestComboClearsHistory(t *testing.T) {
	s := newTestState(t, 3)
	e := placeEnemy(t, s, "tank", fixed.V(50, 0))

	s.Tick = 1
	hit(s, e, content.ClassFire, 20)
	hit(s, e, content.ClassIce, 20)
	s.detectCombos()
	require.Len(t, s.DrainTriggers(), 1)
	require.Zero(t, e.hits.len(), "trigger must clear the hit history")

	s.Tick = 2
	hit(s, e, content.ClassFire, 20)
	s.detectCombos()
	require.Empty(t, s.DrainTriggers(), "a single fresh hit cannot re-trigger")
	require.Equal(t, 1, e.hits.len())
}

func TestShatterMarkerConsumedOnce(t *testing.T) {
	s := newTestState(t, 3)
	e := placeEnemy(t, s, "tank", fixed.V(50, 0))

	s.Tick = 1
	hit(s, e, content.ClassPhysical, 20)
	hit(s, e, content.ClassIce, 20)
	s.detectCombos()

	triggers := s.DrainTriggers()
	require.Len(t, triggers, 1)
	require.Equal(t, "shatter", triggers[0].ComboID)
	require.Zero(t, triggers[0].BonusDamage)

	s.Tick = 2
	require.Equal(t, fixed.FromInt(15), hit(s, e, content.ClassWater, 10), "first hit lands amplified")
	s.Tick = 3
	require.Equal(t, fixed.FromInt(10), hit(s, e, content.ClassWater, 10), "marker is spent")
}

func TestHitHistoryPurgedEveryTick(t *testing.T) {
	s := newTestState(t, 3)
	e := placeEnemy(t, s, "tank", fixed.V(50, 0))

	s.Tick = 1
	hit(s, e, content.ClassFire, 20)
	require.Equal(t, 1, e.hits.len())

	s.Tick = 31
	s.purgeHitHistories()
	require.Zero(t, e.hits.len(), "hits a full window old leave the ring")
}
