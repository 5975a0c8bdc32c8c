package battle

import (
	"context"
	"encoding/binary"
	"hash/fnv"

	"growfortress/simcore/content"
	"growfortress/simcore/internal/sim"
	"growfortress/simcore/logging"
	"growfortress/simcore/logging/battlelog"
)

// Champion squad pacing: the attacker's heroes arrive in small waves so a
// deep roster is a sustained assault rather than one blob.
const (
	champWaveSize     = 3
	champWaveInterval = int64(5 * content.TicksPerSecond)
)

// Winner labels.
const (
	WinnerA    = "a"
	WinnerB    = "b"
	WinnerDraw = "draw"
)

// PvPConfig assembles a 1v1 resolution from two frozen loadouts and a
// shared replay seed.
type PvPConfig struct {
	Catalog  *content.Catalog
	LoadoutA Loadout
	LoadoutB Loadout
	Seed     uint64
	TickCap  int64
	Debug    bool

	Publisher logging.Publisher
	ID        string
}

// Normalized fills defaults.
func (c PvPConfig) Normalized() PvPConfig {
	if c.TickCap <= 0 {
		c.TickCap = DefaultTickCap
	}
	if c.Publisher == nil {
		c.Publisher = logging.NopPublisher()
	}
	return c
}

// SideResult is one defense half: the side's summary plus the events of the
// half it defended.
type SideResult struct {
	Summary Summary     `json:"summary"`
	Events  []sim.Event `json:"events"`
}

// PvPResult is the resolved fight.
type PvPResult struct {
	Winner        string     `json:"winner"`
	DurationTicks int64      `json:"durationTicks"`
	DurationMs    int64      `json:"durationMs"`
	A             SideResult `json:"a"`
	B             SideResult `json:"b"`
}

// ResolvePvP runs both defense halves and decides the winner. Each side
// defends its own fortress against the opponent's champion squad under a
// seed derived from the shared one, so the two halves draw independent
// streams while the whole fight replays from a single seed.
func ResolvePvP(ctx context.Context, cfg PvPConfig) (*PvPResult, error) {
	cfg = cfg.Normalized()
	if cfg.Catalog == nil {
		return nil, ErrNilCatalog
	}
	resA, err := resolveLoadout(cfg.Catalog, cfg.LoadoutA)
	if err != nil {
		battlelog.Rejected(ctx, cfg.Publisher, cfg.ID, err.Error())
		return nil, err
	}
	resB, err := resolveLoadout(cfg.Catalog, cfg.LoadoutB)
	if err != nil {
		battlelog.Rejected(ctx, cfg.Publisher, cfg.ID, err.Error())
		return nil, err
	}
	if len(resA.heroes) == 0 {
		return nil, configErr("loadoutA", "", "pvp needs at least one hero to form the attack squad")
	}
	if len(resB.heroes) == 0 {
		return nil, configErr("loadoutB", "", "pvp needs at least one hero to form the attack squad")
	}

	battlelog.Started(ctx, cfg.Publisher, cfg.ID, battlelog.StartedPayload{
		Mode:      "pvp",
		Seed:      cfg.Seed,
		TickLimit: cfg.TickCap,
	})

	sideA, err := runHalf(ctx, cfg.Catalog, resA, resB, deriveSeed(cfg.Seed, "pvp.half.a"), cfg.TickCap, cfg.Debug)
	if err != nil {
		return nil, err
	}
	sideB, err := runHalf(ctx, cfg.Catalog, resB, resA, deriveSeed(cfg.Seed, "pvp.half.b"), cfg.TickCap, cfg.Debug)
	if err != nil {
		return nil, err
	}

	result := &PvPResult{
		Winner: decideWinner(sideA.Summary, sideB.Summary),
		A:      sideA,
		B:      sideB,
	}
	result.DurationTicks = sideA.Summary.Ticks
	if sideB.Summary.Ticks > result.DurationTicks {
		result.DurationTicks = sideB.Summary.Ticks
	}
	result.DurationMs = result.DurationTicks * 1000 / content.TicksPerSecond

	battlelog.Finished(ctx, cfg.Publisher, cfg.ID, result.DurationTicks, battlelog.FinishedPayload{
		Outcome: result.Winner,
		Reason:  "pvp",
		Ticks:   result.DurationTicks,
		Events:  len(sideA.Events) + len(sideB.Events),
	})
	return result, nil
}

// runHalf has the defender's loadout hold its fortress against the
// attacker's champion squad.
func runHalf(ctx context.Context, catalog *content.Catalog, defender, attacker resolvedLoadout, seed uint64, tickCap int64, debug bool) (SideResult, error) {
	state, err := buildState(catalog, defender, stateShape{
		seed:     seed,
		scripted: championSpawns(attacker),
		debug:    debug,
	})
	if err != nil {
		return SideResult{}, err
	}
	if err := runLoop(ctx, state, tickCap); err != nil {
		return SideResult{}, err
	}
	return SideResult{Summary: summarize(state), Events: state.Journal.Drain()}, nil
}

// championSpawns converts the attacker's hero picks into a scripted assault.
// Tier and level scaling matches what the heroes would get defending.
func championSpawns(attacker resolvedLoadout) []sim.ScheduledSpawn {
	spawns := make([]sim.ScheduledSpawn, 0, len(attacker.heroes))
	for i, h := range attacker.heroes {
		wave := int64(i/champWaveSize) + 1
		spawns = append(spawns, sim.ScheduledSpawn{
			Tick:      1 + (wave-1)*champWaveInterval,
			Spec:      sim.ChampionEnemy(h.spec, h.tier, h.level),
			HPScaleBp: 10000,
			Wave:      wave,
		})
	}
	return spawns
}

// decideWinner walks the comparison ladder over the two defense summaries:
// fortress survival, then remaining fortress HP as a fraction of maximum,
// then damage dealt, kills and combos. A tie at every rung is a draw.
func decideWinner(a, b Summary) string {
	survivedA := a.FortressHP > 0
	survivedB := b.FortressHP > 0
	if survivedA != survivedB {
		if survivedA {
			return WinnerA
		}
		return WinnerB
	}
	if r := compareInt(hpRatioBp(a), hpRatioBp(b)); r != 0 {
		return winnerOf(r)
	}
	if r := compareInt(int64(a.Stats.DamageDealt), int64(b.Stats.DamageDealt)); r != 0 {
		return winnerOf(r)
	}
	if r := compareInt(a.Stats.EnemiesSlain, b.Stats.EnemiesSlain); r != 0 {
		return winnerOf(r)
	}
	if r := compareInt(a.Stats.Combos, b.Stats.Combos); r != 0 {
		return winnerOf(r)
	}
	return WinnerDraw
}

// hpRatioBp normalizes remaining fortress HP so differing fortress pools
// compare fairly.
func hpRatioBp(s Summary) int64 {
	if s.FortressMaxHP <= 0 {
		return 0
	}
	return int64(s.FortressHP) * 10000 / int64(s.FortressMaxHP)
}

func compareInt(a, b int64) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

func winnerOf(r int) string {
	if r > 0 {
		return WinnerA
	}
	return WinnerB
}

// deriveSeed splits the shared replay seed into per-half seeds the same way
// the engine derives its subsystem streams: FNV-64a over the seed bytes, a
// NUL separator and the label.
func deriveSeed(root uint64, label string) uint64 {
	hasher := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], root)
	hasher.Write(buf[:])
	hasher.Write([]byte{0})
	hasher.Write([]byte(label))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return sum
}
