package battle

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"

	"growfortress/simcore/content"
	"growfortress/simcore/fixed"
	"growfortress/simcore/internal/sim"
	"growfortress/simcore/logging"
	"growfortress/simcore/logging/battlelog"
)

// Battle lifecycle states and transitions. The state machine is the single
// arbiter: a battle cannot start twice or finish twice.
const (
	StatePending  = "pending"
	StateRunning  = "running"
	StateFinished = "finished"

	eventStart  = "start"
	eventFinish = "finish"
)

// DefaultTickCap bounds runaway battles at one hour of logical time.
const DefaultTickCap = int64(60 * 60 * content.TicksPerSecond)

// ErrAlreadyStarted rejects a second Run on the same battle.
var ErrAlreadyStarted = errors.New("battle: already started")

// Config assembles one PvE battle.
type Config struct {
	Catalog *content.Catalog
	Loadout Loadout
	Pillar  string
	Seed    uint64
	TickCap int64
	Endless bool

	// Debug turns on engine invariant assertions.
	Debug bool
	// Publisher receives lifecycle events; nil publishes nowhere.
	Publisher logging.Publisher
	// ID tags published events. The service mints it; the engine never reads it.
	ID string
}

// Normalized fills defaults.
func (c Config) Normalized() Config {
	if c.TickCap <= 0 {
		c.TickCap = DefaultTickCap
	}
	if c.Publisher == nil {
		c.Publisher = logging.NopPublisher()
	}
	return c
}

// Summary is the per-side reduction of a finished run. Byte-identical inputs
// produce byte-identical summaries.
type Summary struct {
	Outcome       string    `json:"outcome" msgpack:"outcome"`
	Ticks         int64     `json:"ticks" msgpack:"ticks"`
	DurationMs    int64     `json:"durationMs" msgpack:"durationMs"`
	FortressHP    fixed.Fx  `json:"fortressHp" msgpack:"fortressHp"`
	FortressMaxHP fixed.Fx  `json:"fortressMaxHp" msgpack:"fortressMaxHp"`
	WallHP        fixed.Fx  `json:"wallHp" msgpack:"wallHp"`
	HeroesAlive   int       `json:"heroesAlive" msgpack:"heroesAlive"`
	Stats         sim.Stats `json:"stats" msgpack:"stats"`
}

// Result bundles everything a finished battle produced. Events are the
// replay surface; Triggers are the renderer's combo outbox.
type Result struct {
	Summary  Summary
	Events   []sim.Event
	Triggers []sim.ComboTrigger
}

// Battle drives one PvE run from construction to a terminal outcome.
type Battle struct {
	cfg       Config
	lifecycle *fsm.FSM
	state     *sim.GameState
}

// New validates the request and builds the initial state. All configuration
// failures surface here; Run only executes.
func New(cfg Config) (*Battle, error) {
	cfg = cfg.Normalized()
	if cfg.Catalog == nil {
		return nil, ErrNilCatalog
	}
	res, err := resolveLoadout(cfg.Catalog, cfg.Loadout)
	if err != nil {
		battlelog.Rejected(context.Background(), cfg.Publisher, cfg.ID, err.Error())
		return nil, err
	}
	pillar, ok := cfg.Catalog.Pillar(cfg.Pillar)
	if !ok {
		err := configErr("pillar", cfg.Pillar, "unknown definition")
		battlelog.Rejected(context.Background(), cfg.Publisher, cfg.ID, err.Error())
		return nil, err
	}

	state, err := buildState(cfg.Catalog, res, stateShape{
		seed:    cfg.Seed,
		pillar:  pillar,
		endless: cfg.Endless,
		debug:   cfg.Debug,
	})
	if err != nil {
		return nil, err
	}
	return &Battle{cfg: cfg, lifecycle: newLifecycle(), state: state}, nil
}

func newLifecycle() *fsm.FSM {
	return fsm.NewFSM(
		StatePending,
		fsm.Events{
			{Name: eventStart, Src: []string{StatePending}, Dst: StateRunning},
			{Name: eventFinish, Src: []string{StateRunning}, Dst: StateFinished},
		},
		fsm.Callbacks{},
	)
}

// State reports the lifecycle phase.
func (b *Battle) State() string {
	return b.lifecycle.Current()
}

// Run ticks the battle to a terminal outcome and reduces it. Cancellation is
// honored between ticks only; a cancelled battle returns the context error
// and stays unfinished.
func (b *Battle) Run(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Lifecycle transitions are instantaneous; only the tick loop observes
	// the run context.
	if err := b.lifecycle.Event(context.Background(), eventStart); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyStarted, b.lifecycle.Current())
	}
	battlelog.Started(ctx, b.cfg.Publisher, b.cfg.ID, battlelog.StartedPayload{
		Mode:      "pve",
		Pillar:    b.cfg.Pillar,
		Seed:      b.cfg.Seed,
		TickLimit: b.cfg.TickCap,
	})

	if err := runLoop(ctx, b.state, b.cfg.TickCap); err != nil {
		return nil, err
	}
	if err := b.lifecycle.Event(context.Background(), eventFinish); err != nil {
		return nil, fmt.Errorf("battle: finish transition: %w", err)
	}

	result := &Result{
		Summary:  summarize(b.state),
		Events:   b.state.Journal.Drain(),
		Triggers: b.state.DrainTriggers(),
	}
	battlelog.Finished(ctx, b.cfg.Publisher, b.cfg.ID, result.Summary.Ticks, battlelog.FinishedPayload{
		Outcome: result.Summary.Outcome,
		Reason:  result.Summary.Outcome,
		Ticks:   result.Summary.Ticks,
		Events:  len(result.Events),
	})
	return result, nil
}

// stateShape selects what drives the spawns of a run.
type stateShape struct {
	seed     uint64
	pillar   *content.Pillar
	scripted []sim.ScheduledSpawn
	endless  bool
	debug    bool
}

// buildState fields the resolved loadout into a fresh engine state.
func buildState(catalog *content.Catalog, res resolvedLoadout, shape stateShape) (*sim.GameState, error) {
	state, err := sim.NewGameState(sim.Config{
		Catalog:    catalog,
		Seed:       shape.seed,
		Fortress:   res.fortress,
		Pillar:     shape.pillar,
		Endless:    shape.endless,
		Scripted:   shape.scripted,
		Relics:     res.relics,
		Masteries:  res.masteries,
		StatPoints: res.statPoints,
		Debug:      shape.debug,
	})
	if err != nil {
		return nil, fmt.Errorf("battle: build state: %w", err)
	}
	for _, h := range res.heroes {
		state.AddHero(h.spec, h.tier, h.level)
	}
	for _, t := range res.turrets {
		state.AddTurret(t.spec, t.tier)
	}
	state.ApplyMaxHPBonus()
	return state, nil
}

// runLoop ticks until a terminal outcome or the safety cap. The cap ends the
// battle with the tick-limit outcome rather than an error.
func runLoop(ctx context.Context, state *sim.GameState, tickCap int64) error {
	for !state.Finished() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("battle: cancelled at tick %d: %w", state.Tick, err)
		}
		if state.Tick >= tickCap {
			state.FinishTickLimit()
			break
		}
		state.Step()
	}
	return nil
}

func summarize(state *sim.GameState) Summary {
	return Summary{
		Outcome:       state.Outcome().String(),
		Ticks:         state.Tick,
		DurationMs:    state.Tick * 1000 / content.TicksPerSecond,
		FortressHP:    state.Fortress.HP,
		FortressMaxHP: state.Fortress.MaxHP,
		WallHP:        state.Fortress.WallHP,
		HeroesAlive:   state.LiveHeroes(),
		Stats:         state.Stats,
	}
}
