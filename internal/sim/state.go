package sim

import (
	"errors"
	"fmt"

	"growfortress/simcore/content"
	"growfortress/simcore/fixed"
	"growfortress/simcore/internal/modifier"
)

// Arena geometry. The fortress sits at the origin with its wall modelled as
// a ring around it; enemies march in from the spawn line on +X.
var (
	wallRing     = fixed.FromInt(10)
	spawnLineX   = fixed.FromInt(100)
	spawnSpreadY = fixed.FromInt(20)
)

// Formation slots fan entities out on the Y axis in add order.
func slotOffset(index int, spacing int64) fixed.Fx {
	step := (index + 1) / 2
	offset := fixed.FromInt(int64(step) * spacing)
	if index%2 == 1 {
		return offset
	}
	return -offset
}

var (
	heroLineX   = fixed.FromInt(8)
	turretLineX = fixed.FromInt(2)
)

// Stat scaling per loadout tier and level, in basis points per step above
// the first.
const (
	tierDamageBp = 1500
	tierHPBp     = 1000
	levelHPBp    = 500
)

// Outcome is the terminal result of a run.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
	OutcomeTickLimit
)

var outcomeNames = [...]string{
	OutcomeNone:      "none",
	OutcomeVictory:   "victory",
	OutcomeDefeat:    "defeat",
	OutcomeTickLimit: "tick_limit",
}

func (o Outcome) String() string {
	if int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

// ScheduledSpawn is one scripted enemy entry, used for PvP champion squads
// where no pillar drives the waves.
type ScheduledSpawn struct {
	Tick      int64
	Spec      *content.Enemy
	HPScaleBp int64
	Wave      int64
}

// Config assembles a battle. The orchestrator validates loadouts and
// resolves every definition before this point; construction here only
// rejects structurally impossible setups.
type Config struct {
	Catalog    *content.Catalog
	Seed       uint64
	Fortress   *content.Fortress
	Pillar     *content.Pillar
	Endless    bool
	Scripted   []ScheduledSpawn
	Relics     []*content.Relic
	Masteries  []*content.Mastery
	StatPoints [content.BonusCategoryCount]int64

	// Debug enables invariant assertions that panic on engine bugs such as
	// persisted negative HP or duplicate pierce credit.
	Debug bool
}

// Stats accumulates per-side aggregates for the battle summary.
type Stats struct {
	DamageDealt  fixed.Fx `json:"damageDealt"`
	DamageTaken  fixed.Fx `json:"damageTaken"`
	EnemiesSlain int64    `json:"enemiesSlain"`
	HeroesLost   int64    `json:"heroesLost"`
	Combos       int64    `json:"combos"`
	WavesSpawned int64    `json:"wavesSpawned"`
}

// GameState is the single mutable root of one battle. Exactly one goroutine
// may advance it; the engine takes no locks and performs no I/O.
type GameState struct {
	Tick     int64
	Catalog  *content.Catalog
	Pillar   *content.Pillar
	Fortress FortressState

	Heroes      []*ActiveHero
	Turrets     []*ActiveTurret
	Enemies     []*Enemy
	Projectiles []*Projectile

	Modifiers modifier.Set
	Journal   Journal
	Stats     Stats

	relics     []*content.Relic
	masteries  []*content.Mastery
	statPoints [content.BonusCategoryCount]int64
	synergies  []*content.Synergy

	endless    bool
	wavesDone  int64
	spawnIndex int64
	scripted   []ScheduledSpawn
	scriptNext int

	rngWaves  *RNG
	rngCrits  *RNG
	rngJitter *RNG

	triggers []ComboTrigger
	outcome  Outcome

	nextHeroID       int64
	nextTurretID     int64
	nextEnemyID      int64
	nextProjectileID int64

	debug bool
}

// NewGameState builds the initial state for a battle.
func NewGameState(cfg Config) (*GameState, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("sim: config needs a catalog")
	}
	if cfg.Fortress == nil {
		return nil, errors.New("sim: config needs a fortress definition")
	}
	if cfg.Pillar == nil && len(cfg.Scripted) == 0 {
		return nil, errors.New("sim: config needs a pillar or a scripted spawn list")
	}
	s := &GameState{
		Catalog: cfg.Catalog,
		Pillar:  cfg.Pillar,
		Fortress: FortressState{
			Spec:      cfg.Fortress,
			Class:     cfg.Fortress.Class,
			HP:        cfg.Fortress.MaxHP,
			MaxHP:     cfg.Fortress.MaxHP,
			WallHP:    cfg.Fortress.WallHP,
			MaxWallHP: cfg.Fortress.WallHP,
		},
		relics:     cfg.Relics,
		masteries:  cfg.Masteries,
		statPoints: cfg.StatPoints,
		synergies:  cfg.Catalog.Synergies(),
		endless:    cfg.Endless,
		scripted:   cfg.Scripted,
		rngWaves:   NewStreamRNG(cfg.Seed, streamWaves),
		rngCrits:   NewStreamRNG(cfg.Seed, streamCrits),
		rngJitter:  NewStreamRNG(cfg.Seed, streamJitter),
		debug:      cfg.Debug,
	}
	return s, nil
}

// AddHero fields a hero at the next formation slot. Tier raises damage and
// HP, level raises HP; both count steps above one.
func (s *GameState) AddHero(spec *content.Hero, tier, level int64) *ActiveHero {
	if tier < 1 {
		tier = 1
	}
	if level < 1 {
		level = 1
	}
	s.nextHeroID++
	h := &ActiveHero{
		ID:             s.nextHeroID,
		Spec:           spec,
		Tier:           tier,
		Level:          level,
		Pos:            fixed.Vec{X: heroLineX, Y: slotOffset(len(s.Heroes), 4)},
		Damage:         fixed.MulRatio(spec.Damage, 10000+(tier-1)*tierDamageBp, 10000),
		AttackInterval: spec.AttackInterval,
	}
	h.MaxHP = fixed.MulRatio(spec.MaxHP, 10000+(tier-1)*tierHPBp+(level-1)*levelHPBp, 10000)
	h.HP = h.MaxHP
	s.Heroes = append(s.Heroes, h)
	return h
}

// AddTurret mounts a turret at the next emplacement slot.
func (s *GameState) AddTurret(spec *content.Turret, tier int64) *ActiveTurret {
	if tier < 1 {
		tier = 1
	}
	s.nextTurretID++
	t := &ActiveTurret{
		ID:             s.nextTurretID,
		Spec:           spec,
		Tier:           tier,
		Pos:            fixed.Vec{X: turretLineX, Y: slotOffset(len(s.Turrets), 3)},
		Damage:         fixed.MulRatio(spec.Damage, 10000+(tier-1)*tierDamageBp, 10000),
		AttackInterval: spec.AttackInterval,
	}
	s.Turrets = append(s.Turrets, t)
	return t
}

// ChampionEnemy converts a hero definition into the attack-squad enemy a
// PvP opponent faces. Tier and level scale the same stats they scale on the
// defending side.
func ChampionEnemy(spec *content.Hero, tier, level int64) *content.Enemy {
	if tier < 1 {
		tier = 1
	}
	if level < 1 {
		level = 1
	}
	return &content.Enemy{
		ID:             "champion." + spec.ID,
		Name:           spec.Name,
		MaxHP:          fixed.MulRatio(spec.MaxHP, 10000+(tier-1)*tierHPBp+(level-1)*levelHPBp, 10000),
		Speed:          spec.Speed,
		Damage:         fixed.MulRatio(spec.Damage, 10000+(tier-1)*tierDamageBp, 10000),
		AttackInterval: spec.AttackInterval,
		Range:          spec.Range,
		StructureDmgBp: 10000,
	}
}

// ApplyMaxHPBonus scales hero and fortress HP pools by the current max-HP
// bonus. The orchestrator calls it once after fielding the full roster;
// pools are stateful, so the bonus is not reapplied per tick.
func (s *GameState) ApplyMaxHPBonus() {
	set := modifier.Compute(s.modifierInput())
	for _, h := range s.Heroes {
		h.MaxHP = set.Apply(content.BonusMaxHP, h.MaxHP)
		h.HP = h.MaxHP
	}
	s.Fortress.MaxHP = set.Apply(content.BonusMaxHP, s.Fortress.MaxHP)
	s.Fortress.HP = s.Fortress.MaxHP
}

// SpawnEnemy adds an enemy at the spawn line with seeded lateral jitter.
func (s *GameState) SpawnEnemy(spec *content.Enemy, hpScaleBp int64, wave int64) *Enemy {
	if hpScaleBp < 10000 {
		hpScaleBp = 10000
	}
	s.nextEnemyID++
	e := &Enemy{
		ID:        s.nextEnemyID,
		Spec:      spec,
		Pos:       fixed.Vec{X: spawnLineX, Y: s.rngWaves.Range(-spawnSpreadY, spawnSpreadY)},
		MaxHP:     fixed.MulRatio(spec.MaxHP, hpScaleBp, 10000),
		BaseSpeed: spec.Speed,
		Speed:     spec.Speed,
		Wave:      wave,
	}
	e.HP = e.MaxHP
	e.nextAttack = s.Tick + spec.AttackInterval
	switch spec.Special {
	case content.SpecialHealer:
		e.nextPulse = s.Tick + spec.Heal.Interval
	case content.SpecialTeleporter:
		e.nextPulse = s.Tick + spec.Blink.Interval
	}
	s.Enemies = append(s.Enemies, e)
	s.Journal.Append(Event{
		Type:      EventEnemySpawned,
		Tick:      s.Tick,
		EnemyID:   e.ID,
		EnemyType: spec.ID,
		Wave:      wave,
		X:         e.Pos.X,
		Y:         e.Pos.Y,
	})
	return e
}

// Outcome reports the terminal state, OutcomeNone while running.
func (s *GameState) Outcome() Outcome {
	return s.outcome
}

// Finished reports whether a terminal condition has been reached.
func (s *GameState) Finished() bool {
	return s.outcome != OutcomeNone
}

// FinishTickLimit marks the run as ended by the safety cap. The orchestrator
// owns the cap; the engine records the distinct outcome and its event.
func (s *GameState) FinishTickLimit() {
	if s.outcome != OutcomeNone {
		return
	}
	s.finish(OutcomeTickLimit)
}

func (s *GameState) finish(outcome Outcome) {
	s.outcome = outcome
	s.Journal.Append(Event{Type: EventBattleEnded, Tick: s.Tick, Outcome: outcome.String()})
}

// DrainTriggers empties the combo outbox.
func (s *GameState) DrainTriggers() []ComboTrigger {
	if len(s.triggers) == 0 {
		return nil
	}
	drained := make([]ComboTrigger, len(s.triggers))
	copy(drained, s.triggers)
	s.triggers = s.triggers[:0]
	return drained
}

func (s *GameState) modifierInput() modifier.Input {
	in := modifier.Input{
		FortressClass: s.Fortress.Class,
		Relics:        s.relics,
		Masteries:     s.masteries,
		StatPoints:    s.statPoints,
	}
	for _, h := range s.Heroes {
		if h.Alive() {
			in.HeroClassCounts[h.Spec.Class]++
		}
	}
	for _, t := range s.Turrets {
		in.TurretClassCounts[t.Spec.Class]++
	}
	if s.Pillar != nil {
		in.PillarBonusBp = s.Pillar.ClassBonusBp[s.Fortress.Class]
	}
	return in
}

// LiveHeroes counts heroes still standing.
func (s *GameState) LiveHeroes() int {
	n := 0
	for _, h := range s.Heroes {
		if h.Alive() {
			n++
		}
	}
	return n
}

// nearestLiveEnemy returns the closest live enemy to a point, breaking
// distance ties by lower id so iteration order never leaks into targeting.
func (s *GameState) nearestLiveEnemy(from fixed.Vec) *Enemy {
	var best *Enemy
	var bestDist int64
	for _, e := range s.Enemies {
		if !e.Alive() {
			continue
		}
		d := fixed.DistanceSq(from, e.Pos)
		if best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

// enemyByID resolves a live enemy; nil when dead or unknown.
func (s *GameState) enemyByID(id int64) *Enemy {
	for _, e := range s.Enemies {
		if e.ID == id {
			if e.Alive() {
				return e
			}
			return nil
		}
	}
	return nil
}

// nearestLiveHero returns the closest live hero within the given range, or
// nil.
func (s *GameState) nearestLiveHero(from fixed.Vec, within fixed.Fx) *ActiveHero {
	var best *ActiveHero
	var bestDist int64
	for _, h := range s.Heroes {
		if !h.Alive() {
			continue
		}
		if !fixed.WithinRange(from, h.Pos, within) {
			continue
		}
		d := fixed.DistanceSq(from, h.Pos)
		if best == nil || d < bestDist {
			best, bestDist = h, d
		}
	}
	return best
}

// assert panics on violated engine invariants when debug mode is on.
// Release builds tolerate and clamp instead.
func (s *GameState) assert(cond bool, format string, args ...any) {
	if !s.debug || cond {
		return
	}
	panic(fmt.Sprintf("sim: invariant violated: "+format, args...))
}
