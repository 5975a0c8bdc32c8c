package sim

import (
	"growfortress/simcore/content"
	"growfortress/simcore/fixed"
)

// SourceKind tags who fired a projectile or dealt a hit.
type SourceKind uint8

const (
	SourceHero SourceKind = iota
	SourceTurret
	SourceFortress
	SourceEnemy
	SourceCombo
	SourceStatus

	sourceKindCount
)

var sourceKindNames = [sourceKindCount]string{
	SourceHero:     "hero",
	SourceTurret:   "turret",
	SourceFortress: "fortress",
	SourceEnemy:    "enemy",
	SourceCombo:    "combo",
	SourceStatus:   "status",
}

func (k SourceKind) String() string {
	if k >= sourceKindCount {
		return "unknown"
	}
	return sourceKindNames[k]
}

// DamageHit is one elemental hit recorded for combo detection.
type DamageHit struct {
	Class  content.Class
	Tick   int64
	Amount fixed.Fx
}

// hitHistoryCap bounds the per-enemy hit ring. Eight entries comfortably
// covers a 30 tick window at realistic fire rates; older entries fall off
// the front.
const hitHistoryCap = 8

// hitHistory is a fixed-capacity ring of the most recent elemental hits,
// oldest first.
type hitHistory struct {
	hits  [hitHistoryCap]DamageHit
	start int
	count int
}

func (h *hitHistory) push(hit DamageHit) {
	if h.count < hitHistoryCap {
		h.hits[(h.start+h.count)%hitHistoryCap] = hit
		h.count++
		return
	}
	h.hits[h.start] = hit
	h.start = (h.start + 1) % hitHistoryCap
}

func (h *hitHistory) at(i int) DamageHit {
	return h.hits[(h.start+i)%hitHistoryCap]
}

func (h *hitHistory) len() int {
	return h.count
}

func (h *hitHistory) clear() {
	h.start = 0
	h.count = 0
}

// purgeBefore drops entries with Tick < cutoff. Entries arrive in tick
// order, so the ring only ever shrinks from the front.
func (h *hitHistory) purgeBefore(cutoff int64) {
	for h.count > 0 && h.hits[h.start].Tick < cutoff {
		h.start = (h.start + 1) % hitHistoryCap
		h.count--
	}
	if h.count == 0 {
		h.start = 0
	}
}

// statusEffect is one active timed effect slot. At most one instance per
// kind exists on an entity; reapplication goes through the per-kind
// stacking policy.
type statusEffect struct {
	Active      bool
	MagnitudeBp int64
	Remaining   int64
	DotAmount   fixed.Fx
	DotEvery    int64
	NextDot     int64
}

type statusSet [content.StatusKindCount]statusEffect

// Enemy is a live attacker. Champions on the PvP attack squad use the same
// struct with a definition compiled from the opposing loadout.
type Enemy struct {
	ID        int64
	Spec      *content.Enemy
	Pos       fixed.Vec
	HP        fixed.Fx
	MaxHP     fixed.Fx
	BaseSpeed fixed.Fx
	Speed     fixed.Fx
	Wave      int64

	effects     statusSet
	hits        hitHistory
	hitThisTick bool
	nextAttack  int64
	nextPulse   int64
	dead        bool
}

// Alive reports whether the enemy still participates in the tick.
func (e *Enemy) Alive() bool {
	return e != nil && !e.dead && e.HP > 0
}

// ActiveHero is a fielded hero with its transient combat state.
type ActiveHero struct {
	ID    int64
	Spec  *content.Hero
	Tier  int64
	Level int64
	Pos   fixed.Vec
	HP    fixed.Fx
	MaxHP fixed.Fx

	Damage         fixed.Fx
	AttackInterval int64

	nextAttack int64
	dead       bool
}

// Alive reports whether the hero still participates in the tick.
func (h *ActiveHero) Alive() bool {
	return h != nil && !h.dead && h.HP > 0
}

// ActiveTurret is a mounted turret emplacement.
type ActiveTurret struct {
	ID   int64
	Spec *content.Turret
	Tier int64
	Pos  fixed.Vec

	Damage         fixed.Fx
	AttackInterval int64

	nextAttack int64
}

// FortressState is the defended base: a wall pool absorbed first, then the
// fortress pool whose depletion ends the battle.
type FortressState struct {
	Spec      *content.Fortress
	Class     content.Class
	Pos       fixed.Vec
	HP        fixed.Fx
	MaxHP     fixed.Fx
	WallHP    fixed.Fx
	MaxWallHP fixed.Fx

	nextAttack int64
}

// WallStanding reports whether the wall pool still absorbs structure hits.
func (f *FortressState) WallStanding() bool {
	return f.WallHP > 0
}

// Projectile is a live shot. Target is the current aim point; TargetID is
// the homing target and drops to zero once that enemy dies, freezing the
// aim at its last known position.
type Projectile struct {
	ID              int64
	Source          SourceKind
	SourceID        int64
	Class           content.Class
	Pos             fixed.Vec
	Target          fixed.Vec
	TargetID        int64
	Speed           fixed.Fx
	Damage          fixed.Fx
	HitRadius       fixed.Fx
	Pierce          int
	PierceFalloffBp int64
	Arc             bool
	SplashRadius    fixed.Fx
	OnHit           content.OnHitSpec
	SpawnTick       int64

	hitEnemyIDs []int64
	done        bool
}

// alreadyHit reports whether the projectile has credited this enemy.
func (p *Projectile) alreadyHit(enemyID int64) bool {
	for _, id := range p.hitEnemyIDs {
		if id == enemyID {
			return true
		}
	}
	return false
}
