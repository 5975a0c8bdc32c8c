package sim

import "growfortress/simcore/fixed"

// EventType names one battle log entry kind.
type EventType string

const (
	EventWaveStarted       EventType = "wave_started"
	EventEnemySpawned      EventType = "enemy_spawned"
	EventProjectileSpawned EventType = "projectile_spawned"
	EventProjectileExpired EventType = "projectile_expired"
	EventDamage            EventType = "damage"
	EventHeal              EventType = "heal"
	EventStatusApplied     EventType = "status_applied"
	EventStatusExpired     EventType = "status_expired"
	EventComboTriggered    EventType = "combo_triggered"
	EventEnemyKilled       EventType = "enemy_killed"
	EventHeroDowned        EventType = "hero_downed"
	EventTeleported        EventType = "teleported"
	EventWallDestroyed     EventType = "wall_destroyed"
	EventBattleEnded       EventType = "battle_ended"
)

// Event is one entry of the ordered battle log. A single flat shape keeps
// the encoding byte-stable across runs; unset fields are omitted. The log is
// the replay surface: a renderer reconstructs the battle from events alone,
// without re-running the simulation.
type Event struct {
	Type         EventType `json:"type"`
	Tick         int64     `json:"tick"`
	Wave         int64     `json:"wave,omitempty"`
	EnemyID      int64     `json:"enemyId,omitempty"`
	EnemyType    string    `json:"enemyType,omitempty"`
	HeroID       int64     `json:"heroId,omitempty"`
	ProjectileID int64     `json:"projectileId,omitempty"`
	SourceKind   string    `json:"sourceKind,omitempty"`
	SourceID     int64     `json:"sourceId,omitempty"`
	Target       string    `json:"target,omitempty"`
	Class        string    `json:"class,omitempty"`
	Status       string    `json:"status,omitempty"`
	ComboID      string    `json:"comboId,omitempty"`
	Amount       fixed.Fx  `json:"amount,omitempty"`
	Crit         bool      `json:"crit,omitempty"`
	X            fixed.Fx  `json:"x,omitempty"`
	Y            fixed.Fx  `json:"y,omitempty"`
	Outcome      string    `json:"outcome,omitempty"`
}

// Damage event target surfaces.
const (
	TargetEnemy    = "enemy"
	TargetHero     = "hero"
	TargetWall     = "wall"
	TargetFortress = "fortress"
)

// Journal accumulates events in emission order. The tick loop is the only
// writer, so no locking is involved; callers drain between ticks the same
// way the network layer drains its outbox.
type Journal struct {
	events []Event
	total  int64
}

// Append records one event.
func (j *Journal) Append(ev Event) {
	j.events = append(j.events, ev)
	j.total++
}

// Drain returns the staged events and clears the buffer.
func (j *Journal) Drain() []Event {
	if len(j.events) == 0 {
		return nil
	}
	drained := make([]Event, len(j.events))
	copy(drained, j.events)
	j.events = j.events[:0]
	return drained
}

// Pending returns a copy of the staged events without clearing them.
func (j *Journal) Pending() []Event {
	if len(j.events) == 0 {
		return nil
	}
	snapshot := make([]Event, len(j.events))
	copy(snapshot, j.events)
	return snapshot
}

// Total counts every event appended over the journal's lifetime, drained or
// not.
func (j *Journal) Total() int64 {
	return j.total
}

// ComboTrigger is the ephemeral record of a fired combo, kept in an outbox
// for the renderer and cleared when drained.
type ComboTrigger struct {
	EnemyID     int64    `json:"enemyId"`
	ComboID     string   `json:"comboId"`
	Tick        int64    `json:"tick"`
	X           fixed.Fx `json:"x"`
	Y           fixed.Fx `json:"y"`
	BonusDamage fixed.Fx `json:"bonusDamage,omitempty"`
}
