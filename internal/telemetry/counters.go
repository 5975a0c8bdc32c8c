package telemetry

import "sync/atomic"

// Counters accumulates service-level numbers. Everything is atomic so
// handlers, battle runs and watcher sessions can record without
// coordination.
type Counters struct {
	battlesStarted        atomic.Uint64
	battlesFinished       atomic.Uint64
	battlesRejected       atomic.Uint64
	verificationRuns      atomic.Uint64
	verificationMismatch  atomic.Uint64
	ticksSimulated        atomic.Uint64
	eventsEmitted         atomic.Uint64
	watchersActive        atomic.Int64
	broadcastBytes        atomic.Uint64
	lastBattleTicks       atomic.Uint64
	lastBattleEventsCount atomic.Uint64
}

// Snapshot is the JSON shape served by the diagnostics endpoint.
type Snapshot struct {
	BattlesStarted        uint64 `json:"battlesStarted"`
	BattlesFinished       uint64 `json:"battlesFinished"`
	BattlesRejected       uint64 `json:"battlesRejected"`
	VerificationRuns      uint64 `json:"verificationRuns"`
	VerificationMismatch  uint64 `json:"verificationMismatches"`
	TicksSimulated        uint64 `json:"ticksSimulated"`
	EventsEmitted         uint64 `json:"eventsEmitted"`
	WatchersActive        int64  `json:"watchersActive"`
	BroadcastBytes        uint64 `json:"broadcastBytes"`
	LastBattleTicks       uint64 `json:"lastBattleTicks"`
	LastBattleEventsCount uint64 `json:"lastBattleEvents"`
}

func NewCounters() *Counters {
	return &Counters{}
}

// RecordBattleStarted bumps the started counter.
func (c *Counters) RecordBattleStarted() {
	c.battlesStarted.Add(1)
}

// RecordBattleFinished records a completed battle and its headline numbers.
func (c *Counters) RecordBattleFinished(ticks int64, events int) {
	c.battlesFinished.Add(1)
	if ticks > 0 {
		c.ticksSimulated.Add(uint64(ticks))
		c.lastBattleTicks.Store(uint64(ticks))
	}
	if events > 0 {
		c.eventsEmitted.Add(uint64(events))
		c.lastBattleEventsCount.Store(uint64(events))
	}
}

// RecordBattleRejected bumps the validation failure counter.
func (c *Counters) RecordBattleRejected() {
	c.battlesRejected.Add(1)
}

// RecordVerification records a replay verification run.
func (c *Counters) RecordVerification(match bool) {
	c.verificationRuns.Add(1)
	if !match {
		c.verificationMismatch.Add(1)
	}
}

// WatcherJoined bumps the active watcher gauge.
func (c *Counters) WatcherJoined() {
	c.watchersActive.Add(1)
}

// WatcherLeft drops the active watcher gauge.
func (c *Counters) WatcherLeft() {
	c.watchersActive.Add(-1)
}

// RecordBroadcast accumulates bytes pushed to watchers.
func (c *Counters) RecordBroadcast(bytes int) {
	if bytes > 0 {
		c.broadcastBytes.Add(uint64(bytes))
	}
}

// Snapshot captures the current counter values.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		BattlesStarted:        c.battlesStarted.Load(),
		BattlesFinished:       c.battlesFinished.Load(),
		BattlesRejected:       c.battlesRejected.Load(),
		VerificationRuns:      c.verificationRuns.Load(),
		VerificationMismatch:  c.verificationMismatch.Load(),
		TicksSimulated:        c.ticksSimulated.Load(),
		EventsEmitted:         c.eventsEmitted.Load(),
		WatchersActive:        c.watchersActive.Load(),
		BroadcastBytes:        c.broadcastBytes.Load(),
		LastBattleTicks:       c.lastBattleTicks.Load(),
		LastBattleEventsCount: c.lastBattleEventsCount.Load(),
	}
}
