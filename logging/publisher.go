// Package logging carries the structured event stream the verification
// service emits around battles. The simulation core itself never logs; the
// orchestrator and the network layer publish through this package, and sinks
// decide where the events land.
package logging

import (
	"context"
	"time"
)

type EventType string

type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

type EntityKind string

const (
	EntityKindUnknown  EntityKind = "unknown"
	EntityKindBattle   EntityKind = "battle"
	EntityKindHero     EntityKind = "hero"
	EntityKindTurret   EntityKind = "turret"
	EntityKindEnemy    EntityKind = "enemy"
	EntityKindFortress EntityKind = "fortress"
	EntityKindClient   EntityKind = "client"
	EntityKindService  EntityKind = "service"
)

const (
	CategoryBattle  = "battle"
	CategoryNetwork = "network"
	CategorySystem  = "system"
	CategoryContent = "content"
)

// EntityRef names the subject of an event.
type EntityRef struct {
	ID   string     `json:"id"`
	Kind EntityKind `json:"kind"`
}

// Event is one structured log record. Tick is the simulation tick the event
// describes; BattleID ties service-side records to the battle they concern.
type Event struct {
	Type     EventType      `json:"type"`
	BattleID string         `json:"battleId,omitempty"`
	Tick     int64          `json:"tick"`
	Time     time.Time      `json:"time"`
	Actor    EntityRef      `json:"actor"`
	Targets  []EntityRef    `json:"targets,omitempty"`
	Severity Severity       `json:"severity"`
	Category string         `json:"category,omitempty"`
	Payload  any            `json:"payload,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// Publisher accepts events. Implementations must be safe for concurrent use
// and must never block the caller indefinitely.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, event Event)

func (f PublisherFunc) Publish(ctx context.Context, event Event) {
	if f == nil {
		return
	}
	f(ctx, event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) {}

// NopPublisher returns a publisher that discards everything. It is the
// default wherever a Publisher is optional.
func NopPublisher() Publisher {
	return nopPublisher{}
}

type battlePublisher struct {
	next     Publisher
	battleID string
}

func (p *battlePublisher) Publish(ctx context.Context, event Event) {
	if p.next == nil {
		return
	}
	if event.BattleID == "" {
		event.BattleID = p.battleID
	}
	p.next.Publish(ctx, event)
}

// ForBattle stamps every event passing through with the battle id, unless
// the event already carries one.
func ForBattle(p Publisher, battleID string) Publisher {
	if p == nil {
		return NopPublisher()
	}
	if battleID == "" {
		return p
	}
	return &battlePublisher{next: p, battleID: battleID}
}

func cloneEvent(event Event) Event {
	cloned := event
	if len(event.Targets) > 0 {
		cloned.Targets = append([]EntityRef(nil), event.Targets...)
	}
	if event.Extra != nil {
		copied := make(map[string]any, len(event.Extra))
		for k, v := range event.Extra {
			copied[k] = v
		}
		cloned.Extra = copied
	}
	return cloned
}
