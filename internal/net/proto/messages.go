// Package proto defines the wire shapes of the battle service: HTTP
// request/response envelopes and the websocket playback messages. Every
// outbound payload is stamped with the protocol version; inbound messages
// may omit it and default to the current one.
package proto

import (
	"encoding/json"
	"fmt"

	"growfortress/simcore/content"
	"growfortress/simcore/internal/battle"
	"growfortress/simcore/internal/replay"
	"growfortress/simcore/internal/sim"
)

// Version tracks the wire-protocol revision expected by clients.
const Version = 1

// Outbound websocket payload type identifiers.
const (
	TypeHello   = "hello"
	TypeEvents  = "events"
	TypeSummary = "summary"
	TypePong    = "pong"
)

// Inbound websocket message type identifiers.
const (
	TypeSpeed = "speed"
	TypePing  = "ping"
)

// Playback stream side labels. PvE streams leave the side empty.
const (
	SideA = "a"
	SideB = "b"
)

// BattleRequest asks the service to resolve one PvE run.
type BattleRequest struct {
	Loadout battle.Loadout `json:"loadout"`
	Pillar  string         `json:"pillar"`
	Seed    uint64         `json:"seed"`
	TickCap int64          `json:"tickCap,omitempty"`
	Endless bool           `json:"endless,omitempty"`
}

// BattleResponse reports a resolved PvE run. Events carry the full replay
// surface; the checksum lets a client verify its own re-simulation.
type BattleResponse struct {
	Ver      int                `json:"ver"`
	ID       string             `json:"id"`
	Summary  battle.Summary     `json:"summary"`
	Events   []sim.Event        `json:"events,omitempty"`
	Triggers []sim.ComboTrigger `json:"triggers,omitempty"`
	Checksum string             `json:"checksum"`
}

// PvPRequest asks the service to resolve a 1v1 fight between two frozen
// loadout snapshots.
type PvPRequest struct {
	LoadoutA battle.Loadout `json:"loadoutA"`
	LoadoutB battle.Loadout `json:"loadoutB"`
	Seed     uint64         `json:"seed"`
	TickCap  int64          `json:"tickCap,omitempty"`
}

// PvPResponse reports the resolved fight. Per-side event logs are not
// inlined; fetch the stored record or stream it over the websocket.
type PvPResponse struct {
	Ver           int            `json:"ver"`
	ID            string         `json:"id"`
	Winner        string         `json:"winner"`
	DurationTicks int64          `json:"durationTicks"`
	DurationMs    int64          `json:"durationMs"`
	SummaryA      battle.Summary `json:"summaryA"`
	SummaryB      battle.Summary `json:"summaryB"`
	Checksum      string         `json:"checksum"`
}

// VerifyRequest submits a replay record for server-side re-simulation.
// Exactly one of Record (inline JSON) or Blob (the msgpack download format,
// base64 in JSON) must be present.
type VerifyRequest struct {
	Record *replay.Record `json:"record,omitempty"`
	Blob   []byte         `json:"blob,omitempty"`
}

// VerifyResponse reports the comparison.
type VerifyResponse struct {
	Ver          int                 `json:"ver"`
	ID           string              `json:"id"`
	Verification replay.Verification `json:"verification"`
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Ver    int    `json:"ver"`
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// ClientMessage captures an inbound websocket message from a watcher.
type ClientMessage struct {
	Ver   int    `json:"ver,omitempty"`
	Type  string `json:"type"`
	Rate  int64  `json:"rate,omitempty"`
	Nonce int64  `json:"nonce,omitempty"`
}

// DecodeClientMessage converts a raw websocket payload into a structured
// message, defaulting and checking the protocol version.
func DecodeClientMessage(payload []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return msg, err
	}
	if msg.Ver == 0 {
		msg.Ver = Version
	}
	if msg.Ver != Version {
		return msg, fmt.Errorf("unsupported client protocol version %d", msg.Ver)
	}
	return msg, nil
}

// HelloMessage opens a playback stream: what is about to play and how fast.
type HelloMessage struct {
	Ver      int    `json:"ver"`
	Type     string `json:"type"`
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Ticks    int64  `json:"ticks"`
	Events   int    `json:"events"`
	TickRate int64  `json:"tickRate"`
	Rate     int64  `json:"rate"`
}

// EventBatchMessage carries the events of one playback window in tick order.
type EventBatchMessage struct {
	Ver    int         `json:"ver"`
	Type   string      `json:"type"`
	Side   string      `json:"side,omitempty"`
	Tick   int64       `json:"tick"`
	Events []sim.Event `json:"events"`
}

// SummaryMessage closes a playback stream. PvP streams carry both side
// summaries and the winner.
type SummaryMessage struct {
	Ver      int             `json:"ver"`
	Type     string          `json:"type"`
	Summary  battle.Summary  `json:"summary"`
	SummaryB *battle.Summary `json:"summaryB,omitempty"`
	Winner   string          `json:"winner,omitempty"`
	Checksum string          `json:"checksum"`
}

// PongMessage answers a watcher ping, echoing the nonce.
type PongMessage struct {
	Ver   int    `json:"ver"`
	Type  string `json:"type"`
	Nonce int64  `json:"nonce"`
}

// Hello builds a stream opener for the given record metadata.
func Hello(id, kind string, ticks int64, events int, rate int64) HelloMessage {
	return HelloMessage{
		Ver:      Version,
		Type:     TypeHello,
		ID:       id,
		Kind:     kind,
		Ticks:    ticks,
		Events:   events,
		TickRate: content.TicksPerSecond,
		Rate:     rate,
	}
}

// EventBatch builds one playback window message.
func EventBatch(side string, tick int64, events []sim.Event) EventBatchMessage {
	return EventBatchMessage{
		Ver:    Version,
		Type:   TypeEvents,
		Side:   side,
		Tick:   tick,
		Events: events,
	}
}

// Pong answers a ping.
func Pong(nonce int64) PongMessage {
	return PongMessage{Ver: Version, Type: TypePong, Nonce: nonce}
}
