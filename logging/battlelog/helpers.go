// Package battlelog publishes the battle lifecycle events the verification
// service emits around each run.
package battlelog

import (
	"context"

	"growfortress/simcore/logging"
)

const (
	// EventStarted is emitted when a battle begins ticking.
	EventStarted logging.EventType = "battle.started"
	// EventFinished is emitted when a battle reaches a terminal outcome.
	EventFinished logging.EventType = "battle.finished"
	// EventRejected is emitted when a battle request fails validation.
	EventRejected logging.EventType = "battle.rejected"
	// EventVerified is emitted after a replay verification run.
	EventVerified logging.EventType = "battle.verified"
)

// StartedPayload captures the battle parameters.
type StartedPayload struct {
	Mode      string `json:"mode"`
	Pillar    string `json:"pillar,omitempty"`
	Seed      uint64 `json:"seed"`
	TickLimit int64  `json:"tickLimit"`
}

// FinishedPayload captures the terminal result.
type FinishedPayload struct {
	Outcome string `json:"outcome"`
	Reason  string `json:"reason"`
	Ticks   int64  `json:"ticks"`
	Events  int    `json:"events"`
}

// RejectedPayload captures why a battle never started.
type RejectedPayload struct {
	Reason string `json:"reason"`
}

// VerifiedPayload captures a replay verification comparison.
type VerifiedPayload struct {
	Match    bool   `json:"match"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// Started publishes a battle start event.
func Started(ctx context.Context, pub logging.Publisher, battleID string, payload StartedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventStarted,
		BattleID: battleID,
		Actor:    logging.EntityRef{ID: battleID, Kind: logging.EntityKindBattle},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryBattle,
		Payload:  payload,
	})
}

// Finished publishes a battle completion event.
func Finished(ctx context.Context, pub logging.Publisher, battleID string, tick int64, payload FinishedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventFinished,
		BattleID: battleID,
		Tick:     tick,
		Actor:    logging.EntityRef{ID: battleID, Kind: logging.EntityKindBattle},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryBattle,
		Payload:  payload,
	})
}

// Rejected publishes a validation failure.
func Rejected(ctx context.Context, pub logging.Publisher, battleID string, reason string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventRejected,
		BattleID: battleID,
		Actor:    logging.EntityRef{ID: battleID, Kind: logging.EntityKindBattle},
		Severity: logging.SeverityWarn,
		Category: logging.CategoryBattle,
		Payload:  RejectedPayload{Reason: reason},
	})
}

// Verified publishes the outcome of a replay verification. Mismatches are
// warnings; they mean a client diverged or tampered.
func Verified(ctx context.Context, pub logging.Publisher, battleID string, payload VerifiedPayload) {
	if pub == nil {
		return
	}
	severity := logging.SeverityInfo
	if !payload.Match {
		severity = logging.SeverityWarn
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventVerified,
		BattleID: battleID,
		Actor:    logging.EntityRef{ID: battleID, Kind: logging.EntityKindBattle},
		Severity: severity,
		Category: logging.CategoryBattle,
		Payload:  payload,
	})
}
