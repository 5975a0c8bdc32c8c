// Package netlog publishes events for the HTTP and WebSocket boundary.
package netlog

import (
	"context"

	"growfortress/simcore/logging"
)

const (
	// EventWatcherJoined is emitted when a client subscribes to a battle stream.
	EventWatcherJoined logging.EventType = "network.watcher_joined"
	// EventWatcherLeft is emitted when a battle stream subscription ends.
	EventWatcherLeft logging.EventType = "network.watcher_left"
	// EventRequestFailed is emitted when an API request is rejected.
	EventRequestFailed logging.EventType = "network.request_failed"
)

// WatcherPayload identifies the remote end of a stream subscription.
type WatcherPayload struct {
	RemoteAddr string `json:"remoteAddr"`
	Reason     string `json:"reason,omitempty"`
}

// RequestFailedPayload captures a rejected API call.
type RequestFailedPayload struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// WatcherJoined publishes a stream subscription event.
func WatcherJoined(ctx context.Context, pub logging.Publisher, battleID, remoteAddr string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventWatcherJoined,
		BattleID: battleID,
		Actor:    logging.EntityRef{ID: remoteAddr, Kind: logging.EntityKindClient},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryNetwork,
		Payload:  WatcherPayload{RemoteAddr: remoteAddr},
	})
}

// WatcherLeft publishes the end of a stream subscription.
func WatcherLeft(ctx context.Context, pub logging.Publisher, battleID, remoteAddr, reason string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventWatcherLeft,
		BattleID: battleID,
		Actor:    logging.EntityRef{ID: remoteAddr, Kind: logging.EntityKindClient},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryNetwork,
		Payload:  WatcherPayload{RemoteAddr: remoteAddr, Reason: reason},
	})
}

// RequestFailed publishes a rejected API call.
func RequestFailed(ctx context.Context, pub logging.Publisher, path, reason string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventRequestFailed,
		Actor:    logging.EntityRef{Kind: logging.EntityKindService},
		Severity: logging.SeverityWarn,
		Category: logging.CategoryNetwork,
		Payload:  RequestFailedPayload{Path: path, Reason: reason},
	})
}
