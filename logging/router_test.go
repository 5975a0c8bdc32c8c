package logging_test

import (
	"context"
	"testing"
	"time"

	"growfortress/simcore/logging"
	"growfortress/simcore/logging/sinks"
)

func TestRouterDeliversToEnabledSink(t *testing.T) {
	memory := sinks.NewMemory()
	cfg := logging.DefaultConfig()
	cfg.EnabledSinks = []string{"memory"}
	cfg.MinimumSeverity = logging.SeverityInfo
	cfg.ServiceFields = map[string]any{"service": "simd"}

	router, err := logging.NewRouter(cfg, nil, nil, map[string]logging.Sink{"memory": memory})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	router.Publish(context.Background(), logging.Event{
		Type:     "battle.started",
		BattleID: "b-1",
		Severity: logging.SeverityInfo,
	})
	router.Publish(context.Background(), logging.Event{
		Type:     "battle.debug",
		Severity: logging.SeverityDebug,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	events := memory.Events()
	if len(events) != 1 {
		t.Fatalf("memory sink saw %d events, want 1 (debug filtered)", len(events))
	}
	if events[0].BattleID != "b-1" {
		t.Fatalf("event battle id = %q, want b-1", events[0].BattleID)
	}
	if events[0].Extra["service"] != "simd" {
		t.Fatalf("service field missing, extra = %v", events[0].Extra)
	}
	if events[0].Time.IsZero() {
		t.Fatal("router should stamp event time")
	}

	stats := router.Stats()
	if stats.PublishedTotal != 1 {
		t.Fatalf("published total = %d, want 1", stats.PublishedTotal)
	}
}

func TestNewRouterRequiresEnabledSink(t *testing.T) {
	_, err := logging.NewRouter(logging.Config{EnabledSinks: []string{"json"}}, nil, nil,
		map[string]logging.Sink{"memory": sinks.NewMemory()})
	if err == nil {
		t.Fatal("expected error when no enabled sink is attached")
	}
}
