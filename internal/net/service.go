// Package net exposes the battle engine as an HTTP/websocket service:
// resolve endpoints for PvE and PvP, replay download and verification, the
// content catalog, and a playback stream for stored battles. The service
// holds no game state beyond a bounded store of finished records; every
// battle resolves synchronously inside the request.
package net

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"growfortress/simcore/content"
	"growfortress/simcore/internal/battle"
	"growfortress/simcore/internal/net/proto"
	"growfortress/simcore/internal/replay"
	"growfortress/simcore/internal/telemetry"
	"growfortress/simcore/logging"
)

// DefaultMaxStored bounds the record store. Oldest records are evicted
// first; verification does not need the store, so eviction only limits
// playback and download of long-finished battles.
const DefaultMaxStored = 128

type ServiceConfig struct {
	Catalog   *content.Catalog
	Document  content.Document
	Publisher logging.Publisher
	Counters  *telemetry.Counters
	MaxStored int
}

func (c ServiceConfig) normalized() ServiceConfig {
	if c.Publisher == nil {
		c.Publisher = logging.NopPublisher()
	}
	if c.Counters == nil {
		c.Counters = telemetry.NewCounters()
	}
	if c.MaxStored <= 0 {
		c.MaxStored = DefaultMaxStored
	}
	return c
}

// Service resolves battles against one compiled catalog and keeps their
// records for download and playback.
type Service struct {
	catalog   *content.Catalog
	document  content.Document
	pub       logging.Publisher
	counters  *telemetry.Counters
	maxStored int

	mu      sync.RWMutex
	records map[string]*replay.Record
	order   []string
}

func NewService(cfg ServiceConfig) *Service {
	cfg = cfg.normalized()
	return &Service{
		catalog:   cfg.Catalog,
		document:  cfg.Document,
		pub:       cfg.Publisher,
		counters:  cfg.Counters,
		maxStored: cfg.MaxStored,
		records:   make(map[string]*replay.Record),
	}
}

// Document returns the definition tables the catalog was compiled from.
func (s *Service) Document() content.Document {
	return s.document
}

// Counters exposes the service telemetry.
func (s *Service) Counters() *telemetry.Counters {
	return s.counters
}

// Record looks up a stored battle by id.
func (s *Service) Record(id string) (*replay.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}

// StoredBattles reports how many records the store currently holds.
func (s *Service) StoredBattles() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Service) store(id string, rec *replay.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[id]; !exists {
		s.order = append(s.order, id)
	}
	s.records[id] = rec
	for len(s.order) > s.maxStored {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.records, oldest)
	}
}

// ResolveBattle runs one PvE battle to completion and stores its record.
func (s *Service) ResolveBattle(ctx context.Context, req proto.BattleRequest) (*proto.BattleResponse, error) {
	id := uuid.NewString()
	s.counters.RecordBattleStarted()

	b, err := battle.New(battle.Config{
		Catalog:   s.catalog,
		Loadout:   req.Loadout,
		Pillar:    req.Pillar,
		Seed:      req.Seed,
		TickCap:   req.TickCap,
		Endless:   req.Endless,
		Publisher: logging.ForBattle(s.pub, id),
		ID:        id,
	})
	if err != nil {
		s.counters.RecordBattleRejected()
		return nil, err
	}
	result, err := b.Run(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := replay.NewBattleRecord(battle.Config{
		Loadout: req.Loadout,
		Pillar:  req.Pillar,
		Seed:    req.Seed,
		TickCap: req.TickCap,
		Endless: req.Endless,
	}, result)
	if err != nil {
		return nil, err
	}
	s.store(id, rec)
	s.counters.RecordBattleFinished(result.Summary.Ticks, len(result.Events))

	return &proto.BattleResponse{
		Ver:      proto.Version,
		ID:       id,
		Summary:  result.Summary,
		Events:   result.Events,
		Triggers: result.Triggers,
		Checksum: rec.Checksum,
	}, nil
}

// ResolvePvP runs one 1v1 fight to completion and stores its record.
func (s *Service) ResolvePvP(ctx context.Context, req proto.PvPRequest) (*proto.PvPResponse, error) {
	id := uuid.NewString()
	s.counters.RecordBattleStarted()

	cfg := battle.PvPConfig{
		Catalog:   s.catalog,
		LoadoutA:  req.LoadoutA,
		LoadoutB:  req.LoadoutB,
		Seed:      req.Seed,
		TickCap:   req.TickCap,
		Publisher: logging.ForBattle(s.pub, id),
		ID:        id,
	}
	result, err := battle.ResolvePvP(ctx, cfg)
	if err != nil {
		s.counters.RecordBattleRejected()
		return nil, err
	}

	rec, err := replay.NewPvPRecord(battle.PvPConfig{
		LoadoutA: req.LoadoutA,
		LoadoutB: req.LoadoutB,
		Seed:     req.Seed,
		TickCap:  req.TickCap,
	}, result)
	if err != nil {
		return nil, err
	}
	s.store(id, rec)
	s.counters.RecordBattleFinished(result.DurationTicks, len(result.A.Events)+len(result.B.Events))

	return &proto.PvPResponse{
		Ver:           proto.Version,
		ID:            id,
		Winner:        result.Winner,
		DurationTicks: result.DurationTicks,
		DurationMs:    result.DurationMs,
		SummaryA:      result.A.Summary,
		SummaryB:      result.B.Summary,
		Checksum:      rec.Checksum,
	}, nil
}

// VerifyRecord re-runs a submitted record and reports the comparison.
func (s *Service) VerifyRecord(ctx context.Context, rec *replay.Record) (*proto.VerifyResponse, error) {
	id := uuid.NewString()
	verification, err := replay.Verify(ctx, replay.VerifyConfig{
		Catalog:   s.catalog,
		Record:    rec,
		Publisher: logging.ForBattle(s.pub, id),
		ID:        id,
	})
	if err != nil {
		return nil, err
	}
	s.counters.RecordVerification(verification.Match)

	return &proto.VerifyResponse{
		Ver:          proto.Version,
		ID:           id,
		Verification: *verification,
	}, nil
}
