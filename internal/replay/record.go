// Package replay turns finished battles into portable records and checks
// claimed results by re-running them. A record holds everything a re-run
// needs (loadout snapshots, seed, tick cap) plus a checksum over the event
// stream, so a server can confirm a client-reported outcome without trusting
// the client's arithmetic.
package replay

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"growfortress/simcore/internal/battle"
	"growfortress/simcore/internal/sim"
)

// FormatVersion marks the record layout. Decoding rejects anything newer.
const FormatVersion = 1

// Record kinds.
const (
	KindPvE = "pve"
	KindPvP = "pvp"
)

var (
	ErrVersion  = errors.New("replay: unsupported record version")
	ErrKind     = errors.New("replay: unknown record kind")
	ErrChecksum = errors.New("replay: record carries no checksum")
	ErrHalf     = errors.New("replay: pvp record is missing side b")
)

// Half is one side of a record: the loadout that fought, what it reported,
// and optionally the full event log for renderers that replay offline.
type Half struct {
	Loadout battle.Loadout `json:"loadout" msgpack:"loadout"`
	Summary battle.Summary `json:"summary" msgpack:"summary"`
	Events  []sim.Event    `json:"events,omitempty" msgpack:"events,omitempty"`
}

// Record is one finished battle in portable form. PvE battles fill side A
// only; PvP fills both and names the winner. Checksum covers the event
// streams in side order.
type Record struct {
	Version int    `json:"version" msgpack:"version"`
	Kind    string `json:"kind" msgpack:"kind"`
	Seed    uint64 `json:"seed" msgpack:"seed"`
	TickCap int64  `json:"tickCap" msgpack:"tickCap"`

	Pillar  string `json:"pillar,omitempty" msgpack:"pillar,omitempty"`
	Endless bool   `json:"endless,omitempty" msgpack:"endless,omitempty"`

	A      Half   `json:"a" msgpack:"a"`
	B      *Half  `json:"b,omitempty" msgpack:"b,omitempty"`
	Winner string `json:"winner,omitempty" msgpack:"winner,omitempty"`

	Checksum string `json:"checksum" msgpack:"checksum"`
}

// NewBattleRecord freezes a PvE run. The config supplies the inputs a re-run
// needs; the result supplies what the run produced.
func NewBattleRecord(cfg battle.Config, result *battle.Result) (*Record, error) {
	cfg = cfg.Normalized()
	checksum, err := EventChecksum(result.Events)
	if err != nil {
		return nil, err
	}
	return &Record{
		Version: FormatVersion,
		Kind:    KindPvE,
		Seed:    cfg.Seed,
		TickCap: cfg.TickCap,
		Pillar:  cfg.Pillar,
		Endless: cfg.Endless,
		A: Half{
			Loadout: cfg.Loadout,
			Summary: result.Summary,
			Events:  result.Events,
		},
		Checksum: checksum,
	}, nil
}

// NewPvPRecord freezes a resolved 1v1 fight.
func NewPvPRecord(cfg battle.PvPConfig, result *battle.PvPResult) (*Record, error) {
	cfg = cfg.Normalized()
	checksum, err := EventChecksum(result.A.Events, result.B.Events)
	if err != nil {
		return nil, err
	}
	return &Record{
		Version: FormatVersion,
		Kind:    KindPvP,
		Seed:    cfg.Seed,
		TickCap: cfg.TickCap,
		A: Half{
			Loadout: cfg.LoadoutA,
			Summary: result.A.Summary,
			Events:  result.A.Events,
		},
		B: &Half{
			Loadout: cfg.LoadoutB,
			Summary: result.B.Summary,
			Events:  result.B.Events,
		},
		Winner:   result.Winner,
		Checksum: checksum,
	}, nil
}

// EventChecksum hashes one or more event streams in order. Streams are
// msgpack-encoded event by event with a separator between streams, so the
// checksum is stable across platforms and insensitive to JSON whitespace.
func EventChecksum(streams ...[]sim.Event) (string, error) {
	hasher := sha256.New()
	for i, events := range streams {
		if i > 0 {
			hasher.Write([]byte{0})
		}
		for _, ev := range events {
			payload, err := msgpack.Marshal(ev)
			if err != nil {
				return "", fmt.Errorf("replay: encode event: %w", err)
			}
			hasher.Write(payload)
		}
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Marshal encodes the record as a msgpack blob.
func (r *Record) Marshal() ([]byte, error) {
	payload, err := msgpack.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("replay: encode record: %w", err)
	}
	return payload, nil
}

// Unmarshal decodes and validates a record blob.
func Unmarshal(data []byte) (*Record, error) {
	var rec Record
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("replay: decode record: %w", err)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Validate checks structural soundness without re-running anything.
func (r *Record) Validate() error {
	if r.Version <= 0 || r.Version > FormatVersion {
		return fmt.Errorf("%w: %d", ErrVersion, r.Version)
	}
	switch r.Kind {
	case KindPvE:
	case KindPvP:
		if r.B == nil {
			return ErrHalf
		}
	default:
		return fmt.Errorf("%w: %q", ErrKind, r.Kind)
	}
	if r.Checksum == "" {
		return ErrChecksum
	}
	return nil
}
