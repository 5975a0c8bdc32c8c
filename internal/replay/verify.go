package replay

import (
	"context"
	"fmt"

	"growfortress/simcore/content"
	"growfortress/simcore/internal/battle"
	"growfortress/simcore/logging"
	"growfortress/simcore/logging/battlelog"
)

// Mismatch labels name the first difference a verification found.
const (
	MismatchChecksum = "checksum"
	MismatchSummary  = "summary"
	MismatchWinner   = "winner"
)

// VerifyConfig carries a record plus the catalog to re-run it against.
type VerifyConfig struct {
	Catalog *content.Catalog
	Record  *Record

	Publisher logging.Publisher
	ID        string
}

// Verification is the outcome of one re-run comparison. Expected is the
// record's claimed checksum, Actual the re-run's.
type Verification struct {
	Kind     string `json:"kind"`
	Match    bool   `json:"match"`
	Mismatch string `json:"mismatch,omitempty"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Outcome  string `json:"outcome"`
	Ticks    int64  `json:"ticks"`
}

// Verify re-runs the record's battle from its frozen inputs and compares
// what comes out against what the record claims. The re-run itself is
// silent; only the comparison is published.
func Verify(ctx context.Context, cfg VerifyConfig) (*Verification, error) {
	if cfg.Record == nil {
		return nil, fmt.Errorf("replay: nil record")
	}
	if err := cfg.Record.Validate(); err != nil {
		return nil, err
	}

	var (
		verification *Verification
		err          error
	)
	switch cfg.Record.Kind {
	case KindPvE:
		verification, err = verifyBattle(ctx, cfg.Catalog, cfg.Record)
	case KindPvP:
		verification, err = verifyPvP(ctx, cfg.Catalog, cfg.Record)
	}
	if err != nil {
		return nil, err
	}

	battlelog.Verified(ctx, cfg.Publisher, cfg.ID, battlelog.VerifiedPayload{
		Match:    verification.Match,
		Expected: verification.Expected,
		Actual:   verification.Actual,
	})
	return verification, nil
}

func verifyBattle(ctx context.Context, catalog *content.Catalog, rec *Record) (*Verification, error) {
	b, err := battle.New(battle.Config{
		Catalog: catalog,
		Loadout: rec.A.Loadout,
		Pillar:  rec.Pillar,
		Seed:    rec.Seed,
		TickCap: rec.TickCap,
		Endless: rec.Endless,
	})
	if err != nil {
		return nil, fmt.Errorf("replay: rebuild battle: %w", err)
	}
	result, err := b.Run(ctx)
	if err != nil {
		return nil, err
	}
	actual, err := EventChecksum(result.Events)
	if err != nil {
		return nil, err
	}

	verification := &Verification{
		Kind:     KindPvE,
		Expected: rec.Checksum,
		Actual:   actual,
		Outcome:  result.Summary.Outcome,
		Ticks:    result.Summary.Ticks,
	}
	switch {
	case actual != rec.Checksum:
		verification.Mismatch = MismatchChecksum
	case result.Summary != rec.A.Summary:
		verification.Mismatch = MismatchSummary
	default:
		verification.Match = true
	}
	return verification, nil
}

func verifyPvP(ctx context.Context, catalog *content.Catalog, rec *Record) (*Verification, error) {
	result, err := battle.ResolvePvP(ctx, battle.PvPConfig{
		Catalog:  catalog,
		LoadoutA: rec.A.Loadout,
		LoadoutB: rec.B.Loadout,
		Seed:     rec.Seed,
		TickCap:  rec.TickCap,
	})
	if err != nil {
		return nil, fmt.Errorf("replay: rebuild pvp: %w", err)
	}
	actual, err := EventChecksum(result.A.Events, result.B.Events)
	if err != nil {
		return nil, err
	}

	verification := &Verification{
		Kind:     KindPvP,
		Expected: rec.Checksum,
		Actual:   actual,
		Outcome:  result.Winner,
		Ticks:    result.DurationTicks,
	}
	switch {
	case actual != rec.Checksum:
		verification.Mismatch = MismatchChecksum
	case result.Winner != rec.Winner:
		verification.Mismatch = MismatchWinner
	case result.A.Summary != rec.A.Summary || result.B.Summary != rec.B.Summary:
		verification.Mismatch = MismatchSummary
	default:
		verification.Match = true
	}
	return verification, nil
}
