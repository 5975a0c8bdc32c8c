package intake

import (
	"encoding/json"
	"strings"
	"testing"

	"growfortress/simcore/internal/replay"
)

// blobRequest wraps a msgpack record blob in the JSON transport form.
func blobRequest(blob []byte) (string, error) {
	payload, err := json.Marshal(map[string]any{"blob": blob})
	return string(payload), err
}

func TestBattleStagesValidRequest(t *testing.T) {
	body := `{
		"loadout": {
			"fortress": "bastion",
			"heroes": [{"id": "vanguard", "tier": 2, "level": 5}],
			"turrets": [{"id": "bolt-thrower", "tier": 1}]
		},
		"pillar": "skirmish",
		"seed": 42,
		"tickCap": 9000
	}`
	req, ok, reason := Battle(strings.NewReader(body))
	if !ok {
		t.Fatalf("expected request to stage, got reason %q", reason)
	}
	if req.Pillar != "skirmish" || req.Seed != 42 || req.TickCap != 9000 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.Loadout.Fortress != "bastion" || len(req.Loadout.Heroes) != 1 {
		t.Fatalf("unexpected loadout: %+v", req.Loadout)
	}
}

func TestBattleRejections(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		reason string
	}{
		{"malformed json", `{"pillar":`, RejectMalformedPayload},
		{"unknown field", `{"pillar":"skirmish","cheats":true}`, RejectMalformedPayload},
		{"missing pillar", `{"loadout":{"fortress":"bastion"}}`, RejectMissingPillar},
		{"negative tick cap", `{"pillar":"skirmish","tickCap":-1}`, RejectNegativeTickCap},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok, reason := Battle(strings.NewReader(tc.body))
			if ok {
				t.Fatalf("expected rejection")
			}
			if reason != tc.reason {
				t.Fatalf("expected reason %q, got %q", tc.reason, reason)
			}
		})
	}
}

func TestBattleRejectsOversizedBody(t *testing.T) {
	padding := strings.Repeat(" ", MaxBodyBytes)
	body := `{"pillar":"skirmish"}` + padding
	_, ok, reason := Battle(strings.NewReader(body))
	if ok {
		t.Fatalf("expected rejection")
	}
	if reason != RejectBodyTooLarge {
		t.Fatalf("expected %q, got %q", RejectBodyTooLarge, reason)
	}
}

func TestPvPStagesValidRequest(t *testing.T) {
	body := `{
		"loadoutA": {"fortress": "bastion", "heroes": [{"id": "vanguard", "tier": 1, "level": 1}]},
		"loadoutB": {"fortress": "bastion", "heroes": [{"id": "vanguard", "tier": 1, "level": 1}]},
		"seed": 7
	}`
	req, ok, reason := PvP(strings.NewReader(body))
	if !ok {
		t.Fatalf("expected request to stage, got reason %q", reason)
	}
	if req.Seed != 7 || req.LoadoutA.Fortress != "bastion" {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestVerifyAcceptsInlineRecord(t *testing.T) {
	body := `{"record":{"version":1,"kind":"pve","seed":3,"tickCap":100,"pillar":"skirmish",` +
		`"a":{"loadout":{"fortress":"bastion"},"summary":{"outcome":"victory","ticks":10,"durationMs":333,` +
		`"fortressHp":1,"fortressMaxHp":1,"wallHp":0,"heroesAlive":0,"stats":{"damageDealt":0,"damageTaken":0,` +
		`"enemiesSlain":0,"heroesLost":0,"combos":0,"wavesSpawned":0}}},"checksum":"abc"}}`
	rec, ok, reason := Verify(strings.NewReader(body))
	if !ok {
		t.Fatalf("expected record to stage, got reason %q", reason)
	}
	if rec.Kind != replay.KindPvE || rec.Checksum != "abc" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestVerifyAcceptsBlobForm(t *testing.T) {
	rec := &replay.Record{Version: replay.FormatVersion, Kind: replay.KindPvE, Checksum: "abc"}
	blob, err := rec.Marshal()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	payload, err := blobRequest(blob)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, ok, reason := Verify(strings.NewReader(payload))
	if !ok {
		t.Fatalf("expected blob to stage, got reason %q", reason)
	}
	if decoded.Checksum != "abc" {
		t.Fatalf("unexpected record: %+v", decoded)
	}
}

func TestVerifyRejections(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		reason string
	}{
		{"missing record", `{}`, RejectMissingRecord},
		{"ambiguous forms", `{"record":{"version":1,"kind":"pve","a":{"loadout":{"fortress":"x"}},"checksum":"abc"},"blob":"AQ=="}`, RejectAmbiguousRecord},
		{"bad blob", `{"blob":"AQID"}`, RejectBadRecord},
		{"invalid inline record", `{"record":{"version":0,"kind":"pve","checksum":"abc"}}`, RejectBadRecord},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok, reason := Verify(strings.NewReader(tc.body))
			if ok {
				t.Fatalf("expected rejection")
			}
			if reason != tc.reason {
				t.Fatalf("expected reason %q, got %q", tc.reason, reason)
			}
		})
	}
}
