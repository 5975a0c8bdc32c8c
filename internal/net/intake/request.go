// Package intake normalizes inbound service requests before they reach the
// orchestrator: strict JSON decoding, body size limits and shape checks that
// belong to the transport rather than the battle rules. Rejections carry a
// stable reason string for logging and error payloads; anything passing
// intake is well-formed wire data, not yet a valid battle.
package intake

import (
	"bytes"
	"encoding/json"
	"io"

	"growfortress/simcore/internal/net/proto"
	"growfortress/simcore/internal/replay"
)

// MaxBodyBytes caps request bodies. Replay records with full event logs sit
// far below this; anything larger is noise or abuse.
const MaxBodyBytes = 1 << 20

// Reject reasons returned alongside a false ok.
const (
	RejectMalformedPayload = "malformed_payload"
	RejectBodyTooLarge     = "body_too_large"
	RejectMissingPillar    = "missing_pillar"
	RejectNegativeTickCap  = "negative_tick_cap"
	RejectMissingRecord    = "missing_record"
	RejectAmbiguousRecord  = "ambiguous_record"
	RejectBadRecord        = "bad_record"
)

// Battle decodes and stages a PvE resolve request.
func Battle(body io.Reader) (proto.BattleRequest, bool, string) {
	var req proto.BattleRequest
	if reason := decodeStrict(body, &req); reason != "" {
		return proto.BattleRequest{}, false, reason
	}
	if req.Pillar == "" {
		return proto.BattleRequest{}, false, RejectMissingPillar
	}
	if req.TickCap < 0 {
		return proto.BattleRequest{}, false, RejectNegativeTickCap
	}
	return req, true, ""
}

// PvP decodes and stages a 1v1 resolve request.
func PvP(body io.Reader) (proto.PvPRequest, bool, string) {
	var req proto.PvPRequest
	if reason := decodeStrict(body, &req); reason != "" {
		return proto.PvPRequest{}, false, reason
	}
	if req.TickCap < 0 {
		return proto.PvPRequest{}, false, RejectNegativeTickCap
	}
	return req, true, ""
}

// Verify decodes a verification request and unpacks the record it carries,
// whichever of the two transport forms it uses.
func Verify(body io.Reader) (*replay.Record, bool, string) {
	var req proto.VerifyRequest
	if reason := decodeStrict(body, &req); reason != "" {
		return nil, false, reason
	}
	switch {
	case req.Record == nil && len(req.Blob) == 0:
		return nil, false, RejectMissingRecord
	case req.Record != nil && len(req.Blob) > 0:
		return nil, false, RejectAmbiguousRecord
	case len(req.Blob) > 0:
		rec, err := replay.Unmarshal(req.Blob)
		if err != nil {
			return nil, false, RejectBadRecord
		}
		return rec, true, ""
	default:
		if err := req.Record.Validate(); err != nil {
			return nil, false, RejectBadRecord
		}
		return req.Record, true, ""
	}
}

// decodeStrict parses exactly one JSON value with unknown fields rejected.
// The body is read in full before decoding so the size cap counts trailing
// bytes a streaming decoder would never touch. An empty reason means success.
func decodeStrict(body io.Reader, v any) string {
	payload, err := io.ReadAll(&io.LimitedReader{R: body, N: MaxBodyBytes + 1})
	if err != nil {
		return RejectMalformedPayload
	}
	if len(payload) > MaxBodyBytes {
		return RejectBodyTooLarge
	}
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return RejectMalformedPayload
	}
	if decoder.More() {
		return RejectMalformedPayload
	}
	return ""
}
