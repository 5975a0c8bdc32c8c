package net

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	nethttp "net/http"
	"net/http/pprof"
	"time"

	"growfortress/simcore/content"
	"growfortress/simcore/internal/battle"
	"growfortress/simcore/internal/net/intake"
	"growfortress/simcore/internal/net/proto"
	"growfortress/simcore/internal/net/ws"
	"growfortress/simcore/internal/observability"
	"growfortress/simcore/internal/telemetry"
	"growfortress/simcore/logging/netlog"
)

type HTTPHandlerConfig struct {
	Logger        *log.Logger
	Observability observability.Config
}

// NewHTTPHandler wires the service routes onto one mux. The websocket
// playback route shares the service's record store and telemetry.
func NewHTTPHandler(svc *Service, cfg HTTPHandlerConfig) nethttp.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	mux := nethttp.NewServeMux()

	mux.HandleFunc("/health", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/diagnostics", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		payload := struct {
			Status        string             `json:"status"`
			ServerTime    int64              `json:"serverTime"`
			TickRate      int                `json:"tickRate"`
			StoredBattles int                `json:"storedBattles"`
			Telemetry     telemetry.Snapshot `json:"telemetry"`
		}{
			Status:        "ok",
			ServerTime:    time.Now().UnixMilli(),
			TickRate:      content.TicksPerSecond,
			StoredBattles: svc.StoredBattles(),
			Telemetry:     svc.Counters().Snapshot(),
		}
		writeJSON(w, nethttp.StatusOK, payload)
	})

	mux.HandleFunc("/content/catalog", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodGet {
			writeError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
			return
		}
		payload := struct {
			Catalog content.Document `json:"catalog"`
		}{Catalog: svc.Document()}
		writeJSON(w, nethttp.StatusOK, payload)
	})

	mux.HandleFunc("/battles", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			writeError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
			return
		}
		req, ok, reason := intake.Battle(r.Body)
		if !ok {
			netlog.RequestFailed(r.Context(), svc.pub, r.URL.Path, reason)
			writeError(w, nethttp.StatusBadRequest, reason)
			return
		}
		response, err := svc.ResolveBattle(r.Context(), req)
		if err != nil {
			writeResolveError(w, r, svc, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, response)
	})

	mux.HandleFunc("/battles/pvp", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			writeError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
			return
		}
		req, ok, reason := intake.PvP(r.Body)
		if !ok {
			netlog.RequestFailed(r.Context(), svc.pub, r.URL.Path, reason)
			writeError(w, nethttp.StatusBadRequest, reason)
			return
		}
		response, err := svc.ResolvePvP(r.Context(), req)
		if err != nil {
			writeResolveError(w, r, svc, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, response)
	})

	mux.HandleFunc("/replays", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodGet {
			writeError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
			return
		}
		id := r.URL.Query().Get("id")
		if id == "" {
			writeError(w, nethttp.StatusBadRequest, "missing id")
			return
		}
		rec, ok := svc.Record(id)
		if !ok {
			writeError(w, nethttp.StatusNotFound, "unknown battle")
			return
		}
		if r.URL.Query().Get("format") == "json" {
			writeJSON(w, nethttp.StatusOK, rec)
			return
		}
		blob, err := rec.Marshal()
		if err != nil {
			logger.Printf("failed to encode record %s: %v", id, err)
			writeError(w, nethttp.StatusInternalServerError, "failed to encode")
			return
		}
		w.Header().Set("Content-Type", "application/x-msgpack")
		w.Write(blob)
	})

	mux.HandleFunc("/replays/verify", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			writeError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
			return
		}
		rec, ok, reason := intake.Verify(r.Body)
		if !ok {
			netlog.RequestFailed(r.Context(), svc.pub, r.URL.Path, reason)
			writeError(w, nethttp.StatusBadRequest, reason)
			return
		}
		response, err := svc.VerifyRecord(r.Context(), rec)
		if err != nil {
			writeResolveError(w, r, svc, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, response)
	})

	watch := ws.NewHandler(svc.Record, ws.HandlerConfig{
		Logger:    logger,
		Publisher: svc.pub,
		Counters:  svc.Counters(),
	})
	mux.HandleFunc("/ws/battles", watch.Handle)

	if cfg.Observability.EnablePprofTrace {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}

	return mux
}

// writeResolveError maps service errors onto wire status codes: loadout and
// record problems are the client's fault, anything else is ours.
func writeResolveError(w nethttp.ResponseWriter, r *nethttp.Request, svc *Service, err error) {
	netlog.RequestFailed(r.Context(), svc.pub, r.URL.Path, err.Error())

	var cfgErr *battle.ConfigError
	if errors.As(err, &cfgErr) {
		writeJSON(w, nethttp.StatusBadRequest, proto.ErrorResponse{
			Ver:    proto.Version,
			Error:  "invalid_config",
			Field:  cfgErr.Field,
			ID:     cfgErr.ID,
			Reason: cfgErr.Reason,
		})
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		writeError(w, nethttp.StatusRequestTimeout, "cancelled")
		return
	}
	writeError(w, nethttp.StatusInternalServerError, "internal error")
}

func writeJSON(w nethttp.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		nethttp.Error(w, "failed to encode", nethttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func writeError(w nethttp.ResponseWriter, status int, message string) {
	writeJSON(w, status, proto.ErrorResponse{Ver: proto.Version, Error: message})
}
