package ws

import (
	"context"
	"log"
	nethttp "net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"growfortress/simcore/content"
	"growfortress/simcore/internal/net/proto"
	"growfortress/simcore/internal/replay"
	"growfortress/simcore/internal/sim"
	"growfortress/simcore/internal/telemetry"
	"growfortress/simcore/logging"
	"growfortress/simcore/logging/netlog"
)

// Playback pacing. One batch covers frameTicks of battle time; at rate 1 it
// plays back in real time.
const (
	frameTicks  = int64(content.TicksPerSecond)
	defaultRate = 1
	maxRate     = 16
)

// RecordSource resolves a stored battle by id.
type RecordSource func(id string) (*replay.Record, bool)

type HandlerConfig struct {
	Logger    *log.Logger
	Publisher logging.Publisher
	Counters  *telemetry.Counters
}

// Handler upgrades watcher connections and plays stored records back to
// them.
type Handler struct {
	source   RecordSource
	logger   *log.Logger
	pub      logging.Publisher
	counters *telemetry.Counters
	upgrader websocket.Upgrader
}

func NewHandler(source RecordSource, cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	pub := cfg.Publisher
	if pub == nil {
		pub = logging.NopPublisher()
	}
	counters := cfg.Counters
	if counters == nil {
		counters = telemetry.NewCounters()
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *nethttp.Request) bool {
			return true
		},
	}

	return &Handler{
		source:   source,
		logger:   logger,
		pub:      pub,
		counters: counters,
		upgrader: upgrader,
	}
}

// Handle serves one watcher: resolve the record, upgrade, stream.
func (h *Handler) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	battleID := r.URL.Query().Get("id")
	if battleID == "" {
		nethttp.Error(w, "missing id", nethttp.StatusBadRequest)
		return
	}
	rec, ok := h.source(battleID)
	if !ok {
		nethttp.Error(w, "unknown battle", nethttp.StatusNotFound)
		return
	}
	rate := parseRate(r.URL.Query().Get("rate"))

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade failed for %s: %v", battleID, err)
		return
	}
	h.serve(newSession(conn), conn, battleID, rec, rate, r.RemoteAddr)
}

func (h *Handler) serve(session *Session, conn *websocket.Conn, battleID string, rec *replay.Record, rate int64, remoteAddr string) {
	ctx := context.Background()
	h.counters.WatcherJoined()
	netlog.WatcherJoined(ctx, h.pub, battleID, remoteAddr)

	speed := new(atomic.Int64)
	speed.Store(rate)
	done := make(chan struct{})
	go h.readLoop(session, conn, done, speed)

	reason := h.stream(session, battleID, rec, speed, done)

	h.counters.WatcherLeft()
	netlog.WatcherLeft(ctx, h.pub, battleID, remoteAddr, reason)
	conn.Close()
}

// readLoop drains the watcher until it hangs up. Pings are answered
// immediately; rate changes take effect at the next playback window.
func (h *Handler) readLoop(session *Session, conn *websocket.Conn, done chan<- struct{}, speed *atomic.Int64) {
	defer close(done)
	conn.SetReadLimit(maxInboundBytes)
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		msg, err := proto.DecodeClientMessage(payload)
		if err != nil {
			h.logger.Printf("discarding malformed watcher message: %v", err)
			continue
		}
		switch msg.Type {
		case proto.TypeSpeed:
			speed.Store(clampRate(msg.Rate))
		case proto.TypePing:
			if _, err := session.WriteJSON(proto.Pong(msg.Nonce)); err != nil {
				return
			}
		}
	}
}

// stream pushes the whole record: hello, tick-windowed batches, summary.
// The returned reason feeds the watcher-left log entry.
func (h *Handler) stream(session *Session, battleID string, rec *replay.Record, speed *atomic.Int64, done <-chan struct{}) string {
	totalTicks := playbackTicks(rec)
	totalEvents := len(rec.A.Events)
	if rec.B != nil {
		totalEvents += len(rec.B.Events)
	}

	if !h.send(session, proto.Hello(battleID, rec.Kind, totalTicks, totalEvents, speed.Load())) {
		return "write_failed"
	}

	sideA := ""
	if rec.Kind == replay.KindPvP {
		sideA = proto.SideA
	}
	cursorA, cursorB := 0, 0

	for start := int64(0); start <= totalTicks; start += frameTicks {
		end := start + frameTicks - 1

		if batch := window(rec.A.Events, &cursorA, end); len(batch) > 0 {
			if !h.send(session, proto.EventBatch(sideA, end, batch)) {
				return "write_failed"
			}
		}
		if rec.B != nil {
			if batch := window(rec.B.Events, &cursorB, end); len(batch) > 0 {
				if !h.send(session, proto.EventBatch(proto.SideB, end, batch)) {
					return "write_failed"
				}
			}
		}

		wait := time.Duration(frameTicks) * time.Second / content.TicksPerSecond / time.Duration(clampRate(speed.Load()))
		select {
		case <-done:
			return "client_closed"
		case <-time.After(wait):
		}
	}

	summary := proto.SummaryMessage{
		Ver:      proto.Version,
		Type:     proto.TypeSummary,
		Summary:  rec.A.Summary,
		Winner:   rec.Winner,
		Checksum: rec.Checksum,
	}
	if rec.B != nil {
		summaryB := rec.B.Summary
		summary.SummaryB = &summaryB
	}
	if !h.send(session, summary) {
		return "write_failed"
	}
	if err := session.CloseNormal(); err != nil {
		return "write_failed"
	}
	return "completed"
}

func (h *Handler) send(session *Session, v any) bool {
	n, err := session.WriteJSON(v)
	if err != nil {
		return false
	}
	h.counters.RecordBroadcast(n)
	return true
}

// window collects the events up to and including the given tick, advancing
// the cursor. Events are journal-ordered, so one pass suffices.
func window(events []sim.Event, cursor *int, endTick int64) []sim.Event {
	start := *cursor
	for *cursor < len(events) && events[*cursor].Tick <= endTick {
		*cursor++
	}
	if start == *cursor {
		return nil
	}
	return events[start:*cursor]
}

func playbackTicks(rec *replay.Record) int64 {
	ticks := rec.A.Summary.Ticks
	if rec.B != nil && rec.B.Summary.Ticks > ticks {
		ticks = rec.B.Summary.Ticks
	}
	return ticks
}

func parseRate(raw string) int64 {
	if raw == "" {
		return defaultRate
	}
	rate, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return defaultRate
	}
	return clampRate(rate)
}

func clampRate(rate int64) int64 {
	if rate < 1 {
		return defaultRate
	}
	if rate > maxRate {
		return maxRate
	}
	return rate
}
