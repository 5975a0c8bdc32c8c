package logging

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Clock abstracts time stamping so tests can pin it.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sink receives routed events. Write is called from a single goroutine per
// sink; Close flushes whatever the sink buffers.
type Sink interface {
	Write(Event) error
	Close(context.Context) error
}

// Router fans events out to the enabled sinks. Publish never blocks: when
// the intake buffer is full the event is dropped and counted.
type Router struct {
	cfg           Config
	intake        chan Event
	outlets       []*outlet
	clock         Clock
	fallback      *log.Logger
	cancel        context.CancelFunc
	closed        atomic.Bool
	serviceFields map[string]any
	wg            sync.WaitGroup

	publishedTotal atomic.Uint64
	droppedTotal   atomic.Uint64
	nextDropWarn   atomic.Int64
}

// RouterStats reports lifetime counters.
type RouterStats struct {
	PublishedTotal uint64
	DroppedTotal   uint64
}

// NewRouter wires the enabled sinks from the provided set and starts the
// dispatch goroutines. Sinks present in the set but absent from
// cfg.EnabledSinks stay cold.
func NewRouter(cfg Config, clock Clock, fallback *log.Logger, sinks map[string]Sink) (*Router, error) {
	if clock == nil {
		clock = SystemClock{}
	}
	if fallback == nil {
		fallback = log.New(os.Stderr, "[logging] ", log.LstdFlags)
	}
	bufferSize := cfg.BufferSize
	if bufferSize <= 0 {
		bufferSize = DefaultConfig().BufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &Router{
		cfg:           cfg,
		intake:        make(chan Event, bufferSize),
		clock:         clock,
		fallback:      fallback,
		cancel:        cancel,
		serviceFields: cfg.cloneServiceFields(),
	}

	names := make([]string, 0, len(sinks))
	for name := range sinks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sink := sinks[name]
		if sink == nil || !cfg.HasSink(name) {
			continue
		}
		r.outlets = append(r.outlets, newOutlet(name, sink, bufferSize, fallback))
	}
	if len(r.outlets) == 0 {
		cancel()
		return nil, fmt.Errorf("logging: no enabled sink was provided")
	}

	r.wg.Add(1)
	go r.dispatch(ctx)
	for _, o := range r.outlets {
		r.wg.Add(1)
		go func(o *outlet) {
			defer r.wg.Done()
			o.run()
		}(o)
	}
	return r, nil
}

// Publish satisfies Publisher.
func (r *Router) Publish(_ context.Context, event Event) {
	if event.Type == "" || r.closed.Load() {
		return
	}
	select {
	case r.intake <- event:
	default:
		r.recordDrop(event)
	}
}

func (r *Router) dispatch(ctx context.Context) {
	defer func() {
		for _, o := range r.outlets {
			close(o.events)
		}
		r.wg.Done()
	}()
	for {
		select {
		case <-ctx.Done():
			// Flush whatever is already queued before shutting the
			// outlets down.
			for {
				select {
				case event := <-r.intake:
					r.fanOut(event)
				default:
					return
				}
			}
		case event := <-r.intake:
			r.fanOut(event)
		}
	}
}

func (r *Router) fanOut(event Event) {
	if event.Severity < r.cfg.MinimumSeverity {
		return
	}
	if event.Time.IsZero() {
		event.Time = r.clock.Now()
	}
	if len(r.serviceFields) > 0 {
		event = cloneEvent(event)
		if event.Extra == nil {
			event.Extra = make(map[string]any, len(r.serviceFields))
		}
		for k, v := range r.serviceFields {
			if _, exists := event.Extra[k]; !exists {
				event.Extra[k] = v
			}
		}
	}
	r.publishedTotal.Add(1)
	for _, o := range r.outlets {
		o.offer(event)
	}
}

func (r *Router) recordDrop(event Event) {
	r.droppedTotal.Add(1)
	interval := r.cfg.DropWarnInterval
	if interval <= 0 {
		interval = DefaultConfig().DropWarnInterval
	}
	now := time.Now().UnixNano()
	next := r.nextDropWarn.Load()
	if next == 0 || now >= next {
		if r.nextDropWarn.CompareAndSwap(next, now+interval.Nanoseconds()) {
			r.fallback.Printf("intake full, dropping event type=%s battle=%s", event.Type, event.BattleID)
		}
	}
}

// Close stops intake, drains queued events and closes every sink. It
// returns the context error if the drain does not finish in time.
func (r *Router) Close(ctx context.Context) error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	r.cancel()
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	var firstErr error
	for _, o := range r.outlets {
		if err := o.sink.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Stats reports the published and dropped counters.
func (r *Router) Stats() RouterStats {
	return RouterStats{
		PublishedTotal: r.publishedTotal.Load(),
		DroppedTotal:   r.droppedTotal.Load(),
	}
}

// Sink returns an attached sink by name, or nil. Tests use it to reach the
// memory sink.
func (r *Router) Sink(name string) Sink {
	for _, o := range r.outlets {
		if o.name == name {
			return o.sink
		}
	}
	return nil
}

// outlet owns the delivery goroutine for one sink. Write failures back off
// exponentially, capped at 30 seconds, without stalling the router.
type outlet struct {
	name     string
	sink     Sink
	events   chan Event
	fallback *log.Logger
	failures int
}

func newOutlet(name string, sink Sink, buffer int, fallback *log.Logger) *outlet {
	if buffer <= 0 {
		buffer = 32
	}
	return &outlet{
		name:     name,
		sink:     sink,
		events:   make(chan Event, buffer),
		fallback: fallback,
	}
}

func (o *outlet) offer(event Event) {
	select {
	case o.events <- cloneEvent(event):
	default:
		o.fallback.Printf("sink %s backlog full, dropping event type=%s", o.name, event.Type)
	}
}

func (o *outlet) run() {
	for event := range o.events {
		if err := o.sink.Write(event); err != nil {
			o.failures++
			delay := time.Duration(1<<uint(min(o.failures, 5))) * time.Second
			o.fallback.Printf("sink %s failed: %v (backing off %s)", o.name, err, delay)
			time.Sleep(delay)
			continue
		}
		o.failures = 0
	}
}
