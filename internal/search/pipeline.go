// Package search turns raw search box keystrokes into hero result batches.
//
// A Pipeline applies, in order:
//   - debounce: a term becomes a candidate after DebounceWindow without further input
//   - dedupe: a candidate equal to the previous candidate is dropped
//   - switch-latest: a new candidate cancels the in-flight search and its result is never delivered
//   - empty short-circuit: a blank candidate yields an empty batch without searching
//   - failure containment: a failed search yields an empty batch and is logged
//
// All pipeline state is owned by one goroutine; timers, search completions and callers
// hand it closures through an inbox, so state transitions are strictly serialised.
package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"heroes/internal/hero"
	"heroes/internal/message"

	"go.uber.org/zap"
)

// DebounceWindow is the quiet period that turns the last typed term into a candidate.
const DebounceWindow = 300 * time.Millisecond

// Func performs one search. It must honour ctx cancellation where it can.
type Func func(ctx context.Context, term string) ([]hero.Hero, error)

// Batch is the complete result of one candidate. It supersedes every earlier batch.
type Batch struct {
	Term   string
	Heroes []hero.Hero
}

// State is the pipeline's position in Idle -> Debouncing -> Dispatching -> Idle.
type State int

const (
	StateIdle State = iota
	StateDebouncing
	StateDispatching
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateDebouncing:
		return "Debouncing"
	case StateDispatching:
		return "Dispatching"
	default:
		return "Unknown"
	}
}

// Stats counts pipeline events since creation.
type Stats struct {
	Emitted        int // terms passed to Emit
	Candidates     int // terms that survived the debounce window
	Duplicates     int // candidates dropped as equal to the previous one
	Dispatched     int // calls made to the search Func
	ShortCircuited int // blank candidates answered without searching
	Abandoned      int // in-flight searches superseded or torn down
	Failed         int // searches that returned an error
	Batches        int // batches produced for delivery
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock replaces the real clock, for tests.
func WithClock(c Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// WithLogger sets the zap logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithMessages sets the sink that receives user-visible failure messages.
func WithMessages(s message.Sink) Option {
	return func(p *Pipeline) { p.sink = s }
}

// Pipeline is a live search pipeline. Create with New, tear down with Close.
type Pipeline struct {
	search Func
	clock  Clock
	logger *zap.Logger
	sink   message.Sink

	ctx       context.Context
	cancelAll context.CancelFunc
	inbox     chan func()
	out       chan Batch
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	// Owned by the run goroutine.
	gen      uint64
	timer    Timer
	pending  string
	hasLast  bool
	last     string
	token    uint64
	inflight context.CancelFunc
	queue    []Batch
	stats    Stats
}

// New starts a pipeline that searches with fn.
func New(fn Func, opts ...Option) *Pipeline {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pipeline{
		search:    fn,
		clock:     RealClock{},
		logger:    zap.NewNop(),
		ctx:       ctx,
		cancelAll: cancel,
		inbox:     make(chan func()),
		out:       make(chan Batch),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	for _, o := range opts {
		o(p)
	}
	go p.run()
	return p
}

// Emit feeds the current search box value into the pipeline.
// It returns once the term is registered. Emit after Close is a no-op.
func (p *Pipeline) Emit(term string) {
	p.do(func() { p.onEmit(term) })
}

// Results delivers batches in candidate order. It is closed by Close.
func (p *Pipeline) Results() <-chan Batch {
	return p.out
}

// State returns the current state. Returns StateIdle after Close.
func (p *Pipeline) State() State {
	s := StateIdle
	p.do(func() { s = p.state() })
	return s
}

// Stats returns a snapshot of the event counters.
func (p *Pipeline) Stats() Stats {
	var s Stats
	p.do(func() { s = p.stats })
	return s
}

// Close stops the debounce timer, cancels any in-flight search and closes Results.
// Undelivered batches are dropped. Safe to call more than once.
func (p *Pipeline) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
	<-p.stopped
}

// do runs f on the pipeline goroutine and waits for it to finish.
func (p *Pipeline) do(f func()) bool {
	ack := make(chan struct{})
	select {
	case p.inbox <- func() { f(); close(ack) }:
	case <-p.done:
		return false
	}
	<-ack
	return true
}

func (p *Pipeline) run() {
	defer close(p.stopped)
	for {
		var out chan Batch
		var next Batch
		if len(p.queue) > 0 {
			out = p.out
			next = p.queue[0]
		}
		select {
		case <-p.done:
			p.teardown()
			return
		case f := <-p.inbox:
			f()
		case out <- next:
			p.queue = p.queue[1:]
		}
	}
}

func (p *Pipeline) teardown() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.abandon()
	p.cancelAll()
	p.queue = nil
	close(p.out)
}

func (p *Pipeline) state() State {
	switch {
	case p.timer != nil:
		return StateDebouncing
	case p.inflight != nil:
		return StateDispatching
	default:
		return StateIdle
	}
}

func (p *Pipeline) onEmit(term string) {
	p.stats.Emitted++
	p.pending = term
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
	}
	gen := p.gen
	p.timer = p.clock.AfterFunc(DebounceWindow, func() {
		p.do(func() { p.onSettled(gen) })
	})
}

// onSettled runs when the debounce timer for gen fires.
func (p *Pipeline) onSettled(gen uint64) {
	if gen != p.gen {
		return // restarted by a later Emit
	}
	p.timer = nil
	term := p.pending
	p.stats.Candidates++

	if p.hasLast && term == p.last {
		p.stats.Duplicates++
		p.logger.Debug("search term unchanged, skipping", zap.String("term", term))
		return
	}
	p.hasLast = true
	p.last = term

	p.abandon()

	if strings.TrimSpace(term) == "" {
		p.stats.ShortCircuited++
		p.enqueue(Batch{Term: term, Heroes: []hero.Hero{}})
		return
	}
	p.dispatch(term)
}

func (p *Pipeline) dispatch(term string) {
	p.token++
	token := p.token
	ctx, cancel := context.WithCancel(p.ctx)
	p.inflight = cancel
	p.stats.Dispatched++
	p.logger.Debug("dispatching search", zap.String("term", term), zap.Uint64("token", token))

	go func() {
		heroes, err := p.search(ctx, term)
		p.do(func() { p.onResult(token, term, heroes, err) })
	}()
}

// abandon cancels the in-flight search, if any. Its result will be dropped by token mismatch.
func (p *Pipeline) abandon() {
	if p.inflight == nil {
		return
	}
	p.inflight()
	p.inflight = nil
	p.token++
	p.stats.Abandoned++
}

func (p *Pipeline) onResult(token uint64, term string, heroes []hero.Hero, err error) {
	if token != p.token || p.inflight == nil {
		p.logger.Debug("dropping superseded search result", zap.String("term", term))
		return
	}
	p.inflight()
	p.inflight = nil

	if err != nil {
		p.stats.Failed++
		p.logger.Warn("search failed", zap.String("term", term), zap.Error(err))
		if p.sink != nil {
			p.sink.Add(fmt.Sprintf("HeroSearch: search for %q failed: %v", term, err))
		}
		heroes = []hero.Hero{}
	}
	if heroes == nil {
		heroes = []hero.Hero{}
	}
	p.enqueue(Batch{Term: term, Heroes: heroes})
}

func (p *Pipeline) enqueue(b Batch) {
	p.stats.Batches++
	p.queue = append(p.queue, b)
}
