package vkguard

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Handle identifies a command buffer allocated from a Pool. Handles are
// plain integers, never reused within a pool's lifetime, so a stale handle
// fails with ErrUnknownHandle instead of aliasing a newer buffer.
type Handle uint64

// Pool tracks a set of command buffers and the recording session in
// flight on each. It enforces the one-recorder rule: a handle with an
// unfinished session cannot be begun again, reset, or freed.
//
// Unlike Session, Pool is safe for concurrent use; distinct handles can
// record from distinct goroutines at the same time.
type Pool struct {
	mu     sync.Mutex
	cfg    Config
	sinks  SinkFactory
	next   Handle
	slots  map[Handle]*poolSlot
	closed bool
}

type poolSlot struct {
	level   Level
	session *Session

	// busy marks a session in flight on this handle. Pool-owned: set under
	// the pool mutex at Begin, cleared through the session's done hook, so
	// Begin, Reset, and Free never read the session's own state while its
	// goroutine is still recording.
	busy atomic.Bool
}

// NewPool creates a pool. sinks supplies one sink per Begin; pass nil for
// validation-only recording.
func NewPool(cfg Config, sinks SinkFactory) *Pool {
	if sinks == nil {
		sinks = func() Sink { return NopSink{} }
	}
	return &Pool{
		cfg:   cfg,
		sinks: sinks,
		next:  1,
		slots: make(map[Handle]*poolSlot),
	}
}

// Alloc reserves a command buffer at the given level and returns its
// handle. The buffer starts with no recording in flight.
func (p *Pool) Alloc(level Level) (Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0, fmt.Errorf("alloc: %w", ErrPoolClosed)
	}
	h := p.next
	p.next++
	p.slots[h] = &poolSlot{level: level}
	Logger().Debug("vkguard: buffer allocated", "handle", uint64(h), "level", level.String())
	return h, nil
}

// Begin opens a recording session on a handle. The pool's configuration
// and the slot's level apply; per-call options may add a label, usage
// mode, inheritance, or capture, but cannot change the level.
//
// Begin fails with ErrAlreadyRecording while a previous session on the
// same handle has neither ended nor been closed.
func (p *Pool) Begin(h Handle, opts ...SessionOption) (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, fmt.Errorf("begin %d: %w", h, ErrPoolClosed)
	}
	slot, ok := p.slots[h]
	if !ok {
		return nil, fmt.Errorf("begin %d: %w", h, ErrUnknownHandle)
	}
	if slot.busy.Load() {
		return nil, fmt.Errorf("begin %d: %w", h, ErrAlreadyRecording)
	}

	all := make([]SessionOption, 0, len(opts)+4)
	all = append(all, WithConfig(p.cfg), WithSink(p.sinks()))
	if slot.level == LevelSecondary {
		all = append(all, WithSecondary())
	}
	all = append(all, opts...)
	all = append(all, withDone(func() { slot.busy.Store(false) }))

	slot.busy.Store(true)
	s, err := NewSession(all...)
	if err != nil {
		slot.busy.Store(false)
		return nil, fmt.Errorf("begin %d: %w", h, err)
	}
	if slot.level == LevelPrimary && s.begin.Level != LevelPrimary {
		s.Close() // fires the done hook, clearing busy
		return nil, fmt.Errorf("begin %d: secondary options on primary buffer: %w", h, ErrWrongScope)
	}
	slot.session = s
	return s, nil
}

// Reset returns a handle to its initial state, discarding any finished or
// poisoned recording. A handle with recording still in flight cannot be
// reset; end or close its session first.
func (p *Pool) Reset(h Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fmt.Errorf("reset %d: %w", h, ErrPoolClosed)
	}
	slot, ok := p.slots[h]
	if !ok {
		return fmt.Errorf("reset %d: %w", h, ErrUnknownHandle)
	}
	if slot.busy.Load() {
		return fmt.Errorf("reset %d: %w", h, ErrHandleBusy)
	}
	if slot.session != nil {
		slot.session.Close()
		slot.session = nil
	}
	return nil
}

// Free releases a handle. Like Reset it refuses while recording is in
// flight. Freeing an unknown handle fails with ErrUnknownHandle.
func (p *Pool) Free(h Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fmt.Errorf("free %d: %w", h, ErrPoolClosed)
	}
	slot, ok := p.slots[h]
	if !ok {
		return fmt.Errorf("free %d: %w", h, ErrUnknownHandle)
	}
	if slot.busy.Load() {
		return fmt.Errorf("free %d: %w", h, ErrHandleBusy)
	}
	if slot.session != nil {
		slot.session.Close()
	}
	delete(p.slots, h)
	return nil
}

// Live returns the number of allocated handles.
func (p *Pool) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.slots)
}

// Close shuts the pool down. In-flight sessions are closed, which aborts
// their native recordings. Close is idempotent.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	for h, slot := range p.slots {
		if slot.session != nil {
			slot.session.Close()
		}
		delete(p.slots, h)
	}
	Logger().Info("vkguard: pool closed")
	return nil
}
