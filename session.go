package vkguard

import (
	"fmt"
	"sync/atomic"
)

// Session is one recording pass over a command buffer: it validates every
// command against the recording state machine and forwards admitted
// commands to its sink. A session is single-use; after End or Close it
// accepts nothing further.
//
// Sessions are not safe for concurrent use. Recording the same command
// buffer from two goroutines is a program bug, not a recoverable
// condition, so concurrent Record calls panic rather than racing.
type Session struct {
	validator *Validator
	state     *State
	sink      Sink
	begin     BeginInfo

	// busy detects concurrent entry into Record/End/Close.
	busy atomic.Int32

	capture bool
	steps   []Step
	rec     *Recording

	closed bool

	// done fires once when the session reaches a terminal phase. Installed
	// by Pool so its in-flight mark clears exactly when the recording can
	// no longer be mutated.
	done func()
}

// NewSession opens a recording session. The sink's Begin is called before
// NewSession returns; on sink failure no session is created.
func NewSession(opts ...SessionOption) (*Session, error) {
	o := defaultSessionOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.inherit != nil && o.level != LevelSecondary {
		return nil, fmt.Errorf("vkguard: render pass inheritance on primary recording: %w", ErrWrongScope)
	}

	begin := BeginInfo{
		Label:       o.label,
		Usage:       o.usage,
		Level:       o.level,
		Inheritance: o.inherit,
	}
	if err := o.sink.Begin(begin); err != nil {
		return nil, fmt.Errorf("vkguard: begin %q: %w", o.label, err)
	}

	s := &Session{
		validator: NewValidator(o.cfg),
		state:     NewState(),
		sink:      o.sink,
		begin:     begin,
		capture:   o.capture,
		done:      o.done,
	}
	if o.inherit != nil {
		s.state.beginRecordingInherited(o.inherit.Subpass, &o.inherit.RenderPass)
	} else {
		s.state.beginRecording()
	}

	Logger().Info("vkguard: session begin",
		"label", o.label,
		"level", o.level.String(),
		"usage", o.usage.String(),
		"strict", o.cfg.Strict)
	return s, nil
}

// enter marks the session busy, panicking if another goroutine is already
// inside. exit must be deferred immediately after.
func (s *Session) enter() {
	if !s.busy.CompareAndSwap(0, 1) {
		panic("vkguard: concurrent use of Session")
	}
}

func (s *Session) exit() { s.busy.Store(0) }

// finish fires the done hook once the session has reached a terminal phase.
// Deferred before exit, so it runs after the busy flag clears: the moment
// the hook fires, the session accepts nothing further and another goroutine
// may close it.
func (s *Session) finish() {
	if s.state.Recording() || s.done == nil {
		return
	}
	d := s.done
	s.done = nil
	d()
}

// Phase returns the current recording phase.
func (s *Session) Phase() Phase { return s.state.Phase() }

// Subpass returns the current subpass index, zero outside a render pass.
func (s *Session) Subpass() int { return s.state.Subpass() }

// Strict reports whether strict mode checks are enabled.
func (s *Session) Strict() bool { return s.validator.Strict() }

// Record validates one command and, if admitted, forwards it to the sink.
// Any failure, validation or sink, poisons the session: every later
// Record returns ErrNotRecording and the only way out is Close.
func (s *Session) Record(kind CommandKind, payload any) error {
	s.enter()
	defer s.finish()
	defer s.exit()

	if s.closed {
		return fmt.Errorf("%s on closed session: %w", kind, ErrNotRecording)
	}
	if err := s.validator.Admit(s.state, kind, payload); err != nil {
		Logger().Warn("vkguard: command rejected",
			"label", s.begin.Label, "kind", kind.String(), "err", err)
		return err
	}
	if err := s.sink.Submit(kind, payload); err != nil {
		// The native recording is in an unknown state; poison ours too.
		s.state.invalidate()
		s.sink.Abort()
		Logger().Warn("vkguard: sink submit failed",
			"label", s.begin.Label, "kind", kind.String(), "err", err)
		return fmt.Errorf("%s: sink: %w", kind, err)
	}
	if s.capture {
		s.steps = append(s.steps, Step{Kind: kind, Payload: payload})
	}
	return nil
}

// End finishes the recording: all nested scopes must be closed. On success
// the session reaches PhaseEnded and the sink's End is called; a session
// opened with WithCapture then exposes its stream via Recording.
func (s *Session) End() error {
	s.enter()
	defer s.finish()
	defer s.exit()

	if s.closed {
		return fmt.Errorf("end on closed session: %w", ErrNotRecording)
	}
	if err := s.validator.End(s.state); err != nil {
		Logger().Warn("vkguard: end rejected", "label", s.begin.Label, "err", err)
		return err
	}
	if err := s.sink.End(); err != nil {
		s.state.invalidate()
		s.sink.Abort()
		return fmt.Errorf("end %q: sink: %w", s.begin.Label, err)
	}
	if s.capture {
		s.rec = &Recording{begin: s.begin, steps: s.steps}
		s.steps = nil
	}
	Logger().Info("vkguard: session end", "label", s.begin.Label)
	return nil
}

// Recording returns the captured command stream of a session opened with
// WithCapture, or nil before a successful End.
func (s *Session) Recording() *Recording { return s.rec }

// Close releases the session. If recording is still in flight the native
// recording is aborted and the state poisoned. Close is idempotent and
// safe after End, Record failure, or not at all having recorded.
func (s *Session) Close() error {
	s.enter()
	defer s.finish()
	defer s.exit()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.state.Phase() != PhaseEnded {
		s.state.invalidate()
		s.sink.Abort()
		Logger().Info("vkguard: session aborted", "label", s.begin.Label)
	}
	return nil
}
