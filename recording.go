package vkguard

import "fmt"

// Level distinguishes primary recordings, submitted directly to a queue,
// from secondary recordings, executed from within a primary.
type Level uint8

const (
	LevelPrimary Level = iota
	LevelSecondary
)

// levelNames maps Level values to their string representations.
var levelNames = [...]string{
	LevelPrimary:   "Primary",
	LevelSecondary: "Secondary",
}

// String returns the name of the level.
func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "Unknown"
}

// Usage declares how a finished recording may be submitted.
type Usage uint8

const (
	// UsageOneTime marks a recording submitted exactly once and then
	// discarded or reset. Drivers may optimize for single submission.
	UsageOneTime Usage = iota

	// UsageManyTimes marks a recording submitted repeatedly, one
	// submission at a time.
	UsageManyTimes

	// UsageSimultaneous marks a recording that may be pending on multiple
	// submissions at once.
	UsageSimultaneous
)

// usageNames maps Usage values to their string representations.
var usageNames = [...]string{
	UsageOneTime:      "OneTime",
	UsageManyTimes:    "ManyTimes",
	UsageSimultaneous: "Simultaneous",
}

// String returns the name of the usage mode.
func (u Usage) String() string {
	if int(u) < len(usageNames) {
		return usageNames[u]
	}
	return "Unknown"
}

// Step is one captured command: the kind plus the payload it was admitted
// with. Payloads are retained by reference, so callers replaying a
// Recording must not mutate payloads between capture and replay.
type Step struct {
	Kind    CommandKind
	Payload any
}

// Recording is the captured command stream of a completed session. It is
// produced by sessions opened with WithCapture and is immutable once the
// session ends: safe to replay from multiple goroutines, pass to
// ExecuteCommands on another recording, or inspect in tests.
type Recording struct {
	begin BeginInfo
	steps []Step
}

// Level returns the level the recording was made at.
func (r *Recording) Level() Level { return r.begin.Level }

// Inherited reports whether the recording was made with render pass
// inheritance. Only such recordings may be executed inside a render pass.
func (r *Recording) Inherited() bool { return r.begin.Inheritance != nil }

// Label returns the debug label the recording was opened with.
func (r *Recording) Label() string { return r.begin.Label }

// Len returns the number of captured commands.
func (r *Recording) Len() int { return len(r.steps) }

// Steps returns the captured command stream. The returned slice is shared;
// callers must treat it as read-only.
func (r *Recording) Steps() []Step { return r.steps }

// Replay feeds the captured stream into a sink: Begin, every step in
// order, then End. On any sink error the sink is aborted and the error
// returned with the failing step's position.
func (r *Recording) Replay(sink Sink) error {
	if sink == nil {
		return fmt.Errorf("replay %q: %w", r.begin.Label, ErrNilSink)
	}
	if err := sink.Begin(r.begin); err != nil {
		return fmt.Errorf("replay %q: begin: %w", r.begin.Label, err)
	}
	for i, st := range r.steps {
		if err := sink.Submit(st.Kind, st.Payload); err != nil {
			sink.Abort()
			return fmt.Errorf("replay %q: step %d (%s): %w", r.begin.Label, i, st.Kind, err)
		}
	}
	if err := sink.End(); err != nil {
		sink.Abort()
		return fmt.Errorf("replay %q: end: %w", r.begin.Label, err)
	}
	return nil
}
