package vkguard

import (
	"fmt"
	"sort"
	"sync"
)

// BeginInfo describes how a recording is opened, passed to the sink's
// Begin so drivers can translate it into their native begin call.
type BeginInfo struct {
	// Label is an optional debug name for the recording.
	Label string

	// Usage declares how the finished buffer may be submitted.
	Usage Usage

	// Level distinguishes primary from secondary recordings.
	Level Level

	// Inheritance is non-nil for secondary recordings that continue a
	// render pass begun by their primary.
	Inheritance *InheritanceInfo
}

// InheritanceInfo declares the render pass state a secondary recording
// inherits from its primary. A secondary recorded with inheritance starts
// inside the named subpass rather than outside any render pass.
type InheritanceInfo struct {
	// Subpass is the subpass index the secondary executes within.
	Subpass int

	// RenderPass mirrors the structural facts of the primary's render pass
	// so inside-scope validation works without the primary present.
	RenderPass RenderPassBeginInfo

	// Raw carries sink-specific inheritance data (native render pass and
	// framebuffer handles) opaque to validation.
	Raw any
}

// Sink receives the commands a session admits. Implementations translate
// them to a native API (vksink, halsink) or retain them for later replay.
//
// A sink sees a strictly ordered stream per session: one Begin, zero or
// more Submit calls, then exactly one of End or Abort. Sinks are not
// required to be safe for concurrent use; the session serializes access.
type Sink interface {
	// Begin opens the native recording.
	Begin(info BeginInfo) error

	// Submit translates one admitted command. An error poisons the session.
	Submit(kind CommandKind, payload any) error

	// End finalizes the native recording.
	End() error

	// Abort discards an in-flight recording. Called when the session is
	// poisoned or closed early. Must be safe to call after a Submit error.
	Abort()
}

// NopSink discards all commands. Useful for validation-only recording and
// as a default when no driver is attached.
type NopSink struct{}

func (NopSink) Begin(BeginInfo) error         { return nil }
func (NopSink) Submit(CommandKind, any) error { return nil }
func (NopSink) End() error                    { return nil }
func (NopSink) Abort()                        {}

// SinkFactory constructs a fresh sink. Driver packages register one under
// a name; NewSink invokes it once per session.
type SinkFactory func() Sink

var (
	registryMu sync.RWMutex
	sinks      = make(map[string]SinkFactory)
)

// Register makes a sink factory available under the given name, in the
// manner of database/sql drivers, usually from the driver package's init:
//
//	func init() {
//	    vkguard.Register("vulkan", func() vkguard.Sink {
//	        return &vksink.Sink{}
//	    })
//	}
//
// Register panics on a nil factory or a duplicate name, so a double
// registration surfaces at program start instead of silently replacing a
// driver.
func Register(name string, factory SinkFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("vkguard: Register factory is nil")
	}
	if _, dup := sinks[name]; dup {
		panic("vkguard: Register called twice for " + name)
	}
	sinks[name] = factory
}

// Unregister removes a sink from the registry. A no-op for unknown names;
// mainly for tests that register throwaway drivers.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(sinks, name)
}

// NewSink builds a sink instance from a registered factory:
//
//	import _ "github.com/gogpu/vkguard/vksink" // registers "vulkan"
//
//	sink, err := vkguard.NewSink("vulkan")
//
// An unknown name is an error; since drivers register from init, the usual
// cause is a missing blank import.
func NewSink(name string) (Sink, error) {
	registryMu.RLock()
	factory, ok := sinks[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("vkguard: unknown sink %q (forgotten import?)", name)
	}
	return factory(), nil
}

// MustSink is NewSink panicking on error, for callers that link the driver
// unconditionally.
func MustSink(name string) Sink {
	s, err := NewSink(name)
	if err != nil {
		panic(err)
	}
	return s
}

// Sinks returns the registered sink names, sorted.
func Sinks() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(sinks))
	for name := range sinks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether a sink is registered under the name.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := sinks[name]
	return ok
}
