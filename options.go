package vkguard

// SessionOption configures a Session during creation.
// Use functional options to customize session behavior.
//
// Example:
//
//	// Validation-only recording, permissive checks
//	s, err := vkguard.NewSession()
//
//	// Strict recording into a Vulkan sink
//	s, err := vkguard.NewSession(
//	    vkguard.WithSink(driver),
//	    vkguard.WithStrict(),
//	    vkguard.WithUsage(vkguard.UsageOneTime),
//	)
type SessionOption func(*sessionOptions)

// sessionOptions holds optional configuration for session creation.
type sessionOptions struct {
	cfg     Config
	sink    Sink
	label   string
	usage   Usage
	level   Level
	inherit *InheritanceInfo
	capture bool
	done    func()
}

// defaultSessionOptions returns the default session options.
func defaultSessionOptions() sessionOptions {
	return sessionOptions{
		sink:  NopSink{}, // validation-only unless a driver is attached
		usage: UsageOneTime,
		level: LevelPrimary,
	}
}

// WithStrict enables the checks that need more context than static scope:
// barrier self-dependencies, query balance, and secondary recording
// compatibility for ExecuteCommands.
func WithStrict() SessionOption {
	return func(o *sessionOptions) {
		o.cfg.Strict = true
	}
}

// WithConfig sets the full validator configuration at once. Later options
// still override individual fields.
func WithConfig(cfg Config) SessionOption {
	return func(o *sessionOptions) {
		o.cfg = cfg
	}
}

// WithSink attaches a driver sink that receives every admitted command.
// Without it the session validates only and discards the stream.
func WithSink(s Sink) SessionOption {
	return func(o *sessionOptions) {
		if s != nil {
			o.sink = s
		}
	}
}

// WithLabel sets a debug name for the recording, forwarded to the sink.
func WithLabel(label string) SessionOption {
	return func(o *sessionOptions) {
		o.label = label
	}
}

// WithUsage declares how the finished recording may be submitted.
// The default is UsageOneTime.
func WithUsage(u Usage) SessionOption {
	return func(o *sessionOptions) {
		o.usage = u
	}
}

// WithSecondary marks the session as a secondary-level recording, suitable
// for execution from a primary via ExecuteCommands.
func WithSecondary() SessionOption {
	return func(o *sessionOptions) {
		o.level = LevelSecondary
	}
}

// WithInheritedRenderPass opens a secondary session inside the given
// subpass of a render pass begun by its primary. Implies WithSecondary.
// Recording starts in the inside-render-pass scope, and the session must
// not end the render pass itself.
func WithInheritedRenderPass(info *InheritanceInfo) SessionOption {
	return func(o *sessionOptions) {
		o.level = LevelSecondary
		o.inherit = info
	}
}

// withDone installs a hook fired once when the session reaches a terminal
// phase. Pool uses it to clear a handle's in-flight mark without reading
// the session's state from another goroutine.
func withDone(fn func()) SessionOption {
	return func(o *sessionOptions) {
		o.done = fn
	}
}

// WithCapture retains every admitted command so the finished session
// yields a Recording for replay or ExecuteCommands.
func WithCapture() SessionOption {
	return func(o *sessionOptions) {
		o.capture = true
	}
}
