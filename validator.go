package vkguard

import "fmt"

// Config holds the validation knobs shared by a pool and its sessions.
// The zero value is permissive mode: static scope and depth balance checks
// only.
type Config struct {
	// Strict enables the checks that go beyond static scope: barrier
	// self-dependency predicates, query balance, and secondary recording
	// compatibility for ExecuteCommands. With Strict off those rules are the
	// caller's responsibility.
	Strict bool
}

// Validator decides, per command, admit or reject against a recording
// state, and applies the state transition on admission. It holds no state
// of its own beyond configuration and is freely shareable.
//
// Any rejection poisons the state: once a caller issues an illegal command
// the in-flight recording is unsalvageable, because a partially valid buffer
// submitted to the driver is undefined behavior with no rollback.
type Validator struct {
	cfg Config
}

// NewValidator returns a validator with the given configuration.
func NewValidator(cfg Config) *Validator {
	return &Validator{cfg: cfg}
}

// Strict reports whether strict mode checks are enabled.
func (v *Validator) Strict() bool { return v.cfg.Strict }

// Admit checks a command against the current recording state and, on
// success, applies its state transition. On failure the state is poisoned
// and the returned error wraps one of the sentinel validation errors.
func (v *Validator) Admit(st *State, kind CommandKind, payload any) error {
	if !st.Recording() {
		// NotRecording has nothing to poison; Ended and Invalid are
		// terminal and stay put.
		return fmt.Errorf("%s in phase %s: %w", kind, st.phase, ErrNotRecording)
	}

	req := RequirementOf(kind)

	switch req.Scope {
	case ScopeOutside:
		if st.phase == PhaseInside {
			st.invalidate()
			return fmt.Errorf("%s inside render pass (subpass %d): %w", kind, st.subpass, ErrWrongScope)
		}
	case ScopeInside:
		if st.phase == PhaseOutside {
			st.invalidate()
			return fmt.Errorf("%s outside render pass: %w", kind, ErrWrongScope)
		}
	case ScopeCommon:
		// Legal in either scope; effects below may still reject.
	default:
		st.invalidate()
		return fmt.Errorf("unclassified command kind %d: %w", kind, ErrWrongScope)
	}

	if req.Dependent {
		if err := v.checkDependent(st, kind, req); err != nil {
			st.invalidate()
			return err
		}
	}

	if err := v.apply(st, kind, req.Effect, payload); err != nil {
		st.invalidate()
		return err
	}
	return nil
}

// End checks that the state can be terminated: outside any render pass with
// no conditional rendering open. On success the state moves to PhaseEnded.
func (v *Validator) End(st *State) error {
	switch st.phase {
	case PhaseOutside:
		// fall through to depth checks
	case PhaseInside:
		// An inherited secondary records entirely inside its primary's
		// render pass and legitimately ends there.
		if !st.inherited {
			st.invalidate()
			return fmt.Errorf("end at subpass %d with render pass open: %w", st.subpass, ErrUnterminatedScope)
		}
	default:
		return fmt.Errorf("end in phase %s: %w", st.phase, ErrNotRecording)
	}
	if d := st.ConditionalDepth(); d > 0 {
		st.invalidate()
		return fmt.Errorf("end with conditional rendering depth %d: %w", d, ErrUnterminatedScope)
	}
	if st.xfbActive {
		st.invalidate()
		return fmt.Errorf("end with transform feedback active: %w", ErrUnterminatedScope)
	}
	if v.cfg.Strict && st.queryDepth > 0 {
		st.invalidate()
		return fmt.Errorf("end with %d open queries: %w", st.queryDepth, ErrUnterminatedScope)
	}
	st.end()
	return nil
}

// checkDependent evaluates the secondary predicates of dependent commands.
// Depth balance for end-type commands is always checked; predicates needing
// payload context (self-dependencies, query balance) apply in strict mode
// only.
func (v *Validator) checkDependent(st *State, kind CommandKind, req Requirement) error {
	switch req.Effect {
	case EffectEndConditional:
		if st.ConditionalDepth() == 0 {
			return fmt.Errorf("%s with conditional depth 0 in %s scope: %w", kind, st.phase, ErrUnbalancedScope)
		}
	case EffectEndTransformFeedback:
		if !st.xfbActive {
			return fmt.Errorf("%s while transform feedback inactive: %w", kind, ErrUnbalancedScope)
		}
	case EffectEndQuery:
		if v.cfg.Strict && st.queryDepth == 0 {
			return fmt.Errorf("%s with no open query: %w", kind, ErrUnbalancedScope)
		}
	case EffectEndRenderPass:
		if st.inherited {
			return fmt.Errorf("%s in inherited render pass: %w", kind, ErrWrongScope)
		}
		if st.subpass != st.subpassCount-1 {
			return fmt.Errorf("%s at subpass %d of %d: %w", kind, st.subpass, st.subpassCount, ErrUnbalancedScope)
		}
		if st.insideCondDepth > 0 {
			return fmt.Errorf("%s with conditional depth %d open in render pass: %w", kind, st.insideCondDepth, ErrUnbalancedScope)
		}
		if st.xfbActive {
			return fmt.Errorf("%s while transform feedback active: %w", kind, ErrUnbalancedScope)
		}
	default:
		// Barrier and wait forms: inside a render pass they require a
		// self-dependency declared for the current subpass.
		if v.cfg.Strict && st.phase == PhaseInside && !st.hasSelfDependency() {
			return fmt.Errorf("%s in subpass %d without self-dependency: %w", kind, st.subpass, ErrWrongScope)
		}
	}
	return nil
}

// apply performs the state transition of an admitted command.
func (v *Validator) apply(st *State, kind CommandKind, effect Effect, payload any) error {
	switch effect {
	case EffectNone:
		// Most commands: no nesting impact.

	case EffectBeginRenderPass:
		st.enterRenderPass(renderPassInfo(payload))

	case EffectNextSubpass:
		if st.inherited {
			return fmt.Errorf("%s in inherited render pass: %w", kind, ErrWrongScope)
		}
		if st.subpass >= st.subpassCount-1 {
			return fmt.Errorf("%s past last subpass (%d of %d): %w", kind, st.subpass, st.subpassCount, ErrUnbalancedScope)
		}
		if st.xfbActive {
			return fmt.Errorf("%s while transform feedback active: %w", kind, ErrUnbalancedScope)
		}
		st.subpass++

	case EffectEndRenderPass:
		st.exitRenderPass()

	case EffectBeginConditional:
		if st.phase == PhaseInside {
			st.insideCondDepth++
		} else {
			st.outsideCondDepth++
		}

	case EffectEndConditional:
		if st.phase == PhaseInside {
			st.insideCondDepth--
		} else {
			st.outsideCondDepth--
		}

	case EffectBeginTransformFeedback:
		if st.xfbActive {
			return fmt.Errorf("%s while already active: %w", kind, ErrUnbalancedScope)
		}
		st.xfbActive = true

	case EffectEndTransformFeedback:
		st.xfbActive = false

	case EffectBeginQuery:
		st.queryDepth++

	case EffectEndQuery:
		if st.queryDepth > 0 {
			st.queryDepth--
		}

	case EffectExecuteCommands:
		if v.cfg.Strict {
			return v.checkExecute(st, payload)
		}
	}
	return nil
}

// checkExecute validates the secondary recordings supplied to
// ExecuteCommands: each must have been recorded at secondary level, and when
// executed inside a render pass, recorded with render pass inheritance.
func (v *Validator) checkExecute(st *State, payload any) error {
	var info *ExecuteCommandsInfo
	switch p := payload.(type) {
	case *ExecuteCommandsInfo:
		info = p
	case ExecuteCommandsInfo:
		info = &p
	default:
		return fmt.Errorf("ExecuteCommands payload %T lacks recordings: %w", payload, ErrWrongScope)
	}
	for i, rec := range info.Recordings {
		if rec == nil {
			return fmt.Errorf("ExecuteCommands recording %d is nil: %w", i, ErrWrongScope)
		}
		if rec.Level() != LevelSecondary {
			return fmt.Errorf("ExecuteCommands recording %d is not secondary: %w", i, ErrWrongScope)
		}
		if st.phase == PhaseInside && !rec.Inherited() {
			return fmt.Errorf("ExecuteCommands recording %d lacks render pass inheritance: %w", i, ErrWrongScope)
		}
	}
	return nil
}
