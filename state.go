package vkguard

// Phase identifies where a recording is in its timeline.
type Phase uint8

const (
	// PhaseNotRecording is the state before Begin.
	PhaseNotRecording Phase = iota

	// PhaseOutside is active recording outside any render pass instance.
	PhaseOutside

	// PhaseInside is active recording inside a render pass instance.
	PhaseInside

	// PhaseEnded is the terminal state after a successful End.
	PhaseEnded

	// PhaseInvalid is the terminal state after a rule violation. No command
	// transitions out of it; the session must be discarded.
	PhaseInvalid
)

// String returns the string representation of a Phase.
func (p Phase) String() string {
	switch p {
	case PhaseNotRecording:
		return "NotRecording"
	case PhaseOutside:
		return "OutsideRenderPass"
	case PhaseInside:
		return "InsideRenderPass"
	case PhaseEnded:
		return "Ended"
	case PhaseInvalid:
		return "Invalid"
	}
	return "Unknown"
}

// State is the recording state machine for one command buffer. It tracks
// scope nesting only; it has no command-specific knowledge. All mutation
// goes through the Validator, which keeps the state and the classification
// table from diverging.
//
// Conditional rendering depth is tracked per scope: a scope begun outside a
// render pass must be ended outside, and one begun inside must be ended
// inside the same render pass instance. Keeping two counters encodes that
// rule structurally instead of as a separate check.
type State struct {
	phase Phase

	// Conditional rendering depth for the outside scope.
	outsideCondDepth int

	// Render pass instance bookkeeping; meaningful only in PhaseInside.
	subpass          int
	subpassCount     int
	insideCondDepth  int
	xfbActive        bool
	selfDependencies []uint32

	// Open queries, across both scopes.
	queryDepth int

	// inherited marks a secondary recording that starts inside a render
	// pass begun by its primary. Such a recording both begins and ends in
	// PhaseInside and never exits the render pass itself.
	inherited bool
}

// NewState returns a state in PhaseNotRecording.
func NewState() *State {
	return &State{phase: PhaseNotRecording}
}

// Phase returns the current phase.
func (s *State) Phase() Phase { return s.phase }

// Subpass returns the current subpass index. Zero unless inside a
// render pass.
func (s *State) Subpass() int { return s.subpass }

// ConditionalDepth returns the conditional rendering depth of the current
// scope.
func (s *State) ConditionalDepth() int {
	if s.phase == PhaseInside {
		return s.insideCondDepth
	}
	return s.outsideCondDepth
}

// TransformFeedbackActive reports whether transform feedback is active.
func (s *State) TransformFeedbackActive() bool { return s.xfbActive }

// Recording reports whether the state accepts commands.
func (s *State) Recording() bool {
	return s.phase == PhaseOutside || s.phase == PhaseInside
}

// beginRecording moves NotRecording to Outside. Callers (the session) are
// responsible for only invoking it once.
func (s *State) beginRecording() {
	s.phase = PhaseOutside
}

// beginRecordingInherited moves NotRecording directly to Inside, for
// secondary buffers that execute within a primary's render pass instance.
func (s *State) beginRecordingInherited(subpass int, info *RenderPassBeginInfo) {
	s.phase = PhaseInside
	s.inherited = true
	s.subpass = subpass
	s.subpassCount = 1
	if info != nil && info.SubpassCount > 0 {
		s.subpassCount = info.SubpassCount
	}
	if info != nil {
		s.selfDependencies = info.SelfDependencies
	}
}

// enterRenderPass moves Outside to Inside at subpass zero.
func (s *State) enterRenderPass(info *RenderPassBeginInfo) {
	s.phase = PhaseInside
	s.subpass = 0
	s.subpassCount = 1
	s.insideCondDepth = 0
	s.xfbActive = false
	s.selfDependencies = nil
	if info != nil {
		if info.SubpassCount > 0 {
			s.subpassCount = info.SubpassCount
		}
		s.selfDependencies = info.SelfDependencies
	}
}

// exitRenderPass moves Inside back to Outside.
func (s *State) exitRenderPass() {
	s.phase = PhaseOutside
	s.subpass = 0
	s.subpassCount = 0
	s.insideCondDepth = 0
	s.xfbActive = false
	s.selfDependencies = nil
}

// hasSelfDependency reports whether the current subpass declared a
// self-dependency at render pass begin.
func (s *State) hasSelfDependency() bool {
	for _, sp := range s.selfDependencies {
		if int(sp) == s.subpass {
			return true
		}
	}
	return false
}

// invalidate poisons the state. Terminal.
func (s *State) invalidate() {
	s.phase = PhaseInvalid
}

// end moves Outside to Ended. The validator has already checked that no
// nested scope remains open.
func (s *State) end() {
	s.phase = PhaseEnded
}
