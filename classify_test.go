package vkguard

import "testing"

func TestEveryKindClassified(t *testing.T) {
	for _, kind := range Kinds() {
		req := RequirementOf(kind)
		if req.Scope != ScopeCommon && req.Scope != ScopeOutside && req.Scope != ScopeInside {
			t.Errorf("%s: scope = %v, want a valid scope", kind, req.Scope)
		}
	}
}

func TestEveryKindNamed(t *testing.T) {
	for _, kind := range Kinds() {
		if kind.String() == "Unknown" {
			t.Errorf("kind %d has no name", kind)
		}
	}
}

func TestRequirementOfOutOfRange(t *testing.T) {
	req := RequirementOf(CommandKind(250))
	if req.Scope != scopeUnclassified {
		t.Errorf("out-of-range requirement scope = %v, want unclassified", req.Scope)
	}
	if req.Effect != EffectNone || req.Dependent {
		t.Errorf("out-of-range requirement = %+v, want zero value", req)
	}
}

func TestCommandKindString(t *testing.T) {
	tests := []struct {
		kind CommandKind
		want string
	}{
		{CmdBindPipeline, "BindPipeline"},
		{CmdDraw, "Draw"},
		{CmdBeginRenderPass, "BeginRenderPass"},
		{CmdPipelineBarrier, "PipelineBarrier"},
		{CmdExecuteCommands, "ExecuteCommands"},
		{CommandKind(250), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("CommandKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestScopeAssignments(t *testing.T) {
	tests := []struct {
		kind CommandKind
		want Scope
	}{
		{CmdBindPipeline, ScopeCommon},
		{CmdSetViewport, ScopeCommon},
		{CmdPipelineBarrier, ScopeCommon},
		{CmdBeginConditionalRendering, ScopeCommon},
		{CmdBeginRenderPass, ScopeOutside},
		{CmdDispatch, ScopeOutside},
		{CmdCopyBuffer, ScopeOutside},
		{CmdBuildAccelerationStructures, ScopeOutside},
		{CmdDraw, ScopeInside},
		{CmdDrawIndexed, ScopeInside},
		{CmdNextSubpass, ScopeInside},
		{CmdEndRenderPass, ScopeInside},
		{CmdClearAttachments, ScopeInside},
		{CmdBeginTransformFeedback, ScopeInside},
	}
	for _, tt := range tests {
		if got := RequirementOf(tt.kind).Scope; got != tt.want {
			t.Errorf("%s scope = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestDependentAssignments(t *testing.T) {
	dependent := []CommandKind{
		CmdPipelineBarrier, CmdPipelineBarrier2, CmdWaitEvents,
		CmdEndConditionalRendering, CmdEndTransformFeedback,
		CmdEndRenderPass, CmdEndRenderPass2,
		CmdEndQuery, CmdEndQueryIndexed,
	}
	for _, kind := range dependent {
		if !RequirementOf(kind).Dependent {
			t.Errorf("%s should be dependent", kind)
		}
	}
	independent := []CommandKind{CmdDraw, CmdBindPipeline, CmdCopyBuffer, CmdDispatch}
	for _, kind := range independent {
		if RequirementOf(kind).Dependent {
			t.Errorf("%s should not be dependent", kind)
		}
	}
}
