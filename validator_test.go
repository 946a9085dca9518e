package vkguard

import (
	"errors"
	"testing"
)

// step is one command in a scripted sequence.
type step struct {
	kind    CommandKind
	payload any
}

// runSequence feeds steps through a fresh validator and state, returning
// the first error.
func runSequence(t *testing.T, strict bool, steps []step) (*State, error) {
	t.Helper()
	v := NewValidator(Config{Strict: strict})
	st := NewState()
	st.beginRecording()
	for _, s := range steps {
		if err := v.Admit(st, s.kind, s.payload); err != nil {
			return st, err
		}
	}
	return st, nil
}

func rp(subpasses int, selfDeps ...uint32) *RenderPassBeginInfo {
	return &RenderPassBeginInfo{SubpassCount: subpasses, SelfDependencies: selfDeps}
}

func TestLegalFrameSequence(t *testing.T) {
	st, err := runSequence(t, true, []step{
		{CmdCopyBuffer, nil},
		{CmdPipelineBarrier, nil},
		{CmdBeginRenderPass, rp(2)},
		{CmdBindPipeline, nil},
		{CmdBindVertexBuffers, nil},
		{CmdSetViewport, nil},
		{CmdDraw, nil},
		{CmdNextSubpass, nil},
		{CmdDrawIndexed, nil},
		{CmdEndRenderPass, nil},
		{CmdDispatch, nil},
		{CmdCopyBufferToImage, nil},
	})
	if err != nil {
		t.Fatalf("legal sequence rejected: %v", err)
	}
	if st.Phase() != PhaseOutside {
		t.Errorf("phase = %v, want PhaseOutside", st.Phase())
	}

	v := NewValidator(Config{Strict: true})
	if err := v.End(st); err != nil {
		t.Fatalf("End() = %v, want nil", err)
	}
	if st.Phase() != PhaseEnded {
		t.Errorf("phase after End = %v, want PhaseEnded", st.Phase())
	}
}

func TestScopeViolations(t *testing.T) {
	tests := []struct {
		name  string
		steps []step
	}{
		{"draw outside render pass", []step{
			{CmdDraw, nil},
		}},
		{"draw indexed outside render pass", []step{
			{CmdDrawIndexed, nil},
		}},
		{"clear attachments outside render pass", []step{
			{CmdClearAttachments, nil},
		}},
		{"dispatch inside render pass", []step{
			{CmdBeginRenderPass, rp(1)},
			{CmdDispatch, nil},
		}},
		{"copy inside render pass", []step{
			{CmdBeginRenderPass, rp(1)},
			{CmdCopyBuffer, nil},
		}},
		{"nested render pass begin", []step{
			{CmdBeginRenderPass, rp(1)},
			{CmdBeginRenderPass, rp(1)},
		}},
		{"next subpass outside render pass", []step{
			{CmdNextSubpass, nil},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := runSequence(t, false, tt.steps)
			if !errors.Is(err, ErrWrongScope) {
				t.Fatalf("err = %v, want ErrWrongScope", err)
			}
			if st.Phase() != PhaseInvalid {
				t.Errorf("phase = %v, want PhaseInvalid", st.Phase())
			}
		})
	}
}

func TestSubpassAdvancement(t *testing.T) {
	t.Run("next past last subpass", func(t *testing.T) {
		st, err := runSequence(t, false, []step{
			{CmdBeginRenderPass, rp(2)},
			{CmdNextSubpass, nil},
			{CmdNextSubpass, nil},
		})
		if !errors.Is(err, ErrUnbalancedScope) {
			t.Fatalf("err = %v, want ErrUnbalancedScope", err)
		}
		if st.Phase() != PhaseInvalid {
			t.Errorf("phase = %v, want PhaseInvalid", st.Phase())
		}
	})

	t.Run("next in single-subpass pass", func(t *testing.T) {
		_, err := runSequence(t, false, []step{
			{CmdBeginRenderPass, rp(1)},
			{CmdNextSubpass, nil},
		})
		if !errors.Is(err, ErrUnbalancedScope) {
			t.Fatalf("err = %v, want ErrUnbalancedScope", err)
		}
	})

	t.Run("end before last subpass", func(t *testing.T) {
		_, err := runSequence(t, false, []step{
			{CmdBeginRenderPass, rp(3)},
			{CmdNextSubpass, nil},
			{CmdEndRenderPass, nil},
		})
		if !errors.Is(err, ErrUnbalancedScope) {
			t.Fatalf("err = %v, want ErrUnbalancedScope", err)
		}
	})

	t.Run("subpass index tracks advancement", func(t *testing.T) {
		v := NewValidator(Config{})
		st := NewState()
		st.beginRecording()
		must(t, v.Admit(st, CmdBeginRenderPass, rp(3)))
		if st.Subpass() != 0 {
			t.Errorf("subpass = %d, want 0", st.Subpass())
		}
		must(t, v.Admit(st, CmdNextSubpass, nil))
		must(t, v.Admit(st, CmdNextSubpass, nil))
		if st.Subpass() != 2 {
			t.Errorf("subpass = %d, want 2", st.Subpass())
		}
		must(t, v.Admit(st, CmdEndRenderPass, nil))
		if st.Phase() != PhaseOutside {
			t.Errorf("phase = %v, want PhaseOutside", st.Phase())
		}
	})
}

func TestConditionalRendering(t *testing.T) {
	t.Run("balanced outside", func(t *testing.T) {
		st, err := runSequence(t, false, []step{
			{CmdBeginConditionalRendering, nil},
			{CmdDispatch, nil},
			{CmdEndConditionalRendering, nil},
		})
		if err != nil {
			t.Fatalf("balanced conditional rejected: %v", err)
		}
		if st.ConditionalDepth() != 0 {
			t.Errorf("depth = %d, want 0", st.ConditionalDepth())
		}
	})

	t.Run("balanced inside render pass", func(t *testing.T) {
		_, err := runSequence(t, false, []step{
			{CmdBeginRenderPass, rp(1)},
			{CmdBeginConditionalRendering, nil},
			{CmdDraw, nil},
			{CmdEndConditionalRendering, nil},
			{CmdEndRenderPass, nil},
		})
		if err != nil {
			t.Fatalf("balanced conditional rejected: %v", err)
		}
	})

	t.Run("end without begin", func(t *testing.T) {
		_, err := runSequence(t, false, []step{
			{CmdEndConditionalRendering, nil},
		})
		if !errors.Is(err, ErrUnbalancedScope) {
			t.Fatalf("err = %v, want ErrUnbalancedScope", err)
		}
	})

	// A conditional begun outside a render pass cannot be ended inside
	// one: the inside scope has its own depth, which is zero.
	t.Run("cross-scope end", func(t *testing.T) {
		st, err := runSequence(t, false, []step{
			{CmdBeginConditionalRendering, nil},
			{CmdBeginRenderPass, rp(1)},
			{CmdEndConditionalRendering, nil},
		})
		if !errors.Is(err, ErrUnbalancedScope) {
			t.Fatalf("err = %v, want ErrUnbalancedScope", err)
		}
		if st.Phase() != PhaseInvalid {
			t.Errorf("phase = %v, want PhaseInvalid", st.Phase())
		}
	})

	t.Run("end render pass with open conditional", func(t *testing.T) {
		_, err := runSequence(t, false, []step{
			{CmdBeginRenderPass, rp(1)},
			{CmdBeginConditionalRendering, nil},
			{CmdEndRenderPass, nil},
		})
		if !errors.Is(err, ErrUnbalancedScope) {
			t.Fatalf("err = %v, want ErrUnbalancedScope", err)
		}
	})

	t.Run("end recording with open conditional", func(t *testing.T) {
		v := NewValidator(Config{})
		st := NewState()
		st.beginRecording()
		must(t, v.Admit(st, CmdBeginConditionalRendering, nil))
		if err := v.End(st); !errors.Is(err, ErrUnterminatedScope) {
			t.Fatalf("End() = %v, want ErrUnterminatedScope", err)
		}
		if st.Phase() != PhaseInvalid {
			t.Errorf("phase = %v, want PhaseInvalid", st.Phase())
		}
	})

	t.Run("nesting", func(t *testing.T) {
		st, err := runSequence(t, false, []step{
			{CmdBeginConditionalRendering, nil},
			{CmdBeginConditionalRendering, nil},
			{CmdEndConditionalRendering, nil},
		})
		if err != nil {
			t.Fatalf("nested conditional rejected: %v", err)
		}
		if st.ConditionalDepth() != 1 {
			t.Errorf("depth = %d, want 1", st.ConditionalDepth())
		}
	})
}

func TestTransformFeedback(t *testing.T) {
	t.Run("balanced", func(t *testing.T) {
		_, err := runSequence(t, false, []step{
			{CmdBeginRenderPass, rp(1)},
			{CmdBeginTransformFeedback, nil},
			{CmdDraw, nil},
			{CmdEndTransformFeedback, nil},
			{CmdEndRenderPass, nil},
		})
		if err != nil {
			t.Fatalf("balanced transform feedback rejected: %v", err)
		}
	})

	t.Run("begin outside render pass", func(t *testing.T) {
		_, err := runSequence(t, false, []step{
			{CmdBeginTransformFeedback, nil},
		})
		if !errors.Is(err, ErrWrongScope) {
			t.Fatalf("err = %v, want ErrWrongScope", err)
		}
	})

	t.Run("double begin", func(t *testing.T) {
		_, err := runSequence(t, false, []step{
			{CmdBeginRenderPass, rp(1)},
			{CmdBeginTransformFeedback, nil},
			{CmdBeginTransformFeedback, nil},
		})
		if !errors.Is(err, ErrUnbalancedScope) {
			t.Fatalf("err = %v, want ErrUnbalancedScope", err)
		}
	})

	t.Run("end without begin", func(t *testing.T) {
		_, err := runSequence(t, false, []step{
			{CmdBeginRenderPass, rp(1)},
			{CmdEndTransformFeedback, nil},
		})
		if !errors.Is(err, ErrUnbalancedScope) {
			t.Fatalf("err = %v, want ErrUnbalancedScope", err)
		}
	})

	t.Run("end render pass while active", func(t *testing.T) {
		_, err := runSequence(t, false, []step{
			{CmdBeginRenderPass, rp(1)},
			{CmdBeginTransformFeedback, nil},
			{CmdEndRenderPass, nil},
		})
		if !errors.Is(err, ErrUnbalancedScope) {
			t.Fatalf("err = %v, want ErrUnbalancedScope", err)
		}
	})

	t.Run("next subpass while active", func(t *testing.T) {
		_, err := runSequence(t, false, []step{
			{CmdBeginRenderPass, rp(2)},
			{CmdBeginTransformFeedback, nil},
			{CmdNextSubpass, nil},
		})
		if !errors.Is(err, ErrUnbalancedScope) {
			t.Fatalf("err = %v, want ErrUnbalancedScope", err)
		}
	})
}

func TestBarrierSelfDependency(t *testing.T) {
	t.Run("strict barrier without self-dependency", func(t *testing.T) {
		st, err := runSequence(t, true, []step{
			{CmdBeginRenderPass, rp(1)},
			{CmdPipelineBarrier, nil},
		})
		if !errors.Is(err, ErrWrongScope) {
			t.Fatalf("err = %v, want ErrWrongScope", err)
		}
		if st.Phase() != PhaseInvalid {
			t.Errorf("phase = %v, want PhaseInvalid", st.Phase())
		}
	})

	t.Run("strict barrier with self-dependency", func(t *testing.T) {
		_, err := runSequence(t, true, []step{
			{CmdBeginRenderPass, rp(1, 0)},
			{CmdPipelineBarrier, nil},
		})
		if err != nil {
			t.Fatalf("barrier with self-dependency rejected: %v", err)
		}
	})

	t.Run("self-dependency is per subpass", func(t *testing.T) {
		_, err := runSequence(t, true, []step{
			{CmdBeginRenderPass, rp(2, 0)},
			{CmdPipelineBarrier, nil},
			{CmdNextSubpass, nil},
			{CmdPipelineBarrier, nil},
		})
		if !errors.Is(err, ErrWrongScope) {
			t.Fatalf("err = %v, want ErrWrongScope", err)
		}
	})

	t.Run("permissive barrier inside", func(t *testing.T) {
		_, err := runSequence(t, false, []step{
			{CmdBeginRenderPass, rp(1)},
			{CmdPipelineBarrier, nil},
		})
		if err != nil {
			t.Fatalf("permissive barrier rejected: %v", err)
		}
	})

	t.Run("barrier outside never needs self-dependency", func(t *testing.T) {
		_, err := runSequence(t, true, []step{
			{CmdPipelineBarrier, nil},
		})
		if err != nil {
			t.Fatalf("outside barrier rejected: %v", err)
		}
	})
}

func TestQueryBalance(t *testing.T) {
	t.Run("strict end without begin", func(t *testing.T) {
		_, err := runSequence(t, true, []step{
			{CmdEndQuery, nil},
		})
		if !errors.Is(err, ErrUnbalancedScope) {
			t.Fatalf("err = %v, want ErrUnbalancedScope", err)
		}
	})

	t.Run("permissive end without begin", func(t *testing.T) {
		_, err := runSequence(t, false, []step{
			{CmdEndQuery, nil},
		})
		if err != nil {
			t.Fatalf("permissive query end rejected: %v", err)
		}
	})

	t.Run("strict end with open query", func(t *testing.T) {
		v := NewValidator(Config{Strict: true})
		st := NewState()
		st.beginRecording()
		must(t, v.Admit(st, CmdBeginQuery, nil))
		if err := v.End(st); !errors.Is(err, ErrUnterminatedScope) {
			t.Fatalf("End() = %v, want ErrUnterminatedScope", err)
		}
	})

	t.Run("balanced query spans render pass", func(t *testing.T) {
		v := NewValidator(Config{Strict: true})
		st := NewState()
		st.beginRecording()
		must(t, v.Admit(st, CmdBeginQuery, nil))
		must(t, v.Admit(st, CmdBeginRenderPass, rp(1)))
		must(t, v.Admit(st, CmdDraw, nil))
		must(t, v.Admit(st, CmdEndRenderPass, nil))
		must(t, v.Admit(st, CmdEndQuery, nil))
		if err := v.End(st); err != nil {
			t.Fatalf("End() = %v, want nil", err)
		}
	})
}

func TestPoisoningIsTerminal(t *testing.T) {
	v := NewValidator(Config{})
	st := NewState()
	st.beginRecording()

	if err := v.Admit(st, CmdDraw, nil); !errors.Is(err, ErrWrongScope) {
		t.Fatalf("err = %v, want ErrWrongScope", err)
	}

	// Everything after the first violation reports not-recording, even
	// commands that would have been legal.
	for _, kind := range []CommandKind{CmdCopyBuffer, CmdBeginRenderPass, CmdPipelineBarrier} {
		if err := v.Admit(st, kind, rp(1)); !errors.Is(err, ErrNotRecording) {
			t.Errorf("%s after poison: err = %v, want ErrNotRecording", kind, err)
		}
	}
	if err := v.End(st); !errors.Is(err, ErrNotRecording) {
		t.Errorf("End after poison = %v, want ErrNotRecording", err)
	}
	if st.Phase() != PhaseInvalid {
		t.Errorf("phase = %v, want PhaseInvalid", st.Phase())
	}
}

func TestEndWithOpenRenderPass(t *testing.T) {
	v := NewValidator(Config{})
	st := NewState()
	st.beginRecording()
	must(t, v.Admit(st, CmdBeginRenderPass, rp(1)))
	if err := v.End(st); !errors.Is(err, ErrUnterminatedScope) {
		t.Fatalf("End() = %v, want ErrUnterminatedScope", err)
	}
	if st.Phase() != PhaseInvalid {
		t.Errorf("phase = %v, want PhaseInvalid", st.Phase())
	}
}

func TestAdmitBeforeBegin(t *testing.T) {
	v := NewValidator(Config{})
	st := NewState()
	if err := v.Admit(st, CmdCopyBuffer, nil); !errors.Is(err, ErrNotRecording) {
		t.Fatalf("err = %v, want ErrNotRecording", err)
	}
	// Not begun, so there is nothing to poison.
	if st.Phase() != PhaseNotRecording {
		t.Errorf("phase = %v, want PhaseNotRecording", st.Phase())
	}
}

func TestInheritedRecording(t *testing.T) {
	newInherited := func(subpass int, info *RenderPassBeginInfo) *State {
		st := NewState()
		st.beginRecordingInherited(subpass, info)
		return st
	}

	t.Run("draw legal immediately", func(t *testing.T) {
		v := NewValidator(Config{})
		st := newInherited(0, rp(1))
		if err := v.Admit(st, CmdDraw, nil); err != nil {
			t.Fatalf("draw in inherited recording rejected: %v", err)
		}
	})

	t.Run("cannot end render pass", func(t *testing.T) {
		v := NewValidator(Config{})
		st := newInherited(0, rp(1))
		if err := v.Admit(st, CmdEndRenderPass, nil); !errors.Is(err, ErrWrongScope) {
			t.Fatalf("err = %v, want ErrWrongScope", err)
		}
	})

	t.Run("cannot advance subpass", func(t *testing.T) {
		v := NewValidator(Config{})
		st := newInherited(0, rp(2))
		if err := v.Admit(st, CmdNextSubpass, nil); !errors.Is(err, ErrWrongScope) {
			t.Fatalf("err = %v, want ErrWrongScope", err)
		}
	})

	t.Run("ends inside render pass", func(t *testing.T) {
		v := NewValidator(Config{})
		st := newInherited(0, rp(1))
		must(t, v.Admit(st, CmdDraw, nil))
		if err := v.End(st); err != nil {
			t.Fatalf("End() = %v, want nil", err)
		}
		if st.Phase() != PhaseEnded {
			t.Errorf("phase = %v, want PhaseEnded", st.Phase())
		}
	})

	t.Run("inherits self-dependencies", func(t *testing.T) {
		v := NewValidator(Config{Strict: true})
		st := newInherited(1, &RenderPassBeginInfo{SubpassCount: 2, SelfDependencies: []uint32{1}})
		if err := v.Admit(st, CmdPipelineBarrier, nil); err != nil {
			t.Fatalf("barrier in inherited subpass rejected: %v", err)
		}
	})
}

func TestExecuteCommandsStrict(t *testing.T) {
	secondary := &Recording{begin: BeginInfo{Level: LevelSecondary}}
	inherited := &Recording{begin: BeginInfo{
		Level:       LevelSecondary,
		Inheritance: &InheritanceInfo{},
	}}
	primary := &Recording{begin: BeginInfo{Level: LevelPrimary}}

	t.Run("secondary outside render pass", func(t *testing.T) {
		_, err := runSequence(t, true, []step{
			{CmdExecuteCommands, &ExecuteCommandsInfo{Recordings: []*Recording{secondary}}},
		})
		if err != nil {
			t.Fatalf("execute rejected: %v", err)
		}
	})

	t.Run("primary recording rejected", func(t *testing.T) {
		_, err := runSequence(t, true, []step{
			{CmdExecuteCommands, &ExecuteCommandsInfo{Recordings: []*Recording{primary}}},
		})
		if !errors.Is(err, ErrWrongScope) {
			t.Fatalf("err = %v, want ErrWrongScope", err)
		}
	})

	t.Run("inside requires inheritance", func(t *testing.T) {
		_, err := runSequence(t, true, []step{
			{CmdBeginRenderPass, rp(1)},
			{CmdExecuteCommands, &ExecuteCommandsInfo{Recordings: []*Recording{secondary}}},
		})
		if !errors.Is(err, ErrWrongScope) {
			t.Fatalf("err = %v, want ErrWrongScope", err)
		}
	})

	t.Run("inherited secondary inside", func(t *testing.T) {
		_, err := runSequence(t, true, []step{
			{CmdBeginRenderPass, rp(1)},
			{CmdExecuteCommands, &ExecuteCommandsInfo{Recordings: []*Recording{inherited}}},
		})
		if err != nil {
			t.Fatalf("execute rejected: %v", err)
		}
	})

	t.Run("permissive skips recording checks", func(t *testing.T) {
		_, err := runSequence(t, false, []step{
			{CmdExecuteCommands, &ExecuteCommandsInfo{Recordings: []*Recording{primary}}},
		})
		if err != nil {
			t.Fatalf("permissive execute rejected: %v", err)
		}
	})
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func BenchmarkAdmitDraw(b *testing.B) {
	v := NewValidator(Config{Strict: true})
	st := NewState()
	st.beginRecording()
	v.Admit(st, CmdBeginRenderPass, rp(1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := v.Admit(st, CmdDraw, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAdmitTransfer(b *testing.B) {
	v := NewValidator(Config{})
	st := NewState()
	st.beginRecording()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := v.Admit(st, CmdCopyBuffer, nil); err != nil {
			b.Fatal(err)
		}
	}
}
