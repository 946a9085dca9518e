// Package vksink records validated commands into Vulkan command buffers
// via the goki/vulkan bindings.
//
// The sink holds a vk.CommandBuffer supplied by the caller; allocation and
// pool management stay on the application side. Importing the package
// registers it under the name "vulkan":
//
//	import _ "github.com/gogpu/vkguard/vksink"
//
//	sink, _ := vkguard.NewSink("vulkan")
//	sink.(*vksink.Sink).Attach(cmdBuffer)
package vksink

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/gogpu/vkguard"
)

func init() {
	vkguard.Register("vulkan", func() vkguard.Sink {
		return &Sink{}
	})
}

// Sink translates admitted commands into vk.Cmd* calls on an attached
// command buffer. It supports the common graphics, compute, and transfer
// commands directly; anything else goes through the Recorder interface.
type Sink struct {
	cmd   vk.CommandBuffer
	begun bool
}

// New returns a sink recording into the given command buffer.
func New(cmd vk.CommandBuffer) *Sink {
	return &Sink{cmd: cmd}
}

// Attach sets the command buffer to record into. Must be called before
// Begin on sinks created through the registry.
func (s *Sink) Attach(cmd vk.CommandBuffer) {
	s.cmd = cmd
}

// Begin starts native recording with vk.BeginCommandBuffer, translating
// the usage mode and any render pass inheritance into begin flags.
func (s *Sink) Begin(info vkguard.BeginInfo) error {
	if s.cmd == nil {
		return fmt.Errorf("begin %q: %w", info.Label, ErrNotAttached)
	}

	var flags vk.CommandBufferUsageFlags
	switch info.Usage {
	case vkguard.UsageOneTime:
		flags = vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit)
	case vkguard.UsageSimultaneous:
		flags = vk.CommandBufferUsageFlags(vk.CommandBufferUsageSimultaneousUseBit)
	}

	begin := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: flags,
	}
	if inh := info.Inheritance; inh != nil {
		nat, ok := inh.Raw.(*Inheritance)
		if !ok {
			return fmt.Errorf("begin %q: inheritance raw %T: %w", info.Label, inh.Raw, ErrBadPayload)
		}
		begin.Flags |= vk.CommandBufferUsageFlags(vk.CommandBufferUsageRenderPassContinueBit)
		begin.PInheritanceInfo = []vk.CommandBufferInheritanceInfo{{
			SType:       vk.StructureTypeCommandBufferInheritanceInfo,
			RenderPass:  nat.RenderPass,
			Subpass:     uint32(inh.Subpass),
			Framebuffer: nat.Framebuffer,
		}}
	}

	if err := vk.Error(vk.BeginCommandBuffer(s.cmd, &begin)); err != nil {
		return fmt.Errorf("vksink: begin %q: %w", info.Label, err)
	}
	s.begun = true
	return nil
}

// Submit records one command. Payloads are the vksink structs (Pipeline,
// Draw, Barrier, ...) except for render pass control, which uses the
// structural vkguard payloads with their Raw field pointing at the native
// half.
func (s *Sink) Submit(kind vkguard.CommandKind, payload any) error {
	switch kind {
	case vkguard.CmdBeginRenderPass, vkguard.CmdBeginRenderPass2:
		info, ok := payload.(*vkguard.RenderPassBeginInfo)
		if !ok {
			return badPayload(kind, payload)
		}
		nat, ok := info.Raw.(*RenderPass)
		if !ok {
			return badPayload(kind, info.Raw)
		}
		nat.Begin.SType = vk.StructureTypeRenderPassBeginInfo
		vk.CmdBeginRenderPass(s.cmd, &nat.Begin, contents(info.Contents))

	case vkguard.CmdNextSubpass, vkguard.CmdNextSubpass2:
		c := vkguard.ContentsInline
		if info, ok := payload.(*vkguard.NextSubpassInfo); ok {
			c = info.Contents
		}
		vk.CmdNextSubpass(s.cmd, contents(c))

	case vkguard.CmdEndRenderPass, vkguard.CmdEndRenderPass2:
		vk.CmdEndRenderPass(s.cmd)

	case vkguard.CmdBindPipeline:
		p, ok := payload.(*Pipeline)
		if !ok {
			return badPayload(kind, payload)
		}
		vk.CmdBindPipeline(s.cmd, p.BindPoint, p.Pipeline)

	case vkguard.CmdBindDescriptorSets:
		d, ok := payload.(*DescriptorSets)
		if !ok {
			return badPayload(kind, payload)
		}
		vk.CmdBindDescriptorSets(s.cmd, d.BindPoint, d.Layout,
			d.First, uint32(len(d.Sets)), d.Sets,
			uint32(len(d.DynamicOffsets)), d.DynamicOffsets)

	case vkguard.CmdBindVertexBuffers:
		b, ok := payload.(*VertexBuffers)
		if !ok {
			return badPayload(kind, payload)
		}
		vk.CmdBindVertexBuffers(s.cmd, b.First, uint32(len(b.Buffers)), b.Buffers, b.Offsets)

	case vkguard.CmdBindIndexBuffer:
		b, ok := payload.(*IndexBuffer)
		if !ok {
			return badPayload(kind, payload)
		}
		vk.CmdBindIndexBuffer(s.cmd, b.Buffer, b.Offset, b.Type)

	case vkguard.CmdSetViewport:
		v, ok := payload.(*Viewports)
		if !ok {
			return badPayload(kind, payload)
		}
		vk.CmdSetViewport(s.cmd, v.First, uint32(len(v.Viewports)), v.Viewports)

	case vkguard.CmdSetScissor:
		v, ok := payload.(*Scissors)
		if !ok {
			return badPayload(kind, payload)
		}
		vk.CmdSetScissor(s.cmd, v.First, uint32(len(v.Rects)), v.Rects)

	case vkguard.CmdPushConstants:
		p, ok := payload.(*PushConstants)
		if !ok {
			return badPayload(kind, payload)
		}
		vk.CmdPushConstants(s.cmd, p.Layout, p.Stages, p.Offset, p.Size, p.Values)

	case vkguard.CmdDraw:
		d, ok := payload.(*Draw)
		if !ok {
			return badPayload(kind, payload)
		}
		vk.CmdDraw(s.cmd, d.VertexCount, d.InstanceCount, d.FirstVertex, d.FirstInstance)

	case vkguard.CmdDrawIndexed:
		d, ok := payload.(*DrawIndexed)
		if !ok {
			return badPayload(kind, payload)
		}
		vk.CmdDrawIndexed(s.cmd, d.IndexCount, d.InstanceCount, d.FirstIndex, d.VertexOffset, d.FirstInstance)

	case vkguard.CmdDispatch:
		d, ok := payload.(*Dispatch)
		if !ok {
			return badPayload(kind, payload)
		}
		vk.CmdDispatch(s.cmd, d.X, d.Y, d.Z)

	case vkguard.CmdCopyBuffer:
		c, ok := payload.(*CopyBuffer)
		if !ok {
			return badPayload(kind, payload)
		}
		vk.CmdCopyBuffer(s.cmd, c.Src, c.Dst, uint32(len(c.Regions)), c.Regions)

	case vkguard.CmdCopyBufferToImage:
		c, ok := payload.(*CopyBufferToImage)
		if !ok {
			return badPayload(kind, payload)
		}
		vk.CmdCopyBufferToImage(s.cmd, c.Src, c.Dst, c.Layout, uint32(len(c.Regions)), c.Regions)

	case vkguard.CmdCopyImageToBuffer:
		c, ok := payload.(*CopyImageToBuffer)
		if !ok {
			return badPayload(kind, payload)
		}
		vk.CmdCopyImageToBuffer(s.cmd, c.Src, c.Layout, c.Dst, uint32(len(c.Regions)), c.Regions)

	case vkguard.CmdPipelineBarrier, vkguard.CmdPipelineBarrier2:
		b, ok := payload.(*Barrier)
		if !ok {
			return badPayload(kind, payload)
		}
		vk.CmdPipelineBarrier(s.cmd, b.SrcStages, b.DstStages, b.Flags,
			uint32(len(b.Memory)), b.Memory,
			uint32(len(b.Buffers)), b.Buffers,
			uint32(len(b.Images)), b.Images)

	case vkguard.CmdExecuteCommands:
		info, ok := payload.(*vkguard.ExecuteCommandsInfo)
		if !ok {
			return badPayload(kind, payload)
		}
		nat, ok := info.Raw.(*Secondaries)
		if !ok {
			return badPayload(kind, info.Raw)
		}
		vk.CmdExecuteCommands(s.cmd, uint32(len(nat.Buffers)), nat.Buffers)

	default:
		if r, ok := payload.(Recorder); ok {
			r.RecordCommands(s.cmd)
			return nil
		}
		return fmt.Errorf("%s: %w", kind, ErrUnsupportedCommand)
	}
	return nil
}

// End finishes native recording with vk.EndCommandBuffer.
func (s *Sink) End() error {
	if err := vk.Error(vk.EndCommandBuffer(s.cmd)); err != nil {
		return fmt.Errorf("vksink: end: %w", err)
	}
	s.begun = false
	return nil
}

// Abort resets the command buffer, discarding whatever was recorded. The
// pool must have been created with the reset-command-buffer flag. Safe to
// call repeatedly.
func (s *Sink) Abort() {
	if s.cmd == nil || !s.begun {
		return
	}
	s.begun = false
	if err := vk.Error(vk.ResetCommandBuffer(s.cmd, 0)); err != nil {
		vkguard.Logger().Warn("vksink: reset on abort failed", "err", err)
	}
}

// contents maps the structural subpass contents onto the native enum.
func contents(c vkguard.SubpassContents) vk.SubpassContents {
	if c == vkguard.ContentsSecondary {
		return vk.SubpassContentsSecondaryCommandBuffers
	}
	return vk.SubpassContentsInline
}

func badPayload(kind vkguard.CommandKind, payload any) error {
	return fmt.Errorf("%s: payload %T: %w", kind, payload, ErrBadPayload)
}
