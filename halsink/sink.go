// Package halsink records validated commands through the gogpu/wgpu hal
// command encoder. It targets the WebGPU-flavored subset of the command
// set: single-subpass render passes, compute dispatches, buffer copies,
// and texture usage transitions. Subpass advancement, conditional
// rendering, and transform feedback have no hal equivalent and are
// rejected with ErrUnsupportedCommand.
//
// Importing the package registers it under the name "hal":
//
//	import _ "github.com/gogpu/vkguard/halsink"
//
//	sink, _ := vkguard.NewSink("hal")
//	sink.(*halsink.Sink).SetDevice(device)
package halsink

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vkguard"
)

func init() {
	vkguard.Register("hal", func() vkguard.Sink {
		return &Sink{}
	})
}

// Sink encodes admitted commands with a hal.CommandEncoder. One encoder
// is created per Begin and finished at End; the resulting command buffer
// is available from TakeCommandBuffer until the next Begin.
type Sink struct {
	device hal.Device
	enc    hal.CommandEncoder
	rp     hal.RenderPassEncoder
	cmdBuf hal.CommandBuffer
}

// New returns a sink encoding on the given device.
func New(device hal.Device) *Sink {
	return &Sink{device: device}
}

// SetDevice sets the device to encode on. Must be called before Begin on
// sinks created through the registry.
func (s *Sink) SetDevice(device hal.Device) {
	s.device = device
}

// Begin creates a command encoder and starts encoding.
func (s *Sink) Begin(info vkguard.BeginInfo) error {
	if s.device == nil {
		return fmt.Errorf("begin %q: %w", info.Label, ErrNoDevice)
	}
	if info.Inheritance != nil {
		// hal secondaries do not continue render passes.
		return fmt.Errorf("begin %q: render pass inheritance: %w", info.Label, ErrUnsupportedCommand)
	}
	if s.cmdBuf != nil {
		s.device.FreeCommandBuffer(s.cmdBuf)
		s.cmdBuf = nil
	}

	enc, err := s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: info.Label,
	})
	if err != nil {
		return fmt.Errorf("halsink: create command encoder: %w", err)
	}
	if err := enc.BeginEncoding(info.Label); err != nil {
		return fmt.Errorf("halsink: begin encoding: %w", err)
	}
	s.enc = enc
	return nil
}

// Submit encodes one command. Payloads are the halsink structs, except
// render pass begin, which uses vkguard.RenderPassBeginInfo with its Raw
// field pointing at a halsink.RenderPass.
func (s *Sink) Submit(kind vkguard.CommandKind, payload any) error {
	switch kind {
	case vkguard.CmdBeginRenderPass, vkguard.CmdBeginRendering:
		info, ok := payload.(*vkguard.RenderPassBeginInfo)
		if !ok {
			return badPayload(kind, payload)
		}
		nat, ok := info.Raw.(*RenderPass)
		if !ok {
			return badPayload(kind, info.Raw)
		}
		s.rp = s.enc.BeginRenderPass(nat.Desc)

	case vkguard.CmdEndRenderPass, vkguard.CmdEndRendering:
		if s.rp == nil {
			return fmt.Errorf("%s: %w", kind, ErrNoRenderPass)
		}
		s.rp.End()
		s.rp = nil

	case vkguard.CmdBindPipeline:
		p, ok := payload.(*Pipeline)
		if !ok {
			return badPayload(kind, payload)
		}
		if s.rp == nil {
			return fmt.Errorf("%s: %w", kind, ErrNoRenderPass)
		}
		s.rp.SetPipeline(p.Pipeline)

	case vkguard.CmdBindDescriptorSets:
		b, ok := payload.(*BindGroups)
		if !ok {
			return badPayload(kind, payload)
		}
		if s.rp == nil {
			return fmt.Errorf("%s: %w", kind, ErrNoRenderPass)
		}
		for i, g := range b.Groups {
			s.rp.SetBindGroup(b.First+uint32(i), g, nil)
		}

	case vkguard.CmdBindVertexBuffers:
		b, ok := payload.(*VertexBuffers)
		if !ok {
			return badPayload(kind, payload)
		}
		if s.rp == nil {
			return fmt.Errorf("%s: %w", kind, ErrNoRenderPass)
		}
		for i, buf := range b.Buffers {
			var off uint64
			if i < len(b.Offsets) {
				off = b.Offsets[i]
			}
			s.rp.SetVertexBuffer(b.First+uint32(i), buf, off)
		}

	case vkguard.CmdBindIndexBuffer:
		b, ok := payload.(*IndexBuffer)
		if !ok {
			return badPayload(kind, payload)
		}
		if s.rp == nil {
			return fmt.Errorf("%s: %w", kind, ErrNoRenderPass)
		}
		s.rp.SetIndexBuffer(b.Buffer, b.Format, b.Offset)

	case vkguard.CmdDraw:
		d, ok := payload.(*Draw)
		if !ok {
			return badPayload(kind, payload)
		}
		if s.rp == nil {
			return fmt.Errorf("%s: %w", kind, ErrNoRenderPass)
		}
		s.rp.Draw(d.VertexCount, d.InstanceCount, d.FirstVertex, d.FirstInstance)

	case vkguard.CmdDrawIndexed:
		d, ok := payload.(*DrawIndexed)
		if !ok {
			return badPayload(kind, payload)
		}
		if s.rp == nil {
			return fmt.Errorf("%s: %w", kind, ErrNoRenderPass)
		}
		s.rp.DrawIndexed(d.IndexCount, d.InstanceCount, d.FirstIndex, d.BaseVertex, d.FirstInstance)

	case vkguard.CmdDispatch:
		d, ok := payload.(*Dispatch)
		if !ok {
			return badPayload(kind, payload)
		}
		pass := s.enc.BeginComputePass(&hal.ComputePassDescriptor{
			Label: d.Label,
		})
		pass.SetPipeline(d.Pipeline)
		for i, g := range d.BindGroups {
			pass.SetBindGroup(uint32(i), g, nil)
		}
		pass.Dispatch(d.X, d.Y, d.Z)
		pass.End()

	case vkguard.CmdCopyBuffer:
		c, ok := payload.(*CopyBuffer)
		if !ok {
			return badPayload(kind, payload)
		}
		s.enc.CopyBufferToBuffer(c.Src, c.Dst, c.Regions)

	case vkguard.CmdPipelineBarrier, vkguard.CmdPipelineBarrier2:
		b, ok := payload.(*Barrier)
		if !ok {
			return badPayload(kind, payload)
		}
		if len(b.Textures) > 0 {
			s.enc.TransitionTextures(b.Textures)
		}

	default:
		return fmt.Errorf("%s: %w", kind, ErrUnsupportedCommand)
	}
	return nil
}

// End finishes encoding. The command buffer is retained for
// TakeCommandBuffer.
func (s *Sink) End() error {
	cmdBuf, err := s.enc.EndEncoding()
	if err != nil {
		s.enc = nil
		return fmt.Errorf("halsink: end encoding: %w", err)
	}
	s.cmdBuf = cmdBuf
	s.enc = nil
	return nil
}

// Abort discards the in-flight encoding.
func (s *Sink) Abort() {
	if s.rp != nil {
		s.rp.End()
		s.rp = nil
	}
	if s.enc != nil {
		s.enc.DiscardEncoding()
		s.enc = nil
	}
}

// TakeCommandBuffer returns the finished command buffer and clears it
// from the sink. The caller owns the buffer and must free it with
// hal.Device.FreeCommandBuffer after submission. Returns nil before a
// successful End.
func (s *Sink) TakeCommandBuffer() hal.CommandBuffer {
	b := s.cmdBuf
	s.cmdBuf = nil
	return b
}

func badPayload(kind vkguard.CommandKind, payload any) error {
	return fmt.Errorf("%s: payload %T: %w", kind, payload, ErrBadPayload)
}
