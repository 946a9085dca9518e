package halsink

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// RenderPass is the native half of a render pass begin. Set it as the Raw
// field of a vkguard.RenderPassBeginInfo.
type RenderPass struct {
	Desc *hal.RenderPassDescriptor
}

// Pipeline binds a render pipeline on the open render pass.
type Pipeline struct {
	Pipeline hal.RenderPipeline
}

// BindGroups binds bind groups starting at a group index.
type BindGroups struct {
	First  uint32
	Groups []hal.BindGroup
}

// VertexBuffers binds vertex buffers starting at a slot.
type VertexBuffers struct {
	First   uint32
	Buffers []hal.Buffer
	Offsets []uint64
}

// IndexBuffer binds the index buffer.
type IndexBuffer struct {
	Buffer hal.Buffer
	Format gputypes.IndexFormat
	Offset uint64
}

// Draw is a non-indexed draw.
type Draw struct {
	VertexCount   uint32
	InstanceCount uint32
	FirstVertex   uint32
	FirstInstance uint32
}

// DrawIndexed is an indexed draw.
type DrawIndexed struct {
	IndexCount    uint32
	InstanceCount uint32
	FirstIndex    uint32
	BaseVertex    int32
	FirstInstance uint32
}

// Dispatch is one compute dispatch. The hal layer has no persistent
// compute pass, so the payload carries everything and the sink opens a
// transient pass around it.
type Dispatch struct {
	Label      string
	Pipeline   hal.ComputePipeline
	BindGroups []hal.BindGroup
	X, Y, Z    uint32
}

// CopyBuffer copies regions between buffers.
type CopyBuffer struct {
	Src     hal.Buffer
	Dst     hal.Buffer
	Regions []hal.BufferCopy
}

// Barrier transitions texture usage. It is the hal expression of a
// pipeline barrier; pure execution barriers are a no-op at this layer.
type Barrier struct {
	Textures []hal.TextureBarrier
}
