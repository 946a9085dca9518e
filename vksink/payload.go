package vksink

import (
	"unsafe"

	vk "github.com/goki/vulkan"
)

// Recorder is the escape hatch for command kinds the sink has no built-in
// translation for. Payloads implementing it are recorded directly into the
// native buffer.
type Recorder interface {
	RecordCommands(cmd vk.CommandBuffer)
}

// RenderPass is the native half of a render pass begin. Set it as the Raw
// field of a vkguard.RenderPassBeginInfo.
type RenderPass struct {
	Begin vk.RenderPassBeginInfo
}

// Inheritance is the native half of render pass inheritance for secondary
// buffers. Set it as the Raw field of a vkguard.InheritanceInfo.
type Inheritance struct {
	RenderPass  vk.RenderPass
	Framebuffer vk.Framebuffer
}

// Pipeline binds a pipeline at a bind point.
type Pipeline struct {
	BindPoint vk.PipelineBindPoint
	Pipeline  vk.Pipeline
}

// DescriptorSets binds descriptor sets.
type DescriptorSets struct {
	BindPoint      vk.PipelineBindPoint
	Layout         vk.PipelineLayout
	First          uint32
	Sets           []vk.DescriptorSet
	DynamicOffsets []uint32
}

// VertexBuffers binds vertex buffers starting at a binding slot.
type VertexBuffers struct {
	First   uint32
	Buffers []vk.Buffer
	Offsets []vk.DeviceSize
}

// IndexBuffer binds the index buffer.
type IndexBuffer struct {
	Buffer vk.Buffer
	Offset vk.DeviceSize
	Type   vk.IndexType
}

// Viewports sets viewports dynamically.
type Viewports struct {
	First     uint32
	Viewports []vk.Viewport
}

// Scissors sets scissor rectangles dynamically.
type Scissors struct {
	First uint32
	Rects []vk.Rect2D
}

// PushConstants updates push constants.
// Note: Values must point at a local, stack-allocated value; cgo will
// complain if it points inside another Go structure.
type PushConstants struct {
	Layout vk.PipelineLayout
	Stages vk.ShaderStageFlags
	Offset uint32
	Size   uint32
	Values unsafe.Pointer
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
	VertexOffset  int32
	FirstInstance uint32
}

// Dispatch is a compute dispatch.
type Dispatch struct {
	X, Y, Z uint32
}

// CopyBuffer copies regions between buffers.
type CopyBuffer struct {
	Src     vk.Buffer
	Dst     vk.Buffer
	Regions []vk.BufferCopy
}

// CopyBufferToImage copies buffer regions into an image.
type CopyBufferToImage struct {
	Src     vk.Buffer
	Dst     vk.Image
	Layout  vk.ImageLayout
	Regions []vk.BufferImageCopy
}

// CopyImageToBuffer copies image regions into a buffer.
type CopyImageToBuffer struct {
	Src     vk.Image
	Layout  vk.ImageLayout
	Dst     vk.Buffer
	Regions []vk.BufferImageCopy
}

// Barrier is a pipeline barrier with any mix of global, buffer, and image
// memory barriers.
type Barrier struct {
	SrcStages vk.PipelineStageFlags
	DstStages vk.PipelineStageFlags
	Flags     vk.DependencyFlags
	Memory    []vk.MemoryBarrier
	Buffers   []vk.BufferMemoryBarrier
	Images    []vk.ImageMemoryBarrier
}

// Secondaries carries the native handles for ExecuteCommands. Set it as
// the Raw field of a vkguard.ExecuteCommandsInfo.
type Secondaries struct {
	Buffers []vk.CommandBuffer
}
