package vkguard

// Command payloads are opaque to the validator with two exceptions: render
// pass begins declare the structure of the pass (the validator needs it to
// check NextSubpass/End balance and barrier self-dependencies), and
// ExecuteCommands carries the secondary recordings being stitched in.
// Everything else travels untouched to the sink, which type-asserts its own
// payload types.

// SubpassContents selects how a subpass's commands are provided: recorded
// inline, or supplied by executed secondary buffers.
type SubpassContents uint8

const (
	// ContentsInline records subpass commands directly in this buffer.
	ContentsInline SubpassContents = iota

	// ContentsSecondary supplies subpass commands through ExecuteCommands.
	ContentsSecondary
)

// String returns the string representation of a SubpassContents.
func (c SubpassContents) String() string {
	if c == ContentsSecondary {
		return "SecondaryBuffers"
	}
	return "Inline"
}

// RenderPassBeginInfo declares the structure of a render pass instance to
// the validator. Driver-specific begin parameters (pass handle, framebuffer,
// clear values) ride along in Raw and are interpreted by the sink alone.
//
// A begin recorded with a payload of any other type is treated as a single
// subpass with no self-dependencies.
type RenderPassBeginInfo struct {
	// SubpassCount is the number of declared subpasses. Values below one are
	// treated as one.
	SubpassCount int

	// SelfDependencies lists the subpass indices for which the render pass
	// declares a self-dependency. Barrier commands inside the pass are legal
	// only in those subpasses (checked in strict mode).
	SelfDependencies []uint32

	// Contents selects inline or secondary-buffer provision for the first
	// subpass.
	Contents SubpassContents

	// Raw is the sink-specific begin payload.
	Raw any
}

// NextSubpassInfo optionally accompanies NextSubpass to switch contents
// provision for the following subpass.
type NextSubpassInfo struct {
	Contents SubpassContents

	Raw any
}

// ExecuteCommandsInfo is the payload of ExecuteCommands: the secondary
// recordings to stitch into this buffer at the current point.
type ExecuteCommandsInfo struct {
	Recordings []*Recording

	// Raw carries sink-specific data, typically the native secondary
	// command buffer handles, opaque to validation.
	Raw any
}

// renderPassInfo extracts the structural begin info from a payload,
// or nil when the caller supplied an opaque payload.
func renderPassInfo(payload any) *RenderPassBeginInfo {
	if info, ok := payload.(*RenderPassBeginInfo); ok {
		return info
	}
	if info, ok := payload.(RenderPassBeginInfo); ok {
		return &info
	}
	return nil
}
