package vkguard

// CommandKind identifies one command of the wrapped API at the level it is
// recorded into a command buffer. The set is closed: every kind declared here
// has exactly one entry in the classification table, checked at package
// initialization.
type CommandKind uint8

const (
	// Pipeline and resource binding
	CmdBindPipeline CommandKind = iota
	CmdBindDescriptorSets
	CmdBindIndexBuffer
	CmdBindVertexBuffers
	CmdBindVertexBuffers2
	CmdPushConstants
	CmdPushDescriptorSet

	// Fixed-function dynamic state
	CmdSetViewport
	CmdSetScissor
	CmdSetLineWidth
	CmdSetDepthBias
	CmdSetBlendConstants
	CmdSetDepthBounds
	CmdSetStencilCompareMask
	CmdSetStencilWriteMask
	CmdSetStencilReference
	CmdSetDeviceMask

	// Extended dynamic state
	CmdSetCullMode
	CmdSetFrontFace
	CmdSetPrimitiveTopology
	CmdSetViewportWithCount
	CmdSetScissorWithCount
	CmdSetDepthTestEnable
	CmdSetDepthWriteEnable
	CmdSetDepthCompareOp
	CmdSetDepthBoundsTestEnable
	CmdSetStencilTestEnable
	CmdSetStencilOp
	CmdSetRasterizerDiscardEnable
	CmdSetDepthBiasEnable
	CmdSetPrimitiveRestartEnable
	CmdSetLineStipple
	CmdSetSampleLocations
	CmdSetFragmentShadingRate
	CmdSetVertexInput
	CmdSetColorWriteEnable

	// Queries and timestamps
	CmdBeginQuery
	CmdEndQuery
	CmdBeginQueryIndexed
	CmdEndQueryIndexed
	CmdWriteTimestamp
	CmdWriteTimestamp2
	CmdResetQueryPool
	CmdCopyQueryPoolResults

	// Debug labels
	CmdBeginDebugLabel
	CmdEndDebugLabel
	CmdInsertDebugLabel

	// Synchronization
	CmdPipelineBarrier
	CmdPipelineBarrier2
	CmdWaitEvents
	CmdWaitEvents2
	CmdSetEvent
	CmdSetEvent2
	CmdResetEvent
	CmdResetEvent2

	// Conditional rendering
	CmdBeginConditionalRendering
	CmdEndConditionalRendering

	// Secondary buffer execution
	CmdExecuteCommands

	// Render pass management. The numbered revisions and dynamic rendering
	// are wire variants of one logical begin/end pair.
	CmdBeginRenderPass
	CmdBeginRenderPass2
	CmdBeginRendering
	CmdNextSubpass
	CmdNextSubpass2
	CmdEndRenderPass
	CmdEndRenderPass2
	CmdEndRendering

	// Drawing
	CmdDraw
	CmdDrawIndexed
	CmdDrawIndirect
	CmdDrawIndexedIndirect
	CmdDrawIndirectCount
	CmdDrawIndexedIndirectCount
	CmdDrawMulti
	CmdDrawMultiIndexed
	CmdDrawIndirectByteCount
	CmdClearAttachments

	// Transform feedback
	CmdBeginTransformFeedback
	CmdEndTransformFeedback

	// Compute dispatch
	CmdDispatch
	CmdDispatchBase
	CmdDispatchIndirect

	// Transfer
	CmdCopyBuffer
	CmdCopyBuffer2
	CmdCopyImage
	CmdCopyImage2
	CmdCopyBufferToImage
	CmdCopyBufferToImage2
	CmdCopyImageToBuffer
	CmdCopyImageToBuffer2
	CmdBlitImage
	CmdBlitImage2
	CmdResolveImage
	CmdResolveImage2
	CmdUpdateBuffer
	CmdFillBuffer
	CmdClearColorImage
	CmdClearDepthStencilImage

	// Acceleration structures and ray tracing
	CmdBuildAccelerationStructures
	CmdBuildAccelerationStructuresIndirect
	CmdCopyAccelerationStructure
	CmdCopyAccelerationStructureToMemory
	CmdCopyMemoryToAccelerationStructure
	CmdWriteAccelerationStructuresProperties
	CmdTraceRays
	CmdTraceRaysIndirect
	CmdSetRayTracingPipelineStackSize

	// commandKindCount is the number of declared command kinds. It must be
	// the last constant in the block.
	commandKindCount
)

// commandKindNames maps CommandKind values to their string representation.
var commandKindNames = [...]string{
	CmdBindPipeline:       "BindPipeline",
	CmdBindDescriptorSets: "BindDescriptorSets",
	CmdBindIndexBuffer:    "BindIndexBuffer",
	CmdBindVertexBuffers:  "BindVertexBuffers",
	CmdBindVertexBuffers2: "BindVertexBuffers2",
	CmdPushConstants:      "PushConstants",
	CmdPushDescriptorSet:  "PushDescriptorSet",

	CmdSetViewport:           "SetViewport",
	CmdSetScissor:            "SetScissor",
	CmdSetLineWidth:          "SetLineWidth",
	CmdSetDepthBias:          "SetDepthBias",
	CmdSetBlendConstants:     "SetBlendConstants",
	CmdSetDepthBounds:        "SetDepthBounds",
	CmdSetStencilCompareMask: "SetStencilCompareMask",
	CmdSetStencilWriteMask:   "SetStencilWriteMask",
	CmdSetStencilReference:   "SetStencilReference",
	CmdSetDeviceMask:         "SetDeviceMask",

	CmdSetCullMode:                "SetCullMode",
	CmdSetFrontFace:               "SetFrontFace",
	CmdSetPrimitiveTopology:       "SetPrimitiveTopology",
	CmdSetViewportWithCount:       "SetViewportWithCount",
	CmdSetScissorWithCount:        "SetScissorWithCount",
	CmdSetDepthTestEnable:         "SetDepthTestEnable",
	CmdSetDepthWriteEnable:        "SetDepthWriteEnable",
	CmdSetDepthCompareOp:          "SetDepthCompareOp",
	CmdSetDepthBoundsTestEnable:   "SetDepthBoundsTestEnable",
	CmdSetStencilTestEnable:       "SetStencilTestEnable",
	CmdSetStencilOp:               "SetStencilOp",
	CmdSetRasterizerDiscardEnable: "SetRasterizerDiscardEnable",
	CmdSetDepthBiasEnable:         "SetDepthBiasEnable",
	CmdSetPrimitiveRestartEnable:  "SetPrimitiveRestartEnable",
	CmdSetLineStipple:             "SetLineStipple",
	CmdSetSampleLocations:         "SetSampleLocations",
	CmdSetFragmentShadingRate:     "SetFragmentShadingRate",
	CmdSetVertexInput:             "SetVertexInput",
	CmdSetColorWriteEnable:        "SetColorWriteEnable",

	CmdBeginQuery:           "BeginQuery",
	CmdEndQuery:             "EndQuery",
	CmdBeginQueryIndexed:    "BeginQueryIndexed",
	CmdEndQueryIndexed:      "EndQueryIndexed",
	CmdWriteTimestamp:       "WriteTimestamp",
	CmdWriteTimestamp2:      "WriteTimestamp2",
	CmdResetQueryPool:       "ResetQueryPool",
	CmdCopyQueryPoolResults: "CopyQueryPoolResults",

	CmdBeginDebugLabel:  "BeginDebugLabel",
	CmdEndDebugLabel:    "EndDebugLabel",
	CmdInsertDebugLabel: "InsertDebugLabel",

	CmdPipelineBarrier:  "PipelineBarrier",
	CmdPipelineBarrier2: "PipelineBarrier2",
	CmdWaitEvents:       "WaitEvents",
	CmdWaitEvents2:      "WaitEvents2",
	CmdSetEvent:         "SetEvent",
	CmdSetEvent2:        "SetEvent2",
	CmdResetEvent:       "ResetEvent",
	CmdResetEvent2:      "ResetEvent2",

	CmdBeginConditionalRendering: "BeginConditionalRendering",
	CmdEndConditionalRendering:   "EndConditionalRendering",

	CmdExecuteCommands: "ExecuteCommands",

	CmdBeginRenderPass:  "BeginRenderPass",
	CmdBeginRenderPass2: "BeginRenderPass2",
	CmdBeginRendering:   "BeginRendering",
	CmdNextSubpass:      "NextSubpass",
	CmdNextSubpass2:     "NextSubpass2",
	CmdEndRenderPass:    "EndRenderPass",
	CmdEndRenderPass2:   "EndRenderPass2",
	CmdEndRendering:     "EndRendering",

	CmdDraw:                     "Draw",
	CmdDrawIndexed:              "DrawIndexed",
	CmdDrawIndirect:             "DrawIndirect",
	CmdDrawIndexedIndirect:      "DrawIndexedIndirect",
	CmdDrawIndirectCount:        "DrawIndirectCount",
	CmdDrawIndexedIndirectCount: "DrawIndexedIndirectCount",
	CmdDrawMulti:                "DrawMulti",
	CmdDrawMultiIndexed:         "DrawMultiIndexed",
	CmdDrawIndirectByteCount:    "DrawIndirectByteCount",
	CmdClearAttachments:         "ClearAttachments",

	CmdBeginTransformFeedback: "BeginTransformFeedback",
	CmdEndTransformFeedback:   "EndTransformFeedback",

	CmdDispatch:         "Dispatch",
	CmdDispatchBase:     "DispatchBase",
	CmdDispatchIndirect: "DispatchIndirect",

	CmdCopyBuffer:             "CopyBuffer",
	CmdCopyBuffer2:            "CopyBuffer2",
	CmdCopyImage:              "CopyImage",
	CmdCopyImage2:             "CopyImage2",
	CmdCopyBufferToImage:      "CopyBufferToImage",
	CmdCopyBufferToImage2:     "CopyBufferToImage2",
	CmdCopyImageToBuffer:      "CopyImageToBuffer",
	CmdCopyImageToBuffer2:     "CopyImageToBuffer2",
	CmdBlitImage:              "BlitImage",
	CmdBlitImage2:             "BlitImage2",
	CmdResolveImage:           "ResolveImage",
	CmdResolveImage2:          "ResolveImage2",
	CmdUpdateBuffer:           "UpdateBuffer",
	CmdFillBuffer:             "FillBuffer",
	CmdClearColorImage:        "ClearColorImage",
	CmdClearDepthStencilImage: "ClearDepthStencilImage",

	CmdBuildAccelerationStructures:           "BuildAccelerationStructures",
	CmdBuildAccelerationStructuresIndirect:   "BuildAccelerationStructuresIndirect",
	CmdCopyAccelerationStructure:             "CopyAccelerationStructure",
	CmdCopyAccelerationStructureToMemory:     "CopyAccelerationStructureToMemory",
	CmdCopyMemoryToAccelerationStructure:     "CopyMemoryToAccelerationStructure",
	CmdWriteAccelerationStructuresProperties: "WriteAccelerationStructuresProperties",
	CmdTraceRays:                             "TraceRays",
	CmdTraceRaysIndirect:                     "TraceRaysIndirect",
	CmdSetRayTracingPipelineStackSize:        "SetRayTracingPipelineStackSize",
}

// String returns the string representation of a CommandKind.
func (k CommandKind) String() string {
	if int(k) < len(commandKindNames) && commandKindNames[k] != "" {
		return commandKindNames[k]
	}
	return "Unknown"
}

// Kinds returns all declared command kinds in declaration order.
// Useful for table-driven exercises of the classification table.
func Kinds() []CommandKind {
	kinds := make([]CommandKind, commandKindCount)
	for i := range kinds {
		kinds[i] = CommandKind(i)
	}
	return kinds
}
