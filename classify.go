package vkguard

import "fmt"

// Scope describes where in the recording timeline a command is legal,
// following the wrapped API's three-way render pass scoping: usable anywhere,
// only outside a render pass instance, or only inside one.
type Scope uint8

const (
	// scopeUnclassified is the zero value. No declared command kind may have
	// it; the init check below relies on this to detect table gaps.
	scopeUnclassified Scope = iota

	// ScopeCommon marks commands legal both inside and outside a render pass.
	ScopeCommon

	// ScopeOutside marks commands legal only outside a render pass instance.
	ScopeOutside

	// ScopeInside marks commands legal only inside a render pass instance.
	ScopeInside
)

// String returns the string representation of a Scope.
func (s Scope) String() string {
	switch s {
	case ScopeCommon:
		return "Common"
	case ScopeOutside:
		return "OutsideRenderPass"
	case ScopeInside:
		return "InsideRenderPass"
	}
	return "Unclassified"
}

// Effect describes the state transition a command applies on admission.
// Most commands have no effect on scope nesting; begin/end pairs are the
// exception. The render pass begin revisions (BeginRenderPass,
// BeginRenderPass2, BeginRendering) share one effect: the validator tracks
// "render pass open", not which wire variant opened it.
type Effect uint8

const (
	EffectNone Effect = iota
	EffectBeginRenderPass
	EffectNextSubpass
	EffectEndRenderPass
	EffectBeginConditional
	EffectEndConditional
	EffectBeginTransformFeedback
	EffectEndTransformFeedback
	EffectBeginQuery
	EffectEndQuery
	EffectExecuteCommands
)

// Requirement is the classification of one command kind: its legal scope,
// the state transition it applies, and whether its legality additionally
// depends on a secondary condition beyond static scope (evaluated only in
// strict mode, see Config).
type Requirement struct {
	Scope  Scope
	Effect Effect

	// Dependent marks commands whose legality depends on more than the
	// current scope: end-type commands needing a matching open begin, and
	// barrier forms that inside a render pass require a subpass
	// self-dependency declared for the current subpass.
	Dependent bool
}

// requirements is the classification table, derived from the wrapped API
// specification's per-command render pass scoping rules. Dense array indexed
// by CommandKind; pure data.
var requirements = [commandKindCount]Requirement{
	CmdBindPipeline:       {Scope: ScopeCommon},
	CmdBindDescriptorSets: {Scope: ScopeCommon},
	CmdBindIndexBuffer:    {Scope: ScopeCommon},
	CmdBindVertexBuffers:  {Scope: ScopeCommon},
	CmdBindVertexBuffers2: {Scope: ScopeCommon},
	CmdPushConstants:      {Scope: ScopeCommon},
	CmdPushDescriptorSet:  {Scope: ScopeCommon},

	CmdSetViewport:           {Scope: ScopeCommon},
	CmdSetScissor:            {Scope: ScopeCommon},
	CmdSetLineWidth:          {Scope: ScopeCommon},
	CmdSetDepthBias:          {Scope: ScopeCommon},
	CmdSetBlendConstants:     {Scope: ScopeCommon},
	CmdSetDepthBounds:        {Scope: ScopeCommon},
	CmdSetStencilCompareMask: {Scope: ScopeCommon},
	CmdSetStencilWriteMask:   {Scope: ScopeCommon},
	CmdSetStencilReference:   {Scope: ScopeCommon},
	CmdSetDeviceMask:         {Scope: ScopeCommon},

	CmdSetCullMode:                {Scope: ScopeCommon},
	CmdSetFrontFace:               {Scope: ScopeCommon},
	CmdSetPrimitiveTopology:       {Scope: ScopeCommon},
	CmdSetViewportWithCount:       {Scope: ScopeCommon},
	CmdSetScissorWithCount:        {Scope: ScopeCommon},
	CmdSetDepthTestEnable:         {Scope: ScopeCommon},
	CmdSetDepthWriteEnable:        {Scope: ScopeCommon},
	CmdSetDepthCompareOp:          {Scope: ScopeCommon},
	CmdSetDepthBoundsTestEnable:   {Scope: ScopeCommon},
	CmdSetStencilTestEnable:       {Scope: ScopeCommon},
	CmdSetStencilOp:               {Scope: ScopeCommon},
	CmdSetRasterizerDiscardEnable: {Scope: ScopeCommon},
	CmdSetDepthBiasEnable:         {Scope: ScopeCommon},
	CmdSetPrimitiveRestartEnable:  {Scope: ScopeCommon},
	CmdSetLineStipple:             {Scope: ScopeCommon},
	CmdSetSampleLocations:         {Scope: ScopeCommon},
	CmdSetFragmentShadingRate:     {Scope: ScopeCommon},
	CmdSetVertexInput:             {Scope: ScopeCommon},
	CmdSetColorWriteEnable:        {Scope: ScopeCommon},

	CmdBeginQuery:           {Scope: ScopeCommon, Effect: EffectBeginQuery},
	CmdEndQuery:             {Scope: ScopeCommon, Effect: EffectEndQuery, Dependent: true},
	CmdBeginQueryIndexed:    {Scope: ScopeCommon, Effect: EffectBeginQuery},
	CmdEndQueryIndexed:      {Scope: ScopeCommon, Effect: EffectEndQuery, Dependent: true},
	CmdWriteTimestamp:       {Scope: ScopeCommon},
	CmdWriteTimestamp2:      {Scope: ScopeCommon},
	CmdResetQueryPool:       {Scope: ScopeOutside},
	CmdCopyQueryPoolResults: {Scope: ScopeOutside},

	CmdBeginDebugLabel:  {Scope: ScopeCommon},
	CmdEndDebugLabel:    {Scope: ScopeCommon},
	CmdInsertDebugLabel: {Scope: ScopeCommon},

	// Barrier and wait forms are legal in both scopes, but inside a render
	// pass only when the render pass declares a self-dependency for the
	// current subpass. That secondary predicate is the Dependent flag.
	CmdPipelineBarrier:  {Scope: ScopeCommon, Dependent: true},
	CmdPipelineBarrier2: {Scope: ScopeCommon, Dependent: true},
	CmdWaitEvents:       {Scope: ScopeCommon, Dependent: true},
	CmdWaitEvents2:      {Scope: ScopeCommon, Dependent: true},
	CmdSetEvent:         {Scope: ScopeOutside},
	CmdSetEvent2:        {Scope: ScopeOutside},
	CmdResetEvent:       {Scope: ScopeOutside},
	CmdResetEvent2:      {Scope: ScopeOutside},

	CmdBeginConditionalRendering: {Scope: ScopeCommon, Effect: EffectBeginConditional},
	CmdEndConditionalRendering:   {Scope: ScopeCommon, Effect: EffectEndConditional, Dependent: true},

	CmdExecuteCommands: {Scope: ScopeCommon, Effect: EffectExecuteCommands},

	CmdBeginRenderPass:  {Scope: ScopeOutside, Effect: EffectBeginRenderPass},
	CmdBeginRenderPass2: {Scope: ScopeOutside, Effect: EffectBeginRenderPass},
	CmdBeginRendering:   {Scope: ScopeOutside, Effect: EffectBeginRenderPass},
	CmdNextSubpass:      {Scope: ScopeInside, Effect: EffectNextSubpass},
	CmdNextSubpass2:     {Scope: ScopeInside, Effect: EffectNextSubpass},
	CmdEndRenderPass:    {Scope: ScopeInside, Effect: EffectEndRenderPass, Dependent: true},
	CmdEndRenderPass2:   {Scope: ScopeInside, Effect: EffectEndRenderPass, Dependent: true},
	CmdEndRendering:     {Scope: ScopeInside, Effect: EffectEndRenderPass, Dependent: true},

	CmdDraw:                     {Scope: ScopeInside},
	CmdDrawIndexed:              {Scope: ScopeInside},
	CmdDrawIndirect:             {Scope: ScopeInside},
	CmdDrawIndexedIndirect:      {Scope: ScopeInside},
	CmdDrawIndirectCount:        {Scope: ScopeInside},
	CmdDrawIndexedIndirectCount: {Scope: ScopeInside},
	CmdDrawMulti:                {Scope: ScopeInside},
	CmdDrawMultiIndexed:         {Scope: ScopeInside},
	CmdDrawIndirectByteCount:    {Scope: ScopeInside},
	CmdClearAttachments:         {Scope: ScopeInside},

	CmdBeginTransformFeedback: {Scope: ScopeInside, Effect: EffectBeginTransformFeedback},
	CmdEndTransformFeedback:   {Scope: ScopeInside, Effect: EffectEndTransformFeedback, Dependent: true},

	CmdDispatch:         {Scope: ScopeOutside},
	CmdDispatchBase:     {Scope: ScopeOutside},
	CmdDispatchIndirect: {Scope: ScopeOutside},

	CmdCopyBuffer:             {Scope: ScopeOutside},
	CmdCopyBuffer2:            {Scope: ScopeOutside},
	CmdCopyImage:              {Scope: ScopeOutside},
	CmdCopyImage2:             {Scope: ScopeOutside},
	CmdCopyBufferToImage:      {Scope: ScopeOutside},
	CmdCopyBufferToImage2:     {Scope: ScopeOutside},
	CmdCopyImageToBuffer:      {Scope: ScopeOutside},
	CmdCopyImageToBuffer2:     {Scope: ScopeOutside},
	CmdBlitImage:              {Scope: ScopeOutside},
	CmdBlitImage2:             {Scope: ScopeOutside},
	CmdResolveImage:           {Scope: ScopeOutside},
	CmdResolveImage2:          {Scope: ScopeOutside},
	CmdUpdateBuffer:           {Scope: ScopeOutside},
	CmdFillBuffer:             {Scope: ScopeOutside},
	CmdClearColorImage:        {Scope: ScopeOutside},
	CmdClearDepthStencilImage: {Scope: ScopeOutside},

	CmdBuildAccelerationStructures:           {Scope: ScopeOutside},
	CmdBuildAccelerationStructuresIndirect:   {Scope: ScopeOutside},
	CmdCopyAccelerationStructure:             {Scope: ScopeOutside},
	CmdCopyAccelerationStructureToMemory:     {Scope: ScopeOutside},
	CmdCopyMemoryToAccelerationStructure:     {Scope: ScopeOutside},
	CmdWriteAccelerationStructuresProperties: {Scope: ScopeOutside},
	CmdTraceRays:                             {Scope: ScopeOutside},
	CmdTraceRaysIndirect:                     {Scope: ScopeOutside},
	CmdSetRayTracingPipelineStackSize:        {Scope: ScopeOutside},
}

func init() {
	// The table must be total over the closed kind set. A kind added to the
	// enum without a classification shows up here as the zero Scope.
	for k := CommandKind(0); k < commandKindCount; k++ {
		if requirements[k].Scope == scopeUnclassified {
			panic(fmt.Sprintf("vkguard: command kind %d (%s) has no classification", k, k))
		}
		if int(k) >= len(commandKindNames) || commandKindNames[k] == "" {
			panic(fmt.Sprintf("vkguard: command kind %d has no name", k))
		}
	}
}

// RequirementOf returns the classification for a command kind.
// It is total over the declared kind set; unknown kinds (possible only
// through arithmetic on CommandKind values) report an unclassified scope
// that admits nothing.
func RequirementOf(kind CommandKind) Requirement {
	if kind >= commandKindCount {
		return Requirement{}
	}
	return requirements[kind]
}
