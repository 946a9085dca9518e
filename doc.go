// Package vkguard validates command buffer recording for explicit GPU
// APIs. It models the recording rules of Vulkan-style command buffers as a
// state machine: which commands are legal outside a render pass, which
// inside, how subpasses advance, and how nested scopes such as conditional
// rendering and transform feedback must balance.
//
// # Overview
//
// Every command kind carries a static classification: the scope it
// requires (common, outside render pass, inside render pass) and the
// effect it has on the recording state. A Session validates each command
// against that table and the current state, forwards admitted commands to
// a driver Sink, and poisons itself on the first violation so that a
// broken recording can never reach the driver half-built.
//
// # Quick Start
//
//	s, err := vkguard.NewSession(vkguard.WithSink(driver))
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	s.Record(vkguard.CmdCopyBuffer, copyInfo)
//	s.Record(vkguard.CmdBeginRenderPass, &vkguard.RenderPassBeginInfo{SubpassCount: 1})
//	s.Record(vkguard.CmdBindPipeline, pipeline)
//	s.Record(vkguard.CmdDraw, drawInfo)
//	s.Record(vkguard.CmdEndRenderPass, nil)
//	if err := s.End(); err != nil {
//	    return err
//	}
//
// # Sinks
//
// Sinks translate admitted commands to a native API. Driver packages
// register themselves with Register, following the database/sql pattern:
//
//	import _ "github.com/gogpu/vkguard/vksink" // Vulkan driver
//
//	sink, err := vkguard.NewSink("vulkan")
//
// Recording with no sink validates only, which is useful in tests and for
// replaying captured streams later.
//
// # Pools
//
// A Pool manages many command buffers and enforces the one-recorder rule
// per handle. Distinct handles may record concurrently; a single Session
// must stay on one goroutine.
package vkguard
