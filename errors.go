package vkguard

import "errors"

// Validation errors. Every failure poisons the session that produced it:
// a partially valid command stream cannot be rolled back to a valid prefix,
// so the only recovery is to discard the session and re-record.
var (
	// ErrNotRecording is returned when a command is issued against a session
	// that is not in an active recording state (never begun, already ended,
	// or poisoned by an earlier violation).
	ErrNotRecording = errors.New("vkguard: session not recording")

	// ErrWrongScope is returned when a command is issued in a render pass
	// scope that forbids it, including barrier forms issued inside a render
	// pass without a declared subpass self-dependency.
	ErrWrongScope = errors.New("vkguard: command not legal in current scope")

	// ErrUnbalancedScope is returned when an end-type command has no matching
	// open begin: ending conditional rendering at depth zero, ending transform
	// feedback while inactive, or closing a render pass with nested scopes
	// still open.
	ErrUnbalancedScope = errors.New("vkguard: unbalanced begin/end scope")

	// ErrUnterminatedScope is returned by End when a render pass or
	// conditional rendering scope is still open.
	ErrUnterminatedScope = errors.New("vkguard: scope still open at end of recording")

	// ErrAlreadyRecording is returned by Pool.Begin when the handle already
	// has a live recording session.
	ErrAlreadyRecording = errors.New("vkguard: handle already has a live recording")
)

// Pool and sink errors.
var (
	// ErrUnknownHandle is returned for handles not allocated from the pool
	// or already freed.
	ErrUnknownHandle = errors.New("vkguard: unknown command buffer handle")

	// ErrPoolClosed is returned when operating on a closed pool.
	ErrPoolClosed = errors.New("vkguard: pool is closed")

	// ErrHandleBusy is returned by Reset and Free while a recording session
	// is live on the handle.
	ErrHandleBusy = errors.New("vkguard: handle has a live recording")

	// ErrNilSink is returned when a session is begun without a sink.
	ErrNilSink = errors.New("vkguard: sink is nil")
)
