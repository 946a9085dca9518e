package vksink

import "errors"

var (
	// ErrNotAttached is returned when recording starts before a native
	// command buffer has been attached with Attach.
	ErrNotAttached = errors.New("vksink: no command buffer attached")

	// ErrUnsupportedCommand is returned for command kinds the sink has no
	// translation for and whose payload does not implement Recorder.
	ErrUnsupportedCommand = errors.New("vksink: unsupported command")

	// ErrBadPayload is returned when a command's payload is not the type
	// the sink expects for that kind.
	ErrBadPayload = errors.New("vksink: wrong payload type")
)
