package halsink

import "errors"

var (
	// ErrNoDevice is returned when recording starts before a hal.Device
	// has been set with SetDevice.
	ErrNoDevice = errors.New("halsink: no device set")

	// ErrUnsupportedCommand is returned for command kinds the hal layer
	// cannot express, such as subpass advancement.
	ErrUnsupportedCommand = errors.New("halsink: unsupported command")

	// ErrBadPayload is returned when a command's payload is not the type
	// the sink expects for that kind.
	ErrBadPayload = errors.New("halsink: wrong payload type")

	// ErrNoRenderPass is returned when a draw-scope command arrives with
	// no hal render pass encoder open.
	ErrNoRenderPass = errors.New("halsink: no render pass open")
)
