package persistence

import "errors"

var (
	// ErrNoProjectID is returned when Connect is called without a project id.
	ErrNoProjectID = errors.New("persistence project id is not configured")
	// ErrNoEmulatorHost is returned when the emulator is enabled without a host.
	ErrNoEmulatorHost = errors.New("emulator enabled without emulator host")
	// ErrClientInit wraps errors from the Firestore client constructor.
	ErrClientInit = errors.New("error creating firestore client")
)
