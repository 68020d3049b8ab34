package artifactfs

import "errors"

// Standard artifact errors. Operations may wrap these with additional
// context, so callers should compare with errors.Is.
var (
	// Content errors
	ErrNoContent = errors.New("artifactfs: no content written")
	ErrNotSource = errors.New("artifactfs: character content requires a source artifact")

	// Registry errors
	ErrNotExist = errors.New("artifactfs: artifact does not exist")
	ErrExist    = errors.New("artifactfs: artifact already exists")

	// Naming errors
	ErrInvalidName = errors.New("artifactfs: invalid artifact name")

	// I/O errors
	ErrClosed = errors.New("artifactfs: stream already closed")
)
