// Copyright AuthorForge, 2026. All rights reserved.

package arcstore

import "errors"

var (
	// ErrGraphNotFound is returned when no graph exists for a project.
	ErrGraphNotFound = errors.New("graph not found")

	// ErrStoreClosed is returned when an operation runs against a store
	// that has not been opened or has been closed.
	ErrStoreClosed = errors.New("store not open")

	// ErrVersionConflict is returned when a save loses the
	// compare-and-swap on the graph's version counter.
	ErrVersionConflict = errors.New("graph version conflict")
)
