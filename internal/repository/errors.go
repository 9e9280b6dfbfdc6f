// Package repository implements MySQL persistence for the seat
// allocation engine. This file defines error types that are reused
// across multiple repositories. These sentinel values allow higher
// layers such as handlers to distinguish between different failure
// scenarios without inspecting driver errors.
package repository

import "errors"

// ErrTrainNotFound is returned when a train lookup yields no rows.
// Handlers should translate this into an HTTP 404 response.
var ErrTrainNotFound = errors.New("train not found")
