// Package repository reads and writes catalog records in MySQL. The catalog
// itself works in memory; this package is only the loading and seeding
// collaborator used when DATA_SOURCE=mysql.
package repository

import "errors"

// ErrPitchNotFound is returned when no row matches the requested id.
// Handlers should translate this into an HTTP 404 response.
var ErrPitchNotFound = errors.New("pitch not found")

// ErrInvalidFeatures signals a features column that is not a JSON array.
var ErrInvalidFeatures = errors.New("invalid features column")
