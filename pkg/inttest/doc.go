// Package inttest enables writing of integration tests. SetupDB starts a
// PostgreSQL container, waits until it is ready, connects gorm, runs the
// migrations and cleans the container up when the test finishes.
package inttest
