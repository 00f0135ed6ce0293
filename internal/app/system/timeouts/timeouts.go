// Package timeouts centralizes context deadlines for database calls
// that carry their own budget instead of riding the router-level
// request timeout.
package timeouts

import "time"

const (
	ping  = 2 * time.Second
	short = 5 * time.Second
)

// Ping returns the deadline for liveness and readiness probes. Probes
// must answer fast so orchestrators don't mistake a slow query for a
// dead instance.
func Ping() time.Duration {
	return ping
}

// Short returns the deadline for single-document lookups, such as the
// per-request session user fetch.
func Short() time.Duration {
	return short
}
