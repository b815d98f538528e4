// Package activeapp tracks the foreground application identifier the
// Engine keys its per-app rules on. Platform-specific files implement
// the actual poll; this file holds the shared interface.
package activeapp

import "github.com/gamacros/gamacrosd/internal/profile"

// Tracker reports the current foreground application identifier. Poll
// is called at the runner's tick cadence; CommonApp is returned when no
// foreground application can be determined.
type Tracker interface {
	Poll() (string, error)
	Close()
}

// fallback is used wherever a platform has no real tracker implementation.
type fallback struct{}

func (fallback) Poll() (string, error) { return string(profile.CommonApp), nil }
func (fallback) Close()                {}
