//go:build !darwin && !linux

package activeapp

// New returns a Tracker that always reports CommonApp; no platform
// tracker exists for this build target.
func New() (Tracker, error) {
	return fallback{}, nil
}
