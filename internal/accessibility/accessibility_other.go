//go:build !darwin

package accessibility

// EnsureTrusted is a no-op outside darwin: there is no equivalent
// accessibility gate on linux's uinput path.
func EnsureTrusted(prompt bool) bool {
	return true
}
