//go:build darwin

// Package accessibility checks (and, on darwin, can prompt for) the OS
// permission gamacrosd needs before it can synthesize input events.
package accessibility

/*
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation
#include <ApplicationServices/ApplicationServices.h>

static int gamacros_ax_trusted(int prompt) {
    const void *keys[1] = { kAXTrustedCheckOptionPrompt };
    const void *values[1] = { prompt ? kCFBooleanTrue : kCFBooleanFalse };
    CFDictionaryRef options = CFDictionaryCreate(
        NULL, keys, values, 1,
        &kCFTypeDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
    Boolean trusted = AXIsProcessTrustedWithOptions(options);
    CFRelease(options);
    return trusted ? 1 : 0;
}
*/
import "C"

// EnsureTrusted reports whether the process currently holds the
// Accessibility permission macOS requires for CGEvent input synthesis.
// When prompt is true and the permission is missing, macOS shows its
// system dialog directing the user to System Settings.
func EnsureTrusted(prompt bool) bool {
	p := C.int(0)
	if prompt {
		p = 1
	}
	return C.gamacros_ax_trusted(p) != 0
}
