//go:build darwin

package activeapp

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa
#import <Cocoa/Cocoa.h>
#include <stdlib.h>

static char *gamacros_frontmost_bundle_id(void) {
    @autoreleasepool {
        NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
        if (app == nil || app.bundleIdentifier == nil) {
            return NULL;
        }
        return strdup([app.bundleIdentifier UTF8String]);
    }
}
*/
import "C"

import (
	"unsafe"

	"github.com/gamacros/gamacrosd/internal/profile"
)

// darwinTracker polls NSWorkspace.sharedWorkspace.frontmostApplication,
// grounded on the original implementation's activeapp tracking (a
// frontmost-app bundle id is exactly the BundleId a profile's [rules]
// table is keyed by).
type darwinTracker struct{}

// New returns the darwin Tracker.
func New() (Tracker, error) {
	return darwinTracker{}, nil
}

func (darwinTracker) Poll() (string, error) {
	cStr := C.gamacros_frontmost_bundle_id()
	if cStr == nil {
		return string(profile.CommonApp), nil
	}
	defer C.free(unsafe.Pointer(cStr))
	return C.GoString(cStr), nil
}

func (darwinTracker) Close() {}
