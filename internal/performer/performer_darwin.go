//go:build darwin

package performer

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

static CGEventSourceRef gamacros_kb_source(void) {
    static CGEventSourceRef src = NULL;
    if (src == NULL) {
        src = CGEventSourceCreate(kCGEventSourceStatePrivate);
    }
    return src;
}

static void gamacros_key_event(CGKeyCode keycode, CGEventFlags flags, int down) {
    CGEventRef ev = CGEventCreateKeyboardEvent(gamacros_kb_source(), keycode, down != 0);
    if (!ev) {
        return;
    }
    CGEventSetFlags(ev, flags);
    CGEventPost(kCGHIDEventTap, ev);
    CFRelease(ev);
}

static void gamacros_mouse_click(int button, double x, double y, int64_t clickState) {
    CGEventType downType, upType;
    CGMouseButton cgButton;
    switch (button) {
        case 1:
            cgButton = kCGMouseButtonRight;
            downType = kCGEventRightMouseDown;
            upType = kCGEventRightMouseUp;
            break;
        case 2:
            cgButton = kCGMouseButtonCenter;
            downType = kCGEventOtherMouseDown;
            upType = kCGEventOtherMouseUp;
            break;
        default:
            cgButton = kCGMouseButtonLeft;
            downType = kCGEventLeftMouseDown;
            upType = kCGEventLeftMouseUp;
            break;
    }
    CGPoint point = CGPointMake(x, y);
    CGEventRef down = CGEventCreateMouseEvent(NULL, downType, point, cgButton);
    CGEventRef up = CGEventCreateMouseEvent(NULL, upType, point, cgButton);
    if (down && up) {
        CGEventSetIntegerValueField(down, kCGMouseEventClickState, clickState);
        CGEventSetIntegerValueField(up, kCGMouseEventClickState, clickState);
        CGEventPost(kCGHIDEventTap, down);
        CGEventPost(kCGHIDEventTap, up);
    }
    if (down) CFRelease(down);
    if (up) CFRelease(up);
}

static void gamacros_mouse_move_rel(double dx, double dy) {
    CGEventRef ev = CGEventCreate(NULL);
    CGPoint cur = CGEventGetLocation(ev);
    CFRelease(ev);
    CGPoint target = CGPointMake(cur.x + dx, cur.y + dy);
    CGEventRef move = CGEventCreateMouseEvent(NULL, kCGEventMouseMoved, target, kCGMouseButtonLeft);
    if (move) {
        CGEventPost(kCGHIDEventTap, move);
        CFRelease(move);
    }
}

static void gamacros_scroll(int h, int v) {
    CGEventRef ev = CGEventCreateScrollWheelEvent(NULL, kCGScrollEventUnitLine, 2, v, h);
    if (ev) {
        CGEventPost(kCGHIDEventTap, ev);
        CFRelease(ev);
    }
}

// Device-specific NX flag bits, matched 1:1 against the original
// implementation's raw_modifier submodule.
static const uint64_t NX_DEVICELCTLKEYMASK   = 0x00000001;
static const uint64_t NX_DEVICERCTLKEYMASK   = 0x00002000;
static const uint64_t NX_DEVICELSHIFTKEYMASK = 0x00000002;
static const uint64_t NX_DEVICERSHIFTKEYMASK = 0x00000004;
static const uint64_t NX_DEVICELCMDKEYMASK   = 0x00000008;
static const uint64_t NX_DEVICERCMDKEYMASK   = 0x00000010;
static const uint64_t NX_DEVICELALTKEYMASK   = 0x00000020;
static const uint64_t NX_DEVICERALTKEYMASK   = 0x00000040;

static int gamacros_raw_modifier_flags(uint16_t keycode, CGEventFlags *highFlag, uint64_t *devFlag) {
    switch (keycode) {
        case 0x3B: *highFlag = kCGEventFlagMaskControl; *devFlag = NX_DEVICELCTLKEYMASK; return 0;
        case 0x3E: *highFlag = kCGEventFlagMaskControl; *devFlag = NX_DEVICERCTLKEYMASK; return 0;
        case 0x38: *highFlag = kCGEventFlagMaskShift; *devFlag = NX_DEVICELSHIFTKEYMASK; return 0;
        case 0x3C: *highFlag = kCGEventFlagMaskShift; *devFlag = NX_DEVICERSHIFTKEYMASK; return 0;
        case 0x37: *highFlag = kCGEventFlagMaskCommand; *devFlag = NX_DEVICELCMDKEYMASK; return 0;
        case 0x36: *highFlag = kCGEventFlagMaskCommand; *devFlag = NX_DEVICERCMDKEYMASK; return 0;
        case 0x3A: *highFlag = kCGEventFlagMaskAlternate; *devFlag = NX_DEVICELALTKEYMASK; return 0;
        case 0x3D: *highFlag = kCGEventFlagMaskAlternate; *devFlag = NX_DEVICERALTKEYMASK; return 0;
        default: return -1;
    }
}

static void gamacros_raw_modifier(uint16_t keycode, int pressed) {
    CGEventFlags highFlag = 0;
    uint64_t devFlag = 0;
    if (gamacros_raw_modifier_flags(keycode, &highFlag, &devFlag) != 0) {
        return;
    }
    CGEventSourceRef source = CGEventSourceCreate(kCGEventSourceStateCombinedSessionState);
    CGEventRef ev = CGEventCreateKeyboardEvent(source, keycode, pressed != 0);
    if (!ev) {
        if (source) CFRelease(source);
        return;
    }
    // Override the type to FlagsChanged (12): the keyboard-event
    // constructor always produces KeyDown/KeyUp, but modifier-only apps
    // watch for the dedicated flags-changed event class instead.
    CGEventSetType(ev, (CGEventType)12);
    CGEventFlags flags = kCGEventFlagMaskNonCoalesced;
    if (pressed) {
        flags |= highFlag | devFlag;
    }
    CGEventSetFlags(ev, flags);
    CGEventPost(kCGHIDEventTap, ev);
    CFRelease(ev);
    if (source) CFRelease(source);
}
*/
import "C"

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gamacros/gamacrosd/internal/engine"
)

// darwinPerformer synthesizes input through CoreGraphics CGEvents. It
// holds no OS resources beyond the lazily-created, process-lifetime
// CGEventSource the cgo helpers manage internally, so Close is a no-op.
type darwinPerformer struct {
	log *slog.Logger
}

// New returns the darwin Performer. log is accepted for parity with the
// linux backend's constructor signature but unused. The only error the
// methods report is a key with no keycode; a CGEvent that cannot be
// created is skipped silently by the cgo helpers.
func New(log *slog.Logger) (Performer, error) {
	return &darwinPerformer{log: log}, nil
}

func (d *darwinPerformer) keyEvent(combo engine.KeyCombo, down bool) error {
	code, ok := keycodeFor(combo.Key)
	if !ok {
		return fmt.Errorf("performer: no keycode for key %q", combo.Key)
	}
	C.gamacros_key_event(C.CGKeyCode(code), C.CGEventFlags(modifierFlags(combo.Modifiers)), boolToC(down))
	return nil
}

func (d *darwinPerformer) KeyPress(combo engine.KeyCombo) error   { return d.keyEvent(combo, true) }
func (d *darwinPerformer) KeyRelease(combo engine.KeyCombo) error { return d.keyEvent(combo, false) }

func (d *darwinPerformer) KeyTap(combo engine.KeyCombo) error {
	if err := d.keyEvent(combo, true); err != nil {
		return err
	}
	time.Sleep(time.Millisecond)
	return d.keyEvent(combo, false)
}

func (d *darwinPerformer) Macros(combos engine.Macros) error {
	for _, c := range combos {
		if err := d.KeyTap(c); err != nil {
			return err
		}
	}
	return nil
}

func (d *darwinPerformer) MouseClick(button engine.MouseButton, click engine.MouseClickType) error {
	loc := C.CGEventGetLocation(C.CGEventCreate(nil))
	count := 1
	if click == engine.ClickDouble {
		count = 2
	}
	for i := 1; i <= count; i++ {
		C.gamacros_mouse_click(C.int(mouseButtonCode(button)), loc.x, loc.y, C.int64_t(i))
	}
	return nil
}

func mouseButtonCode(b engine.MouseButton) int {
	switch b {
	case engine.MouseButtonRight:
		return 1
	case engine.MouseButtonMiddle:
		return 2
	default:
		return 0
	}
}

func (d *darwinPerformer) MouseMove(dx, dy int) error {
	C.gamacros_mouse_move_rel(C.double(dx), C.double(dy))
	return nil
}

func (d *darwinPerformer) Scroll(h, v int) error {
	C.gamacros_scroll(C.int(h), C.int(v))
	return nil
}

func (d *darwinPerformer) RawModifierPress(key engine.RawModifierKey) error {
	C.gamacros_raw_modifier(C.uint16_t(key.AppleKeycode()), 1)
	return nil
}

func (d *darwinPerformer) RawModifierRelease(key engine.RawModifierKey) error {
	C.gamacros_raw_modifier(C.uint16_t(key.AppleKeycode()), 0)
	return nil
}

func (d *darwinPerformer) Close() {}

func boolToC(b bool) C.int {
	if b {
		return 1
	}
	return 0
}
