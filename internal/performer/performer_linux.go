//go:build linux

package performer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/holoplot/go-evdev"

	"github.com/gamacros/gamacrosd/internal/engine"
)

// linuxPerformer synthesizes input through a virtual /dev/uinput device
// created with github.com/holoplot/go-evdev, the same evdev binding the
// teacher's go.mod already carries.
type linuxPerformer struct {
	dev *evdev.InputDevice
	log *slog.Logger
}

// New creates the virtual keyboard/mouse device. The process needs
// permission to open /dev/uinput (typically root, or membership in a
// group granted access via udev rules).
func New(log *slog.Logger) (Performer, error) {
	dev, err := evdev.CreateDevice(
		"gamacrosd-virtual-input",
		evdev.InputID{BusType: evdev.BUS_USB, Vendor: 0x0000, Product: 0x0000, Version: 1},
		deviceCapabilities(),
	)
	if err != nil {
		return nil, fmt.Errorf("performer: creating uinput device: %w", err)
	}
	return &linuxPerformer{dev: dev, log: log}, nil
}

func (l *linuxPerformer) syn() {
	l.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT, Value: 0})
}

func (l *linuxPerformer) keyValue(code evdev.EvCode, down bool) {
	v := int32(0)
	if down {
		v = 1
	}
	l.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_KEY, Code: code, Value: v})
}

func (l *linuxPerformer) keyEvent(combo engine.KeyCombo, down bool) error {
	code, ok := evdevKeycodeFor(combo.Key)
	if !ok {
		return fmt.Errorf("performer: no evdev keycode for key %q", combo.Key)
	}
	for _, m := range combo.Modifiers {
		if mc, ok := evdevModifiers[m]; ok {
			l.keyValue(mc, down)
		}
	}
	l.keyValue(code, down)
	l.syn()
	return nil
}

func (l *linuxPerformer) KeyPress(combo engine.KeyCombo) error   { return l.keyEvent(combo, true) }
func (l *linuxPerformer) KeyRelease(combo engine.KeyCombo) error { return l.keyEvent(combo, false) }

func (l *linuxPerformer) KeyTap(combo engine.KeyCombo) error {
	if err := l.keyEvent(combo, true); err != nil {
		return err
	}
	time.Sleep(time.Millisecond)
	return l.keyEvent(combo, false)
}

func (l *linuxPerformer) Macros(combos engine.Macros) error {
	for _, c := range combos {
		if err := l.KeyTap(c); err != nil {
			return err
		}
	}
	return nil
}

func (l *linuxPerformer) MouseClick(button engine.MouseButton, click engine.MouseClickType) error {
	code, ok := mouseButtonCodes[button]
	if !ok {
		return fmt.Errorf("performer: unknown mouse button %d", button)
	}
	count := 1
	if click == engine.ClickDouble {
		count = 2
	}
	for i := 0; i < count; i++ {
		l.keyValue(code, true)
		l.syn()
		time.Sleep(time.Millisecond)
		l.keyValue(code, false)
		l.syn()
	}
	return nil
}

func (l *linuxPerformer) MouseMove(dx, dy int) error {
	l.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_REL, Code: evdev.REL_X, Value: int32(dx)})
	l.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_REL, Code: evdev.REL_Y, Value: int32(dy)})
	l.syn()
	return nil
}

func (l *linuxPerformer) Scroll(h, v int) error {
	l.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_REL, Code: evdev.REL_HWHEEL, Value: int32(h)})
	l.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_REL, Code: evdev.REL_WHEEL, Value: int32(v)})
	l.syn()
	return nil
}

// RawModifierPress/Release has no equivalent on linux: there is no
// flags-changed event class outside Apple platforms. Rather than
// silently dropping the rule, this returns an error so the runner's
// dispatch logs it, matching the design note that platforms lacking a
// flags-changed equivalent reject raw-modifier actions with a logged
// error instead of performing them.
func (l *linuxPerformer) RawModifierPress(key engine.RawModifierKey) error {
	return fmt.Errorf("performer: raw modifier press has no linux equivalent (key %d)", key)
}

func (l *linuxPerformer) RawModifierRelease(key engine.RawModifierKey) error {
	return fmt.Errorf("performer: raw modifier release has no linux equivalent (key %d)", key)
}

func (l *linuxPerformer) Close() {
	l.dev.Close()
}
