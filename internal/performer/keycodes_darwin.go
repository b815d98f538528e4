//go:build darwin

package performer

import "github.com/gamacros/gamacrosd/internal/engine"

// appleKeycodes maps the engine's platform-neutral Key vocabulary to
// macOS virtual keycodes, grounded on the same Carbon keycode table
// RawModifierKey.AppleKeycode uses for modifiers.
var appleKeycodes = map[engine.Key]uint16{
	engine.KeyArrowUp:       0x7E,
	engine.KeyArrowDown:     0x7D,
	engine.KeyArrowLeft:     0x7B,
	engine.KeyArrowRight:    0x7C,
	engine.KeyVolumeUp:      0x48,
	engine.KeyVolumeDown:    0x49,
	engine.KeyBrightnessUp:  0x90,
	engine.KeyBrightDown:    0x91,

	"a": 0x00, "b": 0x0B, "c": 0x08, "d": 0x02, "e": 0x0E, "f": 0x03,
	"g": 0x05, "h": 0x04, "i": 0x22, "j": 0x26, "k": 0x28, "l": 0x25,
	"m": 0x2E, "n": 0x2D, "o": 0x1F, "p": 0x23, "q": 0x0C, "r": 0x0F,
	"s": 0x01, "t": 0x11, "u": 0x20, "v": 0x09, "w": 0x0D, "x": 0x07,
	"y": 0x10, "z": 0x06,
	"0": 0x1D, "1": 0x12, "2": 0x13, "3": 0x14, "4": 0x15, "5": 0x17,
	"6": 0x16, "7": 0x1A, "8": 0x1C, "9": 0x19,
	"return": 0x24, "tab": 0x30, "space": 0x31, "escape": 0x35,
}

func keycodeFor(k engine.Key) (uint16, bool) {
	c, ok := appleKeycodes[k]
	return c, ok
}

const (
	cgFlagShift     = 1 << 17
	cgFlagControl   = 1 << 18
	cgFlagAlternate = 1 << 19
	cgFlagCommand   = 1 << 20
)

func modifierFlags(mods []engine.Modifier) uint64 {
	var flags uint64
	for _, m := range mods {
		switch m {
		case engine.ModControl:
			flags |= cgFlagControl
		case engine.ModShift:
			flags |= cgFlagShift
		case engine.ModCommand:
			flags |= cgFlagCommand
		case engine.ModOption:
			flags |= cgFlagAlternate
		}
	}
	return flags
}
