package engine

import "strings"

// Key names a single keyboard key in a platform-neutral vocabulary.
// Ordinary printable keys use their lowercase character ("a", "1");
// special keys use the symbolic names below. The performer is
// responsible for mapping a Key to a platform keycode.
type Key string

const (
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"

	KeyVolumeUp     Key = "VolumeUp"
	KeyVolumeDown   Key = "VolumeDown"
	KeyBrightnessUp Key = "BrightnessUp"
	KeyBrightDown   Key = "BrightnessDown"
)

// Modifier is a keyboard modifier that can accompany a Key in a KeyCombo.
type Modifier string

const (
	ModControl Modifier = "control"
	ModShift   Modifier = "shift"
	ModCommand Modifier = "command"
	ModOption  Modifier = "option"
)

// KeyCombo is a single key optionally held down with modifiers, the unit
// the performer presses, releases or taps as one atomic combo.
type KeyCombo struct {
	Modifiers []Modifier
	Key       Key
}

func (k KeyCombo) String() string {
	if len(k.Modifiers) == 0 {
		return string(k.Key)
	}
	parts := make([]string, 0, len(k.Modifiers)+1)
	for _, m := range k.Modifiers {
		parts = append(parts, string(m))
	}
	parts = append(parts, string(k.Key))
	return strings.Join(parts, "+")
}

// Macros is a sequence of KeyCombo values performed in order on a press.
type Macros []KeyCombo

// MouseButton identifies which mouse button a MouseClick action targets.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// MouseClickType distinguishes a single click from a double click.
type MouseClickType int

const (
	ClickSingle MouseClickType = iota
	ClickDouble
)

// RawModifierKey is a modifier-only key sent via the platform's raw
// flags-changed path rather than an ordinary key event, for host apps
// that observe modifier-change events instead of key-down events.
type RawModifierKey int

const (
	RawModControl RawModifierKey = iota
	RawModRControl
	RawModShift
	RawModRShift
	RawModCommand
	RawModRCommand
	RawModOption
	RawModROption
)

// AppleKeycode returns the macOS virtual keycode for this raw modifier.
func (k RawModifierKey) AppleKeycode() uint16 {
	switch k {
	case RawModControl:
		return 0x3B
	case RawModRControl:
		return 0x3E
	case RawModShift:
		return 0x38
	case RawModRShift:
		return 0x3C
	case RawModCommand:
		return 0x37
	case RawModRCommand:
		return 0x36
	case RawModOption:
		return 0x3A
	case RawModROption:
		return 0x3D
	default:
		return 0
	}
}
