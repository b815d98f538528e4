//go:build linux

package performer

import (
	"github.com/holoplot/go-evdev"

	"github.com/gamacros/gamacrosd/internal/engine"
)

var evdevKeycodes = map[engine.Key]evdev.EvCode{
	engine.KeyArrowUp:      evdev.KEY_UP,
	engine.KeyArrowDown:    evdev.KEY_DOWN,
	engine.KeyArrowLeft:    evdev.KEY_LEFT,
	engine.KeyArrowRight:   evdev.KEY_RIGHT,
	engine.KeyVolumeUp:     evdev.KEY_VOLUMEUP,
	engine.KeyVolumeDown:   evdev.KEY_VOLUMEDOWN,
	engine.KeyBrightnessUp: evdev.KEY_BRIGHTNESSUP,
	engine.KeyBrightDown:   evdev.KEY_BRIGHTNESSDOWN,

	"a": evdev.KEY_A, "b": evdev.KEY_B, "c": evdev.KEY_C, "d": evdev.KEY_D,
	"e": evdev.KEY_E, "f": evdev.KEY_F, "g": evdev.KEY_G, "h": evdev.KEY_H,
	"i": evdev.KEY_I, "j": evdev.KEY_J, "k": evdev.KEY_K, "l": evdev.KEY_L,
	"m": evdev.KEY_M, "n": evdev.KEY_N, "o": evdev.KEY_O, "p": evdev.KEY_P,
	"q": evdev.KEY_Q, "r": evdev.KEY_R, "s": evdev.KEY_S, "t": evdev.KEY_T,
	"u": evdev.KEY_U, "v": evdev.KEY_V, "w": evdev.KEY_W, "x": evdev.KEY_X,
	"y": evdev.KEY_Y, "z": evdev.KEY_Z,
	"0": evdev.KEY_0, "1": evdev.KEY_1, "2": evdev.KEY_2, "3": evdev.KEY_3,
	"4": evdev.KEY_4, "5": evdev.KEY_5, "6": evdev.KEY_6, "7": evdev.KEY_7,
	"8": evdev.KEY_8, "9": evdev.KEY_9,
	"return": evdev.KEY_ENTER, "tab": evdev.KEY_TAB, "space": evdev.KEY_SPACE,
	"escape": evdev.KEY_ESC,
}

var evdevModifiers = map[engine.Modifier]evdev.EvCode{
	engine.ModControl: evdev.KEY_LEFTCTRL,
	engine.ModShift:   evdev.KEY_LEFTSHIFT,
	engine.ModCommand: evdev.KEY_LEFTMETA,
	engine.ModOption:  evdev.KEY_LEFTALT,
}

func evdevKeycodeFor(k engine.Key) (evdev.EvCode, bool) {
	c, ok := evdevKeycodes[k]
	return c, ok
}

var mouseButtonCodes = map[engine.MouseButton]evdev.EvCode{
	engine.MouseButtonLeft:   evdev.BTN_LEFT,
	engine.MouseButtonRight:  evdev.BTN_RIGHT,
	engine.MouseButtonMiddle: evdev.BTN_MIDDLE,
}

// deviceCapabilities lists every key/relative-axis/button this package's
// virtual device needs to claim at creation time; uinput rejects events
// for codes the device didn't declare up front.
func deviceCapabilities() map[evdev.EvType][]evdev.EvCode {
	keys := make([]evdev.EvCode, 0, len(evdevKeycodes)+len(evdevModifiers)+len(mouseButtonCodes))
	for _, c := range evdevKeycodes {
		keys = append(keys, c)
	}
	for _, c := range evdevModifiers {
		keys = append(keys, c)
	}
	for _, c := range mouseButtonCodes {
		keys = append(keys, c)
	}
	return map[evdev.EvType][]evdev.EvCode{
		evdev.EV_KEY: keys,
		evdev.EV_REL: {evdev.REL_X, evdev.REL_Y, evdev.REL_WHEEL, evdev.REL_HWHEEL},
	}
}
