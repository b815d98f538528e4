// Package performer synthesizes host input events (keyboard, mouse,
// scroll, and macOS's modifier-only FlagsChanged class) from the
// engine's Action values. Platform-specific files provide the actual
// synthesis; this file holds the shared interface and the dispatch
// helper the runner calls into.
package performer

import "github.com/gamacros/gamacrosd/internal/engine"

// Performer is the OS input synthesis surface the runner drives.
// Implementations must be safe to call repeatedly from the single
// runner goroutine; none of these calls are expected to block for more
// than a few milliseconds.
type Performer interface {
	KeyPress(combo engine.KeyCombo) error
	KeyRelease(combo engine.KeyCombo) error
	KeyTap(combo engine.KeyCombo) error
	Macros(combos engine.Macros) error
	MouseClick(button engine.MouseButton, click engine.MouseClickType) error
	MouseMove(dx, dy int) error
	Scroll(h, v int) error
	RawModifierPress(key engine.RawModifierKey) error
	RawModifierRelease(key engine.RawModifierKey) error
	Close()
}

// Perform dispatches a single engine Action to the appropriate
// Performer method. The runner owns the sink that receives Actions from
// Engine; this is the other end of that pipe.
func Perform(p Performer, a engine.Action) error {
	switch a.Kind {
	case engine.KindKeyPress:
		return p.KeyPress(a.Key)
	case engine.KindKeyRelease:
		return p.KeyRelease(a.Key)
	case engine.KindKeyTap:
		return p.KeyTap(a.Key)
	case engine.KindMacros:
		return p.Macros(a.Macros)
	case engine.KindMouseClick:
		return p.MouseClick(a.Mouse, a.ClickTyp)
	case engine.KindMouseMove:
		return p.MouseMove(a.DX, a.DY)
	case engine.KindScroll:
		return p.Scroll(a.H, a.V)
	case engine.KindRawModifierPress:
		return p.RawModifierPress(a.RawMod)
	case engine.KindRawModifierRelease:
		return p.RawModifierRelease(a.RawMod)
	default:
		return nil
	}
}
