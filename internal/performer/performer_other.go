//go:build !darwin && !linux

package performer

import (
	"fmt"
	"log/slog"

	"github.com/gamacros/gamacrosd/internal/engine"
)

// noopPerformer logs every action instead of performing it. It exists
// so the daemon still builds and runs (in a dry-run sense) on platforms
// without a real input-synthesis backend.
type noopPerformer struct {
	log *slog.Logger
}

func New(log *slog.Logger) (Performer, error) {
	return &noopPerformer{log: log}, nil
}

func (n *noopPerformer) log1(name string, args ...any) error {
	n.log.Debug(fmt.Sprintf("performer: %s not implemented on this platform", name), args...)
	return nil
}

func (n *noopPerformer) KeyPress(combo engine.KeyCombo) error   { return n.log1("KeyPress", "combo", combo) }
func (n *noopPerformer) KeyRelease(combo engine.KeyCombo) error { return n.log1("KeyRelease", "combo", combo) }
func (n *noopPerformer) KeyTap(combo engine.KeyCombo) error     { return n.log1("KeyTap", "combo", combo) }
func (n *noopPerformer) Macros(combos engine.Macros) error      { return n.log1("Macros", "count", len(combos)) }
func (n *noopPerformer) MouseClick(button engine.MouseButton, click engine.MouseClickType) error {
	return n.log1("MouseClick")
}
func (n *noopPerformer) MouseMove(dx, dy int) error { return n.log1("MouseMove") }
func (n *noopPerformer) Scroll(h, v int) error      { return n.log1("Scroll") }
func (n *noopPerformer) RawModifierPress(key engine.RawModifierKey) error {
	return n.log1("RawModifierPress")
}
func (n *noopPerformer) RawModifierRelease(key engine.RawModifierKey) error {
	return n.log1("RawModifierRelease")
}
func (n *noopPerformer) Close() {}
