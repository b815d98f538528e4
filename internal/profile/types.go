// Package profile defines the operator-facing configuration the Engine
// consumes: controller remaps, app blacklist, per-app button and stick
// rules, and the shell used for Shell actions. Profile values are
// immutable snapshots; Load decodes one from TOML.
package profile

import "github.com/gamacros/gamacrosd/internal/engine"

// ControllerKey identifies a controller model by USB vendor/product id,
// the key the profile's [controllers] table is addressed by.
type ControllerKey struct {
	VendorID  uint16
	ProductID uint16
}

// ControllerSettings holds the per-model configuration the profile
// supplies for a connected controller.
type ControllerSettings struct {
	// Mapping remaps a raw button to another button before rule
	// resolution. Buttons absent from the map pass through unchanged.
	Mapping map[engine.Button]engine.Button
}

// BundleId is the foreground application identifier app rules are keyed
// by (e.g. a macOS bundle id, an X11 WM_CLASS, or the literal "common"
// fallback).
type BundleId string

// CommonApp is the fallback key used when no app-specific rules match
// the active application.
const CommonApp BundleId = "common"

// ButtonAction is the effect a ButtonRule performs when its chord fires.
type ButtonAction struct {
	Kind ButtonActionKind

	Keystroke engine.KeyCombo    // Keystroke, TapKeystroke
	Macros    engine.Macros      // Macros
	Shell     string             // Shell
	MouseBtn  engine.MouseButton // MouseClick
	ClickType engine.MouseClickType
	RawMod    engine.RawModifierKey // RawModifier
}

// ButtonActionKind discriminates ButtonAction variants.
type ButtonActionKind int

const (
	ActionKeystroke ButtonActionKind = iota
	ActionTapKeystroke
	ActionMacros
	ActionShell
	ActionMouseClick
	ActionRawModifier
)

// ButtonRule binds a chord to an action, optional rumble feedback, and
// optional auto-repeat timing overrides (only meaningful for Keystroke).
type ButtonRule struct {
	Action            ButtonAction
	VibrateMS         *uint16
	RepeatDelayMS     *uint64
	RepeatIntervalMS  *uint64
}

// ChordRule pairs a chord with its rule, kept as a slice (rather than a
// map) on AppRules so that iteration order — and therefore tie-break
// order among same-cardinality chords — is the deterministic order the
// profile declared them in.
type ChordRule struct {
	Chord engine.ButtonChord
	Rule  ButtonRule
}

// StickSide names which analog stick a StickMode binds to.
type StickSide int

const (
	StickLeft StickSide = iota
	StickRight
)

// AppRules is the full rule set for one application (or the "common"
// fallback): button chords plus the two sticks' modes.
type AppRules struct {
	Buttons []ChordRule
	Sticks  map[StickSide]StickMode
}

// Profile is the immutable, fully-decoded operator configuration.
type Profile struct {
	Controllers map[ControllerKey]ControllerSettings
	Blacklist   map[string]struct{}
	Rules       map[BundleId]AppRules
	Shell       string
}

// RulesFor resolves the AppRules for the active app, falling back to
// the "common" rules, exactly mirroring §4.2 step 2 of the engine spec.
func (p *Profile) RulesFor(app string) (AppRules, bool) {
	if r, ok := p.Rules[BundleId(app)]; ok {
		return r, true
	}
	if r, ok := p.Rules[CommonApp]; ok {
		return r, true
	}
	return AppRules{}, false
}

// Blacklisted reports whether the daemon must emit nothing for app.
func (p *Profile) Blacklisted(app string) bool {
	_, ok := p.Blacklist[app]
	return ok
}
