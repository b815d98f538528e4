package engine

import (
	"time"

	"github.com/gamacros/gamacrosd/internal/profile"
)

// Engine is the top-level state owner described in §2 of the spec: known
// controllers, the active app identifier, the current profile, the
// compiled stick rules, the stick processor and the button repeat
// table. All of its methods are short, non-blocking transformations
// from event to Action emissions into a caller-owned sink; none of them
// suspend or re-enter the Engine.
type Engine struct {
	profile    *profile.Profile
	activeApp  string
	controllers map[ControllerId]*controllerState

	compiled     *CompiledStickRules
	sticks       *StickProcessor
	buttonRepeats *buttonRepeatTable
}

// New returns an Engine with no profile loaded and no known controllers.
func New() *Engine {
	return &Engine{
		controllers:   make(map[ControllerId]*controllerState),
		sticks:        newStickProcessor(),
		buttonRepeats: newButtonRepeatTable(),
	}
}

// SetProfile atomically replaces the active profile and rebuilds the
// compiled stick rules for the current active app before returning, per
// §5's ordering guarantee.
func (e *Engine) SetProfile(p *profile.Profile) {
	e.profile = p
	e.recompileStickRules()
}

// RemoveProfile clears the active profile; no events fire until a new
// one is set.
func (e *Engine) RemoveProfile() {
	e.profile = nil
	e.compiled = nil
}

func (e *Engine) recompileStickRules() {
	if e.profile == nil || e.activeApp == "" {
		e.compiled = nil
		return
	}
	if e.profile.Blacklisted(e.activeApp) {
		e.compiled = nil
		return
	}
	rules, ok := e.profile.RulesFor(e.activeApp)
	if !ok {
		e.compiled = nil
		return
	}
	e.compiled = compileStickRules(rules.Sticks)
}

// IsKnown reports whether id names a currently connected controller.
func (e *Engine) IsKnown(id ControllerId) bool {
	_, ok := e.controllers[id]
	return ok
}

// AddController registers a newly connected controller, applying any
// profile-supplied remap for its vendor/product id. axes start at 0.0
// and pressed starts empty, per the §3 invariants.
func (e *Engine) AddController(info ControllerInfo) {
	var mapping map[Button]Button
	if e.profile != nil {
		key := profile.ControllerKey{VendorID: info.VendorID, ProductID: info.ProductID}
		if settings, ok := e.profile.Controllers[key]; ok {
			mapping = settings.Mapping
		}
	}
	e.controllers[info.ID] = &controllerState{
		mapping: mapping,
		rumble:  info.SupportsRumble,
	}
}

// RemoveController disconnects a controller, purging its stick state
// and any pending button repeats so no further emissions reference it.
func (e *Engine) RemoveController(id ControllerId) {
	delete(e.controllers, id)
	e.buttonRepeats.removeController(id)
	e.sticks.releaseAllFor(id)
}

// SupportsRumble reports whether a known controller supports rumble.
func (e *Engine) SupportsRumble(id ControllerId) bool {
	st, ok := e.controllers[id]
	return ok && st.rumble
}

// SetActiveApp changes the foreground application identifier. A
// repeated call with the same value is a no-op: it does not reset
// stick state and emits nothing (§8 invariant 6). A genuine change
// resets stick state (but never button repeats — a physically held
// button keeps repeating across app switches) and recompiles the
// stick rules for the new app.
func (e *Engine) SetActiveApp(app string) {
	if e.activeApp == app {
		return
	}
	e.activeApp = app
	e.sticks.onAppChange()
	e.recompileStickRules()
}

// ActiveApp returns the current foreground application identifier.
func (e *Engine) ActiveApp() string {
	return e.activeApp
}

// OnAxis records the latest value of one analog axis for a controller.
// Unknown controllers are ignored.
func (e *Engine) OnAxis(id ControllerId, axis Axis, value float32) {
	st, ok := e.controllers[id]
	if !ok {
		return
	}
	st.axes[axis] = value
}

// OnButton resolves a button transition against the active app's rules
// and emits the resulting Actions to sink. See §4.2 for the full chord
// resolution contract this implements.
func (e *Engine) OnButton(id ControllerId, button Button, phase ButtonPhase, sink Sink) {
	if e.profile == nil {
		return
	}
	if e.profile.Blacklisted(e.activeApp) {
		return
	}
	appRules, ok := e.profile.RulesFor(e.activeApp)
	if !ok {
		return
	}
	state, ok := e.controllers[id]
	if !ok {
		return
	}

	button = state.remap(button)
	rumbleCapable := state.rumble

	prev := state.pressed
	if phase == Pressed {
		state.pressed = state.pressed.Insert(button)
	} else {
		state.pressed = state.pressed.Remove(button)
	}
	now := state.pressed

	fires := func(chord ButtonChord) bool {
		was := prev.IsSuperset(chord)
		is := now.IsSuperset(chord)
		if phase == Pressed {
			return was != is
		}
		return was && !is
	}

	// Pass A: find the maximum chord cardinality among rules that fire
	// on this transition.
	maxBits := 0
	for _, cr := range appRules.Buttons {
		if fires(cr.Chord) {
			if n := cr.Chord.Count(); n > maxBits {
				maxBits = n
			}
		}
	}
	if maxBits == 0 {
		return
	}

	// Pass B: execute only the rules at that cardinality. Overlapping
	// chords (A, A+B) must not both fire on the same transition: when
	// A+B releases, only its own release branch runs, never A's.
	for _, cr := range appRules.Buttons {
		if cr.Chord.Count() != maxBits || !fires(cr.Chord) {
			continue
		}
		e.fireRule(id, button, phase, cr.Rule, rumbleCapable, sink)
	}
}

func (e *Engine) fireRule(id ControllerId, button Button, phase ButtonPhase, rule profile.ButtonRule, rumbleCapable bool, sink Sink) {
	switch phase {
	case Pressed:
		if rule.VibrateMS != nil && rumbleCapable {
			sink(rumbleAction(id, *rule.VibrateMS))
		}
		switch rule.Action.Kind {
		case profile.ActionKeystroke:
			combo := rule.Action.Keystroke
			sink(keyTap(combo))
			delay := DefaultRepeatDelay
			if rule.RepeatDelayMS != nil {
				delay = time.Duration(*rule.RepeatDelayMS) * time.Millisecond
			}
			interval := DefaultRepeatInterval
			if rule.RepeatIntervalMS != nil {
				interval = time.Duration(*rule.RepeatIntervalMS) * time.Millisecond
			}
			e.buttonRepeats.insert(id, button, combo, delay, interval, time.Now())
		case profile.ActionTapKeystroke:
			sink(keyTap(rule.Action.Keystroke))
		case profile.ActionMacros:
			sink(macrosAction(rule.Action.Macros))
		case profile.ActionShell:
			sink(shellAction(rule.Action.Shell))
		case profile.ActionMouseClick:
			sink(mouseClickAction(rule.Action.MouseBtn, rule.Action.ClickType))
		case profile.ActionRawModifier:
			sink(rawModPress(rule.Action.RawMod))
		}
	case Released:
		switch rule.Action.Kind {
		case profile.ActionKeystroke:
			e.buttonRepeats.remove(id, button)
		case profile.ActionRawModifier:
			sink(rawModRelease(rule.Action.RawMod))
		}
	}
}

// OnTick drives the stick processor for every known controller, using a
// freshly snapshotted (id, axes) list so emission never holds a
// reference into controller state. now is supplied by the caller (the
// runner's event loop, or a test) rather than read internally, so dt
// computation stays deterministic and testable.
func (e *Engine) OnTick(now time.Time, sink Sink) {
	snapshot := make([]stickAxesSnapshot, 0, len(e.controllers))
	for id, st := range e.controllers {
		snapshot = append(snapshot, stickAxesSnapshot{id: id, axes: st.axes})
	}
	e.sticks.onTickWith(e.compiled, snapshot, now, sink)
}

// NextRepeatDue returns the earliest pending stick-owned repeat fire
// time, if any.
func (e *Engine) NextRepeatDue() (time.Time, bool) {
	return e.sticks.nextRepeatDue()
}

// NextButtonRepeatDue returns the earliest pending button repeat fire
// time, if any.
func (e *Engine) NextButtonRepeatDue() (time.Time, bool) {
	return e.buttonRepeats.nextDue()
}

// ProcessDueRepeats drains stick-owned repeat tasks due at or before now.
func (e *Engine) ProcessDueRepeats(now time.Time, sink Sink) {
	e.sticks.processDueRepeats(now, sink)
}

// ProcessButtonRepeats drains button repeat tasks due at or before now.
func (e *Engine) ProcessButtonRepeats(now time.Time, sink Sink) {
	e.buttonRepeats.process(now, sink)
}

// NeedsTick reports whether periodic processing is required right now:
// an active stick mode with axis deflection past the activity
// threshold, or any scheduled repeat (stick or button).
func (e *Engine) NeedsTick() bool {
	return (e.hasTickModes() && e.hasAxisActivity(0.05)) ||
		e.sticks.hasActiveRepeats() ||
		!e.buttonRepeats.empty()
}

// WantsFastTick reports whether the external loop should prefer its
// fast (~16ms) cadence over its slow idle poll.
func (e *Engine) WantsFastTick() bool {
	return e.hasAxisActivity(0.05) || e.sticks.hasActiveRepeats() || !e.buttonRepeats.empty()
}

func (e *Engine) hasTickModes() bool {
	if e.compiled == nil {
		return false
	}
	return modeNeedsTick(e.compiled.left) || modeNeedsTick(e.compiled.right)
}

func modeNeedsTick(m *profile.StickMode) bool {
	if m == nil {
		return false
	}
	switch m.Kind {
	case profile.ModeArrows, profile.ModeVolume, profile.ModeBrightness, profile.ModeMouseMove, profile.ModeScroll:
		return true
	default:
		return false
	}
}

func (e *Engine) hasAxisActivity(threshold float32) bool {
	for _, st := range e.controllers {
		for _, v := range st.axes {
			if v < 0 {
				v = -v
			}
			if v >= threshold {
				return true
			}
		}
	}
	return false
}
