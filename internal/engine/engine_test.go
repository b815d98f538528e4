package engine

import (
	"testing"
	"time"

	"github.com/gamacros/gamacrosd/internal/profile"
)

func recordingSink() (Sink, *[]Action) {
	var got []Action
	return func(a Action) { got = append(got, a) }, &got
}

func chord(buttons ...Button) ButtonChord {
	var m Bitmask
	for _, b := range buttons {
		m = m.Insert(b)
	}
	return m
}

func singleButtonProfile(btn Button, key Key) *profile.Profile {
	return &profile.Profile{
		Rules: map[profile.BundleId]profile.AppRules{
			profile.CommonApp: {
				Buttons: []profile.ChordRule{
					{
						Chord: chord(btn),
						Rule: profile.ButtonRule{
							Action: profile.ButtonAction{
								Kind:      profile.ActionKeystroke,
								Keystroke: KeyCombo{Key: key},
							},
						},
					},
				},
			},
		},
	}
}

func newController(e *Engine, id ControllerId) {
	e.AddController(ControllerInfo{ID: id, SupportsRumble: false})
}

// S1: a single button press emits one KeyTap and schedules auto-repeat;
// release stops the repeat without emitting a KeyRelease (Keystroke is
// tap-and-repeat, not press/hold).
func TestSingleTapSchedulesRepeat(t *testing.T) {
	e := New()
	e.SetProfile(singleButtonProfile(ButtonA, KeyArrowUp))
	e.SetActiveApp(string(profile.CommonApp))
	newController(e, 1)

	sink, got := recordingSink()
	e.OnButton(1, ButtonA, Pressed, sink)

	if len(*got) != 1 || (*got)[0].Kind != KindKeyTap {
		t.Fatalf("expected one KeyTap, got %+v", *got)
	}

	due, ok := e.NextButtonRepeatDue()
	if !ok {
		t.Fatal("expected a scheduled button repeat")
	}
	if due.IsZero() {
		t.Fatal("repeat due time should not be zero")
	}

	*got = nil
	e.OnButton(1, ButtonA, Released, sink)
	if len(*got) != 0 {
		t.Fatalf("expected no emission on release, got %+v", *got)
	}
	if _, ok := e.NextButtonRepeatDue(); ok {
		t.Fatal("repeat should have been cancelled on release")
	}
}

// S2: chord precedence — pressing A then B (forming A+B) must fire only
// the two-button chord's rule, not A's single-button rule, and releasing
// B must not re-fire A's rule either.
func TestChordPrecedenceOverSingleButton(t *testing.T) {
	p := &profile.Profile{
		Rules: map[profile.BundleId]profile.AppRules{
			profile.CommonApp: {
				Buttons: []profile.ChordRule{
					{
						Chord: chord(ButtonA),
						Rule: profile.ButtonRule{
							Action: profile.ButtonAction{Kind: profile.ActionTapKeystroke, Keystroke: KeyCombo{Key: KeyArrowUp}},
						},
					},
					{
						Chord: chord(ButtonA, ButtonB),
						Rule: profile.ButtonRule{
							Action: profile.ButtonAction{Kind: profile.ActionTapKeystroke, Keystroke: KeyCombo{Key: KeyArrowDown}},
						},
					},
				},
			},
		},
	}
	e := New()
	e.SetProfile(p)
	e.SetActiveApp(string(profile.CommonApp))
	newController(e, 1)

	sink, got := recordingSink()
	e.OnButton(1, ButtonA, Pressed, sink)
	if len(*got) != 1 || (*got)[0].Key.Key != KeyArrowUp {
		t.Fatalf("expected A's rule to fire alone, got %+v", *got)
	}

	*got = nil
	e.OnButton(1, ButtonB, Pressed, sink)
	if len(*got) != 1 || (*got)[0].Key.Key != KeyArrowDown {
		t.Fatalf("expected only the chord rule to fire, got %+v", *got)
	}

	*got = nil
	e.OnButton(1, ButtonB, Released, sink)
	if len(*got) != 0 {
		t.Fatalf("releasing B should not re-fire A's single-button rule, got %+v", *got)
	}
}

// S3: Arrows stick mode emits an immediate KeyTap on deflection past the
// deadzone and schedules a repeat task; returning to center cancels it.
func TestStickArrowsFireAndCancel(t *testing.T) {
	e := New()
	p := &profile.Profile{
		Rules: map[profile.BundleId]profile.AppRules{
			profile.CommonApp: {
				Sticks: map[profile.StickSide]profile.StickMode{
					profile.StickLeft: {
						Kind: profile.ModeArrows,
						Arrows: profile.ArrowsParams{
							Deadzone:         0.2,
							RepeatDelayMS:    100,
							RepeatIntervalMS: 50,
						},
					},
				},
			},
		},
	}
	e.SetProfile(p)
	e.SetActiveApp(string(profile.CommonApp))
	newController(e, 1)

	e.OnAxis(1, AxisLX, 0.9)
	sink, got := recordingSink()
	now := time.Now()
	e.OnTick(now, sink)
	if len(*got) != 1 || (*got)[0].Kind != KindKeyTap {
		t.Fatalf("expected one KeyTap on deflection, got %+v", *got)
	}
	if _, ok := e.NextRepeatDue(); !ok {
		t.Fatal("expected a scheduled stick repeat")
	}

	e.OnAxis(1, AxisLX, 0.0)
	*got = nil
	e.OnTick(now.Add(10*time.Millisecond), sink)
	if _, ok := e.NextRepeatDue(); ok {
		t.Fatal("returning to center should cancel the pending repeat")
	}
}

// S4: MouseMove mode accumulates fractional remainder across ticks so a
// slow deflection still eventually emits a move.
func TestStickMouseMoveAccumulatesRemainder(t *testing.T) {
	e := New()
	p := &profile.Profile{
		Rules: map[profile.BundleId]profile.AppRules{
			profile.CommonApp: {
				Sticks: map[profile.StickSide]profile.StickMode{
					profile.StickRight: {
						Kind: profile.ModeMouseMove,
						MouseMove: profile.MouseParams{
							Deadzone:    0.1,
							MaxSpeedPxS: 100,
							Gamma:       1,
						},
					},
				},
			},
		},
	}
	e.SetProfile(p)
	e.SetActiveApp(string(profile.CommonApp))
	newController(e, 1)
	e.OnAxis(1, AxisRX, 0.5)

	sink, got := recordingSink()
	now := time.Now()
	e.OnTick(now, sink) // first tick has no dt yet (haveLast==false)
	total := 0
	for i := 0; i < 20; i++ {
		now = now.Add(10 * time.Millisecond)
		e.OnTick(now, sink)
	}
	for _, a := range *got {
		if a.Kind == KindMouseMove {
			total += a.DX
		}
	}
	if total <= 0 {
		t.Fatalf("expected accumulated rightward mouse movement, got total dx=%d from %+v", total, *got)
	}
}

// S6: a blacklisted app emits nothing for button events, even when rules
// exist for "common".
func TestBlacklistSuppressesButtonEvents(t *testing.T) {
	e := New()
	p := singleButtonProfile(ButtonA, KeyArrowUp)
	p.Blacklist = map[string]struct{}{"com.blocked.app": {}}
	e.SetProfile(p)
	e.SetActiveApp("com.blocked.app")
	newController(e, 1)

	sink, got := recordingSink()
	e.OnButton(1, ButtonA, Pressed, sink)
	if len(*got) != 0 {
		t.Fatalf("expected no emission for a blacklisted app, got %+v", *got)
	}
}

// S6 (stick path): invariant 2 requires on_tick to also emit nothing for
// a blacklisted app, even when "common" binds a stick mode that would
// otherwise fire every tick on axis deflection.
func TestBlacklistSuppressesStickTicks(t *testing.T) {
	e := New()
	p := &profile.Profile{
		Blacklist: map[string]struct{}{"com.blocked.app": {}},
		Rules: map[profile.BundleId]profile.AppRules{
			profile.CommonApp: {
				Sticks: map[profile.StickSide]profile.StickMode{
					profile.StickLeft: {
						Kind: profile.ModeArrows,
						Arrows: profile.ArrowsParams{
							Deadzone:         0.2,
							RepeatDelayMS:    100,
							RepeatIntervalMS: 50,
						},
					},
				},
			},
		},
	}
	e.SetProfile(p)
	e.SetActiveApp("com.blocked.app")
	newController(e, 1)
	e.OnAxis(1, AxisLX, 0.9)

	sink, got := recordingSink()
	e.OnTick(time.Now(), sink)
	if len(*got) != 0 {
		t.Fatalf("expected no stick emission for a blacklisted app, got %+v", *got)
	}
	if _, ok := e.NextRepeatDue(); ok {
		t.Fatal("a blacklisted app must not schedule a stick repeat either")
	}
}

// S5: a RawModifier rule emits a RawModifierPress on press and a
// RawModifierRelease on release, with no KeyTap/KeyPress in between.
func TestRawModifierPressAndRelease(t *testing.T) {
	p := &profile.Profile{
		Rules: map[profile.BundleId]profile.AppRules{
			profile.CommonApp: {
				Buttons: []profile.ChordRule{
					{
						Chord: chord(ButtonGuide),
						Rule: profile.ButtonRule{
							Action: profile.ButtonAction{Kind: profile.ActionRawModifier, RawMod: RawModShift},
						},
					},
				},
			},
		},
	}
	e := New()
	e.SetProfile(p)
	e.SetActiveApp(string(profile.CommonApp))
	newController(e, 1)

	sink, got := recordingSink()
	e.OnButton(1, ButtonGuide, Pressed, sink)
	if len(*got) != 1 || (*got)[0].Kind != KindRawModifierPress || (*got)[0].RawMod != RawModShift {
		t.Fatalf("expected a single RawModifierPress(Shift), got %+v", *got)
	}

	*got = nil
	e.OnButton(1, ButtonGuide, Released, sink)
	if len(*got) != 1 || (*got)[0].Kind != KindRawModifierRelease || (*got)[0].RawMod != RawModShift {
		t.Fatalf("expected a single RawModifierRelease(Shift), got %+v", *got)
	}
}

// SetActiveApp must be a no-op (no stick reset, no emission) when called
// repeatedly with the same value.
func TestSetActiveAppSameValueIsNoop(t *testing.T) {
	e := New()
	p := &profile.Profile{
		Rules: map[profile.BundleId]profile.AppRules{
			profile.CommonApp: {
				Sticks: map[profile.StickSide]profile.StickMode{
					profile.StickLeft: {
						Kind: profile.ModeArrows,
						Arrows: profile.ArrowsParams{
							Deadzone:         0.2,
							RepeatDelayMS:    100,
							RepeatIntervalMS: 50,
						},
					},
				},
			},
		},
	}
	e.SetProfile(p)
	e.SetActiveApp(string(profile.CommonApp))
	newController(e, 1)
	e.OnAxis(1, AxisLX, 0.9)

	sink, _ := recordingSink()
	e.OnTick(time.Now(), sink)
	before, ok := e.NextRepeatDue()
	if !ok {
		t.Fatal("expected a scheduled stick repeat after deflection")
	}

	e.SetActiveApp(string(profile.CommonApp))
	after, ok := e.NextRepeatDue()
	if !ok || !after.Equal(before) {
		t.Fatal("repeated SetActiveApp with the same value must not reset stick state")
	}
}

// Disconnecting a controller must cancel its pending button repeats and
// forget the controller.
func TestRemoveControllerPurgesState(t *testing.T) {
	e := New()
	e.SetProfile(singleButtonProfile(ButtonA, KeyArrowUp))
	e.SetActiveApp(string(profile.CommonApp))
	newController(e, 1)

	sink, _ := recordingSink()
	e.OnButton(1, ButtonA, Pressed, sink)
	if _, ok := e.NextButtonRepeatDue(); !ok {
		t.Fatal("expected a scheduled repeat before disconnect")
	}

	e.RemoveController(1)
	if _, ok := e.NextButtonRepeatDue(); ok {
		t.Fatal("disconnecting the controller must cancel its pending repeats")
	}
	if e.IsKnown(1) {
		t.Fatal("controller should no longer be known after RemoveController")
	}
}
