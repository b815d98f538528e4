package engine

import (
	"time"

	"github.com/gamacros/gamacrosd/internal/profile"
)

// stepperSign is the direction of a Volume/Brightness stepper chain.
type stepperSign int

const (
	stepNone stepperSign = iota
	stepUp
	stepDown
)

func stepperKey(kind profile.StickModeKind, sign stepperSign) KeyCombo {
	up := kind == profile.ModeVolume
	switch {
	case up && sign == stepUp:
		return KeyCombo{Key: KeyVolumeUp}
	case up && sign == stepDown:
		return KeyCombo{Key: KeyVolumeDown}
	case sign == stepUp:
		return KeyCombo{Key: KeyBrightnessUp}
	default:
		return KeyCombo{Key: KeyBrightDown}
	}
}

// stepperInterval linearly interpolates between MaxIntervalMS (just past
// the deadzone) and MinIntervalMS (full deflection) by normalized
// magnitude, so a harder push steps faster.
func stepperInterval(p profile.StepperParams, magnitude float32) time.Duration {
	span := 1.0 - p.Deadzone
	norm := float32(0)
	if span > 0 {
		norm = (magnitude - p.Deadzone) / span
	}
	if norm < 0 {
		norm = 0
	}
	if norm > 1 {
		norm = 1
	}
	maxMS := float32(p.MaxIntervalMS)
	minMS := float32(p.MinIntervalMS)
	ms := maxMS - norm*(maxMS-minMS)
	return time.Duration(ms) * time.Millisecond
}

func (sp *StickProcessor) updateStepper(key stickKey, rt *sideRuntime, kind profile.StickModeKind, p profile.StepperParams, x, y float32, now time.Time, sink Sink) {
	value := x
	if p.Axis == profile.AxisY {
		value = y
	}
	if p.Invert {
		value = -value
	}

	magnitude := abs32(value)
	sign := stepNone
	if magnitude >= p.Deadzone {
		if value > 0 {
			sign = stepUp
		} else {
			sign = stepDown
		}
	}

	rt.stepperMagnitude = magnitude

	if sign == rt.stepperSign {
		return
	}
	if rt.stepperSign != stepNone {
		rt.stepperGen++
		sp.activeRepeats--
	}
	rt.stepperSign = sign
	if sign != stepNone {
		sink(keyTap(stepperKey(kind, sign)))
		sp.activeRepeats++
		sp.heap.push(&stickRepeatTask{
			key:    key,
			kind:   repeatStepper,
			gen:    rt.stepperGen,
			fireAt: now.Add(stepperInterval(p, magnitude)),
		})
	}
}

func (sp *StickProcessor) fireStepper(task *stickRepeatTask, rt *sideRuntime, kind profile.StickModeKind, p profile.StepperParams, now time.Time, sink Sink) {
	if rt.stepperSign == stepNone {
		return
	}
	sink(keyTap(stepperKey(kind, rt.stepperSign)))
	sp.heap.push(&stickRepeatTask{
		key:    task.key,
		kind:   repeatStepper,
		gen:    task.gen,
		fireAt: now.Add(stepperInterval(p, rt.stepperMagnitude)),
	})
}
