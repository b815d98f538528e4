// Package engine implements the event-to-action core: the per-controller
// chord resolver with auto-repeat, driven by button and axis events from
// an external gamepad backend.
package engine

import "fmt"

// Button is a controller button ordinal. It fits a small integer domain
// so that a set of held buttons packs into a single machine word.
type Button uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonLeftShoulder
	ButtonRightShoulder
	ButtonLeftTrigger
	ButtonRightTrigger
	ButtonDPadUp
	ButtonDPadDown
	ButtonDPadLeft
	ButtonDPadRight
	ButtonLeftStick
	ButtonRightStick
	ButtonStart
	ButtonSelect
	ButtonGuide

	buttonCount
)

var buttonNames = [buttonCount]string{
	ButtonA:             "A",
	ButtonB:             "B",
	ButtonX:             "X",
	ButtonY:             "Y",
	ButtonLeftShoulder:  "L1",
	ButtonRightShoulder: "R1",
	ButtonLeftTrigger:   "L2",
	ButtonRightTrigger:  "R2",
	ButtonDPadUp:        "DPadUp",
	ButtonDPadDown:      "DPadDown",
	ButtonDPadLeft:      "DPadLeft",
	ButtonDPadRight:     "DPadRight",
	ButtonLeftStick:     "LeftStick",
	ButtonRightStick:    "RightStick",
	ButtonStart:         "Start",
	ButtonSelect:        "Select",
	ButtonGuide:         "Guide",
}

// String returns the canonical profile-facing name of the button.
func (b Button) String() string {
	if b < buttonCount {
		return buttonNames[b]
	}
	return fmt.Sprintf("Button(%d)", b)
}

// ButtonByName resolves a profile-facing button name (case-sensitive,
// matching the names produced by String) back to a Button.
func ButtonByName(name string) (Button, bool) {
	for b, n := range buttonNames {
		if n == name {
			return Button(b), true
		}
	}
	return 0, false
}

// ButtonPhase distinguishes a press transition from a release transition.
type ButtonPhase int

const (
	Pressed ButtonPhase = iota
	Released
)

func (p ButtonPhase) String() string {
	if p == Pressed {
		return "Pressed"
	}
	return "Released"
}
