package engine

import "github.com/gamacros/gamacrosd/internal/profile"

// CompiledStickRules is the per-active-app stick configuration the
// Engine rebuilds whenever the profile or active app changes. It exists
// so OnTick never has to consult the profile's map lookups on the hot
// path — left/right are resolved once, up front.
type CompiledStickRules struct {
	left  *profile.StickMode
	right *profile.StickMode
}

func compileStickRules(sticks map[profile.StickSide]profile.StickMode) *CompiledStickRules {
	c := &CompiledStickRules{}
	if m, ok := sticks[profile.StickLeft]; ok {
		mc := m
		c.left = &mc
	}
	if m, ok := sticks[profile.StickRight]; ok {
		mc := m
		c.right = &mc
	}
	return c
}

func (c *CompiledStickRules) modeFor(side stickSide) *profile.StickMode {
	if c == nil {
		return nil
	}
	if side == sideLeft {
		return c.left
	}
	return c.right
}

// stickSide mirrors profile.StickSide inside the engine package so the
// stick processor's internal state keys don't need to import profile
// for something this small; the two enums are kept in lockstep by
// compileStickRules/onTickWith, the only places that cross the boundary.
type stickSide int

const (
	sideLeft stickSide = iota
	sideRight
)

// stickAxesSnapshot is one controller's axis values at the moment of a
// tick, handed to the stick processor by Engine.OnTick.
type stickAxesSnapshot struct {
	id   ControllerId
	axes [6]float32
}
