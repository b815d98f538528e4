package engine

import (
	"math"
	"time"

	"github.com/gamacros/gamacrosd/internal/profile"
)

// updateMouseMove computes a continuous cursor delta for one tick and
// emits it if at least one whole pixel accumulated, carrying any
// fractional remainder into the next tick so slow deflection still
// converges on the right average speed.
func (sp *StickProcessor) updateMouseMove(rt *sideRuntime, p profile.MouseParams, x, y float32, dt time.Duration, sink Sink) {
	if dt <= 0 {
		return
	}
	if p.InvertX {
		x = -x
	}
	if p.InvertY {
		y = -y
	}
	mag := float32(math.Hypot(float64(x), float64(y)))
	if mag < p.Deadzone {
		rt.mouseRemX, rt.mouseRemY = 0, 0
		return
	}

	span := 1.0 - p.Deadzone
	norm := float32(0)
	if span > 0 {
		norm = (mag - p.Deadzone) / span
	}
	if norm > 1 {
		norm = 1
	}
	gamma := p.Gamma
	if gamma <= 0 {
		gamma = 1
	}
	speed := float32(math.Pow(float64(norm), float64(gamma))) * p.MaxSpeedPxS

	dtSec := float32(dt.Seconds())
	rt.mouseRemX += float64((x / mag) * speed * dtSec)
	rt.mouseRemY += float64((y / mag) * speed * dtSec)

	dx := int(rt.mouseRemX)
	dy := int(rt.mouseRemY)
	rt.mouseRemX -= float64(dx)
	rt.mouseRemY -= float64(dy)
	if dx != 0 || dy != 0 {
		sink(mouseMoveAction(dx, dy))
	}
}

// updateScroll computes a continuous scroll delta for one tick along
// the selected axis, with the same fractional-line carry as MouseMove.
func (sp *StickProcessor) updateScroll(rt *sideRuntime, p profile.ScrollParams, x, y float32, dt time.Duration, sink Sink) {
	if dt <= 0 {
		return
	}
	value := y
	if p.Horizontal {
		value = x
	}
	if p.InvertX && p.Horizontal {
		value = -value
	}
	if p.InvertY && !p.Horizontal {
		value = -value
	}
	mag := abs32(value)
	if mag < p.Deadzone {
		rt.scrollRemH, rt.scrollRemV = 0, 0
		return
	}

	span := 1.0 - p.Deadzone
	norm := float32(1)
	if span > 0 {
		norm = (mag - p.Deadzone) / span
	}
	if norm > 1 {
		norm = 1
	}
	if value < 0 {
		norm = -norm
	}
	lines := float64(norm) * float64(p.SpeedLinesS) * dt.Seconds()
	if p.Horizontal {
		rt.scrollRemH += lines
	} else {
		rt.scrollRemV += lines
	}

	h := int(rt.scrollRemH)
	v := int(rt.scrollRemV)
	rt.scrollRemH -= float64(h)
	rt.scrollRemV -= float64(v)
	if h != 0 || v != 0 {
		sink(scrollAction(h, v))
	}
}
