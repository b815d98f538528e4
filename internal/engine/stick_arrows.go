package engine

import (
	"time"

	"github.com/gamacros/gamacrosd/internal/profile"
)

// direction is the dominant deflection direction of a stick held past
// its Arrows deadzone. dirNone means the stick is centered.
type direction int

const (
	dirNone direction = iota
	dirUp
	dirDown
	dirLeft
	dirRight
)

func (d direction) key() KeyCombo {
	switch d {
	case dirUp:
		return KeyCombo{Key: KeyArrowUp}
	case dirDown:
		return KeyCombo{Key: KeyArrowDown}
	case dirLeft:
		return KeyCombo{Key: KeyArrowLeft}
	case dirRight:
		return KeyCombo{Key: KeyArrowRight}
	default:
		return KeyCombo{}
	}
}

func dominantDirection(x, y float32, p profile.ArrowsParams) direction {
	if p.InvertX {
		x = -x
	}
	if p.InvertY {
		y = -y
	}
	ax, ay := abs32(x), abs32(y)
	if ax < p.Deadzone && ay < p.Deadzone {
		return dirNone
	}
	if ax >= ay {
		if x < 0 {
			return dirLeft
		}
		return dirRight
	}
	if y < 0 {
		return dirUp
	}
	return dirDown
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// updateArrows advances one side's Arrows state machine for the current
// tick, emitting an immediate tap on every direction change and
// (re)scheduling the held-repeat chain in the heap.
func (sp *StickProcessor) updateArrows(key stickKey, rt *sideRuntime, p profile.ArrowsParams, x, y float32, now time.Time, sink Sink) {
	newDir := dominantDirection(x, y, p)
	if newDir == rt.arrowsDir {
		return
	}
	if rt.arrowsDir != dirNone {
		rt.arrowsGen++
		sp.activeRepeats--
	}
	rt.arrowsDir = newDir
	if newDir != dirNone {
		sink(keyTap(newDir.key()))
		sp.activeRepeats++
		sp.heap.push(&stickRepeatTask{
			key:    key,
			kind:   repeatArrows,
			gen:    rt.arrowsGen,
			fireAt: now.Add(time.Duration(p.RepeatDelayMS) * time.Millisecond),
		})
	}
}

func (sp *StickProcessor) fireArrows(task *stickRepeatTask, rt *sideRuntime, mode *profile.StickMode, now time.Time, sink Sink) {
	if rt.arrowsDir == dirNone {
		return
	}
	sink(keyTap(rt.arrowsDir.key()))
	sp.heap.push(&stickRepeatTask{
		key:    task.key,
		kind:   repeatArrows,
		gen:    task.gen,
		fireAt: now.Add(time.Duration(mode.Arrows.RepeatIntervalMS) * time.Millisecond),
	})
}
