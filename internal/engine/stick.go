package engine

import (
	"time"

	"github.com/gamacros/gamacrosd/internal/profile"
)

// sideRuntime is the per-(controller, stick side) runtime state the
// StickProcessor carries between ticks. Only the fields relevant to the
// side's currently bound mode are ever touched; switching modes (via an
// app change) starts from a fresh zero value.
type sideRuntime struct {
	arrowsDir direction
	arrowsGen uint64

	stepperSign      stepperSign
	stepperGen       uint64
	stepperMagnitude float32

	mouseRemX, mouseRemY float64
	scrollRemH, scrollRemV float64
}

// StickProcessor owns every controller's analog-stick state: the
// Arrows/Stepper repeat chains scheduled in a lazily-invalidated min
// heap, and the continuous MouseMove/Scroll accumulators driven
// directly off tick deltas. It is exclusively owned by one Engine, so
// none of its methods take a lock.
type StickProcessor struct {
	lastTick    time.Time
	haveLast    bool
	states      map[stickKey]*sideRuntime
	// pendingMode remembers which StickMode a scheduled Arrows/Stepper
	// repeat chain belongs to, so processDueRepeats can read its
	// interval parameters without needing the full CompiledStickRules
	// (which may have been replaced by a later app switch by the time
	// the task fires).
	pendingMode map[stickKey]*profile.StickMode
	heap        stickRepeatHeap
	activeRepeats int
}

func newStickProcessor() *StickProcessor {
	return &StickProcessor{
		states:      make(map[stickKey]*sideRuntime),
		pendingMode: make(map[stickKey]*profile.StickMode),
	}
}

func (sp *StickProcessor) runtimeFor(key stickKey) *sideRuntime {
	rt, ok := sp.states[key]
	if !ok {
		rt = &sideRuntime{}
		sp.states[key] = rt
	}
	return rt
}

// onTickWith advances every known controller's bound stick modes by one
// tick. compiled may be nil (no rules for the active app, or no profile
// loaded at all), in which case nothing is emitted but dt bookkeeping
// still advances so a later tick's delta stays accurate.
// maxTickDt bounds the dt handed to the continuous stick modes so a
// reactivation after an idle period (or any other scheduling jitter)
// never produces an oversized mouse/scroll burst on its first tick.
const maxTickDt = 50 * time.Millisecond

func (sp *StickProcessor) onTickWith(compiled *CompiledStickRules, snapshot []stickAxesSnapshot, now time.Time, sink Sink) {
	var dt time.Duration
	if sp.haveLast {
		dt = now.Sub(sp.lastTick)
		if dt > maxTickDt {
			dt = maxTickDt
		}
	}
	sp.lastTick = now
	sp.haveLast = true

	if compiled == nil {
		return
	}

	for _, s := range snapshot {
		if compiled.left != nil {
			sp.updateSide(stickKey{s.id, sideLeft}, compiled.left, s.axes[AxisLX], s.axes[AxisLY], now, dt, sink)
		}
		if compiled.right != nil {
			sp.updateSide(stickKey{s.id, sideRight}, compiled.right, s.axes[AxisRX], s.axes[AxisRY], now, dt, sink)
		}
	}
}

func (sp *StickProcessor) updateSide(key stickKey, mode *profile.StickMode, x, y float32, now time.Time, dt time.Duration, sink Sink) {
	rt := sp.runtimeFor(key)
	switch mode.Kind {
	case profile.ModeArrows:
		sp.pendingMode[key] = mode
		sp.updateArrows(key, rt, mode.Arrows, x, y, now, sink)
	case profile.ModeVolume, profile.ModeBrightness:
		sp.pendingMode[key] = mode
		sp.updateStepper(key, rt, mode.Kind, mode.Stepper, x, y, now, sink)
	case profile.ModeMouseMove:
		sp.updateMouseMove(rt, mode.MouseMove, x, y, dt, sink)
	case profile.ModeScroll:
		sp.updateScroll(rt, mode.Scroll, x, y, dt, sink)
	}
}

// nextRepeatDue returns the earliest live task's fire time, skipping
// over any stale (invalidated) heap entries it encounters at the top.
func (sp *StickProcessor) nextRepeatDue() (time.Time, bool) {
	for {
		task, ok := sp.heap.peek()
		if !ok {
			return time.Time{}, false
		}
		if sp.taskLive(task) {
			return task.fireAt, true
		}
		sp.heap.pop()
	}
}

func (sp *StickProcessor) taskLive(task *stickRepeatTask) bool {
	rt, ok := sp.states[task.key]
	if !ok {
		return false
	}
	switch task.kind {
	case repeatArrows:
		return rt.arrowsGen == task.gen && rt.arrowsDir != dirNone
	case repeatStepper:
		return rt.stepperGen == task.gen && rt.stepperSign != stepNone
	default:
		return false
	}
}

// processDueRepeats drains every live task due at or before now, using
// each task's recorded mode (pendingMode) for its interval parameters.
// A chain cancelled since the task was scheduled (direction change,
// return to center, controller removal) has a bumped generation or no
// runtime state left, so its stale task is simply dropped; an app switch
// clears the heap outright.
func (sp *StickProcessor) processDueRepeats(now time.Time, sink Sink) {
	for {
		task, ok := sp.heap.peek()
		if !ok || now.Before(task.fireAt) {
			return
		}
		sp.heap.pop()
		if !sp.taskLive(task) {
			continue
		}
		rt := sp.states[task.key]
		mode := sp.pendingMode[task.key]
		if mode == nil {
			continue
		}
		switch task.kind {
		case repeatArrows:
			sp.fireArrows(task, rt, mode, now, sink)
		case repeatStepper:
			sp.fireStepper(task, rt, mode.Kind, mode.Stepper, now, sink)
		}
	}
}

// releaseAllFor clears every side's runtime state for a disconnected
// controller and cancels its repeat chains so no stale task references
// it after RemoveController.
func (sp *StickProcessor) releaseAllFor(id ControllerId) {
	for _, side := range [2]stickSide{sideLeft, sideRight} {
		key := stickKey{id, side}
		if rt, ok := sp.states[key]; ok {
			rt.arrowsGen++
			rt.stepperGen++
			delete(sp.states, key)
			delete(sp.pendingMode, key)
		}
	}
	sp.activeRepeats = countActive(sp.states)
}

// onAppChange resets every controller's stick runtime: a new app may
// bind a side to an entirely different mode, so carrying over e.g. an
// Arrows direction into a now-MouseMove side would be meaningless.
func (sp *StickProcessor) onAppChange() {
	sp.states = make(map[stickKey]*sideRuntime)
	sp.pendingMode = make(map[stickKey]*profile.StickMode)
	sp.heap = stickRepeatHeap{}
	sp.activeRepeats = 0
}

func (sp *StickProcessor) hasActiveRepeats() bool {
	return sp.activeRepeats > 0
}

func countActive(states map[stickKey]*sideRuntime) int {
	n := 0
	for _, rt := range states {
		if rt.arrowsDir != dirNone {
			n++
		}
		if rt.stepperSign != stepNone {
			n++
		}
	}
	return n
}
