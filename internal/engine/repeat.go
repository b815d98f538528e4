package engine

import "time"

// DefaultRepeatDelay and DefaultRepeatInterval are the fallbacks used
// when a Keystroke rule does not override them (§4.2 step 6).
const (
	DefaultRepeatDelay    = 400 * time.Millisecond
	DefaultRepeatInterval = 50 * time.Millisecond
)

// buttonRepeatKey identifies a pending auto-repeat task: the controller
// and the *remapped* button, so that a Released event for the raw
// button — remapped identically before lookup — finds the same entry
// instead of orphaning it (§9 design note).
type buttonRepeatKey struct {
	controller ControllerId
	button     Button
}

type buttonRepeatTask struct {
	key        KeyCombo
	interval   time.Duration
	nextFire   time.Time
	delayDone  bool
}

// buttonRepeatTable maps (controller, button) to its pending repeat
// task. It is drained by ProcessButtonRepeats and purged wholesale by
// RemoveController.
type buttonRepeatTable struct {
	tasks map[buttonRepeatKey]*buttonRepeatTask
}

func newButtonRepeatTable() *buttonRepeatTable {
	return &buttonRepeatTable{tasks: make(map[buttonRepeatKey]*buttonRepeatTask)}
}

func (t *buttonRepeatTable) insert(id ControllerId, button Button, key KeyCombo, delay, interval time.Duration, now time.Time) {
	t.tasks[buttonRepeatKey{id, button}] = &buttonRepeatTask{
		key:      key,
		interval: interval,
		nextFire: now.Add(delay),
	}
}

func (t *buttonRepeatTable) remove(id ControllerId, button Button) {
	delete(t.tasks, buttonRepeatKey{id, button})
}

func (t *buttonRepeatTable) removeController(id ControllerId) {
	for k := range t.tasks {
		if k.controller == id {
			delete(t.tasks, k)
		}
	}
}

func (t *buttonRepeatTable) empty() bool {
	return len(t.tasks) == 0
}

// nextDue returns the earliest pending nextFire across all tasks.
func (t *buttonRepeatTable) nextDue() (time.Time, bool) {
	var best time.Time
	found := false
	for _, task := range t.tasks {
		if !found || task.nextFire.Before(best) {
			best = task.nextFire
			found = true
		}
	}
	return best, found
}

// process fires every task whose nextFire is due, emitting one KeyTap
// each and rescheduling at now+interval. Ties are resolved in whatever
// order Go's map iteration presents them; tasks are independent so the
// order among them carries no semantics.
func (t *buttonRepeatTable) process(now time.Time, sink Sink) {
	for _, task := range t.tasks {
		if now.Before(task.nextFire) {
			continue
		}
		sink(keyTap(task.key))
		task.delayDone = true
		task.nextFire = now.Add(task.interval)
	}
}
