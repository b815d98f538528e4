package engine

import "time"

// stickRepeatKind discriminates which side-state field a scheduled
// repeat task re-evaluates when it fires.
type stickRepeatKind int

const (
	repeatArrows stickRepeatKind = iota
	repeatStepper
)

type stickKey struct {
	controller ControllerId
	side       stickSide
}

// stickRepeatTask is one entry in the repeat heap. gen is compared
// against the owning sideRuntime's generation counter at pop time: a
// mismatch means the chain it belonged to was cancelled (direction
// changed, axis released, controller removed) since it was scheduled,
// so the task is discarded instead of fired — lazy invalidation rather
// than an O(n) heap-removal on every cancel.
type stickRepeatTask struct {
	key    stickKey
	kind   stickRepeatKind
	gen    uint64
	fireAt time.Time
}

// stickRepeatHeap is a small binary min-heap ordered by fireAt. It is
// intentionally hand-rolled rather than wrapped in container/heap: the
// element count per process is bounded by 2 sides * a handful of
// controllers, so the constant-factor simplicity of direct slice
// operations reads better than satisfying heap.Interface for this size.
type stickRepeatHeap struct {
	items []*stickRepeatTask
}

func (h *stickRepeatHeap) push(t *stickRepeatTask) {
	h.items = append(h.items, t)
	i := len(h.items) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !h.items[i].fireAt.Before(h.items[parent].fireAt) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *stickRepeatHeap) peek() (*stickRepeatTask, bool) {
	if len(h.items) == 0 {
		return nil, false
	}
	return h.items[0], true
}

func (h *stickRepeatHeap) pop() (*stickRepeatTask, bool) {
	n := len(h.items)
	if n == 0 {
		return nil, false
	}
	top := h.items[0]
	n--
	h.items[0] = h.items[n]
	h.items = h.items[:n]
	i := 0
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < n && h.items[left].fireAt.Before(h.items[smallest].fireAt) {
			smallest = left
		}
		if right < n && h.items[right].fireAt.Before(h.items[smallest].fireAt) {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
	return top, true
}

func (h *stickRepeatHeap) empty() bool {
	return len(h.items) == 0
}
