package schedule

import (
	"container/heap"
	"time"

	"github.com/l1jgo/skirmish/internal/core/ecs"
)

// Handle identifies one scheduled callback. The zero Handle is never issued.
type Handle struct {
	id uint64
}

func (h Handle) Valid() bool { return h.id != 0 }

type timer struct {
	id    uint64
	due   time.Duration
	owner ecs.EntityID
	fn    func()
	index int
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].due == h[j].due {
		return h[i].id < h[j].id
	}
	return h[i].due < h[j].due
}
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Scheduler runs deferred callbacks against the game clock. It is advanced
// between ticks by the session, never from inside a system.
//
// Each callback may name an owner entity; when the owner is no longer alive at
// fire time the callback is dropped instead of run.
type Scheduler struct {
	now    time.Duration
	nextID uint64
	queue  timerHeap
	byID   map[uint64]*timer
	alive  func(ecs.EntityID) bool
}

// New returns a scheduler at time zero. alive may be nil, in which case owners
// are never considered dead.
func New(alive func(ecs.EntityID) bool) *Scheduler {
	return &Scheduler{
		byID:  make(map[uint64]*timer),
		alive: alive,
	}
}

// Now is the game clock: the sum of every Advance so far.
func (s *Scheduler) Now() time.Duration { return s.now }

// Pending counts callbacks waiting to fire.
func (s *Scheduler) Pending() int { return len(s.queue) }

// After schedules fn to run once the clock has moved d past now. A zero owner
// opts out of the liveness check.
func (s *Scheduler) After(owner ecs.EntityID, d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	s.nextID++
	t := &timer{id: s.nextID, due: s.now + d, owner: owner, fn: fn}
	heap.Push(&s.queue, t)
	s.byID[t.id] = t
	return Handle{id: t.id}
}

// Cancel drops a pending callback. Returns false if it already ran or was cancelled.
func (s *Scheduler) Cancel(h Handle) bool {
	t, ok := s.byID[h.id]
	if !ok {
		return false
	}
	s.drop(t)
	return true
}

// Scheduled reports whether h is still waiting to fire.
func (s *Scheduler) Scheduled(h Handle) bool {
	_, ok := s.byID[h.id]
	return ok
}

// CancelOwner drops every pending callback owned by id.
func (s *Scheduler) CancelOwner(id ecs.EntityID) int {
	if id.IsZero() {
		return 0
	}
	n := 0
	for hid, t := range s.byID {
		if t.owner == id {
			delete(s.byID, hid)
			if t.index >= 0 {
				heap.Remove(&s.queue, t.index)
			}
			n++
		}
	}
	return n
}

// Advance moves the clock forward by dt and runs every callback now due, in
// due-time order. Callbacks scheduled while advancing wait for the next call,
// even with a zero delay. Returns how many callbacks ran.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt > 0 {
		s.now += dt
	}
	limit := s.nextID
	fired := 0
	var deferred []*timer
	for len(s.queue) > 0 && s.queue[0].due <= s.now {
		t := heap.Pop(&s.queue).(*timer)
		if t.id > limit {
			deferred = append(deferred, t)
			continue
		}
		delete(s.byID, t.id)
		if !t.owner.IsZero() && s.alive != nil && !s.alive(t.owner) {
			continue
		}
		t.fn()
		fired++
	}
	for _, t := range deferred {
		if _, live := s.byID[t.id]; live {
			heap.Push(&s.queue, t)
		}
	}
	return fired
}

// drop forgets t. Timers popped mid-Advance have index -1 and are no longer in the heap.
func (s *Scheduler) drop(t *timer) {
	delete(s.byID, t.id)
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
}
