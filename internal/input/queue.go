package input

// Queue hands events from the host goroutine to the tick loop.
type Queue struct {
	ch chan Event
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 1
	}
	return &Queue{ch: make(chan Event, size)}
}

// Push never blocks. It returns false and drops ev when the queue is full.
func (q *Queue) Push(ev Event) bool {
	select {
	case q.ch <- ev:
		return true
	default:
		return false
	}
}

// Drain hands at most limit queued events to fn, oldest first. limit <= 0 drains
// whatever is queued right now.
func (q *Queue) Drain(limit int, fn func(Event)) int {
	if limit <= 0 {
		limit = len(q.ch)
	}
	n := 0
	for n < limit {
		select {
		case ev := <-q.ch:
			fn(ev)
			n++
		default:
			return n
		}
	}
	return n
}

func (q *Queue) Len() int { return len(q.ch) }
