package ability

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/l1jgo/skirmish/internal/core/ecs"
)

// Command is an ability request captured for the ability phase of the current tick.
type Command struct {
	Actor   ecs.EntityID
	Ability Kind

	// Optional explicit targeting. Left zero, the executor resolves targets
	// for the actor: player aim / ground raycast, or AI targeting.
	Direction mgl64.Vec3
	Point     mgl64.Vec3
	HasPoint  bool
}

// Queue collects commands from input and AI until the ability phase drains it.
type Queue struct {
	cmds []Command
}

func NewQueue() *Queue {
	return &Queue{cmds: make([]Command, 0, 8)}
}

func (q *Queue) Push(c Command) {
	q.cmds = append(q.cmds, c)
}

func (q *Queue) Len() int { return len(q.cmds) }

// Drain hands every queued command to fn in push order and empties the queue.
// Commands pushed by fn wait for the next drain.
func (q *Queue) Drain(fn func(Command)) int {
	cmds := q.cmds
	q.cmds = make([]Command, 0, cap(cmds))
	for _, c := range cmds {
		fn(c)
	}
	return len(cmds)
}
