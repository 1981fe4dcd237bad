package system

import "time"

// Phase fixes where a system runs inside one frame.
type Phase int

const (
	PhaseInput      Phase = iota // 0: drain key events, queue player commands
	PhaseEvents                  // 1: dispatch last tick's events
	PhaseAnimation               // 2: advance animator clocks
	PhaseMovement                // 3: integrate player + AI steering
	PhaseAI                      // 4: decision timers
	PhaseAbility                 // 5: execute queued ability commands
	PhaseProjectile              // 6: advance, age, collide
	PhaseCamera                  // 7: derive camera transform
	PhaseOutput                  // 8: sync scene nodes, render
	PhaseCleanup                 // 9: destroy queued entities
)

var phaseNames = [...]string{"input", "events", "animation", "movement", "ai", "ability", "projectile", "camera", "output", "cleanup"}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// System is implemented by everything the Runner drives.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
