package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/l1jgo/skirmish/internal/core/system"
	"github.com/l1jgo/skirmish/internal/world"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// Phase 9 (Cleanup).
type CleanupSystem struct {
	world *world.State
	log   *zap.Logger
}

func NewCleanupSystem(ws *world.State, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{world: ws, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	if ids := s.world.Flush(); len(ids) > 0 {
		s.log.Debug("entities destroyed", zap.Int("count", len(ids)))
	}
}
