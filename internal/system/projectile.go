package system

import (
	"time"

	coresys "github.com/l1jgo/skirmish/internal/core/system"
	"github.com/l1jgo/skirmish/internal/projectile"
)

// ProjectileSystem advances and resolves fireballs. Phase 6 (Projectile).
type ProjectileSystem struct {
	mgr *projectile.Manager
}

func NewProjectileSystem(mgr *projectile.Manager) *ProjectileSystem {
	return &ProjectileSystem{mgr: mgr}
}

func (s *ProjectileSystem) Phase() coresys.Phase { return coresys.PhaseProjectile }

func (s *ProjectileSystem) Update(dt time.Duration) {
	s.mgr.Update(dt)
}
