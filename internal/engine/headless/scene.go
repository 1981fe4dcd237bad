package headless

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/l1jgo/skirmish/internal/engine"
)

// Scene is a root node plus a camera. Render only counts frames.
type Scene struct {
	root      *Node
	camPos    mgl64.Vec3
	camTarget mgl64.Vec3
	frames    uint64
	log       *zap.Logger
}

func NewScene(log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scene{root: NewNode("scene"), log: log}
}

func (s *Scene) Root() *Node { return s.root }

// NewMesh builds a detached mesh node.
func (s *Scene) NewMesh(spec engine.MeshSpec) engine.Node {
	n := NewNode(spec.Name)
	n.kind = spec.Kind
	n.radius = spec.Radius
	return n
}

func (s *Scene) Add(n engine.Node)    { s.root.Attach(n) }
func (s *Scene) Remove(n engine.Node) { s.root.Detach(n) }

// Contains reports whether n is a direct child of the scene root.
func (s *Scene) Contains(n engine.Node) bool {
	hn, ok := n.(*Node)
	return ok && hn.parent == s.root
}

func (s *Scene) SetCamera(pos, target mgl64.Vec3) {
	s.camPos = pos
	s.camTarget = target
}

func (s *Scene) Camera() (pos, target mgl64.Vec3) { return s.camPos, s.camTarget }

func (s *Scene) Render() {
	s.frames++
	if ce := s.log.Check(zap.DebugLevel, "frame"); ce != nil {
		ce.Write(
			zap.Uint64("frame", s.frames),
			zap.Int("nodes", len(s.root.children)),
			zap.Int("fireballs", s.root.CountKind(engine.MeshFireball)),
			zap.Int("shields", s.root.CountKind(engine.MeshShield)),
		)
	}
}

func (s *Scene) Frames() uint64 { return s.frames }
