// Package engine declares what the gameplay core needs from the 3D engine that
// hosts it: scene nodes, per-model animation players, a ground raycast and a
// model loader. Rendering, asset parsing and skinning stay on the engine side.
package engine

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Node is a scene-graph node. Transforms are local to the parent.
type Node interface {
	Name() string
	SetTransform(pos mgl64.Vec3, yaw float64)
	Attach(child Node)
	Detach(child Node)
	// Find looks up a descendant by name, e.g. a skeleton bone.
	Find(name string) (Node, bool)
}

// MeshKind names the procedural meshes the core asks the engine to build.
type MeshKind string

const (
	MeshShield    MeshKind = "shield"
	MeshFireball  MeshKind = "fireball"
	MeshAccessory MeshKind = "accessory"
)

type MeshSpec struct {
	Kind   MeshKind
	Name   string
	Radius float64
}

// Scene is the render scene root.
type Scene interface {
	NewMesh(spec MeshSpec) Node
	Add(n Node)
	Remove(n Node)
	SetCamera(pos, target mgl64.Vec3)
	Render()
}

// Clip is an opaque handle to a playable clip owned by an Animator.
type Clip interface {
	Name() string
	// Duration is the clip length, zero when the engine does not know it.
	Duration() time.Duration
}

// Animator plays clips on one model.
type Animator interface {
	Clip(name string) (Clip, bool)
	// CrossFade fades from out (may be nil) to in over blend.
	CrossFade(out, in Clip, blend time.Duration)
	// PlayOnce restarts clip without looping and clamps on the last frame.
	// It returns false when the engine cannot report completion; finished is
	// then never called and the caller must time the clip itself.
	PlayOnce(clip Clip, finished func()) bool
	Update(dt time.Duration)
}

// Ground answers ray queries against the walkable surface.
type Ground interface {
	Raycast(origin, dir mgl64.Vec3) (mgl64.Vec3, bool)
}

// Model is a loaded, scene-ready character asset.
type Model struct {
	Name     string
	Root     Node
	Animator Animator
}

// Loader resolves a model by name and calls done once it is ready.
type Loader interface {
	Load(name string, done func(*Model, error))
}
