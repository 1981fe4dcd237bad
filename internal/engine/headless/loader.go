package headless

import (
	"fmt"

	"github.com/l1jgo/skirmish/internal/anim"
	"github.com/l1jgo/skirmish/internal/data"
	"github.com/l1jgo/skirmish/internal/engine"
)

// Loader builds models from templates: a root node with one child per bone,
// an animator holding the bound clips and the optional accessory mesh.
type Loader struct {
	Models *data.ModelTable
	Scene  *Scene
}

func (l *Loader) Load(name string, done func(*engine.Model, error)) {
	tpl := l.Models.Get(name)
	if tpl == nil {
		done(nil, fmt.Errorf("model %q not found", name))
		return
	}

	root := NewNode(tpl.Name)
	for _, b := range tpl.Bones {
		root.Attach(NewNode(b))
	}

	var clips []*Clip
	for _, a := range anim.Actions() {
		if b, ok := tpl.Binding(a); ok {
			clips = append(clips, NewClip(b.Clip, b.Length))
		}
	}

	if acc := tpl.Accessory; acc != nil {
		mesh := l.Scene.NewMesh(engine.MeshSpec{Kind: engine.MeshAccessory, Name: acc.Name})
		parent := engine.Node(root)
		if bone, ok := root.Find(acc.Bone); ok {
			parent = bone
		}
		parent.Attach(mesh)
	}

	done(&engine.Model{
		Name:     tpl.Name,
		Root:     root,
		Animator: NewAnimator(clips, tpl.ReportsCompletion()),
	}, nil)
}
