// Package headless is an in-memory engine for the command-line host and for
// tests. It keeps a scene graph and clip timing but draws nothing.
package headless

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/l1jgo/skirmish/internal/engine"
)

// Node is a plain scene-graph node.
type Node struct {
	name     string
	kind     engine.MeshKind
	radius   float64
	pos      mgl64.Vec3
	yaw      float64
	parent   *Node
	children []*Node
}

func NewNode(name string) *Node {
	return &Node{name: name}
}

func (n *Node) Name() string          { return n.name }
func (n *Node) Kind() engine.MeshKind { return n.kind }
func (n *Node) Radius() float64       { return n.radius }
func (n *Node) Position() mgl64.Vec3  { return n.pos }
func (n *Node) Yaw() float64          { return n.yaw }
func (n *Node) Parent() *Node         { return n.parent }
func (n *Node) Children() []*Node     { return n.children }
func (n *Node) SetTransform(pos mgl64.Vec3, yaw float64) {
	n.pos = pos
	n.yaw = yaw
}

// Attach reparents child under n.
func (n *Node) Attach(child engine.Node) {
	c, ok := child.(*Node)
	if !ok || c == nil || c == n {
		return
	}
	if c.parent != nil {
		c.parent.Detach(c)
	}
	c.parent = n
	n.children = append(n.children, c)
}

// Detach removes child if it is a direct child of n.
func (n *Node) Detach(child engine.Node) {
	c, ok := child.(*Node)
	if !ok || c == nil || c.parent != n {
		return
	}
	for i, ch := range n.children {
		if ch == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			break
		}
	}
	c.parent = nil
}

// Find searches descendants depth first.
func (n *Node) Find(name string) (engine.Node, bool) {
	for _, c := range n.children {
		if c.name == name {
			return c, true
		}
		if found, ok := c.Find(name); ok {
			return found, true
		}
	}
	return nil, false
}

// CountKind counts descendants built as meshes of kind k.
func (n *Node) CountKind(k engine.MeshKind) int {
	total := 0
	for _, c := range n.children {
		if c.kind == k {
			total++
		}
		total += c.CountKind(k)
	}
	return total
}
