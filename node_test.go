package gestaltwerk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeAddChildSetsParent(t *testing.T) {
	root := NewElement("root")
	child := NewElement("child")
	root.AddChild(child)

	parent, ok := child.Parent()
	assert.True(t, ok)
	assert.True(t, parent.IsSame(root))
	assert.Len(t, root.Children(), 1)
}

func TestNodeAddChildPanicsIfAlreadyParented(t *testing.T) {
	a := NewElement("a")
	b := NewElement("b")
	child := NewElement("child")
	a.AddChild(child)
	assert.Panics(t, func() { b.AddChild(child) })
}

func TestTextNodeCannotHaveChildren(t *testing.T) {
	text := NewText("hi")
	child := NewElement("child")
	assert.Panics(t, func() { text.AddChild(child) })
}

func TestNodeRemoveChildMarksDirtyButKeepsRenderObject(t *testing.T) {
	root := NewElement("root")
	child := NewElement("child")
	root.AddChild(child)
	root.inner.renderObject = &RenderObject{}
	root.inner.dirty = false

	root.RemoveChild(child)

	assert.True(t, root.inner.dirty)
	assert.NotNil(t, root.inner.renderObject, "RemoveChild must not clear the cached render object")
	assert.Empty(t, root.Children())
}

func TestNodeRemoveChildPanicsIfNotAChild(t *testing.T) {
	root := NewElement("root")
	other := NewElement("other")
	assert.Panics(t, func() { root.RemoveChild(other) })
}

func TestNodeSetPropertyMarksDirty(t *testing.T) {
	n := NewElement("n")
	n.inner.dirty = false
	n.SetProperty("x", Int(5))
	assert.True(t, n.inner.dirty)
	v, ok := n.GetProperty("x")
	assert.True(t, ok)
	assert.Equal(t, int32(5), v.i)
}

func TestNodeRawSetPropertyDoesNotMarkDirty(t *testing.T) {
	n := NewElement("n")
	n.inner.dirty = false
	n.RawSetProperty("x", Int(5))
	assert.False(t, n.inner.dirty)
}

func TestNodeWeakUpgrade(t *testing.T) {
	n := NewElement("n")
	weak := n.Weak()
	got, ok := weak.Upgrade()
	assert.True(t, ok)
	assert.True(t, got.IsSame(n))
}

func TestRenderPositionAppliesScrollAndClip(t *testing.T) {
	root := NewElement("root")
	child := NewElement("child")
	root.AddChild(child)

	root.inner.renderObject = &RenderObject{
		DrawRect:     Rect{X: 0, Y: 0, Width: 50, Height: 50},
		ScrollX:      5,
		ScrollY:      0,
		ClipOverflow: true,
	}
	child.inner.renderObject = &RenderObject{
		DrawRect: Rect{X: 10, Y: 10, Width: 20, Height: 20},
	}

	rect, ok := child.RenderPosition()
	assert.True(t, ok)
	assert.Equal(t, int32(5), rect.X, "child x shifted left by parent scroll_x")
	assert.Equal(t, int32(10), rect.Y)
	assert.Equal(t, int32(20), rect.Width)
	assert.Equal(t, int32(20), rect.Height)
}

func TestRenderPositionFailsWhenClippedToNothing(t *testing.T) {
	root := NewElement("root")
	child := NewElement("child")
	root.AddChild(child)

	root.inner.renderObject = &RenderObject{
		DrawRect:     Rect{X: 0, Y: 0, Width: 10, Height: 10},
		ScrollX:      100,
		ClipOverflow: true,
	}
	child.inner.renderObject = &RenderObject{
		DrawRect: Rect{X: 5, Y: 5, Width: 5, Height: 5},
	}

	_, ok := child.RenderPosition()
	assert.False(t, ok)
}

func TestNodeReentrancyGuardPanics(t *testing.T) {
	n := NewElement("n")
	n.inner.enter()
	assert.Panics(t, func() { n.inner.enter() })
	n.inner.leave()
	assert.NotPanics(t, func() { n.inner.enter() })
}
