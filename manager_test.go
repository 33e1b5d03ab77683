package gestaltwerk

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerEmptyTreeFirstLayoutDirtySecondClean(t *testing.T) {
	m := NewManager()
	assert.True(t, m.Layout(800, 600))
	assert.False(t, m.Layout(800, 600))
}

func TestManagerStyledPanelDrawRect(t *testing.T) {
	m := NewManager()
	// The rule's block declares every property this scenario checks;
	// attribute predicates in the matcher (panel(x=5, y=10)) would only
	// filter which panel nodes the rule applies to, not supply values --
	// see DESIGN.md's note on end-to-end scenario 2.
	assert.Nil(t, m.LoadStyles("doc", `panel { x = 5 y = 10 width = 100 height = 20 }`))
	assert.Nil(t, m.AddNodeStr(`panel {}`))
	m.Layout(800, 600)

	obj, ok := m.root.Children()[0].RenderObject()
	assert.True(t, ok)
	assert.Equal(t, Rect{X: 5, Y: 10, Width: 100, Height: 20}, obj.DrawRect)
}

func TestManagerVariableBindingInMatcher(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.LoadStyles("doc", `image(src=v) { image = v }`))
	assert.Nil(t, m.AddNodeStr(`image(src="a.png") {}`))
	m.Layout(800, 600)

	obj, ok := m.root.Children()[0].RenderObject()
	assert.True(t, ok)
	v, ok := obj.Get("image")
	assert.True(t, ok)
	s, _ := v.AsString()
	assert.Equal(t, "a.png", s)
}

func TestManagerExpressionParentWidthMinus20(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.LoadStyles("doc", `box { width = parent_width - 20 }`))
	assert.Nil(t, m.AddNodeStr(`box {}`))
	m.Layout(800, 600)

	obj, ok := m.root.Children()[0].RenderObject()
	assert.True(t, ok)
	assert.Equal(t, int32(780), obj.DrawRect.Width)
}

func TestManagerCascadeOrderAcrossLoadAndRemove(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.LoadStyles("A", `btn { color = "A-color" }`))
	assert.Nil(t, m.LoadStyles("B", `btn { color = "B-color" }`))
	assert.Nil(t, m.AddNodeStr(`btn {}`))
	m.Layout(800, 600)

	btn := m.root.Children()[0]
	obj, _ := btn.RenderObject()
	v, _ := obj.Get("color")
	s, _ := v.AsString()
	assert.Equal(t, "B-color", s)

	m.RemoveStyles("B")
	m.Layout(800, 600)

	obj, _ = btn.RenderObject()
	v, _ = obj.Get("color")
	s, _ = v.AsString()
	assert.Equal(t, "A-color", s, "removing the later document must fall back to the earlier one")
}

func TestManagerClipAndScrollRenderPosition(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.LoadStyles("doc", `
parent { width = 100 height = 100 clip_overflow = true scroll_y = 50 }
child { y = 40 height = 20 width = 50 }
`))
	assert.Nil(t, m.AddNodeStr(`parent { child {} }`))
	m.Layout(800, 600)

	child := m.root.Children()[0].Children()[0]
	rect, ok := child.RenderPosition()
	assert.True(t, ok)
	assert.Equal(t, int32(0), rect.Y, "40 - 50 clips upward to the parent's own y")
	assert.Equal(t, int32(10), rect.Height, "20 - 10 lost to the upward clip")
}

func TestManagerLoadStylesGlobLoadsEveryMatchingFile(t *testing.T) {
	dir := t.TempDir()
	assert.Nil(t, os.WriteFile(dir+"/a.style", []byte(`panel { foreground = "#111111" }`), 0o644))
	assert.Nil(t, os.WriteFile(dir+"/b.style", []byte(`box { foreground = "#222222" }`), 0o644))

	m := NewManager()
	assert.Nil(t, m.LoadStylesGlob(dir+"/*.style"))
	assert.Nil(t, m.AddNodeStr(`panel { box {} }`))

	panel := m.root.Children()[0]
	box := panel.Children()[0]
	assert.NotEmpty(t, m.styles.findMatchingRules(panel))
	assert.NotEmpty(t, m.styles.findMatchingRules(box))
}
