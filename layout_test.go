package gestaltwerk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbsoluteLayoutPanelWithFixedRect(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.LoadStyles("doc", `panel { x = 5 y = 10 width = 100 height = 20 }`))
	assert.Nil(t, m.AddNodeStr(`panel {}`))

	m.Layout(800, 600)

	panel := m.root.Children()[0]
	obj, ok := panel.RenderObject()
	assert.True(t, ok)
	assert.Equal(t, Rect{X: 5, Y: 10, Width: 100, Height: 20}, obj.DrawRect)
}

func TestAbsoluteLayoutUnconstrainedTextSizesToContent(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.AddNodeStr(`panel { "hello" }`))
	m.Layout(800, 600)

	text := m.root.Children()[0].Children()[0]
	obj, ok := text.RenderObject()
	assert.True(t, ok)
	assert.Equal(t, int32(5), obj.DrawRect.Width)
}

func TestAbsoluteLayoutParentWidthHeightVars(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.LoadStyles("doc", `panel { width = parent_width height = parent_height }`))
	assert.Nil(t, m.AddNodeStr(`panel {}`))
	m.Layout(320, 240)

	panel := m.root.Children()[0]
	obj, ok := panel.RenderObject()
	assert.True(t, ok)
	assert.Equal(t, int32(320), obj.DrawRect.Width)
	assert.Equal(t, int32(240), obj.DrawRect.Height)
}

func TestAbsoluteLayoutFinalizeAutoSizeGrowsToChildren(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.LoadStyles("doc", `
panel { auto_size = true }
box { x = 10 y = 10 width = 30 height = 5 }
`))
	assert.Nil(t, m.AddNodeStr(`panel { box {} }`))
	m.Layout(800, 600)

	panel := m.root.Children()[0]
	obj, ok := panel.RenderObject()
	assert.True(t, ok)
	assert.Equal(t, int32(40), obj.DrawRect.Width)
	assert.Equal(t, int32(15), obj.DrawRect.Height)
}

func TestAbsoluteLayoutFinalizeAutoSizeClampedToMax(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.LoadStyles("doc", `
panel { auto_size = true max_width = 20 max_height = 20 }
box { x = 10 y = 10 width = 30 height = 30 }
`))
	assert.Nil(t, m.AddNodeStr(`panel { box {} }`))
	m.Layout(800, 600)

	panel := m.root.Children()[0]
	obj, ok := panel.RenderObject()
	assert.True(t, ok)
	assert.Equal(t, int32(20), obj.DrawRect.Width)
	assert.Equal(t, int32(20), obj.DrawRect.Height)
}

func TestLayoutFirstPassIsDirtySecondPassIsNot(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.AddNodeStr(`panel {}`))

	assert.True(t, m.Layout(800, 600), "first layout against a freshly built tree must report dirty")
	assert.False(t, m.Layout(800, 600), "relayout with nothing changed must report clean")
}

func TestLayoutBadPropertyExpressionIsDroppedNotFatal(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.LoadStyles("doc", `panel { width = nonexistent_var }`))
	assert.Nil(t, m.AddNodeStr(`panel {}`))

	assert.NotPanics(t, func() { m.Layout(800, 600) })
	panel := m.root.Children()[0]
	obj, ok := panel.RenderObject()
	assert.True(t, ok)
	assert.Equal(t, int32(0), obj.DrawRect.Width, "an unresolved property falls back as if absent")

	assert.Equal(t, 1, m.log.Length(), "the evaluation failure must be recorded in the diagnostic log")
}

func TestLayoutScrollAndClipReservedPropertiesRouteToFields(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.LoadStyles("doc", `panel { scroll_x = 3 clip_overflow = true }`))
	assert.Nil(t, m.AddNodeStr(`panel {}`))
	m.Layout(800, 600)

	panel := m.root.Children()[0]
	obj, ok := panel.RenderObject()
	assert.True(t, ok)
	assert.Equal(t, 3.0, obj.ScrollX)
	assert.True(t, obj.ClipOverflow)
}
