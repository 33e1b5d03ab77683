package gestaltwerk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDescriptionElementWithAttrsAndChildren(t *testing.T) {
	node, err := ParseDescription(`panel(x=5, y=-10, visible=true) { box {} "leaf" }`)
	assert.Nil(t, err)
	name, ok := node.Name()
	assert.True(t, ok)
	assert.Equal(t, "panel", name)

	x, ok := node.GetProperty("x")
	assert.True(t, ok)
	xi, _ := x.AsInt()
	assert.Equal(t, int32(5), xi)

	y, ok := node.GetProperty("y")
	assert.True(t, ok)
	yi, _ := y.AsInt()
	assert.Equal(t, int32(-10), yi)

	visible, ok := node.GetProperty("visible")
	assert.True(t, ok)
	vb, _ := visible.AsBool()
	assert.True(t, vb)

	assert.Len(t, node.Children(), 2)
}

func TestParseDescriptionBareTextLiteral(t *testing.T) {
	node, err := ParseDescription(`"hello world"`)
	assert.Nil(t, err)
	assert.True(t, node.IsText())
	text, ok := node.Text()
	assert.True(t, ok)
	assert.Equal(t, "hello world", text)
}

func TestParseDescriptionTextWithAttrs(t *testing.T) {
	node, err := ParseDescription(`"hi"(render="figlet")`)
	assert.Nil(t, err)
	v, ok := node.GetProperty("render")
	assert.True(t, ok)
	s, _ := v.AsString()
	assert.Equal(t, "figlet", s)
}

func TestParseDescriptionRejectsTrailingInput(t *testing.T) {
	_, err := ParseDescription(`panel {} box {}`)
	assert.NotNil(t, err, "only a single top-level node is allowed")
}

func TestParseDescriptionRejectsNegatedString(t *testing.T) {
	_, err := ParseDescription(`panel(x=-"no") {}`)
	assert.NotNil(t, err)
}

func TestParseDescriptionRejectsNegatedBoolean(t *testing.T) {
	_, err := ParseDescription(`panel(x=-true) {}`)
	assert.NotNil(t, err)
}

func TestParseDescriptionRejectsUnknownIdentifierLiteral(t *testing.T) {
	_, err := ParseDescription(`panel(x=somevar) {}`)
	assert.NotNil(t, err, "the description language has no variable binders, unlike the style language")
}

func TestParseDescriptionEmptyElementHasNoChildren(t *testing.T) {
	node, err := ParseDescription(`panel {}`)
	assert.Nil(t, err)
	assert.Empty(t, node.Children())
}
