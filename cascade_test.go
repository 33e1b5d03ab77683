package gestaltwerk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCascadeLastLoadedDocumentWins(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.LoadStyles("base", `panel { foreground = "#111111" }`))
	assert.Nil(t, m.LoadStyles("override", `panel { foreground = "#222222" }`))

	assert.Nil(t, m.AddNodeStr(`panel {}`))
	panel := m.root.Children()[0]

	rules := m.styles.findMatchingRules(panel)
	assert.NotEmpty(t, rules)
	assert.True(t, rules[0].rule.Matchers[0].Name == "panel")
	expr, ok := rules[0].rule.firstProperty("foreground")
	assert.True(t, ok)
	v, err := evalExpr(&evalEnv{}, expr)
	assert.Nil(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "#222222", s, "the rule from the last-loaded document must come first")
}

func TestCascadeLaterRuleInSameDocumentWins(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.LoadStyles("doc", `
panel { foreground = "#111111" }
panel { foreground = "#222222" }
`))
	assert.Nil(t, m.AddNodeStr(`panel {}`))
	panel := m.root.Children()[0]

	rules := m.styles.findMatchingRules(panel)
	assert.Len(t, rules, 2)
	expr, ok := rules[0].rule.firstProperty("foreground")
	assert.True(t, ok)
	v, err := evalExpr(&evalEnv{}, expr)
	assert.Nil(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "#222222", s, "within a document, the later declared rule must come first")
}

func TestCascadeRemoveDocumentDropsItsRules(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.LoadStyles("doc", `panel { foreground = "#111111" }`))
	assert.Nil(t, m.AddNodeStr(`panel {}`))
	panel := m.root.Children()[0]
	assert.NotEmpty(t, m.styles.findMatchingRules(panel))

	m.RemoveStyles("doc")
	assert.Empty(t, m.styles.findMatchingRules(panel))
}

func TestCascadeAttrLiteralMustMatchExactly(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.LoadStyles("doc", `@text(render="figlet") { foreground = "#bb9af7" }`))
	assert.Nil(t, m.AddNodeStr(`panel { "hi"(render="plain") }`))
	panel := m.root.Children()[0]
	text := panel.Children()[0]

	assert.Empty(t, m.styles.findMatchingRules(text), "literal predicate must not match a differing value")

	text.SetProperty("render", String("figlet"))
	assert.NotEmpty(t, m.styles.findMatchingRules(text))
}

func TestCascadeAttrBinderAlwaysMatchesAndBindsValue(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.LoadStyles("doc", `@text(render=mode) { foreground = "#bb9af7" }`))
	assert.Nil(t, m.AddNodeStr(`panel { "hi"(render="anything") }`))
	panel := m.root.Children()[0]
	text := panel.Children()[0]

	matches := m.styles.findMatchingRules(text)
	assert.Len(t, matches, 1)
	bound, ok := matches[0].vars["mode"]
	assert.True(t, ok)
	s, _ := bound.AsString()
	assert.Equal(t, "anything", s)
}

func TestCascadeAttrPredicateMissingPropertyFailsMatch(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.LoadStyles("doc", `@text(render=mode) { foreground = "#bb9af7" }`))
	assert.Nil(t, m.AddNodeStr(`panel { "hi" }`))
	panel := m.root.Children()[0]
	text := panel.Children()[0]

	assert.Empty(t, m.styles.findMatchingRules(text), "attribute predicate requires the property to exist")
}

func TestCascadeChainedMatchersWalkAncestors(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.LoadStyles("doc", `panel > @text { foreground = "#eeeeee" }`))
	assert.Nil(t, m.AddNodeStr(`panel { box { "hi" } "direct" }`))
	panel := m.root.Children()[0]
	box := panel.Children()[0]
	nested := box.Children()[0]
	direct := panel.Children()[1]

	assert.Empty(t, m.styles.findMatchingRules(nested), "text is nested under box, not directly under panel")
	assert.NotEmpty(t, m.styles.findMatchingRules(direct), "text is a direct child of panel, matching the chain")

	assert.Nil(t, m.AddNodeStr(`other { "bye" }`))
	otherText := m.root.Children()[1].Children()[0]
	assert.Empty(t, m.styles.findMatchingRules(otherText), "other is not named panel")
}
