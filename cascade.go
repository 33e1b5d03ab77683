package gestaltwerk

// LayoutFactory builds a new LayoutEngine instance for a node whose
// resolved `layout` style var names it, given that node's own render
// object (so the factory can read any vars it needs at construction
// time).
type LayoutFactory func(obj *RenderObject) LayoutEngine

type namedStyleDocument struct {
	name string
	doc  *StyleDocumentAST
}

type terminalKey struct {
	kind MatcherKind
	name string
}

// Styles holds every loaded style document, registered layout-engine
// factories and style functions, plus the rebuilt-on-change cascade
// index. It is owned by a Manager and shared read-only during a layout
// pass (spec.md §5).
type Styles struct {
	documents []namedStyleDocument
	layouts   map[string]LayoutFactory
	funcs     map[string]StyleFunc

	// rulesByTerminal buckets rules by their terminal (rightmost)
	// matcher, in the order they were appended across LoadStyles calls
	// (i.e. oldest-loaded first, and within a document, declaration
	// order). findMatchingRules below walks a bucket in reverse, which
	// is how spec.md §4.3's "last-loaded document wins; within a
	// document, later rule wins" falls out of simple append + reverse.
	rulesByTerminal map[terminalKey][]*StyleRule
}

func newStyles() *Styles {
	return &Styles{
		layouts:         map[string]LayoutFactory{"absolute": func(*RenderObject) LayoutEngine { return AbsoluteLayout{} }},
		funcs:           make(map[string]StyleFunc),
		rulesByTerminal: make(map[terminalKey][]*StyleRule),
	}
}

func (s *Styles) loadDocument(name string, doc *StyleDocumentAST) {
	s.removeDocument(name)
	s.documents = append(s.documents, namedStyleDocument{name: name, doc: doc})
	s.rebuild()
}

func (s *Styles) removeDocument(name string) {
	out := s.documents[:0:0]
	for _, d := range s.documents {
		if d.name != name {
			out = append(out, d)
		}
	}
	s.documents = out
	s.rebuild()
}

func (s *Styles) rebuild() {
	s.rulesByTerminal = make(map[terminalKey][]*StyleRule)
	for _, d := range s.documents {
		for _, rule := range d.doc.Rules {
			if len(rule.Matchers) == 0 {
				continue
			}
			terminal := rule.Matchers[len(rule.Matchers)-1]
			key := terminalKey{kind: terminal.Kind, name: terminal.Name}
			s.rulesByTerminal[key] = append(s.rulesByTerminal[key], rule)
		}
	}
}

// matchedRule is a rule that matched a node, together with the variable
// bindings its attribute-binder predicates produced while walking the
// matcher chain.
type matchedRule struct {
	rule *StyleRule
	vars map[string]Value
}

// findMatchingRules returns every rule matching node, in cascade order:
// the FIRST entry is the one that should win ties for any given property
// (spec.md §4.3's reverse-iteration, first-wins rule).
func (s *Styles) findMatchingRules(node Node) []matchedRule {
	key := terminalKey{kind: MatchText, name: ""}
	if name, ok := node.Name(); ok {
		key = terminalKey{kind: MatchElement, name: name}
	}
	bucket := s.rulesByTerminal[key]
	var out []matchedRule
	for i := len(bucket) - 1; i >= 0; i-- {
		rule := bucket[i]
		if vars, ok := matchRule(node, rule); ok {
			out = append(out, matchedRule{rule: rule, vars: vars})
		}
	}
	return out
}

// matchRule walks rule's matcher chain right-to-left against node and
// its ancestors, per spec.md §4.3's chain-matching algorithm.
func matchRule(node Node, rule *StyleRule) (map[string]Value, bool) {
	vars := make(map[string]Value)
	cur := node
	curValid := true
	for i := len(rule.Matchers) - 1; i >= 0; i-- {
		if !curValid {
			return nil, false
		}
		m := rule.Matchers[i]
		switch m.Kind {
		case MatchText:
			if !cur.IsText() {
				return nil, false
			}
		case MatchElement:
			name, ok := cur.Name()
			if !ok || name != m.Name {
				return nil, false
			}
		}
		for _, attr := range m.Attrs {
			propVal, ok := cur.GetProperty(attr.Key)
			if !ok {
				return nil, false
			}
			if v, ok := attr.Value.(*VarExpr); ok {
				vars[v.Name] = propVal
				continue
			}
			lit, err := evalExpr(&evalEnv{}, attr.Value)
			if err != nil || !lit.Equal(propVal) {
				return nil, false
			}
		}
		p, ok := cur.Parent()
		cur = p
		curValid = ok
	}
	return vars, true
}

func (s *Styles) addLayoutEngine(name string, factory LayoutFactory) {
	s.layouts[name] = factory
}

func (s *Styles) addFunc(name string, fn StyleFunc) {
	s.funcs[name] = fn
}
