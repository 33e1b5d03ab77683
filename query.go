package gestaltwerk

// Comparator is the comparison used by a Property query step.
type Comparator int

const (
	CmpEq Comparator = iota
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

type queryStepKind int

const (
	stepName queryStepKind = iota
	stepText
	stepProperty
	stepChild
	stepDescendant
)

type queryStep struct {
	kind    queryStepKind
	name    string
	propKey string
	cmp     Comparator
	propVal Value
}

// Query is the query sublanguage's builder (spec.md §4.8): a root node
// plus an ordered list of rule steps plus an optional point filter.
// Methods return the Query itself so steps can be chained.
type Query struct {
	root  Node
	steps []queryStep
	point *queryPoint
}

type queryPoint struct{ x, y int32 }

func newQuery(root Node) *Query { return &Query{root: root} }

func newQueryAt(root Node, x, y int32) *Query {
	return &Query{root: root, point: &queryPoint{x: x, y: y}}
}

// Name filters the current frontier to element nodes with the given name.
func (q *Query) Name(name string) *Query {
	q.steps = append(q.steps, queryStep{kind: stepName, name: name})
	return q
}

// Text filters the current frontier to text nodes.
func (q *Query) Text() *Query {
	q.steps = append(q.steps, queryStep{kind: stepText})
	return q
}

// Property filters the current frontier to nodes whose property key
// compares as cmp against v. Equality is defined by Value.Equal;
// ordering comparators (<, <=, >, >=) only match when both sides are
// numeric.
func (q *Query) Property(key string, cmp Comparator, v Value) *Query {
	q.steps = append(q.steps, queryStep{kind: stepProperty, propKey: key, cmp: cmp, propVal: v})
	return q
}

// Child descends into the immediate children of every node currently in
// the frontier.
func (q *Query) Child() *Query {
	q.steps = append(q.steps, queryStep{kind: stepChild})
	return q
}

// Descendant descends into the entire subtree (in document order) of
// every node currently in the frontier.
func (q *Query) Descendant() *Query {
	q.steps = append(q.steps, queryStep{kind: stepDescendant})
	return q
}

// Run executes the query and returns the matching nodes, deduplicated by
// identity and in deterministic (document/insertion) order.
func (q *Query) Run() []Node {
	frontier := []Node{q.root}
	for _, step := range q.steps {
		switch step.kind {
		case stepChild:
			var next []Node
			for _, n := range frontier {
				for _, c := range n.Children() {
					if q.point != nil && !q.mayContainPoint(c) {
						continue
					}
					next = append(next, c)
				}
			}
			frontier = next
		case stepDescendant:
			var next []Node
			for _, n := range frontier {
				appendDescendants(n, q, &next)
			}
			frontier = next
		case stepName:
			frontier = filterNodes(frontier, func(n Node) bool {
				name, ok := n.Name()
				return ok && name == step.name
			})
		case stepText:
			frontier = filterNodes(frontier, func(n Node) bool { return n.IsText() })
		case stepProperty:
			frontier = filterNodes(frontier, func(n Node) bool {
				v, ok := n.GetProperty(step.propKey)
				if !ok {
					return false
				}
				return compareValues(v, step.cmp, step.propVal)
			})
		}
	}
	if q.point != nil {
		frontier = filterNodes(frontier, func(n Node) bool {
			rect, ok := n.RenderPosition()
			if !ok {
				return false
			}
			return rectContains(rect, q.point.x, q.point.y)
		})
	}
	return dedupNodes(frontier)
}

// mayContainPoint reports whether n's own render rectangle could still
// contain the query's point, used to prune subtrees early instead of
// descending into geometry that's already clipped away.
func (q *Query) mayContainPoint(n Node) bool {
	rect, ok := n.RenderPosition()
	if !ok {
		return false
	}
	return rectContains(rect, q.point.x, q.point.y)
}

func appendDescendants(n Node, q *Query, out *[]Node) {
	for _, c := range n.Children() {
		if q.point != nil && !q.mayContainPoint(c) {
			continue
		}
		*out = append(*out, c)
		appendDescendants(c, q, out)
	}
}

func rectContains(r Rect, x, y int32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

func compareValues(a Value, cmp Comparator, b Value) bool {
	if cmp == CmpEq {
		return a.Equal(b)
	}
	af, aok := a.Float64()
	bf, bok := b.Float64()
	if !aok || !bok {
		return false
	}
	switch cmp {
	case CmpLt:
		return af < bf
	case CmpLe:
		return af <= bf
	case CmpGt:
		return af > bf
	case CmpGe:
		return af >= bf
	default:
		return false
	}
}

func filterNodes(nodes []Node, pred func(Node) bool) []Node {
	out := nodes[:0:0]
	for _, n := range nodes {
		if pred(n) {
			out = append(out, n)
		}
	}
	return out
}

func dedupNodes(nodes []Node) []Node {
	seen := make(map[*nodeInner]bool, len(nodes))
	out := nodes[:0:0]
	for _, n := range nodes {
		if seen[n.inner] {
			continue
		}
		seen[n.inner] = true
		out = append(out, n)
	}
	return out
}
