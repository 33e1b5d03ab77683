package gestaltwerk

// Visitor is the external renderer callback invoked per node during
// traversal (spec.md §4.7, §6.2). Visit is called pre-order; VisitEnd
// runs post-order, after all of a node's children have been visited, and
// defaults to a no-op via BaseVisitor embedding.
type Visitor interface {
	Visit(obj *RenderObject)
	VisitEnd(obj *RenderObject)
}

// BaseVisitor supplies a no-op VisitEnd so concrete visitors only need to
// implement Visit, embedding BaseVisitor to satisfy the rest of the
// interface -- the same "default no-op" pattern spec.md §6.2 calls for.
type BaseVisitor struct{}

func (BaseVisitor) VisitEnd(*RenderObject) {}

// renderNode walks node and its subtree depth-first, calling visitor.Visit
// pre-order and visitor.VisitEnd post-order, grounded on
// original_source/src/lib.rs's Node::render.
func renderNode(node Node, visitor Visitor) {
	in := node.inner
	if in.renderObject != nil {
		in.enter()
		visitor.Visit(in.renderObject)
		in.leave()
	}
	for _, c := range node.Children() {
		renderNode(c, visitor)
	}
	if in.renderObject != nil {
		in.enter()
		visitor.VisitEnd(in.renderObject)
		in.leave()
	}
}
