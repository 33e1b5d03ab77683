package gestaltwerk

import "weak"

// Rect is the position and size of a node as decided by a layout engine.
type Rect struct {
	X, Y, Width, Height int32
}

// Node is a handle to a node in the tree: an element (which can have
// children) or a text leaf. Node has Go's usual reference semantics --
// every copy of a Node value observes and mutates the same underlying
// state, matching the original's Rc<RefCell<..>> sharing without needing
// an explicit reference-counted wrapper.
type Node struct {
	inner *nodeInner
}

type nodeValueKind int

const (
	nodeElement nodeValueKind = iota
	nodeText
)

type nodeInner struct {
	parent       weak.Pointer[nodeInner]
	kind         nodeValueKind
	name         string // element name, when kind == nodeElement
	text         string // text content, when kind == nodeText
	children     []Node // only used when kind == nodeElement
	properties   map[string]Value
	renderObject *RenderObject
	dirty        bool
	busy         bool // re-entrancy guard: set while a callback may call back into this node
}

func (in *nodeInner) enter() {
	if in.busy {
		panic("gestaltwerk: re-entrant access to a node already being processed")
	}
	in.busy = true
}

func (in *nodeInner) leave() { in.busy = false }

// NewElement creates a new element node with the given name. It starts
// out dirty and without a parent.
func NewElement(name string) Node {
	return Node{inner: &nodeInner{
		kind:       nodeElement,
		name:       name,
		properties: make(map[string]Value),
		dirty:      true,
	}}
}

// NewText creates a new text leaf node.
func NewText(text string) Node {
	return Node{inner: &nodeInner{
		kind:       nodeText,
		text:       text,
		properties: make(map[string]Value),
		dirty:      true,
	}}
}

// newRoot creates the manager's synthetic root element: unlike ordinary
// nodes it starts with a render object already present and clean, so the
// root itself never makes a layout() call dirty; the very first call is
// forced by the size-change check and the Manager's own initial dirty
// flag, matching the original implementation's Manager::new.
func newRoot() Node {
	n := NewElement("")
	n.inner.renderObject = &RenderObject{}
	n.inner.dirty = false
	return n
}

// IsElement reports whether this node is an element (as opposed to text).
func (n Node) IsElement() bool { return n.inner.kind == nodeElement }

// IsText reports whether this node is a text leaf.
func (n Node) IsText() bool { return n.inner.kind == nodeText }

// AddChild appends node as the last child of n. Panics if node already
// has a parent, or if n is a text node (text nodes cannot have children).
func (n Node) AddChild(node Node) {
	if node.inner.parent.Value() != nil {
		panic("gestaltwerk: node already has a parent")
	}
	if n.inner.kind != nodeElement {
		panic("gestaltwerk: text node cannot have child elements")
	}
	node.inner.parent = weak.Make(n.inner)
	n.inner.children = append(n.inner.children, node)
}

// AddChildFirst inserts node as the first child of n. Same panics as
// AddChild.
func (n Node) AddChildFirst(node Node) {
	if node.inner.parent.Value() != nil {
		panic("gestaltwerk: node already has a parent")
	}
	if n.inner.kind != nodeElement {
		panic("gestaltwerk: text node cannot have child elements")
	}
	node.inner.parent = weak.Make(n.inner)
	n.inner.children = append([]Node{node}, n.inner.children...)
}

// RemoveChild removes node from n's children. Panics if node isn't
// currently a child of n. Marks n dirty, but -- mirroring the original
// implementation exactly -- does NOT clear n's cached render object, so
// a stale render object can briefly survive until the next layout pass
// recomputes it.
func (n Node) RemoveChild(node Node) {
	parent := node.inner.parent.Value()
	if parent == nil || parent != n.inner {
		panic("gestaltwerk: node isn't a child of this element")
	}
	if n.inner.kind != nodeElement {
		panic("gestaltwerk: text node cannot have child elements")
	}
	out := n.inner.children[:0:0]
	for _, c := range n.inner.children {
		if c.inner != node.inner {
			out = append(out, c)
		}
	}
	n.inner.children = out
	n.inner.dirty = true
}

// Children returns a copy of n's child slice, empty for text nodes.
func (n Node) Children() []Node {
	if n.inner.kind != nodeElement {
		return nil
	}
	out := make([]Node, len(n.inner.children))
	copy(out, n.inner.children)
	return out
}

// Parent returns n's parent node and whether it has one. A node has no
// parent before being added as a child, or if it is a manager's root.
func (n Node) Parent() (Node, bool) {
	p := n.inner.parent.Value()
	if p == nil {
		return Node{}, false
	}
	return Node{inner: p}, true
}

// Name returns the element name and true, or ("", false) for text nodes.
func (n Node) Name() (string, bool) {
	if n.inner.kind != nodeElement {
		return "", false
	}
	return n.inner.name, true
}

// IsSame reports whether n and other are handles to the same underlying
// node.
func (n Node) IsSame(other Node) bool { return n.inner == other.inner }

// Text returns the text content and true for text nodes, or ("", false)
// for elements.
func (n Node) Text() (string, bool) {
	if n.inner.kind != nodeText {
		return "", false
	}
	return n.inner.text, true
}

// SetText replaces the text of a text node and marks it dirty. No-op on
// element nodes.
func (n Node) SetText(text string) {
	if n.inner.kind != nodeText {
		return
	}
	n.inner.text = text
	n.inner.dirty = true
}

// RenderObject returns the node's current render object. Only meaningful
// after a Manager.Layout call; ok is false if layout has never run for
// this node.
func (n Node) RenderObject() (*RenderObject, bool) {
	return n.inner.renderObject, n.inner.renderObject != nil
}

// HasLayout reports whether the node has had its layout computed at
// least once.
func (n Node) HasLayout() bool { return n.inner.renderObject != nil }

// RawPosition returns the node's draw rect relative to its parent,
// untransformed by scroll or clip. Zero rect if layout hasn't run yet.
func (n Node) RawPosition() Rect {
	if n.inner.renderObject == nil {
		return Rect{}
	}
	return n.inner.renderObject.DrawRect
}

// RenderPosition walks up through ancestors applying scroll offset and
// clip-overflow cropping, returning the node's absolute screen rect. It
// returns ok=false if layout hasn't run, or if cropping reduces the rect
// to zero or negative size at any ancestor. Scroll is subtracted: a
// positive scroll_y moves a parent's viewport down, so its children's
// apparent position shifts up by that same amount (spec.md §8 scenario 6).
func (n Node) RenderPosition() (Rect, bool) {
	if n.inner.renderObject == nil {
		return Rect{}, false
	}
	rect := n.inner.renderObject.DrawRect
	cur := n.inner.parent.Value()
	for cur != nil {
		pObj := cur.renderObject
		if pObj == nil {
			return Rect{}, false
		}
		rect.X -= int32(pObj.ScrollX)
		rect.Y -= int32(pObj.ScrollY)
		if pObj.ClipOverflow {
			if rect.X < 0 {
				rect.Width += rect.X
				rect.X = 0
			}
			if rect.Y < 0 {
				rect.Height += rect.Y
				rect.Y = 0
			}
			if rect.X+rect.Width >= pObj.DrawRect.Width {
				rect.Width -= (rect.X + rect.Width) - pObj.DrawRect.Width
			}
			if rect.Y+rect.Height >= pObj.DrawRect.Height {
				rect.Height -= (rect.Y + rect.Height) - pObj.DrawRect.Height
			}
		}
		if rect.Width <= 0 || rect.Height <= 0 {
			return Rect{}, false
		}
		rect.X += pObj.DrawRect.X
		rect.Y += pObj.DrawRect.Y
		cur = cur.parent.Value()
	}
	return rect, true
}

// GetProperty returns the raw property value set on this node, if any.
func (n Node) GetProperty(key string) (Value, bool) {
	v, ok := n.inner.properties[key]
	return v, ok
}

// SetProperty sets a property and marks the node dirty, so the next
// layout pass recomputes its resolved style variables.
func (n Node) SetProperty(key string, value Value) {
	n.inner.dirty = true
	n.inner.properties[key] = value
}

// RawSetProperty sets a property without marking the node dirty. Used by
// the description parser to set attribute literals on the nodes it
// builds.
func (n Node) RawSetProperty(key string, value Value) {
	n.inner.properties[key] = value
}

// RemoveProperty removes a property and marks the node dirty.
func (n Node) RemoveProperty(key string) {
	n.inner.dirty = true
	delete(n.inner.properties, key)
}

// Weak returns a weak handle to n that does not keep it alive.
func (n Node) Weak() WeakNode { return WeakNode{ptr: weak.Make(n.inner)} }

// WeakNode is a non-owning handle to a Node, used for the parent link so
// that a subtree doesn't keep its ancestors (and, transitively, the
// whole tree) alive once detached.
type WeakNode struct {
	ptr weak.Pointer[nodeInner]
}

// Upgrade tries to recover a strong Node handle. ok is false if nothing
// else references the node anymore.
func (w WeakNode) Upgrade() (Node, bool) {
	p := w.ptr.Value()
	if p == nil {
		return Node{}, false
	}
	return Node{inner: p}, true
}

// checkDirty reports whether n or any descendant is dirty.
func (n Node) checkDirty() bool {
	if n.inner.dirty {
		return true
	}
	if n.inner.kind == nodeElement {
		for _, c := range n.inner.children {
			if c.checkDirty() {
				return true
			}
		}
	}
	return false
}
