package gestaltwerk

import "github.com/rivo/uniseg"

// LayoutEngine positions a node's children. Instances are owned per
// node: a node's render object holds the engine that positions *its*
// children, selected via the `layout` style variable (spec.md §4.6).
type LayoutEngine interface {
	PrePositionChild(obj, parent *RenderObject)
	PostPositionChild(obj, parent *RenderObject)
	FinalizeLayout(obj *RenderObject, children []*RenderObject)
}

// AbsoluteLayout is the built-in, default layout engine: it copies x, y,
// width and height directly from resolved style vars (spec.md §4.6
// "Absolute layout").
type AbsoluteLayout struct{}

func (AbsoluteLayout) PrePositionChild(obj, _ *RenderObject) {
	x, _ := obj.GetInt("x")
	y, _ := obj.GetInt("y")
	width, hasWidth := obj.GetInt("width")
	height, hasHeight := obj.GetInt("height")

	w := width
	if !hasWidth {
		if mw, ok := obj.GetInt("min_width"); ok {
			w = mw
		} else if obj.Text != "" {
			// Natural content width for an unconstrained text node:
			// grapheme-cluster aware so double-width/combining runes
			// size correctly, rather than a naive len(string).
			w = int32(uniseg.StringWidth(obj.Text))
		} else {
			w = 0
		}
	}
	h := height
	if !hasHeight {
		if mh, ok := obj.GetInt("min_height"); ok {
			h = mh
		} else {
			h = 0
		}
	}

	obj.DrawRect = Rect{X: x, Y: y, Width: w, Height: h}
	obj.MinWidth = obj.DrawRect.Width
	obj.MinHeight = obj.DrawRect.Height

	if hasWidth {
		v := width
		obj.MaxWidth = &v
	} else if mw, ok := obj.GetInt("max_width"); ok {
		v := mw
		obj.MaxWidth = &v
	} else {
		obj.MaxWidth = nil
	}
	if hasHeight {
		v := height
		obj.MaxHeight = &v
	} else if mh, ok := obj.GetInt("max_height"); ok {
		v := mh
		obj.MaxHeight = &v
	} else {
		obj.MaxHeight = nil
	}
}

func (AbsoluteLayout) PostPositionChild(*RenderObject, *RenderObject) {}

func (AbsoluteLayout) FinalizeLayout(obj *RenderObject, children []*RenderObject) {
	autoSize, _ := obj.GetBool("auto_size")
	if !autoSize {
		return
	}
	maxW, maxH := obj.MinWidth, obj.MinHeight
	for _, c := range children {
		if x := c.DrawRect.X + c.DrawRect.Width; x > maxW {
			maxW = x
		}
		if y := c.DrawRect.Y + c.DrawRect.Height; y > maxH {
			maxH = y
		}
	}
	if obj.MaxWidth != nil && maxW > *obj.MaxWidth {
		maxW = *obj.MaxWidth
	}
	if obj.MaxHeight != nil && maxH > *obj.MaxHeight {
		maxH = *obj.MaxHeight
	}
	obj.DrawRect.Width = maxW
	obj.DrawRect.Height = maxH
}

// applyCascade resolves node's matching style rules into obj, applying
// the reserved scroll_x/scroll_y/clip_overflow properties to the
// dedicated RenderObject fields and everything else into obj's vars map,
// both under the same reverse-iteration, first-wins rule (spec.md §4.3,
// §4.6 step 1).
func applyCascade(node Node, obj *RenderObject, styles *Styles, parentRect Rect, log *Log) {
	scrollXSet, scrollYSet, clipSet := false, false, false
	for _, mr := range styles.findMatchingRules(node) {
		env := &evalEnv{vars: mr.vars, funcs: styles.funcs, parentRect: parentRect}
		for _, key := range mr.rule.propertyKeys() {
			switch key {
			case "scroll_x":
				if scrollXSet {
					continue
				}
				if v, ok := resolveProperty(env, mr.rule, key, log); ok {
					if f, ok := v.Float64(); ok {
						obj.ScrollX = f
						scrollXSet = true
					}
				}
			case "scroll_y":
				if scrollYSet {
					continue
				}
				if v, ok := resolveProperty(env, mr.rule, key, log); ok {
					if f, ok := v.Float64(); ok {
						obj.ScrollY = f
						scrollYSet = true
					}
				}
			case "clip_overflow":
				if clipSet {
					continue
				}
				if v, ok := resolveProperty(env, mr.rule, key, log); ok {
					if b, ok := v.AsBool(); ok {
						obj.ClipOverflow = b
						clipSet = true
					}
				}
			default:
				if _, exists := obj.vars[key]; exists {
					continue
				}
				if v, ok := resolveProperty(env, mr.rule, key, log); ok {
					obj.vars[key] = v
				}
			}
		}
	}
}

// resolveProperty evaluates rule's declaration for key. A failed
// evaluation is logged and treated as "no value" for that property --
// per spec.md §7, a single bad rule must never abort a layout pass.
func resolveProperty(env *evalEnv, rule *StyleRule, key string, log *Log) (Value, bool) {
	expr, ok := rule.firstProperty(key)
	if !ok {
		return Value{}, false
	}
	v, err := evalExpr(env, expr)
	if err != nil {
		if log != nil {
			log.Add("cascade", "warn", "dropping property %q: %v", key, err)
		}
		return Value{}, false
	}
	return v, true
}

// layoutNode is the per-node recursive step of the layout pipeline,
// grounded on original_source/src/lib.rs's Node::layout. parentEngine is
// the layout engine of node's parent (used to position node itself, not
// node's own children); forceDirty propagates a size-change or ancestor
// dirty flag down regardless of this node's own dirty bit.
func layoutNode(node Node, styles *Styles, log *Log, parentEngine LayoutEngine, forceDirty bool) {
	in := node.inner
	in.enter()
	dirty := forceDirty
	if in.renderObject == nil || forceDirty {
		dirty = true
		obj := &RenderObject{vars: make(map[string]Value), layoutEngine: AbsoluteLayout{}}
		if text, ok := node.Text(); ok {
			obj.Text = text
		}

		var parentObj *RenderObject
		parentRect := Rect{}
		if p, ok := node.Parent(); ok {
			if po, ok2 := p.RenderObject(); ok2 {
				parentObj = po
				parentRect = po.DrawRect
			}
		}

		applyCascade(node, obj, styles, parentRect, log)

		if parentObj != nil {
			parentEngine.PrePositionChild(obj, parentObj)
		}

		if layoutName, ok := obj.GetString("layout"); ok {
			if factory, ok2 := styles.layouts[layoutName]; ok2 {
				obj.layoutEngine = factory(obj)
			}
		}

		in.dirty = false
		in.renderObject = obj
	}
	in.leave()

	engine := in.renderObject.layoutEngine
	for _, c := range node.Children() {
		layoutNode(c, styles, log, engine, dirty)
	}

	if dirty {
		in.enter()
		obj := in.renderObject
		var childObjs []*RenderObject
		for _, c := range node.Children() {
			if co, ok := c.RenderObject(); ok {
				childObjs = append(childObjs, co)
			}
		}
		obj.layoutEngine.FinalizeLayout(obj, childObjs)
		if p, ok := node.Parent(); ok {
			if po, ok2 := p.RenderObject(); ok2 {
				parentEngine.PostPositionChild(obj, po)
			}
		}
		in.leave()
	}
}
