package gestaltwerk

// RenderObject is the per-node, per-layout-pass state handed to layout
// engines and render visitors: its resolved draw rect, size constraints,
// resolved style variables, and (for text nodes) literal text.
type RenderObject struct {
	// DrawRect is the position and size decided by the layout engine.
	DrawRect Rect
	// MinWidth/MinHeight is the smallest this object can be.
	MinWidth, MinHeight int32
	// MaxWidth/MaxHeight is the largest this object can be; nil for no
	// limit.
	MaxWidth, MaxHeight *int32

	// Text is the literal text of this render object, set only for text
	// nodes.
	Text string

	// ScrollX/ScrollY is the scroll offset applied to this object's
	// children by RenderPosition.
	ScrollX, ScrollY float64
	// ClipOverflow, when set, crops children that fall outside this
	// object's draw rect in RenderPosition.
	ClipOverflow bool

	// RenderInfo is an opaque slot for a concrete Visitor implementation
	// to stash its own per-node render state (e.g. a cached terminal
	// cell buffer); the core never reads or writes it.
	RenderInfo any

	vars         map[string]Value
	layoutEngine LayoutEngine
}

// Get returns a resolved style variable by name, with the special-cased
// reserved names scroll_x, scroll_y and clip_overflow reading back from
// the dedicated fields above rather than the vars map, exactly as the
// original implementation's RenderObject::get_value special-cases them.
func (r *RenderObject) Get(name string) (Value, bool) {
	switch name {
	case "scroll_x":
		return Float(r.ScrollX), true
	case "scroll_y":
		return Float(r.ScrollY), true
	case "clip_overflow":
		return Bool(r.ClipOverflow), true
	default:
		v, ok := r.vars[name]
		return v, ok
	}
}

// GetInt, GetFloat, GetBool and GetString are typed convenience wrappers
// around Get, mirroring the original's generic get_value::<V>.
func (r *RenderObject) GetInt(name string) (int32, bool) {
	v, ok := r.Get(name)
	if !ok {
		return 0, false
	}
	return v.Int32()
}

func (r *RenderObject) GetFloat(name string) (float64, bool) {
	v, ok := r.Get(name)
	if !ok {
		return 0, false
	}
	return v.Float64()
}

func (r *RenderObject) GetBool(name string) (bool, bool) {
	v, ok := r.Get(name)
	if !ok {
		return false, false
	}
	return v.AsBool()
}

func (r *RenderObject) GetString(name string) (string, bool) {
	v, ok := r.Get(name)
	if !ok {
		return "", false
	}
	return v.AsString()
}
