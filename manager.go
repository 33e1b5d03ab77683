package gestaltwerk

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// Manager owns a node tree rooted at a synthetic, invisible root, the
// loaded style documents, and the diagnostic Log. It is the single
// public entry point described in spec.md §6.1.
type Manager struct {
	root     Node
	styles   *Styles
	lastW    int32
	lastH    int32
	dirty    bool
	log      *Log
	telemetry *TelemetryExporter
}

// NewManager creates a manager with an empty root node and the built-in
// "absolute" layout engine and rgb/rgba style functions pre-registered
// (spec.md §4.6, SPEC_FULL.md §F.4 item 3).
func NewManager() *Manager {
	m := &Manager{
		root:   newRoot(),
		styles: newStyles(),
		dirty:  true,
		log:    NewLog(512),
	}
	registerColorFuncs(m.styles)
	return m
}

// Log returns the manager's diagnostic ring buffer.
func (m *Manager) Log() *Log { return m.log }

// AddLayoutEngine registers a named layout-engine factory, selectable
// from styles via the `layout` property (spec.md §6.1).
func (m *Manager) AddLayoutEngine(name string, factory LayoutFactory) {
	m.styles.addLayoutEngine(name, factory)
}

// AddFuncRaw registers a style function callable from expressions as
// `name(args...)`.
func (m *Manager) AddFuncRaw(name string, fn StyleFunc) {
	m.styles.addFunc(name, fn)
}

// AddNode attaches node as a child of the manager's root.
func (m *Manager) AddNode(node Node) {
	m.root.AddChild(node)
}

// AddNodeStr parses source with the description mini-language and
// attaches the resulting node to the root.
func (m *Manager) AddNodeStr(source string) *ParseError {
	node, err := ParseDescription(source)
	if err != nil {
		return err
	}
	m.AddNode(node)
	return nil
}

// RemoveNode detaches node from the root and marks the manager dirty.
func (m *Manager) RemoveNode(node Node) {
	m.root.RemoveChild(node)
	m.dirty = true
}

// Query starts a query from the manager's root.
func (m *Manager) Query() *Query { return newQuery(m.root) }

// QueryAt starts a query restricted to nodes whose render position
// contains (x, y).
func (m *Manager) QueryAt(x, y int32) *Query { return newQueryAt(m.root, x, y) }

// LoadStyles parses source as a style document and loads it under name,
// replacing any existing document with the same name, rebuilding the
// cascade index and marking the manager dirty.
func (m *Manager) LoadStyles(name, source string) *ParseError {
	doc, err := ParseStyleDocument(source)
	if err != nil {
		return err
	}
	m.styles.loadDocument(name, doc)
	m.dirty = true
	return nil
}

// RemoveStyles removes the named style document, rebuilding the cascade
// index and marking the manager dirty.
func (m *Manager) RemoveStyles(name string) {
	m.styles.removeDocument(name)
	m.dirty = true
}

// LoadStylesGlob loads every file matching pattern (a doublestar glob,
// e.g. "styles/**/*.style") as a style document named after its path.
// Grounded on the teacher's own doublestar/v4 dependency (SPEC_FULL.md
// §F.2).
func (m *Manager) LoadStylesGlob(pattern string) error {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return fmt.Errorf("gestaltwerk: glob %q: %w", pattern, err)
	}
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("gestaltwerk: reading %s: %w", path, err)
		}
		name := filepath.ToSlash(path)
		if perr := m.LoadStyles(name, string(data)); perr != nil {
			return fmt.Errorf("gestaltwerk: parsing %s: %w", path, perr)
		}
	}
	return nil
}

// Layout positions every node in the manager for a (width, height)
// viewport, returning true iff any node was actually re-laid out.
// Grounded on original_source/src/lib.rs's Manager::layout.
func (m *Manager) Layout(width, height int32) bool {
	forceDirty := m.lastW != width || m.lastH != height || m.dirty
	m.dirty = false
	m.lastW, m.lastH = width, height

	m.root.SetProperty("width", Int(width))
	m.root.SetProperty("height", Int(height))
	m.root.inner.renderObject = &RenderObject{
		vars:         make(map[string]Value),
		layoutEngine: AbsoluteLayout{},
		DrawRect:     Rect{X: 0, Y: 0, Width: width, Height: height},
	}

	start := time.Now()
	anyDirty := forceDirty
	for _, c := range m.root.Children() {
		if c.checkDirty() {
			anyDirty = true
			c.inner.renderObject = nil
		}
	}
	performed := false
	if anyDirty {
		for _, c := range m.root.Children() {
			layoutNode(c, m.styles, m.log, AbsoluteLayout{}, forceDirty)
		}
		performed = true
	}
	if m.telemetry != nil {
		m.telemetry.RecordLayoutPass(layoutPassInfo{
			Width:    width,
			Height:   height,
			Dirty:    performed,
			Duration: time.Since(start),
		})
	}
	return performed
}

// Render traverses every node attached to the manager, invoking visitor
// depth-first (spec.md §4.7, §6.2).
func (m *Manager) Render(visitor Visitor) {
	for _, c := range m.root.Children() {
		renderNode(c, visitor)
	}
}

// AttachTelemetry wires an optional TelemetryExporter that observes each
// Layout pass. Passing nil detaches it. Never affects layout/render
// semantics (spec.md §5).
func (m *Manager) AttachTelemetry(t *TelemetryExporter) { m.telemetry = t }
