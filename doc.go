// Package gestaltwerk is a retained-mode layout and styling engine for
// tree-shaped UIs. It owns a node tree, a CSS-like cascade of loadable
// style documents, a pluggable two-pass layout pipeline, and a render
// traversal -- and delegates everything about pixels, cells, and input
// events to the caller.
//
// # Overview
//
// A Manager holds the node tree and the loaded style documents. Nodes
// are added with AddNode or parsed from the description mini-language
// with AddNodeStr; styles are loaded with LoadStyles, LoadStylesGlob, or
// removed with RemoveStyles. Calling Layout(width, height) resolves the
// cascade for every dirty node, runs the active LayoutEngine, and
// updates each node's RenderObject. Calling Render with a Visitor then
// walks the tree depth-first so the caller can draw whatever it wants
// from each node's resolved geometry and properties.
//
// # Style cascade
//
// Style documents are parsed from a small CSS-like language: element or
// text matchers, optional attribute predicates, and chained matchers
// joined by ">". Properties on the right-hand side are expressions over
// literals, variables (including the reserved parent_x/parent_y/
// parent_width/parent_height), arithmetic operators, and calls into
// registered style functions -- rgb and rgba ship built in.
//
// # Layout
//
// The default "absolute" layout engine honors explicit x/y/width/height
// variables with sensible fallbacks. Additional layout engines can be
// registered with Manager.AddLayoutEngine and selected per-node via the
// `layout` style property.
//
// # Query
//
// Manager.Query and Manager.QueryAt build a small query pipeline over
// the node tree: filter by name, text-ness, or property, descend into
// children or the whole subtree, and optionally restrict to nodes whose
// render position contains a point -- useful for hit-testing and
// debugging tools.
//
// # Dependencies
//
// gestaltwerk leans on a handful of focused libraries rather than
// reinventing them: github.com/rivo/uniseg for text width,
// github.com/lucasb-eyer/go-colorful for color math,
// github.com/bmatcuk/doublestar/v4 for glob-based style loading,
// github.com/fsnotify/fsnotify for hot-reloading a style directory,
// github.com/mattn/go-sqlite3 for durable diagnostic logging, and OTLP
// over gRPC for optional layout telemetry.
package gestaltwerk
