// Command demo is a small terminal application exercising gestaltwerk's
// node tree, style cascade, layout pipeline and render traversal
// against a real tcell screen.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v3"
	"github.com/mbndr/figlet4go"
	"golang.org/x/term"

	"github.com/tekugo/gestaltwerk"
)

const defaultStyleSource = `
app {
	x = 0
	y = 0
	width = parent_width
	height = parent_height
	background = "#1a1b26"
}

header {
	x = 0
	y = 0
	width = parent_width
	height = 3
	background = "#16161e"
	foreground = "#7aa2f7"
}

content {
	x = 0
	y = 3
	width = parent_width
	height = parent_height - 4
	foreground = "#c0caf5"
}

footer {
	x = 0
	y = parent_height - 1
	width = parent_width
	height = 1
	background = "#16161e"
	foreground = "#565f89"
}

@text(render="figlet") {
	foreground = "#bb9af7"
}
`

const demoTreeSource = `app {
	header {
		"gestaltwerk"(render="figlet")
	}
	content {
		"Resize the terminal, or edit the watched style directory, and the layout reflows live."
	}
	footer {
		"Esc / Ctrl-C / Ctrl-Q: quit    Ctrl-D: toggle log"
	}
}`

func main() {
	styleDir := flag.String("styles", "", "directory of .style files to hot-reload (optional)")
	telemetryTarget := flag.String("telemetry", "", "OTLP/gRPC collector address, e.g. localhost:4317 (optional)")
	flag.Parse()

	manager := gestaltwerk.NewManager()
	if perr := manager.LoadStyles("default", defaultStyleSource); perr != nil {
		log.Fatalf("loading default styles: %v", perr)
	}
	if perr := manager.AddNodeStr(demoTreeSource); perr != nil {
		log.Fatalf("parsing demo tree: %v", perr)
	}

	var watcher *gestaltwerk.Watcher
	if *styleDir != "" {
		w, err := gestaltwerk.WatchStyles(manager, *styleDir, ".style")
		if err != nil {
			log.Fatalf("watching %s: %v", *styleDir, err)
		}
		watcher = w
		defer watcher.Close()
		go func() {
			for err := range watcher.Errors() {
				manager.Log().Add("watcher", "warn", "%v", err)
			}
		}()
	}

	if *telemetryTarget != "" {
		exporter, err := gestaltwerk.NewTelemetryExporter(*telemetryTarget, "gestaltwerk-demo")
		if err != nil {
			log.Fatalf("connecting telemetry to %s: %v", *telemetryTarget, err)
		}
		defer exporter.Close()
		manager.AttachTelemetry(exporter)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		// Not attached to a terminal (piped output, CI): lay out against
		// the caller's actual terminal size if we can still read it from
		// stdin, falling back to an 80x24 default, and report the size laid
		// out against instead of driving an interactive screen.
		width, height, err := term.GetSize(int(os.Stdin.Fd()))
		if err != nil {
			width, height = 80, 24
		}
		manager.Layout(int32(width), int32(height))
		fmt.Printf("gestaltwerk demo: laid out against %dx%d (non-interactive)\n", width, height)
		return
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "gestaltwerk demo:", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "gestaltwerk demo:", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	visitor := newTcellVisitor(screen)
	visitor.figlet.LoadFont("standard")

	showLog := false
	redraw := func() {
		width, height := screen.Size()
		manager.Layout(int32(width), int32(height))
		screen.Clear()
		visitor.reset()
		manager.Render(visitor)
		if showLog {
			drawLog(screen, manager.Log(), height)
		}
		screen.Show()
	}
	redraw()

	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
			redraw()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Key() == tcell.KeyCtrlQ:
				return
			case ev.Key() == tcell.KeyCtrlD:
				showLog = !showLog
				redraw()
			}
		case nil:
			return
		}
	}
}

// drawLog paints the tail of the diagnostic log as an overlay, letting a
// demo user see cascade/parse warnings without leaving the terminal.
func drawLog(screen tcell.Screen, l *gestaltwerk.Log, screenHeight int) {
	style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorYellow)
	rows := l.Length()
	if rows > 10 {
		rows = 10
	}
	top := screenHeight - 1 - rows
	for i := range rows {
		line := fmt.Sprintf("%-5s %-12s %s", l.Str(i, 1), l.Str(i, 2), l.Str(i, 3))
		putString(screen, 0, top+i, line, style)
	}
}

type figletRenderer struct {
	figlet *figlet4go.AsciiRender
}

// tcellVisitor walks the node tree, maintaining a stack of the
// coordinate/scroll/clip transform contributed by each ancestor --
// mirroring the nested-viewport translation the teacher's own
// renderer.go built with Renderer.clip/unclip, just without a
// dedicated Screen wrapper type.
type tcellVisitor struct {
	gestaltwerk.BaseVisitor
	screen tcell.Screen
	stack  []visitFrame
	figlet *figlet4go.AsciiRender
}

type visitFrame struct {
	originX, originY int32
	scrollX, scrollY float64
	hasClip          bool
	clip             gestaltwerk.Rect
}

func newTcellVisitor(screen tcell.Screen) *tcellVisitor {
	return &tcellVisitor{screen: screen, figlet: figlet4go.NewAsciiRender()}
}

func (v *tcellVisitor) reset() { v.stack = v.stack[:0] }

func (v *tcellVisitor) top() visitFrame {
	if len(v.stack) == 0 {
		return visitFrame{}
	}
	return v.stack[len(v.stack)-1]
}

func (v *tcellVisitor) Visit(obj *gestaltwerk.RenderObject) {
	parent := v.top()
	x := parent.originX + obj.DrawRect.X - int32(parent.scrollX)
	y := parent.originY + obj.DrawRect.Y - int32(parent.scrollY)
	rect := gestaltwerk.Rect{X: x, Y: y, Width: obj.DrawRect.Width, Height: obj.DrawRect.Height}

	visible := rect
	if parent.hasClip {
		visible = intersectRect(rect, parent.clip)
	}

	style := tcell.StyleDefault
	if bg, ok := obj.GetString("background"); ok {
		if c, err := gestaltwerk.ParseColor(bg); err == nil {
			style = style.Background(colorToTcell(c))
		}
	}
	if fg, ok := obj.GetString("foreground"); ok {
		if c, err := gestaltwerk.ParseColor(fg); err == nil {
			style = style.Foreground(colorToTcell(c))
		}
	}

	v.fill(visible, style)

	if obj.Text != "" {
		if render, ok := obj.GetString("render"); ok && render == "figlet" {
			v.drawFiglet(visible, obj.Text, style)
		} else {
			v.drawText(visible, obj.Text, style)
		}
	}

	next := visitFrame{originX: x, originY: y, scrollX: obj.ScrollX, scrollY: obj.ScrollY}
	next.hasClip = parent.hasClip
	next.clip = parent.clip
	if obj.ClipOverflow {
		own := gestaltwerk.Rect{X: x, Y: y, Width: obj.DrawRect.Width, Height: obj.DrawRect.Height}
		if parent.hasClip {
			own = intersectRect(own, parent.clip)
		}
		next.hasClip = true
		next.clip = own
	}
	v.stack = append(v.stack, next)
}

func (v *tcellVisitor) VisitEnd(*gestaltwerk.RenderObject) {
	if len(v.stack) > 0 {
		v.stack = v.stack[:len(v.stack)-1]
	}
}

func (v *tcellVisitor) fill(r gestaltwerk.Rect, style tcell.Style) {
	for row := int32(0); row < r.Height; row++ {
		for col := int32(0); col < r.Width; col++ {
			v.screen.SetContent(int(r.X+col), int(r.Y+row), ' ', nil, style)
		}
	}
}

func (v *tcellVisitor) drawText(r gestaltwerk.Rect, text string, style tcell.Style) {
	col := int32(0)
	for _, ch := range text {
		if col >= r.Width {
			break
		}
		v.screen.SetContent(int(r.X+col), int(r.Y), ch, nil, style)
		col++
	}
}

func (v *tcellVisitor) drawFiglet(r gestaltwerk.Rect, text string, style tcell.Style) {
	banner, err := v.figlet.Render(text)
	if err != nil {
		v.drawText(r, text, style)
		return
	}
	for row, line := range splitLines(banner) {
		if int32(row) >= r.Height {
			break
		}
		col := int32(0)
		for _, ch := range line {
			if col >= r.Width {
				break
			}
			v.screen.SetContent(int(r.X+col), int(r.Y+int32(row)), ch, nil, style)
			col++
		}
	}
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

func intersectRect(a, b gestaltwerk.Rect) gestaltwerk.Rect {
	x0 := max32(a.X, b.X)
	y0 := max32(a.Y, b.Y)
	x1 := min32(a.X+a.Width, b.X+b.Width)
	y1 := min32(a.Y+a.Height, b.Y+b.Height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return gestaltwerk.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func colorToTcell(c interface{ RGB255() (uint8, uint8, uint8) }) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func putString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	col := x
	for _, ch := range s {
		screen.SetContent(col, y, ch, nil, style)
		col++
	}
}
