// Command inspector is a small diagnostic tool: point it at a style
// document and a description-language node tree, give it a screen
// coordinate, and it prints (and copies to the clipboard) every node
// whose render position contains that point.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/tekugo/gestaltwerk"
)

func main() {
	stylePath := flag.String("style", "", "path to a .style document")
	treePath := flag.String("tree", "", "path to a description-language node tree")
	width := flag.Int("width", 120, "viewport width to lay out against")
	height := flag.Int("height", 40, "viewport height to lay out against")
	pointFlag := flag.String("at", "", "x,y screen coordinate to hit-test, e.g. 10,5")
	copyFlag := flag.Bool("copy", false, "copy the result to the system clipboard")
	flag.Parse()

	if *stylePath == "" || *treePath == "" || *pointFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: inspector -style FILE -tree FILE -at X,Y [-copy]")
		os.Exit(2)
	}

	x, y, err := parsePoint(*pointFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "inspector:", err)
		os.Exit(2)
	}

	styleSrc, err := os.ReadFile(*stylePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "inspector:", err)
		os.Exit(1)
	}
	treeSrc, err := os.ReadFile(*treePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "inspector:", err)
		os.Exit(1)
	}

	manager := gestaltwerk.NewManager()
	if perr := manager.LoadStyles(*stylePath, string(styleSrc)); perr != nil {
		fmt.Fprintln(os.Stderr, "inspector: loading style:", perr)
		os.Exit(1)
	}
	if perr := manager.AddNodeStr(string(treeSrc)); perr != nil {
		fmt.Fprintln(os.Stderr, "inspector: parsing tree:", perr)
		os.Exit(1)
	}
	manager.Layout(int32(*width), int32(*height))

	hits := manager.QueryAt(int32(x), int32(y)).Descendant().Run()

	var report strings.Builder
	fmt.Fprintf(&report, "%d node(s) at (%d, %d):\n", len(hits), x, y)
	for _, n := range hits {
		describeHit(&report, n)
	}
	text := report.String()
	fmt.Print(text)

	if *copyFlag {
		if err := clipboard.WriteAll(text); err != nil {
			fmt.Fprintln(os.Stderr, "inspector: copying to clipboard:", err)
			os.Exit(1)
		}
	}
}

func describeHit(w *strings.Builder, n gestaltwerk.Node) {
	rect, _ := n.RenderPosition()
	if name, ok := n.Name(); ok {
		fmt.Fprintf(w, "  <%s> at {x:%d y:%d w:%d h:%d}\n", name, rect.X, rect.Y, rect.Width, rect.Height)
		return
	}
	text, _ := n.Text()
	fmt.Fprintf(w, "  %q at {x:%d y:%d w:%d h:%d}\n", text, rect.X, rect.Y, rect.Width, rect.Height)
}

func parsePoint(s string) (int, int, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected X,Y, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
