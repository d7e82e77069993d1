package export

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/menuwork/pkg/menu"
)

const (
	svgRowHeight = 22
	svgIndent    = 24
	svgCharWidth = 8
	svgMargin    = 16
)

// WriteSVG draws the fully expanded outline of root as an SVG diagram.
func WriteSVG(w io.Writer, root *menu.Menu, title string) error {
	rows := Flatten(root, UnicodeGlyphs, 48)

	width := runewidth.StringWidth(title) * svgCharWidth
	for _, r := range rows {
		width = max(width, r.Depth*svgIndent+runewidth.StringWidth(r.Text)*svgCharWidth)
	}
	width += 2 * svgMargin
	height := (len(rows)+1)*svgRowHeight + 2*svgMargin

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(width, height)
	canvas.Title(title)
	canvas.Rect(0, 0, width, height, "fill:#1e1e2e")
	canvas.Text(svgMargin, svgMargin+14, title, "fill:#cba6f7;font-family:monospace;font-size:16px;font-weight:bold")

	canvas.Gstyle("font-family:monospace;font-size:13px")
	for i, r := range rows {
		x := svgMargin + r.Depth*svgIndent
		y := svgMargin + (i+1)*svgRowHeight
		if r.Depth > 0 {
			canvas.Line(x-svgIndent/2, y-svgRowHeight/2, x-svgIndent/2, y+svgRowHeight/2, "stroke:#45475a")
		}
		if r.Element.Role() == menu.RoleSeparator {
			canvas.Line(x, y+svgRowHeight/2, width-svgMargin, y+svgRowHeight/2, "stroke:#585b70")
			continue
		}
		canvas.Text(x, y+15, r.Text, fmt.Sprintf("fill:%s", svgColor(r.Element)))
	}
	canvas.Gend()
	canvas.End()
	return ew.err
}

func svgColor(el menu.Element) string {
	it, ok := el.(*menu.Item)
	switch {
	case !ok:
		return "#585b70"
	case it.Disabled():
		return "#6c7086"
	case it.HasSubmenu():
		return "#89b4fa"
	case it.Checked():
		return "#a6e3a1"
	}
	return "#cdd6f4"
}

// errWriter remembers the first write error so the drawing calls, which do
// not return errors, can be checked once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
