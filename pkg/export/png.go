package export

import (
	"git.sr.ht/~sbinet/gg"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/menuwork/pkg/menu"
)

const (
	pngRowHeight = 18
	pngIndent    = 21
	pngCharWidth = 7
	pngMargin    = 12
)

// SavePNG renders the fully expanded outline of root to a PNG file.
func SavePNG(path string, root *menu.Menu, title string) error {
	dc := DrawPNG(root, title)
	return dc.SavePNG(path)
}

// DrawPNG renders the outline into a drawing context.
func DrawPNG(root *menu.Menu, title string) *gg.Context {
	rows := Flatten(root, ASCIIGlyphs, 48)

	width := runewidth.StringWidth(title) * pngCharWidth
	for _, r := range rows {
		width = max(width, r.Depth*pngIndent+runewidth.StringWidth(r.Text)*pngCharWidth)
	}
	width += 2 * pngMargin
	height := (len(rows)+1)*pngRowHeight + 2*pngMargin

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetRGB(0.2, 0.1, 0.5)
	dc.DrawString(title, pngMargin, pngMargin+12)

	for i, r := range rows {
		x := float64(pngMargin + r.Depth*pngIndent)
		y := float64(pngMargin + (i+1)*pngRowHeight)
		if r.Element.Role() == menu.RoleSeparator {
			dc.SetRGB(0.75, 0.75, 0.75)
			dc.SetLineWidth(1)
			dc.DrawLine(x, y+pngRowHeight/2, float64(width-pngMargin), y+pngRowHeight/2)
			dc.Stroke()
			continue
		}
		if it, ok := r.Element.(*menu.Item); ok && it.Disabled() {
			dc.SetRGB(0.6, 0.6, 0.6)
		} else {
			dc.SetRGB(0.1, 0.1, 0.1)
		}
		dc.DrawString(r.Text, x, y+13)
	}
	return dc
}
