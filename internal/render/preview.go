package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/vedantwpatil/click-pop/internal/overlay"
)

// PreviewRenderer draws the canvas and the active indicators into a
// terminal, scaled to fit. It exists so the mapping and pool behavior can
// be watched live without an OBS instance.
type PreviewRenderer struct {
	screen  tcell.Screen
	canvasW int
	canvasH int
}

func NewPreviewRenderer(screen tcell.Screen, canvasW, canvasH int) *PreviewRenderer {
	return &PreviewRenderer{screen: screen, canvasW: canvasW, canvasH: canvasH}
}

var variantStyles = map[overlay.Variant]tcell.Style{
	overlay.LeftImage:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	overlay.RightImage: tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
}

// Apply redraws the whole preview frame from this tick's instructions.
func (r *PreviewRenderer) Apply(instructions []overlay.RenderInstruction) error {
	r.screen.Clear()

	sw, sh := r.screen.Size()
	boxW, boxH := sw-2, sh-3
	if boxW < 2 || boxH < 2 || r.canvasW <= 0 || r.canvasH <= 0 {
		r.screen.Show()
		return nil
	}

	r.drawBox(0, 0, boxW+1, boxH+1)

	active := 0
	for _, in := range instructions {
		if !in.Visible {
			continue
		}
		active++
		cx := 1 + in.X*(boxW-1)/r.canvasW
		cy := 1 + in.Y*(boxH-1)/r.canvasH
		mark := 'o'
		if in.Variant == overlay.RightImage {
			mark = 'x'
		}
		r.screen.SetContent(cx, cy, mark, nil, variantStyles[in.Variant])
	}

	status := fmt.Sprintf(" canvas %dx%d  active %d/%d  q to quit ",
		r.canvasW, r.canvasH, active, len(instructions))
	r.drawText(0, sh-1, status, tcell.StyleDefault.Reverse(true))

	r.screen.Show()
	return nil
}

func (r *PreviewRenderer) Close() error {
	r.screen.Fini()
	return nil
}

func (r *PreviewRenderer) drawBox(x0, y0, x1, y1 int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for x := x0 + 1; x < x1; x++ {
		r.screen.SetContent(x, y0, tcell.RuneHLine, nil, style)
		r.screen.SetContent(x, y1, tcell.RuneHLine, nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		r.screen.SetContent(x0, y, tcell.RuneVLine, nil, style)
		r.screen.SetContent(x1, y, tcell.RuneVLine, nil, style)
	}
	r.screen.SetContent(x0, y0, tcell.RuneULCorner, nil, style)
	r.screen.SetContent(x1, y0, tcell.RuneURCorner, nil, style)
	r.screen.SetContent(x0, y1, tcell.RuneLLCorner, nil, style)
	r.screen.SetContent(x1, y1, tcell.RuneLRCorner, nil, style)
}

func (r *PreviewRenderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}
