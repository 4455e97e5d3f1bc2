package export

import (
	"fmt"

	"github.com/piwi3910/PillBoard/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"
)

// DXF layer names.
const (
	LayerBoard = "BOARD"
	LayerPills = "PILLS"
)

// ExportDXF writes the board border and every pill outline as LINE entities,
// with an ARC at each rounded corner. Coordinates are in millimetres using
// doc.Cut.Scale, with the Y axis flipped so the board's top edge is at the top
// of the drawing.
func ExportDXF(path string, doc Document) error {
	if err := doc.check(); err != nil {
		return err
	}
	scale := doc.Cut.Scale
	if scale <= 0 {
		scale = 1
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerBoard, color.Red, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add board layer: %w", err)
	}
	board := model.Pill{Rect: doc.Board.Bounds()}
	if err := writeOutline(d, board, doc.Board.Height, scale); err != nil {
		return err
	}

	if _, err := d.AddLayer(LayerPills, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add pill layer: %w", err)
	}
	for _, p := range doc.Pills {
		if err := writeOutline(d, p, doc.Board.Height, scale); err != nil {
			return fmt.Errorf("pill %d: %w", p.ID, err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write dxf: %w", err)
	}
	return nil
}

// writeOutline emits the closed outline of p on the current layer.
func writeOutline(d *drawing.Drawing, p model.Pill, boardHeight, scale float64) error {
	tl, tr, br, bl := p.Radii()
	left := p.Rect.X * scale
	right := p.Rect.Right() * scale
	top := (boardHeight - p.Rect.Y) * scale
	bottom := (boardHeight - p.Rect.Bottom()) * scale
	tl, tr, br, bl = tl*scale, tr*scale, br*scale, bl*scale

	lines := [][4]float64{
		{left + tl, top, right - tr, top},
		{right, top - tr, right, bottom + br},
		{right - br, bottom, left + bl, bottom},
		{left, bottom + bl, left, top - tl},
	}
	for _, l := range lines {
		if l[0] == l[2] && l[1] == l[3] {
			continue
		}
		if _, err := d.Line(l[0], l[1], 0, l[2], l[3], 0); err != nil {
			return fmt.Errorf("failed to add line: %w", err)
		}
	}

	// Arcs run counter-clockwise in degrees.
	arcs := []struct {
		r, cx, cy, start, end float64
	}{
		{tl, left + tl, top - tl, 90, 180},
		{tr, right - tr, top - tr, 0, 90},
		{br, right - br, bottom + br, 270, 360},
		{bl, left + bl, bottom + bl, 180, 270},
	}
	for _, a := range arcs {
		if a.r == 0 {
			continue
		}
		if _, err := d.Arc(a.cx, a.cy, 0, a.r, a.start, a.end); err != nil {
			return fmt.Errorf("failed to add arc: %w", err)
		}
	}
	return nil
}
