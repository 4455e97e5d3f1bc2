package widgets

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PillBoard/internal/gcode"
	"github.com/piwi3910/PillBoard/internal/model"
)

// Toolpath colors for different move types.
var (
	colorRapid   = color.NRGBA{R: 255, G: 60, B: 60, A: 200}   // Red for rapid moves
	colorFeed    = color.NRGBA{R: 30, G: 120, B: 255, A: 230}  // Blue for cutting moves
	colorPlunge  = color.NRGBA{R: 50, G: 200, B: 50, A: 220}   // Green for plunge
	colorRetract = color.NRGBA{R: 180, G: 180, B: 0, A: 180}   // Yellow for retract
	colorStock   = color.NRGBA{R: 230, G: 210, B: 175, A: 255} // Light wood for stock
)

const arcSegmentLength = 2.0 // Preview pixels per arc segment

// GCodePreview renders parsed toolpath moves over the board they were
// generated from, with the pills drawn underneath.
type GCodePreview struct {
	widget.BaseWidget
	moves     []gcode.GCodeMove
	board     model.Board
	pills     []model.Pill
	settings  model.CutSettings
	maxWidth  float32
	maxHeight float32
}

// NewGCodePreview creates a preview that fits within maxW x maxH.
func NewGCodePreview(moves []gcode.GCodeMove, board model.Board, pills []model.Pill, settings model.CutSettings, maxW, maxH float32) *GCodePreview {
	gp := &GCodePreview{
		moves:     moves,
		board:     board,
		pills:     pills,
		settings:  settings,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	gp.ExtendBaseWidget(gp)
	return gp
}

// CreateRenderer implements fyne.Widget.
func (gp *GCodePreview) CreateRenderer() fyne.WidgetRenderer {
	return newGCodePreviewRenderer(gp)
}

// layout returns the preview scale in pixels per mm and the margin around the stock.
func (gp *GCodePreview) layout() (scale, margin float32) {
	stockW := float32(gp.board.Width * gp.settings.Scale)
	stockH := float32(gp.board.Height * gp.settings.Scale)
	margin = float32(gp.settings.ToolDiameter) + 10
	if stockW <= 0 || stockH <= 0 {
		return 1, margin
	}
	scale = (gp.maxWidth - margin*2) / stockW
	if s := (gp.maxHeight - margin*2) / stockH; s < scale {
		scale = s
	}
	if scale <= 0 {
		scale = 1
	}
	return scale, margin
}

type gcodePreviewRenderer struct {
	gp      *GCodePreview
	objects []fyne.CanvasObject
}

func newGCodePreviewRenderer(gp *GCodePreview) *gcodePreviewRenderer {
	r := &gcodePreviewRenderer{gp: gp}
	r.rebuild()
	return r
}

func (r *gcodePreviewRenderer) rebuild() {
	r.objects = nil

	gp := r.gp
	if !gp.board.Mounted() || gp.settings.Scale <= 0 {
		return
	}
	scale, margin := gp.layout()
	stockH := gp.board.Height * gp.settings.Scale

	// Machine coordinates have Y up; the screen has Y down.
	toScreen := func(x, y float64) fyne.Position {
		return fyne.NewPos(float32(x)*scale+margin, float32(stockH-y)*scale+margin)
	}

	bg := canvas.NewRectangle(colorStock)
	bg.StrokeColor = colorBorder
	bg.StrokeWidth = 2
	bg.Resize(fyne.NewSize(float32(gp.board.Width*gp.settings.Scale)*scale, float32(stockH)*scale))
	bg.Move(fyne.NewPos(margin, margin))
	r.objects = append(r.objects, bg)

	pxScale := float32(gp.settings.Scale) * scale
	for _, p := range gp.pills {
		raster := canvas.NewRasterWithPixels(pillPixels(p))
		raster.Resize(fyne.NewSize(float32(p.Rect.Width)*pxScale, float32(p.Rect.Height)*pxScale))
		raster.Move(fyne.NewPos(float32(p.Rect.X)*pxScale+margin, float32(p.Rect.Y)*pxScale+margin))
		r.objects = append(r.objects, raster)
	}

	for _, m := range gp.moves {
		xyDist := math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)

		switch m.Type {
		case gcode.MoveRapid:
			if xyDist < 0.01 {
				continue
			}
			r.addLine(toScreen(m.FromX, m.FromY), toScreen(m.ToX, m.ToY), colorRapid, 1)

		case gcode.MoveFeed:
			if xyDist < 0.01 {
				continue
			}
			r.addLine(toScreen(m.FromX, m.FromY), toScreen(m.ToX, m.ToY), colorFeed, 2)

		case gcode.MoveArcCW, gcode.MoveArcCCW:
			segments := int(math.Ceil(m.Radius() * float64(scale) * math.Pi / 2 / arcSegmentLength))
			pts := arcPoints(m, segments)
			for i := 1; i < len(pts); i++ {
				r.addLine(toScreen(pts[i-1][0], pts[i-1][1]), toScreen(pts[i][0], pts[i][1]), colorFeed, 2)
			}

		case gcode.MovePlunge:
			r.addMarker(toScreen(m.FromX, m.FromY), colorPlunge, 4)

		case gcode.MoveRetract:
			if xyDist < 0.01 {
				r.addMarker(toScreen(m.FromX, m.FromY), colorRetract, 3)
			} else {
				r.addLine(toScreen(m.FromX, m.FromY), toScreen(m.ToX, m.ToY), colorRetract, 1)
			}
		}
	}
}

func (r *gcodePreviewRenderer) addLine(from, to fyne.Position, c color.Color, width float32) {
	line := canvas.NewLine(c)
	line.StrokeWidth = width
	line.Position1 = from
	line.Position2 = to
	r.objects = append(r.objects, line)
}

func (r *gcodePreviewRenderer) addMarker(at fyne.Position, c color.Color, size float32) {
	marker := canvas.NewCircle(c)
	marker.Resize(fyne.NewSize(size, size))
	marker.Move(fyne.NewPos(at.X-size/2, at.Y-size/2))
	r.objects = append(r.objects, marker)
}

func (r *gcodePreviewRenderer) Layout(size fyne.Size)        {}
func (r *gcodePreviewRenderer) Refresh()                     { r.rebuild() }
func (r *gcodePreviewRenderer) Destroy()                     {}
func (r *gcodePreviewRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *gcodePreviewRenderer) MinSize() fyne.Size {
	gp := r.gp
	if !gp.board.Mounted() || gp.settings.Scale <= 0 {
		return fyne.NewSize(100, 100)
	}
	scale, margin := gp.layout()
	return fyne.NewSize(
		float32(gp.board.Width*gp.settings.Scale)*scale+margin*2,
		float32(gp.board.Height*gp.settings.Scale)*scale+margin*2,
	)
}

// arcPoints flattens an arc move into segments+1 points from its start to its
// end, in machine coordinates. An arc that ends where it starts is a full circle.
func arcPoints(m gcode.GCodeMove, segments int) [][2]float64 {
	if segments < 1 {
		segments = 1
	}
	radius := m.Radius()
	a0 := math.Atan2(m.FromY-m.CenterY, m.FromX-m.CenterX)
	a1 := math.Atan2(m.ToY-m.CenterY, m.ToX-m.CenterX)

	sweep := a1 - a0
	if m.Type == gcode.MoveArcCW {
		sweep = a0 - a1
	}
	for sweep <= 1e-9 {
		sweep += 2 * math.Pi
	}
	if m.Type == gcode.MoveArcCW {
		sweep = -sweep
	}

	pts := make([][2]float64, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := a0 + sweep*float64(i)/float64(segments)
		pts = append(pts, [2]float64{m.CenterX + radius*math.Cos(a), m.CenterY + radius*math.Sin(a)})
	}
	return pts
}

// RenderGCodePreview parses code and returns a preview of it over the board.
func RenderGCodePreview(board model.Board, pills []model.Pill, settings model.CutSettings, code string) fyne.CanvasObject {
	return NewGCodePreview(gcode.ParseGCode(code), board, pills, settings, 700, 450)
}
