package widgets

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PillBoard/internal/engine"
	"github.com/piwi3910/PillBoard/internal/model"
)

var (
	colorBoard     = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	colorBorder    = color.NRGBA{R: 120, G: 120, B: 120, A: 255}
	colorCrosshair = color.NRGBA{R: 90, G: 90, B: 90, A: 90}
	colorPreview   = color.NRGBA{R: 30, G: 120, B: 255, A: 220}
	colorHint      = color.NRGBA{R: 140, G: 140, B: 140, A: 255}
)

const (
	pillAlpha = 150 // Fill alpha, so overlapping pills stay visible
	edgeWidth = 1.5 // Outline width in board pixels
)

// BoardCanvas is the interactive drawing surface. It forwards primary-button
// pointer events to an engine in board coordinates and redraws itself from
// the engine's frame after every change. The board always matches the
// widget's size.
type BoardCanvas struct {
	widget.BaseWidget
	engine  *engine.Engine
	minSize fyne.Size
	pressed bool

	// OnResult is called after every release with what the gesture did.
	OnResult func(engine.Result)
}

var (
	_ desktop.Mouseable = (*BoardCanvas)(nil)
	_ desktop.Hoverable = (*BoardCanvas)(nil)
	_ fyne.Draggable    = (*BoardCanvas)(nil)
)

// NewBoardCanvas creates a canvas driving e. minW and minH set the smallest
// size the canvas asks its container for.
func NewBoardCanvas(e *engine.Engine, minW, minH float32) *BoardCanvas {
	bc := &BoardCanvas{
		engine:  e,
		minSize: fyne.NewSize(minW, minH),
	}
	bc.ExtendBaseWidget(bc)
	e.OnChange(func(engine.Frame) { bc.Refresh() })
	return bc
}

// Resize resizes the widget and the board with it.
func (bc *BoardCanvas) Resize(size fyne.Size) {
	bc.BaseWidget.Resize(size)
	board := model.NewBoard(float64(size.Width), float64(size.Height))
	if board != bc.engine.Board() {
		bc.engine.SetBoard(board)
	}
}

// CreateRenderer implements fyne.Widget.
func (bc *BoardCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newBoardCanvasRenderer(bc)
}

// MouseDown starts a gesture on the pill under the pointer, if any.
func (bc *BoardCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	p := toBoard(ev.Position)
	bc.pressed = true
	bc.engine.PointerDown(p, bc.engine.HitTest(p))
}

// MouseUp completes the gesture.
func (bc *BoardCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	bc.release(toBoard(ev.Position))
}

// MouseIn implements desktop.Hoverable.
func (bc *BoardCanvas) MouseIn(ev *desktop.MouseEvent) {
	bc.engine.PointerMove(toBoard(ev.Position))
}

// MouseMoved implements desktop.Hoverable.
func (bc *BoardCanvas) MouseMoved(ev *desktop.MouseEvent) {
	bc.engine.PointerMove(toBoard(ev.Position))
}

// MouseOut implements desktop.Hoverable. The gesture stays active; the
// engine clamps the cursor to the board.
func (bc *BoardCanvas) MouseOut() {}

// Dragged implements fyne.Draggable so moves keep flowing while the button is held.
func (bc *BoardCanvas) Dragged(ev *fyne.DragEvent) {
	bc.engine.PointerMove(toBoard(ev.Position))
}

// DragEnd implements fyne.Draggable. A release outside the widget is only
// reported here, so the gesture ends at the last cursor position unless
// MouseUp already ended it.
func (bc *BoardCanvas) DragEnd() {
	bc.release(bc.engine.Frame().Cursor)
}

func (bc *BoardCanvas) release(p model.Point2D) {
	if !bc.pressed {
		return
	}
	bc.pressed = false
	res := bc.engine.PointerUp(p)
	if bc.OnResult != nil {
		bc.OnResult(res)
	}
}

func toBoard(pos fyne.Position) model.Point2D {
	return model.Point2D{X: float64(pos.X), Y: float64(pos.Y)}
}

type boardCanvasRenderer struct {
	bc      *BoardCanvas
	objects []fyne.CanvasObject
}

func newBoardCanvasRenderer(bc *BoardCanvas) *boardCanvasRenderer {
	r := &boardCanvasRenderer{bc: bc}
	r.rebuild()
	return r
}

func (r *boardCanvasRenderer) rebuild() {
	r.objects = nil
	frame := r.bc.engine.Frame()
	w := float32(frame.Board.Width)
	h := float32(frame.Board.Height)

	bg := canvas.NewRectangle(colorBoard)
	bg.StrokeColor = colorBorder
	bg.StrokeWidth = 1
	bg.Resize(fyne.NewSize(w, h))
	r.objects = append(r.objects, bg)

	if len(frame.Pills) == 0 && frame.Preview == nil && w > 0 {
		hint := canvas.NewText("Drag to draw a pill. Click inside a pill to split it.", colorHint)
		hint.TextSize = 12
		hint.Alignment = fyne.TextAlignCenter
		hint.Resize(fyne.NewSize(w, 20))
		hint.Move(fyne.NewPos(0, h/2-10))
		r.objects = append(r.objects, hint)
	}

	for _, p := range frame.Pills {
		raster := canvas.NewRasterWithPixels(pillPixels(p))
		raster.Resize(fyne.NewSize(float32(p.Rect.Width), float32(p.Rect.Height)))
		raster.Move(fyne.NewPos(float32(p.Rect.X), float32(p.Rect.Y)))
		r.objects = append(r.objects, raster)
	}

	if frame.Preview != nil {
		pr := *frame.Preview
		preview := canvas.NewRectangle(color.Transparent)
		preview.StrokeColor = colorPreview
		preview.StrokeWidth = 1.5
		preview.CornerRadius = float32(math.Min(model.PillRadius, math.Min(pr.Width, pr.Height)/2))
		preview.Resize(fyne.NewSize(float32(pr.Width), float32(pr.Height)))
		preview.Move(fyne.NewPos(float32(pr.X), float32(pr.Y)))
		r.objects = append(r.objects, preview)
	}

	if frame.HasCursor {
		cx, cy := float32(frame.Cursor.X), float32(frame.Cursor.Y)
		vertical := canvas.NewLine(colorCrosshair)
		vertical.Position1 = fyne.NewPos(cx, 0)
		vertical.Position2 = fyne.NewPos(cx, h)
		horizontal := canvas.NewLine(colorCrosshair)
		horizontal.Position1 = fyne.NewPos(0, cy)
		horizontal.Position2 = fyne.NewPos(w, cy)
		r.objects = append(r.objects, vertical, horizontal)
	}
}

func (r *boardCanvasRenderer) Layout(size fyne.Size)        {}
func (r *boardCanvasRenderer) Refresh()                     { r.rebuild(); canvas.Refresh(r.bc) }
func (r *boardCanvasRenderer) Destroy()                     {}
func (r *boardCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *boardCanvasRenderer) MinSize() fyne.Size           { return r.bc.minSize }

// pillPixels returns a raster generator for p. The raster may be rendered at
// any pixel density, so pixels are mapped back to board units first.
func pillPixels(p model.Pill) func(x, y, w, h int) color.Color {
	rgbR, rgbG, rgbB := p.Color.RGB()
	fill := color.NRGBA{R: rgbR, G: rgbG, B: rgbB, A: pillAlpha}
	edge := color.NRGBA{R: rgbR / 2, G: rgbG / 2, B: rgbB / 2, A: 230}
	tl, tr, br, bl := p.Radii()
	radii := [4]float64{tl, tr, br, bl}
	pw, ph := p.Rect.Width, p.Rect.Height

	return func(x, y, w, h int) color.Color {
		lx := (float64(x) + 0.5) * pw / float64(w)
		ly := (float64(y) + 0.5) * ph / float64(h)
		switch {
		case !model.InsideRounded(pw, ph, radii, lx, ly, 0):
			return color.Transparent
		case !model.InsideRounded(pw, ph, radii, lx, ly, edgeWidth):
			return edge
		default:
			return fill
		}
	}
}
