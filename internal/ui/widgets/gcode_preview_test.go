package widgets

import (
	"math"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PillBoard/internal/gcode"
	"github.com/piwi3910/PillBoard/internal/model"
)

func TestArcPoints_Clockwise(t *testing.T) {
	m := gcode.GCodeMove{Type: gcode.MoveArcCW, FromX: 0, FromY: 10, ToX: 10, ToY: 0}

	pts := arcPoints(m, 2)

	require.Len(t, pts, 3)
	assert.InDelta(t, 0, pts[0][0], 1e-9)
	assert.InDelta(t, 10, pts[0][1], 1e-9)
	assert.InDelta(t, 10/math.Sqrt2, pts[1][0], 1e-9)
	assert.InDelta(t, 10/math.Sqrt2, pts[1][1], 1e-9)
	assert.InDelta(t, 10, pts[2][0], 1e-9)
	assert.InDelta(t, 0, pts[2][1], 1e-9)
}

func TestArcPoints_CounterClockwise(t *testing.T) {
	m := gcode.GCodeMove{Type: gcode.MoveArcCCW, FromX: 10, FromY: 0, ToX: 0, ToY: 10}

	pts := arcPoints(m, 2)

	require.Len(t, pts, 3)
	assert.InDelta(t, 10/math.Sqrt2, pts[1][0], 1e-9)
	assert.InDelta(t, 10/math.Sqrt2, pts[1][1], 1e-9)
}

func TestArcPoints_FullCircle(t *testing.T) {
	m := gcode.GCodeMove{Type: gcode.MoveArcCW, FromX: 10, FromY: 0, ToX: 10, ToY: 0}

	pts := arcPoints(m, 4)

	require.Len(t, pts, 5)
	assert.InDelta(t, 0, pts[1][0], 1e-9)
	assert.InDelta(t, -10, pts[1][1], 1e-9, "clockwise goes down first")
	assert.InDelta(t, 10, pts[4][0], 1e-9)
}

func TestGCodePreview_RendersToolpath(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	board := model.NewBoard(200, 100)
	pills := []model.Pill{model.NewPill(1, model.Rect{X: 20, Y: 20, Width: 80, Height: 60}, model.Color{Saturation: 70, Lightness: 50})}
	settings := model.DefaultCutSettings()
	code, err := gcode.New(settings).Generate(board, pills)
	require.NoError(t, err)

	preview := RenderGCodePreview(board, pills, settings, code).(*GCodePreview)
	r := test.TempWidgetRenderer(t, preview)

	assert.Greater(t, len(r.Objects()), 2+len(gcode.ParseGCode(code))/2)
	size := r.MinSize()
	assert.LessOrEqual(t, size.Width, float32(700))
	assert.LessOrEqual(t, size.Height, float32(450))
}

func TestGCodePreview_UnmountedBoard(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	preview := NewGCodePreview(nil, model.Board{}, nil, model.DefaultCutSettings(), 700, 450)
	r := test.TempWidgetRenderer(t, preview)

	assert.Empty(t, r.Objects())
	assert.Equal(t, float32(100), r.MinSize().Width)
}
