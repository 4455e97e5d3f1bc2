package engine

import (
	"math/rand"
	"testing"

	"github.com/piwi3910/PillBoard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBoard = model.NewBoard(800, 600)

var testColor = model.Color{Hue: 200, Saturation: 70, Lightness: 50}

func pillAt(id model.PillID, x, y, w, h float64) model.Pill {
	return model.NewPill(id, model.Rect{X: x, Y: y, Width: w, Height: h}, testColor)
}

func TestSplit_QuadrantsAtCenter(t *testing.T) {
	ids := NewIDGenerator(10)
	pills := []model.Pill{pillAt(1, 0, 0, 100, 100)}

	result := Split(pills, model.Point2D{X: 50, Y: 50}, testBoard, ids)

	require.Len(t, result, 4)
	want := []struct {
		rect    model.Rect
		corners model.Corners
	}{
		{model.Rect{X: 0, Y: 0, Width: 50, Height: 50}, model.Corners{TL: true}},
		{model.Rect{X: 50, Y: 0, Width: 50, Height: 50}, model.Corners{TR: true}},
		{model.Rect{X: 0, Y: 50, Width: 50, Height: 50}, model.Corners{BL: true}},
		{model.Rect{X: 50, Y: 50, Width: 50, Height: 50}, model.Corners{BR: true}},
	}
	for i, w := range want {
		assert.Equal(t, w.rect, result[i].Rect, "piece %d rect", i)
		assert.Equal(t, w.corners, result[i].Corners, "piece %d corners", i)
		assert.Equal(t, testColor, result[i].Color, "piece %d color", i)
		assert.Equal(t, model.PillID(10+i), result[i].ID, "piece %d id", i)
	}
}

func TestSplit_ClampsNearEdge(t *testing.T) {
	ids := NewIDGenerator(2)
	pills := []model.Pill{pillAt(1, 0, 0, 100, 100)}

	result := Split(pills, model.Point2D{X: 5, Y: 50}, testBoard, ids)

	require.Len(t, result, 4)
	assert.Equal(t, 20.0, result[0].Rect.Width, "left piece clamps to MinSplit")
	assert.Equal(t, 80.0, result[1].Rect.Width, "right piece takes the rest")
	assert.Equal(t, 20.0, result[1].Rect.X)
	assert.Equal(t, 20.0, result[2].Rect.Width)
	assert.Equal(t, 80.0, result[3].Rect.Width)
}

func TestSplit_VerticalOnly(t *testing.T) {
	ids := NewIDGenerator(2)
	pills := []model.Pill{pillAt(1, 0, 0, 100, 30)}

	result := Split(pills, model.Point2D{X: 60, Y: 15}, testBoard, ids)

	require.Len(t, result, 2)
	assert.Equal(t, model.Rect{X: 0, Y: 0, Width: 60, Height: 30}, result[0].Rect)
	assert.Equal(t, model.Rect{X: 60, Y: 0, Width: 40, Height: 30}, result[1].Rect)
	assert.Equal(t, model.Corners{TL: true, BL: true}, result[0].Corners)
	assert.Equal(t, model.Corners{TR: true, BR: true}, result[1].Corners)
}

func TestSplit_HorizontalOnly(t *testing.T) {
	ids := NewIDGenerator(2)
	pills := []model.Pill{pillAt(1, 10, 10, 30, 100)}

	result := Split(pills, model.Point2D{X: 25, Y: 50}, testBoard, ids)

	require.Len(t, result, 2)
	assert.Equal(t, model.Rect{X: 10, Y: 10, Width: 30, Height: 40}, result[0].Rect)
	assert.Equal(t, model.Rect{X: 10, Y: 50, Width: 30, Height: 60}, result[1].Rect)
	assert.Equal(t, model.Corners{TL: true, TR: true}, result[0].Corners)
	assert.Equal(t, model.Corners{BL: true, BR: true}, result[1].Corners)
}

func TestSplit_TooSmallIsNudged(t *testing.T) {
	ids := NewIDGenerator(2)
	pills := []model.Pill{pillAt(1, 100, 100, 30, 30)}

	// Center click: not in the left/top half, so the pill goes right and down.
	result := Split(pills, model.Point2D{X: 115, Y: 115}, testBoard, ids)

	require.Len(t, result, 1)
	assert.Equal(t, model.PillID(1), result[0].ID, "nudged pill keeps its id")
	assert.Equal(t, model.Rect{X: 117, Y: 117, Width: 30, Height: 30}, result[0].Rect)
	assert.Equal(t, model.AllRounded(), result[0].Corners)
	assert.Equal(t, model.PillID(2), ids.Next(), "nudging must not consume ids")
}

func TestSplit_NudgeLeftAndUp(t *testing.T) {
	ids := NewIDGenerator(2)
	pills := []model.Pill{pillAt(1, 100, 100, 30, 30)}

	result := Split(pills, model.Point2D{X: 105, Y: 105}, testBoard, ids)

	require.Len(t, result, 1)
	assert.Equal(t, model.Rect{X: 73, Y: 73, Width: 30, Height: 30}, result[0].Rect)
	assert.False(t, result[0].Rect.Contains(model.Point2D{X: 105, Y: 105}))
}

func TestSplit_NudgeClampsToBoard(t *testing.T) {
	ids := NewIDGenerator(2)
	pills := []model.Pill{
		pillAt(1, 10, 10, 30, 30),
		pillAt(2, 765, 565, 30, 30),
	}

	result := Split(pills, model.Point2D{X: 12, Y: 12}, testBoard, ids)
	assert.Equal(t, 0.0, result[0].Rect.X)
	assert.Equal(t, 0.0, result[0].Rect.Y)

	result = Split(pills, model.Point2D{X: 790, Y: 590}, testBoard, ids)
	assert.Equal(t, model.Rect{X: 770, Y: 570, Width: 30, Height: 30}, result[1].Rect)
}

func TestSplit_OutsideIsPassThrough(t *testing.T) {
	ids := NewIDGenerator(10)
	pills := []model.Pill{
		pillAt(1, 0, 0, 100, 100),
		pillAt(2, 200, 200, 60, 60),
	}

	for _, p := range []model.Point2D{
		{X: 150, Y: 150},
		{X: 100, Y: 50}, // right edge is outside
		{X: 0, Y: 50},   // left edge is outside
		{X: 50, Y: 100}, // bottom edge is outside
	} {
		result := Split(pills, p, testBoard, ids)
		assert.Equal(t, pills, result, "point %+v", p)
	}
	assert.Equal(t, model.PillID(10), ids.Next(), "pass-through must not consume ids")
}

func TestSplit_OverlappingPillsAllSplit(t *testing.T) {
	ids := NewIDGenerator(10)
	pills := []model.Pill{
		pillAt(1, 0, 0, 100, 100),
		pillAt(2, 40, 40, 100, 100),
		pillAt(3, 300, 300, 50, 50),
	}

	result := Split(pills, model.Point2D{X: 60, Y: 60}, testBoard, ids)

	require.Len(t, result, 9)
	assert.Equal(t, model.PillID(3), result[8].ID, "untouched pill keeps its place")
	for _, p := range result[:8] {
		assert.NotEqual(t, model.PillID(1), p.ID)
		assert.NotEqual(t, model.PillID(2), p.ID)
	}
}

func TestSplit_DoesNotMutateInput(t *testing.T) {
	ids := NewIDGenerator(10)
	pills := []model.Pill{pillAt(1, 100, 100, 30, 30), pillAt(2, 0, 0, 100, 100)}
	orig := append([]model.Pill(nil), pills...)

	Split(pills, model.Point2D{X: 110, Y: 110}, testBoard, ids)
	Split(pills, model.Point2D{X: 50, Y: 50}, testBoard, ids)

	assert.Equal(t, orig, pills)
}

func TestSplit_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ids := NewIDGenerator(1000)

	for i := 0; i < 2000; i++ {
		w := 40 + rng.Float64()*260
		h := 40 + rng.Float64()*260
		x := rng.Float64() * (testBoard.Width - w)
		y := rng.Float64() * (testBoard.Height - h)
		parent := model.Pill{
			ID:   1,
			Rect: model.Rect{X: x, Y: y, Width: w, Height: h},
			Color: model.Color{
				Hue: rng.Float64() * 360, Saturation: 60, Lightness: 50,
			},
			Corners: model.Corners{
				TL: rng.Intn(2) == 0, TR: rng.Intn(2) == 0,
				BL: rng.Intn(2) == 0, BR: rng.Intn(2) == 0,
			},
		}
		p := model.Point2D{X: x + rng.Float64()*w, Y: y + rng.Float64()*h}

		pieces := Split([]model.Pill{parent}, p, testBoard, ids)

		var area float64
		for _, piece := range pieces {
			assert.GreaterOrEqual(t, piece.Rect.Width, model.MinSplit)
			assert.GreaterOrEqual(t, piece.Rect.Height, model.MinSplit)
			assert.True(t, piece.Rect.Within(testBoard.Bounds()), "piece %v off board", piece.Rect)
			assert.Equal(t, parent.Color, piece.Color)
			assert.True(t, piece.Corners.Subset(parent.Corners), "piece gained a corner")
			area += piece.Rect.Area()
		}
		assert.InDelta(t, parent.Rect.Area(), area, 1e-6, "pieces must tile the parent")

		if len(pieces) == 4 {
			counts := [4]int{}
			for _, piece := range pieces {
				for j, on := range []bool{piece.Corners.TL, piece.Corners.TR, piece.Corners.BL, piece.Corners.BR} {
					if on {
						counts[j]++
					}
				}
			}
			parentFlags := []bool{parent.Corners.TL, parent.Corners.TR, parent.Corners.BL, parent.Corners.BR}
			for j, on := range parentFlags {
				if on {
					assert.Equal(t, 1, counts[j], "flag %d must land on exactly one piece", j)
				} else {
					assert.Equal(t, 0, counts[j])
				}
			}
		}
	}
}
