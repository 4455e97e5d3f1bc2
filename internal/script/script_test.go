package script

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/piwi3910/PillBoard/internal/engine"
	"github.com/piwi3910/PillBoard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const drawSplitDrag = `
seed = 1

[board]
width = 800
height = 600

# Draw a 200x200 pill.
[[gesture]]
press = [100, 100]
moves = [[200, 200], [300, 300]]
release = [300, 300]

# Split it into quadrants.
[[gesture]]
click = [200, 200]

# Drag the top-left quadrant away.
[[gesture]]
press = [150, 150]
moves = [[450, 450]]
release = [450, 450]
`

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestParse(t *testing.T) {
	s, err := Parse([]byte(drawSplitDrag))
	require.NoError(t, err)

	assert.Equal(t, int64(1), s.Seed)
	assert.Equal(t, model.NewBoard(800, 600), s.BoardOr(model.Board{}))
	require.Len(t, s.Gestures, 3)

	steps, err := s.Steps()
	require.NoError(t, err)
	assert.Equal(t, model.Point2D{X: 100, Y: 100}, steps[0].Press)
	assert.Len(t, steps[0].Moves, 2)
	assert.Equal(t, steps[1].Press, steps[1].Release, "click presses and releases in place")
	assert.Empty(t, steps[1].Moves)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"no gestures", "seed = 1\n", "no gestures"},
		{"missing press", "[[gesture]]\nrelease = [1, 1]\n", "gesture 1: missing press"},
		{"missing release", "[[gesture]]\npress = [1, 1]\n", "gesture 1: missing release"},
		{"bad point", "[[gesture]]\npress = [1]\nrelease = [1, 1]\n", "press must be [x, y]"},
		{"bad move", "[[gesture]]\npress = [1, 1]\nmoves = [[1, 2, 3]]\nrelease = [1, 1]\n", "move 1 must be [x, y]"},
		{"click and press", "[[gesture]]\nclick = [1, 1]\npress = [1, 1]\n", "click cannot be combined"},
		{"unknown key", "[[gesture]]\nclick = [1, 1]\nrelaese = [1, 1]\n", "unknown keys"},
		{"negative board", "[board]\nwidth = -1\n[[gesture]]\nclick = [1, 1]\n", "must not be negative"},
		{"not toml", "[[gesture", "invalid script"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_NoGesturesSentinel(t *testing.T) {
	_, err := Parse([]byte("seed = 3\n"))
	assert.True(t, errors.Is(err, ErrNoGestures))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.toml")
	require.NoError(t, os.WriteFile(path, []byte(drawSplitDrag), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Gestures, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestBoardOrFallback(t *testing.T) {
	s := &Script{}
	fallback := model.NewBoard(320, 240)
	assert.Equal(t, fallback, s.BoardOr(fallback))
}

func TestReplay_DrawSplitDrag(t *testing.T) {
	s, err := Parse([]byte(drawSplitDrag))
	require.NoError(t, err)
	e := s.NewEngine(model.NewBoard(100, 100))

	results, err := Replay(e, s, quietLogger())
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, engine.ResultCreated, results[0].Kind)
	assert.Equal(t, engine.ResultSplit, results[1].Kind)
	assert.Len(t, results[1].Created, 4)
	assert.Equal(t, engine.ResultMoved, results[2].Kind)

	pills := e.Pills()
	require.Len(t, pills, 4)
	assert.Equal(t, model.Rect{X: 400, Y: 400, Width: 100, Height: 100}, pills[0].Rect)
	assert.Equal(t, model.Corners{TL: true}, pills[0].Corners)
	assert.Equal(t, model.Rect{X: 200, Y: 100, Width: 100, Height: 100}, pills[1].Rect)
}

func TestReplay_IsDeterministic(t *testing.T) {
	s, err := Parse([]byte(drawSplitDrag))
	require.NoError(t, err)

	a := s.NewEngine(model.Board{})
	b := s.NewEngine(model.Board{})
	_, err = Replay(a, s, quietLogger())
	require.NoError(t, err)
	_, err = Replay(b, s, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, a.Pills(), b.Pills())
}

func TestReplay_IDSeed(t *testing.T) {
	s, err := Parse([]byte("id_seed = 50\n[[gesture]]\npress = [10, 10]\nrelease = [90, 90]\nmoves = [[90, 90]]\n"))
	require.NoError(t, err)
	e := s.NewEngine(model.NewBoard(200, 200))

	_, err = Replay(e, s, quietLogger())
	require.NoError(t, err)
	require.Len(t, e.Pills(), 1)
	assert.Equal(t, model.PillID(50), e.Pills()[0].ID)
}

func TestReplay_UnmountedBoard(t *testing.T) {
	s, err := Parse([]byte("[[gesture]]\nclick = [1, 1]\n"))
	require.NoError(t, err)

	_, err = Replay(s.NewEngine(model.Board{}), s, quietLogger())
	assert.Error(t, err)
}
