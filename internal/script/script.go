// Package script loads gesture scripts written in TOML and replays them
// against an interaction engine without a window.
//
// A script looks like:
//
//	seed = 42
//
//	[board]
//	width = 800
//	height = 600
//
//	[[gesture]]
//	press = [10, 10]
//	moves = [[50, 40], [100, 80]]
//	release = [100, 80]
//
//	[[gesture]]
//	click = [55, 45]
package script

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/piwi3910/PillBoard/internal/model"
)

// ErrNoGestures is returned for a script without any [[gesture]] entries.
var ErrNoGestures = errors.New("script has no gestures")

// Board is the optional board size of a script.
type Board struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Gesture is one press-move-release sequence. Click is shorthand for a
// press and release at the same point.
type Gesture struct {
	Press   []float64   `toml:"press"`
	Moves   [][]float64 `toml:"moves"`
	Release []float64   `toml:"release"`
	Click   []float64   `toml:"click"`
}

// Script is a parsed gesture script.
type Script struct {
	Seed     int64     `toml:"seed"`
	IDSeed   int       `toml:"id_seed"`
	Board    Board     `toml:"board"`
	Gestures []Gesture `toml:"gesture"`
}

// Step is a validated gesture in board coordinates.
type Step struct {
	Press   model.Point2D
	Moves   []model.Point2D
	Release model.Point2D
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a script. Unknown keys are rejected so typos
// do not silently change a replay.
func Parse(data []byte) (*Script, error) {
	var s Script
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in script: %s", strings.Join(keys, ", "))
	}
	if _, err := s.Steps(); err != nil {
		return nil, err
	}
	return &s, nil
}

// BoardOr returns the script's board, or fallback when the script does not
// set one.
func (s *Script) BoardOr(fallback model.Board) model.Board {
	if s.Board.Width > 0 && s.Board.Height > 0 {
		return model.NewBoard(s.Board.Width, s.Board.Height)
	}
	return fallback
}

// Steps validates every gesture and converts it to board points.
func (s *Script) Steps() ([]Step, error) {
	if len(s.Gestures) == 0 {
		return nil, ErrNoGestures
	}
	if s.Board.Width < 0 || s.Board.Height < 0 {
		return nil, fmt.Errorf("board size must not be negative, got %gx%g", s.Board.Width, s.Board.Height)
	}

	steps := make([]Step, 0, len(s.Gestures))
	for i, g := range s.Gestures {
		step, err := g.step()
		if err != nil {
			return nil, fmt.Errorf("gesture %d: %w", i+1, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func (g Gesture) step() (Step, error) {
	if g.Click != nil {
		if g.Press != nil || g.Release != nil || len(g.Moves) > 0 {
			return Step{}, errors.New("click cannot be combined with press, moves or release")
		}
		p, err := point(g.Click, "click")
		if err != nil {
			return Step{}, err
		}
		return Step{Press: p, Release: p}, nil
	}

	if g.Press == nil {
		return Step{}, errors.New("missing press")
	}
	if g.Release == nil {
		return Step{}, errors.New("missing release")
	}
	press, err := point(g.Press, "press")
	if err != nil {
		return Step{}, err
	}
	release, err := point(g.Release, "release")
	if err != nil {
		return Step{}, err
	}
	step := Step{Press: press, Release: release}
	for i, m := range g.Moves {
		p, err := point(m, fmt.Sprintf("move %d", i+1))
		if err != nil {
			return Step{}, err
		}
		step.Moves = append(step.Moves, p)
	}
	return step, nil
}

func point(v []float64, what string) (model.Point2D, error) {
	if len(v) != 2 {
		return model.Point2D{}, fmt.Errorf("%s must be [x, y], got %d values", what, len(v))
	}
	return model.Point2D{X: v[0], Y: v[1]}, nil
}
