package script

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/piwi3910/PillBoard/internal/engine"
	"github.com/piwi3910/PillBoard/internal/model"
)

// NewEngine returns an engine configured with the script's board and seeds.
func (s *Script) NewEngine(fallback model.Board) *engine.Engine {
	opts := []engine.Option{engine.WithSeed(s.Seed)}
	if s.IDSeed > 0 {
		opts = append(opts, engine.WithIDSeed(model.PillID(s.IDSeed)))
	}
	return engine.New(s.BoardOr(fallback), opts...)
}

// Replay feeds every gesture of s through e the way a pointer device would.
// The press target is resolved with HitTest, so a press on a pill drags it.
// It returns one result per gesture.
func Replay(e *engine.Engine, s *Script, logger *log.Logger) ([]engine.Result, error) {
	if logger == nil {
		logger = log.Default()
	}
	if !e.Board().Mounted() {
		return nil, errors.New("cannot replay on a board without a size")
	}
	steps, err := s.Steps()
	if err != nil {
		return nil, err
	}

	results := make([]engine.Result, 0, len(steps))
	for i, st := range steps {
		target := e.HitTest(st.Press)
		e.PointerDown(st.Press, target)
		for _, m := range st.Moves {
			e.PointerMove(m)
		}
		res := e.PointerUp(st.Release)
		results = append(results, res)

		logger.Debug("gesture replayed",
			"n", i+1,
			"target", int(target),
			"result", res.Kind,
			"created", len(res.Created),
			"removed", len(res.Removed),
			"nudged", len(res.Nudged),
		)
	}
	logger.Info("replay complete", "gestures", len(steps), "pills", len(e.Pills()))
	return results, nil
}
