package engine

import (
	"math/rand"
	"time"

	"github.com/piwi3910/PillBoard/internal/model"
)

// Gesture is the interaction currently in progress. It is one of Idle,
// Drawing or Dragging, so a draw and a drag can never be active together.
type Gesture interface {
	isGesture()
}

// Idle means no pointer is pressed.
type Idle struct{}

// Drawing is a press on the empty board. Preview stays nil until the pointer
// has travelled MinPill on either axis; once set it keeps tracking the
// pointer even if it comes back below the threshold.
type Drawing struct {
	Start   model.Point2D
	Color   model.Color
	Preview *model.Rect
}

// Dragging is a press on a pill's body.
type Dragging struct {
	ID     model.PillID
	Offset model.Point2D // pointer minus the pill's top-left at press time
	Moved  bool
}

func (Idle) isGesture()     {}
func (Drawing) isGesture()  {}
func (Dragging) isGesture() {}

// ResultKind says what a released gesture did to the store.
type ResultKind int

const (
	ResultNone    ResultKind = iota // No gesture was active
	ResultCreated                   // A drawn pill was appended
	ResultMoved                     // A pill was dragged to a new position
	ResultSplit                     // The release was resolved as a split
)

func (k ResultKind) String() string {
	switch k {
	case ResultCreated:
		return "created"
	case ResultMoved:
		return "moved"
	case ResultSplit:
		return "split"
	default:
		return "none"
	}
}

// Result describes the effect of a pointer release.
type Result struct {
	Kind    ResultKind
	At      model.Point2D
	Created []model.PillID // Pills added (a drawn pill or split pieces)
	Removed []model.PillID // Pills consumed by a split
	Nudged  []model.PillID // Pills too small to split that were moved aside
}

// Frame is everything a renderer needs after a mutation.
type Frame struct {
	Board     model.Board
	Pills     []model.Pill
	Cursor    model.Point2D
	HasCursor bool
	Preview   *model.Rect
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed seeds the color generator so draws are reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithIDSeed sets the first pill id the engine will issue.
func WithIDSeed(seed model.PillID) Option {
	return func(e *Engine) {
		e.store = NewStore(NewIDGenerator(seed))
	}
}

// Engine turns pointer events into draws, drags and splits on a Store.
// It is driven from a single event loop and is not safe for concurrent use.
type Engine struct {
	board     model.Board
	store     *Store
	rng       *rand.Rand
	gesture   Gesture
	cursor    model.Point2D
	hasCursor bool
	listeners []func(Frame)
}

// New creates an engine for the given board with an empty store.
func New(board model.Board, opts ...Option) *Engine {
	e := &Engine{
		board:   board,
		store:   NewStore(NewIDGenerator(1)),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		gesture: Idle{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OnChange registers fn to be called with a fresh Frame after every change.
func (e *Engine) OnChange(fn func(Frame)) {
	e.listeners = append(e.listeners, fn)
}

// Board returns the current board.
func (e *Engine) Board() model.Board {
	return e.board
}

// SetBoard changes the board size. Pills are pulled back inside the new
// bounds so no pill ever hangs off the board.
func (e *Engine) SetBoard(b model.Board) {
	e.board = b
	if !b.Mounted() {
		return
	}
	e.store.Update(func(pills []model.Pill) []model.Pill {
		for i := range pills {
			r := pills[i].Rect
			r.X = model.Clamp(r.X, 0, b.Width-r.Width)
			r.Y = model.Clamp(r.Y, 0, b.Height-r.Height)
			pills[i].Rect = r
		}
		return pills
	})
	if e.hasCursor {
		e.cursor = b.ClampPoint(e.cursor)
	}
	e.notify()
}

// Pills returns the current pill sequence.
func (e *Engine) Pills() []model.Pill {
	return e.store.Pills()
}

// Gesture returns the gesture in progress.
func (e *Engine) Gesture() Gesture {
	return e.gesture
}

// Frame returns a snapshot for rendering.
func (e *Engine) Frame() Frame {
	f := Frame{
		Board:     e.board,
		Pills:     e.store.Pills(),
		Cursor:    e.cursor,
		HasCursor: e.hasCursor,
	}
	if d, ok := e.gesture.(Drawing); ok && d.Preview != nil {
		r := *d.Preview
		f.Preview = &r
	}
	return f
}

// Reset clears the board and abandons any gesture in progress.
func (e *Engine) Reset() {
	e.store.Reset()
	e.gesture = Idle{}
	e.notify()
}

// HitTest returns the topmost pill whose rendered surface contains p, or
// model.NoPill. Renderers without per-shape handles use it to tag presses.
func (e *Engine) HitTest(p model.Point2D) model.PillID {
	pills := e.store.pills
	for i := len(pills) - 1; i >= 0; i-- {
		if pills[i].Covers(p) {
			return pills[i].ID
		}
	}
	return model.NoPill
}

// PointerDown starts a gesture. A press on a pill (target != NoPill) starts a
// drag; a press on the empty board starts a draw with a freshly rolled color.
// Presses naming a pill that no longer exists are ignored.
func (e *Engine) PointerDown(p model.Point2D, target model.PillID) {
	if !e.board.Mounted() {
		return
	}
	if _, idle := e.gesture.(Idle); !idle {
		return
	}
	p = e.moveCursor(p)

	if target != model.NoPill {
		pill, ok := e.store.Find(target)
		if !ok {
			return
		}
		e.gesture = Dragging{ID: pill.ID, Offset: p.Sub(pill.Rect.TopLeft())}
		e.notify()
		return
	}

	e.gesture = Drawing{Start: p, Color: model.RandomColor(e.rng)}
	e.notify()
}

// PointerMove tracks the cursor and advances the gesture in progress.
func (e *Engine) PointerMove(p model.Point2D) {
	if !e.board.Mounted() {
		return
	}
	p = e.moveCursor(p)

	switch g := e.gesture.(type) {
	case Drawing:
		if g.Preview != nil || pastThreshold(g.Start, p) {
			r := PreviewRect(g.Start, p, e.board)
			g.Preview = &r
			e.gesture = g
		}
	case Dragging:
		e.gesture = e.drag(g, p)
	}
	e.notify()
}

// drag moves the dragged pill to follow the cursor. Until the pill has moved
// by more than the jitter tolerance it stays put.
func (e *Engine) drag(g Dragging, cursor model.Point2D) Gesture {
	pill, ok := e.store.Find(g.ID)
	if !ok {
		return g
	}
	pos := DragPosition(cursor, g.Offset, pill.Rect, e.board)
	if !g.Moved && exceedsJitter(pos, pill.Rect.TopLeft()) {
		g.Moved = true
	}
	if g.Moved {
		e.store.Update(func(pills []model.Pill) []model.Pill {
			for i := range pills {
				if pills[i].ID == g.ID {
					pills[i].Rect.X = pos.X
					pills[i].Rect.Y = pos.Y
				}
			}
			return pills
		})
	}
	return g
}

// PointerUp ends the gesture. A draw with a preview commits a new pill and a
// drag that moved leaves the pill where it is. A gesture that had no effect
// is treated as a click and splits at the release point.
func (e *Engine) PointerUp(p model.Point2D) Result {
	if !e.board.Mounted() {
		return Result{}
	}
	p = e.moveCursor(p)

	g := e.gesture
	e.gesture = Idle{}

	var res Result
	switch g := g.(type) {
	case Idle:
		return Result{}
	case Drawing:
		if g.Preview != nil {
			pill := model.NewPill(e.store.IDs().Next(), *g.Preview, g.Color)
			e.store.Append(pill)
			res = Result{Kind: ResultCreated, At: p, Created: []model.PillID{pill.ID}}
		}
	case Dragging:
		if g.Moved {
			res = Result{Kind: ResultMoved, At: p}
		}
	}
	if res.Kind == ResultNone {
		res = e.split(p)
	}
	e.notify()
	return res
}

// SplitAt splits every pill containing p, as a click at p would.
func (e *Engine) SplitAt(p model.Point2D) Result {
	if !e.board.Mounted() {
		return Result{}
	}
	res := e.split(e.board.ClampPoint(p))
	e.notify()
	return res
}

func (e *Engine) split(p model.Point2D) Result {
	before := e.store.Pills()
	e.store.Update(func(pills []model.Pill) []model.Pill {
		return Split(pills, p, e.board, e.store.IDs())
	})
	res := diffPills(before, e.store.Pills())
	res.Kind = ResultSplit
	res.At = p
	return res
}

// diffPills reports which ids appeared, disappeared, or changed geometry
// between two sequences.
func diffPills(before, after []model.Pill) Result {
	var res Result
	old := make(map[model.PillID]model.Rect, len(before))
	for _, p := range before {
		old[p.ID] = p.Rect
	}
	seen := make(map[model.PillID]bool, len(after))
	for _, p := range after {
		seen[p.ID] = true
		r, existed := old[p.ID]
		switch {
		case !existed:
			res.Created = append(res.Created, p.ID)
		case r != p.Rect:
			res.Nudged = append(res.Nudged, p.ID)
		}
	}
	for _, p := range before {
		if !seen[p.ID] {
			res.Removed = append(res.Removed, p.ID)
		}
	}
	return res
}

func (e *Engine) moveCursor(p model.Point2D) model.Point2D {
	e.cursor = e.board.ClampPoint(p)
	e.hasCursor = true
	return e.cursor
}

func (e *Engine) notify() {
	if len(e.listeners) == 0 {
		return
	}
	f := e.Frame()
	for _, fn := range e.listeners {
		fn(f)
	}
}
