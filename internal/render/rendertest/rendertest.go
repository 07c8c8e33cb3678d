// Package rendertest provides in-memory implementations of the render
// interfaces so game logic can be exercised without a window.
package rendertest

import (
	"errors"
	"image/color"

	"chosenoffset.com/pong/internal/core/geom"
	"chosenoffset.com/pong/internal/render"
)

// Op is one recorded screen operation.
type Op struct {
	Kind  string // "clear", "fill" or "image"
	Rect  geom.Rect
	Color color.Color
	Image *Image
	X, Y  float64
}

// Screen records every draw call made during a frame.
type Screen struct {
	Ops []Op
}

// Clear records a clear.
func (s *Screen) Clear(clr color.Color) {
	s.Ops = append(s.Ops, Op{Kind: "clear", Color: clr})
}

// FillRect records a rectangle fill.
func (s *Screen) FillRect(r geom.Rect, clr color.Color) {
	s.Ops = append(s.Ops, Op{Kind: "fill", Rect: r, Color: clr})
}

// DrawImage records an image blit.
func (s *Screen) DrawImage(img render.Image, x, y float64) {
	s.Ops = append(s.Ops, Op{Kind: "image", Image: img.(*Image), X: x, Y: y})
}

// OpsOfKind returns the recorded operations of one kind, in order.
func (s *Screen) OpsOfKind(kind string) []Op {
	var ops []Op
	for _, op := range s.Ops {
		if op.Kind == kind {
			ops = append(ops, op)
		}
	}
	return ops
}

// Image is a text image that remembers what it shows and whether it was
// disposed.
type Image struct {
	Text     string
	Color    color.Color
	W, H     int
	Disposed bool
}

// Size returns the fake image size.
func (i *Image) Size() (width, height int) {
	return i.W, i.H
}

// Dispose marks the image as released.
func (i *Image) Dispose() {
	i.Disposed = true
}

// Font renders text as fixed-width fake images: GlyphWidth pixels per rune.
type Font struct {
	GlyphWidth int
	Height     int
	Err        error
	Closed     bool

	Rendered []*Image
}

// NewFont returns a font with 12x24 glyphs.
func NewFont() *Font {
	return &Font{GlyphWidth: 12, Height: 24}
}

// RenderText returns a new fake image or f.Err.
func (f *Font) RenderText(text string, clr color.Color) (render.Image, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	img := &Image{
		Text:  text,
		Color: clr,
		W:     len([]rune(text)) * f.GlyphWidth,
		H:     f.Height,
	}
	f.Rendered = append(f.Rendered, img)
	return img, nil
}

// Close marks the font closed.
func (f *Font) Close() error {
	f.Closed = true
	return nil
}

// Input hands out queued events one batch per poll.
type Input struct {
	batches [][]render.Event
}

// Queue appends a batch of events returned by a single PollEvents call.
func (in *Input) Queue(events ...render.Event) {
	in.batches = append(in.batches, events)
}

// PollEvents returns the oldest queued batch, or nil when nothing is queued.
func (in *Input) PollEvents() []render.Event {
	if len(in.batches) == 0 {
		return nil
	}
	batch := in.batches[0]
	in.batches = in.batches[1:]
	return batch
}

// KeyDown builds a key-down event.
func KeyDown(key render.Key) render.Event {
	return render.Event{Type: render.EventKeyDown, Key: key}
}

// KeyUp builds a key-up event.
func KeyUp(key render.Key) render.Event {
	return render.Event{Type: render.EventKeyUp, Key: key}
}

// Quit builds a quit event.
func Quit() render.Event {
	return render.Event{Type: render.EventQuit}
}

// ErrMaxTicks is returned by Engine.RunGame when the game did not stop within
// MaxTicks.
var ErrMaxTicks = errors.New("game did not terminate")

// Engine is a headless engine. Failures can be injected per step, and every
// call is recorded so tests can check what happened and in which order.
type Engine struct {
	OpenErr     error
	LoadFontErr error
	RunErr      error

	// MaxTicks bounds RunGame; zero means 1000.
	MaxTicks int

	Width, Height int
	Title         string
	TPS           int
	FontPath      string
	FontSize      float64

	InputSource *Input
	FontLoaded  *Font
	Screen      *Screen
	Calls       []string
	Ticks       int
}

// NewEngine returns a headless engine with an empty input queue.
func NewEngine() *Engine {
	return &Engine{InputSource: &Input{}, Screen: &Screen{}}
}

// SetWindowSize records the window size.
func (e *Engine) SetWindowSize(width, height int) {
	e.Width, e.Height = width, height
}

// SetWindowTitle records the title.
func (e *Engine) SetWindowTitle(title string) {
	e.Title = title
}

// SetTPS records the tick rate.
func (e *Engine) SetTPS(tps int) {
	e.TPS = tps
}

// Open fails with OpenErr when set.
func (e *Engine) Open() error {
	e.Calls = append(e.Calls, "open")
	return e.OpenErr
}

// LoadFont records the requested font and fails with LoadFontErr when set.
func (e *Engine) LoadFont(path string, size float64) (render.Font, error) {
	e.Calls = append(e.Calls, "load-font")
	e.FontPath, e.FontSize = path, size
	if e.LoadFontErr != nil {
		return nil, e.LoadFontErr
	}
	e.FontLoaded = NewFont()
	return e.FontLoaded, nil
}

// Input returns the queued input source.
func (e *Engine) Input() render.InputManager {
	return e.InputSource
}

// RunGame ticks and draws the game until it terminates.
func (e *Engine) RunGame(game render.Game) error {
	e.Calls = append(e.Calls, "run")
	if e.RunErr != nil {
		return e.RunErr
	}

	maxTicks := e.MaxTicks
	if maxTicks == 0 {
		maxTicks = 1000
	}
	for e.Ticks = 0; e.Ticks < maxTicks; e.Ticks++ {
		if err := game.Update(); err != nil {
			if errors.Is(err, render.ErrTerminated) {
				return nil
			}
			return err
		}
		e.Screen.Ops = e.Screen.Ops[:0]
		game.Draw(e.Screen)
	}
	return ErrMaxTicks
}

// Close records the release.
func (e *Engine) Close() error {
	e.Calls = append(e.Calls, "close")
	return nil
}
