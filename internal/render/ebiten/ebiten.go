package ebiten

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/pong/internal/core/geom"
	"chosenoffset.com/pong/internal/render"
)

// EbitenScreen wraps the ebiten screen image to implement render.Screen.
type EbitenScreen struct {
	img *ebiten.Image
}

// WrapScreen wraps an existing ebiten.Image as a render.Screen.
func WrapScreen(img *ebiten.Image) render.Screen {
	return &EbitenScreen{img: img}
}

// Clear fills the entire screen with the given color.
func (s *EbitenScreen) Clear(clr color.Color) {
	s.img.Fill(clr)
}

// FillRect draws a filled rectangle on the screen.
func (s *EbitenScreen) FillRect(r geom.Rect, clr color.Color) {
	vector.DrawFilledRect(s.img, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

// DrawImage draws the source image at (x, y).
func (s *EbitenScreen) DrawImage(src render.Image, x, y float64) {
	srcImg := src.(*EbitenImage).img

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(x, y)
	s.img.DrawImage(srcImg, opts)
}

// EbitenImage wraps an ebiten.Image to implement the render.Image interface.
type EbitenImage struct {
	img *ebiten.Image
}

// Size returns the width and height of the image.
func (i *EbitenImage) Size() (width, height int) {
	return i.img.Bounds().Dx(), i.img.Bounds().Dy()
}

// Dispose releases the image resources.
func (i *EbitenImage) Dispose() {
	if i.img != nil {
		i.img.Dispose()
	}
}

// EbitenFont renders text with a TrueType face through ebiten's text package.
type EbitenFont struct {
	face *text.GoTextFace
}

// RenderText draws str into a new image sized to the measured text.
func (f *EbitenFont) RenderText(str string, clr color.Color) (render.Image, error) {
	w, h := text.Measure(str, f.face, f.face.Size)
	img := ebiten.NewImage(max(1, int(math.Ceil(w))), max(1, int(math.Ceil(h))))

	opts := &text.DrawOptions{}
	opts.ColorScale.ScaleWithColor(clr)
	text.Draw(img, str, f.face, opts)

	return &EbitenImage{img: img}, nil
}

// Close releases the font. Face sources are garbage collected, so there is
// nothing to free.
func (f *EbitenFont) Close() error {
	return nil
}

// watchedKeys are the keys reported as key-down/key-up events.
var watchedKeys = []render.Key{
	render.KeyW,
	render.KeyS,
	render.KeyUp,
	render.KeyDown,
}

// EbitenInputManager turns ebiten's per-tick key state into discrete events.
type EbitenInputManager struct{}

// NewInputManager creates a new Ebiten-based input manager.
func NewInputManager() render.InputManager {
	return &EbitenInputManager{}
}

// PollEvents reports a quit request and the key edges of this tick.
func (m *EbitenInputManager) PollEvents() []render.Event {
	return render.KeyEdgeEvents(
		ebiten.IsWindowBeingClosed(),
		watchedKeys,
		func(k render.Key) bool { return inpututil.IsKeyJustPressed(keyToEbitenKey(k)) },
		func(k render.Key) bool { return inpututil.IsKeyJustReleased(keyToEbitenKey(k)) },
	)
}

// keyToEbitenKey converts a render.Key to an ebiten.Key.
func keyToEbitenKey(key render.Key) ebiten.Key {
	switch key {
	case render.KeyW:
		return ebiten.KeyW
	case render.KeyS:
		return ebiten.KeyS
	case render.KeyUp:
		return ebiten.KeyArrowUp
	case render.KeyDown:
		return ebiten.KeyArrowDown
	case render.KeyEscape:
		return ebiten.KeyEscape
	default:
		return 0
	}
}

// EbitenEngine implements the Engine interface using Ebiten.
type EbitenEngine struct {
	input render.InputManager
}

// NewEngine creates a new Ebiten-based game engine.
func NewEngine() render.Engine {
	return &EbitenEngine{input: NewInputManager()}
}

// SetWindowSize sets the window size in pixels.
func (e *EbitenEngine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *EbitenEngine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetTPS sets the fixed tick rate.
func (e *EbitenEngine) SetTPS(tps int) {
	ebiten.SetTPS(tps)
}

// Open configures the window. Ebiten creates the window and its graphics
// context inside RunGame, so Open cannot fail; a failure to create them is
// returned by RunGame wrapping render.ErrWindowUnavailable.
func (e *EbitenEngine) Open() error {
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetWindowClosingHandled(true)
	return nil
}

// LoadFont loads a TrueType font file.
func (e *EbitenEngine) LoadFont(path string, size float64) (render.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}

	return &EbitenFont{face: &text.GoTextFace{Source: src, Size: size}}, nil
}

// Input returns the engine's input manager.
func (e *EbitenEngine) Input() render.InputManager {
	return e.input
}

// RunGame runs the game loop with the provided game. An error returned before
// the first tick means the window never came up.
func (e *EbitenEngine) RunGame(game render.Game) error {
	adapter := &gameAdapter{game: game}
	return adapter.result(ebiten.RunGame(adapter))
}

// Close is a no-op: ebiten tears the window down when RunGame returns.
func (e *EbitenEngine) Close() error {
	return nil
}

// gameAdapter adapts a render.Game to ebiten.Game interface.
type gameAdapter struct {
	game    render.Game
	started bool
}

// Update implements ebiten.Game.
func (a *gameAdapter) Update() error {
	a.started = true
	err := a.game.Update()
	if errors.Is(err, render.ErrTerminated) {
		return ebiten.Termination
	}
	return err
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.game.Draw(WrapScreen(screen))
}

// Layout implements ebiten.Game.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}

func (a *gameAdapter) result(err error) error {
	if err != nil && !a.started {
		return fmt.Errorf("%w: %w", render.ErrWindowUnavailable, err)
	}
	return err
}
