//go:build sdl

// Package sdl implements the render interfaces on SDL2 and SDL_ttf. Unlike
// the ebiten backend it owns the game loop itself: poll, update, draw,
// present, then sleep for the rest of the frame budget.
//
// SDL must be driven from the main OS thread; callers lock it before Open.
package sdl

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"chosenoffset.com/pong/internal/core/geom"
	"chosenoffset.com/pong/internal/render"
)

// SDLEngine implements render.Engine on an SDL window and accelerated renderer.
type SDLEngine struct {
	width, height int32
	title         string
	tps           int

	window   *sdl.Window
	renderer *sdl.Renderer
	input    *SDLInputManager

	// cleanup holds release funcs for every acquired resource, run in
	// reverse order by Close.
	cleanup []func()
}

// NewEngine creates a new SDL-based game engine.
func NewEngine() render.Engine {
	return &SDLEngine{
		width:  800,
		height: 600,
		title:  "Pong",
		tps:    60,
		input:  &SDLInputManager{},
	}
}

// SetWindowSize sets the window size in pixels. Must be called before Open.
func (e *SDLEngine) SetWindowSize(width, height int) {
	e.width, e.height = int32(width), int32(height)
}

// SetWindowTitle sets the window title.
func (e *SDLEngine) SetWindowTitle(title string) {
	e.title = title
	if e.window != nil {
		e.window.SetTitle(title)
	}
}

// SetTPS sets the target ticks per second used for frame pacing.
func (e *SDLEngine) SetTPS(tps int) {
	if tps > 0 {
		e.tps = tps
	}
}

// Open initializes SDL and SDL_ttf and creates the window and renderer. On
// failure everything acquired so far is released before returning.
func (e *SDLEngine) Open() (err error) {
	defer func() {
		if err != nil {
			e.Close()
		}
	}()

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("SDL initialization failed: %w", err)
	}
	e.onClose(sdl.Quit)

	if err := ttf.Init(); err != nil {
		return fmt.Errorf("SDL_ttf initialization failed: %w", err)
	}
	e.onClose(ttf.Quit)

	window, err := sdl.CreateWindow(e.title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		e.width, e.height, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("window creation failed: %w", err)
	}
	e.window = window
	e.onClose(func() {
		if err := window.Destroy(); err != nil {
			log.Printf("Warning: failed to destroy window: %v", err)
		}
		e.window = nil
	})

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return fmt.Errorf("renderer creation failed: %w", err)
	}
	e.renderer = renderer
	e.onClose(func() {
		if err := renderer.Destroy(); err != nil {
			log.Printf("Warning: failed to destroy renderer: %v", err)
		}
		e.renderer = nil
	})

	return nil
}

func (e *SDLEngine) onClose(f func()) {
	e.cleanup = append(e.cleanup, f)
}

// LoadFont opens a TrueType font. SDL_ttf only takes integer point sizes.
func (e *SDLEngine) LoadFont(path string, size float64) (render.Font, error) {
	if e.renderer == nil {
		return nil, errors.New("engine is not open")
	}
	font, err := ttf.OpenFont(path, int(math.Round(size)))
	if err != nil {
		return nil, fmt.Errorf("font loading failed: %w", err)
	}
	return &SDLFont{font: font, renderer: e.renderer}, nil
}

// Input returns the SDL event queue reader.
func (e *SDLEngine) Input() render.InputManager {
	return e.input
}

// RunGame runs the fixed-rate loop until the game terminates. Frame pacing
// is a coarse sleep, so wall-clock time may drift from the game's tick.
func (e *SDLEngine) RunGame(game render.Game) error {
	if e.renderer == nil {
		return errors.New("engine is not open")
	}

	screen := &SDLScreen{renderer: e.renderer}
	delay := uint32(1000 / e.tps)

	for {
		if err := game.Update(); err != nil {
			if errors.Is(err, render.ErrTerminated) {
				return nil
			}
			return err
		}
		game.Draw(screen)
		e.renderer.Present()
		sdl.Delay(delay)
	}
}

// Close releases every acquired resource in reverse order. Calling it more
// than once is harmless.
func (e *SDLEngine) Close() error {
	for i := len(e.cleanup) - 1; i >= 0; i-- {
		e.cleanup[i]()
	}
	e.cleanup = nil
	return nil
}

// SDLScreen draws through an SDL renderer.
type SDLScreen struct {
	renderer *sdl.Renderer
}

// Clear fills the whole frame with clr.
func (s *SDLScreen) Clear(clr color.Color) {
	s.setColor(clr)
	s.renderer.Clear()
}

// FillRect draws a filled rectangle, rounding to whole pixels.
func (s *SDLScreen) FillRect(r geom.Rect, clr color.Color) {
	s.setColor(clr)
	s.renderer.FillRect(toSDLRect(r))
}

// DrawImage copies a text texture to (x, y) at its natural size.
func (s *SDLScreen) DrawImage(img render.Image, x, y float64) {
	src := img.(*SDLImage)
	dst := &sdl.Rect{X: int32(x), Y: int32(y), W: src.w, H: src.h}
	s.renderer.Copy(src.texture, nil, dst)
}

func (s *SDLScreen) setColor(clr color.Color) {
	c := color.RGBAModel.Convert(clr).(color.RGBA)
	s.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
}

func toSDLRect(r geom.Rect) *sdl.Rect {
	return &sdl.Rect{
		X: int32(math.Round(r.X)),
		Y: int32(math.Round(r.Y)),
		W: int32(r.W),
		H: int32(r.H),
	}
}

// SDLImage is a texture created from a rendered text surface.
type SDLImage struct {
	texture *sdl.Texture
	w, h    int32
}

// Size returns the texture size.
func (i *SDLImage) Size() (width, height int) {
	return int(i.w), int(i.h)
}

// Dispose destroys the texture.
func (i *SDLImage) Dispose() {
	if i.texture != nil {
		i.texture.Destroy()
		i.texture = nil
	}
}

// SDLFont renders text with SDL_ttf onto textures owned by renderer.
type SDLFont struct {
	font     *ttf.Font
	renderer *sdl.Renderer
}

// RenderText renders str into a texture. The intermediate surface is freed
// before returning.
func (f *SDLFont) RenderText(str string, clr color.Color) (render.Image, error) {
	c := color.RGBAModel.Convert(clr).(color.RGBA)
	surface, err := f.font.RenderUTF8Solid(str, sdl.Color{R: c.R, G: c.G, B: c.B, A: c.A})
	if err != nil {
		return nil, fmt.Errorf("failed to render text: %w", err)
	}
	defer surface.Free()

	texture, err := f.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, fmt.Errorf("failed to create text texture: %w", err)
	}

	return &SDLImage{texture: texture, w: surface.W, h: surface.H}, nil
}

// Close closes the font.
func (f *SDLFont) Close() error {
	if f.font != nil {
		f.font.Close()
		f.font = nil
	}
	return nil
}

// SDLInputManager drains the SDL event queue.
type SDLInputManager struct{}

// PollEvents drains every pending SDL event without blocking.
func (m *SDLInputManager) PollEvents() []render.Event {
	var events []render.Event
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			events = append(events, render.Event{Type: render.EventQuit})
		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				continue
			}
			key := keyFromSDL(ev.Keysym.Sym)
			if key == render.KeyEscape && ev.Type == sdl.KEYDOWN {
				events = append(events, render.Event{Type: render.EventQuit})
				continue
			}
			if key == render.KeyUnknown || key == render.KeyEscape {
				continue
			}
			if ev.Type == sdl.KEYDOWN {
				events = append(events, render.Event{Type: render.EventKeyDown, Key: key})
			} else if ev.Type == sdl.KEYUP {
				events = append(events, render.Event{Type: render.EventKeyUp, Key: key})
			}
		}
	}
	return events
}

func keyFromSDL(sym sdl.Keycode) render.Key {
	switch sym {
	case sdl.K_w:
		return render.KeyW
	case sdl.K_s:
		return render.KeyS
	case sdl.K_UP:
		return render.KeyUp
	case sdl.K_DOWN:
		return render.KeyDown
	case sdl.K_ESCAPE:
		return render.KeyEscape
	default:
		return render.KeyUnknown
	}
}
