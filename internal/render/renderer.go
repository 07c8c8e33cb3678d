package render

import (
	"errors"
	"image/color"

	"chosenoffset.com/pong/internal/core/geom"
)

// ErrTerminated is returned by Game.Update to end the game loop cleanly.
// Engines treat it as a normal shutdown, not a failure.
var ErrTerminated = errors.New("game terminated")

// ErrWindowUnavailable is wrapped by Engine.RunGame when the backend could not
// create its window before the first tick. Backends that open lazily report
// window failures this way instead of from Open.
var ErrWindowUnavailable = errors.New("window unavailable")

// Image represents a drawable image produced by a backend, such as a line of
// rendered text.
type Image interface {
	// Size returns the width and height in pixels.
	Size() (width, height int)

	// Dispose releases the image resources. The image must not be used after.
	Dispose()
}

// Screen is the drawing surface for one frame. It abstracts the underlying
// graphics engine so game logic never touches backend types.
type Screen interface {
	// Clear fills the whole surface with clr.
	Clear(clr color.Color)

	// FillRect draws a solid axis-aligned rectangle.
	FillRect(r geom.Rect, clr color.Color)

	// DrawImage blits img with its top-left corner at (x, y).
	DrawImage(img Image, x, y float64)
}

// Font renders text with a loaded font face.
type Font interface {
	// RenderText produces an image sized to the rendered text. The caller owns
	// the image and must Dispose it.
	RenderText(text string, clr color.Color) (Image, error)

	// Close releases the font.
	Close() error
}

// InputManager delivers input from the user as discrete events.
type InputManager interface {
	// PollEvents returns every event pending since the last call, in the
	// order they happened. It never blocks.
	PollEvents() []Event
}

// EventType identifies the kind of input event.
type EventType int

// Event types
const (
	EventQuit EventType = iota
	EventKeyDown
	EventKeyUp
)

// Event is a single input event. Key is only meaningful for key events.
type Event struct {
	Type EventType
	Key  Key
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the game listens to
const (
	KeyUnknown Key = iota
	KeyW
	KeyS
	KeyUp
	KeyDown
	KeyEscape
)

// Game represents the game interface that the engine will call.
type Game interface {
	// Update advances the game by one tick. Returning ErrTerminated stops
	// the engine without error.
	Update() error

	// Draw draws the current state onto the screen.
	Draw(screen Screen)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that owns the window and drives the
// game loop.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetTPS sets the number of game ticks per second.
	SetTPS(tps int)

	// Open acquires the window and its drawing surface.
	Open() error

	// LoadFont loads a TrueType font from path at the given pixel size.
	LoadFont(path string, size float64) (Font, error)

	// Input returns the input source bound to the window.
	Input() InputManager

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error

	// Close releases everything Open acquired. It is safe to call after a
	// failed Open.
	Close() error
}
