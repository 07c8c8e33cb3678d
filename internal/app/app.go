// Package app wires the game to a render engine: it acquires the window and
// font, runs the loop and guarantees every acquired resource is released on
// every exit path.
package app

import (
	"errors"
	"fmt"
	"log"

	"chosenoffset.com/pong/internal/config"
	"chosenoffset.com/pong/internal/game"
	"chosenoffset.com/pong/internal/render"
)

// Resources that can fail to start.
const (
	ResourceWindow = "window"
	ResourceFont   = "font"
)

// StartupError reports a resource that could not be acquired before the game
// loop started. It is the only failure the game treats as fatal.
type StartupError struct {
	Resource string
	Err      error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("failed to initialize %s: %v", e.Resource, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// Run opens the engine, loads the font and plays until the player quits.
// Resources are released in reverse order of acquisition whichever way Run
// returns.
func Run(cfg *config.Config, engine render.Engine) (err error) {
	engine.SetWindowSize(game.ScreenWidth, game.ScreenHeight)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetTPS(game.TPS)

	// Close is safe after a failed Open, so it is deferred unconditionally.
	defer func() {
		err = errors.Join(err, engine.Close())
	}()
	if err := engine.Open(); err != nil {
		return &StartupError{Resource: ResourceWindow, Err: err}
	}

	font, err := engine.LoadFont(cfg.Font.Path, cfg.Font.Size)
	if err != nil {
		return &StartupError{Resource: ResourceFont, Err: err}
	}
	defer func() {
		if cerr := font.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close font: %w", cerr))
		}
	}()

	g := game.New(engine.Input(), font)

	log.Println("Starting game...")
	if err := engine.RunGame(g); err != nil {
		if errors.Is(err, render.ErrWindowUnavailable) {
			return &StartupError{Resource: ResourceWindow, Err: err}
		}
		return fmt.Errorf("game loop failed: %w", err)
	}

	left, right := g.Scores()
	log.Printf("Game over after %d frames, final score %d-%d", g.FrameCount, left, right)
	return nil
}

// ExitCode maps the result of Run to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
