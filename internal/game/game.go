package game

import (
	"log"

	"chosenoffset.com/pong/internal/render"
)

// Game holds all game state and logic.
type Game struct {
	LeftPaddle  Paddle
	RightPaddle Paddle
	Ball        Ball
	Score       Score
	State       State

	InputMgr render.InputManager
	Font     render.Font

	// Debug
	FrameCount int
}

// New creates a game in its starting layout. Either collaborator may be nil:
// a nil input manager never delivers events and a nil font skips the score
// text.
func New(input render.InputManager, font render.Font) *Game {
	return &Game{
		LeftPaddle:  newLeftPaddle(),
		RightPaddle: newRightPaddle(),
		Ball:        newBall(),
		State:       StateRunning,
		InputMgr:    input,
		Font:        font,
	}
}

// Update handles game logic updates. Once a quit has been seen, the tick it
// arrived in still runs to completion; the following call returns
// render.ErrTerminated.
func (g *Game) Update() error {
	if g.State == StateStopped {
		return render.ErrTerminated
	}

	g.HandleInput()
	g.Step(DeltaTime)
	g.FrameCount++

	return nil
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Running reports whether the loop should keep going.
func (g *Game) Running() bool {
	return g.State == StateRunning
}

// Scores returns the current score of both sides.
func (g *Game) Scores() (left, right int) {
	return g.Score.Left, g.Score.Right
}

// HandleInput drains pending input events in order.
func (g *Game) HandleInput() {
	if g.InputMgr == nil {
		return
	}
	for _, ev := range g.InputMgr.PollEvents() {
		g.applyEvent(ev)
	}
}

func (g *Game) applyEvent(ev render.Event) {
	switch ev.Type {
	case render.EventQuit:
		if g.State != StateStopped {
			g.State = StateStopped
			log.Printf("Quit requested, game %s after %d frames, final score %d-%d", g.State, g.FrameCount, g.Score.Left, g.Score.Right)
		}
	case render.EventKeyDown:
		switch ev.Key {
		case render.KeyW:
			g.LeftPaddle.VY = -PaddleSpeed
		case render.KeyS:
			g.LeftPaddle.VY = PaddleSpeed
		case render.KeyUp:
			g.RightPaddle.VY = -PaddleSpeed
		case render.KeyDown:
			g.RightPaddle.VY = PaddleSpeed
		}
	case render.EventKeyUp:
		switch ev.Key {
		case render.KeyW, render.KeyS:
			g.LeftPaddle.VY = 0
		case render.KeyUp, render.KeyDown:
			g.RightPaddle.VY = 0
		}
	}
}
