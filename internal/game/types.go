package game

import (
	"chosenoffset.com/pong/internal/core/geom"
)

// Playfield and object sizes, in pixels.
const (
	ScreenWidth  = 800
	ScreenHeight = 600

	PaddleWidth  = 20
	PaddleHeight = 100
	PaddleMargin = 50 // Gap between each paddle and its side of the screen
	BallSize     = 15

	ScoreTextY = 20
)

// Speeds, in pixels per second.
const (
	PaddleSpeed = 300
	BallSpeed   = 300
)

// TPS is the fixed simulation rate. Physics always advances by DeltaTime per
// tick, whatever the real frame time was.
const (
	TPS       = 60
	DeltaTime = 1.0 / TPS
)

// Paddle is a player-controlled rectangle that only moves vertically.
type Paddle struct {
	Rect geom.Rect
	VY   float64 // Pixels per second; zero when no key is held
}

// Ball is the moving square.
type Ball struct {
	Rect   geom.Rect
	VX, VY float64
}

// Score holds the points of both sides for the session.
type Score struct {
	Left, Right int
}

// State is the loop state. Stopped is terminal.
type State int

const (
	StateRunning State = iota
	StateStopped
)

func (s State) String() string {
	if s == StateStopped {
		return "stopped"
	}
	return "running"
}

func newLeftPaddle() Paddle {
	return Paddle{Rect: geom.Rect{
		X: PaddleMargin,
		Y: ScreenHeight/2 - PaddleHeight/2,
		W: PaddleWidth,
		H: PaddleHeight,
	}}
}

func newRightPaddle() Paddle {
	return Paddle{Rect: geom.Rect{
		X: ScreenWidth - PaddleMargin - PaddleWidth,
		Y: ScreenHeight/2 - PaddleHeight/2,
		W: PaddleWidth,
		H: PaddleHeight,
	}}
}

// ballCenter is the top-left position that centres the ball on screen.
func ballCenter() geom.Point {
	return geom.Point{
		X: (ScreenWidth - BallSize) / 2.0,
		Y: (ScreenHeight - BallSize) / 2.0,
	}
}

func newBall() Ball {
	c := ballCenter()
	return Ball{
		Rect: geom.Rect{X: c.X, Y: c.Y, W: BallSize, H: BallSize},
		VX:   BallSpeed,
		VY:   BallSpeed,
	}
}
