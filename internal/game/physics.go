package game

import (
	"log"

	"chosenoffset.com/pong/internal/core/geom"
)

// Side identifies which player a point goes to.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Step advances the simulation by dt seconds.
//
// Positions are not corrected after a wall bounce or a goal, so a fast ball
// can overshoot the playfield for one tick before the next check catches it.
func (g *Game) Step(dt float64) {
	g.movePaddle(&g.LeftPaddle, dt)
	g.movePaddle(&g.RightPaddle, dt)

	b := &g.Ball
	b.Rect.X += b.VX * dt
	b.Rect.Y += b.VY * dt

	if b.Rect.Y <= 0 || b.Rect.Y >= ScreenHeight-BallSize {
		b.VY = -b.VY
	}

	// Left paddle takes precedence; at most one paddle is handled per tick.
	if b.Rect.Intersects(g.LeftPaddle.Rect) {
		p := g.LeftPaddle.Rect
		// Judged against the back edge on purpose: a ball already behind it scores.
		if b.Rect.X >= p.X {
			b.Rect.X = p.Right()
			b.VX = -b.VX
		} else {
			g.scorePoint(SideRight, "got behind the left paddle")
		}
	} else if b.Rect.Intersects(g.RightPaddle.Rect) {
		p := g.RightPaddle.Rect
		if b.Rect.Right() <= p.Right() {
			b.Rect.X = p.X - BallSize
			b.VX = -b.VX
		} else {
			g.scorePoint(SideLeft, "got behind the right paddle")
		}
	}

	if b.Rect.X <= 0 {
		g.scorePoint(SideRight, "reached the left edge")
	} else if b.Rect.X >= ScreenWidth-BallSize {
		g.scorePoint(SideLeft, "reached the right edge")
	}
}

func (g *Game) movePaddle(p *Paddle, dt float64) {
	p.Rect.Y += p.VY * dt
	p.Rect.Y = geom.Clamp(p.Rect.Y, 0, ScreenHeight-PaddleHeight)
}

func (g *Game) scorePoint(side Side, reason string) {
	switch side {
	case SideLeft:
		g.Score.Left++
	case SideRight:
		g.Score.Right++
	}
	log.Printf("Point %s: ball %s, score %d-%d", side, reason, g.Score.Left, g.Score.Right)
	g.ResetBall()
}

// ResetBall puts the ball back in the centre. The horizontal direction flips
// relative to the pre-reset velocity; the vertical velocity is kept.
func (g *Game) ResetBall() {
	c := ballCenter()
	g.Ball.Rect.X = c.X
	g.Ball.Rect.Y = c.Y

	if g.Ball.VX > 0 {
		g.Ball.VX = -BallSpeed
	} else {
		g.Ball.VX = BallSpeed
	}
}
