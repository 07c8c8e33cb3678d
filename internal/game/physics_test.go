package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/pong/internal/core/geom"
)

const tickDistance = BallSpeed * DeltaTime // 5px

// placeBall puts the ball at (x, y) with the given velocity.
func placeBall(g *Game, x, y, vx, vy float64) {
	g.Ball.Rect = geom.Rect{X: x, Y: y, W: BallSize, H: BallSize}
	g.Ball.VX = vx
	g.Ball.VY = vy
}

func TestNewGameLayout(t *testing.T) {
	g := New(nil, nil)

	assert.Equal(t, geom.Rect{X: 50, Y: 250, W: 20, H: 100}, g.LeftPaddle.Rect)
	assert.Equal(t, geom.Rect{X: 730, Y: 250, W: 20, H: 100}, g.RightPaddle.Rect)
	assert.Equal(t, geom.Rect{X: 392.5, Y: 292.5, W: 15, H: 15}, g.Ball.Rect)
	assert.Equal(t, 300.0, g.Ball.VX)
	assert.Equal(t, 300.0, g.Ball.VY)
	assert.Equal(t, Score{}, g.Score)
	assert.True(t, g.Running())
}

func TestPaddleClamp(t *testing.T) {
	velocities := []float64{-PaddleSpeed, PaddleSpeed, -10 * PaddleSpeed, 10 * PaddleSpeed, -1e6, 1e6}
	durations := []int{1, 7, 50, 120, 1000}

	for _, vy := range velocities {
		for _, ticks := range durations {
			g := New(nil, nil)
			g.LeftPaddle.VY = vy
			g.RightPaddle.VY = -vy

			for i := 0; i < ticks; i++ {
				g.Step(DeltaTime)
				for _, p := range []Paddle{g.LeftPaddle, g.RightPaddle} {
					require.GreaterOrEqual(t, p.Rect.Y, 0.0, "vy=%v tick=%d", vy, i)
					require.LessOrEqual(t, p.Rect.Y, float64(ScreenHeight-PaddleHeight), "vy=%v tick=%d", vy, i)
				}
			}
		}
	}
}

func TestPaddleStopsAtEdges(t *testing.T) {
	g := New(nil, nil)
	g.LeftPaddle.VY = -PaddleSpeed
	g.RightPaddle.VY = PaddleSpeed

	for i := 0; i < 2*TPS; i++ {
		g.Step(DeltaTime)
	}

	assert.Equal(t, 0.0, g.LeftPaddle.Rect.Y)
	assert.Equal(t, float64(ScreenHeight-PaddleHeight), g.RightPaddle.Rect.Y)
	assert.Equal(t, float64(PaddleMargin), g.LeftPaddle.Rect.X, "paddles never move horizontally")
}

func TestPaddleIntegration(t *testing.T) {
	g := New(nil, nil)
	g.LeftPaddle.VY = PaddleSpeed

	g.Step(DeltaTime)

	assert.InDelta(t, 255.0, g.LeftPaddle.Rect.Y, 1e-9)
	assert.Equal(t, 250.0, g.RightPaddle.Rect.Y)
}

func TestWallBounceFlipsVerticalVelocity(t *testing.T) {
	testCases := []struct {
		name   string
		y, vy  float64
		wantVY float64
	}{
		{"crosses top", 2.5, -BallSpeed, BallSpeed},
		{"lands on top", 5, -BallSpeed, BallSpeed},
		{"crosses bottom", 582.5, BallSpeed, -BallSpeed},
		{"lands on bottom", 580, BallSpeed, -BallSpeed},
		{"mid-field", 300, BallSpeed, BallSpeed},
		{"mid-field upward", 300, -BallSpeed, -BallSpeed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := New(nil, nil)
			placeBall(g, 400, tc.y, BallSpeed, tc.vy)

			g.Step(DeltaTime)

			assert.Equal(t, tc.wantVY, g.Ball.VY)
			assert.Equal(t, Score{}, g.Score)
		})
	}
}

func TestTopWallBounceWithoutGoal(t *testing.T) {
	g := New(nil, nil)
	placeBall(g, 400, 0, BallSpeed, -BallSpeed)

	g.Step(DeltaTime)

	assert.Equal(t, float64(BallSpeed), g.Ball.VY)
	assert.Equal(t, Score{}, g.Score)
	// No position correction: the ball may sit up to one tick past the wall.
	assert.InDelta(t, -tickDistance, g.Ball.Rect.Y, 1e-9)
	assert.InDelta(t, 405.0, g.Ball.Rect.X, 1e-9)
}

func TestWallBounceRecoversFromOvershoot(t *testing.T) {
	g := New(nil, nil)
	placeBall(g, 400, 2.5, BallSpeed, -BallSpeed)

	g.Step(DeltaTime)
	require.Less(t, g.Ball.Rect.Y, 0.0)
	require.Equal(t, float64(BallSpeed), g.Ball.VY)

	g.Step(DeltaTime)
	assert.GreaterOrEqual(t, g.Ball.Rect.Y, 0.0)
	assert.Equal(t, float64(BallSpeed), g.Ball.VY)
}

func TestBallLandingExactlyOnTopWallKeepsFlipping(t *testing.T) {
	g := New(nil, nil)
	placeBall(g, 400, 0, BallSpeed, -BallSpeed)

	// y=0 counts as touching the wall, so a ball that reaches it exactly
	// from below flips again and never escapes.
	for i := 0; i < 6; i++ {
		g.Step(DeltaTime)
		if i%2 == 0 {
			assert.InDelta(t, -tickDistance, g.Ball.Rect.Y, 1e-9, "tick %d", i+1)
			assert.Equal(t, float64(BallSpeed), g.Ball.VY, "tick %d", i+1)
		} else {
			assert.InDelta(t, 0.0, g.Ball.Rect.Y, 1e-9, "tick %d", i+1)
			assert.Equal(t, float64(-BallSpeed), g.Ball.VY, "tick %d", i+1)
		}
	}
	assert.Equal(t, Score{}, g.Score)
	assert.InDelta(t, 430.0, g.Ball.Rect.X, 1e-9)
}

func TestServedBallNeverLandsExactlyOnWall(t *testing.T) {
	g := New(nil, nil)

	for i := 0; i < 3600; i++ {
		g.Step(DeltaTime)
		y := g.Ball.Rect.Y
		require.NotEqual(t, 0.0, y, "tick %d", i+1)
		require.NotEqual(t, float64(ScreenHeight-BallSize), y, "tick %d", i+1)
	}
}

func TestLeftPaddleBounce(t *testing.T) {
	g := New(nil, nil)
	placeBall(g, 70, 300, -BallSpeed, 0)

	g.Step(DeltaTime)

	assert.Equal(t, 70.0, g.Ball.Rect.X, "ball snaps to the paddle's front edge")
	assert.Equal(t, float64(BallSpeed), g.Ball.VX)
	assert.Equal(t, Score{}, g.Score)
}

func TestRightPaddleBounce(t *testing.T) {
	g := New(nil, nil)
	placeBall(g, 712, 300, BallSpeed, 0)

	g.Step(DeltaTime)

	assert.Equal(t, 715.0, g.Ball.Rect.X)
	assert.Equal(t, float64(-BallSpeed), g.Ball.VX)
	assert.Equal(t, Score{}, g.Score)
}

func TestPaddleCornerBounce(t *testing.T) {
	g := New(nil, nil)
	// Clips the bottom corner of the left paddle.
	placeBall(g, 72, 340, -BallSpeed, BallSpeed)

	g.Step(DeltaTime)

	assert.Equal(t, 70.0, g.Ball.Rect.X)
	assert.Equal(t, float64(BallSpeed), g.Ball.VX)
}

func TestBallBehindLeftPaddleIsAMiss(t *testing.T) {
	g := New(nil, nil)
	placeBall(g, 45, 300, -BallSpeed, 60)

	g.Step(DeltaTime)

	assert.Equal(t, Score{Left: 0, Right: 1}, g.Score)
	assert.Equal(t, 392.5, g.Ball.Rect.X)
	assert.Equal(t, 292.5, g.Ball.Rect.Y)
	assert.Equal(t, float64(BallSpeed), g.Ball.VX, "serve direction flips from the pre-reset sign")
	assert.Equal(t, 60.0, g.Ball.VY, "reset keeps the vertical velocity")
}

func TestBallBehindRightPaddleIsAMiss(t *testing.T) {
	g := New(nil, nil)
	placeBall(g, 740, 300, BallSpeed, 0)

	g.Step(DeltaTime)

	assert.Equal(t, Score{Left: 1, Right: 0}, g.Score)
	assert.Equal(t, 392.5, g.Ball.Rect.X)
	assert.Equal(t, float64(-BallSpeed), g.Ball.VX)
}

func TestPaddleMovingOntoBallFromBehind(t *testing.T) {
	g := New(nil, nil)
	// Ball slips past below the left paddle, then the paddle drops onto it.
	g.LeftPaddle.Rect.Y = 200
	g.LeftPaddle.VY = PaddleSpeed
	placeBall(g, 45, 300, -BallSpeed, 0)

	g.Step(DeltaTime)

	assert.Equal(t, 1, g.Score.Right)
	assert.Equal(t, 0, g.Score.Left)
}

func TestRightSideGoal(t *testing.T) {
	g := New(nil, nil)
	placeBall(g, 782, 100, BallSpeed, 120)

	g.Step(DeltaTime)

	assert.Equal(t, Score{Left: 1, Right: 0}, g.Score)
	assert.Equal(t, 392.5, g.Ball.Rect.X)
	assert.Equal(t, 292.5, g.Ball.Rect.Y)
	assert.Equal(t, float64(-BallSpeed), g.Ball.VX)
	assert.Equal(t, 120.0, g.Ball.VY)
}

func TestLeftSideGoal(t *testing.T) {
	g := New(nil, nil)
	placeBall(g, 3, 500, -BallSpeed, -BallSpeed)

	g.Step(DeltaTime)

	assert.Equal(t, Score{Left: 0, Right: 1}, g.Score)
	assert.Equal(t, 392.5, g.Ball.Rect.X)
	assert.Equal(t, float64(BallSpeed), g.Ball.VX)
	assert.Equal(t, float64(-BallSpeed), g.Ball.VY)
}

func TestResetBallServeDirection(t *testing.T) {
	testCases := []struct {
		name   string
		vx     float64
		wantVX float64
	}{
		{"moving right", BallSpeed, -BallSpeed},
		{"moving left", -BallSpeed, BallSpeed},
		{"slow right", 1, -BallSpeed},
		{"stationary", 0, BallSpeed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := New(nil, nil)
			placeBall(g, 10, 20, tc.vx, -42)

			g.ResetBall()

			assert.Equal(t, tc.wantVX, g.Ball.VX)
			assert.Equal(t, -42.0, g.Ball.VY)
			assert.Equal(t, ballCenter(), g.Ball.Rect.Origin())
			assert.Equal(t, Score{}, g.Score, "reset alone never scores")
		})
	}
}

func TestScoreMonotonicity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := New(nil, nil)
	speeds := []float64{-PaddleSpeed, 0, PaddleSpeed}

	goals := 0
	for tick := 0; tick < 60*TPS; tick++ {
		if tick%15 == 0 {
			g.LeftPaddle.VY = speeds[rng.Intn(len(speeds))]
			g.RightPaddle.VY = speeds[rng.Intn(len(speeds))]
		}
		before := g.Score

		g.Step(DeltaTime)

		dl := g.Score.Left - before.Left
		dr := g.Score.Right - before.Right
		require.GreaterOrEqual(t, dl, 0)
		require.GreaterOrEqual(t, dr, 0)
		require.LessOrEqual(t, dl+dr, 1, "at most one point per tick (tick %d)", tick)
		goals += dl + dr
	}

	assert.Equal(t, goals, g.Score.Left+g.Score.Right)
	assert.Positive(t, goals, "a minute of play should produce goals")
}

func TestBallStaysOnScoringAxis(t *testing.T) {
	g := New(nil, nil)

	for tick := 0; tick < 30*TPS; tick++ {
		g.Step(DeltaTime)
		require.Greater(t, g.Ball.Rect.X, 0.0, "tick %d", tick)
		require.Less(t, g.Ball.Rect.X, float64(ScreenWidth-BallSize), "tick %d", tick)
	}
}
