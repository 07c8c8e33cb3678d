package game

import (
	"image/color"
	"log"
	"strconv"

	"chosenoffset.com/pong/internal/render"
)

var (
	backgroundColor = color.RGBA{0, 0, 0, 255}
	foregroundColor = color.RGBA{255, 255, 255, 255}
)

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Screen) {
	screen.Clear(backgroundColor)

	screen.FillRect(g.LeftPaddle.Rect, foregroundColor)
	screen.FillRect(g.RightPaddle.Rect, foregroundColor)
	screen.FillRect(g.Ball.Rect, foregroundColor)

	g.drawText(screen, strconv.Itoa(g.Score.Left), ScreenWidth/4, ScoreTextY)
	g.drawText(screen, strconv.Itoa(g.Score.Right), 3*ScreenWidth/4, ScoreTextY)
}

// drawText renders str and blits it with its top-left corner at (x, y). The
// text image only lives for this one draw.
func (g *Game) drawText(screen render.Screen, str string, x, y float64) {
	if g.Font == nil {
		return
	}

	img, err := g.Font.RenderText(str, foregroundColor)
	if err != nil {
		log.Printf("Warning: Failed to render text %q: %v", str, err)
		return
	}
	defer img.Dispose()

	screen.DrawImage(img, x, y)
}
