package screen

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Ricochet-Tanks/internal/game"
)

var (
	colorBackground = color.RGBA{A: 255}
	colorPlayer     = color.RGBA{B: 255, A: 255}
	colorEnemy      = color.RGBA{G: 255, A: 255}
	colorBarrel     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorShot       = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	colorObstacle   = color.RGBA{R: 255, A: 255}

	colorHUD    = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	colorBanner = color.RGBA{R: 255, G: 220, B: 60, A: 255}
	colorShade  = color.RGBA{A: 170}
)

const (
	playerBarrelWidth = 2
	enemyBarrelWidth  = 1
	hudLineHeight     = 15
)

var hudFace = text.NewGoXFace(basicfont.Face7x13)

// drawArena renders one frame of the world at the layout origin.
func drawArena(dst *ebiten.Image, w *game.World, pointer game.Vec) {
	vector.FillRect(dst, 0, 0, float32(w.Arena.W), float32(w.Arena.H), colorBackground, false)

	fillRect(dst, w.Player.Body, colorPlayer)
	aim := w.Player.Aim(pointer)
	strokeSegment(dst, aim, playerBarrelWidth)

	for _, e := range w.Enemies {
		fillRect(dst, e.Body, colorEnemy)
		strokeSegment(dst, e.BarrelSegment(), enemyBarrelWidth)
	}

	for _, p := range w.PlayerShots {
		drawShot(dst, p)
	}
	for _, p := range w.EnemyShots {
		drawShot(dst, p)
	}

	for _, o := range w.Obstacles {
		fillRect(dst, o, colorObstacle)
	}
}

func fillRect(dst *ebiten.Image, r game.Rect, c color.Color) {
	vector.FillRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func strokeSegment(dst *ebiten.Image, s game.Segment, width float32) {
	vector.StrokeLine(dst, float32(s.Start.X), float32(s.Start.Y), float32(s.End.X), float32(s.End.Y), width, colorBarrel, true)
}

func drawShot(dst *ebiten.Image, p *game.Projectile) {
	c := p.Center()
	vector.FillCircle(dst, float32(c.X), float32(c.Y), float32(p.Radius()), colorShot, true)
}

// hudLines is the status text drawn over the top-left of the arena.
func hudLines(w *game.World, paused bool) []string {
	lines := []string{
		fmt.Sprintf("shots %d/%d  enemies %d  tick %d",
			len(w.PlayerShots), w.Rules().MaxPlayerShots, len(w.Enemies), w.Tick),
	}
	if paused {
		lines = append(lines, "PAUSED  P=resume")
	}
	return lines
}

// bannerLines is the end-of-round message, or nil while the round runs.
func bannerLines(w *game.World) []string {
	o := w.Outcome()
	switch o.Status {
	case game.StatusVictory:
		return []string{"VICTORY", o.Description, "R=restart  C=copy report  Esc=quit"}
	case game.StatusDefeat:
		return []string{"DEFEAT", o.Description, "R=restart  C=copy report  Esc=quit"}
	}
	return nil
}

func drawText(dst *ebiten.Image, lines []string, x, y float64, c color.Color) {
	for i, l := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y+float64(i*hudLineHeight))
		op.ColorScale.ScaleWithColor(c)
		text.Draw(dst, l, hudFace, op)
	}
}

func drawHUD(dst *ebiten.Image, w *game.World, paused bool) {
	drawText(dst, hudLines(w, paused), 6, 4, colorHUD)

	banner := bannerLines(w)
	if banner == nil {
		return
	}
	boxH := float32(len(banner)*hudLineHeight + 12)
	boxY := float32(w.Arena.H)/2 - boxH/2
	vector.FillRect(dst, 0, boxY, float32(w.Arena.W), boxH, colorShade, false)
	drawText(dst, banner, 16, float64(boxY)+6, colorBanner)
}
