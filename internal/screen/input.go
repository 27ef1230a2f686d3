package screen

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Ricochet-Tanks/internal/game"
)

// keyState is one frame of raw device state, sampled once per Update.
type keyState struct {
	up, down, left, right bool

	fireKey   bool // space went down this frame
	fireClick bool // left mouse went down this frame
	quit      bool

	cursorX, cursorY int

	pause, restart, copyReport bool
}

// sampleKeys reads the keyboard and mouse. Movement is held state; fire and
// the UI toggles are edge-triggered.
func sampleKeys() keyState {
	cx, cy := ebiten.CursorPosition()
	return keyState{
		up:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),

		fireKey:   inpututil.IsKeyJustPressed(ebiten.KeySpace),
		fireClick: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		quit:      inpututil.IsKeyJustPressed(ebiten.KeyEscape),

		cursorX: cx,
		cursorY: cy,

		pause:      inpututil.IsKeyJustPressed(ebiten.KeyP),
		restart:    inpututil.IsKeyJustPressed(ebiten.KeyR),
		copyReport: inpututil.IsKeyJustPressed(ebiten.KeyC),
	}
}

// toInput maps device state onto one simulation tick of input. The cursor
// is already in arena units because the arena is drawn at the layout origin.
func (k keyState) toInput() game.Input {
	in := game.Input{
		Quit: k.quit,
		Move: game.MoveInput{
			Up:    k.up,
			Down:  k.down,
			Left:  k.left,
			Right: k.right,
		},
		Pointer: game.Vec{X: float64(k.cursorX), Y: float64(k.cursorY)},
	}
	if k.fireKey {
		in.Fire++
	}
	if k.fireClick {
		in.Fire++
	}
	return in
}
