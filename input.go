package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input is one frame of simulated game-field input. The host stands in for
// the game field, so keys map straight to gameplay notifications.
type Input struct {
	MoveX, MoveY float64

	Collect    bool
	Damage     bool
	RoundDone  bool
	HitBoss    bool
	FinishRun  bool
	ToggleHelp bool
}

func (in *Input) Update() {
	const stickDeadzone = 0.2

	*in = Input{}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		in.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		in.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		in.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		in.MoveY += 1
	}

	in.Collect = inpututil.IsKeyJustPressed(ebiten.KeyC)
	in.Damage = inpututil.IsKeyJustPressed(ebiten.KeyH)
	in.RoundDone = inpututil.IsKeyJustPressed(ebiten.KeyN)
	in.HitBoss = inpututil.IsKeyJustPressed(ebiten.KeyB) || inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.FinishRun = inpututil.IsKeyJustPressed(ebiten.KeyF)
	in.ToggleHelp = inpututil.IsKeyJustPressed(ebiten.KeyF1)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(x, y) > stickDeadzone {
			in.MoveX, in.MoveY = x, y
		}

		in.Collect = in.Collect || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.HitBoss = in.HitBoss || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		in.RoundDone = in.RoundDone || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		in.FinishRun = in.FinishRun || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}
}
