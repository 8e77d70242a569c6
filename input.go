package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
)

// stickDeadzone ignores small gamepad stick drift.
const stickDeadzone = 0.25

// Input is the polled controller state for one frame.
type Input struct {
	// Move is the raw heading from WASD or the left stick.
	Move   cp.Vector
	Moving bool
	// Shoot is the aim from the arrow keys, the right stick or the mouse.
	Shoot  cp.Vector
	Firing bool

	UseItem      bool
	PausePressed bool
	Confirm      bool
	LeaveVendor  bool
	// Buy is the 1-based vendor offer picked with the number keys, or 0.
	Buy int

	ToggleDebug bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls keyboard, mouse and the first gamepad. player is the player's
// screen position, used to turn the cursor into an aim direction.
func (i *Input) Update(player cp.Vector) {
	var move cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		move.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		move.X += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		move.Y -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		move.Y += 1
	}

	var shoot cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		shoot.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		shoot.X += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		shoot.Y -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		shoot.Y += 1
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		shoot = cp.Vector{X: float64(mx), Y: float64(my)}.Sub(player)
	}

	useItem := inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	pause := inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP)
	confirm := inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	leave := inpututil.IsKeyJustPressed(ebiten.KeyL)

	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) > 0 {
		gid := ids[0]
		if ebiten.IsStandardGamepadLayoutAvailable(gid) {
			lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
			ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
			if math.Hypot(lx, ly) > stickDeadzone {
				move = cp.Vector{X: lx, Y: ly}
			}
			rx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickHorizontal)
			ry := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickVertical)
			if math.Hypot(rx, ry) > stickDeadzone {
				shoot = cp.Vector{X: rx, Y: ry}
			}
			useItem = useItem || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
			pause = pause || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
			confirm = confirm || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightRight)
			leave = leave || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightTop)
		}
	}

	i.Buy = 0
	for n, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6} {
		if inpututil.IsKeyJustPressed(key) {
			i.Buy = n + 1
			break
		}
	}

	i.Move = move
	i.Moving = move.X != 0 || move.Y != 0
	i.Shoot = shoot
	i.Firing = shoot.X != 0 || shoot.Y != 0
	i.UseItem = useItem
	i.PausePressed = pause
	i.Confirm = confirm
	i.LeaveVendor = leave
	i.ToggleDebug = inpututil.IsKeyJustPressed(ebiten.KeyF3)
}
