package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/outlaw/game"
	"github.com/milk9111/outlaw/item"
	"github.com/milk9111/outlaw/level"
	"golang.org/x/image/colornames"
)

var tileColors = map[int]color.Color{
	0: colornames.Saddlebrown,
	1: colornames.Burlywood,
	2: colornames.Sienna,
	3: colornames.Tan,
	4: colornames.Wheat,
	5: colornames.Darkkhaki,
}

var itemColors = map[item.Type]color.Color{
	item.Coin:       colornames.Gold,
	item.FiveCoins:  colornames.Orange,
	item.ExtraLife:  colornames.Red,
	item.Coffee:     colornames.Chocolate,
	item.MachineGun: colornames.Slategray,
	item.Wheel:      colornames.Silver,
	item.Shotgun:    colornames.Darkolivegreen,
	item.Badge:      colornames.Yellow,
	item.Tombstone:  colornames.Gray,
	item.SmokeBomb:  colornames.Lightgray,
	item.Nuke:       colornames.Lime,
}

func drawWorld(screen *ebiten.Image, sim *game.Game) {
	screen.Fill(colornames.Black)
	drawMap(screen, sim.Map())

	cfg := sim.Config()
	tiles := sim.Map()
	for _, it := range sim.Items() {
		c := tiles.CellCenter(it.Cell)
		clr, ok := itemColors[it.Type]
		if !ok {
			clr = colornames.White
		}
		size := float32(tiles.TileSize) / 2
		vector.FillRect(screen, float32(c.X)-size/2, float32(c.Y)-size/2, size, size, clr, false)
	}

	for _, e := range sim.Enemies() {
		clr := colornames.Darkred
		if e.Smart {
			clr = colornames.Purple
		}
		vector.DrawFilledCircle(screen, float32(e.Position.X), float32(e.Position.Y), float32(cfg.Radii.Enemy), clr, true)
	}

	for _, b := range sim.Bullets() {
		vector.DrawFilledCircle(screen, float32(b.Position.X), float32(b.Position.Y), float32(cfg.Radii.Bullet), colornames.Khaki, true)
	}

	p := sim.Player()
	var clr color.Color = colornames.Crimson
	switch {
	case p.Zombie:
		clr = colornames.Olivedrab
	case p.Stealth:
		clr = color.NRGBA{R: 0xdc, G: 0x14, B: 0x3c, A: 0x60}
	}
	vector.DrawFilledCircle(screen, float32(p.Position.X), float32(p.Position.Y), float32(cfg.Radii.Player), clr, true)
	if p.Badge {
		vector.StrokeCircle(screen, float32(p.Position.X), float32(p.Position.Y), float32(cfg.Radii.Player)+3, 2, colornames.Gold, true)
	}
}

func drawMap(screen *ebiten.Image, tiles *level.TileMap) {
	if tiles.IsEmpty() {
		return
	}
	ts := float32(tiles.TileSize)
	for y := 0; y < tiles.Height; y++ {
		for x := 0; x < tiles.Width; x++ {
			id, _ := tiles.TileAt(level.Cell{X: x, Y: y})
			clr, ok := tileColors[id]
			if !ok {
				clr = colornames.Dimgray
			}
			vector.FillRect(screen, float32(x)*ts, float32(y)*ts, ts, ts, clr, false)
		}
	}
}

func drawHUD(screen *ebiten.Image, a *App) {
	sim := a.sim
	var b strings.Builder
	switch sim.State() {
	case game.Menu:
		b.WriteString("OUTLAW\nPress Enter to start\n")
	case game.GameOver:
		fmt.Fprintf(&b, "Game over: you %s\nKills: %d\nPress Enter to play again\n", sim.Outcome(), sim.Kills())
	default:
		p := sim.Player()
		remaining := max(0, sim.Config().MaxGameTime-sim.GameTime())
		fmt.Fprintf(&b, "Lives: %d  Coins: %d  Kills: %d  Time: %.0f\n", p.Lives, p.Coins, sim.Kills(), remaining)
		if held, ok := sim.HeldItem(); ok {
			fmt.Fprintf(&b, "Held: %s (Space)\n", held)
		}
		for _, e := range sim.Effects() {
			fmt.Fprintf(&b, "%s\n", e.Kind)
		}
	}

	if a.debug {
		fmt.Fprintf(&b, "\nFPS: %.1f  TPS: %.1f  frames: %d\n", ebiten.ActualFPS(), ebiten.ActualTPS(), a.frames)
		fmt.Fprintf(&b, "enemies: %d  bullets: %d  spawn every %.2fs\n", len(sim.Enemies()), len(sim.Bullets()), sim.SpawnInterval())
		for _, line := range a.feed {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	ebitenutil.DebugPrint(screen, b.String())
}
