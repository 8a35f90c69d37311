package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const inspWidth = 230

var inspBackColor = color.NRGBA{R: 14, G: 16, B: 24, A: 220}

// Inspector follows a single selected unit and shows its details.
type Inspector struct {
	unit UnitID
}

// pick follows the selection when exactly one unit is selected.
func (in *Inspector) pick(s *Session) {
	sel := s.Selected()
	if len(sel) == 1 {
		in.unit = sel[0].ID
		return
	}
	in.unit = 0
}

func (in *Inspector) clear() { in.unit = 0 }

// inspectLines describes u for the inspector panel.
func inspectLines(u *Unit) []string {
	lines := []string{
		fmt.Sprintf("%s  %s", u.Label, u.Kind),
		fmt.Sprintf("hull   %4.0f / %.0f", u.Health, u.MaxHealth),
	}
	if u.MaxArmor > 0 {
		lines = append(lines, fmt.Sprintf("armour %4.0f / %.0f", u.Armor, u.MaxArmor))
	}
	if u.Armed() {
		state := "ready"
		if !u.ReadyToFire() {
			state = fmt.Sprintf("%.2fs", u.Cooldown())
		}
		lines = append(lines, fmt.Sprintf("guns %.0f/%.0f dmg  %.0fpx  %s", u.BulletDamage, u.ArmorDamage, u.FireRange, state))
	}
	lines = append(lines, fmt.Sprintf("speed %.0f  turn %.0f deg/s", u.Mover.Speed, u.Mover.TurnRate))
	if u.Recalling {
		lines = append(lines, "returning to hangar")
	}
	if c := u.Collector; c != nil {
		switch {
		case c.HealTarget != 0:
			lines = append(lines, fmt.Sprintf("repairing unit %d", c.HealTarget))
		case c.Returning:
			lines = append(lines, fmt.Sprintf("unloading %.0f %s", c.Fill, c.CargoOre))
		case c.MineTarget != 0:
			lines = append(lines, fmt.Sprintf("mining %.0f / %.0f", c.Fill, c.Capacity))
		default:
			lines = append(lines, "idle")
		}
	}
	if u.Hangar != nil {
		lines = append(lines, fmt.Sprintf("hangar %d/%d out, %d lost", u.Hangar.DeployedCount(), u.Hangar.Len(), u.Hangar.TotalLosses()))
	}
	return lines
}

func (g *Game) drawInspector(screen *ebiten.Image) {
	if g.inspector.unit == 0 {
		return
	}
	u := g.sess.UnitByID(g.inspector.unit)
	if u == nil {
		g.inspector.clear()
		return
	}
	lines := inspectLines(u)
	h := float32(len(lines)*hudLineH + 2*hudPad)
	x := float32(g.offX + hudPad)
	y := float32(g.offY+g.gameHeight-hudPad) - h
	vector.FillRect(screen, x, y, inspWidth, h, inspBackColor, false)
	vector.StrokeRect(screen, x, y, inspWidth, h, 1, panelEdge, false)
	ty := float64(y) + hudPad
	for i, l := range lines {
		c := textColor
		if i == 0 {
			c = headingColor
		}
		drawText(screen, l, float64(x)+hudPad, ty, c)
		ty += hudLineH
	}
}
