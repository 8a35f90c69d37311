// Package radar draws a game.Frame on a terminal grid.
package radar

import (
	"fmt"

	"github.com/Garsondee/expedition/internal/game"
	"github.com/gdamore/tcell/v2"
)

// PanelWidth is the number of columns reserved for the status panel.
const PanelWidth = 30

var (
	styleDefault  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleHeader   = styleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleBorder   = styleDefault.Foreground(tcell.ColorDarkGray)
	styleFleet    = styleDefault.Foreground(tcell.ColorLime)
	styleSelected = styleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorLime)
	styleRecall   = styleDefault.Foreground(tcell.ColorSilver)
	stylePirate   = styleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleStation  = styleDefault.Foreground(tcell.ColorSkyblue)
	styleRock     = styleDefault.Foreground(tcell.ColorOlive)
	styleRichRock = styleDefault.Foreground(tcell.ColorYellow)
	styleShot     = styleDefault.Foreground(tcell.ColorWhite)
	styleEnemyHit = styleDefault.Foreground(tcell.ColorOrangeRed)
	styleLog      = styleDefault.Foreground(tcell.ColorGray)
	styleDefeat   = styleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorRed).Bold(true)
)

// Glyph is the map character for a unit kind.
func Glyph(k game.UnitKind) rune {
	switch k {
	case game.KindExpeditionShip:
		return 'M'
	case game.KindFrigate:
		return 'F'
	case game.KindInterceptor:
		return 'i'
	case game.KindBomber:
		return 'b'
	case game.KindResourceCollector:
		return 'c'
	case game.KindPirateFrigate:
		return 'P'
	case game.KindSpaceStation:
		return 'S'
	}
	return '?'
}

// DrawText writes s starting at (x, y).
func DrawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

// Renderer maps world coordinates onto the screen left of the panel.
type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(s tcell.Screen) *Renderer {
	return &Renderer{screen: s}
}

// mapSize is the playfield size in cells, inside the border.
func (r *Renderer) mapSize() (int, int) {
	w, h := r.screen.Size()
	return w - PanelWidth - 2, h - 2
}

// Cell converts a world position to a screen cell. ok is false outside the
// playfield.
func (r *Renderer) Cell(p, world game.Vec2) (x, y int, ok bool) {
	mw, mh := r.mapSize()
	if mw <= 0 || mh <= 0 || world.X <= 0 || world.Y <= 0 {
		return 0, 0, false
	}
	if p.X < 0 || p.Y < 0 || p.X >= world.X || p.Y >= world.Y {
		return 0, 0, false
	}
	return 1 + int(p.X/world.X*float64(mw)), 1 + int(p.Y/world.Y*float64(mh)), true
}

// Draw renders one frame. lines are extra status lines shown under the
// panel, such as the sim speed.
func (r *Renderer) Draw(f game.Frame, recent []game.Event, lines ...string) {
	s := r.screen
	s.Clear()
	_, h := s.Size()
	mw, mh := r.mapSize()
	if mw < 10 || mh < 5 {
		DrawText(s, 0, 0, "SCREEN TOO SMALL", styleDefeat)
		s.Show()
		return
	}

	r.drawBorder(mw, mh)

	for _, a := range f.Asteroids {
		if x, y, ok := r.Cell(a.Pos, f.World); ok {
			st := styleRock
			if a.Purity >= 0.5 {
				st = styleRichRock
			}
			s.SetContent(x, y, []rune(string(a.Ore))[0], nil, st)
		}
	}
	for _, p := range f.Projectiles {
		if x, y, ok := r.Cell(p.Pos, f.World); ok {
			st := styleShot
			if p.Enemy {
				st = styleEnemyHit
			}
			s.SetContent(x, y, '.', nil, st)
		}
	}
	for _, u := range f.Units {
		x, y, ok := r.Cell(u.Pos, f.World)
		if !ok {
			continue
		}
		s.SetContent(x, y, Glyph(u.Kind), nil, unitStyle(u))
	}

	r.drawPanel(f, recent, mw+2, lines)

	if f.Outcome == game.OutcomeDefeat {
		msg := " EXPEDITION SHIP LOST "
		DrawText(s, (mw+2-len(msg))/2, h/2, msg, styleDefeat)
	}
	s.Show()
}

func unitStyle(u game.UnitView) tcell.Style {
	switch {
	case u.Station:
		return styleStation
	case u.Enemy:
		return stylePirate
	case u.Selected:
		return styleSelected
	case u.Recalling:
		return styleRecall
	}
	return styleFleet
}

func (r *Renderer) drawBorder(mw, mh int) {
	s := r.screen
	for x := 1; x <= mw; x++ {
		s.SetContent(x, 0, tcell.RuneHLine, nil, styleBorder)
		s.SetContent(x, mh+1, tcell.RuneHLine, nil, styleBorder)
	}
	for y := 1; y <= mh; y++ {
		s.SetContent(0, y, tcell.RuneVLine, nil, styleBorder)
		s.SetContent(mw+1, y, tcell.RuneVLine, nil, styleBorder)
	}
	s.SetContent(0, 0, tcell.RuneULCorner, nil, styleBorder)
	s.SetContent(mw+1, 0, tcell.RuneURCorner, nil, styleBorder)
	s.SetContent(0, mh+1, tcell.RuneLLCorner, nil, styleBorder)
	s.SetContent(mw+1, mh+1, tcell.RuneLRCorner, nil, styleBorder)
}

// PanelLines is the status panel text, top to bottom.
func PanelLines(f game.Frame) []string {
	sec := int(f.Elapsed)
	out := []string{
		fmt.Sprintf("T+%02d:%02d %s", sec/60, sec%60, f.Outcome),
		f.Location.String(),
	}
	if f.WaveIn > 0 {
		out = append(out, fmt.Sprintf("wave in %.0fs", f.WaveIn))
	}
	ore := ""
	for _, o := range game.AllOres {
		ore += fmt.Sprintf("%s%d ", o, f.Ore[o])
	}
	out = append(out, "ore "+ore)
	for _, sl := range f.Slots {
		l := fmt.Sprintf("%d %-12.12s %s", sl.Index+1, sl.Kind, sl.State)
		if sl.State == game.SlotDeployed {
			l += fmt.Sprintf(" %3.0f%%", sl.Health*100)
		}
		out = append(out, l)
	}
	if f.Fabrication.Active {
		out = append(out, fmt.Sprintf("fab %s %3.0f%%", f.Fabrication.Kind, f.Fabrication.Progress*100))
	}
	out = append(out, fmt.Sprintf("kills %d lost %d ore %d",
		f.Stats.EnemiesDestroyed, f.Stats.CraftLost+f.Stats.FrigatesLost, f.Stats.OreDelivered))
	return out
}

func (r *Renderer) drawPanel(f game.Frame, recent []game.Event, x int, extra []string) {
	s := r.screen
	_, h := s.Size()
	x++
	y := 0
	DrawText(s, x, y, "EXPEDITION RADAR", styleHeader)
	y++
	for _, l := range append(PanelLines(f), extra...) {
		if y >= h {
			return
		}
		DrawText(s, x, y, clip(l, PanelWidth-1), styleDefault)
		y++
	}
	y++
	for _, e := range recent {
		if y >= h {
			return
		}
		DrawText(s, x, y, clip(fmt.Sprintf("%s %s %s", e.Unit, e.Key, e.Value), PanelWidth-1), styleLog)
		y++
	}
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
