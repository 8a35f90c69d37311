package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// hudFace is the fixed 7x13 bitmap font used for every overlay.
var hudFace = text.NewGoXFace(basicfont.Face7x13)

const (
	hudLineH = 14
	hudPad   = 8
)

var (
	panelColor    = color.RGBA{R: 12, G: 14, B: 22, A: 255}
	panelEdge     = color.RGBA{R: 60, G: 80, B: 120, A: 255}
	textColor     = color.RGBA{R: 200, G: 210, B: 225, A: 255}
	headingColor  = color.RGBA{R: 130, G: 200, B: 255, A: 255}
	flashColor    = color.RGBA{R: 255, G: 230, B: 120, A: 255}
	defeatColor   = color.RGBA{R: 255, G: 80, B: 70, A: 255}
	defeatShade   = color.NRGBA{R: 0, G: 0, B: 0, A: 150}
	commsTextTint = color.RGBA{R: 150, G: 160, B: 170, A: 255}
)

var controlsLegend = []string{
	"LMB drag  select",
	"LMB rock  mine (collectors)",
	"LMB ship  repair (collectors)",
	"RMB       move selection",
	"1-9 toggle hangar slot",
	"H recall all   F5 save",
	"Q/W/E/R build RC/IC/BM/FR",
	"P pause  ,/. speed  G ranges",
	"C copy report  Tab legend",
}

func drawText(dst *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, hudFace, op)
}

func speedLabel(speed float64) string {
	if speed <= 0 {
		return "PAUSED"
	}
	return fmt.Sprintf("%gx", speed)
}

func clockLabel(seconds float64) string {
	s := int(seconds)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

// panelLines builds the status panel text top to bottom. Lines starting
// with "#" are headings.
func panelLines(f Frame, speed float64, dests []LocationRef) []string {
	lines := []string{
		fmt.Sprintf("#%s  %s", clockLabel(f.Elapsed), speedLabel(speed)),
		fmt.Sprintf("%s (%s)", f.Location.String(), orNone(string(f.Location.Type))),
	}
	switch {
	case f.WaveIn > 0:
		lines = append(lines, fmt.Sprintf("pirate wave in %.0fs", f.WaveIn))
	case f.Location.WavesAllowed():
		lines = append(lines, "pirate waves off")
	default:
		lines = append(lines, "no pirate activity")
	}

	lines = append(lines, "", "#ORE")
	ore := ""
	for _, o := range AllOres {
		ore += fmt.Sprintf("%s:%-5d ", o, f.Ore[o])
	}
	lines = append(lines, ore)

	lines = append(lines, "", "#HANGAR")
	if len(f.Slots) == 0 {
		lines = append(lines, "no hangar")
	}
	for _, s := range f.Slots {
		l := fmt.Sprintf("[%d] %-18s %-8s", s.Index+1, s.Kind, s.State)
		if s.State == SlotDeployed {
			l += fmt.Sprintf(" %3.0f%%", s.Health*100)
		}
		if s.Losses > 0 {
			l += fmt.Sprintf(" lost %d", s.Losses)
		}
		lines = append(lines, l)
	}

	lines = append(lines, "", "#FABRICATION")
	fab := f.Fabrication
	switch {
	case fab.Active:
		l := fmt.Sprintf("%s %3.0f%%", fab.Kind, fab.Progress*100)
		if fab.Queued > 0 {
			l += fmt.Sprintf(" (+%d queued)", fab.Queued)
		}
		lines = append(lines, l)
	default:
		lines = append(lines, "idle")
	}

	st := f.Stats
	lines = append(lines, "", "#TALLY",
		fmt.Sprintf("pirates destroyed %d", st.EnemiesDestroyed),
		fmt.Sprintf("craft lost %d  frigates lost %d", st.CraftLost, st.FrigatesLost),
		fmt.Sprintf("ore delivered %d in %d runs", st.OreDelivered, st.Deliveries),
	)

	if len(dests) > 0 {
		lines = append(lines, "", "#JUMP")
		for i, d := range dests {
			if i >= len(jumpKeys) {
				break
			}
			lines = append(lines, fmt.Sprintf("[%s] %s", jumpKeys[i], d))
		}
	}
	return lines
}

func orNone(s string) string {
	if s == "" {
		return "empty space"
	}
	return s
}

// drawPanel renders the status panel and comms log right of the playfield.
func (g *Game) drawPanel(screen *ebiten.Image, f Frame) {
	px := float32(g.offX + g.gameWidth + borderWidth)
	vector.FillRect(screen, px, 0, hudPanelWidth, float32(g.height), panelColor, false)
	vector.StrokeLine(screen, px, 0, px, float32(g.height), 1, panelEdge, false)

	x := float64(px) + hudPad
	y := float64(hudPad)
	for _, l := range panelLines(f, g.simSpeed, g.cfg.Destinations) {
		if len(l) > 0 && l[0] == '#' {
			drawText(screen, l[1:], x, y, headingColor)
		} else {
			drawText(screen, l, x, y, textColor)
		}
		y += hudLineH
	}

	if g.showHUD {
		y += hudLineH
		drawText(screen, "CONTROLS", x, y, headingColor)
		y += hudLineH
		for _, l := range controlsLegend {
			drawText(screen, l, x, y, textColor)
			y += hudLineH
		}
	}

	// Comms log fills the rest of the panel from the bottom up.
	bottom := float64(g.height) - hudPad - hudLineH
	room := int((bottom-y)/hudLineH) - 1
	if room > 0 {
		events := g.sess.Events.Recent(room)
		cy := bottom - float64(len(events)-1)*hudLineH
		drawText(screen, "COMMS", x, cy-hudLineH, headingColor)
		for _, e := range events {
			drawText(screen, commsLine(e), x, cy, commsTextTint)
			cy += hudLineH
		}
	}

	if g.flashTimer > 0 && g.flash != "" {
		drawText(screen, g.flash, float64(g.offX)+hudPad, float64(g.offY)+hudPad, flashColor)
	}
}

// commsLine is the short form of an event for the comms log.
func commsLine(e Event) string {
	who := e.Unit
	if who == "--" {
		who = ""
	}
	l := fmt.Sprintf("%s %s %s %s", clockLabel(float64(e.Tick)/(1/DefaultDt)), who, e.Key, e.Value)
	if len(l) > 40 {
		l = l[:40]
	}
	return l
}

func (g *Game) drawDefeatBanner(screen *ebiten.Image) {
	ox, oy := float32(g.offX), float32(g.offY)
	vector.FillRect(screen, ox, oy, float32(g.gameWidth), float32(g.gameHeight), defeatShade, false)
	msg := "EXPEDITION SHIP LOST - press Esc"
	w, _ := text.Measure(msg, hudFace, 0)
	drawText(screen, msg, float64(g.offX)+(float64(g.gameWidth)-w)/2, float64(g.offY+g.gameHeight/2), defeatColor)
}
