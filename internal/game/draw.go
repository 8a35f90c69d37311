package game

import (
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	windowColor    = color.RGBA{R: 6, G: 7, B: 12, A: 255}
	spaceColor     = color.RGBA{R: 10, G: 12, B: 22, A: 255}
	borderColor    = color.RGBA{R: 60, G: 80, B: 120, A: 255}
	selectColor    = color.RGBA{R: 120, G: 255, B: 140, A: 255}
	rangeColor     = color.NRGBA{R: 120, G: 255, B: 140, A: 40}
	targetColor    = color.NRGBA{R: 255, G: 255, B: 255, A: 30}
	dragFillColor  = color.NRGBA{R: 80, G: 200, B: 120, A: 30}
	dragEdgeColor  = color.NRGBA{R: 80, G: 220, B: 120, A: 200}
	hullBarColor   = color.RGBA{R: 90, G: 220, B: 90, A: 255}
	armorBarColor  = color.RGBA{R: 90, G: 170, B: 255, A: 255}
	cargoBarColor  = color.RGBA{R: 240, G: 190, B: 60, A: 255}
	barBackColor   = color.NRGBA{R: 30, G: 30, B: 30, A: 200}
	recallingColor = color.RGBA{R: 170, G: 170, B: 190, A: 255}
)

// kindColors is the hull fill per kind.
var kindColors = [kindCount]color.RGBA{
	KindExpeditionShip:    {R: 200, G: 210, B: 230, A: 255},
	KindFrigate:           {R: 110, G: 150, B: 210, A: 255},
	KindInterceptor:       {R: 120, G: 220, B: 255, A: 255},
	KindBomber:            {R: 160, G: 130, B: 240, A: 255},
	KindResourceCollector: {R: 230, G: 190, B: 80, A: 255},
	KindPirateFrigate:     {R: 220, G: 70, B: 60, A: 255},
	KindSpaceStation:      {R: 120, G: 130, B: 140, A: 255},
}

var oreColors = map[OreType]color.RGBA{
	OreA: {R: 150, G: 120, B: 90, A: 255},
	OreB: {R: 110, G: 140, B: 150, A: 255},
	OreC: {R: 150, G: 150, B: 110, A: 255},
	OreM: {R: 190, G: 110, B: 200, A: 255},
}

// star is one background point, generated once per client.
type star struct {
	x, y  float32
	r     float32
	shade uint8
}

func newStarField(w, h int, seed int64) []star {
	rng := rand.New(rand.NewSource(seed + 54321)) // #nosec G404 -- cosmetic only
	stars := make([]star, 0, 260)
	for i := 0; i < cap(stars); i++ {
		stars = append(stars, star{
			x:     float32(rng.Intn(w)),
			y:     float32(rng.Intn(h)),
			r:     0.5 + rng.Float32()*1.1,
			shade: uint8(90 + rng.Intn(140)),
		})
	}
	return stars
}

func (g *Game) drawWorld(screen *ebiten.Image, f Frame) {
	ox, oy := float32(g.offX), float32(g.offY)
	gw, gh := float32(g.gameWidth), float32(g.gameHeight)

	vector.FillRect(screen, ox, oy, gw, gh, spaceColor, false)
	for _, s := range g.stars {
		vector.FillCircle(screen, ox+s.x, oy+s.y, s.r, color.RGBA{R: s.shade, G: s.shade, B: s.shade, A: 255}, false)
	}

	for _, a := range f.Asteroids {
		c := oreColors[a.Ore]
		x, y := ox+float32(a.Pos.X), oy+float32(a.Pos.Y)
		vector.FillCircle(screen, x, y, float32(a.Radius), c, true)
		edge := color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: 255}
		if a.Purity >= asteroidHighPurity {
			edge = color.RGBA{R: 255, G: 240, B: 180, A: 255}
		}
		vector.StrokeCircle(screen, x, y, float32(a.Radius), 1.5, edge, true)
	}

	for _, u := range f.Units {
		g.drawUnit(screen, u)
	}

	for _, p := range f.Projectiles {
		vector.FillCircle(screen, ox+float32(p.Pos.X), oy+float32(p.Pos.Y), float32(p.Radius), p.Color, true)
	}
	for _, p := range f.Particles {
		c := color.NRGBA{R: p.Color.R, G: p.Color.G, B: p.Color.B, A: uint8(255 * clamp01(p.Alpha))}
		vector.FillCircle(screen, ox+float32(p.Pos.X), oy+float32(p.Pos.Y), float32(p.Radius), c, false)
	}

	if f.Dragging {
		r := f.Drag
		x, y := ox+float32(r.X), oy+float32(r.Y)
		vector.FillRect(screen, x, y, float32(r.W), float32(r.H), dragFillColor, false)
		vector.StrokeRect(screen, x, y, float32(r.W), float32(r.H), 1, dragEdgeColor, false)
	}

	vector.StrokeRect(screen, ox-1, oy-1, gw+2, gh+2, 2.0, borderColor, false)
}

// drawUnit fills the silhouette, then overlays selection, range and bars.
func (g *Game) drawUnit(screen *ebiten.Image, u UnitView) {
	ox, oy := float32(g.offX), float32(g.offY)
	if len(u.Outline) < 3 {
		return
	}
	fill := kindColors[u.Kind]
	if u.Recalling {
		fill = recallingColor
	}

	var path vector.Path
	path.MoveTo(ox+float32(u.Outline[0].X), oy+float32(u.Outline[0].Y))
	for _, v := range u.Outline[1:] {
		path.LineTo(ox+float32(v.X), oy+float32(v.Y))
	}
	path.Close()
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(fill)
	vector.FillPath(screen, &path, &vector.FillOptions{}, op)

	x, y := ox+float32(u.Pos.X), oy+float32(u.Pos.Y)
	if u.Selected {
		n := len(u.Outline)
		for i := range u.Outline {
			a, b := u.Outline[i], u.Outline[(i+1)%n]
			vector.StrokeLine(screen, ox+float32(a.X), oy+float32(a.Y), ox+float32(b.X), oy+float32(b.Y), 1.5, selectColor, true)
		}
		if g.showRanges && u.FireRange > 0 {
			vector.StrokeCircle(screen, x, y, float32(u.FireRange), 1, rangeColor, true)
		}
		if u.Moving {
			vector.StrokeLine(screen, x, y, ox+float32(u.Target.X), oy+float32(u.Target.Y), 1, targetColor, false)
		}
	}
	if u.Station {
		return
	}

	// Status bars above the hull.
	w := float32(u.Size.X)
	if w < 24 {
		w = 24
	}
	top := y - float32(u.Size.X/2+u.Size.Y/2)/2 - 10
	left := x - w/2
	g.drawBar(screen, left, top, w, u.Health, hullBarColor)
	if u.HasArmor {
		top -= 4
		g.drawBar(screen, left, top, w, u.Armor, armorBarColor)
	}
	if u.Mining > 0 {
		g.drawBar(screen, left, y+float32(u.Size.Y)/2+6, w, u.Mining, cargoBarColor)
	}
}

func (g *Game) drawBar(screen *ebiten.Image, x, y, w float32, frac float64, c color.RGBA) {
	vector.FillRect(screen, x, y, w, 3, barBackColor, false)
	vector.FillRect(screen, x, y, w*float32(clamp01(frac)), 3, c, false)
}
