package game

import (
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
)

// borderWidth is the pixel gap between the window edge and the playfield.
const borderWidth = 16

// hudPanelWidth is the width of the status panel right of the playfield.
const hudPanelWidth = 300

// flashSeconds is how long a status message stays on screen.
const flashSeconds = 2.5

var simSpeeds = []float64{0, 0.5, 1, 2, 4}

// fabricationKeys queue hulls on the fabricator.
var fabricationKeys = map[ebiten.Key]UnitKind{
	ebiten.KeyQ: KindResourceCollector,
	ebiten.KeyW: KindInterceptor,
	ebiten.KeyE: KindBomber,
	ebiten.KeyR: KindFrigate,
}

var slotKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

var jumpKeys = []ebiten.Key{
	ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4,
	ebiten.KeyF6, ebiten.KeyF7, ebiten.KeyF8, ebiten.KeyF9,
}

// ClientConfig wires the windowed client.
type ClientConfig struct {
	Log *zerolog.Logger
	// Destinations are the jump targets bound to F1-F4 and F6-F9.
	Destinations []LocationRef
	// CopyText exports the debug report. Defaults to the system clipboard.
	CopyText func(string) error
}

// Game adapts a Session to ebiten: input becomes commands, Frame becomes
// pixels. All simulation state lives in the session.
type Game struct {
	sess *Session
	log  zerolog.Logger
	cfg  ClientConfig

	width      int // window width
	height     int // window height
	gameWidth  int // playfield width
	gameHeight int // playfield height
	offX       int // pixel offset from window left to playfield left
	offY       int // pixel offset from window top to playfield top

	frame Frame
	stars []star

	// Simulation speed control.
	simSpeed  float64 // multiplier: 0=paused, 0.5, 1, 2, 4
	tickAccum float64 // fractional tick accumulator for sub-1x speeds

	showRanges bool
	showHUD    bool
	inspector  Inspector

	flash      string
	flashTimer float64
}

// New builds the client around an existing session.
func New(sess *Session, cfg ClientConfig) *Game {
	t := sess.Tuning()
	g := &Game{
		sess:       sess,
		log:        zerolog.Nop(),
		cfg:        cfg,
		gameWidth:  int(t.WorldWidth),
		gameHeight: int(t.WorldHeight),
		offX:       borderWidth,
		offY:       borderWidth,
		simSpeed:   1,
		showHUD:    true,
		showRanges: true,
	}
	if cfg.Log != nil {
		g.log = *cfg.Log
	}
	if g.cfg.CopyText == nil {
		g.cfg.CopyText = clipboard.WriteAll
	}
	g.width = borderWidth + g.gameWidth + borderWidth + hudPanelWidth
	g.height = borderWidth + g.gameHeight + borderWidth
	g.stars = newStarField(g.gameWidth, g.gameHeight, t.Seed)
	g.frame = sess.Frame()
	return g
}

// Size returns the window size the client lays out to.
func (g *Game) Size() (int, int) { return g.width, g.height }

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if err := g.handleInput(); err != nil {
		return err
	}

	if g.flashTimer > 0 {
		g.flashTimer -= DefaultDt
	}

	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		if err := g.sess.Tick(DefaultDt); err != nil {
			g.log.Error().Err(err).Int("tick", g.sess.TickCount()).Msg("simulation halted")
			return err
		}
	}
	g.frame = g.sess.Frame()
	return nil
}

// toWorld converts a window pixel to playfield coordinates.
func (g *Game) toWorld(x, y int) Vec2 {
	return Vec2{float64(x - g.offX), float64(y - g.offY)}
}

func (g *Game) inPlayfield(x, y int) bool {
	return x >= g.offX && x < g.offX+g.gameWidth && y >= g.offY && y < g.offY+g.gameHeight
}

func (g *Game) say(msg string) {
	g.flash = msg
	g.flashTimer = flashSeconds
}

// handleInput turns this frame's keyboard and mouse edges into session
// commands. Only the jump command can fail fatally.
func (g *Game) handleInput() error {
	s := g.sess

	// Mouse: left press issues a mine/repair order or starts a drag,
	// release finishes the drag, right click moves the selection.
	mx, my := ebiten.CursorPosition()
	p := g.toWorld(mx, my)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && g.inPlayfield(mx, my) {
		if !s.CommandMineOrHeal(p) {
			s.BeginDrag(p)
		}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		s.UpdateDrag(p)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		s.EndDrag(p)
		g.inspector.pick(s)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) && g.inPlayfield(mx, my) {
		s.GroupMove(p)
	}

	// Hangar slots 1-9; H recalls everything.
	for i, k := range slotKeys {
		if inpututil.IsKeyJustPressed(k) {
			s.ToggleSlot(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		if n := s.RecallAll(); n > 0 {
			g.say("recalling all craft")
		}
	}

	// Fabrication.
	for k, kind := range fabricationKeys {
		if !inpututil.IsKeyJustPressed(k) {
			continue
		}
		if s.Fabricate(kind) {
			g.say("queued " + kind.String())
		} else {
			g.say("cannot build " + kind.String())
		}
	}

	// Jumps.
	for i, k := range jumpKeys {
		if i >= len(g.cfg.Destinations) || !inpututil.IsKeyJustPressed(k) {
			continue
		}
		d := g.cfg.Destinations[i]
		ok, err := s.Jump(d.System, d.Area)
		if err != nil {
			return err
		}
		if ok {
			g.inspector.clear()
			g.say("jumped to " + d.String())
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		s.RequestSave()
		g.say("saving")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := g.cfg.CopyText(FleetReport(s, 40)); err != nil {
			g.log.Warn().Err(err).Msg("clipboard unavailable")
			g.say("clipboard unavailable")
		} else {
			g.say("debug report copied")
		}
	}

	// Sim speed controls: P=pause/resume, ,=slower, .=faster.
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyComma) {
		for i := len(simSpeeds) - 1; i > 0; i-- {
			if simSpeeds[i] <= g.simSpeed {
				g.simSpeed = simSpeeds[i-1]
				break
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		for _, sp := range simSpeeds {
			if sp > g.simSpeed {
				g.simSpeed = sp
				break
			}
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.showRanges = !g.showRanges
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showHUD = !g.showHUD
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(windowColor)
	g.drawWorld(screen, g.frame)
	g.drawPanel(screen, g.frame)
	g.drawInspector(screen)
	if g.frame.Outcome == OutcomeDefeat {
		g.drawDefeatBanner(screen)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
