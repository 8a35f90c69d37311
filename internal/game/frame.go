package game

import "image/color"

// UnitView is the drawable state of one unit.
type UnitView struct {
	ID        UnitID
	Label     string
	Kind      UnitKind
	Pos       Vec2
	Facing    float64
	Size      Vec2
	Outline   Polygon
	Target    Vec2
	Moving    bool
	Selected  bool
	Enemy     bool
	Recalling bool
	Station   bool
	Health    float64 // fraction
	Armor     float64 // fraction, 0 when the hull has no armour
	HasArmor  bool
	Mining    float64 // hold fraction for collectors
	Returning bool
	Healing   bool
	FireRange float64
}

// ProjectileView is the drawable state of one round.
type ProjectileView struct {
	Pos    Vec2
	Radius float64
	Color  color.RGBA
	Enemy  bool
}

// ParticleView is the drawable state of one effect particle.
type ParticleView struct {
	Pos    Vec2
	Radius float64
	Color  color.RGBA
	Alpha  float64
}

// AsteroidView is the drawable state of one asteroid.
type AsteroidView struct {
	ID     AsteroidID
	Pos    Vec2
	Radius float64
	Ore    OreType
	Purity float64
}

// SlotView is one hangar slot for the HUD.
type SlotView struct {
	Index  int
	Kind   UnitKind
	State  SlotState
	Losses int
	Health float64 // live craft health fraction, 0 when docked
}

// Frame is everything a renderer needs for one tick. It shares no memory
// with the session except the outline slices, which are freshly built.
type Frame struct {
	Tick        int
	Elapsed     float64
	World       Vec2
	Location    Location
	Outcome     Outcome
	Units       []UnitView
	Projectiles []ProjectileView
	Particles   []ParticleView
	Asteroids   []AsteroidView
	Slots       []SlotView
	Ore         map[OreType]int
	Drag        Rect
	Dragging    bool
	Fabrication FabricationStatus
	Stats       SessionStats
	WaveIn      float64 // seconds to next wave, 0 when waves are off here
}

func viewOf(u *Unit, station bool) UnitView {
	v := UnitView{
		ID:        u.ID,
		Label:     u.Label,
		Kind:      u.Kind,
		Pos:       u.Position(),
		Facing:    u.Facing(),
		Size:      u.Size,
		Outline:   u.Silhouette(),
		Target:    u.Mover.Target,
		Moving:    !u.Mover.AtTarget(),
		Selected:  u.Selected,
		Enemy:     u.Enemy,
		Recalling: u.Recalling,
		Station:   station,
		Health:    u.HealthFraction(),
		Armor:     u.ArmorFraction(),
		HasArmor:  u.MaxArmor > 0,
		FireRange: u.FireRange,
	}
	if c := u.Collector; c != nil {
		v.Mining = u.MiningFraction()
		v.Returning = c.Returning
		v.Healing = c.HealTarget != 0
	}
	return v
}

// Frame snapshots the session for rendering. Stations come first, then
// enemies, then the player fleet, which is the draw order.
func (s *Session) Frame() Frame {
	f := Frame{
		Tick:     s.tick,
		Elapsed:  s.elapsed,
		World:    Vec2{s.cfg.WorldWidth, s.cfg.WorldHeight},
		Location: s.location,
		Outcome:  s.outcome,
		Stats:    s.stats,
	}
	f.Drag, f.Dragging = s.DragRect()
	if s.location.WavesAllowed() && s.cfg.EnemySpawnInterval > 0 {
		f.WaveIn = s.spawnTimer
	}

	f.Units = make([]UnitView, 0, len(s.Stations)+len(s.Enemies)+len(s.Players))
	for _, u := range s.Stations {
		f.Units = append(f.Units, viewOf(u, true))
	}
	for _, u := range s.Enemies {
		f.Units = append(f.Units, viewOf(u, false))
	}
	for _, u := range s.Players {
		f.Units = append(f.Units, viewOf(u, false))
	}

	f.Projectiles = make([]ProjectileView, len(s.combat.Projectiles))
	for i, p := range s.combat.Projectiles {
		f.Projectiles[i] = ProjectileView{Pos: p.Pos, Radius: p.Radius, Color: p.Color, Enemy: p.Enemy}
	}
	f.Particles = make([]ParticleView, len(s.fx.Particles))
	for i, p := range s.fx.Particles {
		f.Particles[i] = ParticleView{Pos: p.Pos, Radius: p.Radius, Color: p.Color, Alpha: p.Alpha()}
	}
	f.Asteroids = make([]AsteroidView, len(s.Asteroids))
	for i, a := range s.Asteroids {
		f.Asteroids[i] = AsteroidView{ID: a.ID, Pos: a.Pos, Radius: a.Radius, Ore: a.Ore, Purity: a.Purity}
	}

	if ms := s.Mothership(); ms != nil {
		if ms.Inventory != nil {
			f.Ore = ms.Inventory.Snapshot()
		}
		if ms.Hangar != nil {
			for i, hs := range ms.Hangar.Slots() {
				sv := SlotView{Index: i, Kind: hs.Kind, State: hs.State, Losses: hs.Losses}
				if u := s.playerByID(hs.Unit); u != nil {
					sv.Health = u.HealthFraction()
				}
				f.Slots = append(f.Slots, sv)
			}
		}
	}
	if s.fab != nil {
		f.Fabrication = s.fab.Status()
	}
	return f
}
