package game

import (
	"fmt"
	"math"
)

// DefaultDt is the fixed step the harness and the windowed client use.
const DefaultDt = 1.0 / 60.0

// TestSim is a headless session harness. It mirrors Game.Update with no
// Ebiten dependency, deterministic seeding and recording collaborators.
type TestSim struct {
	*Session
	Dt       float64
	Sounds   *RecordingNotifier
	Saves    *RecordingSaveSink
	Reporter *FleetReporter

	cfg          SessionConfig
	locations    StaticLocations
	clearEnemies bool
	keepFrigate  bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // tuning, seed, services, location; before the session exists
	simOptUnit                       // add units and asteroids; after the session is built
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.Tuning.Seed = seed
	}}
}

// WithTuning edits the tuning before the session is built.
func WithTuning(edit func(*Tuning)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		edit(&ts.cfg.Tuning)
	}}
}

// WithoutWaves disables timed pirate waves.
func WithoutWaves() SimOption {
	return WithTuning(func(t *Tuning) { t.EnemySpawnInterval = 0 })
}

// WithLocation starts the session at loc.
func WithLocation(loc Location) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		if loc.System == "" {
			loc.System = "Test"
		}
		if loc.Area == "" {
			loc.Area = string(loc.Type)
		}
		ts.locations[loc.LocationRef] = loc
		ts.cfg.Start = loc.LocationRef
	}}
}

// WithLocations registers extra jump destinations.
func WithLocations(locs ...Location) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		for _, l := range locs {
			ts.locations[l.LocationRef] = l
		}
	}}
}

// WithFabricator installs a fabricator.
func WithFabricator(f Fabricator) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.Fabricator = f
	}}
}

// WithoutEnemies removes the location's starting pirates.
func WithoutEnemies() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.clearEnemies = true
	}}
}

// WithoutFrigate removes the starting escort frigate.
func WithoutFrigate() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.keepFrigate = false
	}}
}

// WithMothershipAt moves the expedition ship.
func WithMothershipAt(x, y float64) SimOption {
	return SimOption{simOptUnit, func(ts *TestSim) {
		ms := ts.Mothership()
		ms.Mover.Pos = Vec2{x, y}
		ms.Mover.Target = ms.Mover.Pos
	}}
}

// WithPlayerUnit adds a free (non-hangar) player unit.
func WithPlayerUnit(kind UnitKind, x, y float64) SimOption {
	return SimOption{simOptUnit, func(ts *TestSim) {
		ts.Players = append(ts.Players, ts.spawnUnit(kind, Vec2{x, y}))
	}}
}

// WithEnemy adds a pirate frigate.
func WithEnemy(x, y float64) SimOption {
	return SimOption{simOptUnit, func(ts *TestSim) {
		ts.Enemies = append(ts.Enemies, ts.spawnUnit(KindPirateFrigate, Vec2{x, y}))
	}}
}

// WithAsteroid adds an asteroid of the given ore and purity.
func WithAsteroid(ore OreType, purity, x, y float64) SimOption {
	return SimOption{simOptUnit, func(ts *TestSim) {
		ts.Asteroids = append(ts.Asteroids, NewAsteroid(ts.newAsteroidID(), Vec2{x, y}, 24, ore, purity, 0))
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (tuning, seed, services, location)
//  2. Build the session
//  3. Units and asteroids
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Dt:          DefaultDt,
		Sounds:      &RecordingNotifier{},
		Saves:       &RecordingSaveSink{},
		Reporter:    NewFleetReporter(0),
		locations:   StaticLocations{},
		keepFrigate: true,
	}
	ts.cfg.Tuning = DefaultTuning()
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.cfg.Audio = ts.Sounds
	ts.cfg.Saves = ts.Saves
	ts.cfg.World = ts.locations
	ts.Session = NewSession(ts.cfg)

	if ts.clearEnemies {
		ts.Enemies = nil
	}
	if !ts.keepFrigate {
		for _, u := range ts.Players {
			if u.Kind == KindFrigate {
				ts.removePlayer(u)
				break
			}
		}
	}
	for _, o := range opts {
		if o.kind == simOptUnit {
			o.fn(ts)
		}
	}
	return ts
}

// Step advances one fixed step and samples the fleet once per second.
func (ts *TestSim) Step() error {
	if err := ts.Tick(ts.Dt); err != nil {
		return err
	}
	if ts.TickCount()%reportEveryTicks == 0 {
		ts.Reporter.Collect(ts.Session)
	}
	return nil
}

// RunTicks advances n fixed steps, stopping at the first error.
func (ts *TestSim) RunTicks(n int) error {
	for i := 0; i < n; i++ {
		if err := ts.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RunFor advances by the number of whole steps closest to seconds.
func (ts *TestSim) RunFor(seconds float64) error {
	return ts.RunTicks(ts.TicksFor(seconds))
}

// TicksFor converts seconds to a whole number of steps.
func (ts *TestSim) TicksFor(seconds float64) int {
	return int(math.Round(seconds / ts.Dt))
}

// RunUntil advances up to maxTicks, stopping early if predicate returns
// true. Returns the tick at which the predicate held, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) (int, error) {
	for i := 0; i < maxTicks; i++ {
		if err := ts.Step(); err != nil {
			return -1, err
		}
		if predicate(ts) {
			return ts.TickCount(), nil
		}
	}
	return -1, nil
}

// PlayersOf returns player units of one kind in fleet order.
func (ts *TestSim) PlayersOf(kind UnitKind) []*Unit {
	var out []*Unit
	for _, u := range ts.Players {
		if u.Kind == kind {
			out = append(out, u)
		}
	}
	return out
}

// Summary is a one-paragraph state dump for t.Log output.
func (ts *TestSim) Summary() string {
	st := ts.Stats()
	ms := ts.Mothership()
	hull := "gone"
	if ms != nil {
		hull = fmt.Sprintf("%.0f/%.0f hull %.0f/%.0f armour", ms.Health, ms.MaxHealth, ms.Armor, ms.MaxArmor)
	}
	return fmt.Sprintf("--- T=%04d (%.1fs) %s ---\nmothership: %s\nplayers=%d enemies=%d projectiles=%d\nkills=%d craft_lost=%d ore=%d waves=%d\n",
		ts.TickCount(), ts.Elapsed(), ts.Outcome(), hull,
		len(ts.Players), len(ts.Enemies), len(ts.Combat().Projectiles),
		st.EnemiesDestroyed, st.CraftLost, st.OreDelivered, st.WavesSpawned)
}

// RecordingNotifier remembers every event it was asked to voice.
type RecordingNotifier struct {
	Events []SoundEvent
}

func (r *RecordingNotifier) Notify(ev SoundEvent) { r.Events = append(r.Events, ev) }

// Count returns how often ev was notified.
func (r *RecordingNotifier) Count(ev SoundEvent) int {
	n := 0
	for _, e := range r.Events {
		if e == ev {
			n++
		}
	}
	return n
}

// SavedShip is one save captured by RecordingSaveSink.
type SavedShip struct {
	Label  string
	At     LocationRef
	Health float64
	Ore    map[OreType]int
}

// RecordingSaveSink captures saves in memory. Err, if set, fails every save.
type RecordingSaveSink struct {
	Saved []SavedShip
	Err   error
}

func (r *RecordingSaveSink) Save(ship *Unit, at LocationRef) error {
	if r.Err != nil {
		return r.Err
	}
	s := SavedShip{Label: ship.Label, At: at, Health: ship.Health}
	if ship.Inventory != nil {
		s.Ore = ship.Inventory.Snapshot()
	}
	r.Saved = append(r.Saved, s)
	return nil
}
