package game

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"
)

// Outcome is the terminal state of a session.
type Outcome int

const (
	OutcomeRunning Outcome = iota
	OutcomeDefeat
)

func (o Outcome) String() string {
	if o == OutcomeDefeat {
		return "defeat"
	}
	return "running"
}

var (
	mothershipSpawn = Vec2{400, 300}
	frigateSpawn    = Vec2{500, 400}
	pirateSpawn     = Vec2{700, 120}
)

// SessionConfig wires a session to its collaborators. Every service is
// optional; a nil service is replaced by a no-op.
type SessionConfig struct {
	Tuning     Tuning
	Log        *zerolog.Logger
	Audio      Notifier
	Saves      SaveSink
	World      LocationProvider
	Fabricator Fabricator
	Start      LocationRef
	EventLimit int
}

// SessionStats are running totals for reports and the HUD.
type SessionStats struct {
	EnemiesDestroyed int
	CraftLost        int
	FrigatesLost     int
	OreDelivered     int
	Deliveries       int
	WavesSpawned     int
	CraftDocked      int
	Jumps            int
	Saves            int
	SaveFailures     int
	Fabricated       int
}

// Session is the authoritative simulation of one expedition. It owns every
// entity collection; only Tick and the command methods change membership.
// It is not safe for concurrent use.
type Session struct {
	cfg   Tuning
	log   zerolog.Logger
	audio Notifier
	saves SaveSink
	world LocationProvider
	fab   Fabricator

	Players   []*Unit
	Enemies   []*Unit
	Stations  []*Unit
	Asteroids []*Asteroid
	Events    *EventLog

	combat *CombatManager
	fx     *Effects
	rng    *rand.Rand

	mothership UnitID
	location   Location
	drag       dragState

	tick       int
	elapsed    float64
	spawnTimer float64
	saveQueue  []UnitID
	outcome    Outcome
	stats      SessionStats

	nextUnitID     UnitID
	nextAsteroidID AsteroidID
}

// NewSession builds the starting fleet (mothership plus one frigate) and
// enters cfg.Start if a world provider knows it.
func NewSession(cfg SessionConfig) *Session {
	t := cfg.Tuning.withDefaults()
	s := &Session{
		cfg:    t,
		log:    zerolog.Nop(),
		audio:  cfg.Audio,
		saves:  cfg.Saves,
		world:  cfg.World,
		fab:    cfg.Fabricator,
		Events: NewEventLog(cfg.EventLimit),
		rng:    rand.New(rand.NewSource(t.Seed)), // #nosec G404 -- gameplay randomness
	}
	if cfg.Log != nil {
		s.log = *cfg.Log
	}
	if s.audio == nil {
		s.audio = nopNotifier{}
	}
	s.fx = NewEffects(s.rng)
	s.combat = NewCombatManager(s.fx)

	ms := s.spawnUnit(KindExpeditionShip, mothershipSpawn)
	s.mothership = ms.ID
	s.Players = append(s.Players, ms, s.spawnUnit(KindFrigate, frigateSpawn))

	s.location = Location{LocationRef: cfg.Start}
	if s.world != nil {
		if loc, ok := s.world.Lookup(cfg.Start.System, cfg.Start.Area); ok {
			s.enter(loc)
		} else {
			s.log.Warn().Str("location", cfg.Start.String()).Msg("start location unknown, spawning empty space")
		}
	}
	s.log.Info().
		Int64("seed", t.Seed).
		Str("location", s.location.String()).
		Str("type", string(s.location.Type)).
		Msg("session started")
	return s
}

func (s *Session) spawnUnit(kind UnitKind, pos Vec2) *Unit {
	s.nextUnitID++
	return NewUnit(s.nextUnitID, kind, pos)
}

func (s *Session) newAsteroidID() AsteroidID {
	s.nextAsteroidID++
	return s.nextAsteroidID
}

// enter spawns the contents of loc. Callers clear the previous location.
func (s *Session) enter(loc Location) {
	s.location = loc
	s.Asteroids = spawnAsteroids(loc, s.rng, s.cfg.WorldWidth, s.cfg.WorldHeight, s.newAsteroidID)
	s.Stations = nil
	switch loc.Type {
	case LocationStation:
		centre := Vec2{s.cfg.WorldWidth / 2, s.cfg.WorldHeight / 2}
		s.Stations = append(s.Stations, s.spawnUnit(KindSpaceStation, centre.Add(loc.Offset)))
	case LocationAsteroids:
		s.Enemies = append(s.Enemies, s.spawnUnit(KindPirateFrigate, pirateSpawn))
	}
	s.spawnTimer = s.cfg.EnemySpawnInterval
	s.Events.Add(s.tick, CatLocation, "entered", loc.String(), float64(len(s.Asteroids)))
}

// --- Accessors ---

func (s *Session) Mothership() *Unit { return s.playerByID(s.mothership) }
func (s *Session) TickCount() int { return s.tick }
func (s *Session) Elapsed() float64 { return s.elapsed }
func (s *Session) Outcome() Outcome { return s.outcome }
func (s *Session) Location() Location { return s.location }
func (s *Session) Stats() SessionStats { return s.stats }
func (s *Session) Tuning() Tuning { return s.cfg }
func (s *Session) Combat() *CombatManager { return s.combat }

// UnitByID finds a live-collection unit on either side, or nil.
func (s *Session) UnitByID(id UnitID) *Unit {
	if u := s.playerByID(id); u != nil {
		return u
	}
	for _, u := range s.Enemies {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *Session) playerByID(id UnitID) *Unit {
	if id == 0 {
		return nil
	}
	for _, u := range s.Players {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *Session) asteroidByID(id AsteroidID) *Asteroid {
	if id == 0 {
		return nil
	}
	for _, a := range s.Asteroids {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// notify voices ev. The notifier is cosmetic, so a panic inside it is
// logged and swallowed.
func (s *Session) notify(ev SoundEvent) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn().Interface("panic", r).Str("sound", ev.String()).Msg("audio notifier failed")
		}
	}()
	s.audio.Notify(ev)
}

// --- Tick ---

// Tick advances the simulation by dt seconds (capped at MaxDt). The phase
// order is fixed. A returned error is a fatal configuration problem and the
// session must not be ticked again. After defeat Tick is a no-op.
func (s *Session) Tick(dt float64) error {
	if s.outcome != OutcomeRunning || dt <= 0 {
		return nil
	}
	if dt > s.cfg.MaxDt {
		dt = s.cfg.MaxDt
	}
	ms := s.Mothership()
	if ms == nil {
		return ErrNoMothership
	}
	s.tick++
	s.elapsed += dt

	// 1. Station repairs.
	s.stationHeal(dt)

	// 2. Save requests.
	s.drainSaves()

	// 3. Weapon cooldowns.
	for _, u := range s.Players {
		u.UpdateCooldown(dt)
	}
	for _, u := range s.Enemies {
		u.UpdateCooldown(dt)
	}

	// 4. Fabrication.
	if s.fab != nil {
		s.fab.Advance(dt, shipyard{s})
	}

	// 5. Mining and repairs.
	if err := s.updateCollectors(dt, ms); err != nil {
		return err
	}

	// 6. Player movement; recalling craft home on the mothership.
	for _, u := range s.Players {
		if u.Recalling {
			u.SetTarget(ms.Position())
		}
		u.Mover.Update(dt)
	}

	// 7. Docking.
	if err := s.dockRecalled(ms); err != nil {
		return err
	}

	// 8. Enemy AI.
	s.updateEnemies(dt)

	// 9. Waves.
	s.updateWaves(dt)

	// 10. Auto-fire.
	s.combat.AutoFire(s.Players, s.Enemies, 1)
	s.combat.AutoFire(s.Enemies, s.Players, s.cfg.EnemyProjectileSpeedFactor)

	// 11. Projectiles and effects.
	s.combat.Update(dt)
	s.fx.Update(dt)

	// 12. Projectile impacts.
	for _, h := range s.combat.ResolveHits(s.Players, s.Enemies) {
		if h.Fatal {
			s.Events.AddUnit(s.tick, h.Target, CatCombat, "killed", "projectile", h.Amount)
		}
	}

	// 13. Dead units leave the fleets.
	if err := s.pruneDead(ms); err != nil {
		return err
	}
	if s.outcome != OutcomeRunning {
		return nil
	}

	// 14. Residual contact: separation and collision damage.
	ResolveSeparation(s.Players, s.Enemies, s.cfg.SeparationIterations)
	s.separateFromStations()
	if s.cfg.CollisionDPS > 0 {
		ApplyCollisionDamage(s.Players, s.Enemies, s.cfg.CollisionDPS, dt)
	}
	return nil
}

func (s *Session) stationHeal(dt float64) {
	if s.location.Type != LocationStation || s.cfg.StationHealingRate <= 0 {
		return
	}
	amount := s.cfg.StationHealingRate * dt
	for _, u := range s.Players {
		if u.Health < u.MaxHealth {
			u.Heal(amount)
		}
		if u.Armor < u.MaxArmor {
			u.SetArmor(u.Armor + amount)
		}
	}
}

func (s *Session) drainSaves() {
	if len(s.saveQueue) == 0 {
		return
	}
	for _, id := range s.saveQueue {
		ship := s.playerByID(id)
		if ship == nil {
			continue
		}
		if s.saves == nil {
			s.log.Debug().Str("unit", ship.Label).Msg("save requested but no save sink configured")
			continue
		}
		if err := s.saves.Save(ship, s.location.LocationRef); err != nil {
			s.stats.SaveFailures++
			s.log.Error().Err(err).Str("unit", ship.Label).Msg("save failed")
			s.Events.AddUnit(s.tick, ship, CatSave, "failed", err.Error(), 0)
			continue
		}
		s.stats.Saves++
		s.log.Info().Str("unit", ship.Label).Str("location", s.location.String()).Msg("game saved")
		s.Events.AddUnit(s.tick, ship, CatSave, "written", s.location.String(), 0)
	}
	s.saveQueue = s.saveQueue[:0]
}

func (s *Session) updateCollectors(dt float64, ms *Unit) error {
	for _, u := range s.Players {
		c := u.Collector
		if c == nil || u.Recalling {
			continue
		}
		if c.HealTarget != 0 {
			if amt := u.UpdateHealing(dt, s.playerByID(c.HealTarget)); amt > 0 {
				s.Events.AddUnit(s.tick, u, CatMining, "repaired", "", amt)
			}
		}
		wasReturning := c.Returning
		d, err := u.UpdateMining(dt, s.asteroidByID(c.MineTarget), ms)
		if err != nil {
			return fmt.Errorf("tick %d: %w", s.tick, err)
		}
		if !wasReturning && c.Returning {
			s.notify(SoundCollectorFull)
			s.Events.AddUnit(s.tick, u, CatMining, "full", string(c.CargoOre), c.Fill)
		}
		if d != nil {
			s.stats.OreDelivered += d.Amount
			s.stats.Deliveries++
			s.notify(SoundResourceTransfer)
			s.Events.AddUnit(s.tick, u, CatMining, "delivered", fmt.Sprintf("%d %s", d.Amount, d.Ore), float64(d.Amount))
			s.log.Info().Str("unit", u.Label).Str("ore", string(d.Ore)).Int("amount", d.Amount).Msg("ore delivered")
		}
	}
	return nil
}

func (s *Session) dockRecalled(ms *Unit) error {
	var docked []*Unit
	for _, u := range s.Players {
		// A craft killed by last tick's contact damage is a loss, not a dock.
		if !u.Alive() {
			continue
		}
		if u.Recalling && u.Position().DistTo(ms.Position()) < s.cfg.DockRadius {
			docked = append(docked, u)
		}
	}
	if len(docked) == 0 {
		return nil
	}
	if ms.Hangar == nil {
		return fmt.Errorf("dock %s: %w", docked[0].Label, ErrHangarMissing)
	}
	for _, u := range docked {
		s.removePlayer(u)
		ms.Hangar.OnRecalled(u.HangarSlot)
		s.stats.CraftDocked++
		s.notify(SoundShipDocking)
		s.Events.AddUnit(s.tick, u, CatHangar, "docked", fmt.Sprintf("slot %d", u.HangarSlot), float64(u.HangarSlot))
		s.log.Debug().Str("unit", u.Label).Int("slot", u.HangarSlot).Msg("craft docked")
	}
	return nil
}

func (s *Session) removePlayer(target *Unit) {
	for i, u := range s.Players {
		if u == target {
			copy(s.Players[i:], s.Players[i+1:])
			s.Players[len(s.Players)-1] = nil
			s.Players = s.Players[:len(s.Players)-1]
			return
		}
	}
}

// pruneDead removes units with health <= 0. Hangared craft report their
// loss to the mothership's hangar first; the mothership itself stays in
// the fleet and ends the session.
func (s *Session) pruneDead(ms *Unit) error {
	for _, u := range s.Players {
		if !u.Alive() && u != ms && u.HangarSlot >= 0 && ms.Hangar == nil {
			return fmt.Errorf("%s destroyed: %w", u.Label, ErrHangarMissing)
		}
	}

	keep := s.Players[:0]
	for _, u := range s.Players {
		if u.Alive() || u == ms {
			keep = append(keep, u)
			continue
		}
		if u.HangarSlot >= 0 {
			ms.Hangar.OnDestroyed(u.HangarSlot)
		}
		if u.Kind.IsLightCraft() {
			s.stats.CraftLost++
		} else {
			s.stats.FrigatesLost++
		}
		if ev, ok := destroyedSound(u.Kind); ok {
			s.notify(ev)
		}
		s.fx.Spawn(u.Position(), playerShotColor, deathBurst)
		s.Events.AddUnit(s.tick, u, CatCombat, "destroyed", u.Kind.String(), 0)
		s.log.Debug().Str("unit", u.Label).Str("kind", u.Kind.String()).Msg("player unit destroyed")
	}
	s.Players = truncate(s.Players, keep)

	alive := s.Enemies[:0]
	for _, e := range s.Enemies {
		if e.Alive() {
			alive = append(alive, e)
			continue
		}
		s.stats.EnemiesDestroyed++
		if ev, ok := destroyedSound(e.Kind); ok {
			s.notify(ev)
		}
		s.fx.Spawn(e.Position(), enemyShotColor, deathBurst)
		s.Events.AddUnit(s.tick, e, CatCombat, "destroyed", e.Kind.String(), 0)
		s.log.Debug().Str("unit", e.Label).Msg("enemy destroyed")
	}
	s.Enemies = truncate(s.Enemies, alive)

	if !ms.Alive() {
		s.outcome = OutcomeDefeat
		s.Events.AddUnit(s.tick, ms, CatOutcome, "defeat", "expedition ship lost", s.elapsed)
		s.log.Warn().Float64("elapsed", s.elapsed).Msg("expedition ship destroyed, session over")
	}
	return nil
}

// separateFromStations pushes every ship out of station hulls. Stations
// never move.
func (s *Session) separateFromStations() {
	for _, st := range s.Stations {
		for _, u := range s.Players {
			if !u.Recalling {
				SeparateRotated(st, u)
			}
		}
		for _, e := range s.Enemies {
			SeparateRotated(st, e)
		}
	}
}

// --- Jumps ---

// Jump moves the fleet to another area. All deployed craft are docked at
// once, enemies, rounds and effects are cleared, and the new location is
// spawned. Returns false when the location is unknown or no provider is
// configured.
func (s *Session) Jump(system, area string) (bool, error) {
	if s.outcome != OutcomeRunning || s.world == nil {
		return false, nil
	}
	loc, ok := s.world.Lookup(system, area)
	if !ok {
		return false, nil
	}
	ms := s.Mothership()
	if ms == nil {
		return false, ErrNoMothership
	}
	if err := s.pruneDead(ms); err != nil {
		return false, err
	}
	if s.outcome != OutcomeRunning {
		return false, nil
	}
	s.notify(SoundHyperspaceLaunch)
	s.Events.Add(s.tick, CatLocation, "jump", s.location.String()+" -> "+loc.String(), 0)

	var craft []*Unit
	for _, u := range s.Players {
		if u.HangarSlot >= 0 {
			craft = append(craft, u)
		}
	}
	if len(craft) > 0 && ms.Hangar == nil {
		return false, fmt.Errorf("jump: %w", ErrHangarMissing)
	}
	for _, u := range craft {
		s.removePlayer(u)
		ms.Hangar.OnRecalled(u.HangarSlot)
	}
	for _, u := range s.Players {
		u.StopAndDump()
		u.CancelHealing()
		u.Mover.Stop()
	}

	s.combat.Clear()
	s.fx.Clear()
	s.Enemies = nil
	s.enter(loc)
	s.stats.Jumps++
	s.notify(SoundHyperspaceComplete)
	s.log.Info().Str("location", loc.String()).Str("type", string(loc.Type)).Msg("jump complete")
	return true, nil
}

// shipyard exposes the session to the fabricator.
type shipyard struct{ s *Session }

func (y shipyard) Ore() *Inventory {
	if ms := y.s.Mothership(); ms != nil {
		return ms.Inventory
	}
	return nil
}

// Complete delivers a finished hull: light craft get a new docked hangar
// slot, frigates launch next to the mothership.
func (y shipyard) Complete(kind UnitKind) bool {
	s := y.s
	ms := s.Mothership()
	if ms == nil {
		return false
	}
	switch {
	case kind.IsLightCraft():
		if ms.Hangar == nil || ms.Hangar.AddSlot(kind) < 0 {
			return false
		}
	case kind == KindFrigate:
		pos := ms.Position().Add(Vec2{0, ms.Size.Y + 30})
		s.Players = append(s.Players, s.spawnUnit(KindFrigate, pos))
	default:
		return false
	}
	s.stats.Fabricated++
	s.notify(SoundFabricationComplete)
	s.Events.Add(s.tick, CatFabrication, "complete", kind.String(), 0)
	s.log.Info().Str("kind", kind.String()).Msg("fabrication complete")
	return true
}
