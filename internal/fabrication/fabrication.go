// Package fabrication builds hulls from blueprints, one job at a time.
package fabrication

import (
	"github.com/Garsondee/expedition/internal/game"
	"github.com/rs/zerolog"
)

// Blueprint is the cost and build time of one hull.
type Blueprint struct {
	Kind     game.UnitKind
	Ore      game.OreType
	Cost     int
	Duration float64 // seconds
}

// DefaultBlueprints are the stock recipes, all paid in M ore.
func DefaultBlueprints() []Blueprint {
	return []Blueprint{
		{Kind: game.KindResourceCollector, Ore: game.OreM, Cost: 75, Duration: 6},
		{Kind: game.KindInterceptor, Ore: game.OreM, Cost: 250, Duration: 8},
		{Kind: game.KindBomber, Ore: game.OreM, Cost: 625, Duration: 12},
		{Kind: game.KindFrigate, Ore: game.OreM, Cost: 1125, Duration: 20},
	}
}

type job struct {
	bp      Blueprint
	elapsed float64
}

// Manager is a FIFO build queue. Ore is debited when a job is queued and
// refunded if the shipyard cannot take the finished hull.
type Manager struct {
	log        zerolog.Logger
	blueprints map[game.UnitKind]Blueprint
	queue      []job
	built      int
}

// NewManager returns a manager for the given blueprints, or the defaults
// when none are passed.
func NewManager(log zerolog.Logger, blueprints ...Blueprint) *Manager {
	if len(blueprints) == 0 {
		blueprints = DefaultBlueprints()
	}
	m := &Manager{log: log, blueprints: make(map[game.UnitKind]Blueprint, len(blueprints))}
	for _, bp := range blueprints {
		m.blueprints[bp.Kind] = bp
	}
	return m
}

// Blueprint returns the recipe for kind.
func (m *Manager) Blueprint(kind game.UnitKind) (Blueprint, bool) {
	bp, ok := m.blueprints[kind]
	return bp, ok
}

// Enqueue pays for and queues a hull. It fails when there is no recipe or
// not enough ore.
func (m *Manager) Enqueue(kind game.UnitKind, ore *game.Inventory) bool {
	bp, ok := m.blueprints[kind]
	if !ok || ore == nil {
		return false
	}
	if !ore.Take(bp.Ore, bp.Cost) {
		return false
	}
	m.queue = append(m.queue, job{bp: bp})
	m.log.Debug().Str("kind", kind.String()).Int("cost", bp.Cost).Int("queued", len(m.queue)).Msg("fabrication queued")
	return true
}

// Advance progresses the head job by dt and hands it to yard when done.
// Leftover time does not carry into the next job.
func (m *Manager) Advance(dt float64, yard game.Shipyard) {
	if len(m.queue) == 0 || dt <= 0 {
		return
	}
	head := &m.queue[0]
	head.elapsed += dt
	if head.elapsed < head.bp.Duration {
		return
	}
	bp := head.bp
	m.queue = m.queue[1:]
	if yard.Complete(bp.Kind) {
		m.built++
		return
	}
	if inv := yard.Ore(); inv != nil {
		inv.Add(bp.Ore, bp.Cost)
	}
	m.log.Warn().Str("kind", bp.Kind.String()).Msg("shipyard rejected finished hull, ore refunded")
}

// Status reports the head job.
func (m *Manager) Status() game.FabricationStatus {
	if len(m.queue) == 0 {
		return game.FabricationStatus{}
	}
	head := m.queue[0]
	p := 1.0
	if head.bp.Duration > 0 {
		p = head.elapsed / head.bp.Duration
		if p > 1 {
			p = 1
		}
	}
	return game.FabricationStatus{
		Active:   true,
		Kind:     head.bp.Kind,
		Progress: p,
		Queued:   len(m.queue) - 1,
	}
}

// Built is the number of hulls delivered.
func (m *Manager) Built() int { return m.built }
