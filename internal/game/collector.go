package game

import (
	"fmt"
	"math"
)

const (
	collectorCapacity     = 150.0
	collectorMineRate     = 10.0 // fill/s
	collectorMineRange    = 60.0 // px from asteroid surface
	collectorUnloadRate   = 75.0 // fill/s
	collectorUnloadRadius = 60.0 // px from mothership hull
	collectorHealRate     = 15.0 // hp/s
	collectorHealRange    = 60.0 // px from target hull

	fillEpsilon = 1e-6
)

// CollectorState is the mining and repair state of a resource collector.
// At most one of MineTarget and HealTarget is set.
type CollectorState struct {
	MineTarget AsteroidID
	HealTarget UnitID

	Fill      float64
	Capacity  float64
	Returning bool

	// Cargo is the ore type and purity of what is in the hold, fixed when
	// the hold starts filling so delivery does not depend on the asteroid
	// still existing.
	CargoOre    OreType
	CargoPurity float64
	loaded      float64
}

func NewCollectorState() *CollectorState {
	return &CollectorState{Capacity: collectorCapacity}
}

// Delivery is ore credited to the mothership by one completed unload.
type Delivery struct {
	Ore    OreType
	Amount int
}

// IsMining reports whether the collector has a mining job, including a hold
// still being carried home.
func (u *Unit) IsMining() bool {
	c := u.Collector
	return c != nil && (c.MineTarget != 0 || c.Fill > 0)
}

func (u *Unit) IsHealing() bool {
	return u.Collector != nil && u.Collector.HealTarget != 0
}

// StartMining cancels any repair job or trip home and heads for the
// asteroid. A hold of different ore or purity is dumped.
func (u *Unit) StartMining(a *Asteroid) bool {
	c := u.Collector
	if c == nil || a == nil || u.Recalling {
		return false
	}
	c.HealTarget = 0
	if c.Fill > 0 && (c.CargoOre != a.Ore || c.CargoPurity != a.Purity) {
		c.Fill = 0
		c.loaded = 0
	}
	c.MineTarget = a.ID
	c.Returning = false
	u.SetTarget(a.Pos)
	return true
}

// StartHealing drops any mining job, including its hold, and heads for the
// ally to repair.
func (u *Unit) StartHealing(target *Unit) bool {
	c := u.Collector
	if c == nil || target == nil || target == u || target.Enemy || !target.Alive() || target.Invulnerable || u.Recalling {
		return false
	}
	u.StopAndDump()
	c.HealTarget = target.ID
	u.SetTarget(target.Position())
	return true
}

// StopAndDump clears all mining state and discards the hold undelivered.
func (u *Unit) StopAndDump() {
	c := u.Collector
	if c == nil {
		return
	}
	c.MineTarget = 0
	c.Fill = 0
	c.loaded = 0
	c.Returning = false
}

// CancelHealing clears the repair job.
func (u *Unit) CancelHealing() {
	if u.Collector != nil {
		u.Collector.HealTarget = 0
	}
}

// MiningFraction is Fill/Capacity in [0,1] for the HUD bar.
func (u *Unit) MiningFraction() float64 {
	c := u.Collector
	if c == nil || c.Capacity <= 0 {
		return 0
	}
	return clamp01(c.Fill / c.Capacity)
}

// UpdateMining advances the mine/return/unload cycle by dt. asteroid is the
// resolved MineTarget (nil if it no longer exists) and home the mothership
// (nil if there is none). A non-nil Delivery means the hold was emptied
// into home's inventory this step.
func (u *Unit) UpdateMining(dt float64, asteroid *Asteroid, home *Unit) (*Delivery, error) {
	c := u.Collector
	if c == nil {
		return nil, nil
	}
	if c.Returning {
		return u.unload(dt, asteroid, home)
	}
	if c.MineTarget == 0 {
		return nil, nil
	}
	if asteroid == nil {
		c.MineTarget = 0
		if c.Fill > 0 {
			u.beginReturn(home)
		}
		return nil, nil
	}
	if u.Position().DistTo(asteroid.Pos)-asteroid.Radius > collectorMineRange {
		u.SetTarget(asteroid.Pos)
		return nil, nil
	}

	u.Mover.Stop()
	if c.Fill == 0 {
		c.CargoOre = asteroid.Ore
		c.CargoPurity = asteroid.Purity
	}
	c.Fill = math.Min(c.Capacity, c.Fill+collectorMineRate*dt)
	if c.Fill >= c.Capacity-fillEpsilon {
		c.Fill = c.Capacity
		u.beginReturn(home)
	}
	return nil, nil
}

func (u *Unit) beginReturn(home *Unit) {
	c := u.Collector
	c.Returning = true
	c.loaded = c.Fill
	if home != nil {
		u.SetTarget(home.Position())
	}
}

func (u *Unit) unload(dt float64, asteroid *Asteroid, home *Unit) (*Delivery, error) {
	c := u.Collector
	if home == nil {
		u.Mover.Stop()
		return nil, nil
	}
	if hullGap(u, home) > collectorUnloadRadius {
		u.SetTarget(home.Position())
		return nil, nil
	}

	u.Mover.Stop()
	c.Fill = math.Max(0, c.Fill-collectorUnloadRate*dt)
	if c.Fill > fillEpsilon {
		return nil, nil
	}
	if home.Inventory == nil {
		return nil, fmt.Errorf("unload %s into %s: %w", u.Label, home.Label, ErrInventoryMissing)
	}
	d := &Delivery{Ore: c.CargoOre, Amount: int(math.Round(c.loaded * c.CargoPurity))}
	home.Inventory.Add(d.Ore, d.Amount)
	c.Fill = 0
	c.loaded = 0
	c.Returning = false
	if c.MineTarget != 0 && asteroid != nil {
		u.SetTarget(asteroid.Pos)
	}
	return d, nil
}

// UpdateHealing advances the repair cycle by dt. target is the resolved
// HealTarget, nil if it is gone. Returns the armour plus health restored.
func (u *Unit) UpdateHealing(dt float64, target *Unit) float64 {
	c := u.Collector
	if c == nil || c.HealTarget == 0 {
		return 0
	}
	if target == nil || !target.Alive() {
		u.CancelHealing()
		return 0
	}
	if hullGap(u, target) > collectorHealRange {
		u.SetTarget(target.Position())
		return 0
	}

	u.Mover.Stop()
	amount := collectorHealRate * dt
	applied := target.RepairArmor(amount)
	if rest := amount - applied; rest > 0 {
		before := target.Health
		target.Heal(rest)
		applied += target.Health - before
	}
	return applied
}

// hullGap is the distance from u's centre to the edge of target's oriented
// box along the line between them, floored at 0.
func hullGap(u, target *Unit) float64 {
	d := target.Position().Sub(u.Position())
	ext := orientedHalfExtent(target.Size.X, target.Size.Y, target.Facing(), d.Norm())
	return math.Max(0, d.Len()-ext)
}
