package game

import (
	"image/color"
	"math"
)

// --- Projectile constants ---

const (
	projectileSpeed    = 420.0 // px/s
	projectileRadius   = 3.0   // px
	projectileLifetime = 1.6   // s
	projectileSamples  = 16    // perimeter points in the hit test

	lifeEpsilon = 1e-9
)

var (
	playerShotColor = color.RGBA{255, 240, 120, 255}
	enemyShotColor  = color.RGBA{255, 90, 90, 255}
)

// --- Projectile ---

// Projectile is an unguided round travelling in a straight line.
type Projectile struct {
	Pos    Vec2
	Dir    Vec2 // unit vector
	Speed  float64
	Radius float64
	Life   float64 // seconds left

	HullDamage  float64
	ArmorDamage float64
	Enemy       bool
	Color       color.RGBA
}

// NewProjectile aims a round from from at to (no lead).
func NewProjectile(from, to Vec2, speed, hull, armor float64, enemy bool) *Projectile {
	c := playerShotColor
	if enemy {
		c = enemyShotColor
	}
	return &Projectile{
		Pos:         from,
		Dir:         to.Sub(from).Norm(),
		Speed:       speed,
		Radius:      projectileRadius,
		Life:        projectileLifetime,
		HullDamage:  hull,
		ArmorDamage: armor,
		Enemy:       enemy,
		Color:       c,
	}
}

// Update advances the round and reports whether its lifetime ran out.
func (p *Projectile) Update(dt float64) bool {
	p.Pos = p.Pos.Add(p.Dir.Scale(p.Speed * dt))
	p.Life -= dt
	return p.Life <= lifeEpsilon
}

// Bounds is the box around the round's circle.
func (p *Projectile) Bounds() Rect {
	return Rect{X: p.Pos.X - p.Radius, Y: p.Pos.Y - p.Radius, W: 2 * p.Radius, H: 2 * p.Radius}
}

// Hits tests the round against u's rotated silhouette: a box check first,
// then the centre and projectileSamples points around the circle.
func (p *Projectile) Hits(u *Unit) bool {
	if !p.Bounds().Overlaps(u.Bounds()) {
		return false
	}
	sil := u.Silhouette()
	if sil.Contains(p.Pos) {
		return true
	}
	for i := 0; i < projectileSamples; i++ {
		a := 2 * math.Pi * float64(i) / projectileSamples
		pt := p.Pos.Add(Vec2{math.Cos(a), math.Sin(a)}.Scale(p.Radius))
		if sil.Contains(pt) {
			return true
		}
	}
	return false
}

// --- Combat ---

// HitEvent reports one projectile impact.
type HitEvent struct {
	Target  *Unit
	Pos     Vec2
	ByEnemy bool
	ToArmor bool
	Amount  float64
	Fatal   bool
}

// CombatManager owns in-flight projectiles and resolves fire and impacts.
type CombatManager struct {
	Projectiles []*Projectile
	fx          *Effects

	ShotsFired int
	HitsScored int
}

func NewCombatManager(fx *Effects) *CombatManager {
	return &CombatManager{fx: fx}
}

// nearestTarget returns the closest live target by squared distance. Ties
// go to the first one encountered.
func nearestTarget(src *Unit, targets []*Unit) *Unit {
	var best *Unit
	bestD := math.Inf(1)
	for _, t := range targets {
		if !t.Alive() {
			continue
		}
		if d := src.Position().DistSqTo(t.Position()); d < bestD {
			best, bestD = t, d
		}
	}
	return best
}

// AutoFire lets every armed source shoot its nearest target if it is in
// range and the weapon is ready. speedFactor scales projectile speed.
// Returns the number of rounds spawned.
func (cm *CombatManager) AutoFire(sources, targets []*Unit, speedFactor float64) int {
	fired := 0
	for _, src := range sources {
		if !src.Alive() || !src.Armed() || src.Recalling {
			continue
		}
		tgt := nearestTarget(src, targets)
		if tgt == nil || !src.IsTargetInRange(tgt) || !src.ReadyToFire() {
			continue
		}
		cm.Projectiles = append(cm.Projectiles, NewProjectile(
			src.Position(), tgt.Position(), projectileSpeed*speedFactor,
			src.BulletDamage, src.ArmorDamage, src.Enemy))
		src.ResetCooldown()
		fired++
	}
	cm.ShotsFired += fired
	return fired
}

// Update advances rounds and removes expired ones with a small puff.
func (cm *CombatManager) Update(dt float64) {
	keep := cm.Projectiles[:0]
	for _, p := range cm.Projectiles {
		if p.Update(dt) {
			if cm.fx != nil {
				cm.fx.Spawn(p.Pos, p.Color, expiryBurst)
			}
			continue
		}
		keep = append(keep, p)
	}
	cm.Projectiles = truncate(cm.Projectiles, keep)
}

// ResolveHits tests every round against the opposing fleet only. The first
// unit hit in iteration order takes the damage and the round is destroyed.
func (cm *CombatManager) ResolveHits(players, enemies []*Unit) []HitEvent {
	var events []HitEvent
	keep := cm.Projectiles[:0]
	for _, p := range cm.Projectiles {
		targets := enemies
		if p.Enemy {
			targets = players
		}
		var hit *Unit
		for _, u := range targets {
			if p.Hits(u) {
				hit = u
				break
			}
		}
		if hit == nil {
			keep = append(keep, p)
			continue
		}
		wasAlive := hit.Alive()
		toArmor, amount := ApplyHit(hit, p.HullDamage, p.ArmorDamage)
		events = append(events, HitEvent{
			Target:  hit,
			Pos:     p.Pos,
			ByEnemy: p.Enemy,
			ToArmor: toArmor,
			Amount:  amount,
			Fatal:   wasAlive && !hit.Alive(),
		})
		if cm.fx != nil {
			cm.fx.Spawn(p.Pos, p.Color, impactBurst)
		}
	}
	cm.Projectiles = truncate(cm.Projectiles, keep)
	cm.HitsScored += len(events)
	return events
}

// Clear removes every round in flight.
func (cm *CombatManager) Clear() { cm.Projectiles = cm.Projectiles[:0] }

// ApplyHit routes one hit: armour takes all of armor if it is up, otherwise
// the hull takes all of hull. It never splits a hit. Returns which pool was
// hit and the payload applied.
func ApplyHit(d Damageable, hull, armor float64) (bool, float64) {
	if d.ArmorUp() {
		d.TakeArmorDamage(armor)
		return true, armor
	}
	d.TakeDamage(hull)
	return false, hull
}

// ApplyCollisionDamage damages both sides of every overlapping
// player/enemy pair by dps*dt, routed like a projectile hit. Units killed
// earlier in the tick are still included. Returns the number of pairs.
func ApplyCollisionDamage(players, enemies []*Unit, dps, dt float64) int {
	dmg := dps * dt
	n := 0
	for _, p := range players {
		for _, e := range enemies {
			if !p.CollidesWith(e) {
				continue
			}
			ApplyHit(p, dmg, dmg)
			ApplyHit(e, dmg, dmg)
			n++
		}
	}
	return n
}

// ResolveSeparation runs the overlap passes: light craft among themselves,
// big hulls among themselves, big hulls pushing light craft one way,
// enemies among themselves, and every player/enemy pair.
func ResolveSeparation(players, enemies []*Unit, iterations int) {
	for it := 0; it < iterations; it++ {
		for i, a := range players {
			for _, b := range players[i+1:] {
				la, lb := a.Kind.IsLightCraft(), b.Kind.IsLightCraft()
				switch {
				case la == lb:
					SeparateRotated(a, b)
				case la && !a.Recalling:
					separateOneSided(b, a)
				case lb && !b.Recalling:
					separateOneSided(a, b)
				}
			}
		}
		for i, a := range enemies {
			for _, b := range enemies[i+1:] {
				SeparateRotated(a, b)
			}
		}
		for _, p := range players {
			for _, e := range enemies {
				SeparateRotated(p, e)
			}
		}
	}
}

// truncate nils out the tail of old past len(keep) so dropped pointers can
// be collected, and returns keep.
func truncate[T any](old, keep []*T) []*T {
	for i := len(keep); i < len(old); i++ {
		old[i] = nil
	}
	return keep
}
