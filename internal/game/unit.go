package game

import (
	"fmt"
	"math"
)

// UnitKind is the closed set of hull variants.
type UnitKind int

const (
	KindExpeditionShip    UnitKind = iota // player mothership, owns hangar + ore
	KindFrigate                           // player escort frigate
	KindInterceptor                       // light craft, fast gunship
	KindBomber                            // light craft, anti-armour
	KindResourceCollector                 // light craft, mines and repairs
	KindPirateFrigate                     // enemy wave hull
	KindSpaceStation                      // friendly non-combatant structure
	kindCount
)

func (k UnitKind) String() string {
	switch k {
	case KindExpeditionShip:
		return "expedition_ship"
	case KindFrigate:
		return "frigate"
	case KindInterceptor:
		return "interceptor"
	case KindBomber:
		return "bomber"
	case KindResourceCollector:
		return "resource_collector"
	case KindPirateFrigate:
		return "pirate_frigate"
	case KindSpaceStation:
		return "space_station"
	default:
		return "unknown"
	}
}

// IsLightCraft reports whether the kind lives in a hangar slot.
func (k UnitKind) IsLightCraft() bool {
	return k == KindInterceptor || k == KindBomber || k == KindResourceCollector
}

func (k UnitKind) labelPrefix() string {
	switch k {
	case KindExpeditionShip:
		return "MS"
	case KindFrigate:
		return "FR"
	case KindInterceptor:
		return "IC"
	case KindBomber:
		return "BM"
	case KindResourceCollector:
		return "RC"
	case KindPirateFrigate:
		return "PF"
	case KindSpaceStation:
		return "ST"
	default:
		return "??"
	}
}

// UnitID identifies a unit for non-owning lookups. Zero means "none".
type UnitID int

// UnitStats is the per-variant baseline applied at construction.
type UnitStats struct {
	MaxHealth    float64
	MaxArmor     float64
	BulletDamage float64 // hull damage per shot
	ArmorDamage  float64 // armour damage per shot
	FireRange    float64 // px
	FirePeriod   float64 // seconds between shots
	Speed        float64 // px/s
	TurnRate     float64 // degrees/s
	Width        float64 // px along facing
	Height       float64 // px across facing
}

var unitStatsTable = map[UnitKind]UnitStats{
	KindExpeditionShip:    {MaxHealth: 1000, MaxArmor: 400, Speed: 40, TurnRate: 60, Width: 140, Height: 64},
	KindFrigate:           {MaxHealth: 450, MaxArmor: 200, BulletDamage: 12, ArmorDamage: 8, FireRange: 260, FirePeriod: 0.8, Speed: 70, TurnRate: 90, Width: 70, Height: 36},
	KindInterceptor:       {MaxHealth: 60, BulletDamage: 6, ArmorDamage: 2, FireRange: 180, FirePeriod: 0.35, Speed: 190, TurnRate: 360, Width: 22, Height: 18},
	KindBomber:            {MaxHealth: 120, MaxArmor: 60, BulletDamage: 4, ArmorDamage: 18, FireRange: 150, FirePeriod: 1.2, Speed: 120, TurnRate: 220, Width: 30, Height: 24},
	KindResourceCollector: {MaxHealth: 80, MaxArmor: 50, FireRange: collectorHealRange, Speed: 110, TurnRate: 240, Width: 24, Height: 20},
	KindPirateFrigate:     {MaxHealth: 300, MaxArmor: 150, BulletDamage: 10, ArmorDamage: 6, FireRange: 240, FirePeriod: 0.9, Speed: 80, TurnRate: 100, Width: 64, Height: 34},
	KindSpaceStation:      {MaxHealth: 999999, MaxArmor: 999999, Width: 180, Height: 180},
}

// StatsFor returns the baseline stats of a kind.
func StatsFor(k UnitKind) UnitStats {
	return unitStatsTable[k]
}

// silhouettes are convex outlines in unit space ([-0.5,0.5] on both axes,
// +x along facing). They are scaled by the unit's size and rotated by facing.
var silhouettes = map[UnitKind][]Vec2{
	KindExpeditionShip:    {{0.5, 0}, {0.3, 0.5}, {-0.4, 0.5}, {-0.5, 0}, {-0.4, -0.5}, {0.3, -0.5}},
	KindFrigate:           {{0.5, 0}, {0, 0.5}, {-0.5, 0.3}, {-0.5, -0.3}, {0, -0.5}},
	KindInterceptor:       {{0.5, 0}, {-0.5, 0.5}, {-0.5, -0.5}},
	KindBomber:            {{0.5, 0}, {0, 0.5}, {-0.5, 0.5}, {-0.5, -0.5}, {0, -0.5}},
	KindResourceCollector: {{0.5, 0.5}, {-0.5, 0.5}, {-0.5, -0.5}, {0.5, -0.5}},
	KindPirateFrigate:     {{0.5, 0.25}, {0.1, 0.5}, {-0.5, 0.4}, {-0.5, -0.4}, {0.1, -0.5}, {0.5, -0.25}},
	KindSpaceStation: {
		{0.5, 0.2}, {0.2, 0.5}, {-0.2, 0.5}, {-0.5, 0.2},
		{-0.5, -0.2}, {-0.2, -0.5}, {0.2, -0.5}, {0.5, -0.2},
	},
}

// Steerable units follow a movement target.
type Steerable interface {
	Position() Vec2
	SetTarget(p Vec2)
}

// Damageable units take hull and armour damage.
type Damageable interface {
	TakeDamage(amount float64)
	TakeArmorDamage(amount float64)
	ArmorUp() bool
	Alive() bool
}

// Armed units fire on a cooldown.
type Armed interface {
	ReadyToFire() bool
	ResetCooldown()
	UpdateCooldown(dt float64)
	IsTargetInRange(other Steerable) bool
}

// Selectable units can be picked by click or drag box.
type Selectable interface {
	PointInside(p Vec2) bool
	IsSelected() bool
	SetSelected(sel bool)
}

var (
	_ Steerable  = (*Unit)(nil)
	_ Damageable = (*Unit)(nil)
	_ Armed      = (*Unit)(nil)
	_ Selectable = (*Unit)(nil)
)

// Unit is one hull in the world. Variant-specific state lives in the
// optional pointer fields, which are nil for kinds that do not use them.
type Unit struct {
	ID    UnitID
	Kind  UnitKind
	Label string
	Tier  int
	Mover Mover
	Size  Vec2 // X = length along facing, Y = beam

	Health    float64
	MaxHealth float64
	Armor     float64
	MaxArmor  float64

	BulletDamage float64
	ArmorDamage  float64
	FireRange    float64
	FirePeriod   float64
	cooldown     float64

	Enemy        bool
	Selected     bool
	Invulnerable bool

	// Light craft launched from a hangar.
	Recalling  bool
	HangarSlot int // -1 when not launched from a hangar

	Collector *CollectorState // resource collectors only
	Hangar    *Hangar         // expedition ship only
	Inventory *Inventory      // expedition ship only
}

// NewUnit builds a unit of the given kind at pos with its baseline stats.
func NewUnit(id UnitID, kind UnitKind, pos Vec2) *Unit {
	st := StatsFor(kind)
	u := &Unit{
		ID:           id,
		Kind:         kind,
		Label:        fmt.Sprintf("%s%d", kind.labelPrefix(), id),
		Mover:        NewMover(pos, st.Speed, st.TurnRate),
		Size:         Vec2{st.Width, st.Height},
		Health:       st.MaxHealth,
		MaxHealth:    st.MaxHealth,
		Armor:        st.MaxArmor,
		MaxArmor:     st.MaxArmor,
		BulletDamage: st.BulletDamage,
		ArmorDamage:  st.ArmorDamage,
		FireRange:    st.FireRange,
		FirePeriod:   st.FirePeriod,
		HangarSlot:   -1,
	}
	switch kind {
	case KindPirateFrigate:
		u.Enemy = true
	case KindSpaceStation:
		u.Invulnerable = true
	case KindResourceCollector:
		u.Collector = NewCollectorState()
	case KindExpeditionShip:
		u.Hangar = NewHangar(DefaultHangarLoadout()...)
		u.Inventory = NewInventory()
	}
	return u
}

// Position returns the unit's world position.
func (u *Unit) Position() Vec2 { return u.Mover.Pos }

// Facing returns the unit's heading in radians.
func (u *Unit) Facing() float64 { return u.Mover.Facing }

// SetTarget records a movement destination.
func (u *Unit) SetTarget(p Vec2) { u.Mover.SetTarget(p) }

// Alive reports health > 0.
func (u *Unit) Alive() bool { return u.Health > 0 }

// ArmorUp reports whether incoming hits are absorbed by armour.
func (u *Unit) ArmorUp() bool { return u.MaxArmor > 0 && u.Armor > 0 }

// TakeDamage subtracts from health, floored at 0.
func (u *Unit) TakeDamage(amount float64) {
	if u.Invulnerable || amount <= 0 {
		return
	}
	u.Health = math.Max(0, u.Health-amount)
}

// TakeArmorDamage subtracts from armour, floored at 0. Excess is discarded.
func (u *Unit) TakeArmorDamage(amount float64) {
	if u.Invulnerable || amount <= 0 {
		return
	}
	u.Armor = math.Max(0, u.Armor-amount)
}

// Heal adds health up to max.
func (u *Unit) Heal(amount float64) {
	if u.Invulnerable || amount <= 0 {
		return
	}
	u.Health = math.Min(u.MaxHealth, u.Health+amount)
}

// SetArmor sets armour clamped to [0, MaxArmor].
func (u *Unit) SetArmor(v float64) {
	if u.Invulnerable {
		return
	}
	u.Armor = clamp(v, 0, u.MaxArmor)
}

// RepairArmor adds armour up to max and returns the amount actually applied.
func (u *Unit) RepairArmor(amount float64) float64 {
	if u.Invulnerable || amount <= 0 || u.MaxArmor <= 0 {
		return 0
	}
	applied := math.Min(amount, u.MaxArmor-u.Armor)
	if applied <= 0 {
		return 0
	}
	u.Armor += applied
	return applied
}

// IsTargetInRange is a pure distance check; facing is irrelevant.
func (u *Unit) IsTargetInRange(other Steerable) bool {
	return u.Position().DistTo(other.Position()) <= u.FireRange
}

func (u *Unit) ReadyToFire() bool { return u.cooldown <= 0 }
func (u *Unit) ResetCooldown() { u.cooldown = u.FirePeriod }

// Cooldown returns the seconds left before the next shot.
func (u *Unit) Cooldown() float64 { return u.cooldown }

// UpdateCooldown counts the weapon timer down, floored at 0.
func (u *Unit) UpdateCooldown(dt float64) {
	u.cooldown = math.Max(0, u.cooldown-dt)
}

// Armed reports whether the unit has a weapon worth firing.
func (u *Unit) Armed() bool { return u.BulletDamage > 0 }

func (u *Unit) IsSelected() bool { return u.Selected }
func (u *Unit) SetSelected(sel bool) { u.Selected = sel }
func (u *Unit) PointInside(p Vec2) bool { return u.Silhouette().Contains(p) }

// Silhouette returns the rotated collision outline in world space.
func (u *Unit) Silhouette() Polygon {
	local := silhouettes[u.Kind]
	out := make(Polygon, len(local))
	pos := u.Position()
	for i, v := range local {
		scaled := Vec2{v.X * u.Size.X, v.Y * u.Size.Y}
		out[i] = scaled.Rotate(u.Mover.Facing).Add(pos)
	}
	return out
}

// Bounds is the axis-aligned box around the rotated silhouette.
func (u *Unit) Bounds() Rect { return u.Silhouette().Bounds() }

// CollidesWith reports whether the two rotated silhouettes overlap.
func (u *Unit) CollidesWith(o *Unit) bool {
	if !u.Bounds().Overlaps(o.Bounds()) {
		return false
	}
	return u.Silhouette().Intersects(o.Silhouette())
}

// HealthFraction is health/max in [0,1].
func (u *Unit) HealthFraction() float64 {
	if u.MaxHealth <= 0 {
		return 0
	}
	return clamp01(u.Health / u.MaxHealth)
}

// ArmorFraction is armour/max in [0,1].
func (u *Unit) ArmorFraction() float64 {
	if u.MaxArmor <= 0 {
		return 0
	}
	return clamp01(u.Armor / u.MaxArmor)
}
