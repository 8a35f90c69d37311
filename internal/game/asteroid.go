package game

// OreType is the categorical ore an asteroid yields.
type OreType string

const (
	OreA OreType = "A"
	OreB OreType = "B"
	OreC OreType = "C"
	OreM OreType = "M"
)

// AllOres lists the ore types in display order.
var AllOres = []OreType{OreA, OreB, OreC, OreM}

// AsteroidID identifies an asteroid for collector targeting. Zero means none.
type AsteroidID int

// Asteroid is a static ore body. Yield per delivery comes from purity, so
// asteroids are never depleted.
type Asteroid struct {
	ID     AsteroidID
	Pos    Vec2
	Radius float64
	Ore    OreType
	Purity float64 // [0,1]
	Tier   int
}

// NewAsteroid builds an asteroid with purity clamped to [0,1].
func NewAsteroid(id AsteroidID, pos Vec2, radius float64, ore OreType, purity float64, tier int) *Asteroid {
	return &Asteroid{
		ID:     id,
		Pos:    pos,
		Radius: radius,
		Ore:    ore,
		Purity: clamp01(purity),
		Tier:   tier,
	}
}

// Contains is the click test.
func (a *Asteroid) Contains(p Vec2) bool {
	return a.Pos.DistSqTo(p) <= a.Radius*a.Radius
}
