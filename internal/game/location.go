package game

import "math/rand"

// LocationType decides what a location spawns.
type LocationType string

const (
	LocationNone      LocationType = ""
	LocationStation   LocationType = "Station"
	LocationAsteroids LocationType = "Asteroids"
)

const (
	asteroidMargin     = 100.0
	asteroidHighPurity = 0.5
	asteroidLowPurity  = 0.13
	asteroidMinRadius  = 18.0
	asteroidMaxRadius  = 34.0
)

// LocationRef names a visitable area inside a star system.
type LocationRef struct {
	System string
	Area   string
}

func (r LocationRef) String() string { return r.System + "/" + r.Area }

// Location is the spawn descriptor for one area.
type Location struct {
	LocationRef
	Type   LocationType
	Ore    OreType
	Tier   int
	Offset Vec2 // station offset from the world centre
}

// WavesAllowed reports whether pirate waves may spawn here.
func (l Location) WavesAllowed() bool { return l.Type == LocationAsteroids }

// StaticLocations is an in-memory LocationProvider.
type StaticLocations map[LocationRef]Location

func (s StaticLocations) Lookup(system, area string) (Location, bool) {
	loc, ok := s[LocationRef{System: system, Area: area}]
	if ok {
		loc.LocationRef = LocationRef{System: system, Area: area}
	}
	return loc, ok
}

// spawnAsteroids rolls the asteroid field for an asteroid location. M fields
// are 4-10 high-purity M rocks. Other fields are 5-10 rocks with at least
// one each of A, B and C; the designated ore is high purity and the rest low.
func spawnAsteroids(loc Location, rng *rand.Rand, w, h float64, nextID func() AsteroidID) []*Asteroid {
	if loc.Type != LocationAsteroids {
		return nil
	}
	ore := loc.Ore
	if ore == "" {
		ore = OreM
	}
	place := func() Vec2 {
		return Vec2{
			X: asteroidMargin + rng.Float64()*(w-2*asteroidMargin),
			Y: asteroidMargin + rng.Float64()*(h-2*asteroidMargin),
		}
	}
	radius := func() float64 {
		return asteroidMinRadius + rng.Float64()*(asteroidMaxRadius-asteroidMinRadius)
	}

	var out []*Asteroid
	if ore == OreM {
		count := 4 + rng.Intn(7)
		for i := 0; i < count; i++ {
			out = append(out, NewAsteroid(nextID(), place(), radius(), OreM, asteroidHighPurity, loc.Tier))
		}
		return out
	}

	count := 5 + rng.Intn(6)
	kinds := []OreType{OreA, OreB, OreC}
	for len(kinds) < count {
		kinds = append(kinds, kinds[rng.Intn(3)])
	}
	rng.Shuffle(len(kinds), func(i, j int) { kinds[i], kinds[j] = kinds[j], kinds[i] })
	for _, k := range kinds {
		purity := asteroidLowPurity
		if k == ore {
			purity = asteroidHighPurity
		}
		out = append(out, NewAsteroid(nextID(), place(), radius(), k, purity, loc.Tier))
	}
	return out
}
