// Package world loads star systems and resolves jump destinations.
package world

import (
	"fmt"
	"strings"

	"github.com/Garsondee/expedition/internal/game"
	"github.com/spf13/viper"
)

// stationCentreShift is subtracted from a station's x position so the
// authored coordinates land left of the playfield centre.
const stationCentreShift = 300

// Visitable is one area inside a system as authored in the data file.
type Visitable struct {
	Name     string    `mapstructure:"name"`
	Type     string    `mapstructure:"type"`
	Ore      string    `mapstructure:"ore"`
	Tier     int       `mapstructure:"tier"`
	Position []float64 `mapstructure:"position"`
}

// System is a named star system.
type System struct {
	Name       string      `mapstructure:"name"`
	Visitables []Visitable `mapstructure:"visitables"`
}

// Catalog is a LocationProvider backed by the star-system file.
type Catalog struct {
	Systems []System
}

// Load reads the star-system file at path.
func Load(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read star systems: %w", err)
	}
	var c Catalog
	if err := v.UnmarshalKey("systems", &c.Systems); err != nil {
		return nil, fmt.Errorf("decode star systems: %w", err)
	}
	if len(c.Systems) == 0 {
		return nil, fmt.Errorf("star systems file %s lists no systems", path)
	}
	return &c, nil
}

// Lookup finds an area by system and area name. System names match
// case-insensitively; area names must match exactly.
func (c *Catalog) Lookup(system, area string) (game.Location, bool) {
	for _, s := range c.Systems {
		if !strings.EqualFold(s.Name, system) {
			continue
		}
		for _, v := range s.Visitables {
			if v.Name == area {
				return toLocation(system, v), true
			}
		}
		return game.Location{}, false
	}
	return game.Location{}, false
}

// Destinations lists every area in file order.
func (c *Catalog) Destinations() []game.LocationRef {
	var out []game.LocationRef
	for _, s := range c.Systems {
		for _, v := range s.Visitables {
			out = append(out, game.LocationRef{System: s.Name, Area: v.Name})
		}
	}
	return out
}

func toLocation(system string, v Visitable) game.Location {
	loc := game.Location{
		LocationRef: game.LocationRef{System: system, Area: v.Name},
		Tier:        v.Tier,
	}
	switch strings.ToLower(v.Type) {
	case "station":
		loc.Type = game.LocationStation
		if len(v.Position) == 2 {
			loc.Offset = game.Vec2{X: v.Position[0] - stationCentreShift, Y: v.Position[1]}
		}
	case "asteroids":
		loc.Type = game.LocationAsteroids
		loc.Ore = game.OreType(strings.ToUpper(v.Ore))
		if loc.Ore == "" {
			loc.Ore = game.OreM
		}
	}
	return loc
}
