package world

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Garsondee/expedition/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSystems = `{
  "systems": [
    {"name": "Lazarus", "visitables": [
      {"name": "Lazarus Station", "type": "Station", "position": [300, 40]},
      {"name": "Lazarus Belt", "type": "asteroids", "ore": "b", "tier": 2}
    ]},
    {"name": "Kepler", "visitables": [
      {"name": "Kepler Drift", "type": "Asteroids"},
      {"name": "Kepler Void", "type": "Nebula"}
    ]}
  ]
}`

func writeSystems(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "star_systems.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Lookup(t *testing.T) {
	c, err := Load(writeSystems(t, testSystems))
	require.NoError(t, err)

	st, ok := c.Lookup("Lazarus", "Lazarus Station")
	require.True(t, ok)
	assert.Equal(t, game.LocationStation, st.Type)
	assert.Equal(t, game.Vec2{X: 0, Y: 40}, st.Offset)
	assert.False(t, st.WavesAllowed())

	belt, ok := c.Lookup("LAZARUS", "Lazarus Belt")
	require.True(t, ok, "system names match case-insensitively")
	assert.Equal(t, game.LocationAsteroids, belt.Type)
	assert.Equal(t, game.OreB, belt.Ore)
	assert.Equal(t, 2, belt.Tier)
	assert.True(t, belt.WavesAllowed())

	drift, ok := c.Lookup("Kepler", "Kepler Drift")
	require.True(t, ok)
	assert.Equal(t, game.OreM, drift.Ore, "asteroid fields default to M ore")

	void, ok := c.Lookup("Kepler", "Kepler Void")
	require.True(t, ok)
	assert.Equal(t, game.LocationNone, void.Type)
}

func TestLookup_Unknown(t *testing.T) {
	c, err := Load(writeSystems(t, testSystems))
	require.NoError(t, err)

	_, ok := c.Lookup("Nowhere", "Lazarus Station")
	assert.False(t, ok)
	_, ok = c.Lookup("Lazarus", "lazarus station")
	assert.False(t, ok, "area names are exact")
}

func TestDestinations_FileOrder(t *testing.T) {
	c, err := Load(writeSystems(t, testSystems))
	require.NoError(t, err)

	d := c.Destinations()
	require.Len(t, d, 4)
	assert.Equal(t, game.LocationRef{System: "Lazarus", Area: "Lazarus Station"}, d[0])
	assert.Equal(t, game.LocationRef{System: "Kepler", Area: "Kepler Void"}, d[3])
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = Load(writeSystems(t, `{"systems": []}`))
	assert.Error(t, err)
}

func TestLoad_ShippedData(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "data", "star_systems.json"))
	require.NoError(t, err)

	loc, ok := c.Lookup("Lazarus", "Lazarus Station")
	require.True(t, ok)
	assert.Equal(t, game.LocationStation, loc.Type)
}

func TestCatalog_DrivesJumps(t *testing.T) {
	c, err := Load(writeSystems(t, testSystems))
	require.NoError(t, err)

	s := game.NewSession(game.SessionConfig{
		Tuning: game.DefaultTuning(),
		World:  c,
		Start:  game.LocationRef{System: "Lazarus", Area: "Lazarus Station"},
	})
	assert.Empty(t, s.Asteroids)

	ok, err := s.Jump("Lazarus", "Lazarus Belt")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEmpty(t, s.Asteroids)
	assert.Equal(t, "Lazarus Belt", s.Location().Area)
}
