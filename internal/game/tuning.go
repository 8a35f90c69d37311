package game

// Tuning holds the simulation constants that are read from config under
// the "sim" key. Per-kind unit stats live in unitStatsTable.
type Tuning struct {
	WorldWidth  float64 `mapstructure:"worldWidth"`
	WorldHeight float64 `mapstructure:"worldHeight"`

	MaxDt                float64 `mapstructure:"maxDt"`
	SeparationIterations int     `mapstructure:"separationIterations"`
	CollisionDPS         float64 `mapstructure:"collisionDPS"`

	EnemySpawnInterval         float64 `mapstructure:"enemySpawnInterval"`
	EnemySpawnCount            int     `mapstructure:"enemySpawnCount"`
	EnemyProjectileSpeedFactor float64 `mapstructure:"enemyProjectileSpeedFactor"`
	EnemyHoldFraction          float64 `mapstructure:"enemyHoldFraction"`

	StationHealingRate float64 `mapstructure:"stationHealingRate"`
	DockRadius         float64 `mapstructure:"dockRadius"`

	SelectionMinPixels float64 `mapstructure:"selectionMinPixels"`
	ClickThreshold     float64 `mapstructure:"clickThreshold"`

	Seed int64 `mapstructure:"seed"`
}

// DefaultTuning returns the stock balance.
func DefaultTuning() Tuning {
	return Tuning{
		WorldWidth:  1280,
		WorldHeight: 720,

		MaxDt:                0.05,
		SeparationIterations: 3,
		CollisionDPS:         20,

		EnemySpawnInterval:         45,
		EnemySpawnCount:            2,
		EnemyProjectileSpeedFactor: 0.9,
		EnemyHoldFraction:          0.95,

		StationHealingRate: 10,
		DockRadius:         50,

		SelectionMinPixels: 6,
		ClickThreshold:     4,

		Seed: 1,
	}
}

// withDefaults fills zero fields from DefaultTuning so a partially decoded
// config still yields a playable session.
func (t Tuning) withDefaults() Tuning {
	d := DefaultTuning()
	if t.WorldWidth <= 0 {
		t.WorldWidth = d.WorldWidth
	}
	if t.WorldHeight <= 0 {
		t.WorldHeight = d.WorldHeight
	}
	if t.MaxDt <= 0 {
		t.MaxDt = d.MaxDt
	}
	if t.SeparationIterations <= 0 {
		t.SeparationIterations = d.SeparationIterations
	}
	if t.CollisionDPS < 0 {
		t.CollisionDPS = d.CollisionDPS
	}
	if t.EnemyProjectileSpeedFactor <= 0 {
		t.EnemyProjectileSpeedFactor = d.EnemyProjectileSpeedFactor
	}
	if t.EnemyHoldFraction <= 0 {
		t.EnemyHoldFraction = d.EnemyHoldFraction
	}
	if t.DockRadius <= 0 {
		t.DockRadius = d.DockRadius
	}
	if t.SelectionMinPixels <= 0 {
		t.SelectionMinPixels = d.SelectionMinPixels
	}
	if t.ClickThreshold <= 0 {
		t.ClickThreshold = d.ClickThreshold
	}
	return t
}
