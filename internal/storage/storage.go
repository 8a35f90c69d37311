// Package storage persists expedition ship saves in a local SQLite file.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Garsondee/expedition/internal/game"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNoSave is returned by LoadLatest when nothing has been saved yet.
var ErrNoSave = errors.New("no saved expedition")

// SaveRecord is one row per save request.
type SaveRecord struct {
	gorm.Model
	Label     string         `gorm:"size:32"`
	System    string         `gorm:"size:64;index"`
	Area      string         `gorm:"size:64"`
	Health    float64
	MaxHealth float64
	Ore       datatypes.JSON // ore type -> amount
	Ship      []byte         // msgpack shipSnapshot
}

// shipSnapshot is the part of the ship that does not need to be queryable.
type shipSnapshot struct {
	Kind     int        `msgpack:"kind"`
	Armor    float64    `msgpack:"armor"`
	MaxArmor float64    `msgpack:"max_armor"`
	X        float64    `msgpack:"x"`
	Y        float64    `msgpack:"y"`
	Facing   float64    `msgpack:"facing"`
	Hangar   []slotSave `msgpack:"hangar"`
	SavedAt  int64      `msgpack:"saved_at"`
}

type slotSave struct {
	Kind   int `msgpack:"kind"`
	Losses int `msgpack:"losses"`
}

// Store is the SQLite-backed save sink.
type Store struct {
	DB     *gorm.DB
	Logger zerolog.Logger
	now    func() time.Time
}

// Open connects to the SQLite file at path and migrates the schema. An empty
// path uses a shared in-memory database.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open save database: %w", err)
	}
	if err := db.AutoMigrate(&SaveRecord{}); err != nil {
		return nil, fmt.Errorf("migrate save database: %w", err)
	}
	if path == "" {
		log.Info().Msg("Using in-memory save database")
	} else {
		log.Info().Str("path", path).Msg("Using local SQLite save database")
	}
	return &Store{DB: db, Logger: log, now: time.Now}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save writes the ship's state at the given location.
func (s *Store) Save(ship *game.Unit, at game.LocationRef) error {
	if ship == nil {
		return errors.New("save: nil ship")
	}
	ore := map[game.OreType]int{}
	if ship.Inventory != nil {
		ore = ship.Inventory.Snapshot()
	}
	oreJSON, err := json.Marshal(ore)
	if err != nil {
		return fmt.Errorf("save: encode ore: %w", err)
	}

	snap := shipSnapshot{
		Kind:     int(ship.Kind),
		Armor:    ship.Armor,
		MaxArmor: ship.MaxArmor,
		X:        ship.Mover.Pos.X,
		Y:        ship.Mover.Pos.Y,
		Facing:   ship.Mover.Facing,
		SavedAt:  s.now().Unix(),
	}
	if ship.Hangar != nil {
		for _, sl := range ship.Hangar.Slots() {
			snap.Hangar = append(snap.Hangar, slotSave{Kind: int(sl.Kind), Losses: sl.Losses})
		}
	}
	payload, err := msgpack.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("save: encode ship: %w", err)
	}

	rec := SaveRecord{
		Label:     ship.Label,
		System:    at.System,
		Area:      at.Area,
		Health:    ship.Health,
		MaxHealth: ship.MaxHealth,
		Ore:       datatypes.JSON(oreJSON),
		Ship:      payload,
	}
	if err := s.DB.Create(&rec).Error; err != nil {
		return fmt.Errorf("save: insert: %w", err)
	}
	s.Logger.Debug().Uint("id", rec.ID).Str("at", at.String()).Msg("expedition saved")
	return nil
}

// Saved is a decoded save.
type Saved struct {
	At        game.LocationRef
	Label     string
	Health    float64
	MaxHealth float64
	Armor     float64
	MaxArmor  float64
	Pos       game.Vec2
	Facing    float64
	Ore       map[game.OreType]int
	Hangar    []game.UnitKind
	SavedAt   time.Time
}

// LoadLatest returns the most recent save, or ErrNoSave.
func (s *Store) LoadLatest() (Saved, error) {
	var rec SaveRecord
	err := s.DB.Order("id desc").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Saved{}, ErrNoSave
	}
	if err != nil {
		return Saved{}, fmt.Errorf("load save: %w", err)
	}
	return decode(rec)
}

// Count returns the number of saves stored.
func (s *Store) Count() (int64, error) {
	var n int64
	err := s.DB.Model(&SaveRecord{}).Count(&n).Error
	return n, err
}

func decode(rec SaveRecord) (Saved, error) {
	out := Saved{
		At:        game.LocationRef{System: rec.System, Area: rec.Area},
		Label:     rec.Label,
		Health:    rec.Health,
		MaxHealth: rec.MaxHealth,
		Ore:       map[game.OreType]int{},
	}
	if len(rec.Ore) > 0 {
		if err := json.Unmarshal(rec.Ore, &out.Ore); err != nil {
			return Saved{}, fmt.Errorf("load save: decode ore: %w", err)
		}
	}
	var snap shipSnapshot
	if err := msgpack.Unmarshal(rec.Ship, &snap); err != nil {
		return Saved{}, fmt.Errorf("load save: decode ship: %w", err)
	}
	out.Armor = snap.Armor
	out.MaxArmor = snap.MaxArmor
	out.Pos = game.Vec2{X: snap.X, Y: snap.Y}
	out.Facing = snap.Facing
	out.SavedAt = time.Unix(snap.SavedAt, 0)
	for _, sl := range snap.Hangar {
		out.Hangar = append(out.Hangar, game.UnitKind(sl.Kind))
	}
	return out, nil
}

// minRestoredHull keeps a resumed expedition ship alive when its save was
// written with no hull left.
const minRestoredHull = 1

// Apply copies a save onto a freshly spawned expedition ship. Hangar slots
// come back docked.
func (sv Saved) Apply(ship *game.Unit) {
	if ship == nil {
		return
	}
	if sv.MaxHealth > 0 {
		ship.MaxHealth = sv.MaxHealth
	}
	ship.Health = sv.Health
	if ship.Health < minRestoredHull {
		ship.Health = minRestoredHull
	}
	if ship.Health > ship.MaxHealth {
		ship.Health = ship.MaxHealth
	}
	ship.MaxArmor = sv.MaxArmor
	ship.SetArmor(sv.Armor)
	ship.Mover.Pos = sv.Pos
	ship.Mover.Target = sv.Pos
	ship.Mover.Facing = sv.Facing
	if ship.Inventory != nil {
		ship.Inventory.Restore(sv.Ore)
	}
	if len(sv.Hangar) > 0 {
		ship.Hangar = game.NewHangar(sv.Hangar...)
	}
}
