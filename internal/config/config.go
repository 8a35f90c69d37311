package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Garsondee/expedition/internal/game"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "expedition.cfg.json"

// WindowConfig holds the desktop window settings.
type WindowConfig struct {
	Title string  `json:"title" mapstructure:"title"`
	Scale float64 `json:"scale" mapstructure:"scale"`
}

// AudioConfig holds sound settings.
type AudioConfig struct {
	Enabled    bool    `json:"enabled" mapstructure:"enabled"`
	SoundsDir  string  `json:"soundsDir" mapstructure:"soundsDir"`
	Volume     float64 `json:"volume" mapstructure:"volume"`
	SampleRate int     `json:"sampleRate" mapstructure:"sampleRate"`
}

// StorageConfig holds the save database settings.
type StorageConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

// WorldConfig names the star-system file and the starting area.
type WorldConfig struct {
	File        string `json:"file" mapstructure:"file"`
	StartSystem string `json:"startSystem" mapstructure:"startSystem"`
	StartArea   string `json:"startArea" mapstructure:"startArea"`
}

// Load reads configuration from the JSON file in configDir and sets default
// values. A missing file is not an error; a malformed one is.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "")

	viper.SetDefault("window.title", "Expedition")
	viper.SetDefault("window.scale", 1.0)

	d := game.DefaultTuning()
	viper.SetDefault("sim.worldWidth", d.WorldWidth)
	viper.SetDefault("sim.worldHeight", d.WorldHeight)
	viper.SetDefault("sim.maxDt", d.MaxDt)
	viper.SetDefault("sim.separationIterations", d.SeparationIterations)
	viper.SetDefault("sim.collisionDPS", d.CollisionDPS)
	viper.SetDefault("sim.enemySpawnInterval", d.EnemySpawnInterval)
	viper.SetDefault("sim.enemySpawnCount", d.EnemySpawnCount)
	viper.SetDefault("sim.enemyProjectileSpeedFactor", d.EnemyProjectileSpeedFactor)
	viper.SetDefault("sim.enemyHoldFraction", d.EnemyHoldFraction)
	viper.SetDefault("sim.stationHealingRate", d.StationHealingRate)
	viper.SetDefault("sim.dockRadius", d.DockRadius)
	viper.SetDefault("sim.selectionMinPixels", d.SelectionMinPixels)
	viper.SetDefault("sim.clickThreshold", d.ClickThreshold)
	viper.SetDefault("sim.seed", d.Seed)

	viper.SetDefault("audio.enabled", true)
	viper.SetDefault("audio.soundsDir", "./sounds")
	viper.SetDefault("audio.volume", 0.0)
	viper.SetDefault("audio.sampleRate", 44100)

	viper.SetDefault("storage.enabled", true)
	viper.SetDefault("storage.path", "./expedition.db")

	viper.SetDefault("world.file", "./data/star_systems.json")
	viper.SetDefault("world.startSystem", "Lazarus")
	viper.SetDefault("world.startArea", "Lazarus Station")

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Decode unmarshals the subtree under key into out. Leaves are copied one
// by one so defaults under key survive a partial section in the file.
func Decode(key string, out any) error {
	prefix := strings.ToLower(key) + "."
	sub := viper.New()
	for _, k := range viper.AllKeys() {
		if strings.HasPrefix(k, prefix) {
			sub.Set(strings.TrimPrefix(k, prefix), viper.Get(k))
		}
	}
	if err := sub.Unmarshal(out); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// Tuning returns the simulation constants.
func Tuning() (game.Tuning, error) {
	var t game.Tuning
	err := Decode("sim", &t)
	return t, err
}

// Window returns the window settings.
func Window() (WindowConfig, error) {
	var c WindowConfig
	err := Decode("window", &c)
	return c, err
}

// Audio returns the sound settings.
func Audio() (AudioConfig, error) {
	var c AudioConfig
	err := Decode("audio", &c)
	return c, err
}

// Storage returns the save database settings.
func Storage() (StorageConfig, error) {
	var c StorageConfig
	err := Decode("storage", &c)
	return c, err
}

// World returns the star-system settings.
func World() (WorldConfig, error) {
	var c WorldConfig
	err := Decode("world", &c)
	return c, err
}
