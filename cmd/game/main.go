package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Garsondee/expedition/internal/audio"
	"github.com/Garsondee/expedition/internal/config"
	"github.com/Garsondee/expedition/internal/fabrication"
	"github.com/Garsondee/expedition/internal/game"
	"github.com/Garsondee/expedition/internal/logging"
	"github.com/Garsondee/expedition/internal/storage"
	"github.com/Garsondee/expedition/internal/world"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

func main() {
	var configDir string
	flag.StringVar(&configDir, "config", ".", "directory holding "+config.FileName)
	flag.Parse()

	if err := run(configDir); err != nil {
		fmt.Fprintf(os.Stderr, "expedition: %v\n", err)
		os.Exit(1)
	}
}

func run(configDir string) error {
	if err := config.Load(configDir); err != nil {
		return err
	}

	logFile, err := logging.OpenFile(config.GetString("logFile"))
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	var log zerolog.Logger
	if logFile != nil {
		defer logFile.Close()
		log = logging.Setup(config.GetString("logLevel"), os.Stdout, logFile)
	} else {
		log = logging.Setup(config.GetString("logLevel"), os.Stdout, nil)
	}

	tuning, err := config.Tuning()
	if err != nil {
		return err
	}
	winCfg, err := config.Window()
	if err != nil {
		return err
	}
	audioCfg, err := config.Audio()
	if err != nil {
		return err
	}
	storeCfg, err := config.Storage()
	if err != nil {
		return err
	}
	worldCfg, err := config.World()
	if err != nil {
		return err
	}

	catalog, err := world.Load(worldCfg.File)
	if err != nil {
		return err
	}

	sessCfg := game.SessionConfig{
		Tuning: tuning,
		Log:    &log,
		Audio: audio.New(audio.Options{
			Enabled:    audioCfg.Enabled,
			SoundsDir:  audioCfg.SoundsDir,
			Volume:     audioCfg.Volume,
			SampleRate: audioCfg.SampleRate,
		}, log.With().Str("component", "audio").Logger()),
		World:      catalog,
		Fabricator: fabrication.NewManager(log.With().Str("component", "fabrication").Logger()),
		Start:      game.LocationRef{System: worldCfg.StartSystem, Area: worldCfg.StartArea},
	}

	var saved *storage.Saved
	if storeCfg.Enabled {
		store, err := storage.Open(storeCfg.Path, log.With().Str("component", "storage").Logger())
		if err != nil {
			log.Warn().Err(err).Msg("saves disabled")
		} else {
			defer store.Close()
			sessCfg.Saves = store
			sv, err := store.LoadLatest()
			switch {
			case err == nil:
				saved = &sv
				sessCfg.Start = sv.At
			case errors.Is(err, storage.ErrNoSave):
			default:
				log.Warn().Err(err).Msg("could not load last save, starting fresh")
			}
		}
	}

	sess := game.NewSession(sessCfg)
	if saved != nil {
		saved.Apply(sess.Mothership())
		log.Info().Str("at", saved.At.String()).Time("saved_at", saved.SavedAt).Msg("resumed expedition")
	}

	g := game.New(sess, game.ClientConfig{Log: &log, Destinations: catalog.Destinations()})
	w, h := g.Size()
	scale := winCfg.Scale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowTitle(winCfg.Title)
	ebiten.SetWindowSize(int(float64(w)*scale), int(float64(h)*scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	log.Info().
		Int("tick", sess.TickCount()).
		Str("outcome", sess.Outcome().String()).
		Int("ore_delivered", sess.Stats().OreDelivered).
		Msg("session ended")
	return err
}
