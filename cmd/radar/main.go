package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Garsondee/expedition/internal/config"
	"github.com/Garsondee/expedition/internal/fabrication"
	"github.com/Garsondee/expedition/internal/game"
	"github.com/Garsondee/expedition/internal/logging"
	"github.com/Garsondee/expedition/internal/radar"
	"github.com/Garsondee/expedition/internal/world"
	"github.com/gdamore/tcell/v2"
)

const renderRate = 30

func main() {
	var configDir string
	var logPath string
	flag.StringVar(&configDir, "config", ".", "directory holding "+config.FileName)
	flag.StringVar(&logPath, "log", "radar.log", "log file; the terminal is busy drawing")
	flag.Parse()

	if err := run(configDir, logPath); err != nil {
		fmt.Fprintf(os.Stderr, "radar: %v\n", err)
		os.Exit(1)
	}
}

func run(configDir, logPath string) error {
	if err := config.Load(configDir); err != nil {
		return err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()
	log := logging.Setup(config.GetString("logLevel"), f, nil)

	tuning, err := config.Tuning()
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

	sess := game.NewSession(game.SessionConfig{
		Tuning:     tuning,
		Log:        &log,
		World:      catalog,
		Fabricator: fabrication.NewManager(log),
		Start:      game.LocationRef{System: worldCfg.StartSystem, Area: worldCfg.StartArea},
	})

	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer s.Fini()

	keys := make(chan *tcell.EventKey, 16)
	go func() {
		for {
			switch ev := s.PollEvent().(type) {
			case nil:
				close(keys)
				return
			case *tcell.EventResize:
				s.Sync()
			case *tcell.EventKey:
				keys <- ev
			}
		}
	}()

	r := radar.NewRenderer(s)
	ctl := radar.NewControls(catalog.Destinations())
	simTicker := time.NewTicker(time.Duration(float64(time.Second) * game.DefaultDt))
	defer simTicker.Stop()
	renderTicker := time.NewTicker(time.Second / renderRate)
	defer renderTicker.Stop()

	accum := 0.0
	for {
		select {
		case ev, ok := <-keys:
			if !ok {
				return nil
			}
			quit, err := ctl.HandleKey(sess, ev.Key(), ev.Rune())
			if err != nil {
				log.Error().Err(err).Msg("jump failed")
				return err
			}
			if quit {
				return nil
			}
		case <-simTicker.C:
			accum += ctl.Speed
			for accum >= 1 {
				accum--
				if err := sess.Tick(game.DefaultDt); err != nil {
					log.Error().Err(err).Int("tick", sess.TickCount()).Msg("simulation halted")
					return err
				}
			}
		case <-renderTicker.C:
			r.Draw(sess.Frame(), sess.Events.Recent(8), fmt.Sprintf("speed %gx  [q]uit [j]ump", ctl.Speed))
		}
	}
}
