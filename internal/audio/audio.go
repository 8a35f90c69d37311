// Package audio voices game events through the system speaker. It plays one
// clip at a time and drops events that arrive while a clip is playing.
package audio

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Garsondee/expedition/internal/game"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/rs/zerolog"
)

// Options configures the player.
type Options struct {
	Enabled    bool
	SoundsDir  string
	Volume     float64 // log2 gain; 0 is unity, -1 is half
	SampleRate int
}

// output is where finished streamers go. The speaker in production, a
// recorder in tests.
type output interface {
	Play(s beep.Streamer)
}

type speakerOutput struct{}

func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }

// Player implements game.Notifier.
type Player struct {
	log    zerolog.Logger
	out    output
	rate   beep.SampleRate
	volume float64
	silent bool

	mu      sync.Mutex
	busy    bool
	clips   map[game.SoundEvent][]*beep.Buffer
	rng     *rand.Rand
	played  int
	dropped int
}

// New opens the speaker and loads clips from opts.SoundsDir. Any failure
// leaves a silent player; audio never stops the game.
func New(opts Options, log zerolog.Logger) *Player {
	if opts.SampleRate <= 0 {
		opts.SampleRate = 44100
	}
	p := newPlayer(opts, log, speakerOutput{})
	if !opts.Enabled {
		p.silent = true
		log.Info().Msg("audio disabled")
		return p
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		p.silent = true
		log.Warn().Err(err).Msg("speaker unavailable, audio muted")
		return p
	}
	p.Load(opts.SoundsDir)
	return p
}

func newPlayer(opts Options, log zerolog.Logger, out output) *Player {
	return &Player{
		log:    log,
		out:    out,
		rate:   beep.SampleRate(opts.SampleRate),
		volume: opts.Volume,
		clips:  make(map[game.SoundEvent][]*beep.Buffer),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- clip variety only
	}
}

// Silent reports whether the player has been muted.
func (p *Player) Silent() bool { return p.silent }

// Load reads every WAV under dir/<event>/ into memory. Events without clips
// fall back to a synthesized blip.
func (p *Player) Load(dir string) {
	loaded := 0
	for _, ev := range game.AllSoundEvents() {
		group := filepath.Join(dir, ev.String())
		entries, err := os.ReadDir(group)
		if err != nil {
			continue
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			buf, err := p.loadWAV(filepath.Join(group, name))
			if err != nil {
				p.log.Warn().Err(err).Str("file", name).Str("group", ev.String()).Msg("skipping sound")
				continue
			}
			p.mu.Lock()
			p.clips[ev] = append(p.clips[ev], buf)
			p.mu.Unlock()
			loaded++
		}
	}
	p.log.Info().Int("clips", loaded).Str("dir", dir).Msg("sounds loaded")
}

func (p *Player) loadWAV(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer s.Close()

	var src beep.Streamer = s
	if format.SampleRate != p.rate {
		src = beep.Resample(4, format.SampleRate, p.rate, s)
		format.SampleRate = p.rate
	}
	buf := beep.NewBuffer(format)
	buf.Append(src)
	return buf, nil
}

// Clips returns the number of loaded clips for ev.
func (p *Player) Clips(ev game.SoundEvent) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.clips[ev])
}

// Notify starts a clip for ev unless one is already playing.
func (p *Player) Notify(ev game.SoundEvent) {
	if p.silent {
		return
	}
	p.mu.Lock()
	if p.busy {
		p.dropped++
		p.mu.Unlock()
		return
	}
	p.busy = true
	p.played++
	src := p.streamerFor(ev)
	p.mu.Unlock()

	p.out.Play(beep.Seq(p.withVolume(src), beep.Callback(p.finished)))
}

func (p *Player) finished() {
	p.mu.Lock()
	p.busy = false
	p.mu.Unlock()
}

// streamerFor picks a random clip for ev. Callers hold p.mu.
func (p *Player) streamerFor(ev game.SoundEvent) beep.Streamer {
	clips := p.clips[ev]
	if len(clips) == 0 {
		return tone(p.rate, toneFor(ev), 120*time.Millisecond)
	}
	b := clips[p.rng.Intn(len(clips))]
	return b.Streamer(0, b.Len())
}

func (p *Player) withVolume(s beep.Streamer) beep.Streamer {
	if p.volume == 0 {
		return s
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: p.volume}
}

// Busy reports whether a clip is playing.
func (p *Player) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.busy
}

// Stats returns how many events were played and dropped.
func (p *Player) Stats() (played, dropped int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played, p.dropped
}

// toneFor spreads the events over two octaves so fallbacks are tellable apart.
func toneFor(ev game.SoundEvent) float64 {
	return 220 * math.Pow(2, float64(ev)/7)
}

// tone is a sine blip with a linear fade-out.
func tone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	total := sr.N(d)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			env := 1 - float64(pos)/float64(total)
			v := 0.25 * env * math.Sin(2*math.Pi*freq*float64(pos)/float64(sr))
			samples[i][0], samples[i][1] = v, v
			pos++
			n++
		}
		return n, true
	})
}
