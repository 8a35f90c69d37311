package game

import "fmt"

const (
	waveEdgeMargin = 40.0
	waveMinOffset  = 20.0
	waveMaxOffset  = 120.0
)

// updateEnemies closes each pirate to just inside its fire range of the
// nearest player unit, then holds and lets auto-fire work.
func (s *Session) updateEnemies(dt float64) {
	for _, e := range s.Enemies {
		if tgt := nearestTarget(e, s.Players); tgt != nil {
			if e.Position().DistTo(tgt.Position()) > e.FireRange*s.cfg.EnemyHoldFraction {
				e.SetTarget(tgt.Position())
			} else {
				e.Mover.Stop()
			}
		}
		e.Mover.Update(dt)
	}
}

// updateWaves counts down to the next pirate wave. Waves only arrive at
// asteroid locations, and an interval of zero disables them.
func (s *Session) updateWaves(dt float64) {
	if s.cfg.EnemySpawnInterval <= 0 {
		return
	}
	s.spawnTimer -= dt
	if s.spawnTimer > 0 {
		return
	}
	s.spawnTimer = s.cfg.EnemySpawnInterval
	if !s.location.WavesAllowed() {
		return
	}
	n := s.SpawnWave(s.cfg.EnemySpawnCount)
	s.stats.WavesSpawned++
	s.Events.Add(s.tick, CatWave, "spawned", fmt.Sprintf("%d pirates", n), float64(n))
	s.log.Info().Int("count", n).Int("enemies", len(s.Enemies)).Msg("pirate wave arrived")
}

// SpawnWave drops count pirate frigates just outside a random screen edge
// each and returns how many were spawned (at least one).
func (s *Session) SpawnWave(count int) int {
	if count < 1 {
		count = 1
	}
	w, h := s.cfg.WorldWidth, s.cfg.WorldHeight
	uniform := func(lo, hi float64) float64 { return lo + s.rng.Float64()*(hi-lo) }
	for i := 0; i < count; i++ {
		var pos Vec2
		switch s.rng.Intn(4) {
		case 0: // top
			pos = Vec2{uniform(waveEdgeMargin, w-waveEdgeMargin), -uniform(waveMinOffset, waveMaxOffset)}
		case 1: // right
			pos = Vec2{w + uniform(waveMinOffset, waveMaxOffset), uniform(waveEdgeMargin, h-waveEdgeMargin)}
		case 2: // bottom
			pos = Vec2{uniform(waveEdgeMargin, w-waveEdgeMargin), h + uniform(waveMinOffset, waveMaxOffset)}
		default: // left
			pos = Vec2{-uniform(waveMinOffset, waveMaxOffset), uniform(waveEdgeMargin, h-waveEdgeMargin)}
		}
		s.Enemies = append(s.Enemies, s.spawnUnit(KindPirateFrigate, pos))
	}
	return count
}
