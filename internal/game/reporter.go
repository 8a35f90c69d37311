package game

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-state reports (~10s at 60TPS).
const reportWindowTicks = 600

// reportEveryTicks is how often the harness samples the fleet (1s at 60TPS).
const reportEveryTicks = 60

// --- Snapshot types ---

// FleetSample captures the fleet and the pirates at one tick.
type FleetSample struct {
	Tick int

	PlayerHulls int
	EnemyHulls  int
	Deployed    int // light craft out of the hangar

	Mining    int // collectors with a mining target or cargo
	Returning int
	Healing   int

	MothershipHull  float64 // fraction
	MothershipArmor float64 // fraction
	PlayerInjured   int     // hull below max

	OreHeld          int
	PlayerRounds     int
	EnemyRounds      int
	EnemiesDestroyed int
	HullsLost        int
}

// FleetReporter keeps periodic samples and summarises the recent window.
type FleetReporter struct {
	windowTicks int
	history     []FleetSample
}

// NewFleetReporter creates a reporter. windowTicks <= 0 uses the default.
func NewFleetReporter(windowTicks int) *FleetReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &FleetReporter{windowTicks: windowTicks}
}

// Collect samples the session. Call it periodically (e.g. every 60 ticks / 1s).
func (r *FleetReporter) Collect(s *Session) {
	st := s.Stats()
	smp := FleetSample{
		Tick:             s.TickCount(),
		EnemiesDestroyed: st.EnemiesDestroyed,
		HullsLost:        st.CraftLost + st.FrigatesLost,
	}
	for _, u := range s.Players {
		if !u.Alive() {
			continue
		}
		smp.PlayerHulls++
		if u.Health < u.MaxHealth {
			smp.PlayerInjured++
		}
		if u.HangarSlot >= 0 {
			smp.Deployed++
		}
		if c := u.Collector; c != nil {
			switch {
			case c.HealTarget != 0:
				smp.Healing++
			case c.Returning:
				smp.Returning++
			case u.IsMining():
				smp.Mining++
			}
		}
	}
	for _, e := range s.Enemies {
		if e.Alive() {
			smp.EnemyHulls++
		}
	}
	if ms := s.Mothership(); ms != nil {
		smp.MothershipHull = ms.HealthFraction()
		smp.MothershipArmor = ms.ArmorFraction()
		if ms.Inventory != nil {
			smp.OreHeld = ms.Inventory.Total()
		}
	}
	for _, p := range s.Combat().Projectiles {
		if p.Enemy {
			smp.EnemyRounds++
		} else {
			smp.PlayerRounds++
		}
	}

	r.history = append(r.history, smp)

	// Prune old history beyond 2x window to prevent unbounded growth.
	maxKeep := r.windowTicks / reportEveryTicks * 2
	if maxKeep < 100 {
		maxKeep = 100
	}
	if len(r.history) > maxKeep {
		r.history = r.history[len(r.history)-maxKeep:]
	}
}

// Latest returns the most recent sample, or nil.
func (r *FleetReporter) Latest() *FleetSample {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns every retained sample, oldest first.
func (r *FleetReporter) History() []FleetSample { return r.history }

// WindowSummary averages the samples inside the recent window.
func (r *FleetReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}

	latest := r.history[len(r.history)-1]
	cutoff := latest.Tick - r.windowTicks
	var window []FleetSample
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}

	n := float64(len(window))
	oldest := window[len(window)-1]
	wr := &WindowReport{
		FromTick:    oldest.Tick,
		ToTick:      latest.Tick,
		SampleCount: len(window),
		MinHull:     1,
		Kills:       latest.EnemiesDestroyed - oldest.EnemiesDestroyed,
		Losses:      latest.HullsLost - oldest.HullsLost,
		OreChange:   latest.OreHeld - oldest.OreHeld,
	}
	for _, smp := range window {
		wr.AvgPlayerHulls += float64(smp.PlayerHulls)
		wr.AvgEnemyHulls += float64(smp.EnemyHulls)
		wr.AvgDeployed += float64(smp.Deployed)
		wr.AvgMining += float64(smp.Mining)
		wr.AvgReturning += float64(smp.Returning)
		wr.AvgHealing += float64(smp.Healing)
		wr.AvgInjured += float64(smp.PlayerInjured)
		wr.AvgHull += smp.MothershipHull
		wr.AvgArmor += smp.MothershipArmor
		wr.AvgEnemyRounds += float64(smp.EnemyRounds)
		wr.AvgPlayerRounds += float64(smp.PlayerRounds)
		if smp.MothershipHull < wr.MinHull {
			wr.MinHull = smp.MothershipHull
		}
	}
	wr.AvgPlayerHulls /= n
	wr.AvgEnemyHulls /= n
	wr.AvgDeployed /= n
	wr.AvgMining /= n
	wr.AvgReturning /= n
	wr.AvgHealing /= n
	wr.AvgInjured /= n
	wr.AvgHull /= n
	wr.AvgArmor /= n
	wr.AvgEnemyRounds /= n
	wr.AvgPlayerRounds /= n
	return wr
}

// WindowReport is an aggregated summary over a time window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	AvgPlayerHulls, AvgEnemyHulls   float64
	AvgDeployed, AvgInjured         float64
	AvgMining, AvgReturning         float64
	AvgHealing                      float64
	AvgHull, AvgArmor, MinHull      float64
	AvgPlayerRounds, AvgEnemyRounds float64

	// Deltas across the window.
	Kills, Losses, OreChange int
}

// Pressure is enemy rounds in flight per player round, 0 when nobody fires.
func (wr *WindowReport) Pressure() float64 {
	if wr.AvgPlayerRounds == 0 {
		if wr.AvgEnemyRounds > 0 {
			return wr.AvgEnemyRounds
		}
		return 0
	}
	return wr.AvgEnemyRounds / wr.AvgPlayerRounds
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Fleet Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)

	sb.WriteString("\n--- Strength ---\n")
	fmt.Fprintf(&sb, "  fleet:   hulls=%.1f  deployed=%.1f  injured=%.1f  lost=%d\n",
		wr.AvgPlayerHulls, wr.AvgDeployed, wr.AvgInjured, wr.Losses)
	fmt.Fprintf(&sb, "  pirates: hulls=%.1f  destroyed=%d\n", wr.AvgEnemyHulls, wr.Kills)

	sb.WriteString("\n--- Mothership ---\n")
	fmt.Fprintf(&sb, "  hull avg=%.0f%% min=%.0f%%  armour avg=%.0f%%\n",
		wr.AvgHull*100, wr.MinHull*100, wr.AvgArmor*100)

	sb.WriteString("\n--- Collectors ---\n")
	fmt.Fprintf(&sb, "  mining=%.1f  returning=%.1f  healing=%.1f  ore_change=%+d\n",
		wr.AvgMining, wr.AvgReturning, wr.AvgHealing, wr.OreChange)

	sb.WriteString("\n--- Fire ---\n")
	fmt.Fprintf(&sb, "  rounds in flight: fleet=%.1f  pirates=%.1f  (%s)\n",
		wr.AvgPlayerRounds, wr.AvgEnemyRounds, pressureLabel(wr.Pressure()))
	return sb.String()
}

func pressureLabel(p float64) string {
	switch {
	case p == 0:
		return "quiet"
	case p < 0.5:
		return "fleet dominant"
	case p <= 1.5:
		return "contested"
	default:
		return "under pressure"
	}
}
