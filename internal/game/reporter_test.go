package game

import (
	"strings"
	"testing"
)

func TestFleetReporter_SamplesOncePerSecond(t *testing.T) {
	ts := NewTestSim(WithoutWaves(), WithoutEnemies(), WithEnemy(1100, 600))
	if err := ts.RunFor(5); err != nil {
		t.Fatal(err)
	}
	if got := len(ts.Reporter.History()); got != 5 {
		t.Fatalf("expected 5 samples after 5s, got %d", got)
	}
	last := ts.Reporter.Latest()
	if last.Tick != ts.TickCount() {
		t.Fatalf("expected latest sample at tick %d, got %d", ts.TickCount(), last.Tick)
	}
	if last.PlayerHulls != 2 || last.EnemyHulls != 1 {
		t.Fatalf("expected 2 player hulls and 1 pirate, got %d and %d", last.PlayerHulls, last.EnemyHulls)
	}
	if last.MothershipHull != 1 {
		t.Fatalf("expected an untouched mothership, got hull %.2f", last.MothershipHull)
	}
}

func TestFleetReporter_CountsCollectorWork(t *testing.T) {
	ts := NewTestSim(WithoutWaves(), WithoutEnemies(), WithAsteroid(OreM, 0.5, 480, 300))
	slot := -1
	for i, sl := range ts.Mothership().Hangar.Slots() {
		if sl.Kind == KindResourceCollector {
			slot = i
		}
	}
	if !ts.Deploy(slot) {
		t.Fatalf("expected collector slot %d to deploy", slot)
	}
	rc := ts.PlayersOf(KindResourceCollector)[0]
	if !ts.StartMining(rc.ID, ts.Asteroids[0].ID) {
		t.Fatal("expected mining to start")
	}
	if err := ts.RunFor(3); err != nil {
		t.Fatal(err)
	}
	smp := ts.Reporter.Latest()
	if smp.Deployed != 1 || smp.Mining != 1 {
		t.Fatalf("expected 1 deployed collector mining, got deployed=%d mining=%d", smp.Deployed, smp.Mining)
	}
}

func TestFleetReporter_WindowSummary(t *testing.T) {
	r := NewFleetReporter(120)
	if r.WindowSummary() != nil {
		t.Fatal("expected nil summary before any sample")
	}
	r.history = []FleetSample{
		{Tick: 60, PlayerHulls: 4, MothershipHull: 1, OreHeld: 0},
		{Tick: 120, PlayerHulls: 4, EnemyHulls: 2, MothershipHull: 0.8, OreHeld: 75, EnemyRounds: 4, PlayerRounds: 2},
		{Tick: 180, PlayerHulls: 2, EnemyHulls: 1, MothershipHull: 0.6, OreHeld: 150, EnemiesDestroyed: 1, HullsLost: 2, EnemyRounds: 2, PlayerRounds: 2},
		{Tick: 240, PlayerHulls: 3, EnemyHulls: 0, MothershipHull: 0.7, OreHeld: 150, EnemiesDestroyed: 2, HullsLost: 2},
	}
	wr := r.WindowSummary()
	if wr.SampleCount != 3 || wr.FromTick != 120 || wr.ToTick != 240 {
		t.Fatalf("expected 3 samples over 120..240, got %d over %d..%d", wr.SampleCount, wr.FromTick, wr.ToTick)
	}
	if wr.AvgPlayerHulls != 3 {
		t.Fatalf("expected avg fleet 3, got %.2f", wr.AvgPlayerHulls)
	}
	if wr.MinHull != 0.6 {
		t.Fatalf("expected min hull 0.6, got %.2f", wr.MinHull)
	}
	if wr.Kills != 2 || wr.Losses != 2 || wr.OreChange != 75 {
		t.Fatalf("expected deltas kills=2 losses=2 ore=75, got %d %d %d", wr.Kills, wr.Losses, wr.OreChange)
	}
	if p := wr.Pressure(); p != 1.5 {
		t.Fatalf("expected pressure 1.5, got %.2f", p)
	}
	out := wr.Format()
	for _, want := range []string{"T=120..240", "hulls=3.0", "min=60%", "ore_change=+75", "contested"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
}

func TestFleetReporter_PrunesHistory(t *testing.T) {
	r := NewFleetReporter(0)
	ts := NewTestSim(WithoutWaves(), WithoutEnemies())
	for i := 0; i < 150; i++ {
		r.Collect(ts.Session)
	}
	if got := len(r.History()); got != 100 {
		t.Fatalf("expected history capped at 100, got %d", got)
	}
}
