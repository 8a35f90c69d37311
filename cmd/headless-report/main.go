package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/expedition/internal/fabrication"
	"github.com/Garsondee/expedition/internal/game"
	"github.com/rs/zerolog"
)

type runStats struct {
	runIndex int
	seed     int64

	firstWaveTick     int
	firstKillTick     int
	firstLossTick     int
	firstDeliveryTick int
	defeatTick        int

	stats    game.SessionStats
	verdict  game.RunVerdict
	losses   map[string]struct{}
	hangarUp int
	err      error

	windowSummary *game.WindowReport
}

// scenario sets up a session and returns a per-tick script, which may be nil.
type scenario func(seed int64) (*game.TestSim, func(*game.TestSim))

var scenarios = map[string]scenario{
	"mining-raid": scenarioMiningRaid,
	"ambush":      scenarioAmbush,
}

func scenarioNames() string {
	names := make([]string, 0, len(scenarios))
	for n := range scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func main() {
	var runs int
	var seconds float64
	var seedBase int64
	var seedStep int64
	var name string

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.Float64Var(&seconds, "seconds", 180, "simulated seconds per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&name, "scenario", "mining-raid", "scenario name")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	if seconds <= 0 {
		fmt.Println("error: -seconds must be > 0")
		os.Exit(2)
	}
	sc, ok := scenarios[name]
	if !ok {
		fmt.Printf("error: unsupported scenario %q (supported: %s)\n", name, scenarioNames())
		os.Exit(2)
	}

	fmt.Printf("=== Headless Expedition Report ===\n")
	fmt.Printf("scenario=%s runs=%d seconds=%.0f seed_base=%d seed_step=%d\n\n", name, runs, seconds, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	failed := false
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs := runScenario(sc, i+1, seed, seconds)
		all = append(all, rs)
		printRun(rs)
		if rs.err != nil {
			failed = true
		}
	}
	printAggregate(all)
	if failed {
		os.Exit(1)
	}
}

// scenarioMiningRaid starts in an M asteroid field with pirate waves on.
// Every craft launches and collectors mine the rock nearest the mothership.
func scenarioMiningRaid(seed int64) (*game.TestSim, func(*game.TestSim)) {
	ts := game.NewTestSim(
		game.WithSeed(seed),
		game.WithLocation(game.Location{
			LocationRef: game.LocationRef{System: "Report", Area: "Belt"},
			Type:        game.LocationAsteroids,
			Ore:         game.OreM,
		}),
		game.WithFabricator(fabrication.NewManager(zerolog.Nop())),
	)
	launchAll(ts)
	sendCollectorsToNearestRock(ts)
	return ts, func(ts *game.TestSim) {
		// Spend ore on interceptors and keep every slot flying.
		if ms := ts.Mothership(); ms != nil && ms.Inventory.Get(game.OreM) >= 250 {
			ts.Fabricate(game.KindInterceptor)
		}
		if ts.TickCount()%ts.TicksFor(5) == 0 {
			if launchAll(ts) > 0 {
				sendCollectorsToNearestRock(ts)
			}
		}
	}
}

// scenarioAmbush is open space with four pirates closing from the east and
// no waves.
func scenarioAmbush(seed int64) (*game.TestSim, func(*game.TestSim)) {
	ts := game.NewTestSim(
		game.WithSeed(seed),
		game.WithoutWaves(),
		game.WithEnemy(1100, 200),
		game.WithEnemy(1150, 320),
		game.WithEnemy(1100, 440),
		game.WithEnemy(1150, 560),
	)
	launchAll(ts)
	return ts, nil
}

func launchAll(ts *game.TestSim) int {
	ms := ts.Mothership()
	if ms == nil || ms.Hangar == nil {
		return 0
	}
	n := 0
	for i := 0; i < ms.Hangar.Len(); i++ {
		if ts.Deploy(i) {
			n++
		}
	}
	return n
}

func sendCollectorsToNearestRock(ts *game.TestSim) {
	ms := ts.Mothership()
	if ms == nil || len(ts.Asteroids) == 0 {
		return
	}
	best := ts.Asteroids[0]
	for _, a := range ts.Asteroids[1:] {
		if a.Pos.DistSqTo(ms.Position()) < best.Pos.DistSqTo(ms.Position()) {
			best = a
		}
	}
	for _, u := range ts.Players {
		u.Selected = u.Kind == game.KindResourceCollector && !u.Recalling
	}
	ts.CommandMineOrHeal(best.Pos)
	ts.ClearSelection()
}

func runScenario(sc scenario, runIndex int, seed int64, seconds float64) runStats {
	ts, script := sc(seed)
	ticks := ts.TicksFor(seconds)
	var err error
	for i := 0; i < ticks && ts.Outcome() == game.OutcomeRunning; i++ {
		if script != nil {
			script(ts)
		}
		if err = ts.Step(); err != nil {
			break
		}
	}

	entries := ts.Events.Entries()
	losses := map[string]struct{}{}
	for _, e := range entries {
		if e.Category == game.CatCombat && e.Key == "destroyed" && e.Side == "player" {
			losses[e.Unit] = struct{}{}
		}
	}
	hangarUp := 0
	if ms := ts.Mothership(); ms != nil && ms.Hangar != nil {
		hangarUp = ms.Hangar.Len()
	}

	return runStats{
		runIndex:          runIndex,
		seed:              seed,
		firstWaveTick:     firstTick(entries, game.CatWave, "spawned", ""),
		firstKillTick:     firstTick(entries, game.CatCombat, "destroyed", "enemy"),
		firstLossTick:     firstTick(entries, game.CatCombat, "destroyed", "player"),
		firstDeliveryTick: firstTick(entries, game.CatMining, "delivered", ""),
		defeatTick:        firstTick(entries, game.CatOutcome, "defeat", ""),
		stats:             ts.Stats(),
		verdict:           game.JudgeRun(ts.Session),
		losses:            losses,
		hangarUp:          hangarUp,
		err:               err,
		windowSummary:     ts.Reporter.WindowSummary(),
	}
}

// firstTick returns the tick of the first entry matching category and key,
// and side when side is non-empty. -1 when there is none.
func firstTick(entries []game.Event, category, key, side string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if side == "" || e.Side == side {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	if rs.err != nil {
		fmt.Printf("error: %v\n", rs.err)
	}
	fmt.Printf("phase_markers: first_wave=%d first_kill=%d first_loss=%d first_delivery=%d defeat=%d\n",
		rs.firstWaveTick, rs.firstKillTick, rs.firstLossTick, rs.firstDeliveryTick, rs.defeatTick)
	st := rs.stats
	fmt.Printf("combat: pirates_destroyed=%d craft_lost=%d frigates_lost=%d waves=%d\n",
		st.EnemiesDestroyed, st.CraftLost, st.FrigatesLost, st.WavesSpawned)
	fmt.Printf("economy: ore_delivered=%d deliveries=%d fabricated=%d hangar_slots=%d\n",
		st.OreDelivered, st.Deliveries, st.Fabricated, rs.hangarUp)
	fmt.Printf("lost_labels: %s\n", joinSet(rs.losses))
	fmt.Printf("verdict: %s (%s) hull=%.0f%%\n", rs.verdict.Grade, rs.verdict.Description, rs.verdict.HullFraction*100)
	if ws := rs.windowSummary; ws != nil {
		fmt.Printf("window_samples=%d window_tick_range=%d..%d\n", ws.SampleCount, ws.FromTick, ws.ToTick)
		fmt.Printf("window_avg: fleet=%.1f pirates=%.1f deployed=%.1f mining=%.1f hull_min=%.0f%% pressure=%.2f\n",
			ws.AvgPlayerHulls, ws.AvgEnemyHulls, ws.AvgDeployed, ws.AvgMining, ws.MinHull*100, ws.Pressure())
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalKills := 0
	totalLost := 0
	totalOre := 0
	survived := 0
	grades := map[game.RunGrade]int{}

	deliveryTicks := make([]int, 0, len(all))
	lossTicks := make([]int, 0, len(all))
	lostGlobal := map[string]struct{}{}

	for _, rs := range all {
		totalKills += rs.stats.EnemiesDestroyed
		totalLost += rs.stats.CraftLost + rs.stats.FrigatesLost
		totalOre += rs.stats.OreDelivered
		if rs.verdict.Survived {
			survived++
		}
		grades[rs.verdict.Grade]++
		if rs.firstDeliveryTick >= 0 {
			deliveryTicks = append(deliveryTicks, rs.firstDeliveryTick)
		}
		if rs.firstLossTick >= 0 {
			lossTicks = append(lossTicks, rs.firstLossTick)
		}
		for label := range rs.losses {
			lostGlobal[label] = struct{}{}
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d survived=%d (%.0f%%)\n", len(all), survived, pct(survived, len(all)))
	fmt.Printf("avg_per_run: pirates_destroyed=%.1f hulls_lost=%.1f ore_delivered=%.1f\n",
		avg(totalKills, len(all)), avg(totalLost, len(all)), avg(totalOre, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_delivery=%s first_loss=%s\n",
		avgTickString(deliveryTicks), avgTickString(lossTicks))
	fmt.Printf("grades: %s\n", gradeLine(grades))
	fmt.Printf("unique_lost_labels=%d [%s]\n", len(lostGlobal), joinSet(lostGlobal))
}

func gradeLine(counts map[game.RunGrade]int) string {
	parts := make([]string, 0, 4)
	for g := game.GradeLost; g <= game.GradeProspered; g++ {
		parts = append(parts, fmt.Sprintf("%s=%d", g, counts[g]))
	}
	return strings.Join(parts, " ")
}

func pct(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
