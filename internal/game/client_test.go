package game

import (
	"strings"
	"testing"
)

func TestNew_LaysOutPlayfieldAndPanel(t *testing.T) {
	ts := NewTestSim(WithoutWaves())
	g := New(ts.Session, ClientConfig{CopyText: func(string) error { return nil }})
	w, h := g.Size()
	if w != 2*borderWidth+1280+hudPanelWidth || h != 2*borderWidth+720 {
		t.Fatalf("unexpected window %dx%d", w, h)
	}
	if got := g.toWorld(borderWidth+10, borderWidth+20); !got.Eq(V(10, 20), 0) {
		t.Fatalf("expected (10,20), got %+v", got)
	}
	if g.inPlayfield(2, 2) {
		t.Fatal("expected the border to be outside the playfield")
	}
	if len(g.frame.Units) == 0 {
		t.Fatal("expected an initial frame")
	}
}

func TestPanelLines_ShowsHangarAndOre(t *testing.T) {
	ts := NewTestSim(WithoutWaves(), WithLocation(testStation))
	ts.Mothership().Inventory.Add(OreM, 120)
	ts.Deploy(0)
	lines := panelLines(ts.Frame(), 0, []LocationRef{testAsteroidField.LocationRef})
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"PAUSED", "Test/Station (Station)", "M:120", "[1] interceptor", "deployed", "[F1] Test/Field", "no pirate activity"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in panel:\n%s", want, joined)
		}
	}
}

func TestInspectLines_Collector(t *testing.T) {
	rc := NewUnit(3, KindResourceCollector, V(0, 0))
	rc.Collector.MineTarget = 2
	rc.Collector.Fill = 40
	lines := inspectLines(rc)
	if !strings.HasPrefix(lines[0], "RC3") {
		t.Fatalf("expected label first, got %q", lines[0])
	}
	if last := lines[len(lines)-1]; last != "mining 40 / 150" {
		t.Fatalf("expected mining line, got %q", last)
	}
}

func TestInspector_FollowsSingleSelection(t *testing.T) {
	ts := NewTestSim(WithoutWaves())
	var in Inspector
	ms := ts.Mothership()
	ms.Selected = true
	in.pick(ts.Session)
	if in.unit != ms.ID {
		t.Fatalf("expected inspector on the mothership, got %d", in.unit)
	}
	for _, u := range ts.Players {
		u.Selected = true
	}
	in.pick(ts.Session)
	if in.unit != 0 {
		t.Fatal("expected a group selection to close the inspector")
	}
}

func TestFleetReport_ContainsUnitsAndEvents(t *testing.T) {
	ts := NewTestSim(WithoutWaves(), WithEnemy(1100, 600))
	ts.Deploy(2)
	if err := ts.RunTicks(3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := FleetReport(ts.Session, 0)
	for _, want := range []string{"seed=1 tick=3", "== fleet (3) ==", "== pirates (1) ==", "MS1", "== hangar ==", "deployed"} {
		if !strings.Contains(r, want) {
			t.Fatalf("expected %q in report:\n%s", want, r)
		}
	}
}

func TestJudgeRun_Grades(t *testing.T) {
	ts := NewTestSim(WithoutWaves())
	if v := JudgeRun(ts.Session); v.Grade != GradeHeld || !v.Survived {
		t.Fatalf("expected an untouched run to be held, got %+v", v)
	}
	ts.stats.OreDelivered = 75
	if v := JudgeRun(ts.Session); v.Grade != GradeProspered {
		t.Fatalf("expected prospered with ore and no losses, got %s", v.Grade)
	}
	ts.Mothership().Health = 100
	if v := JudgeRun(ts.Session); v.Grade != GradeCrippled {
		t.Fatalf("expected crippled at 10%% hull, got %s", v.Grade)
	}
	ts.Mothership().Health = 0
	if err := ts.RunTicks(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v := JudgeRun(ts.Session); v.Grade != GradeLost || v.Survived {
		t.Fatalf("expected lost, got %+v", v)
	}
}

func TestCommsLine_Truncates(t *testing.T) {
	e := Event{Tick: 3600, Unit: "--", Key: "entered", Value: strings.Repeat("x", 80)}
	l := commsLine(e)
	if len(l) != 40 || !strings.HasPrefix(l, "01:00  entered") {
		t.Fatalf("unexpected comms line %q", l)
	}
}
