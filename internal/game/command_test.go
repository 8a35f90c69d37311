package game

import (
	"testing"
)

func TestSelectInRect_ExactlyUnitsInside(t *testing.T) {
	ts := NewTestSim(
		WithoutWaves(),
		WithPlayerUnit(KindInterceptor, 100, 100),
		WithPlayerUnit(KindInterceptor, 150, 120),
		WithPlayerUnit(KindInterceptor, 900, 600),
	)
	r := RectFromPoints(V(90, 90), V(160, 130))
	if !ts.SelectInRect(r) {
		t.Fatal("expected selection rectangle to be accepted")
	}
	for _, u := range ts.Players {
		want := r.Contains(u.Position())
		if u.Selected != want {
			t.Fatalf("%s at %+v: selected=%v, want %v", u.Label, u.Position(), u.Selected, want)
		}
	}
	if n := len(ts.Selected()); n != 2 {
		t.Fatalf("expected 2 selected, got %d", n)
	}
}

func TestSelectInRect_TooSmallKeepsSelection(t *testing.T) {
	ts := NewTestSim(WithoutWaves(), WithPlayerUnit(KindInterceptor, 100, 100))
	ms := ts.Mothership()
	ms.Selected = true
	for _, r := range []Rect{
		{X: 95, Y: 95, W: 6, H: 50}, // width not strictly greater
		{X: 95, Y: 95, W: 50, H: 3}, // height too small
		{X: 95, Y: 95, W: 0, H: 0},  // bare click
	} {
		if ts.SelectInRect(r) {
			t.Fatalf("expected %+v to be ignored", r)
		}
		if !ms.Selected {
			t.Fatalf("expected prior selection kept after %+v", r)
		}
		for _, u := range ts.PlayersOf(KindInterceptor) {
			if u.Selected {
				t.Fatalf("expected %s to stay unselected after %+v", u.Label, r)
			}
		}
	}
}

func TestClickSelect_SoleSelection(t *testing.T) {
	ts := NewTestSim(WithoutWaves(), WithPlayerUnit(KindInterceptor, 900, 600))
	ms := ts.Mothership()
	ic := ts.PlayersOf(KindInterceptor)[0]
	ms.Selected = true
	if !ts.ClickSelect(ic.Position()) {
		t.Fatal("expected click on interceptor to hit")
	}
	if !ic.Selected || ms.Selected {
		t.Fatal("expected the clicked unit to become the only selection")
	}
	ts.ClickSelect(V(1200, 50))
	if len(ts.Selected()) != 0 {
		t.Fatal("expected click on empty space to clear selection")
	}
}

func TestDrag_ShortMovementIsAClick(t *testing.T) {
	ts := NewTestSim(WithoutWaves())
	ms := ts.Mothership()
	ts.BeginDrag(ms.Position())
	ts.UpdateDrag(ms.Position().Add(V(2, 1)))
	if _, dragging := ts.DragRect(); !dragging {
		t.Fatal("expected an active drag")
	}
	ts.EndDrag(ms.Position().Add(V(2, 1)))
	if !ms.Selected {
		t.Fatal("expected short drag to act as a click on the mothership")
	}
	if _, dragging := ts.DragRect(); dragging {
		t.Fatal("expected drag to end")
	}
}

func TestGroupMove_KeepsFormationOffsets(t *testing.T) {
	ts := NewTestSim(
		WithoutWaves(),
		WithPlayerUnit(KindInterceptor, 100, 100),
		WithPlayerUnit(KindInterceptor, 160, 100),
		WithPlayerUnit(KindBomber, 130, 160),
	)
	var group []*Unit
	var pts []Vec2
	for _, u := range ts.Players {
		if u.Kind == KindInterceptor || u.Kind == KindBomber {
			u.Selected = true
			group = append(group, u)
			pts = append(pts, u.Position())
		}
	}
	c := Centroid(pts)
	target := V(800, 500)
	if !ts.GroupMove(target) {
		t.Fatal("expected move order to be accepted")
	}
	for _, u := range group {
		want := target.Add(u.Position().Sub(c))
		if !u.Mover.Target.Eq(want, 1e-9) {
			t.Fatalf("%s: expected target %+v, got %+v", u.Label, want, u.Mover.Target)
		}
	}
	if ts.Sounds.Count(SoundMove) != 1 {
		t.Fatalf("expected one move sound, got %d", ts.Sounds.Count(SoundMove))
	}
}

func TestGroupMove_IgnoresRecallingAndDumpsCollectorCargo(t *testing.T) {
	ts := NewTestSim(
		WithoutWaves(),
		WithPlayerUnit(KindResourceCollector, 600, 300),
		WithAsteroid(OreM, 0.5, 620, 300),
	)
	rc := ts.PlayersOf(KindResourceCollector)[0]
	rc.StartMining(ts.Asteroids[0])
	if err := ts.RunFor(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rc.Collector.Fill <= 0 {
		t.Fatal("expected some ore in the hold before the move order")
	}
	rc.Selected = true
	if !ts.GroupMove(V(900, 600)) {
		t.Fatal("expected move order accepted")
	}
	if rc.IsMining() || rc.Collector.Fill != 0 {
		t.Fatalf("expected hold dumped and mining cleared, got fill %.2f", rc.Collector.Fill)
	}

	rc.Recalling = true
	if ts.GroupMove(V(100, 100)) {
		t.Fatal("expected no units to move when the only selected unit is recalling")
	}
}

func TestGroupMove_NothingSelected(t *testing.T) {
	ts := NewTestSim(WithoutWaves())
	if ts.GroupMove(V(10, 10)) {
		t.Fatal("expected move with empty selection to be rejected")
	}
	if ts.Sounds.Count(SoundMove) != 0 {
		t.Fatal("expected no move sound on a rejected order")
	}
}

func TestCommandMineOrHeal_AsteroidThenShip(t *testing.T) {
	ts := NewTestSim(
		WithoutWaves(),
		WithPlayerUnit(KindResourceCollector, 600, 300),
		WithPlayerUnit(KindResourceCollector, 640, 300),
		WithAsteroid(OreA, 0.5, 700, 500),
	)
	rcs := ts.PlayersOf(KindResourceCollector)
	if ts.CommandMineOrHeal(V(700, 500)) {
		t.Fatal("expected click to pass through with no collectors selected")
	}
	for _, rc := range rcs {
		rc.Selected = true
	}
	if !ts.CommandMineOrHeal(V(705, 505)) {
		t.Fatal("expected asteroid click to be consumed")
	}
	for _, rc := range rcs {
		if rc.Collector.MineTarget != ts.Asteroids[0].ID {
			t.Fatalf("%s: expected mining target set", rc.Label)
		}
	}
	fr := ts.PlayersOf(KindFrigate)[0]
	if !ts.CommandMineOrHeal(fr.Position()) {
		t.Fatal("expected frigate click to start repairs")
	}
	for _, rc := range rcs {
		if !rc.IsHealing() || rc.IsMining() {
			t.Fatalf("%s: expected healing only", rc.Label)
		}
	}
	if ts.CommandMineOrHeal(V(1250, 20)) {
		t.Fatal("expected click on empty space not to be consumed")
	}
}

func TestDeploy_RejectsOccupiedSlot(t *testing.T) {
	ts := NewTestSim(WithoutWaves())
	n := len(ts.Players)
	if !ts.Deploy(0) {
		t.Fatal("expected deploy of docked slot 0")
	}
	if len(ts.Players) != n+1 {
		t.Fatalf("expected fleet to grow by one, got %d", len(ts.Players))
	}
	if ts.Deploy(0) {
		t.Fatal("expected second deploy of slot 0 to fail")
	}
	if ts.Deploy(99) {
		t.Fatal("expected deploy of a missing slot to fail")
	}
	if len(ts.Players) != n+1 {
		t.Fatalf("expected rejected deploys to leave the fleet alone, got %d", len(ts.Players))
	}
}

func TestRecall_DocksAndFreesSlot(t *testing.T) {
	ts := NewTestSim(WithoutWaves())
	ts.Deploy(1)
	ms := ts.Mothership()
	hs, _ := ms.Hangar.Slot(1)
	craft := ts.UnitByID(hs.Unit)
	craft.Selected = true
	craft.SetTarget(V(1000, 600))
	if err := ts.RunFor(3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ts.Recall(1) {
		t.Fatal("expected recall to be accepted")
	}
	if craft.Selected {
		t.Fatal("expected recall to clear selection")
	}
	if ts.Recall(1) {
		t.Fatal("expected a second recall to be rejected")
	}
	tick, err := ts.RunUntil(func(ts *TestSim) bool {
		s, _ := ts.Mothership().Hangar.Slot(1)
		return s.State == SlotDocked
	}, 60*30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tick < 0 {
		t.Fatalf("expected craft to dock\n%s", ts.Summary())
	}
	if ts.UnitByID(craft.ID) != nil {
		t.Fatal("expected docked craft removed from the fleet")
	}
	if ts.Sounds.Count(SoundShipDocking) != 1 {
		t.Fatalf("expected one docking sound, got %d", ts.Sounds.Count(SoundShipDocking))
	}
}

func TestToggleSlot_DeploysThenRecalls(t *testing.T) {
	ts := NewTestSim(WithoutWaves())
	if !ts.ToggleSlot(2) {
		t.Fatal("expected toggle to deploy")
	}
	if s, _ := ts.Mothership().Hangar.Slot(2); s.State != SlotDeployed {
		t.Fatalf("expected slot deployed, got %s", s.State)
	}
	if !ts.ToggleSlot(2) {
		t.Fatal("expected toggle to recall")
	}
	s, _ := ts.Mothership().Hangar.Slot(2)
	if u := ts.UnitByID(s.Unit); u == nil || !u.Recalling {
		t.Fatal("expected deployed craft to be recalling")
	}
}
