package game

import (
	"math"
	"testing"
)

func TestMoverUpdate_NoOvershoot(t *testing.T) {
	m := NewMover(V(0, 0), 100, 360)
	m.SetTarget(V(10, 0))
	m.Update(1) // could travel 100px
	if m.Pos != V(10, 0) {
		t.Fatalf("expected to stop on target, got %+v", m.Pos)
	}
}

func TestMoverUpdate_CappedSpeed(t *testing.T) {
	m := NewMover(V(0, 0), 50, 360)
	m.SetTarget(V(1000, 0))
	m.Update(0.5)
	if math.Abs(m.Pos.X-25) > 1e-9 {
		t.Fatalf("expected 25px after 0.5s at 50px/s, got %.4f", m.Pos.X)
	}
}

func TestMoverUpdate_TurnRateLimited(t *testing.T) {
	m := NewMover(V(0, 0), 10, 90) // 90 deg/s
	m.SetTarget(V(0, 100))          // straight "down", +90 degrees
	m.Update(0.5)
	want := math.Pi / 4
	if math.Abs(m.Facing-want) > 1e-9 {
		t.Fatalf("expected facing %.4f after half a second, got %.4f", want, m.Facing)
	}
	m.Update(1)
	if math.Abs(m.Facing-math.Pi/2) > 1e-9 {
		t.Fatalf("expected facing to settle on %.4f, got %.4f", math.Pi/2, m.Facing)
	}
}

func TestMoverSetTarget_NoMotionSideEffect(t *testing.T) {
	m := NewMover(V(5, 5), 100, 90)
	m.SetTarget(V(50, 50))
	m.SetTarget(V(50, 50))
	if m.Pos != V(5, 5) {
		t.Fatalf("expected SetTarget not to move, got %+v", m.Pos)
	}
}

func TestSeparateRotated_PushesApartSymmetrically(t *testing.T) {
	a := NewUnit(1, KindInterceptor, V(100, 100))
	b := NewUnit(2, KindInterceptor, V(110, 100))
	if !SeparateRotated(a, b) {
		t.Fatal("expected overlapping interceptors to separate")
	}
	moveA := 100 - a.Position().X
	moveB := b.Position().X - 110
	if math.Abs(moveA-moveB) > 1e-9 || moveA <= 0 {
		t.Fatalf("expected equal and opposite pushes, got %.3f and %.3f", moveA, moveB)
	}
	if gap := b.Position().X - a.Position().X; math.Abs(gap-a.Size.X) > 1e-9 {
		t.Fatalf("expected centres one hull length apart, got %.3f", gap)
	}
	if SeparateRotated(a, b) {
		t.Fatal("expected no further push once apart")
	}
}

func TestSeparateRotated_StationNeverMoves(t *testing.T) {
	st := NewUnit(1, KindSpaceStation, V(0, 0))
	u := NewUnit(2, KindFrigate, V(50, 0))
	SeparateRotated(st, u)
	if st.Position() != V(0, 0) {
		t.Fatalf("expected station fixed, got %+v", st.Position())
	}
	if u.Position().X <= 50 {
		t.Fatalf("expected frigate pushed out, got %+v", u.Position())
	}
}

func TestResolveSeparation_BigHullsNotJitteredByLightCraft(t *testing.T) {
	ms := NewUnit(1, KindExpeditionShip, V(400, 300))
	ic := NewUnit(2, KindInterceptor, V(420, 300))
	ResolveSeparation([]*Unit{ms, ic}, nil, 3)
	if ms.Position() != V(400, 300) {
		t.Fatalf("expected mothership unmoved, got %+v", ms.Position())
	}
	if ic.Position().X <= 420 {
		t.Fatalf("expected interceptor pushed clear, got %+v", ic.Position())
	}
}

func TestResolveSeparation_RecallingCraftPassesThroughBigHulls(t *testing.T) {
	ms := NewUnit(1, KindExpeditionShip, V(400, 300))
	ic := NewUnit(2, KindInterceptor, V(420, 300))
	ic.Recalling = true
	ResolveSeparation([]*Unit{ms, ic}, nil, 3)
	if ic.Position() != V(420, 300) {
		t.Fatalf("expected recalling interceptor left alone, got %+v", ic.Position())
	}
}
