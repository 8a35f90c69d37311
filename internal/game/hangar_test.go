package game

import (
	"math/rand"
	"testing"
)

func TestHangar_DeployRequiresDockedSlot(t *testing.T) {
	h := NewHangar(KindInterceptor)
	if !h.MarkDeployed(0, 10) {
		t.Fatal("expected first deploy to succeed")
	}
	if h.MarkDeployed(0, 11) {
		t.Fatal("expected deploy of an already deployed slot to be rejected")
	}
	if s, _ := h.Slot(0); s.Unit != 10 {
		t.Fatalf("expected slot to keep unit 10, got %d", s.Unit)
	}
	if h.MarkDeployed(5, 12) {
		t.Fatal("expected deploy of a missing slot to be rejected")
	}
}

func TestHangar_RecallAndDeathFlipToDocked(t *testing.T) {
	h := NewHangar(KindInterceptor, KindBomber)
	h.MarkDeployed(0, 1)
	h.MarkDeployed(1, 2)
	if !h.OnRecalled(0) {
		t.Fatal("expected recall of deployed slot to succeed")
	}
	if h.OnRecalled(0) {
		t.Fatal("expected second recall to be rejected")
	}
	if !h.OnDestroyed(1) {
		t.Fatal("expected death of deployed slot to succeed")
	}
	if s, _ := h.Slot(1); s.State != SlotDocked || s.Losses != 1 || s.Unit != 0 {
		t.Fatalf("expected docked slot with one loss and no unit, got %+v", s)
	}
}

func TestHangar_LightCraftOnly(t *testing.T) {
	h := NewHangar()
	if h.AddSlot(KindFrigate) != -1 {
		t.Fatal("expected frigate slot to be rejected")
	}
	if h.AddSlot(KindResourceCollector) != 0 {
		t.Fatal("expected collector slot at index 0")
	}
}

// Every operation either flips exactly one slot or changes nothing, and the
// deployed count always matches the linked units.
func TestHangar_SlotInvariantUnderRandomEvents(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	h := NewHangar(DefaultHangarLoadout()...)
	next := UnitID(1)
	for i := 0; i < 2000; i++ {
		slot := rng.Intn(h.Len() + 1)
		before, _ := h.Slot(slot)
		var ok bool
		switch rng.Intn(3) {
		case 0:
			ok = h.MarkDeployed(slot, next)
			next++
		case 1:
			ok = h.OnRecalled(slot)
		default:
			ok = h.OnDestroyed(slot)
		}
		after, _ := h.Slot(slot)
		if ok && before.State == after.State {
			t.Fatalf("step %d: successful op on slot %d left state %s", i, slot, after.State)
		}
		if !ok && before.State != after.State {
			t.Fatalf("step %d: rejected op changed slot %d from %s to %s", i, slot, before.State, after.State)
		}
		if n := len(h.DeployedUnits()); n != h.DeployedCount() {
			t.Fatalf("step %d: %d deployed slots but %d linked units", i, h.DeployedCount(), n)
		}
		for _, id := range h.DeployedUnits() {
			if id == 0 {
				t.Fatalf("step %d: deployed slot without a unit", i)
			}
		}
	}
}
