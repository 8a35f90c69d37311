package game

// SlotState is the lifecycle state of one hangar slot.
type SlotState int

const (
	SlotDocked SlotState = iota
	SlotDeployed
)

func (s SlotState) String() string {
	if s == SlotDeployed {
		return "deployed"
	}
	return "docked"
}

// HangarSlot holds one light craft. Unit is the live craft while Deployed.
type HangarSlot struct {
	Kind   UnitKind
	State  SlotState
	Unit   UnitID
	Losses int
}

// Hangar tracks which light craft are docked in the mothership and which
// are out in the world. It never owns units; Unit is only a lookup key
// into the player fleet.
type Hangar struct {
	slots []HangarSlot
}

// NewHangar builds a hangar with one docked slot per kind.
func NewHangar(kinds ...UnitKind) *Hangar {
	h := &Hangar{}
	for _, k := range kinds {
		h.AddSlot(k)
	}
	return h
}

// DefaultHangarLoadout is three interceptors, one collector and one bomber.
func DefaultHangarLoadout() []UnitKind {
	return []UnitKind{
		KindInterceptor, KindInterceptor, KindInterceptor,
		KindResourceCollector,
		KindBomber,
	}
}

// AddSlot appends a docked slot and returns its index. Only light craft
// can be hangared.
func (h *Hangar) AddSlot(kind UnitKind) int {
	if !kind.IsLightCraft() {
		return -1
	}
	h.slots = append(h.slots, HangarSlot{Kind: kind})
	return len(h.slots) - 1
}

func (h *Hangar) Len() int { return len(h.slots) }

// Slot returns a copy of slot i.
func (h *Hangar) Slot(i int) (HangarSlot, bool) {
	if i < 0 || i >= len(h.slots) {
		return HangarSlot{}, false
	}
	return h.slots[i], true
}

// Slots returns a copy of every slot.
func (h *Hangar) Slots() []HangarSlot {
	out := make([]HangarSlot, len(h.slots))
	copy(out, h.slots)
	return out
}

// CanDeploy reports whether slot i exists and is docked.
func (h *Hangar) CanDeploy(i int) bool {
	s, ok := h.Slot(i)
	return ok && s.State == SlotDocked
}

// MarkDeployed flips slot i Docked→Deployed and links the live craft.
func (h *Hangar) MarkDeployed(i int, id UnitID) bool {
	if !h.CanDeploy(i) || id == 0 {
		return false
	}
	h.slots[i].State = SlotDeployed
	h.slots[i].Unit = id
	return true
}

// OnRecalled flips slot i Deployed→Docked after its craft docks.
func (h *Hangar) OnRecalled(i int) bool {
	return h.dock(i, false)
}

// OnDestroyed flips slot i Deployed→Docked after its craft dies and counts
// the loss.
func (h *Hangar) OnDestroyed(i int) bool {
	return h.dock(i, true)
}

func (h *Hangar) dock(i int, lost bool) bool {
	if i < 0 || i >= len(h.slots) || h.slots[i].State != SlotDeployed {
		return false
	}
	h.slots[i].State = SlotDocked
	h.slots[i].Unit = 0
	if lost {
		h.slots[i].Losses++
	}
	return true
}

// DeployedCount is the number of slots in the Deployed state.
func (h *Hangar) DeployedCount() int {
	n := 0
	for _, s := range h.slots {
		if s.State == SlotDeployed {
			n++
		}
	}
	return n
}

// DeployedUnits returns the live craft ids of every deployed slot.
func (h *Hangar) DeployedUnits() []UnitID {
	var out []UnitID
	for _, s := range h.slots {
		if s.State == SlotDeployed {
			out = append(out, s.Unit)
		}
	}
	return out
}

// SlotOf returns the slot whose live craft is id, or -1.
func (h *Hangar) SlotOf(id UnitID) int {
	for i, s := range h.slots {
		if s.State == SlotDeployed && s.Unit == id {
			return i
		}
	}
	return -1
}

// TotalLosses sums losses across slots.
func (h *Hangar) TotalLosses() int {
	n := 0
	for _, s := range h.slots {
		n += s.Losses
	}
	return n
}
