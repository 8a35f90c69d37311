package game

import "fmt"

// dragState tracks an in-progress selection drag.
type dragState struct {
	active bool
	start  Vec2
	cur    Vec2
}

func (d dragState) rect() Rect { return RectFromPoints(d.start, d.cur) }

// --- Selection ---

// Selected returns the selected player units in fleet order.
func (s *Session) Selected() []*Unit {
	var out []*Unit
	for _, u := range s.Players {
		if u.Selected {
			out = append(out, u)
		}
	}
	return out
}

// ClearSelection deselects every player unit.
func (s *Session) ClearSelection() {
	for _, u := range s.Players {
		u.Selected = false
	}
}

// ClickSelect makes the topmost player unit under p (last in fleet order,
// so drawn last) the sole selection. A click on empty space clears the
// selection. Returns whether a unit was hit.
func (s *Session) ClickSelect(p Vec2) bool {
	var hit *Unit
	for _, u := range s.Players {
		if u.PointInside(p) {
			hit = u
		}
	}
	for _, u := range s.Players {
		u.Selected = u == hit
	}
	return hit != nil
}

// SelectInRect replaces the selection with every player unit whose
// position lies inside r. A rectangle not strictly larger than the minimum
// size in both dimensions is ignored and the selection kept.
func (s *Session) SelectInRect(r Rect) bool {
	r = r.Normalize()
	if r.W <= s.cfg.SelectionMinPixels || r.H <= s.cfg.SelectionMinPixels {
		return false
	}
	for _, u := range s.Players {
		u.Selected = r.Contains(u.Position())
	}
	return true
}

// BeginDrag starts tracking a selection drag at p.
func (s *Session) BeginDrag(p Vec2) {
	s.drag = dragState{active: true, start: p, cur: p}
}

// UpdateDrag moves the drag corner.
func (s *Session) UpdateDrag(p Vec2) {
	if s.drag.active {
		s.drag.cur = p
	}
}

// EndDrag finishes the drag at p. Short movements count as a click on the
// press point; longer ones as a box selection.
func (s *Session) EndDrag(p Vec2) {
	if !s.drag.active {
		return
	}
	s.drag.cur = p
	d := s.drag
	s.drag = dragState{}
	if d.start.DistTo(d.cur) < s.cfg.ClickThreshold {
		s.ClickSelect(d.start)
		return
	}
	s.SelectInRect(d.rect())
}

// DragRect returns the live drag rectangle, if dragging.
func (s *Session) DragRect() (Rect, bool) {
	return s.drag.rect(), s.drag.active
}

// --- Orders ---

// GroupMove sends every selected, non-recalling unit to target keeping its
// offset from the group's centroid. Selected collectors drop their mining
// or repair job and lose any cargo. Returns false if nothing was selected.
func (s *Session) GroupMove(target Vec2) bool {
	if s.outcome != OutcomeRunning {
		return false
	}
	var group []*Unit
	var pts []Vec2
	for _, u := range s.Players {
		if u.Selected && !u.Recalling && !u.Mover.Immovable() {
			group = append(group, u)
			pts = append(pts, u.Position())
		}
	}
	if len(group) == 0 {
		return false
	}
	_, offsets := formationOffsets(pts)
	targets := formationTargets(target, offsets)
	for i, u := range group {
		if u.Collector != nil {
			u.CancelHealing()
			u.StopAndDump()
		}
		u.Mover.FormationOffset = offsets[i]
		u.SetTarget(targets[i])
	}
	s.notify(SoundMove)
	s.Events.Add(s.tick, CatCommand, "move", fmt.Sprintf("%d units to (%.0f,%.0f)", len(group), target.X, target.Y), float64(len(group)))
	return true
}

// CommandMineOrHeal handles a primary click while collectors are selected:
// an asteroid under p starts mining for all of them, otherwise a player
// ship under p that is not one of them gets repaired. Returns whether the
// click was consumed.
func (s *Session) CommandMineOrHeal(p Vec2) bool {
	if s.outcome != OutcomeRunning {
		return false
	}
	var collectors []*Unit
	for _, u := range s.Players {
		if u.Selected && u.Collector != nil && !u.Recalling {
			collectors = append(collectors, u)
		}
	}
	if len(collectors) == 0 {
		return false
	}
	for _, a := range s.Asteroids {
		if a.Contains(p) {
			for _, c := range collectors {
				c.StartMining(a)
			}
			s.notify(SoundHarvest)
			s.Events.Add(s.tick, CatCommand, "mine", fmt.Sprintf("asteroid %d (%s %.2f)", a.ID, a.Ore, a.Purity), float64(len(collectors)))
			return true
		}
	}
	for _, t := range s.Players {
		if t.Selected && t.Collector != nil {
			continue
		}
		if !t.PointInside(p) {
			continue
		}
		started := 0
		for _, c := range collectors {
			if c.StartHealing(t) {
				started++
			}
		}
		if started == 0 {
			return false
		}
		s.notify(SoundRepair)
		s.Events.AddUnit(s.tick, t, CatCommand, "repair", fmt.Sprintf("%d collectors", started), float64(started))
		return true
	}
	return false
}

// StartMining orders one collector onto one asteroid by id.
func (s *Session) StartMining(collector UnitID, asteroid AsteroidID) bool {
	u, a := s.playerByID(collector), s.asteroidByID(asteroid)
	if u == nil || a == nil {
		return false
	}
	return u.StartMining(a)
}

// StartHealing orders one collector to repair one ally by id.
func (s *Session) StartHealing(collector, target UnitID) bool {
	u, t := s.playerByID(collector), s.playerByID(target)
	if u == nil || t == nil {
		return false
	}
	return u.StartHealing(t)
}

// --- Hangar ---

// deployOffset fans launched craft out behind the mothership.
func deployOffset(ms *Unit, slot int) Vec2 {
	back := -(ms.Size.X/2 + 24)
	side := float64(slot%5-2) * 26
	return Vec2{back, side}.Rotate(ms.Facing())
}

// Deploy launches the craft in slot. It fails without side effects if the
// slot does not exist or is already deployed.
func (s *Session) Deploy(slot int) bool {
	if s.outcome != OutcomeRunning {
		return false
	}
	ms := s.Mothership()
	if ms == nil || ms.Hangar == nil || !ms.Hangar.CanDeploy(slot) {
		return false
	}
	hs, _ := ms.Hangar.Slot(slot)
	u := s.spawnUnit(hs.Kind, ms.Position().Add(deployOffset(ms, slot)))
	u.Mover.Facing = ms.Facing()
	u.HangarSlot = slot
	if !ms.Hangar.MarkDeployed(slot, u.ID) {
		return false
	}
	s.Players = append(s.Players, u)
	s.notify(SoundDeploy)
	s.Events.AddUnit(s.tick, u, CatHangar, "deployed", fmt.Sprintf("slot %d", slot), float64(slot))
	s.log.Debug().Str("unit", u.Label).Int("slot", slot).Msg("craft deployed")
	return true
}

// Recall orders the craft in slot home. It docks when it reaches the
// mothership. Collector cargo is dumped.
func (s *Session) Recall(slot int) bool {
	if s.outcome != OutcomeRunning {
		return false
	}
	ms := s.Mothership()
	if ms == nil || ms.Hangar == nil {
		return false
	}
	hs, ok := ms.Hangar.Slot(slot)
	if !ok || hs.State != SlotDeployed {
		return false
	}
	u := s.playerByID(hs.Unit)
	if u == nil || !u.Alive() || u.Recalling {
		return false
	}
	u.Recalling = true
	u.Selected = false
	u.StopAndDump()
	u.CancelHealing()
	u.SetTarget(ms.Position())
	s.Events.AddUnit(s.tick, u, CatHangar, "recall", fmt.Sprintf("slot %d", slot), float64(slot))
	return true
}

// ToggleSlot deploys a docked slot or recalls a deployed one.
func (s *Session) ToggleSlot(slot int) bool {
	ms := s.Mothership()
	if ms == nil || ms.Hangar == nil {
		return false
	}
	hs, ok := ms.Hangar.Slot(slot)
	if !ok {
		return false
	}
	if hs.State == SlotDocked {
		return s.Deploy(slot)
	}
	return s.Recall(slot)
}

// RecallAll recalls every deployed craft and returns how many were ordered.
func (s *Session) RecallAll() int {
	ms := s.Mothership()
	if ms == nil || ms.Hangar == nil {
		return 0
	}
	n := 0
	for i := 0; i < ms.Hangar.Len(); i++ {
		if s.Recall(i) {
			n++
		}
	}
	return n
}

// --- Economy ---

// RequestSave queues a save of the mothership. It is written during the
// next tick.
func (s *Session) RequestSave() bool {
	ms := s.Mothership()
	if ms == nil {
		return false
	}
	s.saveQueue = append(s.saveQueue, ms.ID)
	return true
}

// Fabricate queues a hull on the fabricator, paying its ore up front.
func (s *Session) Fabricate(kind UnitKind) bool {
	ms := s.Mothership()
	if s.fab == nil || ms == nil || ms.Inventory == nil || s.outcome != OutcomeRunning {
		return false
	}
	if !s.fab.Enqueue(kind, ms.Inventory) {
		return false
	}
	s.Events.Add(s.tick, CatFabrication, "queued", kind.String(), 0)
	return true
}

// FabricationStatus reports the fabricator's head job.
func (s *Session) FabricationStatus() (FabricationStatus, bool) {
	if s.fab == nil {
		return FabricationStatus{}, false
	}
	return s.fab.Status(), true
}
