package game

import (
	"fmt"
	"math"
	"strings"
)

// FleetReport is a plain-text dump of the session for bug reports: the
// header, every unit on both sides, the hangar and the newest events.
func FleetReport(s *Session, lastEvents int) string {
	if lastEvents <= 0 {
		lastEvents = 40
	}
	t := s.Tuning()
	st := s.Stats()

	var b strings.Builder
	fmt.Fprintf(&b, "--- Expedition debug report ---\n")
	fmt.Fprintf(&b, "seed=%d tick=%d elapsed=%.2fs outcome=%s\n", t.Seed, s.TickCount(), s.Elapsed(), s.Outcome())
	loc := s.Location()
	fmt.Fprintf(&b, "location=%s type=%s ore=%s\n", loc, orNone(string(loc.Type)), loc.Ore)
	fmt.Fprintf(&b, "kills=%d craft_lost=%d frigates_lost=%d ore=%d deliveries=%d waves=%d jumps=%d saves=%d/%d fabricated=%d\n\n",
		st.EnemiesDestroyed, st.CraftLost, st.FrigatesLost, st.OreDelivered, st.Deliveries,
		st.WavesSpawned, st.Jumps, st.Saves, st.Saves+st.SaveFailures, st.Fabricated)

	writeUnits := func(title string, units []*Unit) {
		fmt.Fprintf(&b, "== %s (%d) ==\n", title, len(units))
		for _, u := range units {
			fmt.Fprintf(&b, "%-5s %-18s pos=(%.0f,%.0f) hdg=%4.0f hull=%.0f/%.0f armour=%.0f/%.0f",
				u.Label, u.Kind, u.Position().X, u.Position().Y, u.Facing()*180/math.Pi,
				u.Health, u.MaxHealth, u.Armor, u.MaxArmor)
			if u.Selected {
				b.WriteString(" sel")
			}
			if u.Recalling {
				b.WriteString(" recalling")
			}
			if u.HangarSlot >= 0 {
				fmt.Fprintf(&b, " slot=%d", u.HangarSlot)
			}
			if c := u.Collector; c != nil {
				fmt.Fprintf(&b, " mine=%d heal=%d fill=%.1f returning=%v", c.MineTarget, c.HealTarget, c.Fill, c.Returning)
			}
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	writeUnits("fleet", s.Players)
	writeUnits("pirates", s.Enemies)

	if ms := s.Mothership(); ms != nil {
		if ms.Hangar != nil {
			b.WriteString("== hangar ==\n")
			for i, hs := range ms.Hangar.Slots() {
				fmt.Fprintf(&b, "[%d] %-18s %-8s unit=%d losses=%d\n", i+1, hs.Kind, hs.State, hs.Unit, hs.Losses)
			}
			b.WriteByte('\n')
		}
		if ms.Inventory != nil {
			b.WriteString("== ore ==\n")
			for _, o := range ms.Inventory.Ores() {
				fmt.Fprintf(&b, "%s=%d\n", o, ms.Inventory.Get(o))
			}
			b.WriteByte('\n')
		}
	}

	events := s.Events.Recent(lastEvents)
	fmt.Fprintf(&b, "== last %d events (dropped %d) ==\n", len(events), s.Events.Dropped())
	for _, e := range events {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}
