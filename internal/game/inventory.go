package game

import "sort"

// Inventory is the mothership's ore counter-map. It is only touched from
// inside the tick (collector deliveries, fabrication), so it has no lock.
type Inventory struct {
	ore map[OreType]int
}

func NewInventory() *Inventory {
	return &Inventory{ore: make(map[OreType]int)}
}

// Add credits n units of ore. Non-positive amounts are ignored.
func (inv *Inventory) Add(ore OreType, n int) {
	if n <= 0 {
		return
	}
	inv.ore[ore] += n
}

// Take debits n units if available and reports whether it did.
func (inv *Inventory) Take(ore OreType, n int) bool {
	if n < 0 || inv.ore[ore] < n {
		return false
	}
	inv.ore[ore] -= n
	return true
}

func (inv *Inventory) Get(ore OreType) int { return inv.ore[ore] }

// Total sums every ore type.
func (inv *Inventory) Total() int {
	t := 0
	for _, n := range inv.ore {
		t += n
	}
	return t
}

// Snapshot returns a copy of the counters.
func (inv *Inventory) Snapshot() map[OreType]int {
	out := make(map[OreType]int, len(inv.ore))
	for k, v := range inv.ore {
		out[k] = v
	}
	return out
}

// Restore replaces the counters, e.g. after loading a save.
func (inv *Inventory) Restore(m map[OreType]int) {
	inv.ore = make(map[OreType]int, len(m))
	for k, v := range m {
		if v > 0 {
			inv.ore[k] = v
		}
	}
}

// Ores returns the ore types currently held, sorted.
func (inv *Inventory) Ores() []OreType {
	out := make([]OreType, 0, len(inv.ore))
	for k, v := range inv.ore {
		if v > 0 {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
