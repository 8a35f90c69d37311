package game

// SoundEvent is a discrete game event the audio notifier may voice.
type SoundEvent int

const (
	SoundMove SoundEvent = iota
	SoundDock
	SoundDeploy
	SoundHarvest
	SoundRepair
	SoundHyperspaceLaunch
	SoundHyperspaceComplete
	SoundRefiningComplete
	SoundFabricationComplete
	SoundShipDocking
	SoundCollectorFull
	SoundResourceTransfer
	SoundDestroyedFrigate
	SoundDestroyedCollector
	SoundDestroyedStrikeGroup
	soundEventCount
)

var soundEventNames = [soundEventCount]string{
	"move",
	"dock",
	"deploy",
	"harvest",
	"repair",
	"hyperspace_launch",
	"hyperspace_complete",
	"refining_complete",
	"fabrication_complete",
	"ship_docking",
	"collector_full",
	"resource_transfer",
	"destroyed_frigate",
	"destroyed_collector",
	"destroyed_strikegroup",
}

// String is the sound group name, which is also the sub-directory the
// audio backend loads clips from.
func (e SoundEvent) String() string {
	if e < 0 || e >= soundEventCount {
		return "unknown"
	}
	return soundEventNames[e]
}

// AllSoundEvents lists every event in declaration order.
func AllSoundEvents() []SoundEvent {
	out := make([]SoundEvent, soundEventCount)
	for i := range out {
		out[i] = SoundEvent(i)
	}
	return out
}

// destroyedSound maps a dead unit to its loss announcement.
func destroyedSound(k UnitKind) (SoundEvent, bool) {
	switch k {
	case KindFrigate, KindPirateFrigate:
		return SoundDestroyedFrigate, true
	case KindResourceCollector:
		return SoundDestroyedCollector, true
	case KindInterceptor, KindBomber:
		return SoundDestroyedStrikeGroup, true
	}
	return 0, false
}

// Notifier voices game events. Calls are fire-and-forget; an implementation
// drops events that arrive while it is still busy.
type Notifier interface {
	Notify(ev SoundEvent)
}

// SaveSink persists the mothership when the session drains a save request.
type SaveSink interface {
	Save(ship *Unit, at LocationRef) error
}

// LocationProvider resolves a system and area to a spawn descriptor.
type LocationProvider interface {
	Lookup(system, area string) (Location, bool)
}

// Shipyard is what a fabricator may touch when a job completes.
type Shipyard interface {
	Ore() *Inventory
	Complete(kind UnitKind) bool
}

// FabricationStatus is the head of the fabrication queue for the HUD.
type FabricationStatus struct {
	Active   bool
	Kind     UnitKind
	Progress float64 // [0,1]
	Queued   int
}

// Fabricator progresses blueprint-driven construction, once per tick.
type Fabricator interface {
	Enqueue(kind UnitKind, ore *Inventory) bool
	Advance(dt float64, yard Shipyard)
	Status() FabricationStatus
}

type nopNotifier struct{}

func (nopNotifier) Notify(SoundEvent) {}
