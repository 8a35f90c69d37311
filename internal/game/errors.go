package game

import "errors"

// Fatal configuration errors. A session that returns one of these from Tick
// must not be ticked again.
var (
	ErrHangarMissing    = errors.New("mothership has no hangar")
	ErrInventoryMissing = errors.New("mothership has no ore inventory")
	ErrNoMothership     = errors.New("player fleet has no expedition ship")
)
