package game

import "math"

// arriveEpsilon is the distance at which a mover counts as arrived.
const arriveEpsilon = 1.0

// Mover steers one unit toward a target point with a capped linear speed
// and a rate-limited heading.
type Mover struct {
	Pos    Vec2
	Facing float64 // radians, 0 = +x
	Target Vec2

	Speed    float64 // px/s
	TurnRate float64 // degrees/s

	// FormationOffset is the unit's offset from the group centroid at the
	// time of the last group move order.
	FormationOffset Vec2
}

// NewMover returns a mover resting at pos.
func NewMover(pos Vec2, speed, turnRate float64) Mover {
	return Mover{Pos: pos, Target: pos, Speed: speed, TurnRate: turnRate}
}

// SetTarget records a destination. It has no motion side effect.
func (m *Mover) SetTarget(p Vec2) {
	if m.Speed <= 0 {
		return
	}
	m.Target = p
}

// Stop holds the mover at its current position.
func (m *Mover) Stop() { m.Target = m.Pos }

// Immovable reports whether the mover can never translate.
func (m *Mover) Immovable() bool { return m.Speed <= 0 }

// AtTarget reports whether the mover is within arriveEpsilon of its target.
func (m *Mover) AtTarget() bool { return m.Pos.DistTo(m.Target) <= arriveEpsilon }

// Update advances one step of dt seconds. Position never overshoots the
// target; facing turns toward the direction of travel at most TurnRate*dt.
func (m *Mover) Update(dt float64) {
	if m.Speed <= 0 || dt <= 0 {
		return
	}
	to := m.Target.Sub(m.Pos)
	dist := to.Len()
	if dist <= arriveEpsilon {
		return
	}
	m.turnToward(to.Angle(), dt)
	step := m.Speed * dt
	if step >= dist {
		m.Pos = m.Target
		return
	}
	m.Pos = m.Pos.Add(to.Scale(step / dist))
}

func (m *Mover) turnToward(want, dt float64) {
	if m.TurnRate <= 0 {
		return
	}
	diff := normalizeAngle(want - m.Facing)
	maxTurn := m.TurnRate * math.Pi / 180 * dt
	if math.Abs(diff) <= maxTurn {
		m.Facing = normalizeAngle(want)
		return
	}
	m.Facing = normalizeAngle(m.Facing + math.Copysign(maxTurn, diff))
}

// SeparateRotated resolves overlap between two units' oriented boxes by
// pushing them apart along the line joining their centres, half each.
// When one side is immovable the other takes the whole push. Returns
// whether the pair overlapped.
func SeparateRotated(a, b *Unit) bool {
	return separate(a, b, 0.5)
}

// separateOneSided pushes small out of big without moving big.
func separateOneSided(big, small *Unit) bool {
	return separate(big, small, 0)
}

func separate(a, b *Unit, aShare float64) bool {
	am, bm := &a.Mover, &b.Mover
	if am.Immovable() && bm.Immovable() {
		return false
	}
	d := bm.Pos.Sub(am.Pos)
	dist := d.Len()
	dir := d.Norm()
	pen := orientedHalfExtent(a.Size.X, a.Size.Y, am.Facing, dir) +
		orientedHalfExtent(b.Size.X, b.Size.Y, bm.Facing, dir) - dist
	if pen <= 0 {
		return false
	}
	switch {
	case am.Immovable():
		aShare = 0
	case bm.Immovable():
		aShare = 1
	}
	if aShare > 0 {
		am.push(dir.Scale(-pen * aShare))
	}
	if aShare < 1 {
		bm.push(dir.Scale(pen * (1 - aShare)))
	}
	return true
}

// push displaces the mover. A mover at rest keeps resting where it lands
// instead of steering back into the overlap.
func (m *Mover) push(delta Vec2) {
	resting := m.AtTarget()
	m.Pos = m.Pos.Add(delta)
	if resting {
		m.Target = m.Pos
	}
}
