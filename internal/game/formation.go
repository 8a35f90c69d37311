package game

// formationOffsets returns the centroid of pts and each point's offset from
// it. The offsets do not depend on the order of pts.
func formationOffsets(pts []Vec2) (Vec2, []Vec2) {
	c := Centroid(pts)
	offsets := make([]Vec2, len(pts))
	for i, p := range pts {
		offsets[i] = p.Sub(c)
	}
	return c, offsets
}

// formationTargets places each offset around target, so a group keeps its
// shape instead of converging on one point.
func formationTargets(target Vec2, offsets []Vec2) []Vec2 {
	out := make([]Vec2, len(offsets))
	for i, off := range offsets {
		out[i] = target.Add(off)
	}
	return out
}
