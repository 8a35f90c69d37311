package game

import "math"

// Vec2 is a 2D vector in world space (pixels; +y is down).
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(k float64) Vec2 { return Vec2{a.X * k, a.Y * k} }
func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }
func (a Vec2) Len() float64 { return math.Hypot(a.X, a.Y) }
func (a Vec2) LenSq() float64 { return a.X*a.X + a.Y*a.Y }
func (a Vec2) DistTo(b Vec2) float64 { return b.Sub(a).Len() }
func (a Vec2) DistSqTo(b Vec2) float64 { return b.Sub(a).LenSq() }
func (a Vec2) Angle() float64 { return math.Atan2(a.Y, a.X) }
func (a Vec2) Perp() Vec2 { return Vec2{-a.Y, a.X} }
func (a Vec2) Eq(b Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

// Norm returns the unit vector of a, or (1,0) for the zero vector.
func (a Vec2) Norm() Vec2 {
	l := a.Len()
	if l < 1e-12 {
		return Vec2{1, 0}
	}
	return Vec2{a.X / l, a.Y / l}
}

// Rotate rotates a by theta radians.
func (a Vec2) Rotate(theta float64) Vec2 {
	c, s := math.Cos(theta), math.Sin(theta)
	return Vec2{a.X*c - a.Y*s, a.X*s + a.Y*c}
}

// Centroid returns the mean of pts. Empty input yields the zero vector.
func Centroid(pts []Vec2) Vec2 {
	if len(pts) == 0 {
		return Vec2{}
	}
	var sum Vec2
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(pts)))
}

// normalizeAngle wraps a into (-π, π].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }

// Rect is an axis-aligned rectangle. Normalized rectangles have W, H >= 0.
type Rect struct {
	X, Y, W, H float64
}

// RectFromPoints spans the two corners in any drag direction.
func RectFromPoints(a, b Vec2) Rect {
	return Rect{X: a.X, Y: a.Y, W: b.X - a.X, H: b.Y - a.Y}.Normalize()
}

// Normalize flips negative extents so W and H are non-negative.
func (r Rect) Normalize() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Contains reports whether p lies inside r (left/top inclusive, right/bottom exclusive).
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Overlaps reports whether two normalized rectangles intersect with positive area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Polygon is a closed outline in world space, vertices in order.
type Polygon []Vec2

// Contains is an even-odd ray cast point-in-polygon test.
func (pg Polygon) Contains(p Vec2) bool {
	inside := false
	n := len(pg)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := pg[i], pg[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			xCross := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// Bounds returns the axis-aligned bounding box of the polygon.
func (pg Polygon) Bounds() Rect {
	if len(pg) == 0 {
		return Rect{}
	}
	minX, minY := pg[0].X, pg[0].Y
	maxX, maxY := minX, minY
	for _, v := range pg[1:] {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// project returns the [min,max] interval of the polygon on axis.
func (pg Polygon) project(axis Vec2) (float64, float64) {
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, v := range pg {
		d := v.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// Intersects is a separating-axis test for two convex polygons.
func (pg Polygon) Intersects(o Polygon) bool {
	if len(pg) < 3 || len(o) < 3 {
		return false
	}
	for _, poly := range [2]Polygon{pg, o} {
		n := len(poly)
		for i := 0; i < n; i++ {
			edge := poly[(i+1)%n].Sub(poly[i])
			axis := edge.Perp()
			aLo, aHi := pg.project(axis)
			bLo, bHi := o.project(axis)
			if aHi <= bLo || bHi <= aLo {
				return false
			}
		}
	}
	return true
}

// orientedHalfExtent is the half-width of a w×h box rotated by theta,
// measured along the unit direction dir.
func orientedHalfExtent(w, h, theta float64, dir Vec2) float64 {
	fwd := Vec2{math.Cos(theta), math.Sin(theta)}
	side := fwd.Perp()
	return math.Abs(dir.Dot(fwd))*w/2 + math.Abs(dir.Dot(side))*h/2
}
