package quill

import "math"

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath at a point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path represents a vector path: an ordered sequence of subpaths, each a
// run of segments starting with a move. Arcs are flattened to cubic
// Bezier segments when they are added, so sinks only ever see moves,
// lines, cubics and closes.
type Path struct {
	elements   []PathElement
	start      Point // starting point of current subpath
	current    Point // current point
	hasCurrent bool
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
	p.hasCurrent = true
}

// LineTo draws a line from the current point to (x, y).
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
	p.hasCurrent = true
}

// CubicTo draws a cubic Bezier curve from the current point.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    pt,
	})
	p.current = pt
	p.hasCurrent = true
}

// Close closes the current subpath back to its starting point.
// The current point becomes the subpath's starting point.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Rectangle adds a rectangle as an independent closed subpath.
// It does not chain onto the previous current point; the current point
// afterwards is the rectangle's origin.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Arc appends a circular arc around center (cx, cy) from startAngle to
// endAngle (radians). The clockwise flag selects the sweep direction:
// false sweeps in the direction of increasing angle, true in the
// direction of decreasing angle. If the path has a current point the arc
// start is connected with a line, otherwise a new subpath begins there.
func (p *Path) Arc(cx, cy, r, startAngle, endAngle float64, clockwise bool) {
	const twoPi = 2 * math.Pi
	if clockwise {
		for endAngle > startAngle {
			endAngle -= twoPi
		}
	} else {
		for endAngle < startAngle {
			endAngle += twoPi
		}
	}

	startX := cx + r*math.Cos(startAngle)
	startY := cy + r*math.Sin(startAngle)
	if p.hasCurrent {
		p.LineTo(startX, startY)
	} else {
		p.MoveTo(startX, startY)
	}

	// Split into cubic Bezier segments of at most 90 degrees each.
	const maxAngle = math.Pi / 2
	sweep := endAngle - startAngle
	numSegments := int(math.Ceil(math.Abs(sweep) / maxAngle))
	if numSegments == 0 {
		return
	}
	angleStep := sweep / float64(numSegments)

	for i := 0; i < numSegments; i++ {
		a1 := startAngle + float64(i)*angleStep
		a2 := a1 + angleStep
		p.arcSegment(cx, cy, r, a1, a2)
	}
}

// arcSegment adds a single arc segment (at most 90 degrees) as a cubic
// Bezier approximation. Works for both sweep directions.
func (p *Path) arcSegment(cx, cy, r, a1, a2 float64) {
	alpha := math.Sin(a2-a1) * (math.Sqrt(4+3*math.Tan((a2-a1)/2)*math.Tan((a2-a1)/2)) - 1) / 3

	cos1, sin1 := math.Cos(a1), math.Sin(a1)
	cos2, sin2 := math.Cos(a2), math.Sin(a2)

	x1 := cx + r*cos1
	y1 := cy + r*sin1
	x2 := cx + r*cos2
	y2 := cy + r*sin2

	c1x := x1 - alpha*r*sin1
	c1y := y1 + alpha*r*cos1
	c2x := x2 + alpha*r*sin2
	c2y := y2 - alpha*r*cos2

	p.CubicTo(c1x, c1y, c2x, c2y, x2, y2)
}

// ArcTo appends an arc of the given radius tangent to the two lines
// from the current point to (x1, y1) and from (x1, y1) to (x2, y2).
// Degenerate configurations (zero radius, collinear points) reduce to a
// line to (x1, y1). Requires a current point.
func (p *Path) ArcTo(x1, y1, x2, y2, radius float64) {
	p0 := p.current
	p1 := Pt(x1, y1)
	p2 := Pt(x2, y2)

	d0 := p0.Sub(p1)
	d2 := p2.Sub(p1)
	cross := d0.Cross(d2)
	if radius <= 0 || d0.Length() == 0 || d2.Length() == 0 || math.Abs(cross) < 1e-12 {
		p.LineTo(x1, y1)
		return
	}

	d0 = d0.Normalize()
	d2 = d2.Normalize()

	dot := d0.Dot(d2)
	if dot > 1 {
		dot = 1
	} else if dot < -1 {
		dot = -1
	}
	halfAngle := math.Acos(dot) / 2

	// Tangent points sit at distance r/tan(halfAngle) from the corner;
	// the center sits on the angle bisector at distance r/sin(halfAngle).
	tangentDist := radius / math.Tan(halfAngle)
	t0 := p1.Add(d0.Mul(tangentDist))
	t2 := p1.Add(d2.Mul(tangentDist))

	bisector := d0.Add(d2).Normalize()
	center := p1.Add(bisector.Mul(radius / math.Sin(halfAngle)))

	a0 := math.Atan2(t0.Y-center.Y, t0.X-center.X)
	a2 := math.Atan2(t2.Y-center.Y, t2.X-center.X)

	// The tangent arc never exceeds half a turn; pick the sweep
	// direction that takes the short way around the center.
	sweep := a2 - a0
	for sweep > math.Pi {
		sweep -= 2 * math.Pi
	}
	for sweep < -math.Pi {
		sweep += 2 * math.Pi
	}

	p.LineTo(t0.X, t0.Y)
	p.Arc(center.X, center.Y, radius, a0, a0+sweep, sweep < 0)
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty returns true if the path has no elements.
func (p *Path) IsEmpty() bool {
	return len(p.elements) == 0
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// HasCurrentPoint returns true if the path has a current point.
func (p *Path) HasCurrentPoint() bool {
	return p.hasCurrent
}

// Transform returns a copy of the path with all points transformed by m.
func (p *Path) Transform(m Matrix) *Path {
	result := NewPath()
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := m.TransformPoint(e.Point)
			result.MoveTo(pt.X, pt.Y)
		case LineTo:
			pt := m.TransformPoint(e.Point)
			result.LineTo(pt.X, pt.Y)
		case CubicTo:
			c1 := m.TransformPoint(e.Control1)
			c2 := m.TransformPoint(e.Control2)
			pt := m.TransformPoint(e.Point)
			result.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
		case Close:
			result.Close()
		}
	}
	return result
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	result := NewPath()
	result.elements = make([]PathElement, len(p.elements))
	copy(result.elements, p.elements)
	result.start = p.start
	result.current = p.current
	result.hasCurrent = p.hasCurrent
	return result
}
