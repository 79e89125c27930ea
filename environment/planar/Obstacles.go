package planar

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// Obstacle size and placement constants. Sizes are drawn uniformly in
// [MinObstacleSize, MaxObstacleSize], and any two obstacles generated
// together are separated by at least MinObstacleSeparation between
// their centres.
const (
	MinObstacleSize       float64 = 0.1
	MaxObstacleSize       float64 = 0.5
	MinObstacleSeparation float64 = 2.0

	// maxFieldAttempts bounds the total number of rejection-sampling
	// draws when generating an obstacle layout
	maxFieldAttempts int = 100000
)

// ShapeKind tags the geometry of an Obstacle
type ShapeKind int

const (
	Box ShapeKind = iota
	Circle
)

func (k ShapeKind) String() string {
	if k == Box {
		return "Box"
	}
	return "Circle"
}

// Obstacle is an axis-aligned square or a circle, centred at (X, Y)
// and translating with constant speed (VX, VY) between the domain
// walls. Size is the full side length of a Box and the radius of a
// Circle. Static obstacles have Moving == false and zero velocity.
type Obstacle struct {
	Kind   ShapeKind
	X, Y   float64
	VX, VY float64
	Size   float64
	Moving bool
}

// Contains reports whether the point (x, y) lies inside the obstacle
func (o Obstacle) Contains(x, y float64) bool {
	return o.ContainsWithin(x, y, 0)
}

// ContainsWithin reports whether the point (x, y) lies inside the
// obstacle grown by the argument clearance margin on every side
func (o Obstacle) ContainsWithin(x, y, margin float64) bool {
	if o.Kind == Box {
		h := o.Size/2 + margin
		return x >= o.X-h && x <= o.X+h && y >= o.Y-h && y <= o.Y+h
	}
	return math.Hypot(o.X-x, o.Y-y) <= o.Size+margin
}

// halfExtent is the distance from the obstacle centre to its edge
// along an axis, used for wall-reflection tests
func (o Obstacle) halfExtent() float64 {
	if o.Kind == Box {
		return o.Size / 2
	}
	return o.Size
}

// Field owns the obstacles of a single environment instance. It is
// regenerated wholesale at every reset and advanced by one control
// interval at every step.
type Field struct {
	movingBoxes   int
	staticBoxes   int
	movingCircles int
	staticCircles int

	// domain half-widths and the maximum obstacle speed per axis
	xBound, yBound   float64
	maxVelX, maxVelY float64

	dt        float64
	obstacles []Obstacle
}

// NewField returns a Field which generates the given number of moving
// and static boxes and circles inside the domain [-xBound, xBound] x
// [-yBound, yBound]. Moving obstacles receive a uniform random
// velocity component in ±maxVelX/2 and ±maxVelY/2 per axis.
func NewField(movingBoxes, staticBoxes, movingCircles, staticCircles int,
	xBound, yBound, maxVelX, maxVelY, dt float64) *Field {
	return &Field{
		movingBoxes:   movingBoxes,
		staticBoxes:   staticBoxes,
		movingCircles: movingCircles,
		staticCircles: staticCircles,
		xBound:        xBound,
		yBound:        yBound,
		maxVelX:       maxVelX,
		maxVelY:       maxVelY,
		dt:            dt,
	}
}

// Len returns the total number of obstacles in the field
func (f *Field) Len() int {
	return f.movingBoxes + f.staticBoxes + f.movingCircles + f.staticCircles
}

// Obstacles returns a copy of the current obstacle list
func (f *Field) Obstacles() []Obstacle {
	return append([]Obstacle(nil), f.obstacles...)
}

// Generate draws a new obstacle layout, discarding the old one. The
// generation order is fixed: moving boxes, then static boxes, then
// moving circles, then static circles. Each candidate is
// rejection-sampled against all previously placed obstacles using the
// minimum pairwise centre distance. Generate returns an error if no
// valid layout is found within the attempt budget.
func (f *Field) Generate(rng *rand.Rand) error {
	f.obstacles = f.obstacles[:0]

	groups := []struct {
		n      int
		kind   ShapeKind
		moving bool
	}{
		{f.movingBoxes, Box, true},
		{f.staticBoxes, Box, false},
		{f.movingCircles, Circle, true},
		{f.staticCircles, Circle, false},
	}

	attempts := 0
	for _, group := range groups {
		for placed := 0; placed < group.n; {
			attempts++
			if attempts > maxFieldAttempts {
				return fmt.Errorf("generate: no valid obstacle layout "+
					"found after %v attempts", maxFieldAttempts)
			}

			size := MinObstacleSize +
				rng.Float64()*(MaxObstacleSize-MinObstacleSize)
			x := (2*f.xBound - size) * (rng.Float64() - 0.5)
			y := (2*f.yBound - size) * (rng.Float64() - 0.5)

			if !f.separated(x, y) {
				continue
			}

			obstacle := Obstacle{
				Kind:   group.kind,
				X:      x,
				Y:      y,
				Size:   size,
				Moving: group.moving,
			}
			if group.moving {
				obstacle.VX = f.maxVelX * (rng.Float64() - 0.5)
				obstacle.VY = f.maxVelY * (rng.Float64() - 0.5)
			}

			f.obstacles = append(f.obstacles, obstacle)
			placed++
		}
	}
	return nil
}

// separated reports whether a candidate centre keeps the minimum
// pairwise distance to every already placed obstacle
func (f *Field) separated(x, y float64) bool {
	for _, o := range f.obstacles {
		if math.Hypot(o.X-x, o.Y-y) < MinObstacleSeparation {
			return false
		}
	}
	return true
}

// Step advances every moving obstacle by one control interval. A
// velocity component is reflected when the prospective next position
// would push the shape past a domain wall, so the reflection happens
// one step before the wall is actually reached.
func (f *Field) Step() {
	for i := range f.obstacles {
		o := &f.obstacles[i]
		if !o.Moving {
			continue
		}
		f.reflect(o)
		o.X += o.VX * f.dt
		o.Y += o.VY * f.dt
	}
}

// reflect flips the velocity components of o whose prospective next
// position would leave the domain
func (f *Field) reflect(o *Obstacle) {
	h := o.halfExtent()
	if next := o.X + o.VX*f.dt; next <= -f.xBound+h || next >= f.xBound-h {
		o.VX = -o.VX
	}
	if next := o.Y + o.VY*f.dt; next <= -f.yBound+h || next >= f.yBound-h {
		o.VY = -o.VY
	}
}

// Predict forecasts the obstacle layout over the argument horizon
// without mutating the live field. The result holds one obstacle list
// per step 0..horizon-1, with entry 0 equal to the current layout.
// Moving obstacles are advanced recursively with the same one-step-
// early reflection rule as Step; static obstacles are replicated
// unchanged.
func (f *Field) Predict(horizon int) [][]Obstacle {
	if len(f.obstacles) == 0 || horizon <= 0 {
		return nil
	}

	predictions := make([][]Obstacle, horizon)
	predictions[0] = f.Obstacles()

	for i := 1; i < horizon; i++ {
		current := make([]Obstacle, len(f.obstacles))
		for j, o := range predictions[i-1] {
			if o.Moving {
				f.reflect(&o)
				o.X += o.VX * f.dt
				o.Y += o.VY * f.dt
			}
			current[j] = o
		}
		predictions[i] = current
	}
	return predictions
}

// Collides reports whether the point (x, y) lies inside any obstacle
func (f *Field) Collides(x, y float64) bool {
	return f.CollidesWithin(x, y, 0)
}

// CollidesWithin reports whether the point (x, y) lies inside any
// obstacle grown by the argument clearance margin
func (f *Field) CollidesWithin(x, y, margin float64) bool {
	for _, o := range f.obstacles {
		if o.ContainsWithin(x, y, margin) {
			return true
		}
	}
	return false
}

// StaticContains reports whether the point (x, y) lies inside any
// static obstacle grown by the argument clearance margin. Target
// positions are validated against static obstacles only, since moving
// obstacles will not stay where they were generated.
func (f *Field) StaticContains(x, y, margin float64) bool {
	for _, o := range f.obstacles {
		if !o.Moving && o.ContainsWithin(x, y, margin) {
			return true
		}
	}
	return false
}
