package dymaxion

import (
	"math"

	"github.com/golang/geo/r3"
)

// The Dymaxion projection with each face bent by a precomputed displacement grid so that
// the map is locally conformal.
type ConformalDymaxion struct {
	grid *ConformalGrid
	base *Dymaxion
}

func NewConformalDymaxion(grid *ConformalGrid) *ConformalDymaxion {
	return &ConformalDymaxion{
		grid: grid,
		base: &Dymaxion{triangle: conformalTriangle{grid}},
	}
}

func (c *ConformalDymaxion) Name() string {
	return "conformal_dymaxion"
}

func (c *ConformalDymaxion) String() string {
	return "Conformal Dymaxion"
}

func (c *ConformalDymaxion) Grid() *ConformalGrid {
	return c.grid
}

func (c *ConformalDymaxion) FromGeo(lon float64, lat float64) (float64, float64, error) {
	return c.base.FromGeo(lon, lat)
}

func (c *ConformalDymaxion) ToGeo(x float64, y float64) (float64, float64, error) {
	return c.base.ToGeo(x, y)
}

func (c *ConformalDymaxion) Bounds() Bounds {
	return c.base.Bounds()
}

func (c *ConformalDymaxion) Upright() bool {
	return c.base.Upright()
}

func (c *ConformalDymaxion) MetersPerUnit() float64 {
	return (EarthCircumference / (2 * math.Pi)) / VectorScaleFactor
}

type conformalTriangle struct {
	grid *ConformalGrid
}

func (t conformalTriangle) forward(v r3.Vector) (float64, float64) {
	rawX, rawY := triangleTransform(v)

	x, y := toGridFrame(rawX, rawY)
	x, y = t.grid.newton(rawX, rawY, x, y, newtonIterations)
	return fromGridFrame(x, y)
}

func (t conformalTriangle) inverse(x float64, y float64) r3.Vector {
	s := t.grid.Interpolate(toGridFrame(x, y))
	return inverseTriangleTransform(s.F, s.G)
}

// Moves a point of the planar face triangle into the unit triangle the grid covers.
func toGridFrame(x float64, y float64) (float64, float64) {
	return x/Arc + 0.5, y/Arc + root3/6
}

func fromGridFrame(x float64, y float64) (float64, float64) {
	return (x - 0.5) * Arc, (y - root3/6) * Arc
}
