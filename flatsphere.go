package dymaxion

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/owlpinetech/flatsphere"
)

// Presents a projection as a flatsphere projection, which works in radians with latitude
// first. Points without an image project to NaN, since flatsphere has no error channel.
func AsFlatsphere(proj Projection) flatsphere.Projection {
	return flatProjection{proj}
}

type flatProjection struct {
	proj Projection
}

func (f flatProjection) Project(lat float64, lon float64) (float64, float64) {
	x, y, err := f.proj.FromGeo(s1.Angle(lon).Degrees(), s1.Angle(lat).Degrees())
	if err != nil {
		return math.NaN(), math.NaN()
	}
	return x, y
}

func (f flatProjection) Inverse(x float64, y float64) (float64, float64) {
	lon, lat, err := f.proj.ToGeo(x, y)
	if err != nil {
		return math.NaN(), math.NaN()
	}
	return (s1.Angle(lat) * s1.Degree).Radians(), (s1.Angle(lon) * s1.Degree).Radians()
}

func (f flatProjection) PlanarBounds() flatsphere.Bounds {
	b := f.proj.Bounds()
	return flatsphere.Bounds{
		XMin: b.MinX,
		YMin: b.MinY,
		XMax: b.MaxX,
		YMax: b.MaxY,
	}
}

// Wraps one of flatsphere's projections, which map the unit sphere, into a Projection.
// Results outside the planar bounds of the flatsphere projection are out of bounds.
func FromFlatsphere(name string, proj flatsphere.Projection) Projection {
	return sphereProjection{name: name, proj: proj}
}

type sphereProjection struct {
	name string
	proj flatsphere.Projection
}

func (s sphereProjection) Name() string {
	return s.name
}

func (s sphereProjection) FromGeo(lon float64, lat float64) (float64, float64, error) {
	if err := checkGeoInRange(lon, lat); err != nil {
		return 0, 0, err
	}
	x, y := s.proj.Project((s1.Angle(lat) * s1.Degree).Radians(), (s1.Angle(lon) * s1.Degree).Radians())
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0, 0, NewOutOfProjectionBoundsError(lon, lat, "no finite image under "+s.name)
	}
	return x, y, nil
}

func (s sphereProjection) ToGeo(x float64, y float64) (float64, float64, error) {
	if !s.Bounds().Contains(x, y) {
		return 0, 0, NewOutOfProjectionBoundsError(x, y, "outside the planar bounds of "+s.name)
	}
	lat, lon := s.proj.Inverse(x, y)
	return s1.Angle(lon).Degrees(), s1.Angle(lat).Degrees(), nil
}

func (s sphereProjection) Bounds() Bounds {
	b := s.proj.PlanarBounds()
	return Bounds{
		MinX: b.XMin,
		MinY: b.YMin,
		MaxX: b.XMax,
		MaxY: b.YMax,
	}
}

func (s sphereProjection) MetersPerUnit() float64 {
	return EarthCircumference / (2 * math.Pi)
}

func (s sphereProjection) Upright() bool {
	return false
}
