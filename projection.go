package dymaxion

import (
	"math"

	"github.com/owlpinetech/flatsphere"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	// Mean circumference of the Earth along the equator, in meters.
	EarthCircumference = 40075017.0
	// Surface area of the Earth, in square meters.
	EarthSurfaceArea = 510100000000000.0
	// Number of BuildTheEarth blocks per planar unit of the BTE projection.
	BTEBlocksPerUnit = 7318261.522857145
)

// The rectangle covering every planar point a projection can produce.
type Bounds struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

func (b Bounds) Width() float64 {
	return b.MaxX - b.MinX
}

func (b Bounds) Height() float64 {
	return b.MaxY - b.MinY
}

func (b Bounds) Contains(x float64, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Common functionality for converting geographic coordinates, longitude and latitude in
// degrees, to a planar map and back again. Projections never mutate state, and every
// implementation in this package is safe for concurrent use.
type Projection interface {
	FromGeo(lon float64, lat float64) (x float64, y float64, err error)
	ToGeo(x float64, y float64) (lon float64, lat float64, err error)
	Bounds() Bounds
	MetersPerUnit() float64
	// Whether the positive y axis of the planar map points south.
	Upright() bool
	Name() string
}

var registry = map[string]func() (Projection, error){
	"dymaxion": func() (Projection, error) {
		return NewDymaxion(), nil
	},
	"conformal_dymaxion": func() (Projection, error) {
		grid, err := DefaultConformalGrid()
		if err != nil {
			return nil, err
		}
		return NewConformalDymaxion(grid), nil
	},
	"bte_conformal_dymaxion": func() (Projection, error) {
		grid, err := DefaultConformalGrid()
		if err != nil {
			return nil, err
		}
		return NewBTEDymaxion(grid), nil
	},
	"equirectangular": func() (Projection, error) {
		return FromFlatsphere("equirectangular", flatsphere.NewEquirectangular(0)), nil
	},
	"mercator": func() (Projection, error) {
		return FromFlatsphere("mercator", flatsphere.NewMercator()), nil
	},
}

// The sorted names of every projection that can be created with Lookup.
func Names() []string {
	names := maps.Keys(registry)
	slices.Sort(names)
	return names
}

// Creates the projection registered under the given name. Projections backed by the
// conformal grid load the default grid the first time one of them is requested.
func Lookup(name string) (Projection, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, NewProjectionNotFoundError(name)
	}
	return ctor()
}

// Multiplies the planar coordinates of another projection by a fixed factor, e.g. to go
// from projection units to BuildTheEarth blocks.
type ScaledProjection struct {
	Scale float64
	proj  Projection
}

func NewScaledProjection(proj Projection, scale float64) ScaledProjection {
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		panic("dymaxion: projection scale must be a positive finite number")
	}
	return ScaledProjection{
		Scale: scale,
		proj:  proj,
	}
}

func (s ScaledProjection) FromGeo(lon float64, lat float64) (float64, float64, error) {
	x, y, err := s.proj.FromGeo(lon, lat)
	if err != nil {
		return 0, 0, err
	}
	return x * s.Scale, y * s.Scale, nil
}

func (s ScaledProjection) ToGeo(x float64, y float64) (float64, float64, error) {
	return s.proj.ToGeo(x/s.Scale, y/s.Scale)
}

func (s ScaledProjection) Bounds() Bounds {
	b := s.proj.Bounds()
	return Bounds{
		MinX: b.MinX * s.Scale,
		MinY: b.MinY * s.Scale,
		MaxX: b.MaxX * s.Scale,
		MaxY: b.MaxY * s.Scale,
	}
}

func (s ScaledProjection) MetersPerUnit() float64 {
	return s.proj.MetersPerUnit() / s.Scale
}

func (s ScaledProjection) Upright() bool {
	return s.proj.Upright()
}

func (s ScaledProjection) Name() string {
	return s.proj.Name()
}

func (s ScaledProjection) Unscaled() Projection {
	return s.proj
}
