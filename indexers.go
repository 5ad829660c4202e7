package dymaxion

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/owlpinetech/flatsphere"
	"github.com/owlpinetech/healpix"
)

// Common functionality for converting between the various coordinate systems and pixel
// indices of a raster laid over a projected map.
type LocationIndexer interface {
	ToIndex(Location) (int, error)
	Projection() Projection
	Name() string
	Size() int
}

// Simple indexing into a grid, no projection provided by this indexer. Supports either
// row-major or column-major storage of the data for particular access patterns.
type ProjectionlessIndexer struct {
	Width    int  `json:"width"`
	Height   int  `json:"height"`
	RowMajor bool `json:"rowmajor"`
}

func NewProjectionlessIndexer(width int, height int, rowMajor bool) ProjectionlessIndexer {
	if width < 1 || height < 1 {
		panic("dymaxion: indexer grid must be at least one pixel wide and tall")
	}
	return ProjectionlessIndexer{
		Width:    width,
		Height:   height,
		RowMajor: rowMajor,
	}
}

func (p ProjectionlessIndexer) Name() string {
	return "projectionless"
}

func (p ProjectionlessIndexer) Projection() Projection {
	return nil
}

func (p ProjectionlessIndexer) Size() int {
	return p.Width * p.Height
}

func (p ProjectionlessIndexer) ToIndex(loc Location) (int, error) {
	switch val := loc.(type) {
	case IndexLocation:
		return int(val), nil
	case GridLocation:
		if val.X < 0 || val.X >= p.Width || val.Y < 0 || val.Y >= p.Height {
			return -1, NewOutOfProjectionBoundsError(float64(val.X), float64(val.Y), "outside the pixel grid")
		}
		if p.RowMajor {
			return val.Y*p.Width + val.X, nil
		}
		return val.X*p.Height + val.Y, nil
	default:
		return -1, NewLocationNotSupportedError(p.Name(), loc)
	}
}

// Lays a width by height pixel grid over the planar bounds of a projection, so that
// (MinX, MinY) falls in pixel (0, 0) and (MaxX, MaxY) in pixel (width-1, height-1). With the
// BTE projection this finds the tile holding a place on the BuildTheEarth map.
type ProjectedGridIndexer struct {
	grid ProjectionlessIndexer
	proj Projection
}

func NewProjectedGridIndexer(proj Projection, width int, height int, rowMajor bool) ProjectedGridIndexer {
	return ProjectedGridIndexer{
		grid: NewProjectionlessIndexer(width, height, rowMajor),
		proj: proj,
	}
}

func (p ProjectedGridIndexer) Name() string {
	return "projected-grid-" + p.proj.Name()
}

func (p ProjectedGridIndexer) Projection() Projection {
	return p.proj
}

func (p ProjectedGridIndexer) Size() int {
	return p.grid.Size()
}

func (p ProjectedGridIndexer) ToIndex(loc Location) (int, error) {
	switch val := loc.(type) {
	case IndexLocation:
		return int(val), nil
	case GridLocation:
		return p.grid.ToIndex(loc)
	case GeoLocation:
		x, y, err := p.proj.FromGeo(val.Longitude, val.Latitude)
		if err != nil {
			return -1, err
		}
		return p.ToIndex(ProjectedLocation{x, y})
	case ProjectedLocation:
		bounds := p.proj.Bounds()
		if !bounds.Contains(val.X, val.Y) {
			return -1, NewOutOfProjectionBoundsError(val.X, val.Y, "outside the bounds of "+p.proj.Name())
		}
		xPix := ((val.X - bounds.MinX) / bounds.Width()) * float64(p.grid.Width-1)
		yPix := ((val.Y - bounds.MinY) / bounds.Height()) * float64(p.grid.Height-1)
		return p.ToIndex(GridLocation{int(xPix), int(yPix)})
	case RectangularLocation:
		return p.ToIndex(val.ToGeo())
	default:
		return -1, NewLocationNotSupportedError(p.Name(), loc)
	}
}

// Pixelizes the globe using the HEALPix pixelisation method, every pixel covering the same
// area. Provides storage options of both ring and nested schemes.
type HealpixIndexer struct {
	Scheme healpix.HealpixScheme `json:"scheme"`
	Order  healpix.HealpixOrder  `json:"order"`
	proj   Projection
}

func NewHealpixIndexer(order healpix.HealpixOrder, scheme healpix.HealpixScheme) HealpixIndexer {
	return HealpixIndexer{
		Scheme: scheme,
		Order:  order,
		proj:   FromFlatsphere("healpix", flatsphere.NewHEALPixStandard()),
	}
}

func (h HealpixIndexer) Name() string {
	return "healpix"
}

func (h HealpixIndexer) Projection() Projection {
	return h.proj
}

func (h HealpixIndexer) Size() int {
	return h.Order.Pixels()
}

func (h HealpixIndexer) ToIndex(loc Location) (int, error) {
	switch val := loc.(type) {
	case IndexLocation:
		return int(val), nil
	case RingLocation:
		return healpix.RingPixel(int(val)).PixelId(h.Order, h.Scheme), nil
	case NestLocation:
		return healpix.NestPixel(int(val)).PixelId(h.Order, h.Scheme), nil
	case GeoLocation:
		if err := checkGeoInRange(val.Longitude, val.Latitude); err != nil {
			return -1, err
		}
		lat := (s1.Angle(val.Latitude) * s1.Degree).Radians()
		lon := math.Mod((s1.Angle(val.Longitude) * s1.Degree).Radians(), 2*math.Pi)
		// healpix wants the longitude in [0, 2pi)
		if lon < 0 {
			lon += 2 * math.Pi
		}
		if lon >= 2*math.Pi {
			lon -= 2 * math.Pi
		}
		return healpix.NewLatLonCoordinate(lat, lon).PixelId(h.Order, h.Scheme), nil
	case ProjectedLocation:
		return healpix.NewProjectionCoordinate(val.X, val.Y).PixelId(h.Order, h.Scheme), nil
	case RectangularLocation:
		return h.ToIndex(val.ToGeo())
	default:
		return -1, NewLocationNotSupportedError(h.Name(), loc)
	}
}
