package dymaxion

import "github.com/golang/geo/r3"

type Location interface{}

type IndexLocation int

type RingLocation int

type NestLocation int

type GridLocation struct {
	X int
	Y int
}

// A point on the globe, in degrees.
type GeoLocation struct {
	Longitude float64
	Latitude  float64
}

// A point on the planar map of a projection, in the projection's own units.
type ProjectedLocation struct {
	X float64
	Y float64
}

type RectangularLocation struct {
	X float64
	Y float64
	Z float64
}

func (r RectangularLocation) ToGeo() GeoLocation {
	v := r3.Vector{X: r.X, Y: r.Y, Z: r.Z}
	lon, lat := SphericalToGeo(CartesianToSpherical(v))
	return GeoLocation{Longitude: lon, Latitude: lat}
}
