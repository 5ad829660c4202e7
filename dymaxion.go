package dymaxion

import (
	"math"

	"github.com/golang/geo/r3"
)

// Constants of the icosahedron inscribed in the unit sphere.
var (
	// Angle subtended by one edge.
	Arc = 2 * math.Asin(math.Sqrt(5-math.Sqrt(5))/math.Sqrt(10))
	// Distance from the center of the sphere to the center of a face.
	faceZ  = math.Sqrt(5+2*math.Sqrt(5)) / math.Sqrt(15)
	el     = math.Sqrt(8) / math.Sqrt(5+math.Sqrt(5))
	el6    = el / 6
	dve    = math.Sqrt(3+math.Sqrt(5)) / math.Sqrt(5+math.Sqrt(5))
	tanSum = -3 * el6 / dve
)

// Iterations of every Newton's method solve. There is no convergence check.
const newtonIterations = 5

const (
	maxLongitude = 180.1
	maxLatitude  = 90.1
)

// Maps between the face-local frame of a single icosahedron face and the planar triangle
// drawn for it on the net.
type triangleTransformer interface {
	forward(v r3.Vector) (x float64, y float64)
	inverse(x float64, y float64) r3.Vector
}

type gnomonicTriangle struct{}

func (gnomonicTriangle) forward(v r3.Vector) (float64, float64) {
	return triangleTransform(v)
}

func (gnomonicTriangle) inverse(x float64, y float64) r3.Vector {
	return inverseTriangleTransform(x, y)
}

// Buckminster Fuller's projection of the globe onto an unfolded icosahedron. Points are
// assigned to the face with the nearest center, projected onto that face, and the face is
// laid into its place on the net.
type Dymaxion struct {
	triangle triangleTransformer
}

func NewDymaxion() *Dymaxion {
	return &Dymaxion{triangle: gnomonicTriangle{}}
}

func (d *Dymaxion) Name() string {
	return "dymaxion"
}

func (d *Dymaxion) String() string {
	return "Dymaxion"
}

func (d *Dymaxion) FromGeo(lon float64, lat float64) (float64, float64, error) {
	if err := checkGeoInRange(lon, lat); err != nil {
		return 0, 0, err
	}

	vector := SphericalToCartesian(GeoToSpherical(lon, lat))
	faceID := findTriangle(vector)

	x, y := d.triangle.forward(faces[faceID].rotation.Apply(vector))
	if faces[faceID].flip {
		x, y = -x, -y
	}

	// faces 14 and 15 hold a half that is laid elsewhere on the net
	if ((faceID == 15 && x > y*root3) || faceID == 14) && x > 0 {
		x, y = 0.5*x-0.5*root3*y, 0.5*root3*x+0.5*y
		faceID += splitOffset
	}

	return x + faces[faceID].offset.X, y + faces[faceID].offset.Y, nil
}

func (d *Dymaxion) ToGeo(x float64, y float64) (float64, float64, error) {
	faceID := findTriangleGrid(x, y)
	if faceID == -1 {
		return 0, 0, NewOutOfProjectionBoundsError(x, y, "no face covers the point")
	}

	fx := x - faces[faceID].offset.X
	fy := y - faces[faceID].offset.Y

	outside := false
	switch faceID {
	case 14:
		outside = fx > 0
	case 20:
		outside = -fy*root3 > fx
	case 15:
		outside = fx > 0 && fx > fy*root3
	case 21:
		outside = fx < 0 || -fy*root3 > fx
	}
	if outside {
		return 0, 0, NewOutOfProjectionBoundsError(x, y, "point lies in the unused half of a split face")
	}

	if faces[faceID].flip {
		fx, fy = -fx, -fy
	}

	v := faces[faceID].inverse.Apply(d.triangle.inverse(fx, fy))
	lon, lat := SphericalToGeo(CartesianToSpherical(v))
	return lon, lat, nil
}

func (d *Dymaxion) Bounds() Bounds {
	return Bounds{
		MinX: -3 * Arc,
		MinY: -0.75 * Arc * root3,
		MaxX: 2.5 * Arc,
		MaxY: 0.75 * Arc * root3,
	}
}

func (d *Dymaxion) Upright() bool {
	return false
}

func (d *Dymaxion) MetersPerUnit() float64 {
	return math.Sqrt(EarthSurfaceArea / (20 * root3 * Arc * Arc / 4))
}

func checkGeoInRange(lon float64, lat float64) error {
	if !(math.Abs(lon) <= maxLongitude) || !(math.Abs(lat) <= maxLatitude) {
		return NewOutOfProjectionBoundsError(lon, lat, "geographic coordinate outside the globe")
	}
	return nil
}

// Projects a point in the face-local frame, with the face centered on the z axis, onto the
// planar triangle of the face.
func triangleTransform(v r3.Vector) (float64, float64) {
	s := faceZ / v.Z

	xp := s * v.X
	yp := s * v.Y

	a := math.Atan((2*yp/root3 - el6) / dve)
	b := math.Atan((xp - yp/root3 - el6) / dve)
	c := math.Atan((-xp - yp/root3 - el6) / dve)

	return 0.5 * (b - c), (2*a - b - c) / (2 * root3)
}

// Inverse of triangleTransform, solving tan(a) + tan(b) + tan(c) = tanSum for tan(c) with a fixed
// number of Newton iterations.
func inverseTriangleTransform(x float64, y float64) r3.Vector {
	tanaoff := math.Tan(root3*y + x)
	tanboff := math.Tan(2 * x)

	anumer := tanaoff*tanaoff + 1
	bnumer := tanboff*tanboff + 1

	tana := tanaoff
	tanb := tanboff
	tanc := 0.0

	adenom := 1.0
	bdenom := 1.0

	for i := 0; i < newtonIterations; i++ {
		f := tana + tanb + tanc - tanSum
		fp := anumer*adenom*adenom + bnumer*bdenom*bdenom + 1

		tanc -= f / fp

		adenom = 1 / (1 - tanc*tanaoff)
		bdenom = 1 / (1 - tanc*tanboff)

		tana = (tanc + tanaoff) * adenom
		tanb = (tanc + tanboff) * bdenom
	}

	yp := root3 * (dve*tana + el6) / 2
	xp := dve*tanb + yp/root3 + el6

	xpoz := xp / faceZ
	ypoz := yp / faceZ

	zn := 1 / math.Sqrt(1+xpoz*xpoz+ypoz*ypoz)
	return r3.Vector{X: zn * xpoz, Y: zn * ypoz, Z: zn}
}
