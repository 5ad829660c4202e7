package dymaxion

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Faces 20 and 21 are the halves of faces 14 and 15 that get rotated into a different spot
// of the net.
const (
	naturalFaces = 20
	totalFaces   = 22
	splitOffset  = 6
)

// The twelve icosahedron vertices as longitude, latitude in degrees.
var vertexGeo = [12][2]float64{
	{10.536199, 64.700000},
	{-5.245390, 2.300882},
	{58.157706, 10.447378},
	{122.300000, 39.100000},
	{-143.478490, 50.103201},
	{-67.132330, 23.717925},
	{36.521510, -50.103200},
	{112.867673, -23.717930},
	{174.754610, -2.300882},
	{-121.842290, -10.447350},
	{-57.700000, -39.100000},
	{-169.463800, -64.700000},
}

// Vertex indices of each face. The first vertex decides the face orientation.
var faceVertices = [totalFaces][3]int{
	{2, 1, 6},
	{1, 0, 2},
	{0, 1, 5},
	{1, 5, 10},
	{1, 6, 10},
	{7, 2, 6},
	{2, 3, 7},
	{3, 0, 2},
	{0, 3, 4},
	{4, 0, 5},
	{5, 4, 9},
	{9, 5, 10},
	{10, 9, 11},
	{11, 6, 10},
	{6, 7, 11},
	{8, 3, 7},
	{8, 3, 4},
	{8, 4, 9},
	{9, 8, 11},
	{7, 8, 11},
	{11, 6, 7},
	{3, 7, 8},
}

// Face centers on the net in units of (ARC/2, ARC*sqrt(3)/12).
var netCenters = [totalFaces][2]float64{
	{-3, 7},
	{-2, 5},
	{-1, 7},
	{2, 5},
	{4, 5},
	{-4, 1},
	{-3, -1},
	{-2, 1},
	{-1, -1},
	{0, 1},
	{1, -1},
	{2, 1},
	{3, -1},
	{4, 1},
	{5, -1},
	{-3, -5},
	{-1, -5},
	{1, -5},
	{2, -7},
	{-4, -7},
	{-5, -5},
	{-2, -7},
}

var flipTriangle = [totalFaces]bool{
	true, false, true, false, false,
	true, false, true, false, true, false, true, false, true, false,
	true, true, true, false, false,
	true, false,
}

// Which face occupies each cell of the 3 row by 11 column skewed grid laid over the net.
var faceOnGrid = [33]int{
	-1, -1, 0, 1, 2, -1, -1, 3, -1, 4, -1,
	-1, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14,
	20, 19, 15, 21, 16, -1, 17, 18, -1, -1, -1,
}

type face struct {
	centroid r3.Vector
	rotation Matrix3 // world frame to face frame
	inverse  Matrix3 // face frame to world frame
	offset   r2.Point
	flip     bool
}

var faces = buildFaces()

func buildFaces() [totalFaces]face {
	var vertSpherical [12][2]float64
	var vertCartesian [12]r3.Vector
	for i, geo := range vertexGeo {
		lambda, phi := GeoToSpherical(geo[0], geo[1])
		vertSpherical[i] = [2]float64{lambda, phi}
		vertCartesian[i] = SphericalToCartesian(lambda, phi)
	}

	var built [totalFaces]face
	for i, fv := range faceVertices {
		centroid := vertCartesian[fv[0]].Add(vertCartesian[fv[1]]).Add(vertCartesian[fv[2]]).Normalize()
		centroidLambda, centroidPhi := CartesianToSpherical(centroid)

		// angle of the first vertex around the centroid once the centroid is at the pole
		vertex := vertSpherical[fv[0]]
		vLambda, _ := yRotation(vertex[0]-centroidLambda, vertex[1], -centroidPhi)

		built[i] = face{
			centroid: centroid,
			rotation: ZYZRotation(-centroidLambda, -centroidPhi, math.Pi/2-vLambda),
			inverse:  ZYZRotation(vLambda-math.Pi/2, centroidPhi, centroidLambda),
			offset: r2.Point{
				X: netCenters[i][0] * 0.5 * Arc,
				Y: netCenters[i][1] * Arc * root3 / 12,
			},
			flip: flipTriangle[i],
		}
	}
	return built
}

// Rotates a spherical coordinate about the y axis.
func yRotation(lambda float64, phi float64, rot float64) (float64, float64) {
	c := SphericalToCartesian(lambda, phi)
	sinr, cosr := math.Sincos(rot)
	c = r3.Vector{
		X: c.Z*sinr + c.X*cosr,
		Y: c.Y,
		Z: c.Z*cosr - c.X*sinr,
	}.Normalize()
	return CartesianToSpherical(c)
}

// Nearest face centroid to the point on the unit sphere, among the natural faces. Any
// centroid closer than the fast path distance is taken without looking at the rest.
func findTriangle(v r3.Vector) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i := 0; i < naturalFaces; i++ {
		dissq := faces[i].centroid.Sub(v).Norm2()
		if dissq < minDist {
			if dissq < 0.1 {
				return i
			}
			nearest = i
			minDist = dissq
		}
	}
	return nearest
}

// Face containing the planar net point, or -1 when no face covers it.
func findTriangleGrid(x float64, y float64) int {
	xp := x / Arc
	yp := y / (Arc * root3)

	// the net spans less than three edges either side of the origin
	if !(math.Abs(xp) <= 3) {
		return -1
	}

	var row int
	if yp > -0.25 {
		if yp < 0.25 {
			row = 1
		} else if yp <= 0.75 {
			row = 0
			yp = 0.5 - yp
		} else {
			return -1
		}
	} else if yp >= -0.75 {
		row = 2
		yp = -yp - 0.5
	} else {
		return -1
	}

	yp += 0.25

	gx := int(math.Floor(xp - yp))
	gy := int(math.Floor(xp + yp))

	col := 2*gx + 6
	if gy != gx {
		col++
	}
	if col < 0 || col >= 11 {
		return -1
	}
	return faceOnGrid[row*11+col]
}
