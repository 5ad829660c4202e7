package dymaxion

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

var root3 = math.Sqrt(3)

// A 3x3 rotation matrix, applied to column vectors.
type Matrix3 [3][3]float64

// Converts a longitude and latitude in degrees into spherical coordinates in radians. The
// returned phi is the colatitude, 0 at the north pole and pi at the south pole.
func GeoToSpherical(lon float64, lat float64) (lambda float64, phi float64) {
	lambda = (s1.Angle(lon) * s1.Degree).Radians()
	phi = (s1.Angle(90-lat) * s1.Degree).Radians()
	return
}

// Inverse of GeoToSpherical.
func SphericalToGeo(lambda float64, phi float64) (lon float64, lat float64) {
	return s1.Angle(lambda).Degrees(), 90 - s1.Angle(phi).Degrees()
}

// Embeds a spherical coordinate on the unit sphere.
func SphericalToCartesian(lambda float64, phi float64) r3.Vector {
	sinPhi := math.Sin(phi)
	return r3.Vector{
		X: sinPhi * math.Cos(lambda),
		Y: sinPhi * math.Sin(lambda),
		Z: math.Cos(phi),
	}
}

func CartesianToSpherical(v r3.Vector) (lambda float64, phi float64) {
	lambda = math.Atan2(v.Y, v.X)
	phi = math.Atan2(math.Sqrt(v.X*v.X+v.Y*v.Y), v.Z)
	return
}

// Builds the rotation matrix for the Euler angles a, b and c, applied about the Z, Y and Z
// axes in that order.
func ZYZRotation(a float64, b float64, c float64) Matrix3 {
	sina, cosa := math.Sincos(a)
	sinb, cosb := math.Sincos(b)
	sinc, cosc := math.Sincos(c)

	return Matrix3{
		{cosa*cosb*cosc - sinc*sina, -sina*cosb*cosc - sinc*cosa, cosc * sinb},
		{sinc*cosb*cosa + cosc*sina, cosc*cosa - sinc*cosb*sina, sinc * sinb},
		{-sinb * cosa, sinb * sina, cosb},
	}
}

// Multiplies the matrix with the column vector v.
func (m Matrix3) Apply(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

func (m Matrix3) Transpose() Matrix3 {
	var t Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = m[j][i]
		}
	}
	return t
}

func (m Matrix3) Mul(o Matrix3) Matrix3 {
	var p Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				p[i][j] += m[i][k] * o[k][j]
			}
		}
	}
	return p
}
