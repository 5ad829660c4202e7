package dymaxion

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestGeoToSpherical(t *testing.T) {
	testCases := []struct {
		name      string
		lon, lat  float64
		lambda    float64
		phi       float64
		cartesian r3.Vector
	}{
		{"north pole", 0, 90, 0, 0, r3.Vector{X: 0, Y: 0, Z: 1}},
		{"south pole", 0, -90, 0, math.Pi, r3.Vector{X: 0, Y: 0, Z: -1}},
		{"null island", 0, 0, 0, math.Pi / 2, r3.Vector{X: 1, Y: 0, Z: 0}},
		{"east", 90, 0, math.Pi / 2, math.Pi / 2, r3.Vector{X: 0, Y: 1, Z: 0}},
		{"antimeridian", 180, 0, math.Pi, math.Pi / 2, r3.Vector{X: -1, Y: 0, Z: 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lambda, phi := GeoToSpherical(tc.lon, tc.lat)
			if diff := cmp.Diff([]float64{tc.lambda, tc.phi}, []float64{lambda, phi}, cmpopts.EquateApprox(0, 1e-15)); diff != "" {
				t.Errorf("unexpected spherical coordinate (-want +got):\n%s", diff)
			}
			vec := SphericalToCartesian(lambda, phi)
			if diff := cmp.Diff(tc.cartesian, vec, cmpopts.EquateApprox(0, 1e-15)); diff != "" {
				t.Errorf("unexpected cartesian coordinate (-want +got):\n%s", diff)
			}
		})
	}
}

func FuzzGeoRoundTrip(f *testing.F) {
	f.Add(0.0, 0.0)
	f.Add(-74.0, 40.7)
	f.Add(179.9, -89.9)
	f.Add(-179.9, 89.9)
	f.Fuzz(func(t *testing.T, lon float64, lat float64) {
		if !(math.Abs(lon) < 180) || !(math.Abs(lat) < 89.999) {
			t.Skip()
		}
		v := SphericalToCartesian(GeoToSpherical(lon, lat))
		if math.Abs(v.Norm()-1) > 1e-12 {
			t.Errorf("expected unit vector for %v,%v, got norm %v", lon, lat, v.Norm())
		}
		lon2, lat2 := SphericalToGeo(CartesianToSpherical(v))
		if math.Abs(lon2-lon) > 1e-9 || math.Abs(lat2-lat) > 1e-9 {
			t.Errorf("expected %v,%v after round trip, got %v,%v", lon, lat, lon2, lat2)
		}
	})
}

func TestZYZRotation(t *testing.T) {
	identity := Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	testCases := []struct {
		name    string
		a, b, c float64
	}{
		{"zero", 0, 0, 0},
		{"z only", 0.7, 0, 0},
		{"y only", 0, 1.1, 0},
		{"all", -0.4, 2.2, 3.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rot := ZYZRotation(tc.a, tc.b, tc.c)
			if diff := cmp.Diff(identity, rot.Mul(rot.Transpose()), cmpopts.EquateApprox(0, 1e-14)); diff != "" {
				t.Errorf("rotation is not orthonormal (-want +got):\n%s", diff)
			}
			inv := ZYZRotation(-tc.c, -tc.b, -tc.a)
			if diff := cmp.Diff(rot.Transpose(), inv, cmpopts.EquateApprox(0, 1e-14)); diff != "" {
				t.Errorf("reversed angles do not invert the rotation (-want +got):\n%s", diff)
			}
		})
	}

	// a pure z rotation turns the x axis toward the y axis
	got := ZYZRotation(math.Pi/2, 0, 0).Apply(r3.Vector{X: 1, Y: 0, Z: 0})
	if diff := cmp.Diff(r3.Vector{X: 0, Y: 1, Z: 0}, got, cmpopts.EquateApprox(0, 1e-15)); diff != "" {
		t.Errorf("unexpected rotated vector (-want +got):\n%s", diff)
	}
}
