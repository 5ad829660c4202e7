package dymaxion

import (
	"math"
)

// Seam constants of the BuildTheEarth layout, fitted around the Bering Strait and the
// Arctic.
const (
	BeringX    = -0.3420420960118339
	BeringY    = -0.322211064085279
	ArcticY    = -0.2
	AleutianY  = -0.5000446805492526
	AleutianXL = -0.5149231279757507
	AleutianXR = -0.45
)

var (
	bteTheta = -150 * math.Pi / 180
	sinTheta = math.Sin(bteTheta)
	cosTheta = math.Cos(bteTheta)

	arcticM   = (ArcticY - root3*Arc/4) / (BeringX - -0.5*Arc)
	arcticB   = ArcticY - arcticM*BeringX
	aleutianM = (BeringY - AleutianY) / (BeringX - AleutianXR)
	aleutianB = BeringY - aleutianM*BeringX

	// shared vertical offset of both halves of the net
	bteOffsetY = 0.75 * Arc * root3
)

// The conformal Dymaxion net as rearranged by BuildTheEarth: Eurasia and Oceania are split
// off along the Bering Strait, rotated and placed to the other side of the Americas so that
// every continent is contiguous.
type BTEDymaxion struct {
	conformal *ConformalDymaxion
}

func NewBTEDymaxion(grid *ConformalGrid) *BTEDymaxion {
	return &BTEDymaxion{conformal: NewConformalDymaxion(grid)}
}

func (b *BTEDymaxion) Name() string {
	return "bte_conformal_dymaxion"
}

func (b *BTEDymaxion) String() string {
	return "BuildTheEarth Conformal Dymaxion"
}

func (b *BTEDymaxion) FromGeo(lon float64, lat float64) (float64, float64, error) {
	x, y, err := b.conformal.FromGeo(lon, lat)
	if err != nil {
		return 0, 0, err
	}

	easia := isEurasianPart(x, y)

	y -= bteOffsetY

	if easia {
		x += Arc
		x, y = cosTheta*x-sinTheta*y, sinTheta*x+cosTheta*y
	} else {
		x -= Arc
	}

	return y, -x, nil
}

func (b *BTEDymaxion) ToGeo(x float64, y float64) (float64, float64, error) {
	var easia bool
	if y < 0 {
		easia = x > 0
	} else if y > Arc/2 {
		easia = x > -root3*Arc/2
	} else {
		easia = y*-root3 < x
	}

	cx, cy := -y, x

	if easia {
		cx, cy = cosTheta*cx+sinTheta*cy, cosTheta*cy-sinTheta*cx
		cx -= Arc
	} else {
		cx += Arc
	}

	cy += bteOffsetY

	if easia != isEurasianPart(cx, cy) {
		return 0, 0, NewOutOfProjectionBoundsError(x, y, "point lies in the seam between the halves of the net")
	}

	return b.conformal.ToGeo(cx, cy)
}

func (b *BTEDymaxion) Bounds() Bounds {
	return Bounds{
		MinX: -1.5 * Arc * root3,
		MinY: -1.5 * Arc,
		MaxX: 3 * Arc,
		MaxY: root3 * Arc,
	}
}

func (b *BTEDymaxion) Upright() bool {
	return false
}

func (b *BTEDymaxion) MetersPerUnit() float64 {
	return b.conformal.MetersPerUnit()
}

// Whether a point of the conformal Dymaxion net belongs to the half that gets rotated.
func isEurasianPart(x float64, y float64) bool {
	if x > 0 {
		return false
	}
	if x < -0.5*Arc {
		return true
	}

	if y > root3*Arc/4 {
		return x < 0
	}

	if y < AleutianY {
		return y < (AleutianY+AleutianXL)-x
	}

	if y > BeringY {
		if y < ArcticY {
			return x < BeringX
		}
		return y < arcticM*x+arcticB
	}

	return y > aleutianM*x+aleutianB
}
