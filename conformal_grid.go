package dymaxion

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
)

const (
	// Number of cells along each edge of the triangular conformal grid.
	GridSideLength = 256
	// Number of displacement vectors stored in a conformal grid table.
	GridVectors = (GridSideLength + 1) * (GridSideLength + 2) / 2
	// Size in bytes of one stored component of a displacement vector.
	GridComponentSize = 8

	// Every displacement vector is multiplied by this factor once loaded.
	VectorScaleFactor = 1.0 / 1.1473979730192934

	// Environment variable naming the conformal grid table used by DefaultConformalGrid.
	ConformalGridEnv = "DYMAXION_CONFORMAL_GRID"
	// Location of the default conformal grid table when the environment variable is unset.
	DefaultConformalGridPath = "data/conformal"
)

// Triangular grid of precomputed displacement vectors that bends the raw triangle of each
// face into a conformal one. Row u holds GridSideLength+1-u entries indexed by v, so only
// u+v <= GridSideLength exists. Immutable once loaded.
type ConformalGrid struct {
	vx [][]float64
	vy [][]float64
}

// The interpolated displacement (F, G) at a point of the grid, and its partial
// derivatives with respect to the point's coordinates.
type GridSample struct {
	F    float64
	G    float64
	DFDX float64
	DFDY float64
	DGDX float64
	DGDY float64
}

// Reads a conformal grid table: GridVectors big-endian float64 pairs, v-major, with u
// running from 0 to GridSideLength-v within each v. Every component is scaled by
// VectorScaleFactor.
func ReadConformalGrid(r io.Reader) (*ConformalGrid, error) {
	raw := make([]byte, GridVectors*2*GridComponentSize)
	if n, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("%w: read %d of %d bytes: %v", ErrMalformedGrid, n, len(raw), err)
	}

	grid := &ConformalGrid{
		vx: make([][]float64, GridSideLength+1),
		vy: make([][]float64, GridSideLength+1),
	}
	for u := 0; u <= GridSideLength; u++ {
		grid.vx[u] = make([]float64, GridSideLength+1-u)
		grid.vy[u] = make([]float64, GridSideLength+1-u)
	}

	offset := 0
	for v := 0; v <= GridSideLength; v++ {
		for u := 0; u <= GridSideLength-v; u++ {
			grid.vx[u][v] = decodeComponent(raw[offset:]) * VectorScaleFactor
			grid.vy[u][v] = decodeComponent(raw[offset+GridComponentSize:]) * VectorScaleFactor
			offset += 2 * GridComponentSize
		}
	}
	return grid, nil
}

func decodeComponent(b []byte) float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(b))
}

// Loads the conformal grid table stored in the file at path.
func OpenConformalGrid(path string) (*ConformalGrid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	grid, err := ReadConformalGrid(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("dymaxion: loading conformal grid %s: %w", path, err)
	}
	return grid, nil
}

var defaultGrid = sync.OnceValues(func() (*ConformalGrid, error) {
	path := os.Getenv(ConformalGridEnv)
	if path == "" {
		path = DefaultConformalGridPath
	}
	return OpenConformalGrid(path)
})

// The process-wide conformal grid, loaded from disk on first use only. Later calls return
// the same grid, or the same error.
func DefaultConformalGrid() (*ConformalGrid, error) {
	return defaultGrid()
}

// The stored, scaled displacement vector at grid corner (u, v).
func (g *ConformalGrid) Vector(u int, v int) (float64, float64) {
	return g.vx[u][v], g.vy[u][v]
}

// Barycentric interpolation of the displacement at (x, y), in the frame where the grid
// covers the unit triangle with corners (0, 0), (1, 0) and (1/2, sqrt(3)/2). Points outside
// the triangle are extrapolated from the nearest edge cell.
func (g *ConformalGrid) Interpolate(x float64, y float64) GridSample {
	x *= GridSideLength
	y *= GridSideLength

	// skewed coordinates along the grid axes
	v := 2 * y / root3
	u := x - v*0.5

	u1 := int(u)
	v1 := int(v)

	if u1 < 0 {
		u1 = 0
	} else if u1 >= GridSideLength {
		u1 = GridSideLength - 1
	}

	if v1 < 0 {
		v1 = 0
	} else if v1 >= GridSideLength-u1 {
		v1 = GridSideLength - u1 - 1
	}

	var valx1, valy1, valx2, valy2, valx3, valy3 float64
	var x3, y3 float64
	flip := 1.0

	if y < -root3*(x-float64(u1)-float64(v1)-1) || v1 == GridSideLength-u1-1 {
		valx1, valy1 = g.vx[u1][v1], g.vy[u1][v1]
		valx2, valy2 = g.vx[u1][v1+1], g.vy[u1][v1+1]
		valx3, valy3 = g.vx[u1+1][v1], g.vy[u1+1][v1]

		y3 = 0.5 * root3 * float64(v1)
		x3 = float64(u1+1) + 0.5*float64(v1)
	} else {
		valx1, valy1 = g.vx[u1][v1+1], g.vy[u1][v1+1]
		valx2, valy2 = g.vx[u1+1][v1], g.vy[u1+1][v1]
		valx3, valy3 = g.vx[u1+1][v1+1], g.vy[u1+1][v1+1]

		// mirror the upper triangle onto the lower one
		flip = -1
		y = -y

		y3 = -(0.5 * root3 * float64(v1+1))
		x3 = float64(u1+1) + 0.5*float64(v1+1)
	}

	w1 := -(y-y3)/root3 - (x - x3)
	w2 := 2 * (y - y3) / root3
	w3 := 1 - w1 - w2

	return GridSample{
		F:    valx1*w1 + valx2*w2 + valx3*w3,
		G:    valy1*w1 + valy2*w2 + valy3*w3,
		DFDX: (valx3 - valx1) * GridSideLength,
		DFDY: GridSideLength * flip * (2*valx2 - valx1 - valx3) / root3,
		DGDX: (valy3 - valy1) * GridSideLength,
		DGDY: GridSideLength * flip * (2*valy2 - valy1 - valy3) / root3,
	}
}

// Finds the grid point whose interpolated displacement is (expectedF, expectedG), starting
// from (x, y). Runs exactly the given number of iterations.
func (g *ConformalGrid) newton(expectedF float64, expectedG float64, x float64, y float64, iterations int) (float64, float64) {
	for i := 0; i < iterations; i++ {
		s := g.Interpolate(x, y)

		f := s.F - expectedF
		gv := s.G - expectedG

		determinant := 1 / (s.DFDX*s.DGDY - s.DFDY*s.DGDX)

		x -= determinant * (s.DGDY*f - s.DFDY*gv)
		y -= determinant * (-s.DGDX*f + s.DFDX*gv)
	}
	return x, y
}
