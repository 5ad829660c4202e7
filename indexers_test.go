package dymaxion

import (
	"errors"
	"testing"

	"github.com/owlpinetech/flatsphere"
	"github.com/owlpinetech/healpix"
)

func TestProjectionlessIndexerGrid(t *testing.T) {
	testCases := []struct {
		name     string
		width    int
		height   int
		rowMajor bool
	}{
		{"square row", 50, 50, true},
		{"square column", 53, 53, false},
		{"rect wide row", 50, 25, true},
		{"rect wide column", 53, 24, false},
		{"rect tall row", 25, 50, true},
		{"rect tall column", 24, 53, false},
		{"bte tiles", 86400, 43200, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			indexer := NewProjectionlessIndexer(tc.width, tc.height, tc.rowMajor)
			checkInd(t, indexer, GridLocation{0, 0}, 0)
			checkInd(t, indexer, GridLocation{tc.width - 1, tc.height - 1}, tc.width*tc.height-1)
			if tc.rowMajor {
				checkInd(t, indexer, GridLocation{1, 0}, 1)
				checkInd(t, indexer, GridLocation{tc.width - 1, 0}, tc.width-1)
				checkInd(t, indexer, GridLocation{0, tc.height - 1}, tc.width*(tc.height-1))
			} else {
				checkInd(t, indexer, GridLocation{0, 1}, 1)
				checkInd(t, indexer, GridLocation{0, tc.height - 1}, tc.height-1)
				checkInd(t, indexer, GridLocation{tc.width - 1, 0}, (tc.width-1)*tc.height)
			}
			checkIndOutOfBounds(t, indexer, GridLocation{tc.width, 0})
			checkIndOutOfBounds(t, indexer, GridLocation{0, -1})
		})
	}

	indexer := NewProjectionlessIndexer(10, 10, true)
	for i := 0; i < indexer.Size(); i++ {
		x := i % 10
		y := i / 10
		ind, err := indexer.ToIndex(GridLocation{X: x, Y: y})
		if err != nil {
			t.Fatal(err)
		}
		if ind != i {
			t.Errorf("expected to see index %d at %d,%d, but got %d", i, x, y, ind)
		}
	}

	checkNotSupported(t, indexer, GeoLocation{0, 0})
}

func TestProjectedGridIndexerEquirectangular(t *testing.T) {
	testCases := []struct {
		name   string
		width  int
		height int
	}{
		{"tiny square", 3, 3},
		{"tiny width", 3, 101},
		{"tiny height", 101, 3},
		{"square", 100, 100},
		{"rect wide", 100, 50},
		{"rect tall", 50, 100},
		{"huge square", 100_000, 100_000},
	}

	proj := FromFlatsphere("equirectangular", flatsphere.NewEquirectangular(0))
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			indexer := NewProjectedGridIndexer(proj, tc.width, tc.height, true)
			checkInd(t, indexer, GeoLocation{-180, -90}, 0)
			checkInd(t, indexer, GeoLocation{180, -90}, tc.width-1)
			checkInd(t, indexer, GeoLocation{-180, 90}, tc.width*(tc.height-1))
			checkInd(t, indexer, GeoLocation{180, 90}, tc.width*tc.height-1)
			checkInd(t, indexer, GeoLocation{0, 0}, (tc.width*((tc.height-1)/2))+(tc.width-1)/2)
		})
	}
}

func TestProjectedGridIndexerDymaxion(t *testing.T) {
	proj := NewDymaxion()
	indexer := NewProjectedGridIndexer(proj, 100, 50, true)
	b := proj.Bounds()

	if indexer.Name() != "projected-grid-dymaxion" {
		t.Errorf("unexpected indexer name %s", indexer.Name())
	}
	if indexer.Size() != 5000 {
		t.Errorf("expected 5000 pixels, got %d", indexer.Size())
	}

	checkInd(t, indexer, ProjectedLocation{b.MinX, b.MinY}, 0)
	checkInd(t, indexer, ProjectedLocation{b.MaxX, b.MaxY}, 4999)
	checkInd(t, indexer, ProjectedLocation{b.MaxX, b.MinY}, 99)
	checkIndOutOfBounds(t, indexer, ProjectedLocation{b.MaxX + 0.01, 0})
	checkIndOutOfBounds(t, indexer, ProjectedLocation{0, b.MinY - 0.01})
	checkIndOutOfBounds(t, indexer, GeoLocation{181, 0})

	// a place on the globe lands in the pixel holding its projected point
	x, y, err := proj.FromGeo(2.35, 48.85)
	if err != nil {
		t.Fatal(err)
	}
	col := int((x - b.MinX) / b.Width() * 99)
	row := int((y - b.MinY) / b.Height() * 49)
	checkInd(t, indexer, GeoLocation{2.35, 48.85}, row*100+col)

	// the north pole, from a cartesian point
	northX, northY, err := proj.FromGeo(0, 90)
	if err != nil {
		t.Fatal(err)
	}
	want, err := indexer.ToIndex(ProjectedLocation{northX, northY})
	if err != nil {
		t.Fatal(err)
	}
	checkInd(t, indexer, RectangularLocation{0, 0, 1}, want)

	checkNotSupported(t, indexer, RingLocation(3))
}

func TestHealpixIndexer(t *testing.T) {
	testCases := []struct {
		name   string
		order  healpix.HealpixOrder
		scheme healpix.HealpixScheme
	}{
		{"order 0 nest", 0, healpix.NestScheme},
		{"order 2 nest", 2, healpix.NestScheme},
		{"order 2 ring", 2, healpix.RingScheme},
		{"order 8 nest", 8, healpix.NestScheme},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			indexer := NewHealpixIndexer(tc.order, tc.scheme)
			if indexer.Size() != 12*(1<<(2*tc.order)) {
				t.Errorf("expected %d pixels, got %d", 12*(1<<(2*tc.order)), indexer.Size())
			}

			for _, c := range cities {
				ind, err := indexer.ToIndex(GeoLocation{c.lon, c.lat})
				if err != nil {
					t.Fatal(err)
				}
				if ind < 0 || ind >= indexer.Size() {
					t.Errorf("index %d for %s outside of [0, %d)", ind, c.name, indexer.Size())
				}
			}

			checkInd(t, indexer, IndexLocation(7), 7)
			checkIndOutOfBounds(t, indexer, GeoLocation{0, 91})
			checkNotSupported(t, indexer, GridLocation{1, 1})
		})
	}

	indexer := NewHealpixIndexer(4, healpix.NestScheme)
	if indexer.Projection().Name() != "healpix" {
		t.Errorf("unexpected projection %s", indexer.Projection().Name())
	}
	// the north and south poles never share a pixel
	north, err := indexer.ToIndex(GeoLocation{0, 89.9})
	if err != nil {
		t.Fatal(err)
	}
	south, err := indexer.ToIndex(GeoLocation{0, -89.9})
	if err != nil {
		t.Fatal(err)
	}
	if north == south {
		t.Errorf("expected the poles in different pixels, both got %d", north)
	}
}

func TestHealpixIndexerWesternHemisphere(t *testing.T) {
	for _, scheme := range []healpix.HealpixScheme{healpix.NestScheme, healpix.RingScheme} {
		indexer := NewHealpixIndexer(0, scheme)
		for _, loc := range []GeoLocation{{-74, 40.7}, {-0.001, 0}, {-90, -45}, {-179.9, 60}, {-180, 0}, {180.05, 10}} {
			ind, err := indexer.ToIndex(loc)
			if err != nil {
				t.Fatal(err)
			}
			if ind < 0 || ind >= indexer.Size() {
				t.Errorf("index %d for %v outside of [0, %d)", ind, loc, indexer.Size())
			}
		}

		// both sides of the antimeridian
		east, err := indexer.ToIndex(GeoLocation{180, 0})
		if err != nil {
			t.Fatal(err)
		}
		west, err := indexer.ToIndex(GeoLocation{-180, 0})
		if err != nil {
			t.Fatal(err)
		}
		if east != west {
			t.Errorf("expected -180 and 180 to share a pixel, got %d and %d", west, east)
		}
	}
}

func checkIndOutOfBounds(t *testing.T, indexer LocationIndexer, loc Location) {
	t.Helper()
	_, err := indexer.ToIndex(loc)
	var oobErr *OutOfProjectionBoundsError
	if err == nil || !errors.As(err, &oobErr) {
		t.Errorf("expected out of bounds error for %v, got %v", loc, err)
	}
}

func checkNotSupported(t *testing.T, indexer LocationIndexer, loc Location) {
	t.Helper()
	_, err := indexer.ToIndex(loc)
	var nsErr *LocationNotSupportedError
	if err == nil || !errors.As(err, &nsErr) {
		t.Errorf("expected location not supported error for %v, got %v", loc, err)
	}
}

func checkInd(t *testing.T, indexer LocationIndexer, loc Location, expected int) {
	t.Helper()
	ind, err := indexer.ToIndex(loc)
	if err != nil {
		t.Error(err)
	} else if ind != expected {
		t.Errorf("expected index %d for %v, got %d", expected, loc, ind)
	}
}
