// Command dymaxion converts coordinates between the globe and the planar maps of the
// projections in the dymaxion package.
//
// Usage:
//
//	dymaxion [flags] fromgeo LON LAT
//	dymaxion [flags] togeo X Y
//	dymaxion [flags] index LON LAT
//	dymaxion [flags] bounds
//	dymaxion list
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/owlpinetech/dymaxion"
	"github.com/owlpinetech/healpix"
	"golang.org/x/exp/slog"
)

type options struct {
	projection string
	grid       string
	scale      float64
	blocks     bool
	indexer    string
	width      int
	height     int
	order      int
	verbose    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("dymaxion", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.projection, "projection", "bte_conformal_dymaxion", "name of the projection, see 'list'")
	fs.StringVar(&opts.grid, "grid", "", "conformal grid table, overrides $"+dymaxion.ConformalGridEnv)
	fs.Float64Var(&opts.scale, "scale", 1, "factor applied to planar coordinates")
	fs.BoolVar(&opts.blocks, "blocks", false, "scale planar coordinates to BuildTheEarth blocks")
	fs.StringVar(&opts.indexer, "indexer", "grid", "pixel indexer used by 'index': grid or healpix")
	fs.IntVar(&opts.width, "width", 1024, "pixel grid width for the grid indexer")
	fs.IntVar(&opts.height, "height", 512, "pixel grid height for the grid indexer")
	fs.IntVar(&opts.order, "order", 8, "HEALPix order for the healpix indexer")
	fs.BoolVar(&opts.verbose, "v", false, "log debug output")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := execute(fs.Args(), opts, stdout, logger); err != nil {
		logger.Error("command failed", "err", err)
		var oob *dymaxion.OutOfProjectionBoundsError
		if errors.As(err, &oob) {
			return 3
		}
		return 1
	}
	return 0
}

func execute(args []string, opts options, stdout io.Writer, logger *slog.Logger) error {
	if len(args) == 0 {
		return errors.New("missing command: fromgeo, togeo, index, bounds or list")
	}

	if args[0] == "list" {
		for _, name := range dymaxion.Names() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	proj, err := openProjection(opts, logger)
	if err != nil {
		return err
	}

	switch args[0] {
	case "fromgeo":
		lon, lat, err := parsePair(args[1:])
		if err != nil {
			return err
		}
		x, y, err := proj.FromGeo(lon, lat)
		if err != nil {
			return err
		}
		logger.Debug("projected", "lon", lon, "lat", lat, "x", x, "y", y)
		fmt.Fprintf(stdout, "%.12g %.12g\n", x, y)
	case "togeo":
		x, y, err := parsePair(args[1:])
		if err != nil {
			return err
		}
		lon, lat, err := proj.ToGeo(x, y)
		if err != nil {
			return err
		}
		logger.Debug("unprojected", "x", x, "y", y, "lon", lon, "lat", lat)
		fmt.Fprintf(stdout, "%.12g %.12g\n", lon, lat)
	case "index":
		lon, lat, err := parsePair(args[1:])
		if err != nil {
			return err
		}
		var indexer dymaxion.LocationIndexer
		switch opts.indexer {
		case "grid":
			indexer = dymaxion.NewProjectedGridIndexer(proj, opts.width, opts.height, true)
		case "healpix":
			indexer = dymaxion.NewHealpixIndexer(healpix.HealpixOrder(opts.order), healpix.NestScheme)
		default:
			return fmt.Errorf("unknown indexer %q", opts.indexer)
		}
		ind, err := indexer.ToIndex(dymaxion.GeoLocation{Longitude: lon, Latitude: lat})
		if err != nil {
			return err
		}
		logger.Debug("indexed", "indexer", indexer.Name(), "size", indexer.Size(), "index", ind)
		fmt.Fprintln(stdout, ind)
	case "bounds":
		b := proj.Bounds()
		fmt.Fprintf(stdout, "%.12g %.12g %.12g %.12g\n", b.MinX, b.MinY, b.MaxX, b.MaxY)
		logger.Debug("bounds", "width", b.Width(), "height", b.Height(), "metersPerUnit", proj.MetersPerUnit(), "upright", proj.Upright())
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func openProjection(opts options, logger *slog.Logger) (dymaxion.Projection, error) {
	var proj dymaxion.Projection
	if opts.grid != "" && opts.projection != "dymaxion" {
		grid, err := dymaxion.OpenConformalGrid(opts.grid)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded conformal grid", "path", opts.grid)
		switch opts.projection {
		case "conformal_dymaxion":
			proj = dymaxion.NewConformalDymaxion(grid)
		case "bte_conformal_dymaxion":
			proj = dymaxion.NewBTEDymaxion(grid)
		}
	}
	if proj == nil {
		var err error
		proj, err = dymaxion.Lookup(opts.projection)
		if err != nil {
			return nil, err
		}
	}

	scale := opts.scale
	if opts.blocks {
		scale *= dymaxion.BTEBlocksPerUnit
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("scale must be a positive finite number, got %g", scale)
	}
	if scale != 1 {
		proj = dymaxion.NewScaledProjection(proj, scale)
	}
	logger.Debug("using projection", "name", proj.Name(), "scale", scale)
	return proj, nil
}

func parsePair(args []string) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("expected 2 coordinates, got %d", len(args))
	}
	a, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
