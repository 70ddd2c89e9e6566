// Command roverconsole is the headless operator console: it edits a workspace
// map, searches a route between two cells, reports distance and displacement
// and can preview the annotated map in the terminal.
//
// Usage:
//
//	roverconsole -config console.yaml -map yard -new -block 3,1,1,4
//	roverconsole -map yard -from 1,1 -to 10,5 -save-route yard-route -preview -simplify 2
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/rovermap/astar"
	"github.com/katalvlaran/rovermap/config"
	"github.com/katalvlaran/rovermap/gridmap"
	"github.com/katalvlaran/rovermap/metrics"
	"github.com/katalvlaran/rovermap/render"
	"github.com/katalvlaran/rovermap/route"
	"github.com/katalvlaran/rovermap/workspace"
)

// rect is a -block argument: x,y,w,h.
type rect struct{ x, y, w, h int }

func parseRect(s string) (rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return rect{}, fmt.Errorf("block %q: want x,y,w,h", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return rect{}, fmt.Errorf("block %q: %w", s, err)
		}
		v[i] = n
	}

	return rect{v[0], v[1], v[2], v[3]}, nil
}

// options are the parsed command-line flags.
type options struct {
	configPath string
	mapName    string
	newMap     bool
	blocks     []rect
	clears     []rect
	from, to   string
	saveRoute  string
	preview    bool
	simplify   int
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("roverconsole", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&o.mapName, "map", "default", "workspace map name")
	fs.BoolVar(&o.newMap, "new", false, "create a new empty map with the configured size")
	fs.Func("block", "mark rectangle x,y,w,h as obstacle (repeatable)", func(s string) error {
		r, err := parseRect(s)
		o.blocks = append(o.blocks, r)
		return err
	})
	fs.Func("clear", "mark rectangle x,y,w,h as empty (repeatable)", func(s string) error {
		r, err := parseRect(s)
		o.clears = append(o.clears, r)
		return err
	})
	fs.StringVar(&o.from, "from", "", "route start x,y")
	fs.StringVar(&o.to, "to", "", "route goal x,y")
	fs.StringVar(&o.saveRoute, "save-route", "", "save the annotated map under this name")
	fs.BoolVar(&o.preview, "preview", false, "show the annotated map in the terminal")
	fs.IntVar(&o.simplify, "simplify", 0, "preview simplify factor, overrides preview.factor")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if (o.from == "") != (o.to == "") {
		return options{}, errors.New("-from and -to must be given together")
	}
	if o.simplify < 0 {
		return options{}, fmt.Errorf("-simplify must be >= 1, got %d", o.simplify)
	}

	return o, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "roverconsole:", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	return config.Load(path)
}

// run executes one console session.
func run(ctx context.Context, o options, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}
	if o.simplify > 0 {
		cfg.Preview.Factor = o.simplify
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	if cfg.Metrics.Addr != "" {
		srv := serveMetrics(cfg.Metrics.Addr, reg, logger)
		defer srv.Close()
	}

	store, err := workspace.Open(cfg.Workspace, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	grid, err := openGrid(store, cfg, o, logger)
	if err != nil {
		return err
	}
	if err := applyEdits(grid, o); err != nil {
		return err
	}
	if o.newMap || len(o.blocks) > 0 || len(o.clears) > 0 {
		if err := store.Save(o.mapName, grid); err != nil {
			return err
		}
		logger.Info("map saved", slog.String("name", o.mapName))
	}

	if o.from == "" {
		fmt.Fprintln(stdout, grid)
		return nil
	}

	report, err := searchRoute(ctx, grid, cfg, o, collector, logger, stdout)
	if err != nil || report == nil {
		return err
	}
	if o.saveRoute != "" {
		if err := store.Save(o.saveRoute, report.Map()); err != nil {
			return err
		}
		logger.Info("route map saved", slog.String("name", o.saveRoute))
	}
	if o.preview {
		return showPreview(ctx, report, cfg)
	}
	fmt.Fprintln(stdout, report.Map())

	return nil
}

func openGrid(store workspace.Store, cfg config.Config, o options, logger *slog.Logger) (*gridmap.GridMap, error) {
	if o.newMap {
		logger.Info("new map",
			slog.String("name", o.mapName),
			slog.Int("width", cfg.Map.Width),
			slog.Int("height", cfg.Map.Height),
		)
		return cfg.Map.NewGrid()
	}

	return store.Load(o.mapName)
}

func applyEdits(g *gridmap.GridMap, o options) error {
	for _, r := range o.blocks {
		if err := g.SetRectangle(r.x, r.y, r.w, r.h, g.Obstacle()); err != nil {
			return fmt.Errorf("block %d,%d,%d,%d: %w", r.x, r.y, r.w, r.h, err)
		}
	}
	for _, r := range o.clears {
		if err := g.SetRectangle(r.x, r.y, r.w, r.h, g.Empty()); err != nil {
			return fmt.Errorf("clear %d,%d,%d,%d: %w", r.x, r.y, r.w, r.h, err)
		}
	}

	return nil
}

// searchRoute clears stale route marks, runs the search under the configured
// timeout and builds the report. A nil report means no route was produced.
func searchRoute(
	ctx context.Context,
	grid *gridmap.GridMap,
	cfg config.Config,
	o options,
	collector *metrics.Collector,
	logger *slog.Logger,
	stdout io.Writer,
) (*route.Report, error) {
	start, err := gridmap.ParseCoord(o.from)
	if err != nil {
		return nil, err
	}
	goal, err := gridmap.ParseCoord(o.to)
	if err != nil {
		return nil, err
	}
	_, _, mark := cfg.Map.Marks()
	// A stored map carries its own marks, which may differ from the configured ones.
	if mark == grid.Obstacle() || mark == grid.Empty() {
		return nil, fmt.Errorf("route mark %q collides with map %q marks (obstacle %q, empty %q)",
			mark, o.mapName, grid.Obstacle(), grid.Empty())
	}
	if n, err := grid.ReplaceAll(mark, grid.Empty()); err != nil {
		return nil, err
	} else if n > 0 {
		logger.Debug("cleared stale route marks", slog.Int("cells", n))
	}

	if cfg.Search.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Search.Timeout)
		defer cancel()
	}
	res, err := astar.Search(grid, start, goal, astar.WithContext(ctx), astar.WithObserver(collector))
	if err != nil {
		return nil, err
	}
	logger.Info("search finished",
		slog.String("status", res.Status.String()),
		slog.Int("expanded", res.Expanded),
		slog.String("from", start.String()),
		slog.String("to", goal.String()),
	)

	switch res.Status {
	case astar.StatusNoRoute:
		fmt.Fprintf(stdout, "no route from %v to %v\n", start, goal)
		return nil, nil
	case astar.StatusCancelled:
		fmt.Fprintf(stdout, "search cancelled: %v\n", res.Cause)
		return nil, nil
	}

	report, err := route.FromResult(grid, res, mark)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(stdout, report)

	return report, nil
}

func showPreview(ctx context.Context, report *route.Report, cfg config.Config) error {
	preview := report.Map()
	if cfg.Preview.Factor > 1 {
		p, err := report.Preview(cfg.Preview.Factor)
		if err != nil {
			return err
		}
		preview = p
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	defer screen.Fini()
	_, _, mark := cfg.Map.Marks()

	return render.Show(ctx, screen, preview, render.WithRouteMark(mark))
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", slog.String("error", err.Error()))
		}
	}()
	logger.Info("serving metrics", slog.String("addr", addr))

	return srv
}
