package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/urfave/cli"
)

// RenderFlags are the flags accepted by the render command.
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Value: "gathering",
		Usage: "name of a built-in scene (see the scenes command)",
	},
	cli.StringFlag{
		Name:  "obj",
		Usage: "OBJ or PLY mesh for the mesh scene",
	},
	cli.StringFlag{
		Name:  "texture",
		Usage: "PNG or JPEG image for the glass scene back wall",
	},
	cli.IntFlag{
		Name:  "width",
		Value: 640,
		Usage: "frame width",
	},
	cli.IntFlag{
		Name:  "height",
		Value: 480,
		Usage: "frame height",
	},
	cli.IntFlag{
		Name:  "tile",
		Value: 16,
		Usage: "tile edge length in pixels",
	},
	cli.IntFlag{
		Name:  "threads",
		Value: 4,
		Usage: "worker count; 0 uses one per physical core",
	},
	cli.IntFlag{
		Name:  "spp",
		Value: 1,
		Usage: "stratified sample grids per pixel",
	},
	cli.IntFlag{
		Name:  "grid",
		Value: 3,
		Usage: "strata per axis in each sample grid",
	},
	cli.IntFlag{
		Name:  "depth",
		Value: 4,
		Usage: "maximum recursion depth for reflection and refraction",
	},
	cli.Float64Flag{
		Name:  "fov",
		Value: 30,
		Usage: "vertical field of view in degrees",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: 1,
		Usage: "seed of the sample pattern",
	},
	cli.StringFlag{
		Name:  "mode",
		Value: string(renderer.ModeThreads),
		Usage: "threads, single or gradient",
	},
	cli.BoolFlag{
		Name:  "normals",
		Usage: "shade surface normals instead of lighting",
	},
	cli.IntFlag{
		Name:  "leaf",
		Value: geometry.DefaultBVHConfig().MaxLeafSize,
		Usage: "maximum shapes per mesh BVH leaf",
	},
	cli.StringFlag{
		Name:  "out, o",
		Value: "render.ppm",
		Usage: "image filename; .png writes PNG, anything else PPM",
	},
}

// Render a still frame of a built-in scene.
func Render(ctx *cli.Context) error {
	setupLogging(ctx)
	logHost()

	config, err := renderConfig(ctx)
	if err != nil {
		return err
	}

	opts := scene.DefaultOptions()
	opts.MeshPath = ctx.String("obj")
	opts.TexturePath = ctx.String("texture")
	if leaf := ctx.Int("leaf"); leaf > 0 {
		opts.BVH.MaxLeafSize = leaf
	}

	sc, err := scene.Build(ctx.String("scene"), opts)
	if err != nil {
		return err
	}

	var integ integrator.Integrator
	if ctx.Bool("normals") {
		integ = integrator.Normals{}
	}

	r, err := renderer.New(sc, config, integ)
	if err != nil {
		return err
	}

	// Ctrl+C stops the workers and keeps whatever tiles are finished
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frame, stats, err := r.Render(runCtx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		logger.Warning("render interrupted, saving partial frame")
	}

	displayRenderStats(stats)

	out := ctx.String("out")
	if err := frame.Save(out); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s", out)
	return nil
}

// renderConfig builds the render configuration from command flags.
func renderConfig(ctx *cli.Context) (renderer.Config, error) {
	mode, err := renderer.ParseMode(ctx.String("mode"))
	if err != nil {
		return renderer.Config{}, err
	}

	config := renderer.DefaultConfig()
	config.Width = ctx.Int("width")
	config.Height = ctx.Int("height")
	config.TileSize = ctx.Int("tile")
	config.NumThreads = ctx.Int("threads")
	config.SamplesPerPixel = ctx.Int("spp")
	config.GridDim = ctx.Int("grid")
	config.FOV = ctx.Float64("fov")
	config.Seed = ctx.Int64("seed")
	config.Mode = mode
	config.Integrator.MaxDepth = ctx.Int("depth")

	if config.NumThreads == 0 {
		config.NumThreads = physicalCores()
	}
	return config, config.Validate()
}

// physicalCores returns the physical core count, or 0 to let the renderer
// fall back to the logical CPU count when it cannot be determined.
func physicalCores() int {
	n, err := cpu.Counts(false)
	if err != nil {
		logger.Warningf("could not count physical cores: %s", err)
		return 0
	}
	return n
}

func logHost() {
	infos, err := cpu.Info()
	if err != nil || len(infos) == 0 {
		logger.Debugf("cpu info unavailable: %v", err)
		return
	}
	logical, _ := cpu.Counts(true)
	logger.Infof("host cpu: %s (%d logical cores)", infos[0].ModelName, logical)
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	writeRenderStats(&buf, stats)
	logger.Noticef("render statistics\n%s", buf.String())
}

func writeRenderStats(buf *bytes.Buffer, stats renderer.RenderStats) {
	table := tablewriter.NewWriter(buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Tiles", "Pixels", "Samples", "Busy", "% of frame"})

	total := stats.TotalPixels()
	for _, w := range stats.Workers {
		percent := 0.0
		if total > 0 {
			percent = 100 * float64(w.Pixels) / float64(total)
		}
		table.Append([]string{
			fmt.Sprintf("%d", w.WorkerID),
			fmt.Sprintf("%d", w.Tiles),
			fmt.Sprintf("%d", w.Pixels),
			fmt.Sprintf("%d", w.Samples),
			w.Busy.String(),
			fmt.Sprintf("%02.1f %%", percent),
		})
	}
	table.SetFooter([]string{
		"TOTAL",
		fmt.Sprintf("%d", stats.Tiles),
		fmt.Sprintf("%d", total),
		fmt.Sprintf("%d", stats.TotalSamples()),
		stats.Elapsed.String(),
		fmt.Sprintf("%.0f samples/s", stats.SamplesPerSecond()),
	})

	table.Render()
}
