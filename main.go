package main

import (
	"fmt"
	"os"

	"github.com/df07/go-whitted-raytracer/cmd"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	// The default version flag also claims -v, which is the verbosity flag
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "raytracer"
	app.Usage = "render scenes with Whitted ray tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a built-in scene to an image",
			Description: `
Trace one frame of a built-in scene. Tiles are distributed over a pool of
worker goroutines unless --mode single or --mode gradient is given.

The image format follows the output extension: .png writes PNG, anything
else writes binary PPM.`,
			Flags:  cmd.RenderFlags,
			Action: cmd.Render,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:      "mesh-info",
			Usage:     "load a mesh and print its BVH statistics",
			ArgsUsage: "[mesh.obj|mesh.ply]",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "leaf",
					Value: 10,
					Usage: "maximum shapes per BVH leaf",
				},
				cli.IntFlag{
					Name:  "max-depth",
					Value: 20,
					Usage: "maximum BVH depth",
				},
			},
			Action: cmd.ShowMeshInfo,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
