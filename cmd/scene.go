package cmd

import (
	"bytes"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes prints the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	if err := writeSceneList(&buf, scene.DefaultOptions()); err != nil {
		return err
	}
	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}

func writeSceneList(buf *bytes.Buffer, opts scene.Options) error {
	table := tablewriter.NewWriter(buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Shapes", "Primitives", "Lights", "Description"})
	for _, info := range scene.List() {
		sc, err := info.Build(opts)
		if err != nil {
			return fmt.Errorf("building scene %q: %w", info.Name, err)
		}
		table.Append([]string{
			info.Name,
			fmt.Sprintf("%d", len(sc.Shapes)),
			fmt.Sprintf("%d", sc.PrimitiveCount()),
			fmt.Sprintf("%d", len(sc.Lights)),
			info.Description,
		})
	}
	table.Render()
	return nil
}

// ShowMeshInfo loads a mesh, builds its BVH and prints the hierarchy
// statistics. Without an argument the built-in icosphere is used.
func ShowMeshInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	config := geometry.BVHConfig{
		MaxLeafSize: ctx.Int("leaf"),
		MaxDepth:    ctx.Int("max-depth"),
	}
	if config.MaxLeafSize <= 0 || config.MaxDepth <= 0 {
		return fmt.Errorf("invalid bvh config: leaf %d, max depth %d", config.MaxLeafSize, config.MaxDepth)
	}

	name := "icosphere"
	var mesh *loaders.Mesh
	if ctx.NArg() > 0 {
		name = ctx.Args().First()
		var err error
		if mesh, err = loaders.LoadMesh(name); err != nil {
			return err
		}
	} else {
		mesh = scene.Icosphere(3)
	}

	var buf bytes.Buffer
	writeMeshInfo(&buf, name, mesh, config)
	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}

func writeMeshInfo(buf *bytes.Buffer, name string, mesh *loaders.Mesh, config geometry.BVHConfig) {
	tm := geometry.NewTriangleMesh(mesh.Vertices, mesh.Faces, nil, &geometry.TriangleMeshOptions{
		Normals: mesh.Normals,
		BVH:     config,
	})
	stats := tm.BVH().Stats()
	bounds := tm.Bounds()

	table := tablewriter.NewWriter(buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Property", "Value"})
	table.AppendBulk([][]string{
		{"Mesh", name},
		{"Vertices", fmt.Sprintf("%d", len(mesh.Vertices))},
		{"Faces", fmt.Sprintf("%d", len(mesh.Faces))},
		{"Vertex normals", fmt.Sprintf("%t", mesh.Normals != nil)},
		{"Bounds", fmt.Sprintf("%s - %s", formatVec(bounds.Min), formatVec(bounds.Max))},
		{"BVH nodes", fmt.Sprintf("%d", stats.Nodes)},
		{"BVH leaves", fmt.Sprintf("%d", stats.Leaves)},
		{"BVH depth", fmt.Sprintf("%d", stats.MaxDepth)},
		{"Avg leaf depth", fmt.Sprintf("%.2f", stats.AvgLeafDepth)},
		{"Max shapes per leaf", fmt.Sprintf("%d", stats.MaxLeafShapes)},
	})
	table.Render()
}

func formatVec(v core.Vec3) string {
	return fmt.Sprintf("(%.3g, %.3g, %.3g)", v.X, v.Y, v.Z)
}
