package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/math"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh/topology"
)

// sizeArgs parses the two integer arguments of a generator.
func sizeArgs(args []string) (int, int, error) {
	a, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", args[0], err)
	}
	b, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", args[1], err)
	}
	return a, b, nil
}

// mapGrid spreads texture coordinates over a nbX by nbZ vertex block
// starting at num0.
func mapGrid(m *mesh.Mesh, num0, nbX, nbZ int) {
	for iz := 0; iz < nbZ; iz++ {
		for ix := 0; ix < nbX; ix++ {
			u := float32(ix) / float32(max(nbX-1, 1))
			w := float32(iz) / float32(max(nbZ-1, 1))
			m.Vertex(num0 + ix + iz*nbX).SetTexCoord(math.Vec2{X: u, Y: w})
		}
	}
}

func newGridCmd() *cobra.Command {
	var name string
	var foldX, foldZ bool
	cmd := &cobra.Command{
		Use:   "grid <nbX> <nbZ>",
		Short: "Generate a rectangular grid in the XZ plane",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nbX, nbZ, err := sizeArgs(args)
			if err != nil {
				return err
			}
			m := mesh.New(name)
			num0, err := topology.New(m).AddRectangularSurface(nbX, nbZ, "g%d-%d", foldX, foldZ)
			if err != nil {
				return err
			}
			mapGrid(m, num0, nbX, nbZ)
			m.ComputeNormals()
			return writeMesh(cmd, m, name)
		},
	}
	cmd.Flags().StringVar(&name, "name", "grid", "mesh and file name")
	cmd.Flags().BoolVar(&foldX, "fold-x", false, "join the last column to the first")
	cmd.Flags().BoolVar(&foldZ, "fold-z", false, "join the last row to the first")
	return cmd
}

func newHexGridCmd() *cobra.Command {
	var name string
	var foldX, foldZ bool
	cmd := &cobra.Command{
		Use:   "hexgrid <nbX> <nbZ>",
		Short: "Generate a grid of equilateral triangles",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nbX, nbZ, err := sizeArgs(args)
			if err != nil {
				return err
			}
			m := mesh.New(name)
			num0, err := topology.New(m).AddHexagonalSurface(nbX, nbZ, "h%d-%d", foldX, foldZ)
			if err != nil {
				return err
			}
			mapGrid(m, num0, nbX, nbZ)
			m.ComputeNormals()
			return writeMesh(cmd, m, name)
		},
	}
	cmd.Flags().StringVar(&name, "name", "hexgrid", "mesh and file name")
	cmd.Flags().BoolVar(&foldX, "fold-x", false, "join the last column to the first")
	cmd.Flags().BoolVar(&foldZ, "fold-z", false, "join the last row to the first (even row count)")
	return cmd
}

func newDiscCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "disc <spokes> <segments>",
		Short: "Generate a disc of concentric rings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spokes, segments, err := sizeArgs(args)
			if err != nil {
				return err
			}
			m := mesh.New(name)
			if _, err := topology.New(m).AddRevolutionSurface(spokes, segments, "d%d-%d"); err != nil {
				return err
			}
			// planar mapping of the unit-spaced rings
			scale := 0.5 / float32(max(segments, 1))
			center := math.Vec2{X: 0.5, Y: 0.5}
			for _, v := range m.Vertices() {
				v.SetTexCoord(center.Add(v.Coord().XZ().Scale(scale)))
			}
			m.ComputeNormals()
			return writeMesh(cmd, m, name)
		},
	}
	cmd.Flags().StringVar(&name, "name", "disc", "mesh and file name")
	return cmd
}

func newCubeCmd() *cobra.Command {
	var name string
	var size, center []float32
	cmd := &cobra.Command{
		Use:   "cube",
		Short: "Generate an axis-aligned box",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := vec3Flag("size", size)
			if err != nil {
				return err
			}
			c, err := vec3Flag("center", center)
			if err != nil {
				return err
			}
			half := math.Vec3{X: s[0], Y: s[1], Z: s[2]}.Scale(0.5)
			mid := math.Vec3{X: c[0], Y: c[1], Z: c[2]}
			m, err := mesh.NewBox(name, mesh.Bounds{Min: mid.Sub(half), Max: mid.Add(half)})
			if err != nil {
				return err
			}
			return writeMesh(cmd, m, name)
		},
	}
	cmd.Flags().StringVar(&name, "name", "cube", "mesh and file name")
	cmd.Flags().Float32SliceVar(&size, "size", []float32{1, 1, 1}, "box size x,y,z")
	cmd.Flags().Float32SliceVar(&center, "center", []float32{0, 0, 0}, "box center x,y,z")
	return cmd
}
