package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh/drawing"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh/physics"
)

// drawingAttrs is the vertex layout info reports the buffer size of.
var drawingAttrs = []mesh.Attribute{mesh.AttrPosition, mesh.AttrNormal, mesh.AttrTexCoord}

func newPhysicsCmd() *cobra.Command {
	var density float32
	cmd := &cobra.Command{
		Use:   "physics <input>",
		Short: "Compute volume, mass and centre of gravity of a closed mesh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMesh(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("density") {
				density = cfg.Physics.Density
			}
			p := physics.New(m)
			p.SetDensity(density)
			if err := p.CompVolumeIntegrals(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "volume:  %g\n", p.Volume())
			fmt.Fprintf(out, "density: %g\n", p.Density())
			fmt.Fprintf(out, "mass:    %g\n", p.Mass())
			fmt.Fprintf(out, "cog:     %s\n", p.CoG())
			fmt.Fprintf(out, "x2 y2 z2 integrals: %s\n", p.SecondMoments())
			fmt.Fprintf(out, "xy yz zx integrals: %s\n", p.ProductMoments())
			return nil
		},
	}
	cmd.Flags().Float32Var(&density, "density", 0, "mass per unit volume")
	return cmd
}

func newCheckCmd() *cobra.Command {
	var repair, dump bool
	cmd := &cobra.Command{
		Use:   "check <input>",
		Short: "Validate the half-edge structure of a mesh",
		Long: `Validate the half-edge structure of a mesh. Problems are logged. With
--repair, vertices outside of every triangle are deleted and the result is
written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMesh(args[0])
			if err != nil {
				return err
			}
			if dump {
				if err := m.Dump(cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			if !m.Check(repair) {
				return errors.New("mesh is corrupt, see log")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", m.Name())
			if repair {
				return writeMesh(cmd, m, derivedName(args[0], "repaired"))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&repair, "repair", false, "delete isolated vertices and write the result")
	cmd.Flags().BoolVar(&dump, "dump", false, "print every vertex, triangle and half-edge")
	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <input>",
		Short: "Print counts, bounds and draw buffer sizes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMesh(args[0])
			if err != nil {
				return err
			}
			border := 0
			for _, h := range m.HalfEdges() {
				if h.IsBorder() {
					border++
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "name:       %s\n", m.Name())
			fmt.Fprintf(out, "vertices:   %d\n", m.VertexCount())
			fmt.Fprintf(out, "triangles:  %d\n", m.TriangleCount())
			fmt.Fprintf(out, "edges:      %d\n", m.EdgeCount())
			fmt.Fprintf(out, "border:     %d half-edges\n", border)
			if b, err := m.Bounds(); err == nil {
				fmt.Fprintf(out, "bounds:     %s .. %s\n", b.Min, b.Max)
				fmt.Fprintf(out, "size:       %s\n", b.Size())
			}

			data, stride := drawing.Interleave(m, drawingAttrs...)
			fmt.Fprintf(out, "vertex buffer: %d floats, stride %d\n", len(data), stride)
			fmt.Fprintf(out, "triangle list: %d indices\n", len(drawing.TriangleIndices(m)))
			fmt.Fprintf(out, "strip:         %d indices\n", len(drawing.TriangleStrips(m)))
			fmt.Fprintf(out, "lines:         %d indices\n", len(drawing.EdgeIndices(m)))
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write the effective configuration as YAML",
		Long: `Write the effective configuration, defaults merged with the loaded file
and flags, to --path or to the user config directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path != "" {
				if err := cfg.SaveTo(path); err != nil {
					return err
				}
			} else {
				var err error
				if path, err = cfg.Save(); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "file to write instead of the user config")
	return cmd
}
