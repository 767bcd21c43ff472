package main

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/internal/logger"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/math"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh/animation"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh/processing"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh/redux"
)

func newSimplifyCmd() *cobra.Command {
	var count int
	var maxCost float32
	cmd := &cobra.Command{
		Use:   "simplify <input>",
		Short: "Remove vertices by quadric error edge collapses",
		Long: `Remove vertices by edge collapses, cheapest first. With --max-cost the
collapses stop when the cheapest one costs more; otherwise --count vertices
are removed. Defaults come from the redux section of the configuration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMesh(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("count") {
				count = cfg.Redux.Count
			}
			if !cmd.Flags().Changed("max-cost") {
				maxCost = cfg.Redux.MaxCost
			}

			before := m.VertexCount()
			r := redux.New(m)
			var removed int
			if maxCost > 0 {
				removed = r.ReduxCost(maxCost)
			} else {
				removed = r.ReduxCount(count)
			}
			m.ComputeNormals()
			logger.Info("simplified", zap.String("mesh", m.Name()),
				zap.Int("before", before), zap.Int("removed", removed))
			return writeMesh(cmd, m, derivedName(args[0], "simplified"))
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of vertices to remove")
	cmd.Flags().Float32Var(&maxCost, "max-cost", 0, "stop when the cheapest collapse costs more")
	return cmd
}

func newSubdivideCmd() *cobra.Command {
	var steps int
	var smooth float32
	cmd := &cobra.Command{
		Use:   "subdivide <input>",
		Short: "Split every triangle into four, repeatedly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMesh(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("steps") {
				steps = cfg.Subdivide.Steps
			}
			if !cmd.Flags().Changed("smooth") {
				smooth = cfg.Subdivide.Smooth
			}
			if _, err := processing.New(m).SubdivideAll(m.Triangles(), steps, smooth); err != nil {
				return err
			}
			m.ComputeNormals()
			return writeMesh(cmd, m, derivedName(args[0], "subdivided"))
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "s", 0, "number of subdivision rounds")
	cmd.Flags().Float32Var(&smooth, "smooth", 0, "tangent scale of curved midpoints, 0 for flat")
	return cmd
}

func newBevelCmd() *cobra.Command {
	var distance float32
	var direction []float32
	cmd := &cobra.Command{
		Use:   "bevel <input> <vertex>",
		Short: "Cut a vertex off, closing the hole with a polygon",
		Long: `Cut a vertex off. The vertex is given by name or number. Each incident
edge is cut at --distance from the vertex measured along --direction, which
defaults to the vertex normal.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMesh(args[0])
			if err != nil {
				return err
			}
			v, err := vertexArg(m, args[1])
			if err != nil {
				return err
			}
			dir := v.Normal()
			if cmd.Flags().Changed("direction") {
				d, err := vec3Flag("direction", direction)
				if err != nil {
					return err
				}
				dir = math.Vec3{X: d[0], Y: d[1], Z: d[2]}
			}
			border, err := processing.New(m).BevelVertex(v, distance, dir)
			if err != nil {
				return err
			}
			m.ComputeNormals()
			logger.Info("vertex bevelled", zap.String("vertex", args[1]), zap.Int("border", len(border)))
			return writeMesh(cmd, m, derivedName(args[0], "bevel"))
		},
	}
	cmd.Flags().Float32VarP(&distance, "distance", "d", 0.2, "cut distance along the direction")
	cmd.Flags().Float32SliceVar(&direction, "direction", nil, "cut direction x,y,z")
	return cmd
}

func newExtrudeCmd() *cobra.Command {
	var distance float32
	var split bool
	cmd := &cobra.Command{
		Use:   "extrude <input> <vertex>...",
		Short: "Extrude the region enclosed by a closed border",
		Long: `Extrude the region enclosed by a closed border, listed by vertex name or
number in the order of the triangles inside. With --split the region is only
detached from its surroundings.`,
		Args: cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMesh(args[0])
			if err != nil {
				return err
			}
			border := make([]*mesh.Vertex, 0, len(args)-1)
			for _, arg := range args[1:] {
				v, err := vertexArg(m, arg)
				if err != nil {
					return err
				}
				border = append(border, v)
			}

			p := processing.New(m)
			suffix := "extruded"
			if split {
				err = p.SplitBorder(border)
				suffix = "split"
			} else {
				var loop []*mesh.Vertex
				loop, err = p.ExtrudePolygon(border, distance)
				if err == nil && loop == nil {
					err = errors.New("border encloses no triangle")
				}
			}
			if err != nil {
				return err
			}
			m.ComputeNormals()
			return writeMesh(cmd, m, derivedName(args[0], suffix))
		},
	}
	cmd.Flags().Float32VarP(&distance, "distance", "d", 1, "extrusion length along the region normal")
	cmd.Flags().BoolVar(&split, "split", false, "duplicate the border instead of extruding")
	return cmd
}

func newTransformCmd() *cobra.Command {
	var translate, axis, euler []float32
	var angle, scale float32
	cmd := &cobra.Command{
		Use:   "transform <input>",
		Short: "Scale, rotate then translate every vertex",
		Long: `Scale, rotate then translate every vertex. The rotation turns --angle
degrees around --axis after the --euler angles, applied around X, then Y,
then Z.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMesh(args[0])
			if err != nil {
				return err
			}
			t, err := vec3Flag("translate", translate)
			if err != nil {
				return err
			}
			a, err := vec3Flag("axis", axis)
			if err != nil {
				return err
			}
			e, err := vec3Flag("euler", euler)
			if err != nil {
				return err
			}
			const deg = math32.Pi / 180
			rotation := math.QuatFromAxisAngle(math.Vec3{X: a[0], Y: a[1], Z: a[2]}, angle*deg).
				Mul(math.QuatFromEuler(e[0]*deg, e[1]*deg, e[2]*deg))
			matrix := math.Translate(t[0], t[1], t[2]).
				Mul(rotation.ToMat4()).
				Mul(math.Scale(scale, scale, scale))
			processing.New(m).Transform(matrix)
			m.ComputeNormals()
			return writeMesh(cmd, m, derivedName(args[0], "transformed"))
		},
	}
	cmd.Flags().Float32SliceVar(&translate, "translate", []float32{0, 0, 0}, "translation x,y,z")
	cmd.Flags().Float32SliceVar(&axis, "axis", []float32{0, 1, 0}, "rotation axis x,y,z")
	cmd.Flags().Float32Var(&angle, "angle", 0, "rotation angle around --axis in degrees")
	cmd.Flags().Float32SliceVar(&euler, "euler", []float32{0, 0, 0}, "rotation angles around X, Y and Z in degrees")
	cmd.Flags().Float32Var(&scale, "scale", 1, "uniform scale")
	return cmd
}

func newMorphCmd() *cobra.Command {
	var fps, frames int
	var frequency, damping float64
	cmd := &cobra.Command{
		Use:   "morph <base> <target>",
		Short: "Write the frames of a spring-driven morph between two shapes",
		Long: `Write one mesh per frame while a damped spring moves the blend
coefficient from the base shape to the target. Both files must hold the
same vertices in the same order. Frames stop once the spring settles.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := readMesh(args[0])
			if err != nil {
				return err
			}
			target, err := readMesh(args[1])
			if err != nil {
				return err
			}
			if err := animation.BuildMorph(base, target); err != nil {
				return err
			}

			vertices := base.Vertices()
			coords := make([]math.Vec3, len(vertices))
			normals := make([]math.Vec3, len(vertices))
			for i, v := range vertices {
				coords[i], normals[i] = v.Coord(), v.Normal()
			}

			driver := animation.NewMorphDriver(fps, frequency, damping)
			driver.SetTarget(1)
			for frame := 0; frame < frames && !driver.Settled(1e-3); frame++ {
				coef := driver.Update()
				for _, v := range vertices {
					p, n := animation.Blend(v, coef)
					v.SetCoord(p).SetNormal(n)
				}
				name := derivedName(args[0], fmt.Sprintf("morph%03d", frame))
				if err := writeMesh(cmd, base, name); err != nil {
					return err
				}
				for i, v := range vertices {
					v.SetCoord(coords[i]).SetNormal(normals[i])
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&fps, "fps", 30, "frames per second of the spring")
	cmd.Flags().IntVar(&frames, "frames", 90, "maximum number of frames")
	cmd.Flags().Float64Var(&frequency, "frequency", 4, "spring angular frequency")
	cmd.Flags().Float64Var(&damping, "damping", 1, "spring damping ratio, 1 for no overshoot")
	return cmd
}
