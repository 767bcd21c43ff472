package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/formats"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh"
)

// outputPath returns where a mesh called name is written.
func outputPath(name string) string {
	ext := ".glb"
	if !cfg.Output.Binary {
		ext = ".gltf"
	}
	return filepath.Join(cfg.Output.Dir, name+ext)
}

// writeMesh saves m under the output directory and prints the path.
func writeMesh(cmd *cobra.Command, m *mesh.Mesh, name string) error {
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}
	path := outputPath(name)
	if err := formats.WriteGLTF(m, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d vertices, %d triangles\n", path, m.VertexCount(), m.TriangleCount())
	return nil
}

// readMesh loads a glTF file.
func readMesh(path string) (*mesh.Mesh, error) {
	m, err := formats.ReadGLTF(path)
	if err != nil {
		return nil, err
	}
	m.Info()
	return m, nil
}

// derivedName names the result of an operation on the file at input.
func derivedName(input, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return base + "-" + suffix
}

// vertexArg finds a vertex by name, then by number.
func vertexArg(m *mesh.Mesh, arg string) (*mesh.Vertex, error) {
	if v := m.VertexByName(arg); v != nil {
		return v, nil
	}
	if i, err := strconv.Atoi(arg); err == nil && i >= 0 && i < m.VertexCount() {
		return m.Vertex(i), nil
	}
	return nil, fmt.Errorf("no vertex %q in %s", arg, m.Name())
}

// vec3Flag converts a --x,y,z flag value.
func vec3Flag(name string, values []float32) ([3]float32, error) {
	var v [3]float32
	if len(values) != 3 {
		return v, fmt.Errorf("--%s needs 3 components, got %d", name, len(values))
	}
	copy(v[:], values)
	return v, nil
}
