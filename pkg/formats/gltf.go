// Package formats reads and writes meshes as glTF 2.0 documents.
package formats

import (
	"encoding/binary"
	"errors"
	"fmt"
	stdmath "math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/math"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh"
)

// glTF errors.
var (
	ErrNoMesh            = errors.New("glTF document has no mesh")
	ErrNoPosition        = errors.New("glTF primitive has no POSITION attribute")
	ErrUnsupportedData   = errors.New("unsupported glTF accessor")
	ErrExternalBuffer    = errors.New("external glTF buffers are not supported")
	ErrNotTriangleList   = errors.New("glTF primitive is not a triangle list")
	ErrTruncatedAccessor = errors.New("truncated glTF accessor")
)

// EncodeGLTF builds a glTF document holding m as a single indexed triangle
// mesh with positions, normals and texture coordinates.
func EncodeGLTF(m *mesh.Mesh) *gltf.Document {
	m.Renumber()
	vertices := m.Vertices()
	positions := make([][3]float32, len(vertices))
	normals := make([][3]float32, len(vertices))
	texcoords := make([][2]float32, len(vertices))
	for i, v := range vertices {
		c, n, uv := v.Coord(), v.Normal(), v.TexCoord()
		positions[i] = [3]float32{c.X, c.Y, c.Z}
		normals[i] = [3]float32{n.X, n.Y, n.Z}
		texcoords[i] = [2]float32{uv.X, uv.Y}
	}
	triangles := m.Triangles()
	indices := make([]uint32, 0, 3*len(triangles))
	for _, t := range triangles {
		for _, v := range t.Vertices() {
			indices = append(indices, uint32(v.Number()))
		}
	}

	doc := gltf.NewDocument()
	doc.Meshes = []*gltf.Mesh{{
		Name: m.Name(),
		Primitives: []*gltf.Primitive{{
			Mode:    gltf.PrimitiveTriangles,
			Indices: gltf.Index(modeler.WriteIndices(doc, indices)),
			Attributes: map[string]int{
				gltf.POSITION:   modeler.WritePosition(doc, positions),
				gltf.NORMAL:     modeler.WriteNormal(doc, normals),
				gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, texcoords),
			},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: m.Name(), Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc
}

// WriteGLTF saves m to path, as binary glTF when path ends with ".glb".
func WriteGLTF(m *mesh.Mesh, path string) error {
	doc := EncodeGLTF(m)
	var err error
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		err = gltf.SaveBinary(doc, path)
	} else {
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	mesh.Logger().Info("mesh written", zap.String("mesh", m.Name()), zap.String("path", path),
		zap.Int("vertices", m.VertexCount()), zap.Int("triangles", m.TriangleCount()))
	return nil
}

// ReadGLTF loads every triangle primitive of the file at path into one mesh.
// Faces that would break the manifold structure are skipped with a warning.
func ReadGLTF(path string) (*mesh.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	m, err := DecodeGLTF(doc, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return m, nil
}

// DecodeGLTF converts the triangle primitives of doc into a mesh named name.
func DecodeGLTF(doc *gltf.Document, name string) (*mesh.Mesh, error) {
	if len(doc.Meshes) == 0 {
		return nil, ErrNoMesh
	}
	m := mesh.New(name)
	skipped := 0
	for im, gm := range doc.Meshes {
		for ip, prim := range gm.Primitives {
			n, err := decodePrimitive(doc, m, prim, fmt.Sprintf("m%dp%d-", im, ip))
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", im, ip, err)
			}
			skipped += n
		}
	}
	if skipped > 0 {
		mesh.Logger().Warn("faces skipped while reading glTF", zap.String("mesh", name), zap.Int("skipped", skipped))
	}
	m.ComputeNormals()
	return m, nil
}

// decodePrimitive appends one primitive and returns the number of faces it skipped.
func decodePrimitive(doc *gltf.Document, m *mesh.Mesh, prim *gltf.Primitive, prefix string) (int, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		return 0, ErrNotTriangleList
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return 0, ErrNoPosition
	}
	positions, err := readFloats(doc, posIdx, gltf.AccessorVec3)
	if err != nil {
		return 0, fmt.Errorf("positions: %w", err)
	}

	vertices := make([]*mesh.Vertex, len(positions)/3)
	for i := range vertices {
		p := positions[3*i : 3*i+3]
		vertices[i] = m.AddVertex(fmt.Sprintf("%s%d", prefix, i)).
			SetCoord(math.Vec3{X: p[0], Y: p[1], Z: p[2]})
	}
	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err := readFloats(doc, uvIdx, gltf.AccessorVec2)
		if err != nil {
			return 0, fmt.Errorf("texcoords: %w", err)
		}
		for i, v := range vertices {
			if 2*i+1 < len(uvs) {
				v.SetTexCoord(math.Vec2{X: uvs[2*i], Y: uvs[2*i+1]})
			}
		}
	}

	var indices []int
	if prim.Indices != nil {
		if indices, err = readIndices(doc, *prim.Indices); err != nil {
			return 0, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]int, len(vertices))
		for i := range indices {
			indices[i] = i
		}
	}

	skipped := 0
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if a >= len(vertices) || b >= len(vertices) || c >= len(vertices) {
			return skipped, fmt.Errorf("index out of range: %w", ErrTruncatedAccessor)
		}
		if _, err := m.AddTriangle(vertices[a], vertices[b], vertices[c]); err != nil {
			skipped++
		}
	}
	for _, v := range vertices {
		if v.IsIsolated() {
			m.DelVertex(v)
		}
	}
	return skipped, nil
}

// accessorBytes returns the buffer bytes of accessor idx, its element stride
// and element count.
func accessorBytes(doc *gltf.Document, idx int, elemSize int) ([]byte, int, int, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, 0, 0, ErrUnsupportedData
	}
	acc := doc.Accessors[idx]
	if acc.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor %d has no buffer view: %w", idx, ErrUnsupportedData)
	}
	if *acc.BufferView < 0 || *acc.BufferView >= len(doc.BufferViews) {
		return nil, 0, 0, fmt.Errorf("accessor %d: buffer view %d: %w", idx, *acc.BufferView, ErrUnsupportedData)
	}
	view := doc.BufferViews[*acc.BufferView]
	if view.Buffer < 0 || view.Buffer >= len(doc.Buffers) {
		return nil, 0, 0, fmt.Errorf("accessor %d: buffer %d: %w", idx, view.Buffer, ErrUnsupportedData)
	}
	buf := doc.Buffers[view.Buffer]
	if buf.Data == nil {
		return nil, 0, 0, ErrExternalBuffer
	}
	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := view.ByteOffset + acc.ByteOffset
	if acc.Count > 0 && start+(acc.Count-1)*stride+elemSize > len(buf.Data) {
		return nil, 0, 0, ErrTruncatedAccessor
	}
	return buf.Data[start:], stride, acc.Count, nil
}

// readFloats reads a float accessor of the given type as a flat slice.
func readFloats(doc *gltf.Document, idx int, typ gltf.AccessorType) ([]float32, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, ErrUnsupportedData
	}
	acc := doc.Accessors[idx]
	if acc.Type != typ || acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("%v/%v: %w", acc.Type, acc.ComponentType, ErrUnsupportedData)
	}
	n := 3
	if typ == gltf.AccessorVec2 {
		n = 2
	}
	data, stride, count, err := accessorBytes(doc, idx, 4*n)
	if err != nil {
		return nil, err
	}
	out := make([]float32, 0, count*n)
	for i := range count {
		for j := range n {
			bits := binary.LittleEndian.Uint32(data[i*stride+4*j:])
			out = append(out, stdmath.Float32frombits(bits))
		}
	}
	return out, nil
}

// readIndices reads a scalar unsigned index accessor.
func readIndices(doc *gltf.Document, idx int) ([]int, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, ErrUnsupportedData
	}
	acc := doc.Accessors[idx]
	var size int
	switch acc.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("index component %v: %w", acc.ComponentType, ErrUnsupportedData)
	}
	data, stride, count, err := accessorBytes(doc, idx, size)
	if err != nil {
		return nil, err
	}
	out := make([]int, count)
	for i := range count {
		b := data[i*stride:]
		switch size {
		case 1:
			out[i] = int(b[0])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(b))
		default:
			out[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return out, nil
}
