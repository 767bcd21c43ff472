package mesh

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })
	return logs
}

func TestCheckRepairDeletesOrphans(t *testing.T) {
	logs := observe(t)
	m, _ := square(t)
	m.AddVertex("orphan")

	assert.True(t, m.Check(false))
	assert.Equal(t, 1, logs.FilterMessage("vertex belongs to no triangle").Len())
	assert.Equal(t, 5, m.VertexCount())

	assert.True(t, m.Check(true))
	assert.Equal(t, 4, m.VertexCount())
	assert.Nil(t, m.VertexByName("orphan"))
}

func TestCheckDetectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(v [4]*Vertex)
		message string
	}{
		{
			name: "opposite not symmetric",
			corrupt: func(v [4]*Vertex) {
				v[1].HalfEdgeTo(v[3]).opposite.opposite = nil
			},
			message: "opposite of opposite half-edge is not itself",
		},
		{
			name: "opposites with distinct edges",
			corrupt: func(v [4]*Vertex) {
				h := v[1].HalfEdgeTo(v[3])
				h.edge = newEdge(h.mesh, v[1], v[3])
			},
			message: "opposite half-edges do not share their edge",
		},
		{
			name: "broken cycle",
			corrupt: func(v [4]*Vertex) {
				h := v[0].HalfEdgeTo(v[1])
				h.next.next.next = h.next
			},
			message: "third next half-edge is not itself",
		},
		{
			name: "foreign ring member",
			corrupt: func(v [4]*Vertex) {
				h := v[2].halfEdge
				v[2].unlinkSibling(h)
				v[0].linkSibling(h)
			},
			message: "half-edge chained to a vertex it does not start from",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := observe(t)
			m, v := square(t)
			tt.corrupt(v)

			assert.False(t, m.Check(false))
			assert.Equal(t, 1, logs.FilterMessage(tt.message).Len(), "logged: %v", logs.All())
		})
	}
}

func TestDump(t *testing.T) {
	m, _ := square(t)
	var buf bytes.Buffer
	require.NoError(t, m.Dump(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, m.VertexCount()+m.TriangleCount()+m.HalfEdgeCount())
	assert.Contains(t, buf.String(), "Triangle(a,b,d)")
}
