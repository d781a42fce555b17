package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// TriMesh is a triangulated surface as read from a mesh file, vertex indices are 0-based
type TriMesh struct {
	Name      string
	Vertices  []r3.Vec
	Triangles [][3]int
}

func NewTriMesh(name string) *TriMesh {
	return &TriMesh{Name: name}
}

func (m *TriMesh) NumVertices() int  { return len(m.Vertices) }
func (m *TriMesh) NumTriangles() int { return len(m.Triangles) }

// Validate checks that every triangle indexes existing vertices
func (m *TriMesh) Validate() error {
	Nv := len(m.Vertices)
	for k, tri := range m.Triangles {
		for _, v := range tri {
			if v < 0 || v >= Nv {
				return fmt.Errorf("mesh %q: triangle %d references vertex %d, mesh has %d vertices",
					m.Name, k, v, Nv)
			}
		}
	}
	return nil
}

// Compact drops the vertices no triangle references and renumbers the triangles
func (m *TriMesh) Compact() {
	var (
		remap = make([]int, len(m.Vertices))
		verts = make([]r3.Vec, 0, len(m.Vertices))
	)
	for i := range remap {
		remap[i] = -1
	}
	for k := range m.Triangles {
		for j, v := range m.Triangles[k] {
			if remap[v] < 0 {
				remap[v] = len(verts)
				verts = append(verts, m.Vertices[v])
			}
			m.Triangles[k][j] = remap[v]
		}
	}
	m.Vertices = verts
}
