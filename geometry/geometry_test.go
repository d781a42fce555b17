package geometry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobem/mesh"
)

// newTet returns a tetrahedron with outward normals, scaled by s and shifted by c
func newTet(name string, s float64, c r3.Vec) *mesh.TriMesh {
	tm := mesh.NewTriMesh(name)
	for _, v := range []r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}} {
		tm.Vertices = append(tm.Vertices, r3.Add(c, r3.Scale(s, v)))
	}
	tm.Triangles = [][3]int{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {0, 3, 2}}
	return tm
}

// newBipyramid returns the caps and the shared equatorial triangle of a triangular bipyramid.
// +top+mid and +bottom-mid are both closed with outward normals.
func newBipyramid() (top, bottom, mid *mesh.TriMesh) {
	var (
		A = r3.Vec{X: 1}
		B = r3.Vec{Y: 1}
		C = r3.Vec{X: -1, Y: -1}
		N = r3.Vec{Z: 1}
		S = r3.Vec{Z: -1}
	)
	top = &mesh.TriMesh{Name: "top", Vertices: []r3.Vec{N, A, B, C},
		Triangles: [][3]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 1}}}
	bottom = &mesh.TriMesh{Name: "bottom", Vertices: []r3.Vec{S, A, B, C},
		Triangles: [][3]int{{0, 2, 1}, {0, 3, 2}, {0, 1, 3}}}
	mid = &mesh.TriMesh{Name: "mid", Vertices: []r3.Vec{A, B, C},
		Triangles: [][3]int{{0, 2, 1}}}
	return
}

func TestImportMeshesMergesSharedVertices(t *testing.T) {
	g := NewGeometry()
	top, bottom, mid := newBipyramid()
	require.NoError(t, g.ImportMeshes([]*mesh.TriMesh{top, bottom, mid}))

	assert.Equal(t, 5, g.NumVertices())
	assert.Equal(t, 3, g.NumMeshes())
	for i, name := range []string{"top", "bottom", "mid"} {
		ind, ok := g.MeshByName(name)
		require.True(t, ok)
		assert.Equal(t, i, ind)
		assert.Equal(t, i+1, g.Meshes[ind].ID)
	}
	// The equator of every mesh lands on the same three vertices
	midTri := g.Meshes[2].Triangles[0]
	assert.Equal(t, r3.Vec{X: 1}, g.Vertices[midTri[0]])
	assert.Contains(t, g.Meshes[0].Triangles[0], midTri[0])

	assert.Error(t, g.ImportMeshes([]*mesh.TriMesh{mid}), "duplicate mesh name")
}

func TestImportMeshesRejectsDuplicatesWithinBatch(t *testing.T) {
	g := NewGeometry()
	err := g.ImportMeshes([]*mesh.TriMesh{newTet("a", 1, r3.Vec{}), newTet("a", 2, r3.Vec{})})
	assert.Error(t, err)
	assert.Zero(t, g.NumMeshes())
	assert.Zero(t, g.NumVertices())
	_, ok := g.MeshByName("a")
	assert.False(t, ok)
}

func TestReserveVerticesIsBounded(t *testing.T) {
	g := NewGeometry()
	g.ReserveVertices(999999999999999999)
	assert.Equal(t, maxReserve, cap(g.Vertices))
	g.ReserveVertices(-1)
	assert.Zero(t, g.NumVertices())

	g.AllocateDomains(999999999999999999)
	assert.Empty(t, g.Domains)
	assert.Equal(t, maxReserve, cap(g.Domains))
}

func TestAddMeshKeepsVertices(t *testing.T) {
	g := NewGeometry()
	g.ReserveVertices(8)
	assert.Equal(t, 8, cap(g.Vertices))

	_, err := g.AddMesh("a", newTet("a", 1, r3.Vec{}))
	require.NoError(t, err)
	ind, err := g.AddMesh("b", newTet("b", 1, r3.Vec{}))
	require.NoError(t, err)
	assert.Equal(t, 8, g.NumVertices())
	assert.Equal(t, Triangle{4, 6, 5}, g.Meshes[ind].Triangles[0])

	_, err = g.AddMesh("a", newTet("a", 1, r3.Vec{}))
	assert.Error(t, err)
}

func TestResolveMesh(t *testing.T) {
	g := NewGeometry()
	top, bottom, mid := newBipyramid()
	require.NoError(t, g.ImportMeshes([]*mesh.TriMesh{top, bottom, mid}))

	ind, ok := g.ResolveMesh("mid")
	assert.True(t, ok)
	assert.Equal(t, 2, ind)
	ind, ok = g.ResolveMesh("2")
	assert.True(t, ok)
	assert.Equal(t, 1, ind)
	_, ok = g.ResolveMesh("4")
	assert.False(t, ok)
	_, ok = g.ResolveMesh("side")
	assert.False(t, ok)
}

func TestCheckInterface(t *testing.T) {
	g := NewGeometry()
	top, bottom, mid := newBipyramid()
	require.NoError(t, g.ImportMeshes([]*mesh.TriMesh{top, bottom, mid}))

	upper := NewInterface("upper")
	upper.Add(0, true)
	upper.Add(2, true)
	lower := NewInterface("lower")
	lower.Add(1, true)
	lower.Add(2, false)
	wrong := NewInterface("wrong")
	wrong.Add(1, true)
	wrong.Add(2, true)
	open := NewInterface("open")
	open.Add(0, true)

	for _, iface := range []Interface{upper, lower, wrong, open} {
		_, err := g.AddInterface(iface)
		require.NoError(t, err)
	}
	_, err := g.AddInterface(NewInterface("upper"))
	assert.Error(t, err)

	assert.NoError(t, g.CheckInterface(0))
	assert.NoError(t, g.CheckInterface(1))
	assert.Equal(t, []OrientedMesh{{Mesh: 1, Orientation: true}, {Mesh: 2, Orientation: false}},
		g.Interfaces[1].Meshes)

	var notClosed *InterfaceNotClosedError
	err = g.CheckInterface(2)
	require.True(t, errors.As(err, &notClosed))
	assert.Equal(t, "wrong", notClosed.Interface)

	err = g.CheckInterface(3)
	require.True(t, errors.As(err, &notClosed))
	assert.Equal(t, "open", notClosed.Interface)
}

func TestCheckInterfaceCorrectsGlobalOrientation(t *testing.T) {
	g := NewGeometry()
	inward := newTet("inward", 2, r3.Vec{X: 5})
	for i := range inward.Triangles {
		inward.Triangles[i][1], inward.Triangles[i][2] = inward.Triangles[i][2], inward.Triangles[i][1]
	}
	meshInd, err := g.AddMesh("inward", inward)
	require.NoError(t, err)
	iface := NewInterface("inward")
	iface.Add(meshInd, true)
	ind, err := g.AddInterface(iface)
	require.NoError(t, err)

	require.NoError(t, g.CheckInterface(ind))
	assert.False(t, g.Interfaces[ind].Meshes[0].Orientation)
	assert.Greater(t, g.enclosedVolume(g.orientedTriangles(&g.Interfaces[ind])), 0.)

	// A second check leaves the corrected orientation alone
	require.NoError(t, g.CheckInterface(ind))
	assert.False(t, g.Interfaces[ind].Meshes[0].Orientation)
}

func TestDomainsAreUnique(t *testing.T) {
	g := NewGeometry()
	g.AllocateDomains(2)
	ind, err := g.AddDomain(NewDomain("Brain"))
	require.NoError(t, err)
	assert.Equal(t, 0, ind)
	_, err = g.AddDomain(NewDomain("Brain"))
	assert.Error(t, err)
	assert.Len(t, g.Domains, 1)

	dom, ok := g.DomainByName("Brain")
	require.True(t, ok)
	assert.Equal(t, "Brain", dom.Name)
	_, ok = g.DomainByName("Air")
	assert.False(t, ok)
}
