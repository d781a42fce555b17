package geometry

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// OrientedMesh refers to a mesh of the geometry by index. Orientation true keeps the
// mesh normals as given, false reverses them.
type OrientedMesh struct {
	Mesh        int
	Orientation bool
}

// Sign is +1 for a mesh taken as given and -1 for a reversed one
func (om OrientedMesh) Sign() int {
	if om.Orientation {
		return 1
	}
	return -1
}

// Interface is a closed boundary surface stitched from one or more oriented meshes
type Interface struct {
	Name      string
	Meshes    []OrientedMesh
	Outermost bool
	checked   bool
}

func NewInterface(name string) Interface {
	return Interface{Name: name}
}

func (iface *Interface) Add(meshInd int, orientation bool) {
	iface.Meshes = append(iface.Meshes, OrientedMesh{Mesh: meshInd, Orientation: orientation})
}

// orientedTriangles returns the triangles of every mesh of the interface with their
// vertex order reversed for reversed meshes
func (g *Geometry) orientedTriangles(iface *Interface) (tris []Triangle) {
	for _, om := range iface.Meshes {
		for _, tri := range g.Meshes[om.Mesh].Triangles {
			if !om.Orientation {
				tri[1], tri[2] = tri[2], tri[1]
			}
			tris = append(tris, tri)
		}
	}
	return
}

// CheckInterface verifies that interface ind is closed: every edge is shared by exactly
// two triangles that traverse it in opposite directions. When the closed surface
// encloses a negative volume, every mesh of the interface is reversed so that the
// normals point outward.
func (g *Geometry) CheckInterface(ind int) (err error) {
	var (
		iface = &g.Interfaces[ind]
		Nv    = len(g.Vertices)
	)
	if iface.checked {
		return
	}
	tris := g.orientedTriangles(iface)
	if len(tris) == 0 {
		return &InterfaceNotClosedError{Interface: iface.Name, Reason: "no triangles"}
	}
	// Directed edge incidence: EToE(a,b) counts the triangles traversing edge a->b
	EToE := sparse.NewDOK(Nv, Nv)
	for _, tri := range tris {
		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			if a == b {
				return &InterfaceNotClosedError{Interface: iface.Name,
					Reason: fmt.Sprintf("degenerate triangle %v", tri)}
			}
			EToE.Set(a, b, EToE.At(a, b)+1)
		}
	}
	edges := EToE.ToCSR()
	edges.DoNonZero(func(i, j int, v float64) {
		if err != nil {
			return
		}
		switch {
		case v != 1:
			err = &InterfaceNotClosedError{Interface: iface.Name,
				Reason: fmt.Sprintf("edge %d-%d is traversed %d times in the same direction", i, j, int(v))}
		case edges.At(j, i) != 1:
			err = &InterfaceNotClosedError{Interface: iface.Name,
				Reason: fmt.Sprintf("edge %d-%d has no opposite triangle", i, j)}
		}
	})
	if err != nil {
		return
	}
	if g.enclosedVolume(tris) < 0 {
		for i := range iface.Meshes {
			iface.Meshes[i].Orientation = !iface.Meshes[i].Orientation
		}
	}
	iface.checked = true
	return
}

// enclosedVolume is the signed volume enclosed by a closed triangulated surface,
// positive when the triangle normals point outward
func (g *Geometry) enclosedVolume(tris []Triangle) float64 {
	vols := make([]float64, len(tris))
	for i, tri := range tris {
		v0, v1, v2 := g.Vertices[tri[0]], g.Vertices[tri[1]], g.Vertices[tri[2]]
		vols[i] = r3.Dot(v0, r3.Cross(v1, v2)) / 6
	}
	return floats.Sum(vols)
}
