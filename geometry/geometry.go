package geometry

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobem/mesh"
)

// Vertex is a point of the shared vertex pool
type Vertex = r3.Vec

// Version of the domain description format
type Version uint8

const (
	VersionUnknown Version = iota
	Version10              // legacy: auto-indexed names, no mesh section
	Version11
)

func (v Version) String() string {
	return [...]string{"unknown", "1.0", "1.1"}[v]
}

// Triangle indexes three vertices of the geometry vertex pool
type Triangle [3]int

// Mesh is a named set of triangles over the shared vertex pool. ID is the 1-based position of the mesh.
type Mesh struct {
	Name      string
	ID        int
	Triangles []Triangle
}

// Geometry owns the vertex pool and the meshes, interfaces and domains referencing it.
// Interfaces and half-spaces address meshes and interfaces by index into these slices.
type Geometry struct {
	Vertices   []Vertex
	Meshes     []Mesh
	Interfaces []Interface
	Domains    []Domain
	Version    Version
	Nested     bool

	meshIndex      map[string]int
	interfaceIndex map[string]int
	domainIndex    map[string]int
}

func NewGeometry() *Geometry {
	return &Geometry{
		meshIndex:      make(map[string]int),
		interfaceIndex: make(map[string]int),
		domainIndex:    make(map[string]int),
	}
}

func (g *Geometry) NumVertices() int { return len(g.Vertices) }
func (g *Geometry) NumMeshes() int   { return len(g.Meshes) }

// maxReserve bounds capacity requested from counts declared in files, the
// collections grow past it as entries are actually read
const maxReserve = 1 << 20

func reserveHint(n int) int {
	return max(0, min(n, maxReserve))
}

// ReserveVertices grows the capacity of the vertex pool to hold n more vertices
func (g *Geometry) ReserveVertices(n int) {
	if n = reserveHint(n); cap(g.Vertices)-len(g.Vertices) >= n {
		return
	}
	pool := make([]Vertex, len(g.Vertices), len(g.Vertices)+n)
	copy(pool, g.Vertices)
	g.Vertices = pool
}

// AddMesh appends the vertices of tm to the pool as they are and registers its triangles under name
func (g *Geometry) AddMesh(name string, tm *mesh.TriMesh) (id int, err error) {
	if _, dup := g.meshIndex[name]; dup {
		err = fmt.Errorf("duplicate mesh name %q", name)
		return
	}
	offset := len(g.Vertices)
	g.Vertices = append(g.Vertices, tm.Vertices...)
	tris := make([]Triangle, len(tm.Triangles))
	for i, tri := range tm.Triangles {
		tris[i] = Triangle{tri[0] + offset, tri[1] + offset, tri[2] + offset}
	}
	return g.registerMesh(name, tris), nil
}

// ImportMeshes registers every mesh, merging vertices that have identical coordinates
// so that meshes sharing a boundary share the corresponding vertices.
func (g *Geometry) ImportMeshes(meshes []*mesh.TriMesh) (err error) {
	var (
		total int
		seen  = make(map[Vertex]int, len(g.Vertices))
	)
	batch := make(map[string]bool, len(meshes))
	for _, tm := range meshes {
		if _, dup := g.meshIndex[tm.Name]; dup || batch[tm.Name] {
			return fmt.Errorf("duplicate mesh name %q", tm.Name)
		}
		batch[tm.Name] = true
		total += len(tm.Vertices)
	}
	g.ReserveVertices(total)
	for i, v := range g.Vertices {
		if _, ok := seen[v]; !ok {
			seen[v] = i
		}
	}
	for _, tm := range meshes {
		local := make([]int, len(tm.Vertices))
		for i, v := range tm.Vertices {
			ind, ok := seen[v]
			if !ok {
				ind = len(g.Vertices)
				g.Vertices = append(g.Vertices, v)
				seen[v] = ind
			}
			local[i] = ind
		}
		tris := make([]Triangle, len(tm.Triangles))
		for i, tri := range tm.Triangles {
			tris[i] = Triangle{local[tri[0]], local[tri[1]], local[tri[2]]}
		}
		g.registerMesh(tm.Name, tris)
	}
	return
}

func (g *Geometry) registerMesh(name string, tris []Triangle) (id int) {
	id = len(g.Meshes)
	g.Meshes = append(g.Meshes, Mesh{Name: name, ID: id + 1, Triangles: tris})
	g.meshIndex[name] = id
	return
}

// MeshByName returns the index of the named mesh
func (g *Geometry) MeshByName(name string) (int, bool) {
	ind, ok := g.meshIndex[name]
	return ind, ok
}

// ResolveMesh looks a mesh up by name first, then by its 1-based positional id
func (g *Geometry) ResolveMesh(id string) (int, bool) {
	if ind, ok := g.meshIndex[id]; ok {
		return ind, true
	}
	if n, err := strconv.Atoi(id); err == nil && n >= 1 && n <= len(g.Meshes) {
		return n - 1, true
	}
	return -1, false
}

// AddInterface appends an interface, interface names are unique
func (g *Geometry) AddInterface(iface Interface) (ind int, err error) {
	if _, dup := g.interfaceIndex[iface.Name]; dup {
		err = fmt.Errorf("duplicate interface name %q", iface.Name)
		return
	}
	ind = len(g.Interfaces)
	g.Interfaces = append(g.Interfaces, iface)
	g.interfaceIndex[iface.Name] = ind
	return
}

func (g *Geometry) InterfaceByName(name string) (int, bool) {
	ind, ok := g.interfaceIndex[name]
	return ind, ok
}

// AllocateDomains starts an empty domain collection with room for the declared count
func (g *Geometry) AllocateDomains(n int) {
	g.Domains = make([]Domain, 0, reserveHint(n))
	g.domainIndex = make(map[string]int, reserveHint(n))
}

// AddDomain appends a domain, domain names are unique
func (g *Geometry) AddDomain(dom Domain) (ind int, err error) {
	if _, dup := g.domainIndex[dom.Name]; dup {
		err = fmt.Errorf("duplicate domain name %q", dom.Name)
		return
	}
	ind = len(g.Domains)
	g.Domains = append(g.Domains, dom)
	g.domainIndex[dom.Name] = ind
	return
}

func (g *Geometry) DomainByName(name string) (*Domain, bool) {
	ind, ok := g.domainIndex[name]
	if !ok {
		return nil, false
	}
	return &g.Domains[ind], true
}

// OutermostDomain returns the domain flagged by ClassifyTopology
func (g *Geometry) OutermostDomain() (*Domain, bool) {
	for i := range g.Domains {
		if g.Domains[i].Outermost {
			return &g.Domains[i], true
		}
	}
	return nil, false
}

// OutermostInterfaces lists the indices of the interfaces bounding the outermost domain
func (g *Geometry) OutermostInterfaces() (inds []int) {
	for i, iface := range g.Interfaces {
		if iface.Outermost {
			inds = append(inds, i)
		}
	}
	return
}
