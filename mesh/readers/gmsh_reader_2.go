package readers

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobem/mesh"
)

// gmshTriangle is the Gmsh v2.2 element type number of a 3-node triangle
const gmshTriangle = 2

// gmshSurfaces holds the triangles of a Gmsh v2.2 file grouped by physical tag
type gmshSurfaces struct {
	names     map[int]string // physical tag -> name
	nodeIndex map[int]int    // gmsh node id -> vertex index
	vertices  []r3.Vec
	tris      map[int][][3]int
	tags      []int // physical tags in order of first use
}

// ReadGmsh22 reads every triangle of an ASCII Gmsh MSH 2.2 file as a single surface
func ReadGmsh22(filename string) (msh *mesh.TriMesh, err error) {
	var gs *gmshSurfaces
	if gs, err = readGmsh22(filename); err != nil {
		return
	}
	msh = mesh.NewTriMesh("")
	msh.Vertices = gs.vertices
	for _, tag := range gs.tags {
		msh.Triangles = append(msh.Triangles, gs.tris[tag]...)
	}
	msh.Compact()
	return
}

// ReadMeshArchive reads an ASCII Gmsh MSH 2.2 file holding several surfaces. Each physical
// group of triangles becomes one mesh named after the group, or after its tag when unnamed.
// Meshes are returned in increasing tag order.
func ReadMeshArchive(filename string) (meshes []*mesh.TriMesh, err error) {
	var gs *gmshSurfaces
	if gs, err = readGmsh22(filename); err != nil {
		return
	}
	tags := append([]int(nil), gs.tags...)
	sort.Ints(tags)
	for _, tag := range tags {
		name, ok := gs.names[tag]
		if !ok {
			name = strconv.Itoa(tag)
		}
		msh := mesh.NewTriMesh(name)
		msh.Vertices = gs.vertices
		msh.Triangles = gs.tris[tag]
		msh.Compact()
		meshes = append(meshes, msh)
	}
	if len(meshes) == 0 {
		return nil, fmt.Errorf("%s: no triangles found", filename)
	}
	return
}

func readGmsh22(filename string) (gs *gmshSurfaces, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	gs = &gmshSurfaces{
		names:     make(map[int]string),
		nodeIndex: make(map[int]int),
		tris:      make(map[int][][3]int),
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "$MeshFormat":
			err = readMeshFormat22(scanner)
		case "$PhysicalNames":
			err = readPhysicalNames(scanner, gs)
		case "$Nodes":
			err = readNodes22(scanner, gs)
		case "$Elements":
			err = readElements22(scanner, gs)
		default:
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				// Skip sections that carry no surface data
				err = skipSection(scanner, "$End"+line[1:])
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}
	return
}

func skipSection(scanner *bufio.Scanner, endMarker string) error {
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == endMarker {
			return nil
		}
	}
	return fmt.Errorf("unexpected EOF looking for %s", endMarker)
}

// readMeshFormat22 reads the MeshFormat section, only ASCII 2.x files are supported
func readMeshFormat22(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in MeshFormat")
	}

	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return fmt.Errorf("invalid MeshFormat line")
	}
	if !strings.HasPrefix(parts[0], "2.") {
		return fmt.Errorf("unsupported Gmsh format version %s", parts[0])
	}
	if parts[1] != "0" {
		return fmt.Errorf("binary Gmsh files are not supported")
	}

	return skipSection(scanner, "$EndMeshFormat")
}

// readPhysicalNames reads physical group names
func readPhysicalNames(scanner *bufio.Scanner, gs *gmshSurfaces) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in PhysicalNames")
	}

	numNames, err := parseCount(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid physical name count: %v", err)
	}

	for i := 0; i < numNames; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading physical names")
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			return fmt.Errorf("invalid physical name line: %s", scanner.Text())
		}
		tag, err := strconv.Atoi(parts[1])
		if err != nil {
			return fmt.Errorf("invalid physical tag: %v", err)
		}
		// Names may contain spaces
		gs.names[tag] = strings.Trim(strings.Join(parts[2:], " "), "\"")
	}

	return skipSection(scanner, "$EndPhysicalNames")
}

// readNodes22 reads nodes in v2.2 format
func readNodes22(scanner *bufio.Scanner, gs *gmshSurfaces) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Nodes")
	}

	numNodes, err := parseCount(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid node count: %v", err)
	}
	gs.vertices = make([]r3.Vec, 0, capacity(numNodes))

	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading nodes")
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) < 4 {
			return fmt.Errorf("invalid node line: %s", scanner.Text())
		}

		nodeID, err := strconv.Atoi(parts[0])
		if err != nil {
			return fmt.Errorf("invalid node id: %v", err)
		}
		xyz, err := parseFloats(parts[1:4])
		if err != nil {
			return fmt.Errorf("node %d: %v", nodeID, err)
		}

		gs.nodeIndex[nodeID] = len(gs.vertices)
		gs.vertices = append(gs.vertices, r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	}

	return skipSection(scanner, "$EndNodes")
}

// readElements22 reads elements in v2.2 format, keeping only triangles
func readElements22(scanner *bufio.Scanner, gs *gmshSurfaces) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Elements")
	}

	numElements, err := parseCount(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid element count: %v", err)
	}

	for i := 0; i < numElements; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading elements")
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			return fmt.Errorf("invalid element line")
		}

		head, err := parseInts(parts[:3])
		if err != nil {
			return fmt.Errorf("invalid element line: %v", err)
		}
		elemID, elemType, numTags := head[0], head[1], head[2]

		if elemType != gmshTriangle {
			continue
		}

		nodeStart := 3 + numTags
		if len(parts) < nodeStart+3 {
			return fmt.Errorf("element %d: expected 3 nodes, got %d",
				elemID, len(parts)-nodeStart)
		}
		tags, err := parseInts(parts[3:nodeStart])
		if err != nil {
			return fmt.Errorf("element %d: invalid tags: %v", elemID, err)
		}
		nodeIDs, err := parseInts(parts[nodeStart : nodeStart+3])
		if err != nil {
			return fmt.Errorf("element %d: invalid nodes: %v", elemID, err)
		}

		var tri [3]int
		for j, id := range nodeIDs {
			idx, ok := gs.nodeIndex[id]
			if !ok {
				return fmt.Errorf("element %d references unknown node %d", elemID, id)
			}
			tri[j] = idx
		}

		// Get physical tag if present
		var physicalTag int
		if len(tags) > 0 {
			physicalTag = tags[0]
		}
		if _, seen := gs.tris[physicalTag]; !seen {
			gs.tags = append(gs.tags, physicalTag)
		}
		gs.tris[physicalTag] = append(gs.tris[physicalTag], tri)
	}

	return skipSection(scanner, "$EndElements")
}

func countGmsh22(filename string) (Nv int, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "$Nodes" {
			continue
		}
		if !scanner.Scan() {
			break
		}
		if Nv, err = parseCount(strings.TrimSpace(scanner.Text())); err != nil {
			return 0, fmt.Errorf("%s: invalid node count: %v", filename, err)
		}
		return
	}
	return 0, fmt.Errorf("%s: no $Nodes section", filename)
}
