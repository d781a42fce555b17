package readers

import (
	"fmt"
	"os"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobem/mesh"
)

// ReadOFF reads an Object File Format surface. Polygonal faces are split into triangle fans.
func ReadOFF(filename string) (msh *mesh.TriMesh, err error) {
	var (
		file   *os.File
		fields []string
		vals   []float64
		inds   []int
		Nv, Nf int
	)
	if file, err = os.Open(filename); err != nil {
		return
	}
	defer file.Close()
	lr := newLineReader(file, "#")

	if Nv, Nf, err = readOFFHeader(lr); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	msh = mesh.NewTriMesh("")
	msh.Vertices = make([]r3.Vec, 0, capacity(Nv))
	for i := 0; i < Nv; i++ {
		if fields, err = lr.next(); err != nil {
			return nil, fmt.Errorf("%s: reading vertices: %w", filename, err)
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("%s:%d: invalid vertex line", filename, lr.line)
		}
		if vals, err = parseFloats(fields[:3]); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, lr.line, err)
		}
		msh.Vertices = append(msh.Vertices, r3.Vec{X: vals[0], Y: vals[1], Z: vals[2]})
	}

	msh.Triangles = make([][3]int, 0, capacity(Nf))
	for i := 0; i < Nf; i++ {
		if fields, err = lr.next(); err != nil {
			return nil, fmt.Errorf("%s: reading faces: %w", filename, err)
		}
		var nverts int
		if nverts, err = strconv.Atoi(fields[0]); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, lr.line, err)
		}
		if nverts < 3 || len(fields) < 1+nverts {
			return nil, fmt.Errorf("%s:%d: invalid face line", filename, lr.line)
		}
		// trailing fields hold optional face colors
		if inds, err = parseInts(fields[1 : 1+nverts]); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, lr.line, err)
		}
		for k := 1; k < nverts-1; k++ {
			msh.Triangles = append(msh.Triangles, [3]int{inds[0], inds[k], inds[k+1]})
		}
	}
	return
}

// readOFFHeader accepts both "OFF" followed by a counts line and "OFF Nv Nf Ne" on one line
func readOFFHeader(lr *lineReader) (Nv, Nf int, err error) {
	var fields []string
	if fields, err = lr.next(); err != nil {
		return
	}
	if fields[0] != "OFF" {
		return 0, 0, fmt.Errorf("line %d: missing OFF keyword", lr.line)
	}
	if fields = fields[1:]; len(fields) == 0 {
		if fields, err = lr.next(); err != nil {
			return
		}
	}
	if len(fields) < 2 {
		return 0, 0, fmt.Errorf("line %d: expected vertex and face counts", lr.line)
	}
	if Nv, err = parseCount(fields[0]); err != nil {
		return 0, 0, fmt.Errorf("line %d: vertex count: %w", lr.line, err)
	}
	if Nf, err = parseCount(fields[1]); err != nil {
		return 0, 0, fmt.Errorf("line %d: face count: %w", lr.line, err)
	}
	return
}

func countOFF(filename string) (Nv int, err error) {
	var file *os.File
	if file, err = os.Open(filename); err != nil {
		return
	}
	defer file.Close()
	if Nv, _, err = readOFFHeader(newLineReader(file, "#")); err != nil {
		err = fmt.Errorf("%s: %w", filename, err)
	}
	return
}
