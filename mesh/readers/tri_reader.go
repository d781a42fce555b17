package readers

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobem/mesh"
)

// ReadTri reads a .tri surface:
//
//	- Nv
//	x y z nx ny nz      (Nv lines, normals are ignored)
//	- Nt Nt Nt
//	i j k               (Nt lines, 0-based vertex indices)
func ReadTri(filename string) (msh *mesh.TriMesh, err error) {
	var (
		file   *os.File
		fields []string
		vals   []float64
		inds   []int
		Nv, Nt int
	)
	if file, err = os.Open(filename); err != nil {
		return
	}
	defer file.Close()
	lr := newLineReader(file, "")

	if Nv, err = readTriCount(lr); err != nil {
		return nil, fmt.Errorf("%s: vertex count: %w", filename, err)
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

	if Nt, err = readTriCount(lr); err != nil {
		return nil, fmt.Errorf("%s: triangle count: %w", filename, err)
	}
	msh.Triangles = make([][3]int, 0, capacity(Nt))
	for i := 0; i < Nt; i++ {
		if fields, err = lr.next(); err != nil {
			return nil, fmt.Errorf("%s: reading triangles: %w", filename, err)
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("%s:%d: invalid triangle line", filename, lr.line)
		}
		if inds, err = parseInts(fields[:3]); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, lr.line, err)
		}
		msh.Triangles = append(msh.Triangles, [3]int{inds[0], inds[1], inds[2]})
	}
	return
}

// readTriCount reads a "- N [N N]" count line
func readTriCount(lr *lineReader) (n int, err error) {
	var fields []string
	if fields, err = lr.next(); err != nil {
		return
	}
	if len(fields) < 2 || fields[0] != "-" {
		return 0, fmt.Errorf("line %d: expected \"- <count>\"", lr.line)
	}
	if n, err = parseCount(fields[1]); err != nil {
		err = fmt.Errorf("line %d: %w", lr.line, err)
	}
	return
}

func countTri(filename string) (Nv int, err error) {
	var file *os.File
	if file, err = os.Open(filename); err != nil {
		return
	}
	defer file.Close()
	if Nv, err = readTriCount(newLineReader(file, "")); err != nil {
		err = fmt.Errorf("%s: vertex count: %w", filename, err)
	}
	return
}
