package readers

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/notargets/gobem/mesh"
)

// ReadMeshFile reads a surface mesh based on extension. The mesh is named after the file.
func ReadMeshFile(filename string) (msh *mesh.TriMesh, err error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".tri":
		msh, err = ReadTri(filename)
	case ".off":
		msh, err = ReadOFF(filename)
	case ".msh":
		msh, err = ReadGmsh22(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}
	if err != nil {
		return nil, err
	}
	msh.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if err = msh.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return
}

// CountVertices returns the number of vertices a mesh file declares, reading only its header
func CountVertices(filename string) (Nv int, err error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".tri":
		return countTri(filename)
	case ".off":
		return countOFF(filename)
	case ".msh":
		return countGmsh22(filename)
	default:
		return 0, fmt.Errorf("unsupported mesh format: %s", ext)
	}
}

// lineReader hands out the non blank lines of a file, dropping anything following a comment marker
type lineReader struct {
	scanner *bufio.Scanner
	comment string
	line    int
}

func newLineReader(file *os.File, comment string) *lineReader {
	return &lineReader{scanner: bufio.NewScanner(file), comment: comment}
}

func (lr *lineReader) next() (fields []string, err error) {
	for lr.scanner.Scan() {
		lr.line++
		line := lr.scanner.Text()
		if lr.comment != "" {
			if ind := strings.Index(line, lr.comment); ind >= 0 {
				line = line[:ind]
			}
		}
		if fields = strings.Fields(line); len(fields) != 0 {
			return
		}
	}
	if err = lr.scanner.Err(); err == nil {
		err = fmt.Errorf("unexpected EOF after line %d", lr.line)
	}
	return
}

// maxPrealloc bounds the capacity taken from counts declared in a file header
const maxPrealloc = 1 << 16

func capacity(count int) int {
	return min(count, maxPrealloc)
}

// parseCount reads a declared count, which may not be negative
func parseCount(field string) (n int, err error) {
	if n, err = strconv.Atoi(field); err == nil && n < 0 {
		err = fmt.Errorf("negative count %d", n)
	}
	return
}

func parseInts(fields []string) (vals []int, err error) {
	vals = make([]int, len(fields))
	for i, f := range fields {
		if vals[i], err = strconv.Atoi(f); err != nil {
			return nil, err
		}
	}
	return
}

func parseFloats(fields []string) (vals []float64, err error) {
	vals = make([]float64, len(fields))
	for i, f := range fields {
		if vals[i], err = strconv.ParseFloat(f, 64); err != nil {
			return nil, err
		}
	}
	return
}
