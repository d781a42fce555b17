package readfiles

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/notargets/gobem/geometry"
	"github.com/notargets/gobem/logger"
	"github.com/notargets/gobem/mesh"
	"github.com/notargets/gobem/mesh/readers"
)

const headerKeyword = "# Domain Description"

type geomReader struct {
	path string
	dir  string // directory relative filenames are resolved against
	tk   *tokenizer
	gr   grammar
	geom *geometry.Geometry
}

// ReadGeometry reads a geometry (.geom) file describing the meshes, interfaces and domains
// of a head model, checks that the interfaces are closed and classifies the topology.
// No geometry is returned on error.
func ReadGeometry(filename string) (geom *geometry.Geometry, err error) {
	var (
		file *os.File
	)
	if file, err = os.Open(filename); err != nil {
		return nil, &geometry.OpenError{Path: filename, Err: err}
	}
	defer file.Close()

	r := &geomReader{
		path: filename,
		dir:  filepath.Dir(filename),
		tk:   newTokenizer(file),
		geom: geometry.NewGeometry(),
	}
	if err = r.read(); err != nil {
		return nil, err
	}
	return r.geom, nil
}

func (r *geomReader) read() (err error) {
	if err = r.readHeader(); err != nil {
		return
	}
	for _, sec := range r.gr.sections() {
		r.tk.SkipComments('#')
		ind := r.tk.MatchAlternative(sec.keywords)
		if ind < 0 {
			if sec.optional {
				continue
			}
			return r.fail("expected %s, found %q", strings.Join(sec.keywords, " or "), r.tk.lookahead())
		}
		logger.Debug("reading section", "file", r.path, "section", sec.keywords[ind], "line", r.tk.line)
		if err = sec.parse(r, sec.keywords[ind]); err != nil {
			return
		}
	}
	if r.tk.SkipComments('#'); !r.tk.AtEOF() {
		logger.Warn("ignoring content after the domain section", "file", r.path, "line", r.tk.line)
	}
	return r.geom.ClassifyTopology()
}

// readHeader reads "# Domain Description <major>.<minor>" and selects the grammar of the rest of the file
func (r *geomReader) readHeader() (err error) {
	var token string
	if err = r.tk.Match(headerKeyword); err != nil {
		return r.fail("%v", err)
	}
	if token, err = r.tk.Word(); err != nil {
		return r.fail("%v", err)
	}
	r.tk.RestOfLine()
	if r.gr, err = selectGrammar(token); err != nil {
		return r.fail("%v", err)
	}
	r.geom.Version = r.gr.version()
	if r.geom.Version == geometry.Version10 {
		logger.Warn("deprecated geometry file, please consider updating it to the format 1.1",
			"file", r.path, "version", token)
	}
	return
}

// parseMeshes reads the optional mesh section: either one mesh archive holding every
// mesh or a list of mesh files, imported together so that shared vertices are merged
func (r *geomReader) parseMeshes(keyword string) (err error) {
	var (
		filename string
		meshes   []*mesh.TriMesh
		Nmeshes  int
	)
	switch keyword {
	case "MeshFile":
		r.tk.SkipComments('#')
		if filename, err = r.tk.Filename('"'); err != nil {
			return r.fail("%v", err)
		}
		if meshes, err = readers.ReadMeshArchive(r.fullname(filename)); err != nil {
			return r.meshError(r.fullname(filename), err)
		}
	case "Meshes":
		if Nmeshes, err = r.tk.Int(); err != nil {
			return r.fail("%v", err)
		}
		for i := 0; i < Nmeshes; i++ {
			var (
				name string
				tm   *mesh.TriMesh
			)
			r.tk.SkipComments('#')
			if err = r.tk.Match("Mesh"); err != nil {
				return r.fail("%v", err)
			}
			if r.tk.MatchOptional(":") {
				name = strconv.Itoa(i + 1)
			} else if name, err = r.tk.Token(':'); err != nil {
				return r.fail("%v", err)
			}
			if filename, err = r.tk.Filename('"'); err != nil {
				return r.fail("%v", err)
			}
			if tm, err = readers.ReadMeshFile(r.fullname(filename)); err != nil {
				return r.meshError(r.fullname(filename), err)
			}
			tm.Name = name
			meshes = append(meshes, tm)
		}
	}
	if err = r.geom.ImportMeshes(meshes); err != nil {
		return r.fail("%v", err)
	}
	logger.Debug("meshes imported", "file", r.path, "meshes", len(meshes), "vertices", r.geom.NumVertices())
	return
}

// parseInterfaces reads "Interfaces <N> [Mesh]" and the interface entries. Without a
// mesh section every entry names a mesh file, otherwise it lists signed mesh ids.
func (r *geomReader) parseInterfaces() (err error) {
	var Ninterfaces int
	if Ninterfaces, err = r.tk.Int(); err != nil {
		return r.fail("%v", err)
	}
	// "Mesh" is accepted after the count for backward compatibility
	if trailing := strings.TrimSpace(r.tk.RestOfLine()); trailing != "" && trailing != "Mesh" {
		return r.fail("unexpected %q after the interface count", trailing)
	}
	if r.geom.NumMeshes() == 0 {
		return r.loadInterfaces(Ninterfaces)
	}
	return r.referenceInterfaces(Ninterfaces)
}

// loadInterfaces builds one interface per mesh file. The vertex pool is sized from the
// file headers before the meshes are loaded.
func (r *geomReader) loadInterfaces(Ninterfaces int) (err error) {
	var (
		names, filenames []string
		Nv               int
	)
	for i := 0; i < Ninterfaces; i++ {
		var (
			name, filename string
			n              int
		)
		r.tk.SkipComments('#')
		if name, err = r.gr.interfaceName(r.tk, i+1); err != nil {
			return r.fail("%v", err)
		}
		if filename, err = r.tk.Filename('"'); err != nil {
			return r.fail("%v", err)
		}
		filename = r.fullname(filename)
		if n, err = readers.CountVertices(filename); err != nil {
			return r.meshError(filename, err)
		}
		names = append(names, name)
		filenames = append(filenames, filename)
		Nv += n
	}
	r.geom.ReserveVertices(Nv)

	for i := range names {
		var (
			tm      *mesh.TriMesh
			meshInd int
		)
		if tm, err = readers.ReadMeshFile(filenames[i]); err != nil {
			return r.meshError(filenames[i], err)
		}
		if meshInd, err = r.geom.AddMesh(names[i], tm); err != nil {
			return r.fail("%v", err)
		}
		iface := geometry.NewInterface(names[i])
		iface.Add(meshInd, true)
		if _, err = r.geom.AddInterface(iface); err != nil {
			return r.fail("%v", err)
		}
	}
	return
}

// referenceInterfaces builds interfaces from lines of signed ids of already loaded meshes
func (r *geomReader) referenceInterfaces(Ninterfaces int) (err error) {
	for i := 0; i < Ninterfaces; i++ {
		var name, ids string
		r.tk.SkipComments('#')
		if name, ids, err = splitInterface(r.tk.RestOfLine(), i+1); err != nil {
			return r.fail("%v", err)
		}
		iface := geometry.NewInterface(name)
		for _, id := range strings.Fields(ids) {
			sign, meshID := splitSign(id)
			if meshID == "" {
				return r.fail("interface %q: missing mesh id after %q", name, id)
			}
			meshInd, ok := r.geom.ResolveMesh(meshID)
			if !ok {
				return r.fail("interface %q: unknown mesh %q", name, meshID)
			}
			iface.Add(meshInd, sign != '-')
		}
		if len(iface.Meshes) == 0 {
			return r.fail("interface %q has no mesh", name)
		}
		if _, err = r.geom.AddInterface(iface); err != nil {
			return r.fail("%v", err)
		}
	}
	return
}

// splitInterface separates "[Interface [name]:] ids", unnamed interfaces are named after their index
func splitInterface(line string, index int) (name, ids string, err error) {
	line = strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, "Interface:"):
		return strconv.Itoa(index), line[len("Interface:"):], nil
	case strings.HasPrefix(line, "Interface") && len(line) > len("Interface") && isSpace(line[len("Interface")]):
		rest := line[len("Interface"):]
		ind := strings.IndexByte(rest, ':')
		if ind < 0 {
			return "", "", fmt.Errorf("missing ':' after the interface name")
		}
		if name = strings.TrimSpace(rest[:ind]); name == "" {
			name = strconv.Itoa(index)
		}
		return name, rest[ind+1:], nil
	default:
		return strconv.Itoa(index), line, nil
	}
}

// splitSign strips a leading '+' or '-' from id, the sign defaults to '+'
func splitSign(id string) (sign byte, name string) {
	if id[0] == '-' || id[0] == '+' {
		return id[0], id[1:]
	}
	return '+', id
}

// parseDomains reads "Domains <N>" and one line per domain listing signed interface ids.
// A '-' places the domain inside the interface, '+' or no sign outside.
func (r *geomReader) parseDomains() (err error) {
	var Ndomains int
	if Ndomains, err = r.tk.Int(); err != nil {
		return r.fail("%v", err)
	}
	r.tk.RestOfLine()

	r.geom.AllocateDomains(Ndomains)
	for i := 0; i < Ndomains; i++ {
		var name, ids string
		r.tk.SkipComments('#')
		if err = r.tk.Match("Domain"); err != nil {
			return r.fail("%v", err)
		}
		line := r.tk.RestOfLine()
		if name, ids, err = r.gr.splitDomain(line); err != nil {
			return r.fail("%v", err)
		}
		dom := geometry.NewDomain(name)
		for _, id := range strings.Fields(ids) {
			if id == "shared" {
				logger.Warn("keyword shared is useless, please consider updating the geometry file to the format 1.1",
					"file", r.path, "domain", name)
				break
			}
			sign, ifaceID := splitSign(id)
			ind, ok := r.geom.InterfaceByName(ifaceID)
			if !ok {
				return &geometry.NonExistingDomainError{Domain: name, ID: ifaceID}
			}
			if err = r.geom.CheckInterface(ind); err != nil {
				return
			}
			dom.Add(ind, sign == '-')
		}
		if _, err = r.geom.AddDomain(dom); err != nil {
			return r.fail("%v", err)
		}
	}
	return
}

// fullname resolves filename against the directory of the geometry file unless it is absolute
func (r *geomReader) fullname(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(r.dir, filename)
}

func (r *geomReader) fail(format string, args ...interface{}) error {
	return &geometry.WrongFileFormatError{Path: r.path, Line: r.tk.line, Reason: fmt.Sprintf(format, args...)}
}

// meshError reports a mesh that could not be opened as an OpenError and any other mesh
// loading failure as a format error of the geometry file
func (r *geomReader) meshError(filename string, err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return &geometry.OpenError{Path: filename, Err: err}
	}
	return r.fail("mesh %s: %v", filename, err)
}
