package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/gobem/geometry"
)

// Properties is a named list of scalar properties, such as the conductivity of each domain
type Properties struct {
	names  []string
	values map[string]float64
}

func NewProperties() *Properties {
	return &Properties{values: make(map[string]float64)}
}

// Add sets the value of name, names are unique
func (p *Properties) Add(name string, value float64) error {
	if _, dup := p.values[name]; dup {
		return fmt.Errorf("duplicate property %q", name)
	}
	p.names = append(p.names, name)
	p.values[name] = value
	return nil
}

// Conductivity makes Properties a geometry.ConductivityLookup
func (p *Properties) Conductivity(name string) (sigma float64, ok bool) {
	sigma, ok = p.values[name]
	return
}

// Names in file order
func (p *Properties) Names() []string { return p.names }

// ReadProperties reads a property list: "<name> <value>" lines, '#' starts a comment line.
// Files with a .yaml or .yml extension are read as a YAML mapping of names to values.
func ReadProperties(filename string) (props *Properties, err error) {
	var (
		file *os.File
	)
	if file, err = os.Open(filename); err != nil {
		return nil, &geometry.OpenError{Path: filename, Err: err}
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return readYAMLProperties(filename, file)
	}

	props = NewProperties()
	scanner := bufio.NewScanner(file)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, &geometry.WrongFileFormatError{Path: filename, Line: lineNum,
				Reason: fmt.Sprintf("expected \"<name> <value>\", found %q", line)}
		}
		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, &geometry.WrongFileFormatError{Path: filename, Line: lineNum,
				Reason: fmt.Sprintf("invalid value %q for %q", fields[1], fields[0])}
		}
		if err = props.Add(fields[0], value); err != nil {
			return nil, &geometry.WrongFileFormatError{Path: filename, Line: lineNum, Reason: err.Error()}
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return
}

func readYAMLProperties(filename string, file *os.File) (props *Properties, err error) {
	var (
		data   []byte
		values map[string]float64
	)
	if data, err = io.ReadAll(file); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	if err = yaml.Unmarshal(data, &values); err != nil {
		return nil, &geometry.WrongFileFormatError{Path: filename, Reason: err.Error()}
	}
	if values == nil {
		values = make(map[string]float64)
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	// map keys are unique, the list needs no duplicate check
	sort.Strings(names)
	return &Properties{names: names, values: values}, nil
}

// ReadConductivities reads the conductivity of every domain of geom from a property file.
// Either every domain gets a conductivity or geom is left untouched.
func ReadConductivities(geom *geometry.Geometry, filename string) (err error) {
	var props *Properties
	if props, err = ReadProperties(filename); err != nil {
		return
	}
	return geom.AssignConductivities(props)
}
