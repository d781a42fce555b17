package InputParameters

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML model file
type ModelParameters struct {
	Title            string `json:"Title"`
	GeometryFile     string `json:"GeometryFile"`
	ConductivityFile string `json:"ConductivityFile"`
}

func (mp *ModelParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, mp)
}

// ReadModelParameters reads a model file, relative file names are resolved against its directory
func ReadModelParameters(filename string) (mp *ModelParameters, err error) {
	var (
		data []byte
	)
	if data, err = os.ReadFile(filename); err != nil {
		return
	}
	mp = &ModelParameters{}
	if err = mp.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if mp.GeometryFile == "" {
		return nil, fmt.Errorf("%s: GeometryFile is required", filename)
	}
	dir := filepath.Dir(filename)
	mp.GeometryFile = resolve(dir, mp.GeometryFile)
	mp.ConductivityFile = resolve(dir, mp.ConductivityFile)
	return
}

func resolve(dir, name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

func (mp *ModelParameters) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", mp.Title)
	fmt.Fprintf(w, "[%s]\t= Geometry File\n", mp.GeometryFile)
	fmt.Fprintf(w, "[%s]\t= Conductivity File\n", mp.ConductivityFile)
}
