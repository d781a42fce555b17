package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/gobem/geometry"
)

// Summary is the report of a checked head model
type Summary struct {
	Title      string             `json:"Title,omitempty"`
	Version    string             `json:"Version"`
	Nested     bool               `json:"Nested"`
	Vertices   int                `json:"Vertices"`
	Meshes     []MeshSummary      `json:"Meshes"`
	Interfaces []InterfaceSummary `json:"Interfaces"`
	Domains    []DomainSummary    `json:"Domains"`
}

type MeshSummary struct {
	Name      string `json:"Name"`
	ID        int    `json:"ID"`
	Triangles int    `json:"Triangles"`
}

type InterfaceSummary struct {
	Name      string   `json:"Name"`
	Meshes    []string `json:"Meshes"` // signed mesh names
	Outermost bool     `json:"Outermost,omitempty"`
}

type DomainSummary struct {
	Name         string   `json:"Name"`
	HalfSpaces   []string `json:"HalfSpaces"` // '-' inside, '+' outside of the interface
	Conductivity *float64 `json:"Conductivity,omitempty"`
	Outermost    bool     `json:"Outermost,omitempty"`
}

func NewSummary(title string, g *geometry.Geometry, withConductivity bool) (s *Summary) {
	s = &Summary{
		Title:    title,
		Version:  g.Version.String(),
		Nested:   g.Nested,
		Vertices: g.NumVertices(),
	}
	for _, m := range g.Meshes {
		s.Meshes = append(s.Meshes, MeshSummary{Name: m.Name, ID: m.ID, Triangles: len(m.Triangles)})
	}
	for _, iface := range g.Interfaces {
		is := InterfaceSummary{Name: iface.Name, Outermost: iface.Outermost}
		for _, om := range iface.Meshes {
			is.Meshes = append(is.Meshes, signed(!om.Orientation, g.Meshes[om.Mesh].Name))
		}
		s.Interfaces = append(s.Interfaces, is)
	}
	for _, dom := range g.Domains {
		ds := DomainSummary{Name: dom.Name, Outermost: dom.Outermost}
		for _, hs := range dom.HalfSpaces {
			ds.HalfSpaces = append(ds.HalfSpaces, signed(hs.Inside, g.Interfaces[hs.Interface].Name))
		}
		if withConductivity {
			sigma := dom.Conductivity
			ds.Conductivity = &sigma
		}
		s.Domains = append(s.Domains, ds)
	}
	return
}

func signed(negative bool, name string) string {
	if negative {
		return "-" + name
	}
	return "+" + name
}

// Write formats the summary as "text" or "yaml"
func (s *Summary) Write(w io.Writer, format string) (err error) {
	switch format {
	case "yaml":
		var data []byte
		if data, err = yaml.Marshal(s); err != nil {
			return
		}
		_, err = w.Write(data)
		return
	case "text", "":
		return s.writeText(w)
	default:
		return fmt.Errorf("unknown output format %q, use text or yaml", format)
	}
}

func (s *Summary) writeText(w io.Writer) (err error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s]\t\t= Version\n", s.Version)
	fmt.Fprintf(&sb, "%v\t\t= Nested\n", s.Nested)
	fmt.Fprintf(&sb, "%d\t\t= Vertices\n", s.Vertices)
	for _, m := range s.Meshes {
		fmt.Fprintf(&sb, "Mesh[%d] %s: %d triangles\n", m.ID, m.Name, m.Triangles)
	}
	for _, is := range s.Interfaces {
		fmt.Fprintf(&sb, "Interface %s: %s%s\n", is.Name, strings.Join(is.Meshes, " "), outermostTag(is.Outermost))
	}
	for _, ds := range s.Domains {
		fmt.Fprintf(&sb, "Domain %s: %s", ds.Name, strings.Join(ds.HalfSpaces, " "))
		if ds.Conductivity != nil {
			fmt.Fprintf(&sb, " sigma=%g", *ds.Conductivity)
		}
		fmt.Fprintf(&sb, "%s\n", outermostTag(ds.Outermost))
	}
	_, err = io.WriteString(w, sb.String())
	return
}

func outermostTag(outermost bool) string {
	if outermost {
		return " (outermost)"
	}
	return ""
}
