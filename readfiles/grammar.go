package readfiles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/notargets/gobem/geometry"
)

// section is one entry of the geometry file grammar: a set of alternative keywords
// introducing it and the parser of its body
type section struct {
	keywords []string
	optional bool
	parse    func(r *geomReader, keyword string) error
}

var (
	meshSection = section{
		keywords: []string{"MeshFile", "Meshes"},
		optional: true,
		parse:    (*geomReader).parseMeshes,
	}
	interfaceSection = section{
		keywords: []string{"Interfaces"},
		parse:    func(r *geomReader, _ string) error { return r.parseInterfaces() },
	}
	domainSection = section{
		keywords: []string{"Domains"},
		parse:    func(r *geomReader, _ string) error { return r.parseDomains() },
	}
)

// grammar holds everything that differs between versions of the domain description,
// it is chosen once from the file header
type grammar interface {
	version() geometry.Version
	sections() []section
	// interfaceName reads the name heading a bootstrap interface entry, index is 1-based
	interfaceName(tk *tokenizer, index int) (string, error)
	// splitDomain separates the domain name from the interface list of a domain line
	splitDomain(line string) (name, ids string, err error)
}

type legacyGrammar struct{}

func (legacyGrammar) version() geometry.Version { return geometry.Version10 }

func (legacyGrammar) sections() []section {
	return []section{interfaceSection, domainSection}
}

// Interfaces are always named after their index, an explicit name is read and dropped
func (legacyGrammar) interfaceName(tk *tokenizer, index int) (name string, err error) {
	if !tk.MatchOptional("Interface:") && tk.MatchOptional("Interface") {
		if _, err = tk.Token(':'); err != nil {
			return
		}
	}
	return strconv.Itoa(index), nil
}

func (legacyGrammar) splitDomain(line string) (name, ids string, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", "", fmt.Errorf("missing domain name")
	}
	name = fields[0]
	return name, strings.TrimSpace(line)[len(name):], nil
}

type currentGrammar struct{}

func (currentGrammar) version() geometry.Version { return geometry.Version11 }

func (currentGrammar) sections() []section {
	return []section{meshSection, interfaceSection, domainSection}
}

func (currentGrammar) interfaceName(tk *tokenizer, index int) (name string, err error) {
	if tk.MatchOptional("Interface:") {
		return strconv.Itoa(index), nil
	}
	if err = tk.Match("Interface"); err != nil {
		return
	}
	return tk.Token(':')
}

// The name runs up to the first colon, a line without one starts with a bare name
func (currentGrammar) splitDomain(line string) (name, ids string, err error) {
	if ind := strings.IndexByte(line, ':'); ind >= 0 {
		name, ids = strings.TrimSpace(line[:ind]), line[ind+1:]
	} else {
		return legacyGrammar{}.splitDomain(line)
	}
	if name == "" {
		err = fmt.Errorf("missing domain name")
	}
	return
}

// supportedVersions is the range of domain description versions this reader understands
var supportedVersions = mustConstraint(">= 1.0, < 1.2")

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraint
}

// selectGrammar maps a "<major>.<minor>" version token to its grammar
func selectGrammar(token string) (gr grammar, err error) {
	if strings.Count(token, ".") != 1 || token[0] < '0' || token[0] > '9' {
		return nil, fmt.Errorf("invalid domain description version %q", token)
	}
	v, err := semver.NewVersion(token)
	if err != nil || v.Prerelease() != "" || v.Metadata() != "" {
		return nil, fmt.Errorf("invalid domain description version %q", token)
	}
	if !supportedVersions.Check(v) {
		return nil, fmt.Errorf("domain description version %s not available", token)
	}
	if v.Minor() == 0 {
		return legacyGrammar{}, nil
	}
	return currentGrammar{}, nil
}
