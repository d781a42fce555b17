package geometry

// HalfSpace selects the interior (Inside) or exterior side of interface Interface
type HalfSpace struct {
	Interface int
	Inside    bool
}

// Domain is the intersection of its half-spaces
type Domain struct {
	Name         string
	HalfSpaces   []HalfSpace
	Conductivity float64
	Outermost    bool
}

func NewDomain(name string) Domain {
	return Domain{Name: name}
}

func (dom *Domain) Add(ifaceInd int, inside bool) {
	dom.HalfSpaces = append(dom.HalfSpaces, HalfSpace{Interface: ifaceInd, Inside: inside})
}

// OutsideCount is the number of interfaces the domain lies outside of
func (dom *Domain) OutsideCount() (count int) {
	for _, hs := range dom.HalfSpaces {
		if !hs.Inside {
			count++
		}
	}
	return
}

// IsOutside is true when the domain lies outside of every one of its interfaces
func (dom *Domain) IsOutside() bool {
	return dom.OutsideCount() == len(dom.HalfSpaces)
}

// ConductivityLookup resolves a domain name to its conductivity
type ConductivityLookup interface {
	Conductivity(name string) (sigma float64, ok bool)
}

// AssignConductivities sets the conductivity of every domain. Nothing is assigned
// unless every domain has an entry; the first missing domain, in domain order, is reported.
func (g *Geometry) AssignConductivities(props ConductivityLookup) (err error) {
	sigmas := make([]float64, len(g.Domains))
	for i, dom := range g.Domains {
		var ok bool
		if sigmas[i], ok = props.Conductivity(dom.Name); !ok {
			return &BadDomainError{Domain: dom.Name}
		}
	}
	for i := range g.Domains {
		g.Domains[i].Conductivity = sigmas[i]
	}
	return
}
