package geometry

// ClassifyTopology marks the outermost domain, the only domain lying outside of all its
// interfaces, along with the interfaces bounding it, then decides whether the geometry
// is nested. The geometry is not nested when:
//   - a domain other than the outermost one lies outside of two or more interfaces, or
//   - a mesh is used with orientations summing to zero over every half-space of every domain.
//
// The second rule also holds for a mesh that no domain references.
func (g *Geometry) ClassifyTopology() (err error) {
	var (
		outer = -1
		count int
	)
	for i := range g.Domains {
		if g.Domains[i].IsOutside() {
			if outer < 0 {
				outer = i
			}
			count++
		}
	}
	if count != 1 {
		return &OutermostDomainError{Count: count}
	}
	g.Domains[outer].Outermost = true
	for _, hs := range g.Domains[outer].HalfSpaces {
		g.Interfaces[hs.Interface].Outermost = true
	}
	g.Nested = g.isNested(outer)
	return
}

func (g *Geometry) isNested(outer int) bool {
	for i := range g.Domains {
		if i != outer && g.Domains[i].OutsideCount() >= 2 {
			return false
		}
	}
	for m := range g.Meshes {
		if g.orientationSum(m) == 0 {
			return false
		}
	}
	return true
}

// orientationSum adds the sign of every use of mesh m across the half-spaces of all domains
func (g *Geometry) orientationSum(m int) (sum int) {
	for _, dom := range g.Domains {
		for _, hs := range dom.HalfSpaces {
			for _, om := range g.Interfaces[hs.Interface].Meshes {
				if om.Mesh == m {
					sum += om.Sign()
				}
			}
		}
	}
	return
}
