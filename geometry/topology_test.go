package geometry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gobem/mesh"
)

// halfSpaces is a compact domain description: interface name -> inside
type halfSpaces map[string]bool

// buildGeometry creates one single mesh interface per name and the given domains, in order
func buildGeometry(t *testing.T, ifaces []string, domains []string, defs []halfSpaces) *Geometry {
	t.Helper()
	g := NewGeometry()
	for i, name := range ifaces {
		meshInd, err := g.AddMesh(name, newTet(name, float64(i+1), r3.Vec{}))
		require.NoError(t, err)
		iface := NewInterface(name)
		iface.Add(meshInd, true)
		_, err = g.AddInterface(iface)
		require.NoError(t, err)
	}
	g.AllocateDomains(len(domains))
	for i, name := range domains {
		dom := NewDomain(name)
		for _, ifaceName := range ifaces {
			if inside, ok := defs[i][ifaceName]; ok {
				ind, _ := g.InterfaceByName(ifaceName)
				dom.Add(ind, inside)
			}
		}
		_, err := g.AddDomain(dom)
		require.NoError(t, err)
	}
	return g
}

func TestClassifyTopologyTwoLayers(t *testing.T) {
	g := buildGeometry(t, []string{"A"}, []string{"Brain", "Skull"},
		[]halfSpaces{{"A": true}, {"A": false}})
	require.NoError(t, g.ClassifyTopology())

	outer, ok := g.OutermostDomain()
	require.True(t, ok)
	assert.Equal(t, "Skull", outer.Name)
	assert.False(t, g.Domains[0].Outermost)
	assert.Equal(t, []int{0}, g.OutermostInterfaces())
	assert.True(t, g.Nested)
}

func TestClassifyTopologyHead(t *testing.T) {
	g := buildGeometry(t, []string{"Cortex", "Skull", "Head"},
		[]string{"Scalp", "Brain", "Air", "SkullBone"},
		[]halfSpaces{
			{"Head": true, "Skull": false},
			{"Cortex": true},
			{"Head": false},
			{"Skull": true, "Cortex": false},
		})
	require.NoError(t, g.ClassifyTopology())

	outer, ok := g.OutermostDomain()
	require.True(t, ok)
	assert.Equal(t, "Air", outer.Name)
	assert.Equal(t, []int{2}, g.OutermostInterfaces())
	assert.True(t, g.Nested)
}

func TestClassifyTopologyBranching(t *testing.T) {
	g := buildGeometry(t, []string{"Outer", "Left", "Right"},
		[]string{"Air", "Gap", "L", "R"},
		[]halfSpaces{
			{"Outer": false},
			{"Outer": true, "Left": false, "Right": false},
			{"Left": true},
			{"Right": true},
		})
	require.NoError(t, g.ClassifyTopology())
	assert.Equal(t, "Air", g.Domains[0].Name)
	assert.True(t, g.Domains[0].Outermost)
	assert.False(t, g.Nested)
}

func TestClassifyTopologyCancellingMesh(t *testing.T) {
	g := NewGeometry()
	top, bottom, mid := newBipyramid()
	require.NoError(t, g.ImportMeshes([]*mesh.TriMesh{top, bottom, mid}))
	upper := NewInterface("upper")
	upper.Add(0, true)
	upper.Add(2, true)
	lower := NewInterface("lower")
	lower.Add(1, true)
	lower.Add(2, false)
	_, err := g.AddInterface(upper)
	require.NoError(t, err)
	_, err = g.AddInterface(lower)
	require.NoError(t, err)

	g.AllocateDomains(3)
	out, u, l := NewDomain("Out"), NewDomain("U"), NewDomain("L")
	out.Add(0, false)
	out.Add(1, false)
	u.Add(0, true)
	l.Add(1, true)
	for _, dom := range []Domain{out, u, l} {
		_, err = g.AddDomain(dom)
		require.NoError(t, err)
	}

	require.NoError(t, g.ClassifyTopology())
	assert.True(t, g.Domains[0].Outermost)
	assert.ElementsMatch(t, []int{0, 1}, g.OutermostInterfaces())
	assert.Equal(t, 0, g.orientationSum(2))
	assert.Equal(t, 2, g.orientationSum(0))
	assert.False(t, g.Nested)
}

func TestClassifyTopologyUnusedMesh(t *testing.T) {
	g := buildGeometry(t, []string{"A"}, []string{"Brain", "Skull"},
		[]halfSpaces{{"A": true}, {"A": false}})
	_, err := g.AddMesh("unused", newTet("unused", 3, r3.Vec{}))
	require.NoError(t, err)
	require.NoError(t, g.ClassifyTopology())
	assert.False(t, g.Nested)
}

func TestClassifyTopologyOutermostCount(t *testing.T) {
	tests := []struct {
		name  string
		defs  []halfSpaces
		count int
	}{
		{"none", []halfSpaces{{"A": true}, {"A": true}}, 0},
		{"two", []halfSpaces{{"A": false}, {"A": false}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGeometry(t, []string{"A"}, []string{"D1", "D2"}, tt.defs)
			err := g.ClassifyTopology()
			var outerErr *OutermostDomainError
			require.True(t, errors.As(err, &outerErr))
			assert.Equal(t, tt.count, outerErr.Count)
		})
	}
}

type conductivities map[string]float64

func (c conductivities) Conductivity(name string) (float64, bool) {
	sigma, ok := c[name]
	return sigma, ok
}

func TestAssignConductivities(t *testing.T) {
	g := buildGeometry(t, []string{"A"}, []string{"Brain", "Skull"},
		[]halfSpaces{{"A": true}, {"A": false}})

	require.NoError(t, g.AssignConductivities(conductivities{"Brain": 0.33, "Skull": 0.0042, "Air": 0}))
	assert.Equal(t, 0.33, g.Domains[0].Conductivity)
	assert.Equal(t, 0.0042, g.Domains[1].Conductivity)
}

func TestAssignConductivitiesAllOrNothing(t *testing.T) {
	g := buildGeometry(t, []string{"A"}, []string{"Skull", "Brain"},
		[]halfSpaces{{"A": false}, {"A": true}})

	err := g.AssignConductivities(conductivities{"Skull": 0.0042})
	var badDomain *BadDomainError
	require.True(t, errors.As(err, &badDomain))
	assert.Equal(t, "Brain", badDomain.Domain)
	assert.Zero(t, g.Domains[0].Conductivity)
}
