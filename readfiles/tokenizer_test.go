package readfiles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizer(t *testing.T) {
	input := `# comment line
  # another one
Interfaces 2 Mesh
Interface Grey Matter: "my dir/cortex.tri"
Interface: skull.tri
`
	tk := newTokenizer(strings.NewReader(input))
	tk.SkipComments('#')
	assert.Equal(t, 3, tk.line)
	assert.False(t, tk.MatchOptional("Interfaces:"))
	assert.Equal(t, 0, tk.MatchAlternative([]string{"Interfaces", "Domains"}))

	n, err := tk.Int()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, " Mesh", tk.RestOfLine())

	assert.False(t, tk.MatchOptional("Interface:"))
	require.NoError(t, tk.Match("Interface"))
	name, err := tk.Token(':')
	require.NoError(t, err)
	assert.Equal(t, "Grey Matter", name)
	fn, err := tk.Filename('"')
	require.NoError(t, err)
	assert.Equal(t, "my dir/cortex.tri", fn)

	assert.True(t, tk.MatchOptional("Interface:"))
	fn, err = tk.Filename('"')
	require.NoError(t, err)
	assert.Equal(t, "skull.tri", fn)
	assert.True(t, tk.AtEOF())

	_, err = tk.Word()
	assert.Error(t, err)
	assert.Error(t, tk.Match("Domains"))
	assert.Equal(t, -1, tk.MatchAlternative([]string{"MeshFile", "Meshes"}))
}

func TestTokenizerErrors(t *testing.T) {
	_, err := newTokenizer(strings.NewReader("Cortex\n: x")).Token(':')
	assert.Error(t, err, "a name may not span lines")

	_, err = newTokenizer(strings.NewReader(`"cortex.tri`)).Filename('"')
	assert.Error(t, err)

	_, err = newTokenizer(strings.NewReader("three")).Int()
	assert.Error(t, err)

	_, err = newTokenizer(strings.NewReader("-3")).Int()
	assert.Error(t, err)
}

func TestSelectGrammar(t *testing.T) {
	gr, err := selectGrammar("1.1")
	require.NoError(t, err)
	assert.IsType(t, currentGrammar{}, gr)

	gr, err = selectGrammar("1.0")
	require.NoError(t, err)
	assert.IsType(t, legacyGrammar{}, gr)

	for _, token := range []string{"1.2", "2.0", "0.9", "1", "1.1.0", "v1.1", "1.x", "1.1-beta"} {
		_, err = selectGrammar(token)
		assert.Error(t, err, token)
	}
}

func TestSplitDomain(t *testing.T) {
	name, ids, err := currentGrammar{}.splitDomain(" Grey Matter: -1 +2")
	require.NoError(t, err)
	assert.Equal(t, "Grey Matter", name)
	assert.Equal(t, []string{"-1", "+2"}, strings.Fields(ids))

	name, ids, err = legacyGrammar{}.splitDomain(" Scalp 1 -3")
	require.NoError(t, err)
	assert.Equal(t, "Scalp", name)
	assert.Equal(t, []string{"1", "-3"}, strings.Fields(ids))

	_, _, err = currentGrammar{}.splitDomain(" : 1")
	assert.Error(t, err)
	_, _, err = legacyGrammar{}.splitDomain("  ")
	assert.Error(t, err)
}

func TestSplitInterface(t *testing.T) {
	tests := []struct {
		line, name, ids string
	}{
		{"Interface Cortex: +1 -2", "Cortex", " +1 -2"},
		{"Interface: top mid", "3", " top mid"},
		{"top -mid", "3", "top -mid"},
	}
	for _, tt := range tests {
		name, ids, err := splitInterface(tt.line, 3)
		require.NoError(t, err)
		assert.Equal(t, tt.name, name)
		assert.Equal(t, tt.ids, ids)
	}
	_, _, err := splitInterface("Interface Cortex 1 2", 1)
	assert.Error(t, err)
}
