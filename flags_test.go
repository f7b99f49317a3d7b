package argbind

import (
	"strings"
	"testing"

	"github.com/muir/commonerrors"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrammar(t *testing.T) *grammar {
	g := newGrammar()
	for _, def := range []struct {
		name       string
		takesValue bool
	}{
		{name: "count", takesValue: true},
		{name: "name", takesValue: true},
		{name: "reset", takesValue: false},
	} {
		_, err := g.define(def.name, "about "+def.name, def.takesValue)
		require.NoError(t, err, def.name)
	}
	return g
}

var matchCases = []struct {
	cmd       string
	values    map[string]string
	remaining []string
}{
	{
		cmd:    "-count 42",
		values: map[string]string{"count": "42"},
	},
	{
		cmd:    "--count 43",
		values: map[string]string{"count": "43"},
	},
	{
		cmd:    "-count=44",
		values: map[string]string{"count": "44"},
	},
	{
		cmd:    "--count=45",
		values: map[string]string{"count": "45"},
	},
	{
		cmd:    "-count -5",
		values: map[string]string{"count": "-5"},
	},
	{
		cmd:    "-count 1 -count 2",
		values: map[string]string{"count": "2"},
	},
	{
		cmd:    "-reset",
		values: map[string]string{"reset": "true"},
	},
	{
		cmd:    "-reset -name fred",
		values: map[string]string{"reset": "true", "name": "fred"},
	},
	{
		cmd:       "-Xmx512m -count 3 positional",
		values:    map[string]string{"count": "3"},
		remaining: []string{"-Xmx512m", "positional"},
	},
	{
		cmd:       "-name",
		remaining: []string{"-name"},
	},
	{
		cmd:       "-c 4 -counter 5",
		remaining: []string{"-c", "4", "-counter", "5"},
	},
	{
		cmd:       "-reset -- -count 9",
		values:    map[string]string{"reset": "true"},
		remaining: []string{"-count", "9"},
	},
	{
		cmd:       "-reset=false -count 2",
		values:    map[string]string{"count": "2"},
		remaining: []string{"-reset=false"},
	},
	{
		cmd:       "- --",
		remaining: []string{"-"},
	},
}

func TestMatch(t *testing.T) {
	for _, tc := range matchCases {
		t.Run(tc.cmd, func(t *testing.T) {
			g := testGrammar(t)
			remaining, err := g.match(strings.Fields(tc.cmd))
			require.NoError(t, err, "match")
			assert.Equal(t, tc.remaining, remaining, "remaining")
			for _, opt := range g.order {
				want, ok := tc.values[opt.Name]
				assert.Equalf(t, ok, opt.Present(), "%s present", opt.Name)
				if ok {
					assert.Equalf(t, want, opt.Value(), "%s value", opt.Name)
				}
			}
		})
	}
}

func TestOptionSyntax(t *testing.T) {
	g := testGrammar(t)
	require.Len(t, g.order, 3)
	assert.Equal(t, "-count COUNT", g.order[0].Syntax())
	assert.Equal(t, "-name NAME", g.order[1].Syntax())
	assert.Equal(t, "-reset", g.order[2].Syntax())
	assert.Equal(t, "about count", g.order[0].Description)

	f := g.flags.Lookup("count")
	require.NotNil(t, f, "pflag definition")
	assert.Equal(t, []string{"COUNT"}, f.Annotations[PlaceholderAnnotation])
	assert.Equal(t, "true", g.flags.Lookup("reset").NoOptDefVal)
}

func TestDuplicateOption(t *testing.T) {
	g := testGrammar(t)
	_, err := g.define("count", "again", false)
	require.Error(t, err, "duplicate")
	assert.Contains(t, err.Error(), "duplicate option name")
	assert.True(t, errors.Is(err, ErrDuplicateName), "errors.Is")
	assert.True(t, commonerrors.IsProgrammerError(err), "programmer error")
	assert.Len(t, g.order, 3, "nothing added")
}

func TestValidName(t *testing.T) {
	for name, want := range map[string]bool{
		"count":   true,
		"dry-run": true,
		"":        false,
		"-x":      false,
		"a=b":     false,
		"a b":     false,
	} {
		assert.Equal(t, want, validName(name), name)
	}
}
