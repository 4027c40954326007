package placeholder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Match
	}{
		{"no placeholders", "plain text", nil},
		{"braced", "a ${name} b", []Match{{Kind: Braced, Name: "name", Start: 2, End: 9}}},
		{"named", "$name!", []Match{{Kind: Named, Name: "name", Start: 0, End: 5}}},
		{"escaped", "cost: $$5", []Match{{Kind: Escaped, Start: 6, End: 8}}},
		{"invalid digit", "$5", []Match{{Kind: Invalid, Start: 0, End: 1}}},
		{"unterminated brace", "${name", []Match{{Kind: Invalid, Start: 0, End: 1}}},
		{"trailing dollar", "x$", []Match{{Kind: Invalid, Start: 1, End: 2}}},
		{"underscore identifier", "${_a1}", []Match{{Kind: Braced, Name: "_a1", Start: 0, End: 6}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Scan(tt.input)); diff != "" {
				t.Errorf("Scan(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestRequiredKeys(t *testing.T) {
	text := "${b} ${a} $c ${b} $$ ${ d}"
	assert.Equal(t, []string{"a", "b"}, RequiredKeys(text))
}

func TestMissing(t *testing.T) {
	values := Values{"mod_name": "Tanks", "mod_author": "me"}

	assert.Empty(t, Missing("${mod_name} by ${mod_author}", values))
	assert.Equal(t, []string{"alpha", "zeta"}, Missing("${zeta}${mod_name}${alpha}${zeta}", values))
	assert.Empty(t, Missing("$unbraced is not required", values))
}

func TestSafeSubstitute(t *testing.T) {
	values := Values{"name": "Tanks", "id": "com.hexofsteel.tanks"}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"braced", "Mod ${name}", "Mod Tanks"},
		{"named", "Mod $name.", "Mod Tanks."},
		{"unknown kept", "${other} $other", "${other} $other"},
		{"escaped", "$$name", "$name"},
		{"malformed kept", "price $5 and ${", "price $5 and ${"},
		{"csharp interpolation", `Log($"{value}")`, `Log($"{value}")`},
		{"adjacent", "${id}${name}", "com.hexofsteel.tanksTanks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeSubstitute(tt.input, values))
		})
	}
}

func TestSubstitute(t *testing.T) {
	values := Values{"mod_class_name": "TanksMod"}

	got, err := Substitute("${mod_class_name}.cs", values)
	require.NoError(t, err)
	assert.Equal(t, "TanksMod.cs", got)

	_, err = Substitute("${project_filename}", values)
	var keyErr *KeyError
	require.ErrorAs(t, err, &keyErr)
	assert.Equal(t, "project_filename", keyErr.Key)

	_, err = Substitute("line\nbad $1", values)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2, col 5")
}

func TestValuesKeys(t *testing.T) {
	v := Values{"b": "2", "a": "1", "c": "3"}
	assert.Equal(t, []string{"a", "b", "c"}, v.Keys())
}
