package dsl_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amp-labs/fsmgine/dsl"
)

func TestParseRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want dsl.Rule
	}{
		{
			name: "bare transition",
			line: "(LOCKED UNLOCKED)",
			want: dsl.Rule{From: "LOCKED", To: "UNLOCKED"},
		},
		{
			name: "predicate and action",
			line: "(LOCKED PRED isCoin ACTION unlock UNLOCKED)",
			want: dsl.Rule{
				From:       "LOCKED",
				Predicates: []string{"isCoin"},
				Actions:    []string{"unlock"},
				To:         "UNLOCKED",
			},
		},
		{
			name: "multiple predicates and actions keep order",
			line: "(A PRED p1 PRED p2 ACTION a1 ACTION a2 B)",
			want: dsl.Rule{
				From:       "A",
				Predicates: []string{"p1", "p2"},
				Actions:    []string{"a1", "a2"},
				To:         "B",
			},
		},
		{
			name: "interleaved keywords",
			line: "(A ACTION a1 PRED p1 ACTION a2 B)",
			want: dsl.Rule{
				From:       "A",
				Predicates: []string{"p1"},
				Actions:    []string{"a1", "a2"},
				To:         "B",
			},
		},
		{
			name: "surrounding whitespace",
			line: "   ( LOCKED   PRED isCoin   UNLOCKED )  ",
			want: dsl.Rule{
				From:       "LOCKED",
				Predicates: []string{"isCoin"},
				To:         "UNLOCKED",
			},
		},
		{
			name: "self loop",
			line: "(IDLE PRED tick ACTION poll IDLE)",
			want: dsl.Rule{
				From:       "IDLE",
				Predicates: []string{"tick"},
				Actions:    []string{"poll"},
				To:         "IDLE",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rule, err := dsl.ParseRule(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rule)
		})
	}
}

func TestParseRule_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		line    string
		wantErr error
	}{
		{name: "no parentheses", line: "LOCKED UNLOCKED", wantErr: dsl.ErrMissingParens},
		{name: "unclosed", line: "(LOCKED UNLOCKED", wantErr: dsl.ErrMissingParens},
		{name: "empty line", line: "", wantErr: dsl.ErrMissingParens},
		{name: "empty rule", line: "()", wantErr: dsl.ErrEmptyRule},
		{name: "blank rule", line: "(   )", wantErr: dsl.ErrEmptyRule},
		{name: "single state", line: "(LOCKED)", wantErr: dsl.ErrRuleTooShort},
		{name: "dangling PRED", line: "(A PRED B)", wantErr: dsl.ErrKeywordWithoutName},
		{name: "dangling ACTION", line: "(A PRED p ACTION B)", wantErr: dsl.ErrKeywordWithoutName},
		{name: "bare name", line: "(A isCoin B)", wantErr: dsl.ErrUnexpectedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := dsl.ParseRule(tt.line)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExtractDefinitions(t *testing.T) {
	t.Parallel()

	src := `package turnstile

// fsmgine:definition Turnstile
// A fare gate: coins unlock it, pushing through locks it again.
// (LOCKED PRED isCoin ACTION unlock UNLOCKED)
// (UNLOCKED PRED isPush ACTION lock LOCKED)
// (LOCKED PRED isPush ACTION alarm ERROR)
// (ERROR PRED isCoin ACTION unlock UNLOCKED)

func placeholder() {}

/* fsmgine:definition Door
 * (CLOSED PRED handleTurned OPEN)
 * (OPEN PRED slammed CLOSED)
 */
`

	defs, err := dsl.ExtractDefinitions(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, defs, 2)

	turnstile := defs[0]
	assert.Equal(t, "Turnstile", turnstile.Name)
	require.Len(t, turnstile.Rules, 4)
	assert.Equal(t, dsl.Rule{
		From:       "LOCKED",
		Predicates: []string{"isCoin"},
		Actions:    []string{"unlock"},
		To:         "UNLOCKED",
	}, turnstile.Rules[0])
	assert.Equal(t, "ERROR", turnstile.Rules[2].To)

	door := defs[1]
	assert.Equal(t, "Door", door.Name)
	require.Len(t, door.Rules, 2)
	assert.Empty(t, door.Rules[0].Actions)
}

func TestExtractDefinitions_CodeEndsBlock(t *testing.T) {
	t.Parallel()

	src := `// fsmgine:definition Gate
// (A B)
var x = 1
// (B C)
`

	defs, err := dsl.ExtractDefinitions(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, defs, 1)

	// The rule after the code line is outside any block and is ignored.
	require.Len(t, defs[0].Rules, 1)
	assert.Equal(t, "A", defs[0].Rules[0].From)
}

func TestExtractDefinitions_HashComments(t *testing.T) {
	t.Parallel()

	src := `# fsmgine:definition Pipeline
# (PENDING PRED ready ACTION start RUNNING)
# (RUNNING PRED finished DONE)
`

	defs, err := dsl.ExtractDefinitions(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "Pipeline", defs[0].Name)
	assert.Len(t, defs[0].Rules, 2)
}

func TestExtractDefinitions_Errors(t *testing.T) {
	t.Parallel()

	t.Run("marker without name", func(t *testing.T) {
		t.Parallel()

		_, err := dsl.ExtractDefinitions(strings.NewReader("// fsmgine:definition\n"))
		require.ErrorIs(t, err, dsl.ErrMissingDefinitionName)
		assert.Contains(t, err.Error(), "line 1")
	})

	t.Run("malformed rule reports line", func(t *testing.T) {
		t.Parallel()

		src := "// fsmgine:definition Bad\n// (A PRED B)\n"
		_, err := dsl.ExtractDefinitions(strings.NewReader(src))
		require.ErrorIs(t, err, dsl.ErrKeywordWithoutName)
		assert.Contains(t, err.Error(), "line 2")
	})
}

func TestExtractDefinitions_NoMarkers(t *testing.T) {
	t.Parallel()

	src := "package empty\n\n// just a comment\n// (A B) not in a block? yes it is ignored\n"
	defs, err := dsl.ExtractDefinitions(strings.NewReader(src))
	require.NoError(t, err)
	assert.Empty(t, defs)
}
