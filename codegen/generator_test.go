package codegen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amp-labs/fsmgine/codegen"
	"github.com/amp-labs/fsmgine/dsl"
)

func turnstileDefinition() dsl.Definition {
	return dsl.Definition{
		Name: "turnstile",
		Rules: []dsl.Rule{
			{From: "LOCKED", Predicates: []string{"isCoin"}, Actions: []string{"unlock"}, To: "UNLOCKED"},
			{From: "UNLOCKED", Predicates: []string{"isPush"}, Actions: []string{"lock"}, To: "LOCKED"},
			{From: "LOCKED", Predicates: []string{"isPush"}, Actions: []string{"alarm"}, To: "ERROR"},
			{From: "ERROR", Predicates: []string{"isCoin"}, Actions: []string{"unlock"}, To: "UNLOCKED"},
		},
	}
}

func TestGenerateGo(t *testing.T) {
	t.Parallel()

	code, err := codegen.GenerateGo(turnstileDefinition())
	require.NoError(t, err)

	assert.Contains(t, code, "type TurnstileHooks[E any] interface {")
	assert.Contains(t, code, "\tIsCoin(E) bool\n")
	assert.Contains(t, code, "\tIsPush(E) bool\n")
	assert.Contains(t, code, "\tAlarm(E)\n")
	assert.Contains(t, code, "\tUnlock(E)\n")
	assert.Contains(t, code, "func WireTurnstile[E any](b *fsmgine.Builder[E], impl TurnstileHooks[E]) {")
	assert.Contains(t, code, `b.From("LOCKED").`)
	assert.Contains(t, code, "Predicate(impl.IsCoin).")
	assert.Contains(t, code, "Action(impl.Unlock).")
	assert.Contains(t, code, `To("UNLOCKED")`)

	// Hook names are distinct, so unlock appears once in the interface even
	// though two rules reference it.
	assert.Equal(t, 1, strings.Count(code, "\tUnlock(E)\n"))

	// Rule order is preserved.
	first := strings.Index(code, `b.From("LOCKED")`)
	second := strings.Index(code, `b.From("UNLOCKED")`)
	assert.Less(t, first, second)
}

func TestGenerateGo_Errors(t *testing.T) {
	t.Parallel()

	t.Run("empty definition", func(t *testing.T) {
		t.Parallel()

		_, err := codegen.GenerateGo(dsl.Definition{Name: "Empty"})
		require.ErrorIs(t, err, codegen.ErrEmptyDefinition)
	})

	t.Run("predicate and action share a name", func(t *testing.T) {
		t.Parallel()

		def := dsl.Definition{
			Name: "Clash",
			Rules: []dsl.Rule{
				{From: "A", Predicates: []string{"go"}, Actions: []string{"go"}, To: "B"},
			},
		}

		_, err := codegen.GenerateGo(def)
		require.ErrorIs(t, err, codegen.ErrNameClash)
	})
}

func TestGenerateDOT(t *testing.T) {
	t.Parallel()

	opts := codegen.DefaultDiagramOptions()
	opts.Highlight = []string{"ERROR"}

	out := codegen.GenerateDOT(turnstileDefinition(), opts)

	assert.Contains(t, out, "digraph turnstile {")
	assert.Contains(t, out, "rankdir=LR;")
	assert.Contains(t, out, `"ERROR" [style="rounded,filled", fillcolor=lightyellow];`)
	assert.Contains(t, out, `"LOCKED" -> "UNLOCKED" [label="isCoin / unlock"];`)
	assert.Contains(t, out, `"LOCKED" -> "ERROR" [label="isPush / alarm"];`)
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestGenerateDOT_BareEdge(t *testing.T) {
	t.Parallel()

	def := dsl.Definition{
		Name:  "simple",
		Rules: []dsl.Rule{{From: "A", To: "B"}},
	}

	out := codegen.GenerateDOT(def, codegen.DefaultDiagramOptions())
	assert.Contains(t, out, `"A" -> "B";`)
	assert.NotContains(t, out, "label")
}

func TestGenerateMermaid(t *testing.T) {
	t.Parallel()

	opts := codegen.DefaultDiagramOptions()
	opts.MarkdownFence = true

	out := codegen.GenerateMermaid(turnstileDefinition(), opts)

	assert.True(t, strings.HasPrefix(out, "```mermaid\nstateDiagram-v2\n"))
	assert.Contains(t, out, "direction LR\n")
	assert.Contains(t, out, "[*] --> LOCKED\n")
	assert.Contains(t, out, "LOCKED --> UNLOCKED: isCoin / unlock\n")
	assert.True(t, strings.HasSuffix(out, "```\n"))
}

func TestGenerateMermaid_NoInitial(t *testing.T) {
	t.Parallel()

	opts := codegen.DefaultDiagramOptions()
	opts.ImplicitInitial = false
	opts.Direction = ""

	out := codegen.GenerateMermaid(turnstileDefinition(), opts)

	assert.NotContains(t, out, "[*]")
	assert.NotContains(t, out, "direction")
}

func TestProcessSource(t *testing.T) {
	t.Parallel()

	src := `// fsmgine:definition Turnstile
// (LOCKED PRED isCoin ACTION unlock UNLOCKED)
// (UNLOCKED PRED isPush ACTION lock LOCKED)
`

	t.Run("go mode", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		err := codegen.ProcessSource(strings.NewReader(src), &out, codegen.SourceOptions{
			Mode:    codegen.ModeGo,
			Package: "turnstile",
		})
		require.NoError(t, err)

		code := out.String()
		assert.True(t, strings.HasPrefix(code, "// Code generated by fsmgine gen. DO NOT EDIT.\n"))
		assert.Contains(t, code, "package turnstile\n")
		assert.Contains(t, code, `import "github.com/amp-labs/fsmgine"`)
		assert.Contains(t, code, "func WireTurnstile[E any]")
	})

	t.Run("mermaid mode", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		err := codegen.ProcessSource(strings.NewReader(src), &out, codegen.SourceOptions{
			Mode:    codegen.ModeMermaid,
			Diagram: codegen.DefaultDiagramOptions(),
		})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "stateDiagram-v2")
	})

	t.Run("no definitions", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		err := codegen.ProcessSource(strings.NewReader("package empty\n"), &out, codegen.SourceOptions{})
		require.ErrorIs(t, err, codegen.ErrNoDefinitions)
	})

	t.Run("unknown mode", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		err := codegen.ProcessSource(strings.NewReader(src), &out, codegen.SourceOptions{Mode: "svg"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown output mode")
	})
}
