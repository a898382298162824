// Package codegen turns parsed DSL definitions into Go wiring code and into
// Graphviz DOT or Mermaid diagrams.
package codegen

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"facette.io/natsort"

	"github.com/amp-labs/fsmgine/dsl"
)

// Generation errors.
var (
	// ErrNoDefinitions indicates a source with no definition blocks.
	ErrNoDefinitions = errors.New("no definitions found in source")
	// ErrEmptyDefinition indicates a definition block with no rules.
	ErrEmptyDefinition = errors.New("definition has no rules")
	// ErrNameClash indicates a name used both as a predicate and as an action,
	// which cannot share a method on the generated hook interface.
	ErrNameClash = errors.New("name used as both predicate and action")
)

// GenerateGo renders one definition as a hook interface plus a wiring
// function. The interface declares one method per distinct predicate and
// action name; the wiring function replays every rule on a Builder in
// declaration order, so first-match-wins semantics carry over unchanged.
func GenerateGo(def dsl.Definition) (string, error) {
	if len(def.Rules) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyDefinition, def.Name)
	}

	predicates, actions, err := hookNames(def)
	if err != nil {
		return "", fmt.Errorf("definition %s: %w", def.Name, err)
	}

	name := exportName(def.Name)

	var b strings.Builder

	fmt.Fprintf(&b, "// %sHooks declares the predicates and actions referenced by the\n", name)
	fmt.Fprintf(&b, "// %s definition.\n", def.Name)
	fmt.Fprintf(&b, "type %sHooks[E any] interface {\n", name)

	for _, p := range predicates {
		fmt.Fprintf(&b, "\t%s(E) bool\n", exportName(p))
	}

	for _, a := range actions {
		fmt.Fprintf(&b, "\t%s(E)\n", exportName(a))
	}

	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "// Wire%s registers the %s transitions on b. States are created on\n", name, def.Name)
	b.WriteString("// first reference.\n")
	fmt.Fprintf(&b, "func Wire%s[E any](b *fsmgine.Builder[E], impl %sHooks[E]) {\n", name, name)

	for _, rule := range def.Rules {
		fmt.Fprintf(&b, "\tb.From(%q)", rule.From)

		for _, p := range rule.Predicates {
			fmt.Fprintf(&b, ".\n\t\tPredicate(impl.%s)", exportName(p))
		}

		for _, a := range rule.Actions {
			fmt.Fprintf(&b, ".\n\t\tAction(impl.%s)", exportName(a))
		}

		fmt.Fprintf(&b, ".\n\t\tTo(%q)\n", rule.To)
	}

	b.WriteString("}\n")

	return b.String(), nil
}

// hookNames collects the distinct predicate and action names of a definition,
// naturally sorted for stable output, and rejects names used as both.
func hookNames(def dsl.Definition) (predicates, actions []string, err error) {
	predSet := make(map[string]struct{})
	actSet := make(map[string]struct{})

	for _, rule := range def.Rules {
		for _, p := range rule.Predicates {
			predSet[p] = struct{}{}
		}

		for _, a := range rule.Actions {
			actSet[a] = struct{}{}
		}
	}

	for p := range predSet {
		if _, ok := actSet[p]; ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrNameClash, p)
		}

		predicates = append(predicates, p)
	}

	for a := range actSet {
		actions = append(actions, a)
	}

	natsort.Sort(predicates)
	natsort.Sort(actions)

	return predicates, actions, nil
}

// exportName upper-cases the first rune only, keeping camelCase intact
// (isCoin becomes IsCoin, not Iscoin).
func exportName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}
