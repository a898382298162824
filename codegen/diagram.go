package codegen

import (
	"fmt"
	"strings"

	"facette.io/natsort"

	"github.com/amp-labs/fsmgine/dsl"
)

// DiagramOptions controls DOT and Mermaid rendering.
type DiagramOptions struct {
	// Direction is the layout direction, e.g. "LR" or "TB".
	Direction string
	// MarkdownFence wraps Mermaid output in a ```mermaid code fence.
	MarkdownFence bool
	// ImplicitInitial marks the source state of the first rule as the
	// initial state.
	ImplicitInitial bool
	// Highlight names states to render with an accent fill (DOT only).
	Highlight []string
}

// DefaultDiagramOptions returns the options used when none are given.
func DefaultDiagramOptions() DiagramOptions {
	return DiagramOptions{
		Direction:       "LR",
		ImplicitInitial: true,
	}
}

// GenerateDOT renders a definition as a Graphviz digraph. States are emitted
// in natural order, edges in rule order.
func GenerateDOT(def dsl.Definition, opts DiagramOptions) string {
	var b strings.Builder

	fmt.Fprintf(&b, "digraph %s {\n", def.Name)
	fmt.Fprintf(&b, "  rankdir=%s;\n", opts.Direction)
	b.WriteString("  node [shape=box, style=rounded, fontsize=10];\n")
	b.WriteString("  edge [fontsize=9];\n\n")

	highlight := make(map[string]struct{}, len(opts.Highlight))
	for _, s := range opts.Highlight {
		highlight[s] = struct{}{}
	}

	for _, state := range stateNames(def) {
		if _, ok := highlight[state]; ok {
			fmt.Fprintf(&b, "  %q [style=\"rounded,filled\", fillcolor=lightyellow];\n", state)
		} else {
			fmt.Fprintf(&b, "  %q;\n", state)
		}
	}

	b.WriteString("\n")

	for _, rule := range def.Rules {
		label := edgeLabel(rule)
		if label == "" {
			fmt.Fprintf(&b, "  %q -> %q;\n", rule.From, rule.To)
		} else {
			fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", rule.From, rule.To, label)
		}
	}

	b.WriteString("}\n")

	return b.String()
}

// GenerateMermaid renders a definition as a Mermaid stateDiagram-v2 chart.
func GenerateMermaid(def dsl.Definition, opts DiagramOptions) string {
	var b strings.Builder

	if opts.MarkdownFence {
		b.WriteString("```mermaid\n")
	}

	b.WriteString("stateDiagram-v2\n")

	if opts.Direction != "" {
		fmt.Fprintf(&b, "    direction %s\n", opts.Direction)
	}

	if opts.ImplicitInitial && len(def.Rules) > 0 {
		fmt.Fprintf(&b, "    [*] --> %s\n", def.Rules[0].From)
	}

	for _, rule := range def.Rules {
		label := edgeLabel(rule)
		if label == "" {
			fmt.Fprintf(&b, "    %s --> %s\n", rule.From, rule.To)
		} else {
			fmt.Fprintf(&b, "    %s --> %s: %s\n", rule.From, rule.To, label)
		}
	}

	if opts.MarkdownFence {
		b.WriteString("```\n")
	}

	return b.String()
}

// edgeLabel formats a rule's predicates and actions as "p1 & p2 / a1, a2".
func edgeLabel(rule dsl.Rule) string {
	preds := strings.Join(rule.Predicates, " & ")
	acts := strings.Join(rule.Actions, ", ")

	switch {
	case preds != "" && acts != "":
		return preds + " / " + acts
	case acts != "":
		return "/ " + acts
	default:
		return preds
	}
}

// stateNames returns the distinct states of a definition in natural order.
func stateNames(def dsl.Definition) []string {
	seen := make(map[string]struct{})
	var names []string

	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}

		seen[s] = struct{}{}
		names = append(names, s)
	}

	for _, rule := range def.Rules {
		add(rule.From)
		add(rule.To)
	}

	natsort.Sort(names)

	return names
}
