package codegen

import (
	"bytes"
	"fmt"
	"io"

	"github.com/amp-labs/fsmgine/dsl"
)

// Mode selects the output format of ProcessSource.
type Mode string

// Output modes.
const (
	ModeGo      Mode = "go"
	ModeDOT     Mode = "dot"
	ModeMermaid Mode = "mermaid"
	ModeExpand  Mode = "expand"
)

// SourceOptions configures ProcessSource.
type SourceOptions struct {
	// Mode selects the output format. Defaults to ModeGo.
	Mode Mode
	// Package is the package clause of generated Go output.
	// Defaults to "main".
	Package string
	// Diagram configures DOT and Mermaid rendering.
	Diagram DiagramOptions
}

// ProcessSource extracts every definition block from r and writes the
// generated output for all of them to w. In ModeExpand the whole source is
// echoed with its generate placeholders substituted; the other modes write
// only the generated artifacts.
func ProcessSource(r io.Reader, w io.Writer, opts SourceOptions) error {
	if opts.Mode == "" {
		opts.Mode = ModeGo
	}

	if opts.Package == "" {
		opts.Package = "main"
	}

	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	defs, err := dsl.ExtractDefinitions(bytes.NewReader(src))
	if err != nil {
		return err
	}

	if len(defs) == 0 {
		return ErrNoDefinitions
	}

	switch opts.Mode {
	case ModeGo:
		return writeGoFile(w, defs, opts.Package)
	case ModeDOT:
		return writeDiagrams(w, defs, opts.Diagram, GenerateDOT)
	case ModeMermaid:
		return writeDiagrams(w, defs, opts.Diagram, GenerateMermaid)
	case ModeExpand:
		expanded, err := ReplacePlaceholders(string(src), defs)
		if err != nil {
			return err
		}

		if _, err := io.WriteString(w, expanded); err != nil {
			return fmt.Errorf("writing expanded source: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("unknown output mode %q", opts.Mode)
	}
}

func writeGoFile(w io.Writer, defs []dsl.Definition, pkg string) error {
	header := fmt.Sprintf(
		"// Code generated by fsmgine gen. DO NOT EDIT.\n\npackage %s\n\nimport \"github.com/amp-labs/fsmgine\"\n",
		pkg,
	)

	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, def := range defs {
		code, err := GenerateGo(def)
		if err != nil {
			return err
		}

		if _, err := io.WriteString(w, "\n"+code); err != nil {
			return fmt.Errorf("writing definition %s: %w", def.Name, err)
		}
	}

	return nil
}

func writeDiagrams(
	w io.Writer, defs []dsl.Definition, opts DiagramOptions,
	render func(dsl.Definition, DiagramOptions) string,
) error {
	for i, def := range defs {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return fmt.Errorf("writing separator: %w", err)
			}
		}

		if _, err := io.WriteString(w, render(def, opts)); err != nil {
			return fmt.Errorf("writing definition %s: %w", def.Name, err)
		}
	}

	return nil
}
