package codegen

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/amp-labs/fsmgine/dsl"
)

// GenerateMarker marks a placeholder comment line that ReplacePlaceholders
// substitutes with generated wiring. The token following the marker names the
// definition to expand.
const GenerateMarker = "fsmgine:generate"

// ErrUnknownDefinition indicates a generate marker naming a definition that
// was not extracted from the source.
var ErrUnknownDefinition = errors.New("no definition with that name")

// ReplacePlaceholders returns src with every "//fsmgine:generate <Name>" line
// replaced by the generated hook interface and wiring function for that
// definition. All other lines pass through untouched.
func ReplacePlaceholders(src string, defs []dsl.Definition) (string, error) {
	byName := make(map[string]dsl.Definition, len(defs))
	for _, def := range defs {
		byName[def.Name] = def
	}

	var (
		out    strings.Builder
		lineNo int
	)

	scanner := bufio.NewScanner(strings.NewReader(src))
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		name, ok := generateTarget(line)
		if !ok {
			out.WriteString(line)
			out.WriteByte('\n')

			continue
		}

		def, ok := byName[name]
		if !ok {
			return "", fmt.Errorf("line %d: %w: %q", lineNo, ErrUnknownDefinition, name)
		}

		code, err := GenerateGo(def)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", lineNo, err)
		}

		out.WriteString(code)
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scanning source: %w", err)
	}

	return out.String(), nil
}

// generateTarget reports whether a line is a generate placeholder and, if so,
// the definition name it references.
func generateTarget(line string) (string, bool) {
	text := strings.TrimSpace(line)

	text, found := strings.CutPrefix(text, "//")
	if !found {
		return "", false
	}

	rest, found := strings.CutPrefix(strings.TrimSpace(text), GenerateMarker)
	if !found {
		return "", false
	}

	fields := strings.Fields(rest)
	if len(fields) != 1 {
		return "", false
	}

	return fields[0], true
}
