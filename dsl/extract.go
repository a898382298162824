package dsl

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DefinitionMarker introduces a definition block inside a comment. The token
// following the marker on the same line names the machine.
const DefinitionMarker = "fsmgine:definition"

// ExtractDefinitions scans source text for definition blocks. A block starts
// at a comment line containing DefinitionMarker and collects every rule line
// from the comment lines that follow it. Comment lines that are not rules are
// skipped, so definitions may be annotated freely. The first non-comment line
// closes the block.
//
// Line comments (// and #), block comments (/* ... */) and the leading "*" of
// multi-line block comments are all recognized.
func ExtractDefinitions(r io.Reader) ([]Definition, error) {
	var (
		defs    []Definition
		current *Definition
		lineNo  int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		text, isComment := stripComment(scanner.Text())

		if !isComment {
			current = nil

			continue
		}

		if name, ok, err := definitionName(text); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		} else if ok {
			defs = append(defs, Definition{Name: name})
			current = &defs[len(defs)-1]

			continue
		}

		if current == nil || !strings.HasPrefix(text, "(") {
			continue
		}

		rule, err := ParseRule(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		current.Rules = append(current.Rules, rule)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning source: %w", err)
	}

	return defs, nil
}

// definitionName reports whether a comment line is a definition marker and,
// if so, the machine name that follows it.
func definitionName(text string) (string, bool, error) {
	idx := strings.Index(text, DefinitionMarker)
	if idx < 0 {
		return "", false, nil
	}

	rest := strings.Fields(text[idx+len(DefinitionMarker):])
	if len(rest) == 0 {
		return "", false, ErrMissingDefinitionName
	}

	return rest[0], true, nil
}

// stripComment removes comment syntax from a line and reports whether the
// line was a comment at all. Non-comment lines come back unchanged.
func stripComment(line string) (string, bool) {
	text := strings.TrimSpace(line)

	switch {
	case strings.HasPrefix(text, "//"):
		return strings.TrimSpace(text[2:]), true
	case strings.HasPrefix(text, "#"):
		return strings.TrimSpace(text[1:]), true
	case strings.HasPrefix(text, "/*"):
		text = strings.TrimSuffix(strings.TrimSpace(text[2:]), "*/")

		return strings.TrimSpace(text), true
	case strings.HasSuffix(text, "*/"):
		text = strings.TrimSpace(strings.TrimSuffix(text, "*/"))

		return strings.TrimSpace(strings.TrimPrefix(text, "*")), true
	case strings.HasPrefix(text, "*"):
		return strings.TrimSpace(text[1:]), true
	}

	return text, false
}
