// Package dsl parses the fsmgine transition-rule language: single-line rules
// of the form
//
//	(FROM PRED canAdvance ACTION advance TO)
//
// and definition blocks embedded in source-file comments, introduced by a
// "fsmgine:definition <Name>" marker line. Parsed rules carry only names;
// binding names to functions is the code generator's (or a Registry's) job.
package dsl

import (
	"errors"
	"fmt"
	"strings"
)

// Rule keywords.
const (
	keywordPredicate = "PRED"
	keywordAction    = "ACTION"
)

// Parse errors.
var (
	// ErrMissingParens indicates a rule not enclosed in parentheses.
	ErrMissingParens = errors.New("rule must be enclosed in parentheses")
	// ErrEmptyRule indicates a rule with no content between the parentheses.
	ErrEmptyRule = errors.New("empty rule")
	// ErrRuleTooShort indicates a rule without both a source and a target state.
	ErrRuleTooShort = errors.New("rule needs at least a source and a target state")
	// ErrKeywordWithoutName indicates a PRED or ACTION keyword not followed by a name.
	ErrKeywordWithoutName = errors.New("keyword without a following name")
	// ErrUnexpectedToken indicates a token where PRED or ACTION was expected.
	ErrUnexpectedToken = errors.New("unexpected token")
	// ErrMissingDefinitionName indicates a definition marker without a machine name.
	ErrMissingDefinitionName = errors.New("definition marker without a machine name")
)

// Rule is one parsed transition rule. Predicate and action order is
// registration order and is preserved.
type Rule struct {
	From       string
	Predicates []string
	Actions    []string
	To         string
}

// Definition is a named group of rules extracted from one definition block.
type Definition struct {
	Name  string
	Rules []Rule
}

// ParseRule parses a single rule line. The grammar is
//
//	"(" FROM {("PRED"|"ACTION") name} TO ")"
//
// with whitespace-separated tokens. The first token is the source state and
// the last the target state; everything between must be keyword/name pairs.
func ParseRule(line string) (Rule, error) {
	line = strings.TrimSpace(line)

	if len(line) < 2 || line[0] != '(' || line[len(line)-1] != ')' {
		return Rule{}, fmt.Errorf("%w: %q", ErrMissingParens, line)
	}

	content := strings.TrimSpace(line[1 : len(line)-1])
	if content == "" {
		return Rule{}, ErrEmptyRule
	}

	tokens := strings.Fields(content)
	if len(tokens) < 2 {
		return Rule{}, fmt.Errorf("%w: %q", ErrRuleTooShort, line)
	}

	rule := Rule{
		From: tokens[0],
		To:   tokens[len(tokens)-1],
	}

	// Middle tokens are keyword/name pairs; the final token is always the
	// target state, so a name may never consume it.
	for i := 1; i < len(tokens)-1; {
		keyword := tokens[i]

		if keyword != keywordPredicate && keyword != keywordAction {
			return Rule{}, fmt.Errorf("%w %q (expected %s or %s): %q",
				ErrUnexpectedToken, keyword, keywordPredicate, keywordAction, line)
		}

		if i+1 >= len(tokens)-1 {
			return Rule{}, fmt.Errorf("%w: %s in %q", ErrKeywordWithoutName, keyword, line)
		}

		name := tokens[i+1]

		if keyword == keywordPredicate {
			rule.Predicates = append(rule.Predicates, name)
		} else {
			rule.Actions = append(rule.Actions, name)
		}

		i += 2
	}

	return rule, nil
}
