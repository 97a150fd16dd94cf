// Package substitute implements the two placeholder substitution
// passes applied to template text: an ordered, user-configured
// find/replace rule list (stage A) and the fixed %VAR_name% token
// syntax (stage B). Substituted values are always XML-escaped.
package substitute

import (
	"errors"
	"fmt"
	"strings"

	"github.com/svgmerge/svgmerge/pkg/tabdata"
)

// RuleSeparator joins serialized replacement rules on the command line.
const RuleSeparator = "|"

// ErrMalformedRule is returned when a serialized rule lacks the "=>"
// separator.
var ErrMalformedRule = errors.New("unrecognized replacement string")

// Rule replaces every occurrence of Text with the value of the data
// column named (or numbered) by Column.
type Rule struct {
	Text   string
	Column string
}

// UnknownColumnError reports a stage-A rule referencing a column that
// does not exist in the row descriptor. ByName selects the diagnostic
// wording for column-name vs column-number variable modes.
type UnknownColumnError struct {
	Column string
	ByName bool
}

func (e *UnknownColumnError) Error() string {
	if e.ByName {
		return fmt.Sprintf("wrong column name %q", e.Column)
	}
	return fmt.Sprintf("wrong column number (%s)", e.Column)
}

// ParseRules parses a serialized rule list of the form
// "old1=>col1|old2=>col2". Order is preserved; rules are applied in
// the order given. An empty string yields no rules.
func ParseRules(s string) ([]Rule, error) {
	if s == "" {
		return nil, nil
	}
	var rules []Rule
	for _, entry := range strings.Split(s, RuleSeparator) {
		old, column, found := strings.Cut(entry, "=>")
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrMalformedRule, entry)
		}
		rules = append(rules, Rule{Text: old, Column: column})
	}
	return rules, nil
}

// escaper covers the XML metacharacters that may occur in data values.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape returns v with XML metacharacters replaced by entities.
func Escape(v string) string {
	return escaper.Replace(v)
}

// ApplyRules performs the stage-A pass: each rule, in order, replaces
// every occurrence of its literal text with the escaped value of its
// column. A rule whose literal is absent from the current text is
// skipped without validating its column reference.
func ApplyRules(text string, desc tabdata.Descriptor, rules []Rule, byName bool) (string, error) {
	for _, r := range rules {
		if !strings.Contains(text, r.Text) {
			continue
		}
		value, ok := desc[r.Column]
		if !ok {
			return "", &UnknownColumnError{Column: r.Column, ByName: byName}
		}
		text = strings.ReplaceAll(text, r.Text, Escape(value))
	}
	return text, nil
}

// ExpandVars performs the stage-B pass: every %VAR_<key>% token whose
// key exists in the descriptor is replaced by the escaped value.
// Tokens for unknown keys are left untouched.
func ExpandVars(text string, desc tabdata.Descriptor) string {
	if !strings.Contains(text, "%") {
		return text
	}
	for k, v := range desc {
		text = strings.ReplaceAll(text, "%VAR_"+k+"%", Escape(v))
	}
	return text
}

// Apply runs stage A followed by stage B on one text fragment.
func Apply(text string, desc tabdata.Descriptor, rules []Rule, byName bool) (string, error) {
	out, err := ApplyRules(text, desc, rules, byName)
	if err != nil {
		return "", err
	}
	return ExpandVars(out, desc), nil
}
