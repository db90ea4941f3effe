package repair

import (
	"errors"
	"fmt"
	"strings"
)

// Severity of a lint finding.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Issue is a problem found in a table. Rule is the zero-based index of the
// offending rule.
type Issue struct {
	Rule     int
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("rule %d: %s: %s", i.Rule+1, i.Severity, i.Message)
}

// ErrEmptyPattern is returned by Validate for a rule with no pattern.
var ErrEmptyPattern = errors.New("empty pattern")

// Validate returns an error for every rule that can never be applied.
func (t Table) Validate() error {
	var errs []error
	for i, rule := range t {
		if rule.From == "" {
			errs = append(errs, fmt.Errorf("rule %d (%s): %w", i+1, rule.label(), ErrEmptyPattern))
		}
	}
	return errors.Join(errs...)
}

// Lint checks a table for rules that are empty, unreachable, or that would
// make a second repair pass change already repaired text.
func (t Table) Lint() []Issue {
	var issues []Issue
	seen := make(map[string]int, len(t))

	for i, rule := range t {
		if rule.From == "" {
			issues = append(issues, Issue{Rule: i, Severity: SeverityError, Message: "empty pattern"})
			continue
		}
		if first, dup := seen[rule.From]; dup {
			issues = append(issues, Issue{
				Rule:     i,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("duplicate of rule %d, never matches", first+1),
			})
			continue
		}
		seen[rule.From] = i

		for j := 0; j < i; j++ {
			prev := t[j].From
			if prev != "" && prev != rule.From && strings.Contains(rule.From, prev) {
				issues = append(issues, Issue{
					Rule:     i,
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("pattern contains the pattern of rule %d, which runs first", j+1),
				})
			}
		}
	}

	// A replacement holding a later rule's pattern is consumed in the same
	// pass. Only rules that already ran (including itself) leave it behind.
	for i, rule := range t {
		for j, other := range t[:i+1] {
			if other.From == "" || !strings.Contains(rule.To, other.From) {
				continue
			}
			issues = append(issues, Issue{
				Rule:     i,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("replacement contains the pattern of rule %d, a second pass would change it", j+1),
			})
		}
	}

	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, is := range issues {
		if is.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (r Rule) label() string {
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("%q", r.From)
}
