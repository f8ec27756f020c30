package domain

import (
	"errors"
	"fmt"

	"go.trai.ch/zerr"
)

// RuleResult is the outcome of evaluating one rule. No violations means the rule passed.
type RuleResult struct {
	Rule       Rule
	Violations []Edge
}

// Passed reports whether the rule had no violating edges.
func (r RuleResult) Passed() bool {
	return len(r.Violations) == 0
}

// Report collects rule results in rule order.
type Report struct {
	Results []RuleResult
	// Units and Edges describe the checked graph.
	Units int
	Edges int
}

// Passed reports whether every rule passed.
func (r Report) Passed() bool {
	for _, res := range r.Results {
		if !res.Passed() {
			return false
		}
	}
	return true
}

// ViolationCount returns the total number of violating edges across rules.
func (r Report) ViolationCount() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Violations)
	}
	return n
}

// Failed returns the results that have violations.
func (r Report) Failed() []RuleResult {
	var out []RuleResult
	for _, res := range r.Results {
		if !res.Passed() {
			out = append(out, res)
		}
	}
	return out
}

// Err returns nil when every rule passed, otherwise an error matching ErrRuleViolation
// with one entry per failed rule.
func (r Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(failed)+1)
	errs = append(errs, ErrRuleViolation)
	for _, res := range failed {
		err := zerr.New(fmt.Sprintf("rule %q was violated by %d edge(s)", res.Rule.Name, len(res.Violations)))
		errs = append(errs, zerr.With(err, "because", res.Rule.Because))
	}
	return errors.Join(errs...)
}
