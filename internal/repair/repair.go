// Package repair undoes mojibake: text whose UTF-8 bytes were once decoded
// with the wrong single-byte charset and saved again.
//
// A Table is an ordered list of literal substitutions. Repair applies them
// one after another, each rule seeing the output of the rules before it.
// The transform is pure and never fails, so it is safe to call from many
// goroutines on independent buffers.
package repair

import "strings"

// Rule maps one corrupted sequence to the text it should have been.
type Rule struct {
	Name string `toml:"name"`
	From string `toml:"from"`
	To   string `toml:"to"`
}

// Table is an ordered substitution table. Order is significant when one
// rule's replacement contains another rule's pattern.
type Table []Rule

// Result is the outcome of applying a table to a buffer.
type Result struct {
	Text string
	// Counts[i] is the number of non-overlapping matches of rule i, taken on
	// the buffer as it stood when rule i ran.
	Counts []int
	Total  int
}

// Changed reports whether any rule matched.
func (r Result) Changed() bool {
	return r.Total > 0
}

// RulesApplied returns how many distinct rules matched at least once.
func (r Result) RulesApplied() int {
	n := 0
	for _, c := range r.Counts {
		if c > 0 {
			n++
		}
	}
	return n
}

// Repair replaces every occurrence of each rule's pattern, in table order,
// and returns the new buffer. Rules with an empty pattern are skipped.
func Repair(text string, table Table) string {
	for _, rule := range table {
		if rule.From == "" {
			continue
		}
		text = strings.ReplaceAll(text, rule.From, rule.To)
	}
	return text
}

// Apply is Repair with per-rule match counts.
func Apply(text string, table Table) Result {
	res := Result{Counts: make([]int, len(table))}
	for i, rule := range table {
		if rule.From == "" {
			continue
		}
		n := strings.Count(text, rule.From)
		if n == 0 {
			continue
		}
		text = strings.ReplaceAll(text, rule.From, rule.To)
		res.Counts[i] = n
		res.Total += n
	}
	res.Text = text
	return res
}
