package repair

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultTable_Clean(t *testing.T) {
	table := DefaultTable()
	if len(table) != 9 {
		t.Fatalf("expected 9 rules, got %d", len(table))
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if issues := table.Lint(); len(issues) != 0 {
		t.Fatalf("unexpected lint issues: %v", issues)
	}
}

func TestDefaultTable_FreshCopy(t *testing.T) {
	a := DefaultTable()
	a[0].To = "changed"
	if DefaultTable()[0].To == "changed" {
		t.Fatal("DefaultTable shares its backing array")
	}
}

func TestValidate_EmptyPattern(t *testing.T) {
	table := Table{{Name: "ok", From: "a", To: "b"}, {Name: "broken", To: "x"}}
	err := table.Validate()
	if !errors.Is(err, ErrEmptyPattern) {
		t.Fatalf("expected ErrEmptyPattern, got %v", err)
	}
	if !strings.Contains(err.Error(), "rule 2 (broken)") {
		t.Fatalf("error should name the rule: %v", err)
	}
}

func TestLint(t *testing.T) {
	tests := []struct {
		name    string
		table   Table
		rule    int
		wantMsg string
		wantErr bool
	}{
		{
			name:    "empty pattern",
			table:   Table{{From: "", To: "x"}},
			rule:    0,
			wantMsg: "empty pattern",
			wantErr: true,
		},
		{
			name:    "duplicate",
			table:   Table{{From: "a", To: "b"}, {From: "a", To: "c"}},
			rule:    1,
			wantMsg: "duplicate of rule 1",
		},
		{
			name:    "shadowed",
			table:   Table{{From: "ab", To: "x"}, {From: "abc", To: "y"}},
			rule:    1,
			wantMsg: "contains the pattern of rule 1",
		},
		{
			name:    "replacement reintroduces earlier pattern",
			table:   Table{{From: "a", To: "b"}, {From: "c", To: "ab"}},
			rule:    1,
			wantMsg: "a second pass would change it",
		},
		{
			name:    "self growing",
			table:   Table{{From: "a", To: "aa"}},
			rule:    0,
			wantMsg: "a second pass would change it",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := tt.table.Lint()
			if len(issues) == 0 {
				t.Fatal("expected an issue")
			}
			found := false
			for _, is := range issues {
				if is.Rule == tt.rule && strings.Contains(is.Message, tt.wantMsg) {
					found = true
				}
			}
			if !found {
				t.Fatalf("no issue on rule %d containing %q: %v", tt.rule, tt.wantMsg, issues)
			}
			if HasErrors(issues) != tt.wantErr {
				t.Fatalf("HasErrors = %v, want %v", HasErrors(issues), tt.wantErr)
			}
		})
	}
}

func TestLint_LaterPatternInReplacementIsFine(t *testing.T) {
	// Rule 2 consumes what rule 1 produced in the same pass.
	table := Table{{From: "a", To: "xb"}, {From: "b", To: "y"}}
	if issues := table.Lint(); len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
}
