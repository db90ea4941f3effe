package table

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestDisplayRaw(t *testing.T) {
	var buf bytes.Buffer
	rows := [][]string{{"1", "checkmark", "✅"}, {"2", "em dash", "—"}}
	if err := display(&buf, false, "rules", []string{"#", "name", "to"}, rows, DisplayOptions{Raw: true}); err != nil {
		t.Fatalf("display: %v", err)
	}
	want := "1\tcheckmark\t✅\n2\tem dash\t—\n"
	if buf.String() != want {
		t.Errorf("raw output = %q, want %q", buf.String(), want)
	}
}

func TestDisplayJSON(t *testing.T) {
	var buf bytes.Buffer
	rows := [][]string{{"student", "👨‍🎓\""}, {"short"}}
	if err := display(&buf, true, "rules", []string{"name", "to"}, rows, DisplayOptions{JSON: true}); err != nil {
		t.Fatalf("display: %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d objects, want 2", len(got))
	}
	if got[0]["to"] != "👨‍🎓\"" {
		t.Errorf("to = %v", got[0]["to"])
	}
	if got[1]["to"] != nil {
		t.Errorf("missing cell should be null, got %v", got[1]["to"])
	}
}

func TestDisplayPlainWhenNotTTY(t *testing.T) {
	var buf bytes.Buffer
	rows := [][]string{{"checkmark", "✅"}, {"plus sign", "➕"}}
	if err := display(&buf, false, "rules", []string{"name", "to"}, rows, DisplayOptions{}); err != nil {
		t.Fatalf("display: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// header, separator, 2 rows, blank, footer
	if len(lines) != 6 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "name       to" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "─────────  ──" {
		t.Errorf("separator = %q", lines[1])
	}
	if lines[2] != "checkmark  ✅" {
		t.Errorf("row = %q", lines[2])
	}
	if lines[5] != "(2 rows)" {
		t.Errorf("footer = %q", lines[5])
	}
}

func TestPrintPlainTableNoColumns(t *testing.T) {
	var buf bytes.Buffer
	PrintPlainTable(&buf, nil, nil)
	if buf.String() != "(0 rows)\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("mojibake", 20); got != "mojibake" {
		t.Errorf("short string changed: %q", got)
	}
	if got := Truncate("mojibake repair", 10); got != "mojiba..." && got != "mojibak..." {
		t.Errorf("Truncate = %q", got)
	}
}

func TestFilterRows(t *testing.T) {
	rows := [][]string{{"checkmark", "✅"}, {"Gear", "⚙"}, {"chart", "📊"}}

	if got := filterRows(rows, ""); len(got) != 3 {
		t.Errorf("empty query kept %d rows", len(got))
	}
	if got := filterRows(rows, "GEAR"); len(got) != 1 || got[0][0] != "Gear" {
		t.Errorf("case-insensitive filter = %v", got)
	}
	if got := filterRows(rows, "ch"); len(got) != 2 {
		t.Errorf("prefix filter kept %d rows", len(got))
	}
	if got := filterRows(rows, "zzz"); len(got) != 0 {
		t.Errorf("no match kept %d rows", len(got))
	}
}
