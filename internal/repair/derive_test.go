package repair

import "testing"

func TestDerive_Latin1(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"✅", "â\u009c\u0085"},
		{"—", "â\u0080\u0094"},
		{"é", "Ã©"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		got, err := Derive(tt.target, "")
		if err != nil {
			t.Fatalf("Derive(%q): %v", tt.target, err)
		}
		if got != tt.want {
			t.Errorf("Derive(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestDerive_Windows1252(t *testing.T) {
	got, err := Derive("—", "cp1252")
	if err != nil {
		t.Fatal(err)
	}
	// E2 80 94 reads as â € ” in Windows-1252.
	if want := "â€”"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDerive_UnknownCharset(t *testing.T) {
	if _, err := Derive("✅", "ebcdic"); err == nil {
		t.Fatal("expected error for unknown charset")
	}
}

func TestDerive_MatchesDefaultTable(t *testing.T) {
	// These two patterns were authored by hand and do not follow the rule.
	handAuthored := map[string]bool{"briefcase": true, "green heart": true}

	for _, rule := range DefaultTable() {
		derived, err := Derive(rule.To, Latin1)
		if err != nil {
			t.Fatal(err)
		}
		if handAuthored[rule.Name] {
			if derived == rule.From {
				t.Errorf("%s: now matches derived pattern, update the exception list", rule.Name)
			}
			continue
		}
		if derived != rule.From {
			t.Errorf("%s: pattern %q, derived %q", rule.Name, rule.From, derived)
		}
	}
}

func TestDeriveTable_RepairsWhatItDerives(t *testing.T) {
	targets := []string{"✅", "📢", "ascii"}
	table, err := DeriveTable(targets)
	if err != nil {
		t.Fatal(err)
	}
	if len(table) != 2 {
		t.Fatalf("expected ascii target to be skipped, got %d rules", len(table))
	}

	broken := table[0].From + " and " + table[1].From
	if got := Repair(broken, table); got != "✅ and 📢" {
		t.Fatalf("got %q", got)
	}
}
