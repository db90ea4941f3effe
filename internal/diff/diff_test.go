package diff

import (
	"strings"
	"testing"
)

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func TestGenerateHunks_NoChange(t *testing.T) {
	content := lines("a", "b")
	if hunks := GenerateHunks(content, content, 3); hunks != nil {
		t.Fatalf("expected no hunks, got %v", hunks)
	}
}

func TestGenerateHunks_SingleLine(t *testing.T) {
	oldContent := lines("l1", "icon: â\u009c\u0085", "l3")
	newContent := lines("l1", "icon: ✅", "l3")

	hunks := GenerateHunks(oldContent, newContent, 1)
	if len(hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(hunks))
	}
	h := hunks[0]
	if h.OldStart != 1 || h.NewStart != 1 || h.OldCount != 3 || h.NewCount != 3 {
		t.Fatalf("unexpected header: -%d,%d +%d,%d", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
	}

	want := []Line{
		{LineContext, "l1"},
		{LineDelete, "icon: â\u009c\u0085"},
		{LineAdd, "icon: ✅"},
		{LineContext, "l3"},
	}
	if len(h.Lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(h.Lines), len(want), h.Lines)
	}
	for i := range want {
		if h.Lines[i] != want[i] {
			t.Errorf("line %d: got %+v, want %+v", i, h.Lines[i], want[i])
		}
	}
}

func TestGenerateHunks_SeparateHunks(t *testing.T) {
	oldLines := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}
	newLines := append([]string(nil), oldLines...)
	newLines[1] = "two"
	newLines[8] = "nine"

	hunks := GenerateHunks(lines(oldLines...), lines(newLines...), 1)
	if len(hunks) != 2 {
		t.Fatalf("expected 2 hunks, got %d", len(hunks))
	}
	if hunks[0].OldStart != 1 || hunks[0].OldCount != 3 {
		t.Errorf("first hunk: -%d,%d", hunks[0].OldStart, hunks[0].OldCount)
	}
	if hunks[1].OldStart != 8 || hunks[1].OldCount != 3 {
		t.Errorf("second hunk: -%d,%d", hunks[1].OldStart, hunks[1].OldCount)
	}
}

func TestGenerateHunks_CloseChangesMerge(t *testing.T) {
	oldContent := lines("a", "b", "c", "d")
	newContent := lines("A", "b", "c", "D")

	hunks := GenerateHunks(oldContent, newContent, 1)
	if len(hunks) != 1 {
		t.Fatalf("expected changes two lines apart to share a hunk, got %d", len(hunks))
	}
	if hunks[0].OldCount != 4 || hunks[0].NewCount != 4 {
		t.Fatalf("counts -%d +%d", hunks[0].OldCount, hunks[0].NewCount)
	}
}

func TestFormat_Plain(t *testing.T) {
	hunks := GenerateHunks(lines("x â\u0080\u0094 y"), lines("x — y"), 3)
	out := Format("app/page.tsx", hunks, true)

	for _, want := range []string{
		"--- a/app/page.tsx\n",
		"+++ b/app/page.tsx\n",
		"@@ -1,1 +1,1 @@\n",
		"-x â\u0080\u0094 y\n",
		"+x — y\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
