package textio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/imgajeed76/mojifix/internal/util"
)

func TestLookupEncoding(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantBOM bool
	}{
		{"", "utf-8", false},
		{"UTF-8", "utf-8", false},
		{"utf8", "utf-8", false},
		{"utf-8-sig", "utf-8-sig", true},
		{"UTF8-BOM", "utf-8-sig", true},
	}

	for _, tt := range tests {
		e, err := LookupEncoding(tt.name)
		if err != nil {
			t.Fatalf("LookupEncoding(%q): %v", tt.name, err)
		}
		if e.Name != tt.want || e.BOM != tt.wantBOM {
			t.Errorf("LookupEncoding(%q) = %s (bom=%v), want %s (bom=%v)", tt.name, e.Name, e.BOM, tt.want, tt.wantBOM)
		}
	}
}

func TestLookupEncoding_IANA(t *testing.T) {
	for _, name := range []string{"iso-8859-1", "latin1", "windows-1252", "utf-16le"} {
		if _, err := LookupEncoding(name); err != nil {
			t.Errorf("LookupEncoding(%q): %v", name, err)
		}
	}
}

func TestLookupEncoding_Unknown(t *testing.T) {
	_, err := LookupEncoding("klingon-8")
	if !errors.Is(err, util.ErrUnknownEncoding) {
		t.Fatalf("expected ErrUnknownEncoding, got %v", err)
	}
}

func TestDecode_InvalidUTF8(t *testing.T) {
	raw := []byte("ok\xffbad")
	_, err := UTF8.Decode("f.txt", raw)
	if !errors.Is(err, util.ErrEncoding) {
		t.Fatalf("expected ErrEncoding, got %v", err)
	}
	var fe *util.FixError
	if !errors.As(err, &fe) || fe.Message != "First bad byte at offset 2" {
		t.Fatalf("expected offset in message, got %+v", fe)
	}
}

func TestDecode_StripsBOMForSig(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, "hello"...)

	text, err := UTF8BOM.Decode("f", raw)
	if err != nil || text != "hello" {
		t.Fatalf("utf-8-sig: got %q, %v", text, err)
	}

	// Plain UTF-8 keeps the marker as U+FEFF.
	text, err = UTF8.Decode("f", raw)
	if err != nil || text != "\ufeffhello" {
		t.Fatalf("utf-8: got %q, %v", text, err)
	}
}

func TestDecode_InvalidMultibyte(t *testing.T) {
	tests := []struct {
		encoding   string
		raw        []byte
		wantOffset string
	}{
		{"utf-16le", []byte{0x41, 0x00, 0x81}, "First bad byte at offset 2"},
		{"utf-16le", []byte{0x41, 0x00, 0x00, 0xDC}, "First bad byte at offset 2"},
		{"shift_jis", []byte{0x41, 0x81}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.encoding, func(t *testing.T) {
			enc, err := LookupEncoding(tt.encoding)
			if err != nil {
				t.Fatal(err)
			}
			text, err := enc.Decode("f.txt", tt.raw)
			if !errors.Is(err, util.ErrEncoding) {
				t.Fatalf("Decode(%x) = %q, %v; want ErrEncoding", tt.raw, text, err)
			}
			var fe *util.FixError
			if !errors.As(err, &fe) || fe.Message != tt.wantOffset {
				t.Fatalf("message = %q, want %q", fe.Message, tt.wantOffset)
			}
		})
	}
}

func TestDecode_ValidNonUTF8(t *testing.T) {
	tests := []struct {
		encoding string
		raw      []byte
		want     string
	}{
		{"utf-16le", []byte{0x41, 0x00, 0x42, 0x00}, "AB"},
		{"utf-16le", []byte{0xFF, 0xFE, 0x41, 0x00}, "\ufeffA"},
		{"utf-16", []byte{0x00, 0x41}, "A"},
		{"utf-16", []byte{0xFE, 0xFF, 0x00, 0x41}, "A"},
		{"iso-8859-1", []byte("caf\xe9"), "café"},
	}

	for _, tt := range tests {
		enc, err := LookupEncoding(tt.encoding)
		if err != nil {
			t.Fatal(err)
		}
		text, err := enc.Decode("f.txt", tt.raw)
		if err != nil {
			t.Errorf("%s: Decode(%x): %v", tt.encoding, tt.raw, err)
			continue
		}
		if text != tt.want {
			t.Errorf("%s: Decode(%x) = %q, want %q", tt.encoding, tt.raw, text, tt.want)
		}
	}
}

func TestEncode_SingleBOM(t *testing.T) {
	for _, text := range []string{"hi", "\ufeffhi"} {
		out, err := UTF8BOM.Encode("f", text)
		if err != nil {
			t.Fatal(err)
		}
		if want := []byte("\xEF\xBB\xBFhi"); !bytes.Equal(out, want) {
			t.Fatalf("Encode(%q) = %x, want %x", text, out, want)
		}
	}
}

func TestEncode_Unrepresentable(t *testing.T) {
	latin1, err := LookupEncoding("iso-8859-1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := latin1.Encode("f", "✅"); !errors.Is(err, util.ErrEncoding) {
		t.Fatalf("expected ErrEncoding, got %v", err)
	}
	out, err := latin1.Encode("f", "café")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, []byte("caf\xe9")) {
		t.Fatalf("got %x", out)
	}
}

func TestReadFile_NotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.tsx"), UTF8)
	if !errors.Is(err, util.ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.tsx")
	if err := os.WriteFile(path, []byte("icon: \"✅\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	doc, err := ReadFile(path, UTF8)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Mode != 0o600 {
		t.Fatalf("mode = %o, want 600", doc.Mode)
	}

	if err := WriteFile(path, doc.Text, UTF8BOM, 0); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "\xEF\xBB\xBFicon: \"✅\"\n"; string(raw) != want {
		t.Fatalf("got %q, want %q", raw, want)
	}
	info, _ := os.Stat(path)
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("permissions not preserved: %o", info.Mode().Perm())
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temporary file left behind: %v", entries)
	}
}

func TestWriteBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	doc := &Document{Path: path, Raw: []byte("original"), Mode: 0o644}

	if err := WriteBackup(doc); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(BackupPath(path))
	if err != nil || string(raw) != "original" {
		t.Fatalf("backup = %q, %v", raw, err)
	}
}
