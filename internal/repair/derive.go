package repair

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Charset names accepted by Derive.
const (
	Latin1      = "iso-8859-1"
	Windows1252 = "windows-1252"
)

var deriveCharsets = map[string]encoding.Encoding{
	Latin1:        charmap.ISO8859_1,
	"latin1":      charmap.ISO8859_1,
	"latin-1":     charmap.ISO8859_1,
	Windows1252:   charmap.Windows1252,
	"cp1252":      charmap.Windows1252,
	"windows1252": charmap.Windows1252,
}

// Derive returns the mojibake for target: its UTF-8 bytes read back one byte
// per character through the single-byte charset via. An empty via means
// ISO-8859-1, which maps every byte to the code point of the same value.
//
//	Derive("✅", "") == "â\u009c\u0085"
func Derive(target, via string) (string, error) {
	if via == "" {
		via = Latin1
	}
	cs, ok := deriveCharsets[strings.ToLower(via)]
	if !ok {
		return "", fmt.Errorf("derive: unsupported charset %q (want %s or %s)", via, Latin1, Windows1252)
	}
	return cs.NewDecoder().String(target)
}

// DeriveRule builds a rule that repairs target as corrupted through via.
func DeriveRule(name, target, via string) (Rule, error) {
	from, err := Derive(target, via)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Name: name, From: from, To: target}, nil
}

// DeriveTable builds rules for every target through each charset, in order.
// Targets that are pure ASCII are skipped since they cannot be corrupted
// this way.
func DeriveTable(targets []string, charsets ...string) (Table, error) {
	if len(charsets) == 0 {
		charsets = []string{Latin1}
	}
	var t Table
	for _, via := range charsets {
		for _, target := range targets {
			rule, err := DeriveRule(target, target, via)
			if err != nil {
				return nil, err
			}
			if rule.From == rule.To {
				continue
			}
			t = append(t, rule)
		}
	}
	return t, nil
}
