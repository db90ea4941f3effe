package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Field represents metadata about a config field extracted from struct tags
type Field struct {
	Key      string // e.g., "encoding.source"
	Default  string // default value as string
	Desc     string // description for help text
	Min      int    // minimum value for int fields (0 = no limit)
	Max      int    // maximum value for int fields (0 = no limit)
	Type     string // "string", "int" or "bool"
	Category string // e.g., "encoding", "fix"
}

// fieldCache caches parsed config fields to avoid repeated reflection
var fieldCache []Field

// fields extracts all config fields from Config using reflection
func fields() []Field {
	if fieldCache != nil {
		return fieldCache
	}

	var out []Field
	cfg := &Config{}
	extractFields(reflect.TypeOf(cfg).Elem(), &out)

	// Sort by key for consistent ordering
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})

	fieldCache = out
	return out
}

// extractFields recursively extracts config fields from a struct
func extractFields(t reflect.Type, out *[]Field) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		configKey := field.Tag.Get("config")
		if configKey == "" {
			if field.Type.Kind() == reflect.Struct {
				extractFields(field.Type, out)
			}
			continue
		}

		f := Field{
			Key:      configKey,
			Default:  field.Tag.Get("default"),
			Desc:     field.Tag.Get("desc"),
			Category: strings.Split(configKey, ".")[0],
		}

		if minStr := field.Tag.Get("min"); minStr != "" {
			f.Min, _ = strconv.Atoi(minStr)
		}
		if maxStr := field.Tag.Get("max"); maxStr != "" {
			f.Max, _ = strconv.Atoi(maxStr)
		}

		switch field.Type.Kind() {
		case reflect.Int:
			f.Type = "int"
		case reflect.Bool:
			f.Type = "bool"
		case reflect.String:
			f.Type = "string"
		}

		*out = append(*out, f)
	}
}

// findField finds a config field by key
func findField(key string) *Field {
	key = normalizeKey(key)
	for _, f := range fields() {
		if f.Key == key {
			return &f
		}
	}
	return nil
}

// normalizeKey handles key aliases
func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	aliases := map[string]string{
		"encoding.from": "encoding.source",
		"encoding.to":   "encoding.dest",
		"table":         "table.path",
		"journal":       "journal.url",
	}
	if normalized, ok := aliases[key]; ok {
		return normalized
	}
	return key
}

// lookup finds the struct field addressed by key ("category.name").
func lookup(cfg *Config, key string) (reflect.Value, bool) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return reflect.Value{}, false
	}

	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	// Find the nested struct by toml tag
	var nested reflect.Value
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("toml") == parts[0] {
			nested = v.Field(i)
			break
		}
	}
	if !nested.IsValid() || nested.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}

	// Find the actual field within the nested struct by config tag
	nestedType := nested.Type()
	for i := 0; i < nestedType.NumField(); i++ {
		if nestedType.Field(i).Tag.Get("config") == key {
			return nested.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// getFieldValue gets a field value from the config using reflection
func getFieldValue(cfg *Config, key string) (string, bool) {
	fv, ok := lookup(cfg, normalizeKey(key))
	if !ok {
		return "", false
	}

	switch fv.Kind() {
	case reflect.String:
		return fv.String(), true
	case reflect.Int:
		return strconv.FormatInt(fv.Int(), 10), true
	case reflect.Bool:
		return strconv.FormatBool(fv.Bool()), true
	}
	return "", false
}

// setFieldValue sets a field value on the config using reflection
func setFieldValue(cfg *Config, key, value string) error {
	key = normalizeKey(key)

	field := findField(key)
	if field == nil {
		return fmt.Errorf("unknown config key: %s", key)
	}

	fv, ok := lookup(cfg, key)
	if !ok {
		return fmt.Errorf("field not found: %s", key)
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(value)
		return nil

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value: %s", value)
		}
		fv.SetBool(b)
		return nil

	case reflect.Int:
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value: %s", value)
		}

		// Validate min/max
		if intVal < field.Min {
			return fmt.Errorf("value %d is below minimum %d", intVal, field.Min)
		}
		if field.Max != 0 && intVal > field.Max {
			return fmt.Errorf("value %d exceeds maximum %d", intVal, field.Max)
		}

		fv.SetInt(int64(intVal))
		return nil
	}

	return fmt.Errorf("unsupported field type for %s", key)
}

// ListKeys returns all available config keys
func ListKeys() []string {
	fs := fields()
	keys := make([]string, len(fs))
	for i, f := range fs {
		keys[i] = f.Key
	}
	return keys
}

// GenerateHelpText generates help text for all config options
func GenerateHelpText() string {
	var sb strings.Builder

	byCategory := make(map[string][]Field)
	for _, f := range fields() {
		byCategory[f.Category] = append(byCategory[f.Category], f)
	}

	categories := []struct {
		key   string
		title string
	}{
		{"encoding", "Encoding"},
		{"table", "Substitution table"},
		{"fix", "Fix command"},
		{"journal", "Repair journal"},
	}

	for _, cat := range categories {
		fs, ok := byCategory[cat.key]
		if !ok || len(fs) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("  %s:\n", cat.title))
		for _, f := range fs {
			defaultStr := ""
			if f.Default != "" {
				defaultStr = fmt.Sprintf(" (default: %s)", f.Default)
			}
			sb.WriteString(fmt.Sprintf("    %-20s %s%s\n", f.Key, f.Desc, defaultStr))
		}
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}
