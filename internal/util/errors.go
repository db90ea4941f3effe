package util

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Common errors used throughout mojifix
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrEncoding         = errors.New("invalid bytes for declared encoding")
	ErrUnknownEncoding  = errors.New("unknown encoding")
	ErrInvalidTable     = errors.New("invalid substitution table")
	ErrJournalURL       = errors.New("unsupported journal URL")
	ErrNoJournal        = errors.New("no journal configured")
	ErrCorruptionFound  = errors.New("corrupted sequences found")
)

// FixError is a structured error with context and suggestions
type FixError struct {
	Title       string   // Short error title
	Message     string   // Detailed message
	Context     string   // What was being attempted
	Causes      []string // Possible causes
	Suggestions []string // Actionable suggestions with commands
	Err         error    // Wrapped error
}

func (e *FixError) Error() string {
	return e.Title
}

func (e *FixError) Unwrap() error {
	return e.Err
}

// Format returns a nicely formatted error message
func (e *FixError) Format() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error: %s\n", e.Title))

	if e.Message != "" {
		sb.WriteString(fmt.Sprintf("\n  %s\n", e.Message))
	}
	if e.Context != "" {
		sb.WriteString(fmt.Sprintf("\n  %s\n", e.Context))
	}

	if len(e.Causes) > 0 {
		sb.WriteString("\n  Possible causes:\n")
		for _, cause := range e.Causes {
			sb.WriteString(fmt.Sprintf("    • %s\n", cause))
		}
	}

	if len(e.Suggestions) > 0 {
		sb.WriteString("\n  Try:\n")
		for _, sug := range e.Suggestions {
			sb.WriteString(fmt.Sprintf("    $ %s\n", sug))
		}
	}

	return sb.String()
}

// NewError creates a new FixError
func NewError(title string) *FixError {
	return &FixError{Title: title}
}

// WithMessage adds a detailed message
func (e *FixError) WithMessage(msg string) *FixError {
	e.Message = msg
	return e
}

// WithContext adds context about what was being attempted
func (e *FixError) WithContext(ctx string) *FixError {
	e.Context = ctx
	return e
}

// WithCauses adds possible causes
func (e *FixError) WithCauses(causes ...string) *FixError {
	e.Causes = append(e.Causes, causes...)
	return e
}

// WithSuggestions adds actionable suggestions
func (e *FixError) WithSuggestions(sugs ...string) *FixError {
	e.Suggestions = append(e.Suggestions, sugs...)
	return e
}

// Wrap wraps an underlying error
func (e *FixError) Wrap(err error) *FixError {
	e.Err = err
	return e
}

// ══════════════════════════════════════════════════════════════════════════
// Pre-built error constructors for boundary failures
// ══════════════════════════════════════════════════════════════════════════

// ResourceNotFoundError reports a target file that does not exist.
// The returned error matches ErrResourceNotFound and the underlying cause.
func ResourceNotFoundError(path string, err error) *FixError {
	return NewError(fmt.Sprintf("File '%s' not found", path)).
		WithSuggestions(
			"ls "+path+"            # Check the path",
			"mojifix check <file>   # Scan an existing file",
		).
		Wrap(errors.Join(ErrResourceNotFound, err))
}

// EncodingError reports bytes that are invalid (when reading) or characters
// that are unrepresentable (when writing) under the declared encoding.
func EncodingError(path, encoding string, offset int, err error) *FixError {
	e := NewError(fmt.Sprintf("File '%s' is not valid %s", path, encoding)).
		WithCauses(
			"The file was saved with a different encoding",
			"The file is binary",
		).
		WithSuggestions(
			"mojifix fix --from windows-1252 <file>  # Declare the real source encoding",
		).
		Wrap(errors.Join(ErrEncoding, err))
	if offset >= 0 {
		e.WithMessage(fmt.Sprintf("First bad byte at offset %d", offset))
	}
	return e
}

// UnknownEncodingError reports an encoding name that cannot be resolved.
func UnknownEncodingError(name string) *FixError {
	return NewError(fmt.Sprintf("Unknown encoding '%s'", name)).
		WithMessage("Use an IANA name such as utf-8, iso-8859-1, windows-1252, utf-16le, or utf-8-sig").
		Wrap(ErrUnknownEncoding)
}

// InvalidTableError reports a substitution table that fails validation.
func InvalidTableError(source string, err error) *FixError {
	return NewError("Invalid substitution table").
		WithContext(source).
		WithSuggestions(
			"mojifix table lint --table " + source + "  # Show all problems",
		).
		Wrap(errors.Join(ErrInvalidTable, err))
}

// JournalConnectionError returns a structured error for journal connection issues
func JournalConnectionError(journalURL string, err error) *FixError {
	return NewError("Cannot open repair journal").
		WithContext(RedactURL(journalURL)).
		WithCauses(
			"Database server is not running",
			"Invalid connection credentials",
			"SQLite file is not writable",
		).
		WithSuggestions(
			"mojifix config journal.url \"\"   # Disable the journal",
		).
		Wrap(err)
}

// RedactURL hides the password of a connection URL.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}

// MissingArgumentError returns an error for missing required argument
func MissingArgumentError(argName, example string) *FixError {
	e := NewError(fmt.Sprintf("Missing required argument: <%s>", argName))
	if example != "" {
		e.WithSuggestions(example)
	}
	return e
}
