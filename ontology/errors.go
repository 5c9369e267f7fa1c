package ontology

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/geoknoesis/ontology-go/rdf"
)

// ErrorCode classifies failures returned by Parser and Dispatcher.
type ErrorCode string

const (
	// ErrCodeEmptyContent indicates empty or whitespace-only input.
	ErrCodeEmptyContent ErrorCode = "EMPTY_CONTENT"
	// ErrCodeFormatDetection indicates that no handler could be selected.
	ErrCodeFormatDetection ErrorCode = "FORMAT_DETECTION"
	// ErrCodeInvalidSyntax indicates a strict N-Triples rule violation.
	ErrCodeInvalidSyntax ErrorCode = "INVALID_SYNTAX"
	// ErrCodeLineTooLong indicates a line over the strict length limit.
	ErrCodeLineTooLong ErrorCode = "LINE_TOO_LONG"
	// ErrCodeParseError indicates a grammar failure in the graph parsers.
	ErrCodeParseError ErrorCode = "PARSE_ERROR"
	// ErrCodeContextCanceled indicates the context was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
)

var (
	// ErrEmptyContent is returned before any handler runs when the input
	// holds nothing but whitespace.
	ErrEmptyContent = errors.New("content is empty")

	// ErrLineTooLong rejects N-Triples lines longer than MaxLineLength.
	ErrLineTooLong = errors.New("line exceeds maximum length")
	// ErrTripleQuotedString rejects """ long strings, which are Turtle only.
	ErrTripleQuotedString = errors.New("triple-quoted strings are not allowed")
	// ErrIRIWhitespace rejects IRIs containing whitespace.
	ErrIRIWhitespace = errors.New("IRI contains whitespace")
	// ErrRelativeIRI rejects IRIs without a scheme.
	ErrRelativeIRI = errors.New("relative IRI not allowed")
	// ErrInvalidIRIEscape rejects backslash sequences other than \uXXXX and \UXXXXXXXX in IRIs.
	ErrInvalidIRIEscape = errors.New("invalid escape sequence in IRI")
	// ErrInvalidBlankNode rejects malformed blank node labels.
	ErrInvalidBlankNode = errors.New("invalid blank node label")
	// ErrInvalidStringEscape rejects unknown escape sequences in string literals.
	ErrInvalidStringEscape = errors.New("invalid escape sequence in string literal")
	// ErrInvalidLanguageTag rejects language tags outside [a-zA-Z]+(-[a-zA-Z0-9]+)*.
	ErrInvalidLanguageTag = errors.New("invalid language tag")
	// ErrBareSeparator rejects ';' and ',' outside strings and IRIs.
	ErrBareSeparator = errors.New("predicate or object list separator not allowed")
)

var syntaxErrors = []error{
	ErrTripleQuotedString,
	ErrIRIWhitespace,
	ErrRelativeIRI,
	ErrInvalidIRIEscape,
	ErrInvalidBlankNode,
	ErrInvalidStringEscape,
	ErrInvalidLanguageTag,
	ErrBareSeparator,
}

// Code returns the error code for err, or ErrCodeParseError if unknown.
// Returns the empty string for nil.
func Code(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var fde *FormatDetectionError
	switch {
	case errors.Is(err, ErrEmptyContent):
		return ErrCodeEmptyContent
	case errors.As(err, &fde):
		return ErrCodeFormatDetection
	case errors.Is(err, ErrLineTooLong), errors.Is(err, rdf.ErrLineTooLong):
		return ErrCodeLineTooLong
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrCodeContextCanceled
	}
	for _, target := range syntaxErrors {
		if errors.Is(err, target) {
			return ErrCodeInvalidSyntax
		}
	}
	return ErrCodeParseError
}

// ParseError reports content that was routed to a format but failed under
// that format's grammar.
type ParseError struct {
	Format string // Handler format name, e.g. "n-triples"
	Line   int    // 1-based line number (0 if unknown)
	Err    error  // Underlying cause
}

func (e *ParseError) Error() string {
	var msg strings.Builder
	if e.Format != "" {
		msg.WriteString(e.Format)
	} else {
		msg.WriteString("parse")
	}
	if e.Line > 0 {
		fmt.Fprintf(&msg, ": line %d", e.Line)
	}
	msg.WriteString(": ")
	msg.WriteString(e.Err.Error())
	return msg.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// wrapGraphError converts a failure from the rdf parsers into a ParseError,
// carrying over the line number the parser recorded.
func wrapGraphError(format string, err error) error {
	if err == nil {
		return nil
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	line := 0
	var inner *rdf.ParseError
	if errors.As(err, &inner) {
		line = inner.Line
	}
	return &ParseError{Format: format, Line: line, Err: err}
}

// FormatDetectionError reports that no handler could be selected, either
// because a requested format is unknown or because no handler claimed the
// content.
type FormatDetectionError struct {
	Requested string   // Explicitly requested format, empty in auto mode
	Attempted []string // Formats that were available or tried
}

func (e *FormatDetectionError) Error() string {
	formats := strings.Join(e.Attempted, ", ")
	if e.Requested != "" {
		return fmt.Sprintf("no handler for format %q (available: %s)", e.Requested, formats)
	}
	return fmt.Sprintf("unable to detect format (attempted: %s)", formats)
}
