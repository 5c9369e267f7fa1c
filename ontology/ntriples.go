package ontology

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/geoknoesis/ontology-go/rdf"
)

// MaxLineLength bounds a single N-Triples line.
const MaxLineLength = 1 << 20

// DefaultDetectionLineLimit is the number of statement lines CanHandle inspects.
const DefaultDetectionLineLimit = 10

var (
	iriSchemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*:`)
	langTagPattern   = regexp.MustCompile(`^[a-zA-Z]+(-[a-zA-Z0-9]+)*$`)
	ntLinePattern    = regexp.MustCompile(
		`^(?:<[^>\s]*>|_:\S+)\s+<[^>\s]*>\s+` +
			`(?:<[^>\s]*>|_:\S+|"(?:[^"\\]|\\.)*"(?:@[A-Za-z][A-Za-z0-9-]*|\^\^<[^>\s]*>)?)\s*\.`)
)

// NTriplesHandler parses strict N-Triples. Every line is validated before
// the text reaches the permissive rdf ingestion routine.
type NTriplesHandler struct {
	Logger *zap.Logger
	// DetectionLineLimit caps the lines CanHandle inspects. Zero means
	// DefaultDetectionLineLimit.
	DetectionLineLimit int
}

func (h *NTriplesHandler) FormatName() string { return FormatNTriples }

// CanHandle reports whether any of the first statement lines has the shape
// (<IRI>|_:label) <IRI> value '.'.
func (h *NTriplesHandler) CanHandle(content string) bool {
	limit := h.DetectionLineLimit
	if limit <= 0 {
		limit = DefaultDetectionLineLimit
	}
	seen := 0
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if ntLinePattern.MatchString(line) {
			return true
		}
		seen++
		if seen >= limit {
			break
		}
	}
	return false
}

func (h *NTriplesHandler) Parse(ctx context.Context, content string) (*ParsedDocument, error) {
	cleaned, statements, err := ValidateNTriples(content)
	if err != nil {
		return nil, err
	}
	// Blank and comment lines stay in the cleaned text, so ingestion errors
	// report the same line numbers as the input.
	graph, err := rdf.ParseGraph(ctx, strings.NewReader(cleaned), rdf.FormatNTriples, rdf.OptMaxLineBytes(0))
	if err != nil {
		return nil, wrapGraphError(FormatNTriples, err)
	}
	logger(h.Logger).Debug("parsed n-triples",
		zap.Int("statements", statements),
		zap.Int("triples", graph.Len()))
	doc := newDocument(graph, FormatNTriples, content)
	doc.Metadata[MetaStatementCount] = statements
	return doc, nil
}

// ValidateNTriples checks every statement line of content against the strict
// N-Triples rules and returns the text with trailing comments removed,
// together with the number of statement lines. The first violation is
// returned as a *ParseError carrying the 1-based line number.
func ValidateNTriples(content string) (string, int, error) {
	lines := strings.Split(content, "\n")
	statements := 0
	for i, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			lines[i] = ""
			continue
		}
		cleaned, err := validateLine(line)
		if err != nil {
			return "", 0, &ParseError{Format: FormatNTriples, Line: i + 1, Err: err}
		}
		lines[i] = cleaned
		statements++
	}
	return strings.Join(lines, "\n"), statements, nil
}

// lineScan is everything the rules need from one pass over a line.
type lineScan struct {
	iris         []string
	blankLabels  []string
	escapes      []string
	langTags     []string
	separator    byte
	commentStart int
}

// scanLine walks line once, tracking whether the cursor is inside a string
// literal or an IRI. Escapes are only interpreted inside strings.
func scanLine(line string) lineScan {
	scan := lineScan{commentStart: -1}
	inString, inIRI, escaped := false, false, false
	dotSeen := false
	iriStart, escStart := 0, 0

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case escaped:
			escaped = false
			end := i + 1
			switch ch {
			case 'u':
				end = hexRun(line, i+1, 4)
			case 'U':
				end = hexRun(line, i+1, 8)
			}
			scan.escapes = append(scan.escapes, line[escStart:end])
			i = end - 1
		case inString:
			switch ch {
			case '\\':
				escaped = true
				escStart = i
			case '"':
				inString = false
				if i+1 < len(line) && line[i+1] == '@' {
					end := i + 2
					for end < len(line) && !isLineSpace(line[end]) && line[end] != '.' {
						end++
					}
					scan.langTags = append(scan.langTags, line[i+2:end])
					i = end - 1
				}
			}
		case inIRI:
			if ch == '>' {
				inIRI = false
				scan.iris = append(scan.iris, line[iriStart:i])
			}
		default:
			switch ch {
			case '"':
				inString = true
			case '<':
				inIRI = true
				iriStart = i + 1
			case '_':
				if i+1 < len(line) && line[i+1] == ':' {
					end := i + 2
					for end < len(line) && !isLabelDelimiter(line[end]) {
						end++
					}
					label := line[i+2 : end]
					if strings.HasSuffix(label, ".") {
						dotSeen = true
					}
					scan.blankLabels = append(scan.blankLabels, strings.TrimRight(label, "."))
					i = end - 1
				}
			case ';', ',':
				if scan.separator == 0 {
					scan.separator = ch
				}
			case '.':
				dotSeen = true
			case '#':
				if dotSeen {
					scan.commentStart = i
					return scan
				}
			}
		}
	}
	if inIRI {
		scan.iris = append(scan.iris, line[iriStart:])
	}
	if escaped {
		scan.escapes = append(scan.escapes, line[escStart:])
	}
	return scan
}

// validateLine applies the strict rules in order and returns the line with
// any trailing comment removed.
func validateLine(line string) (string, error) {
	if len(line) > MaxLineLength {
		return "", fmt.Errorf("%w: %d bytes (limit %d)", ErrLineTooLong, len(line), MaxLineLength)
	}
	if strings.Contains(line, `"""`) {
		return "", ErrTripleQuotedString
	}
	scan := scanLine(line)
	for _, iri := range scan.iris {
		if err := checkIRI(iri); err != nil {
			return "", err
		}
	}
	for _, label := range scan.blankLabels {
		if err := checkBlankLabel(label); err != nil {
			return "", err
		}
	}
	for _, esc := range scan.escapes {
		if !validStringEscape(esc) {
			return "", fmt.Errorf("%w: %q", ErrInvalidStringEscape, esc)
		}
	}
	for _, tag := range scan.langTags {
		if !langTagPattern.MatchString(tag) {
			return "", fmt.Errorf("%w: %q", ErrInvalidLanguageTag, tag)
		}
	}
	if scan.separator != 0 {
		return "", fmt.Errorf("%w: %q", ErrBareSeparator, scan.separator)
	}
	if scan.commentStart >= 0 {
		line = strings.TrimRight(line[:scan.commentStart], " \t")
	}
	return line, nil
}

func checkIRI(iri string) error {
	if strings.ContainsAny(iri, " \t\r\n\f\v") {
		return fmt.Errorf("%w: <%s>", ErrIRIWhitespace, iri)
	}
	if !iriSchemePattern.MatchString(iri) {
		return fmt.Errorf("%w: <%s>", ErrRelativeIRI, iri)
	}
	for i := 0; i < len(iri); i++ {
		if iri[i] != '\\' {
			continue
		}
		width := 0
		if i+1 < len(iri) {
			switch iri[i+1] {
			case 'u':
				width = 4
			case 'U':
				width = 8
			}
		}
		if width == 0 || hexRun(iri, i+2, width) != i+2+width {
			return fmt.Errorf("%w: <%s>", ErrInvalidIRIEscape, iri)
		}
		i += 1 + width
	}
	return nil
}

func checkBlankLabel(label string) error {
	if label == "" {
		return fmt.Errorf("%w: empty label", ErrInvalidBlankNode)
	}
	first := label[0]
	if !(isASCIILetter(first) || isDigit(first) || first == '_') {
		return fmt.Errorf("%w: %q", ErrInvalidBlankNode, label)
	}
	if strings.Contains(label, ":") {
		return fmt.Errorf("%w: %q contains ':'", ErrInvalidBlankNode, label)
	}
	return nil
}

// validStringEscape accepts a backslash sequence as collected by scanLine.
func validStringEscape(esc string) bool {
	if len(esc) < 2 {
		return false
	}
	switch esc[1] {
	case 't', 'b', 'n', 'r', 'f', '"', '\\':
		return len(esc) == 2
	case 'u':
		return len(esc) == 6
	case 'U':
		return len(esc) == 10
	}
	return false
}

// hexRun returns the index after at most n hex digits starting at from.
func hexRun(s string, from, n int) int {
	end := from
	for end < len(s) && end-from < n && isHex(s[end]) {
		end++
	}
	return end
}

func isHex(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isASCIILetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isLineSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isLabelDelimiter(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '<', '"', ';', ',':
		return true
	}
	return false
}
