package ontology

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/geoknoesis/ontology-go/rdf"
)

func TestValidateNTriplesRejects(t *testing.T) {
	cases := []struct {
		name string
		line string
		want error
	}{
		{"relative iri", `<http://example.org/s> <p> <http://example.org/o> .`, ErrRelativeIRI},
		{"space in iri", `<http://example.org/a b> <http://example.org/p> <http://example.org/o> .`, ErrIRIWhitespace},
		{"tab in iri", "<http://example.org/a\tb> <http://example.org/p> <http://example.org/o> .", ErrIRIWhitespace},
		{"bad iri escape", `<http://example.org/a\n> <http://example.org/p> <http://example.org/o> .`, ErrInvalidIRIEscape},
		{"short iri hex escape", `<http://example.org/\u12> <http://example.org/p> <http://example.org/o> .`, ErrInvalidIRIEscape},
		{"colon in blank label", `_:a:b <http://example.org/p> <http://example.org/o> .`, ErrInvalidBlankNode},
		{"blank label punctuation", `_:-a <http://example.org/p> <http://example.org/o> .`, ErrInvalidBlankNode},
		{"empty blank label", `_: <http://example.org/p> <http://example.org/o> .`, ErrInvalidBlankNode},
		{"bad string escape", `<http://example.org/s> <http://example.org/p> "a\qb" .`, ErrInvalidStringEscape},
		{"short string hex escape", `<http://example.org/s> <http://example.org/p> "\u00e" .`, ErrInvalidStringEscape},
		{"digit language tag", `<http://example.org/s> <http://example.org/p> "x"@1en .`, ErrInvalidLanguageTag},
		{"underscore language tag", `<http://example.org/s> <http://example.org/p> "x"@en_US .`, ErrInvalidLanguageTag},
		{"object list", `<http://example.org/s> <http://example.org/p> <http://example.org/a>, <http://example.org/b> .`, ErrBareSeparator},
		{"predicate list", `<http://example.org/s> <http://example.org/p> <http://example.org/a> ; <http://example.org/q> <http://example.org/b> .`, ErrBareSeparator},
		{"triple quoted", `<http://example.org/s> <http://example.org/p> """long""" .`, ErrTripleQuotedString},
		{"triple quote in iri", `<http://example.org/"""> <http://example.org/p> <http://example.org/o> .`, ErrTripleQuotedString},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := ValidateNTriples(c.line)
			require.Error(t, err)
			assert.True(t, errors.Is(err, c.want), "got %v", err)
			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, 1, perr.Line)
			assert.Equal(t, FormatNTriples, perr.Format)
		})
	}
}

func TestValidateNTriplesAccepts(t *testing.T) {
	lines := []string{
		`<http://example.org/s> <http://example.org/p> <http://example.org/o> .`,
		`_:b1 <http://example.org/p> "tab\there \"quoted\" \\ é \U0001F600" .`,
		`<http://example.org/s> <http://example.org/p> "x"@en-US .`,
		`<http://example.org/s> <http://example.org/p> "1"^^<http://www.w3.org/2001/XMLSchema#integer> .`,
		`<http://example.org/s> <http://example.org/p> "a; b, c # not a comment" .`,
		`<urn:isbn:123> <http://example.org/p> <http://example.org/café> .`,
		`_:_x <http://example.org/p> _:9y .`,
	}
	for _, line := range lines {
		_, n, err := ValidateNTriples(line)
		assert.NoError(t, err, line)
		assert.Equal(t, 1, n, line)
	}
}

func TestValidateNTriplesReportsLine(t *testing.T) {
	input := strings.Join([]string{
		"# header",
		`<http://example.org/s> <http://example.org/p> <http://example.org/o> .`,
		"",
		`<http://example.org/s> <http://example.org/p> "x"@1x .`,
	}, "\n")
	_, _, err := ValidateNTriples(input)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 4, perr.Line)
	assert.ErrorIs(t, err, ErrInvalidLanguageTag)
	assert.Equal(t, ErrCodeInvalidSyntax, Code(err))
}

func TestValidateNTriplesStripsComments(t *testing.T) {
	input := `<http://example.org/s#frag> <http://example.org/p> "a # b" . # trailing comment`
	cleaned, n, err := ValidateNTriples(input)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, `<http://example.org/s#frag> <http://example.org/p> "a # b" .`, cleaned)
}

func TestValidateNTriplesStripsCommentAfterBlankObject(t *testing.T) {
	cleaned, n, err := ValidateNTriples(`_:s <http://example.org/p> _:o. # trailing`)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, `_:s <http://example.org/p> _:o.`, cleaned)
}

func TestValidateNTriplesLineTooLong(t *testing.T) {
	line := `<http://example.org/s> <http://example.org/p> "` + strings.Repeat("a", MaxLineLength) + `" .`
	_, _, err := ValidateNTriples(line)
	assert.ErrorIs(t, err, ErrLineTooLong)
	assert.Equal(t, ErrCodeLineTooLong, Code(err))
}

func TestNTriplesCanHandle(t *testing.T) {
	h := &NTriplesHandler{}
	assert.True(t, h.CanHandle("# comment\n\n<http://example.org/s> <http://example.org/p> \"v\"@en . # trailing"))
	assert.True(t, h.CanHandle(`_:b <http://example.org/p> _:c .`))
	assert.False(t, h.CanHandle("@prefix ex: <http://example.org/> .\nex:s ex:p ex:o ."))
	assert.False(t, h.CanHandle(`{"@context": {}}`))
	assert.False(t, h.CanHandle(""))

	var b strings.Builder
	for i := 0; i < DefaultDetectionLineLimit; i++ {
		b.WriteString("not a triple\n")
	}
	b.WriteString("<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n")
	assert.False(t, h.CanHandle(b.String()), "lines past the detection limit must be ignored")
}

func TestNTriplesParseMinimal(t *testing.T) {
	h := &NTriplesHandler{Logger: zaptest.NewLogger(t)}
	doc, err := h.Parse(context.Background(), `<http://example.org/s> <http://example.org/p> <http://example.org/o> .`)
	require.NoError(t, err)
	assert.Equal(t, FormatNTriples, doc.Format)
	resources := doc.Graph.Resources()
	require.Len(t, resources, 1)
	assert.Equal(t, rdf.IRI{Value: "http://example.org/s"}, resources[0])
}

func TestNTriplesParseOneTriplePerLine(t *testing.T) {
	input := strings.Join([]string{
		"# leading comment",
		`<http://example.org/a> <http://example.org/p> "one" .`,
		`<http://example.org/a> <http://example.org/p> "two"@en . # comment`,
		"",
		`_:x <http://example.org/p> <http://example.org/a> .`,
		`<http://example.org/b> <http://example.org/q> "3"^^<http://www.w3.org/2001/XMLSchema#integer> .`,
	}, "\n")
	doc, err := (&NTriplesHandler{}).Parse(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 4, doc.Graph.Len())
	assert.Equal(t, 4, doc.Metadata[MetaStatementCount])
}

func TestNTriplesParseWrapsIngestionError(t *testing.T) {
	input := "<http://example.org/a> <http://example.org/p> <http://example.org/o> .\n" +
		"<http://example.org/a> <http://example.org/p> .\n"
	_, err := (&NTriplesHandler{}).Parse(context.Background(), input)
	var perr *ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Equal(t, 2, perr.Line)
	var inner *rdf.ParseError
	assert.True(t, errors.As(err, &inner), "original cause must be preserved")
}
