package rdf

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestNTriplesDecodeErrors(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> .\n"
	dec, err := NewDecoder(strings.NewReader(input), FormatNTriples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := dec.Next(); err == nil {
		t.Fatal("expected error for missing object")
	}

	input = "<http://example.org/s> <http://example.org/p> <http://example.org/o>\n"
	dec, err = NewDecoder(strings.NewReader(input), FormatNTriples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := dec.Next(); err == nil {
		t.Fatal("expected error for missing dot")
	}
}

func TestNTriplesRejectGraphTerm(t *testing.T) {
	line := "<http://example.org/s> <http://example.org/p> <http://example.org/o> <http://example.org/g> .\n"
	dec, err := NewDecoder(strings.NewReader(line), FormatNTriples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := dec.Next(); err == nil {
		t.Fatal("expected error for graph term in ntriples")
	}
}

func TestNTriplesDecodeBlankAndLiteral(t *testing.T) {
	line := "_:b1 <http://example.org/p> \"v\"@en .\n"
	dec, err := NewDecoder(strings.NewReader(line), FormatNTriples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	quad, err := dec.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bn, ok := quad.S.(BlankNode); !ok || bn.ID != "b1" {
		t.Fatalf("expected blank node subject, got %#v", quad.S)
	}
	if lit, ok := quad.O.(Literal); !ok || lit.Lang != "en" || lit.Lexical != "v" {
		t.Fatalf("expected lang literal, got %#v", quad.O)
	}
	if _, err := dec.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestNTriplesDecodeDatatypeLiteral(t *testing.T) {
	line := "<http://example.org/s> <http://example.org/p> \"1\"^^<http://www.w3.org/2001/XMLSchema#integer> .\n"
	dec, err := NewDecoder(strings.NewReader(line), FormatNTriples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	quad, err := dec.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lit, ok := quad.O.(Literal); !ok || lit.Datatype != XSDInteger {
		t.Fatalf("expected datatype literal, got %#v", quad.O)
	}
}

func TestNTriplesDecodeEscapes(t *testing.T) {
	line := `<http://example.org/s> <http://example.org/p> "a\tbé\"c" .` + "\n"
	g, err := ParseGraph(context.Background(), strings.NewReader(line), FormatNTriples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lit := g.Triples()[0].O.(Literal)
	if lit.Lexical != "a\tbé\"c" {
		t.Fatalf("unexpected lexical %q", lit.Lexical)
	}
}

func TestNTriplesSkipsCommentsAndBlankLines(t *testing.T) {
	input := "# header\n\n<http://example.org/s> <http://example.org/p> <http://example.org/o> . # trailing\n"
	g, err := ParseGraph(context.Background(), strings.NewReader(input), FormatNTriples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Len() != 1 {
		t.Fatalf("expected 1 triple, got %d", g.Len())
	}
}

func TestNTriplesErrorCarriesLine(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n" +
		"<http://example.org/s> <http://example.org/p> oops .\n"
	_, err := ParseGraph(context.Background(), strings.NewReader(input), FormatNTriples)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Line != 2 {
		t.Fatalf("expected line 2, got %d", perr.Line)
	}
	if !strings.HasPrefix(perr.Error(), "ntriples:2:") {
		t.Fatalf("unexpected message %q", perr.Error())
	}
}

func TestNTriplesLineLimit(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> \"" + strings.Repeat("x", 64) + "\" .\n"
	_, err := ParseGraph(context.Background(), strings.NewReader(input), FormatNTriples, OptMaxLineBytes(32))
	if !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("expected ErrLineTooLong, got %v", err)
	}
	if Code(err) != ErrCodeLineTooLong {
		t.Fatalf("unexpected code %s", Code(err))
	}
}

func TestNQuadsDataset(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n" +
		"<http://example.org/s> <http://example.org/p> \"x\" <http://example.org/g> .\n"
	ds, err := ParseDataset(context.Background(), strings.NewReader(input), FormatNQuads)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Default.Len() != 1 {
		t.Fatalf("expected 1 default triple, got %d", ds.Default.Len())
	}
	names := ds.GraphNames()
	if len(names) != 1 || names[0] != "http://example.org/g" {
		t.Fatalf("unexpected graph names %v", names)
	}
	if ds.Graph("http://example.org/g").Len() != 1 {
		t.Fatal("expected one triple in named graph")
	}
}

func TestParseDatasetTripleLimit(t *testing.T) {
	input := "<http://example.org/a> <http://example.org/p> <http://example.org/o> .\n" +
		"<http://example.org/b> <http://example.org/p> <http://example.org/o> .\n"
	_, err := ParseGraph(context.Background(), strings.NewReader(input), FormatNTriples, OptMaxTriples(1))
	if Code(err) != ErrCodeTripleLimitExceeded {
		t.Fatalf("expected triple limit error, got %v", err)
	}
}

func TestParseDatasetCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	input := "<http://example.org/a> <http://example.org/p> <http://example.org/o> .\n"
	_, err := ParseGraph(ctx, strings.NewReader(input), FormatNTriples)
	if Code(err) != ErrCodeContextCanceled {
		t.Fatalf("expected cancellation, got %v", err)
	}
}
