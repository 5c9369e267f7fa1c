package rdf

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func parseTurtle(t *testing.T, input string) *Graph {
	t.Helper()
	g, err := ParseGraph(context.Background(), strings.NewReader(input), FormatTurtle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return g
}

func TestTurtleDirectiveAndPrefixedName(t *testing.T) {
	g := parseTurtle(t, "@prefix ex: <http://example.org/> .\nex:s ex:p \"v\" .\n")
	triples := g.Triples()
	if len(triples) != 1 {
		t.Fatalf("expected 1 triple, got %d", len(triples))
	}
	if triples[0].P.Value != "http://example.org/p" {
		t.Fatalf("unexpected predicate: %s", triples[0].P.Value)
	}
	if ns := g.Namespaces()["ex"]; ns != "http://example.org/" {
		t.Fatalf("expected ex namespace to be recorded, got %q", ns)
	}
}

func TestTurtleSPARQLStyleDirectives(t *testing.T) {
	g := parseTurtle(t, "PREFIX ex: <http://example.org/>\nbase <http://example.org/base/>\n<rel> ex:p ex:o .\n")
	s := g.Triples()[0].S.(IRI)
	if s.Value != "http://example.org/base/rel" {
		t.Fatalf("unexpected subject %s", s.Value)
	}
}

func TestTurtleBaseIRI(t *testing.T) {
	g := parseTurtle(t, "@base <http://example.org/> .\n<rel> <http://example.org/p> <http://example.org/o> .\n")
	if iri, ok := g.Triples()[0].S.(IRI); !ok || iri.Value != "http://example.org/rel" {
		t.Fatalf("unexpected base IRI resolution: %#v", g.Triples()[0].S)
	}
}

func TestTurtlePredicateAndObjectLists(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
ex:Person a rdfs:Class ;
    rdfs:label "Person"@en, "Personne"@fr ;
    rdfs:comment """A human
being.""" ;
.
`
	g := parseTurtle(t, input)
	person := IRI{Value: "http://example.org/Person"}
	if !g.HasType(person, RDFSNS+"Class") {
		t.Fatal("expected rdfs:Class type from 'a'")
	}
	labels := g.Values(person, RDFSNS+"label")
	if len(labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(labels))
	}
	comment, _ := g.Value(person, RDFSNS+"comment")
	if comment.(Literal).Lexical != "A human\nbeing." {
		t.Fatalf("unexpected long literal %q", comment.(Literal).Lexical)
	}
}

func TestTurtleBlankNodePropertyListAndCollection(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .
ex:p ex:range [ owl:unionOf ( ex:A ex:B ) ] .
`
	g := parseTurtle(t, input)
	rng, ok := g.Value(IRI{Value: "http://example.org/p"}, "http://example.org/range")
	if !ok || !IsBlank(rng) {
		t.Fatalf("expected blank node range, got %#v", rng)
	}
	head, ok := g.Value(rng, OWLNS+"unionOf")
	if !ok {
		t.Fatal("expected owl:unionOf on blank node")
	}
	first, _ := g.Value(head, RDFFirst.Value)
	if first.(IRI).Value != "http://example.org/A" {
		t.Fatalf("unexpected first member %v", first)
	}
	rest, _ := g.Value(head, RDFRest.Value)
	last, _ := g.Value(rest, RDFRest.Value)
	if last != RDFNil {
		t.Fatalf("expected list to end with rdf:nil, got %v", last)
	}
}

func TestTurtleNumericAndBooleanLiterals(t *testing.T) {
	g := parseTurtle(t, "@prefix ex: <http://example.org/> .\nex:s ex:i 42 ; ex:d -1.5 ; ex:e 1e3 ; ex:b true .\n")
	s := IRI{Value: "http://example.org/s"}
	cases := map[string]IRI{
		"http://example.org/i": XSDInteger,
		"http://example.org/d": XSDDecimal,
		"http://example.org/e": XSDDouble,
		"http://example.org/b": XSDBoolean,
	}
	for predicate, datatype := range cases {
		v, ok := g.Value(s, predicate)
		if !ok {
			t.Fatalf("missing value for %s", predicate)
		}
		if lit := v.(Literal); lit.Datatype != datatype {
			t.Fatalf("%s: expected %s, got %s", predicate, datatype.Value, lit.Datatype.Value)
		}
	}
}

func TestTurtleComments(t *testing.T) {
	g := parseTurtle(t, "# leading\n<http://example.org/s> <http://example.org/p> \"a # not a comment\" . # trailing\n")
	lit := g.Triples()[0].O.(Literal)
	if lit.Lexical != "a # not a comment" {
		t.Fatalf("unexpected literal %q", lit.Lexical)
	}
}

func TestTurtleUndefinedPrefix(t *testing.T) {
	_, err := ParseGraph(context.Background(), strings.NewReader("ex:s ex:p ex:o .\n"), FormatTurtle)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Line != 1 || !strings.Contains(perr.Error(), "undefined prefix") {
		t.Fatalf("unexpected error %v", perr)
	}
}

func TestTurtleInvalidPredicate(t *testing.T) {
	_, err := ParseGraph(context.Background(), strings.NewReader("_:b1 \"literal\" <http://example.org/o> .\n"), FormatTurtle)
	if err == nil {
		t.Fatal("expected predicate error")
	}
}
