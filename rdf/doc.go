// Package rdf provides a compact RDF model, an in-memory graph and the
// parsers that load Turtle, N-Triples, N-Quads, RDF/XML and JSON-LD into it.
//
// Copyright 2026 Geoknoesis LLC (www.geoknoesis.com)
//
// Author: Stephane Fellah (stephanef@geoknoesis.com)
// Geosemantic-AI expert with 30 years of experience
//
// Decoding is pull-style: NewDecoder returns a Decoder whose Next yields one
// Quad at a time and io.EOF at the end. ParseGraph and ParseDataset drain a
// decoder into a Graph or Dataset and copy the prefix declarations the
// decoder saw into the graph's namespace table.
//
// Example:
//
//	g, err := rdf.ParseGraph(ctx, strings.NewReader(input), rdf.FormatTurtle)
//	if err != nil {
//	    // handle error
//	}
//	for _, subject := range g.Resources() {
//	    labels := g.Values(subject, rdf.RDFSNS+"label")
//	    // ...
//	}
//
// The N-Triples decoder is deliberately permissive: it accepts anything its
// cursor can read. Callers needing strict N-Triples validation must validate
// the text first.
//
// Namespaces is a concurrency-safe prefix registry. DefaultNamespaces returns
// the process-wide instance; parsers that need isolation should Clone it.
//
// Errors carry position information through ParseError; Code classifies any
// error returned by this package.
package rdf
