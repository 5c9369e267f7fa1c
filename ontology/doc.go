// Package ontology extracts classes, properties, prefixes, SHACL shapes and
// OWL restrictions from RDF documents.
//
// Copyright 2026 Geoknoesis LLC (www.geoknoesis.com)
//
// Author: Stephane Fellah (stephanef@geoknoesis.com)
// Geosemantic-AI expert with 30 years of experience
//
// A Parser routes the input to a Handler through a Dispatcher, either by the
// requested format name or by asking each handler in turn (JSON-LD, Turtle,
// N-Triples, RDF/XML; handlers added with RegisterHandler go first). The
// handler returns a ParsedDocument and the extractors turn its graph into
// records keyed by URI.
//
// Example:
//
//	p := ontology.NewParser(ontology.WithLogger(logger))
//	res, err := p.Parse(ctx, content, ontology.ParseOptions{})
//	if err != nil {
//	    // *ontology.ParseError or *ontology.FormatDetectionError
//	}
//	for uri, class := range res.Classes {
//	    fmt.Println(uri, class.Label)
//	}
//
// The N-Triples handler is strict: each line is checked for relative IRIs,
// malformed blank node labels and escapes, bad language tags, Turtle list
// separators and long strings before the graph is built. ValidateNTriples
// exposes the same checks.
//
// Blank-node classes and properties are skipped unless skolemization is
// requested, in which case they are keyed as urn:bnode:{id}.
package ontology
