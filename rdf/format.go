package rdf

import "strings"

// Format identifies RDF serialization formats.
type Format string

const (
	FormatTurtle   Format = "turtle"
	FormatNTriples Format = "ntriples"
	FormatNQuads   Format = "nquads"
	FormatRDFXML   Format = "rdfxml"
	FormatJSONLD   Format = "jsonld"
)

// ParseFormat normalizes a format string.
func ParseFormat(value string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "turtle", "ttl", "text/turtle":
		return FormatTurtle, true
	case "ntriples", "n-triples", "nt", "application/n-triples":
		return FormatNTriples, true
	case "nquads", "n-quads", "nq", "application/n-quads":
		return FormatNQuads, true
	case "rdfxml", "rdf/xml", "rdf", "xml", "owl", "application/rdf+xml":
		return FormatRDFXML, true
	case "jsonld", "json-ld", "json", "application/ld+json":
		return FormatJSONLD, true
	default:
		return "", false
	}
}
