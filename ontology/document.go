package ontology

import (
	"context"

	"github.com/beevik/etree"

	"github.com/geoknoesis/ontology-go/rdf"
)

// Metadata keys set by handlers and the dispatcher.
const (
	MetaFormat           = "format"
	MetaResourceCount    = "resource_count"
	MetaTripleCount      = "triple_count"
	MetaParseDurationMS  = "parse_duration_ms"
	MetaXMLElement       = "xml_element"
	MetaAdditionalGraphs = "additional_graphs"
	MetaFallback         = "fallback"
	MetaFallbackReason   = "fallback_reason"
	MetaStatementCount   = "statement_count"
)

// Handler parses one serialization into a ParsedDocument.
type Handler interface {
	// CanHandle reports whether content looks like this handler's format.
	CanHandle(content string) bool
	// Parse builds a document from content.
	Parse(ctx context.Context, content string) (*ParsedDocument, error)
	// FormatName returns the canonical format name, e.g. "turtle".
	FormatName() string
}

// ParsedDocument is the output of a Handler. It is not modified once the
// dispatcher has added its generic metadata.
type ParsedDocument struct {
	Graph      *rdf.Graph
	Format     string
	RawContent string
	Metadata   map[string]any
}

func newDocument(graph *rdf.Graph, format, content string) *ParsedDocument {
	if graph == nil {
		graph = rdf.NewGraph()
	}
	return &ParsedDocument{
		Graph:      graph,
		Format:     format,
		RawContent: content,
		Metadata:   make(map[string]any),
	}
}

// XMLElement returns the root element attached by the RDF/XML handler when
// it fell back to structural extraction.
func (d *ParsedDocument) XMLElement() (*etree.Element, bool) {
	if d == nil || d.Metadata == nil {
		return nil, false
	}
	el, ok := d.Metadata[MetaXMLElement].(*etree.Element)
	return el, ok && el != nil
}

// AdditionalGraphs returns the named graphs of a dataset-capable format,
// keyed by graph IRI.
func (d *ParsedDocument) AdditionalGraphs() map[string]*ParsedDocument {
	if d == nil || d.Metadata == nil {
		return nil
	}
	graphs, _ := d.Metadata[MetaAdditionalGraphs].(map[string]*ParsedDocument)
	return graphs
}

// isXMLFallback reports whether extractors must read the XML tree instead of
// the graph.
func (d *ParsedDocument) isXMLFallback() bool {
	if normalizeFormat(d.Format) != FormatRDFXML {
		return false
	}
	_, ok := d.XMLElement()
	return ok
}
