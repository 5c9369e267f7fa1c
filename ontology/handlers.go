package ontology

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/geoknoesis/ontology-go/rdf"
)

var (
	turtleDirectivePattern = regexp.MustCompile(`(?mi)^\s*(?:@prefix\s|@base\s|prefix\s+[A-Za-z0-9_.\-]*:|base\s+<)`)
	turtleStatementPattern = regexp.MustCompile(`(?m)^\s*(?:[A-Za-z][\w.\-]*)?:[\w.\-]*\s+(?:a|[A-Za-z][\w.\-]*:[\w.\-]*|<[^>]*>)\s`)
	turtleListPattern      = regexp.MustCompile(`(?m)[;,]\s*$`)
)

func logger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// TurtleHandler parses Turtle documents.
type TurtleHandler struct {
	Logger *zap.Logger
}

func (h *TurtleHandler) FormatName() string { return FormatTurtle }

// CanHandle looks for prefix or base directives, or for statements written
// with prefixed names or predicate and object lists. Plain N-Triples lines
// are left to the N-Triples handler.
func (h *TurtleHandler) CanHandle(content string) bool {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "<?xml") {
		return false
	}
	if turtleDirectivePattern.MatchString(content) {
		return true
	}
	if strings.HasPrefix(trimmed, "<") && strings.Contains(trimmed, "</") {
		return false
	}
	return turtleStatementPattern.MatchString(content) || turtleListPattern.MatchString(content)
}

func (h *TurtleHandler) Parse(ctx context.Context, content string) (*ParsedDocument, error) {
	graph, err := rdf.ParseGraph(ctx, strings.NewReader(content), rdf.FormatTurtle)
	if err != nil {
		return nil, wrapGraphError(FormatTurtle, err)
	}
	return newDocument(graph, FormatTurtle, content), nil
}

// JSONLDHandler parses JSON-LD documents. Named graphs are returned as
// additional documents.
type JSONLDHandler struct {
	Logger *zap.Logger
}

func (h *JSONLDHandler) FormatName() string { return FormatJSONLD }

func (h *JSONLDHandler) CanHandle(content string) bool {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return false
	}
	if !strings.Contains(trimmed, `"@context"`) && !strings.Contains(trimmed, `"@id"`) &&
		!strings.Contains(trimmed, `"@graph"`) {
		return false
	}
	return json.Valid([]byte(trimmed))
}

func (h *JSONLDHandler) Parse(ctx context.Context, content string) (*ParsedDocument, error) {
	ds, err := rdf.ParseDataset(ctx, strings.NewReader(content), rdf.FormatJSONLD)
	if err != nil {
		return nil, wrapGraphError(FormatJSONLD, err)
	}
	doc := newDocument(ds.Default, FormatJSONLD, content)
	names := ds.GraphNames()
	if len(names) == 0 {
		return doc, nil
	}
	graphs := make(map[string]*ParsedDocument, len(names))
	for _, name := range names {
		named := ds.Graph(name)
		sub := newDocument(named, FormatJSONLD, content)
		sub.Metadata[MetaResourceCount] = len(named.Resources())
		sub.Metadata[MetaTripleCount] = named.Len()
		graphs[name] = sub
	}
	doc.Metadata[MetaAdditionalGraphs] = graphs
	logger(h.Logger).Debug("json-ld named graphs", zap.Strings("graphs", names))
	return doc, nil
}

// RDFXMLHandler parses RDF/XML. When the graph parse fails on well-formed
// XML, the document is returned with an empty graph and the parsed XML root
// under MetaXMLElement, and the class and property extractors read the tree
// directly.
type RDFXMLHandler struct {
	Logger *zap.Logger
	// ForceFallback skips the graph parse and always uses the XML tree.
	ForceFallback bool
}

func (h *RDFXMLHandler) FormatName() string { return FormatRDFXML }

func (h *RDFXMLHandler) CanHandle(content string) bool {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "<") {
		return false
	}
	return strings.HasPrefix(trimmed, "<?xml") ||
		strings.Contains(trimmed, "<rdf:RDF") ||
		(strings.Contains(trimmed, "xmlns") && strings.Contains(trimmed, rdf.RDFNS))
}

func (h *RDFXMLHandler) Parse(ctx context.Context, content string) (*ParsedDocument, error) {
	log := logger(h.Logger)
	var graphErr error
	if !h.ForceFallback {
		graph, err := rdf.ParseGraph(ctx, strings.NewReader(content), rdf.FormatRDFXML)
		if err == nil {
			return newDocument(graph, FormatRDFXML, content), nil
		}
		graphErr = err
	}

	tree := etree.NewDocument()
	if err := tree.ReadFromString(content); err != nil || tree.Root() == nil {
		if graphErr == nil {
			graphErr = err
		}
		return nil, wrapGraphError(FormatRDFXML, graphErr)
	}

	doc := newDocument(nil, FormatRDFXML, content)
	doc.Metadata[MetaXMLElement] = tree.Root()
	doc.Metadata[MetaFallback] = true
	if graphErr != nil {
		doc.Metadata[MetaFallbackReason] = graphErr.Error()
		log.Warn("rdf/xml graph parse failed, using xml fallback", zap.Error(graphErr))
	} else {
		log.Debug("rdf/xml fallback forced")
	}
	return doc, nil
}

// durationMillis reports elapsed time in fractional milliseconds.
func durationMillis(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
