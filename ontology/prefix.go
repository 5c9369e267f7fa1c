package ontology

import (
	"encoding/json"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/geoknoesis/ontology-go/rdf"
)

var (
	turtlePrefixPattern = regexp.MustCompile(`(?i)@prefix\s+([A-Za-z][\w.\-]*)?:\s*<([^>]*)>\s*\.`)
	sparqlPrefixPattern = regexp.MustCompile(`(?im)^\s*PREFIX\s+([A-Za-z][\w.\-]*)?:\s*<([^>]*)>`)
	xmlnsPattern        = regexp.MustCompile(`xmlns:([A-Za-z_][\w.\-]*)\s*=\s*["']([^"']*)["']`)
)

// commonPrefixes are added when their namespace is used but not declared.
var commonPrefixes = []rdf.Namespace{
	{Prefix: "rdf", Full: rdf.RDFNS},
	{Prefix: "rdfs", Full: rdf.RDFSNS},
	{Prefix: "owl", Full: rdf.OWLNS},
	{Prefix: "xsd", Full: rdf.XSDNS},
	{Prefix: "dc", Full: rdf.DCNS},
	{Prefix: "dcterms", Full: rdf.DCTermsNS},
	{Prefix: "dct", Full: rdf.DCTermsNS},
	{Prefix: "foaf", Full: rdf.FOAFNS},
	{Prefix: "skos", Full: rdf.SKOSNS},
	{Prefix: "sh", Full: rdf.SHNS},
	{Prefix: "schema", Full: rdf.SchemaNS},
}

// PrefixExtractor recovers prefix declarations. The graph stores expanded
// IRIs only, so prefixes are gathered from the parser's namespace table, the
// raw text, the XML root and finally from namespace usage.
type PrefixExtractor struct {
	opts ExtractOptions
}

// NewPrefixExtractor returns a prefix extractor using opts.
func NewPrefixExtractor(opts ExtractOptions) *PrefixExtractor {
	return &PrefixExtractor{opts: opts.withDefaults()}
}

// Extract merges the prefix sources in order. A later source replaces an
// earlier binding only with a non-empty namespace; inferred prefixes never
// replace anything.
func (e *PrefixExtractor) Extract(doc *ParsedDocument) map[string]string {
	out := make(map[string]string)
	if doc == nil {
		return out
	}
	e.merge(out, doc.Graph.Namespaces(), "graph")
	e.merge(out, contentPrefixes(doc.Format, doc.RawContent), "content")
	if root, ok := doc.XMLElement(); ok && normalizeFormat(doc.Format) == FormatRDFXML {
		e.merge(out, xmlRootNamespaces(root), "xml")
	}
	if e.opts.InferCommonPrefixes {
		e.inferCommon(out, doc.Graph)
	}
	return out
}

func (e *PrefixExtractor) merge(dst, src map[string]string, source string) {
	for prefix, ns := range src {
		if prefix == "" || ns == "" {
			continue
		}
		if prev, ok := dst[prefix]; ok && prev != ns {
			e.opts.Logger.Debug("prefix redefined",
				zap.String("prefix", prefix),
				zap.String("previous", prev),
				zap.String("namespace", ns),
				zap.String("source", source))
		}
		dst[prefix] = ns
	}
}

func (e *PrefixExtractor) inferCommon(dst map[string]string, g *rdf.Graph) {
	iris := g.AllIRIs()
	for _, ns := range commonPrefixes {
		if _, ok := dst[ns.Prefix]; ok {
			continue
		}
		for _, iri := range iris {
			if strings.HasPrefix(iri, ns.Full) {
				dst[ns.Prefix] = ns.Full
				break
			}
		}
	}
}

// contentPrefixes scans raw text for declarations in the syntax of format.
func contentPrefixes(format, content string) map[string]string {
	out := make(map[string]string)
	switch normalizeFormat(format) {
	case FormatTurtle:
		for _, re := range []*regexp.Regexp{turtlePrefixPattern, sparqlPrefixPattern} {
			for _, m := range re.FindAllStringSubmatch(content, -1) {
				out[m[1]] = m[2]
			}
		}
	case FormatRDFXML:
		for _, m := range xmlnsPattern.FindAllStringSubmatch(content, -1) {
			out[m[1]] = m[2]
		}
	case FormatJSONLD:
		for prefix, ns := range jsonldContextPrefixes(content) {
			out[prefix] = ns
		}
	}
	return out
}

// jsonldContextPrefixes returns @context entries whose value is a full URL.
// Entries mapping to compact IRIs or term definitions are ignored.
func jsonldContextPrefixes(content string) map[string]string {
	out := make(map[string]string)
	var doc any
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return out
	}
	var visit func(ctx any)
	visit = func(ctx any) {
		switch v := ctx.(type) {
		case []any:
			for _, item := range v {
				visit(item)
			}
		case map[string]any:
			for key, value := range v {
				s, ok := value.(string)
				if !ok || strings.HasPrefix(key, "@") {
					continue
				}
				if validate.Var(s, "url") == nil {
					out[key] = s
				}
			}
		}
	}
	switch v := doc.(type) {
	case map[string]any:
		visit(v["@context"])
	case []any:
		for _, item := range v {
			if obj, ok := item.(map[string]any); ok {
				visit(obj["@context"])
			}
		}
	}
	return out
}
