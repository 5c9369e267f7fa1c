package ontology

import (
	"go.uber.org/zap"

	"github.com/geoknoesis/ontology-go/rdf"
)

// ClassExtractor finds resources typed rdfs:Class, owl:Class, rdfs:Datatype,
// rdfs:Container or rdfs:Literal.
type ClassExtractor struct {
	opts ExtractOptions
}

// NewClassExtractor returns a class extractor using opts.
func NewClassExtractor(opts ExtractOptions) *ClassExtractor {
	return &ClassExtractor{opts: opts.withDefaults()}
}

// Extract returns one record per class in graph order. Documents produced by
// the RDF/XML fallback are read from their XML tree.
func (e *ClassExtractor) Extract(doc *ParsedDocument) []ClassRecord {
	if doc == nil {
		return nil
	}
	if doc.isXMLFallback() {
		root, _ := doc.XMLElement()
		return newXMLReader(root, e.opts).classes()
	}

	t := newTraverser(doc.Graph, e.opts)
	var out []ClassRecord
	for _, subject := range doc.Graph.Resources() {
		if _, ok := t.firstMatchingType(subject, classTypes); !ok {
			continue
		}
		if rdf.IsBlank(subject) && t.isAnonymousExpression(subject) {
			continue
		}
		uri, ok := t.entityURI(subject)
		if !ok {
			continue
		}
		label, labels := t.literals(subject, rdfsLabel)
		desc, descs := t.literals(subject, rdfsComment)
		out = append(out, ClassRecord{
			URI:           uri,
			Label:         label,
			Labels:        labels,
			Description:   desc,
			Descriptions:  descs,
			ParentClasses: t.iriValues(subject, rdfsSubClassOf),
			Metadata:      t.metadata(subject),
		})
	}
	e.opts.Logger.Debug("classes extracted", zap.Int("count", len(out)))
	return out
}
