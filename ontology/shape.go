package ontology

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/geoknoesis/ontology-go/rdf"
)

// shapeConstraints are read from the shape resource itself and reported
// under their local name.
var shapeConstraints = []string{
	"minCount", "maxCount", "minLength", "maxLength", "pattern",
	"datatype", "nodeKind", "class", "node",
	"minInclusive", "maxInclusive", "minExclusive", "maxExclusive",
}

// ShapeExtractor reads SHACL shape declarations. Shapes are not validated.
type ShapeExtractor struct {
	opts ExtractOptions
}

// NewShapeExtractor returns a shape extractor using opts.
func NewShapeExtractor(opts ExtractOptions) *ShapeExtractor {
	return &ShapeExtractor{opts: opts.withDefaults()}
}

// Extract returns the named node and property shapes of doc. RDF/XML
// documents yield nothing. The sh and dct prefixes are registered on the
// extractor's namespace registry.
func (e *ShapeExtractor) Extract(doc *ParsedDocument) []ShapeRecord {
	if doc == nil || normalizeFormat(doc.Format) == FormatRDFXML {
		return nil
	}
	registerShapePrefixes(e.opts.Namespaces)

	t := newTraverser(doc.Graph, e.opts)
	var out []ShapeRecord
	for _, subject := range doc.Graph.Resources() {
		if !t.g.HasType(subject, shNodeShape) && !t.g.HasType(subject, shPropertyShape) {
			continue
		}
		iri, ok := subject.(rdf.IRI)
		if !ok {
			continue
		}
		label, labels := t.literals(subject, rdfsLabel)
		desc, descs := t.literals(subject, rdfsComment)
		out = append(out, ShapeRecord{
			URI:              iri.Value,
			Label:            label,
			Labels:           labels,
			Description:      desc,
			Descriptions:     descs,
			TargetClass:      t.firstString(subject, rdf.SHNS+"targetClass"),
			TargetNode:       t.firstString(subject, rdf.SHNS+"targetNode"),
			TargetSubjectsOf: t.firstString(subject, rdf.SHNS+"targetSubjectsOf"),
			TargetObjectsOf:  t.firstString(subject, rdf.SHNS+"targetObjectsOf"),
			TargetProperty:   t.firstString(subject, shPath),
			PropertyShapes:   t.propertyShapes(subject),
			Constraints:      t.constraints(subject),
			Metadata:         t.metadata(subject),
		})
	}
	e.opts.Logger.Debug("shapes extracted", zap.Int("count", len(out)))
	return out
}

// registerShapePrefixes binds the prefixes used when reporting shapes.
func registerShapePrefixes(ns *rdf.Namespaces) {
	ns.RegisterPrefix("sh", rdf.SHNS)
	ns.RegisterPrefix("dct", rdf.DCTermsNS)
}

// propertyShapes reads the sh:property constraints of shape. Constraints
// without a path are dropped.
func (t *traverser) propertyShapes(shape rdf.Term) []PropertyShape {
	out := make([]PropertyShape, 0)
	for _, node := range t.g.Values(shape, shProperty) {
		path := t.firstString(node, shPath)
		if path == "" {
			continue
		}
		ps := PropertyShape{
			Path:     path,
			Datatype: t.firstString(node, rdf.SHNS+"datatype"),
			NodeKind: t.firstString(node, rdf.SHNS+"nodeKind"),
			Pattern:  t.firstString(node, rdf.SHNS+"pattern"),
			Class:    t.firstString(node, rdf.SHNS+"class"),
			Message:  t.firstString(node, shMessage),
			Name:     t.firstString(node, shName),
		}
		ps.MinCount = t.firstInt(node, rdf.SHNS+"minCount")
		ps.MaxCount = t.firstInt(node, rdf.SHNS+"maxCount")
		ps.MinLength = t.firstInt(node, rdf.SHNS+"minLength")
		ps.MaxLength = t.firstInt(node, rdf.SHNS+"maxLength")
		if label, labels := t.literals(node, rdfsLabel); len(labels) > 0 {
			ps.Label, ps.Labels = label, labels
		}
		if desc, descs := t.literals(node, shDescription); len(descs) > 0 {
			ps.Description, ps.Descriptions = desc, descs
		}
		out = append(out, ps)
	}
	return out
}

// constraints collects the shape-level constraint values keyed by local name.
func (t *traverser) constraints(shape rdf.Term) map[string]string {
	out := make(map[string]string)
	for _, name := range shapeConstraints {
		if v := t.firstString(shape, rdf.SHNS+name); v != "" {
			out[name] = v
		}
	}
	return out
}

// firstString returns the first IRI or literal value of predicate as a
// string. Blank nodes have no string form and are skipped.
func (t *traverser) firstString(subject rdf.Term, predicate string) string {
	for _, v := range t.g.Values(subject, predicate) {
		switch v := v.(type) {
		case rdf.IRI:
			return v.Value
		case rdf.Literal:
			return v.Lexical
		}
	}
	return ""
}

// firstInt returns the first value of predicate parsed as an integer, or nil.
func (t *traverser) firstInt(subject rdf.Term, predicate string) *int {
	s := t.firstString(subject, predicate)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		t.opts.Logger.Debug("ignoring non-integer constraint",
			zap.String("predicate", predicate),
			zap.String("value", s))
		return nil
	}
	return &n
}
