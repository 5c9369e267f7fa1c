package ontology

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/geoknoesis/ontology-go/rdf"
)

// commentRanges infer a range from prose such as "The range of this property
// is an integer value". A comment must mention "range"; the first matching
// pattern wins per comment.
var commentRanges = []struct {
	pattern  *regexp.Regexp
	datatype string
}{
	{regexp.MustCompile(`(?i)plain literal|rdf literal|language-tagged|lang.*string`), rdf.RDFLangString.Value},
	{regexp.MustCompile(`(?i)rdfs:literal|range\s+is\s+(?:an?\s+)?literal`), rdf.XSDString.Value},
	{regexp.MustCompile(`(?i)xsd:string|\bstring\b`), rdf.XSDString.Value},
	{regexp.MustCompile(`(?i)xsd:datetime|datetime`), xsdDateTime},
	{regexp.MustCompile(`(?i)xsd:boolean|boolean`), rdf.XSDBoolean.Value},
	{regexp.MustCompile(`(?i)xsd:integer|integer`), rdf.XSDInteger.Value},
}

// rangeFromComments infers range datatypes from free-text comments. The
// result is never nil.
func rangeFromComments(comments []string) []string {
	out := make([]string, 0)
	for _, c := range comments {
		if !strings.Contains(strings.ToLower(c), "range") {
			continue
		}
		for _, r := range commentRanges {
			if r.pattern.MatchString(c) {
				out = appendUnique(out, r.datatype)
				break
			}
		}
	}
	return out
}

// propertyKind classifies a property by its type IRIs. Object wins over
// datatype, and datatype over annotation; untyped properties are datatype.
func propertyKind(types []string) string {
	kind := ""
	for _, typ := range types {
		switch {
		case strings.Contains(typ, "ObjectProperty"):
			return PropertyTypeObject
		case strings.Contains(typ, "DatatypeProperty"):
			kind = PropertyTypeDatatype
		case strings.Contains(typ, "AnnotationProperty"):
			if kind == "" {
				kind = PropertyTypeAnnotation
			}
		}
	}
	if kind == "" {
		return PropertyTypeDatatype
	}
	return kind
}

// PropertyExtractor finds resources typed rdf:Property, owl:DatatypeProperty,
// owl:ObjectProperty, owl:AnnotationProperty or owl:FunctionalProperty.
type PropertyExtractor struct {
	opts ExtractOptions
}

// NewPropertyExtractor returns a property extractor using opts.
func NewPropertyExtractor(opts ExtractOptions) *PropertyExtractor {
	return &PropertyExtractor{opts: opts.withDefaults()}
}

// Extract returns one record per property in graph order.
func (e *PropertyExtractor) Extract(doc *ParsedDocument) []PropertyRecord {
	if doc == nil {
		return nil
	}
	if doc.isXMLFallback() {
		root, _ := doc.XMLElement()
		return newXMLReader(root, e.opts).properties()
	}

	t := newTraverser(doc.Graph, e.opts)
	var out []PropertyRecord
	for _, subject := range doc.Graph.Resources() {
		if _, ok := t.firstMatchingType(subject, propertyTypes); !ok {
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
		types := t.g.Types(subject)

		ranges := t.classExpressions(subject, rdfsRange)
		if len(ranges) == 0 {
			ranges = rangeFromComments(t.commentTexts(subject))
		}
		out = append(out, PropertyRecord{
			URI:              uri,
			Label:            label,
			Labels:           labels,
			Description:      desc,
			Descriptions:     descs,
			PropertyType:     propertyKind(types),
			IsFunctional:     containsString(types, owlFunctionalProperty),
			Domain:           t.classExpressions(subject, rdfsDomain),
			Range:            ranges,
			ParentProperties: t.iriValues(subject, rdfsSubPropertyOf),
			InverseOf:        t.iriValues(subject, owlInverseOf),
			Metadata:         t.metadata(subject),
		})
	}
	e.opts.Logger.Debug("properties extracted", zap.Int("count", len(out)))
	return out
}

// commentTexts returns every rdfs:comment literal of subject regardless of
// language.
func (t *traverser) commentTexts(subject rdf.Term) []string {
	var out []string
	for _, v := range t.g.Values(subject, rdfsComment) {
		if lit, ok := v.(rdf.Literal); ok {
			out = append(out, lit.Lexical)
		}
	}
	return out
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
