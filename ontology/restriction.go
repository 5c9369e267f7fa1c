package ontology

import (
	"sort"

	"go.uber.org/zap"

	"github.com/geoknoesis/ontology-go/rdf"
)

// restrictionKinds are checked in order; the first one present on a
// restriction determines its kind.
var restrictionKinds = []string{
	"someValuesFrom",
	"allValuesFrom",
	"hasValue",
	"cardinality",
	"minCardinality",
	"maxCardinality",
	"qualifiedCardinality",
	"minQualifiedCardinality",
	"maxQualifiedCardinality",
}

// RestrictionExtractor reads owl:Restriction class expressions and the named
// classes that refer to them.
type RestrictionExtractor struct {
	opts ExtractOptions
}

// NewRestrictionExtractor returns a restriction extractor using opts.
func NewRestrictionExtractor(opts ExtractOptions) *RestrictionExtractor {
	return &RestrictionExtractor{opts: opts.withDefaults()}
}

// Extract returns the restrictions of doc sorted by first referring class,
// property and kind. Restrictions without owl:onProperty are skipped.
func (e *RestrictionExtractor) Extract(doc *ParsedDocument) []RestrictionRecord {
	if doc == nil || doc.isXMLFallback() {
		return nil
	}
	t := newTraverser(doc.Graph, e.opts)
	refs := t.restrictionReferences()

	var out []RestrictionRecord
	for _, subject := range doc.Graph.Resources() {
		if !t.g.HasType(subject, owlRestriction) {
			continue
		}
		onProperty := t.firstString(subject, owlOnProperty)
		if onProperty == "" {
			continue
		}
		rec := RestrictionRecord{OnProperty: onProperty, Classes: refs[subject]}
		if rec.Classes == nil {
			rec.Classes = make([]string, 0)
		}
		for _, kind := range restrictionKinds {
			v, ok := t.g.Value(subject, rdf.OWLNS+kind)
			if !ok {
				continue
			}
			rec.Kind = kind
			rec.Value = t.termString(v)
			break
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if fa, fb := firstOrEmpty(a.Classes), firstOrEmpty(b.Classes); fa != fb {
			return fa < fb
		}
		if a.OnProperty != b.OnProperty {
			return a.OnProperty < b.OnProperty
		}
		return a.Kind < b.Kind
	})
	e.opts.Logger.Debug("restrictions extracted", zap.Int("count", len(out)))
	return out
}

// restrictionReferences maps blank class expressions to the named classes
// that use them through rdfs:subClassOf or owl:equivalentClass, directly or
// as a member of an owl:intersectionOf list.
func (t *traverser) restrictionReferences() map[rdf.Term][]string {
	refs := make(map[rdf.Term][]string)
	for _, st := range t.g.Triples() {
		if st.P.Value != rdfsSubClassOf && st.P.Value != owlEquivalentClass {
			continue
		}
		class, ok := st.S.(rdf.IRI)
		if !ok || !rdf.IsBlank(st.O) {
			continue
		}
		refs[st.O] = appendUnique(refs[st.O], class.Value)
		if head, ok := t.g.Value(st.O, owlIntersectionOf); ok {
			for _, member := range t.listMembers(head) {
				if rdf.IsBlank(member) {
					refs[member] = appendUnique(refs[member], class.Value)
				}
			}
		}
	}
	return refs
}

// termString renders a value for output. Blank nodes get their skolem IRI.
func (t *traverser) termString(term rdf.Term) string {
	switch v := term.(type) {
	case rdf.IRI:
		return v.Value
	case rdf.Literal:
		return v.Lexical
	case rdf.BlankNode:
		return skolemIRI(v)
	}
	return ""
}

func firstOrEmpty(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[0]
}
