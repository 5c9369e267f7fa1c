package ontology

import (
	"strings"

	"go.uber.org/zap"

	"github.com/geoknoesis/ontology-go/rdf"
)

// SkolemPrefix prefixes the identifiers given to blank nodes when
// skolemization is enabled.
const SkolemPrefix = "urn:bnode:"

// ExtractOptions configures the entity extractors.
type ExtractOptions struct {
	// PreferredLanguage is tried before "en" when choosing a label.
	PreferredLanguage string
	// IncludeSkolemizedBlankNodes keeps blank-node entities under
	// urn:bnode:{id} identifiers instead of skipping them.
	IncludeSkolemizedBlankNodes bool
	// MaxListLength caps the members read from one RDF list. Zero means
	// DefaultMaxListLength.
	MaxListLength int
	// Namespaces compacts annotation property names. Nil uses a copy of the
	// well-known namespaces.
	Namespaces *rdf.Namespaces
	// InferCommonPrefixes lets the prefix extractor add well-known prefixes
	// whose namespace occurs in the graph without being declared.
	InferCommonPrefixes bool
	Logger              *zap.Logger
}

func (o ExtractOptions) withDefaults() ExtractOptions {
	if o.MaxListLength <= 0 {
		o.MaxListLength = DefaultMaxListLength
	}
	if o.Namespaces == nil {
		o.Namespaces = rdf.NewNamespaces(rdf.WellKnownNamespaces...)
	}
	o.Logger = logger(o.Logger)
	return o
}

// traverser holds the graph helpers shared by the extractors.
type traverser struct {
	g    *rdf.Graph
	opts ExtractOptions
}

func newTraverser(g *rdf.Graph, opts ExtractOptions) *traverser {
	return &traverser{g: g, opts: opts.withDefaults()}
}

// skolemIRI returns the stable identifier for a blank node.
func skolemIRI(b rdf.BlankNode) string {
	return SkolemPrefix + b.ID
}

// entityURI returns the identifier an entity is keyed by. Blank nodes only
// have one when skolemization is enabled.
func (t *traverser) entityURI(subject rdf.Term) (string, bool) {
	switch v := subject.(type) {
	case rdf.IRI:
		return v.Value, true
	case rdf.BlankNode:
		if t.opts.IncludeSkolemizedBlankNodes {
			return skolemIRI(v), true
		}
	}
	return "", false
}

// isAnonymousExpression reports whether subject is OWL class-expression
// syntax rather than a domain entity.
func (t *traverser) isAnonymousExpression(subject rdf.Term) bool {
	if t.g.HasType(subject, owlRestriction) {
		return true
	}
	return t.g.Has(subject, owlUnionOf) || t.g.Has(subject, owlIntersectionOf)
}

// firstMatchingType returns the first of subject's types contained in set.
func (t *traverser) firstMatchingType(subject rdf.Term, set []string) (string, bool) {
	for _, typ := range t.g.Types(subject) {
		for _, want := range set {
			if typ == want {
				return typ, true
			}
		}
	}
	return "", false
}

// literals collects the literal values of predicate keyed by language tag.
// The first value per tag wins. The best match is chosen in the order:
// preferred language, "en", first tag seen.
func (t *traverser) literals(subject rdf.Term, predicate string) (string, map[string]string) {
	all := make(map[string]string)
	var order []string
	for _, v := range t.g.Values(subject, predicate) {
		lit, ok := v.(rdf.Literal)
		if !ok {
			continue
		}
		tag := lit.Lang
		if tag == "" {
			tag = noLanguage
		}
		if _, dup := all[tag]; dup {
			continue
		}
		all[tag] = lit.Lexical
		order = append(order, tag)
	}
	return bestMatch(all, order, t.opts.PreferredLanguage), all
}

func bestMatch(values map[string]string, order []string, preferred string) string {
	if len(order) == 0 {
		return ""
	}
	for _, want := range []string{preferred, "en"} {
		if want == "" {
			continue
		}
		for _, tag := range order {
			if strings.EqualFold(tag, want) {
				return values[tag]
			}
		}
	}
	return values[order[0]]
}

// iriValues returns the IRI values of predicate. Blank nodes and literals are
// dropped. The result is never nil.
func (t *traverser) iriValues(subject rdf.Term, predicate string) []string {
	out := make([]string, 0)
	for _, v := range t.g.Values(subject, predicate) {
		if iri, ok := v.(rdf.IRI); ok {
			out = appendUnique(out, iri.Value)
		}
	}
	return out
}

// references returns IRI and literal values of predicate as strings. The
// result is never nil.
func (t *traverser) references(subject rdf.Term, predicate string) []string {
	out := make([]string, 0)
	for _, v := range t.g.Values(subject, predicate) {
		switch v := v.(type) {
		case rdf.IRI:
			out = appendUnique(out, v.Value)
		case rdf.Literal:
			out = appendUnique(out, v.Lexical)
		}
	}
	return out
}

// annotations reports every non-standard predicate/value pair on subject.
// Blank-node values have no printable identity and are skipped.
func (t *traverser) annotations(subject rdf.Term) []Annotation {
	out := make([]Annotation, 0)
	for _, st := range t.g.Statements(subject) {
		if standardPredicates[st.P.Value] {
			continue
		}
		a := Annotation{Property: t.opts.Namespaces.ShortIRI(st.P.Value)}
		switch v := st.O.(type) {
		case rdf.IRI:
			a.Value = v.Value
		case rdf.Literal:
			a.Value = v.Lexical
			a.Language = v.Lang
		default:
			continue
		}
		out = append(out, a)
	}
	return out
}

func (t *traverser) deprecated(subject rdf.Term) bool {
	for _, v := range t.g.Values(subject, owlDeprecated) {
		if lit, ok := v.(rdf.Literal); ok && (lit.Lexical == "true" || lit.Lexical == "1") {
			return true
		}
	}
	return false
}

// metadata builds the provenance envelope for a graph-path entity.
func (t *traverser) metadata(subject rdf.Term) EntityMetadata {
	types := t.g.Types(subject)
	if types == nil {
		types = make([]string, 0)
	}
	md := EntityMetadata{
		Source:      SourceGraph,
		Types:       types,
		Annotations: t.annotations(subject),
		SeeAlso:     t.references(subject, rdfsSeeAlso),
		IsDefinedBy: t.references(subject, rdfsIsDefinedBy),
		Deprecated:  t.deprecated(subject),
	}
	if b, ok := subject.(rdf.BlankNode); ok {
		md.BlankNodeID = b.ID
	}
	return md
}

// listMembers walks an RDF list from head. The walk ends at rdf:nil, at a
// node with no rdf:rest, on revisiting a node, or after MaxListLength
// members.
func (t *traverser) listMembers(head rdf.Term) []rdf.Term {
	var out []rdf.Term
	visited := make(map[rdf.Term]bool)
	node := head
	for node != nil && node != rdf.Term(rdf.RDFNil) {
		if visited[node] {
			t.opts.Logger.Warn("cyclic rdf list", zap.Stringer("node", node))
			break
		}
		visited[node] = true
		if len(out) >= t.opts.MaxListLength {
			t.opts.Logger.Warn("rdf list truncated",
				zap.Stringer("head", head),
				zap.Int("limit", t.opts.MaxListLength))
			break
		}
		if first, ok := t.g.Value(node, rdf.RDFFirst.Value); ok {
			out = append(out, first)
		}
		next, ok := t.g.Value(node, rdf.RDFRest.Value)
		if !ok {
			break
		}
		node = next
	}
	return out
}

// classExpressions resolves the values of predicate to class IRIs. Named
// values are used directly; a blank node carrying owl:unionOf contributes
// the named members of its list. Other blank nodes are dropped.
func (t *traverser) classExpressions(subject rdf.Term, predicate string) []string {
	out := make([]string, 0)
	for _, v := range t.g.Values(subject, predicate) {
		switch v := v.(type) {
		case rdf.IRI:
			out = appendUnique(out, v.Value)
		case rdf.BlankNode:
			head, ok := t.g.Value(v, owlUnionOf)
			if !ok {
				continue
			}
			for _, member := range t.listMembers(head) {
				if iri, ok := member.(rdf.IRI); ok {
					out = appendUnique(out, iri.Value)
				}
			}
		}
	}
	return out
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
