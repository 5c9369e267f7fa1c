package rdf

import "sort"

// Graph is an in-memory set of triples that preserves insertion order.
//
// A Graph is not safe for concurrent mutation. Once a parser has returned it,
// concurrent readers are fine.
type Graph struct {
	triples    []Triple
	seen       map[tripleKey]struct{}
	bySubject  map[string][]int
	subjects   []Term
	namespaces map[string]string
}

type tripleKey struct {
	s, p, o string
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		seen:       make(map[tripleKey]struct{}),
		bySubject:  make(map[string][]int),
		namespaces: make(map[string]string),
	}
}

// Add inserts t and reports whether it was new. Duplicate triples are ignored.
func (g *Graph) Add(t Triple) bool {
	key := tripleKey{s: termKey(t.S), p: t.P.Value, o: termKey(t.O)}
	if _, ok := g.seen[key]; ok {
		return false
	}
	g.seen[key] = struct{}{}
	idx := len(g.triples)
	g.triples = append(g.triples, t)
	sk := key.s
	if _, ok := g.bySubject[sk]; !ok {
		g.subjects = append(g.subjects, t.S)
	}
	g.bySubject[sk] = append(g.bySubject[sk], idx)
	return true
}

// Len returns the number of triples.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.triples)
}

// IsEmpty reports whether the graph holds no triples.
func (g *Graph) IsEmpty() bool { return g.Len() == 0 }

// Triples returns a copy of all triples in insertion order.
func (g *Graph) Triples() []Triple {
	if g == nil {
		return nil
	}
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Resources returns the distinct subjects in first-seen order.
func (g *Graph) Resources() []Term {
	if g == nil {
		return nil
	}
	out := make([]Term, len(g.subjects))
	copy(out, g.subjects)
	return out
}

// Statements returns every triple whose subject is subject.
func (g *Graph) Statements(subject Term) []Triple {
	if g == nil {
		return nil
	}
	idx := g.bySubject[termKey(subject)]
	out := make([]Triple, 0, len(idx))
	for _, i := range idx {
		out = append(out, g.triples[i])
	}
	return out
}

// Values returns the objects of subject for the predicate IRI, in insertion order.
func (g *Graph) Values(subject Term, predicate string) []Term {
	if g == nil {
		return nil
	}
	var out []Term
	for _, i := range g.bySubject[termKey(subject)] {
		if g.triples[i].P.Value == predicate {
			out = append(out, g.triples[i].O)
		}
	}
	return out
}

// Value returns the first object of subject for predicate.
func (g *Graph) Value(subject Term, predicate string) (Term, bool) {
	if g == nil {
		return nil, false
	}
	for _, i := range g.bySubject[termKey(subject)] {
		if g.triples[i].P.Value == predicate {
			return g.triples[i].O, true
		}
	}
	return nil, false
}

// Has reports whether subject has at least one value for predicate.
func (g *Graph) Has(subject Term, predicate string) bool {
	_, ok := g.Value(subject, predicate)
	return ok
}

// Predicates returns the distinct predicates used on subject, in first-seen order.
func (g *Graph) Predicates(subject Term) []string {
	if g == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, i := range g.bySubject[termKey(subject)] {
		p := g.triples[i].P.Value
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Types returns the IRI values of rdf:type on subject.
func (g *Graph) Types(subject Term) []string {
	var out []string
	for _, v := range g.Values(subject, RDFType.Value) {
		if iri, ok := v.(IRI); ok {
			out = append(out, iri.Value)
		}
	}
	return out
}

// HasType reports whether subject is typed with typeIRI.
func (g *Graph) HasType(subject Term, typeIRI string) bool {
	for _, t := range g.Types(subject) {
		if t == typeIRI {
			return true
		}
	}
	return false
}

// AllIRIs returns every distinct IRI appearing in subject, predicate, object
// or datatype position, sorted.
func (g *Graph) AllIRIs() []string {
	if g == nil {
		return nil
	}
	seen := make(map[string]struct{})
	add := func(term Term) {
		switch v := term.(type) {
		case IRI:
			seen[v.Value] = struct{}{}
		case Literal:
			if v.Datatype.Value != "" {
				seen[v.Datatype.Value] = struct{}{}
			}
		}
	}
	for _, t := range g.triples {
		add(t.S)
		add(t.P)
		add(t.O)
	}
	out := make([]string, 0, len(seen))
	for iri := range seen {
		out = append(out, iri)
	}
	sort.Strings(out)
	return out
}

// Namespaces returns a copy of the prefix table recorded by the parser that
// produced the graph.
func (g *Graph) Namespaces() map[string]string {
	out := make(map[string]string)
	if g == nil {
		return out
	}
	for k, v := range g.namespaces {
		out[k] = v
	}
	return out
}

// SetNamespace records a prefix declaration seen in the source document.
func (g *Graph) SetNamespace(prefix, iri string) {
	if g.namespaces == nil {
		g.namespaces = make(map[string]string)
	}
	g.namespaces[prefix] = iri
}

// Dataset is a default graph plus any named graphs.
type Dataset struct {
	Default *Graph
	named   map[string]*Graph
	names   []string
}

// NewDataset returns a dataset with an empty default graph.
func NewDataset() *Dataset {
	return &Dataset{Default: NewGraph(), named: make(map[string]*Graph)}
}

// Add routes q to the default graph or to the named graph it carries.
func (d *Dataset) Add(q Quad) bool {
	if q.InDefaultGraph() {
		return d.Default.Add(q.ToTriple())
	}
	return d.Graph(q.G.String()).Add(q.ToTriple())
}

// Graph returns the named graph, creating it if needed.
func (d *Dataset) Graph(name string) *Graph {
	g, ok := d.named[name]
	if !ok {
		g = NewGraph()
		d.named[name] = g
		d.names = append(d.names, name)
	}
	return g
}

// GraphNames returns the named graph identifiers in first-seen order.
func (d *Dataset) GraphNames() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// SetNamespace records a prefix on the default graph and every named graph.
func (d *Dataset) SetNamespace(prefix, iri string) {
	d.Default.SetNamespace(prefix, iri)
	for _, g := range d.named {
		g.SetNamespace(prefix, iri)
	}
}
