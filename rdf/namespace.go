package rdf

import (
	"sort"
	"strings"
	"sync"
)

// Namespace is a prefix bound to a vocabulary IRI.
type Namespace struct {
	Prefix string
	Full   string
}

// Namespaces is a set of prefix bindings. The zero value is ready to use and
// safe for concurrent use.
type Namespaces struct {
	mu       sync.RWMutex
	prefixes map[string]string
}

// NewNamespaces returns a registry seeded with ns.
func NewNamespaces(ns ...Namespace) *Namespaces {
	p := &Namespaces{}
	for _, n := range ns {
		p.Register(n)
	}
	return p
}

// Register binds ns.Prefix to ns.Full, replacing any earlier binding.
func (p *Namespaces) Register(ns Namespace) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.prefixes == nil {
		p.prefixes = make(map[string]string)
	}
	p.prefixes[ns.Prefix] = ns.Full
}

// RegisterPrefix binds pref to ns.
func (p *Namespaces) RegisterPrefix(pref, ns string) {
	p.Register(Namespace{Prefix: pref, Full: ns})
}

// Lookup returns the IRI bound to prefix.
func (p *Namespaces) Lookup(prefix string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	full, ok := p.prefixes[prefix]
	return full, ok
}

// ShortIRI replaces the longest matching vocabulary IRI with its prefix.
//
//	ShortIRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type") // "rdf:type"
//
// The input is returned unchanged when no binding matches. When several
// prefixes bind the same namespace the lexically smallest one is used.
func (p *Namespaces) ShortIRI(iri string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	best, bestLen := "", 0
	for pref, full := range p.prefixes {
		if full == "" || len(full) < bestLen || !strings.HasPrefix(iri, full) {
			continue
		}
		if len(full) == bestLen && pref > best {
			continue
		}
		best, bestLen = pref, len(full)
	}
	if bestLen == 0 {
		return iri
	}
	return best + ":" + iri[bestLen:]
}

// FullIRI expands a compact name with a known prefix. Unknown prefixes and
// values that are already full IRIs are returned unchanged.
func (p *Namespaces) FullIRI(compact string) string {
	i := strings.IndexByte(compact, ':')
	if i < 0 || strings.HasPrefix(compact[i:], "://") {
		return compact
	}
	if full, ok := p.Lookup(compact[:i]); ok {
		return full + compact[i+1:]
	}
	return compact
}

// List returns every binding sorted by prefix.
func (p *Namespaces) List() []Namespace {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Namespace, 0, len(p.prefixes))
	for pref, full := range p.prefixes {
		out = append(out, Namespace{Prefix: pref, Full: full})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })
	return out
}

// Clone returns an independent copy.
func (p *Namespaces) Clone() *Namespaces {
	c := &Namespaces{}
	p.CloneTo(c)
	return c
}

// CloneTo adds every binding of p to dst.
func (p *Namespaces) CloneTo(dst *Namespaces) {
	for _, ns := range p.List() {
		dst.Register(ns)
	}
}

// WellKnownNamespaces are the vocabularies every registry starts with.
var WellKnownNamespaces = []Namespace{
	{Prefix: "rdf", Full: RDFNS},
	{Prefix: "rdfs", Full: RDFSNS},
	{Prefix: "owl", Full: OWLNS},
	{Prefix: "xsd", Full: XSDNS},
	{Prefix: "dc", Full: DCNS},
	{Prefix: "dcterms", Full: DCTermsNS},
	{Prefix: "foaf", Full: FOAFNS},
	{Prefix: "skos", Full: SKOSNS},
	{Prefix: "schema", Full: SchemaNS},
}

var global = NewNamespaces(WellKnownNamespaces...)

// DefaultNamespaces returns the process-wide registry.
func DefaultNamespaces() *Namespaces { return global }

// RegisterPrefix globally associates a given prefix with a vocabulary IRI.
func RegisterPrefix(pref, ns string) { global.RegisterPrefix(pref, ns) }

// ShortIRI shortens iri with the process-wide registry.
func ShortIRI(iri string) string { return global.ShortIRI(iri) }

// FullIRI expands compact with the process-wide registry.
func FullIRI(compact string) string { return global.FullIRI(compact) }
