package rdf

import (
	"sync"
	"testing"
)

func TestNamespacesShortAndFull(t *testing.T) {
	ns := NewNamespaces(WellKnownNamespaces...)
	ns.RegisterPrefix("ex", "http://example.org/")
	ns.RegisterPrefix("exv", "http://example.org/vocab#")

	cases := []struct {
		full, short string
	}{
		{RDFNS + "type", "rdf:type"},
		{"http://example.org/vocab#term", "exv:term"},
		{"http://example.org/thing", "ex:thing"},
		{"urn:other", "urn:other"},
	}
	for _, c := range cases {
		if got := ns.ShortIRI(c.full); got != c.short {
			t.Fatalf("ShortIRI(%q) = %q, want %q", c.full, got, c.short)
		}
	}
	if got := ns.FullIRI("rdfs:label"); got != RDFSNS+"label" {
		t.Fatalf("unexpected expansion %q", got)
	}
	if got := ns.FullIRI("http://example.org/x"); got != "http://example.org/x" {
		t.Fatalf("full IRIs must pass through, got %q", got)
	}
	if got := ns.FullIRI("unknown:x"); got != "unknown:x" {
		t.Fatalf("unknown prefixes must pass through, got %q", got)
	}
}

func TestNamespacesShortIRIPrefersSmallestPrefixOnTie(t *testing.T) {
	for _, order := range [][]string{{"dcterms", "dct"}, {"dct", "dcterms"}} {
		ns := NewNamespaces()
		for _, pref := range order {
			ns.RegisterPrefix(pref, DCTermsNS)
		}
		for i := 0; i < 20; i++ {
			if got := ns.ShortIRI(DCTermsNS + "created"); got != "dct:created" {
				t.Fatalf("registration order %v: ShortIRI = %q, want dct:created", order, got)
			}
		}
	}
}

func TestNamespacesCloneIsIndependent(t *testing.T) {
	ns := NewNamespaces(Namespace{Prefix: "a", Full: "http://a/"})
	clone := ns.Clone()
	clone.RegisterPrefix("b", "http://b/")
	if _, ok := ns.Lookup("b"); ok {
		t.Fatal("clone mutation leaked into original")
	}
	if list := clone.List(); len(list) != 2 || list[0].Prefix != "a" {
		t.Fatalf("unexpected clone contents %v", list)
	}
}

func TestNamespacesConcurrentRegistration(t *testing.T) {
	var ns Namespaces
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ns.RegisterPrefix("sh", SHNS)
			_ = ns.ShortIRI(SHNS + "NodeShape")
		}()
	}
	wg.Wait()
	if full, _ := ns.Lookup("sh"); full != SHNS {
		t.Fatalf("unexpected sh binding %q", full)
	}
}

func TestGlobalRegistry(t *testing.T) {
	RegisterPrefix("globaltest", "http://global.example/")
	if got := ShortIRI("http://global.example/x"); got != "globaltest:x" {
		t.Fatalf("unexpected global short form %q", got)
	}
	if got := FullIRI("owl:Class"); got != OWLNS+"Class" {
		t.Fatalf("unexpected global expansion %q", got)
	}
}
