package ontology

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/geoknoesis/ontology-go/rdf"
)

func TestParserInfersUndeclaredCommonPrefixes(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:A a <http://www.w3.org/2000/01/rdf-schema#Class> .
`
	res, err := NewParser().Parse(context.Background(), input, ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/", res.Prefixes["ex"])
	assert.Equal(t, rdf.RDFSNS, res.Prefixes["rdfs"])
	assert.NotContains(t, res.Prefixes, "owl", "owl is never used")
}

func TestPrefixExtractorWithoutInference(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:A a <http://www.w3.org/2000/01/rdf-schema#Class> .
`
	doc := parseTestDocument(t, &TurtleHandler{}, input)
	prefixes := NewPrefixExtractor(ExtractOptions{}).Extract(doc)
	assert.Equal(t, map[string]string{"ex": "http://example.org/"}, prefixes)
}

func TestPrefixExtractorInferenceNeverReplaces(t *testing.T) {
	input := `@prefix rdfs: <http://example.org/not-rdfs#> .
<http://example.org/A> a <http://www.w3.org/2000/01/rdf-schema#Class> .
`
	doc := parseTestDocument(t, &TurtleHandler{}, input)
	prefixes := NewPrefixExtractor(ExtractOptions{InferCommonPrefixes: true}).Extract(doc)
	assert.Equal(t, "http://example.org/not-rdfs#", prefixes["rdfs"])
	assert.Equal(t, rdf.RDFNS, prefixes["rdf"])
}

func TestContentPrefixesTurtle(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
@PREFIX foaf: <http://xmlns.com/foaf/0.1/> .
PREFIX schema: <https://schema.org/>
@prefix : <http://example.org/default#> .
`
	got := contentPrefixes("ttl", input)
	assert.Equal(t, "http://example.org/", got["ex"])
	assert.Equal(t, "http://xmlns.com/foaf/0.1/", got["foaf"])
	assert.Equal(t, "https://schema.org/", got["schema"])
	assert.Equal(t, "http://example.org/default#", got[""])
}

func TestContentPrefixesRDFXML(t *testing.T) {
	input := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex='http://example.org/'/>`
	got := contentPrefixes(FormatRDFXML, input)
	assert.Equal(t, map[string]string{"rdf": rdf.RDFNS, "ex": "http://example.org/"}, got)
	assert.Empty(t, contentPrefixes(FormatNTriples, input))
}

func TestJSONLDContextPrefixesKeepURLsOnly(t *testing.T) {
	input := `{
  "@context": {
    "@vocab": "http://example.org/vocab#",
    "ex": "http://example.org/",
    "name": "http://xmlns.com/foaf/0.1/name",
    "knows": {"@id": "http://xmlns.com/foaf/0.1/knows", "@type": "@id"},
    "label": "title"
  },
  "@id": "http://example.org/a",
  "name": "Alice"
}`
	doc := parseTestDocument(t, &JSONLDHandler{}, input)
	prefixes := NewPrefixExtractor(ExtractOptions{}).Extract(doc)
	assert.Equal(t, map[string]string{
		"ex":   "http://example.org/",
		"name": "http://xmlns.com/foaf/0.1/name",
	}, prefixes)
}

func TestJSONLDContextPrefixesInvalidJSON(t *testing.T) {
	assert.Empty(t, jsonldContextPrefixes("{not json"))
}

func TestPrefixMergeLogsRedefinition(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := NewPrefixExtractor(ExtractOptions{Logger: zap.New(core)})
	dst := map[string]string{"ex": "http://example.org/a#"}
	e.merge(dst, map[string]string{"ex": "http://example.org/b#", "": "http://example.org/", "x": ""}, "content")

	assert.Equal(t, map[string]string{"ex": "http://example.org/b#"}, dst)
	entries := logs.FilterMessage("prefix redefined").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "http://example.org/a#", entries[0].ContextMap()["previous"])
}

func TestPrefixExtractorNilDocument(t *testing.T) {
	prefixes := NewPrefixExtractor(ExtractOptions{}).Extract(nil)
	assert.NotNil(t, prefixes)
	assert.Empty(t, prefixes)
}
