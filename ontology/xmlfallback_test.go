package ontology

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/geoknoesis/ontology-go/rdf"
)

const xmlFallbackDocument = `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
         xmlns:owl="http://www.w3.org/2002/07/owl#"
         xmlns:dc="http://purl.org/dc/elements/1.1/"
         xml:base="http://example.org/onto">
  <owl:Class rdf:about="http://example.org/Person">
    <rdfs:label>Person</rdfs:label>
    <rdfs:label xml:lang="fr">Personne</rdfs:label>
    <rdfs:comment>A human being.</rdfs:comment>
    <rdfs:subClassOf rdf:resource="http://example.org/Agent"/>
    <dc:creator>Alice</dc:creator>
    <owl:deprecated>true</owl:deprecated>
  </owl:Class>
  <owl:Class rdf:ID="Agent"/>
  <rdf:Description rdf:about="http://example.org/Document">
    <rdf:type rdf:resource="http://www.w3.org/2002/07/owl#Class"/>
    <rdfs:label xml:lang="en">Document</rdfs:label>
  </rdf:Description>
  <owl:ObjectProperty rdf:about="http://example.org/knows">
    <rdfs:domain rdf:resource="http://example.org/Person"/>
    <rdfs:range rdf:resource="http://example.org/Person"/>
  </owl:ObjectProperty>
  <owl:DatatypeProperty rdf:about="http://example.org/age">
    <rdfs:comment>The range is an integer.</rdfs:comment>
  </owl:DatatypeProperty>
</rdf:RDF>
`

// mixedContentRDFXML is well-formed XML that the RDF/XML grammar rejects.
const mixedContentRDFXML = `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:owl="http://www.w3.org/2002/07/owl#"
         xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#">
  <owl:Class rdf:about="http://example.org/Broken">
    <rdfs:label>Broken</rdfs:label>
    <rdfs:subClassOf>text<rdf:Description rdf:about="http://example.org/Other"/></rdfs:subClassOf>
  </owl:Class>
</rdf:RDF>
`

func TestRDFXMLHandlerParsesGraph(t *testing.T) {
	doc := parseTestDocument(t, &RDFXMLHandler{}, xmlFallbackDocument)
	assert.False(t, doc.isXMLFallback())
	_, ok := doc.XMLElement()
	assert.False(t, ok)
	assert.True(t, doc.Graph.HasType(rdf.IRI{Value: "http://example.org/Person"}, owlClass))
}

func TestRDFXMLHandlerFallsBackOnGrammarError(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	doc := parseTestDocument(t, &RDFXMLHandler{Logger: zap.New(core)}, mixedContentRDFXML)

	assert.True(t, doc.isXMLFallback())
	assert.True(t, doc.Graph.IsEmpty())
	assert.Equal(t, true, doc.Metadata[MetaFallback])
	assert.NotEmpty(t, doc.Metadata[MetaFallbackReason])
	root, ok := doc.XMLElement()
	require.True(t, ok)
	assert.Equal(t, "rdf:RDF", root.FullTag())
	assert.Equal(t, 1, logs.Len())

	classes := NewClassExtractor(ExtractOptions{}).Extract(doc)
	require.Len(t, classes, 1)
	assert.Equal(t, "http://example.org/Broken", classes[0].URI)
	assert.Equal(t, "Broken", classes[0].Label)
	assert.Equal(t, []string{"http://example.org/Other"}, classes[0].ParentClasses)
}

func TestRDFXMLHandlerRejectsMalformedXML(t *testing.T) {
	_, err := (&RDFXMLHandler{}).Parse(context.Background(), `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"><oops></rdf:RDF>`)
	var perr *ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Equal(t, FormatRDFXML, perr.Format)
}

func TestXMLFallbackClasses(t *testing.T) {
	doc := parseTestDocument(t, &RDFXMLHandler{ForceFallback: true}, xmlFallbackDocument)
	assert.NotContains(t, doc.Metadata, MetaFallbackReason)
	classes := classesByURI(NewClassExtractor(ExtractOptions{}).Extract(doc))
	require.Len(t, classes, 3)

	person := classes["http://example.org/Person"]
	assert.Equal(t, "Person", person.Label)
	assert.Equal(t, map[string]string{"en": "Person", "fr": "Personne"}, person.Labels)
	assert.Equal(t, "A human being.", person.Description)
	assert.Equal(t, []string{"http://example.org/Agent"}, person.ParentClasses)

	md := person.Metadata
	assert.Equal(t, SourceFallbackRDFXML, md.Source)
	assert.Equal(t, "owl:Class", md.ElementName)
	assert.Equal(t, []string{owlClass}, md.Types)
	assert.True(t, md.Deprecated)
	assert.Equal(t, []Annotation{{Property: "dc:creator", Value: "Alice"}}, md.Annotations)

	assert.Contains(t, classes, "http://example.org/onto#Agent")

	document := classes["http://example.org/Document"]
	assert.Equal(t, "Document", document.Label)
	assert.Equal(t, "rdf:Description", document.Metadata.ElementName)
	assert.Equal(t, []string{owlClass}, document.Metadata.Types)
}

func TestXMLFallbackProperties(t *testing.T) {
	doc := parseTestDocument(t, &RDFXMLHandler{ForceFallback: true}, xmlFallbackDocument)
	props := propertiesByURI(NewPropertyExtractor(ExtractOptions{}).Extract(doc))
	require.Len(t, props, 2)

	knows := props["http://example.org/knows"]
	assert.Equal(t, PropertyTypeObject, knows.PropertyType)
	assert.Equal(t, []string{"http://example.org/Person"}, knows.Domain)
	assert.Equal(t, []string{"http://example.org/Person"}, knows.Range)

	age := props["http://example.org/age"]
	assert.Equal(t, PropertyTypeDatatype, age.PropertyType)
	assert.Equal(t, []string{rdf.XSDInteger.Value}, age.Range)
}

func TestXMLFallbackUntaggedLiteralAfterEnglish(t *testing.T) {
	doc := parseTestDocument(t, &RDFXMLHandler{ForceFallback: true}, `<rdf:RDF
    xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
    xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#">
  <rdfs:Class rdf:about="http://example.org/C">
    <rdfs:label xml:lang="en">Colour</rdfs:label>
    <rdfs:label>Color</rdfs:label>
  </rdfs:Class>
</rdf:RDF>`)
	classes := NewClassExtractor(ExtractOptions{}).Extract(doc)
	require.Len(t, classes, 1)
	assert.Equal(t, map[string]string{"en": "Colour", "none": "Color"}, classes[0].Labels)
}

func TestParserXMLFallbackResult(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ForceXMLFallback = true
	res, err := NewParser(WithConfig(cfg)).Parse(context.Background(), xmlFallbackDocument, ParseOptions{})
	require.NoError(t, err)

	assert.Len(t, res.Classes, 3)
	assert.Len(t, res.Properties, 2)
	assert.Empty(t, res.Shapes)
	assert.Empty(t, res.Restrictions)
	assert.Equal(t, "http://purl.org/dc/elements/1.1/", res.Prefixes["dc"])
	assert.Equal(t, rdf.OWLNS, res.Prefixes["owl"])
	assert.Equal(t, true, res.Metadata[MetaFallback])
	assert.NotContains(t, res.Metadata, MetaXMLElement)
}
