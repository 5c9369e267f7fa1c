package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/geoknoesis/ontology-go/rdf"
)

const propertyTurtle = `@prefix ex: <http://example.org/> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .
@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

ex:owns a owl:ObjectProperty , owl:FunctionalProperty ;
    rdfs:label "owns"@en ;
    rdfs:domain [ owl:unionOf ( ex:Person ex:Organization [ a owl:Restriction ] ) ] ;
    rdfs:range ex:Thing ;
    rdfs:subPropertyOf ex:related ;
    owl:inverseOf ex:ownedBy .

ex:age a owl:DatatypeProperty ;
    rdfs:comment "The range of this property is an integer value." .

ex:note a owl:AnnotationProperty .

ex:title a rdf:Property ;
    rdfs:comment "Range: a plain literal."@en , "Otherwise a boolean range."@de .

_:p a rdf:Property .
`

func propertiesByURI(records []PropertyRecord) map[string]PropertyRecord {
	out := make(map[string]PropertyRecord, len(records))
	for _, r := range records {
		out[r.URI] = r
	}
	return out
}

func TestPropertyExtractor(t *testing.T) {
	doc := parseTestDocument(t, &TurtleHandler{}, propertyTurtle)
	props := propertiesByURI(NewPropertyExtractor(ExtractOptions{}).Extract(doc))
	require.Len(t, props, 4)

	owns := props["http://example.org/owns"]
	assert.Equal(t, PropertyTypeObject, owns.PropertyType)
	assert.True(t, owns.IsFunctional)
	assert.Equal(t, []string{"http://example.org/Person", "http://example.org/Organization"}, owns.Domain)
	assert.Equal(t, []string{"http://example.org/Thing"}, owns.Range)
	assert.Equal(t, []string{"http://example.org/related"}, owns.ParentProperties)
	assert.Equal(t, []string{"http://example.org/ownedBy"}, owns.InverseOf)
	assert.Equal(t, "owns", owns.Label)

	age := props["http://example.org/age"]
	assert.Equal(t, PropertyTypeDatatype, age.PropertyType)
	assert.False(t, age.IsFunctional)
	assert.Equal(t, []string{"http://www.w3.org/2001/XMLSchema#integer"}, age.Range)
	assert.NotNil(t, age.Domain)
	assert.Empty(t, age.Domain)

	assert.Equal(t, PropertyTypeAnnotation, props["http://example.org/note"].PropertyType)

	title := props["http://example.org/title"]
	assert.Equal(t, PropertyTypeDatatype, title.PropertyType, "plain rdf:Property defaults to datatype")
	assert.Equal(t, []string{rdf.RDFLangString.Value, rdf.XSDBoolean.Value}, title.Range)
}

func TestPropertyExtractorSkolemizes(t *testing.T) {
	doc := parseTestDocument(t, &TurtleHandler{}, propertyTurtle)
	props := propertiesByURI(NewPropertyExtractor(ExtractOptions{IncludeSkolemizedBlankNodes: true}).Extract(doc))
	assert.Len(t, props, 5)
	assert.Contains(t, props, SkolemPrefix+"p")
}

func TestRangeFromComments(t *testing.T) {
	cases := []struct {
		comment string
		want    []string
	}{
		{"The range of this property is an integer value", []string{rdf.XSDInteger.Value}},
		{"range is a language-tagged string", []string{rdf.RDFLangString.Value}},
		{"The range is rdfs:Literal", []string{rdf.XSDString.Value}},
		{"Its RANGE is xsd:string", []string{rdf.XSDString.Value}},
		{"range: xsd:dateTime", []string{xsdDateTime}},
		{"The range is boolean", []string{rdf.XSDBoolean.Value}},
		{"An integer without the magic word", []string{}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, rangeFromComments([]string{c.comment}), c.comment)
	}
	assert.Equal(t, []string{rdf.XSDInteger.Value},
		rangeFromComments([]string{"range: integer", "range is an integer"}), "values are deduplicated")
}

func TestPropertyKind(t *testing.T) {
	assert.Equal(t, PropertyTypeObject, propertyKind([]string{owlFunctionalProperty, owlObjectProperty}))
	assert.Equal(t, PropertyTypeDatatype, propertyKind([]string{owlAnnotationProperty, owlDatatypeProperty}))
	assert.Equal(t, PropertyTypeAnnotation, propertyKind([]string{owlAnnotationProperty}))
	assert.Equal(t, PropertyTypeDatatype, propertyKind(nil))
}

func TestListMembersStopsOnCycle(t *testing.T) {
	g := rdf.NewGraph()
	a, b := rdf.BlankNode{ID: "a"}, rdf.BlankNode{ID: "b"}
	g.Add(rdf.Triple{S: a, P: rdf.RDFFirst, O: rdf.IRI{Value: "http://example.org/one"}})
	g.Add(rdf.Triple{S: a, P: rdf.RDFRest, O: b})
	g.Add(rdf.Triple{S: b, P: rdf.RDFFirst, O: rdf.IRI{Value: "http://example.org/two"}})
	g.Add(rdf.Triple{S: b, P: rdf.RDFRest, O: a})

	core, logs := observer.New(zapcore.WarnLevel)
	tr := newTraverser(g, ExtractOptions{Logger: zap.New(core)})
	members := tr.listMembers(a)
	assert.Len(t, members, 2)
	assert.Equal(t, 1, logs.FilterMessage("cyclic rdf list").Len())
}

func TestListMembersHonoursLimitAndMissingRest(t *testing.T) {
	g := rdf.NewGraph()
	var prev rdf.Term
	for i := 0; i < 5; i++ {
		node := rdf.BlankNode{ID: string(rune('a' + i))}
		g.Add(rdf.Triple{S: node, P: rdf.RDFFirst, O: rdf.Literal{Lexical: node.ID}})
		if prev != nil {
			g.Add(rdf.Triple{S: prev, P: rdf.RDFRest, O: node})
		}
		prev = node
	}
	tr := newTraverser(g, ExtractOptions{MaxListLength: 3})
	assert.Len(t, tr.listMembers(rdf.BlankNode{ID: "a"}), 3)

	tr = newTraverser(g, ExtractOptions{})
	assert.Len(t, tr.listMembers(rdf.BlankNode{ID: "a"}), 5, "a node without rdf:rest ends the list")
}
