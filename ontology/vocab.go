package ontology

import "github.com/geoknoesis/ontology-go/rdf"

// Vocabulary terms read by the extractors.
const (
	rdfProperty = rdf.RDFNS + "Property"

	rdfsClass         = rdf.RDFSNS + "Class"
	rdfsDatatype      = rdf.RDFSNS + "Datatype"
	rdfsContainer     = rdf.RDFSNS + "Container"
	rdfsLiteral       = rdf.RDFSNS + "Literal"
	rdfsLabel         = rdf.RDFSNS + "label"
	rdfsComment       = rdf.RDFSNS + "comment"
	rdfsSubClassOf    = rdf.RDFSNS + "subClassOf"
	rdfsSubPropertyOf = rdf.RDFSNS + "subPropertyOf"
	rdfsDomain        = rdf.RDFSNS + "domain"
	rdfsRange         = rdf.RDFSNS + "range"
	rdfsSeeAlso       = rdf.RDFSNS + "seeAlso"
	rdfsIsDefinedBy   = rdf.RDFSNS + "isDefinedBy"

	owlClass               = rdf.OWLNS + "Class"
	owlRestriction         = rdf.OWLNS + "Restriction"
	owlDatatypeProperty    = rdf.OWLNS + "DatatypeProperty"
	owlObjectProperty      = rdf.OWLNS + "ObjectProperty"
	owlAnnotationProperty  = rdf.OWLNS + "AnnotationProperty"
	owlFunctionalProperty  = rdf.OWLNS + "FunctionalProperty"
	owlEquivalentClass     = rdf.OWLNS + "equivalentClass"
	owlDisjointWith        = rdf.OWLNS + "disjointWith"
	owlEquivalentProperty  = rdf.OWLNS + "equivalentProperty"
	owlInverseOf           = rdf.OWLNS + "inverseOf"
	owlDeprecated          = rdf.OWLNS + "deprecated"
	owlUnionOf             = rdf.OWLNS + "unionOf"
	owlIntersectionOf      = rdf.OWLNS + "intersectionOf"
	owlOnProperty          = rdf.OWLNS + "onProperty"
	owlOnClass             = rdf.OWLNS + "onClass"
	owlOnDataRange         = rdf.OWLNS + "onDataRange"

	shNodeShape     = rdf.SHNS + "NodeShape"
	shPropertyShape = rdf.SHNS + "PropertyShape"
	shProperty      = rdf.SHNS + "property"
	shPath          = rdf.SHNS + "path"
	shName          = rdf.SHNS + "name"
	shDescription   = rdf.SHNS + "description"
	shMessage       = rdf.SHNS + "message"

	xsdDateTime = rdf.XSDNS + "dateTime"
)

// classTypes are the rdf:type values that make a resource a class.
var classTypes = []string{rdfsClass, owlClass, rdfsDatatype, rdfsContainer, rdfsLiteral}

// propertyTypes are the rdf:type values that make a resource a property.
var propertyTypes = []string{rdfProperty, owlDatatypeProperty, owlObjectProperty, owlAnnotationProperty, owlFunctionalProperty}

// standardPredicates feed dedicated record fields and are never reported as
// annotations.
var standardPredicates = map[string]bool{
	rdf.RDFType.Value:     true,
	rdfsLabel:             true,
	rdfsComment:           true,
	rdfsSubClassOf:        true,
	owlEquivalentClass:    true,
	owlDisjointWith:       true,
	rdfsDomain:            true,
	rdfsRange:             true,
	rdfsSubPropertyOf:     true,
	owlEquivalentProperty: true,
	owlInverseOf:          true,
	owlDeprecated:         true,
}
