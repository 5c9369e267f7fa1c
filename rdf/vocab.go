package rdf

// Namespace IRIs used by the parsers and graph helpers.
const (
	RDFNS     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNS    = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNS     = "http://www.w3.org/2002/07/owl#"
	XSDNS     = "http://www.w3.org/2001/XMLSchema#"
	SHNS      = "http://www.w3.org/ns/shacl#"
	DCNS      = "http://purl.org/dc/elements/1.1/"
	DCTermsNS = "http://purl.org/dc/terms/"
	FOAFNS    = "http://xmlns.com/foaf/0.1/"
	SKOSNS    = "http://www.w3.org/2004/02/skos/core#"
	SchemaNS  = "http://schema.org/"
	xmlNS     = "http://www.w3.org/XML/1998/namespace"
)

// Frequently used RDF vocabulary terms.
var (
	RDFType       = IRI{Value: RDFNS + "type"}
	RDFFirst      = IRI{Value: RDFNS + "first"}
	RDFRest       = IRI{Value: RDFNS + "rest"}
	RDFNil        = IRI{Value: RDFNS + "nil"}
	RDFLangString = IRI{Value: RDFNS + "langString"}
	RDFXMLLiteral = IRI{Value: RDFNS + "XMLLiteral"}
	XSDString     = IRI{Value: XSDNS + "string"}
	XSDInteger    = IRI{Value: XSDNS + "integer"}
	XSDDecimal    = IRI{Value: XSDNS + "decimal"}
	XSDDouble     = IRI{Value: XSDNS + "double"}
	XSDBoolean    = IRI{Value: XSDNS + "boolean"}
)
