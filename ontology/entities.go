package ontology

// Provenance values for EntityMetadata.Source.
const (
	SourceGraph          = "graph"
	SourceFallbackRDFXML = "fallback_rdf_xml"
)

// Property kinds reported in PropertyRecord.PropertyType.
const (
	PropertyTypeObject     = "object"
	PropertyTypeDatatype   = "datatype"
	PropertyTypeAnnotation = "annotation"
)

// noLanguage keys untagged literals in multilingual maps.
const noLanguage = "none"

// Annotation is a predicate/value pair outside the standard vocabulary,
// kept so that callers can round-trip it.
type Annotation struct {
	Property string `json:"property"`
	Value    string `json:"value"`
	Language string `json:"language,omitempty"`
}

// EntityMetadata records where an entity came from.
type EntityMetadata struct {
	Source      string       `json:"source"`
	Types       []string     `json:"types"`
	Annotations []Annotation `json:"annotations"`
	SeeAlso     []string     `json:"see_also"`
	IsDefinedBy []string     `json:"is_defined_by"`
	ElementName string       `json:"element_name,omitempty"`
	BlankNodeID string       `json:"blank_node_id,omitempty"`
	Deprecated  bool         `json:"deprecated,omitempty"`
}

// ClassRecord describes a resource typed as a class. Label and Description
// are empty when no rdfs:label or rdfs:comment exists.
type ClassRecord struct {
	URI           string            `json:"uri"`
	Label         string            `json:"label"`
	Labels        map[string]string `json:"labels"`
	Description   string            `json:"description"`
	Descriptions  map[string]string `json:"descriptions"`
	ParentClasses []string          `json:"parent_classes"`
	Metadata      EntityMetadata    `json:"metadata"`
}

// PropertyRecord describes a resource typed as a property.
type PropertyRecord struct {
	URI              string            `json:"uri"`
	Label            string            `json:"label"`
	Labels           map[string]string `json:"labels"`
	Description      string            `json:"description"`
	Descriptions     map[string]string `json:"descriptions"`
	PropertyType     string            `json:"property_type"`
	IsFunctional     bool              `json:"is_functional"`
	Domain           []string          `json:"domain"`
	Range            []string          `json:"range"`
	ParentProperties []string          `json:"parent_properties"`
	InverseOf        []string          `json:"inverse_of"`
	Metadata         EntityMetadata    `json:"metadata"`
}

// PropertyShape is a nested sh:property constraint. Fields that were not
// declared are left at their zero value and omitted from JSON; counts are
// pointers so that an explicit zero survives.
type PropertyShape struct {
	Path         string            `json:"path"`
	Label        string            `json:"label,omitempty"`
	Labels       map[string]string `json:"labels,omitempty"`
	Datatype     string            `json:"datatype,omitempty"`
	NodeKind     string            `json:"node_kind,omitempty"`
	MinCount     *int              `json:"min_count,omitempty"`
	MaxCount     *int              `json:"max_count,omitempty"`
	MinLength    *int              `json:"min_length,omitempty"`
	MaxLength    *int              `json:"max_length,omitempty"`
	Pattern      string            `json:"pattern,omitempty"`
	Class        string            `json:"class,omitempty"`
	Message      string            `json:"message,omitempty"`
	Name         string            `json:"name,omitempty"`
	Description  string            `json:"description,omitempty"`
	Descriptions map[string]string `json:"descriptions,omitempty"`
}

// ShapeRecord describes a named sh:NodeShape or sh:PropertyShape.
type ShapeRecord struct {
	URI              string            `json:"uri"`
	Label            string            `json:"label"`
	Labels           map[string]string `json:"labels"`
	Description      string            `json:"description"`
	Descriptions     map[string]string `json:"descriptions"`
	TargetClass      string            `json:"target_class,omitempty"`
	TargetNode       string            `json:"target_node,omitempty"`
	TargetSubjectsOf string            `json:"target_subjects_of,omitempty"`
	TargetObjectsOf  string            `json:"target_objects_of,omitempty"`
	TargetProperty   string            `json:"target_property,omitempty"`
	PropertyShapes   []PropertyShape   `json:"property_shapes"`
	Constraints      map[string]string `json:"constraints"`
	Metadata         EntityMetadata    `json:"metadata"`
}

// RestrictionRecord is an owl:Restriction on a property together with the
// named classes that use it.
type RestrictionRecord struct {
	OnProperty string   `json:"on_property"`
	Kind       string   `json:"kind"`
	Value      string   `json:"value"`
	Classes    []string `json:"classes"`
}

// Result is everything extracted from one document.
type Result struct {
	Classes      map[string]ClassRecord     `json:"classes"`
	Properties   map[string]PropertyRecord  `json:"properties"`
	Prefixes     map[string]string          `json:"prefixes"`
	Shapes       map[string]ShapeRecord     `json:"shapes"`
	Restrictions []RestrictionRecord        `json:"restrictions"`
	Metadata     map[string]any             `json:"metadata"`
	RawContent   string                     `json:"raw_content"`
	Graphs       map[string]*ParsedDocument `json:"-"`
}
