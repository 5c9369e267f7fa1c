package ontology

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

var (
	xmlClassTags    = []string{"rdfs:Class", "owl:Class", "rdfs:Datatype"}
	xmlPropertyTags = []string{"rdf:Property", "owl:DatatypeProperty", "owl:ObjectProperty", "owl:AnnotationProperty", "owl:FunctionalProperty"}
)

// xmlReader extracts classes and properties straight from an RDF/XML tree
// when the graph parse was not usable.
type xmlReader struct {
	root *etree.Element
	opts ExtractOptions
	base string
}

func newXMLReader(root *etree.Element, opts ExtractOptions) *xmlReader {
	return &xmlReader{
		root: root,
		opts: opts.withDefaults(),
		base: root.SelectAttrValue("xml:base", ""),
	}
}

func (r *xmlReader) classes() []ClassRecord {
	var out []ClassRecord
	for _, el := range r.candidates(xmlClassTags, classTypes) {
		uri := r.subjectURI(el)
		label, labels := r.literals(el, "rdfs:label")
		desc, descs := r.literals(el, "rdfs:comment")
		out = append(out, ClassRecord{
			URI:           uri,
			Label:         label,
			Labels:        labels,
			Description:   desc,
			Descriptions:  descs,
			ParentClasses: r.resources(el, "rdfs:subClassOf"),
			Metadata:      r.metadata(el),
		})
	}
	r.opts.Logger.Debug("classes extracted from xml", zap.Int("count", len(out)))
	return out
}

func (r *xmlReader) properties() []PropertyRecord {
	var out []PropertyRecord
	for _, el := range r.candidates(xmlPropertyTags, propertyTypes) {
		uri := r.subjectURI(el)
		label, labels := r.literals(el, "rdfs:label")
		desc, descs := r.literals(el, "rdfs:comment")
		types := r.types(el)
		ranges := r.resources(el, "rdfs:range")
		if len(ranges) == 0 {
			ranges = rangeFromComments(r.texts(el, "rdfs:comment"))
		}
		out = append(out, PropertyRecord{
			URI:              uri,
			Label:            label,
			Labels:           labels,
			Description:      desc,
			Descriptions:     descs,
			PropertyType:     propertyKind(types),
			IsFunctional:     containsString(types, owlFunctionalProperty),
			Domain:           r.resources(el, "rdfs:domain"),
			Range:            ranges,
			ParentProperties: r.resources(el, "rdfs:subPropertyOf"),
			InverseOf:        r.resources(el, "owl:inverseOf"),
			Metadata:         r.metadata(el),
		})
	}
	r.opts.Logger.Debug("properties extracted from xml", zap.Int("count", len(out)))
	return out
}

// candidates returns elements named by one of tags, followed by
// rdf:Description elements whose rdf:type points at one of typeIRIs. Each
// subject is returned once; elements without an identifier are skipped.
func (r *xmlReader) candidates(tags, typeIRIs []string) []*etree.Element {
	var out []*etree.Element
	seen := make(map[string]bool)
	add := func(el *etree.Element) {
		uri := r.subjectURI(el)
		if uri == "" || seen[uri] {
			return
		}
		seen[uri] = true
		out = append(out, el)
	}
	for _, tag := range tags {
		if r.root.FullTag() == tag {
			add(r.root)
		}
		for _, el := range r.root.FindElements(".//" + tag) {
			add(el)
		}
	}
	for _, el := range r.root.FindElements(".//rdf:Description[rdf:type]") {
		for _, typ := range r.resources(el, "rdf:type") {
			if containsString(typeIRIs, typ) {
				add(el)
				break
			}
		}
	}
	return out
}

func (r *xmlReader) subjectURI(el *etree.Element) string {
	if about := el.SelectAttrValue("rdf:about", ""); about != "" {
		return about
	}
	if id := el.SelectAttrValue("rdf:ID", ""); id != "" {
		return r.base + "#" + id
	}
	return ""
}

// expandedName returns the IRI of an element or attribute name.
func (r *xmlReader) expandedName(el *etree.Element) string {
	if ns := el.NamespaceURI(); ns != "" {
		return ns + el.Tag
	}
	return r.opts.Namespaces.FullIRI(el.FullTag())
}

// types returns the element's own type, for typed node elements, and the
// targets of its rdf:type children.
func (r *xmlReader) types(el *etree.Element) []string {
	out := make([]string, 0)
	if el.FullTag() != "rdf:Description" {
		out = append(out, r.expandedName(el))
	}
	for _, typ := range r.resources(el, "rdf:type") {
		out = appendUnique(out, typ)
	}
	return out
}

// literals reads the text of child elements named tag keyed by xml:lang.
// The first untagged value is filed under "en" unless an English value was
// already seen.
func (r *xmlReader) literals(el *etree.Element, tag string) (string, map[string]string) {
	all := make(map[string]string)
	var order []string
	for _, child := range el.SelectElements(tag) {
		lang := child.SelectAttrValue("xml:lang", "")
		if lang == "" {
			lang = "en"
			if _, taken := all[lang]; taken {
				lang = noLanguage
			}
		}
		if _, dup := all[lang]; dup {
			continue
		}
		all[lang] = strings.TrimSpace(child.Text())
		order = append(order, lang)
	}
	return bestMatch(all, order, r.opts.PreferredLanguage), all
}

func (r *xmlReader) texts(el *etree.Element, tag string) []string {
	var out []string
	for _, child := range el.SelectElements(tag) {
		out = append(out, strings.TrimSpace(child.Text()))
	}
	return out
}

// resources returns the rdf:resource targets of child elements named tag,
// or the rdf:about of a nested node element. The result is never nil.
func (r *xmlReader) resources(el *etree.Element, tag string) []string {
	out := make([]string, 0)
	for _, child := range el.SelectElements(tag) {
		if res := child.SelectAttrValue("rdf:resource", ""); res != "" {
			out = appendUnique(out, res)
			continue
		}
		for _, nested := range child.ChildElements() {
			if uri := r.subjectURI(nested); uri != "" {
				out = appendUnique(out, uri)
			}
		}
	}
	return out
}

func (r *xmlReader) metadata(el *etree.Element) EntityMetadata {
	md := EntityMetadata{
		Source:      SourceFallbackRDFXML,
		Types:       r.types(el),
		Annotations: make([]Annotation, 0),
		SeeAlso:     r.resources(el, "rdfs:seeAlso"),
		IsDefinedBy: r.resources(el, "rdfs:isDefinedBy"),
		ElementName: el.FullTag(),
	}
	for _, child := range el.ChildElements() {
		name := r.expandedName(child)
		if standardPredicates[name] {
			continue
		}
		value := child.SelectAttrValue("rdf:resource", "")
		if value == "" {
			value = strings.TrimSpace(child.Text())
		}
		md.Annotations = append(md.Annotations, Annotation{
			Property: r.opts.Namespaces.ShortIRI(name),
			Value:    value,
			Language: child.SelectAttrValue("xml:lang", ""),
		})
	}
	for _, v := range r.texts(el, "owl:deprecated") {
		if v == "true" || v == "1" {
			md.Deprecated = true
		}
	}
	return md
}

// xmlRootNamespaces returns the xmlns:prefix declarations on root.
func xmlRootNamespaces(root *etree.Element) map[string]string {
	out := make(map[string]string)
	for _, attr := range root.Attr {
		if attr.Space == "xmlns" && attr.Value != "" {
			out[attr.Key] = attr.Value
		}
	}
	return out
}
