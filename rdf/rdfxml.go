package rdf

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

type rdfxmlDecoder struct {
	parser *rdfxmlParser
	ctx    context.Context
	parsed bool
	queue  []Triple
	err    error
}

func newRDFXMLDecoder(r io.Reader, opts Options) Decoder {
	return &rdfxmlDecoder{
		ctx: opts.Context,
		parser: &rdfxmlParser{
			dec:        xml.NewDecoder(r),
			base:       opts.BaseIRI,
			namespaces: map[string]string{},
		},
	}
}

func (d *rdfxmlDecoder) Next() (Quad, error) {
	if d.err != nil {
		return Quad{}, d.err
	}
	if !d.parsed {
		d.parsed = true
		if err := checkDecodeContext(d.ctx); err != nil {
			d.err = err
			return Quad{}, err
		}
		if err := d.parser.parseDocument(); err != nil {
			d.err = err
			return Quad{}, err
		}
		d.queue = d.parser.out
	}
	if len(d.queue) == 0 {
		return Quad{}, io.EOF
	}
	next := d.queue[0]
	d.queue = d.queue[1:]
	return Quad{S: next.S, P: next.P, O: next.O}, nil
}

func (d *rdfxmlDecoder) Err() error   { return d.err }
func (d *rdfxmlDecoder) Close() error { return nil }

// Namespaces returns the xmlns:prefix declarations seen in the document.
func (d *rdfxmlDecoder) Namespaces() map[string]string {
	out := make(map[string]string, len(d.parser.namespaces))
	for k, v := range d.parser.namespaces {
		out[k] = v
	}
	return out
}

// rdfxmlParser walks the RDF/XML node and property element grammar
// recursively. xml:base and xml:lang are inherited through the scope passed
// down each call.
type rdfxmlParser struct {
	dec        *xml.Decoder
	base       string
	out        []Triple
	namespaces map[string]string
	counter    int
}

type xmlScope struct {
	base string
	lang string
}

func (p *rdfxmlParser) parseDocument() error {
	root := xmlScope{base: p.base}
	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return p.errorf("%v", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Space == RDFNS && start.Name.Local == "RDF" {
			return p.readNodeElems(start, p.enter(start, root))
		}
		// A document may consist of a single top-level node element.
		_, err = p.readNodeElem(start, root)
		return err
	}
}

// enter records namespace declarations and returns the scope of start.
func (p *rdfxmlParser) enter(start xml.StartElement, parent xmlScope) xmlScope {
	scope := parent
	for _, attr := range start.Attr {
		switch {
		case attr.Name.Space == "xmlns":
			if _, seen := p.namespaces[attr.Name.Local]; !seen {
				p.namespaces[attr.Name.Local] = attr.Value
			}
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			if _, seen := p.namespaces[""]; !seen {
				p.namespaces[""] = attr.Value
			}
		case attr.Name.Space == xmlNS && attr.Name.Local == "base":
			scope.base = resolveIRI(parent.base, attr.Value)
		case attr.Name.Space == xmlNS && attr.Name.Local == "lang":
			scope.lang = attr.Value
		}
	}
	return scope
}

func (p *rdfxmlParser) readNodeElems(parent xml.StartElement, scope xmlScope) error {
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return p.errorf("reading children of %s: %v", parent.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if _, err := p.readNodeElem(t, scope); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (p *rdfxmlParser) readNodeElem(start xml.StartElement, parent xmlScope) (Term, error) {
	scope := p.enter(start, parent)
	subject, err := p.nodeSubject(start, scope)
	if err != nil {
		return nil, err
	}
	if name := xmlNameIRI(start.Name); name != RDFNS+"Description" {
		p.emit(subject, RDFType.Value, IRI{Value: name})
	}
	p.emitPropertyAttrs(subject, start, scope)
	if err := p.readPropertyElems(subject, scope); err != nil {
		return nil, err
	}
	return subject, nil
}

func (p *rdfxmlParser) nodeSubject(start xml.StartElement, scope xmlScope) (Term, error) {
	var subject Term
	for _, attr := range start.Attr {
		if attr.Name.Space != RDFNS {
			continue
		}
		var next Term
		switch attr.Name.Local {
		case "about":
			next = IRI{Value: resolveIRI(scope.base, attr.Value)}
		case "ID":
			next = IRI{Value: resolveIRI(scope.base, "#"+attr.Value)}
		case "nodeID":
			next = BlankNode{ID: attr.Value}
		default:
			continue
		}
		if subject != nil {
			return nil, p.errorf("ambiguous subject: %s and %s", subject, next)
		}
		subject = next
	}
	if subject == nil {
		subject = p.newBlankNode()
	}
	return subject, nil
}

// emitPropertyAttrs adds a statement for every property attribute on start.
func (p *rdfxmlParser) emitPropertyAttrs(subject Term, start xml.StartElement, scope xmlScope) {
	for _, attr := range start.Attr {
		if !isPropertyAttr(attr.Name) {
			continue
		}
		predicate := xmlNameIRI(attr.Name)
		if predicate == RDFType.Value {
			p.emit(subject, predicate, IRI{Value: resolveIRI(scope.base, attr.Value)})
			continue
		}
		p.emit(subject, predicate, Literal{Lexical: attr.Value, Lang: scope.lang})
	}
}

func (p *rdfxmlParser) readPropertyElems(subject Term, scope xmlScope) error {
	li := 1
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return p.errorf("reading properties of %s: %v", subject, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := p.readPropertyElem(subject, t, scope, &li); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (p *rdfxmlParser) readPropertyElem(subject Term, start xml.StartElement, parent xmlScope, li *int) error {
	scope := p.enter(start, parent)
	predicate := xmlNameIRI(start.Name)
	if predicate == RDFNS+"li" {
		predicate = fmt.Sprintf("%s_%d", RDFNS, *li)
		*li++
	}

	switch attrValue(start.Attr, RDFNS, "parseType") {
	case "":
	case "Resource":
		bn := p.newBlankNode()
		p.emit(subject, predicate, bn)
		return p.readPropertyElems(bn, scope)
	case "Collection":
		return p.readCollection(subject, predicate, scope)
	default:
		// "Literal" and unknown parse types keep the raw XML content.
		inner, err := p.readInnerXML()
		if err != nil {
			return err
		}
		p.emit(subject, predicate, Literal{Lexical: inner, Datatype: RDFXMLLiteral})
		return nil
	}

	if res, ok := findAttr(start.Attr, RDFNS, "resource"); ok {
		object := IRI{Value: resolveIRI(scope.base, res)}
		p.emit(subject, predicate, object)
		p.emitPropertyAttrs(object, start, scope)
		return p.skipElement()
	}
	if id, ok := findAttr(start.Attr, RDFNS, "nodeID"); ok {
		object := BlankNode{ID: id}
		p.emit(subject, predicate, object)
		p.emitPropertyAttrs(object, start, scope)
		return p.skipElement()
	}
	if hasPropertyAttrs(start) {
		object := p.newBlankNode()
		p.emit(subject, predicate, object)
		p.emitPropertyAttrs(object, start, scope)
		return p.skipElement()
	}

	var text strings.Builder
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return p.errorf("reading property %s: %v", predicate, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			if strings.TrimSpace(text.String()) != "" {
				return p.errorf("property %s mixes text and a node element", predicate)
			}
			object, err := p.readNodeElem(t, scope)
			if err != nil {
				return err
			}
			p.emit(subject, predicate, object)
			return p.skipElement()
		case xml.EndElement:
			lit := Literal{Lexical: text.String()}
			if dt, ok := findAttr(start.Attr, RDFNS, "datatype"); ok {
				lit.Datatype = IRI{Value: resolveIRI(scope.base, dt)}
			} else {
				lit.Lang = scope.lang
			}
			p.emit(subject, predicate, lit)
			return nil
		}
	}
}

func (p *rdfxmlParser) readCollection(subject Term, predicate string, scope xmlScope) error {
	var items []Term
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return p.errorf("reading collection %s: %v", predicate, err)
		}
		if t, ok := tok.(xml.StartElement); ok {
			item, err := p.readNodeElem(t, scope)
			if err != nil {
				return err
			}
			items = append(items, item)
			continue
		}
		if _, ok := tok.(xml.EndElement); ok {
			break
		}
	}
	if len(items) == 0 {
		p.emit(subject, predicate, RDFNil)
		return nil
	}
	head := p.newBlankNode()
	p.emit(subject, predicate, head)
	current := head
	for i, item := range items {
		p.emit(current, RDFFirst.Value, item)
		if i == len(items)-1 {
			p.emit(current, RDFRest.Value, RDFNil)
			break
		}
		next := p.newBlankNode()
		p.emit(current, RDFRest.Value, next)
		current = next
	}
	return nil
}

// skipElement consumes tokens up to the end of the current element.
func (p *rdfxmlParser) skipElement() error {
	if err := p.dec.Skip(); err != nil {
		return p.errorf("%v", err)
	}
	return nil
}

func (p *rdfxmlParser) readInnerXML() (string, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	depth := 0
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return "", p.errorf("reading literal content: %v", err)
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				if err := enc.Flush(); err != nil {
					return "", err
				}
				return buf.String(), nil
			}
			depth--
		}
		if err := enc.EncodeToken(xml.CopyToken(tok)); err != nil {
			return "", p.errorf("encoding literal content: %v", err)
		}
	}
}

func (p *rdfxmlParser) emit(subject Term, predicate string, object Term) {
	p.out = append(p.out, Triple{S: subject, P: IRI{Value: predicate}, O: object})
}

func (p *rdfxmlParser) newBlankNode() BlankNode {
	p.counter++
	return BlankNode{ID: fmt.Sprintf("genid%d", p.counter)}
}

func (p *rdfxmlParser) errorf(format string, args ...interface{}) error {
	line, column := p.dec.InputPos()
	return &ParseError{Format: string(FormatRDFXML), Line: line, Column: column, Err: fmt.Errorf(format, args...)}
}

func xmlNameIRI(name xml.Name) string {
	return name.Space + name.Local
}

// isPropertyAttr reports whether an attribute carries a statement rather than
// RDF/XML syntax or XML namespace machinery.
func isPropertyAttr(name xml.Name) bool {
	switch name.Space {
	case "", "xmlns", xmlNS:
		return false
	case RDFNS:
		switch name.Local {
		case "about", "ID", "nodeID", "resource", "datatype", "parseType", "li", "Description", "RDF":
			return false
		}
	}
	return true
}

func hasPropertyAttrs(start xml.StartElement) bool {
	for _, attr := range start.Attr {
		if isPropertyAttr(attr.Name) {
			return true
		}
	}
	return false
}

func findAttr(attrs []xml.Attr, space, local string) (string, bool) {
	for _, attr := range attrs {
		if attr.Name.Space == space && attr.Name.Local == local {
			return attr.Value, true
		}
	}
	return "", false
}

func attrValue(attrs []xml.Attr, space, local string) string {
	value, _ := findAttr(attrs, space, local)
	return value
}
