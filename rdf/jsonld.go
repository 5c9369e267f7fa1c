package rdf

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	ld "github.com/piprate/json-gold/ld"
)

// jsonldDecoder converts the whole document to RDF with json-gold, serializes
// the dataset as N-Quads and reads it back with the N-Quads decoder.
type jsonldDecoder struct {
	r          io.Reader
	opts       Options
	inner      Decoder
	namespaces map[string]string
	err        error
}

func newJSONLDDecoder(r io.Reader, opts Options) Decoder {
	return &jsonldDecoder{r: r, opts: opts, namespaces: map[string]string{}}
}

func (d *jsonldDecoder) Next() (Quad, error) {
	if d.err != nil {
		return Quad{}, d.err
	}
	if d.inner == nil {
		nquads, err := d.toNQuads()
		if err != nil {
			d.err = wrapParseError(string(FormatJSONLD), "", 0, 0, err)
			return Quad{}, d.err
		}
		d.inner = newNTDecoder(strings.NewReader(nquads), FormatNQuads, Options{Context: d.opts.Context})
	}
	q, err := d.inner.Next()
	if err != nil && err != io.EOF {
		d.err = wrapParseError(string(FormatJSONLD), "", 0, 0, err)
		return Quad{}, d.err
	}
	return q, err
}

func (d *jsonldDecoder) Err() error   { return d.err }
func (d *jsonldDecoder) Close() error { return nil }

// Namespaces returns the prefix-like @context entries of the document.
func (d *jsonldDecoder) Namespaces() map[string]string {
	out := make(map[string]string, len(d.namespaces))
	for k, v := range d.namespaces {
		out[k] = v
	}
	return out
}

func (d *jsonldDecoder) toNQuads() (string, error) {
	if err := checkDecodeContext(d.opts.Context); err != nil {
		return "", err
	}
	var doc interface{}
	if err := json.NewDecoder(d.r).Decode(&doc); err != nil {
		return "", err
	}
	d.collectContextPrefixes(doc)

	proc := ld.NewJsonLdProcessor()
	goldOpts := newJSONGoldOptions(d.opts)
	result, err := proc.ToRDF(doc, goldOpts)
	if err != nil {
		return "", err
	}
	dataset, ok := result.(*ld.RDFDataset)
	if !ok {
		return "", fmt.Errorf("jsonld: unexpected ToRDF result %T", result)
	}
	serialized, err := (&ld.NQuadRDFSerializer{}).Serialize(dataset)
	if err != nil {
		return "", err
	}
	nquads, ok := serialized.(string)
	if !ok {
		return "", fmt.Errorf("jsonld: unexpected N-Quads result %T", serialized)
	}
	return nquads, nil
}

func newJSONGoldOptions(opts Options) *ld.JsonLdOptions {
	goldOpts := ld.NewJsonLdOptions(opts.BaseIRI)
	if opts.DocumentLoader != nil {
		goldOpts.DocumentLoader = opts.DocumentLoader
	}
	return goldOpts
}

// collectContextPrefixes records @context terms that map to a namespace IRI
// (one ending in '/' or '#').
func (d *jsonldDecoder) collectContextPrefixes(doc interface{}) {
	var walk func(ctx interface{})
	walk = func(ctx interface{}) {
		switch v := ctx.(type) {
		case []interface{}:
			for _, item := range v {
				walk(item)
			}
		case map[string]interface{}:
			for term, value := range v {
				iri, ok := value.(string)
				if !ok || strings.HasPrefix(term, "@") || !hasScheme(iri) {
					continue
				}
				if strings.HasSuffix(iri, "/") || strings.HasSuffix(iri, "#") {
					d.namespaces[term] = iri
				}
			}
		}
	}
	var roots []interface{}
	switch v := doc.(type) {
	case map[string]interface{}:
		roots = append(roots, v)
	case []interface{}:
		roots = v
	}
	for _, root := range roots {
		if obj, ok := root.(map[string]interface{}); ok {
			walk(obj["@context"])
		}
	}
}
