package rdf

import (
	"context"
	"fmt"
	"io"

	ld "github.com/piprate/json-gold/ld"
)

// DefaultMaxLineBytes bounds a single N-Triples/N-Quads line.
const DefaultMaxLineBytes = 1 << 20

// Decoder pulls statements from an input. Next returns io.EOF when the input
// is exhausted.
type Decoder interface {
	Next() (Quad, error)
	Err() error
	Close() error
}

// namespaceReporter is implemented by decoders that see prefix declarations.
type namespaceReporter interface {
	Namespaces() map[string]string
}

// Option configures decoder behavior.
type Option func(*Options)

// Options configures parser behavior.
type Options struct {
	// Context for cancellation.
	Context context.Context
	// MaxLineBytes limits line-oriented formats. Zero or less disables it.
	MaxLineBytes int
	// MaxTriples limits the statements accepted by ParseDataset. Zero disables it.
	MaxTriples int64
	// BaseIRI resolves relative IRIs in Turtle, RDF/XML and JSON-LD.
	BaseIRI string
	// DocumentLoader resolves remote JSON-LD contexts. Nil uses json-gold's default loader.
	DocumentLoader ld.DocumentLoader
}

func defaultOptions() Options {
	return Options{MaxLineBytes: DefaultMaxLineBytes}
}

// OptContext sets the context for cancellation.
func OptContext(ctx context.Context) Option {
	return func(opts *Options) {
		opts.Context = ctx
	}
}

// OptMaxLineBytes sets the maximum line size limit.
func OptMaxLineBytes(maxBytes int) Option {
	return func(opts *Options) {
		opts.MaxLineBytes = maxBytes
	}
}

// OptMaxTriples sets the maximum number of statements to accept.
func OptMaxTriples(maxTriples int64) Option {
	return func(opts *Options) {
		opts.MaxTriples = maxTriples
	}
}

// OptBaseIRI sets the base IRI used to resolve relative references.
func OptBaseIRI(base string) Option {
	return func(opts *Options) {
		opts.BaseIRI = base
	}
}

// OptDocumentLoader sets the JSON-LD remote document loader.
func OptDocumentLoader(loader ld.DocumentLoader) Option {
	return func(opts *Options) {
		opts.DocumentLoader = loader
	}
}

// NewDecoder creates a decoder for the specified format.
func NewDecoder(r io.Reader, format Format, opts ...Option) (Decoder, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return newDecoder(r, format, options)
}

func newDecoder(r io.Reader, format Format, options Options) (Decoder, error) {
	switch format {
	case FormatNTriples, FormatNQuads:
		return newNTDecoder(r, format, options), nil
	case FormatTurtle:
		return newTurtleDecoder(r, options), nil
	case FormatRDFXML:
		return newRDFXMLDecoder(r, options), nil
	case FormatJSONLD:
		return newJSONLDDecoder(r, options), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ParseDataset decodes every statement of r into a dataset. Prefix
// declarations seen by the decoder are recorded on every graph.
// If ctx is nil, context.Background() is used as the default.
func ParseDataset(ctx context.Context, r io.Reader, format Format, opts ...Option) (*Dataset, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	options := defaultOptions()
	options.Context = ctx
	for _, opt := range opts {
		opt(&options)
	}
	dec, err := newDecoder(r, format, options)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	ds := NewDataset()
	var count int64
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		q, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		count++
		if options.MaxTriples > 0 && count > options.MaxTriples {
			return nil, wrapParseError(string(format), "", 0, 0, ErrTripleLimitExceeded)
		}
		ds.Add(q)
	}
	if reporter, ok := dec.(namespaceReporter); ok {
		for prefix, iri := range reporter.Namespaces() {
			ds.SetNamespace(prefix, iri)
		}
	}
	return ds, nil
}

// ParseGraph decodes r and returns its default graph. Statements in named
// graphs are dropped; use ParseDataset to keep them.
func ParseGraph(ctx context.Context, r io.Reader, format Format, opts ...Option) (*Graph, error) {
	ds, err := ParseDataset(ctx, r, format, opts...)
	if err != nil {
		return nil, err
	}
	return ds.Default, nil
}
