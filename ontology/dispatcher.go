package ontology

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Canonical format names reported by the built-in handlers.
const (
	FormatJSONLD   = "json-ld"
	FormatTurtle   = "turtle"
	FormatNTriples = "n-triples"
	FormatRDFXML   = "rdf/xml"
)

var formatAliases = map[string]string{
	"ttl":                   FormatTurtle,
	"text/turtle":           FormatTurtle,
	"nt":                    FormatNTriples,
	"ntriples":              FormatNTriples,
	"application/n-triples": FormatNTriples,
	"xml":                   FormatRDFXML,
	"rdf":                   FormatRDFXML,
	"rdfxml":                FormatRDFXML,
	"owl":                   FormatRDFXML,
	"application/rdf+xml":   FormatRDFXML,
	"jsonld":                FormatJSONLD,
	"application/ld+json":   FormatJSONLD,
}

// normalizeFormat maps a format alias to its canonical handler name.
// Unknown names are returned lower-cased.
func normalizeFormat(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := formatAliases[name]; ok {
		return canonical
	}
	return name
}

// DefaultHandlers returns the built-in handlers in detection order.
func DefaultHandlers(cfg Config, log *zap.Logger) []Handler {
	return []Handler{
		&JSONLDHandler{Logger: log},
		&TurtleHandler{Logger: log},
		&NTriplesHandler{Logger: log, DetectionLineLimit: cfg.DetectionLineLimit},
		&RDFXMLHandler{Logger: log, ForceFallback: cfg.ForceXMLFallback},
	}
}

// Dispatcher selects a handler for a document, either by name or by asking
// each handler in order, and parses it. It is safe for concurrent use.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers []Handler
	logger   *zap.Logger
	metrics  *Metrics
}

// NewDispatcher returns a dispatcher trying handlers in the given order.
func NewDispatcher(log *zap.Logger, metrics *Metrics, handlers ...Handler) *Dispatcher {
	return &Dispatcher{
		handlers: append([]Handler(nil), handlers...),
		logger:   logger(log),
		metrics:  metrics,
	}
}

// Register adds h ahead of every handler already registered.
func (d *Dispatcher) Register(h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = append([]Handler{h}, d.handlers...)
}

// Handlers returns a snapshot of the handler list in detection order.
func (d *Dispatcher) Handlers() []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Handler(nil), d.handlers...)
}

// SupportedFormats lists the format names of all handlers in order, without
// duplicates.
func (d *Dispatcher) SupportedFormats() []string {
	var out []string
	seen := make(map[string]bool)
	for _, h := range d.Handlers() {
		name := h.FormatName()
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// Select returns the handler for content. A non-empty format selects by name
// without consulting CanHandle.
func (d *Dispatcher) Select(content, format string) (Handler, error) {
	handlers := d.Handlers()
	if format != "" {
		want := normalizeFormat(format)
		for _, h := range handlers {
			if h.FormatName() == want || normalizeFormat(h.FormatName()) == want {
				return h, nil
			}
		}
		return nil, &FormatDetectionError{Requested: format, Attempted: d.SupportedFormats()}
	}
	attempted := make([]string, 0, len(handlers))
	for _, h := range handlers {
		attempted = append(attempted, h.FormatName())
		if h.CanHandle(content) {
			return h, nil
		}
	}
	return nil, &FormatDetectionError{Attempted: attempted}
}

// Parse selects a handler and parses content. The returned document's
// metadata carries the handler's format name and the number of distinct
// subjects in its graph.
func (d *Dispatcher) Parse(ctx context.Context, content, format string) (*ParsedDocument, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &ParseError{Format: format, Err: ErrEmptyContent}
	}
	h, err := d.Select(content, format)
	if err != nil {
		d.metrics.observeParse(normalizeFormat(format), statusUndetected, 0)
		return nil, err
	}
	name := h.FormatName()
	d.logger.Debug("handler selected", zap.String("format", name), zap.String("requested", format))

	start := time.Now()
	doc, err := h.Parse(ctx, content)
	elapsed := time.Since(start)
	if err != nil {
		d.metrics.observeParse(name, statusError, elapsed)
		return nil, err
	}
	if doc == nil {
		d.metrics.observeParse(name, statusError, elapsed)
		return nil, &ParseError{Format: name, Err: errors.New("handler returned no document")}
	}
	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}
	doc.Metadata[MetaFormat] = name
	doc.Metadata[MetaResourceCount] = len(doc.Graph.Resources())
	doc.Metadata[MetaTripleCount] = doc.Graph.Len()
	doc.Metadata[MetaParseDurationMS] = durationMillis(start)
	d.metrics.observeParse(name, statusOK, elapsed)
	return doc, nil
}

// CanParse reports whether some handler claims content. It never panics.
func (d *Dispatcher) CanParse(content string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Warn("handler panicked during detection", zap.Any("panic", r))
			ok = false
		}
	}()
	if strings.TrimSpace(content) == "" {
		return false
	}
	_, err := d.Select(content, "")
	return err == nil
}
