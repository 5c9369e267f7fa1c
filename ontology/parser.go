package ontology

import (
	"context"

	"go.uber.org/zap"

	"github.com/geoknoesis/ontology-go/rdf"
)

// Option configures a Parser.
type Option func(*Options)

// Options holds Parser settings.
type Options struct {
	Logger     *zap.Logger
	Config     Config
	Metrics    *Metrics
	Handlers   []Handler
	Namespaces *rdf.Namespaces
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(o *Options) {
		o.Config = cfg
	}
}

// WithMetrics records parse and extraction metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

// WithHandlers replaces the built-in handlers.
func WithHandlers(handlers ...Handler) Option {
	return func(o *Options) {
		o.Handlers = handlers
	}
}

// WithNamespaces sets the namespace registry used for compact names.
// NewParser registers the sh and dct prefixes on it.
func WithNamespaces(ns *rdf.Namespaces) Option {
	return func(o *Options) {
		o.Namespaces = ns
	}
}

// ParseOptions adjusts a single Parse call. Zero values fall back to the
// parser's Config.
type ParseOptions struct {
	// Format selects a handler by name or alias; empty means auto-detect.
	Format string
	// IncludeSkolemizedBlankNodes keeps or drops blank-node classes and
	// properties; nil uses Config.IncludeSkolemizedBlankNodes.
	IncludeSkolemizedBlankNodes *bool
	// PreferredLanguage overrides Config.PreferredLanguage.
	PreferredLanguage string
}

// Parser turns RDF text into a Result. It is safe for concurrent use.
type Parser struct {
	dispatcher *Dispatcher
	cfg        Config
	logger     *zap.Logger
	metrics    *Metrics
	namespaces *rdf.Namespaces
}

// NewParser returns a parser with the built-in handlers in the order
// JSON-LD, Turtle, N-Triples, RDF/XML.
func NewParser(opts ...Option) *Parser {
	o := Options{Config: DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	log := logger(o.Logger)
	if o.Namespaces == nil {
		o.Namespaces = rdf.DefaultNamespaces().Clone()
	}
	registerShapePrefixes(o.Namespaces)
	handlers := o.Handlers
	if handlers == nil {
		handlers = DefaultHandlers(o.Config, log)
	}
	return &Parser{
		dispatcher: NewDispatcher(log, o.Metrics, handlers...),
		cfg:        o.Config,
		logger:     log,
		metrics:    o.Metrics,
		namespaces: o.Namespaces,
	}
}

// Parse detects or selects the format of content, parses it and runs every
// extractor. Failures are *ParseError or *FormatDetectionError values.
func (p *Parser) Parse(ctx context.Context, content string, opts ParseOptions) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	doc, err := p.dispatcher.Parse(ctx, content, opts.Format)
	if err != nil {
		p.logger.Debug("parse failed", zap.String("format", opts.Format), zap.Error(err))
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := p.assemble(doc, p.extractOptions(opts))
	p.logger.Debug("ontology parsed",
		zap.String("format", doc.Format),
		zap.Int("classes", len(res.Classes)),
		zap.Int("properties", len(res.Properties)),
		zap.Int("shapes", len(res.Shapes)),
		zap.Int("prefixes", len(res.Prefixes)))
	return res, nil
}

// CanParse reports whether some handler recognizes content. It never panics.
func (p *Parser) CanParse(content string) bool {
	return p.dispatcher.CanParse(content)
}

// SupportedFormats lists the format names of the registered handlers in
// detection order.
func (p *Parser) SupportedFormats() []string {
	return p.dispatcher.SupportedFormats()
}

// RegisterHandler adds h ahead of all existing handlers.
func (p *Parser) RegisterHandler(h Handler) {
	p.dispatcher.Register(h)
}

// Namespaces returns the registry used for compact names.
func (p *Parser) Namespaces() *rdf.Namespaces {
	return p.namespaces
}

func (p *Parser) extractOptions(opts ParseOptions) ExtractOptions {
	lang := opts.PreferredLanguage
	if lang == "" {
		lang = p.cfg.PreferredLanguage
	}
	skolemize := p.cfg.IncludeSkolemizedBlankNodes
	if opts.IncludeSkolemizedBlankNodes != nil {
		skolemize = *opts.IncludeSkolemizedBlankNodes
	}
	return ExtractOptions{
		PreferredLanguage:           lang,
		IncludeSkolemizedBlankNodes: skolemize,
		MaxListLength:               p.cfg.MaxListLength,
		Namespaces:                  p.namespaces,
		InferCommonPrefixes:         p.cfg.CommonPrefixInference,
		Logger:                      p.logger,
	}
}

// assemble runs the extractors over doc and keys their output by URI. Later
// records with the same URI replace earlier ones.
func (p *Parser) assemble(doc *ParsedDocument, opts ExtractOptions) *Result {
	res := &Result{
		Classes:    make(map[string]ClassRecord),
		Properties: make(map[string]PropertyRecord),
		Shapes:     make(map[string]ShapeRecord),
		Metadata:   make(map[string]any),
		RawContent: doc.RawContent,
		Graphs:     make(map[string]*ParsedDocument),
	}

	res.Prefixes = NewPrefixExtractor(opts).Extract(doc)
	for _, c := range NewClassExtractor(opts).Extract(doc) {
		res.Classes[c.URI] = c
	}
	for _, prop := range NewPropertyExtractor(opts).Extract(doc) {
		res.Properties[prop.URI] = prop
	}
	for _, s := range NewShapeExtractor(opts).Extract(doc) {
		res.Shapes[s.URI] = s
	}
	res.Restrictions = NewRestrictionExtractor(opts).Extract(doc)
	if res.Restrictions == nil {
		res.Restrictions = make([]RestrictionRecord, 0)
	}
	for name, g := range doc.AdditionalGraphs() {
		res.Graphs[name] = g
	}

	for k, v := range doc.Metadata {
		if k == MetaXMLElement || k == MetaAdditionalGraphs {
			continue
		}
		res.Metadata[k] = v
	}
	res.Metadata["class_count"] = len(res.Classes)
	res.Metadata["property_count"] = len(res.Properties)
	res.Metadata["shape_count"] = len(res.Shapes)
	res.Metadata["restriction_count"] = len(res.Restrictions)
	res.Metadata["prefix_count"] = len(res.Prefixes)

	p.metrics.addEntities("class", len(res.Classes))
	p.metrics.addEntities("property", len(res.Properties))
	p.metrics.addEntities("shape", len(res.Shapes))
	p.metrics.addEntities("restriction", len(res.Restrictions))
	p.metrics.addEntities("prefix", len(res.Prefixes))
	return res
}
