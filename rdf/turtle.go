package rdf

import (
	"context"
	"fmt"
	"io"
	"strings"
)

type turtleDecoder struct {
	r      io.Reader
	ctx    context.Context
	cursor *turtleCursor
	queue  []Triple
	err    error
}

func newTurtleDecoder(r io.Reader, opts Options) Decoder {
	return &turtleDecoder{r: r, ctx: opts.Context, cursor: &turtleCursor{
		prefixes: map[string]string{},
		base:     opts.BaseIRI,
	}}
}

func (d *turtleDecoder) Next() (Quad, error) {
	if d.err != nil {
		return Quad{}, d.err
	}
	if d.r != nil {
		data, err := io.ReadAll(d.r)
		d.r = nil
		if err != nil {
			d.err = err
			return Quad{}, err
		}
		d.cursor.input = string(data)
	}
	for len(d.queue) == 0 {
		if err := checkDecodeContext(d.ctx); err != nil {
			d.err = err
			return Quad{}, err
		}
		d.cursor.skipWS()
		if d.cursor.pos >= len(d.cursor.input) {
			return Quad{}, io.EOF
		}
		if err := d.cursor.parseStatement(); err != nil {
			d.err = err
			return Quad{}, err
		}
		d.queue = append(d.queue, d.cursor.out...)
		d.cursor.out = d.cursor.out[:0]
	}
	next := d.queue[0]
	d.queue = d.queue[1:]
	return Quad{S: next.S, P: next.P, O: next.O}, nil
}

func (d *turtleDecoder) Err() error   { return d.err }
func (d *turtleDecoder) Close() error { return nil }

// Namespaces returns the prefixes declared so far.
func (d *turtleDecoder) Namespaces() map[string]string {
	out := make(map[string]string, len(d.cursor.prefixes))
	for k, v := range d.cursor.prefixes {
		out[k] = v
	}
	return out
}

type turtleCursor struct {
	input            string
	pos              int
	prefixes         map[string]string
	base             string
	out              []Triple
	blankNodeCounter int
}

// skipWS skips whitespace and comments.
func (c *turtleCursor) skipWS() {
	for c.pos < len(c.input) {
		switch c.input[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		case '#':
			for c.pos < len(c.input) && c.input[c.pos] != '\n' {
				c.pos++
			}
		default:
			return
		}
	}
}

func (c *turtleCursor) consume(ch byte) bool {
	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] == ch {
		c.pos++
		return true
	}
	return false
}

func (c *turtleCursor) peek() byte {
	if c.pos >= len(c.input) {
		return 0
	}
	return c.input[c.pos]
}

func (c *turtleCursor) peekNext() byte {
	if c.pos+1 >= len(c.input) {
		return 0
	}
	return c.input[c.pos+1]
}

// hasKeyword reports whether the input at the cursor starts with kw followed
// by a token boundary. Matching is case-insensitive when fold is set.
func (c *turtleCursor) hasKeyword(kw string, fold bool) bool {
	end := c.pos + len(kw)
	if end > len(c.input) {
		return false
	}
	word := c.input[c.pos:end]
	if fold && !strings.EqualFold(word, kw) || !fold && word != kw {
		return false
	}
	return end == len(c.input) || isTurtleWS(c.input[end]) || c.input[end] == '<'
}

func (c *turtleCursor) parseStatement() error {
	switch {
	case c.hasKeyword("@prefix", false):
		c.pos += len("@prefix")
		return c.parsePrefixDirective(true)
	case c.hasKeyword("PREFIX", true):
		c.pos += len("PREFIX")
		return c.parsePrefixDirective(false)
	case c.hasKeyword("@base", false):
		c.pos += len("@base")
		return c.parseBaseDirective(true)
	case c.hasKeyword("BASE", true):
		c.pos += len("BASE")
		return c.parseBaseDirective(false)
	}
	return c.parseTriples()
}

func (c *turtleCursor) parsePrefixDirective(dotted bool) error {
	c.skipWS()
	start := c.pos
	for c.pos < len(c.input) && c.input[c.pos] != ':' && !isTurtleWS(c.input[c.pos]) {
		c.pos++
	}
	if c.peek() != ':' {
		return c.errorf("expected ':' in prefix declaration")
	}
	prefix := c.input[start:c.pos]
	c.pos++
	iri, err := c.parseIRIRef()
	if err != nil {
		return err
	}
	c.prefixes[prefix] = iri.Value
	if dotted && !c.consume('.') {
		return c.errorf("expected '.' after @prefix")
	}
	return nil
}

func (c *turtleCursor) parseBaseDirective(dotted bool) error {
	iri, err := c.parseIRIRef()
	if err != nil {
		return err
	}
	c.base = iri.Value
	if dotted && !c.consume('.') {
		return c.errorf("expected '.' after @base")
	}
	return nil
}

func (c *turtleCursor) parseTriples() error {
	c.skipWS()
	var subject Term
	var err error
	switch c.peek() {
	case '[':
		subject, err = c.parseBlankNodePropertyList()
		if err != nil {
			return err
		}
		c.skipWS()
		if c.peek() == '.' {
			c.pos++
			return nil
		}
	case '(':
		subject, err = c.parseCollection()
	default:
		subject, err = c.parseTerm(false)
	}
	if err != nil {
		return err
	}
	if err := c.parsePredicateObjectList(subject); err != nil {
		return err
	}
	if !c.consume('.') {
		return c.errorf("expected '.' at end of statement")
	}
	return nil
}

func (c *turtleCursor) parsePredicateObjectList(subject Term) error {
	for {
		predicate, err := c.parsePredicate()
		if err != nil {
			return err
		}
		if err := c.parseObjectList(subject, predicate); err != nil {
			return err
		}
		c.skipWS()
		if c.peek() != ';' {
			return nil
		}
		for c.consume(';') {
		}
		c.skipWS()
		// Trailing ';' before the statement or list terminator.
		if ch := c.peek(); ch == '.' || ch == ']' || ch == 0 {
			return nil
		}
	}
}

func (c *turtleCursor) parseObjectList(subject Term, predicate IRI) error {
	for {
		object, err := c.parseObject()
		if err != nil {
			return err
		}
		c.out = append(c.out, Triple{S: subject, P: predicate, O: object})
		if !c.consume(',') {
			return nil
		}
	}
}

func (c *turtleCursor) parsePredicate() (IRI, error) {
	c.skipWS()
	if c.peek() == 'a' {
		next := c.peekNext()
		if next == 0 || isTurtleWS(next) || next == '<' || next == '[' || next == '(' || next == '"' {
			c.pos++
			return RDFType, nil
		}
	}
	term, err := c.parseTerm(false)
	if err != nil {
		return IRI{}, err
	}
	iri, ok := term.(IRI)
	if !ok {
		return IRI{}, c.errorf("predicate must be an IRI, got %s", term)
	}
	return iri, nil
}

func (c *turtleCursor) parseObject() (Term, error) {
	c.skipWS()
	switch c.peek() {
	case '[':
		return c.parseBlankNodePropertyList()
	case '(':
		return c.parseCollection()
	}
	return c.parseTerm(true)
}

func (c *turtleCursor) parseTerm(allowLiteral bool) (Term, error) {
	c.skipWS()
	if c.pos >= len(c.input) {
		return nil, c.errorf("unexpected end of input")
	}
	ch := c.peek()
	switch {
	case ch == '<':
		return c.parseIRIRef()
	case ch == '_' && c.peekNext() == ':':
		return c.parseBlankNode()
	case ch == '"' || ch == '\'':
		if !allowLiteral {
			return nil, c.errorf("literal not allowed here")
		}
		return c.parseLiteral(ch)
	case allowLiteral && (ch == '+' || ch == '-' || ch == '.' || (ch >= '0' && ch <= '9')):
		if lit, ok := c.tryParseNumericLiteral(); ok {
			return lit, nil
		}
		return nil, c.errorf("invalid numeric literal")
	case allowLiteral && (c.hasWord("true") || c.hasWord("false")):
		value := "true"
		if ch == 'f' {
			value = "false"
		}
		c.pos += len(value)
		return Literal{Lexical: value, Datatype: XSDBoolean}, nil
	}
	return c.parsePrefixedName()
}

func (c *turtleCursor) hasWord(word string) bool {
	if !strings.HasPrefix(c.input[c.pos:], word) {
		return false
	}
	end := c.pos + len(word)
	return end == len(c.input) || isTurtleTerminator(c.input[end], peekAt(c.input, end+1))
}

func (c *turtleCursor) parseIRIRef() (IRI, error) {
	if !c.consume('<') {
		return IRI{}, c.errorf("expected IRI")
	}
	start := c.pos
	for c.pos < len(c.input) && c.input[c.pos] != '>' {
		if isTurtleWS(c.input[c.pos]) {
			return IRI{}, c.errorf("whitespace in IRI")
		}
		c.pos++
	}
	if c.pos >= len(c.input) {
		return IRI{}, c.errorf("unterminated IRI")
	}
	value, err := UnescapeString(c.input[start:c.pos])
	if err != nil {
		return IRI{}, c.errorf("IRI: %v", err)
	}
	c.pos++
	return IRI{Value: resolveIRI(c.base, value)}, nil
}

func (c *turtleCursor) parsePrefixedName() (Term, error) {
	start := c.pos
	for c.pos < len(c.input) && c.input[c.pos] != ':' {
		ch := c.input[c.pos]
		if isTurtleTerminator(ch, c.peekNext()) || ch == '#' {
			return nil, c.errorf("unexpected token %q", c.input[start:c.pos+1])
		}
		c.pos++
	}
	if c.pos >= len(c.input) {
		return nil, c.errorf("unexpected end of input")
	}
	prefix := c.input[start:c.pos]
	ns, ok := c.prefixes[prefix]
	if !ok {
		return nil, c.errorf("undefined prefix %q", prefix)
	}
	c.pos++
	local, err := c.readLocalName()
	if err != nil {
		return nil, err
	}
	return IRI{Value: ns + local}, nil
}

// readLocalName reads a PN_LOCAL, decoding backslash escapes. A '.' is part
// of the name only when it is not the last character.
func (c *turtleCursor) readLocalName() (string, error) {
	var b strings.Builder
	for c.pos < len(c.input) {
		ch := c.input[c.pos]
		if ch == '\\' {
			if c.pos+1 >= len(c.input) {
				return "", c.errorf("unterminated escape in local name")
			}
			b.WriteByte(c.input[c.pos+1])
			c.pos += 2
			continue
		}
		if isTurtleTerminator(ch, c.peekNext()) || ch == '#' {
			break
		}
		b.WriteByte(ch)
		c.pos++
	}
	return b.String(), nil
}

func (c *turtleCursor) parseBlankNode() (Term, error) {
	c.pos += 2
	start := c.pos
	for c.pos < len(c.input) && !isTurtleTerminator(c.input[c.pos], c.peekNext()) {
		c.pos++
	}
	if start == c.pos {
		return nil, c.errorf("blank node id missing")
	}
	return BlankNode{ID: c.input[start:c.pos]}, nil
}

func (c *turtleCursor) newBlankNode() BlankNode {
	c.blankNodeCounter++
	return BlankNode{ID: fmt.Sprintf("genid%d", c.blankNodeCounter)}
}

func (c *turtleCursor) parseLiteral(quote byte) (Term, error) {
	long := strings.HasPrefix(c.input[c.pos:], strings.Repeat(string(quote), 3))
	delim := string(quote)
	if long {
		delim = strings.Repeat(delim, 3)
	}
	c.pos += len(delim)
	start := c.pos
	for {
		if c.pos >= len(c.input) {
			return nil, c.errorf("unterminated string literal")
		}
		ch := c.input[c.pos]
		if ch == '\\' {
			c.pos += 2
			continue
		}
		if !long && (ch == '\n' || ch == '\r') {
			return nil, c.errorf("newline in string literal")
		}
		if strings.HasPrefix(c.input[c.pos:], delim) {
			break
		}
		c.pos++
	}
	lexical, err := UnescapeString(c.input[start:c.pos])
	if err != nil {
		return nil, c.errorf("string literal: %v", err)
	}
	c.pos += len(delim)
	if c.peek() == '@' {
		c.pos++
		tagStart := c.pos
		for c.pos < len(c.input) && (isAlnum(c.input[c.pos]) || c.input[c.pos] == '-') {
			c.pos++
		}
		if tagStart == c.pos {
			return nil, c.errorf("empty language tag")
		}
		return Literal{Lexical: lexical, Lang: c.input[tagStart:c.pos]}, nil
	}
	if strings.HasPrefix(c.input[c.pos:], "^^") {
		c.pos += 2
		dt, err := c.parseTerm(false)
		if err != nil {
			return nil, err
		}
		iri, ok := dt.(IRI)
		if !ok {
			return nil, c.errorf("datatype must be an IRI")
		}
		return Literal{Lexical: lexical, Datatype: iri}, nil
	}
	return Literal{Lexical: lexical}, nil
}

func (c *turtleCursor) tryParseNumericLiteral() (Literal, bool) {
	start := c.pos
	i := c.pos
	if i < len(c.input) && (c.input[i] == '+' || c.input[i] == '-') {
		i++
	}
	digits := func() int {
		n := 0
		for i < len(c.input) && c.input[i] >= '0' && c.input[i] <= '9' {
			i++
			n++
		}
		return n
	}
	intDigits := digits()
	datatype := XSDInteger
	if i+1 < len(c.input) && c.input[i] == '.' && c.input[i+1] >= '0' && c.input[i+1] <= '9' {
		i++
		digits()
		datatype = XSDDecimal
	} else if intDigits == 0 {
		return Literal{}, false
	}
	if i < len(c.input) && (c.input[i] == 'e' || c.input[i] == 'E') {
		j := i
		i++
		if i < len(c.input) && (c.input[i] == '+' || c.input[i] == '-') {
			i++
		}
		if digits() == 0 {
			i = j
		} else {
			datatype = XSDDouble
		}
	}
	c.pos = i
	return Literal{Lexical: c.input[start:i], Datatype: datatype}, true
}

// parseCollection parses (object*) into an rdf:first/rdf:rest chain and
// returns its head.
func (c *turtleCursor) parseCollection() (Term, error) {
	if !c.consume('(') {
		return nil, c.errorf("expected '('")
	}
	var items []Term
	for {
		c.skipWS()
		if c.pos >= len(c.input) {
			return nil, c.errorf("unterminated collection")
		}
		if c.peek() == ')' {
			c.pos++
			break
		}
		item, err := c.parseObject()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return RDFNil, nil
	}
	head := c.newBlankNode()
	current := head
	for i, item := range items {
		c.out = append(c.out, Triple{S: current, P: RDFFirst, O: item})
		if i == len(items)-1 {
			c.out = append(c.out, Triple{S: current, P: RDFRest, O: RDFNil})
			break
		}
		next := c.newBlankNode()
		c.out = append(c.out, Triple{S: current, P: RDFRest, O: next})
		current = next
	}
	return head, nil
}

// parseBlankNodePropertyList parses [predicateObjectList] and returns the new
// blank node.
func (c *turtleCursor) parseBlankNodePropertyList() (Term, error) {
	if !c.consume('[') {
		return nil, c.errorf("expected '['")
	}
	bn := c.newBlankNode()
	if c.consume(']') {
		return bn, nil
	}
	if err := c.parsePredicateObjectList(bn); err != nil {
		return nil, err
	}
	if !c.consume(']') {
		return nil, c.errorf("expected ']'")
	}
	return bn, nil
}

func (c *turtleCursor) errorf(format string, args ...interface{}) error {
	pos := c.pos
	if pos > len(c.input) {
		pos = len(c.input)
	}
	lineStart := strings.LastIndexByte(c.input[:pos], '\n') + 1
	lineEnd := strings.IndexByte(c.input[pos:], '\n')
	if lineEnd < 0 {
		lineEnd = len(c.input)
	} else {
		lineEnd += pos
	}
	return &ParseError{
		Format:    string(FormatTurtle),
		Statement: c.input[lineStart:lineEnd],
		Line:      strings.Count(c.input[:pos], "\n") + 1,
		Column:    pos - lineStart + 1,
		Err:       fmt.Errorf(format, args...),
	}
}

func isTurtleWS(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isAlnum(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

func isTurtleTerminator(ch byte, next byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', ';', ',', '(', ')', '[', ']', '<', '>', '"', '\'':
		return true
	case '.':
		// Dot is a terminator only if followed by whitespace, a delimiter or EOF.
		switch next {
		case 0, ' ', '\t', '\r', '\n', ';', ',', ')', ']', '#':
			return true
		default:
			return false
		}
	default:
		return false
	}
}

func peekAt(s string, i int) byte {
	if i >= len(s) {
		return 0
	}
	return s[i]
}
