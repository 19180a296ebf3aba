package uid

import (
	"sort"
	"strings"
)

const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// propertySeparator marks property-element syntax (<Button.Content>); such
// elements are not addressable and never receive an identifier.
const propertySeparator = "."

type attribute struct {
	name  string
	pos   Position
	raw   string
	quote byte
}

type scope struct {
	name     string
	bindings map[string]string // prefix -> namespace, "" for the default namespace
}

type scanner struct {
	cur    *cursor
	opts   Options
	doc    *Document
	scopes []scope
}

// Scan tokenizes content and returns its identifier sites in document order,
// the root element position and every declared namespace prefix.
//
// Scan is a single forward pass. It skips comments, CDATA sections,
// processing instructions and DOCTYPE declarations, and checks only what it
// needs: tags are terminated, attributes are quoted, end tags match.
func Scan(content string, opts Options) (*Document, error) {
	s := &scanner{
		cur:  newCursor(content),
		opts: opts,
		doc:  newDocument(opts),
	}
	if err := s.run(); err != nil {
		return nil, err
	}
	return s.doc, nil
}

func (s *scanner) run() error {
	c := s.cur
	for !c.eof() {
		if c.peek() != '<' {
			c.advance()
			continue
		}

		var err error
		switch {
		case c.hasPrefix("<!--"):
			err = s.skipPast("<!--", "-->", "comment")
		case c.hasPrefix("<![CDATA["):
			err = s.skipPast("<![CDATA[", "]]>", "CDATA section")
		case c.hasPrefix("<?"):
			err = s.skipPast("<?", "?>", "processing instruction")
		case c.hasPrefix("<!"):
			err = s.skipDirective()
		case c.hasPrefix("</"):
			err = s.endTag()
		default:
			err = s.startTag()
		}
		if err != nil {
			return err
		}
	}

	if len(s.scopes) > 0 {
		open := s.scopes[len(s.scopes)-1].name
		return &MalformedDocumentError{
			Position: c.pos(),
			Message:  "element <" + open + "> is not closed",
			Hint:     "Every start tag needs a matching end tag or must be self-closing (<" + open + " />).",
		}
	}
	if !s.doc.HasRoot {
		return malformed(c.pos(), "missing root element")
	}
	return nil
}

func (s *scanner) skipPast(open, close, what string) error {
	c := s.cur
	start := c.pos()
	c.advanceN(len(open))
	for !c.hasPrefix(close) {
		if c.eof() {
			return malformed(start, "unterminated %s", what)
		}
		c.advance()
	}
	c.advanceN(len(close))
	return nil
}

// skipDirective skips <!DOCTYPE ...> including an internal subset in brackets.
func (s *scanner) skipDirective() error {
	c := s.cur
	start := c.pos()
	c.advanceN(2)
	depth := 0
	var quote byte
	for !c.eof() {
		ch := c.peek()
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '[':
			depth++
		case ch == ']':
			depth--
		case ch == '>' && depth <= 0:
			c.advance()
			return nil
		}
		c.advance()
	}
	return malformed(start, "unterminated declaration")
}

func (s *scanner) skipSpace() bool {
	skipped := false
	for !s.cur.eof() && isSpace(s.cur.peek()) {
		s.cur.advance()
		skipped = true
	}
	return skipped
}

func (s *scanner) readName() string {
	c := s.cur
	start := c.off
	for !c.eof() && isNameByte(c.peek()) {
		c.advanceN(1)
	}
	return c.src[start:c.off]
}

func (s *scanner) endTag() error {
	c := s.cur
	start := c.pos()
	c.advanceN(2)
	name := s.readName()
	if name == "" {
		return malformed(c.pos(), "expected element name in end tag")
	}
	s.skipSpace()
	if c.peek() != '>' {
		return malformed(c.pos(), "expected '>' to close end tag </%s>", name)
	}
	c.advance()

	if len(s.scopes) == 0 {
		return malformed(start, "unexpected end tag </%s>", name)
	}
	if open := s.scopes[len(s.scopes)-1].name; open != name {
		return &MalformedDocumentError{
			Position: start,
			Message:  "end tag </" + name + "> does not match start tag <" + open + ">",
			Hint:     "Check that elements are closed in the reverse order they were opened.",
		}
	}
	s.scopes = s.scopes[:len(s.scopes)-1]
	return nil
}

func (s *scanner) startTag() error {
	c := s.cur
	c.advance()
	name := s.readName()
	if name == "" {
		return malformed(c.pos(), "expected element name after '<'")
	}
	nameEnd := c.pos()

	var attrs []attribute
	seen := make(map[string]struct{})
	selfClosing := false

	for {
		spaced := s.skipSpace()
		if c.eof() {
			return malformed(nameEnd, "unterminated start tag <%s>", name)
		}
		if c.hasPrefix("/>") {
			c.advanceN(2)
			selfClosing = true
			break
		}
		if c.peek() == '>' {
			c.advance()
			break
		}
		if !spaced {
			return malformed(c.pos(), "expected whitespace before attribute in <%s>", name)
		}

		attr, err := s.readAttribute(name)
		if err != nil {
			return err
		}
		if _, dup := seen[attr.name]; dup {
			return malformed(attr.pos, "attribute %s appears twice on <%s>", attr.name, name)
		}
		seen[attr.name] = struct{}{}
		attrs = append(attrs, attr)
	}

	s.push(name, attrs)
	s.reserve(name, attrs)
	if !s.doc.HasRoot {
		s.doc.Root = nameEnd
		s.doc.HasRoot = true
	}
	err := s.collect(name, nameEnd, attrs)
	if selfClosing {
		s.scopes = s.scopes[:len(s.scopes)-1]
	}
	return err
}

func (s *scanner) readAttribute(element string) (attribute, error) {
	c := s.cur
	attr := attribute{pos: c.pos()}
	attr.name = s.readName()
	if attr.name == "" {
		return attr, malformed(c.pos(), "expected attribute name in <%s>", element)
	}
	s.skipSpace()
	if c.peek() != '=' {
		return attr, malformed(c.pos(), "expected '=' after attribute %s", attr.name)
	}
	c.advance()
	s.skipSpace()

	quote := c.peek()
	if quote != '"' && quote != '\'' {
		return attr, &MalformedDocumentError{
			Position: c.pos(),
			Message:  "value of attribute " + attr.name + " is not quoted",
			Hint:     "Attribute values must be enclosed in single or double quotes.",
		}
	}
	start := c.pos()
	c.advance()
	from := c.off
	for c.peek() != quote {
		if c.eof() {
			return attr, malformed(start, "unterminated value of attribute %s", attr.name)
		}
		c.advance()
	}
	attr.raw = c.src[from:c.off]
	attr.quote = quote
	c.advance()
	return attr, nil
}

func (s *scanner) push(name string, attrs []attribute) {
	sc := scope{name: name}
	for _, a := range attrs {
		var prefix string
		switch {
		case a.name == "xmlns":
			prefix = ""
		case strings.HasPrefix(a.name, "xmlns:"):
			prefix = a.name[len("xmlns:"):]
			s.doc.Declared[prefix] = struct{}{}
		default:
			continue
		}
		if sc.bindings == nil {
			sc.bindings = make(map[string]string)
		}
		// Declarations rarely carry references; keep the raw text if decoding fails.
		uri, err := decodeValue(a.raw)
		if err != nil {
			uri = a.raw
		}
		sc.bindings[prefix] = uri
	}
	s.scopes = append(s.scopes, sc)
}

// reserve adds the prefixes used on the element and attribute names to the
// declared set, whether or not they are bound, so a prefix chosen for new
// identifiers never collides with one already written in the file.
func (s *scanner) reserve(name string, attrs []attribute) {
	add := func(qname string) {
		prefix, _ := splitName(qname)
		if prefix != "" && prefix != "xml" && prefix != "xmlns" {
			s.doc.Declared[prefix] = struct{}{}
		}
	}
	add(name)
	for _, a := range attrs {
		add(a.name)
	}
}

// lookup resolves prefix against the innermost declaration in scope.
func (s *scanner) lookup(prefix string) (string, bool) {
	if prefix == "xml" {
		return xmlNamespace, true
	}
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if uri, ok := s.scopes[i].bindings[prefix]; ok {
			return uri, true
		}
	}
	return "", false
}

// prefixFor returns a prefix currently bound to namespace, innermost first,
// skipping prefixes shadowed by a nearer declaration.
func (s *scanner) prefixFor(namespace string) string {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		bindings := s.scopes[i].bindings
		prefixes := make([]string, 0, len(bindings))
		for p, uri := range bindings {
			if p != "" && uri == namespace {
				prefixes = append(prefixes, p)
			}
		}
		sort.Strings(prefixes)
		for _, p := range prefixes {
			if uri, _ := s.lookup(p); uri == namespace {
				return p
			}
		}
	}
	return ""
}

func splitName(name string) (prefix, local string) {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

func (s *scanner) collect(name string, nameEnd Position, attrs []attribute) error {
	_, local := splitName(name)
	if strings.Contains(local, propertySeparator) {
		return nil
	}

	site := Site{Element: local, QName: name}
	if len(attrs) == 0 {
		site.Position = nameEnd
		site.Spacing = SpaceBefore
	} else {
		site.Position = attrs[0].pos
		site.Spacing = SpaceAfter
	}

	for _, a := range attrs {
		if a.name == "xmlns" || strings.HasPrefix(a.name, "xmlns:") {
			continue
		}
		prefix, attrLocal := splitName(a.name)
		inNamespace := false
		if prefix != "" {
			uri, _ := s.lookup(prefix)
			inNamespace = uri == s.opts.Namespace
		}

		switch {
		case inNamespace && attrLocal == s.opts.Attribute:
			value, err := decodeValue(a.raw)
			if err != nil {
				return malformed(a.pos, "attribute %s: %v", a.name, err)
			}
			site.Value = value
			site.HasValue = true
			site.AttrName = a.name
			site.Quote = a.quote
			site.Position = a.pos
		case attrLocal == s.opts.NameAttribute && (prefix == "" || inNamespace):
			if site.Candidate != "" {
				continue
			}
			value, err := decodeValue(a.raw)
			if err != nil {
				return malformed(a.pos, "attribute %s: %v", a.name, err)
			}
			site.Candidate = value
		}
	}

	if !site.HasAttribute() {
		site.Prefix = s.prefixFor(s.opts.Namespace)
	}

	s.doc.Sites = append(s.doc.Sites, site)
	return nil
}
