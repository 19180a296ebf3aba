package uid

import (
	"strings"
)

// Mode selects the edits the rewriter applies.
type Mode int

const (
	// ModeUpdate inserts missing identifiers and replaces duplicate values.
	ModeUpdate Mode = iota
	// ModeRemove deletes every identifier attribute that has a value. Empty
	// attributes classified Absent are left as they are.
	ModeRemove
)

type rewriter struct {
	cur     *cursor
	out     strings.Builder
	doc     *Document
	changed bool
}

// Rewrite replays the document's sites against content and returns the new
// text. Everything between edit points is copied byte for byte. The boolean is
// false when no edit was needed, in which case content is returned unchanged.
//
// Sites must be in ascending position order, as produced by Scan, and
// classified by Validate; Remove leaves Absent sites alone. Any mismatch
// between recorded positions and the text yields a
// *RewriteSynchronizationError and no output.
func Rewrite(content string, doc *Document, mode Mode) (string, bool, error) {
	w := &rewriter{cur: newCursor(content), doc: doc}
	w.out.Grow(len(content) + len(doc.Sites)*24)

	if err := w.run(mode); err != nil {
		return "", false, err
	}
	if !w.changed {
		return content, false, nil
	}
	w.out.WriteString(w.cur.rest())
	return w.out.String(), true, nil
}

func (w *rewriter) run(mode Mode) error {
	opts := w.doc.opts

	if mode == ModeUpdate && w.doc.NewPrefix != "" {
		if err := w.copyTo(w.doc.Root); err != nil {
			return err
		}
		w.out.WriteString(" xmlns:" + w.doc.NewPrefix + `="` + escapeValue(opts.Namespace) + `"`)
		w.changed = true
	}

	for i := range w.doc.Sites {
		site := &w.doc.Sites[i]
		var err error
		switch mode {
		case ModeUpdate:
			if site.Status != StatusResolved {
				continue
			}
			if site.HasAttribute() {
				err = w.replace(site)
			} else {
				err = w.insert(site)
			}
		case ModeRemove:
			if !site.HasAttribute() || site.Status == StatusAbsent {
				continue
			}
			err = w.remove(site)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// copyTo streams original text up to target. It never moves backward.
func (w *rewriter) copyTo(target Position) error {
	c := w.cur
	if target.Before(c.pos()) {
		return desync(c, "position "+target.String()+" ahead of cursor")
	}
	for c.line < target.Line || c.col < target.Column {
		if c.eof() {
			return desync(c, "position "+target.String())
		}
		if c.line == target.Line && isLineBreak(c.peek()) {
			return desync(c, "column "+target.String())
		}
		w.out.WriteString(c.advance())
	}
	return nil
}

func (w *rewriter) insert(site *Site) error {
	prefix := site.Prefix
	if prefix == "" {
		prefix = w.doc.NewPrefix
	}
	if prefix == "" {
		return &RewriteSynchronizationError{Position: site.Position, Expected: "a namespace prefix for " + site.QName, Found: "none"}
	}
	if err := w.copyTo(site.Position); err != nil {
		return err
	}

	attr := prefix + ":" + w.doc.opts.Attribute + `="` + escapeValue(site.Resolved) + `"`
	if site.Spacing == SpaceBefore {
		w.out.WriteString(" " + attr)
	} else {
		w.out.WriteString(attr + " ")
	}
	w.changed = true
	return nil
}

func (w *rewriter) replace(site *Site) error {
	if err := w.copyTo(site.Position); err != nil {
		return err
	}
	name, err := w.expectName(site.AttrName)
	if err != nil {
		return err
	}
	w.out.WriteString(name)

	quote, err := w.scanToValue(true)
	if err != nil {
		return err
	}
	if err := w.skipValue(quote); err != nil {
		return err
	}

	w.out.WriteByte(quote)
	w.out.WriteString(escapeValue(site.Resolved))
	w.out.WriteByte(quote)
	w.changed = true
	return nil
}

// remove drops the attribute together with the whitespace character in front
// of it. An attribute that starts a line keeps the preceding line break.
func (w *rewriter) remove(site *Site) error {
	c := w.cur
	if site.Position.Column > 1 {
		if err := w.copyTo(Position{Line: site.Position.Line, Column: site.Position.Column - 1}); err != nil {
			return err
		}
		if b := c.peek(); b != ' ' && b != '\t' {
			return desync(c, "whitespace before "+site.AttrName)
		}
		c.advance()
	} else if err := w.copyTo(site.Position); err != nil {
		return err
	}

	if _, err := w.expectName(site.AttrName); err != nil {
		return err
	}
	quote, err := w.scanToValue(false)
	if err != nil {
		return err
	}
	if err := w.skipValue(quote); err != nil {
		return err
	}
	w.changed = true
	return nil
}

// expectName consumes an attribute name and checks it is the one recorded.
func (w *rewriter) expectName(want string) (string, error) {
	c := w.cur
	if !c.hasPrefix(want) {
		return "", desync(c, "attribute "+want)
	}
	name := c.advanceN(len(want))
	if !c.eof() && isNameByte(c.peek()) {
		return "", desync(c, "end of attribute name "+want)
	}
	return name, nil
}

// scanToValue consumes whitespace, '=' and whitespace up to the opening quote,
// copying them when keep is set, then consumes the quote and returns it.
func (w *rewriter) scanToValue(keep bool) (byte, error) {
	c := w.cur
	sawEquals := false
	for {
		if c.eof() {
			return 0, desync(c, "attribute value")
		}
		b := c.peek()
		switch {
		case isSpace(b):
		case b == '=' && !sawEquals:
			sawEquals = true
		case (b == '"' || b == '\'') && sawEquals:
			c.advance()
			return b, nil
		default:
			if !sawEquals {
				return 0, desync(c, "'='")
			}
			return 0, desync(c, "quote")
		}
		s := c.advance()
		if keep {
			w.out.WriteString(s)
		}
	}
}

// skipValue discards everything up to and including the closing quote.
func (w *rewriter) skipValue(quote byte) error {
	c := w.cur
	for {
		if c.eof() {
			return desync(c, "closing "+string(quote))
		}
		if c.peek() == quote {
			c.advance()
			return nil
		}
		c.advance()
	}
}
