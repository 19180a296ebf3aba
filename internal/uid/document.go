package uid

import "math"

// Status is the classification of a Site.
//
//	Unclassified -> Valid | Absent | Duplicate   (Validate)
//	Absent | Duplicate -> Resolved               (Resolve, update only)
type Status int

const (
	StatusUnclassified Status = iota
	StatusValid
	StatusAbsent
	StatusDuplicate
	StatusResolved
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusAbsent:
		return "absent"
	case StatusDuplicate:
		return "duplicate"
	case StatusResolved:
		return "resolved"
	default:
		return "unclassified"
	}
}

// Spacing says on which side of an inserted attribute the separating space goes.
type Spacing int

const (
	// SpaceBefore is used when the element has no attributes: `<Button x:Uid="v">`.
	SpaceBefore Spacing = iota
	// SpaceAfter is used when the attribute is prepended: `<Button x:Uid="v" Content="c">`.
	SpaceAfter
)

// Site is one element's identifier status and edit coordinates.
type Site struct {
	Element string // Local name ("Button")
	QName   string // Name as written ("local:Button")

	// Position is where the identifier attribute starts when present, or where a
	// new one has to be inserted otherwise.
	Position Position
	Spacing  Spacing
	Status   Status

	// Value is the decoded current identifier; HasValue separates a missing
	// attribute from an empty one.
	Value    string
	HasValue bool

	// AttrName is the identifier attribute as written ("x:Uid") and Quote the
	// delimiter around its value. Both are empty when the attribute is missing.
	AttrName string
	Quote    byte

	// Candidate is the friendly-name value, preferred when resolving.
	Candidate string

	// Prefix is bound to the reserved namespace in this element's scope.
	// Only recorded when the identifier attribute is missing.
	Prefix string

	// Resolved is the value chosen by Resolve.
	Resolved string
}

// HasAttribute reports whether the element already carries the identifier
// attribute, even with an empty value.
func (s *Site) HasAttribute() bool {
	return s.AttrName != ""
}

// Document holds everything known about one file between scan and rewrite.
// It is built per invocation, owned by a single goroutine and discarded after
// the rewrite; nothing in it is shared across files.
type Document struct {
	Sites []Site

	// Root is the position right after the first element's tag name.
	Root    Position
	HasRoot bool

	// Declared holds every namespace prefix declared anywhere in the file, plus
	// prefixes used on element or attribute names without a declaration.
	Declared map[string]struct{}

	// NewPrefix is the prefix that must be declared on the root element for
	// inserted identifiers, or empty when every insertion can reuse one in scope.
	NewPrefix string

	opts Options

	used     map[string]struct{}
	maxIndex map[string]int64

	// fallback is the variant of the fallback sequence currently consumed
	// (0 = "_Uid", 1 = "_Uid1", ...).
	fallback int

	// ceiling is the largest sequence number; only tests lower it.
	ceiling int64
}

func newDocument(opts Options) *Document {
	return &Document{
		Declared: make(map[string]struct{}),
		opts:     opts,
		used:     make(map[string]struct{}),
		maxIndex: make(map[string]int64),
		ceiling:  math.MaxInt64,
	}
}

// Options returns the options the document was scanned with.
func (d *Document) Options() Options {
	return d.opts
}
