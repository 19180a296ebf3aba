package uid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vvka-141/markuid/pkg/markuid"
)

// Options names the reserved namespace and the attributes the engine manages.
type Options struct {
	// Namespace is the URI the identifier attribute must be bound to.
	Namespace string

	// Attribute is the local name of the identifier attribute ("Uid").
	Attribute string

	// NameAttribute is the local name of the friendly-name attribute ("Name").
	// It is recognized unprefixed or bound to Namespace.
	NameAttribute string

	// Prefix is the first candidate when the namespace must be declared.
	Prefix string

	// Separator joins element names and sequence numbers.
	Separator string

	// Fallback names the sequence used once an element sequence is exhausted.
	Fallback string
}

// DefaultOptions returns the XAML defaults (x:Uid, x:Name / Name, "_").
func DefaultOptions() Options {
	return Options{
		Namespace:     markuid.DefaultNamespace,
		Attribute:     markuid.DefaultAttribute,
		NameAttribute: markuid.DefaultNameAttribute,
		Prefix:        markuid.DefaultPrefix,
		Separator:     markuid.DefaultSeparator,
		Fallback:      markuid.DefaultFallbackSequence,
	}
}

// Validate checks that every option is usable.
// It returns a multi-error if multiple validation failures occur.
func (o Options) Validate() error {
	var errs []error

	if o.Namespace == "" {
		errs = append(errs, fmt.Errorf("namespace is required: %w", markuid.ErrInvalidConfig))
	}
	if !isName(o.Attribute) || strings.Contains(o.Attribute, ":") {
		errs = append(errs, fmt.Errorf("attribute %q is not a valid local name: %w", o.Attribute, markuid.ErrInvalidConfig))
	}
	if o.NameAttribute != "" && (!isName(o.NameAttribute) || strings.Contains(o.NameAttribute, ":")) {
		errs = append(errs, fmt.Errorf("name attribute %q is not a valid local name: %w", o.NameAttribute, markuid.ErrInvalidConfig))
	}
	if !isName(o.Prefix) || strings.Contains(o.Prefix, ":") || strings.EqualFold(o.Prefix, "xmlns") {
		errs = append(errs, fmt.Errorf("prefix %q is not usable: %w", o.Prefix, markuid.ErrInvalidConfig))
	}
	if o.Separator == "" {
		errs = append(errs, fmt.Errorf("separator is required: %w", markuid.ErrInvalidConfig))
	}
	if o.Fallback == "" {
		errs = append(errs, fmt.Errorf("fallback sequence is required: %w", markuid.ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isNameByte(s[i]) {
			return false
		}
	}
	return true
}
