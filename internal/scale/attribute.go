package scale

import (
	"fmt"
	"strings"
)

// Attribute is a set of flags changing how an interval is scaled.
type Attribute uint

const (
	// IncludeReference widens the interval to include the reference value.
	IncludeReference Attribute = 1 << iota

	// Symmetric makes the interval symmetric around the reference value.
	Symmetric

	// Floating keeps the bounds as given instead of aligning them to
	// multiples of the step size.
	Floating

	// Inverted reverses the direction of the scale.
	Inverted

	// NoAttribute is the empty set.
	NoAttribute Attribute = 0
)

var attributeNames = []struct {
	attr Attribute
	name string
}{
	{IncludeReference, "include_reference"},
	{Symmetric, "symmetric"},
	{Floating, "floating"},
	{Inverted, "inverted"},
}

// Has reports whether all flags in a are set.
func (s Attribute) Has(a Attribute) bool {
	return s&a == a
}

// With returns s with a set or cleared.
func (s Attribute) With(a Attribute, on bool) Attribute {
	if on {
		return s | a
	}
	return s &^ a
}

// Names returns the names of the set flags in declaration order.
func (s Attribute) Names() []string {
	var names []string
	for _, an := range attributeNames {
		if s.Has(an.attr) {
			names = append(names, an.name)
		}
	}
	return names
}

// String implements fmt.Stringer.
func (s Attribute) String() string {
	if s == NoAttribute {
		return "none"
	}
	return strings.Join(s.Names(), "|")
}

// ParseAttributes combines attribute names into a set.
// Names are matched case-insensitively; "-" and "_" are interchangeable.
func ParseAttributes(names []string) (Attribute, error) {
	var s Attribute
	for _, raw := range names {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_")
		found := false
		for _, an := range attributeNames {
			if an.name == key {
				s |= an.attr
				found = true
				break
			}
		}
		if !found {
			return NoAttribute, fmt.Errorf("unknown scale attribute %q", raw)
		}
	}
	return s, nil
}
