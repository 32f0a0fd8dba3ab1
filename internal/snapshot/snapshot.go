package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/scalediv/internal/scale"
)

// Snapshot is the serializable form of a computed division.
type Snapshot struct {
	Axis   string    `json:"axis"`
	Kind   string    `json:"kind"`
	Lower  float64   `json:"lower"`
	Upper  float64   `json:"upper"`
	Major  []float64 `json:"major"`
	Medium []float64 `json:"medium"`
	Minor  []float64 `json:"minor"`
}

// New captures div for the named axis.
func New(axis, kind string, div scale.Division) Snapshot {
	return Snapshot{
		Axis:   axis,
		Kind:   kind,
		Lower:  div.Interval.Min,
		Upper:  div.Interval.Max,
		Major:  nonNil(div.Major),
		Medium: nonNil(div.Medium),
		Minor:  nonNil(div.Minor),
	}
}

// Division rebuilds the division.
func (s Snapshot) Division() scale.Division {
	return scale.NewDivision(s.Lower, s.Upper,
		emptyToNil(s.Minor), emptyToNil(s.Medium), emptyToNil(s.Major))
}

// Map returns the snapshot as a generic map for canonical encoding.
func (s Snapshot) Map() map[string]any {
	return map[string]any{
		"axis":   s.Axis,
		"kind":   s.Kind,
		"lower":  s.Lower,
		"upper":  s.Upper,
		"major":  nonNil(s.Major),
		"medium": nonNil(s.Medium),
		"minor":  nonNil(s.Minor),
	}
}

// Canonical returns the RFC 8785 encoding of s.
func (s Snapshot) Canonical() ([]byte, error) {
	data, err := MarshalCanonical(s.Map())
	if err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", s.Axis, err)
	}
	return data, nil
}

// Hash returns the content hash of s.
func (s Snapshot) Hash() (string, error) {
	return Hash(DomainDivision, s.Map())
}

// Parse decodes a snapshot from JSON.
func Parse(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("parse snapshot: %w", err)
	}
	s.Major = nonNil(s.Major)
	s.Medium = nonNil(s.Medium)
	s.Minor = nonNil(s.Minor)
	return s, nil
}

func nonNil(ticks []float64) []float64 {
	if ticks == nil {
		return []float64{}
	}
	return ticks
}

func emptyToNil(ticks []float64) []float64 {
	if len(ticks) == 0 {
		return nil
	}
	return ticks
}
