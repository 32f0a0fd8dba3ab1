package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/scalediv/internal/config"
	"github.com/roach88/scalediv/internal/snapshot"
)

// marshalAxis converts an axis configuration to canonical JSON TEXT and
// returns its content hash.
//
// The axis is encoded with encoding/json first and re-decoded into generic
// values so that the canonical encoder sees plain maps, slices and numbers.
func marshalAxis(a config.Axis) (data, hash string, err error) {
	raw, err := json.Marshal(a)
	if err != nil {
		return "", "", fmt.Errorf("marshal axis: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", "", fmt.Errorf("marshal axis: %w", err)
	}

	canonical, err := snapshot.MarshalCanonical(generic)
	if err != nil {
		return "", "", fmt.Errorf("marshal axis: %w", err)
	}
	hash, err = snapshot.Hash(snapshot.DomainAxis, generic)
	if err != nil {
		return "", "", fmt.Errorf("marshal axis: %w", err)
	}
	return string(canonical), hash, nil
}

// unmarshalAxis parses canonical JSON TEXT to an axis configuration.
func unmarshalAxis(data string) (config.Axis, error) {
	var a config.Axis
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		return config.Axis{}, fmt.Errorf("unmarshal axis: %w", err)
	}
	return a, nil
}

// marshalSnapshot converts a snapshot to canonical JSON TEXT and returns
// its content hash.
func marshalSnapshot(s snapshot.Snapshot) (data, hash string, err error) {
	canonical, err := s.Canonical()
	if err != nil {
		return "", "", fmt.Errorf("marshal snapshot: %w", err)
	}
	hash, err = s.Hash()
	if err != nil {
		return "", "", fmt.Errorf("marshal snapshot: %w", err)
	}
	return string(canonical), hash, nil
}

// unmarshalSnapshot parses canonical JSON TEXT to a snapshot.
func unmarshalSnapshot(data string) (snapshot.Snapshot, error) {
	s, err := snapshot.Parse([]byte(data))
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return s, nil
}
