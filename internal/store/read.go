package store

import (
	"context"
	"fmt"

	"github.com/roach88/scalediv/internal/config"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// ReadAxis retrieves a saved axis by name.
// Returns an error wrapping sql.ErrNoRows if not found.
func (s *Store) ReadAxis(ctx context.Context, name string) (AxisRecord, error) {
	rec, err := scanAxis(s.db.QueryRowContext(ctx, `
		SELECT id, name, kind, config, config_hash, seq
		FROM axes
		WHERE name = ?
	`, config.NormalizeName(name)))
	if err != nil {
		return AxisRecord{}, fmt.Errorf("read axis %q: %w", name, err)
	}
	return rec, nil
}

// ListAxes returns all saved axes in the order they were last saved.
// Returns an empty slice (not nil) for an empty store.
func (s *Store) ListAxes(ctx context.Context) ([]AxisRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, kind, config, config_hash, seq
		FROM axes
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query axes: %w", err)
	}
	defer rows.Close()

	axes := []AxisRecord{}
	for rows.Next() {
		rec, err := scanAxis(rows)
		if err != nil {
			return nil, fmt.Errorf("scan axis: %w", err)
		}
		axes = append(axes, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate axes: %w", err)
	}
	return axes, nil
}

// ReadSnapshots returns the snapshots of an axis, oldest first.
// Returns an empty slice (not nil) if the axis has none.
func (s *Store) ReadSnapshots(ctx context.Context, axisID string) ([]SnapshotRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, axis_id, hash, data, seq
		FROM snapshots
		WHERE axis_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, axisID)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	snaps := []SnapshotRecord{}
	for rows.Next() {
		rec, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snaps, nil
}

// LatestSnapshot returns the most recent snapshot of an axis.
// Returns an error wrapping sql.ErrNoRows if the axis has none.
func (s *Store) LatestSnapshot(ctx context.Context, axisID string) (SnapshotRecord, error) {
	rec, err := scanSnapshot(s.db.QueryRowContext(ctx, `
		SELECT id, axis_id, hash, data, seq
		FROM snapshots
		WHERE axis_id = ?
		ORDER BY seq DESC, id COLLATE BINARY DESC
		LIMIT 1
	`, axisID))
	if err != nil {
		return SnapshotRecord{}, fmt.Errorf("latest snapshot: %w", err)
	}
	return rec, nil
}

// scanAxis scans a row into an AxisRecord. sql.ErrNoRows is returned
// unwrapped.
func scanAxis(row rowScanner) (AxisRecord, error) {
	var rec AxisRecord
	var data string

	if err := row.Scan(&rec.ID, &rec.Name, &rec.Kind, &data, &rec.ConfigHash, &rec.Seq); err != nil {
		return AxisRecord{}, err
	}

	a, err := unmarshalAxis(data)
	if err != nil {
		return AxisRecord{}, err
	}
	rec.Config = a

	return rec, nil
}

// scanSnapshot scans a row into a SnapshotRecord. sql.ErrNoRows is
// returned unwrapped.
func scanSnapshot(row rowScanner) (SnapshotRecord, error) {
	var rec SnapshotRecord
	var data string

	if err := row.Scan(&rec.ID, &rec.AxisID, &rec.Hash, &data, &rec.Seq); err != nil {
		return SnapshotRecord{}, err
	}

	snap, err := unmarshalSnapshot(data)
	if err != nil {
		return SnapshotRecord{}, err
	}
	rec.Snapshot = snap

	return rec, nil
}
