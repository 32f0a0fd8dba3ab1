package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/scalediv/internal/config"
	"github.com/roach88/scalediv/internal/snapshot"
)

// AxisRecord is a saved axis.
type AxisRecord struct {
	ID         string
	Name       string
	Kind       string
	Config     config.Axis
	ConfigHash string
	Seq        int64
}

// SnapshotRecord is a stored division of a saved axis.
type SnapshotRecord struct {
	ID       string
	AxisID   string
	Hash     string
	Snapshot snapshot.Snapshot
	Seq      int64
}

// SaveAxis stores an axis configuration under its normalized name.
//
// A new name gets a new row. Saving the same configuration again is a
// no-op; saving a different configuration under an existing name replaces
// it in place, keeping the ID and stamping a new seq. changed reports
// whether anything was written.
func (s *Store) SaveAxis(ctx context.Context, a config.Axis) (rec AxisRecord, changed bool, err error) {
	a.Name = config.NormalizeName(a.Name)
	if a.Name == "" {
		return AxisRecord{}, false, fmt.Errorf("save axis: name is required")
	}

	kind, err := a.Kind()
	if err != nil {
		return AxisRecord{}, false, fmt.Errorf("save axis %q: %w", a.Name, err)
	}

	data, hash, err := marshalAxis(a)
	if err != nil {
		return AxisRecord{}, false, fmt.Errorf("save axis %q: %w", a.Name, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AxisRecord{}, false, fmt.Errorf("save axis: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	existing, err := scanAxis(tx.QueryRowContext(ctx, `
		SELECT id, name, kind, config, config_hash, seq
		FROM axes
		WHERE name = ?
	`, a.Name))

	switch {
	case errors.Is(err, sql.ErrNoRows):
		rec = AxisRecord{
			ID:         s.ids.Generate(),
			Name:       a.Name,
			Kind:       kind.String(),
			Config:     a,
			ConfigHash: hash,
			Seq:        s.clock.Next(),
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO axes
			(id, name, kind, config, config_hash, seq)
			VALUES (?, ?, ?, ?, ?, ?)
		`, rec.ID, rec.Name, rec.Kind, data, rec.ConfigHash, rec.Seq)
		if err != nil {
			return AxisRecord{}, false, fmt.Errorf("save axis: insert: %w", err)
		}

	case err != nil:
		return AxisRecord{}, false, fmt.Errorf("save axis: select existing: %w", err)

	case existing.ConfigHash == hash:
		return existing, false, nil

	default:
		rec = AxisRecord{
			ID:         existing.ID,
			Name:       a.Name,
			Kind:       kind.String(),
			Config:     a,
			ConfigHash: hash,
			Seq:        s.clock.Next(),
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE axes
			SET kind = ?, config = ?, config_hash = ?, seq = ?
			WHERE id = ?
		`, rec.Kind, data, rec.ConfigHash, rec.Seq, rec.ID)
		if err != nil {
			return AxisRecord{}, false, fmt.Errorf("save axis: update: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return AxisRecord{}, false, fmt.Errorf("save axis: commit: %w", err)
	}
	return rec, true, nil
}

// SaveAxes saves every axis of f in file order.
// Returns the number of axes that were inserted or changed.
func (s *Store) SaveAxes(ctx context.Context, f *config.File) (int, error) {
	changed := 0
	for _, a := range f.Axes {
		_, ok, err := s.SaveAxis(ctx, a)
		if err != nil {
			return changed, err
		}
		if ok {
			changed++
		}
	}
	return changed, nil
}

// DeleteAxis removes an axis and its snapshots.
// Returns false if no axis has that name.
func (s *Store) DeleteAxis(ctx context.Context, name string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM axes WHERE name = ?
	`, config.NormalizeName(name))
	if err != nil {
		return false, fmt.Errorf("delete axis: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete axis: rows affected: %w", err)
	}
	return n > 0, nil
}

// WriteSnapshot stores a division computed for an axis.
// Returns the record and whether a new row was inserted.
//
// Snapshots are content addressed: if the axis already has a snapshot with
// the same hash, that record is returned with inserted=false and no ID or
// seq is consumed.
//
// Note: The axis referenced by axisID must exist (foreign key constraint).
func (s *Store) WriteSnapshot(ctx context.Context, axisID string, snap snapshot.Snapshot) (rec SnapshotRecord, inserted bool, err error) {
	data, hash, err := marshalSnapshot(snap)
	if err != nil {
		return SnapshotRecord{}, false, fmt.Errorf("write snapshot: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SnapshotRecord{}, false, fmt.Errorf("write snapshot: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	existing, err := scanSnapshot(tx.QueryRowContext(ctx, `
		SELECT id, axis_id, hash, data, seq
		FROM snapshots
		WHERE axis_id = ? AND hash = ?
	`, axisID, hash))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return SnapshotRecord{}, false, fmt.Errorf("write snapshot: select existing: %w", err)
	}

	rec = SnapshotRecord{
		ID:       s.ids.Generate(),
		AxisID:   axisID,
		Hash:     hash,
		Snapshot: snap,
		Seq:      s.clock.Next(),
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots
		(id, axis_id, hash, data, seq)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(axis_id, hash) DO NOTHING
	`, rec.ID, rec.AxisID, rec.Hash, data, rec.Seq)
	if err != nil {
		return SnapshotRecord{}, false, fmt.Errorf("write snapshot: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return SnapshotRecord{}, false, fmt.Errorf("write snapshot: commit: %w", err)
	}
	return rec, true, nil
}
