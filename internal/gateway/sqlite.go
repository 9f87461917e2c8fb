package gateway

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/bryan-cox/taskboard/internal/errors"
	"github.com/bryan-cox/taskboard/internal/model"
)

// workspaces and date_groups keep keys that have no records, so an empty
// workspace or date still shows up as a filter option after a reload.
const schema = `
CREATE TABLE IF NOT EXISTS workspaces (
	name TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS date_groups (
	workspace TEXT NOT NULL,
	date      TEXT NOT NULL,
	PRIMARY KEY (workspace, date)
);
CREATE TABLE IF NOT EXISTS task_records (
	workspace    TEXT NOT NULL,
	date         TEXT NOT NULL,
	task_key     TEXT NOT NULL,
	task         TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL DEFAULT '',
	rating       REAL,
	image_url    TEXT NOT NULL DEFAULT '',
	completed_by TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (workspace, date, task_key)
);
CREATE TABLE IF NOT EXISTS snapshot (
	id       INTEGER PRIMARY KEY CHECK (id = 1),
	taken_at TEXT NOT NULL,
	source   TEXT NOT NULL,
	records  INTEGER NOT NULL
);`

// SnapshotInfo describes the dataset currently held by a SQLiteStore.
type SnapshotInfo struct {
	TakenAt time.Time
	Source  string
	Records int
}

// SQLiteStore keeps a local copy of the dataset so the dashboard can run
// without reaching the remote database.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// OpenSQLiteStore opens or creates the snapshot database at path.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, errors.Wrap(err, "failed to create snapshot directory")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open snapshot database")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create snapshot schema")
	}
	return &SQLiteStore{path: path, db: db}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save replaces the stored dataset with d in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, d model.Dataset, source string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"task_records", "date_groups", "workspaces"} {
		if _, err = tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return errors.Wrapf(err, "failed to clear %s", table)
		}
	}

	for ws, dates := range d {
		if _, err = tx.ExecContext(ctx, `INSERT INTO workspaces (name) VALUES (?)`, ws); err != nil {
			return errors.Wrap(err, "failed to insert workspace")
		}
		for date := range dates {
			if _, err = tx.ExecContext(ctx, `INSERT INTO date_groups (workspace, date) VALUES (?, ?)`, ws, date); err != nil {
				return errors.Wrap(err, "failed to insert date group")
			}
		}
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO task_records
		(workspace, date, task_key, task, status, rating, image_url, completed_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "failed to prepare insert")
	}
	defer stmt.Close()

	d.Walk(func(ws, date, key string, rec model.TaskRecord) {
		if err != nil {
			return
		}
		var rating sql.NullFloat64
		if rec.Rating != nil {
			rating = sql.NullFloat64{Float64: *rec.Rating, Valid: true}
		}
		_, err = stmt.ExecContext(ctx, ws, date, key, rec.Task, rec.Status, rating, rec.ImageURL, rec.CompletedBy)
	})
	if err != nil {
		return errors.Wrap(err, "failed to insert record")
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO snapshot (id, taken_at, source, records) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET taken_at = excluded.taken_at, source = excluded.source, records = excluded.records`,
		time.Now().UTC().Format(time.RFC3339), source, d.Len())
	if err != nil {
		return errors.Wrap(err, "failed to record snapshot")
	}

	return errors.Wrap(tx.Commit(), "failed to commit snapshot")
}

// Dataset reads the stored dataset back, including workspaces and dates
// without records.
func (s *SQLiteStore) Dataset(ctx context.Context) (model.Dataset, error) {
	d := make(model.Dataset)
	if err := s.readKeys(ctx, d); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT workspace, date, task_key, task, status, rating, image_url, completed_by
		FROM task_records`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query snapshot")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ws, date, key string
			rec           model.TaskRecord
			rating        sql.NullFloat64
		)
		if err := rows.Scan(&ws, &date, &key, &rec.Task, &rec.Status, &rating, &rec.ImageURL, &rec.CompletedBy); err != nil {
			return nil, errors.Wrap(err, "failed to scan record")
		}
		if rating.Valid {
			v := rating.Float64
			rec.Rating = &v
		}
		if d[ws] == nil {
			d[ws] = make(model.Workspace)
		}
		if d[ws][date] == nil {
			d[ws][date] = make(model.DateGroup)
		}
		d[ws][date][key] = rec
	}
	return d, errors.Wrap(rows.Err(), "failed to read snapshot")
}

func (s *SQLiteStore) readKeys(ctx context.Context, d model.Dataset) error {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM workspaces`)
	if err != nil {
		return errors.Wrap(err, "failed to query workspaces")
	}
	for rows.Next() {
		var ws string
		if err := rows.Scan(&ws); err != nil {
			rows.Close()
			return errors.Wrap(err, "failed to scan workspace")
		}
		d[ws] = make(model.Workspace)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return errors.Wrap(err, "failed to read workspaces")
	}

	rows, err = s.db.QueryContext(ctx, `SELECT workspace, date FROM date_groups`)
	if err != nil {
		return errors.Wrap(err, "failed to query date groups")
	}
	defer rows.Close()
	for rows.Next() {
		var ws, date string
		if err := rows.Scan(&ws, &date); err != nil {
			return errors.Wrap(err, "failed to scan date group")
		}
		if d[ws] == nil {
			d[ws] = make(model.Workspace)
		}
		d[ws][date] = make(model.DateGroup)
	}
	return errors.Wrap(rows.Err(), "failed to read date groups")
}

// Info returns metadata about the stored snapshot. ok is false when nothing
// has been saved yet.
func (s *SQLiteStore) Info(ctx context.Context) (info SnapshotInfo, ok bool, err error) {
	var takenAt string
	err = s.db.QueryRowContext(ctx, `SELECT taken_at, source, records FROM snapshot WHERE id = 1`).
		Scan(&takenAt, &info.Source, &info.Records)
	if errors.Is(err, sql.ErrNoRows) {
		return SnapshotInfo{}, false, nil
	}
	if err != nil {
		return SnapshotInfo{}, false, errors.Wrap(err, "failed to read snapshot info")
	}
	info.TakenAt, err = time.Parse(time.RFC3339, takenAt)
	if err != nil {
		return SnapshotInfo{}, false, errors.Wrap(err, "failed to parse snapshot time")
	}
	return info, true, nil
}

// SQLiteSource reads the dataset from a snapshot written by SQLiteStore.
type SQLiteSource struct {
	Path string
}

// Name implements Source.
func (s *SQLiteSource) Name() string {
	return "sqlite"
}

// Fetch implements Source. A missing database is reported rather than
// created. The age and origin of the snapshot are logged so a stale copy is
// visible.
func (s *SQLiteSource) Fetch(ctx context.Context) (model.Dataset, error) {
	if _, err := os.Stat(s.Path); err != nil {
		return nil, errors.Wrapf(errors.ErrSourceNotConfigured, "snapshot %s is not readable (run 'taskboard snapshot' first): %v", s.Path, err)
	}
	store, err := OpenSQLiteStore(ctx, s.Path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	logger := zerolog.Ctx(ctx)
	info, ok, err := store.Info(ctx)
	switch {
	case err != nil:
		logger.Warn().Err(err).Str("path", s.Path).Msg("snapshot metadata unreadable")
	case !ok:
		logger.Warn().Str("path", s.Path).Msg("snapshot has never been saved")
	default:
		logger.Info().
			Str("path", s.Path).
			Str("snapshot_source", info.Source).
			Time("taken_at", info.TakenAt).
			Dur("age", time.Since(info.TakenAt)).
			Int("records", info.Records).
			Msg("reading snapshot")
	}
	return store.Dataset(ctx)
}
