// Package store is the authoritative task store: a SQLite database holding
// the board index and every task record. The board core never mutates
// local state directly; everything goes through these calls.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"slate/internal/domain"
)

// Store provides access to the board database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// Open opens (or creates) the SQLite database at the given path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL keeps readers unblocked while the single writer works.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{db: db, logger: logger, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS board (
		id          INTEGER PRIMARY KEY CHECK (id = 1),
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date_format TEXT NOT NULL DEFAULT '',
		fields_json TEXT NOT NULL DEFAULT '[]',
		sprint_json TEXT
	);
	CREATE TABLE IF NOT EXISTS columns (
		name      TEXT PRIMARY KEY,
		position  INTEGER NOT NULL,
		hidden    INTEGER NOT NULL DEFAULT 0,
		started   INTEGER NOT NULL DEFAULT 0,
		completed INTEGER NOT NULL DEFAULT 0,
		sort_json TEXT NOT NULL DEFAULT '[]'
	);
	CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		column_name TEXT NOT NULL REFERENCES columns(name),
		position    INTEGER NOT NULL,
		data_json   TEXT NOT NULL DEFAULT '{}',
		archived    INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_tasks_column ON tasks(column_name, position);
	`
	_, err := s.db.Exec(schema)
	return err
}

// BoardSpec seeds a new board.
type BoardSpec struct {
	Name        string
	Description string
	Columns     []string
	Hidden      []string
	Started     []string
	Completed   []string
	DateFormat  string
	Fields      domain.CustomFieldSchema
}

// Init creates the board row and columns if the database is empty. It is a
// no-op on an already initialized board.
func (s *Store) Init(ctx context.Context, spec BoardSpec) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM board").Scan(&count); err != nil {
		return &domain.StoreError{Op: "init", Err: err}
	}
	if count > 0 {
		return nil
	}

	fields, err := json.Marshal(spec.Fields)
	if err != nil {
		return &domain.StoreError{Op: "init", Err: err}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.StoreError{Op: "init", Err: err}
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO board (id, name, description, date_format, fields_json) VALUES (1, ?, ?, ?, ?)",
		spec.Name, spec.Description, spec.DateFormat, string(fields))
	if err != nil {
		return &domain.StoreError{Op: "init", Err: err}
	}

	flag := func(names []string, name string) int {
		for _, n := range names {
			if n == name {
				return 1
			}
		}
		return 0
	}
	for i, name := range spec.Columns {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO columns (name, position, hidden, started, completed) VALUES (?, ?, ?, ?, ?)",
			name, i, flag(spec.Hidden, name), flag(spec.Started, name), flag(spec.Completed, name))
		if err != nil {
			return &domain.StoreError{Op: "init", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &domain.StoreError{Op: "init", Err: err}
	}
	s.logger.Debug("board initialized", "name", spec.Name, "columns", len(spec.Columns))
	return nil
}

// taskData is the JSON blob stored alongside a task row.
type taskData struct {
	Subtasks  []domain.Subtask  `json:"subtasks,omitempty"`
	Relations []domain.Relation `json:"relations,omitempty"`
	Comments  []domain.Comment  `json:"comments,omitempty"`
	Metadata  domain.Metadata   `json:"metadata"`
}

// GetAll fetches one consistent snapshot: the full board index plus every
// unarchived task, hydrated, in snapshot order.
func (s *Store) GetAll(ctx context.Context) (domain.Snapshot, error) {
	s.logger.Debug("fetching snapshot")

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return domain.Snapshot{}, &domain.StoreError{Op: "get-all", Err: err}
	}
	defer tx.Rollback()

	var snap domain.Snapshot
	var fieldsJSON string
	var sprintJSON sql.NullString
	err = tx.QueryRowContext(ctx,
		"SELECT name, description, date_format, fields_json, sprint_json FROM board WHERE id = 1").
		Scan(&snap.Index.Name, &snap.Index.Description, &snap.Index.DateFormat, &fieldsJSON, &sprintJSON)
	if err != nil {
		return domain.Snapshot{}, &domain.StoreError{Op: "get-all", Err: err}
	}
	if err := json.Unmarshal([]byte(fieldsJSON), &snap.Index.Fields); err != nil {
		return domain.Snapshot{}, &domain.StoreError{Op: "get-all", Err: err}
	}
	if sprintJSON.Valid {
		var sp domain.Sprint
		if err := json.Unmarshal([]byte(sprintJSON.String), &sp); err != nil {
			return domain.Snapshot{}, &domain.StoreError{Op: "get-all", Err: err}
		}
		snap.Index.Sprint = &sp
	}

	rows, err := tx.QueryContext(ctx,
		"SELECT name, hidden, started, completed, sort_json FROM columns ORDER BY position")
	if err != nil {
		return domain.Snapshot{}, &domain.StoreError{Op: "get-all", Err: err}
	}
	defer rows.Close()
	for rows.Next() {
		var col domain.Column
		var hidden, started, completed int
		var sortJSON string
		if err := rows.Scan(&col.Name, &hidden, &started, &completed, &sortJSON); err != nil {
			return domain.Snapshot{}, &domain.StoreError{Op: "get-all", Err: err}
		}
		if err := json.Unmarshal([]byte(sortJSON), &col.Sort); err != nil {
			return domain.Snapshot{}, &domain.StoreError{Op: "get-all", Err: err}
		}
		if hidden == 1 {
			snap.Index.Hidden = append(snap.Index.Hidden, col.Name)
		}
		if started == 1 {
			snap.Index.Started = append(snap.Index.Started, col.Name)
		}
		if completed == 1 {
			snap.Index.Completed = append(snap.Index.Completed, col.Name)
		}
		snap.Index.Columns = append(snap.Index.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return domain.Snapshot{}, &domain.StoreError{Op: "get-all", Err: err}
	}

	taskRows, err := tx.QueryContext(ctx,
		`SELECT t.id, t.name, t.description, t.column_name, t.data_json
		 FROM tasks t JOIN columns c ON c.name = t.column_name
		 WHERE t.archived = 0
		 ORDER BY c.position, t.position`)
	if err != nil {
		return domain.Snapshot{}, &domain.StoreError{Op: "get-all", Err: err}
	}
	defer taskRows.Close()
	for taskRows.Next() {
		var t domain.Task
		var dataJSON string
		if err := taskRows.Scan(&t.ID, &t.Name, &t.Description, &t.Column, &dataJSON); err != nil {
			return domain.Snapshot{}, &domain.StoreError{Op: "get-all", Err: err}
		}
		var data taskData
		if err := json.Unmarshal([]byte(dataJSON), &data); err != nil {
			return domain.Snapshot{}, &domain.StoreError{Op: "get-all", TaskID: t.ID, Err: err}
		}
		t.Subtasks = data.Subtasks
		t.Relations = data.Relations
		t.Comments = data.Comments
		t.Metadata = data.Metadata

		if col, ok := snap.Index.Column(t.Column); ok {
			col.Tasks = append(col.Tasks, t.ID)
		}
		snap.Tasks = append(snap.Tasks, t)
	}
	if err := taskRows.Err(); err != nil {
		return domain.Snapshot{}, &domain.StoreError{Op: "get-all", Err: err}
	}

	s.logger.Debug("snapshot fetched", "tasks", len(snap.Tasks), "columns", len(snap.Index.Columns))
	return snap, nil
}

// Get fetches a single task by ID.
func (s *Store) Get(ctx context.Context, id string) (domain.Task, error) {
	var t domain.Task
	var dataJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, column_name, data_json FROM tasks WHERE id = ? AND archived = 0", id).
		Scan(&t.ID, &t.Name, &t.Description, &t.Column, &dataJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, &domain.StoreError{Op: "get", TaskID: id, Err: domain.ErrNotFound}
	}
	if err != nil {
		return domain.Task{}, &domain.StoreError{Op: "get", TaskID: id, Err: err}
	}
	var data taskData
	if err := json.Unmarshal([]byte(dataJSON), &data); err != nil {
		return domain.Task{}, &domain.StoreError{Op: "get", TaskID: id, Err: err}
	}
	t.Subtasks = data.Subtasks
	t.Relations = data.Relations
	t.Comments = data.Comments
	t.Metadata = data.Metadata
	return t, nil
}

// Create inserts a new task at the end of its column. The ID is derived
// from the name once, here, and never recomputed afterwards; a taken slug
// gets a numeric suffix, so recurring tasks can spawn same-named
// successors. Custom-field values are validated against the board schema.
func (s *Store) Create(ctx context.Context, t domain.Task) (string, error) {
	base := domain.SlugID(t.Name)
	if base == "" {
		return "", &domain.StoreError{Op: "create", Err: fmt.Errorf("task name %q yields an empty id", t.Name)}
	}

	schema, err := s.fields(ctx)
	if err != nil {
		return "", &domain.StoreError{Op: "create", TaskID: base, Err: err}
	}
	if err := ValidateCustom(t.Metadata.Custom, schema); err != nil {
		return "", &domain.StoreError{Op: "create", TaskID: base, Err: err}
	}

	if t.Metadata.Created == nil {
		now := s.now()
		t.Metadata.Created = &now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", &domain.StoreError{Op: "create", TaskID: base, Err: err}
	}
	defer tx.Rollback()

	// First free slug wins: base, then base-2, base-3, ...
	// Archived rows still hold their slug.
	id := base
	for n := 2; ; n++ {
		var exists int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks WHERE id = ?", id).Scan(&exists); err != nil {
			return "", &domain.StoreError{Op: "create", TaskID: id, Err: err}
		}
		if exists == 0 {
			break
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}

	pos, err := nextPosition(ctx, tx, t.Column)
	if err != nil {
		return "", &domain.StoreError{Op: "create", TaskID: id, Err: err}
	}

	dataJSON, err := json.Marshal(taskData{
		Subtasks:  t.Subtasks,
		Relations: t.Relations,
		Comments:  t.Comments,
		Metadata:  t.Metadata,
	})
	if err != nil {
		return "", &domain.StoreError{Op: "create", TaskID: id, Err: err}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO tasks (id, name, description, column_name, position, data_json) VALUES (?, ?, ?, ?, ?, ?)",
		id, t.Name, t.Description, t.Column, pos, string(dataJSON))
	if err != nil {
		return "", &domain.StoreError{Op: "create", TaskID: id, Err: err}
	}

	if err := tx.Commit(); err != nil {
		return "", &domain.StoreError{Op: "create", TaskID: id, Err: err}
	}
	s.logger.Debug("task created", "task", id, "column", t.Column)
	return id, nil
}

// Update replaces a task's record with the given value: read-modify-write,
// no in-place mutation of shared handles. The ID and column are not
// changed by an update; column changes go through Move. The updated
// timestamp is stamped here.
func (s *Store) Update(ctx context.Context, t domain.Task) error {
	schema, err := s.fields(ctx)
	if err != nil {
		return &domain.StoreError{Op: "update", TaskID: t.ID, Err: err}
	}
	if err := ValidateCustom(t.Metadata.Custom, schema); err != nil {
		return &domain.StoreError{Op: "update", TaskID: t.ID, Err: err}
	}

	now := s.now()
	t.Metadata.Updated = &now

	dataJSON, err := json.Marshal(taskData{
		Subtasks:  t.Subtasks,
		Relations: t.Relations,
		Comments:  t.Comments,
		Metadata:  t.Metadata,
	})
	if err != nil {
		return &domain.StoreError{Op: "update", TaskID: t.ID, Err: err}
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET name = ?, description = ?, data_json = ? WHERE id = ? AND archived = 0",
		t.Name, t.Description, string(dataJSON), t.ID)
	if err != nil {
		return &domain.StoreError{Op: "update", TaskID: t.ID, Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.StoreError{Op: "update", TaskID: t.ID, Err: domain.ErrNotFound}
	}
	s.logger.Debug("task updated", "task", t.ID)
	return nil
}

// Move places the task at the end of the target column.
func (s *Store) Move(ctx context.Context, id, column string) error {
	return s.Place(ctx, id, column, -1)
}

// Place moves a task to the given column at the given position; -1 or any
// out-of-range position appends. Completion and start timestamps are
// stamped when entering a completed or started column.
func (s *Store) Place(ctx context.Context, id, column string, position int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.StoreError{Op: "move", TaskID: id, Err: err}
	}
	defer tx.Rollback()

	var colExists int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM columns WHERE name = ?", column).Scan(&colExists); err != nil {
		return &domain.StoreError{Op: "move", TaskID: id, Err: err}
	}
	if colExists == 0 {
		return &domain.StoreError{Op: "move", TaskID: id, Err: fmt.Errorf("%w: %s", domain.ErrUnknownColumn, column)}
	}

	var dataJSON string
	err = tx.QueryRowContext(ctx, "SELECT data_json FROM tasks WHERE id = ? AND archived = 0", id).Scan(&dataJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.StoreError{Op: "move", TaskID: id, Err: domain.ErrNotFound}
	}
	if err != nil {
		return &domain.StoreError{Op: "move", TaskID: id, Err: err}
	}

	// Stamp started/completed when the move lands in a flagged column.
	var started, completed int
	if err := tx.QueryRowContext(ctx, "SELECT started, completed FROM columns WHERE name = ?", column).Scan(&started, &completed); err != nil {
		return &domain.StoreError{Op: "move", TaskID: id, Err: err}
	}
	var data taskData
	if err := json.Unmarshal([]byte(dataJSON), &data); err != nil {
		return &domain.StoreError{Op: "move", TaskID: id, Err: err}
	}
	now := s.now()
	changedData := false
	if started == 1 && data.Metadata.Started == nil {
		data.Metadata.Started = &now
		changedData = true
	}
	if completed == 1 && data.Metadata.Completed == nil {
		data.Metadata.Completed = &now
		changedData = true
	}
	if changedData {
		updated, err := json.Marshal(data)
		if err != nil {
			return &domain.StoreError{Op: "move", TaskID: id, Err: err}
		}
		dataJSON = string(updated)
	}

	pos, err := nextPosition(ctx, tx, column)
	if err != nil {
		return &domain.StoreError{Op: "move", TaskID: id, Err: err}
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE tasks SET column_name = ?, position = ?, data_json = ? WHERE id = ?",
		column, pos, dataJSON, id)
	if err != nil {
		return &domain.StoreError{Op: "move", TaskID: id, Err: err}
	}

	if position >= 0 {
		if err := placeAt(ctx, tx, id, column, position); err != nil {
			return &domain.StoreError{Op: "move", TaskID: id, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &domain.StoreError{Op: "move", TaskID: id, Err: err}
	}
	s.logger.Debug("task moved", "task", id, "column", column, "position", position)
	return nil
}

// Archive removes a task from the board without deleting its record.
func (s *Store) Archive(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE tasks SET archived = 1 WHERE id = ? AND archived = 0", id)
	if err != nil {
		return &domain.StoreError{Op: "archive", TaskID: id, Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.StoreError{Op: "archive", TaskID: id, Err: domain.ErrNotFound}
	}
	s.logger.Debug("task archived", "task", id)
	return nil
}

// SetColumnSort persists a column's sort rules.
func (s *Store) SetColumnSort(ctx context.Context, column string, rules []domain.SortRule) error {
	sortJSON, err := json.Marshal(rules)
	if err != nil {
		return &domain.StoreError{Op: "sort", Err: err}
	}
	res, err := s.db.ExecContext(ctx, "UPDATE columns SET sort_json = ? WHERE name = ?", string(sortJSON), column)
	if err != nil {
		return &domain.StoreError{Op: "sort", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.StoreError{Op: "sort", Err: fmt.Errorf("%w: %s", domain.ErrUnknownColumn, column)}
	}
	return nil
}

// SetSprint records the board's current sprint.
func (s *Store) SetSprint(ctx context.Context, sp domain.Sprint) error {
	sprintJSON, err := json.Marshal(sp)
	if err != nil {
		return &domain.StoreError{Op: "sprint", Err: err}
	}
	if _, err := s.db.ExecContext(ctx, "UPDATE board SET sprint_json = ? WHERE id = 1", string(sprintJSON)); err != nil {
		return &domain.StoreError{Op: "sprint", Err: err}
	}
	return nil
}

func (s *Store) fields(ctx context.Context) (domain.CustomFieldSchema, error) {
	var fieldsJSON string
	if err := s.db.QueryRowContext(ctx, "SELECT fields_json FROM board WHERE id = 1").Scan(&fieldsJSON); err != nil {
		return nil, err
	}
	var schema domain.CustomFieldSchema
	if err := json.Unmarshal([]byte(fieldsJSON), &schema); err != nil {
		return nil, err
	}
	return schema, nil
}

func nextPosition(ctx context.Context, tx *sql.Tx, column string) (int, error) {
	var pos sql.NullInt64
	if err := tx.QueryRowContext(ctx,
		"SELECT MAX(position) FROM tasks WHERE column_name = ? AND archived = 0", column).Scan(&pos); err != nil {
		return 0, err
	}
	if !pos.Valid {
		return 0, nil
	}
	return int(pos.Int64) + 1, nil
}

// placeAt reindexes a column so the task sits at the requested position.
func placeAt(ctx context.Context, tx *sql.Tx, id, column string, position int) error {
	rows, err := tx.QueryContext(ctx,
		"SELECT id FROM tasks WHERE column_name = ? AND archived = 0 ORDER BY position", column)
	if err != nil {
		return err
	}
	var ids []string
	for rows.Next() {
		var tid string
		if err := rows.Scan(&tid); err != nil {
			rows.Close()
			return err
		}
		if tid != id {
			ids = append(ids, tid)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	if position > len(ids) {
		position = len(ids)
	}
	ids = append(ids[:position], append([]string{id}, ids[position:]...)...)

	for i, tid := range ids {
		if _, err := tx.ExecContext(ctx, "UPDATE tasks SET position = ? WHERE id = ?", i, tid); err != nil {
			return err
		}
	}
	return nil
}

// ValidateCustom checks custom values against the board schema: every value
// must name a declared field and carry a value of the declared type (or no
// value at all, which is how boolean presence is recorded).
func ValidateCustom(values []domain.CustomValue, schema domain.CustomFieldSchema) error {
	for _, v := range values {
		def, ok := schema.Field(v.Name)
		if !ok {
			return fmt.Errorf("unknown custom field %q", v.Name)
		}
		if v.Bool == nil && v.Date == nil && v.Number == nil && v.String == nil {
			continue
		}
		var typeOK bool
		switch def.Type {
		case domain.FieldBoolean:
			typeOK = v.Bool != nil
		case domain.FieldDate:
			typeOK = v.Date != nil
		case domain.FieldNumber:
			typeOK = v.Number != nil
		case domain.FieldString:
			typeOK = v.String != nil
		}
		if !typeOK {
			return fmt.Errorf("custom field %q is not a %s value", v.Name, def.Type)
		}
	}
	return nil
}
