// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using database/sql.
//
// The blank import registers the "sqlite3" driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aanand-mishra/professores-api/internal/config"
	"github.com/aanand-mishra/professores-api/internal/storage"
	"github.com/aanand-mishra/professores-api/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the SQLite implementation of storage.Storage.
// *sql.DB is a connection pool and is safe for concurrent use.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// New opens the SQLite database at cfg.Storage.DSN, creates the professores
// table if it does not already exist, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", dsn(cfg.Storage.DSN))
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// AUTOINCREMENT guarantees ids are never reused after a delete.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS professores (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			nome        TEXT    NOT NULL,
			idade       INTEGER NOT NULL,
			materia     TEXT    NOT NULL,
			observacoes TEXT    NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// dsn adds a busy timeout so concurrent writers wait for the file lock
// instead of failing with SQLITE_BUSY.
func dsn(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_busy_timeout=5000"
}

// CreateTeacher inserts t in its own transaction and returns the
// AUTOINCREMENT id.
func (s *SQLite) CreateTeacher(ctx context.Context, t types.Teacher) (int64, error) {
	var lastID int64

	err := storage.WithTx(ctx, s.Db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			"INSERT INTO professores (nome, idade, materia, observacoes) VALUES (?, ?, ?, ?)",
			t.Name, t.Age, t.Subject, t.Notes,
		)
		if err != nil {
			return fmt.Errorf("CreateTeacher: exec: %w", err)
		}

		lastID, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("CreateTeacher: last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return lastID, nil
}

// GetTeacherByID fetches one row by primary key, or storage.ErrNotFound.
func (s *SQLite) GetTeacherByID(ctx context.Context, id int64) (types.Teacher, error) {
	var t types.Teacher

	err := s.Db.QueryRowContext(ctx,
		"SELECT id, nome, idade, materia, observacoes FROM professores WHERE id = ? LIMIT 1",
		id,
	).Scan(&t.ID, &t.Name, &t.Age, &t.Subject, &t.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Teacher{}, storage.ErrNotFound
		}
		return types.Teacher{}, fmt.Errorf("GetTeacherByID: scan: %w", err)
	}

	return t, nil
}

// TeacherExists reports whether a row with id is stored.
func (s *SQLite) TeacherExists(ctx context.Context, id int64) (bool, error) {
	var one int

	err := s.Db.QueryRowContext(ctx,
		"SELECT 1 FROM professores WHERE id = ?", id,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("TeacherExists: scan: %w", err)
	}

	return true, nil
}

// GetTeachers returns every row ordered by id.
func (s *SQLite) GetTeachers(ctx context.Context) ([]types.Teacher, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT id, nome, idade, materia, observacoes FROM professores ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("GetTeachers: query: %w", err)
	}
	defer rows.Close()

	// Empty, not nil: encodes as [] rather than null.
	teachers := make([]types.Teacher, 0)

	for rows.Next() {
		var t types.Teacher
		if err := rows.Scan(&t.ID, &t.Name, &t.Age, &t.Subject, &t.Notes); err != nil {
			return nil, fmt.Errorf("GetTeachers: scan row: %w", err)
		}
		teachers = append(teachers, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetTeachers: rows iteration: %w", err)
	}

	return teachers, nil
}

// UpdateTeacherByID writes only the columns set in patch, inside a
// transaction that is rolled back if the row is gone.
func (s *SQLite) UpdateTeacherByID(ctx context.Context, id int64, patch types.TeacherPatch) error {
	cols, args := storage.PatchColumns(patch)
	if len(cols) == 0 {
		// Nothing to write, but the record must still exist.
		ok, err := s.TeacherExists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return storage.ErrNotFound
		}
		return nil
	}

	set := make([]string, len(cols))
	for i, c := range cols {
		set[i] = c + " = ?"
	}
	query := "UPDATE professores SET " + strings.Join(set, ", ") + " WHERE id = ?"
	args = append(args, id)

	return storage.WithTx(ctx, s.Db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("UpdateTeacherByID: exec: %w", err)
		}
		return expectOneRow(result, "UpdateTeacherByID")
	})
}

// DeleteTeacherByID removes a row permanently, or returns
// storage.ErrNotFound if there was none.
func (s *SQLite) DeleteTeacherByID(ctx context.Context, id int64) error {
	return storage.WithTx(ctx, s.Db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM professores WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("DeleteTeacherByID: exec: %w", err)
		}
		return expectOneRow(result, "DeleteTeacherByID")
	})
}

// Ping checks that the database file can be reached.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.Db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// expectOneRow turns "no row matched" into storage.ErrNotFound so the row
// vanishing between the existence check and the write is reported as such.
func expectOneRow(result sql.Result, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
