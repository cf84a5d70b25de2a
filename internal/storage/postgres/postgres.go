// Package postgres implements storage.Storage on PostgreSQL through lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aanand-mishra/professores-api/internal/config"
	"github.com/aanand-mishra/professores-api/internal/storage"
	"github.com/aanand-mishra/professores-api/internal/types"

	_ "github.com/lib/pq"
)

const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 25
	defaultConnMaxLifetime = 5 * time.Minute
	defaultConnMaxIdleTime = 1 * time.Minute
)

// Postgres is the PostgreSQL implementation of storage.Storage.
type Postgres struct {
	db *sql.DB
}

var _ storage.Storage = (*Postgres)(nil)

// New connects to cfg.Storage.DSN, pings the server and creates the
// professores table if needed.
func New(ctx context.Context, cfg *config.Config) (*Postgres, error) {
	db, err := sql.Open("postgres", cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: open db: %w", err)
	}

	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS professores (
			id          BIGSERIAL PRIMARY KEY,
			nome        TEXT      NOT NULL,
			idade       INTEGER   NOT NULL,
			materia     TEXT      NOT NULL,
			observacoes TEXT      NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres.New: create table: %w", err)
	}

	return &Postgres{db: db}, nil
}

// CreateTeacher inserts t and returns the id assigned by the BIGSERIAL column.
func (p *Postgres) CreateTeacher(ctx context.Context, t types.Teacher) (int64, error) {
	var id int64

	err := storage.WithTx(ctx, p.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO professores (nome, idade, materia, observacoes)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			t.Name, t.Age, t.Subject, t.Notes,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("CreateTeacher: insert: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetTeacherByID returns storage.ErrNotFound when no row matches.
func (p *Postgres) GetTeacherByID(ctx context.Context, id int64) (types.Teacher, error) {
	var t types.Teacher

	err := p.db.QueryRowContext(ctx,
		`SELECT id, nome, idade, materia, observacoes FROM professores WHERE id = $1`,
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
func (p *Postgres) TeacherExists(ctx context.Context, id int64) (bool, error) {
	var exists bool

	err := p.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM professores WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("TeacherExists: scan: %w", err)
	}

	return exists, nil
}

// GetTeachers returns all teachers ordered by id, [] when there are none.
func (p *Postgres) GetTeachers(ctx context.Context) ([]types.Teacher, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, nome, idade, materia, observacoes FROM professores ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("GetTeachers: query: %w", err)
	}
	defer rows.Close()

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

// UpdateTeacherByID sets only the columns present in patch. An empty patch
// still checks that the row exists.
func (p *Postgres) UpdateTeacherByID(ctx context.Context, id int64, patch types.TeacherPatch) error {
	cols, args := storage.PatchColumns(patch)
	if len(cols) == 0 {
		ok, err := p.TeacherExists(ctx, id)
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
		set[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}
	query := fmt.Sprintf("UPDATE professores SET %s WHERE id = $%d", strings.Join(set, ", "), len(cols)+1)
	args = append(args, id)

	return storage.WithTx(ctx, p.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("UpdateTeacherByID: exec: %w", err)
		}
		return expectOneRow(result, "UpdateTeacherByID")
	})
}

// DeleteTeacherByID removes the row, or returns storage.ErrNotFound.
func (p *Postgres) DeleteTeacherByID(ctx context.Context, id int64) error {
	return storage.WithTx(ctx, p.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM professores WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("DeleteTeacherByID: exec: %w", err)
		}
		return expectOneRow(result, "DeleteTeacherByID")
	})
}

// Ping checks that the server is reachable.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

// expectOneRow maps "no row matched" to storage.ErrNotFound.
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
