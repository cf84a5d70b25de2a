// Package storage defines the contract every database backend must satisfy.
//
// Handlers depend only on this interface, so the backend can be switched in
// main.go and tests can pass an in-memory fake.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/professores-api/internal/types"
)

// ErrNotFound is returned when no teacher matches the given id.
var ErrNotFound = errors.New("teacher not found")

// Storage is the database contract.
type Storage interface {
	// CreateTeacher inserts a new teacher in its own transaction and returns
	// the generated id. The ID field of t is ignored.
	CreateTeacher(ctx context.Context, t types.Teacher) (int64, error)

	// GetTeacherByID returns ErrNotFound if the id has no record.
	GetTeacherByID(ctx context.Context, id int64) (types.Teacher, error)

	// TeacherExists is the cheap existence check run before any mutation.
	TeacherExists(ctx context.Context, id int64) (bool, error)

	// GetTeachers returns every teacher ordered by id. Never nil.
	GetTeachers(ctx context.Context) ([]types.Teacher, error)

	// UpdateTeacherByID writes only the fields set in patch. It returns
	// ErrNotFound if the row disappeared before the update ran.
	UpdateTeacherByID(ctx context.Context, id int64, patch types.TeacherPatch) error

	// DeleteTeacherByID removes a teacher permanently. It returns
	// ErrNotFound if there was nothing to delete.
	DeleteTeacherByID(ctx context.Context, id int64) error

	Ping(ctx context.Context) error
	Close() error
}

// PatchColumns lists the column names and values set in patch, in a fixed
// order, for backends that build an UPDATE ... SET clause.
func PatchColumns(patch types.TeacherPatch) ([]string, []any) {
	var cols []string
	var args []any
	if patch.Name != nil {
		cols = append(cols, "nome")
		args = append(args, *patch.Name)
	}
	if patch.Age != nil {
		cols = append(cols, "idade")
		args = append(args, int(*patch.Age))
	}
	if patch.Subject != nil {
		cols = append(cols, "materia")
		args = append(args, *patch.Subject)
	}
	if patch.Notes != nil {
		cols = append(cols, "observacoes")
		args = append(args, *patch.Notes)
	}
	return cols, args
}
