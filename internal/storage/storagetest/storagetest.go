// Package storagetest holds the behaviour every storage.Storage backend must
// show. Backends call Run from their own tests.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/aanand-mishra/professores-api/internal/storage"
	"github.com/aanand-mishra/professores-api/internal/types"
)

func ptr[T any](v T) *T { return &v }

// Run exercises s. newStorage must return an empty store.
func Run(t *testing.T, newStorage func(t *testing.T) storage.Storage) {
	t.Helper()

	t.Run("CreateThenGet", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		id, err := s.CreateTeacher(ctx, types.Teacher{Name: "João Silva", Age: 40, Subject: "Análise de Sistemas"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if id <= 0 {
			t.Fatalf("id = %d, want > 0", id)
		}

		got, err := s.GetTeacherByID(ctx, id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		want := types.Teacher{ID: id, Name: "João Silva", Age: 40, Subject: "Análise de Sistemas", Notes: ""}
		if got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}

		ok, err := s.TeacherExists(ctx, id)
		if err != nil || !ok {
			t.Errorf("exists = %v, %v; want true, nil", ok, err)
		}
	})

	t.Run("MissingID", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		if _, err := s.GetTeacherByID(ctx, 999); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("get err = %v, want ErrNotFound", err)
		}
		ok, err := s.TeacherExists(ctx, 999)
		if err != nil || ok {
			t.Errorf("exists = %v, %v; want false, nil", ok, err)
		}
		if err := s.UpdateTeacherByID(ctx, 999, types.TeacherPatch{Age: ptr(types.Years(1))}); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("update err = %v, want ErrNotFound", err)
		}
		if err := s.UpdateTeacherByID(ctx, 999, types.TeacherPatch{}); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("empty update err = %v, want ErrNotFound", err)
		}
		if err := s.DeleteTeacherByID(ctx, 999); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("delete err = %v, want ErrNotFound", err)
		}
	})

	t.Run("ListOrderedAndNeverNil", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		list, err := s.GetTeachers(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if list == nil || len(list) != 0 {
			t.Fatalf("empty list = %#v, want non-nil empty slice", list)
		}

		for _, name := range []string{"Ana", "Bruno", "Carla"} {
			if _, err := s.CreateTeacher(ctx, types.Teacher{Name: name, Age: 30, Subject: "Matemática"}); err != nil {
				t.Fatalf("create %s: %v", name, err)
			}
		}

		list, err = s.GetTeachers(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 3 {
			t.Fatalf("len = %d, want 3", len(list))
		}
		for i := 1; i < len(list); i++ {
			if list[i-1].ID >= list[i].ID {
				t.Errorf("list not ordered by id: %+v", list)
			}
		}
	})

	t.Run("PartialUpdate", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		id, err := s.CreateTeacher(ctx, types.Teacher{Name: "Maria", Age: 35, Subject: "História", Notes: "manhã"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		patch := types.TeacherPatch{Subject: ptr("Geografia")}
		for i := 0; i < 2; i++ {
			if err := s.UpdateTeacherByID(ctx, id, patch); err != nil {
				t.Fatalf("update #%d: %v", i+1, err)
			}
		}

		got, err := s.GetTeacherByID(ctx, id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		want := types.Teacher{ID: id, Name: "Maria", Age: 35, Subject: "Geografia", Notes: "manhã"}
		if got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("DeleteIsTerminal", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		id, err := s.CreateTeacher(ctx, types.Teacher{Name: "Pedro", Age: 50, Subject: "Física"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := s.DeleteTeacherByID(ctx, id); err != nil {
			t.Fatalf("delete: %v", err)
		}

		if _, err := s.GetTeacherByID(ctx, id); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("get after delete err = %v, want ErrNotFound", err)
		}
		if err := s.DeleteTeacherByID(ctx, id); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second delete err = %v, want ErrNotFound", err)
		}

		list, err := s.GetTeachers(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		for _, tc := range list {
			if tc.ID == id {
				t.Errorf("deleted id %d still listed", id)
			}
		}

		next, err := s.CreateTeacher(ctx, types.Teacher{Name: "Novo", Age: 28, Subject: "Química"})
		if err != nil {
			t.Fatalf("create after delete: %v", err)
		}
		if next <= id {
			t.Errorf("id %d reused or went backwards (deleted %d)", next, id)
		}
	})

	t.Run("Ping", func(t *testing.T) {
		s := newStorage(t)
		if err := s.Ping(context.Background()); err != nil {
			t.Errorf("ping: %v", err)
		}
	})
}
