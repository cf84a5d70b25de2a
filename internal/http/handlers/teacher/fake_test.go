package teacher

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/aanand-mishra/professores-api/internal/storage"
	"github.com/aanand-mishra/professores-api/internal/types"
)

// memStorage is an in-memory storage.Storage. Setting failWith makes every
// call return that error.
type memStorage struct {
	mu       sync.Mutex
	nextID   int64
	rows     map[int64]types.Teacher
	failWith error

	// failWrites fails only UpdateTeacherByID and DeleteTeacherByID, after
	// the existence check has passed.
	failWrites error

	// vanishOnUpdate deletes the row right before UpdateTeacherByID runs,
	// simulating a concurrent delete between check and write.
	vanishOnUpdate bool
}

var _ storage.Storage = (*memStorage)(nil)

func newMemStorage() *memStorage {
	return &memStorage{rows: make(map[int64]types.Teacher)}
}

func (m *memStorage) CreateTeacher(_ context.Context, t types.Teacher) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return 0, m.failWith
	}
	m.nextID++
	t.ID = m.nextID
	m.rows[t.ID] = t
	return t.ID, nil
}

func (m *memStorage) GetTeacherByID(_ context.Context, id int64) (types.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return types.Teacher{}, m.failWith
	}
	t, ok := m.rows[id]
	if !ok {
		return types.Teacher{}, storage.ErrNotFound
	}
	return t, nil
}

func (m *memStorage) TeacherExists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return false, m.failWith
	}
	_, ok := m.rows[id]
	return ok, nil
}

func (m *memStorage) GetTeachers(_ context.Context) ([]types.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := make([]types.Teacher, 0, len(m.rows))
	for _, t := range m.rows {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStorage) UpdateTeacherByID(_ context.Context, id int64, patch types.TeacherPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if m.failWrites != nil {
		return m.failWrites
	}
	if m.vanishOnUpdate {
		delete(m.rows, id)
	}
	t, ok := m.rows[id]
	if !ok {
		return storage.ErrNotFound
	}
	patch.Apply(&t)
	m.rows[id] = t
	return nil
}

func (m *memStorage) DeleteTeacherByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if m.failWrites != nil {
		return m.failWrites
	}
	if _, ok := m.rows[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memStorage) Ping(context.Context) error { return m.failWith }
func (m *memStorage) Close() error               { return nil }

var errDiskFull = errors.New("disk full")
