// Package memory provides in-memory repository implementations with
// the same contract as the postgres ones. They back the test suites so
// handlers and services can be exercised without a database.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/notesapp/notes-api/internal/domain/entity"
	"github.com/notesapp/notes-api/internal/domain/repository"
)

type UserRepository struct {
	mu    sync.Mutex
	users map[string]entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]entity.User)}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	r.users[u.ID] = *u
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Delete removes a user; tests use it to simulate tokens that refer to
// accounts no longer present in the credential store.
func (r *UserRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

type NoteRepository struct {
	mu    sync.Mutex
	notes map[string]entity.Note
}

func NewNoteRepository() *NoteRepository {
	return &NoteRepository{notes: make(map[string]entity.Note)}
}

func (r *NoteRepository) Create(_ context.Context, n *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.notes {
		if existing.OwnerID == n.OwnerID && existing.Title == n.Title {
			return repository.ErrDuplicate
		}
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.SharedWithUserIDs == nil {
		n.SharedWithUserIDs = []string{}
	}
	r.notes[n.ID] = clone(n)
	return nil
}

func (r *NoteRepository) GetByID(_ context.Context, id string) (*entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	n.SharedWithUserIDs = slices.Clone(n.SharedWithUserIDs)
	return &n, nil
}

func (r *NoteRepository) Update(_ context.Context, n *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[n.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, existing := range r.notes {
		if existing.ID != n.ID && existing.OwnerID == n.OwnerID && existing.Title == n.Title {
			return repository.ErrDuplicate
		}
	}
	r.notes[n.ID] = clone(n)
	return nil
}

func (r *NoteRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.notes, id)
	return nil
}

func (r *NoteRepository) ListForUser(_ context.Context, userID string) ([]entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Note, 0)
	for _, n := range r.notes {
		if n.OwnerID == userID || slices.Contains(n.SharedWithUserIDs, userID) {
			out = append(out, clone(&n))
		}
	}
	sortByDateAdded(out)
	return out, nil
}

func (r *NoteRepository) Search(_ context.Context, userID, q string) ([]entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q = strings.ToLower(q)
	out := make([]entity.Note, 0)
	for _, n := range r.notes {
		if n.OwnerID != userID && !slices.Contains(n.SharedWithUserIDs, userID) {
			continue
		}
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Body), q) {
			out = append(out, clone(&n))
		}
	}
	sortByDateAdded(out)
	return out, nil
}

func (r *NoteRepository) TitleExists(_ context.Context, ownerID, title, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notes {
		if n.OwnerID == ownerID && n.Title == title && n.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func clone(n *entity.Note) entity.Note {
	out := *n
	out.SharedWithUserIDs = slices.Clone(n.SharedWithUserIDs)
	return out
}

func sortByDateAdded(notes []entity.Note) {
	slices.SortFunc(notes, func(a, b entity.Note) int {
		return a.DateAdded.Compare(b.DateAdded)
	})
}

var (
	_ repository.UserRepository = (*UserRepository)(nil)
	_ repository.NoteRepository = (*NoteRepository)(nil)
)
