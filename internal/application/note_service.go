package application

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/notesapp/notes-api/internal/domain/entity"
	"github.com/notesapp/notes-api/internal/domain/policy"
	"github.com/notesapp/notes-api/internal/domain/repository"
)

// NoteService orchestrates the note store with the access policy.
// Every operation takes the already-resolved caller id; id syntax is
// checked before the store is touched.
type NoteService struct {
	Notes  repository.NoteRepository
	Users  repository.UserRepository
	Logger *logrus.Logger
}

func NewNoteService(notes repository.NoteRepository, users repository.UserRepository, logger *logrus.Logger) *NoteService {
	return &NoteService{Notes: notes, Users: users, Logger: logger}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// List returns every note the caller owns or was granted, redacted.
func (s *NoteService) List(ctx context.Context, callerID string) ([]entity.Note, error) {
	notes, err := s.Notes.ListForUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return policy.FilterVisible(notes, callerID), nil
}

// Get fetches one note by id. A nonexistent id is NotFound; an
// existing note the caller has no relation to is Forbidden.
func (s *NoteService) Get(ctx context.Context, callerID, noteID string) (*entity.Note, error) {
	if !validID(noteID) {
		return nil, ErrInvalidNoteID
	}
	n, err := s.Notes.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	if !policy.CanRead(n, callerID) {
		return nil, ErrForbidden
	}
	return policy.Redact(n, callerID), nil
}

func (s *NoteService) Create(ctx context.Context, callerID, title, body string) (*entity.Note, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}
	taken, err := s.Notes.TitleExists(ctx, callerID, title, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateTitle
	}

	n := &entity.Note{
		OwnerID:           callerID,
		Title:             title,
		Body:              body,
		SharedWithUserIDs: []string{},
		DateAdded:         time.Now(),
	}
	if err := s.Notes.Create(ctx, n); err != nil {
		// unique (owner_id, title) backstop for concurrent creates
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}
	return n, nil
}

func (s *NoteService) Update(ctx context.Context, callerID, noteID, title, body string) (*entity.Note, error) {
	if !validID(noteID) {
		return nil, ErrInvalidNoteID
	}
	if title == "" {
		return nil, ErrTitleRequired
	}
	n, err := s.Notes.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	if !policy.Allowed(n.OwnerID, n.SharedWithUserIDs, callerID, policy.OpUpdate) {
		return nil, ErrForbidden
	}
	// Excluding the note's own id lets a rename to the current title
	// pass the uniqueness check.
	taken, err := s.Notes.TitleExists(ctx, callerID, title, noteID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateTitle
	}

	now := time.Now()
	n.Title = title
	n.Body = body
	n.DateModified = &now
	if err := s.Notes.Update(ctx, n); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}
	return n, nil
}

func (s *NoteService) Delete(ctx context.Context, callerID, noteID string) error {
	if !validID(noteID) {
		return ErrInvalidNoteID
	}
	n, err := s.Notes.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoteNotFound
		}
		return err
	}
	if !policy.Allowed(n.OwnerID, n.SharedWithUserIDs, callerID, policy.OpDelete) {
		return ErrForbidden
	}
	return s.Notes.Delete(ctx, noteID)
}

// Share grants targetID read access. Only the owner may share, the
// target must exist, differ from the caller and not already be a
// grantee.
func (s *NoteService) Share(ctx context.Context, callerID, noteID, targetID string) (*entity.Note, error) {
	if !validID(targetID) {
		return nil, ErrInvalidUserID
	}
	if !validID(noteID) {
		return nil, ErrInvalidNoteID
	}
	if callerID == targetID {
		return nil, ErrSelfShare
	}
	if _, err := s.Users.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	n, err := s.Notes.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	if !policy.Allowed(n.OwnerID, n.SharedWithUserIDs, callerID, policy.OpShare) {
		return nil, ErrForbidden
	}
	if slices.Contains(n.SharedWithUserIDs, targetID) {
		return nil, ErrAlreadyShared
	}

	n.SharedWithUserIDs = append(n.SharedWithUserIDs, targetID)
	if err := s.Notes.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Search runs a case-insensitive substring match over title and body
// of the caller's visible notes. A missing query and an empty result
// set both collapse to ErrNoResults.
func (s *NoteService) Search(ctx context.Context, callerID, q string) ([]entity.Note, error) {
	if q == "" {
		return nil, ErrNoResults
	}
	notes, err := s.Notes.Search(ctx, callerID, q)
	if err != nil {
		return nil, err
	}
	visible := policy.FilterVisible(notes, callerID)
	if len(visible) == 0 {
		return nil, ErrNoResults
	}
	return visible, nil
}
