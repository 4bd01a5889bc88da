package repository

import (
	"context"

	"github.com/notesapp/notes-api/internal/domain/entity"
)

// NoteRepository defines the interface for note persistence.
// ListForUser and Search return every note the user owns or is a
// grantee of; visibility redaction happens above this layer.
type NoteRepository interface {
	Create(ctx context.Context, n *entity.Note) error
	GetByID(ctx context.Context, id string) (*entity.Note, error)
	Update(ctx context.Context, n *entity.Note) error
	Delete(ctx context.Context, id string) error
	ListForUser(ctx context.Context, userID string) ([]entity.Note, error)
	// Search matches q case-insensitively as a substring of title or body.
	Search(ctx context.Context, userID, q string) ([]entity.Note, error)
	// TitleExists reports whether ownerID already has a note with this
	// title, ignoring excludeID (pass "" on create).
	TitleExists(ctx context.Context, ownerID, title, excludeID string) (bool, error)
}
