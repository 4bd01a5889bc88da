package repository

import (
	"context"

	"github.com/notesapp/notes-api/internal/domain/entity"
)

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
