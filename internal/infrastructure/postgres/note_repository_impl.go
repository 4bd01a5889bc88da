package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/notesapp/notes-api/internal/domain/entity"
	"github.com/notesapp/notes-api/internal/domain/repository"
)

type NoteRepository struct {
	pool *pgxpool.Pool
}

func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

func (r *NoteRepository) Create(ctx context.Context, n *entity.Note) error {
	if n.SharedWithUserIDs == nil {
		n.SharedWithUserIDs = []string{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO notes (owner_id, title, body, shared_with_user_ids, date_added)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, n.OwnerID, n.Title, n.Body, n.SharedWithUserIDs, n.DateAdded)

	if err := row.Scan(&n.ID); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *NoteRepository) GetByID(ctx context.Context, id string) (*entity.Note, error) {
	n := &entity.Note{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, title, body, shared_with_user_ids, date_added, date_modified
		FROM notes
		WHERE id = $1
	`, id)

	if err := row.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Body,
		&n.SharedWithUserIDs, &n.DateAdded, &n.DateModified); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return n, nil
}

func (r *NoteRepository) Update(ctx context.Context, n *entity.Note) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE notes
		SET title = $1, body = $2, shared_with_user_ids = $3, date_modified = $4
		WHERE id = $5
	`, n.Title, n.Body, n.SharedWithUserIDs, n.DateModified, n.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *NoteRepository) ListForUser(ctx context.Context, userID string) ([]entity.Note, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, title, body, shared_with_user_ids, date_added, date_modified
		FROM notes
		WHERE owner_id = $1 OR $1 = ANY(shared_with_user_ids)
		ORDER BY date_added
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNotes(rows)
}

func (r *NoteRepository) Search(ctx context.Context, userID, q string) ([]entity.Note, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, title, body, shared_with_user_ids, date_added, date_modified
		FROM notes
		WHERE (owner_id = $1 OR $1 = ANY(shared_with_user_ids))
		  AND (title ILIKE '%' || $2 || '%' OR body ILIKE '%' || $2 || '%')
		ORDER BY date_added
	`, userID, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNotes(rows)
}

func (r *NoteRepository) TitleExists(ctx context.Context, ownerID, title, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM notes
			WHERE owner_id = $1 AND title = $2 AND id::text <> $3
		)
	`, ownerID, title, excludeID).Scan(&exists)
	return exists, err
}

func scanNotes(rows pgx.Rows) ([]entity.Note, error) {
	notes := make([]entity.Note, 0)
	for rows.Next() {
		var n entity.Note
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Body,
			&n.SharedWithUserIDs, &n.DateAdded, &n.DateModified); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

var _ repository.NoteRepository = (*NoteRepository)(nil)
