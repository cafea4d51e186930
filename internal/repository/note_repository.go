package repository

import (
	"context"
	"errors"
	"strings"
	"studyshare-be/internal/entity"
	"studyshare-be/internal/pkg/serverutils"
	"studyshare-be/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type INoteRepository interface {
	UsingTx(ctx context.Context, tx database.DatabaseQueryer) INoteRepository
	Create(ctx context.Context, note *entity.Note) error
	List(ctx context.Context, query string) ([]*entity.Note, error)
	GetById(ctx context.Context, id uuid.UUID) (*entity.Note, error)
	UpdatePreview(ctx context.Context, id uuid.UUID, preview string) error
}

type noteRepository struct {
	db database.DatabaseQueryer
}

func NewNoteRepository(db database.DatabaseQueryer) INoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) UsingTx(ctx context.Context, tx database.DatabaseQueryer) INoteRepository {
	return &noteRepository{db: tx}
}

const noteColumns = `id, title, subject, description, file_url, file_name, file_size, file_type,
		object_key, uploaded_by, uploaded_at, downloads, rating, preview`

// Create inserts the note and stores the database clock reading back into
// note.UploadedAt.
func (r *noteRepository) Create(ctx context.Context, note *entity.Note) error {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO note (id, title, subject, description, file_url, file_name, file_size, file_type,
		                   object_key, uploaded_by, downloads, rating)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING uploaded_at`,
		note.Id,
		note.Title,
		note.Subject,
		note.Description,
		note.File.Url,
		note.File.Name,
		note.File.Size,
		note.File.ContentType,
		note.File.ObjectKey,
		note.UploadedBy,
		note.Downloads,
		note.Rating,
	)

	return row.Scan(&note.UploadedAt)
}

func (r *noteRepository) List(ctx context.Context, query string) ([]*entity.Note, error) {
	sql := `SELECT ` + noteColumns + ` FROM note`
	args := []any{}

	if q := strings.TrimSpace(query); q != "" {
		sql += ` WHERE title ILIKE $1 OR subject ILIKE $1 OR description ILIKE $1`
		args = append(args, "%"+escapeLike(q)+"%")
	}
	sql += ` ORDER BY uploaded_at DESC`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]*entity.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}

func (r *noteRepository) GetById(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+noteColumns+` FROM note WHERE id = $1`,
		id,
	)

	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, serverutils.ErrNotFound
		}
		return nil, err
	}

	return note, nil
}

func (r *noteRepository) UpdatePreview(ctx context.Context, id uuid.UUID, preview string) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE note SET preview = $1 WHERE id = $2`,
		preview,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return serverutils.ErrNotFound
	}
	return nil
}

func scanNote(row pgx.Row) (*entity.Note, error) {
	var n entity.Note
	err := row.Scan(
		&n.Id,
		&n.Title,
		&n.Subject,
		&n.Description,
		&n.File.Url,
		&n.File.Name,
		&n.File.Size,
		&n.File.ContentType,
		&n.File.ObjectKey,
		&n.UploadedBy,
		&n.UploadedAt,
		&n.Downloads,
		&n.Rating,
		&n.Preview,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
