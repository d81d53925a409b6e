package cv

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Upsert stores the resume, replacing any existing row for the user. The
// UNIQUE constraint on user_id guarantees one row per user.
func (r *PGRepo) Upsert(ctx context.Context, record UserCV) (UserCV, error) {
	const query = `
INSERT INTO user_cvs (id, user_id, file_name, content_type, file_data, text_preview, upload_date)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (user_id) DO UPDATE SET
    file_name    = EXCLUDED.file_name,
    content_type = EXCLUDED.content_type,
    file_data    = EXCLUDED.file_data,
    text_preview = EXCLUDED.text_preview,
    upload_date  = EXCLUDED.upload_date
RETURNING id, upload_date`
	now := time.Now().UTC()
	err := r.DB.QueryRowContext(ctx, query,
		uuid.NewString(), record.UserID, record.FileName, record.ContentType,
		record.FileData, record.TextPreview, now,
	).Scan(&record.ID, &record.UploadDate)
	if err != nil {
		return UserCV{}, err
	}
	return record, nil
}

// GetByUserID returns the stored resume or ErrNotFound.
func (r *PGRepo) GetByUserID(ctx context.Context, userID string) (UserCV, error) {
	const query = `
SELECT id, user_id, file_name, content_type, file_data, text_preview, upload_date
FROM user_cvs
WHERE user_id = $1
LIMIT 1`
	var record UserCV
	var preview sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&record.ID,
		&record.UserID,
		&record.FileName,
		&record.ContentType,
		&record.FileData,
		&preview,
		&record.UploadDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UserCV{}, ErrNotFound
		}
		return UserCV{}, err
	}
	record.TextPreview = preview.String
	return record, nil
}

var _ Repo = (*PGRepo)(nil)
