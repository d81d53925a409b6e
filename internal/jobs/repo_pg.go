package jobs

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// List returns every posting, newest first.
func (r *PGRepo) List(ctx context.Context) ([]Job, error) {
	const query = `
SELECT id, job_title, company_name, description, posted_at
FROM jobs
ORDER BY posted_at DESC, id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Job{}
	for rows.Next() {
		var job Job
		var company, description sql.NullString
		if err := rows.Scan(&job.ID, &job.Title, &company, &description, &job.PostedAt); err != nil {
			return nil, err
		}
		job.CompanyName = company.String
		job.Description = description.String
		out = append(out, job)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
