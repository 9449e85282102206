package job

import (
	"database/sql"

	"github.com/dustin/go-humanize"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

func (r *Repository) SaveJob(j JobPost) error {
	_, err := r.db.Exec(
		`INSERT INTO job (id, title, description, salary, location, job_type, company_id, created_by, slug, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		j.ID,
		j.Title,
		j.Description,
		j.Salary,
		j.Location,
		j.JobType,
		j.CompanyID,
		j.CreatedBy,
		j.Slug,
		j.CreatedAt,
	)
	return err
}

func (r *Repository) JobByID(id string) (JobPost, error) {
	row := r.db.QueryRow(
		`SELECT j.id, j.title, j.description, j.salary, j.location, j.job_type, j.company_id, j.created_by, j.slug, j.created_at, c.name, c.logo_id
		FROM job j JOIN company c ON j.company_id = c.id
		WHERE j.id = $1`,
		id,
	)
	j := JobPost{}
	var logoID sql.NullString
	err := row.Scan(
		&j.ID,
		&j.Title,
		&j.Description,
		&j.Salary,
		&j.Location,
		&j.JobType,
		&j.CompanyID,
		&j.CreatedBy,
		&j.Slug,
		&j.CreatedAt,
		&j.CompanyName,
		&logoID,
	)
	if err != nil {
		return j, err
	}
	if logoID.Valid {
		j.CompanyLogoID = logoID.String
	}
	j.TimeAgo = humanize.Time(j.CreatedAt.UTC())
	return j, nil
}

// JobsByQuery returns a page of jobs matching the free text filter along
// with the total number of matching rows. The filter is matched
// case-insensitively against the job title and the company name, an empty
// filter matches everything.
func (r *Repository) JobsByQuery(query string, pageID, jobsPerPage int) ([]JobPost, int, error) {
	var rows *sql.Rows
	var err error
	offset := pageID*jobsPerPage - jobsPerPage
	if query != "" {
		rows, err = r.db.Query(
			`SELECT count(*) OVER() AS full_count, j.id, j.title, j.description, j.salary, j.location, j.job_type, j.company_id, j.created_by, j.slug, j.created_at, c.name, c.logo_id
			FROM job j JOIN company c ON j.company_id = c.id
			WHERE j.title ILIKE '%' || $1 || '%' OR c.name ILIKE '%' || $1 || '%'
			ORDER BY j.created_at DESC LIMIT $2 OFFSET $3`,
			query,
			jobsPerPage,
			offset,
		)
	} else {
		rows, err = r.db.Query(
			`SELECT count(*) OVER() AS full_count, j.id, j.title, j.description, j.salary, j.location, j.job_type, j.company_id, j.created_by, j.slug, j.created_at, c.name, c.logo_id
			FROM job j JOIN company c ON j.company_id = c.id
			ORDER BY j.created_at DESC LIMIT $1 OFFSET $2`,
			jobsPerPage,
			offset,
		)
	}
	if err == sql.ErrNoRows {
		return []JobPost{}, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	jobs := make([]JobPost, 0, jobsPerPage)
	var fullRowsCount int
	for rows.Next() {
		j := JobPost{}
		var logoID sql.NullString
		err = rows.Scan(
			&fullRowsCount,
			&j.ID,
			&j.Title,
			&j.Description,
			&j.Salary,
			&j.Location,
			&j.JobType,
			&j.CompanyID,
			&j.CreatedBy,
			&j.Slug,
			&j.CreatedAt,
			&j.CompanyName,
			&logoID,
		)
		if err != nil {
			return jobs, fullRowsCount, err
		}
		if logoID.Valid {
			j.CompanyLogoID = logoID.String
		}
		j.TimeAgo = humanize.Time(j.CreatedAt.UTC())
		jobs = append(jobs, j)
	}
	return jobs, fullRowsCount, rows.Err()
}

// JobsByRecruiter returns all jobs posted by the given recruiter,
// newest first.
func (r *Repository) JobsByRecruiter(recruiterID string) ([]JobPost, error) {
	rows, err := r.db.Query(
		`SELECT j.id, j.title, j.description, j.salary, j.location, j.job_type, j.company_id, j.created_by, j.slug, j.created_at, c.name, c.logo_id
		FROM job j JOIN company c ON j.company_id = c.id
		WHERE j.created_by = $1
		ORDER BY j.created_at DESC`,
		recruiterID,
	)
	if err == sql.ErrNoRows {
		return []JobPost{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	jobs := make([]JobPost, 0)
	for rows.Next() {
		j := JobPost{}
		var logoID sql.NullString
		err = rows.Scan(
			&j.ID,
			&j.Title,
			&j.Description,
			&j.Salary,
			&j.Location,
			&j.JobType,
			&j.CompanyID,
			&j.CreatedBy,
			&j.Slug,
			&j.CreatedAt,
			&j.CompanyName,
			&logoID,
		)
		if err != nil {
			return jobs, err
		}
		if logoID.Valid {
			j.CompanyLogoID = logoID.String
		}
		j.TimeAgo = humanize.Time(j.CreatedAt.UTC())
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// LatestJobs returns the most recent job posts, used by the feed.
func (r *Repository) LatestJobs(limit int) ([]JobPost, error) {
	rows, err := r.db.Query(
		`SELECT j.id, j.title, j.description, j.salary, j.location, j.job_type, j.company_id, j.created_by, j.slug, j.created_at, c.name, c.logo_id
		FROM job j JOIN company c ON j.company_id = c.id
		ORDER BY j.created_at DESC LIMIT $1`,
		limit,
	)
	if err == sql.ErrNoRows {
		return []JobPost{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	jobs := make([]JobPost, 0, limit)
	for rows.Next() {
		j := JobPost{}
		var logoID sql.NullString
		err = rows.Scan(
			&j.ID,
			&j.Title,
			&j.Description,
			&j.Salary,
			&j.Location,
			&j.JobType,
			&j.CompanyID,
			&j.CreatedBy,
			&j.Slug,
			&j.CreatedAt,
			&j.CompanyName,
			&logoID,
		)
		if err != nil {
			return jobs, err
		}
		if logoID.Valid {
			j.CompanyLogoID = logoID.String
		}
		j.TimeAgo = humanize.Time(j.CreatedAt.UTC())
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}
