package application

import (
	"database/sql"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lib/pq"
	"github.com/segmentio/ksuid"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

// ApplyToJob records the application and returns ErrDuplicate if the user
// already applied to this job.
func (r *Repository) ApplyToJob(userID, jobID string) (Application, error) {
	id, err := ksuid.NewRandom()
	if err != nil {
		return Application{}, err
	}
	a := Application{
		ID:        id.String(),
		UserID:    userID,
		JobID:     jobID,
		CreatedAt: time.Now().UTC(),
	}
	_, err = r.db.Exec(
		`INSERT INTO application (id, user_id, job_id, created_at) VALUES ($1, $2, $3, $4)`,
		a.ID,
		a.UserID,
		a.JobID,
		a.CreatedAt,
	)
	if err != nil {
		return Application{}, translateDuplicate(err)
	}
	return a, nil
}

func (r *Repository) HasApplied(userID, jobID string) (bool, error) {
	var count int
	row := r.db.QueryRow(`SELECT COUNT(*) as c FROM application WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// ApplicantsForJob returns who applied to the given job, newest first.
func (r *Repository) ApplicantsForJob(jobID string) ([]Applicant, error) {
	rows, err := r.db.Query(
		`SELECT a.id, u.id, u.fullname, u.email, u.phone, u.skills, u.resume_id, u.resume_name, a.created_at
		FROM application a JOIN users u ON a.user_id = u.id
		WHERE a.job_id = $1
		ORDER BY a.created_at DESC`,
		jobID,
	)
	if err == sql.ErrNoRows {
		return []Applicant{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	applicants := make([]Applicant, 0)
	for rows.Next() {
		ap := Applicant{}
		var skills, resumeID, resumeName sql.NullString
		err = rows.Scan(
			&ap.ApplicationID,
			&ap.UserID,
			&ap.FullName,
			&ap.Email,
			&ap.Phone,
			&skills,
			&resumeID,
			&resumeName,
			&ap.AppliedAt,
		)
		if err != nil {
			return applicants, err
		}
		if skills.Valid {
			ap.Skills = skills.String
		}
		if resumeID.Valid {
			ap.ResumeID = resumeID.String
		}
		if resumeName.Valid {
			ap.ResumeName = resumeName.String
		}
		ap.AppliedAgo = humanize.Time(ap.AppliedAt.UTC())
		applicants = append(applicants, ap)
	}
	return applicants, rows.Err()
}

// AppliedJobsForUser returns the jobs the user applied to, most recent
// application first.
func (r *Repository) AppliedJobsForUser(userID string) ([]AppliedJob, error) {
	rows, err := r.db.Query(
		`SELECT j.id, j.title, c.name, j.location, j.job_type, j.salary, a.created_at
		FROM application a
		JOIN job j ON a.job_id = j.id
		JOIN company c ON j.company_id = c.id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC`,
		userID,
	)
	if err == sql.ErrNoRows {
		return []AppliedJob{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	applied := make([]AppliedJob, 0)
	for rows.Next() {
		aj := AppliedJob{}
		err = rows.Scan(
			&aj.JobID,
			&aj.Title,
			&aj.CompanyName,
			&aj.Location,
			&aj.JobType,
			&aj.Salary,
			&aj.AppliedAt,
		)
		if err != nil {
			return applied, err
		}
		aj.AppliedAgo = humanize.Time(aj.AppliedAt.UTC())
		applied = append(applied, aj)
	}
	return applied, rows.Err()
}

// translateDuplicate maps a postgres unique_violation to ErrDuplicate.
func translateDuplicate(err error) error {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
