package application

import (
	"errors"
	"time"
)

// ErrDuplicate is returned when a user applies twice to the same job.
// The unique index on (user_id, job_id) is what enforces this, so the
// error surfaces from the insert rather than from a prior lookup.
var ErrDuplicate = errors.New("user already applied to this job")

type Application struct {
	ID        string
	UserID    string
	JobID     string
	CreatedAt time.Time
}

// Applicant is the recruiter facing view of an application.
type Applicant struct {
	ApplicationID string
	UserID        string
	FullName      string
	Email         string
	Phone         string
	Skills        string
	ResumeID      string
	ResumeName    string
	AppliedAt     time.Time
	AppliedAgo    string
}

// AppliedJob is a job post annotated with when the user applied to it.
type AppliedJob struct {
	JobID       string
	Title       string
	CompanyName string
	Location    string
	JobType     string
	Salary      string
	AppliedAt   time.Time
	AppliedAgo  string
}
