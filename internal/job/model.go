package job

import (
	"strings"
	"time"
)

const (
	TypeFullTime   = "Full-time"
	TypePartTime   = "Part-time"
	TypeContract   = "Contract"
	TypeInternship = "Internship"
)

// ValidType reports whether jobType is one of the supported job types.
func ValidType(jobType string, allowed []string) bool {
	for _, t := range allowed {
		if t == jobType {
			return true
		}
	}
	return false
}

type JobPost struct {
	ID          string
	Title       string
	Description string
	Salary      string
	Location    string
	JobType     string
	CompanyID   string
	CreatedBy   string
	Slug        string
	CreatedAt   time.Time

	// joined from company
	CompanyName   string
	CompanyLogoID string

	TimeAgo         string
	DescriptionHTML string
}

// MatchesFilter reports whether the job matches the free text filter.
// Matching is case-insensitive on the job title or the company name,
// an empty filter matches everything.
func (j *JobPost) MatchesFilter(filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return true
	}
	filter = strings.ToLower(filter)
	if strings.Contains(strings.ToLower(j.Title), filter) {
		return true
	}
	return strings.Contains(strings.ToLower(j.CompanyName), filter)
}

// FilterJobs keeps only the jobs matching the free text filter.
func FilterJobs(jobs []JobPost, filter string) []JobPost {
	if strings.TrimSpace(filter) == "" {
		return jobs
	}
	out := make([]JobPost, 0, len(jobs))
	for _, j := range jobs {
		if j.MatchesFilter(filter) {
			out = append(out, j)
		}
	}
	return out
}
