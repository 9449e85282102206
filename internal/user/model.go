package user

import (
	"errors"
	"time"
)

const (
	RoleStudent   = "student"
	RoleRecruiter = "recruiter"
)

// ErrEmailExists is returned when an insert hits the users_email_idx
// unique index.
var ErrEmailExists = errors.New("a user with this email already exists")

// ValidRole reports whether the given role is one the site knows about.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleRecruiter
}

type User struct {
	ID           string
	FullName     string
	Email        string
	Phone        string
	Role         string
	PasswordHash string
	Bio          string
	Skills       string // comma separated, exposed as SkillsArray
	ResumeID     string
	ResumeName   string
	AvatarID     string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	SkillsArray        []string
	CreatedAtHumanized string
}

// ProfileUpdate carries a partial profile edit. Nil fields are left untouched.
type ProfileUpdate struct {
	UserID     string
	FullName   *string
	Phone      *string
	Bio        *string
	Skills     *string
	ResumeID   *string
	ResumeName *string
	AvatarID   *string
}
