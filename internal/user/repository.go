package user

import (
	"database/sql"

	"github.com/dustin/go-humanize"
	"github.com/lib/pq"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

// SaveUser inserts the user and returns ErrEmailExists when the email
// is already taken. Concurrent registers race between the EmailExists
// check and the insert, the unique index is the authority.
func (r *Repository) SaveUser(u User) error {
	_, err := r.db.Exec(
		`INSERT INTO users (id, fullname, email, phone, password_hash, user_role, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID,
		u.FullName,
		u.Email,
		u.Phone,
		u.PasswordHash,
		u.Role,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		return translateDuplicate(err)
	}
	return nil
}

func (r *Repository) EmailExists(email string) (bool, error) {
	var count int
	row := r.db.QueryRow(`SELECT COUNT(*) as c FROM users WHERE lower(email) = lower($1)`, email)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) UserByEmail(email string) (User, error) {
	row := r.db.QueryRow(
		`SELECT id, fullname, email, phone, password_hash, user_role, bio, skills, resume_id, resume_name, avatar_id, created_at, updated_at FROM users WHERE lower(email) = lower($1)`,
		email,
	)
	return scanUser(row)
}

func (r *Repository) UserByID(id string) (User, error) {
	row := r.db.QueryRow(
		`SELECT id, fullname, email, phone, password_hash, user_role, bio, skills, resume_id, resume_name, avatar_id, created_at, updated_at FROM users WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

// UpdateProfile applies a partial profile edit, leaving nil fields untouched.
func (r *Repository) UpdateProfile(p ProfileUpdate) error {
	_, err := r.db.Exec(
		`UPDATE users SET
			fullname = COALESCE($2, fullname),
			phone = COALESCE($3, phone),
			bio = COALESCE($4, bio),
			skills = COALESCE($5, skills),
			resume_id = COALESCE($6, resume_id),
			resume_name = COALESCE($7, resume_name),
			avatar_id = COALESCE($8, avatar_id),
			updated_at = NOW()
		WHERE id = $1`,
		p.UserID,
		nullableStr(p.FullName),
		nullableStr(p.Phone),
		nullableStr(p.Bio),
		nullableStr(p.Skills),
		nullableStr(p.ResumeID),
		nullableStr(p.ResumeName),
		nullableStr(p.AvatarID),
	)
	return err
}

func scanUser(row *sql.Row) (User, error) {
	u := User{}
	var bio, skills, resumeID, resumeName, avatarID sql.NullString
	err := row.Scan(
		&u.ID,
		&u.FullName,
		&u.Email,
		&u.Phone,
		&u.PasswordHash,
		&u.Role,
		&bio,
		&skills,
		&resumeID,
		&resumeName,
		&avatarID,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return u, err
	}
	if bio.Valid {
		u.Bio = bio.String
	}
	if skills.Valid {
		u.Skills = skills.String
	}
	if resumeID.Valid {
		u.ResumeID = resumeID.String
	}
	if resumeName.Valid {
		u.ResumeName = resumeName.String
	}
	if avatarID.Valid {
		u.AvatarID = avatarID.String
	}
	u.SkillsArray = ParseSkills(u.Skills)
	u.CreatedAtHumanized = humanize.Time(u.CreatedAt.UTC())
	return u, nil
}

func nullableStr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// translateDuplicate maps a postgres unique_violation to ErrEmailExists.
func translateDuplicate(err error) error {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return ErrEmailExists
	}
	return err
}
