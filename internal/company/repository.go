package company

import (
	"database/sql"
	"time"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

func (r *Repository) SaveCompany(c Company) error {
	_, err := r.db.Exec(
		`INSERT INTO company (id, name, description, url, location, phone, email, logo_id, slug, created_by, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`,
		c.ID,
		c.Name,
		nullable(c.Description),
		nullable(c.URL),
		nullable(c.Location),
		nullable(c.Phone),
		nullable(c.Email),
		nullable(c.LogoID),
		c.Slug,
		c.CreatedBy,
		time.Now().UTC(),
	)
	return err
}

// UpdateCompany applies a partial company edit, leaving nil fields untouched.
func (r *Repository) UpdateCompany(u CompanyUpdate) error {
	_, err := r.db.Exec(
		`UPDATE company SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			url = COALESCE($4, url),
			location = COALESCE($5, location),
			phone = COALESCE($6, phone),
			email = COALESCE($7, email),
			logo_id = COALESCE($8, logo_id),
			slug = COALESCE($9, slug),
			updated_at = NOW()
		WHERE id = $1`,
		u.ID,
		nullablePtr(u.Name),
		nullablePtr(u.Description),
		nullablePtr(u.URL),
		nullablePtr(u.Location),
		nullablePtr(u.Phone),
		nullablePtr(u.Email),
		nullablePtr(u.LogoID),
		nullablePtr(u.Slug),
	)
	return err
}

func (r *Repository) CompanyByID(id string) (Company, error) {
	row := r.db.QueryRow(
		`SELECT id, name, description, url, location, phone, email, logo_id, slug, created_by, created_at, updated_at FROM company WHERE id = $1`,
		id,
	)
	return scanCompany(row)
}

func (r *Repository) CompaniesByRecruiter(recruiterID string) ([]Company, error) {
	rows, err := r.db.Query(
		`SELECT id, name, description, url, location, phone, email, logo_id, slug, created_by, created_at, updated_at FROM company WHERE created_by = $1 ORDER BY created_at DESC`,
		recruiterID,
	)
	if err == sql.ErrNoRows {
		return []Company{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	companies := make([]Company, 0)
	for rows.Next() {
		c, err := scanCompanyRows(rows)
		if err != nil {
			return companies, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCompany(row *sql.Row) (Company, error) {
	return scanCompanyRows(row)
}

func scanCompanyRows(row rowScanner) (Company, error) {
	c := Company{}
	var description, url, location, phone, email, logoID sql.NullString
	err := row.Scan(
		&c.ID,
		&c.Name,
		&description,
		&url,
		&location,
		&phone,
		&email,
		&logoID,
		&c.Slug,
		&c.CreatedBy,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return c, err
	}
	if description.Valid {
		c.Description = description.String
	}
	if url.Valid {
		c.URL = url.String
	}
	if location.Valid {
		c.Location = location.String
	}
	if phone.Valid {
		c.Phone = phone.String
	}
	if email.Valid {
		c.Email = email.String
	}
	if logoID.Valid {
		c.LogoID = logoID.String
	}
	return c, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullablePtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
