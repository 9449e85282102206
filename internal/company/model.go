package company

import "time"

type Company struct {
	ID          string
	Name        string
	Description string
	URL         string
	Location    string
	Phone       string
	Email       string
	LogoID      string
	Slug        string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CompanyUpdate carries a partial company edit. Nil fields are left untouched.
type CompanyUpdate struct {
	ID          string
	Name        *string
	Description *string
	URL         *string
	Location    *string
	Phone       *string
	Email       *string
	LogoID      *string
	Slug        *string
}
