package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hiredeck/job-board/internal/company"
	"github.com/hiredeck/job-board/internal/server"
	"github.com/hiredeck/job-board/internal/user"

	"github.com/gorilla/mux"
	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"
	"github.com/segmentio/ksuid"
)

func CreateCompanyHandler(svr server.Server, companyRepo companyGetSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := signedInUser(svr, r)
		if err != nil {
			svr.Error(w, http.StatusUnauthorized, "not signed in")
			return
		}
		if claims.Role != user.RoleRecruiter {
			svr.Error(w, http.StatusForbidden, "only recruiters can create companies")
			return
		}
		req := &struct {
			Name        string `json:"name" validate:"required,max=255"`
			Description string `json:"description" validate:"max=5000"`
			URL         string `json:"url" validate:"omitempty,url,max=255"`
			Location    string `json:"location" validate:"max=255"`
			Phone       string `json:"phone" validate:"max=30"`
			Email       string `json:"email" validate:"omitempty,email"`
			LogoID      string `json:"logo_id"`
		}{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			svr.Error(w, http.StatusBadRequest, "request is invalid")
			return
		}
		if err := validate.Struct(req); err != nil {
			svr.Error(w, http.StatusBadRequest, "request is invalid")
			return
		}
		req.Name = bluemonday.StrictPolicy().Sanitize(req.Name)
		req.Description = bluemonday.StrictPolicy().Sanitize(req.Description)
		req.Location = bluemonday.StrictPolicy().Sanitize(req.Location)
		k, err := ksuid.NewRandom()
		if err != nil {
			svr.Log(err, "unable to generate company id")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		t := time.Now().UTC()
		c := company.Company{
			ID:          k.String(),
			Name:        req.Name,
			Description: req.Description,
			URL:         req.URL,
			Location:    req.Location,
			Phone:       req.Phone,
			Email:       req.Email,
			LogoID:      req.LogoID,
			Slug:        slug.Make(req.Name),
			CreatedBy:   claims.UserID,
			CreatedAt:   t,
			UpdatedAt:   t,
		}
		if err := companyRepo.SaveCompany(c); err != nil {
			svr.Log(err, "unable to save company")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		svr.OK(w, http.StatusOK, "company created successfully", map[string]interface{}{
			"company": companyView(c),
		})
	}
}

func UpdateCompanyHandler(svr server.Server, companyRepo companyGetSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := signedInUser(svr, r)
		if err != nil {
			svr.Error(w, http.StatusUnauthorized, "not signed in")
			return
		}
		vars := mux.Vars(r)
		companyID := vars["id"]
		c, err := companyRepo.CompanyByID(companyID)
		if err != nil {
			svr.Log(err, fmt.Sprintf("unable to retrieve company by ID: '%s'", companyID))
			svr.Error(w, http.StatusNotFound, "company not found")
			return
		}
		if c.CreatedBy != claims.UserID {
			svr.Error(w, http.StatusForbidden, "company belongs to another recruiter")
			return
		}
		req := &struct {
			Name        *string `json:"name,omitempty"`
			Description *string `json:"description,omitempty"`
			URL         *string `json:"url,omitempty"`
			Location    *string `json:"location,omitempty"`
			Phone       *string `json:"phone,omitempty"`
			Email       *string `json:"email,omitempty"`
			LogoID      *string `json:"logo_id,omitempty"`
		}{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			svr.Error(w, http.StatusBadRequest, "request is invalid")
			return
		}
		u := company.CompanyUpdate{
			ID:          c.ID,
			Description: req.Description,
			URL:         req.URL,
			Location:    req.Location,
			Phone:       req.Phone,
			Email:       req.Email,
			LogoID:      req.LogoID,
		}
		if req.Name != nil {
			name := bluemonday.StrictPolicy().Sanitize(*req.Name)
			if name == "" {
				svr.Error(w, http.StatusBadRequest, "name cannot be empty")
				return
			}
			newSlug := slug.Make(name)
			u.Name = &name
			u.Slug = &newSlug
		}
		if err := companyRepo.UpdateCompany(u); err != nil {
			svr.Log(err, "unable to update company")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		updated, err := companyRepo.CompanyByID(c.ID)
		if err != nil {
			svr.Log(err, "unable to retrieve updated company")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		svr.OK(w, http.StatusOK, "company updated successfully", map[string]interface{}{
			"company": companyView(updated),
		})
	}
}

// ListCompaniesHandler lists the companies owned by the signed in
// recruiter. There is no public company listing, job listings carry
// the company summary instead.
func ListCompaniesHandler(svr server.Server, companyRepo companyLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := signedInUser(svr, r)
		if err != nil {
			svr.Error(w, http.StatusUnauthorized, "not signed in")
			return
		}
		if claims.Role != user.RoleRecruiter {
			svr.Error(w, http.StatusForbidden, "only recruiters can list their companies")
			return
		}
		companies, err := companyRepo.CompaniesByRecruiter(claims.UserID)
		if err != nil {
			svr.Log(err, "unable to retrieve companies")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		views := make([]map[string]interface{}, 0, len(companies))
		for _, c := range companies {
			views = append(views, companyView(c))
		}
		svr.OK(w, http.StatusOK, "companies retrieved successfully", map[string]interface{}{
			"companies": views,
		})
	}
}

// CompanyByIDHandler serves a single company for its owning recruiter,
// it backs the company edit form.
func CompanyByIDHandler(svr server.Server, companyRepo companyGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := signedInUser(svr, r)
		if err != nil {
			svr.Error(w, http.StatusUnauthorized, "not signed in")
			return
		}
		vars := mux.Vars(r)
		companyID := vars["id"]
		c, err := companyRepo.CompanyByID(companyID)
		if err != nil {
			svr.Log(err, fmt.Sprintf("unable to retrieve company by ID: '%s'", companyID))
			svr.Error(w, http.StatusNotFound, "company not found")
			return
		}
		if c.CreatedBy != claims.UserID {
			svr.Error(w, http.StatusForbidden, "company belongs to another recruiter")
			return
		}
		svr.OK(w, http.StatusOK, "company retrieved successfully", map[string]interface{}{
			"company": companyView(c),
		})
	}
}

func companyView(c company.Company) map[string]interface{} {
	return map[string]interface{}{
		"id":          c.ID,
		"name":        c.Name,
		"description": c.Description,
		"url":         c.URL,
		"location":    c.Location,
		"phone":       c.Phone,
		"email":       c.Email,
		"logo_id":     c.LogoID,
		"slug":        c.Slug,
	}
}
