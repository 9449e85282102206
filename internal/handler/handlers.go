package handler

import (
	"net/http"

	"github.com/hiredeck/job-board/internal/application"
	"github.com/hiredeck/job-board/internal/company"
	"github.com/hiredeck/job-board/internal/job"
	"github.com/hiredeck/job-board/internal/middleware"
	"github.com/hiredeck/job-board/internal/server"
	"github.com/hiredeck/job-board/internal/user"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var allowedImageTypes = []string{"image/png", "image/jpeg", "image/jpg"}

type userGetter interface {
	UserByEmail(email string) (user.User, error)
	UserByID(id string) (user.User, error)
}

type userSaver interface {
	EmailExists(email string) (bool, error)
	SaveUser(u user.User) error
}

type userGetSaver interface {
	userGetter
	userSaver
}

type profileUpdater interface {
	userGetter
	UpdateProfile(p user.ProfileUpdate) error
}

type companyGetter interface {
	CompanyByID(id string) (company.Company, error)
}

type companyGetSaver interface {
	companyGetter
	SaveCompany(c company.Company) error
	UpdateCompany(u company.CompanyUpdate) error
}

type companyLister interface {
	companyGetter
	CompaniesByRecruiter(recruiterID string) ([]company.Company, error)
}

type jobGetter interface {
	JobByID(id string) (job.JobPost, error)
}

type jobGetSaver interface {
	jobGetter
	SaveJob(j job.JobPost) error
}

type jobLister interface {
	jobGetter
	JobsByQuery(query string, pageID, jobsPerPage int) ([]job.JobPost, int, error)
	JobsByRecruiter(recruiterID string) ([]job.JobPost, error)
}

type applicationRepo interface {
	ApplyToJob(userID, jobID string) (application.Application, error)
	HasApplied(userID, jobID string) (bool, error)
	ApplicantsForJob(jobID string) ([]application.Applicant, error)
	AppliedJobsForUser(userID string) ([]application.AppliedJob, error)
}

// signedInUser pulls the authenticated user claims out of the request.
// Handlers behind AuthenticatedMiddleware can rely on this not failing,
// the error path covers direct calls in tests.
func signedInUser(svr server.Server, r *http.Request) (*middleware.UserJWT, error) {
	return middleware.GetUserFromRequest(r, svr.SessionStore, svr.GetJWTSigningKey())
}
