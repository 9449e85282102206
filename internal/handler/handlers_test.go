package handler

import (
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hiredeck/job-board/internal/application"
	"github.com/hiredeck/job-board/internal/company"
	"github.com/hiredeck/job-board/internal/config"
	"github.com/hiredeck/job-board/internal/email"
	"github.com/hiredeck/job-board/internal/job"
	"github.com/hiredeck/job-board/internal/middleware"
	"github.com/hiredeck/job-board/internal/server"
	"github.com/hiredeck/job-board/internal/user"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testJwtKey = []byte("test-signing-key")

func testConfig() config.Config {
	return config.Config{
		Port:            "8080",
		SessionKey:      []byte("session-secret"),
		JwtSigningKey:   testJwtKey,
		Env:             "dev",
		SiteName:        "HireDeck",
		SiteHost:        "hiredeck.test",
		SupportEmail:    "support@hiredeck.test",
		NoReplyEmail:    "noreply@hiredeck.test",
		JobsPerPage:     10,
		MaxUploadSize:   5 * 1024 * 1024,
		BcryptCost:      bcrypt.MinCost,
		JwtExpiryHours:  72,
		URLProtocol:     "http://",
		AllowedJobTypes: []string{"Full-time", "Part-time", "Contract", "Internship"},
	}
}

func testServer(t *testing.T) server.Server {
	t.Helper()
	return testServerWithEmail(t, "http://127.0.0.1:1")
}

func testServerWithEmail(t *testing.T, emailBaseURL string) server.Server {
	t.Helper()
	cfg := testConfig()
	emailClient, err := email.NewClientWithBaseURL("test-key", cfg.SupportEmail, cfg.NoReplyEmail, cfg.SiteName, emailBaseURL)
	require.NoError(t, err)
	var conn *sql.DB
	return server.NewServer(cfg, conn, mux.NewRouter(), emailClient, sessions.NewCookieStore(cfg.SessionKey))
}

func bearerFor(t *testing.T, userID, emailAddr, role string) string {
	t.Helper()
	claims := middleware.UserJWT{
		UserID: userID,
		Email:  emailAddr,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).UTC().Unix(),
			IssuedAt:  time.Now().UTC().Unix(),
		},
	}
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := tkn.SignedString(testJwtKey)
	require.NoError(t, err)
	return "Bearer " + ss
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

type fakeUserRepo struct {
	users          map[string]user.User // keyed by email
	saved          []user.User
	profileUpdates []user.ProfileUpdate
	saveErr        error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]user.User{}}
}

func (f *fakeUserRepo) EmailExists(email string) (bool, error) {
	_, ok := f.users[email]
	return ok, nil
}

func (f *fakeUserRepo) SaveUser(u user.User) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.users[u.Email] = u
	f.saved = append(f.saved, u)
	return nil
}

func (f *fakeUserRepo) UserByEmail(email string) (user.User, error) {
	u, ok := f.users[email]
	if !ok {
		return user.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) UserByID(id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, sql.ErrNoRows
}

func (f *fakeUserRepo) UpdateProfile(p user.ProfileUpdate) error {
	f.profileUpdates = append(f.profileUpdates, p)
	for em, u := range f.users {
		if u.ID != p.UserID {
			continue
		}
		if p.FullName != nil {
			u.FullName = *p.FullName
		}
		if p.Phone != nil {
			u.Phone = *p.Phone
		}
		if p.Bio != nil {
			u.Bio = *p.Bio
		}
		if p.Skills != nil {
			u.Skills = *p.Skills
			u.SkillsArray = user.ParseSkills(u.Skills)
		}
		if p.ResumeID != nil {
			u.ResumeID = *p.ResumeID
		}
		if p.ResumeName != nil {
			u.ResumeName = *p.ResumeName
		}
		if p.AvatarID != nil {
			u.AvatarID = *p.AvatarID
		}
		f.users[em] = u
	}
	return nil
}

type fakeCompanyRepo struct {
	companies map[string]company.Company
	updates   []company.CompanyUpdate
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[string]company.Company{}}
}

func (f *fakeCompanyRepo) CompanyByID(id string) (company.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return company.Company{}, sql.ErrNoRows
	}
	return c, nil
}

func (f *fakeCompanyRepo) SaveCompany(c company.Company) error {
	f.companies[c.ID] = c
	return nil
}

func (f *fakeCompanyRepo) UpdateCompany(u company.CompanyUpdate) error {
	f.updates = append(f.updates, u)
	c, ok := f.companies[u.ID]
	if !ok {
		return sql.ErrNoRows
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.Location != nil {
		c.Location = *u.Location
	}
	if u.Slug != nil {
		c.Slug = *u.Slug
	}
	f.companies[u.ID] = c
	return nil
}

func (f *fakeCompanyRepo) CompaniesByRecruiter(recruiterID string) ([]company.Company, error) {
	out := make([]company.Company, 0)
	for _, c := range f.companies {
		if c.CreatedBy == recruiterID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeJobRepo struct {
	jobs        map[string]job.JobPost
	queryCalls  int
	lastQuery   string
	lastPage    int
	listResults []job.JobPost
	listTotal   int
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[string]job.JobPost{}}
}

func (f *fakeJobRepo) JobByID(id string) (job.JobPost, error) {
	j, ok := f.jobs[id]
	if !ok {
		return job.JobPost{}, sql.ErrNoRows
	}
	return j, nil
}

func (f *fakeJobRepo) SaveJob(j job.JobPost) error {
	f.jobs[j.ID] = j
	return nil
}

func (f *fakeJobRepo) JobsByQuery(query string, pageID, jobsPerPage int) ([]job.JobPost, int, error) {
	f.queryCalls++
	f.lastQuery = query
	f.lastPage = pageID
	return f.listResults, f.listTotal, nil
}

func (f *fakeJobRepo) JobsByRecruiter(recruiterID string) ([]job.JobPost, error) {
	out := make([]job.JobPost, 0)
	for _, j := range f.jobs {
		if j.CreatedBy == recruiterID {
			out = append(out, j)
		}
	}
	return out, nil
}

type fakeApplicationRepo struct {
	applications map[string]application.Application // keyed by user|job
	applicants   []application.Applicant
	appliedJobs  []application.AppliedJob
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: map[string]application.Application{}}
}

func (f *fakeApplicationRepo) ApplyToJob(userID, jobID string) (application.Application, error) {
	key := userID + "|" + jobID
	if _, ok := f.applications[key]; ok {
		return application.Application{}, application.ErrDuplicate
	}
	a := application.Application{
		ID:        "app-" + key,
		UserID:    userID,
		JobID:     jobID,
		CreatedAt: time.Now().UTC(),
	}
	f.applications[key] = a
	return a, nil
}

func (f *fakeApplicationRepo) HasApplied(userID, jobID string) (bool, error) {
	_, ok := f.applications[userID+"|"+jobID]
	return ok, nil
}

func (f *fakeApplicationRepo) ApplicantsForJob(jobID string) ([]application.Applicant, error) {
	return f.applicants, nil
}

func (f *fakeApplicationRepo) AppliedJobsForUser(userID string) ([]application.AppliedJob, error) {
	return f.appliedJobs, nil
}
