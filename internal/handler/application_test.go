package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hiredeck/job-board/internal/application"
	"github.com/hiredeck/job-board/internal/job"
	"github.com/hiredeck/job-board/internal/user"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyToJobHandlerCreatesApplication(t *testing.T) {
	svr := testServer(t)
	jobRepo := newFakeJobRepo()
	jobRepo.jobs["job-1"] = job.JobPost{ID: "job-1", Title: "Backend Engineer", CompanyID: "comp-1", CreatedBy: "recruiter-1"}
	appRepo := newFakeApplicationRepo()
	userRepo := newFakeUserRepo()
	userRepo.users["stu@example.com"] = user.User{ID: "student-1", Email: "stu@example.com", FullName: "Jane Doe"}
	h := ApplyToJobHandler(svr, appRepo, jobRepo, userRepo, newFakeCompanyRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/job-1/apply", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "job-1"})
	req.Header.Set("Authorization", bearerFor(t, "student-1", "stu@example.com", "student"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	has, err := appRepo.HasApplied("student-1", "job-1")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestApplyToJobHandlerDuplicateReturnsConflict(t *testing.T) {
	svr := testServer(t)
	jobRepo := newFakeJobRepo()
	jobRepo.jobs["job-1"] = job.JobPost{ID: "job-1", Title: "Backend Engineer"}
	appRepo := newFakeApplicationRepo()
	_, err := appRepo.ApplyToJob("student-1", "job-1")
	require.NoError(t, err)
	h := ApplyToJobHandler(svr, appRepo, jobRepo, newFakeUserRepo(), newFakeCompanyRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/job-1/apply", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "job-1"})
	req.Header.Set("Authorization", bearerFor(t, "student-1", "stu@example.com", "student"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	// still exactly one application on file
	assert.Len(t, appRepo.applications, 1)
}

func TestApplyToJobHandlerUnknownJob(t *testing.T) {
	svr := testServer(t)
	h := ApplyToJobHandler(svr, newFakeApplicationRepo(), newFakeJobRepo(), newFakeUserRepo(), newFakeCompanyRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/missing/apply", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "missing"})
	req.Header.Set("Authorization", bearerFor(t, "student-1", "stu@example.com", "student"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplyToJobHandlerRejectsRecruiters(t *testing.T) {
	svr := testServer(t)
	jobRepo := newFakeJobRepo()
	jobRepo.jobs["job-1"] = job.JobPost{ID: "job-1"}
	h := ApplyToJobHandler(svr, newFakeApplicationRepo(), jobRepo, newFakeUserRepo(), newFakeCompanyRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/job-1/apply", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "job-1"})
	req.Header.Set("Authorization", bearerFor(t, "recruiter-1", "rec@example.com", "recruiter"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJobApplicantsHandlerRejectsForeignJob(t *testing.T) {
	svr := testServer(t)
	jobRepo := newFakeJobRepo()
	jobRepo.jobs["job-1"] = job.JobPost{ID: "job-1", CreatedBy: "recruiter-1"}
	h := JobApplicantsHandler(svr, newFakeApplicationRepo(), jobRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/job-1/applicants", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "job-1"})
	req.Header.Set("Authorization", bearerFor(t, "recruiter-2", "other@example.com", "recruiter"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJobApplicantsHandlerListsApplicants(t *testing.T) {
	svr := testServer(t)
	jobRepo := newFakeJobRepo()
	jobRepo.jobs["job-1"] = job.JobPost{ID: "job-1", CreatedBy: "recruiter-1"}
	appRepo := newFakeApplicationRepo()
	appRepo.applicants = []application.Applicant{
		{
			ApplicationID: "app-1",
			UserID:        "student-1",
			FullName:      "Jane Doe",
			Email:         "stu@example.com",
			Skills:        "Go, SQL",
			ResumeID:      "media-1",
			ResumeName:    "jane-cv.pdf",
			AppliedAt:     time.Now().UTC(),
			AppliedAgo:    "2 hours ago",
		},
	}
	h := JobApplicantsHandler(svr, appRepo, jobRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/job-1/applicants", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "job-1"})
	req.Header.Set("Authorization", bearerFor(t, "recruiter-1", "rec@example.com", "recruiter"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	applicants := body["applicants"].([]interface{})
	require.Len(t, applicants, 1)
	first := applicants[0].(map[string]interface{})
	assert.Equal(t, "Jane Doe", first["fullname"])
	assert.Equal(t, "media-1", first["resume_id"])
	assert.NotEmpty(t, first["applied_at"])
	assert.Equal(t, "2 hours ago", first["applied_ago"])
}

func TestAppliedJobsHandlerRejectsRecruiters(t *testing.T) {
	svr := testServer(t)
	h := AppliedJobsHandler(svr, newFakeApplicationRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/users/applied-jobs", nil)
	req.Header.Set("Authorization", bearerFor(t, "recruiter-1", "rec@example.com", "recruiter"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAppliedJobsHandlerListsJobs(t *testing.T) {
	svr := testServer(t)
	appRepo := newFakeApplicationRepo()
	appRepo.appliedJobs = []application.AppliedJob{
		{JobID: "job-1", Title: "Backend Engineer", CompanyName: "Acme Corp", AppliedAgo: "1 day ago"},
		{JobID: "job-2", Title: "Data Analyst", CompanyName: "Globex", AppliedAgo: "2 days ago"},
	}
	h := AppliedJobsHandler(svr, appRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/users/applied-jobs", nil)
	req.Header.Set("Authorization", bearerFor(t, "student-1", "stu@example.com", "student"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	jobs := body["jobs"].([]interface{})
	require.Len(t, jobs, 2)
	assert.Equal(t, "Backend Engineer", jobs[0].(map[string]interface{})["title"])
}
