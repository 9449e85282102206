package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hiredeck/job-board/internal/company"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCompanyHandlerCreatesCompany(t *testing.T) {
	svr := testServer(t)
	companyRepo := newFakeCompanyRepo()
	h := CreateCompanyHandler(svr, companyRepo)

	req := httptest.NewRequest(http.MethodPost, "/api/companies/create", strings.NewReader(
		`{"name": "Acme Corp", "description": "We make everything", "location": "London"}`,
	))
	req.Header.Set("Authorization", bearerFor(t, "recruiter-1", "rec@example.com", "recruiter"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, companyRepo.companies, 1)
	for _, c := range companyRepo.companies {
		assert.Equal(t, "Acme Corp", c.Name)
		assert.Equal(t, "acme-corp", c.Slug)
		assert.Equal(t, "recruiter-1", c.CreatedBy)
	}
}

func TestCreateCompanyHandlerRejectsStudents(t *testing.T) {
	svr := testServer(t)
	h := CreateCompanyHandler(svr, newFakeCompanyRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/companies/create", strings.NewReader(
		`{"name": "Acme Corp"}`,
	))
	req.Header.Set("Authorization", bearerFor(t, "student-1", "stu@example.com", "student"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateCompanyHandlerRequiresAuth(t *testing.T) {
	svr := testServer(t)
	h := CreateCompanyHandler(svr, newFakeCompanyRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/companies/create", strings.NewReader(
		`{"name": "Acme Corp"}`,
	))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateCompanyHandlerRejectsOtherRecruiters(t *testing.T) {
	svr := testServer(t)
	companyRepo := newFakeCompanyRepo()
	companyRepo.companies["comp-1"] = company.Company{ID: "comp-1", Name: "Acme Corp", CreatedBy: "recruiter-1"}
	h := UpdateCompanyHandler(svr, companyRepo)

	req := httptest.NewRequest(http.MethodPut, "/api/companies/comp-1", strings.NewReader(
		`{"name": "Evil Corp"}`,
	))
	req = mux.SetURLVars(req, map[string]string{"id": "comp-1"})
	req.Header.Set("Authorization", bearerFor(t, "recruiter-2", "other@example.com", "recruiter"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Acme Corp", companyRepo.companies["comp-1"].Name)
}

func TestUpdateCompanyHandlerUpdatesNameAndSlug(t *testing.T) {
	svr := testServer(t)
	companyRepo := newFakeCompanyRepo()
	companyRepo.companies["comp-1"] = company.Company{ID: "comp-1", Name: "Acme Corp", Slug: "acme-corp", CreatedBy: "recruiter-1"}
	h := UpdateCompanyHandler(svr, companyRepo)

	req := httptest.NewRequest(http.MethodPut, "/api/companies/comp-1", strings.NewReader(
		`{"name": "Acme Industries"}`,
	))
	req = mux.SetURLVars(req, map[string]string{"id": "comp-1"})
	req.Header.Set("Authorization", bearerFor(t, "recruiter-1", "rec@example.com", "recruiter"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Acme Industries", companyRepo.companies["comp-1"].Name)
	assert.Equal(t, "acme-industries", companyRepo.companies["comp-1"].Slug)
}

func TestUpdateCompanyHandlerUnknownCompany(t *testing.T) {
	svr := testServer(t)
	h := UpdateCompanyHandler(svr, newFakeCompanyRepo())

	req := httptest.NewRequest(http.MethodPut, "/api/companies/missing", strings.NewReader(`{}`))
	req = mux.SetURLVars(req, map[string]string{"id": "missing"})
	req.Header.Set("Authorization", bearerFor(t, "recruiter-1", "rec@example.com", "recruiter"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCompaniesHandlerReturnsOwnCompaniesOnly(t *testing.T) {
	svr := testServer(t)
	companyRepo := newFakeCompanyRepo()
	companyRepo.companies["comp-1"] = company.Company{ID: "comp-1", Name: "Acme Corp", CreatedBy: "recruiter-1"}
	companyRepo.companies["comp-2"] = company.Company{ID: "comp-2", Name: "Globex", CreatedBy: "recruiter-2"}
	h := ListCompaniesHandler(svr, companyRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/companies", nil)
	req.Header.Set("Authorization", bearerFor(t, "recruiter-1", "rec@example.com", "recruiter"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	companies := body["companies"].([]interface{})
	require.Len(t, companies, 1)
	assert.Equal(t, "Acme Corp", companies[0].(map[string]interface{})["name"])
}

func TestListCompaniesHandlerRejectsStudents(t *testing.T) {
	svr := testServer(t)
	h := ListCompaniesHandler(svr, newFakeCompanyRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/companies", nil)
	req.Header.Set("Authorization", bearerFor(t, "student-1", "stu@example.com", "student"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCompanyByIDHandlerNotFound(t *testing.T) {
	svr := testServer(t)
	h := CompanyByIDHandler(svr, newFakeCompanyRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/companies/missing", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "missing"})
	req.Header.Set("Authorization", bearerFor(t, "recruiter-1", "rec@example.com", "recruiter"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompanyByIDHandlerRejectsOtherRecruiters(t *testing.T) {
	svr := testServer(t)
	companyRepo := newFakeCompanyRepo()
	companyRepo.companies["comp-1"] = company.Company{ID: "comp-1", Name: "Acme Corp", CreatedBy: "recruiter-1"}
	h := CompanyByIDHandler(svr, companyRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/companies/comp-1", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "comp-1"})
	req.Header.Set("Authorization", bearerFor(t, "recruiter-2", "other@example.com", "recruiter"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
