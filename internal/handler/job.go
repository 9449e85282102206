package handler

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/hiredeck/job-board/internal/job"
	"github.com/hiredeck/job-board/internal/render"
	"github.com/hiredeck/job-board/internal/server"
	"github.com/hiredeck/job-board/internal/user"

	"github.com/gorilla/mux"
	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"
	"github.com/segmentio/ksuid"
)

func CreateJobHandler(svr server.Server, jobRepo jobGetSaver, companyRepo companyGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := signedInUser(svr, r)
		if err != nil {
			svr.Error(w, http.StatusUnauthorized, "not signed in")
			return
		}
		if claims.Role != user.RoleRecruiter {
			svr.Error(w, http.StatusForbidden, "only recruiters can post jobs")
			return
		}
		req := &struct {
			Title       string `json:"title" validate:"required,max=255"`
			Description string `json:"description" validate:"required"`
			Salary      string `json:"salary" validate:"required,max=100"`
			Location    string `json:"location" validate:"required,max=255"`
			JobType     string `json:"job_type" validate:"required"`
			CompanyID   string `json:"company_id" validate:"required"`
		}{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			svr.Error(w, http.StatusBadRequest, "request is invalid")
			return
		}
		if err := validate.Struct(req); err != nil {
			svr.Error(w, http.StatusBadRequest, "request is invalid")
			return
		}
		if !job.ValidType(req.JobType, svr.GetConfig().AllowedJobTypes) {
			svr.Error(w, http.StatusBadRequest, fmt.Sprintf("job_type must be one of %v", svr.GetConfig().AllowedJobTypes))
			return
		}
		c, err := companyRepo.CompanyByID(req.CompanyID)
		if err != nil {
			svr.Log(err, fmt.Sprintf("unable to retrieve company by ID: '%s'", req.CompanyID))
			svr.Error(w, http.StatusNotFound, "company not found")
			return
		}
		if c.CreatedBy != claims.UserID {
			svr.Error(w, http.StatusForbidden, "company belongs to another recruiter")
			return
		}
		req.Title = bluemonday.StrictPolicy().Sanitize(req.Title)
		req.Location = bluemonday.StrictPolicy().Sanitize(req.Location)
		req.Description = bluemonday.UGCPolicy().Sanitize(req.Description)
		k, err := ksuid.NewRandom()
		if err != nil {
			svr.Log(err, "unable to generate job id")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		j := job.JobPost{
			ID:          k.String(),
			Title:       req.Title,
			Description: req.Description,
			Salary:      req.Salary,
			Location:    req.Location,
			JobType:     req.JobType,
			CompanyID:   c.ID,
			CreatedBy:   claims.UserID,
			Slug:        slug.Make(fmt.Sprintf("%s %s %s", req.Title, c.Name, req.Location)),
			CreatedAt:   time.Now().UTC(),
			CompanyName: c.Name,
		}
		if err := jobRepo.SaveJob(j); err != nil {
			svr.Log(err, "unable to save job")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		// the public listing cache is stale now
		if err := svr.CacheDelete(server.CacheKeyLatestJobs); err != nil {
			svr.Log(err, "unable to invalidate latest jobs cache")
		}
		svr.OK(w, http.StatusOK, "job created successfully", map[string]interface{}{
			"job": jobView(j),
		})
	}
}

func ListJobsHandler(svr server.Server, jobRepo jobLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		page := r.URL.Query().Get("page")
		pageID, err := strconv.Atoi(page)
		if err != nil || pageID < 1 {
			pageID = 1
		}
		isDefaultListing := query == "" && pageID == 1
		var jobs []job.JobPost
		var totalJobCount int
		if isDefaultListing {
			if cached, ok := svr.CacheGet(server.CacheKeyLatestJobs); ok {
				var entry cachedJobPage
				if err := gob.NewDecoder(bytes.NewReader(cached)).Decode(&entry); err != nil {
					svr.Log(err, "unable to decode cached latest jobs")
				} else {
					writeJobPage(svr, w, entry.Jobs, entry.TotalJobCount, pageID)
					return
				}
			}
		}
		jobs, totalJobCount, err = jobRepo.JobsByQuery(query, pageID, svr.GetConfig().JobsPerPage)
		if err != nil {
			svr.Log(err, "unable to get jobs by query")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		if isDefaultListing {
			buf := &bytes.Buffer{}
			enc := gob.NewEncoder(buf)
			if err := enc.Encode(cachedJobPage{Jobs: jobs, TotalJobCount: totalJobCount}); err != nil {
				svr.Log(err, "unable to encode latest jobs for cache")
			} else if err := svr.CacheSet(server.CacheKeyLatestJobs, buf.Bytes()); err != nil {
				svr.Log(err, "unable to cache latest jobs")
			}
		}
		writeJobPage(svr, w, jobs, totalJobCount, pageID)
	}
}

type cachedJobPage struct {
	Jobs          []job.JobPost
	TotalJobCount int
}

func writeJobPage(svr server.Server, w http.ResponseWriter, jobs []job.JobPost, totalJobCount, pageID int) {
	views := make([]map[string]interface{}, 0, len(jobs))
	for _, j := range jobs {
		views = append(views, jobView(j))
	}
	svr.OK(w, http.StatusOK, "jobs retrieved successfully", map[string]interface{}{
		"jobs":      views,
		"total":     totalJobCount,
		"page":      pageID,
		"page_size": svr.GetConfig().JobsPerPage,
	})
}

func JobByIDHandler(svr server.Server, jobRepo jobGetter, appRepo applicationRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		jobID := vars["id"]
		j, err := jobRepo.JobByID(jobID)
		if err != nil {
			svr.Log(err, fmt.Sprintf("unable to retrieve job by ID: '%s'", jobID))
			svr.Error(w, http.StatusNotFound, "job not found")
			return
		}
		j.DescriptionHTML = render.MarkdownToHTML(j.Description)
		view := jobView(j)
		view["description_html"] = j.DescriptionHTML
		// annotate with the signed in student's application state
		if claims, err := signedInUser(svr, r); err == nil && claims.Role == user.RoleStudent {
			hasApplied, err := appRepo.HasApplied(claims.UserID, j.ID)
			if err != nil {
				svr.Log(err, "unable to check whether user applied")
			} else {
				view["has_applied"] = hasApplied
			}
		}
		svr.OK(w, http.StatusOK, "job retrieved successfully", map[string]interface{}{
			"job": view,
		})
	}
}

// ListJobsAsAdminHandler lists the signed in recruiter's own job posts,
// with the same free text filter as the public listing applied in process.
func ListJobsAsAdminHandler(svr server.Server, jobRepo jobLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := signedInUser(svr, r)
		if err != nil {
			svr.Error(w, http.StatusUnauthorized, "not signed in")
			return
		}
		if claims.Role != user.RoleRecruiter {
			svr.Error(w, http.StatusForbidden, "only recruiters can manage jobs")
			return
		}
		jobs, err := jobRepo.JobsByRecruiter(claims.UserID)
		if err != nil {
			svr.Log(err, "unable to get jobs by recruiter")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		jobs = job.FilterJobs(jobs, r.URL.Query().Get("query"))
		views := make([]map[string]interface{}, 0, len(jobs))
		for _, j := range jobs {
			views = append(views, jobView(j))
		}
		svr.OK(w, http.StatusOK, "jobs retrieved successfully", map[string]interface{}{
			"jobs":  views,
			"total": len(jobs),
		})
	}
}

func jobView(j job.JobPost) map[string]interface{} {
	return map[string]interface{}{
		"id":              j.ID,
		"title":           j.Title,
		"description":     j.Description,
		"salary":          j.Salary,
		"location":        j.Location,
		"job_type":        j.JobType,
		"company_id":      j.CompanyID,
		"company_name":    j.CompanyName,
		"company_logo_id": j.CompanyLogoID,
		"slug":            j.Slug,
		"posted_ago":      j.TimeAgo,
	}
}
