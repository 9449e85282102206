package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/hiredeck/job-board/internal/application"
	"github.com/hiredeck/job-board/internal/database"
	"github.com/hiredeck/job-board/internal/email"
	"github.com/hiredeck/job-board/internal/job"
	"github.com/hiredeck/job-board/internal/server"
	"github.com/hiredeck/job-board/internal/user"

	"github.com/gorilla/mux"
)

func ApplyToJobHandler(svr server.Server, appRepo applicationRepo, jobRepo jobGetter, userRepo userGetter, companyRepo companyGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := signedInUser(svr, r)
		if err != nil {
			svr.Error(w, http.StatusUnauthorized, "not signed in")
			return
		}
		if claims.Role != user.RoleStudent {
			svr.Error(w, http.StatusForbidden, "only students can apply to jobs")
			return
		}
		vars := mux.Vars(r)
		jobID := vars["id"]
		j, err := jobRepo.JobByID(jobID)
		if err != nil {
			svr.Log(err, fmt.Sprintf("unable to retrieve job by ID: '%s'", jobID))
			svr.Error(w, http.StatusNotFound, "job not found")
			return
		}
		a, err := appRepo.ApplyToJob(claims.UserID, j.ID)
		if errors.Is(err, application.ErrDuplicate) {
			svr.Error(w, http.StatusConflict, "you have already applied to this job")
			return
		}
		if err != nil {
			svr.Log(err, "unable to apply for job while saving to db")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		// notify the recruiter out of band, the application itself already succeeded
		go notifyRecruiterOfApplication(svr, userRepo, companyRepo, claims.UserID, j)
		svr.OK(w, http.StatusOK, "application submitted successfully", map[string]interface{}{
			"application": map[string]interface{}{
				"id":     a.ID,
				"job_id": a.JobID,
			},
		})
	}
}

func notifyRecruiterOfApplication(svr server.Server, userRepo userGetter, companyRepo companyGetter, applicantID string, j job.JobPost) {
	applicant, err := userRepo.UserByID(applicantID)
	if err != nil {
		svr.Log(err, "unable to retrieve applicant for recruiter notification")
		return
	}
	recruiter, err := userRepo.UserByID(j.CreatedBy)
	if err != nil {
		svr.Log(err, "unable to retrieve recruiter for notification")
		return
	}
	c, err := companyRepo.CompanyByID(j.CompanyID)
	if err != nil {
		svr.Log(err, "unable to retrieve company for recruiter notification")
		return
	}
	subject := fmt.Sprintf("New applicant for %s with %s", j.Title, c.Name)
	body := fmt.Sprintf(
		"Hi, there is a new applicant for your position on %s: %s with %s - %s. Applicant: %s (%s).",
		svr.GetConfig().SiteName,
		j.Title,
		c.Name,
		j.Location,
		applicant.FullName,
		applicant.Email,
	)
	from := email.Address{Name: svr.GetConfig().SiteName, Email: svr.GetEmail().NoReplySenderAddress()}
	to := email.Address{Name: recruiter.FullName, Email: recruiter.Email}
	replyTo := email.Address{Name: applicant.FullName, Email: applicant.Email}
	if applicant.ResumeID != "" {
		resume, err := database.GetMediaByID(svr.Conn, applicant.ResumeID)
		if err != nil {
			svr.Log(err, "unable to retrieve applicant resume for recruiter notification")
		} else {
			fileName := applicant.ResumeName
			if fileName == "" {
				fileName = "resume.pdf"
			}
			body += " Please find the applicant's resume attached below."
			if err := svr.GetEmail().SendEmailWithPDFAttachment(from, to, replyTo, subject, body, resume.Bytes, fileName); err != nil {
				svr.Log(err, "unable to send recruiter notification email with resume")
			}
			return
		}
	}
	if err := svr.GetEmail().SendHTMLEmail(from, to, replyTo, subject, body); err != nil {
		svr.Log(err, "unable to send recruiter notification email")
	}
}

func JobApplicantsHandler(svr server.Server, appRepo applicationRepo, jobRepo jobGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := signedInUser(svr, r)
		if err != nil {
			svr.Error(w, http.StatusUnauthorized, "not signed in")
			return
		}
		if claims.Role != user.RoleRecruiter {
			svr.Error(w, http.StatusForbidden, "only recruiters can view applicants")
			return
		}
		vars := mux.Vars(r)
		jobID := vars["id"]
		j, err := jobRepo.JobByID(jobID)
		if err != nil {
			svr.Log(err, fmt.Sprintf("unable to retrieve job by ID: '%s'", jobID))
			svr.Error(w, http.StatusNotFound, "job not found")
			return
		}
		if j.CreatedBy != claims.UserID {
			svr.Error(w, http.StatusForbidden, "job belongs to another recruiter")
			return
		}
		applicants, err := appRepo.ApplicantsForJob(j.ID)
		if err != nil {
			svr.Log(err, "unable to retrieve applicants for job")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		views := make([]map[string]interface{}, 0, len(applicants))
		for _, a := range applicants {
			views = append(views, map[string]interface{}{
				"application_id": a.ApplicationID,
				"user_id":        a.UserID,
				"fullname":       a.FullName,
				"email":          a.Email,
				"phone":          a.Phone,
				"skills":         a.Skills,
				"resume_id":      a.ResumeID,
				"resume_name":    a.ResumeName,
				"applied_at":     a.AppliedAt,
				"applied_ago":    a.AppliedAgo,
			})
		}
		svr.OK(w, http.StatusOK, "applicants retrieved successfully", map[string]interface{}{
			"applicants": views,
			"total":      len(views),
		})
	}
}

func AppliedJobsHandler(svr server.Server, appRepo applicationRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := signedInUser(svr, r)
		if err != nil {
			svr.Error(w, http.StatusUnauthorized, "not signed in")
			return
		}
		if claims.Role != user.RoleStudent {
			svr.Error(w, http.StatusForbidden, "only students have applied jobs")
			return
		}
		applied, err := appRepo.AppliedJobsForUser(claims.UserID)
		if err != nil {
			svr.Log(err, "unable to retrieve applied jobs")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		views := make([]map[string]interface{}, 0, len(applied))
		for _, aj := range applied {
			views = append(views, map[string]interface{}{
				"job_id":       aj.JobID,
				"title":        aj.Title,
				"company_name": aj.CompanyName,
				"location":     aj.Location,
				"job_type":     aj.JobType,
				"salary":       aj.Salary,
				"applied_ago":  aj.AppliedAgo,
			})
		}
		svr.OK(w, http.StatusOK, "applied jobs retrieved successfully", map[string]interface{}{
			"jobs":  views,
			"total": len(views),
		})
	}
}
