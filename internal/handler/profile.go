package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hiredeck/job-board/internal/server"
	"github.com/hiredeck/job-board/internal/user"

	"github.com/microcosm-cc/bluemonday"
)

func UpdateProfileHandler(svr server.Server, userRepo profileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := signedInUser(svr, r)
		if err != nil {
			svr.Error(w, http.StatusUnauthorized, "not signed in")
			return
		}
		req := &struct {
			FullName *string  `json:"fullname,omitempty"`
			Phone    *string  `json:"phone,omitempty"`
			Bio      *string  `json:"bio,omitempty"`
			Skills   []string `json:"skills,omitempty"`
		}{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			svr.Error(w, http.StatusBadRequest, "request is invalid")
			return
		}
		p := user.ProfileUpdate{UserID: claims.UserID}
		if req.FullName != nil {
			fullName := bluemonday.StrictPolicy().Sanitize(*req.FullName)
			if fullName == "" {
				svr.Error(w, http.StatusBadRequest, "fullname cannot be empty")
				return
			}
			p.FullName = &fullName
		}
		if req.Phone != nil {
			phone := bluemonday.StrictPolicy().Sanitize(*req.Phone)
			p.Phone = &phone
		}
		if req.Bio != nil {
			bio := bluemonday.StrictPolicy().Sanitize(*req.Bio)
			p.Bio = &bio
		}
		if len(req.Skills) > 0 {
			u, err := userRepo.UserByID(claims.UserID)
			if err != nil {
				svr.Log(err, "unable to retrieve user for skills merge")
				svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
				return
			}
			incoming := make([]string, 0, len(req.Skills))
			for _, s := range req.Skills {
				incoming = append(incoming, bluemonday.StrictPolicy().Sanitize(s))
			}
			merged := user.MergeSkills(u.SkillsArray, incoming)
			if len(merged) > 30 {
				svr.Error(w, http.StatusBadRequest, "too many skills")
				return
			}
			skills := strings.Join(merged, ", ")
			p.Skills = &skills
		}
		if err := userRepo.UpdateProfile(p); err != nil {
			svr.Log(err, "unable to update profile")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		u, err := userRepo.UserByID(claims.UserID)
		if err != nil {
			svr.Log(err, "unable to retrieve updated profile")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		svr.OK(w, http.StatusOK, "profile updated successfully", map[string]interface{}{
			"user": profileView(u),
		})
	}
}

func ProfileHandler(svr server.Server, userRepo userGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := signedInUser(svr, r)
		if err != nil {
			svr.Error(w, http.StatusUnauthorized, "not signed in")
			return
		}
		u, err := userRepo.UserByID(claims.UserID)
		if err != nil {
			svr.Log(err, "unable to retrieve profile")
			svr.Error(w, http.StatusNotFound, "user not found")
			return
		}
		svr.OK(w, http.StatusOK, "profile retrieved successfully", map[string]interface{}{
			"user": profileView(u),
		})
	}
}

func profileView(u user.User) map[string]interface{} {
	return map[string]interface{}{
		"id":          u.ID,
		"fullname":    u.FullName,
		"email":       u.Email,
		"phone":       u.Phone,
		"role":        u.Role,
		"bio":         u.Bio,
		"skills":      u.SkillsArray,
		"resume_id":   u.ResumeID,
		"resume_name": u.ResumeName,
		"avatar_id":   u.AvatarID,
		"member_for":  u.CreatedAtHumanized,
	}
}
