package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/hiredeck/job-board/internal/middleware"
	"github.com/hiredeck/job-board/internal/server"
	"github.com/hiredeck/job-board/internal/user"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/microcosm-cc/bluemonday"
	"github.com/segmentio/ksuid"
)

func RegisterHandler(svr server.Server, userRepo userGetSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &struct {
			FullName string `json:"fullname" validate:"required,max=255"`
			Email    string `json:"email" validate:"required,email"`
			Phone    string `json:"phone" validate:"required,max=30"`
			Password string `json:"password" validate:"required,min=8,max=72"`
			Role     string `json:"role" validate:"required"`
		}{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			svr.Error(w, http.StatusBadRequest, "request is invalid")
			return
		}
		if err := validate.Struct(req); err != nil {
			svr.Error(w, http.StatusBadRequest, "request is invalid")
			return
		}
		if !user.ValidRole(req.Role) {
			svr.Error(w, http.StatusBadRequest, "role must be either student or recruiter")
			return
		}
		if !svr.IsEmail(req.Email) {
			svr.Error(w, http.StatusBadRequest, "email is invalid")
			return
		}
		req.FullName = bluemonday.StrictPolicy().Sanitize(req.FullName)
		req.Phone = bluemonday.StrictPolicy().Sanitize(req.Phone)
		exists, err := userRepo.EmailExists(req.Email)
		if err != nil {
			svr.Log(err, "unable to check whether email exists")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		if exists {
			svr.Error(w, http.StatusConflict, "a user with this email already exists")
			return
		}
		k, err := ksuid.NewRandom()
		if err != nil {
			svr.Log(err, "unable to generate user id")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		passwordHash, err := user.HashPassword(req.Password, svr.GetConfig().BcryptCost)
		if err != nil {
			svr.Log(err, "unable to hash password")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		t := time.Now().UTC()
		u := user.User{
			ID:           k.String(),
			FullName:     req.FullName,
			Email:        strings.ToLower(req.Email),
			Phone:        req.Phone,
			Role:         req.Role,
			PasswordHash: passwordHash,
			CreatedAt:    t,
			UpdatedAt:    t,
		}
		if err := userRepo.SaveUser(u); err != nil {
			// concurrent registers can pass the pre-check and lose the
			// insert race on the email unique index
			if errors.Is(err, user.ErrEmailExists) {
				svr.Error(w, http.StatusConflict, "a user with this email already exists")
				return
			}
			svr.Log(err, "unable to save user")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		svr.OK(w, http.StatusOK, "user registered successfully", map[string]interface{}{
			"user": map[string]interface{}{
				"id":       u.ID,
				"fullname": u.FullName,
				"email":    u.Email,
				"role":     u.Role,
			},
		})
	}
}

func LoginHandler(svr server.Server, userRepo userGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &struct {
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required"`
		}{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			svr.Error(w, http.StatusBadRequest, "request is invalid")
			return
		}
		if err := validate.Struct(req); err != nil {
			svr.Error(w, http.StatusBadRequest, "request is invalid")
			return
		}
		u, err := userRepo.UserByEmail(req.Email)
		// same error for unknown email and wrong password so the endpoint
		// cannot be used to probe which emails are registered
		if err != nil || !user.CheckPassword(u.PasswordHash, req.Password) {
			svr.Error(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		tokenStr, err := signOn(svr, w, r, u)
		if err != nil {
			svr.Log(err, "unable to sign user on")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		svr.OK(w, http.StatusOK, "logged in successfully", map[string]interface{}{
			"token": tokenStr,
			"user": map[string]interface{}{
				"id":       u.ID,
				"fullname": u.FullName,
				"email":    u.Email,
				"role":     u.Role,
			},
		})
	}
}

func LogoutHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svr.SessionStore.Get(r, middleware.SessionName)
		if err == nil {
			sess.Options.MaxAge = -1
			delete(sess.Values, "jwt")
			if err := sess.Save(r, w); err != nil {
				svr.Log(err, "unable to expire session cookie")
			}
		}
		svr.OK(w, http.StatusOK, "logged out successfully", nil)
	}
}

// signOn mints the user JWT and stores it in the session cookie. The
// token is also returned so API clients can send it as a Bearer header.
func signOn(svr server.Server, w http.ResponseWriter, r *http.Request, u user.User) (string, error) {
	stdClaims := &jwt.StandardClaims{
		ExpiresAt: time.Now().Add(time.Duration(svr.GetConfig().JwtExpiryHours) * time.Hour).UTC().Unix(),
		IssuedAt:  time.Now().UTC().Unix(),
		Issuer:    svr.GetConfig().URLProtocol + svr.GetConfig().SiteHost,
	}
	claims := middleware.UserJWT{
		UserID:         u.ID,
		Email:          u.Email,
		Role:           u.Role,
		CreatedAt:      u.CreatedAt,
		StandardClaims: *stdClaims,
	}
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := tkn.SignedString(svr.GetJWTSigningKey())
	if err != nil {
		return "", err
	}
	sess, err := svr.SessionStore.Get(r, middleware.SessionName)
	if err != nil {
		return "", err
	}
	sess.Values["jwt"] = ss
	if err := sess.Save(r, w); err != nil {
		return "", err
	}
	return ss, nil
}
