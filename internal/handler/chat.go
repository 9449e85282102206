package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hiredeck/job-board/internal/assistant"
	"github.com/hiredeck/job-board/internal/server"
)

// ChatHandler runs a single turn conversation with the career assistant.
// A nil assistant client means no API key was configured.
func ChatHandler(svr server.Server, assistantClient *assistant.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := signedInUser(svr, r); err != nil {
			svr.Error(w, http.StatusUnauthorized, "not signed in")
			return
		}
		if assistantClient == nil {
			svr.Error(w, http.StatusServiceUnavailable, "the assistant is not available")
			return
		}
		req := &struct {
			Message string `json:"message" validate:"required,max=2000"`
		}{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			svr.Error(w, http.StatusBadRequest, "request is invalid")
			return
		}
		req.Message = strings.TrimSpace(req.Message)
		if err := validate.Struct(req); err != nil {
			svr.Error(w, http.StatusBadRequest, "message cannot be empty")
			return
		}
		reply, err := assistantClient.Reply(r.Context(), svr.GetConfig().SiteName, req.Message)
		if err != nil {
			svr.Log(err, "unable to get assistant reply")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		svr.OK(w, http.StatusOK, "reply generated successfully", map[string]interface{}{
			"reply": reply,
		})
	}
}
