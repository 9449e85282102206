package handler

import (
	"net/http"

	"github.com/hiredeck/job-board/internal/server"
)

func HealthCheckHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svr.Conn.Ping(); err != nil {
			svr.Log(err, "health check db ping failed")
			svr.Error(w, http.StatusServiceUnavailable, "database is unreachable")
			return
		}
		svr.OK(w, http.StatusOK, "ok", nil)
	}
}
