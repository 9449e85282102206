package main

import (
	"context"
	"log"

	"github.com/hiredeck/job-board/internal/application"
	"github.com/hiredeck/job-board/internal/assistant"
	"github.com/hiredeck/job-board/internal/company"
	"github.com/hiredeck/job-board/internal/config"
	"github.com/hiredeck/job-board/internal/database"
	"github.com/hiredeck/job-board/internal/email"
	"github.com/hiredeck/job-board/internal/handler"
	"github.com/hiredeck/job-board/internal/job"
	"github.com/hiredeck/job-board/internal/middleware"
	"github.com/hiredeck/job-board/internal/server"
	"github.com/hiredeck/job-board/internal/user"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("unable to load config: %+v", err)
	}
	conn, err := database.GetDbConn(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("unable to connect to postgres: %v", err)
	}
	defer database.CloseDbConn(conn)
	emailClient, err := email.NewClient(cfg.EmailAPIKey, cfg.SupportEmail, cfg.NoReplyEmail, cfg.SiteName)
	if err != nil {
		log.Fatalf("unable to create email client: %v", err)
	}
	assistantClient, err := assistant.NewClient(context.Background(), cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("unable to create assistant client: %v", err)
	}
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)

	userRepo := user.NewRepository(conn)
	companyRepo := company.NewRepository(conn)
	jobRepo := job.NewRepository(conn)
	appRepo := application.NewRepository(conn)

	svr := server.NewServer(
		cfg,
		conn,
		mux.NewRouter(),
		emailClient,
		sessionStore,
	)

	svr.RegisterRoute("/health", handler.HealthCheckHandler(svr), []string{"GET"})

	//
	// auth routes
	//

	svr.RegisterRoute("/api/users/register", handler.RegisterHandler(svr, userRepo), []string{"POST"})
	svr.RegisterRoute("/api/users/login", handler.LoginHandler(svr, userRepo), []string{"POST"})
	svr.RegisterRoute("/api/users/logout", handler.LogoutHandler(svr), []string{"GET"})

	//
	// profile routes
	//

	svr.RegisterRoute(
		"/api/users/me",
		middleware.AuthenticatedMiddleware(sessionStore, cfg.JwtSigningKey, "", handler.ProfileHandler(svr, userRepo)),
		[]string{"GET"},
	)
	svr.RegisterRoute(
		"/api/users/update",
		middleware.AuthenticatedMiddleware(sessionStore, cfg.JwtSigningKey, "", handler.UpdateProfileHandler(svr, userRepo)),
		[]string{"PUT"},
	)
	svr.RegisterRoute(
		"/api/users/upload",
		middleware.AuthenticatedMiddleware(sessionStore, cfg.JwtSigningKey, "", handler.SaveMediaHandler(svr, userRepo)),
		[]string{"POST"},
	)
	svr.RegisterRoute(
		"/api/users/applied-jobs",
		middleware.AuthenticatedMiddleware(sessionStore, cfg.JwtSigningKey, user.RoleStudent, handler.AppliedJobsHandler(svr, appRepo)),
		[]string{"GET"},
	)

	//
	// company routes
	//

	svr.RegisterRoute(
		"/api/companies/create",
		middleware.AuthenticatedMiddleware(sessionStore, cfg.JwtSigningKey, user.RoleRecruiter, handler.CreateCompanyHandler(svr, companyRepo)),
		[]string{"POST"},
	)
	svr.RegisterRoute(
		"/api/companies/{id}",
		middleware.AuthenticatedMiddleware(sessionStore, cfg.JwtSigningKey, user.RoleRecruiter, handler.UpdateCompanyHandler(svr, companyRepo)),
		[]string{"PUT"},
	)
	svr.RegisterRoute(
		"/api/companies",
		middleware.AuthenticatedMiddleware(sessionStore, cfg.JwtSigningKey, user.RoleRecruiter, handler.ListCompaniesHandler(svr, companyRepo)),
		[]string{"GET"},
	)
	svr.RegisterRoute(
		"/api/companies/{id}",
		middleware.AuthenticatedMiddleware(sessionStore, cfg.JwtSigningKey, user.RoleRecruiter, handler.CompanyByIDHandler(svr, companyRepo)),
		[]string{"GET"},
	)

	//
	// job routes
	//

	svr.RegisterRoute(
		"/api/jobs/create",
		middleware.AuthenticatedMiddleware(sessionStore, cfg.JwtSigningKey, user.RoleRecruiter, handler.CreateJobHandler(svr, jobRepo, companyRepo)),
		[]string{"POST"},
	)
	svr.RegisterRoute(
		"/api/jobs/admin",
		middleware.AuthenticatedMiddleware(sessionStore, cfg.JwtSigningKey, user.RoleRecruiter, handler.ListJobsAsAdminHandler(svr, jobRepo)),
		[]string{"GET"},
	)
	svr.RegisterRoute("/api/jobs", handler.ListJobsHandler(svr, jobRepo), []string{"GET"})
	svr.RegisterRoute("/api/jobs/{id}", handler.JobByIDHandler(svr, jobRepo, appRepo), []string{"GET"})

	//
	// application routes
	//

	svr.RegisterRoute(
		"/api/jobs/{id}/apply",
		middleware.AuthenticatedMiddleware(sessionStore, cfg.JwtSigningKey, user.RoleStudent, handler.ApplyToJobHandler(svr, appRepo, jobRepo, userRepo, companyRepo)),
		[]string{"POST"},
	)
	svr.RegisterRoute(
		"/api/jobs/{id}/applicants",
		middleware.AuthenticatedMiddleware(sessionStore, cfg.JwtSigningKey, user.RoleRecruiter, handler.JobApplicantsHandler(svr, appRepo, jobRepo)),
		[]string{"GET"},
	)

	//
	// assistant
	//

	svr.RegisterRoute(
		"/api/chat",
		middleware.AuthenticatedMiddleware(sessionStore, cfg.JwtSigningKey, "", handler.ChatHandler(svr, assistantClient)),
		[]string{"POST"},
	)

	// retrieve media file
	svr.RegisterRoute("/x/s/m/{id}", handler.RetrieveMediaHandler(svr), []string{"GET"})

	// rss feed
	svr.RegisterRoute("/rss/jobs", handler.ServeRSSFeed(svr, jobRepo), []string{"GET"})

	log.Fatal(svr.Run())
}
