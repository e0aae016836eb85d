package api

import (
	"net/http"
	"time"

	"leetlab/internal/api/handler"
	"leetlab/internal/app/service"
	"leetlab/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
	problemService *service.ProblemService,
	submissionService *service.SubmissionService,
	playlistService *service.PlaylistService,
	webhookService *service.WebhookService,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies a bearer token when present and puts claims in context.
	// Authenticator (per route group) decides whether auth is required.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		v1.Route("/auth", authHandler.RegisterRoutes)

		userHandler := handler.NewUserHandler(userService)
		v1.Route("/users", userHandler.RegisterRoutes)

		problemHandler := handler.NewProblemHandler(problemService)
		v1.Route("/problems", problemHandler.RegisterRoutes)

		submissionHandler := handler.NewSubmissionHandler(submissionService)
		v1.Route("/submissions", submissionHandler.RegisterRoutes)

		playlistHandler := handler.NewPlaylistHandler(playlistService)
		v1.Route("/playlists", playlistHandler.RegisterRoutes)

		webhookHandler := handler.NewWebhookHandler(webhookService)
		v1.Route("/webhook", webhookHandler.RegisterRoutes)
	})

	return r
}
