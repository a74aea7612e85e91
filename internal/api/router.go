package api

import (
	"club_tracker/internal/api/handler"
	apimiddleware "club_tracker/internal/api/middleware"
	"club_tracker/internal/app/service"
	"club_tracker/internal/common/security"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	standingsService *service.StandingsService,
	ladderService *service.LadderService,
	handleService *service.HandleService,
	teamService *service.TeamService,
	requestService *service.RequestService,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Puts verified claims in context; routes that need them run the
	// Authenticator on top.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	standingsHandler := handler.NewStandingsHandler(standingsService, ladderService)
	requestHandler := handler.NewRequestHandler(requestService)
	authHandler := handler.NewAuthHandler(authService)
	handleHandler := handler.NewHandleHandler(handleService)
	teamHandler := handler.NewTeamHandler(teamService)

	r.Route("/api", func(api chi.Router) {
		// Public read surface.
		standingsHandler.RegisterRoutes(api)

		// Passkey-gated public submissions.
		api.Route("/request", requestHandler.RegisterPublicRoutes)

		api.Route("/admin", func(admin chi.Router) {
			authHandler.RegisterRoutes(admin)

			admin.Group(func(protected chi.Router) {
				protected.Use(apimiddleware.Authenticator)
				protected.Route("/handles", handleHandler.RegisterRoutes)
				protected.Route("/requests", requestHandler.RegisterAdminRoutes)
				protected.Route("/vjudge", teamHandler.RegisterRoutes)
			})
		})
	})

	return r
}
