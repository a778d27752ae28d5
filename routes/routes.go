package routes

import (
	"log/slog"
	"net/http"

	_ "github.com/Dosada05/matchday/docs"
	"github.com/Dosada05/matchday/handlers"
	"github.com/Dosada05/matchday/middleware"
	"github.com/Dosada05/matchday/services"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Team         *handlers.TeamHandler
	Tournament   *handlers.TournamentHandler
	Match        *handlers.MatchHandler
	MatchEvent   *handlers.MatchEventHandler
	Notification *handlers.NotificationHandler
	WebSocket    *handlers.WebSocketHandler
}

type Options struct {
	JWTSecret   []byte
	CORSOrigins []string
	Actors      services.ActorService
	Logger      *slog.Logger
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticated := func(r chi.Router) {
		r.Use(middleware.Authenticate(opts.JWTSecret, opts.Logger))
		r.Use(middleware.ResolveActor(opts.Actors, opts.Logger))
	}

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Group(func(r chi.Router) {
			authenticated(r)
			r.Get("/me", h.Auth.Me)
		})
	})

	router.Group(func(r chi.Router) {
		authenticated(r)
		r.Post("/users/{userID}/roles", h.Auth.GrantRole)
	})

	router.Route("/teams", func(r chi.Router) {
		// Публичные маршруты
		r.Get("/", h.Team.ListTeams)
		r.Get("/{teamID}", h.Team.GetTeamByID)
		r.Get("/{teamID}/players", h.Team.ListPlayers)

		r.Group(func(r chi.Router) {
			authenticated(r)
			r.Post("/", h.Team.CreateTeam)
			r.Put("/{teamID}", h.Team.UpdateTeamDetails)
			r.Delete("/{teamID}", h.Team.DeleteTeam)
			r.Post("/{teamID}/logo", h.Team.UploadTeamLogo)
			r.Post("/{teamID}/players", h.Team.AddPlayer)
			r.Put("/{teamID}/players/{playerID}", h.Team.UpdatePlayer)
			r.Delete("/{teamID}/players/{playerID}", h.Team.RemovePlayer)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.ListHandler)
		r.Get("/{tournamentID}", h.Tournament.GetByIDHandler)

		r.Group(func(r chi.Router) {
			authenticated(r)
			r.Post("/", h.Tournament.CreateHandler)
			r.Put("/{tournamentID}", h.Tournament.UpdateDetailsHandler)
			r.Delete("/{tournamentID}", h.Tournament.DeleteHandler)
			r.Post("/{tournamentID}/fixtures", h.Tournament.GenerateFixturesHandler)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", h.Match.ListMatches)
		r.Get("/{matchID}", h.Match.GetMatch)
		r.Get("/{matchID}/events", h.MatchEvent.ListEvents)

		r.Group(func(r chi.Router) {
			authenticated(r)
			r.Post("/", h.Match.CreateMatch)
			r.Put("/{matchID}", h.Match.UpdateMatch)
			r.Delete("/{matchID}", h.Match.DeleteMatch)
			r.Patch("/{matchID}/status", h.Match.UpdateStatus)
			r.Patch("/{matchID}/score", h.Match.UpdateScore)
			r.Post("/{matchID}/confirm", h.Match.ConfirmResult)
			r.Delete("/{matchID}/confirm", h.Match.ResetConfirmation)

			r.Post("/{matchID}/events", h.MatchEvent.AddEvent)
			r.Put("/{matchID}/events/{eventID}", h.MatchEvent.UpdateEvent)
			r.Delete("/{matchID}/events/{eventID}", h.MatchEvent.DeleteEvent)
			r.Post("/{matchID}/events/{eventID}/video", h.MatchEvent.UploadEventVideo)
		})
	})

	router.Route("/notifications", func(r chi.Router) {
		authenticated(r)
		r.Get("/", h.Notification.ListNotifications)
		r.Post("/read-all", h.Notification.MarkAllRead)
		r.Post("/{notificationID}/read", h.Notification.MarkRead)
	})

	router.Route("/ws", func(r chi.Router) {
		r.Get("/matches/{matchID}", h.WebSocket.ServeMatch)
		r.Group(func(r chi.Router) {
			authenticated(r)
			r.Get("/notifications", h.WebSocket.ServeNotifications)
		})
	})
}
