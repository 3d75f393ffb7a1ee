package routes

import (
	"github.com/Dosada05/basketball-league/handlers"
	"github.com/Dosada05/basketball-league/middleware"
	"github.com/Dosada05/basketball-league/policy"
	"github.com/Dosada05/basketball-league/repositories"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes wires the full HTTP surface. Reads are open to any
// authenticated league member, writes require an administrator, and
// tournament management additionally requires the staff flag.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	userRepo repositories.UserRepository,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	teamHandler *handlers.TeamHandler,
	playerHandler *handlers.PlayerHandler,
	gameHandler *handlers.GameHandler,
	tournamentHandler *handlers.TournamentHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticator(jwtSecret, userRepo)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Post("/auth/logout", authHandler.Logout)

		r.Route("/teams", func(r chi.Router) {
			r.With(middleware.RequirePermission(policy.ResourceTeams, policy.ActionManage)).
				Get("/all-team-details", teamHandler.Details)

			r.With(middleware.RequirePermission(policy.ResourceTeams, policy.ActionReadOwn)).Group(func(r chi.Router) {
				r.Get("/my-teams", teamHandler.ListMine)
				r.Get("/high-scorers", teamHandler.MyHighScorers)
			})

			r.With(middleware.RequirePermission(policy.ResourceTeams, policy.ActionRead)).Group(func(r chi.Router) {
				r.Get("/", teamHandler.List)
				r.Get("/{teamID}", teamHandler.GetByID)
				r.Get("/{teamID}/average-score", teamHandler.AverageScore)
				r.Get("/{teamID}/high-scorers", teamHandler.HighScorers)
			})

			r.With(middleware.RequirePermission(policy.ResourceTeams, policy.ActionWrite)).Group(func(r chi.Router) {
				r.Post("/", teamHandler.Create)
				r.Put("/{teamID}", teamHandler.Update)
				r.Delete("/{teamID}", teamHandler.Delete)
				r.Post("/{teamID}/logo", teamHandler.UploadLogo)
			})
		})

		r.Route("/players", func(r chi.Router) {
			r.With(middleware.RequirePermission(policy.ResourcePlayers, policy.ActionReadOwn)).
				Get("/my-info", playerHandler.MyInfo)
			r.With(middleware.RequirePermission(policy.ResourceTeams, policy.ActionReadOwn)).
				Get("/my-players", playerHandler.MyPlayers)

			r.With(middleware.RequirePermission(policy.ResourcePlayers, policy.ActionRead)).Group(func(r chi.Router) {
				r.Get("/", playerHandler.List)
				r.Get("/{playerID}", playerHandler.GetByID)
				r.Get("/{playerID}/average-score", playerHandler.AverageScore)
				r.Get("/{playerID}/scores", playerHandler.Scores)
			})

			r.With(middleware.RequirePermission(policy.ResourcePlayers, policy.ActionWrite)).Group(func(r chi.Router) {
				r.Post("/", playerHandler.Create)
				r.Put("/{playerID}", playerHandler.Update)
				r.Delete("/{playerID}", playerHandler.Delete)
			})
		})

		r.Route("/games", func(r chi.Router) {
			r.With(middleware.RequirePermission(policy.ResourceGames, policy.ActionRead)).Group(func(r chi.Router) {
				r.Get("/", gameHandler.List)
				r.Get("/{gameID}", gameHandler.GetByID)
			})

			r.With(middleware.RequirePermission(policy.ResourceGames, policy.ActionWrite)).Group(func(r chi.Router) {
				r.Post("/", gameHandler.Create)
				r.Delete("/{gameID}", gameHandler.Delete)
			})
		})

		r.With(middleware.RequirePermission(policy.ResourceScores, policy.ActionWrite)).Group(func(r chi.Router) {
			r.Post("/scores", gameHandler.RecordScore)
			r.Post("/participations", gameHandler.RecordParticipation)
		})

		r.Route("/tournaments", func(r chi.Router) {
			r.With(middleware.RequirePermission(policy.ResourceTournaments, policy.ActionRead)).Group(func(r chi.Router) {
				r.Get("/", tournamentHandler.ListIDs)
				r.Get("/{tournamentID}", tournamentHandler.GetByID)
			})

			r.With(middleware.RequirePermission(policy.ResourceTournaments, policy.ActionManage)).Group(func(r chi.Router) {
				r.Post("/", tournamentHandler.Create)
				r.Delete("/{tournamentID}", tournamentHandler.Delete)
				r.Post("/{tournamentID}/advance", tournamentHandler.AdvanceRound)
				r.Post("/{tournamentID}/finalize", tournamentHandler.Finalize)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", userHandler.Me)

			r.With(middleware.RequirePermission(policy.ResourceUserStats, policy.ActionManage)).
				Get("/stats", userHandler.Statistics)

			r.With(middleware.RequirePermission(policy.ResourceUsers, policy.ActionRead)).
				Get("/{userID}", userHandler.GetByID)

			r.With(middleware.RequirePermission(policy.ResourceUsers, policy.ActionWrite)).Group(func(r chi.Router) {
				r.Put("/{userID}", userHandler.Update)
				r.Delete("/{userID}", userHandler.Delete)
			})
		})
	})
}
