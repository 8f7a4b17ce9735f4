package main

import (
	"net/http"
	"strconv"

	"github.com/AdamBeresnev/esports-tracker/internal/esports"
	"github.com/AdamBeresnev/esports-tracker/internal/httputil"
	"github.com/AdamBeresnev/esports-tracker/internal/middleware"
	"github.com/AdamBeresnev/esports-tracker/internal/service"
	"github.com/AdamBeresnev/esports-tracker/internal/store"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func newRouter(sessionManager *scs.SessionManager, database *sqlx.DB) http.Handler {
	userStore := store.NewUserStore(database)
	teamStore := store.NewTeamStore(database)
	tournamentStore := store.NewTournamentStore(database)
	matchStore := store.NewMatchStore(database)
	guard := service.NewGuard(tournamentStore)

	userService := service.NewUserService(database, userStore)
	teamService := service.NewTeamService(database, teamStore)
	tournamentService := service.NewTournamentService(database, tournamentStore)
	registrationService := service.NewRegistrationService(database, tournamentStore, guard)
	matchService := service.NewMatchService(database, matchStore, guard)
	standingsService := service.NewStandingsService(database, userStore, teamStore, tournamentStore, matchStore)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.LoadActingUser(sessionManager, userStore))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/users", func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		user, err := userService.CreateUser(r.Context(), req.Name, req.Email, esports.UserRole(req.Role))
		if err != nil {
			httputil.WriteError(w, "Failed to create user", err)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, user)
	})

	r.Post("/session", func(w http.ResponseWriter, r *http.Request) {
		var req sessionRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		user, err := userService.GetUser(r.Context(), req.UserID)
		if err != nil {
			httputil.WriteError(w, "Failed to find user", err)
			return
		}
		if err := sessionManager.RenewToken(r.Context()); err != nil {
			httputil.InternalServerError(w, "Failed to renew session", err)
			return
		}
		sessionManager.Put(r.Context(), middleware.SessionUserKey, user.ID.String())
		httputil.WriteJSON(w, http.StatusOK, user)
	})

	r.Get("/session", func(w http.ResponseWriter, r *http.Request) {
		user := middleware.GetActingUser(r.Context())
		if user == nil {
			httputil.Unauthorized(w, "No acting user")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, user)
	})

	r.Delete("/session", func(w http.ResponseWriter, r *http.Request) {
		if err := sessionManager.Destroy(r.Context()); err != nil {
			httputil.InternalServerError(w, "Failed to end session", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Route("/games", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			games, err := tournamentService.ListGames(r.Context())
			if err != nil {
				httputil.WriteError(w, "Failed to list games", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, games)
		})

		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var req createGameRequest
			if !decodeRequest(w, r, &req) {
				return
			}
			game, err := tournamentService.CreateGame(r.Context(), req.Title, req.Genre)
			if err != nil {
				httputil.WriteError(w, "Failed to create game", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, game)
		})
	})

	r.Route("/teams", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			summaries, err := standingsService.ListTeamSummaries(r.Context())
			if err != nil {
				httputil.WriteError(w, "Failed to list teams", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, summaries)
		})

		r.With(middleware.RequireUser).Post("/", func(w http.ResponseWriter, r *http.Request) {
			var req createTeamRequest
			if !decodeRequest(w, r, &req) {
				return
			}
			team, err := teamService.CreateTeam(r.Context(), req.Name, req.GameTag)
			if err != nil {
				httputil.WriteError(w, "Failed to create team", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, team)
		})

		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			teamID, ok := parseID(w, r, "id")
			if !ok {
				return
			}
			details, err := standingsService.TeamDetails(r.Context(), teamID)
			if err != nil {
				httputil.WriteError(w, "Failed to get team", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, details)
		})

		r.Get("/{id}/summary", func(w http.ResponseWriter, r *http.Request) {
			teamID, ok := parseID(w, r, "id")
			if !ok {
				return
			}
			summary, err := standingsService.TeamSummary(r.Context(), teamID)
			if err != nil {
				httputil.WriteError(w, "Failed to get team summary", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, summary)
		})

		r.Get("/{id}/players", func(w http.ResponseWriter, r *http.Request) {
			teamID, ok := parseID(w, r, "id")
			if !ok {
				return
			}
			roster, err := teamService.ListRoster(r.Context(), teamID)
			if err != nil {
				httputil.WriteError(w, "Failed to list players", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, roster)
		})

		r.Post("/{id}/players", func(w http.ResponseWriter, r *http.Request) {
			teamID, ok := parseID(w, r, "id")
			if !ok {
				return
			}
			var req addPlayerRequest
			if !decodeRequest(w, r, &req) {
				return
			}
			player, err := teamService.AddPlayer(r.Context(), teamID, req.UserID, req.GameTag)
			if err != nil {
				httputil.WriteError(w, "Failed to add player", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, player)
		})
	})

	r.Route("/tournaments", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			status := esports.TournamentStatus(r.URL.Query().Get("status"))
			tournaments, err := tournamentService.ListTournaments(r.Context(), status)
			if err != nil {
				httputil.WriteError(w, "Failed to list tournaments", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, tournaments)
		})

		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var req createTournamentRequest
			if !decodeRequest(w, r, &req) {
				return
			}
			start, end := req.dates()
			tournament, err := tournamentService.CreateTournament(r.Context(), service.CreateTournamentInput{
				Name:      req.Name,
				GameID:    req.GameID,
				StartDate: start,
				EndDate:   end,
				PrizePool: req.PrizePool,
			})
			if err != nil {
				httputil.WriteError(w, "Failed to create tournament", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, tournament)
		})

		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			tournamentID, ok := parseID(w, r, "id")
			if !ok {
				return
			}
			tournament, err := tournamentService.GetTournament(r.Context(), tournamentID)
			if err != nil {
				httputil.WriteError(w, "Failed to get tournament", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, tournament)
		})

		r.Patch("/{id}/status", func(w http.ResponseWriter, r *http.Request) {
			tournamentID, ok := parseID(w, r, "id")
			if !ok {
				return
			}
			var req statusRequest
			if !decodeRequest(w, r, &req) {
				return
			}
			if err := tournamentService.SetTournamentStatus(r.Context(), tournamentID, esports.TournamentStatus(req.Status)); err != nil {
				httputil.WriteError(w, "Failed to update tournament status", err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Post("/{id}/registrations", func(w http.ResponseWriter, r *http.Request) {
			tournamentID, ok := parseID(w, r, "id")
			if !ok {
				return
			}
			var req registerTeamRequest
			if !decodeRequest(w, r, &req) {
				return
			}
			registrationID, err := registrationService.RegisterTeam(r.Context(), req.TeamID, tournamentID)
			if err != nil {
				httputil.WriteError(w, "Failed to register team", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, map[string]uuid.UUID{"id": registrationID})
		})

		r.Get("/{id}/leaderboard", func(w http.ResponseWriter, r *http.Request) {
			tournamentID, ok := parseID(w, r, "id")
			if !ok {
				return
			}
			entries, err := standingsService.TournamentLeaderboard(r.Context(), tournamentID)
			if err != nil {
				httputil.WriteError(w, "Failed to build leaderboard", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, entries)
		})
	})

	r.Patch("/registrations/{id}", func(w http.ResponseWriter, r *http.Request) {
		registrationID, ok := parseID(w, r, "id")
		if !ok {
			return
		}
		var req statusRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		if err := registrationService.SetRegistrationStatus(r.Context(), registrationID, esports.RegistrationStatus(req.Status)); err != nil {
			httputil.WriteError(w, "Failed to update registration", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Route("/matches", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			filter, err := parseMatchFilter(r)
			if err != nil {
				httputil.WriteError(w, "Invalid match filter", err)
				return
			}
			matches, err := matchService.ListMatches(r.Context(), filter)
			if err != nil {
				httputil.WriteError(w, "Failed to list matches", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, matches)
		})

		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var req recordMatchRequest
			if !decodeRequest(w, r, &req) {
				return
			}
			matchID, err := matchService.RecordMatch(r.Context(), service.RecordMatchInput{
				TournamentID: req.TournamentID,
				TeamAID:      req.TeamAID,
				TeamBID:      req.TeamBID,
				ScoreA:       req.ScoreA,
				ScoreB:       req.ScoreB,
				MatchTime:    req.MatchTime,
				RoundNumber:  req.RoundNumber,
			})
			if err != nil {
				httputil.WriteError(w, "Failed to record match", err)
				return
			}
			writeMatch(w, matchService, r, matchID, http.StatusCreated)
		})

		r.Post("/scheduled", func(w http.ResponseWriter, r *http.Request) {
			var req scheduleMatchRequest
			if !decodeRequest(w, r, &req) {
				return
			}
			matchID, err := matchService.ScheduleMatch(r.Context(), service.ScheduleMatchInput{
				TournamentID: req.TournamentID,
				TeamAID:      req.TeamAID,
				TeamBID:      req.TeamBID,
				MatchTime:    req.MatchTime,
				RoundNumber:  req.RoundNumber,
			})
			if err != nil {
				httputil.WriteError(w, "Failed to schedule match", err)
				return
			}
			writeMatch(w, matchService, r, matchID, http.StatusCreated)
		})

		r.Post("/{id}/result", func(w http.ResponseWriter, r *http.Request) {
			matchID, ok := parseID(w, r, "id")
			if !ok {
				return
			}
			var req matchResultRequest
			if !decodeRequest(w, r, &req) {
				return
			}
			if err := matchService.CompleteMatch(r.Context(), matchID, req.ScoreA, req.ScoreB); err != nil {
				httputil.WriteError(w, "Failed to complete match", err)
				return
			}
			writeMatch(w, matchService, r, matchID, http.StatusOK)
		})

		r.Post("/{id}/cancel", func(w http.ResponseWriter, r *http.Request) {
			matchID, ok := parseID(w, r, "id")
			if !ok {
				return
			}
			if err := matchService.CancelMatch(r.Context(), matchID); err != nil {
				httputil.WriteError(w, "Failed to cancel match", err)
				return
			}
			writeMatch(w, matchService, r, matchID, http.StatusOK)
		})
	})

	r.Get("/stats/top-teams", func(w http.ResponseWriter, r *http.Request) {
		limit, ok := parseLimit(w, r)
		if !ok {
			return
		}
		top, err := standingsService.TopTeamsByAverageScore(r.Context(), limit)
		if err != nil {
			httputil.WriteError(w, "Failed to rank teams", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, top)
	})

	r.Get("/stats/overview", func(w http.ResponseWriter, r *http.Request) {
		limit, ok := parseLimit(w, r)
		if !ok {
			return
		}
		overview, err := standingsService.Overview(r.Context(), limit)
		if err != nil {
			httputil.WriteError(w, "Failed to build overview", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, overview)
	})

	return r
}

func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		httputil.BadRequest(w, "Invalid limit", err)
		return 0, false
	}
	return limit, true
}

func writeMatch(w http.ResponseWriter, matchService *service.MatchService, r *http.Request, matchID uuid.UUID, status int) {
	match, err := matchService.GetMatch(r.Context(), matchID)
	if err != nil {
		httputil.WriteError(w, "Failed to get match", err)
		return
	}
	httputil.WriteJSON(w, status, match)
}

func parseMatchFilter(r *http.Request) (store.MatchFilter, error) {
	query := r.URL.Query()
	fields := map[string]string{}
	var filter store.MatchFilter

	if raw := query.Get("tournament_id"); raw != "" {
		if id, err := uuid.Parse(raw); err != nil {
			fields["tournament_id"] = "must be a UUID"
		} else {
			filter.TournamentID = &id
		}
	}
	if raw := query.Get("team_id"); raw != "" {
		if id, err := uuid.Parse(raw); err != nil {
			fields["team_id"] = "must be a UUID"
		} else {
			filter.TeamID = &id
		}
	}
	if raw := query.Get("status"); raw != "" {
		filter.Status = esports.MatchStatus(raw)
		if !filter.Status.Valid() {
			fields["status"] = "must be scheduled, completed or cancelled"
		}
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			fields["limit"] = "must be a non-negative integer"
		}
		filter.Limit = limit
	}

	if len(fields) > 0 {
		return store.MatchFilter{}, esports.NewValidationError(fields)
	}
	return filter, nil
}
