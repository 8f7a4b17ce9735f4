package main

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/AdamBeresnev/esports-tracker/internal/esports"
	"github.com/AdamBeresnev/esports-tracker/internal/httputil"
	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func requiredID() validation.Rule {
	return validation.NotIn(uuid.Nil).Error("cannot be blank")
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (r *createUserRequest) Validate() error {
	return validation.ValidateStruct(
		r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, validation.Match(emailPattern).Error("must be a valid email address")),
		validation.Field(&r.Role, validation.In(string(esports.RoleAdmin), string(esports.RolePlayer), string(esports.RoleOrganizer))),
	)
}

type sessionRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

func (r *sessionRequest) Validate() error {
	return validation.ValidateStruct(r, validation.Field(&r.UserID, requiredID()))
}

type createGameRequest struct {
	Title string `json:"title"`
	Genre string `json:"genre"`
}

func (r *createGameRequest) Validate() error {
	return validation.ValidateStruct(
		r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Genre, validation.Length(0, 50)),
	)
}

type createTeamRequest struct {
	Name    string `json:"name"`
	GameTag string `json:"game_tag"`
}

func (r *createTeamRequest) Validate() error {
	return validation.ValidateStruct(
		r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.GameTag, validation.Length(0, 50)),
	)
}

type addPlayerRequest struct {
	UserID  uuid.UUID `json:"user_id"`
	GameTag string    `json:"game_tag"`
}

func (r *addPlayerRequest) Validate() error {
	return validation.ValidateStruct(
		r,
		validation.Field(&r.UserID, requiredID()),
		validation.Field(&r.GameTag, validation.Required, validation.Length(1, 50)),
	)
}

type createTournamentRequest struct {
	Name      string    `json:"name"`
	GameID    uuid.UUID `json:"game_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	PrizePool float64   `json:"prize_pool"`
}

func (r *createTournamentRequest) Validate() error {
	return validation.ValidateStruct(
		r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.GameID, requiredID()),
		validation.Field(&r.StartDate, validation.Required, validation.Date(dateLayout)),
		validation.Field(&r.EndDate, validation.Required, validation.Date(dateLayout)),
		validation.Field(&r.PrizePool, validation.Min(0.0)),
	)
}

// dates assumes Validate has already accepted both fields.
func (r *createTournamentRequest) dates() (time.Time, time.Time) {
	start, _ := time.Parse(dateLayout, r.StartDate)
	end, _ := time.Parse(dateLayout, r.EndDate)
	return start, end
}

type statusRequest struct {
	Status string `json:"status"`
}

func (r *statusRequest) Validate() error {
	return validation.ValidateStruct(r, validation.Field(&r.Status, validation.Required))
}

type registerTeamRequest struct {
	TeamID uuid.UUID `json:"team_id"`
}

func (r *registerTeamRequest) Validate() error {
	return validation.ValidateStruct(r, validation.Field(&r.TeamID, requiredID()))
}

type recordMatchRequest struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	TeamAID      uuid.UUID `json:"team_a_id"`
	TeamBID      uuid.UUID `json:"team_b_id"`
	ScoreA       int       `json:"score_a"`
	ScoreB       int       `json:"score_b"`
	MatchTime    time.Time `json:"match_time"`
	RoundNumber  int       `json:"round_number"`
}

// Score signs and self-play are left to the match service so they surface
// with their own error kinds.
func (r *recordMatchRequest) Validate() error {
	return validation.ValidateStruct(
		r,
		validation.Field(&r.TournamentID, requiredID()),
		validation.Field(&r.TeamAID, requiredID()),
		validation.Field(&r.TeamBID, requiredID()),
		validation.Field(&r.RoundNumber, validation.Min(0)),
	)
}

type scheduleMatchRequest struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	TeamAID      uuid.UUID `json:"team_a_id"`
	TeamBID      uuid.UUID `json:"team_b_id"`
	MatchTime    time.Time `json:"match_time"`
	RoundNumber  int       `json:"round_number"`
}

func (r *scheduleMatchRequest) Validate() error {
	return validation.ValidateStruct(
		r,
		validation.Field(&r.TournamentID, requiredID()),
		validation.Field(&r.TeamAID, requiredID()),
		validation.Field(&r.TeamBID, requiredID()),
		validation.Field(&r.MatchTime, validation.Required),
		validation.Field(&r.RoundNumber, validation.Min(0)),
	)
}

type matchResultRequest struct {
	ScoreA int `json:"score_a"`
	ScoreB int `json:"score_b"`
}

func (r *matchResultRequest) Validate() error {
	return nil
}

// decodeRequest reads and validates a JSON body, writing the error response
// itself when it returns false.
func decodeRequest(w http.ResponseWriter, r *http.Request, req validation.Validatable) bool {
	if err := httputil.DecodeJSON(r, req); err != nil {
		httputil.BadRequest(w, "Invalid JSON body", err)
		return false
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, "Invalid request", toValidationError(err))
		return false
	}
	return true
}

func toValidationError(err error) error {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make(map[string]string, len(fieldErrs))
	for field, fieldErr := range fieldErrs {
		fields[field] = fieldErr.Error()
	}
	return esports.NewValidationError(fields)
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		httputil.BadRequest(w, "Invalid "+param, err)
		return uuid.Nil, false
	}
	return id, true
}
