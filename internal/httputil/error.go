package httputil

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AdamBeresnev/esports-tracker/internal/esports"
)

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	WriteJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err)
	} else {
		slog.Warn("bad request", "message", msg)
	}
	WriteJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("not found", "message", msg, "error", err)
	} else {
		slog.Warn("not found", "message", msg)
	}
	WriteJSON(w, http.StatusNotFound, errorBody{Error: msg})
}

func Conflict(w http.ResponseWriter, msg string, err error) {
	slog.Warn("conflict", "message", msg, "error", err)
	WriteJSON(w, http.StatusConflict, errorBody{Error: msg})
}

func Unauthorized(w http.ResponseWriter, msg string) {
	slog.Warn("unauthorized", "message", msg)
	WriteJSON(w, http.StatusUnauthorized, errorBody{Error: msg})
}

// WriteError maps an error kind from the esports package to a status code.
// Anything unrecognised is logged and reported as a 500.
func WriteError(w http.ResponseWriter, msg string, err error) {
	var validationErr *esports.ValidationError
	switch {
	case errors.As(err, &validationErr):
		slog.Warn("bad request", "message", msg, "error", err)
		WriteJSON(w, http.StatusBadRequest, errorBody{Error: esports.ErrValidation.Error(), Fields: validationErr.Fields})
	case errors.Is(err, esports.ErrValidation),
		errors.Is(err, esports.ErrInvalidMatch),
		errors.Is(err, esports.ErrInvalidWinner),
		errors.Is(err, esports.ErrInvalidScore):
		BadRequest(w, err.Error(), err)
	case errors.Is(err, esports.ErrNotFound):
		NotFound(w, msg+": "+esports.ErrNotFound.Error(), err)
	case errors.Is(err, esports.ErrDuplicateRegistration),
		errors.Is(err, esports.ErrTeamNameTaken),
		errors.Is(err, esports.ErrEmailTaken),
		errors.Is(err, esports.ErrGameTitleTaken),
		errors.Is(err, esports.ErrAlreadyOnRoster),
		errors.Is(err, esports.ErrMatchNotScheduled),
		errors.Is(err, esports.ErrMatchExists):
		Conflict(w, err.Error(), err)
	default:
		InternalServerError(w, msg, err)
	}
}
