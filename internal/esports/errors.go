package esports

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidMatch          = errors.New("invalid_match")
	ErrInvalidWinner         = errors.New("invalid_winner")
	ErrInvalidScore          = errors.New("invalid_score")
	ErrDuplicateRegistration = errors.New("duplicate_registration")
	ErrRecordingFailed       = errors.New("recording_failed")

	ErrNotFound          = errors.New("not_found")
	ErrTeamNameTaken     = errors.New("team_name_taken")
	ErrEmailTaken        = errors.New("email_taken")
	ErrGameTitleTaken    = errors.New("game_title_taken")
	ErrAlreadyOnRoster   = errors.New("already_on_roster")
	ErrMatchNotScheduled = errors.New("match_not_scheduled")
	ErrMatchExists       = errors.New("match_exists")
	ErrValidation        = errors.New("validation")
)

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}
