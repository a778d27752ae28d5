package services

import (
	"errors"
	"fmt"

	"github.com/Dosada05/matchday/brackets"
	"github.com/Dosada05/matchday/results"
)

// Классы ошибок. Каждая конкретная ошибка сервиса оборачивает ровно один класс,
// HTTP-слой сопоставляет их через errors.Is.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrInvalidOperation = errors.New("operation not allowed in the current state")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrForbidden        = errors.New("operation not allowed for the current user")
	ErrConflict         = errors.New("resource conflict")
	ErrUnauthenticated  = errors.New("authentication failed")
)

var (
	ErrUserNotFound         = newError(ErrNotFound, "user not found")
	ErrTeamNotFound         = newError(ErrNotFound, "team not found")
	ErrPlayerNotFound       = newError(ErrNotFound, "player not found")
	ErrTournamentNotFound   = newError(ErrNotFound, "tournament not found")
	ErrMatchNotFound        = newError(ErrNotFound, "match not found")
	ErrMatchEventNotFound   = newError(ErrNotFound, "match event not found")
	ErrNotificationNotFound = newError(ErrNotFound, "notification not found")

	ErrValidationFailed   = newError(ErrInvalidArgument, "validation failed")
	ErrPasswordTooShort   = newError(ErrInvalidArgument, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	ErrInvalidEmail       = newError(ErrInvalidArgument, "email address is invalid")
	ErrTeamNameRequired   = newError(ErrInvalidArgument, "team name is required")
	ErrPlayerNameRequired = newError(ErrInvalidArgument, "player first name is required")
	ErrTournamentNameReq  = newError(ErrInvalidArgument, "tournament name is required")
	ErrInvalidDateRange   = newError(ErrInvalidArgument, "end date must not be before start date")
	ErrInvalidStatus      = newError(ErrInvalidArgument, "invalid status")
	ErrSameTeams          = newError(ErrInvalidArgument, "home and away team must differ")
	ErrInvalidTeam        = newError(ErrInvalidArgument, "team does not exist")
	ErrInvalidReferee     = newError(ErrInvalidArgument, "referee does not exist")
	ErrInvalidPlayer      = newError(ErrInvalidArgument, "player does not exist")
	ErrInvalidEventType   = classify(ErrInvalidArgument, results.ErrInvalidEventType)
	ErrInvalidMinute      = newError(ErrInvalidArgument, "minute must be between 0 and 150")
	ErrInvalidFile        = newError(ErrInvalidArgument, "unsupported file type")
	ErrEmptyScoreUpdate   = newError(ErrInvalidArgument, "at least one score field is required")

	ErrUserEmailConflict      = newError(ErrConflict, "email address is already in use")
	ErrTeamNameConflict       = newError(ErrConflict, "team name is already in use")
	ErrJerseyConflict         = newError(ErrConflict, "jersey number is already taken in this team")
	ErrTournamentNameConflict = newError(ErrConflict, "tournament name already exists")
	ErrTeamInUse              = newError(ErrInvalidOperation, "team has matches")
	ErrPlayerInUse            = newError(ErrInvalidOperation, "player has match events")
	ErrTournamentInUse        = newError(ErrInvalidOperation, "tournament has matches")
	ErrStorageUnavailable     = newError(ErrInvalidOperation, "file storage is not configured")

	ErrInvalidCredentials = newError(ErrUnauthenticated, "invalid email or password")

	ErrForbiddenOperation    = newError(ErrForbidden, "operation not allowed for the current user")
	ErrTeamLeaderRequired    = newError(ErrForbidden, "only the team leader can perform this action")
	ErrOrganizerRequired     = newError(ErrForbidden, "only the tournament organizer can perform this action")
	ErrOfficialRequired      = newError(ErrForbidden, "only the match referee or the tournament organizer can perform this action")
	ErrConfirmRoleForbidden  = newError(ErrForbidden, "you cannot confirm in this role")
	ErrConfirmedScoreLocked  = newError(ErrForbidden, "only the organizer can change a confirmed result")
	ErrOrganizerRoleRequired = newError(ErrForbidden, "organizer role required")
)

// serviceError несёт сообщение для клиента и класс ошибки.
type serviceError struct {
	class error
	cause error
	msg   string
}

func (e *serviceError) Error() string { return e.msg }

func (e *serviceError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.class, e.cause}
	}
	return []error{e.class}
}

func newError(class error, msg string) error {
	return &serviceError{class: class, msg: msg}
}

// classify относит err к классу, сохраняя его текст и цепочку.
func classify(class error, err error) error {
	return &serviceError{class: class, cause: err, msg: err.Error()}
}

// domainError переводит ошибки пакетов results и brackets в классы сервиса.
// Исходная ошибка остаётся в цепочке.
func domainError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, results.ErrInvalidRole),
		errors.Is(err, results.ErrNegativeScore),
		errors.Is(err, results.ErrEventTeamNotInMatch),
		errors.Is(err, results.ErrSubstitutionTeam),
		errors.Is(err, results.ErrInvalidEventType),
		errors.Is(err, brackets.ErrNotEnoughTeams),
		errors.Is(err, brackets.ErrDuplicateTeam),
		errors.Is(err, brackets.ErrInvalidLegs),
		errors.Is(err, brackets.ErrInvalidTeamID):
		return classify(ErrInvalidArgument, err)
	case errors.Is(err, results.ErrInvalidTransition),
		errors.Is(err, results.ErrNotCompleted),
		errors.Is(err, results.ErrScoreBeforeStart),
		errors.Is(err, results.ErrMatchCancelled),
		errors.Is(err, results.ErrResultConfirmed),
		errors.Is(err, results.ErrEventsBeforeStart):
		return classify(ErrInvalidOperation, err)
	}
	return err
}
