package services

import (
	"errors"
	"fmt"

	"github.com/Dosada05/basketball-league/brackets"
)

// Error taxonomy shared by all services and the HTTP mapping. Policy and
// validation errors are caller-input problems and are never retried.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidationFailed = errors.New("validation failed")

	// Bracket errors originate in the brackets package; re-exported here so
	// handlers map a single taxonomy.
	ErrInvalidBracketState  = brackets.ErrInvalidBracketState
	ErrIncompleteTournament = brackets.ErrIncompleteTournament

	// Authentication
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already taken")
	ErrPasswordTooShort   = errors.New("password is too short")

	// Entity-specific not-found variants for extra context
	ErrUserNotFound       = fmt.Errorf("%w: user", ErrNotFound)
	ErrTeamNotFound       = fmt.Errorf("%w: team", ErrNotFound)
	ErrPlayerNotFound     = fmt.Errorf("%w: player", ErrNotFound)
	ErrGameNotFound       = fmt.Errorf("%w: game", ErrNotFound)
	ErrTournamentNotFound = fmt.Errorf("%w: tournament", ErrNotFound)

	// Validation variants
	ErrTeamNameRequired           = fmt.Errorf("%w: team name is required", ErrValidationFailed)
	ErrGameTeamsIdentical         = fmt.Errorf("%w: a game needs two distinct teams", ErrValidationFailed)
	ErrParticipationTeamMismatch  = fmt.Errorf("%w: player's team must match the participating team", ErrValidationFailed)
	ErrParticipationDuplicate     = fmt.Errorf("%w: player already recorded for this game", ErrValidationFailed)
	ErrTournamentNameRequired     = fmt.Errorf("%w: tournament name is required", ErrValidationFailed)
	ErrTournamentTeamCountInvalid = fmt.Errorf("%w: tournament requires an even number of at least two teams", ErrValidationFailed)
	ErrTournamentAlreadyComplete  = fmt.Errorf("%w: tournament is already completed", brackets.ErrInvalidBracketState)
)
