// Package policy is the role-based access policy consumed by the HTTP
// layer. It is a pure function of the user and the requested operation,
// independent of any request framework.
package policy

import "github.com/Dosada05/basketball-league/models"

// Resource names a class of league data.
type Resource string

const (
	ResourceUsers       Resource = "users"
	ResourceTeams       Resource = "teams"
	ResourcePlayers     Resource = "players"
	ResourceGames       Resource = "games"
	ResourceScores      Resource = "scores"
	ResourceTournaments Resource = "tournaments"
	ResourceUserStats   Resource = "user_stats"
)

// Action is the kind of access requested on a resource.
type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
	// ActionManage covers elevated staff operations: tournament management,
	// full team and player administration, user statistics.
	ActionManage Action = "manage"
	// ActionReadOwn covers self-scoped reads: a coach's own teams and
	// players, a player's own record.
	ActionReadOwn Action = "read_own"
)

// CanAccess reports whether user may perform action on resource. A nil user
// is unauthenticated and holds no access at all.
func CanAccess(user *models.User, resource Resource, action Action) bool {
	if user == nil {
		return false
	}

	switch action {
	case ActionRead:
		return user.IsAdmin || user.IsCoach || user.IsPlayer
	case ActionWrite:
		return user.IsAdmin
	case ActionManage:
		return user.IsAdmin && user.IsStaff
	case ActionReadOwn:
		switch resource {
		case ResourcePlayers:
			// "My info" is open to anyone authenticated; a missing player
			// record surfaces as not found, not as a denial.
			return true
		default:
			return user.IsCoach
		}
	default:
		return false
	}
}

// OwnsTeam reports whether user is the coach of team. Coach-scoped listings
// filter on this, so a foreign coach sees an empty result set rather than
// an error.
func OwnsTeam(user *models.User, team *models.Team) bool {
	if user == nil || team == nil {
		return false
	}
	return user.IsCoach && team.CoachID == user.ID
}
