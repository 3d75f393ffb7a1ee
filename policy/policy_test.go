package policy

import (
	"testing"

	"github.com/Dosada05/basketball-league/models"
)

func TestCanAccess(t *testing.T) {
	admin := &models.User{ID: 1, IsAdmin: true}
	staffAdmin := &models.User{ID: 2, IsAdmin: true, IsStaff: true}
	coach := &models.User{ID: 3, IsCoach: true}
	player := &models.User{ID: 4, IsPlayer: true}
	noRole := &models.User{ID: 5}

	tests := []struct {
		name     string
		user     *models.User
		resource Resource
		action   Action
		want     bool
	}{
		{"nil user read", nil, ResourceTeams, ActionRead, false},
		{"admin read", admin, ResourceTeams, ActionRead, true},
		{"coach read", coach, ResourceGames, ActionRead, true},
		{"player read", player, ResourcePlayers, ActionRead, true},
		{"authenticated without role read", noRole, ResourceTeams, ActionRead, false},

		{"admin user write", admin, ResourceUsers, ActionWrite, true},
		{"coach user write denied", coach, ResourceUsers, ActionWrite, false},

		{"admin write", admin, ResourceTeams, ActionWrite, true},
		{"coach write denied", coach, ResourceTeams, ActionWrite, false},
		{"player write denied", player, ResourceGames, ActionWrite, false},

		{"plain admin manage denied", admin, ResourceTournaments, ActionManage, false},
		{"staff admin manage", staffAdmin, ResourceTournaments, ActionManage, true},
		{"staff admin user stats", staffAdmin, ResourceUserStats, ActionManage, true},
		{"coach manage denied", coach, ResourceTournaments, ActionManage, false},

		{"coach own teams", coach, ResourceTeams, ActionReadOwn, true},
		{"player own teams denied", player, ResourceTeams, ActionReadOwn, false},
		{"player own player record", player, ResourcePlayers, ActionReadOwn, true},
		{"roleless own player record", noRole, ResourcePlayers, ActionReadOwn, true},
		{"nil user own player record", nil, ResourcePlayers, ActionReadOwn, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccess(tt.user, tt.resource, tt.action); got != tt.want {
				t.Errorf("CanAccess(%v, %s, %s) = %v, want %v", tt.user, tt.resource, tt.action, got, tt.want)
			}
		})
	}
}

func TestOwnsTeam(t *testing.T) {
	coach := &models.User{ID: 3, IsCoach: true}
	otherCoach := &models.User{ID: 9, IsCoach: true}
	team := &models.Team{ID: 1, CoachID: 3}

	if !OwnsTeam(coach, team) {
		t.Error("coach should own their team")
	}
	if OwnsTeam(otherCoach, team) {
		t.Error("foreign coach must not own the team")
	}
	if OwnsTeam(nil, team) || OwnsTeam(coach, nil) {
		t.Error("nil arguments never own anything")
	}
}
