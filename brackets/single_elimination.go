// Package brackets implements the single-elimination pairing and outcome
// rules for tournament rounds. It operates on in-memory round snapshots;
// persistence belongs to the tournament service.
package brackets

import (
	"errors"
	"fmt"

	"github.com/Dosada05/basketball-league/models"
)

var (
	ErrInvalidBracketState  = errors.New("invalid bracket state")
	ErrIncompleteTournament = errors.New("tournament is not complete")
)

// Match is one pairing within a round. Teams are paired consecutively:
// (t0,t1), (t2,t3), and so on in RoundTeam order.
type Match struct {
	OrderInRound int
	TeamAID      int
	TeamBID      int
}

// PairRound forms the matches of a round from its surviving teams. A round
// must hold an even number of at least two teams to be paired.
func PairRound(teams []models.RoundTeam) ([]Match, error) {
	active := make([]models.RoundTeam, 0, len(teams))
	for _, rt := range teams {
		if !rt.Eliminated {
			active = append(active, rt)
		}
	}

	if len(active) < 2 {
		return nil, fmt.Errorf("%w: round has %d active teams, need at least 2", ErrInvalidBracketState, len(active))
	}
	if len(active)%2 != 0 {
		return nil, fmt.Errorf("%w: round has an odd number of teams (%d)", ErrInvalidBracketState, len(active))
	}

	matches := make([]Match, 0, len(active)/2)
	for i := 0; i < len(active); i += 2 {
		matches = append(matches, Match{
			OrderInRound: i/2 + 1,
			TeamAID:      active[i].TeamID,
			TeamBID:      active[i+1].TeamID,
		})
	}
	return matches, nil
}

// ApplyResults resolves a fully paired round. Every match needs exactly one
// declared winner drawn from its own pair; anything else rejects the whole
// round so persistence can stay all-or-nothing.
func ApplyResults(matches []Match, winners []int) (advancing []int, eliminated []int, err error) {
	if len(winners) != len(matches) {
		return nil, nil, fmt.Errorf("%w: %d matches but %d winners declared", ErrInvalidBracketState, len(matches), len(winners))
	}

	advancing = make([]int, 0, len(matches))
	eliminated = make([]int, 0, len(matches))
	for i, m := range matches {
		switch winners[i] {
		case m.TeamAID:
			advancing = append(advancing, m.TeamAID)
			eliminated = append(eliminated, m.TeamBID)
		case m.TeamBID:
			advancing = append(advancing, m.TeamBID)
			eliminated = append(eliminated, m.TeamAID)
		default:
			return nil, nil, fmt.Errorf("%w: team %d is not part of match %d (%d vs %d)",
				ErrInvalidBracketState, winners[i], m.OrderInRound, m.TeamAID, m.TeamBID)
		}
	}
	return advancing, eliminated, nil
}

// Champion returns the single surviving team of a terminal round. More than
// one survivor means the tournament still has rounds to play.
func Champion(teams []models.RoundTeam) (int, error) {
	survivors := make([]int, 0, 1)
	for _, rt := range teams {
		if !rt.Eliminated {
			survivors = append(survivors, rt.TeamID)
		}
	}
	if len(survivors) != 1 {
		return 0, fmt.Errorf("%w: %d teams remain in the final round", ErrIncompleteTournament, len(survivors))
	}
	return survivors[0], nil
}
