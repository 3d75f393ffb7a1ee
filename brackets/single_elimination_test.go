package brackets

import (
	"errors"
	"testing"

	"github.com/Dosada05/basketball-league/models"
)

func roundOf(teamIDs ...int) []models.RoundTeam {
	teams := make([]models.RoundTeam, len(teamIDs))
	for i, id := range teamIDs {
		teams[i] = models.RoundTeam{TeamID: id}
	}
	return teams
}

func TestPairRound(t *testing.T) {
	t.Run("consecutive pairs", func(t *testing.T) {
		matches, err := PairRound(roundOf(10, 20, 30, 40))
		if err != nil {
			t.Fatalf("PairRound: %v", err)
		}
		if len(matches) != 2 {
			t.Fatalf("got %d matches, want 2", len(matches))
		}
		if matches[0].TeamAID != 10 || matches[0].TeamBID != 20 {
			t.Errorf("match 1 = %d vs %d, want 10 vs 20", matches[0].TeamAID, matches[0].TeamBID)
		}
		if matches[1].TeamAID != 30 || matches[1].TeamBID != 40 {
			t.Errorf("match 2 = %d vs %d, want 30 vs 40", matches[1].TeamAID, matches[1].TeamBID)
		}
	})

	t.Run("eliminated teams are skipped", func(t *testing.T) {
		teams := roundOf(1, 2, 3, 4)
		teams[1].Eliminated = true
		teams[3].Eliminated = true
		matches, err := PairRound(teams)
		if err != nil {
			t.Fatalf("PairRound: %v", err)
		}
		if len(matches) != 1 || matches[0].TeamAID != 1 || matches[0].TeamBID != 3 {
			t.Errorf("unexpected pairing: %+v", matches)
		}
	})

	t.Run("odd team count fails", func(t *testing.T) {
		_, err := PairRound(roundOf(1, 2, 3))
		if !errors.Is(err, ErrInvalidBracketState) {
			t.Errorf("err = %v, want ErrInvalidBracketState", err)
		}
	})

	t.Run("fewer than two teams fails", func(t *testing.T) {
		_, err := PairRound(roundOf(1))
		if !errors.Is(err, ErrInvalidBracketState) {
			t.Errorf("err = %v, want ErrInvalidBracketState", err)
		}
	})
}

func TestApplyResults(t *testing.T) {
	matches := []Match{
		{OrderInRound: 1, TeamAID: 1, TeamBID: 2},
		{OrderInRound: 2, TeamAID: 3, TeamBID: 4},
	}

	t.Run("winners advance, losers eliminated", func(t *testing.T) {
		advancing, eliminated, err := ApplyResults(matches, []int{2, 3})
		if err != nil {
			t.Fatalf("ApplyResults: %v", err)
		}
		if advancing[0] != 2 || advancing[1] != 3 {
			t.Errorf("advancing = %v, want [2 3]", advancing)
		}
		if eliminated[0] != 1 || eliminated[1] != 4 {
			t.Errorf("eliminated = %v, want [1 4]", eliminated)
		}
	})

	t.Run("missing winner rejected", func(t *testing.T) {
		_, _, err := ApplyResults(matches, []int{2})
		if !errors.Is(err, ErrInvalidBracketState) {
			t.Errorf("err = %v, want ErrInvalidBracketState", err)
		}
	})

	t.Run("foreign winner rejected", func(t *testing.T) {
		_, _, err := ApplyResults(matches, []int{2, 99})
		if !errors.Is(err, ErrInvalidBracketState) {
			t.Errorf("err = %v, want ErrInvalidBracketState", err)
		}
	})
}

func TestChampion(t *testing.T) {
	t.Run("single survivor", func(t *testing.T) {
		teams := roundOf(5, 6)
		teams[1].Eliminated = true
		id, err := Champion(teams)
		if err != nil {
			t.Fatalf("Champion: %v", err)
		}
		if id != 5 {
			t.Errorf("champion = %d, want 5", id)
		}
	})

	t.Run("multiple survivors incomplete", func(t *testing.T) {
		_, err := Champion(roundOf(5, 6))
		if !errors.Is(err, ErrIncompleteTournament) {
			t.Errorf("err = %v, want ErrIncompleteTournament", err)
		}
	})
}

// Full 16-team run: four rounds with 16, 8, 4 and 2 teams, one champion.
func TestSingleEliminationFullRun(t *testing.T) {
	teamCount := 16
	round := roundOf(func() []int {
		ids := make([]int, teamCount)
		for i := range ids {
			ids[i] = i + 1
		}
		return ids
	}()...)

	wantCounts := []int{16, 8, 4, 2}
	roundNumber := 1

	for len(round) > 1 {
		if roundNumber > len(wantCounts) {
			t.Fatalf("too many rounds: %d", roundNumber)
		}
		if len(round) != wantCounts[roundNumber-1] {
			t.Fatalf("round %d has %d teams, want %d", roundNumber, len(round), wantCounts[roundNumber-1])
		}

		matches, err := PairRound(round)
		if err != nil {
			t.Fatalf("round %d PairRound: %v", roundNumber, err)
		}

		// First team of each pair wins.
		winners := make([]int, len(matches))
		for i, m := range matches {
			winners[i] = m.TeamAID
		}
		advancing, eliminated, err := ApplyResults(matches, winners)
		if err != nil {
			t.Fatalf("round %d ApplyResults: %v", roundNumber, err)
		}
		if len(advancing)+len(eliminated) != len(round) {
			t.Fatalf("round %d lost teams: %d advancing + %d eliminated != %d",
				roundNumber, len(advancing), len(eliminated), len(round))
		}

		round = roundOf(advancing...)
		roundNumber++
	}

	if roundNumber-1 != 4 {
		t.Errorf("played %d rounds, want 4", roundNumber-1)
	}
	champion, err := Champion(round)
	if err != nil {
		t.Fatalf("Champion: %v", err)
	}
	if champion != 1 {
		t.Errorf("champion = %d, want 1", champion)
	}
}
