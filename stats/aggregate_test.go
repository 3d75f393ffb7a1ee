package stats

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWeightedTeamAverage(t *testing.T) {
	tests := []struct {
		name      string
		homeAvg   float64
		homeCount int
		awayAvg   float64
		awayCount int
		want      float64
	}{
		{"no games", 0, 0, 0, 0, 0},
		{"home only", 80, 3, 0, 0, 80},
		{"away only", 0, 0, 95, 2, 95},
		// Two home games scoring 10 and 20, one away game scoring 30:
		// home_avg=15, away_avg=30, weighted = (15*2 + 30*1) / 3 = 20.
		{"weighted fixture", 15, 2, 30, 1, 20},
		// Diverges from a flat mean when counts differ.
		{"uneven roles", 100, 1, 50, 3, 62.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightedTeamAverage(tt.homeAvg, tt.homeCount, tt.awayAvg, tt.awayCount)
			if !almostEqual(got, tt.want) {
				t.Errorf("WeightedTeamAverage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, want 0", got)
	}
	if got := Mean([]float64{12, 18, 24}); !almostEqual(got, 18) {
		t.Errorf("Mean = %v, want 18", got)
	}
}

func TestPercentRanks(t *testing.T) {
	t.Run("single entry ranks zero", func(t *testing.T) {
		ranks := PercentRanks([]RankedEntry{{ID: 7, Value: 12}})
		if ranks[7] != 0 {
			t.Errorf("single entry rank = %v, want 0", ranks[7])
		}
	})

	t.Run("distinct values", func(t *testing.T) {
		entries := []RankedEntry{
			{ID: 1, Value: 30},
			{ID: 2, Value: 20},
			{ID: 3, Value: 10},
		}
		ranks := PercentRanks(entries)
		want := map[int]float64{1: 0, 2: 0.5, 3: 1}
		for id, w := range want {
			if !almostEqual(ranks[id], w) {
				t.Errorf("rank[%d] = %v, want %v", id, ranks[id], w)
			}
		}
	})

	t.Run("ties share the best rank", func(t *testing.T) {
		entries := []RankedEntry{
			{ID: 1, Value: 25},
			{ID: 2, Value: 25},
			{ID: 3, Value: 10},
		}
		ranks := PercentRanks(entries)
		if ranks[1] != 0 || ranks[2] != 0 {
			t.Errorf("tied top ranks = %v, %v, want both 0", ranks[1], ranks[2])
		}
		if !almostEqual(ranks[3], 1) {
			t.Errorf("rank[3] = %v, want 1", ranks[3])
		}
	})
}

func TestTopPercentileBoundary(t *testing.T) {
	// Ten players with distinct averages: ranks are 0, 1/9, 2/9, ...
	// Only rank 0 is strictly below 0.10 (1/9 ≈ 0.111 is not).
	entries := make([]RankedEntry, 10)
	for i := range entries {
		entries[i] = RankedEntry{ID: i + 1, Value: float64(100 - i*5)}
	}

	top := TopPercentile(entries, 0.10)
	if len(top) != 1 {
		t.Fatalf("TopPercentile returned %d entries, want 1", len(top))
	}
	if top[0].ID != 1 {
		t.Errorf("top entry ID = %d, want 1", top[0].ID)
	}
}

func TestTopPercentileTies(t *testing.T) {
	entries := []RankedEntry{
		{ID: 1, Value: 40},
		{ID: 2, Value: 40},
		{ID: 3, Value: 30},
		{ID: 4, Value: 20},
	}
	// Both tied leaders rank 0 and pass any positive threshold together.
	top := TopPercentile(entries, 0.10)
	if len(top) != 2 {
		t.Fatalf("TopPercentile returned %d entries, want 2", len(top))
	}
}
