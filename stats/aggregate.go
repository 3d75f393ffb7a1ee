// Package stats holds the aggregate-score arithmetic used by the stats
// service. Everything here is pure so the exact weighting and percentile
// boundary semantics can be verified without a database.
package stats

import "sort"

// WeightedTeamAverage combines independently averaged home and away scoring
// into one team average, weighted by the number of games played in each role.
// This is deliberately not a flat mean over all games: the two roles are
// averaged first and only then combined.
func WeightedTeamAverage(homeAvg float64, homeCount int, awayAvg float64, awayCount int) float64 {
	total := homeCount + awayCount
	if total == 0 {
		return 0
	}
	return (homeAvg*float64(homeCount) + awayAvg*float64(awayCount)) / float64(total)
}

// Mean returns the arithmetic mean of values, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// RankedEntry pairs an identifier with the value it is ranked by.
type RankedEntry struct {
	ID    int
	Value float64
}

// PercentRanks computes the percent rank of every entry over descending
// Value order: pr = (rank - 1) / (N - 1), where rank is 1 plus the count of
// entries with a strictly greater value. Ties share a rank. A single entry
// ranks 0. The returned map is keyed by entry ID.
func PercentRanks(entries []RankedEntry) map[int]float64 {
	n := len(entries)
	ranks := make(map[int]float64, n)
	if n == 0 {
		return ranks
	}
	if n == 1 {
		ranks[entries[0].ID] = 0
		return ranks
	}

	sorted := make([]RankedEntry, n)
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value > sorted[j].Value
	})

	for i, e := range sorted {
		rank := i + 1
		// Walk back over ties so equal values share the best rank.
		for j := i - 1; j >= 0 && sorted[j].Value == e.Value; j-- {
			rank = j + 1
		}
		ranks[e.ID] = float64(rank-1) / float64(n-1)
	}
	return ranks
}

// TopPercentile filters entries whose percent rank is strictly below
// threshold, preserving descending Value order. With ten distinctly scored
// entries and a 0.10 threshold, exactly the top entry qualifies.
func TopPercentile(entries []RankedEntry, threshold float64) []RankedEntry {
	ranks := PercentRanks(entries)

	sorted := make([]RankedEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value > sorted[j].Value
	})

	top := make([]RankedEntry, 0)
	for _, e := range sorted {
		if ranks[e.ID] < threshold {
			top = append(top, e)
		}
	}
	return top
}
