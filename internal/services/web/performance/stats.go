package performance

import (
	"sort"
	"strings"
)

// Stats are raw per-mechanic totals as read from storage. Money is whole rupiah.
type Stats struct {
	TotalRevenue     int64
	TransactionCount int
	RatingSum        int
	RatingCount      int
}

// FromStats derives scorer input from raw totals. The average transaction
// value is zero when there are no transactions, and satisfaction is left unset
// when no customer left a rating.
func FromStats(s Stats) Input {
	in := Input{
		TotalRevenue:     float64(s.TotalRevenue),
		TransactionCount: s.TransactionCount,
	}
	if s.TransactionCount > 0 {
		in.AvgTransactionValue = float64(s.TotalRevenue) / float64(s.TransactionCount)
	}
	if s.RatingCount > 0 {
		satisfaction := float64(s.RatingSum) / float64(s.RatingCount)
		in.CustomerSatisfaction = &satisfaction
	}
	return in
}

// Entry is one mechanic to rank.
type Entry struct {
	MechanicID string
	Name       string
	Stats      Stats
}

// Ranked is an Entry with its computed input and score.
type Ranked struct {
	Entry
	Input Input
	Score int
	Rank  int
}

// Rank scores every entry and orders them by score, then revenue, then name.
// Tied scores with equal revenue share a rank.
func Rank(entries []Entry) []Ranked {
	ranked := make([]Ranked, 0, len(entries))
	for _, entry := range entries {
		in := FromStats(entry.Stats)
		ranked = append(ranked, Ranked{Entry: entry, Input: in, Score: Score(in)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Stats.TotalRevenue != b.Stats.TotalRevenue {
			return a.Stats.TotalRevenue > b.Stats.TotalRevenue
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	for i := range ranked {
		if i > 0 && ranked[i].Score == ranked[i-1].Score && ranked[i].Stats.TotalRevenue == ranked[i-1].Stats.TotalRevenue {
			ranked[i].Rank = ranked[i-1].Rank
			continue
		}
		ranked[i].Rank = i + 1
	}
	return ranked
}
