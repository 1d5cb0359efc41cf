// Package performance scores mechanics from their aggregated transaction
// statistics.
package performance

// Score bounds.
const (
	MinScore  = 0
	MaxScore  = 100
	baseScore = 50
)

// Input is the aggregated activity for one mechanic over a period.
//
// CustomerSatisfaction is on a 0..5 scale; nil and 0 both mean "no rating".
type Input struct {
	TotalRevenue         float64
	TransactionCount     int
	AvgTransactionValue  float64
	CustomerSatisfaction *float64
}

// tier awards bonus when a value clears threshold.
type tier struct {
	threshold float64
	bonus     int
}

// ladder holds tiers ordered from the highest threshold down. Only the first
// tier the value clears is awarded.
type ladder struct {
	inclusive bool
	tiers     []tier
}

func (l ladder) bonus(value float64) int {
	for _, t := range l.tiers {
		if value > t.threshold || (l.inclusive && value == t.threshold) {
			return t.bonus
		}
	}
	return 0
}

var (
	revenueLadder = ladder{tiers: []tier{
		{threshold: 10_000_000, bonus: 30},
		{threshold: 5_000_000, bonus: 20},
		{threshold: 1_000_000, bonus: 10},
	}}
	countLadder = ladder{tiers: []tier{
		{threshold: 50, bonus: 20},
		{threshold: 20, bonus: 15},
		{threshold: 10, bonus: 10},
	}}
	averageLadder = ladder{tiers: []tier{
		{threshold: 1_000_000, bonus: 20},
		{threshold: 500_000, bonus: 15},
		{threshold: 200_000, bonus: 10},
	}}
	satisfactionLadder = ladder{inclusive: true, tiers: []tier{
		{threshold: 4.5, bonus: 30},
		{threshold: 4.0, bonus: 25},
		{threshold: 3.5, bonus: 20},
		{threshold: 3.0, bonus: 15},
		{threshold: 2.5, bonus: 10},
		{threshold: 2.0, bonus: 5},
	}}
)

// Score maps in to a value in [MinScore, MaxScore].
//
// Inputs are not validated; negative or out-of-range values simply fail to
// clear any tier.
func Score(in Input) int {
	score := baseScore
	score += revenueLadder.bonus(in.TotalRevenue)
	score += countLadder.bonus(float64(in.TransactionCount))
	score += averageLadder.bonus(in.AvgTransactionValue)
	if in.CustomerSatisfaction != nil && *in.CustomerSatisfaction != 0 {
		score += satisfactionLadder.bonus(*in.CustomerSatisfaction)
	}
	return clamp(score)
}

func clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
