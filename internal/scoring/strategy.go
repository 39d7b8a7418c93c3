package scoring

// ScoringStrategy selects how a raw rating is turned into a category score.
// Exactly one strategy applies to a submission; the two models are never
// mixed within a single result.
type ScoringStrategy string

const (
	// StrategyIndependentRating treats each rating as an independent 1-12
	// value, score = rating * 5 (rating 12 is the strongest interest).
	// This is the canonical strategy.
	StrategyIndependentRating ScoringStrategy = "independent_rating"

	// StrategyForcedRanking treats the twelve ratings as a forced ranking
	// that must be a permutation of 1..12, score = (13 - rating) * 5
	// (rating 1 is the strongest interest). Kept for results imported from
	// the legacy questionnaire format.
	StrategyForcedRanking ScoringStrategy = "forced_ranking"
)

// DefaultStrategy is applied to every new submission.
const DefaultStrategy = StrategyIndependentRating

// Score converts a single validated rating into a category score.
func (s ScoringStrategy) Score(rating int) int {
	if s == StrategyForcedRanking {
		return (13 - rating) * 5
	}
	return rating * 5
}

// RequiresPermutation reports whether the strategy demands that the twelve
// ratings form a permutation of 1..12.
func (s ScoringStrategy) RequiresPermutation() bool {
	return s == StrategyForcedRanking
}

// IsValid reports whether s names a known strategy.
func (s ScoringStrategy) IsValid() bool {
	return s == StrategyIndependentRating || s == StrategyForcedRanking
}
