package scoring

// SecondaryShareDivisor fixes the rounding rule for secondary-category
// contributions: the secondary category receives points/2 rounded down.
// Historical report code rounded up for odd point values; the floor rule is
// the one the persisted model always used, so it is pinned here.
const SecondaryShareDivisor = 2

// CategoryMapping holds the optional RMIB categories an achievement type
// contributes to. A nil entry means no contribution on that slot.
type CategoryMapping struct {
	Primary   *Category
	Secondary *Category
}

// Contributions computes the per-category bonus points one achievement adds
// given its resolved point value and category mapping. The primary category
// receives the full points, a distinct secondary category half (floored).
// An unmapped achievement contributes nothing. The function is pure and
// idempotent; callers recompute it on every save rather than accumulate.
func Contributions(points int, mapping CategoryMapping) map[Category]int {
	contributions := make(map[Category]int)

	if mapping.Primary != nil {
		contributions[*mapping.Primary] = points
	}

	if mapping.Secondary != nil {
		if mapping.Primary == nil || *mapping.Secondary != *mapping.Primary {
			contributions[*mapping.Secondary] = points / SecondaryShareDivisor
		}
	}

	return contributions
}
