package scoring

import "sort"

// CategoryBreakdown is the per-category row of a combined score view.
type CategoryBreakdown struct {
	Category         Category `json:"category"`
	CategoryName     string   `json:"category_name"`
	TestScore        int      `json:"test_score"`
	AchievementScore int      `json:"achievement_score"`
	CombinedScore    int      `json:"combined_score"`
}

// CombinedView merges test scores with verified-achievement contributions.
// It is derived state: always rebuilt from its sources, never owned.
type CombinedView struct {
	Categories       []CategoryBreakdown `json:"categories"`
	TestTotal        int                 `json:"test_total"`
	AchievementTotal int                 `json:"achievement_total"`
	CombinedTotal    int                 `json:"combined_total"`
}

// Combine builds the read-time composition of test scores and achievement
// contributions. Either input may be nil or empty: a student without a
// scored result gets an achievement-only view and vice versa. Inputs are
// assumed valid because their producers validated them.
func Combine(categoryScores map[Category]int, contributionSets []map[Category]int) *CombinedView {
	achievementScores := make(map[Category]int)
	for _, set := range contributionSets {
		for category, points := range set {
			achievementScores[category] += points
		}
	}

	view := &CombinedView{
		Categories: make([]CategoryBreakdown, 0, CategoryCount),
	}

	for _, category := range Categories {
		test := categoryScores[category]
		bonus := achievementScores[category]
		view.Categories = append(view.Categories, CategoryBreakdown{
			Category:         category,
			CategoryName:     CategoryNames[category],
			TestScore:        test,
			AchievementScore: bonus,
			CombinedScore:    test + bonus,
		})
		view.TestTotal += test
		view.AchievementTotal += bonus
	}
	view.CombinedTotal = view.TestTotal + view.AchievementTotal

	// Highest combined score first; key order breaks ties deterministically.
	sort.SliceStable(view.Categories, func(i, j int) bool {
		return view.Categories[i].CombinedScore > view.Categories[j].CombinedScore
	})

	return view
}
