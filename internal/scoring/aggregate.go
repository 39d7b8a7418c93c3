package scoring

import (
	"fmt"
	"sort"

	apperrors "github.com/SAP-F-2025/rmib-profile-service/internal/errors"
)

// RatingMin and RatingMax bound every submitted rating, inclusive.
const (
	RatingMin = 1
	RatingMax = 12
)

// RankedCategory is one row of the ranking produced by Aggregate.
type RankedCategory struct {
	Category Category `json:"category"`
	Rating   int      `json:"rating"`
	Score    int      `json:"score"`
}

// AggregateResult holds every derived field of a scored rating set. All
// fields are consistent with the input ratings by construction.
type AggregateResult struct {
	CategoryScores map[Category]int `json:"category_scores"`
	TotalScore     int              `json:"total_score"`
	Ranking        []RankedCategory `json:"ranking"`

	Primary   RankedCategory `json:"primary"`
	Secondary RankedCategory `json:"secondary"`
	Tertiary  RankedCategory `json:"tertiary"`
}

// ValidateRatings checks that ratings contains exactly the twelve fixed
// category keys with values in [RatingMin, RatingMax]. Every violation is
// reported with the offending category key.
func ValidateRatings(ratings map[Category]int, strategy ScoringStrategy) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	for key, rating := range ratings {
		if !IsValidCategory(string(key)) {
			errs = append(errs, apperrors.ValidationError{
				Field:   string(key),
				Message: "is not a known RMIB category",
				Value:   rating,
				Rule:    "rmib_category",
			})
			continue
		}
		if rating < RatingMin || rating > RatingMax {
			errs = append(errs, apperrors.ValidationError{
				Field:   string(key),
				Message: fmt.Sprintf("rating must be between %d and %d", RatingMin, RatingMax),
				Value:   rating,
				Rule:    "rating_range",
			})
		}
	}

	for _, c := range Categories {
		if _, ok := ratings[c]; !ok {
			errs = append(errs, apperrors.ValidationError{
				Field:   string(c),
				Message: "rating is required",
				Rule:    "required",
			})
		}
	}

	if strategy.RequiresPermutation() && len(errs) == 0 {
		seen := make(map[int]Category, len(ratings))
		for key, rating := range ratings {
			if prev, dup := seen[rating]; dup {
				errs = append(errs, apperrors.ValidationError{
					Field:   string(key),
					Message: fmt.Sprintf("ranking %d already assigned to %s", rating, prev),
					Value:   rating,
					Rule:    "unique_ranking",
				})
			}
			seen[rating] = key
		}
	}

	return errs
}

// ValidatePartialRatings checks a rating subset the way autosave needs it:
// keys must be known categories and values in range, but missing categories
// are fine.
func ValidatePartialRatings(ratings map[Category]int) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	for key, rating := range ratings {
		if !IsValidCategory(string(key)) {
			errs = append(errs, apperrors.ValidationError{
				Field:   string(key),
				Message: "is not a known RMIB category",
				Value:   rating,
				Rule:    "rmib_category",
			})
			continue
		}
		if rating < RatingMin || rating > RatingMax {
			errs = append(errs, apperrors.ValidationError{
				Field:   string(key),
				Message: fmt.Sprintf("rating must be between %d and %d", RatingMin, RatingMax),
				Value:   rating,
				Rule:    "rating_range",
			})
		}
	}

	return errs
}

// Aggregate validates and scores a complete rating set. It is a pure
// function: persistence of the result is the caller's responsibility and
// must be all-or-nothing.
func Aggregate(ratings map[Category]int, strategy ScoringStrategy) (*AggregateResult, error) {
	if errs := ValidateRatings(ratings, strategy); len(errs) > 0 {
		return nil, errs
	}

	result := &AggregateResult{
		CategoryScores: make(map[Category]int, len(ratings)),
		Ranking:        make([]RankedCategory, 0, len(ratings)),
	}

	for category, rating := range ratings {
		score := strategy.Score(rating)
		result.CategoryScores[category] = score
		result.TotalScore += score
		result.Ranking = append(result.Ranking, RankedCategory{
			Category: category,
			Rating:   rating,
			Score:    score,
		})
	}

	// Score descending, then raw rating descending, then category key
	// ascending so equal entries always rank deterministically.
	sort.Slice(result.Ranking, func(i, j int) bool {
		a, b := result.Ranking[i], result.Ranking[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.Category < b.Category
	})

	result.Primary = result.Ranking[0]
	result.Secondary = result.Ranking[1]
	result.Tertiary = result.Ranking[2]

	return result, nil
}
