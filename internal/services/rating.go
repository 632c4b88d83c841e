package services

import "github.com/soaringjerry/klausurarchiv/internal/models"

const (
	DifficultyUnrated = "unrated"
	DifficultyEasy    = "easy"
	DifficultyMedium  = "medium"
	DifficultyHard    = "hard"
)

// Average returns sum/count, or ok=false when nothing has been rated.
func Average(sum, count int) (avg float64, ok bool) {
	if count <= 0 {
		return 0, false
	}
	return float64(sum) / float64(count), true
}

// DifficultyLabel buckets an average difficulty: 0 unrated, (0,2] easy, (2,3.5] medium, above that hard.
func DifficultyLabel(avg float64) string {
	switch {
	case avg <= 0:
		return DifficultyUnrated
	case avg <= 2:
		return DifficultyEasy
	case avg <= 3.5:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// RatingSummary is the derived read model for an exam's aggregate rating.
// Averages are nil for unrated exams.
type RatingSummary struct {
	Count             int      `json:"count"`
	AverageDifficulty *float64 `json:"average_difficulty"`
	AverageQuality    *float64 `json:"average_quality"`
	DifficultyLabel   string   `json:"difficulty_label"`
}

func SummarizeRatings(r models.Ratings) RatingSummary {
	out := RatingSummary{Count: r.Count, DifficultyLabel: DifficultyUnrated}
	if d, ok := Average(r.DifficultySum, r.Count); ok {
		out.AverageDifficulty = &d
		out.DifficultyLabel = DifficultyLabel(d)
	}
	if q, ok := Average(r.QualitySum, r.Count); ok {
		out.AverageQuality = &q
	}
	return out
}

// applyRating adds one submission to the running sums.
// difficulty and quality must already be within 1..5.
func applyRating(r models.Ratings, difficulty, quality int) models.Ratings {
	return models.Ratings{
		DifficultySum: r.DifficultySum + difficulty,
		QualitySum:    r.QualitySum + quality,
		Count:         r.Count + 1,
	}
}
