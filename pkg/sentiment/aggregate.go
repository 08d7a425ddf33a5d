package sentiment

import (
	"fmt"
	"math"
	"strings"
)

// ReviewInput - отзыв для агрегации: текст, оценка и (опционально)
// результат анализа тональности
type ReviewInput struct {
	Text   string
	Rating int
	Score  *float64 // Тональность в диапазоне [-1, 1], nil если не вычислена
	Label  *string  // positive/negative/neutral, nil если не вычислена
}

// Summary - сводная статистика тональности по коллекции отзывов
// Проценты округляются независимо, поэтому их сумма может отличаться от 100
type Summary struct {
	PositivePercentage int      `json:"positivePercentage"`
	NeutralPercentage  int      `json:"neutralPercentage"`
	NegativePercentage int      `json:"negativePercentage"`
	AverageRating      string   `json:"averageRating"`
	TopKeywords        []string `json:"topKeywords"`
}

// Пороги классификации по численному score (строгие неравенства)
const (
	positiveThreshold = 0.33
	negativeThreshold = -0.33
)

// Aggregate строит сводку тональности по коллекции отзывов
// Политика классификации: отзыв позитивный, если label == "positive" ИЛИ
// score > 0.33; негативный, если label == "negative" ИЛИ score < -0.33;
// иначе нейтральный. Достаточно любого из условий (включающее ИЛИ):
// отзыв с label "neutral" и score 0.5 считается позитивным
func Aggregate(reviews []ReviewInput) Summary {
	if len(reviews) == 0 {
		return Summary{AverageRating: "0.0", TopKeywords: make([]string, 0)}
	}

	var positive, negative, neutral, ratingSum int
	var allText strings.Builder

	for _, review := range reviews {
		switch {
		case hasLabel(review, LabelPositive) || hasScoreAbove(review, positiveThreshold):
			positive++
		case hasLabel(review, LabelNegative) || hasScoreBelow(review, negativeThreshold):
			negative++
		default:
			neutral++
		}

		ratingSum += review.Rating
		allText.WriteString(" ")
		allText.WriteString(review.Text)
	}

	total := len(reviews)

	return Summary{
		PositivePercentage: roundPercentage(positive, total),
		NeutralPercentage:  roundPercentage(neutral, total),
		NegativePercentage: roundPercentage(negative, total),
		AverageRating:      fmt.Sprintf("%.1f", float64(ratingSum)/float64(total)),
		TopKeywords:        TopKeywords(allText.String()),
	}
}

func hasLabel(r ReviewInput, label string) bool {
	return r.Label != nil && *r.Label == label
}

func hasScoreAbove(r ReviewInput, threshold float64) bool {
	return r.Score != nil && *r.Score > threshold
}

func hasScoreBelow(r ReviewInput, threshold float64) bool {
	return r.Score != nil && *r.Score < threshold
}

func roundPercentage(count, total int) int {
	return int(math.Round(float64(count) / float64(total) * 100))
}
