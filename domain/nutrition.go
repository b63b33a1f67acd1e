package domain

import "math"

// Nutrition holds the per-serving macro values of a single recipe.
type Nutrition struct {
	Calories      int     // kcal
	Fat           float64 // g
	SaturatedFat  float64 // g
	Cholesterol   int     // mg
	Sodium        int     // mg
	Carbohydrates float64 // g
	Fiber         float64 // g
	Sugar         float64 // g
	Protein       float64 // g
}

// HealthStarRating scores the nutrition profile out of 5 stars. Saturated
// fat, sugar and sodium pull the score down, fiber and protein push it up.
// The result is clamped to [0, 5] and rounded to one decimal place.
func (n *Nutrition) HealthStarRating() float64 {
	score := 5.0

	score -= (n.SaturatedFat / 5) * 0.5
	score -= (n.Sugar / 10) * 0.3
	score -= (float64(n.Sodium) / 1000) * 0.5

	score += (n.Fiber / 5) * 0.4
	score += (n.Protein / 10) * 0.3

	score = math.Round(score*10) / 10
	return math.Max(0.0, math.Min(5.0, score))
}
