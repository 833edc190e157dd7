package analysis

// ClampScore bounds a model-supplied score to [0,100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// RatingFor maps a score to its match label. The score is clamped first,
// so the mapping is total on all integers.
func RatingFor(score int) string {
	switch s := ClampScore(score); {
	case s >= 85:
		return "Excellent Match"
	case s >= 70:
		return "Strong Match"
	case s >= 50:
		return "Average Match"
	default:
		return "Weak Match"
	}
}
