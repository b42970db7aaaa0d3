package engine

// classifyConfidence maps a score and the profile completeness behind it to
// an advisory confidence label. It never feeds back into the score or the
// ranking order.
func (e *Engine) classifyConfidence(score, completeness float64) Confidence {
	switch {
	case score >= e.weights.HighScore && completeness >= e.weights.MinCompleteness:
		return ConfidenceHigh
	case score >= e.weights.MediumScore || completeness >= e.weights.MinCompleteness:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
