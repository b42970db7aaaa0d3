package engine

// Weights is the tunable scoring policy. The zero value is not usable;
// callers go through New, which fills missing fields from DefaultWeights.
// Exposed as configuration so retuning does not touch engine code.
type Weights struct {
	// Base component weights before priority multipliers are applied.
	PriceWeight    float64
	FeatureWeight  float64
	CategoryWeight float64

	// Overshoot slopes: score deducted per 100% of budget overshoot.
	StrictOvershootSlope   float64
	FlexibleOvershootSlope float64

	// TieMargin is the score distance under which savings break ties.
	TieMargin float64

	// TopN caps how many recommendations an analysis returns.
	TopN int

	// ReasonFloor and WarningCeiling are component-score thresholds for
	// emitting match reasons and warnings.
	ReasonFloor    float64
	WarningCeiling float64

	// Confidence thresholds.
	HighScore       float64
	MediumScore     float64
	MinCompleteness float64
}

// DefaultWeights returns the default scoring policy.
func DefaultWeights() Weights {
	return Weights{
		PriceWeight:            45,
		FeatureWeight:          25,
		CategoryWeight:         30,
		StrictOvershootSlope:   250,
		FlexibleOvershootSlope: 175,
		TieMargin:              1.0,
		TopN:                   5,
		ReasonFloor:            70,
		WarningCeiling:         40,
		HighScore:              80,
		MediumScore:            60,
		MinCompleteness:        0.5,
	}
}

func (w Weights) withDefaults() Weights {
	def := DefaultWeights()
	if w.PriceWeight <= 0 {
		w.PriceWeight = def.PriceWeight
	}
	if w.FeatureWeight <= 0 {
		w.FeatureWeight = def.FeatureWeight
	}
	if w.CategoryWeight <= 0 {
		w.CategoryWeight = def.CategoryWeight
	}
	if w.StrictOvershootSlope <= 0 {
		w.StrictOvershootSlope = def.StrictOvershootSlope
	}
	if w.FlexibleOvershootSlope <= 0 {
		w.FlexibleOvershootSlope = def.FlexibleOvershootSlope
	}
	if w.TieMargin <= 0 {
		w.TieMargin = def.TieMargin
	}
	if w.TopN <= 0 {
		w.TopN = def.TopN
	}
	if w.ReasonFloor <= 0 {
		w.ReasonFloor = def.ReasonFloor
	}
	if w.WarningCeiling <= 0 {
		w.WarningCeiling = def.WarningCeiling
	}
	if w.HighScore <= 0 {
		w.HighScore = def.HighScore
	}
	if w.MediumScore <= 0 {
		w.MediumScore = def.MediumScore
	}
	if w.MinCompleteness <= 0 {
		w.MinCompleteness = def.MinCompleteness
	}
	return w
}
