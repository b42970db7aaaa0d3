package engine

import (
	"math"
	"strings"
)

const defaultPriorityWeight = 3

// Normalize returns a fully-populated copy of a possibly-partial profile.
// It never rejects input: malformed numbers are clamped to 0, unknown enum
// values fall back to their defaults, and every priority dimension ends up
// with a weight in [1,5]. All defaulting for the engine lives here.
func Normalize(p UserProfile) UserProfile {
	p.MonthlyBudget = clampMoney(p.MonthlyBudget)
	p.CurrentAmount = clampMoney(p.CurrentAmount)
	if p.HouseholdSize < 0 {
		p.HouseholdSize = 0
	}

	p.DwellingType = normalizeEnum(p.DwellingType, "apartment", "house", "student", "business")
	p.UsageLevel = normalizeEnum(p.UsageLevel, "medium", "light", "heavy", "extreme")
	p.UsageHours = normalizeEnum(p.UsageHours, "", "day", "evening", "night", "allday")
	p.PriceFlexibility = normalizeEnum(p.PriceFlexibility, "flexible", "strict")

	p.CurrentProvider = strings.TrimSpace(p.CurrentProvider)
	p.ContractFlexibility = normalizeToken(p.ContractFlexibility)
	p.TechnologyPref = normalizeToken(p.TechnologyPref)
	p.SupportImportance = normalizeToken(p.SupportImportance)
	p.Location = strings.TrimSpace(p.Location)

	priorities := make(map[string]int, len(AllPriorities()))
	for _, key := range AllPriorities() {
		priorities[key] = clampWeight(p.Priorities[key])
	}
	p.Priorities = priorities

	if p.Electricity != nil && (p.Electricity.MonthlyKWh < 0 || math.IsNaN(p.Electricity.MonthlyKWh)) {
		p.Electricity = &ElectricityDetails{}
	}
	if p.Internet != nil && (p.Internet.RequiredMbps < 0 || math.IsNaN(p.Internet.RequiredMbps)) {
		p.Internet = &InternetDetails{}
	}
	if p.Mobile != nil && p.Mobile.Lines < 0 {
		p.Mobile = &MobileDetails{}
	}
	if p.TV != nil {
		p.TV = &TVDetails{PackageTier: normalizeToken(p.TV.PackageTier)}
	}

	return p
}

// BuildContext narrows a raw profile to the engine-facing view for one
// category. Completeness is measured on the raw profile, before defaults.
func BuildContext(raw UserProfile, category Category) Context {
	completeness := profileCompleteness(raw, category)
	p := Normalize(raw)

	return Context{
		Category:         category,
		CurrentProvider:  p.CurrentProvider,
		CurrentAmount:    p.CurrentAmount,
		Budget:           p.MonthlyBudget,
		HouseholdSize:    p.HouseholdSize,
		UsageLevel:       p.UsageLevel,
		UsageHours:       p.UsageHours,
		DwellingType:     p.DwellingType,
		PriceFlexibility: p.PriceFlexibility,
		TechnologyPref:   p.TechnologyPref,
		Priorities:       p.Priorities,
		RemoteWork:       p.RemoteWork,
		StreamingHeavy:   p.StreamingHeavy,
		GamingHeavy:      p.GamingHeavy,
		Electricity:      p.Electricity,
		Internet:         p.Internet,
		Mobile:           p.Mobile,
		TV:               p.TV,
		Completeness:     completeness,
	}
}

// profileCompleteness counts how many of the fields that feed scoring were
// explicitly supplied. Returns a fraction in [0,1].
func profileCompleteness(p UserProfile, category Category) float64 {
	supplied := 0
	total := 8

	if clampMoney(p.MonthlyBudget) > 0 {
		supplied++
	}
	if clampMoney(p.CurrentAmount) > 0 {
		supplied++
	}
	if p.HouseholdSize > 0 {
		supplied++
	}
	if normalizeToken(p.UsageLevel) != "" {
		supplied++
	}
	if normalizeToken(p.DwellingType) != "" {
		supplied++
	}
	if strings.TrimSpace(p.CurrentProvider) != "" {
		supplied++
	}
	if len(p.Priorities) > 0 {
		supplied++
	}
	if categoryDetailsSupplied(p, category) {
		supplied++
	}

	return float64(supplied) / float64(total)
}

func categoryDetailsSupplied(p UserProfile, category Category) bool {
	switch category {
	case CategoryElectricity:
		return p.Electricity != nil && p.Electricity.MonthlyKWh > 0
	case CategoryInternet:
		return p.Internet != nil && p.Internet.RequiredMbps > 0
	case CategoryMobile:
		return p.Mobile != nil && p.Mobile.Lines > 0
	case CategoryTV:
		return p.TV != nil && normalizeToken(p.TV.PackageTier) != ""
	default:
		return false
	}
}

func clampMoney(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func clampWeight(w int) int {
	if w == 0 {
		return defaultPriorityWeight
	}
	if w < 1 {
		return 1
	}
	if w > 5 {
		return 5
	}
	return w
}

// normalizeEnum lowercases raw and returns it when it is one of the allowed
// values, otherwise the default. An empty default means "unset is allowed".
func normalizeEnum(raw string, def string, allowed ...string) string {
	v := normalizeToken(raw)
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	if v == def {
		return v
	}
	return def
}

func normalizeToken(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
