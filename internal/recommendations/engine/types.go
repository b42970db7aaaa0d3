package engine

// Category identifies the market segment a plan belongs to.
type Category string

const (
	CategoryElectricity Category = "electricity"
	CategoryInternet    Category = "internet"
	CategoryMobile      Category = "mobile"
	CategoryTV          Category = "tv"
)

// AllCategories lists the supported categories in catalog order.
func AllCategories() []Category {
	return []Category{CategoryElectricity, CategoryInternet, CategoryMobile, CategoryTV}
}

// ParseCategory normalizes a raw category string.
func ParseCategory(raw string) (Category, bool) {
	switch Category(normalizeToken(raw)) {
	case CategoryElectricity:
		return CategoryElectricity, true
	case CategoryInternet:
		return CategoryInternet, true
	case CategoryMobile:
		return CategoryMobile, true
	case CategoryTV:
		return CategoryTV, true
	default:
		return "", false
	}
}

// Priority dimension keys. Every normalized profile carries a weight in [1,5]
// for each of these.
const (
	PriorityPrice           = "price"
	PriorityReliability     = "reliability"
	PrioritySpeed           = "speed"
	PriorityCustomerService = "customerService"
	PriorityFlexibility     = "flexibility"
	PriorityFeatures        = "features"
	PriorityBrandTrust      = "brandTrust"
	PriorityInnovation      = "innovation"
)

// AllPriorities lists the priority dimensions in a fixed order.
func AllPriorities() []string {
	return []string{
		PriorityPrice,
		PriorityReliability,
		PrioritySpeed,
		PriorityCustomerService,
		PriorityFlexibility,
		PriorityFeatures,
		PriorityBrandTrust,
		PriorityInnovation,
	}
}

// ElectricityDetails carries electricity-only profile attributes.
type ElectricityDetails struct {
	MonthlyKWh float64 `json:"monthlyKwh"`
}

// InternetDetails carries internet-only profile attributes.
type InternetDetails struct {
	RequiredMbps float64 `json:"requiredMbps"`
}

// MobileDetails carries mobile-only profile attributes.
type MobileDetails struct {
	Lines int `json:"lines"`
}

// TVDetails carries TV-only profile attributes.
type TVDetails struct {
	PackageTier string `json:"packageTier"`
}

// UserProfile is the user's self-declared situation. All fields are optional
// on input; Normalize fills defaults and clamps malformed numbers.
type UserProfile struct {
	HouseholdSize    int     `json:"householdSize"`
	DwellingType     string  `json:"dwellingType"`     // apartment, house, student, business
	MonthlyBudget    float64 `json:"monthlyBudget"`    // NIS
	CurrentAmount    float64 `json:"currentAmount"`    // current monthly spend, 0 = unknown
	CurrentProvider  string  `json:"currentProvider"`
	PriceFlexibility string  `json:"priceFlexibility"` // strict, flexible
	UsageLevel       string  `json:"usageLevel"`       // light, medium, heavy, extreme
	UsageHours       string  `json:"usageHours"`       // day, evening, night, allday

	RemoteWork     bool `json:"remoteWork"`
	StreamingHeavy bool `json:"streamingHeavy"`
	GamingHeavy    bool `json:"gamingHeavy"`

	Priorities map[string]int `json:"priorities"` // dimension -> weight 1..5

	ContractFlexibility string `json:"contractFlexibility"`
	TechnologyPref      string `json:"technologyPreference"`
	SupportImportance   string `json:"supportImportance"`
	Location            string `json:"location"`

	Electricity *ElectricityDetails `json:"electricity,omitempty"`
	Internet    *InternetDetails    `json:"internet,omitempty"`
	Mobile      *MobileDetails      `json:"mobile,omitempty"`
	TV          *TVDetails          `json:"tv,omitempty"`
}

// Plan is the engine-facing view of one catalog offer. Price is nil for
// "price on request" plans, which are never ranked.
type Plan struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Company  string   `json:"company"`
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Features []string `json:"features"`
}

// PriceValue returns the plan price or 0 when the price is on request.
func (p Plan) PriceValue() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

// Rankable reports whether the plan carries a usable price.
func (p Plan) Rankable() bool {
	return p.Price != nil && *p.Price > 0
}

// Context is the narrowed, immutable view of a normalized profile for one
// category. Built once per request via BuildContext.
type Context struct {
	Category         Category
	CurrentProvider  string
	CurrentAmount    float64
	Budget           float64
	HouseholdSize    int
	UsageLevel       string
	UsageHours       string
	DwellingType     string
	PriceFlexibility string
	TechnologyPref   string
	Priorities       map[string]int

	RemoteWork     bool
	StreamingHeavy bool
	GamingHeavy    bool

	Electricity *ElectricityDetails
	Internet    *InternetDetails
	Mobile      *MobileDetails
	TV          *TVDetails

	// Completeness is the fraction of profile fields the user supplied
	// explicitly, before defaulting. Advisory input to confidence.
	Completeness float64
}

// Confidence labels how much profile detail backed a score.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Savings describes projected savings relative to the user's current spend.
// Monthly is never negative; Annual is always Monthly * 12.
type Savings struct {
	Monthly float64 `json:"monthlySavings"`
	Annual  float64 `json:"annualSavings"`
	Percent float64 `json:"percentageSaving"`
}

// Component is one weighted slice of the composite score. Weights are
// normalized so they total 100 per recommendation.
type Component struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
	Detail string  `json:"detail,omitempty"`
}

// Recommendation is one ranked, explained, confidence-scored plan.
// Never mutated after assembly; the ranker only reorders collections.
type Recommendation struct {
	Plan       Plan        `json:"plan"`
	Score      float64     `json:"score"`
	Confidence Confidence  `json:"confidence"`
	Savings    Savings     `json:"savings"`
	Reasons    []string    `json:"matchReasons"`
	Warnings   []string    `json:"warnings"`
	Components []Component `json:"components"`
}

// MarketAnalysis holds category-wide descriptive price statistics,
// independent of any single user.
type MarketAnalysis struct {
	Category  Category `json:"category"`
	PlanCount int      `json:"planCount"`
	AvgPrice  float64  `json:"avgPrice"`
	MinPrice  float64  `json:"minPrice"`
	MaxPrice  float64  `json:"maxPrice"`
	Note      string   `json:"note,omitempty"`
}

// Analysis is the full advisory envelope for one category.
type Analysis struct {
	Recommendations []Recommendation `json:"recommendations"`
	OnRequest       []Plan           `json:"onRequestPlans"`
	Market          MarketAnalysis   `json:"marketAnalysis"`
	Insights        []string         `json:"aiInsights"`
	Tips            []string         `json:"personalizedTips"`
}
