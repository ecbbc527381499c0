package types

// TravelerType labels who the trip is for. The catalog's suitable_for column
// uses the same tokens.
type TravelerType string

const (
	TravelerFamily  TravelerType = "family"
	TravelerCouple  TravelerType = "couple"
	TravelerSolo    TravelerType = "solo"
	TravelerFriends TravelerType = "friends"
)

// FallbackTier identifies how far the engine had to relax its filters to
// fill the candidate set. Tiers are ordered strictest first.
type FallbackTier string

const (
	TierFull       FallbackTier = "city_category_traveler"
	TierNoTraveler FallbackTier = "city_category"
	TierCityOnly   FallbackTier = "city_only"
	TierNone       FallbackTier = "none" // destination not in catalog
)

// BlendPolicy selects which weighted blend produces the final score.
// Exactly one policy applies per ranking pass.
type BlendPolicy string

const (
	// BlendPopularity ranks the general mixed-category list:
	// w1*similarity + w2*rating/5 + w3*ln(1+reviews)/10.
	BlendPopularity BlendPolicy = "popularity"
	// BlendCategory ranks a single interest bucket:
	// w1*categoryScore + w2*similarity.
	BlendCategory BlendPolicy = "category"
)

// RecommendationRequest is the engine's input contract. City and Country are
// required; everything else has a default.
type RecommendationRequest struct {
	City         string       `json:"city"`
	Country      string       `json:"country"`
	TravelStyles []string     `json:"travel_styles,omitempty"`
	TravelerType TravelerType `json:"traveler_type,omitempty"` // defaults to solo
	Nights       int          `json:"nights,omitempty"`        // defaults to 3; sizes the result cap only
	TopN         int          `json:"top_n,omitempty"`         // defaults to 40, 0 means nights*3 when nights set
	Policy       BlendPolicy  `json:"policy,omitempty"`        // defaults to popularity
}

// StageCounts records how many candidates survived each filtering stage.
// Useful for reproducing a request from logs and asserted on by tests.
type StageCounts struct {
	CityCountry int `json:"city_country"`
	AfterTier   int `json:"after_tier"`
	AfterGeo    int `json:"after_geo"`
}

// RecommendationResult is the ordered, size-bounded ranking the engine
// returns. An empty Activities slice with ScoringFailed=false is a legitimate
// outcome, not an error.
type RecommendationResult struct {
	Activities    []ScoredPOI  `json:"activities"`
	Tier          FallbackTier `json:"fallback_tier"`
	Stages        StageCounts  `json:"stages"`
	GeoFiltered   bool         `json:"geo_filtered"` // false when no city center was known
	ScoringFailed bool         `json:"scoring_failed,omitempty"`
}
