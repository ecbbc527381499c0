package types

import "github.com/google/uuid"

// POI is one catalog row: a place that can be slotted into an itinerary.
// All defaulting (rating, reviews, suitability) happens once at catalog load,
// so scoring code can rely on every field being populated.
type POI struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`   // primary catalog tag, e.g. "museum"
	Categories     []string  `json:"categories"` // all tags; never empty after load
	City           string    `json:"city"`
	Country        string    `json:"country"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Rating         float64   `json:"rating"`
	Reviews        int       `json:"reviews"`
	Content        string    `json:"-"` // name + category + description, feeds the similarity index
	Address        string    `json:"address,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Website        string    `json:"website,omitempty"`
	PlaceID        string    `json:"place_id,omitempty"`
	PhotoReference string    `json:"photo_reference,omitempty"`
	SuitableFor    string    `json:"suitable_for"` // comma separated traveler tags, "all" when unclassified
}

// ScoredPOI is a catalog row plus the per-request scoring metadata the
// engine computed for it.
type ScoredPOI struct {
	POI
	Score             float64  `json:"score"`
	MatchedCategories []string `json:"matched_categories,omitempty"`
	MatchCount        int      `json:"match_count"`
	DistanceKm        float64  `json:"distance_km,omitempty"`
}
