// Package vocab maps the request's high-level travel-style and traveler-type
// labels onto the concrete category tags the catalog is tagged with, and
// scores a POI's overlap with a requested category set.
package vocab

import (
	"sort"
	"strings"

	"github.com/smart-travel-ai/itinerary-engine/internal/types"
)

// StyleCategories translates a travel style into catalog categories.
// Unknown styles resolve to nothing and are absorbed by the default set.
var StyleCategories = map[string][]string{
	"historical": {"archaeological_site", "castle", "fortress", "historical_landmark", "church", "synagogue", "hindu_temple", "mosque"},
	"cultural":   {"museum", "art_gallery", "library", "theater", "tourist_attraction"},
	"nature":     {"park", "campground", "hiking_area", "natural_feature"},
	"adventure":  {"hiking_area", "campground", "natural_feature", "tourist_attraction"},
	"food":       {"restaurant", "cafe", "bar"},
	"shopping":   {"shopping_mall"},
	"nightlife":  {"night_club", "bar"},
}

// TravelerCategories translates a traveler type into the categories that
// historically suit it.
var TravelerCategories = map[types.TravelerType][]string{
	types.TravelerFamily: {
		"park", "tourist_attraction", "museum", "shopping_mall",
		"campground", "natural_feature", "library", "theater",
		"restaurant", "cafe",
	},
	types.TravelerCouple: {
		"restaurant", "cafe", "bar", "theater", "art_gallery",
		"night_club", "castle", "park", "historical_landmark",
		"natural_feature",
	},
	types.TravelerSolo: {
		"museum", "library", "cafe", "art_gallery", "historical_landmark",
		"hiking_area", "archaeological_site", "church", "synagogue",
		"hindu_temple", "mosque", "fortress", "tourist_attraction",
	},
	types.TravelerFriends: {
		"restaurant", "bar", "night_club", "shopping_mall", "tourist_attraction",
		"park", "theater", "museum", "hiking_area", "campground", "natural_feature",
	},
}

// defaultCategories is the floor: the engine must never work with an empty
// category set, whatever garbage the request carried.
var defaultCategories = []string{"restaurant", "tourist_attraction", "museum", "park"}

// ResolveCategories unions the style and traveler lookups into one
// deduplicated, sorted category list. All-unrecognized input falls back to
// the default set.
func ResolveCategories(travelStyles []string, travelerType types.TravelerType) []string {
	set := make(map[string]struct{})
	for _, style := range travelStyles {
		for _, c := range StyleCategories[strings.ToLower(strings.TrimSpace(style))] {
			set[c] = struct{}{}
		}
	}
	for _, c := range TravelerCategories[travelerType] {
		set[c] = struct{}{}
	}

	if len(set) == 0 {
		return append([]string(nil), defaultCategories...)
	}

	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// CategorySet converts a category list to a lowercase membership set.
func CategorySet(categories []string) map[string]struct{} {
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		set[strings.ToLower(c)] = struct{}{}
	}
	return set
}

// MatchScore scores a POI's category overlap with the requested set.
// No overlap earns baseline credit 0.3: a row that reached the candidate set
// through a relaxed filter is still weakly relevant. One or more matches earn
// 1.0 plus a diminishing bonus of 0.15 per extra match, capped at three.
func MatchScore(poiCategories []string, requested map[string]struct{}) (score float64, matched []string) {
	for _, c := range poiCategories {
		if _, ok := requested[strings.ToLower(c)]; ok {
			matched = append(matched, c)
		}
	}
	n := len(matched)
	if n == 0 {
		return 0.3, nil
	}
	bonus := n - 1
	if bonus > 2 {
		bonus = 2
	}
	return 1.0 + float64(bonus)*0.15, matched
}
