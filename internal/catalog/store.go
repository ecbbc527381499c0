package catalog

import (
	"encoding/csv"
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/smart-travel-ai/itinerary-engine/internal/types"
)

// Required columns. A catalog file missing any of these is rejected outright.
var requiredColumns = []string{"name", "category", "city", "country", "latitude", "longitude", "content"}

// Snapshot is the full POI table held in memory, immutable after Load.
// Queries return row indices into the snapshot so the engine can carry
// lightweight candidate sets between filtering stages.
type Snapshot struct {
	pois   []types.POI
	logger *slog.Logger
}

// Load reads a persisted POI table from a CSV file.
func Load(path string, logger *slog.Logger) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", types.ErrCatalogLoad, path, err)
	}
	defer f.Close()
	return LoadReader(f, logger)
}

// LoadReader parses a POI table from r. Missing optional fields are
// defaulted (rating 0, reviews 0, suitable_for "all"); rows without usable
// coordinates are skipped because the geo filter cannot place them.
func LoadReader(r io.Reader, logger *slog.Logger) (*Snapshot, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", types.ErrCatalogLoad, err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", types.ErrCatalogLoad, name)
		}
	}

	field := func(record []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var pois []types.POI
	skipped := 0
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", types.ErrCatalogLoad, line, err)
		}

		lat, latErr := strconv.ParseFloat(field(record, "latitude"), 64)
		lon, lonErr := strconv.ParseFloat(field(record, "longitude"), 64)
		if latErr != nil || lonErr != nil {
			skipped++
			continue
		}

		poi := types.POI{
			ID:             uuid.New(),
			Name:           field(record, "name"),
			Category:       field(record, "category"),
			City:           field(record, "city"),
			Country:        field(record, "country"),
			Latitude:       lat,
			Longitude:      lon,
			Content:        field(record, "content"),
			Address:        field(record, "address"),
			Phone:          field(record, "phone"),
			Website:        field(record, "website"),
			PlaceID:        field(record, "place_id"),
			PhotoReference: field(record, "photo_reference"),
			SuitableFor:    field(record, "suitable_for"),
		}

		if v := field(record, "rating"); v != "" {
			if rating, err := strconv.ParseFloat(v, 64); err == nil {
				poi.Rating = rating
			}
		}
		if v := field(record, "reviews"); v != "" {
			if reviews, err := strconv.ParseFloat(v, 64); err == nil {
				poi.Reviews = int(reviews)
			}
		}
		if poi.SuitableFor == "" {
			poi.SuitableFor = "all"
		}
		poi.Categories = splitCategories(field(record, "all_categories"))
		if len(poi.Categories) == 0 && poi.Category != "" {
			poi.Categories = []string{poi.Category}
		}
		if len(poi.Categories) == 0 {
			// Unclassifiable rows land in a fallback bucket rather
			// than carrying an empty tag set.
			poi.Category = "tourist_attraction"
			poi.Categories = []string{"tourist_attraction"}
		}

		pois = append(pois, poi)
	}

	if skipped > 0 {
		logger.Warn("skipped catalog rows without coordinates", slog.Int("count", skipped))
	}
	logger.Info("catalog loaded", slog.Int("pois", len(pois)))

	return &Snapshot{pois: pois, logger: logger}, nil
}

func splitCategories(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of catalog rows.
func (s *Snapshot) Len() int { return len(s.pois) }

// POIAt returns the row at index i. Callers must treat the result as
// read-only; it aliases the shared snapshot.
func (s *Snapshot) POIAt(i int) types.POI { return s.pois[i] }

// Checksum is an FNV-1a hash over the ordered POI names, used to bind a
// trained similarity artifact to the snapshot it was fitted on.
func (s *Snapshot) Checksum() uint64 {
	h := fnv.New64a()
	for _, p := range s.pois {
		h.Write([]byte(p.Name))
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// FilterByCityCountry returns the indices of rows matching both city and
// country, case-insensitively. An unknown destination yields an empty slice,
// never an error.
func (s *Snapshot) FilterByCityCountry(city, country string) []int {
	city = strings.ToLower(strings.TrimSpace(city))
	country = strings.ToLower(strings.TrimSpace(country))
	var rows []int
	for i, p := range s.pois {
		if strings.ToLower(p.City) == city && strings.ToLower(p.Country) == country {
			rows = append(rows, i)
		}
	}
	return rows
}

// FilterByCategories keeps rows whose tag set intersects the given set.
func (s *Snapshot) FilterByCategories(rows []int, categories map[string]struct{}) []int {
	var kept []int
	for _, i := range rows {
		for _, c := range s.pois[i].Categories {
			if _, ok := categories[strings.ToLower(c)]; ok {
				kept = append(kept, i)
				break
			}
		}
	}
	return kept
}

// FilterByTravelerType keeps rows whose suitable_for field contains the
// traveler token. Containment rather than equality tolerates multi-valued
// strings like "family, couple". Rows defaulted to "all" carry no traveler
// tag and only re-enter the candidate set through filter relaxation.
func (s *Snapshot) FilterByTravelerType(rows []int, travelerType types.TravelerType) []int {
	token := strings.ToLower(string(travelerType))
	var kept []int
	for _, i := range rows {
		if strings.Contains(strings.ToLower(s.pois[i].SuitableFor), token) {
			kept = append(kept, i)
		}
	}
	return kept
}

// Contents returns every row's content field in row order, for fitting the
// similarity index offline.
func (s *Snapshot) Contents() []string {
	docs := make([]string, len(s.pois))
	for i, p := range s.pois {
		docs[i] = p.Content
	}
	return docs
}
