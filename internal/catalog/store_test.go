package catalog

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smart-travel-ai/itinerary-engine/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const sampleCSV = `name,category,city,country,latitude,longitude,content,rating,reviews,suitable_for,all_categories
Louvre Museum,museum,Paris,France,48.8606,2.3376,louvre museum art history,4.7,95000,"family, solo","museum,art_gallery"
Eiffel Tower,tourist_attraction,Paris,France,48.8584,2.2945,eiffel tower landmark views,4.6,140000,all,
Le Petit Cafe,cafe,Paris,France,48.8566,2.3522,cozy cafe coffee pastries,,,"couple",
Tokyo Tower,tourist_attraction,Tokyo,Japan,35.6586,139.7454,tokyo tower observation deck,4.4,30000,friends,
Broken Row,museum,Paris,France,not-a-lat,2.35,museum without coordinates,4.0,10,solo,
`

func TestLoadReader(t *testing.T) {
	snapshot, err := LoadReader(strings.NewReader(sampleCSV), testLogger())
	require.NoError(t, err)

	// Row without parseable coordinates is dropped.
	assert.Equal(t, 4, snapshot.Len())

	louvre := snapshot.POIAt(0)
	assert.Equal(t, "Louvre Museum", louvre.Name)
	assert.Equal(t, []string{"museum", "art_gallery"}, louvre.Categories)
	assert.Equal(t, 4.7, louvre.Rating)
	assert.Equal(t, 95000, louvre.Reviews)
	assert.NotEqual(t, louvre.ID, snapshot.POIAt(1).ID)

	// Optional fields defaulted.
	cafe := snapshot.POIAt(2)
	assert.Equal(t, 0.0, cafe.Rating)
	assert.Equal(t, 0, cafe.Reviews)
	assert.Equal(t, []string{"cafe"}, cafe.Categories)

	tower := snapshot.POIAt(1)
	assert.Equal(t, "all", tower.SuitableFor)
}

func TestLoadReaderMissingRequiredColumn(t *testing.T) {
	csv := "name,category,city,country,latitude,longitude\nA,museum,Paris,France,48.0,2.0\n"
	_, err := LoadReader(strings.NewReader(csv), testLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrCatalogLoad))
	assert.Contains(t, err.Error(), "content")
}

func TestFilterByCityCountry(t *testing.T) {
	snapshot, err := LoadReader(strings.NewReader(sampleCSV), testLogger())
	require.NoError(t, err)

	rows := snapshot.FilterByCityCountry("paris", "FRANCE")
	assert.Equal(t, []int{0, 1, 2}, rows)

	// Unknown destination is an empty sequence, not an error.
	assert.Empty(t, snapshot.FilterByCityCountry("Atlantis", "Nowhere"))
}

func TestFilterByCategories(t *testing.T) {
	snapshot, err := LoadReader(strings.NewReader(sampleCSV), testLogger())
	require.NoError(t, err)

	all := snapshot.FilterByCityCountry("Paris", "France")
	museums := snapshot.FilterByCategories(all, map[string]struct{}{"museum": {}})
	assert.Equal(t, []int{0}, museums)

	// Secondary tags count too.
	galleries := snapshot.FilterByCategories(all, map[string]struct{}{"art_gallery": {}})
	assert.Equal(t, []int{0}, galleries)
}

func TestFilterByTravelerType(t *testing.T) {
	snapshot, err := LoadReader(strings.NewReader(sampleCSV), testLogger())
	require.NoError(t, err)

	all := snapshot.FilterByCityCountry("Paris", "France")

	solo := snapshot.FilterByTravelerType(all, types.TravelerSolo)
	assert.Equal(t, []int{0}, solo)

	couple := snapshot.FilterByTravelerType(all, types.TravelerCouple)
	assert.Equal(t, []int{2}, couple)

	// "all" marks an unclassified row, not a wildcard: the Eiffel Tower
	// carries no traveler tag and matches nobody at this stage.
	for _, traveler := range []types.TravelerType{
		types.TravelerFamily, types.TravelerCouple, types.TravelerSolo, types.TravelerFriends,
	} {
		assert.NotContains(t, snapshot.FilterByTravelerType(all, traveler), 1)
	}
}

func TestChecksumTracksContent(t *testing.T) {
	a, err := LoadReader(strings.NewReader(sampleCSV), testLogger())
	require.NoError(t, err)
	b, err := LoadReader(strings.NewReader(sampleCSV), testLogger())
	require.NoError(t, err)
	assert.Equal(t, a.Checksum(), b.Checksum())

	other := strings.Replace(sampleCSV, "Louvre Museum", "Musee d'Orsay", 1)
	c, err := LoadReader(strings.NewReader(other), testLogger())
	require.NoError(t, err)
	assert.NotEqual(t, a.Checksum(), c.Checksum())
}
