package tfidf

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smart-travel-ai/itinerary-engine/internal/catalog"
	"github.com/smart-travel-ai/itinerary-engine/internal/types"
)

const artifactCSV = `name,category,city,country,latitude,longitude,content
Louvre,museum,Paris,France,48.8606,2.3376,louvre museum art history paintings
Eiffel Tower,tourist_attraction,Paris,France,48.8584,2.2945,eiffel tower landmark panoramic views
Luxembourg Gardens,park,Paris,France,48.8462,2.3372,luxembourg gardens park flowers picnic
`

func artifactSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	snapshot, err := catalog.LoadReader(strings.NewReader(artifactCSV), logger)
	require.NoError(t, err)
	return snapshot
}

func TestArtifactRoundTrip(t *testing.T) {
	snapshot := artifactSnapshot(t)
	idx := Fit(snapshot.Contents(), Params{MinDF: 1, MaxDF: 1.0})

	path := filepath.Join(t.TempDir(), "artifact.json")
	require.NoError(t, SaveArtifact(path, idx, snapshot))

	loaded, err := LoadArtifact(path, snapshot)
	require.NoError(t, err)

	assert.Equal(t, idx.Len(), loaded.Len())
	assert.Equal(t, idx.VocabularySize(), loaded.VocabularySize())

	rows := []int{0, 1, 2}
	want := idx.Similarity("museum art", rows)
	got := loaded.Similarity("museum art", rows)
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12)
	}
}

func TestSaveArtifactRowCountMismatch(t *testing.T) {
	snapshot := artifactSnapshot(t)
	idx := Fit([]string{"only one document"}, Params{MinDF: 1, MaxDF: 1.0})

	path := filepath.Join(t.TempDir(), "artifact.json")
	assert.Error(t, SaveArtifact(path, idx, snapshot))
}

func TestLoadArtifactStaleCatalog(t *testing.T) {
	snapshot := artifactSnapshot(t)
	idx := Fit(snapshot.Contents(), Params{MinDF: 1, MaxDF: 1.0})

	path := filepath.Join(t.TempDir(), "artifact.json")
	require.NoError(t, SaveArtifact(path, idx, snapshot))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rebuilt, err := catalog.LoadReader(strings.NewReader(artifactCSV+
		"Orsay,museum,Paris,France,48.8600,2.3266,orsay museum impressionist art\n"), logger)
	require.NoError(t, err)

	_, err = LoadArtifact(path, rebuilt)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrSimilarityArtifact)
}

func TestLoadArtifactMissingFile(t *testing.T) {
	snapshot := artifactSnapshot(t)
	_, err := LoadArtifact(filepath.Join(t.TempDir(), "missing.json"), snapshot)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrSimilarityArtifact)
}
