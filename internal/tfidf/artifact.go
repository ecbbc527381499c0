package tfidf

import (
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/smart-travel-ai/itinerary-engine/internal/catalog"
	"github.com/smart-travel-ai/itinerary-engine/internal/types"
)

// artifact is the serialized form of a fitted index. Sparse vectors are
// stored with string keys because JSON objects cannot carry integer keys.
type artifact struct {
	Params     Params               `json:"params"`
	Vocabulary map[string]int       `json:"vocabulary"`
	IDF        []float64            `json:"idf"`
	Docs       []map[string]float64 `json:"docs"`
	RowCount   int                  `json:"row_count"`
	Checksum   uint64               `json:"checksum"`
}

// SaveArtifact persists a fitted index bound to the snapshot it was trained
// from. Row count and checksum are recorded so a stale artifact cannot be
// loaded against a rebuilt catalog.
func SaveArtifact(path string, idx *Index, snapshot *catalog.Snapshot) error {
	if idx.Len() != snapshot.Len() {
		return fmt.Errorf("index has %d documents but catalog has %d rows", idx.Len(), snapshot.Len())
	}

	art := artifact{
		Params:     idx.params,
		Vocabulary: idx.vocabulary,
		IDF:        idx.idf,
		Docs:       make([]map[string]float64, len(idx.docs)),
		RowCount:   snapshot.Len(),
		Checksum:   snapshot.Checksum(),
	}
	for i, vec := range idx.docs {
		doc := make(map[string]float64, len(vec))
		for vi, w := range vec {
			doc[strconv.Itoa(vi)] = w
		}
		art.Docs[i] = doc
	}

	data, err := json.Marshal(art)
	if err != nil {
		return fmt.Errorf("encoding artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing artifact %s: %w", path, err)
	}
	return nil
}

// LoadArtifact reads a persisted index and verifies it is positionally
// aligned with the given catalog snapshot. Any mismatch is fatal: serving
// must not start with a similarity index trained on a different catalog.
func LoadArtifact(path string, snapshot *catalog.Snapshot) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", types.ErrSimilarityArtifact, path, err)
	}

	var art artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", types.ErrSimilarityArtifact, path, err)
	}

	if art.RowCount != snapshot.Len() {
		return nil, fmt.Errorf("%w: artifact has %d rows, catalog has %d",
			types.ErrSimilarityArtifact, art.RowCount, snapshot.Len())
	}
	if art.Checksum != snapshot.Checksum() {
		return nil, fmt.Errorf("%w: artifact checksum %d does not match catalog %d",
			types.ErrSimilarityArtifact, art.Checksum, snapshot.Checksum())
	}
	if len(art.IDF) != len(art.Vocabulary) {
		return nil, fmt.Errorf("%w: idf length %d does not match vocabulary size %d",
			types.ErrSimilarityArtifact, len(art.IDF), len(art.Vocabulary))
	}

	idx := &Index{
		params:     art.Params.withDefaults(),
		vocabulary: art.Vocabulary,
		idf:        art.IDF,
		docs:       make([]sparseVec, len(art.Docs)),
	}
	for i, doc := range art.Docs {
		vec := make(sparseVec, len(doc))
		for key, w := range doc {
			vi, err := strconv.Atoi(key)
			if err != nil || vi < 0 || vi >= len(art.IDF) {
				return nil, fmt.Errorf("%w: document %d has invalid vocabulary key %q",
					types.ErrSimilarityArtifact, i, key)
			}
			vec[vi] = w
		}
		idx.docs[i] = vec
	}
	return idx, nil
}
