// Offline trainer: fits the TF-IDF vectorizer over the POI catalog and
// persists the similarity artifact the serving process loads at startup.
//
// Usage:
//
//	go run ./scripts -catalog data/pois.csv -out models/tfidf_artifact.json
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/smart-travel-ai/itinerary-engine/internal/catalog"
	"github.com/smart-travel-ai/itinerary-engine/internal/tfidf"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	catalogPath := flag.String("catalog", "data/pois.csv", "path to the POI catalog CSV")
	outPath := flag.String("out", "models/tfidf_artifact.json", "where to write the trained artifact")
	maxFeatures := flag.Int("max-features", 1000, "vocabulary cap")
	minDF := flag.Int("min-df", 2, "minimum document frequency")
	maxDF := flag.Float64("max-df", 0.8, "maximum document frequency fraction")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	snapshot, err := catalog.Load(*catalogPath, logger)
	if err != nil {
		logger.Error("Failed to load catalog", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("Fitting TF-IDF vectorizer", slog.Int("documents", snapshot.Len()))
	index := tfidf.Fit(snapshot.Contents(), tfidf.Params{
		MaxFeatures: *maxFeatures,
		MinDF:       *minDF,
		MaxDF:       *maxDF,
		NGram:       2,
	})
	logger.Info("Vectorizer fitted", slog.Int("vocabulary", index.VocabularySize()))

	if err := tfidf.SaveArtifact(*outPath, index, snapshot); err != nil {
		logger.Error("Failed to save artifact", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Artifact saved", slog.String("path", *outPath))
}
