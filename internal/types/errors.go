package types

import "errors"

// Startup errors are fatal: the process must not serve without a valid
// catalog and a similarity artifact that matches it. Request errors are
// caught at the engine boundary and converted to client responses.
var (
	// ErrCatalogLoad wraps any failure reading or validating the POI table.
	ErrCatalogLoad = errors.New("catalog load failed")

	// ErrSimilarityArtifact wraps a missing, corrupt, or mismatched
	// trained similarity artifact.
	ErrSimilarityArtifact = errors.New("similarity artifact load failed")

	// ErrInvalidRequest marks malformed recommendation input
	// (missing city/country, out-of-range nights or topN).
	ErrInvalidRequest = errors.New("invalid recommendation request")
)
