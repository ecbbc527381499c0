package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/smart-travel-ai/itinerary-engine/app/observability/metrics"
	"github.com/smart-travel-ai/itinerary-engine/internal/catalog"
	"github.com/smart-travel-ai/itinerary-engine/internal/geo"
	"github.com/smart-travel-ai/itinerary-engine/internal/tfidf"
	"github.com/smart-travel-ai/itinerary-engine/internal/types"
	"github.com/smart-travel-ai/itinerary-engine/internal/vocab"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for itinerary recommendations.
type Service interface {
	Recommend(ctx context.Context, req types.RecommendationRequest) (*types.RecommendationResult, error)
	RecommendPerStyle(ctx context.Context, req types.RecommendationRequest) (map[string]*types.RecommendationResult, error)
}

// PopularityWeights blend text similarity with rating and review volume for
// the general mixed-category list.
type PopularityWeights struct {
	Similarity   float64 `mapstructure:"similarity"`
	Rating       float64 `mapstructure:"rating"`
	ReviewVolume float64 `mapstructure:"reviewVolume"`
}

// CategoryWeights blend category-match score with text similarity when
// ranking a single interest bucket.
type CategoryWeights struct {
	Match      float64 `mapstructure:"match"`
	Similarity float64 `mapstructure:"similarity"`
}

// Config carries the engine's tunables. Blend weights are configuration,
// not constants; tests verify the arithmetic, not the values.
type Config struct {
	RadiusKm    float64           `mapstructure:"radiusKm"`
	DefaultTopN int               `mapstructure:"defaultTopN"`
	MaxTopN     int               `mapstructure:"maxTopN"`
	PerNight    int               `mapstructure:"perNight"`
	CacheTTL    time.Duration     `mapstructure:"cacheTTL"`
	Popularity  PopularityWeights `mapstructure:"popularity"`
	Category    CategoryWeights   `mapstructure:"category"`
}

// DefaultConfig returns the weights and caps the engine ships with.
func DefaultConfig() Config {
	return Config{
		RadiusKm:    50,
		DefaultTopN: 40,
		MaxTopN:     100,
		PerNight:    3,
		CacheTTL:    15 * time.Minute,
		Popularity:  PopularityWeights{Similarity: 0.4, Rating: 0.4, ReviewVolume: 0.2},
		Category:    CategoryWeights{Match: 0.6, Similarity: 0.4},
	}
}

// ServiceImpl orchestrates catalog filtering, geo validation, and blended
// scoring over the immutable snapshot and similarity index it was built
// with. Stateless across calls: all intermediate state is call-local.
type ServiceImpl struct {
	logger   *slog.Logger
	snapshot *catalog.Snapshot
	index    *tfidf.Index
	cfg      Config
	results  *cache.Cache
}

func NewServiceImpl(snapshot *catalog.Snapshot, index *tfidf.Index, cfg Config, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:   logger,
		snapshot: snapshot,
		index:    index,
		cfg:      cfg,
		results:  cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
	}
}

// Recommend ranks the catalog for the request and returns the top candidates.
// Unknown destinations return an empty result, never an error; only
// malformed input is rejected.
func (s *ServiceImpl) Recommend(ctx context.Context, req types.RecommendationRequest) (*types.RecommendationResult, error) {
	ctx, span := otel.Tracer("RecommendationService").Start(ctx, "Recommend", trace.WithAttributes(
		attribute.String("city", req.City),
		attribute.String("country", req.Country),
		attribute.String("traveler_type", string(req.TravelerType)),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		m := metrics.Get()
		m.RecommendationRequestsTotal.Add(ctx, 1)
		m.RecommendationDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}()

	req, err := s.normalize(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		return nil, err
	}

	if req.Policy == "" {
		req.Policy = types.BlendPopularity
	}

	key := cacheKey(req)
	if cached, found := s.results.Get(key); found {
		span.AddEvent("cache hit")
		result := cached.(types.RecommendationResult)
		return &result, nil
	}

	result := s.rank(ctx, req, nil)

	span.SetAttributes(
		attribute.String("fallback_tier", string(result.Tier)),
		attribute.Int("results", len(result.Activities)),
	)
	span.SetStatus(codes.Ok, "Recommendations computed")

	if !result.ScoringFailed {
		s.results.Set(key, *result, cache.DefaultExpiration)
	}
	return result, nil
}

// RecommendPerStyle produces one category-weighted ranking per requested
// travel style, each sized for roughly one style per trip night.
func (s *ServiceImpl) RecommendPerStyle(ctx context.Context, req types.RecommendationRequest) (map[string]*types.RecommendationResult, error) {
	ctx, span := otel.Tracer("RecommendationService").Start(ctx, "RecommendPerStyle", trace.WithAttributes(
		attribute.String("city", req.City),
		attribute.String("country", req.Country),
	))
	defer span.End()

	req, err := s.normalize(req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if len(req.TravelStyles) == 0 {
		return nil, fmt.Errorf("%w: travel_styles is required for per-style recommendations", types.ErrInvalidRequest)
	}

	// Style buckets are independent ranking passes over read-only state,
	// so they can run concurrently.
	req.Policy = types.BlendCategory
	ranked := make([]*types.RecommendationResult, len(req.TravelStyles))
	g, gctx := errgroup.WithContext(ctx)
	for i, style := range req.TravelStyles {
		i, style := i, style
		g.Go(func() error {
			styleReq := req
			styleReq.TravelStyles = []string{style}
			styleReq.TopN = req.Nights * s.cfg.PerNight
			ranked[i] = s.rank(gctx, styleReq, vocab.StyleCategories[strings.ToLower(style)])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make(map[string]*types.RecommendationResult, len(req.TravelStyles))
	for i, style := range req.TravelStyles {
		results[style] = ranked[i]
	}
	return results, nil
}

// normalize applies defaults and validates the request.
func (s *ServiceImpl) normalize(req types.RecommendationRequest) (types.RecommendationRequest, error) {
	req.City = strings.TrimSpace(req.City)
	req.Country = strings.TrimSpace(req.Country)
	if req.City == "" {
		return req, fmt.Errorf("%w: city is required", types.ErrInvalidRequest)
	}
	if req.Country == "" {
		return req, fmt.Errorf("%w: country is required", types.ErrInvalidRequest)
	}
	if req.Nights < 0 {
		return req, fmt.Errorf("%w: nights must be positive", types.ErrInvalidRequest)
	}
	if req.TopN < 0 || req.TopN > s.cfg.MaxTopN {
		return req, fmt.Errorf("%w: top_n must be between 0 and %d", types.ErrInvalidRequest, s.cfg.MaxTopN)
	}
	if req.TravelerType == "" {
		req.TravelerType = types.TravelerSolo
	}
	if req.TopN == 0 {
		if req.Nights > 0 {
			req.TopN = req.Nights * s.cfg.PerNight
		} else {
			req.TopN = s.cfg.DefaultTopN
		}
	}
	if req.Nights == 0 {
		req.Nights = 3
	}
	return req, nil
}

// rank runs the filtering tiers, geo validation, and one blended scoring
// pass. styleOverride narrows category resolution to a single style bucket
// for per-style mode; nil means resolve from the full request.
func (s *ServiceImpl) rank(ctx context.Context, req types.RecommendationRequest, styleOverride []string) (result *types.RecommendationResult) {
	l := s.logger.With(
		slog.String("city", req.City),
		slog.String("country", req.Country),
		slog.Any("travel_styles", req.TravelStyles),
		slog.String("traveler_type", string(req.TravelerType)),
	)

	result = &types.RecommendationResult{Activities: []types.ScoredPOI{}, Tier: types.TierNone}

	// A failed request must never take the process down or touch shared
	// state; it is logged and reported as an empty result.
	defer func() {
		if rec := recover(); rec != nil {
			l.ErrorContext(ctx, "scoring failure",
				slog.Any("panic", rec),
				slog.Any("stages", result.Stages),
				slog.String("tier", string(result.Tier)),
			)
			metrics.Get().ScoringFailuresTotal.Add(ctx, 1)
			result = &types.RecommendationResult{
				Activities:    []types.ScoredPOI{},
				Tier:          result.Tier,
				Stages:        result.Stages,
				ScoringFailed: true,
			}
		}
	}()

	var categories []string
	if styleOverride != nil {
		categories = styleOverride
	} else {
		categories = vocab.ResolveCategories(req.TravelStyles, req.TravelerType)
	}
	categorySet := vocab.CategorySet(categories)

	cityRows := s.snapshot.FilterByCityCountry(req.City, req.Country)
	result.Stages.CityCountry = len(cityRows)
	if len(cityRows) == 0 {
		l.InfoContext(ctx, "destination not in catalog")
		metrics.Get().EmptyResultsTotal.Add(ctx, 1)
		return result
	}

	rows, tier := s.applyTiers(ctx, l, cityRows, categorySet, req)
	result.Tier = tier
	result.Stages.AfterTier = len(rows)
	metrics.Get().FallbackTierTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("tier", string(tier))))

	distances := map[int]float64{}
	if center, ok := geo.CityCenter(req.City); ok {
		kept, dist := geo.WithinRadius(s.snapshot, rows, center, s.cfg.RadiusKm)
		for i, row := range kept {
			distances[row] = dist[i]
		}
		l.DebugContext(ctx, "geo filter applied",
			slog.Int("before", len(rows)), slog.Int("after", len(kept)),
			slog.Float64("radius_km", s.cfg.RadiusKm))
		rows = kept
		result.GeoFiltered = true
	} else {
		l.InfoContext(ctx, "no city center known, skipping distance validation")
	}
	result.Stages.AfterGeo = len(rows)

	if len(rows) == 0 {
		l.InfoContext(ctx, "no candidates after filtering", slog.String("tier", string(tier)))
		metrics.Get().EmptyResultsTotal.Add(ctx, 1)
		return result
	}

	query := buildQuery(req.City, categories, req.TravelerType)
	similarities := s.index.Similarity(query, rows)

	scored := make([]types.ScoredPOI, len(rows))
	for i, row := range rows {
		poi := s.snapshot.POIAt(row)
		categoryScore, matched := vocab.MatchScore(poi.Categories, categorySet)

		var final float64
		switch req.Policy {
		case types.BlendCategory:
			final = s.cfg.Category.Match*categoryScore + s.cfg.Category.Similarity*similarities[i]
		default:
			popularity := poi.Rating / 5.0
			reviewWeight := math.Log1p(float64(poi.Reviews)) / 10.0
			final = s.cfg.Popularity.Similarity*similarities[i] +
				s.cfg.Popularity.Rating*popularity +
				s.cfg.Popularity.ReviewVolume*reviewWeight
		}

		scored[i] = types.ScoredPOI{
			POI:               poi,
			Score:             final,
			MatchedCategories: matched,
			MatchCount:        len(matched),
			DistanceKm:        distances[row],
		}
	}

	// Deterministic order: score desc, review count desc, catalog row asc.
	order := make([]int, len(scored))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		sa, sb := scored[order[a]], scored[order[b]]
		if sa.Score != sb.Score {
			return sa.Score > sb.Score
		}
		if sa.Reviews != sb.Reviews {
			return sa.Reviews > sb.Reviews
		}
		return rows[order[a]] < rows[order[b]]
	})

	topN := req.TopN
	if topN > len(order) {
		topN = len(order)
	}
	result.Activities = make([]types.ScoredPOI, topN)
	for i := 0; i < topN; i++ {
		result.Activities[i] = scored[order[i]]
	}

	l.InfoContext(ctx, "recommendations computed",
		slog.String("tier", string(tier)),
		slog.Int("candidates", len(rows)),
		slog.Int("returned", topN),
	)
	return result
}

// applyTiers walks the ordered relaxation tiers and stops at the first one
// that fills topN, falling back to the widest non-empty tier otherwise.
func (s *ServiceImpl) applyTiers(ctx context.Context, l *slog.Logger, cityRows []int, categorySet map[string]struct{}, req types.RecommendationRequest) ([]int, types.FallbackTier) {
	categoryRows := s.snapshot.FilterByCategories(cityRows, categorySet)

	tiers := []struct {
		name types.FallbackTier
		rows []int
	}{
		{types.TierFull, s.snapshot.FilterByTravelerType(categoryRows, req.TravelerType)},
		{types.TierNoTraveler, categoryRows},
		{types.TierCityOnly, cityRows},
	}

	for i, tier := range tiers {
		if len(tier.rows) >= req.TopN {
			if i > 0 {
				l.InfoContext(ctx, "relaxed filters to fill result",
					slog.String("tier", string(tier.name)),
					slog.Int("candidates", len(tier.rows)))
			}
			return tier.rows, tier.name
		}
	}

	// Nothing fills topN; use the widest tier that has anything at all.
	for i := len(tiers) - 1; i >= 0; i-- {
		if len(tiers[i].rows) > 0 {
			l.InfoContext(ctx, "no tier fills the requested size, using widest",
				slog.String("tier", string(tiers[i].name)),
				slog.Int("candidates", len(tiers[i].rows)))
			return tiers[i].rows, tiers[i].name
		}
	}
	return nil, types.TierCityOnly
}

// buildQuery synthesizes the keyword bag the similarity index scores
// against: not natural language, just the tokens the catalog rows share.
func buildQuery(city string, categories []string, travelerType types.TravelerType) string {
	parts := make([]string, 0, len(categories)+2)
	parts = append(parts, city)
	parts = append(parts, categories...)
	parts = append(parts, string(travelerType))
	return strings.Join(parts, " ")
}

func cacheKey(req types.RecommendationRequest) string {
	styles := append([]string(nil), req.TravelStyles...)
	sort.Strings(styles)
	return strings.ToLower(fmt.Sprintf("%s|%s|%s|%s|%d|%s",
		req.City, req.Country, strings.Join(styles, ","), req.TravelerType, req.TopN, req.Policy))
}
