package recommend

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/smart-travel-ai/itinerary-engine/internal/api"
	"github.com/smart-travel-ai/itinerary-engine/internal/types"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// GetRecommendations ranks catalog POIs for the requested destination and
// traveler profile.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GetRecommendations").Start(r.Context(), "GetRecommendations", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itinerary/recommendations"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetRecommendations"))
	l.DebugContext(ctx, "Get recommendations handler invoked")

	var req types.RecommendationRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Recommend(ctx, req)
	if err != nil {
		if errors.Is(err, types.ErrInvalidRequest) {
			l.WarnContext(ctx, "Invalid recommendation request", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		l.ErrorContext(ctx, "Failed to compute recommendations", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to compute recommendations")
		return
	}

	l.InfoContext(ctx, "Recommendations returned",
		slog.Int("count", len(result.Activities)),
		slog.String("tier", string(result.Tier)),
	)
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"success":        true,
		"activities":     result.Activities,
		"fallback_tier":  result.Tier,
		"scoring_failed": result.ScoringFailed,
	})
}

// GetRecommendationsPerStyle returns one ranked bucket per travel style.
func (h *Handler) GetRecommendationsPerStyle(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GetRecommendationsPerStyle").Start(r.Context(), "GetRecommendationsPerStyle", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itinerary/recommendations/by-style"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetRecommendationsPerStyle"))

	var req types.RecommendationRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.service.RecommendPerStyle(ctx, req)
	if err != nil {
		if errors.Is(err, types.ErrInvalidRequest) {
			l.WarnContext(ctx, "Invalid per-style request", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		l.ErrorContext(ctx, "Failed to compute per-style recommendations", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to compute recommendations")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"success": true,
		"styles":  results,
	})
}
