package recommend

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smart-travel-ai/itinerary-engine/internal/types"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Recommend(ctx context.Context, req types.RecommendationRequest) (*types.RecommendationResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*types.RecommendationResult)
	return res, args.Error(1)
}

func (m *MockService) RecommendPerStyle(ctx context.Context, req types.RecommendationRequest) (map[string]*types.RecommendationResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(map[string]*types.RecommendationResult)
	return res, args.Error(1)
}

func newTestHandler(svc Service) *Handler {
	return NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGetRecommendationsSuccess(t *testing.T) {
	mockSvc := new(MockService)
	handler := newTestHandler(mockSvc)

	want := &types.RecommendationResult{
		Activities: []types.ScoredPOI{
			{POI: types.POI{Name: "Louvre", Category: "museum"}, Score: 0.91},
		},
		Tier: types.TierFull,
	}
	mockSvc.On("Recommend", mock.Anything, mock.AnythingOfType("types.RecommendationRequest")).
		Return(want, nil).Once()

	body := `{"city":"Paris","country":"France","travel_styles":["cultural"]}`
	req := httptest.NewRequest(http.MethodPost, "/itinerary/recommendations", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.GetRecommendations(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Success    bool               `json:"success"`
		Activities []types.ScoredPOI  `json:"activities"`
		Tier       types.FallbackTier `json:"fallback_tier"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Activities, 1)
	assert.Equal(t, "Louvre", resp.Activities[0].Name)
	assert.Equal(t, types.TierFull, resp.Tier)
	mockSvc.AssertExpectations(t)
}

func TestGetRecommendationsEmptyResultIsOK(t *testing.T) {
	mockSvc := new(MockService)
	handler := newTestHandler(mockSvc)

	mockSvc.On("Recommend", mock.Anything, mock.Anything).
		Return(&types.RecommendationResult{Activities: []types.ScoredPOI{}, Tier: types.TierNone}, nil).Once()

	body := `{"city":"Atlantis","country":"Nowhere"}`
	req := httptest.NewRequest(http.MethodPost, "/itinerary/recommendations", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.GetRecommendations(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Success    bool              `json:"success"`
		Activities []types.ScoredPOI `json:"activities"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Activities)
	mockSvc.AssertExpectations(t)
}

func TestGetRecommendationsInvalidRequest(t *testing.T) {
	mockSvc := new(MockService)
	handler := newTestHandler(mockSvc)

	mockSvc.On("Recommend", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: city is required", types.ErrInvalidRequest)).Once()

	body := `{"city":"","country":"France"}`
	req := httptest.NewRequest(http.MethodPost, "/itinerary/recommendations", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.GetRecommendations(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockSvc.AssertExpectations(t)
}

func TestGetRecommendationsMalformedBody(t *testing.T) {
	mockSvc := new(MockService)
	handler := newTestHandler(mockSvc)

	req := httptest.NewRequest(http.MethodPost, "/itinerary/recommendations", strings.NewReader(`{"city":`))
	rr := httptest.NewRecorder()
	handler.GetRecommendations(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockSvc.AssertNotCalled(t, "Recommend")
}

func TestGetRecommendationsServiceFailure(t *testing.T) {
	mockSvc := new(MockService)
	handler := newTestHandler(mockSvc)

	mockSvc.On("Recommend", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("snapshot unavailable")).Once()

	body := `{"city":"Paris","country":"France"}`
	req := httptest.NewRequest(http.MethodPost, "/itinerary/recommendations", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.GetRecommendations(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	mockSvc.AssertExpectations(t)
}

func TestGetRecommendationsPerStyleSuccess(t *testing.T) {
	mockSvc := new(MockService)
	handler := newTestHandler(mockSvc)

	want := map[string]*types.RecommendationResult{
		"cultural": {
			Activities: []types.ScoredPOI{{POI: types.POI{Name: "Louvre"}, Score: 0.95}},
			Tier:       types.TierFull,
		},
	}
	mockSvc.On("RecommendPerStyle", mock.Anything, mock.Anything).Return(want, nil).Once()

	body := `{"city":"Paris","country":"France","travel_styles":["cultural"],"nights":2}`
	req := httptest.NewRequest(http.MethodPost, "/itinerary/recommendations/by-style", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.GetRecommendationsPerStyle(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Success bool                                   `json:"success"`
		Styles  map[string]*types.RecommendationResult `json:"styles"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Contains(t, resp.Styles, "cultural")
	require.Len(t, resp.Styles["cultural"].Activities, 1)
	assert.Equal(t, "Louvre", resp.Styles["cultural"].Activities[0].Name)
	mockSvc.AssertExpectations(t)
}

func TestGetRecommendationsPerStyleMissingStyles(t *testing.T) {
	mockSvc := new(MockService)
	handler := newTestHandler(mockSvc)

	mockSvc.On("RecommendPerStyle", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: travel_styles is required for per-style recommendations", types.ErrInvalidRequest)).Once()

	body := `{"city":"Paris","country":"France"}`
	req := httptest.NewRequest(http.MethodPost, "/itinerary/recommendations/by-style", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.GetRecommendationsPerStyle(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockSvc.AssertExpectations(t)
}
