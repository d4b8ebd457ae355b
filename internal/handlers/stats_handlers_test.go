package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"brushtrack_backend/internal/models"
	"brushtrack_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStatsService struct {
	stats *models.ChildStats
	err   error
}

func (s *stubStatsService) GetChildStats(childID string) (*models.ChildStats, error) {
	return s.stats, s.err
}

func statsRequest(t *testing.T, svc services.StatsService) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/api/v1/children/:id/stats", NewStatsHandler(svc).GetChildStats)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/children/c1/stats", nil)
	engine.ServeHTTP(recorder, req)
	return recorder
}

func TestGetChildStats_Responses(t *testing.T) {
	t.Run("serializes the full stats payload", func(t *testing.T) {
		recorder := statsRequest(t, &stubStatsService{stats: &models.ChildStats{
			TotalBrushings:  42,
			Last30Days:      20,
			Last7Days:       6,
			AverageDuration: 115.5,
			AverageQuality:  7.25,
			StreakDays:      6,
		}})

		require.Equal(t, http.StatusOK, recorder.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.EqualValues(t, 42, body["total_brushings"])
		assert.EqualValues(t, 6, body["streak_days"])
		assert.InDelta(t, 115.5, body["average_duration"], 0.001)

		// A child with no recent brushing serializes an explicit null.
		assert.Contains(t, body, "last_brushing")
		assert.Nil(t, body["last_brushing"])
	})

	t.Run("unknown child maps to 404", func(t *testing.T) {
		recorder := statsRequest(t, &stubStatsService{err: services.ErrChildNotFound})
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
