package scan

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"ingredient-scanner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func performJSON(t *testing.T, handler gin.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	handler(c)
	return w
}

func TestHandleAnalyzeRejectsUnknownInputType(t *testing.T) {
	handler := NewHandler(nil, nil)

	w := performJSON(t, handler.HandleAnalyze, AnalyzeRequest{
		InputType:       "voice",
		IngredientsText: "Water",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_INPUT_TYPE", resp["code"])
}

func TestHandleAnalyzeRejectsMalformedBody(t *testing.T) {
	handler := NewHandler(nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.HandleAnalyze(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleOverlay(t *testing.T) {
	handler := NewHandler(nil, nil)

	w := performJSON(t, handler.HandleOverlay, OverlayRequest{
		Result: common.AnalysisResult{
			RiskScore: 28,
			RiskTier:  common.TierLow,
			Flags: []common.Flag{
				{Key: common.CategoryIrritant, Severity: 2, Matched: []string{"Fragrance"}},
			},
		},
		Profile: common.SkinProfile{Flags: []string{common.ProfileFlagFragranceSensitive}},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp OverlayResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.HasRelevantSensitivities)
	require.NotNil(t, resp.Overlay.AdjustedRiskScore)
	assert.Equal(t, 33, *resp.Overlay.AdjustedRiskScore)
	assert.NotEmpty(t, resp.Overlay.PersonalWarnings)
}

func TestHandleGoalWithoutProfile(t *testing.T) {
	handler := NewHandler(nil, nil)

	w := performJSON(t, handler.HandleGoal, GoalRequest{
		Result: common.AnalysisResult{
			Flags: []common.Flag{
				{Key: common.CategoryAcneTrigger, Label: "Acne Trigger", Severity: 2},
			},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp GoalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Recommendation)
	assert.Equal(t, common.GoalAcne, resp.Recommendation.Goal)
	assert.Equal(t, common.ConfidenceMedium, resp.Recommendation.Confidence)
	require.Len(t, resp.Ranked, 1)
	assert.Equal(t, 4, resp.Ranked[0].Score)
}

func TestHandleGoalNoSignal(t *testing.T) {
	handler := NewHandler(nil, nil)

	w := performJSON(t, handler.HandleGoal, GoalRequest{
		Result: common.AnalysisResult{RiskTier: common.TierLow},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp GoalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Recommendation)
	assert.Empty(t, resp.Ranked)
}
