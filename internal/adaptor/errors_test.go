package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"event-ticketing/pkg/apperror"
	"event-ticketing/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		wantData map[string]string
	}{
		{"validation with fields", apperror.Validation("validation failed", map[string]string{"quantity": "Must be greater than 0"}), http.StatusBadRequest, map[string]string{"quantity": "Must be greater than 0"}},
		{"insufficient stock", apperror.InsufficientStock("ticket quantity is not enough"), http.StatusBadRequest, map[string]string{"error": "insufficient_stock"}},
		{"conflict", apperror.Conflict("order already completed"), http.StatusBadRequest, map[string]string{"error": "conflict"}},
		{"unauthorized", apperror.Unauthorized("invalid credentials"), http.StatusForbidden, map[string]string{"error": "unauthorized"}},
		{"forbidden", apperror.Forbidden("account is not activated"), http.StatusForbidden, map[string]string{"error": "forbidden"}},
		{"not found", apperror.NotFound("order not found"), http.StatusNotFound, map[string]string{"error": "not_found"}},
		{"gateway", apperror.GatewayUnavailable(errors.New("timeout")), http.StatusInternalServerError, map[string]string{"error": "gateway_unavailable"}},
		{"wrapped kind", fmt.Errorf("outer: %w", apperror.NotFound("ticket not found")), http.StatusNotFound, map[string]string{"error": "not_found"}},
		{"plain error", errors.New("connection reset"), http.StatusInternalServerError, map[string]string{"error": "internal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, zap.NewNop(), tt.err, "test")

			assert.Equal(t, tt.status, rec.Code)

			var body struct {
				Meta utils.Meta        `json:"meta"`
				Data map[string]string `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Meta.Status)
			assert.Equal(t, tt.wantData, body.Data)
		})
	}
}

func TestWriteError_InternalHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, zap.NewNop(), errors.New("pq: password authentication failed"), "test")

	assert.NotContains(t, rec.Body.String(), "password")
}
