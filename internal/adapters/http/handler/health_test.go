package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/ogurasousui/funcionarios-api/internal/core/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		check      HealthChecker
		wantCode   int
		wantStatus string
		wantDB     string
	}{
		"ok": {
			check:      func(context.Context) error { return nil },
			wantCode:   http.StatusOK,
			wantStatus: "OK",
			wantDB:     "conectada",
		},
		"unavailable": {
			check:      func(context.Context) error { return apperror.Unavailable(errors.New("dial tcp: refused")) },
			wantCode:   http.StatusInternalServerError,
			wantStatus: "ERROR",
			wantDB:     "desconectada",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			h := NewHealthHandler(tc.check, "memory", fixedClock{now: testNow}, nil)
			r := newTestEngine(h.Register)

			w := doRequest(r, http.MethodGet, "/api/health", "", nil)

			require.Equal(t, tc.wantCode, w.Code)
			var got healthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tc.wantStatus, got.Status)
			assert.Equal(t, tc.wantDB, got.Database)
			assert.Equal(t, "memory", got.Mode)
			assert.Equal(t, "2024-03-15T12:00:00Z", got.Timestamp)
		})
	}
}
