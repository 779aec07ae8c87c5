package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/funcionarios-api/internal/adapters/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingRegistrar struct{}

func (pingRegistrar) Register(r gin.IRouter) {
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func TestNew_MountsUnderAPIPrefix(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	for _, name := range []string{"", "funcionarios-api"} {
		h := New(Options{CORSAllowOrigins: []string{"*"}, ServiceName: name}, nil, pingRegistrar{})

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
		require.Equal(t, http.StatusOK, w.Code, name)
		assert.Equal(t, "pong", w.Body.String())
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

		w = httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusNotFound, w.Code, name)
		assert.JSONEq(t, `{"error":"Ruta no encontrada"}`, w.Body.String())
	}
}
