package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/funcionarios-api/internal/core/shared"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker はストアへの疎通確認です。
type HealthChecker func(ctx context.Context) error

// HealthHandler は /api/health の HTTP 実装です。
type HealthHandler struct {
	check  HealthChecker
	mode   string
	clock  shared.Clock
	logger *zap.Logger
}

// NewHealthHandler は HealthHandler を生成します。mode はストアの実装種別です。
func NewHealthHandler(check HealthChecker, mode string, clock shared.Clock, logger *zap.Logger) *HealthHandler {
	if clock == nil {
		clock = shared.RealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{check: check, mode: mode, clock: clock, logger: logger.Named("health")}
}

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Database  string `json:"database"`
	Mode      string `json:"mode"`
	Timestamp string `json:"timestamp"`
}

// Register はルートを登録します。
func (h *HealthHandler) Register(r gin.IRouter) {
	r.GET("/health", h.Health)
}

// Health はストアに到達できれば 200、できなければ 500 を返します。
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	resp := healthResponse{
		Status:    "OK",
		Message:   "API funcionando correctamente",
		Database:  "conectada",
		Mode:      h.mode,
		Timestamp: h.clock.Now().UTC().Format(time.RFC3339),
	}

	if h.check != nil {
		if err := h.check(ctx); err != nil {
			h.logger.Error("health check failed", zap.Error(err))
			resp.Status = "ERROR"
			resp.Message = "Base de datos no disponible"
			resp.Database = "desconectada"
			c.JSON(http.StatusInternalServerError, resp)
			return
		}
	}

	c.JSON(http.StatusOK, resp)
}
