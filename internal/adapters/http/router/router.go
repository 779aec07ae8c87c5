// Package router は HTTP API のルーティングを組み立てます。
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/funcionarios-api/internal/adapters/http/handler"
	"github.com/ogurasousui/funcionarios-api/internal/adapters/http/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// APIPrefix はすべてのリソースの共通パスです。
const APIPrefix = "/api"

// Registrar は API グループにルートを登録するハンドラです。
type Registrar interface {
	Register(r gin.IRouter)
}

// Options は Router の横断設定です。
type Options struct {
	CORSAllowOrigins []string
	RateLimitRPS     float64
	RateLimitBurst   int
	// ServiceName が空でなければ otelhttp でトレースします。
	ServiceName string
}

// New は gin エンジンを組み立て、http.Handler として返します。
func New(opts Options, logger *zap.Logger, registrars ...Registrar) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	handler.RegisterValidation()

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logger(logger.Named("http")),
		middleware.Recovery(logger),
		middleware.CORS(opts.CORSAllowOrigins),
		middleware.RateLimitByIP(opts.RateLimitRPS, opts.RateLimitBurst),
	)
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ruta no encontrada"})
	})

	api := engine.Group(APIPrefix)
	for _, r := range registrars {
		r.Register(api)
	}

	if opts.ServiceName == "" {
		return engine
	}
	return otelhttp.NewHandler(engine, opts.ServiceName,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
