package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/strokesheet/internal/http/handlers"
	httpMW "github.com/yungbote/strokesheet/internal/http/middleware"
	"github.com/yungbote/strokesheet/internal/observability"
	"github.com/yungbote/strokesheet/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	CORSOrigins []string

	SheetHandler  *httpH.SheetHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	// Sheets
	if cfg.SheetHandler != nil {
		r.GET("/", cfg.SheetHandler.Index)
		r.POST("/gen", cfg.SheetHandler.Generate)

		api := r.Group("/api")
		api.POST("/sheets", cfg.SheetHandler.Publish)
	}

	return r
}
