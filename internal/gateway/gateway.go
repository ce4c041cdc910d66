package gateway

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const headerUserID = "X-Sharer-User-Id"

// Gateway валидирует форму запросов, ограничивает частоту и проксирует
// их на основной сервер. Доменных решений не принимает.
type Gateway struct {
	cfg      config.GatewayConfig
	limiter  domain.RateLimiter
	client   *http.Client
	logger   *zerolog.Logger
	engine   *gin.Engine
	server   *http.Server
	limiters sync.Map // map[string]*rate.Limiter
}

func New(cfg config.GatewayConfig, limiter domain.RateLimiter, logger *zerolog.Logger) *Gateway {
	gin.SetMode(gin.ReleaseMode)

	g := &Gateway{
		cfg:     cfg,
		limiter: limiter,
		client:  &http.Client{Timeout: time.Duration(cfg.RequestTimeout) * time.Second},
		logger:  logger,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(g.loggingMiddleware())
	r.Use(g.rateLimitMiddleware())

	r.POST("/bookings", g.requireUser, g.createBookingHandler)
	r.PATCH("/bookings/:bookingId", g.requireUser, g.approveBookingHandler)
	r.GET("/bookings/owner", g.requireUser, g.forwardHandler)
	r.GET("/bookings/:bookingId", g.requireUser, g.forwardHandler)
	r.GET("/bookings", g.requireUser, g.forwardHandler)

	r.POST("/items", g.requireUser, g.createItemHandler)
	r.PATCH("/items/:itemId", g.requireUser, g.forwardHandler)
	r.GET("/items/search", g.requireUser, g.forwardHandler)
	r.GET("/items/:itemId", g.requireUser, g.forwardHandler)
	r.GET("/items", g.requireUser, g.forwardHandler)
	r.POST("/items/:itemId/comment", g.requireUser, g.createCommentHandler)

	r.POST("/users", g.createUserHandler)
	r.PATCH("/users/:userId", g.forwardHandler)
	r.GET("/users/:userId", g.forwardHandler)
	r.GET("/users", g.forwardHandler)
	r.DELETE("/users/:userId", g.forwardHandler)

	r.POST("/requests", g.requireUser, g.createRequestHandler)
	r.GET("/requests/all", g.requireUser, g.forwardHandler)
	r.GET("/requests/:requestId", g.requireUser, g.forwardHandler)
	r.GET("/requests", g.requireUser, g.forwardHandler)

	r.GET("/manage/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	g.engine = r
	g.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return g
}

func (g *Gateway) Start() error {
	g.logger.Info().Str("addr", g.server.Addr).Str("server_url", g.cfg.ServerURL).Msg("gateway listening")
	if err := g.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (g *Gateway) Shutdown(ctx context.Context) error {
	return g.server.Shutdown(ctx)
}

// Handler возвращает корневой обработчик (для httptest).
func (g *Gateway) Handler() http.Handler {
	return g.engine
}

func (g *Gateway) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		g.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("gateway request")
	}
}
