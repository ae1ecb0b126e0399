package server

import (
	"net/http"
	"time"

	"github.com/danmuck/binwire/internal/config"
	"github.com/danmuck/binwire/internal/observability"
	"github.com/danmuck/binwire/internal/protocol/schema"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const version = "0.1.0"

// Server exposes the codecs over HTTP for inspection and transcoding.
type Server struct {
	Name     string
	Addr     string
	Appeared time.Time

	cfg     config.Config
	schemas *schema.Registry
	router  *gin.Engine
}

func New(cfg config.Config) (*Server, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	schemas, err := cfg.Registry()
	if err != nil {
		return nil, err
	}

	observability.RegisterMetrics()
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(cfg.Server.Name))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(cfg.Server.CorsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Server{
		Name:     cfg.Server.Name,
		Addr:     cfg.Server.Addr,
		Appeared: time.Now(),
		cfg:      cfg,
		schemas:  schemas,
		router:   r,
	}
	s.RegisterRoutes()
	return s, nil
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

func (s *Server) RegisterRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.Name,
			"version": version,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/v1")
	v1.GET("/implementations", s.listImplementations)
	v1.GET("/schemas", s.listSchemas)
	v1.POST("/decode", s.decode)
	v1.POST("/encode", s.encode)
}

func (s *Server) Serve() error {
	log.Info().
		Str("service", s.Name).
		Str("addr", s.Addr).
		Str("impl", s.cfg.Codec.Implementation).
		Msg("binwire server listening")
	return s.router.Run(s.Addr)
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
