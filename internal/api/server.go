// Package api exposes the seating engine over HTTP with gin.
//
// Every route is scoped by owner and partition: the owner comes from the
// X-Owner-ID header, the partition from the :pid path segment. Aggregate
// tokens (ALL, date:YYYY-MM-DD) are accepted on read routes.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/arloliu/seating"
	"github.com/arloliu/seating/internal/logging"
)

// OwnerHeader carries the owner id of every request.
const OwnerHeader = "X-Owner-ID"

// Config configures the HTTP API.
type Config struct {
	// Engine serves every request. Required.
	Engine *seating.Engine

	// Logger receives request failures. Defaults to a no-op logger.
	Logger seating.Logger

	// CORSOrigins lists allowed browser origins. Empty allows all origins.
	CORSOrigins []string

	// MetricsPath and MetricsHandler mount a metrics endpoint when both are set.
	MetricsPath    string
	MetricsHandler http.Handler
}

// Server routes HTTP requests to the engine.
type Server struct {
	engine *seating.Engine
	logger seating.Logger
	router *gin.Engine
}

// NewServer builds the router.
//
// Parameters:
//   - cfg: Server configuration; Engine is required
//
// Returns:
//   - *Server: Server whose Handler is ready to serve
//   - error: Missing engine
func NewServer(cfg *Config) (*Server, error) {
	if cfg == nil || cfg.Engine == nil {
		return nil, errors.New("api: engine is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	s := &Server{engine: cfg.Engine, logger: logger, router: r}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.MetricsPath != "" && cfg.MetricsHandler != nil {
		r.GET(cfg.MetricsPath, gin.WrapH(cfg.MetricsHandler))
	}

	api := r.Group("/api", requireOwner())
	{
		api.GET("/partitions", s.listPartitions)
		api.POST("/partitions", s.createPartition)

		p := api.Group("/partitions/:pid")
		p.POST("/reassign", s.reassignPartition)

		p.GET("/tables", s.listTables)
		p.POST("/tables", s.createTable)
		p.PATCH("/tables/:tid", s.updateTable)
		p.DELETE("/tables/:tid", s.deleteTable)
		p.POST("/tables/:tid/activate", s.activateTable)
		p.POST("/tables/:tid/deactivate", s.deactivateTable)
		p.POST("/tables/:tid/close", s.closeTable)
		p.POST("/tables/:tid/resize", s.resizeTable)

		p.GET("/participants", s.listParticipants)
		p.POST("/participants", s.createParticipant)
		p.GET("/participants/:id", s.getParticipant)
		p.DELETE("/participants/:id", s.deleteParticipant)
		p.PUT("/participants/:id/chips", s.updateChips)
		p.PUT("/participants/:id/status", s.setStatus)
		p.POST("/participants/:id/bust", s.bustOut)

		p.POST("/seating/rebalance", s.rebalance)
		p.POST("/seating/fill", s.fill)
		p.POST("/seating/draft", s.draft)
		p.POST("/seating/move", s.move)
	}

	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, OwnerHeader)

	return cfg
}

// requireOwner rejects requests without an owner header.
func requireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(OwnerHeader) == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": OwnerHeader + " header is required"})
			return
		}
		c.Next()
	}
}

func owner(c *gin.Context) string {
	return c.GetHeader(OwnerHeader)
}

func scope(c *gin.Context) seating.Scope {
	return seating.NewScope(owner(c), c.Param("pid"))
}
