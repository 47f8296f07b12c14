// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api exposes the admin HTTP interface: CRUD for sources, topics,
// and the blocklist, settings, digest logs, and a manual digest trigger.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/digest-engine/internal/store"
	"github.com/pdiddy/digest-engine/pkg/types"
)

// Runner triggers a digest run on demand.
type Runner interface {
	Run(ctx context.Context) (*types.Digest, error)
}

// Server holds the handler dependencies.
type Server struct {
	store  *store.Store
	runner Runner
	logger *slog.Logger
}

// New builds a Server. A nil logger gets the default.
func New(st *store.Store, runner Runner, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{store: st, runner: runner, logger: logger}
}

// Router assembles the gin engine with all routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.health)

	r.GET("/sources", s.listSources)
	r.POST("/sources", s.createSource)
	r.GET("/sources/:id", s.getSource)
	r.PUT("/sources/:id", s.updateSource)
	r.DELETE("/sources/:id", s.deleteSource)

	r.GET("/topics", s.listTopics)
	r.POST("/topics", s.createTopic)
	r.GET("/topics/:id", s.getTopic)
	r.PUT("/topics/:id", s.updateTopic)
	r.DELETE("/topics/:id", s.deleteTopic)

	r.GET("/blocklist", s.listBlocked)
	r.POST("/blocklist", s.addBlocked)
	r.DELETE("/blocklist/:id", s.removeBlocked)

	r.GET("/settings/:key", s.getSetting)
	r.PUT("/settings/:key", s.putSetting)

	r.GET("/digest/logs", s.digestLogs)
	r.POST("/digest/run", s.runDigest)

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) digestLogs(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	logs, err := s.store.DigestLogs(limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	if logs == nil {
		logs = []types.DigestLog{}
	}
	c.JSON(http.StatusOK, logs)
}

func (s *Server) runDigest(c *gin.Context) {
	if s.runner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "digest runner not configured"})
		return
	}
	digest, err := s.runner.Run(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, digest)
}

func (s *Server) getSetting(c *gin.Context) {
	key := c.Param("key")
	value, err := s.store.Setting(key, "")
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}

type settingRequest struct {
	Value string `json:"value" binding:"required"`
}

func (s *Server) putSetting(c *gin.Context) {
	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	key := c.Param("key")
	if err := s.store.SetSetting(key, req.Value); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": req.Value})
}

// fail reports an internal error without leaking details to the client.
func (s *Server) fail(c *gin.Context, err error) {
	s.logger.Error("request failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
