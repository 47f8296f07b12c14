// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/digest-engine/internal/store"
	"github.com/pdiddy/digest-engine/pkg/types"
)

type createSourceRequest struct {
	Name     string             `json:"name" binding:"required"`
	Type     string             `json:"type" binding:"required,oneof=rss reddit web"`
	URL      string             `json:"url" binding:"required"`
	Category string             `json:"category"`
	Config   types.SourceConfig `json:"config"`
	Enabled  *bool              `json:"enabled"`
	TopicIDs []int64            `json:"topic_ids"`
}

type updateSourceRequest struct {
	Name     *string             `json:"name"`
	Type     *string             `json:"type" binding:"omitempty,oneof=rss reddit web"`
	URL      *string             `json:"url"`
	Category *string             `json:"category"`
	Config   *types.SourceConfig `json:"config"`
	Enabled  *bool               `json:"enabled"`
	TopicIDs []int64             `json:"topic_ids"`
}

func (s *Server) listSources(c *gin.Context) {
	enabledOnly := c.Query("enabled") == "true"
	sources, err := s.store.Sources(enabledOnly)
	if err != nil {
		s.fail(c, err)
		return
	}
	if sources == nil {
		sources = []types.Source{}
	}
	c.JSON(http.StatusOK, sources)
}

func (s *Server) createSource(c *gin.Context) {
	var req createSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	created, err := s.store.CreateSource(types.Source{
		Name:     req.Name,
		Type:     types.SourceType(req.Type),
		URL:      req.URL,
		Category: req.Category,
		Config:   req.Config,
		Enabled:  enabled,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	if len(req.TopicIDs) > 0 {
		if err := s.store.SetSourceTopics(created.ID, req.TopicIDs); err != nil {
			s.fail(c, err)
			return
		}
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) getSource(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	src, err := s.store.Source(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if src == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "source not found"})
		return
	}
	c.JSON(http.StatusOK, src)
}

func (s *Server) updateSource(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := store.SourceUpdate{
		Name:     req.Name,
		URL:      req.URL,
		Category: req.Category,
		Config:   req.Config,
		Enabled:  req.Enabled,
		TopicIDs: req.TopicIDs,
	}
	if req.Type != nil {
		t := types.SourceType(*req.Type)
		upd.Type = &t
	}

	updated, err := s.store.UpdateSource(id, upd)
	if err != nil {
		s.fail(c, err)
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "source not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteSource(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := s.store.DeleteSource(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "source not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// pathID parses the :id path parameter, replying 400 on garbage.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return 0, false
	}
	return id, true
}
