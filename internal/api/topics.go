// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/digest-engine/internal/store"
	"github.com/pdiddy/digest-engine/pkg/types"
)

type createTopicRequest struct {
	Name            string   `json:"name" binding:"required"`
	Keywords        []string `json:"keywords"`
	IncludePatterns []string `json:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns"`
	Priority        int      `json:"priority" binding:"omitempty,min=0,max=100"`
	MaxArticles     int      `json:"max_articles" binding:"omitempty,min=1,max=50"`
	Enabled         *bool    `json:"enabled"`
}

type updateTopicRequest struct {
	Name            *string   `json:"name"`
	Keywords        *[]string `json:"keywords"`
	IncludePatterns *[]string `json:"include_patterns"`
	ExcludePatterns *[]string `json:"exclude_patterns"`
	Priority        *int      `json:"priority" binding:"omitempty,min=0,max=100"`
	MaxArticles     *int      `json:"max_articles" binding:"omitempty,min=1,max=50"`
	Enabled         *bool     `json:"enabled"`
}

func (s *Server) listTopics(c *gin.Context) {
	enabledOnly := c.Query("enabled") == "true"
	topics, err := s.store.Topics(enabledOnly)
	if err != nil {
		s.fail(c, err)
		return
	}
	if topics == nil {
		topics = []types.Topic{}
	}
	c.JSON(http.StatusOK, topics)
}

func (s *Server) createTopic(c *gin.Context) {
	var req createTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	created, err := s.store.CreateTopic(types.Topic{
		Name:            req.Name,
		Keywords:        req.Keywords,
		IncludePatterns: req.IncludePatterns,
		ExcludePatterns: req.ExcludePatterns,
		Priority:        req.Priority,
		MaxArticles:     req.MaxArticles,
		Enabled:         enabled,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) getTopic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	topic, err := s.store.Topic(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if topic == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "topic not found"})
		return
	}
	c.JSON(http.StatusOK, topic)
}

func (s *Server) updateTopic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := s.store.UpdateTopic(id, store.TopicUpdate{
		Name:            req.Name,
		Keywords:        req.Keywords,
		IncludePatterns: req.IncludePatterns,
		ExcludePatterns: req.ExcludePatterns,
		Priority:        req.Priority,
		MaxArticles:     req.MaxArticles,
		Enabled:         req.Enabled,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "topic not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteTopic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := s.store.DeleteTopic(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "topic not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
