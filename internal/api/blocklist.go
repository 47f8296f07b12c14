// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/digest-engine/pkg/types"
)

type addBlockedRequest struct {
	Keyword string `json:"keyword" binding:"required"`
}

func (s *Server) listBlocked(c *gin.Context) {
	keywords, err := s.store.BlockedKeywords()
	if err != nil {
		s.fail(c, err)
		return
	}
	if keywords == nil {
		keywords = []types.BlockedKeyword{}
	}
	c.JSON(http.StatusOK, keywords)
}

func (s *Server) addBlocked(c *gin.Context) {
	var req addBlockedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := s.store.AddBlockedKeyword(req.Keyword)
	if err != nil {
		// Duplicate or blank keywords are client errors, not server faults.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) removeBlocked(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	removed, err := s.store.RemoveBlockedKeyword(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "blocked keyword not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
