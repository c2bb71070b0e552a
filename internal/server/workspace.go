package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	workspacedomain "github.com/legatepro/legatepro/internal/workspace/domain"
)

func (s *Server) GetWorkspaceSettings(c *gin.Context) {
	settings, err := s.workspaceSvc.GetSettings(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": settings})
}

func (s *Server) UpdateWorkspaceSettings(c *gin.Context) {
	var req workspacedomain.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	settings, err := s.workspaceSvc.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": settings})
}
