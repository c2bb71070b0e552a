package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	activitydomain "github.com/legatepro/legatepro/internal/activity/domain"
)

func (s *Server) ListActivity(c *gin.Context) {
	page, err := parsePagination(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	estateID, err := parseOptionalSnowflakeID(c.Query("estate_id"))
	if err != nil {
		AbortWithError(c, newValidationError("estate_id", "invalid_id", "invalid estate id"))
		return
	}

	entries, pageInfo, err := s.activitySvc.List(c.Request.Context(), activitydomain.ListFilter{
		EstateID: estateID,
		Action:   strings.TrimSpace(c.Query("action")),
		Page:     page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries, "page_info": pageInfo})
}
