package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	expensedomain "github.com/legatepro/legatepro/internal/expense/domain"
)

func (s *Server) ListExpenses(c *gin.Context) {
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

	billable, err := parseOptionalBool(c.Query("billable"))
	if err != nil {
		AbortWithError(c, newValidationError("billable", "invalid_bool", "invalid boolean"))
		return
	}

	expenses, pageInfo, err := s.expenseSvc.List(c.Request.Context(), expensedomain.ListFilter{
		EstateID: estateID,
		Billable: billable,
		Page:     page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": expenses, "page_info": pageInfo})
}

func (s *Server) CreateExpense(c *gin.Context) {
	var req expensedomain.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	expense, err := s.expenseSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": expense})
}

func (s *Server) UpdateExpense(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req expensedomain.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	expense, err := s.expenseSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": expense})
}

func (s *Server) DeleteExpense(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.expenseSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
