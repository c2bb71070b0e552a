package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	timeentrydomain "github.com/legatepro/legatepro/internal/timeentry/domain"
)

func (s *Server) ListTimeEntries(c *gin.Context) {
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

	unbilled, err := parseOptionalBool(c.Query("unbilled"))
	if err != nil {
		AbortWithError(c, newValidationError("unbilled", "invalid_bool", "invalid boolean"))
		return
	}

	filter := timeentrydomain.ListFilter{
		EstateID: estateID,
		Page:     page,
	}
	if unbilled != nil {
		filter.Unbilled = *unbilled
	}

	entries, pageInfo, err := s.timeEntrySvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries, "page_info": pageInfo})
}

func (s *Server) LogTimeEntry(c *gin.Context) {
	var req timeentrydomain.LogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	entry, err := s.timeEntrySvc.Log(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": entry})
}

func (s *Server) UpdateTimeEntry(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req timeentrydomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	entry, err := s.timeEntrySvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entry})
}

func (s *Server) ArchiveTimeEntry(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	entry, err := s.timeEntrySvc.Archive(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entry})
}

type attachTimeEntryRequest struct {
	InvoiceID string `json:"invoice_id"`
}

func (s *Server) AttachTimeEntry(c *gin.Context) {
	id, err := parsePathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req attachTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	invoiceID, err := snowflake.ParseString(strings.TrimSpace(req.InvoiceID))
	if err != nil || invoiceID == 0 {
		AbortWithError(c, newValidationError("invoice_id", "invalid_id", "invalid invoice id"))
		return
	}

	entry, err := s.timeEntrySvc.AttachToInvoice(c.Request.Context(), id, invoiceID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entry})
}
