package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// billingDashboardResponse wraps the overview with display strings so the
// client never converts cents itself.
type billingDashboardResponse struct {
	Overview  any               `json:"overview"`
	Formatted map[string]string `json:"formatted"`
}

func (s *Server) GetBillingDashboard(c *gin.Context) {
	overview, err := s.dashboardSvc.GetOverview(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": billingDashboardResponse{
		Overview: overview,
		Formatted: map[string]string{
			"invoiced":    formatCents(overview.InvoicedCents),
			"collected":   formatCents(overview.CollectedCents),
			"outstanding": formatCents(overview.OutstandingCents),
			"voided":      formatCents(overview.VoidedCents),
			"unbilled":    formatCents(overview.Unbilled.Cents),
		},
	}})
}

// formatCents renders an integer cent amount as a two-decimal string.
func formatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}
