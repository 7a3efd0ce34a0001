package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	distributiondomain "github.com/smallbiznis/waterline/internal/distribution/domain"
	identitydomain "github.com/smallbiznis/waterline/internal/identity/domain"
)

type recordDistributionRequest struct {
	ClientID string  `json:"client_id"`
	PumpID   string  `json:"pompe_id"`
	Volume   float64 `json:"volume"`
	Date     string  `json:"date"`
}

func (s *Server) RecordDistribution(c *gin.Context, p identitydomain.Principal) {
	var req recordDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	clientID, err := parseRequiredSnowflakeID("client_id", req.ClientID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	pumpID, err := parseOptionalSnowflakeID(req.PumpID)
	if err != nil {
		AbortWithError(c, newValidationError("pompe_id", "invalid_id", "pompe_id is invalid"))
		return
	}
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		AbortWithError(c, distributiondomain.ErrInvalidDate)
		return
	}
	var day time.Time
	if date != nil {
		day = *date
	}

	ctx := c.Request.Context()
	result, err := s.distributionSvc.Record(ctx, distributiondomain.RecordRequest{
		ClientID: clientID,
		PumpID:   pumpID,
		Volume:   req.Volume,
		Date:     day,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordDistribution(ctx, result.Distribution.Volume)
	s.audit(c, p, "distribution.record", "distribution", result.Distribution.ID.String(), map[string]any{
		"client_id":  clientID.String(),
		"invoice_id": result.InvoiceID.String(),
		"volume":     result.Distribution.Volume,
		"montant":    result.Amount,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success":         true,
		"distribution_id": result.Distribution.ID.String(),
		"facture_id":      result.InvoiceID.String(),
		"montant":         result.Amount,
	})
}
