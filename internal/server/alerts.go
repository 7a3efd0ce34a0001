package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	alertdomain "github.com/smallbiznis/waterline/internal/alert/domain"
	identitydomain "github.com/smallbiznis/waterline/internal/identity/domain"
)

type raiseAlertRequest struct {
	Message string `json:"message"`
	Type    string `json:"type_alerte"`
	PumpID  string `json:"pompe_id"`
}

func (s *Server) ListAlerts(c *gin.Context, _ identitydomain.Principal) {
	alerts, err := s.alertSvc.ListUnresolved(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if alerts == nil {
		alerts = []alertdomain.Alert{}
	}

	c.JSON(http.StatusOK, alerts)
}

func (s *Server) RaiseAlert(c *gin.Context, p identitydomain.Principal) {
	var req raiseAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	pumpID, err := parseOptionalSnowflakeID(req.PumpID)
	if err != nil {
		AbortWithError(c, newValidationError("pompe_id", "invalid_id", "pompe_id is invalid"))
		return
	}

	alert, err := s.alertSvc.Raise(c.Request.Context(), alertdomain.RaiseRequest{
		Message: req.Message,
		Type:    req.Type,
		PumpID:  pumpID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordAlert(c.Request.Context(), "raised")
	s.audit(c, p, "alert.raise", "alert", alert.ID.String(), map[string]any{"type_alerte": alert.Type})
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": alert})
}

func (s *Server) ResolveAlert(c *gin.Context, p identitydomain.Principal) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	alert, err := s.alertSvc.Resolve(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordAlert(c.Request.Context(), "resolved")
	s.audit(c, p, "alert.resolve", "alert", alert.ID.String(), nil)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": alert})
}
