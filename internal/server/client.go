package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	feedbackdomain "github.com/smallbiznis/waterline/internal/feedback/domain"
	identitydomain "github.com/smallbiznis/waterline/internal/identity/domain"
)

type addFeedbackRequest struct {
	Comment string   `json:"commentaire" binding:"required"`
	Rating  *float64 `json:"note" binding:"required,min=0,max=5"`
}

func (s *Server) ClientDashboard(c *gin.Context, p identitydomain.Principal) {
	dashboard, err := s.dashboardSvc.ClientDashboard(c.Request.Context(), p.SubjectID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func (s *Server) AddFeedback(c *gin.Context, p identitydomain.Principal) {
	var req addFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, bindingError(err))
		return
	}

	ctx := c.Request.Context()
	feedback, err := s.feedbackSvc.Submit(ctx, feedbackdomain.SubmitRequest{
		ClientID: p.SubjectID,
		Comment:  req.Comment,
		Rating:   req.Rating,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordFeedback(ctx)
	s.audit(c, p, "feedback.submit", "feedback", feedback.ID.String(), map[string]any{"note": feedback.Rating})
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "feedback recorded"})
}
