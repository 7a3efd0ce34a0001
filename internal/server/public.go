package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	feedbackdomain "github.com/smallbiznis/waterline/internal/feedback/domain"
)

func (s *Server) HomeStats(c *gin.Context) {
	stats, err := s.dashboardSvc.HomeStats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (s *Server) PositiveFeedback(c *gin.Context) {
	items, err := s.feedbackSvc.ListPositive(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if items == nil {
		items = []feedbackdomain.Positive{}
	}

	c.JSON(http.StatusOK, items)
}
