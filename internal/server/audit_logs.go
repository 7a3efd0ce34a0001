package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/smallbiznis/waterline/internal/audit/domain"
	identitydomain "github.com/smallbiznis/waterline/internal/identity/domain"
	"go.uber.org/zap"
)

type listAuditLogsQuery struct {
	Action     string `form:"action"`
	ActorType  string `form:"actor_type"`
	TargetType string `form:"target_type"`
	TargetID   string `form:"target_id"`
	Limit      int    `form:"limit"`
}

func (s *Server) ListAuditLogs(c *gin.Context, _ identitydomain.Principal) {
	var query listAuditLogsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	logs, err := s.auditSvc.List(c.Request.Context(), auditdomain.ListAuditLogRequest{
		Action:     strings.TrimSpace(query.Action),
		ActorType:  strings.TrimSpace(query.ActorType),
		TargetType: strings.TrimSpace(query.TargetType),
		TargetID:   strings.TrimSpace(query.TargetID),
		Limit:      query.Limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if logs == nil {
		logs = []auditdomain.AuditLog{}
	}

	c.JSON(http.StatusOK, logs)
}

// audit records an action by the resolved caller. Failures are logged, never surfaced.
func (s *Server) audit(c *gin.Context, p identitydomain.Principal, action, targetType, targetID string, metadata map[string]any) {
	actorID := p.SubjectID.String()
	var target *string
	if strings.TrimSpace(targetID) != "" {
		target = &targetID
	}
	if err := s.auditSvc.AuditLog(c.Request.Context(), string(p.Role), &actorID, action, targetType, target, metadata); err != nil {
		s.log.Warn("audit log failed", zap.String("action", action), zap.Error(err))
	}
}
