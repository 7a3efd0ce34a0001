package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/smallbiznis/waterline/internal/audit/domain"
	authdomain "github.com/smallbiznis/waterline/internal/auth/domain"
	clientdomain "github.com/smallbiznis/waterline/internal/client/domain"
	"github.com/smallbiznis/waterline/internal/observability/logger"
	"go.uber.org/zap"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Success  bool   `json:"success"`
	UserType string `json:"user_type"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"nom" binding:"required"`
	Phone    string `json:"telephone"`
	Address  string `json:"adresse"`
}

func (s *Server) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, bindingError(err))
		return
	}

	ctx := c.Request.Context()
	email := strings.TrimSpace(req.Username)
	result, err := s.authsvc.Login(ctx, authdomain.LoginRequest{
		Email:     email,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		s.obsMetrics.RecordLogin(ctx, "failure", "")
		_ = s.auditSvc.AuditLog(ctx, string(auditdomain.ActorTypeUser), nil, "user.login_failed", "user", nil, map[string]any{
			"email": email,
		})
		AbortWithError(c, err)
		return
	}

	principal, err := s.identitySvc.Resolve(ctx, result.UserID)
	if err != nil {
		// The session must not outlive a login that resolved to no role.
		if revokeErr := s.authsvc.RevokeSession(ctx, result.SessionID); revokeErr != nil {
			logger.FromContext(ctx).Warn("revoke session failed", zap.Error(revokeErr))
		}
		s.obsMetrics.RecordLogin(ctx, "unrecognized", "")
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, result.RawToken, result.ExpiresAt)
	s.obsMetrics.RecordLogin(ctx, "success", string(principal.Role))

	userID := result.UserID.String()
	_ = s.auditSvc.AuditLog(ctx, string(principal.Role), &userID, "user.login", "user", &userID, map[string]any{
		"email": result.Email,
	})

	c.JSON(http.StatusOK, LoginResponse{
		Success:  true,
		UserType: string(principal.Role),
		UserID:   principal.SubjectID.String(),
		Name:     principal.Name,
	})
}

func (s *Server) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, bindingError(err))
		return
	}

	ctx := c.Request.Context()
	client, err := s.clientSvc.Register(ctx, clientdomain.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		s.obsMetrics.RecordRegistration(ctx, "failure")
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordRegistration(ctx, "success")
	clientID := client.ID.String()
	_ = s.auditSvc.AuditLog(ctx, string(auditdomain.ActorTypeClient), &clientID, "client.register", "client", &clientID, nil)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "account created",
	})
}

func (s *Server) Logout(c *gin.Context) {
	token, ok := s.sessions.ReadToken(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	if err := s.authsvc.Logout(c.Request.Context(), token); err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
