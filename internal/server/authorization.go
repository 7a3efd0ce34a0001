package server

import (
	"github.com/gin-gonic/gin"
	identitydomain "github.com/smallbiznis/waterline/internal/identity/domain"
)

func (s *Server) requireAdmin(object, action string, next PrincipalHandler) gin.HandlerFunc {
	return s.requireRole(identitydomain.RoleAdmin, object, action, next)
}

func (s *Server) requireClient(object, action string, next PrincipalHandler) gin.HandlerFunc {
	return s.requireRole(identitydomain.RoleClient, object, action, next)
}

func (s *Server) requireRole(role identitydomain.Role, object, action string, next PrincipalHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := principalFromContext(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if principal.Role != role {
			AbortWithError(c, ErrForbidden)
			return
		}
		if err := s.authzSvc.Authorize(c.Request.Context(), principal, object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		next(c, principal)
	}
}
