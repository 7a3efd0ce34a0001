package server

import (
	"github.com/gin-gonic/gin"
	identitydomain "github.com/smallbiznis/waterline/internal/identity/domain"
	obscontext "github.com/smallbiznis/waterline/internal/observability/context"
)

const contextPrincipalKey = "principal"

// PrincipalHandler is a handler that runs with an already resolved caller.
type PrincipalHandler func(c *gin.Context, p identitydomain.Principal)

// PrincipalRequired authenticates the session cookie and resolves it to an
// administrator or client principal.
func (s *Server) PrincipalRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := c.Request.Context()
		session, err := s.authsvc.Authenticate(ctx, token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		principal, err := s.identitySvc.Resolve(ctx, session.UserID)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		ctx = obscontext.WithActor(ctx, string(principal.Role), principal.SubjectID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Set(contextPrincipalKey, principal)
		c.Next()
	}
}

func principalFromContext(c *gin.Context) (identitydomain.Principal, bool) {
	value, ok := c.Get(contextPrincipalKey)
	if !ok {
		return identitydomain.Principal{}, false
	}
	principal, ok := value.(identitydomain.Principal)
	return principal, ok
}
