package authorization

import (
	"context"
	"errors"

	identitydomain "github.com/smallbiznis/waterline/internal/identity/domain"
)

type Service interface {
	// Authorize checks that the principal's role grants action on object.
	Authorize(ctx context.Context, principal identitydomain.Principal, object string, action string) error
}

var (
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidActor  = errors.New("invalid_actor")
	ErrInvalidObject = errors.New("invalid_object")
	ErrInvalidAction = errors.New("invalid_action")
)
