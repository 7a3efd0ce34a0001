package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Principal is the resolved caller: one authenticated user bound to exactly one domain role.
type Principal struct {
	UserID    snowflake.ID
	Role      Role
	SubjectID snowflake.ID
	Name      string
	Email     string
}

func (p Principal) IsAdmin() bool  { return p.Role == RoleAdmin }
func (p Principal) IsClient() bool { return p.Role == RoleClient }

type Service interface {
	Resolve(ctx context.Context, userID snowflake.ID) (Principal, error)
}

// ErrUnrecognizedIdentity means the user authenticated but is neither administrator nor client.
var ErrUnrecognizedIdentity = errors.New("unrecognized_identity")
