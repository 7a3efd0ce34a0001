// Package domain defines login identities and their sessions. Identities are
// shared by administrators and clients; the identity package resolves which one
// a user is.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type User struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	Email        string       `gorm:"type:varchar(254);not null;uniqueIndex"`
	PasswordHash *string      `gorm:"type:text"`
	DisplayName  string       `gorm:"type:varchar(255)"`
	// LastPasswordChanged is set whenever the stored hash is replaced.
	LastPasswordChanged *time.Time
	LastLoginAt         *time.Time
	CreatedAt           time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt           time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (User) TableName() string { return "users" }

// Session is a server-side login. Only the SHA-256 of the bearer token is stored.
type Session struct {
	ID               snowflake.ID `gorm:"primaryKey"`
	UserID           snowflake.ID `gorm:"not null;index"`
	User             *User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	SessionTokenHash string       `gorm:"type:varchar(64);not null;uniqueIndex"`
	UserAgent        string       `gorm:"type:text"`
	IPAddress        string       `gorm:"type:varchar(64)"`
	ExpiresAt        time.Time    `gorm:"not null;index"`
	RevokedAt        *time.Time
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	LastSeenAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Session) TableName() string { return "sessions" }

// Active reports whether the session may still authenticate requests at now.
func (s *Session) Active(now time.Time) error {
	switch {
	case s.RevokedAt != nil:
		return ErrSessionRevoked
	case !now.Before(s.ExpiresAt):
		return ErrSessionExpired
	}
	return nil
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id snowflake.ID) (*User, error)
	UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error
}

type SessionRepository interface {
	CreateSession(ctx context.Context, session *Session) error
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (*Session, error)
	UpdateLastSeen(ctx context.Context, sessionID snowflake.ID, lastSeen time.Time) error
	RevokeSession(ctx context.Context, sessionID snowflake.ID, revokedAt time.Time) error
}

type Service interface {
	// WithTx binds identity writes to an outer transaction.
	WithTx(tx *gorm.DB) Service
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	RevokeSession(ctx context.Context, sessionID snowflake.ID) error
	Authenticate(ctx context.Context, rawToken string) (*Session, error)
}

type CreateUserRequest struct {
	Email       string
	Password    string
	DisplayName string
}

type LoginRequest struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

type LoginResult struct {
	UserID    snowflake.ID
	Email     string
	RawToken  string
	ExpiresAt time.Time
	SessionID snowflake.ID
}

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrWeakPassword       = errors.New("invalid_password")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrUserExists         = errors.New("email_taken")
	ErrSessionNotFound    = errors.New("session_not_found")
	ErrSessionExpired     = errors.New("session_expired")
	ErrSessionRevoked     = errors.New("session_revoked")
	ErrInvalidSession     = errors.New("invalid_session")
)
