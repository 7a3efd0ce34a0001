package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/smallbiznis/waterline/internal/client/domain"
)

const (
	MinRating = 0
	MaxRating = 5
)

// Feedback is a client's rating in [MinRating, MaxRating]. Date is stored at UTC midnight.
type Feedback struct {
	ID        snowflake.ID         `gorm:"primaryKey" json:"id"`
	Comment   string               `gorm:"type:text;not null" json:"commentaire"`
	Rating    float64              `gorm:"not null;index;check:rating >= 0 AND rating <= 5" json:"note"`
	Date      time.Time            `gorm:"column:submitted_on;not null;index" json:"-"`
	ClientID  snowflake.ID         `gorm:"not null;index" json:"client_id"`
	Client    *clientdomain.Client `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time            `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

func (Feedback) TableName() string { return "feedbacks" }

// Positive is a feedback row with the submitting client's name.
type Positive struct {
	ID         snowflake.ID `json:"id"`
	Comment    string       `json:"commentaire"`
	Rating     float64      `json:"note"`
	Date       string       `json:"date"`
	ClientName string       `json:"client_nom"`
}
