package repository

import (
	"context"

	"github.com/smallbiznis/waterline/internal/feedback/domain"
	"github.com/smallbiznis/waterline/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, conn *gorm.DB, feedback *domain.Feedback) error {
	err := conn.WithContext(ctx).Create(feedback).Error
	if db.IsCheckViolationErr(err) {
		return domain.ErrInvalidRating
	}
	return err
}

func (r *repo) ListPositive(ctx context.Context, conn *gorm.DB, minRating float64, limit int) ([]domain.PositiveRow, error) {
	var rows []domain.PositiveRow
	err := conn.WithContext(ctx).Raw(
		`SELECT f.id AS id, f.comment AS comment, f.rating AS rating,
		        f.submitted_on AS submitted_on, c.name AS client_name
		 FROM feedbacks f
		 JOIN clients c ON c.id = f.client_id
		 WHERE f.rating >= ?
		 ORDER BY f.submitted_on DESC, f.id DESC
		 LIMIT ?`,
		minRating,
		limit,
	).Scan(&rows).Error
	return rows, err
}

func (r *repo) AverageRating(ctx context.Context, conn *gorm.DB) (float64, error) {
	var avg float64
	err := conn.WithContext(ctx).
		Model(&domain.Feedback{}).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	return avg, err
}
