package repositories

import (
	"github.com/picnichub/memoryhub/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(targetID, targetType string, userID uint) error
	HasUserLiked(targetID, targetType string, userID uint) (bool, error)
	GetLikesCount(targetID, targetType string) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike creates a new like in PostgreSQL
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

// DeleteLike deletes a like from PostgreSQL
func (r *PostgresLikeRepository) DeleteLike(targetID, targetType string, userID uint) error {
	res := r.db.Where("target_id = ? AND target_type = ? AND user_id = ?", targetID, targetType, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// HasUserLiked checks if a user has liked a specific memory or reel
func (r *PostgresLikeRepository) HasUserLiked(targetID, targetType string, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).
		Where("target_id = ? AND target_type = ? AND user_id = ?", targetID, targetType, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetLikesCount retrieves the count of likes for a specific memory or reel
func (r *PostgresLikeRepository) GetLikesCount(targetID, targetType string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).
		Where("target_id = ? AND target_type = ?", targetID, targetType).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
