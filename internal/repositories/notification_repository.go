package repositories

import (
	"errors"

	"github.com/picnichub/memoryhub/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations.
// All read and mutate operations are scoped to the recipient; soft-deleted
// rows stay in the table but never leave this layer.
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByRecipientID(recipientID uint, page, limit int, unreadOnly bool) ([]models.Notification, int64, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAsRead(recipientID, notificationID uint) error
	MarkAllAsRead(recipientID uint) (int64, error)
	SoftDelete(recipientID, notificationID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) visible(recipientID uint) *gorm.DB {
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_deleted = false", recipientID)
}

func (r *postgresNotificationRepository) GetByRecipientID(recipientID uint, page, limit int, unreadOnly bool) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	query := r.visible(recipientID)
	if unreadOnly {
		query = query.Where("is_read = false")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.visible(recipientID).Where("is_read = false").Count(&count).Error
	return count, err
}

// MarkAsRead transitions one notification owned by recipientID to read.
// The ownership check lives in the WHERE clause so another user's id can
// never be flipped; zero affected rows surfaces as ErrNotFound.
func (r *postgresNotificationRepository) MarkAsRead(recipientID, notificationID uint) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ? AND is_deleted = false", notificationID, recipientID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllAsRead bulk-transitions all unread notifications. Idempotent; the
// second call matches zero rows.
func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint) (int64, error) {
	res := r.visible(recipientID).Where("is_read = false").Update("is_read", true)
	return res.RowsAffected, res.Error
}

// SoftDelete hides a notification from all list queries while keeping the
// row for audit. A wrong owner gets ErrForbidden, not ErrNotFound, so the
// handler can answer 403.
func (r *postgresNotificationRepository) SoftDelete(recipientID, notificationID uint) error {
	var notification models.Notification
	err := r.db.First(&notification, notificationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !notification.OwnedBy(recipientID) {
		return ErrForbidden
	}
	if notification.IsDeleted {
		return ErrNotFound
	}
	return r.db.Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("is_deleted", true).Error
}
