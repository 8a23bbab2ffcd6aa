package mysql

import (
	"context"

	"gorm.io/gorm"

	notifDomain "peerlend-core/internal/domain/notification"
	"peerlend-core/pkg/id"
)

type NotificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notifDomain.Notification) error {
	if n.NotifID == "" {
		n.NotifID = id.NewUUID()
	}
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID string) ([]notifDomain.Notification, error) {
	var out []notifDomain.Notification
	res := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("id DESC").
		Find(&out)
	return out, res.Error
}
