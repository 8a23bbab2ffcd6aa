package notification

import "time"

// Notification is an outbox row. It is written in the same database
// transaction as the state change it announces; delivery (push, in-app) is
// a downstream reader's problem.
type Notification struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"-"`
	NotifID     string    `gorm:"size:36;uniqueIndex:ux_notifications_notif_id" json:"notif_id"`
	RecipientID string    `gorm:"size:32;index:idx_notifications_recipient" json:"recipient_id"`
	Title       string    `gorm:"size:128" json:"title"`
	Body        string    `gorm:"type:text" json:"body"`
	LoanID      string    `gorm:"size:32" json:"loan_id,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
