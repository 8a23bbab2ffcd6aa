package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByRecipient(ctx context.Context, recipientID string) ([]Notification, error)
}
