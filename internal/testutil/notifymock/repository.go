package notifymock

import (
	"context"

	domain "peerlend-core/internal/domain/notification"
)

var _ domain.Repository = (*Repo)(nil)

// Repo records notifications so tests can assert the outbox contents.
type Repo struct {
	Created  []domain.Notification
	CreateFn func(ctx context.Context, n *domain.Notification) error
}

func (m *Repo) Create(ctx context.Context, n *domain.Notification) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}
	m.Created = append(m.Created, *n)
	return nil
}

func (m *Repo) ListByRecipient(ctx context.Context, recipientID string) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range m.Created {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}
