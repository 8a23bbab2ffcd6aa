package paymethod

import "context"

type Repository interface {
	Create(ctx context.Context, m *PaymentMethod) error
	GetByMethodID(ctx context.Context, methodID string) (*PaymentMethod, error)
	GetByMethodIDForUpdate(ctx context.Context, methodID string) (*PaymentMethod, error)
	ListActiveByOwner(ctx context.Context, ownerID string) ([]PaymentMethod, error)
	ListActiveByOwnerKind(ctx context.Context, ownerID string, k Kind) ([]PaymentMethod, error)
	CountActive(ctx context.Context, ownerID string, k Kind) (int64, error)
	// FindDuplicate matches on (owner, kind, masked identifier, holder name)
	// among active methods.
	FindDuplicate(ctx context.Context, ownerID string, k Kind, masked, holder string) (*PaymentMethod, error)
	// GetDefault returns the active default for (owner, kind), or ErrNotFound.
	GetDefault(ctx context.Context, ownerID string, k Kind) (*PaymentMethod, error)
	// ClearDefaults unsets is_default on every active method of the
	// owner+kind in one statement.
	ClearDefaults(ctx context.Context, ownerID string, k Kind) error
	Save(ctx context.Context, m *PaymentMethod) error
}
