package wallet

import "context"

type Repository interface {
	GetByOwnerID(ctx context.Context, ownerID string) (*Wallet, error)
	// GetOrCreateForUpdate locks the owner's wallet row, creating it with a
	// zero balance on first access. Must run inside a transaction.
	GetOrCreateForUpdate(ctx context.Context, ownerID string) (*Wallet, error)
	Save(ctx context.Context, w *Wallet) error

	CreateTransaction(ctx context.Context, t *Transaction) error
	ListTransactions(ctx context.Context, ownerID string) ([]Transaction, error)
}
