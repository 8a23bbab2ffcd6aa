package walletmock

import (
	"context"
	"errors"

	domain "peerlend-core/internal/domain/wallet"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("walletmock: method not implemented")

type Repo struct {
	GetByOwnerIDFn         func(ctx context.Context, ownerID string) (*domain.Wallet, error)
	GetOrCreateForUpdateFn func(ctx context.Context, ownerID string) (*domain.Wallet, error)
	SaveFn                 func(ctx context.Context, w *domain.Wallet) error
	CreateTransactionFn    func(ctx context.Context, t *domain.Transaction) error
	ListTransactionsFn     func(ctx context.Context, ownerID string) ([]domain.Transaction, error)
}

func (m *Repo) GetByOwnerID(ctx context.Context, ownerID string) (*domain.Wallet, error) {
	if m.GetByOwnerIDFn != nil {
		return m.GetByOwnerIDFn(ctx, ownerID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetOrCreateForUpdate(ctx context.Context, ownerID string) (*domain.Wallet, error) {
	if m.GetOrCreateForUpdateFn != nil {
		return m.GetOrCreateForUpdateFn(ctx, ownerID)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, w *domain.Wallet) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, w)
	}
	return nil
}

func (m *Repo) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	if m.CreateTransactionFn != nil {
		return m.CreateTransactionFn(ctx, t)
	}
	return nil
}

func (m *Repo) ListTransactions(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	if m.ListTransactionsFn != nil {
		return m.ListTransactionsFn(ctx, ownerID)
	}
	return nil, nil
}

// InMemory is a map-backed wallet store for multi-step usecase tests where
// balances must actually move.
type InMemory struct {
	Wallets map[string]*domain.Wallet
	Txs     []domain.Transaction
}

func NewInMemory() *InMemory {
	return &InMemory{Wallets: map[string]*domain.Wallet{}}
}

func (s *InMemory) GetByOwnerID(ctx context.Context, ownerID string) (*domain.Wallet, error) {
	if w, ok := s.Wallets[ownerID]; ok {
		return w, nil
	}
	return nil, errUnimplemented
}

func (s *InMemory) GetOrCreateForUpdate(ctx context.Context, ownerID string) (*domain.Wallet, error) {
	if w, ok := s.Wallets[ownerID]; ok {
		return w, nil
	}
	w := &domain.Wallet{OwnerID: ownerID}
	s.Wallets[ownerID] = w
	return w, nil
}

func (s *InMemory) Save(ctx context.Context, w *domain.Wallet) error {
	s.Wallets[w.OwnerID] = w
	return nil
}

func (s *InMemory) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	s.Txs = append(s.Txs, *t)
	return nil
}

func (s *InMemory) ListTransactions(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, t := range s.Txs {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}
