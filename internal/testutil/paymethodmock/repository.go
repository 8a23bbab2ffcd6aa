package paymethodmock

import (
	"context"
	"errors"

	domain "peerlend-core/internal/domain/paymethod"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("paymethodmock: method not implemented")

type Repo struct {
	CreateFn                 func(ctx context.Context, m *domain.PaymentMethod) error
	GetByMethodIDFn          func(ctx context.Context, methodID string) (*domain.PaymentMethod, error)
	GetByMethodIDForUpdateFn func(ctx context.Context, methodID string) (*domain.PaymentMethod, error)
	ListActiveByOwnerFn      func(ctx context.Context, ownerID string) ([]domain.PaymentMethod, error)
	ListActiveByOwnerKindFn  func(ctx context.Context, ownerID string, k domain.Kind) ([]domain.PaymentMethod, error)
	CountActiveFn            func(ctx context.Context, ownerID string, k domain.Kind) (int64, error)
	FindDuplicateFn          func(ctx context.Context, ownerID string, k domain.Kind, masked, holder string) (*domain.PaymentMethod, error)
	GetDefaultFn             func(ctx context.Context, ownerID string, k domain.Kind) (*domain.PaymentMethod, error)
	ClearDefaultsFn          func(ctx context.Context, ownerID string, k domain.Kind) error
	SaveFn                   func(ctx context.Context, m *domain.PaymentMethod) error
}

func (r *Repo) Create(ctx context.Context, m *domain.PaymentMethod) error {
	if r.CreateFn != nil {
		return r.CreateFn(ctx, m)
	}
	return nil
}

func (r *Repo) GetByMethodID(ctx context.Context, methodID string) (*domain.PaymentMethod, error) {
	if r.GetByMethodIDFn != nil {
		return r.GetByMethodIDFn(ctx, methodID)
	}
	return nil, errUnimplemented
}

func (r *Repo) GetByMethodIDForUpdate(ctx context.Context, methodID string) (*domain.PaymentMethod, error) {
	if r.GetByMethodIDForUpdateFn != nil {
		return r.GetByMethodIDForUpdateFn(ctx, methodID)
	}
	return nil, errUnimplemented
}

func (r *Repo) ListActiveByOwner(ctx context.Context, ownerID string) ([]domain.PaymentMethod, error) {
	if r.ListActiveByOwnerFn != nil {
		return r.ListActiveByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (r *Repo) ListActiveByOwnerKind(ctx context.Context, ownerID string, k domain.Kind) ([]domain.PaymentMethod, error) {
	if r.ListActiveByOwnerKindFn != nil {
		return r.ListActiveByOwnerKindFn(ctx, ownerID, k)
	}
	return nil, nil
}

func (r *Repo) CountActive(ctx context.Context, ownerID string, k domain.Kind) (int64, error) {
	if r.CountActiveFn != nil {
		return r.CountActiveFn(ctx, ownerID, k)
	}
	return 0, nil
}

func (r *Repo) FindDuplicate(ctx context.Context, ownerID string, k domain.Kind, masked, holder string) (*domain.PaymentMethod, error) {
	if r.FindDuplicateFn != nil {
		return r.FindDuplicateFn(ctx, ownerID, k, masked, holder)
	}
	return nil, errUnimplemented
}

func (r *Repo) GetDefault(ctx context.Context, ownerID string, k domain.Kind) (*domain.PaymentMethod, error) {
	if r.GetDefaultFn != nil {
		return r.GetDefaultFn(ctx, ownerID, k)
	}
	return nil, errUnimplemented
}

func (r *Repo) ClearDefaults(ctx context.Context, ownerID string, k domain.Kind) error {
	if r.ClearDefaultsFn != nil {
		return r.ClearDefaultsFn(ctx, ownerID, k)
	}
	return nil
}

func (r *Repo) Save(ctx context.Context, m *domain.PaymentMethod) error {
	if r.SaveFn != nil {
		return r.SaveFn(ctx, m)
	}
	return nil
}
