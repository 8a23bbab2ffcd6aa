package loanmock

import (
	"context"
	"errors"
	"time"

	domain "peerlend-core/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("loanmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields a test needs; the rest error out.
type Repo struct {
	CreateFn                      func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn                 func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn        func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetOpenLoanByBorrowerIDFn     func(ctx context.Context, borrowerID string) (*domain.Loan, error)
	ListByStatusFn                func(ctx context.Context, s domain.Status) ([]domain.Loan, error)
	SaveFn                        func(ctx context.Context, l *domain.Loan) error
	CreateFundingFn               func(ctx context.Context, f *domain.Funding) error
	ListActiveFundingsFn          func(ctx context.Context, loanNumericID uint64) ([]domain.Funding, error)
	SaveFundingFn                 func(ctx context.Context, f *domain.Funding) error
	CreateInstallmentsFn          func(ctx context.Context, items []domain.Installment) error
	ListInstallmentsFn            func(ctx context.Context, loanNumericID uint64) ([]domain.Installment, error)
	GetInstallmentForUpdateFn     func(ctx context.Context, loanNumericID uint64, seq int) (*domain.Installment, error)
	SaveInstallmentFn             func(ctx context.Context, it *domain.Installment) error
	MarkOverdueFn                 func(ctx context.Context, cutoff time.Time) (int64, error)
	ListWithOverdueInstallmentsFn func(ctx context.Context) ([]domain.Loan, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetOpenLoanByBorrowerID(ctx context.Context, borrowerID string) (*domain.Loan, error) {
	if m.GetOpenLoanByBorrowerIDFn != nil {
		return m.GetOpenLoanByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByStatus(ctx context.Context, s domain.Status) ([]domain.Loan, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, s)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) CreateFunding(ctx context.Context, f *domain.Funding) error {
	if m.CreateFundingFn != nil {
		return m.CreateFundingFn(ctx, f)
	}
	return nil
}

func (m *Repo) ListActiveFundings(ctx context.Context, loanNumericID uint64) ([]domain.Funding, error) {
	if m.ListActiveFundingsFn != nil {
		return m.ListActiveFundingsFn(ctx, loanNumericID)
	}
	return nil, nil
}

func (m *Repo) SaveFunding(ctx context.Context, f *domain.Funding) error {
	if m.SaveFundingFn != nil {
		return m.SaveFundingFn(ctx, f)
	}
	return nil
}

func (m *Repo) CreateInstallments(ctx context.Context, items []domain.Installment) error {
	if m.CreateInstallmentsFn != nil {
		return m.CreateInstallmentsFn(ctx, items)
	}
	return nil
}

func (m *Repo) ListInstallments(ctx context.Context, loanNumericID uint64) ([]domain.Installment, error) {
	if m.ListInstallmentsFn != nil {
		return m.ListInstallmentsFn(ctx, loanNumericID)
	}
	return nil, nil
}

func (m *Repo) GetInstallmentForUpdate(ctx context.Context, loanNumericID uint64, seq int) (*domain.Installment, error) {
	if m.GetInstallmentForUpdateFn != nil {
		return m.GetInstallmentForUpdateFn(ctx, loanNumericID, seq)
	}
	return nil, errUnimplemented
}

func (m *Repo) SaveInstallment(ctx context.Context, it *domain.Installment) error {
	if m.SaveInstallmentFn != nil {
		return m.SaveInstallmentFn(ctx, it)
	}
	return nil
}

func (m *Repo) MarkOverdue(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.MarkOverdueFn != nil {
		return m.MarkOverdueFn(ctx, cutoff)
	}
	return 0, nil
}

func (m *Repo) ListWithOverdueInstallments(ctx context.Context) ([]domain.Loan, error) {
	if m.ListWithOverdueInstallmentsFn != nil {
		return m.ListWithOverdueInstallmentsFn(ctx)
	}
	return nil, nil
}
