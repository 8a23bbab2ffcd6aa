package loan

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the current transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetOpenLoanByBorrowerID(ctx context.Context, borrowerID string) (*Loan, error)
	ListByStatus(ctx context.Context, s Status) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error

	CreateFunding(ctx context.Context, f *Funding) error
	// ListActiveFundings excludes refunded rows.
	ListActiveFundings(ctx context.Context, loanNumericID uint64) ([]Funding, error)
	SaveFunding(ctx context.Context, f *Funding) error

	CreateInstallments(ctx context.Context, items []Installment) error
	ListInstallments(ctx context.Context, loanNumericID uint64) ([]Installment, error)
	GetInstallmentForUpdate(ctx context.Context, loanNumericID uint64, seq int) (*Installment, error)
	SaveInstallment(ctx context.Context, it *Installment) error
	// MarkOverdue flips pending installments due strictly before the cutoff
	// to overdue; returns the number of rows touched.
	MarkOverdue(ctx context.Context, cutoff time.Time) (int64, error)
	ListWithOverdueInstallments(ctx context.Context) ([]Loan, error)
}
