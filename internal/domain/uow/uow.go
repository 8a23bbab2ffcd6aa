package uow

import (
	"context"

	"peerlend-core/internal/domain/kyc"
	"peerlend-core/internal/domain/loan"
	"peerlend-core/internal/domain/notification"
	"peerlend-core/internal/domain/paymethod"
	"peerlend-core/internal/domain/wallet"
)

type Repos struct {
	Loans         loan.Repository
	Wallets       wallet.Repository
	PayMethods    paymethod.Repository
	KYC           kyc.Repository
	Notifications notification.Repository
}

// UnitOfWork runs fn against repositories bound to one database
// transaction, so a status write and the ledger/outbox rows it implies
// commit or roll back together.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
