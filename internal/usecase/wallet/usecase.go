package wallet

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domainPM "peerlend-core/internal/domain/paymethod"
	"peerlend-core/internal/domain/uow"
	domain "peerlend-core/internal/domain/wallet"
	"peerlend-core/pkg/money"
)

var ErrNoPaymentMethod = errors.New("no bank payment method on file")

type Usecase struct {
	wallets domain.Repository
	uow     uow.UnitOfWork
}

func NewUsecase(wallets domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{wallets: wallets, uow: tx}
}

type BalanceDTO struct {
	OwnerID string `json:"owner_id"`
	Balance string `json:"balance"`
}

type TransactionDTO struct {
	TxID      string    `json:"tx_id"`
	Type      string    `json:"type"`
	Amount    string    `json:"amount"`
	Status    string    `json:"status"`
	LoanID    string    `json:"loan_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AddFunds credits the owner's wallet and appends the topup transaction in
// the same database transaction.
func (u *Usecase) AddFunds(ctx context.Context, ownerID string, amount decimal.Decimal) (*BalanceDTO, error) {
	cents, err := money.FromDecimalPositive(amount)
	if err != nil {
		return nil, domain.ErrInvalidAmount
	}
	var dto *BalanceDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		w, err := r.Wallets.GetOrCreateForUpdate(ctx, ownerID)
		if err != nil {
			return err
		}
		w.Balance += cents
		if err := r.Wallets.Save(ctx, w); err != nil {
			return err
		}
		if err := r.Wallets.CreateTransaction(ctx, &domain.Transaction{
			OwnerID: ownerID,
			Type:    domain.TxTopup,
			Amount:  cents,
			Status:  domain.TxCompleted,
		}); err != nil {
			return err
		}
		dto = &BalanceDTO{OwnerID: ownerID, Balance: w.Balance.String()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// WithdrawFunds debits the wallet towards a bank payment method: the one
// given, or the owner's default. Balance never goes below zero; the check
// and the debit happen under the same row lock.
func (u *Usecase) WithdrawFunds(ctx context.Context, ownerID string, amount decimal.Decimal, methodID string) (*BalanceDTO, error) {
	cents, err := money.FromDecimalPositive(amount)
	if err != nil {
		return nil, domain.ErrInvalidAmount
	}
	var dto *BalanceDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var m *domainPM.PaymentMethod
		var err error
		if methodID != "" {
			m, err = r.PayMethods.GetByMethodID(ctx, methodID)
		} else {
			m, err = r.PayMethods.GetDefault(ctx, ownerID, domainPM.KindBank)
		}
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoPaymentMethod
			}
			return err
		}
		if m.OwnerID != ownerID || !m.IsActive || m.Kind != domainPM.KindBank {
			return ErrNoPaymentMethod
		}

		w, err := r.Wallets.GetOrCreateForUpdate(ctx, ownerID)
		if err != nil {
			return err
		}
		if w.Balance < cents {
			return domain.ErrInsufficientBalance
		}
		w.Balance -= cents
		if err := r.Wallets.Save(ctx, w); err != nil {
			return err
		}
		if err := r.Wallets.CreateTransaction(ctx, &domain.Transaction{
			OwnerID: ownerID,
			Type:    domain.TxWithdrawal,
			Amount:  cents,
			Status:  domain.TxCompleted,
		}); err != nil {
			return err
		}
		dto = &BalanceDTO{OwnerID: ownerID, Balance: w.Balance.String()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// CheckSufficientBalance is the read-only precondition gate; a missing
// wallet reads as a zero balance.
func (u *Usecase) CheckSufficientBalance(ctx context.Context, ownerID string, amount decimal.Decimal) (bool, error) {
	cents, err := money.FromDecimalPositive(amount)
	if err != nil {
		return false, domain.ErrInvalidAmount
	}
	w, err := u.wallets.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return w.Balance >= cents, nil
}

func (u *Usecase) Balance(ctx context.Context, ownerID string) (*BalanceDTO, error) {
	w, err := u.wallets.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &BalanceDTO{OwnerID: ownerID, Balance: money.Cents(0).String()}, nil
		}
		return nil, err
	}
	return &BalanceDTO{OwnerID: ownerID, Balance: w.Balance.String()}, nil
}

func (u *Usecase) Transactions(ctx context.Context, ownerID string) ([]TransactionDTO, error) {
	items, err := u.wallets.ListTransactions(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]TransactionDTO, 0, len(items))
	for _, t := range items {
		out = append(out, TransactionDTO{
			TxID:      t.TxID,
			Type:      string(t.Type),
			Amount:    t.Amount.String(),
			Status:    string(t.Status),
			LoanID:    t.LoanID,
			CreatedAt: t.CreatedAt,
		})
	}
	return out, nil
}
