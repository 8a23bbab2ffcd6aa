package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	walletDomain "peerlend-core/internal/domain/wallet"
	"peerlend-core/pkg/id"
)

type WalletRepository struct{ db *gorm.DB }

func NewWalletRepository(db *gorm.DB) *WalletRepository { return &WalletRepository{db: db} }

func (r *WalletRepository) GetByOwnerID(ctx context.Context, ownerID string) (*walletDomain.Wallet, error) {
	var out walletDomain.Wallet
	res := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&out)
	return &out, res.Error
}

// GetOrCreateForUpdate locks the wallet row for the enclosing transaction,
// inserting a zero-balance row on first access. Every balance mutation for
// an owner serializes on this lock.
func (r *WalletRepository) GetOrCreateForUpdate(ctx context.Context, ownerID string) (*walletDomain.Wallet, error) {
	var out walletDomain.Wallet
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("owner_id = ?", ownerID).
		First(&out)
	if res.Error == nil {
		return &out, nil
	}
	if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, res.Error
	}
	out = walletDomain.Wallet{OwnerID: ownerID, Balance: 0}
	if err := r.db.WithContext(ctx).Create(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *WalletRepository) Save(ctx context.Context, w *walletDomain.Wallet) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *WalletRepository) CreateTransaction(ctx context.Context, t *walletDomain.Transaction) error {
	if t.TxID == "" {
		t.TxID = id.NewID32()
	}
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *WalletRepository) ListTransactions(ctx context.Context, ownerID string) ([]walletDomain.Transaction, error) {
	var out []walletDomain.Transaction
	res := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id DESC").
		Find(&out)
	return out, res.Error
}
