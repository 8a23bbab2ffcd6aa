package wallet

import (
	"errors"
	"time"

	"peerlend-core/pkg/money"
)

var (
	ErrNotFound            = errors.New("wallet not found")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

type Wallet struct {
	ID        uint64      `gorm:"primaryKey;column:id" json:"-"`
	OwnerID   string      `gorm:"size:32;uniqueIndex:ux_wallets_owner" json:"owner_id"`
	Balance   money.Cents `gorm:"type:bigint;not null;default:0" json:"balance"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Wallet) TableName() string { return "wallets" }

type TxType string

const (
	TxTopup        TxType = "topup"
	TxWithdrawal   TxType = "withdrawal"
	TxFunding      TxType = "funding"
	TxDisbursement TxType = "disbursement"
	TxRepayment    TxType = "repayment"
	TxFee          TxType = "fee"
	TxPayout       TxType = "payout"
)

type TxStatus string

const (
	TxPending   TxStatus = "pending"
	TxCompleted TxStatus = "completed"
	TxFailed    TxStatus = "failed"
)

// Transaction is the append-only ledger log. Rows are written in the same
// database transaction as the balance mutation they record and never
// updated once completed.
type Transaction struct {
	ID        uint64      `gorm:"primaryKey;column:id" json:"-"`
	TxID      string      `gorm:"size:32;uniqueIndex:ux_transactions_tx_id" json:"tx_id"`
	OwnerID   string      `gorm:"size:32;index:idx_transactions_owner" json:"owner_id"`
	Type      TxType      `gorm:"type:enum('topup','withdrawal','funding','disbursement','repayment','fee','payout')" json:"type"`
	Amount    money.Cents `gorm:"type:bigint" json:"amount"`
	Status    TxStatus    `gorm:"type:enum('pending','completed','failed');default:'completed'" json:"status"`
	LoanID    string      `gorm:"size:32;index" json:"loan_id,omitempty"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string { return "transactions" }
