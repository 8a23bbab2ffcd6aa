package paymethod

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Kind string

const (
	KindCard Kind = "card"
	KindBank Kind = "bank"
)

// Active-method caps per kind. Business policy from the platform, not a
// structural requirement.
const (
	MaxActiveCards        = 2
	MaxActiveBankAccounts = 1
)

var (
	ErrNotFound     = errors.New("payment method not found")
	ErrUnauthorized = errors.New("payment method belongs to another owner")
	ErrLimitReached = errors.New("active payment method limit reached")
	ErrDuplicate    = errors.New("payment method already exists")
	ErrInvalidKind  = errors.New("unknown payment method kind")
)

func CapFor(k Kind) int {
	if k == KindBank {
		return MaxActiveBankAccounts
	}
	return MaxActiveCards
}

// PaymentMethod stores the encrypted raw identifier plus a masked copy for
// display. Rows are soft-deleted (IsActive=false), never removed.
type PaymentMethod struct {
	ID         uint64         `gorm:"primaryKey;column:id" json:"-"`
	MethodID   string         `gorm:"size:32;uniqueIndex:ux_paymethods_method_id" json:"method_id"`
	OwnerID    string         `gorm:"size:32;index:idx_paymethods_owner" json:"owner_id"`
	Kind       Kind           `gorm:"type:enum('card','bank')" json:"kind"`
	Label      string         `gorm:"size:64" json:"label"` // card brand or bank name
	Masked     string         `gorm:"size:32" json:"masked"`
	Encrypted  string         `gorm:"type:text" json:"-"`
	HolderName string         `gorm:"size:128" json:"holder_name"`
	Expiry     string         `gorm:"size:8" json:"expiry,omitempty"` // MM/YY, cards only
	IsDefault  bool           `gorm:"column:is_default" json:"is_default"`
	IsActive   bool           `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PaymentMethod) TableName() string { return "payment_methods" }
