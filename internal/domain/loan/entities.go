package loan

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"peerlend-core/pkg/money"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusFunding   Status = "funding"
	StatusDisbursed Status = "disbursed"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
	StatusDefaulted Status = "defaulted"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrInvalidTransition = errors.New("invalid loan status transition")
	ErrUnknownStatus     = errors.New("unknown loan status")
	ErrNotFullyFunded    = errors.New("loan is not fully funded")
	ErrOverfunded        = errors.New("funding exceeds requested amount")
	ErrOpenLoanExists    = errors.New("borrower already has an open loan")
	ErrInstallmentPaid   = errors.New("installment already paid")
)

// transitions is the single source of truth for the status graph. Every
// status write in the codebase goes through CanTransition; nothing else
// compares status strings.
var transitions = map[Status][]Status{
	StatusPending:   {StatusFunding, StatusRejected},
	StatusFunding:   {StatusPending, StatusDisbursed},
	StatusDisbursed: {StatusOngoing},
	StatusOngoing:   {StatusCompleted, StatusDefaulted},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusFunding, StatusDisbursed, StatusOngoing,
		StatusCompleted, StatusRejected, StatusDefaulted:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves the status.
func Terminal(s Status) bool { return len(transitions[s]) == 0 }

type Loan struct {
	ID              uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string         `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	BorrowerID      string         `gorm:"size:32;index:idx_loans_borrower_active" json:"borrower_id"`
	Principal       money.Cents    `gorm:"type:bigint" json:"principal"`
	Rate            float64        `gorm:"type:decimal(6,4)" json:"rate"`
	TermMonths      int            `gorm:"column:term_months" json:"term_months"`
	Purpose         string         `gorm:"type:text" json:"purpose"`
	AmountFunded    money.Cents    `gorm:"type:bigint" json:"amount_funded"`
	Status          Status         `gorm:"type:enum('pending','funding','disbursed','ongoing','completed','rejected','defaulted');default:'pending'" json:"status"`
	RejectionReason string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	StatusUpdatedAt time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy       string         `gorm:"size:32" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// FullyFunded is the disbursement gate.
func (l *Loan) FullyFunded() bool { return l.AmountFunded >= l.Principal }

type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pending"
	InstallmentPaid    InstallmentStatus = "paid"
	InstallmentOverdue InstallmentStatus = "overdue"
)

type Installment struct {
	ID        uint64            `gorm:"primaryKey;column:id" json:"-"`
	LoanID    uint64            `gorm:"column:loan_id;not null;index;uniqueIndex:ux_installments_loan_seq,priority:1" json:"-"`
	Seq       int               `gorm:"column:seq;not null;uniqueIndex:ux_installments_loan_seq,priority:2" json:"seq"`
	DueDate   time.Time         `gorm:"column:due_date;not null" json:"due_date"`
	Principal money.Cents       `gorm:"type:bigint" json:"principal"`
	Interest  money.Cents       `gorm:"type:bigint" json:"interest"`
	Total     money.Cents       `gorm:"type:bigint" json:"total"`
	Status    InstallmentStatus `gorm:"type:enum('pending','paid','overdue');default:'pending'" json:"status"`
	PaidAt    *time.Time        `gorm:"column:paid_at" json:"paid_at,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"-"`
}

func (Installment) TableName() string { return "installments" }

// Funding records one lender's escrowed contribution to a loan.
// RefundedAt is set when a cancelled approval returns the money; refunded
// rows stay for history but drop out of the active funding view.
type Funding struct {
	ID         uint64      `gorm:"primaryKey;column:id" json:"-"`
	FundingID  string      `gorm:"size:32;uniqueIndex:ux_fundings_funding_id" json:"funding_id"`
	LoanID     uint64      `gorm:"column:loan_id;not null;index" json:"-"`
	LenderID   string      `gorm:"size:32;index" json:"lender_id"`
	Amount     money.Cents `gorm:"type:bigint" json:"amount"`
	RefundedAt *time.Time  `gorm:"column:refunded_at" json:"refunded_at,omitempty"`
	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

func (Funding) TableName() string { return "fundings" }
