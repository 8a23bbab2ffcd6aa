package loan

import (
	"time"

	"github.com/shopspring/decimal"

	domain "peerlend-core/internal/domain/loan"
)

type CreateLoanInput struct {
	BorrowerID string          `json:"borrower_id"`
	Principal  decimal.Decimal `json:"principal"`
	Rate       float64         `json:"rate"`
	TermMonths int             `json:"term_months"`
	Purpose    string          `json:"purpose"`
}

type FundInput struct {
	LoanID   string
	LenderID string
	Amount   decimal.Decimal
}

type RepayInput struct {
	LoanID string
	Seq    int
}

type LoanDTO struct {
	LoanID          string    `json:"loan_id"`
	BorrowerID      string    `json:"borrower_id"`
	Principal       string    `json:"principal"`
	Rate            float64   `json:"rate"`
	TermMonths      int       `json:"term_months"`
	Purpose         string    `json:"purpose"`
	AmountFunded    string    `json:"amount_funded"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type InstallmentDTO struct {
	Seq       int        `json:"seq"`
	DueDate   time.Time  `json:"due_date"`
	Principal string     `json:"principal"`
	Interest  string     `json:"interest"`
	Total     string     `json:"total"`
	Status    string     `json:"status"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

func toDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:          l.LoanID,
		BorrowerID:      l.BorrowerID,
		Principal:       l.Principal.String(),
		Rate:            l.Rate,
		TermMonths:      l.TermMonths,
		Purpose:         l.Purpose,
		AmountFunded:    l.AmountFunded.String(),
		Status:          string(l.Status),
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt,
	}
}

func toInstallmentDTO(it *domain.Installment) InstallmentDTO {
	return InstallmentDTO{
		Seq:       it.Seq,
		DueDate:   it.DueDate,
		Principal: it.Principal.String(),
		Interest:  it.Interest.String(),
		Total:     it.Total.String(),
		Status:    string(it.Status),
		PaidAt:    it.PaidAt,
	}
}
