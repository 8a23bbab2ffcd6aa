package loan

import (
	"time"

	"github.com/shopspring/decimal"

	domain "peerlend-core/internal/domain/loan"
	"peerlend-core/pkg/money"
)

var twelve = decimal.NewFromInt(12)

// BuildSchedule produces the repayment plan for a disbursed loan: flat
// annual interest spread over monthly installments. Principal and interest
// are split in cents with the remainder on the earliest installments, so
// the principal portions sum to the loan principal exactly.
func BuildSchedule(loanID uint64, principal money.Cents, rate float64, termMonths int, start time.Time) ([]domain.Installment, error) {
	totalInterestDec := principal.Decimal().
		Mul(decimal.NewFromFloat(rate)).
		Mul(decimal.NewFromInt(int64(termMonths))).
		Div(twelve).
		Round(2)
	totalInterest, err := money.FromDecimal(totalInterestDec)
	if err != nil {
		return nil, err
	}

	principalParts := money.Split(principal, termMonths)
	interestParts := money.Split(totalInterest, termMonths)

	items := make([]domain.Installment, termMonths)
	for i := 0; i < termMonths; i++ {
		items[i] = domain.Installment{
			LoanID:    loanID,
			Seq:       i + 1,
			DueDate:   start.AddDate(0, i+1, 0),
			Principal: principalParts[i],
			Interest:  interestParts[i],
			Total:     principalParts[i] + interestParts[i],
			Status:    domain.InstallmentPending,
		}
	}
	return items, nil
}
