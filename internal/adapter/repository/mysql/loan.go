package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "peerlend-core/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanID).
		First(&out)
	return &out, res.Error
}

// GetOpenLoanByBorrowerID returns the borrower's most recent non-terminal
// loan, if any. Used to block a second concurrent request.
func (r *LoanRepository) GetOpenLoanByBorrowerID(ctx context.Context, borrowerID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("borrower_id = ? AND status NOT IN ?", borrowerID, []loanDomain.Status{
			loanDomain.StatusCompleted, loanDomain.StatusRejected, loanDomain.StatusDefaulted,
		}).
		Order("status_updated_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListByStatus(ctx context.Context, s loanDomain.Status) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("status = ?", s).
		Order("status_updated_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) CreateFunding(ctx context.Context, f *loanDomain.Funding) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *LoanRepository) ListActiveFundings(ctx context.Context, loanNumericID uint64) ([]loanDomain.Funding, error) {
	var out []loanDomain.Funding
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND refunded_at IS NULL", loanNumericID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) SaveFunding(ctx context.Context, f *loanDomain.Funding) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *LoanRepository) CreateInstallments(ctx context.Context, items []loanDomain.Installment) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *LoanRepository) ListInstallments(ctx context.Context, loanNumericID uint64) ([]loanDomain.Installment, error) {
	var out []loanDomain.Installment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanNumericID).
		Order("seq ASC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) GetInstallmentForUpdate(ctx context.Context, loanNumericID uint64, seq int) (*loanDomain.Installment, error) {
	var out loanDomain.Installment
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ? AND seq = ?", loanNumericID, seq).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) SaveInstallment(ctx context.Context, it *loanDomain.Installment) error {
	return r.db.WithContext(ctx).Save(it).Error
}

func (r *LoanRepository) MarkOverdue(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Installment{}).
		Where("status = ? AND due_date < ?", loanDomain.InstallmentPending, cutoff).
		Update("status", loanDomain.InstallmentOverdue)
	return res.RowsAffected, res.Error
}

// ListWithOverdueInstallments is the derived "at risk" admin view; the loan
// status itself is untouched until an admin marks the loan defaulted.
func (r *LoanRepository) ListWithOverdueInstallments(ctx context.Context) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Model(&loanDomain.Installment{}).
			Select("DISTINCT loan_id").
			Where("status = ?", loanDomain.InstallmentOverdue)).
		Find(&out)
	return out, res.Error
}
