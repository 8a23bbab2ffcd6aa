package loan

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domainKYC "peerlend-core/internal/domain/kyc"
	domain "peerlend-core/internal/domain/loan"
	domainNotif "peerlend-core/internal/domain/notification"
	"peerlend-core/internal/domain/uow"
	domainWallet "peerlend-core/internal/domain/wallet"
	"peerlend-core/pkg/id"
	"peerlend-core/pkg/money"
)

type Usecase struct {
	loans domain.Repository
	kycs  domainKYC.Repository
	uow   uow.UnitOfWork
}

func NewUsecase(loans domain.Repository, kycs domainKYC.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, kycs: kycs, uow: tx}
}

// notification titles per target status; UpdateStatus falls back to the
// generic "Loan Update" for anything not listed.
var statusTitles = map[domain.Status]string{
	domain.StatusFunding:   "Loan Approved",
	domain.StatusRejected:  "Loan Rejected",
	domain.StatusDisbursed: "Funds Disbursed",
	domain.StatusCompleted: "Loan Completed",
	domain.StatusDefaulted: "Loan Defaulted",
}

func notify(ctx context.Context, r uow.Repos, recipient, title, body, loanID string) error {
	return r.Notifications.Create(ctx, &domainNotif.Notification{
		RecipientID: recipient,
		Title:       title,
		Body:        body,
		LoanID:      loanID,
	})
}

// Create registers a borrower's loan request in status pending. The
// borrower needs an approved KYC submission and no other open loan.
func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if in.BorrowerID == "" || len(in.BorrowerID) != 32 || in.TermMonths <= 0 {
		return nil, errors.New("invalid input")
	}
	principal, err := money.FromDecimalPositive(in.Principal)
	if err != nil {
		return nil, err
	}
	if in.Rate < 0 {
		return nil, errors.New("invalid input")
	}

	if _, err := u.kycs.GetApprovedByOwnerID(ctx, in.BorrowerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainKYC.ErrNotApproved
		}
		return nil, err
	}

	_, err = u.loans.GetOpenLoanByBorrowerID(ctx, in.BorrowerID)
	switch {
	case err == nil:
		return nil, domain.ErrOpenLoanExists
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	l := &domain.Loan{
		LoanID:          id.NewID32(),
		BorrowerID:      in.BorrowerID,
		Principal:       principal,
		Rate:            in.Rate,
		TermMonths:      in.TermMonths,
		Purpose:         in.Purpose,
		Status:          domain.StatusPending,
		StatusUpdatedAt: time.Now().UTC(),
	}
	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

// Approve moves pending → funding and notifies the borrower, one tx.
func (u *Usecase) Approve(ctx context.Context, loanID string) (*LoanDTO, error) {
	return u.transition(ctx, loanID, domain.StatusFunding, "")
}

// Reject moves pending → rejected, recording the reason.
func (u *Usecase) Reject(ctx context.Context, loanID, reason string) (*LoanDTO, error) {
	if reason == "" {
		reason = "No reason provided"
	}
	return u.transition(ctx, loanID, domain.StatusRejected, reason)
}

// MarkDefaulted moves ongoing → defaulted (explicit admin action; overdue
// installments alone never flip the loan).
func (u *Usecase) MarkDefaulted(ctx context.Context, loanID string) (*LoanDTO, error) {
	return u.transition(ctx, loanID, domain.StatusDefaulted, "")
}

// UpdateStatus is the generic admin setter; same graph, status-specific
// notification with a generic fallback. Targets whose edge moves money or
// builds the schedule run through their dedicated operations so the escrow
// ledger stays consistent; completed is reachable through repayment only.
func (u *Usecase) UpdateStatus(ctx context.Context, loanID string, next domain.Status) (*LoanDTO, error) {
	if !domain.ValidStatus(next) {
		return nil, domain.ErrUnknownStatus
	}
	switch next {
	case domain.StatusPending:
		return u.CancelApproval(ctx, loanID)
	case domain.StatusDisbursed:
		return u.Disburse(ctx, loanID)
	case domain.StatusRejected:
		return u.Reject(ctx, loanID, "")
	case domain.StatusCompleted:
		return nil, domain.ErrInvalidTransition
	}
	return u.transition(ctx, loanID, next, "")
}

func (u *Usecase) transition(ctx context.Context, loanID string, next domain.Status, reason string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if !domain.CanTransition(l.Status, next) {
			return domain.ErrInvalidTransition
		}
		l.Status = next
		l.StatusUpdatedAt = time.Now().UTC()
		if next == domain.StatusRejected {
			l.RejectionReason = reason
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		title, ok := statusTitles[next]
		body := "Your loan " + l.LoanID + " is now " + string(next) + "."
		if !ok {
			title = "Loan Update"
		}
		if next == domain.StatusRejected {
			body = "Your loan was rejected: " + l.RejectionReason
		}
		// cancel-approval (funding → pending) is silent in the product
		if next == domain.StatusPending {
			dto = toDTO(l)
			return nil
		}
		if err := notify(ctx, r, l.BorrowerID, title, body, l.LoanID); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, normalize(err)
	}
	return dto, nil
}

// CancelApproval moves funding → pending and returns every active escrow
// contribution to its lender's wallet, all in one transaction.
func (u *Usecase) CancelApproval(ctx context.Context, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if !domain.CanTransition(l.Status, domain.StatusPending) {
			return domain.ErrInvalidTransition
		}
		fundings, err := r.Loans.ListActiveFundings(ctx, l.ID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		for i := range fundings {
			f := &fundings[i]
			w, err := r.Wallets.GetOrCreateForUpdate(ctx, f.LenderID)
			if err != nil {
				return err
			}
			w.Balance += f.Amount
			if err := r.Wallets.Save(ctx, w); err != nil {
				return err
			}
			if err := r.Wallets.CreateTransaction(ctx, &domainWallet.Transaction{
				OwnerID: f.LenderID,
				Type:    domainWallet.TxPayout,
				Amount:  f.Amount,
				Status:  domainWallet.TxCompleted,
				LoanID:  l.LoanID,
			}); err != nil {
				return err
			}
			f.RefundedAt = &now
			if err := r.Loans.SaveFunding(ctx, f); err != nil {
				return err
			}
		}
		l.Status = domain.StatusPending
		l.AmountFunded = 0
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, normalize(err)
	}
	return dto, nil
}

// Fund escrows a lender's contribution: wallet debit, funding row and the
// loan's funded amount move together. The lender needs approved KYC and
// may not be the borrower.
func (u *Usecase) Fund(ctx context.Context, in FundInput) (*LoanDTO, error) {
	amount, err := money.FromDecimalPositive(in.Amount)
	if err != nil {
		return nil, err
	}
	if _, err := u.kycs.GetApprovedByOwnerID(ctx, in.LenderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainKYC.ErrNotApproved
		}
		return nil, err
	}

	var dto *LoanDTO
	err = u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Status != domain.StatusFunding {
			return domain.ErrInvalidTransition
		}
		if l.BorrowerID == in.LenderID {
			return errors.New("borrower cannot fund own loan")
		}
		if l.AmountFunded+amount > l.Principal {
			return domain.ErrOverfunded
		}

		w, err := r.Wallets.GetOrCreateForUpdate(ctx, in.LenderID)
		if err != nil {
			return err
		}
		if w.Balance < amount {
			return domainWallet.ErrInsufficientBalance
		}
		w.Balance -= amount
		if err := r.Wallets.Save(ctx, w); err != nil {
			return err
		}
		if err := r.Wallets.CreateTransaction(ctx, &domainWallet.Transaction{
			OwnerID: in.LenderID,
			Type:    domainWallet.TxFunding,
			Amount:  amount,
			Status:  domainWallet.TxCompleted,
			LoanID:  l.LoanID,
		}); err != nil {
			return err
		}
		if err := r.Loans.CreateFunding(ctx, &domain.Funding{
			FundingID: id.NewID32(),
			LoanID:    l.ID,
			LenderID:  in.LenderID,
			Amount:    amount,
		}); err != nil {
			return err
		}
		l.AmountFunded += amount
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if l.FullyFunded() {
			if err := notify(ctx, r, l.BorrowerID, "Loan Fully Funded",
				"Your loan "+l.LoanID+" is fully funded and awaiting disbursement.", l.LoanID); err != nil {
				return err
			}
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, normalize(err)
	}
	return dto, nil
}

// Disburse moves funding → disbursed: credits the borrower's wallet with
// the escrowed principal and generates the repayment schedule.
func (u *Usecase) Disburse(ctx context.Context, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if !domain.CanTransition(l.Status, domain.StatusDisbursed) {
			return domain.ErrInvalidTransition
		}
		if !l.FullyFunded() {
			return domain.ErrNotFullyFunded
		}
		now := time.Now().UTC()

		w, err := r.Wallets.GetOrCreateForUpdate(ctx, l.BorrowerID)
		if err != nil {
			return err
		}
		w.Balance += l.Principal
		if err := r.Wallets.Save(ctx, w); err != nil {
			return err
		}
		if err := r.Wallets.CreateTransaction(ctx, &domainWallet.Transaction{
			OwnerID: l.BorrowerID,
			Type:    domainWallet.TxDisbursement,
			Amount:  l.Principal,
			Status:  domainWallet.TxCompleted,
			LoanID:  l.LoanID,
		}); err != nil {
			return err
		}

		schedule, err := BuildSchedule(l.ID, l.Principal, l.Rate, l.TermMonths, now)
		if err != nil {
			return err
		}
		if err := r.Loans.CreateInstallments(ctx, schedule); err != nil {
			return err
		}

		l.Status = domain.StatusDisbursed
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := notify(ctx, r, l.BorrowerID, "Funds Disbursed",
			"Your loan "+l.LoanID+" has been disbursed to your wallet.", l.LoanID); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, normalize(err)
	}
	return dto, nil
}

// Repay settles one installment from the borrower's wallet and credits the
// lenders pro-rata by funded share. The first repayment moves the loan to
// ongoing; the last one completes it.
func (u *Usecase) Repay(ctx context.Context, in RepayInput) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Status != domain.StatusDisbursed && l.Status != domain.StatusOngoing {
			return domain.ErrInvalidTransition
		}
		it, err := r.Loans.GetInstallmentForUpdate(ctx, l.ID, in.Seq)
		if err != nil {
			return err
		}
		if it.Status == domain.InstallmentPaid {
			return domain.ErrInstallmentPaid
		}
		now := time.Now().UTC()

		w, err := r.Wallets.GetOrCreateForUpdate(ctx, l.BorrowerID)
		if err != nil {
			return err
		}
		if w.Balance < it.Total {
			return domainWallet.ErrInsufficientBalance
		}
		w.Balance -= it.Total
		if err := r.Wallets.Save(ctx, w); err != nil {
			return err
		}
		if err := r.Wallets.CreateTransaction(ctx, &domainWallet.Transaction{
			OwnerID: l.BorrowerID,
			Type:    domainWallet.TxRepayment,
			Amount:  it.Total,
			Status:  domainWallet.TxCompleted,
			LoanID:  l.LoanID,
		}); err != nil {
			return err
		}

		fundings, err := r.Loans.ListActiveFundings(ctx, l.ID)
		if err != nil {
			return err
		}
		if err := creditLenders(ctx, r, l.LoanID, it.Total, fundings); err != nil {
			return err
		}

		it.Status = domain.InstallmentPaid
		it.PaidAt = &now
		if err := r.Loans.SaveInstallment(ctx, it); err != nil {
			return err
		}

		if l.Status == domain.StatusDisbursed {
			l.Status = domain.StatusOngoing
		}
		all, err := r.Loans.ListInstallments(ctx, l.ID)
		if err != nil {
			return err
		}
		done := true
		for i := range all {
			if all[i].Seq != it.Seq && all[i].Status != domain.InstallmentPaid {
				done = false
				break
			}
		}
		if done {
			l.Status = domain.StatusCompleted
			if err := notify(ctx, r, l.BorrowerID, "Loan Completed",
				"Your loan "+l.LoanID+" is fully repaid.", l.LoanID); err != nil {
				return err
			}
		}
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, normalize(err)
	}
	return dto, nil
}

// creditLenders splits an installment across the active fundings with the
// largest-remainder method, aggregating per lender first.
func creditLenders(ctx context.Context, r uow.Repos, loanID string, total money.Cents, fundings []domain.Funding) error {
	lenders := make([]string, 0, len(fundings))
	amounts := make([]money.Cents, 0, len(fundings))
	seen := make(map[string]int, len(fundings))
	for _, f := range fundings {
		if i, ok := seen[f.LenderID]; ok {
			amounts[i] += f.Amount
			continue
		}
		seen[f.LenderID] = len(lenders)
		lenders = append(lenders, f.LenderID)
		amounts = append(amounts, f.Amount)
	}
	shares := money.ProRata(total, amounts)
	for i, lender := range lenders {
		if shares[i] == 0 {
			continue
		}
		w, err := r.Wallets.GetOrCreateForUpdate(ctx, lender)
		if err != nil {
			return err
		}
		w.Balance += shares[i]
		if err := r.Wallets.Save(ctx, w); err != nil {
			return err
		}
		if err := r.Wallets.CreateTransaction(ctx, &domainWallet.Transaction{
			OwnerID: lender,
			Type:    domainWallet.TxRepayment,
			Amount:  shares[i],
			Status:  domainWallet.TxCompleted,
			LoanID:  loanID,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, normalize(err)
	}
	return toDTO(l), nil
}

func (u *Usecase) Schedule(ctx context.Context, loanID string) ([]InstallmentDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, normalize(err)
	}
	items, err := u.loans.ListInstallments(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make([]InstallmentDTO, 0, len(items))
	for i := range items {
		out = append(out, toInstallmentDTO(&items[i]))
	}
	return out, nil
}

func (u *Usecase) ListByStatus(ctx context.Context, s domain.Status) ([]LoanDTO, error) {
	if !domain.ValidStatus(s) {
		return nil, domain.ErrUnknownStatus
	}
	items, err := u.loans.ListByStatus(ctx, s)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(items))
	for i := range items {
		out = append(out, *toDTO(&items[i]))
	}
	return out, nil
}

// ListOverdue surfaces loans with at least one overdue installment.
func (u *Usecase) ListOverdue(ctx context.Context) ([]LoanDTO, error) {
	items, err := u.loans.ListWithOverdueInstallments(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(items))
	for i := range items {
		out = append(out, *toDTO(&items[i]))
	}
	return out, nil
}

func normalize(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
