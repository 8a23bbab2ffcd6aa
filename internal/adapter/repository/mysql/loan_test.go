package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	domain "peerlend-core/internal/domain/loan"
	"peerlend-core/pkg/id"
)

// --- SQLite-friendly schema only for tests (no ENUM) ---

type loanSQLite struct {
	ID              uint64         `gorm:"primaryKey;column:id"`
	LoanID          string         `gorm:"size:32;column:loan_id"`
	BorrowerID      string         `gorm:"size:32;column:borrower_id"`
	Principal       int64          `gorm:"column:principal"`
	Rate            float64        `gorm:"column:rate"`
	TermMonths      int            `gorm:"column:term_months"`
	Purpose         string         `gorm:"column:purpose"`
	AmountFunded    int64          `gorm:"column:amount_funded"`
	Status          string         `gorm:"type:text;column:status"` // no enum
	RejectionReason string         `gorm:"column:rejection_reason"`
	StatusUpdatedAt time.Time      `gorm:"column:status_updated_at"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at"`
	DeletedBy       string         `gorm:"column:deleted_by"`
}

func (loanSQLite) TableName() string { return "loans" }

type installmentSQLite struct {
	ID        uint64     `gorm:"primaryKey;column:id"`
	LoanID    uint64     `gorm:"column:loan_id"`
	Seq       int        `gorm:"column:seq"`
	DueDate   time.Time  `gorm:"column:due_date"`
	Principal int64      `gorm:"column:principal"`
	Interest  int64      `gorm:"column:interest"`
	Total     int64      `gorm:"column:total"`
	Status    string     `gorm:"type:text;column:status"`
	PaidAt    *time.Time `gorm:"column:paid_at"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (installmentSQLite) TableName() string { return "installments" }

type fundingSQLite struct {
	ID         uint64     `gorm:"primaryKey;column:id"`
	FundingID  string     `gorm:"size:32;column:funding_id"`
	LoanID     uint64     `gorm:"column:loan_id"`
	LenderID   string     `gorm:"size:32;column:lender_id"`
	Amount     int64      `gorm:"column:amount"`
	RefundedAt *time.Time `gorm:"column:refunded_at"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
}

func (fundingSQLite) TableName() string { return "fundings" }

// openLoanTestDB migrates ONLY the sqlite-safe schema, not the domain model.
func openLoanTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&loanSQLite{}, &installmentSQLite{}, &fundingSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeLoan(loanID, borrowerID string, status domain.Status) *domain.Loan {
	return &domain.Loan{
		LoanID:          loanID,
		BorrowerID:      borrowerID,
		Principal:       2500000,
		Rate:            0.18,
		TermMonths:      12,
		Status:          status,
		StatusUpdatedAt: time.Now().UTC(),
	}
}

func TestLoanCreateAndGet(t *testing.T) {
	repo := NewLoanRepository(openLoanTestDB(t))
	ctx := context.Background()

	loanID := id.NewID32()
	borrower := id.NewID32()
	l := makeLoan(loanID, borrower, domain.StatusPending)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == 0 {
		t.Fatal("Create did not set auto-increment ID")
	}

	got, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.LoanID != loanID || got.BorrowerID != borrower || got.Principal != 2500000 {
		t.Errorf("unexpected loan: %+v", got)
	}
}

func TestLoanSaveUpdates(t *testing.T) {
	repo := NewLoanRepository(openLoanTestDB(t))
	ctx := context.Background()

	l := makeLoan(id.NewID32(), id.NewID32(), domain.StatusPending)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	l.Status = domain.StatusFunding
	l.AmountFunded = 100000
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, l.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.Status != domain.StatusFunding || got.AmountFunded != 100000 {
		t.Errorf("not updated: %+v", got)
	}
}

func TestLoanGet_NotFound(t *testing.T) {
	repo := NewLoanRepository(openLoanTestDB(t))
	_, err := repo.GetByLoanID(context.Background(), "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestGetOpenLoanByBorrowerID(t *testing.T) {
	db := openLoanTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	borrower := "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	now := time.Now().UTC()

	// terminal loan: must not match
	if err := db.Create(&loanSQLite{
		LoanID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", BorrowerID: borrower,
		Principal: 1000000, Status: "completed", StatusUpdatedAt: now.Add(-3 * time.Hour),
	}).Error; err != nil {
		t.Fatal(err)
	}
	// older open loan
	if err := db.Create(&loanSQLite{
		LoanID: "cccccccccccccccccccccccccccccccc", BorrowerID: borrower,
		Principal: 1500000, Status: "pending", StatusUpdatedAt: now.Add(-2 * time.Hour),
	}).Error; err != nil {
		t.Fatal(err)
	}
	// newest open loan: expected result
	wantID := "dddddddddddddddddddddddddddddddd"
	if err := db.Create(&loanSQLite{
		LoanID: wantID, BorrowerID: borrower,
		Principal: 2000000, Status: "funding", StatusUpdatedAt: now.Add(-1 * time.Hour),
	}).Error; err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetOpenLoanByBorrowerID(ctx, borrower)
	if err != nil {
		t.Fatalf("GetOpenLoanByBorrowerID: %v", err)
	}
	if got.LoanID != wantID {
		t.Fatalf("unexpected loan: %+v", got)
	}

	// borrower with only terminal loans
	if err := db.Create(&loanSQLite{
		LoanID: "ffffffffffffffffffffffffffffffff", BorrowerID: "11111111111111111111111111111111",
		Principal: 1000000, Status: "rejected", StatusUpdatedAt: now,
	}).Error; err != nil {
		t.Fatal(err)
	}
	if _, err := repo.GetOpenLoanByBorrowerID(ctx, "11111111111111111111111111111111"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListByStatus(t *testing.T) {
	db := openLoanTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	for i, s := range []string{"pending", "funding", "pending"} {
		if err := db.Create(&loanSQLite{
			LoanID: id.NewID32(), BorrowerID: id.NewID32(),
			Principal: 1000000, Status: s, StatusUpdatedAt: now.Add(time.Duration(i) * time.Minute),
		}).Error; err != nil {
			t.Fatal(err)
		}
	}

	items, err := repo.ListByStatus(ctx, domain.StatusPending)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d loans", len(items))
	}
	if items[0].StatusUpdatedAt.Before(items[1].StatusUpdatedAt) {
		t.Error("not ordered newest first")
	}
}

func TestFundings_ActiveFilter(t *testing.T) {
	db := openLoanTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	f1 := &domain.Funding{FundingID: id.NewID32(), LoanID: 7, LenderID: id.NewID32(), Amount: 500000}
	f2 := &domain.Funding{FundingID: id.NewID32(), LoanID: 7, LenderID: id.NewID32(), Amount: 300000}
	if err := repo.CreateFunding(ctx, f1); err != nil {
		t.Fatal(err)
	}
	if err := repo.CreateFunding(ctx, f2); err != nil {
		t.Fatal(err)
	}
	// unrelated loan
	if err := repo.CreateFunding(ctx, &domain.Funding{FundingID: id.NewID32(), LoanID: 8, LenderID: id.NewID32(), Amount: 100}); err != nil {
		t.Fatal(err)
	}

	active, err := repo.ListActiveFundings(ctx, 7)
	if err != nil {
		t.Fatalf("ListActiveFundings: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("got %d active fundings", len(active))
	}

	now := time.Now().UTC()
	f1.RefundedAt = &now
	if err := repo.SaveFunding(ctx, f1); err != nil {
		t.Fatalf("SaveFunding: %v", err)
	}

	active, err = repo.ListActiveFundings(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].FundingID != f2.FundingID {
		t.Fatalf("refunded row still active: %+v", active)
	}
}

func TestInstallments_CreateAndList(t *testing.T) {
	repo := NewLoanRepository(openLoanTestDB(t))
	ctx := context.Background()

	due := time.Now().UTC()
	items := []domain.Installment{
		{LoanID: 9, Seq: 2, DueDate: due.AddDate(0, 2, 0), Principal: 500, Interest: 50, Total: 550, Status: domain.InstallmentPending},
		{LoanID: 9, Seq: 1, DueDate: due.AddDate(0, 1, 0), Principal: 500, Interest: 50, Total: 550, Status: domain.InstallmentPending},
	}
	if err := repo.CreateInstallments(ctx, items); err != nil {
		t.Fatalf("CreateInstallments: %v", err)
	}
	if err := repo.CreateInstallments(ctx, nil); err != nil {
		t.Fatalf("empty CreateInstallments: %v", err)
	}

	got, err := repo.ListInstallments(ctx, 9)
	if err != nil {
		t.Fatalf("ListInstallments: %v", err)
	}
	if len(got) != 2 || got[0].Seq != 1 || got[1].Seq != 2 {
		t.Fatalf("not ordered by seq: %+v", got)
	}
}

func TestMarkOverdue(t *testing.T) {
	db := openLoanTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	// rows 1 and 4 are pending and past due; paid and future rows stay put
	seed := []installmentSQLite{
		{LoanID: 5, Seq: 1, DueDate: now.AddDate(0, 0, -10), Status: "pending"},
		{LoanID: 5, Seq: 2, DueDate: now.AddDate(0, 0, -5), Status: "paid"},
		{LoanID: 5, Seq: 3, DueDate: now.AddDate(0, 0, 5), Status: "pending"},
		{LoanID: 6, Seq: 1, DueDate: now.AddDate(0, 0, -1), Status: "pending"},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatal(err)
		}
	}
	if err := db.Create(&loanSQLite{ID: 5, LoanID: id.NewID32(), BorrowerID: id.NewID32(), Status: "ongoing", StatusUpdatedAt: now}).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&loanSQLite{ID: 6, LoanID: id.NewID32(), BorrowerID: id.NewID32(), Status: "ongoing", StatusUpdatedAt: now}).Error; err != nil {
		t.Fatal(err)
	}

	n, err := repo.MarkOverdue(ctx, now)
	if err != nil {
		t.Fatalf("MarkOverdue: %v", err)
	}
	if n != 2 {
		t.Fatalf("marked %d installments", n)
	}

	loans, err := repo.ListWithOverdueInstallments(ctx)
	if err != nil {
		t.Fatalf("ListWithOverdueInstallments: %v", err)
	}
	if len(loans) != 2 {
		t.Fatalf("got %d at-risk loans", len(loans))
	}

	// second sweep is a no-op
	n, err = repo.MarkOverdue(ctx, now)
	if err != nil || n != 0 {
		t.Fatalf("second sweep: n=%d err=%v", n, err)
	}
}
