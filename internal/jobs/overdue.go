package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"peerlend-core/internal/domain/loan"
)

// OverdueSweeper flips pending installments past their due date to
// overdue. It never touches the loan status; "defaulted" stays an explicit
// admin decision informed by the overdue view.
type OverdueSweeper struct {
	loans loan.Repository
}

func NewOverdueSweeper(loans loan.Repository) *OverdueSweeper {
	return &OverdueSweeper{loans: loans}
}

func (s *OverdueSweeper) Run(ctx context.Context) error {
	n, err := s.loans.MarkOverdue(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("overdue sweep: marked %d installments", n)
	}
	return nil
}

// Schedule registers the daily sweep on the given cron runner.
func (s *OverdueSweeper) Schedule(c *cron.Cron) (cron.EntryID, error) {
	return c.AddFunc("@daily", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := s.Run(ctx); err != nil {
			log.Printf("overdue sweep failed: %v", err)
		}
	})
}
