package kyc

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "peerlend-core/internal/domain/kyc"
	domainNotif "peerlend-core/internal/domain/notification"
	"peerlend-core/internal/domain/uow"
	"peerlend-core/pkg/id"
)

type Usecase struct {
	kycs domain.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(kycs domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{kycs: kycs, uow: tx}
}

type SubmitInput struct {
	OwnerID     string `json:"owner_id"`
	FullName    string `json:"full_name"`
	NIC         string `json:"nic"`
	Address     string `json:"address"`
	Occupation  string `json:"occupation"`
	Phone       string `json:"phone"`
	DocumentURL string `json:"document_url"`
}

type SubmissionDTO struct {
	SubmissionID string     `json:"submission_id"`
	OwnerID      string     `json:"owner_id"`
	FullName     string     `json:"full_name"`
	NIC          string     `json:"nic"`
	Status       string     `json:"status"`
	ReviewNote   string     `json:"review_note,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toDTO(s *domain.Submission) *SubmissionDTO {
	return &SubmissionDTO{
		SubmissionID: s.SubmissionID,
		OwnerID:      s.OwnerID,
		FullName:     s.FullName,
		NIC:          s.NIC,
		Status:       string(s.Status),
		ReviewNote:   s.ReviewNote,
		ReviewedAt:   s.ReviewedAt,
		CreatedAt:    s.CreatedAt,
	}
}

// Submit opens a pending submission; one open submission per owner.
// Field/format validation happens at the HTTP layer (nic tag etc.), this
// guards the business rule only.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*SubmissionDTO, error) {
	if in.OwnerID == "" || len(in.OwnerID) != 32 {
		return nil, errors.New("invalid owner id")
	}
	_, err := u.kycs.GetPendingByOwnerID(ctx, in.OwnerID)
	switch {
	case err == nil:
		return nil, domain.ErrOpenSubmission
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	s := &domain.Submission{
		SubmissionID: id.NewID32(),
		OwnerID:      in.OwnerID,
		FullName:     in.FullName,
		NIC:          in.NIC,
		Address:      in.Address,
		Occupation:   in.Occupation,
		Phone:        in.Phone,
		DocumentURL:  in.DocumentURL,
		Status:       domain.StatusPending,
	}
	if err := u.kycs.Create(ctx, s); err != nil {
		return nil, err
	}
	return toDTO(s), nil
}

// Approve moves pending → approved and notifies the owner; the submission
// drops out of the pending queue by virtue of the status filter.
func (u *Usecase) Approve(ctx context.Context, submissionID string) (*SubmissionDTO, error) {
	return u.review(ctx, submissionID, domain.StatusApproved, "")
}

// Reject moves pending → rejected with an optional note. No re-submission
// transition here; a rejected owner submits a fresh record.
func (u *Usecase) Reject(ctx context.Context, submissionID, note string) (*SubmissionDTO, error) {
	return u.review(ctx, submissionID, domain.StatusRejected, note)
}

func (u *Usecase) review(ctx context.Context, submissionID string, next domain.Status, note string) (*SubmissionDTO, error) {
	var dto *SubmissionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.KYC.GetBySubmissionIDForUpdate(ctx, submissionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if s.Status != domain.StatusPending {
			return domain.ErrNotPending
		}
		now := time.Now().UTC()
		s.Status = next
		s.ReviewNote = note
		s.ReviewedAt = &now
		if err := r.KYC.Save(ctx, s); err != nil {
			return err
		}
		title, body := "KYC Approved", "Your identity verification was approved. You can now request and fund loans."
		if next == domain.StatusRejected {
			title = "KYC Rejected"
			body = "Your identity verification was rejected."
			if note != "" {
				body += " Reason: " + note
			}
		}
		if err := r.Notifications.Create(ctx, &domainNotif.Notification{
			RecipientID: s.OwnerID,
			Title:       title,
			Body:        body,
		}); err != nil {
			return err
		}
		dto = toDTO(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Pending is the admin review queue.
func (u *Usecase) Pending(ctx context.Context) ([]SubmissionDTO, error) {
	items, err := u.kycs.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SubmissionDTO, 0, len(items))
	for i := range items {
		out = append(out, *toDTO(&items[i]))
	}
	return out, nil
}

// StatusFor reports the owner's effective KYC standing: approved wins over
// a pending submission; ErrNotApproved when the owner has neither.
func (u *Usecase) StatusFor(ctx context.Context, ownerID string) (domain.Status, error) {
	if _, err := u.kycs.GetApprovedByOwnerID(ctx, ownerID); err == nil {
		return domain.StatusApproved, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	if _, err := u.kycs.GetPendingByOwnerID(ctx, ownerID); err == nil {
		return domain.StatusPending, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	return "", domain.ErrNotApproved
}
