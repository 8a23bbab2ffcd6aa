package kyc

import "context"

type Repository interface {
	Create(ctx context.Context, s *Submission) error
	GetBySubmissionID(ctx context.Context, submissionID string) (*Submission, error)
	GetBySubmissionIDForUpdate(ctx context.Context, submissionID string) (*Submission, error)
	GetPendingByOwnerID(ctx context.Context, ownerID string) (*Submission, error)
	GetApprovedByOwnerID(ctx context.Context, ownerID string) (*Submission, error)
	ListPending(ctx context.Context) ([]Submission, error)
	Save(ctx context.Context, s *Submission) error
}
