package kycmock

import (
	"context"
	"errors"

	domain "peerlend-core/internal/domain/kyc"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("kycmock: method not implemented")

type Repo struct {
	CreateFn                     func(ctx context.Context, s *domain.Submission) error
	GetBySubmissionIDFn          func(ctx context.Context, submissionID string) (*domain.Submission, error)
	GetBySubmissionIDForUpdateFn func(ctx context.Context, submissionID string) (*domain.Submission, error)
	GetPendingByOwnerIDFn        func(ctx context.Context, ownerID string) (*domain.Submission, error)
	GetApprovedByOwnerIDFn       func(ctx context.Context, ownerID string) (*domain.Submission, error)
	ListPendingFn                func(ctx context.Context) ([]domain.Submission, error)
	SaveFn                       func(ctx context.Context, s *domain.Submission) error
}

func (m *Repo) Create(ctx context.Context, s *domain.Submission) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *Repo) GetBySubmissionID(ctx context.Context, submissionID string) (*domain.Submission, error) {
	if m.GetBySubmissionIDFn != nil {
		return m.GetBySubmissionIDFn(ctx, submissionID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetBySubmissionIDForUpdate(ctx context.Context, submissionID string) (*domain.Submission, error) {
	if m.GetBySubmissionIDForUpdateFn != nil {
		return m.GetBySubmissionIDForUpdateFn(ctx, submissionID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetPendingByOwnerID(ctx context.Context, ownerID string) (*domain.Submission, error) {
	if m.GetPendingByOwnerIDFn != nil {
		return m.GetPendingByOwnerIDFn(ctx, ownerID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetApprovedByOwnerID(ctx context.Context, ownerID string) (*domain.Submission, error) {
	if m.GetApprovedByOwnerIDFn != nil {
		return m.GetApprovedByOwnerIDFn(ctx, ownerID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListPending(ctx context.Context) ([]domain.Submission, error) {
	if m.ListPendingFn != nil {
		return m.ListPendingFn(ctx)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, s *domain.Submission) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, s)
	}
	return nil
}
