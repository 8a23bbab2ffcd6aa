package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	kycDomain "peerlend-core/internal/domain/kyc"
)

type KYCRepository struct{ db *gorm.DB }

func NewKYCRepository(db *gorm.DB) *KYCRepository { return &KYCRepository{db: db} }

func (r *KYCRepository) Create(ctx context.Context, s *kycDomain.Submission) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *KYCRepository) GetBySubmissionID(ctx context.Context, submissionID string) (*kycDomain.Submission, error) {
	var out kycDomain.Submission
	res := r.db.WithContext(ctx).Where("submission_id = ?", submissionID).First(&out)
	return &out, res.Error
}

func (r *KYCRepository) GetBySubmissionIDForUpdate(ctx context.Context, submissionID string) (*kycDomain.Submission, error) {
	var out kycDomain.Submission
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("submission_id = ?", submissionID).
		First(&out)
	return &out, res.Error
}

func (r *KYCRepository) GetPendingByOwnerID(ctx context.Context, ownerID string) (*kycDomain.Submission, error) {
	var out kycDomain.Submission
	res := r.db.WithContext(ctx).
		Where("owner_id = ? AND status = ?", ownerID, kycDomain.StatusPending).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

func (r *KYCRepository) GetApprovedByOwnerID(ctx context.Context, ownerID string) (*kycDomain.Submission, error) {
	var out kycDomain.Submission
	res := r.db.WithContext(ctx).
		Where("owner_id = ? AND status = ?", ownerID, kycDomain.StatusApproved).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

// ListPending is the review queue, oldest first.
func (r *KYCRepository) ListPending(ctx context.Context) ([]kycDomain.Submission, error) {
	var out []kycDomain.Submission
	res := r.db.WithContext(ctx).
		Where("status = ?", kycDomain.StatusPending).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *KYCRepository) Save(ctx context.Context, s *kycDomain.Submission) error {
	return r.db.WithContext(ctx).Save(s).Error
}
