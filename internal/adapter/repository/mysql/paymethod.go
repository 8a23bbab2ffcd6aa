package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	pmDomain "peerlend-core/internal/domain/paymethod"
)

type PayMethodRepository struct{ db *gorm.DB }

func NewPayMethodRepository(db *gorm.DB) *PayMethodRepository {
	return &PayMethodRepository{db: db}
}

func (r *PayMethodRepository) Create(ctx context.Context, m *pmDomain.PaymentMethod) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PayMethodRepository) GetByMethodID(ctx context.Context, methodID string) (*pmDomain.PaymentMethod, error) {
	var out pmDomain.PaymentMethod
	res := r.db.WithContext(ctx).Where("method_id = ?", methodID).First(&out)
	return &out, res.Error
}

func (r *PayMethodRepository) GetByMethodIDForUpdate(ctx context.Context, methodID string) (*pmDomain.PaymentMethod, error) {
	var out pmDomain.PaymentMethod
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("method_id = ?", methodID).
		First(&out)
	return &out, res.Error
}

func (r *PayMethodRepository) ListActiveByOwner(ctx context.Context, ownerID string) ([]pmDomain.PaymentMethod, error) {
	var out []pmDomain.PaymentMethod
	res := r.db.WithContext(ctx).
		Where("owner_id = ? AND is_active = ?", ownerID, true).
		Order("id DESC").
		Find(&out)
	return out, res.Error
}

func (r *PayMethodRepository) ListActiveByOwnerKind(ctx context.Context, ownerID string, k pmDomain.Kind) ([]pmDomain.PaymentMethod, error) {
	var out []pmDomain.PaymentMethod
	res := r.db.WithContext(ctx).
		Where("owner_id = ? AND kind = ? AND is_active = ?", ownerID, k, true).
		Order("id DESC").
		Find(&out)
	return out, res.Error
}

func (r *PayMethodRepository) CountActive(ctx context.Context, ownerID string, k pmDomain.Kind) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&pmDomain.PaymentMethod{}).
		Where("owner_id = ? AND kind = ? AND is_active = ?", ownerID, k, true).
		Count(&n)
	return n, res.Error
}

func (r *PayMethodRepository) FindDuplicate(ctx context.Context, ownerID string, k pmDomain.Kind, masked, holder string) (*pmDomain.PaymentMethod, error) {
	var out pmDomain.PaymentMethod
	res := r.db.WithContext(ctx).
		Where("owner_id = ? AND kind = ? AND masked = ? AND holder_name = ? AND is_active = ?",
			ownerID, k, masked, holder, true).
		First(&out)
	return &out, res.Error
}

func (r *PayMethodRepository) GetDefault(ctx context.Context, ownerID string, k pmDomain.Kind) (*pmDomain.PaymentMethod, error) {
	var out pmDomain.PaymentMethod
	res := r.db.WithContext(ctx).
		Where("owner_id = ? AND kind = ? AND is_active = ? AND is_default = ?",
			ownerID, k, true, true).
		First(&out)
	return &out, res.Error
}

// ClearDefaults is a single UPDATE so there is never a window with two
// defaults inside the transaction.
func (r *PayMethodRepository) ClearDefaults(ctx context.Context, ownerID string, k pmDomain.Kind) error {
	return r.db.WithContext(ctx).
		Model(&pmDomain.PaymentMethod{}).
		Where("owner_id = ? AND kind = ? AND is_active = ? AND is_default = ?",
			ownerID, k, true, true).
		Update("is_default", false).Error
}

func (r *PayMethodRepository) Save(ctx context.Context, m *pmDomain.PaymentMethod) error {
	return r.db.WithContext(ctx).Save(m).Error
}
