package paymethod

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "peerlend-core/internal/domain/paymethod"
	"peerlend-core/internal/domain/uow"
	"peerlend-core/pkg/id"
)

// Encryptor seals raw card/account numbers before storage.
type Encryptor interface {
	Encrypt(plain string) (string, error)
}

type Usecase struct {
	methods domain.Repository
	uow     uow.UnitOfWork
	enc     Encryptor
}

func NewUsecase(methods domain.Repository, tx uow.UnitOfWork, enc Encryptor) *Usecase {
	return &Usecase{methods: methods, uow: tx, enc: enc}
}

type CreateInput struct {
	OwnerID    string `json:"owner_id"`
	Kind       string `json:"kind"`
	Label      string `json:"label"` // card brand or bank name
	Number     string `json:"number"`
	HolderName string `json:"holder_name"`
	Expiry     string `json:"expiry,omitempty"`
	IsDefault  bool   `json:"is_default"`
}

type UpdateInput struct {
	Label      *string `json:"label,omitempty"`
	HolderName *string `json:"holder_name,omitempty"`
	Expiry     *string `json:"expiry,omitempty"`
	IsDefault  *bool   `json:"is_default,omitempty"`
}

type MethodDTO struct {
	MethodID   string    `json:"method_id"`
	OwnerID    string    `json:"owner_id"`
	Kind       string    `json:"kind"`
	Label      string    `json:"label"`
	Masked     string    `json:"masked"`
	HolderName string    `json:"holder_name"`
	Expiry     string    `json:"expiry,omitempty"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
}

var (
	reCardNumber = regexp.MustCompile(`^\d{13,19}$`)
	reBankAcct   = regexp.MustCompile(`^\d{6,18}$`)
	reExpiry     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
)

func toDTO(m *domain.PaymentMethod) *MethodDTO {
	return &MethodDTO{
		MethodID:   m.MethodID,
		OwnerID:    m.OwnerID,
		Kind:       string(m.Kind),
		Label:      m.Label,
		Masked:     m.Masked,
		HolderName: m.HolderName,
		Expiry:     m.Expiry,
		IsDefault:  m.IsDefault,
		CreatedAt:  m.CreatedAt,
	}
}

func validateCreate(in CreateInput) (domain.Kind, error) {
	k := domain.Kind(in.Kind)
	switch k {
	case domain.KindCard:
		if !reCardNumber.MatchString(in.Number) {
			return k, errors.New("card number must be 13-19 digits")
		}
		if !reExpiry.MatchString(in.Expiry) {
			return k, errors.New("expiry must be MM/YY")
		}
	case domain.KindBank:
		if !reBankAcct.MatchString(in.Number) {
			return k, errors.New("account number must be 6-18 digits")
		}
	default:
		return k, domain.ErrInvalidKind
	}
	if strings.TrimSpace(in.HolderName) == "" {
		return k, errors.New("holder name is required")
	}
	if strings.TrimSpace(in.Label) == "" {
		return k, errors.New("label is required")
	}
	if in.OwnerID == "" || len(in.OwnerID) != 32 {
		return k, errors.New("invalid owner id")
	}
	return k, nil
}

func mask(number string) string {
	if len(number) <= 4 {
		return number
	}
	return "****" + number[len(number)-4:]
}

// Create validates, enforces the per-kind active cap and the duplicate
// rule, encrypts the raw number and inserts, clearing other defaults
// first when the new method is (or becomes) the default.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*MethodDTO, error) {
	k, err := validateCreate(in)
	if err != nil {
		return nil, err
	}
	encrypted, err := u.enc.Encrypt(in.Number)
	if err != nil {
		return nil, err
	}
	masked := mask(in.Number)

	var dto *MethodDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		n, err := r.PayMethods.CountActive(ctx, in.OwnerID, k)
		if err != nil {
			return err
		}
		if n >= int64(domain.CapFor(k)) {
			return domain.ErrLimitReached
		}
		_, err = r.PayMethods.FindDuplicate(ctx, in.OwnerID, k, masked, in.HolderName)
		switch {
		case err == nil:
			return domain.ErrDuplicate
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		// first active method of a kind becomes the default implicitly
		makeDefault := in.IsDefault || n == 0
		if makeDefault {
			if err := r.PayMethods.ClearDefaults(ctx, in.OwnerID, k); err != nil {
				return err
			}
		}
		m := &domain.PaymentMethod{
			MethodID:   id.NewID32(),
			OwnerID:    in.OwnerID,
			Kind:       k,
			Label:      in.Label,
			Masked:     masked,
			Encrypted:  encrypted,
			HolderName: in.HolderName,
			Expiry:     in.Expiry,
			IsDefault:  makeDefault,
			IsActive:   true,
		}
		if err := r.PayMethods.Create(ctx, m); err != nil {
			return err
		}
		dto = toDTO(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Update patches mutable fields; setting is_default runs the same
// clear-then-set sequence as SetDefault.
func (u *Usecase) Update(ctx context.Context, methodID, ownerID string, in UpdateInput) (*MethodDTO, error) {
	var dto *MethodDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		m, err := r.PayMethods.GetByMethodIDForUpdate(ctx, methodID)
		if err != nil {
			return normalize(err)
		}
		if m.OwnerID != ownerID {
			return domain.ErrUnauthorized
		}
		if !m.IsActive {
			return domain.ErrNotFound
		}
		if in.Label != nil {
			if strings.TrimSpace(*in.Label) == "" {
				return errors.New("label is required")
			}
			m.Label = *in.Label
		}
		if in.HolderName != nil {
			if strings.TrimSpace(*in.HolderName) == "" {
				return errors.New("holder name is required")
			}
			m.HolderName = *in.HolderName
		}
		if in.Expiry != nil {
			if m.Kind != domain.KindCard {
				return errors.New("expiry applies to cards only")
			}
			if !reExpiry.MatchString(*in.Expiry) {
				return errors.New("expiry must be MM/YY")
			}
			m.Expiry = *in.Expiry
		}
		if in.IsDefault != nil && *in.IsDefault && !m.IsDefault {
			if err := r.PayMethods.ClearDefaults(ctx, m.OwnerID, m.Kind); err != nil {
				return err
			}
			m.IsDefault = true
		}
		if err := r.PayMethods.Save(ctx, m); err != nil {
			return err
		}
		dto = toDTO(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// SetDefault makes methodID the single default of its (owner, kind).
func (u *Usecase) SetDefault(ctx context.Context, methodID, ownerID string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		m, err := r.PayMethods.GetByMethodIDForUpdate(ctx, methodID)
		if err != nil {
			return normalize(err)
		}
		if m.OwnerID != ownerID {
			return domain.ErrUnauthorized
		}
		if !m.IsActive {
			return domain.ErrNotFound
		}
		if m.IsDefault {
			return nil
		}
		if err := r.PayMethods.ClearDefaults(ctx, m.OwnerID, m.Kind); err != nil {
			return err
		}
		m.IsDefault = true
		return r.PayMethods.Save(ctx, m)
	})
}

// Delete soft-deletes; when the default goes away the newest remaining
// active method of the kind is promoted, so withdraw/deposit flows keep a
// usable default whenever one exists.
func (u *Usecase) Delete(ctx context.Context, methodID, ownerID string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		m, err := r.PayMethods.GetByMethodIDForUpdate(ctx, methodID)
		if err != nil {
			return normalize(err)
		}
		if m.OwnerID != ownerID {
			return domain.ErrUnauthorized
		}
		if !m.IsActive {
			return domain.ErrNotFound
		}
		wasDefault := m.IsDefault
		m.IsActive = false
		m.IsDefault = false
		if err := r.PayMethods.Save(ctx, m); err != nil {
			return err
		}
		if !wasDefault {
			return nil
		}
		rest, err := r.PayMethods.ListActiveByOwnerKind(ctx, m.OwnerID, m.Kind)
		if err != nil {
			return err
		}
		if len(rest) == 0 {
			return nil // explicit no-default state
		}
		next := &rest[0] // newest first
		next.IsDefault = true
		return r.PayMethods.Save(ctx, next)
	})
}

func (u *Usecase) List(ctx context.Context, ownerID string) ([]MethodDTO, error) {
	items, err := u.methods.ListActiveByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]MethodDTO, 0, len(items))
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
