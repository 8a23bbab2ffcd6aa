package paymethod

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "peerlend-core/internal/domain/paymethod"
	"peerlend-core/internal/domain/uow"
	"peerlend-core/internal/testutil/paymethodmock"
	"peerlend-core/internal/testutil/uowmock"
)

const ownerID = "ffffffffffffffffffffffffffffffff"

type fakeEncryptor struct{}

func (fakeEncryptor) Encrypt(plain string) (string, error) { return "enc:" + plain, nil }

func newUC(methods *paymethodmock.Repo) *Usecase {
	if methods.FindDuplicateFn == nil {
		methods.FindDuplicateFn = func(ctx context.Context, owner string, k domain.Kind, masked, holder string) (*domain.PaymentMethod, error) {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return NewUsecase(methods, uowmock.Pass(uow.Repos{PayMethods: methods}), fakeEncryptor{})
}

func cardInput() CreateInput {
	return CreateInput{
		OwnerID:    ownerID,
		Kind:       string(domain.KindCard),
		Label:      "visa",
		Number:     "4111111111111111",
		HolderName: "N Perera",
		Expiry:     "09/28",
	}
}

func TestCreate_Card(t *testing.T) {
	var created *domain.PaymentMethod
	methods := &paymethodmock.Repo{
		CreateFn: func(ctx context.Context, m *domain.PaymentMethod) error {
			created = m
			return nil
		},
	}
	uc := newUC(methods)

	dto, err := uc.Create(context.Background(), cardInput())
	require.NoError(t, err)
	assert.Equal(t, "****1111", dto.Masked)
	assert.True(t, dto.IsDefault, "first method of a kind becomes default")
	require.NotNil(t, created)
	assert.Equal(t, "enc:4111111111111111", created.Encrypted)
	assert.True(t, created.IsActive)
	assert.Len(t, created.MethodID, 32)
}

func TestCreate_CardCap(t *testing.T) {
	methods := &paymethodmock.Repo{
		CountActiveFn: func(ctx context.Context, owner string, k domain.Kind) (int64, error) {
			return int64(domain.MaxActiveCards), nil
		},
	}
	uc := newUC(methods)

	_, err := uc.Create(context.Background(), cardInput())
	require.ErrorIs(t, err, domain.ErrLimitReached)
}

func TestCreate_BankCap(t *testing.T) {
	methods := &paymethodmock.Repo{
		CountActiveFn: func(ctx context.Context, owner string, k domain.Kind) (int64, error) {
			return int64(domain.MaxActiveBankAccounts), nil
		},
	}
	uc := newUC(methods)

	_, err := uc.Create(context.Background(), CreateInput{
		OwnerID:    ownerID,
		Kind:       string(domain.KindBank),
		Label:      "Commercial Bank",
		Number:     "100200300",
		HolderName: "N Perera",
	})
	require.ErrorIs(t, err, domain.ErrLimitReached)
}

func TestCreate_Duplicate(t *testing.T) {
	methods := &paymethodmock.Repo{
		FindDuplicateFn: func(ctx context.Context, owner string, k domain.Kind, masked, holder string) (*domain.PaymentMethod, error) {
			return &domain.PaymentMethod{MethodID: "existing"}, nil
		},
	}
	uc := newUC(methods)

	_, err := uc.Create(context.Background(), cardInput())
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_Validation(t *testing.T) {
	uc := newUC(&paymethodmock.Repo{})
	cases := map[string]func(*CreateInput){
		"short card number": func(in *CreateInput) { in.Number = "4111" },
		"letters in number": func(in *CreateInput) { in.Number = "4111x11111111111" },
		"bad expiry":        func(in *CreateInput) { in.Expiry = "13/28" },
		"missing holder":    func(in *CreateInput) { in.HolderName = "  " },
		"missing label":     func(in *CreateInput) { in.Label = "" },
		"bad owner id":      func(in *CreateInput) { in.OwnerID = "short" },
	}
	for name, mutate := range cases {
		in := cardInput()
		mutate(&in)
		_, err := uc.Create(context.Background(), in)
		assert.Error(t, err, name)
	}

	_, err := uc.Create(context.Background(), CreateInput{
		OwnerID: ownerID, Kind: "crypto", Label: "x", Number: "123456", HolderName: "N",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidKind)
}

func TestCreate_ExplicitDefaultClearsOthers(t *testing.T) {
	cleared := false
	methods := &paymethodmock.Repo{
		CountActiveFn: func(ctx context.Context, owner string, k domain.Kind) (int64, error) {
			return 1, nil
		},
		ClearDefaultsFn: func(ctx context.Context, owner string, k domain.Kind) error {
			cleared = true
			return nil
		},
	}
	uc := newUC(methods)

	in := cardInput()
	in.IsDefault = true
	dto, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, cleared)
	assert.True(t, dto.IsDefault)
}

func TestSetDefault_FlipsExactlyOnePair(t *testing.T) {
	current := &domain.PaymentMethod{MethodID: "m2", OwnerID: ownerID, Kind: domain.KindCard, IsActive: true}
	cleared := false
	var saved *domain.PaymentMethod
	methods := &paymethodmock.Repo{
		GetByMethodIDForUpdateFn: func(ctx context.Context, methodID string) (*domain.PaymentMethod, error) {
			return current, nil
		},
		ClearDefaultsFn: func(ctx context.Context, owner string, k domain.Kind) error {
			cleared = true
			return nil
		},
		SaveFn: func(ctx context.Context, m *domain.PaymentMethod) error {
			saved = m
			return nil
		},
	}
	uc := newUC(methods)

	require.NoError(t, uc.SetDefault(context.Background(), "m2", ownerID))
	assert.True(t, cleared)
	require.NotNil(t, saved)
	assert.True(t, saved.IsDefault)
}

func TestSetDefault_AlreadyDefaultIsNoop(t *testing.T) {
	methods := &paymethodmock.Repo{
		GetByMethodIDForUpdateFn: func(ctx context.Context, methodID string) (*domain.PaymentMethod, error) {
			return &domain.PaymentMethod{MethodID: "m1", OwnerID: ownerID, Kind: domain.KindCard, IsActive: true, IsDefault: true}, nil
		},
		ClearDefaultsFn: func(ctx context.Context, owner string, k domain.Kind) error {
			t.Fatal("ClearDefaults must not run")
			return nil
		},
	}
	uc := newUC(methods)
	require.NoError(t, uc.SetDefault(context.Background(), "m1", ownerID))
}

func TestSetDefault_WrongOwner(t *testing.T) {
	methods := &paymethodmock.Repo{
		GetByMethodIDForUpdateFn: func(ctx context.Context, methodID string) (*domain.PaymentMethod, error) {
			return &domain.PaymentMethod{MethodID: "m1", OwnerID: "someone-else", Kind: domain.KindCard, IsActive: true}, nil
		},
	}
	uc := newUC(methods)
	require.ErrorIs(t, uc.SetDefault(context.Background(), "m1", ownerID), domain.ErrUnauthorized)
}

func TestDelete_PromotesNewestRemaining(t *testing.T) {
	target := &domain.PaymentMethod{MethodID: "m1", OwnerID: ownerID, Kind: domain.KindCard, IsActive: true, IsDefault: true}
	var saves []*domain.PaymentMethod
	methods := &paymethodmock.Repo{
		GetByMethodIDForUpdateFn: func(ctx context.Context, methodID string) (*domain.PaymentMethod, error) {
			return target, nil
		},
		ListActiveByOwnerKindFn: func(ctx context.Context, owner string, k domain.Kind) ([]domain.PaymentMethod, error) {
			return []domain.PaymentMethod{{MethodID: "m2", OwnerID: ownerID, Kind: domain.KindCard, IsActive: true}}, nil
		},
		SaveFn: func(ctx context.Context, m *domain.PaymentMethod) error {
			saves = append(saves, m)
			return nil
		},
	}
	uc := newUC(methods)

	require.NoError(t, uc.Delete(context.Background(), "m1", ownerID))
	require.Len(t, saves, 2)
	assert.False(t, saves[0].IsActive)
	assert.False(t, saves[0].IsDefault)
	assert.Equal(t, "m2", saves[1].MethodID)
	assert.True(t, saves[1].IsDefault)
}

func TestDelete_NonDefaultLeavesDefaultAlone(t *testing.T) {
	target := &domain.PaymentMethod{MethodID: "m3", OwnerID: ownerID, Kind: domain.KindCard, IsActive: true}
	methods := &paymethodmock.Repo{
		GetByMethodIDForUpdateFn: func(ctx context.Context, methodID string) (*domain.PaymentMethod, error) {
			return target, nil
		},
		ListActiveByOwnerKindFn: func(ctx context.Context, owner string, k domain.Kind) ([]domain.PaymentMethod, error) {
			t.Fatal("no promotion lookup for non-default delete")
			return nil, nil
		},
	}
	uc := newUC(methods)
	require.NoError(t, uc.Delete(context.Background(), "m3", ownerID))
	assert.False(t, target.IsActive)
}

func TestDelete_NotFound(t *testing.T) {
	methods := &paymethodmock.Repo{
		GetByMethodIDForUpdateFn: func(ctx context.Context, methodID string) (*domain.PaymentMethod, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	uc := newUC(methods)
	require.ErrorIs(t, uc.Delete(context.Background(), "missing", ownerID), domain.ErrNotFound)
}

func TestUpdate_PatchesFields(t *testing.T) {
	current := &domain.PaymentMethod{
		MethodID: "m1", OwnerID: ownerID, Kind: domain.KindCard,
		Label: "visa", HolderName: "N Perera", Expiry: "09/28", IsActive: true,
	}
	methods := &paymethodmock.Repo{
		GetByMethodIDForUpdateFn: func(ctx context.Context, methodID string) (*domain.PaymentMethod, error) {
			return current, nil
		},
	}
	uc := newUC(methods)

	label := "visa gold"
	expiry := "01/30"
	dto, err := uc.Update(context.Background(), "m1", ownerID, UpdateInput{Label: &label, Expiry: &expiry})
	require.NoError(t, err)
	assert.Equal(t, "visa gold", dto.Label)
	assert.Equal(t, "01/30", dto.Expiry)
	assert.Equal(t, "N Perera", dto.HolderName)
}

func TestUpdate_ExpiryOnBankRejected(t *testing.T) {
	methods := &paymethodmock.Repo{
		GetByMethodIDForUpdateFn: func(ctx context.Context, methodID string) (*domain.PaymentMethod, error) {
			return &domain.PaymentMethod{MethodID: "m1", OwnerID: ownerID, Kind: domain.KindBank, IsActive: true}, nil
		},
	}
	uc := newUC(methods)

	expiry := "01/30"
	_, err := uc.Update(context.Background(), "m1", ownerID, UpdateInput{Expiry: &expiry})
	require.Error(t, err)
}

func TestList(t *testing.T) {
	methods := &paymethodmock.Repo{
		ListActiveByOwnerFn: func(ctx context.Context, owner string) ([]domain.PaymentMethod, error) {
			return []domain.PaymentMethod{
				{MethodID: "m1", Kind: domain.KindCard, Masked: "****1111"},
				{MethodID: "m2", Kind: domain.KindBank, Masked: "****0300"},
			}, nil
		},
	}
	uc := newUC(methods)

	items, err := uc.List(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "****1111", items[0].Masked)
}
