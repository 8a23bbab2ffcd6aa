package wallet

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domainPM "peerlend-core/internal/domain/paymethod"
	"peerlend-core/internal/domain/uow"
	domain "peerlend-core/internal/domain/wallet"
	"peerlend-core/internal/testutil/paymethodmock"
	"peerlend-core/internal/testutil/uowmock"
	"peerlend-core/internal/testutil/walletmock"
	"peerlend-core/pkg/money"
)

const ownerID = "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"

func newWalletUC(wallets *walletmock.InMemory, methods *paymethodmock.Repo) *Usecase {
	repos := uow.Repos{Wallets: wallets, PayMethods: methods}
	return NewUsecase(wallets, uowmock.Pass(repos))
}

func bankMethod() *domainPM.PaymentMethod {
	return &domainPM.PaymentMethod{
		MethodID: "m1",
		OwnerID:  ownerID,
		Kind:     domainPM.KindBank,
		IsActive: true,
	}
}

func TestAddFunds(t *testing.T) {
	wallets := walletmock.NewInMemory()
	uc := newWalletUC(wallets, &paymethodmock.Repo{})

	dto, err := uc.AddFunds(context.Background(), ownerID, decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.Equal(t, "1000.00", dto.Balance)

	dto, err = uc.AddFunds(context.Background(), ownerID, decimal.RequireFromString("0.50"))
	require.NoError(t, err)
	assert.Equal(t, "1000.50", dto.Balance)

	require.Len(t, wallets.Txs, 2)
	assert.Equal(t, domain.TxTopup, wallets.Txs[0].Type)
	assert.Equal(t, domain.TxCompleted, wallets.Txs[0].Status)
}

func TestAddFunds_RejectsBadAmounts(t *testing.T) {
	uc := newWalletUC(walletmock.NewInMemory(), &paymethodmock.Repo{})
	for _, s := range []string{"0", "-5", "0.001"} {
		_, err := uc.AddFunds(context.Background(), ownerID, decimal.RequireFromString(s))
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, "amount %s", s)
	}
}

func TestWithdrawFunds_DefaultBankMethod(t *testing.T) {
	wallets := walletmock.NewInMemory()
	wallets.Wallets[ownerID] = &domain.Wallet{OwnerID: ownerID, Balance: 100000}
	methods := &paymethodmock.Repo{
		GetDefaultFn: func(ctx context.Context, owner string, k domainPM.Kind) (*domainPM.PaymentMethod, error) {
			require.Equal(t, domainPM.KindBank, k)
			return bankMethod(), nil
		},
	}
	uc := newWalletUC(wallets, methods)

	dto, err := uc.WithdrawFunds(context.Background(), ownerID, decimal.NewFromInt(300), "")
	require.NoError(t, err)
	assert.Equal(t, "700.00", dto.Balance)
	require.Len(t, wallets.Txs, 1)
	assert.Equal(t, domain.TxWithdrawal, wallets.Txs[0].Type)
}

func TestWithdrawFunds_ExplicitMethod(t *testing.T) {
	wallets := walletmock.NewInMemory()
	wallets.Wallets[ownerID] = &domain.Wallet{OwnerID: ownerID, Balance: 100000}
	methods := &paymethodmock.Repo{
		GetByMethodIDFn: func(ctx context.Context, methodID string) (*domainPM.PaymentMethod, error) {
			require.Equal(t, "m1", methodID)
			return bankMethod(), nil
		},
	}
	uc := newWalletUC(wallets, methods)

	dto, err := uc.WithdrawFunds(context.Background(), ownerID, decimal.NewFromInt(1000), "m1")
	require.NoError(t, err)
	assert.Equal(t, "0.00", dto.Balance)
}

func TestWithdrawFunds_InsufficientLeavesBalance(t *testing.T) {
	wallets := walletmock.NewInMemory()
	wallets.Wallets[ownerID] = &domain.Wallet{OwnerID: ownerID, Balance: 100000}
	methods := &paymethodmock.Repo{
		GetDefaultFn: func(ctx context.Context, owner string, k domainPM.Kind) (*domainPM.PaymentMethod, error) {
			return bankMethod(), nil
		},
	}
	uc := newWalletUC(wallets, methods)

	_, err := uc.WithdrawFunds(context.Background(), ownerID, decimal.RequireFromString("1000.01"), "")
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.Equal(t, money.Cents(100000), wallets.Wallets[ownerID].Balance)
	assert.Empty(t, wallets.Txs)
}

func TestWithdrawFunds_NoBankMethod(t *testing.T) {
	wallets := walletmock.NewInMemory()
	wallets.Wallets[ownerID] = &domain.Wallet{OwnerID: ownerID, Balance: 100000}
	methods := &paymethodmock.Repo{
		GetDefaultFn: func(ctx context.Context, owner string, k domainPM.Kind) (*domainPM.PaymentMethod, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	uc := newWalletUC(wallets, methods)

	_, err := uc.WithdrawFunds(context.Background(), ownerID, decimal.NewFromInt(10), "")
	require.ErrorIs(t, err, ErrNoPaymentMethod)
}

func TestWithdrawFunds_RejectsForeignAndInactiveMethods(t *testing.T) {
	cases := map[string]*domainPM.PaymentMethod{
		"other owner": {MethodID: "m1", OwnerID: "someone-else", Kind: domainPM.KindBank, IsActive: true},
		"inactive":    {MethodID: "m1", OwnerID: ownerID, Kind: domainPM.KindBank, IsActive: false},
		"card":        {MethodID: "m1", OwnerID: ownerID, Kind: domainPM.KindCard, IsActive: true},
	}
	for name, m := range cases {
		wallets := walletmock.NewInMemory()
		wallets.Wallets[ownerID] = &domain.Wallet{OwnerID: ownerID, Balance: 100000}
		methods := &paymethodmock.Repo{
			GetByMethodIDFn: func(ctx context.Context, methodID string) (*domainPM.PaymentMethod, error) {
				return m, nil
			},
		}
		uc := newWalletUC(wallets, methods)
		_, err := uc.WithdrawFunds(context.Background(), ownerID, decimal.NewFromInt(10), "m1")
		assert.ErrorIs(t, err, ErrNoPaymentMethod, name)
	}
}

func TestCheckSufficientBalance(t *testing.T) {
	wallets := &walletmock.Repo{
		GetByOwnerIDFn: func(ctx context.Context, owner string) (*domain.Wallet, error) {
			if owner == ownerID {
				return &domain.Wallet{OwnerID: owner, Balance: 50000}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	uc := NewUsecase(wallets, uowmock.Pass(uow.Repos{Wallets: wallets}))

	ok, err := uc.CheckSufficientBalance(context.Background(), ownerID, decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.CheckSufficientBalance(context.Background(), ownerID, decimal.RequireFromString("500.01"))
	require.NoError(t, err)
	assert.False(t, ok)

	// missing wallet reads as zero balance
	ok, err = uc.CheckSufficientBalance(context.Background(), "nobody", decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBalance_MissingWalletIsZero(t *testing.T) {
	wallets := &walletmock.Repo{
		GetByOwnerIDFn: func(ctx context.Context, owner string) (*domain.Wallet, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	uc := NewUsecase(wallets, uowmock.Pass(uow.Repos{Wallets: wallets}))

	dto, err := uc.Balance(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, "0.00", dto.Balance)
}

func TestTransactions(t *testing.T) {
	wallets := walletmock.NewInMemory()
	uc := newWalletUC(wallets, &paymethodmock.Repo{})
	_, err := uc.AddFunds(context.Background(), ownerID, decimal.NewFromInt(25))
	require.NoError(t, err)

	items, err := uc.Transactions(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, string(domain.TxTopup), items[0].Type)
	assert.Equal(t, "25.00", items[0].Amount)

	items, err = uc.Transactions(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, items)
}
