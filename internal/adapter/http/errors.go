package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	domainKYC "peerlend-core/internal/domain/kyc"
	domainLoan "peerlend-core/internal/domain/loan"
	domainPM "peerlend-core/internal/domain/paymethod"
	domainWallet "peerlend-core/internal/domain/wallet"
	ucWallet "peerlend-core/internal/usecase/wallet"
	"peerlend-core/pkg/money"
)

// writeError translates domain errors into status codes so no raw store
// error ever reaches a client.
func writeError(c echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, domainLoan.ErrNotFound),
		errors.Is(err, domainPM.ErrNotFound),
		errors.Is(err, domainKYC.ErrNotFound),
		errors.Is(err, domainWallet.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, domainPM.ErrUnauthorized),
		errors.Is(err, domainKYC.ErrNotApproved):
		code = http.StatusForbidden
	case errors.Is(err, domainLoan.ErrInvalidTransition),
		errors.Is(err, domainLoan.ErrOverfunded),
		errors.Is(err, domainLoan.ErrNotFullyFunded),
		errors.Is(err, domainLoan.ErrOpenLoanExists),
		errors.Is(err, domainLoan.ErrInstallmentPaid),
		errors.Is(err, domainPM.ErrLimitReached),
		errors.Is(err, domainPM.ErrDuplicate),
		errors.Is(err, domainKYC.ErrNotPending),
		errors.Is(err, domainKYC.ErrOpenSubmission),
		errors.Is(err, domainWallet.ErrInsufficientBalance),
		errors.Is(err, ucWallet.ErrNoPaymentMethod):
		code = http.StatusConflict
	case errors.Is(err, domainLoan.ErrUnknownStatus),
		errors.Is(err, domainWallet.ErrInvalidAmount),
		errors.Is(err, money.ErrNotPositive),
		errors.Is(err, money.ErrTooPrecise),
		errors.Is(err, money.ErrNotAnAmount):
		code = http.StatusBadRequest
	default:
		code = http.StatusInternalServerError
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}
