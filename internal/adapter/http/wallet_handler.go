package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"peerlend-core/internal/usecase/wallet"
)

type WalletHandler struct{ uc *wallet.Usecase }

func NewWalletHandler(uc *wallet.Usecase) *WalletHandler { return &WalletHandler{uc: uc} }

type depositReq struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

func (h *WalletHandler) AddFunds(c echo.Context) error {
	var req depositReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.AddFunds(c.Request().Context(), c.Param("owner_id"), req.Amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type withdrawReq struct {
	Amount          decimal.Decimal `json:"amount" validate:"required"`
	PaymentMethodID string          `json:"payment_method_id,omitempty"`
}

func (h *WalletHandler) WithdrawFunds(c echo.Context) error {
	var req withdrawReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.WithdrawFunds(c.Request().Context(), c.Param("owner_id"), req.Amount, req.PaymentMethodID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *WalletHandler) Balance(c echo.Context) error {
	dto, err := h.uc.Balance(c.Request().Context(), c.Param("owner_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *WalletHandler) Transactions(c echo.Context) error {
	items, err := h.uc.Transactions(c.Request().Context(), c.Param("owner_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
