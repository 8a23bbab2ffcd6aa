package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"peerlend-core/internal/usecase/paymethod"
)

type PayMethodHandler struct{ uc *paymethod.Usecase }

func NewPayMethodHandler(uc *paymethod.Usecase) *PayMethodHandler {
	return &PayMethodHandler{uc: uc}
}

type createMethodReq struct {
	OwnerID    string `json:"owner_id" validate:"required,hex32"`
	Kind       string `json:"kind" validate:"required,oneof=card bank"`
	Label      string `json:"label" validate:"required"`
	Number     string `json:"number" validate:"required"`
	HolderName string `json:"holder_name" validate:"required"`
	Expiry     string `json:"expiry,omitempty"`
	IsDefault  bool   `json:"is_default"`
}

func (h *PayMethodHandler) Create(c echo.Context) error {
	var req createMethodReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), paymethod.CreateInput{
		OwnerID:    req.OwnerID,
		Kind:       req.Kind,
		Label:      req.Label,
		Number:     req.Number,
		HolderName: req.HolderName,
		Expiry:     req.Expiry,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *PayMethodHandler) List(c echo.Context) error {
	ownerID := c.QueryParam("owner_id")
	if !reHex32.MatchString(ownerID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid owner_id"})
	}
	items, err := h.uc.List(c.Request().Context(), ownerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

type updateMethodReq struct {
	OwnerID string `json:"owner_id" validate:"required,hex32"`
	paymethod.UpdateInput
}

func (h *PayMethodHandler) Update(c echo.Context) error {
	var req updateMethodReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("method_id"), req.OwnerID, req.UpdateInput)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type ownerReq struct {
	OwnerID string `json:"owner_id" validate:"required,hex32"`
}

func (h *PayMethodHandler) SetDefault(c echo.Context) error {
	var req ownerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.SetDefault(c.Request().Context(), c.Param("method_id"), req.OwnerID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PayMethodHandler) Delete(c echo.Context) error {
	ownerID := c.QueryParam("owner_id")
	if !reHex32.MatchString(ownerID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid owner_id"})
	}
	if err := h.uc.Delete(c.Request().Context(), c.Param("method_id"), ownerID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
