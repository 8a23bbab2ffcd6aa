package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"peerlend-core/internal/usecase/kyc"
)

type KYCHandler struct{ uc *kyc.Usecase }

func NewKYCHandler(uc *kyc.Usecase) *KYCHandler { return &KYCHandler{uc: uc} }

type submitKYCReq struct {
	OwnerID     string `json:"owner_id" validate:"required,hex32"`
	FullName    string `json:"full_name" validate:"required"`
	NIC         string `json:"nic" validate:"required,nic"`
	Address     string `json:"address" validate:"required"`
	Occupation  string `json:"occupation" validate:"required"`
	Phone       string `json:"phone" validate:"required,slphone"`
	DocumentURL string `json:"document_url" validate:"required,url"`
}

func (h *KYCHandler) Submit(c echo.Context) error {
	var req submitKYCReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Submit(c.Request().Context(), kyc.SubmitInput{
		OwnerID:     req.OwnerID,
		FullName:    req.FullName,
		NIC:         req.NIC,
		Address:     req.Address,
		Occupation:  req.Occupation,
		Phone:       req.Phone,
		DocumentURL: req.DocumentURL,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *KYCHandler) Pending(c echo.Context) error {
	items, err := h.uc.Pending(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *KYCHandler) Approve(c echo.Context) error {
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("submission_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type rejectKYCReq struct {
	Note string `json:"note"`
}

func (h *KYCHandler) Reject(c echo.Context) error {
	var req rejectKYCReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("submission_id"), req.Note)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *KYCHandler) StatusFor(c echo.Context) error {
	s, err := h.uc.StatusFor(c.Request().Context(), c.Param("owner_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"owner_id": c.Param("owner_id"),
		"status":   string(s),
	})
}
