package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domain "peerlend-core/internal/domain/loan"
	"peerlend-core/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	BorrowerID string          `json:"borrower_id" validate:"required,hex32"`
	Principal  decimal.Decimal `json:"principal" validate:"required"`
	Rate       float64         `json:"rate" validate:"gte=0,lte=1"`
	TermMonths int             `json:"term_months" validate:"required,gte=1,lte=60"`
	Purpose    string          `json:"purpose"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput{
		BorrowerID: req.BorrowerID,
		Principal:  req.Principal,
		Rate:       req.Rate,
		TermMonths: req.TermMonths,
		Purpose:    req.Purpose,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetSchedule(c echo.Context) error {
	items, err := h.uc.Schedule(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"loan_id":  c.Param("loan_id"),
		"schedule": items,
	})
}

// ListLoans serves the admin list: ?status=... or ?view=overdue.
func (h *LoanHandler) ListLoans(c echo.Context) error {
	ctx := c.Request().Context()
	if c.QueryParam("view") == "overdue" {
		items, err := h.uc.ListOverdue(ctx)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, items)
	}
	status := c.QueryParam("status")
	if status == "" {
		status = string(domain.StatusPending)
	}
	items, err := h.uc.ListByStatus(ctx, domain.Status(status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *LoanHandler) ApproveLoan(c echo.Context) error {
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type rejectLoanReq struct {
	Reason string `json:"reason"`
}

func (h *LoanHandler) RejectLoan(c echo.Context) error {
	var req rejectLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("loan_id"), req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) DisburseLoan(c echo.Context) error {
	dto, err := h.uc.Disburse(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) CancelApproval(c echo.Context) error {
	dto, err := h.uc.CancelApproval(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) MarkDefaulted(c echo.Context) error {
	dto, err := h.uc.MarkDefaulted(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type updateStatusReq struct {
	Status string `json:"status" validate:"required"`
}

func (h *LoanHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.UpdateStatus(c.Request().Context(), c.Param("loan_id"), domain.Status(req.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type fundLoanReq struct {
	LenderID string          `json:"lender_id" validate:"required,hex32"`
	Amount   decimal.Decimal `json:"amount" validate:"required"`
}

func (h *LoanHandler) FundLoan(c echo.Context) error {
	var req fundLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Fund(c.Request().Context(), loan.FundInput{
		LoanID:   c.Param("loan_id"),
		LenderID: req.LenderID,
		Amount:   req.Amount,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type repayLoanReq struct {
	Seq int `json:"seq" validate:"required,gte=1"`
}

func (h *LoanHandler) RepayLoan(c echo.Context) error {
	var req repayLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Repay(c.Request().Context(), loan.RepayInput{
		LoanID: c.Param("loan_id"),
		Seq:    req.Seq,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
