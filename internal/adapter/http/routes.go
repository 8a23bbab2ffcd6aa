package http

import "github.com/labstack/echo/v4"

// RegisterRoutes wires every handler; mutating routes sit behind the
// idempotency middleware passed in (nil-safe for tests).
func RegisterRoutes(e *echo.Echo, h *Handler, lh *LoanHandler, wh *WalletHandler, ph *PayMethodHandler, kh *KYCHandler, idemp echo.MiddlewareFunc) {
	mw := []echo.MiddlewareFunc{}
	if idemp != nil {
		mw = append(mw, idemp)
	}

	e.GET("/health", h.Health)

	e.POST("/loans", lh.CreateLoan, mw...)
	e.GET("/loans", lh.ListLoans)
	e.GET("/loans/:loan_id", lh.GetLoan)
	e.GET("/loans/:loan_id/schedule", lh.GetSchedule)
	e.POST("/loans/:loan_id/approve", lh.ApproveLoan, mw...)
	e.POST("/loans/:loan_id/reject", lh.RejectLoan, mw...)
	e.POST("/loans/:loan_id/disburse", lh.DisburseLoan, mw...)
	e.POST("/loans/:loan_id/cancel-approval", lh.CancelApproval, mw...)
	e.POST("/loans/:loan_id/fund", lh.FundLoan, mw...)
	e.POST("/loans/:loan_id/repay", lh.RepayLoan, mw...)
	e.POST("/loans/:loan_id/status", lh.UpdateStatus, mw...)
	e.POST("/loans/:loan_id/default", lh.MarkDefaulted, mw...)

	e.GET("/wallets/:owner_id", wh.Balance)
	e.GET("/wallets/:owner_id/transactions", wh.Transactions)
	e.POST("/wallets/:owner_id/deposits", wh.AddFunds, mw...)
	e.POST("/wallets/:owner_id/withdrawals", wh.WithdrawFunds, mw...)

	e.POST("/payment-methods", ph.Create, mw...)
	e.GET("/payment-methods", ph.List)
	e.PATCH("/payment-methods/:method_id", ph.Update, mw...)
	e.POST("/payment-methods/:method_id/default", ph.SetDefault, mw...)
	e.DELETE("/payment-methods/:method_id", ph.Delete, mw...)

	e.POST("/kyc", kh.Submit, mw...)
	e.GET("/kyc/pending", kh.Pending)
	e.GET("/kyc/status/:owner_id", kh.StatusFor)
	e.POST("/kyc/:submission_id/approve", kh.Approve, mw...)
	e.POST("/kyc/:submission_id/reject", kh.Reject, mw...)
}
