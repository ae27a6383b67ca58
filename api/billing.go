package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
	"venuebook/db"
	"venuebook/service/billing"
	"venuebook/service/uploader"
	"venuebook/util"

	"github.com/gin-gonic/gin"
)

type SubscriptionInfoResponse struct {
	Month         int `json:"month"`
	Year          int `json:"year"`
	TotalBookings int `json:"total_bookings"`
	TotalCapacity int `json:"total_capacity"`
	Amount        int `json:"amount"`
	// Card number the transfer should go to
	PayToCardNumber string `json:"pay_to_card_number"`
	// When the owner's current subscription runs out
	SubscriptionExpiresAt time.Time `json:"subscription_expires_at"`
}

// parsePeriod reads month/year query parameters, defaulting to the previous
// month (the period whose subscription is typically due)
func parsePeriod(ctx *gin.Context) (int, int, error) {
	previous := time.Now().AddDate(0, -1, 0)
	month, year := int(previous.Month()), previous.Year()

	if raw := ctx.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, err
		}
		month = parsed
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month out of range: %d", month)
	}
	if raw := ctx.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, err
		}
		year = parsed
	}

	return month, year, nil
}

// OwnerSubscriptionInfo godoc
// @Summary      Preview the subscription amount for a period (owner)
// @Description  Computes what the owner would owe for the period from its confirmed-booking
// @Description  aggregates, without creating anything.
// @Tags         Owner
// @Produce      json
// @Param        month query int false "Period month (defaults to last month)"
// @Param        year query int false "Period year (defaults to last month's year)"
// @Success      200 {object} SubscriptionInfoResponse "Subscription preview"
// @Failure      400 {object} ErrorResponse "Invalid query parameters"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/owner/subscriptions/info [get]
func (server *Server) OwnerSubscriptionInfo(ctx *gin.Context) {
	month, year, err := parsePeriod(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid month or year parameter"})
		return
	}

	ownerID := accountID(ctx)
	stats, err := server.queries.GetMonthlyBookingStats(ctx, ownerID, month, year)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	policy, err := server.queries.BillingPolicy(ctx)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	owner, err := server.queries.GetOwner(ctx, ownerID)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, SubscriptionInfoResponse{
		Month:                 month,
		Year:                  year,
		TotalBookings:         stats.TotalBookings,
		TotalCapacity:         stats.TotalCapacity,
		Amount:                billing.SubscriptionAmount(stats.TotalCapacity, policy.MonthlySubscriptionRate, stats.TotalBookings),
		PayToCardNumber:       policy.CardNumber,
		SubscriptionExpiresAt: owner.SubscriptionExpiresAt,
	})
}

type CreateSubscriptionRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required"`
}

// OwnerCreateSubscription godoc
// @Summary      Open a subscription payment for a period (owner)
// @Description  Creates the pending subscription payment for the period. The amount is computed
// @Description  from the period's confirmed bookings; a period that owes nothing is refused, as
// @Description  is a period that already has a payment.
// @Tags         Owner
// @Accept       json
// @Produce      json
// @Param        request body CreateSubscriptionRequest true "Billing period"
// @Success      200 {object} db.MonthlySubscription "Subscription payment created"
// @Failure      400 {object} ErrorResponse "Invalid request body | Nothing is due for this period"
// @Failure      409 {object} ErrorResponse "A subscription payment for this period already exists"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/owner/subscriptions [post]
func (server *Server) OwnerCreateSubscription(ctx *gin.Context) {
	// Get request body and validate
	var req CreateSubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.LOGGER.Warn("POST /api/owner/subscriptions: failed to bind request body", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	subscription, err := server.queries.CreateMonthlySubscription(ctx, accountID(ctx), req.Month, req.Year)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, subscription)
}

// OwnerListSubscriptions godoc
// @Summary      List own subscription payments (owner)
// @Tags         Owner
// @Produce      json
// @Success      200 {array} db.MonthlySubscription "Subscription payments, newest period first"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/owner/subscriptions [get]
func (server *Server) OwnerListSubscriptions(ctx *gin.Context) {
	subscriptions, err := server.queries.ListOwnerSubscriptions(ctx, accountID(ctx))
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, subscriptions)
}

// OwnerUploadSubscriptionReceipt godoc
// @Summary      Upload a subscription transfer receipt (owner)
// @Description  Accepts a multipart image (max 5MB) and moves the subscription payment from
// @Description  pending to paid.
// @Tags         Owner
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Subscription payment ID"
// @Param        receipt formData file true "Receipt image"
// @Success      200 {object} db.MonthlySubscription "Receipt attached"
// @Failure      400 {object} ErrorResponse "Invalid upload | Operation not allowed in the current state"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/owner/subscriptions/{id}/receipt [post]
func (server *Server) OwnerUploadSubscriptionReceipt(ctx *gin.Context) {
	subscriptionID, ok := pathID(ctx)
	if !ok {
		return
	}

	url, ok := server.saveReceipt(ctx, uploader.CategorySubscriptionReceipts)
	if !ok {
		return
	}

	subscription, err := server.queries.UploadSubscriptionReceipt(ctx, subscriptionID, accountID(ctx), url)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, subscription)
}

// OwnerListCommissions godoc
// @Summary      List own commission payments (owner)
// @Tags         Owner
// @Produce      json
// @Success      200 {array} db.CommissionPayment "Commission payments, newest first"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/owner/commissions [get]
func (server *Server) OwnerListCommissions(ctx *gin.Context) {
	payments, err := server.queries.ListOwnerCommissions(ctx, accountID(ctx))
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payments)
}

// OwnerUploadCommissionReceipt godoc
// @Summary      Upload a commission transfer receipt (owner)
// @Description  Attaches the transfer receipt to a pending commission payment. The status stays
// @Description  pending until the admin reviews it.
// @Tags         Owner
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Commission payment ID"
// @Param        receipt formData file true "Receipt image"
// @Success      200 {object} db.CommissionPayment "Receipt attached"
// @Failure      400 {object} ErrorResponse "Invalid upload | Operation not allowed in the current state"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/owner/commissions/{id}/receipt [post]
func (server *Server) OwnerUploadCommissionReceipt(ctx *gin.Context) {
	commissionID, ok := pathID(ctx)
	if !ok {
		return
	}

	url, ok := server.saveReceipt(ctx, uploader.CategoryCommissionReceipts)
	if !ok {
		return
	}

	payment, err := server.queries.UploadCommissionReceipt(ctx, commissionID, accountID(ctx), url)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payment)
}

// AdminListSubscriptions godoc
// @Summary      List subscription payments across all owners (admin)
// @Tags         Admin
// @Produce      json
// @Param        status query string false "Filter by payment status"
// @Success      200 {array} db.MonthlySubscription "Subscription payments"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/subscriptions [get]
func (server *Server) AdminListSubscriptions(ctx *gin.Context) {
	subscriptions, err := server.queries.ListSubscriptionPayments(ctx, db.PaymentStatus(ctx.Query("status")))
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, subscriptions)
}

// AdminConfirmSubscription godoc
// @Summary      Confirm a subscription payment (admin)
// @Description  Accepts the owner's transfer: the payment becomes confirmed and the owner's
// @Description  subscription runs for exactly one month from now.
// @Tags         Admin
// @Produce      json
// @Param        id path string true "Subscription payment ID"
// @Success      200 {object} db.MonthlySubscription "Payment confirmed"
// @Failure      400 {object} ErrorResponse "Operation not allowed in the current state"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/subscriptions/{id}/confirm [put]
func (server *Server) AdminConfirmSubscription(ctx *gin.Context) {
	subscriptionID, ok := pathID(ctx)
	if !ok {
		return
	}

	subscription, err := server.queries.ConfirmSubscriptionPayment(ctx, subscriptionID)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, subscription)
}

// AdminRejectSubscription godoc
// @Summary      Reject a subscription payment (admin)
// @Tags         Admin
// @Produce      json
// @Param        id path string true "Subscription payment ID"
// @Success      200 {object} SuccessMessage "Payment rejected"
// @Failure      400 {object} ErrorResponse "Operation not allowed in the current state"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/subscriptions/{id}/reject [put]
func (server *Server) AdminRejectSubscription(ctx *gin.Context) {
	subscriptionID, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := server.queries.RejectSubscriptionPayment(ctx, subscriptionID); err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, SuccessMessage{"Payment rejected"})
}

// AdminListCommissions godoc
// @Summary      List commission payments across all owners (admin)
// @Tags         Admin
// @Produce      json
// @Param        status query string false "Filter by payment status"
// @Success      200 {array} db.CommissionPayment "Commission payments"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/commissions [get]
func (server *Server) AdminListCommissions(ctx *gin.Context) {
	payments, err := server.queries.ListCommissionPayments(ctx, db.PaymentStatus(ctx.Query("status")))
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payments)
}

// AdminConfirmCommission godoc
// @Summary      Confirm a commission payment (admin)
// @Description  Accepts the owner's commission transfer: the payment becomes confirmed and the
// @Description  owner is (re)activated.
// @Tags         Admin
// @Produce      json
// @Param        id path string true "Commission payment ID"
// @Success      200 {object} db.CommissionPayment "Payment confirmed"
// @Failure      400 {object} ErrorResponse "Operation not allowed in the current state"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/commissions/{id}/confirm [put]
func (server *Server) AdminConfirmCommission(ctx *gin.Context) {
	commissionID, ok := pathID(ctx)
	if !ok {
		return
	}

	payment, err := server.queries.ConfirmCommissionPayment(ctx, commissionID)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payment)
}

// AdminRejectCommission godoc
// @Summary      Reject a commission payment (admin)
// @Description  Refuses the owner's commission transfer: the payment becomes rejected and the
// @Description  owner is deactivated until the matter is settled.
// @Tags         Admin
// @Produce      json
// @Param        id path string true "Commission payment ID"
// @Success      200 {object} db.CommissionPayment "Payment rejected"
// @Failure      400 {object} ErrorResponse "Operation not allowed in the current state"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/commissions/{id}/reject [put]
func (server *Server) AdminRejectCommission(ctx *gin.Context) {
	commissionID, ok := pathID(ctx)
	if !ok {
		return
	}

	payment, err := server.queries.RejectCommissionPayment(ctx, commissionID)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payment)
}
