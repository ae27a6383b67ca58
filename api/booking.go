package api

import (
	"net/http"
	"time"
	"venuebook/db"
	"venuebook/service/uploader"
	"venuebook/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	VenueID       string `json:"venue_id" binding:"required,uuid"`
	BookingDate   string `json:"booking_date" binding:"required"` // YYYY-MM-DD
	NumberOfSeats int    `json:"number_of_seats" binding:"required,gt=0"`
}

type CreateBookingResponse struct {
	Booking     *db.Booking `json:"booking"`
	TotalAmount int         `json:"total_amount"`
	// Card number the transfer should go to: the venue owner's, or the
	// platform's for admin-created venues
	PayToCardNumber string `json:"pay_to_card_number"`
}

// parseBookingFilter reads the common booking listing query parameters
func parseBookingFilter(ctx *gin.Context) (db.BookingFilter, error) {
	filter := db.BookingFilter{
		Status:        db.BookingStatus(ctx.Query("status")),
		PaymentStatus: db.PaymentStatus(ctx.Query("payment_status")),
		SortByDate:    ctx.Query("sort_by") == "date",
	}

	if raw := ctx.Query("date"); raw != "" {
		date, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return db.BookingFilter{}, err
		}
		filter.Date = &date
	}

	if raw := ctx.Query("venue_id"); raw != "" {
		venueID, err := uuid.Parse(raw)
		if err != nil {
			return db.BookingFilter{}, err
		}
		filter.VenueID = &venueID
	}

	if raw := ctx.Query("district_id"); raw != "" {
		districtID, err := uuid.Parse(raw)
		if err != nil {
			return db.BookingFilter{}, err
		}
		filter.DistrictID = &districtID
	}

	return filter, nil
}

// UserCreateBooking godoc
// @Summary      Book a venue (user)
// @Description  Creates a pending booking on a confirmed venue. The response carries the total
// @Description  amount and the card number the payment transfer should go to.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body CreateBookingRequest true "Booking information"
// @Success      200 {object} CreateBookingResponse "Booking created"
// @Failure      400 {object} ErrorResponse "Invalid request body | Venue not bookable"
// @Failure      409 {object} ErrorResponse "Venue is already booked for this date"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/user/bookings [post]
func (server *Server) UserCreateBooking(ctx *gin.Context) {
	// Get request body and validate
	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.LOGGER.Warn("POST /api/user/bookings: failed to bind request body", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	bookingDate, err := time.Parse(time.DateOnly, req.BookingDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid booking_date, expected YYYY-MM-DD"})
		return
	}
	if !bookingDate.After(time.Now()) {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Booking date must be in the future"})
		return
	}

	booking, venue, err := server.queries.CreateBooking(ctx, accountID(ctx), uuid.MustParse(req.VenueID), bookingDate, req.NumberOfSeats)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	// Payments go to the owner's card, or the platform's for venues the
	// platform operates itself
	cardNumber := ""
	if venue.Owner != nil {
		cardNumber = venue.Owner.CardNumber
	} else {
		policy, err := server.queries.BillingPolicy(ctx)
		if err != nil {
			server.StorageError(ctx, err)
			return
		}
		cardNumber = policy.CardNumber
	}

	ctx.JSON(http.StatusOK, CreateBookingResponse{
		Booking:         booking,
		TotalAmount:     booking.NumberOfSeats * venue.PricePerSeat,
		PayToCardNumber: cardNumber,
	})
}

// UserListBookings godoc
// @Summary      List own bookings (user)
// @Tags         User
// @Produce      json
// @Success      200 {array} db.Booking "Bookings, newest first"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/user/bookings [get]
func (server *Server) UserListBookings(ctx *gin.Context) {
	bookings, err := server.queries.ListUserBookings(ctx, accountID(ctx))
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, bookings)
}

// UserUploadBookingReceipt godoc
// @Summary      Upload a booking payment receipt (user)
// @Description  Accepts a multipart image (max 5MB) and moves the booking's payment from
// @Description  pending to paid. Re-uploads are refused.
// @Tags         User
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Booking ID"
// @Param        receipt formData file true "Receipt image"
// @Success      200 {object} db.Booking "Receipt attached"
// @Failure      400 {object} ErrorResponse "Invalid upload | Operation not allowed in the current state"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/user/bookings/{id}/receipt [post]
func (server *Server) UserUploadBookingReceipt(ctx *gin.Context) {
	bookingID, ok := pathID(ctx)
	if !ok {
		return
	}

	url, ok := server.saveReceipt(ctx, uploader.CategoryReceipts)
	if !ok {
		return
	}

	booking, err := server.queries.UploadBookingReceipt(ctx, bookingID, accountID(ctx), url)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, booking)
}

// UserCancelBooking godoc
// @Summary      Cancel own booking (user)
// @Description  Cancels the booking while its payment is still pending or paid. The record is
// @Description  kept with status cancelled.
// @Tags         User
// @Produce      json
// @Param        id path string true "Booking ID"
// @Success      200 {object} SuccessMessage "Booking cancelled"
// @Failure      400 {object} ErrorResponse "Operation not allowed in the current state"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/user/bookings/{id}/cancel [put]
func (server *Server) UserCancelBooking(ctx *gin.Context) {
	bookingID, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := server.queries.CancelUserBooking(ctx, bookingID, accountID(ctx)); err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, SuccessMessage{"Booking cancelled"})
}

// OwnerListBookings godoc
// @Summary      List bookings on own venues (owner)
// @Tags         Owner
// @Produce      json
// @Param        date query string false "Filter by booking date (YYYY-MM-DD)"
// @Param        venue_id query string false "Filter by venue"
// @Param        status query string false "Filter by booking status"
// @Param        payment_status query string false "Filter by payment status"
// @Param        sort_by query string false "Pass 'date' to sort by booking date ascending"
// @Success      200 {array} db.Booking "Bookings"
// @Failure      400 {object} ErrorResponse "Invalid query parameters"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/owner/bookings [get]
func (server *Server) OwnerListBookings(ctx *gin.Context) {
	filter, err := parseBookingFilter(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid query parameters"})
		return
	}

	bookings, err := server.queries.ListOwnerBookings(ctx, accountID(ctx), filter)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, bookings)
}

type ConfirmBookingPaymentResponse struct {
	Commission *db.CommissionPayment `json:"commission"`
	// Card number the commission transfer should go to
	PayToCardNumber string `json:"pay_to_card_number"`
}

// OwnerConfirmBookingPayment godoc
// @Summary      Confirm a booking payment (owner)
// @Description  Accepts the user's uploaded receipt: the booking becomes confirmed and a pending
// @Description  commission payment is raised in the same transaction. A date that already has a
// @Description  confirmed booking is refused.
// @Tags         Owner
// @Produce      json
// @Param        id path string true "Booking ID"
// @Success      200 {object} ConfirmBookingPaymentResponse "Payment confirmed, commission raised"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      409 {object} ErrorResponse "Another booking has already been confirmed for this date"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/owner/bookings/{id}/confirm-payment [put]
func (server *Server) OwnerConfirmBookingPayment(ctx *gin.Context) {
	bookingID, ok := pathID(ctx)
	if !ok {
		return
	}

	commission, err := server.queries.ConfirmBookingPayment(ctx, bookingID, accountID(ctx))
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	policy, err := server.queries.BillingPolicy(ctx)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, ConfirmBookingPaymentResponse{
		Commission:      commission,
		PayToCardNumber: policy.CardNumber,
	})
}

// OwnerRejectBookingPayment godoc
// @Summary      Reject a booking payment (owner)
// @Description  Refuses the user's uploaded receipt. The payment becomes rejected; the booking
// @Description  stays open for manual intervention.
// @Tags         Owner
// @Produce      json
// @Param        id path string true "Booking ID"
// @Success      200 {object} SuccessMessage "Payment rejected"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/owner/bookings/{id}/reject-payment [put]
func (server *Server) OwnerRejectBookingPayment(ctx *gin.Context) {
	bookingID, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := server.queries.RejectBookingPayment(ctx, bookingID, accountID(ctx)); err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, SuccessMessage{"Payment rejected"})
}

// OwnerCancelBooking godoc
// @Summary      Cancel a booking on own venue (owner)
// @Tags         Owner
// @Produce      json
// @Param        id path string true "Booking ID"
// @Success      200 {object} SuccessMessage "Booking cancelled"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/owner/bookings/{id}/cancel [put]
func (server *Server) OwnerCancelBooking(ctx *gin.Context) {
	bookingID, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := server.queries.CancelOwnerBooking(ctx, bookingID, accountID(ctx)); err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, SuccessMessage{"Booking cancelled"})
}

// AdminListBookings godoc
// @Summary      List all bookings (admin)
// @Tags         Admin
// @Produce      json
// @Param        date query string false "Filter by booking date (YYYY-MM-DD)"
// @Param        venue_id query string false "Filter by venue"
// @Param        district_id query string false "Filter by district"
// @Param        status query string false "Filter by booking status"
// @Param        payment_status query string false "Filter by payment status"
// @Param        sort_by query string false "Pass 'date' to sort by booking date ascending"
// @Success      200 {array} db.Booking "Bookings"
// @Failure      400 {object} ErrorResponse "Invalid query parameters"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/bookings [get]
func (server *Server) AdminListBookings(ctx *gin.Context) {
	filter, err := parseBookingFilter(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid query parameters"})
		return
	}

	bookings, err := server.queries.ListBookings(ctx, filter)
	if err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, bookings)
}

// AdminCancelBooking godoc
// @Summary      Cancel any booking (admin)
// @Tags         Admin
// @Produce      json
// @Param        id path string true "Booking ID"
// @Success      200 {object} SuccessMessage "Booking cancelled"
// @Failure      404 {object} ErrorResponse "Record not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/bookings/{id}/cancel [put]
func (server *Server) AdminCancelBooking(ctx *gin.Context) {
	bookingID, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := server.queries.CancelBooking(ctx, bookingID); err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, SuccessMessage{"Booking cancelled"})
}

// saveReceipt reads the multipart "receipt" file and stores it under the
// given category. Responds with the appropriate error on failure.
func (server *Server) saveReceipt(ctx *gin.Context, category string) (string, bool) {
	fileHeader, err := ctx.FormFile("receipt")
	if err != nil {
		util.LOGGER.Warn("missing receipt file", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Missing receipt file"})
		return "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LOGGER.Error("failed to open upload", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return "", false
	}
	defer file.Close()

	url, err := server.uploadService.Save(
		category,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		util.LOGGER.Warn("receipt upload rejected", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{err.Error()})
		return "", false
	}

	return url, true
}
