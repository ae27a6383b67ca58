package db

import (
	"context"
	"fmt"
	"time"

	"venuebook/service/billing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeriveBookingPeriod splits a booking date into the denormalized
// (month, year) pair used by the monthly billing aggregates.
func DeriveBookingPeriod(date time.Time) (month, year int) {
	return int(date.Month()), date.Year()
}

// The booking-eligibility rule. An expired owner subscription blocks new
// bookings on the venue unless the venue was created directly by an admin.
// The two rejection messages only differ in wording: a user who already holds
// a qualifying booking is told the venue is still unavailable for new ones.
func checkBookingEligibility(venue *Venue, hasQualifyingBooking bool, now time.Time) error {
	if venue.Status != VenueConfirmed {
		return &ValidationError{Reason: "Venue not found or not confirmed"}
	}

	if venue.CreatedByAdminID != nil || venue.Owner == nil {
		return nil
	}

	if venue.Owner.SubscriptionExpiresAt.After(now) {
		return nil
	}

	if hasQualifyingBooking {
		return &ValidationError{Reason: "You hold an existing booking at this venue, but new bookings are closed: the owner's subscription has expired"}
	}
	return &ValidationError{Reason: "The owner's subscription for this venue has expired; new bookings are closed"}
}

// Capacity and slot checks that follow a passing eligibility check
func checkBookingCapacity(venue *Venue, numberOfSeats int) error {
	if numberOfSeats <= 0 {
		return &ValidationError{Reason: "Number of seats must be positive"}
	}
	if numberOfSeats > venue.Capacity {
		return &ValidationError{Reason: fmt.Sprintf("Requested seats (%d) exceed venue capacity (%d)", numberOfSeats, venue.Capacity)}
	}
	return nil
}

// Whether the user holds a confirmed-payment booking on this venue with a
// future date. Such a booking grandfathers the venue's visibility for them.
func (queries *Queries) HasQualifyingBooking(ctx context.Context, venueID, userID uuid.UUID) (bool, error) {
	var count int64
	err := queries.DB.WithContext(ctx).Model(&Booking{}).
		Where("venue_id = ? AND user_id = ? AND payment_status = ? AND booking_date > CURRENT_DATE",
			venueID, userID, PaymentConfirmed).
		Count(&count).Error
	if err != nil {
		return false, translateError(err, "")
	}
	return count > 0, nil
}

// CreateBooking runs the full creation preconditions: venue confirmed,
// owner subscription eligibility, capacity, and no confirmed-payment booking
// on the same date. On success the booking starts at
// status=pending / payment_status=pending. The venue is returned too so the
// caller can report the total amount and the owner's card number.
func (queries *Queries) CreateBooking(ctx context.Context, userID, venueID uuid.UUID, bookingDate time.Time, numberOfSeats int) (*Booking, *Venue, error) {
	var venue Venue
	err := queries.DB.WithContext(ctx).Preload("Owner").First(&venue, "id = ?", venueID).Error
	if err != nil {
		if translateError(err, "") == ErrAccessDenied {
			return nil, nil, &ValidationError{Reason: "Venue not found or not confirmed"}
		}
		return nil, nil, translateError(err, "")
	}

	hasQualifying, err := queries.HasQualifyingBooking(ctx, venueID, userID)
	if err != nil {
		return nil, nil, err
	}

	if err := checkBookingEligibility(&venue, hasQualifying, time.Now()); err != nil {
		return nil, nil, err
	}
	if err := checkBookingCapacity(&venue, numberOfSeats); err != nil {
		return nil, nil, err
	}

	// Confirmed-payment bookings are the only ones that block the slot
	var taken int64
	err = queries.DB.WithContext(ctx).Model(&Booking{}).
		Where("venue_id = ? AND booking_date = ? AND payment_status = ?", venueID, bookingDate, PaymentConfirmed).
		Count(&taken).Error
	if err != nil {
		return nil, nil, translateError(err, "")
	}
	if taken > 0 {
		return nil, nil, &ConflictError{Message: "Venue is already booked for this date"}
	}

	month, year := DeriveBookingPeriod(bookingDate)
	booking := &Booking{
		Model:         NewModel(),
		VenueID:       venueID,
		UserID:        userID,
		BookingDate:   bookingDate,
		NumberOfSeats: numberOfSeats,
		Status:        BookingPending,
		PaymentStatus: PaymentPending,
		BookingMonth:  month,
		BookingYear:   year,
	}

	if err := queries.DB.WithContext(ctx).Create(booking).Error; err != nil {
		return nil, nil, translateError(err, "Venue is already booked for this date")
	}
	return booking, &venue, nil
}

// Attach the payment receipt to the user's booking and move its payment to
// paid. Only allowed from payment pending; re-uploads are refused.
func (queries *Queries) UploadBookingReceipt(ctx context.Context, bookingID, userID uuid.UUID, receiptURL string) (*Booking, error) {
	result := queries.DB.WithContext(ctx).Model(&Booking{}).
		Where("id = ? AND user_id = ? AND payment_status = ?", bookingID, userID, PaymentPending).
		Updates(map[string]any{
			"payment_receipt_url": receiptURL,
			"payment_status":      PaymentPaid,
			"date_updated":        time.Now(),
		})
	if result.Error != nil {
		return nil, translateError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		// Distinguish an out-of-scope booking from a receipt re-upload
		var count int64
		if err := queries.DB.WithContext(ctx).Model(&Booking{}).
			Where("id = ? AND user_id = ?", bookingID, userID).
			Count(&count).Error; err != nil {
			return nil, translateError(err, "")
		}
		return nil, guardFailure(count > 0)
	}

	var booking Booking
	if err := queries.DB.WithContext(ctx).First(&booking, "id = ?", bookingID).Error; err != nil {
		return nil, translateError(err, "")
	}
	return &booking, nil
}

// Filters accepted by the booking listing endpoints
type BookingFilter struct {
	Date          *time.Time
	VenueID       *uuid.UUID
	DistrictID    *uuid.UUID
	Status        BookingStatus
	PaymentStatus PaymentStatus
	SortByDate    bool
}

func (filter BookingFilter) apply(tx *gorm.DB) *gorm.DB {
	if filter.Date != nil {
		tx = tx.Where("bookings.booking_date = ?", *filter.Date)
	}
	if filter.VenueID != nil {
		tx = tx.Where("bookings.venue_id = ?", *filter.VenueID)
	}
	if filter.DistrictID != nil {
		tx = tx.Where("venues.district_id = ?", *filter.DistrictID)
	}
	if filter.Status != "" {
		tx = tx.Where("bookings.status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		tx = tx.Where("bookings.payment_status = ?", filter.PaymentStatus)
	}
	if filter.SortByDate {
		return tx.Order("bookings.booking_date ASC")
	}
	return tx.Order("bookings.date_created DESC")
}

// List the user's own bookings, newest first
func (queries *Queries) ListUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := queries.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date_created DESC").
		Preload("Venue").
		Preload("Venue.District").
		Find(&bookings).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return bookings, nil
}

// List bookings across the owner's venues
func (queries *Queries) ListOwnerBookings(ctx context.Context, ownerID uuid.UUID, filter BookingFilter) ([]Booking, error) {
	tx := queries.DB.WithContext(ctx).Model(&Booking{}).
		Joins("JOIN venues ON venues.id = bookings.venue_id").
		Where("venues.owner_id = ?", ownerID)

	var bookings []Booking
	err := filter.apply(tx).
		Preload("Venue").
		Preload("Venue.District").
		Preload("User").
		Find(&bookings).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return bookings, nil
}

// List all bookings (admin view)
func (queries *Queries) ListBookings(ctx context.Context, filter BookingFilter) ([]Booking, error) {
	tx := queries.DB.WithContext(ctx).Model(&Booking{}).
		Joins("JOIN venues ON venues.id = bookings.venue_id")

	var bookings []Booking
	err := filter.apply(tx).
		Preload("Venue").
		Preload("Venue.District").
		Preload("User").
		Find(&bookings).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return bookings, nil
}

// ConfirmBookingPayment is the owner accepting a user's uploaded receipt.
// The booking must be in payment paid and belong to one of the owner's
// venues. The booking update and the commission-payment insert happen in one
// transaction: a crash cannot leave a confirmed booking without its
// commission record. The partial unique index on confirmed slots turns a
// concurrent double-confirm into a rollback here.
func (queries *Queries) ConfirmBookingPayment(ctx context.Context, bookingID, ownerID uuid.UUID) (*CommissionPayment, error) {
	policy, err := queries.BillingPolicy(ctx)
	if err != nil {
		return nil, err
	}

	var commission *CommissionPayment
	err = queries.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking Booking
		err := tx.Model(&Booking{}).
			Joins("JOIN venues ON venues.id = bookings.venue_id").
			Where("bookings.id = ? AND venues.owner_id = ? AND bookings.payment_status = ?", bookingID, ownerID, PaymentPaid).
			Preload("Venue").
			First(&booking).Error
		if err != nil {
			return translateError(err, "")
		}

		result := tx.Model(&Booking{}).
			Where("id = ? AND payment_status = ?", bookingID, PaymentPaid).
			Updates(map[string]any{
				"payment_status": PaymentConfirmed,
				"status":         BookingConfirmed,
				"date_updated":   time.Now(),
			})
		if result.Error != nil {
			return translateError(result.Error, "Another booking has already been confirmed for this date")
		}
		if result.RowsAffected == 0 {
			// A concurrent confirm won the row lock and committed first: the
			// guard re-evaluates against the new status and matches nothing.
			// Bail out before raising a second commission for the booking.
			return ErrInvalidState
		}

		commission = &CommissionPayment{
			Model:     NewModel(),
			OwnerID:   ownerID,
			BookingID: bookingID,
			Amount:    billing.CommissionAmount(booking.NumberOfSeats, booking.Venue.PricePerSeat, policy.CommissionPercentage),
			Status:    PaymentPending,
		}
		return translateError(tx.Create(commission).Error, "A commission payment for this booking already exists")
	})
	if err != nil {
		return nil, err
	}
	return commission, nil
}

// RejectBookingPayment is the owner refusing a user's uploaded receipt. The
// payment becomes rejected; the booking itself stays open and needs manual
// intervention (cancel or a fresh review).
func (queries *Queries) RejectBookingPayment(ctx context.Context, bookingID, ownerID uuid.UUID) error {
	result := queries.DB.WithContext(ctx).Model(&Booking{}).
		Where("id = ? AND payment_status = ? AND venue_id IN (?)",
			bookingID, PaymentPaid,
			queries.DB.Model(&Venue{}).Select("id").Where("owner_id = ?", ownerID)).
		Updates(map[string]any{"payment_status": PaymentRejected, "date_updated": time.Now()})
	if result.Error != nil {
		return translateError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return ErrAccessDenied
	}
	return nil
}

// CancelUserBooking: a user may cancel their own booking while its payment is
// still pending or paid. Cancellation is a soft transition, the row stays for
// audit.
func (queries *Queries) CancelUserBooking(ctx context.Context, bookingID, userID uuid.UUID) error {
	result := queries.DB.WithContext(ctx).Model(&Booking{}).
		Where("id = ? AND user_id = ? AND payment_status IN ? AND status <> ?",
			bookingID, userID, []PaymentStatus{PaymentPending, PaymentPaid}, BookingCancelled).
		Updates(map[string]any{"status": BookingCancelled, "date_updated": time.Now()})
	if result.Error != nil {
		return translateError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := queries.DB.WithContext(ctx).Model(&Booking{}).
			Where("id = ? AND user_id = ?", bookingID, userID).
			Count(&count).Error; err != nil {
			return translateError(err, "")
		}
		return guardFailure(count > 0)
	}
	return nil
}

// CancelOwnerBooking: an owner may cancel any booking on their own venues
func (queries *Queries) CancelOwnerBooking(ctx context.Context, bookingID, ownerID uuid.UUID) error {
	result := queries.DB.WithContext(ctx).Model(&Booking{}).
		Where("id = ? AND status <> ? AND venue_id IN (?)",
			bookingID, BookingCancelled,
			queries.DB.Model(&Venue{}).Select("id").Where("owner_id = ?", ownerID)).
		Updates(map[string]any{"status": BookingCancelled, "date_updated": time.Now()})
	if result.Error != nil {
		return translateError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return ErrAccessDenied
	}
	return nil
}

// CancelBooking: the admin may cancel any booking
func (queries *Queries) CancelBooking(ctx context.Context, bookingID uuid.UUID) error {
	result := queries.DB.WithContext(ctx).Model(&Booking{}).
		Where("id = ? AND status <> ?", bookingID, BookingCancelled).
		Updates(map[string]any{"status": BookingCancelled, "date_updated": time.Now()})
	if result.Error != nil {
		return translateError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return ErrAccessDenied
	}
	return nil
}
