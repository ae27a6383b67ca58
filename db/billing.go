package db

import (
	"context"
	"fmt"
	"time"

	"venuebook/service/billing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MonthlyBookingStats aggregates the owner's confirmed-payment bookings for a
// period: how many there were and the summed capacity of the venues involved.
// These aggregates drive the monthly subscription amount.
type MonthlyBookingStats struct {
	TotalBookings int
	TotalCapacity int
}

func (queries *Queries) GetMonthlyBookingStats(ctx context.Context, ownerID uuid.UUID, month, year int) (MonthlyBookingStats, error) {
	var stats MonthlyBookingStats
	err := queries.DB.WithContext(ctx).Model(&Booking{}).
		Select("COUNT(bookings.id) AS total_bookings, COALESCE(SUM(venues.capacity), 0) AS total_capacity").
		Joins("JOIN venues ON venues.id = bookings.venue_id").
		Where("venues.owner_id = ? AND bookings.payment_status = ? AND bookings.booking_month = ? AND bookings.booking_year = ?",
			ownerID, PaymentConfirmed, month, year).
		Scan(&stats).Error
	if err != nil {
		return MonthlyBookingStats{}, translateError(err, "")
	}
	return stats, nil
}

// CreateMonthlySubscription opens the owner's subscription payment for a
// period. The amount is computed from that period's confirmed bookings and
// the current subscription rate; a period without confirmed bookings owes
// nothing and gets no record. One record per (owner, month, year).
func (queries *Queries) CreateMonthlySubscription(ctx context.Context, ownerID uuid.UUID, month, year int) (*MonthlySubscription, error) {
	if month < 1 || month > 12 {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid month: %d", month)}
	}

	policy, err := queries.BillingPolicy(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := queries.GetMonthlyBookingStats(ctx, ownerID, month, year)
	if err != nil {
		return nil, err
	}

	amount := billing.SubscriptionAmount(stats.TotalCapacity, policy.MonthlySubscriptionRate, stats.TotalBookings)
	if amount <= 0 {
		return nil, &ValidationError{Reason: "No confirmed bookings in this period, no subscription payment is due"}
	}

	subscription := &MonthlySubscription{
		Model:              NewModel(),
		OwnerID:            ownerID,
		Month:              month,
		Year:               year,
		TotalBookings:      stats.TotalBookings,
		TotalCapacity:      stats.TotalCapacity,
		SubscriptionAmount: amount,
		Status:             PaymentPending,
	}

	err = queries.DB.WithContext(ctx).Create(subscription).Error
	if err != nil {
		return nil, translateError(err, "A subscription payment for this period already exists")
	}
	return subscription, nil
}

// Attach the transfer receipt to the owner's subscription payment and move it
// to paid. Only allowed from pending.
func (queries *Queries) UploadSubscriptionReceipt(ctx context.Context, subscriptionID, ownerID uuid.UUID, receiptURL string) (*MonthlySubscription, error) {
	result := queries.DB.WithContext(ctx).Model(&MonthlySubscription{}).
		Where("id = ? AND owner_id = ? AND status = ?", subscriptionID, ownerID, PaymentPending).
		Updates(map[string]any{
			"receipt_url":  receiptURL,
			"status":       PaymentPaid,
			"date_updated": time.Now(),
		})
	if result.Error != nil {
		return nil, translateError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := queries.DB.WithContext(ctx).Model(&MonthlySubscription{}).
			Where("id = ? AND owner_id = ?", subscriptionID, ownerID).
			Count(&count).Error; err != nil {
			return nil, translateError(err, "")
		}
		return nil, guardFailure(count > 0)
	}

	var subscription MonthlySubscription
	if err := queries.DB.WithContext(ctx).First(&subscription, "id = ?", subscriptionID).Error; err != nil {
		return nil, translateError(err, "")
	}
	return &subscription, nil
}

// List the owner's own subscription payments, newest period first
func (queries *Queries) ListOwnerSubscriptions(ctx context.Context, ownerID uuid.UUID) ([]MonthlySubscription, error) {
	var subscriptions []MonthlySubscription
	err := queries.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("year DESC, month DESC").
		Find(&subscriptions).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return subscriptions, nil
}

// List subscription payments across all owners (admin view)
func (queries *Queries) ListSubscriptionPayments(ctx context.Context, status PaymentStatus) ([]MonthlySubscription, error) {
	tx := queries.DB.WithContext(ctx).Model(&MonthlySubscription{})
	if status != "" {
		tx = tx.Where("status = ?", status)
	}

	var subscriptions []MonthlySubscription
	err := tx.Order("year DESC, month DESC").Preload("Owner").Find(&subscriptions).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return subscriptions, nil
}

// ConfirmSubscriptionPayment is the admin accepting an owner's subscription
// transfer. The payment moves to confirmed and the owner's subscription runs
// for exactly one month from now, in the same transaction. Re-confirming a
// confirmed payment is refused rather than extending the expiry again.
func (queries *Queries) ConfirmSubscriptionPayment(ctx context.Context, subscriptionID uuid.UUID) (*MonthlySubscription, error) {
	var subscription MonthlySubscription
	err := queries.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&MonthlySubscription{}).
			Where("id = ? AND status IN ?", subscriptionID, []PaymentStatus{PaymentPending, PaymentPaid}).
			Updates(map[string]any{"status": PaymentConfirmed, "date_updated": time.Now()})
		if result.Error != nil {
			return translateError(result.Error, "")
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&MonthlySubscription{}).
				Where("id = ?", subscriptionID).
				Count(&count).Error; err != nil {
				return translateError(err, "")
			}
			return guardFailure(count > 0)
		}

		if err := tx.First(&subscription, "id = ?", subscriptionID).Error; err != nil {
			return translateError(err, "")
		}

		return translateError(tx.Model(&VenueOwner{}).
			Where("id = ?", subscription.OwnerID).
			Updates(map[string]any{
				"subscription_expires_at": time.Now().AddDate(0, 1, 0),
				"status":                  OwnerActive,
				"date_updated":            time.Now(),
			}).Error, "")
	})
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

// RejectSubscriptionPayment is the admin refusing an owner's subscription
// transfer. The payment moves to rejected; the owner's expiry is untouched.
func (queries *Queries) RejectSubscriptionPayment(ctx context.Context, subscriptionID uuid.UUID) error {
	result := queries.DB.WithContext(ctx).Model(&MonthlySubscription{}).
		Where("id = ? AND status IN ?", subscriptionID, []PaymentStatus{PaymentPending, PaymentPaid}).
		Updates(map[string]any{"status": PaymentRejected, "date_updated": time.Now()})
	if result.Error != nil {
		return translateError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := queries.DB.WithContext(ctx).Model(&MonthlySubscription{}).
			Where("id = ?", subscriptionID).
			Count(&count).Error; err != nil {
			return translateError(err, "")
		}
		return guardFailure(count > 0)
	}
	return nil
}

// List commission payments across all owners (admin view)
func (queries *Queries) ListCommissionPayments(ctx context.Context, status PaymentStatus) ([]CommissionPayment, error) {
	tx := queries.DB.WithContext(ctx).Model(&CommissionPayment{})
	if status != "" {
		tx = tx.Where("status = ?", status)
	}

	var payments []CommissionPayment
	err := tx.Order("date_created DESC").Preload("Owner").Preload("Booking").Find(&payments).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return payments, nil
}

// List the owner's own commission payments
func (queries *Queries) ListOwnerCommissions(ctx context.Context, ownerID uuid.UUID) ([]CommissionPayment, error) {
	var payments []CommissionPayment
	err := queries.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("date_created DESC").
		Preload("Booking").
		Find(&payments).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return payments, nil
}

// Attach the transfer receipt to the owner's commission payment. Unlike the
// other receipt uploads this does not advance the status: commission payments
// go straight from pending to the admin's confirm/reject decision.
func (queries *Queries) UploadCommissionReceipt(ctx context.Context, commissionID, ownerID uuid.UUID, receiptURL string) (*CommissionPayment, error) {
	result := queries.DB.WithContext(ctx).Model(&CommissionPayment{}).
		Where("id = ? AND owner_id = ? AND status = ?", commissionID, ownerID, PaymentPending).
		Updates(map[string]any{"receipt_url": receiptURL, "date_updated": time.Now()})
	if result.Error != nil {
		return nil, translateError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := queries.DB.WithContext(ctx).Model(&CommissionPayment{}).
			Where("id = ? AND owner_id = ?", commissionID, ownerID).
			Count(&count).Error; err != nil {
			return nil, translateError(err, "")
		}
		return nil, guardFailure(count > 0)
	}

	var payment CommissionPayment
	if err := queries.DB.WithContext(ctx).First(&payment, "id = ?", commissionID).Error; err != nil {
		return nil, translateError(err, "")
	}
	return &payment, nil
}

// ConfirmCommissionPayment is the admin accepting an owner's commission
// transfer: the payment moves to confirmed and the owner is (re)activated in
// the same transaction.
func (queries *Queries) ConfirmCommissionPayment(ctx context.Context, commissionID uuid.UUID) (*CommissionPayment, error) {
	var payment CommissionPayment
	err := queries.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&CommissionPayment{}).
			Where("id = ? AND status = ?", commissionID, PaymentPending).
			Updates(map[string]any{"status": PaymentConfirmed, "date_updated": time.Now()})
		if result.Error != nil {
			return translateError(result.Error, "")
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&CommissionPayment{}).
				Where("id = ?", commissionID).
				Count(&count).Error; err != nil {
				return translateError(err, "")
			}
			return guardFailure(count > 0)
		}

		if err := tx.First(&payment, "id = ?", commissionID).Error; err != nil {
			return translateError(err, "")
		}

		return translateError(tx.Model(&VenueOwner{}).
			Where("id = ?", payment.OwnerID).
			Updates(map[string]any{"status": OwnerActive, "date_updated": time.Now()}).Error, "")
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// RejectCommissionPayment is the admin refusing an owner's commission
// transfer: the payment moves to rejected and the owner is deactivated until
// the matter is settled.
func (queries *Queries) RejectCommissionPayment(ctx context.Context, commissionID uuid.UUID) (*CommissionPayment, error) {
	var payment CommissionPayment
	err := queries.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&CommissionPayment{}).
			Where("id = ? AND status = ?", commissionID, PaymentPending).
			Updates(map[string]any{"status": PaymentRejected, "date_updated": time.Now()})
		if result.Error != nil {
			return translateError(result.Error, "")
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&CommissionPayment{}).
				Where("id = ?", commissionID).
				Count(&count).Error; err != nil {
				return translateError(err, "")
			}
			return guardFailure(count > 0)
		}

		if err := tx.First(&payment, "id = ?", commissionID).Error; err != nil {
			return translateError(err, "")
		}

		return translateError(tx.Model(&VenueOwner{}).
			Where("id = ?", payment.OwnerID).
			Updates(map[string]any{"status": OwnerInactive, "date_updated": time.Now()}).Error, "")
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
