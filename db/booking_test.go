package db

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestDeriveBookingPeriod(t *testing.T) {
	month, year := DeriveBookingPeriod(time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC))
	require.Equal(t, 3, month)
	require.Equal(t, 2025, year)

	month, year = DeriveBookingPeriod(time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC))
	require.Equal(t, 12, month)
	require.Equal(t, 2024, year)
}

func TestCheckBookingEligibility(t *testing.T) {
	now := time.Now()
	adminID := uuid.New()

	// Unconfirmed venues are never bookable
	err := checkBookingEligibility(&Venue{Status: VenueUnconfirmed}, false, now)
	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	// Admin-created venues are never gated by a subscription
	err = checkBookingEligibility(&Venue{
		Status:           VenueConfirmed,
		CreatedByAdminID: &adminID,
	}, false, now)
	require.NoError(t, err)

	// Owner venue with a running subscription
	err = checkBookingEligibility(&Venue{
		Status: VenueConfirmed,
		Owner:  &VenueOwner{SubscriptionExpiresAt: now.Add(24 * time.Hour)},
	}, false, now)
	require.NoError(t, err)

	// Owner venue with an expired subscription
	expired := &Venue{
		Status: VenueConfirmed,
		Owner:  &VenueOwner{SubscriptionExpiresAt: now.Add(-time.Hour)},
	}

	err = checkBookingEligibility(expired, false, now)
	require.ErrorAs(t, err, &validationErr)
	withoutBooking := validationErr.Reason

	err = checkBookingEligibility(expired, true, now)
	require.ErrorAs(t, err, &validationErr)
	require.NotEqual(t, withoutBooking, validationErr.Reason)
}

func TestCheckBookingCapacity(t *testing.T) {
	venue := &Venue{Capacity: 100}

	require.NoError(t, checkBookingCapacity(venue, 1))
	require.NoError(t, checkBookingCapacity(venue, 100))

	var validationErr *ValidationError
	require.ErrorAs(t, checkBookingCapacity(venue, 101), &validationErr)
	require.ErrorAs(t, checkBookingCapacity(venue, 0), &validationErr)
	require.ErrorAs(t, checkBookingCapacity(venue, -5), &validationErr)
}
