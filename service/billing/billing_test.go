package billing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommissionAmount(t *testing.T) {
	testCases := []struct {
		name                 string
		numberOfSeats        int
		pricePerSeat         int
		commissionPercentage int
		expected             int
	}{
		{
			name:                 "typical booking",
			numberOfSeats:        50,
			pricePerSeat:         100000,
			commissionPercentage: 10,
			expected:             500000,
		},
		{
			name:                 "rounds half up",
			numberOfSeats:        1,
			pricePerSeat:         5,
			commissionPercentage: 10, // 0.5 rounds to 1
			expected:             1,
		},
		{
			name:                 "rounds down below half",
			numberOfSeats:        1,
			pricePerSeat:         4,
			commissionPercentage: 10, // 0.4 rounds to 0
			expected:             0,
		},
		{
			name:                 "zero commission",
			numberOfSeats:        50,
			pricePerSeat:         100000,
			commissionPercentage: 0,
			expected:             0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			amount := CommissionAmount(tc.numberOfSeats, tc.pricePerSeat, tc.commissionPercentage)
			require.Equal(t, tc.expected, amount)
		})
	}
}

func TestSubscriptionAmount(t *testing.T) {
	testCases := []struct {
		name          string
		totalCapacity int
		rate          int
		totalBookings int
		expected      int
	}{
		{
			name:          "small month rounds down",
			totalCapacity: 300,
			rate:          10,
			totalBookings: 4, // 3 * 0.1 * 4 = 1.2
			expected:      1,
		},
		{
			name:          "larger month",
			totalCapacity: 5000,
			rate:          10,
			totalBookings: 20, // 50 * 0.1 * 20 = 100
			expected:      100,
		},
		{
			name:          "no bookings owes nothing",
			totalCapacity: 0,
			rate:          10,
			totalBookings: 0,
			expected:      0,
		},
		{
			name:          "rounds half up",
			totalCapacity: 100,
			rate:          50,
			totalBookings: 1, // 1 * 0.5 * 1 = 0.5
			expected:      1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			amount := SubscriptionAmount(tc.totalCapacity, tc.rate, tc.totalBookings)
			require.Equal(t, tc.expected, amount)
		})
	}
}
