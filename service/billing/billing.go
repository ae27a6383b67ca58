// Package billing holds the money math for the platform fees. The formulas
// are pure so the storage layer can call them inside transactions and the
// amounts stay reproducible from the recorded inputs.
package billing

import "math"

// CommissionAmount computes the per-booking platform fee: the booking's total
// (seats times price per seat) times the commission percentage, rounded to
// the nearest whole currency unit.
func CommissionAmount(numberOfSeats, pricePerSeat, commissionPercentage int) int {
	total := float64(numberOfSeats) * float64(pricePerSeat)
	return int(math.Round(total * float64(commissionPercentage) / 100))
}

// SubscriptionAmount computes the monthly period fee from the owner's
// confirmed-booking aggregates: summed venue capacity in hundreds, times the
// subscription rate as a fraction, times the booking count, rounded to the
// nearest whole currency unit. A period with no confirmed bookings owes 0.
func SubscriptionAmount(totalCapacity, monthlySubscriptionRate, totalBookings int) int {
	amount := (float64(totalCapacity) / 100) * (float64(monthlySubscriptionRate) / 100) * float64(totalBookings)
	return int(math.Round(amount))
}
