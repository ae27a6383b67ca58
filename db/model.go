package db

import (
	"time"

	"github.com/google/uuid"
)

// Share fields of all models: ID, create at and updated at timestamp
type Model struct {
	ID          uuid.UUID `gorm:"type:uuid;not null;default:gen_random_uuid();primaryKey" json:"id"`
	DateCreated time.Time `gorm:"not null;default:now()" json:"created_at"`
	DateUpdated time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func NewModel() Model {
	return Model{
		ID:          uuid.New(),
		DateCreated: time.Now(),
		DateUpdated: time.Now(),
	}
}

// Enum defined
type Role string

type OwnerStatus string

type VenueStatus string

type BookingStatus string

type PaymentStatus string

// Constant defined
const (
	// Constant role defined
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
	RoleUser  Role = "user"

	// Owner status
	OwnerActive   OwnerStatus = "active"
	OwnerInactive OwnerStatus = "inactive"

	// Venue status
	VenueConfirmed   VenueStatus = "confirmed"
	VenueUnconfirmed VenueStatus = "unconfirmed"

	// Booking status
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"

	// Payment status. Bookings use the full pending -> paid -> confirmed/rejected
	// chain; commission payments skip "paid" (the receipt upload does not change
	// their status, only the admin review does); monthly subscriptions use the
	// full chain again.
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentConfirmed PaymentStatus = "confirmed"
	PaymentRejected  PaymentStatus = "rejected"
)

// District: immutable reference data, seeded out of band
type District struct {
	Model
	Name string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`

	// Relationships
	Venues []Venue `gorm:"foreignKey:DistrictID" json:"venues,omitempty"`
}

// Admin: platform administrator. The first admin record doubles as the billing
// policy: commission percentage and monthly subscription rate are read from it
// and only change through the admin profile endpoint.
type Admin struct {
	Model
	Username                string `gorm:"type:varchar(50);not null;uniqueIndex" json:"username"`
	Password                string `gorm:"type:varchar(60);not null" json:"-"`
	CardNumber              string `gorm:"type:varchar(20)" json:"card_number"`
	CommissionPercentage    int    `gorm:"not null;default:10" json:"commission_percentage"`
	MonthlySubscriptionRate int    `gorm:"not null;default:10" json:"monthly_subscription_rate"`

	// Relationships
	CreatedVenues []Venue `gorm:"foreignKey:CreatedByAdminID" json:"created_venues,omitempty"`
}

// VenueOwner: operator of one or more venues. Registration (self-service or by
// an admin) grants a 30-day trial subscription; afterwards the owner keeps the
// venues bookable by paying the monthly subscription.
type VenueOwner struct {
	Model
	FirstName             string      `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName              string      `gorm:"type:varchar(100);not null" json:"last_name"`
	Username              string      `gorm:"type:varchar(50);not null;uniqueIndex" json:"username"`
	Password              string      `gorm:"type:varchar(60);not null" json:"-"`
	CardNumber            string      `gorm:"type:varchar(20);not null" json:"card_number"`
	Status                OwnerStatus `gorm:"type:varchar(20);not null;default:active" json:"status"`
	SubscriptionExpiresAt time.Time   `gorm:"not null" json:"subscription_expires_at"`

	// Relationships
	Venues             []Venue               `gorm:"foreignKey:OwnerID" json:"venues,omitempty"`
	CommissionPayments []CommissionPayment   `gorm:"foreignKey:OwnerID" json:"commission_payments,omitempty"`
	Subscriptions      []MonthlySubscription `gorm:"foreignKey:OwnerID" json:"subscriptions,omitempty"`
}

// User: end customer. Identity is phone-number based, there is no password.
type User struct {
	Model
	FirstName   string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName    string `gorm:"type:varchar(100);not null" json:"last_name"`
	PhoneNumber string `gorm:"type:varchar(20);not null;uniqueIndex" json:"phone_number"`

	// Relationships
	Bookings []Booking `gorm:"foreignKey:UserID" json:"bookings,omitempty"`
}

// Venue: a bookable hall. Exactly one of OwnerID / CreatedByAdminID must be
// set (check constraint): owner-registered venues start unconfirmed and are
// subject to the owner's subscription; admin-created venues are confirmed on
// creation and never gated by a subscription.
type Venue struct {
	Model
	Name             string      `gorm:"type:varchar(200);not null;index" json:"name"`
	Slug             string      `gorm:"type:varchar;not null;index" json:"slug"`
	DistrictID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"district_id"`
	Address          string      `gorm:"type:varchar;not null" json:"address"`
	Capacity         int         `gorm:"not null;check:capacity > 0" json:"capacity"`
	PricePerSeat     int         `gorm:"not null;check:price_per_seat > 0" json:"price_per_seat"`
	PhoneNumber      string      `gorm:"type:varchar(20);not null" json:"phone_number"`
	Status           VenueStatus `gorm:"type:varchar(20);not null;default:unconfirmed" json:"status"`
	OwnerID          *uuid.UUID  `gorm:"type:uuid;index;check:venue_creator,(owner_id IS NOT NULL AND created_by_admin_id IS NULL) OR (owner_id IS NULL AND created_by_admin_id IS NOT NULL)" json:"owner_id,omitempty"`
	CreatedByAdminID *uuid.UUID  `gorm:"type:uuid" json:"created_by_admin_id,omitempty"`

	// Relationships
	District       District     `gorm:"foreignKey:DistrictID" json:"district"`
	Owner          *VenueOwner  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedByAdmin *Admin       `gorm:"foreignKey:CreatedByAdminID" json:"created_by_admin,omitempty"`
	Photos         []VenuePhoto `gorm:"foreignKey:VenueID" json:"photos,omitempty"`
	Bookings       []Booking    `gorm:"foreignKey:VenueID" json:"bookings,omitempty"`
}

// Venue photo, referenced by its static-served URL
type VenuePhoto struct {
	Model
	VenueID  uuid.UUID `gorm:"type:uuid;not null;index" json:"venue_id"`
	PhotoURL string    `gorm:"type:varchar;not null" json:"photo_url"`
	IsMain   bool      `gorm:"not null;default:false" json:"is_main"`

	// Relationships
	Venue Venue `gorm:"foreignKey:VenueID" json:"venue"`
}

// Booking information.
// Business rules:
// 1. Created with status=pending, payment_status=pending. BookingMonth and
// BookingYear are denormalized from BookingDate for the billing aggregates.
// 2. The user uploads a payment receipt: payment_status pending -> paid.
// 3. The owner reviews a paid booking: confirm moves payment_status -> confirmed
// and status -> confirmed (and raises a commission payment in the same
// transaction); reject moves payment_status -> rejected and leaves the booking
// open for manual intervention.
// 4. Cancellation is a soft transition to status=cancelled. A user may cancel
// while payment_status is pending/paid; the venue owner and admin may cancel
// unconditionally within their scope.
// Only a confirmed-payment booking blocks its (venue, date) slot: the partial
// unique index enforces that at the storage level, so two concurrent
// confirmations cannot both land.
type Booking struct {
	Model
	VenueID           uuid.UUID     `gorm:"type:uuid;not null;index;uniqueIndex:udx_confirmed_slot,where:payment_status = 'confirmed'" json:"venue_id"`
	UserID            uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	BookingDate       time.Time     `gorm:"type:date;not null;uniqueIndex:udx_confirmed_slot,where:payment_status = 'confirmed'" json:"booking_date"`
	NumberOfSeats     int           `gorm:"not null;check:number_of_seats > 0" json:"number_of_seats"`
	Status            BookingStatus `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	PaymentStatus     PaymentStatus `gorm:"type:varchar(20);not null;default:pending" json:"payment_status"`
	PaymentReceiptURL string        `gorm:"type:varchar" json:"payment_receipt_url,omitempty"`
	BookingMonth      int           `gorm:"not null" json:"booking_month"`
	BookingYear       int           `gorm:"not null" json:"booking_year"`

	// Relationships
	Venue Venue `gorm:"foreignKey:VenueID" json:"venue"`
	User  User  `gorm:"foreignKey:UserID" json:"user"`
}

// Commission payment: per-booking fee owed by the owner to the platform,
// created automatically (status=pending) when the owner confirms a booking's
// payment. At most one commission exists per booking (udx_commission_booking).
// The owner uploads a transfer receipt; only the admin review moves the
// status to confirmed (owner -> active) or rejected (owner -> inactive).
type CommissionPayment struct {
	Model
	OwnerID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"owner_id"`
	BookingID  uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:udx_commission_booking" json:"booking_id"`
	Amount     int           `gorm:"not null" json:"amount"`
	ReceiptURL string        `gorm:"type:varchar" json:"receipt_url,omitempty"`
	Status     PaymentStatus `gorm:"type:varchar(20);not null;default:pending" json:"status"`

	// Relationships
	Owner   VenueOwner `gorm:"foreignKey:OwnerID" json:"owner"`
	Booking Booking    `gorm:"foreignKey:BookingID" json:"booking"`
}

// Monthly subscription: recurring period fee owed by the owner, computed from
// that period's confirmed-payment booking aggregates. Unique per
// (owner, month, year). Admin confirmation extends the owner's
// subscription_expires_at to exactly one month from the moment of
// confirmation, never from the prior expiry.
type MonthlySubscription struct {
	Model
	OwnerID            uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:udx_owner_period" json:"owner_id"`
	Month              int           `gorm:"not null;uniqueIndex:udx_owner_period" json:"month"`
	Year               int           `gorm:"not null;uniqueIndex:udx_owner_period" json:"year"`
	TotalBookings      int           `gorm:"not null;default:0" json:"total_bookings"`
	TotalCapacity      int           `gorm:"not null;default:0" json:"total_capacity"`
	SubscriptionAmount int           `gorm:"not null" json:"subscription_amount"`
	ReceiptURL         string        `gorm:"type:varchar" json:"receipt_url,omitempty"`
	Status             PaymentStatus `gorm:"type:varchar(20);not null;default:pending" json:"status"`

	// Relationships
	Owner VenueOwner `gorm:"foreignKey:OwnerID" json:"owner"`
}
