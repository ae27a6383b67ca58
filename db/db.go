package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// The queries object for interacting with the database
type Queries struct {
	DB *gorm.DB
}

// Constructor for Queries
func NewQueries() *Queries {
	return &Queries{}
}

// Connect to Postgres
func (queries *Queries) ConnectDB(connStr string) error {
	conn, err := gorm.Open(postgres.Open(connStr))
	if err != nil {
		return err
	}

	queries.DB = conn
	return nil
}

// Run postgres database auto migration.
// The order matters: venues reference districts, owners and admins; bookings
// reference venues and users; the billing tables reference bookings and owners.
func (queries *Queries) AutoMigration() error {
	return queries.DB.AutoMigrate(
		&District{},
		&Admin{},
		&VenueOwner{},
		&User{},
		&Venue{},
		&VenuePhoto{},
		&Booking{},
		&CommissionPayment{},
		&MonthlySubscription{},
	)
}
