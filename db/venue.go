package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Filters accepted by the venue listing endpoints
type VenueFilter struct {
	Search     string
	DistrictID *uuid.UUID
	Status     VenueStatus
	SortBy     string
	Order      string
}

var validVenueSorts = map[string]bool{
	"price_per_seat": true,
	"capacity":       true,
	"created_at":     true,
}

// Apply search/district/sort filters to a venue query
func (filter VenueFilter) apply(tx *gorm.DB) (*gorm.DB, error) {
	if filter.Search != "" {
		tx = tx.Where("venues.name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.DistrictID != nil {
		tx = tx.Where("venues.district_id = ?", *filter.DistrictID)
	}
	if filter.Status != "" {
		tx = tx.Where("venues.status = ?", filter.Status)
	}

	if filter.SortBy != "" {
		if !validVenueSorts[filter.SortBy] {
			return nil, &ValidationError{Reason: fmt.Sprintf("invalid sort_by parameter: %s", filter.SortBy)}
		}
		direction := "ASC"
		if filter.Order == "desc" {
			direction = "DESC"
		}
		column := filter.SortBy
		if column == "created_at" {
			column = "date_created"
		}
		tx = tx.Order(fmt.Sprintf("venues.%s %s", column, direction))
	} else {
		tx = tx.Order("venues.date_created DESC")
	}

	return tx, nil
}

// The visibility rule for end users: a confirmed venue is shown when the
// owner's subscription is still running, or the venue was created directly by
// an admin, or the requesting user already holds a confirmed-payment booking
// there with a future date (a user who already booked keeps seeing the venue
// even after the owner's subscription lapses). Anonymous callers pass
// uuid.Nil, which never matches a booking.
const venueVisibleCondition = `(
	venue_owners.subscription_expires_at > CURRENT_TIMESTAMP
	OR venues.created_by_admin_id IS NOT NULL
	OR EXISTS (
		SELECT 1 FROM bookings b
		WHERE b.venue_id = venues.id
		AND b.user_id = ?
		AND b.payment_status = 'confirmed'
		AND b.booking_date > CURRENT_DATE
	)
)`

func (queries *Queries) visibleVenues(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return queries.DB.WithContext(ctx).Model(&Venue{}).
		Joins("LEFT JOIN venue_owners ON venue_owners.id = venues.owner_id").
		Where("venues.status = ?", VenueConfirmed).
		Where(venueVisibleCondition, userID)
}

// List venues visible to an end user (or anonymous caller)
func (queries *Queries) ListVisibleVenues(ctx context.Context, userID uuid.UUID, filter VenueFilter) ([]Venue, error) {
	tx, err := filter.apply(queries.visibleVenues(ctx, userID))
	if err != nil {
		return nil, err
	}

	var venues []Venue
	if err := tx.Preload("District").Preload("Photos").Find(&venues).Error; err != nil {
		return nil, translateError(err, "")
	}
	return venues, nil
}

// Fetch a single venue for an end user. A venue outside the visibility rule
// is reported as absent even though the row exists.
func (queries *Queries) GetVisibleVenue(ctx context.Context, venueID, userID uuid.UUID) (*Venue, error) {
	var venue Venue
	err := queries.visibleVenues(ctx, userID).
		Where("venues.id = ?", venueID).
		Preload("District").
		Preload("Photos").
		Preload("Owner").
		First(&venue).Error
	if err != nil {
		return nil, translateError(err, "")
	}

	// Expose the already-taken dates alongside the venue
	err = queries.DB.WithContext(ctx).
		Where("venue_id = ? AND payment_status = ?", venueID, PaymentConfirmed).
		Find(&venue.Bookings).Error
	if err != nil {
		return nil, translateError(err, "")
	}

	return &venue, nil
}

// Create a venue. The caller decides owner vs admin creator and the initial
// status; the storage check constraint rejects rows setting both or neither.
func (queries *Queries) CreateVenue(ctx context.Context, venue *Venue) error {
	venue.Model = NewModel()
	err := queries.DB.WithContext(ctx).Create(venue).Error
	return translateError(err, "Venue already exists")
}

// List venues for the admin (all of them) or for one owner when ownerID is set
func (queries *Queries) ListVenues(ctx context.Context, filter VenueFilter, ownerID *uuid.UUID) ([]Venue, error) {
	tx := queries.DB.WithContext(ctx).Model(&Venue{})
	if ownerID != nil {
		tx = tx.Where("venues.owner_id = ?", *ownerID)
	}

	tx, err := filter.apply(tx)
	if err != nil {
		return nil, err
	}

	var venues []Venue
	if err := tx.Preload("District").Find(&venues).Error; err != nil {
		return nil, translateError(err, "")
	}
	return venues, nil
}

// Fetch a single venue with photos and its bookings (booker identity
// included). When ownerID is set the venue must belong to that owner.
func (queries *Queries) GetVenue(ctx context.Context, venueID uuid.UUID, ownerID *uuid.UUID) (*Venue, error) {
	tx := queries.DB.WithContext(ctx).Where("id = ?", venueID)
	if ownerID != nil {
		tx = tx.Where("owner_id = ?", *ownerID)
	}

	var venue Venue
	err := tx.Preload("District").Preload("Photos").First(&venue).Error
	if err != nil {
		return nil, translateError(err, "")
	}

	err = queries.DB.WithContext(ctx).
		Where("venue_id = ?", venueID).
		Order("booking_date DESC").
		Preload("User").
		Find(&venue.Bookings).Error
	if err != nil {
		return nil, translateError(err, "")
	}

	return &venue, nil
}

// Update a venue's editable fields. When ownerID is set the venue must belong
// to that owner; the admin passes nil and can edit any venue.
func (queries *Queries) UpdateVenue(ctx context.Context, venueID uuid.UUID, ownerID *uuid.UUID, updated *Venue) (*Venue, error) {
	tx := queries.DB.WithContext(ctx).Model(&Venue{}).Where("id = ?", venueID)
	if ownerID != nil {
		tx = tx.Where("owner_id = ?", *ownerID)
	}

	result := tx.Updates(map[string]any{
		"name":           updated.Name,
		"slug":           updated.Slug,
		"district_id":    updated.DistrictID,
		"address":        updated.Address,
		"capacity":       updated.Capacity,
		"price_per_seat": updated.PricePerSeat,
		"phone_number":   updated.PhoneNumber,
		"date_updated":   time.Now(),
	})
	if result.Error != nil {
		return nil, translateError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return nil, ErrAccessDenied
	}

	var venue Venue
	if err := queries.DB.WithContext(ctx).Preload("District").First(&venue, "id = ?", venueID).Error; err != nil {
		return nil, translateError(err, "")
	}
	return &venue, nil
}

// Delete a venue (admin action). Photos cascade with the row.
func (queries *Queries) DeleteVenue(ctx context.Context, venueID uuid.UUID) error {
	result := queries.DB.WithContext(ctx).Delete(&Venue{}, "id = ?", venueID)
	if result.Error != nil {
		return translateError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return ErrAccessDenied
	}
	return nil
}

// Confirm a venue so end users can see and book it (admin action)
func (queries *Queries) ConfirmVenue(ctx context.Context, venueID uuid.UUID) (*Venue, error) {
	result := queries.DB.WithContext(ctx).Model(&Venue{}).
		Where("id = ?", venueID).
		Updates(map[string]any{"status": VenueConfirmed, "date_updated": time.Now()})
	if result.Error != nil {
		return nil, translateError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return nil, ErrAccessDenied
	}

	var venue Venue
	if err := queries.DB.WithContext(ctx).First(&venue, "id = ?", venueID).Error; err != nil {
		return nil, translateError(err, "")
	}
	return &venue, nil
}

// Hand an admin-created venue over to an owner. Clearing created_by_admin_id
// keeps the owner-XOR-admin-creator constraint satisfied; from this point the
// venue is gated by the owner's subscription.
func (queries *Queries) AssignVenueOwner(ctx context.Context, venueID, ownerID uuid.UUID) (*Venue, error) {
	var owner VenueOwner
	if err := queries.DB.WithContext(ctx).First(&owner, "id = ?", ownerID).Error; err != nil {
		return nil, translateError(err, "")
	}

	result := queries.DB.WithContext(ctx).Model(&Venue{}).
		Where("id = ?", venueID).
		Updates(map[string]any{
			"owner_id":            ownerID,
			"created_by_admin_id": nil,
			"date_updated":        time.Now(),
		})
	if result.Error != nil {
		return nil, translateError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return nil, ErrAccessDenied
	}

	var venue Venue
	if err := queries.DB.WithContext(ctx).Preload("Owner").First(&venue, "id = ?", venueID).Error; err != nil {
		return nil, translateError(err, "")
	}
	return &venue, nil
}

// Attach a photo to one of the owner's venues
func (queries *Queries) AddVenuePhoto(ctx context.Context, ownerID uuid.UUID, photo *VenuePhoto) error {
	var venue Venue
	err := queries.DB.WithContext(ctx).
		Where("id = ? AND owner_id = ?", photo.VenueID, ownerID).
		First(&venue).Error
	if err != nil {
		return translateError(err, "")
	}

	photo.Model = NewModel()
	return translateError(queries.DB.WithContext(ctx).Create(photo).Error, "")
}
