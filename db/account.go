package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// New owners (self-registered or admin-created) get a free trial before the
// first monthly subscription is due.
const OwnerTrialPeriod = 30 * 24 * time.Hour

// BillingPolicy is the platform-wide billing configuration. It is backed by
// the operating admin record and only changes through the admin profile
// update, so reads go through this typed accessor instead of ad hoc lookups.
type BillingPolicy struct {
	CommissionPercentage    int
	MonthlySubscriptionRate int
	CardNumber              string
}

// BillingPolicy reads the current rates from the operating admin record
func (queries *Queries) BillingPolicy(ctx context.Context) (BillingPolicy, error) {
	var admin Admin
	err := queries.DB.WithContext(ctx).Order("date_created ASC").First(&admin).Error
	if err != nil {
		return BillingPolicy{}, translateError(err, "")
	}

	return BillingPolicy{
		CommissionPercentage:    admin.CommissionPercentage,
		MonthlySubscriptionRate: admin.MonthlySubscriptionRate,
		CardNumber:              admin.CardNumber,
	}, nil
}

// Fetch an admin account by ID
func (queries *Queries) GetAdmin(ctx context.Context, adminID uuid.UUID) (*Admin, error) {
	var admin Admin
	err := queries.DB.WithContext(ctx).First(&admin, "id = ?", adminID).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return &admin, nil
}

// Fetch an owner account by ID
func (queries *Queries) GetOwner(ctx context.Context, ownerID uuid.UUID) (*VenueOwner, error) {
	var owner VenueOwner
	err := queries.DB.WithContext(ctx).First(&owner, "id = ?", ownerID).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return &owner, nil
}

// Lookup an admin account for login
func (queries *Queries) GetAdminByUsername(ctx context.Context, username string) (*Admin, error) {
	var admin Admin
	err := queries.DB.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return &admin, nil
}

// Lookup an owner account for login
func (queries *Queries) GetOwnerByUsername(ctx context.Context, username string) (*VenueOwner, error) {
	var owner VenueOwner
	err := queries.DB.WithContext(ctx).Where("username = ?", username).First(&owner).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return &owner, nil
}

// Lookup a user account by phone number for login
func (queries *Queries) GetUserByPhone(ctx context.Context, phoneNumber string) (*User, error) {
	var user User
	err := queries.DB.WithContext(ctx).Where("phone_number = ?", phoneNumber).First(&user).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return &user, nil
}

// Create a venue owner account. The password must already be hashed.
// The subscription starts with the trial period.
func (queries *Queries) CreateOwner(ctx context.Context, owner *VenueOwner) error {
	owner.Model = NewModel()
	owner.Status = OwnerActive
	owner.SubscriptionExpiresAt = time.Now().Add(OwnerTrialPeriod)

	err := queries.DB.WithContext(ctx).Create(owner).Error
	return translateError(err, "Username already exists")
}

// Create an end-user account
func (queries *Queries) CreateUser(ctx context.Context, user *User) error {
	user.Model = NewModel()
	err := queries.DB.WithContext(ctx).Create(user).Error
	return translateError(err, "Phone number already exists")
}

// List all admin accounts
func (queries *Queries) ListAdmins(ctx context.Context) ([]Admin, error) {
	var admins []Admin
	err := queries.DB.WithContext(ctx).Find(&admins).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return admins, nil
}

// List all end users
func (queries *Queries) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	err := queries.DB.WithContext(ctx).Find(&users).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return users, nil
}

// List all venue owners, newest first
func (queries *Queries) ListOwners(ctx context.Context) ([]VenueOwner, error) {
	var owners []VenueOwner
	err := queries.DB.WithContext(ctx).Order("date_created DESC").Find(&owners).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return owners, nil
}

// Update an owner's profile fields (names and card number)
func (queries *Queries) UpdateOwnerProfile(ctx context.Context, ownerID uuid.UUID, firstName, lastName, cardNumber string) (*VenueOwner, error) {
	result := queries.DB.WithContext(ctx).Model(&VenueOwner{}).
		Where("id = ?", ownerID).
		Updates(map[string]any{
			"first_name":   firstName,
			"last_name":    lastName,
			"card_number":  cardNumber,
			"date_updated": time.Now(),
		})
	if result.Error != nil {
		return nil, translateError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return nil, ErrAccessDenied
	}

	var owner VenueOwner
	if err := queries.DB.WithContext(ctx).First(&owner, "id = ?", ownerID).Error; err != nil {
		return nil, translateError(err, "")
	}
	return &owner, nil
}

// Set an owner's status (admin action)
func (queries *Queries) UpdateOwnerStatus(ctx context.Context, ownerID uuid.UUID, status OwnerStatus) (*VenueOwner, error) {
	result := queries.DB.WithContext(ctx).Model(&VenueOwner{}).
		Where("id = ?", ownerID).
		Updates(map[string]any{"status": status, "date_updated": time.Now()})
	if result.Error != nil {
		return nil, translateError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return nil, ErrAccessDenied
	}

	var owner VenueOwner
	if err := queries.DB.WithContext(ctx).First(&owner, "id = ?", ownerID).Error; err != nil {
		return nil, translateError(err, "")
	}
	return &owner, nil
}

// Update the admin's billing-relevant profile fields. This is the only write
// path for the billing policy.
func (queries *Queries) UpdateAdminProfile(ctx context.Context, adminID uuid.UUID, cardNumber string, commissionPercentage, monthlySubscriptionRate int) (*Admin, error) {
	result := queries.DB.WithContext(ctx).Model(&Admin{}).
		Where("id = ?", adminID).
		Updates(map[string]any{
			"card_number":               cardNumber,
			"commission_percentage":     commissionPercentage,
			"monthly_subscription_rate": monthlySubscriptionRate,
			"date_updated":              time.Now(),
		})
	if result.Error != nil {
		return nil, translateError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return nil, ErrAccessDenied
	}

	var admin Admin
	if err := queries.DB.WithContext(ctx).First(&admin, "id = ?", adminID).Error; err != nil {
		return nil, translateError(err, "")
	}
	return &admin, nil
}
